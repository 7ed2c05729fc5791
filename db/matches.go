package db

import (
	"fmt"
	"time"

	"github.com/fourline-io/server/models"
)

// MatchStore records finished games in postgres. It satisfies the
// server.MatchRecorder interface.
type MatchStore struct{}

func (MatchStore) RecordMatch(record models.MatchRecord) error {
	query := `
	INSERT INTO matches (room_id, player1, player2, winner, reason, move_count, started_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := DB.Exec(query,
		record.RoomID,
		record.Player1,
		record.Player2,
		record.Winner,
		record.Reason,
		record.MoveCount,
		record.StartedAt,
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record match: %v", err)
	}
	return nil
}

// MatchSummary is one row of the history listing.
type MatchSummary struct {
	ID         int64     `json:"id"`
	RoomID     string    `json:"roomId"`
	Player1    string    `json:"player1"`
	Player2    string    `json:"player2"`
	Winner     string    `json:"winner"`
	Reason     string    `json:"reason"`
	MoveCount  int       `json:"moveCount"`
	FinishedAt time.Time `json:"finishedAt"`
}

// GetRecentMatches returns the most recently finished games.
func GetRecentMatches(limit int) ([]MatchSummary, error) {
	query := `
	SELECT id, room_id, player1, player2, winner, reason, move_count, finished_at
	FROM matches
	ORDER BY finished_at DESC
	LIMIT $1;
	`
	rows, err := DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %v", err)
	}
	defer rows.Close()

	matches := []MatchSummary{}
	for rows.Next() {
		var m MatchSummary
		err := rows.Scan(
			&m.ID,
			&m.RoomID,
			&m.Player1,
			&m.Player2,
			&m.Winner,
			&m.Reason,
			&m.MoveCount,
			&m.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %v", err)
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}
