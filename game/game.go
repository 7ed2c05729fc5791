package game

import "github.com/fourline-io/server/models"

// Game holds the authoritative board state of one room. It is not
// safe for concurrent use; the owning room serializes access.
type Game struct {
	Board         Board
	CurrentPlayer models.Player
	Status        models.GameStatus
	Winner        models.Player
	MoveCount     int
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: models.Player1,
		Status:        models.StatusWaiting,
		Winner:        models.Empty,
		MoveCount:     0,
	}
}

// Start flips the game from waiting to ongoing once both seats are taken.
func (g *Game) Start() {
	if g.Status == models.StatusWaiting {
		g.Status = models.StatusOngoing
	}
}

func (g *Game) IsFinished() bool {
	return g.Status == models.StatusFinished
}

// MakeMove validates and applies one move for player at (row, col).
// Checks run in a fixed order and the first failure is the rejection
// reason; a rejected move never mutates state.
func (g *Game) MakeMove(player models.Player, row, col int) error {
	if g.Status == models.StatusFinished {
		return models.ErrGameOver
	}

	if g.Status == models.StatusWaiting {
		return models.ErrGameNotStarted
	}

	if g.CurrentPlayer != player {
		return models.ErrNotYourTurn
	}

	if err := PlaceStone(g.Board, row, col, player); err != nil {
		return err
	}

	g.MoveCount++

	if CheckWin(g.Board, row, col, player) {
		g.Status = models.StatusFinished
		g.Winner = player
		return nil
	}

	if IsBoardFull(g.Board) {
		g.Status = models.StatusFinished
		return nil
	}

	g.CurrentPlayer = player.Opponent()
	return nil
}

// Reset replaces the board with a fresh one and hands the turn back to
// player1. Restart is idempotent: resetting a fresh game yields the
// same empty state.
func (g *Game) Reset(bothSeated bool) {
	g.Board = NewBoard()
	g.CurrentPlayer = models.Player1
	g.Winner = models.Empty
	g.MoveCount = 0

	if bothSeated {
		g.Status = models.StatusOngoing
	} else {
		g.Status = models.StatusWaiting
	}
}

// Abandon latches the game finished with the remaining player as winner.
func (g *Game) Abandon(winner models.Player) {
	g.Status = models.StatusFinished
	g.Winner = winner
}
