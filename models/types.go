package models

// to represent the players in the game
type Player int

const (
	Empty   Player = 0
	Player1 Player = 1
	Player2 Player = 2
)

// Role returns the wire name for a seat. Spectators never appear as
// cell values, so they are not a Player.
func (p Player) Role() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return ""
	}
}

// Opponent returns the other seated player.
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// for board representation
const (
	BoardSize = 8
	ToWin     = 4
)

// to represent the game status
type GameStatus string

const (
	StatusWaiting  GameStatus = "waiting"
	StatusOngoing  GameStatus = "ongoing"
	StatusFinished GameStatus = "finished"
)

// basic errors that can occur; these are client rejections, not faults
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrRoomNotFound     Error = "room not found"
	ErrGameOver         Error = "game is already over"
	ErrGameNotStarted   Error = "game has not started yet"
	ErrNotAPlayer       Error = "you are not a seated player in this game"
	ErrNotYourTurn      Error = "not your turn"
	ErrOutOfBounds      Error = "cell is out of bounds"
	ErrCellOccupied     Error = "cell is already occupied"
	ErrMalformedPayload Error = "malformed payload"
)

// RejectionReason maps a rejection error to its wire reason code.
// Unknown errors degrade to internal_error so an unexpected fault never
// takes the room down for other participants.
func RejectionReason(err error) string {
	switch err {
	case ErrRoomNotFound:
		return "room_not_found"
	case ErrGameOver:
		return "game_over"
	case ErrGameNotStarted:
		return "game_not_started"
	case ErrNotAPlayer:
		return "not_a_player"
	case ErrNotYourTurn:
		return "not_your_turn"
	case ErrOutOfBounds:
		return "out_of_bounds"
	case ErrCellOccupied:
		return "cell_occupied"
	case ErrMalformedPayload:
		return "malformed_payload"
	default:
		return "internal_error"
	}
}

// reasons a finished game was decided
const (
	ReasonFourInARow  = "four_in_a_row"
	ReasonDraw        = "draw"
	ReasonAbandonment = "opponent_left"
)
