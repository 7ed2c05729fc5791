package game

import "github.com/fourline-io/server/models"

// Board is an 8x8 grid of cells, board[row][col], row 0 at the top.
type Board [][]models.Player

func NewBoard() Board {
	board := make(Board, models.BoardSize)
	for i := range board {
		board[i] = make([]models.Player, models.BoardSize)
	}
	return board
}

func InBounds(row, col int) bool {
	return row >= 0 && row < models.BoardSize && col >= 0 && col < models.BoardSize
}

// PlaceStone writes a player into an empty cell. Free placement: any
// empty in-bounds cell is legal, there is no gravity rule. A cell is
// written at most once; only a full reset ever clears it.
func PlaceStone(board Board, row, col int, player models.Player) error {
	if !InBounds(row, col) {
		return models.ErrOutOfBounds
	}

	if board[row][col] != models.Empty {
		return models.ErrCellOccupied
	}

	board[row][col] = player
	return nil
}

func IsBoardFull(board Board) bool {
	for r := range board {
		for c := range board[r] {
			if board[r][c] == models.Empty {
				return false
			}
		}
	}
	return true
}

// this creates a deep copy of the board, used for snapshots
func CopyBoard(board Board) Board {
	newBoard := make(Board, len(board))
	for i := range board {
		newBoard[i] = make([]models.Player, len(board[i]))
		copy(newBoard[i], board[i])
	}
	return newBoard
}
