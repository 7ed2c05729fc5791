package game

import (
	"testing"

	"github.com/fourline-io/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	board := NewBoard()

	require.Len(t, board, models.BoardSize)
	for _, row := range board {
		require.Len(t, row, models.BoardSize)
		for _, cell := range row {
			assert.Equal(t, models.Empty, cell)
		}
	}
}

func TestPlaceStone(t *testing.T) {
	t.Run("places on any empty in-bounds cell", func(t *testing.T) {
		board := NewBoard()

		// free placement: no support below is required
		require.NoError(t, PlaceStone(board, 3, 4, models.Player1))
		assert.Equal(t, models.Player1, board[3][4])
	})

	t.Run("rejects out of bounds coordinates", func(t *testing.T) {
		board := NewBoard()

		for _, pos := range [][2]int{{-1, 0}, {0, -1}, {models.BoardSize, 0}, {0, models.BoardSize}} {
			err := PlaceStone(board, pos[0], pos[1], models.Player1)
			assert.ErrorIs(t, err, models.ErrOutOfBounds)
		}
	})

	t.Run("rejects an occupied cell and keeps its value", func(t *testing.T) {
		board := NewBoard()
		require.NoError(t, PlaceStone(board, 0, 0, models.Player1))

		err := PlaceStone(board, 0, 0, models.Player2)
		assert.ErrorIs(t, err, models.ErrCellOccupied)
		assert.Equal(t, models.Player1, board[0][0])
	})
}

func TestIsBoardFull(t *testing.T) {
	board := NewBoard()
	assert.False(t, IsBoardFull(board))

	for r := range board {
		for c := range board[r] {
			board[r][c] = models.Player2
		}
	}
	assert.True(t, IsBoardFull(board))

	board[7][7] = models.Empty
	assert.False(t, IsBoardFull(board))
}

func TestCopyBoard(t *testing.T) {
	board := NewBoard()
	require.NoError(t, PlaceStone(board, 1, 1, models.Player1))

	copied := CopyBoard(board)
	require.Equal(t, board, copied)

	// mutating the copy must not leak into the original
	copied[1][1] = models.Player2
	assert.Equal(t, models.Player1, board[1][1])
}
