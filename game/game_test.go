package game

import (
	"testing"

	"github.com/fourline-io/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedGame() *Game {
	g := NewGame()
	g.Start()
	return g
}

func TestNewGame(t *testing.T) {
	g := NewGame()

	require.NotNil(t, g)
	assert.Equal(t, models.Player1, g.CurrentPlayer)
	assert.Equal(t, models.StatusWaiting, g.Status)
	assert.Equal(t, models.Empty, g.Winner)
	assert.Zero(t, g.MoveCount)
}

func TestGame_MakeMove(t *testing.T) {
	t.Run("rejected before the game has started", func(t *testing.T) {
		g := NewGame()

		err := g.MakeMove(models.Player1, 0, 0)
		assert.ErrorIs(t, err, models.ErrGameNotStarted)
		assert.Equal(t, models.Empty, g.Board[0][0])
	})

	t.Run("valid move flips the turn exactly once", func(t *testing.T) {
		g := startedGame()

		require.NoError(t, g.MakeMove(models.Player1, 7, 0))

		assert.Equal(t, models.Player1, g.Board[7][0])
		assert.Equal(t, models.Player2, g.CurrentPlayer)
		assert.Equal(t, 1, g.MoveCount)
		assert.Equal(t, models.StatusOngoing, g.Status)
	})

	t.Run("rejected when it is not your turn, grid unchanged", func(t *testing.T) {
		g := startedGame()

		err := g.MakeMove(models.Player2, 0, 0)
		assert.ErrorIs(t, err, models.ErrNotYourTurn)
		assert.Equal(t, models.Empty, g.Board[0][0])
		assert.Equal(t, models.Player1, g.CurrentPlayer)
	})

	t.Run("rejection order is deterministic", func(t *testing.T) {
		// out of turn and out of bounds at once: turn is checked first
		g := startedGame()

		err := g.MakeMove(models.Player2, -1, 0)
		assert.ErrorIs(t, err, models.ErrNotYourTurn)
	})

	t.Run("fourth in a row ends the game without toggling the turn", func(t *testing.T) {
		g := startedGame()

		// player1 builds a row on top, player2 answers far away
		moves := [][3]int{
			{int(models.Player1), 0, 0},
			{int(models.Player2), 5, 0},
			{int(models.Player1), 0, 1},
			{int(models.Player2), 5, 1},
			{int(models.Player1), 0, 2},
			{int(models.Player2), 5, 2},
		}
		for _, m := range moves {
			require.NoError(t, g.MakeMove(models.Player(m[0]), m[1], m[2]))
		}

		require.NoError(t, g.MakeMove(models.Player1, 0, 3))

		assert.Equal(t, models.StatusFinished, g.Status)
		assert.Equal(t, models.Player1, g.Winner)
		assert.Equal(t, models.Player1, g.CurrentPlayer)
	})

	t.Run("rejected once the game is over", func(t *testing.T) {
		g := startedGame()
		g.Abandon(models.Player2)

		err := g.MakeMove(models.Player1, 0, 0)
		assert.ErrorIs(t, err, models.ErrGameOver)
	})

	t.Run("filling the last cell without a win is a draw", func(t *testing.T) {
		g := startedGame()
		for r := range g.Board {
			for c := range g.Board[r] {
				g.Board[r][c] = models.Player2
			}
		}
		g.Board[7][7] = models.Empty

		// the placed stone completes no run of its own color
		require.NoError(t, g.MakeMove(models.Player1, 7, 7))

		assert.Equal(t, models.StatusFinished, g.Status)
		assert.Equal(t, models.Empty, g.Winner)
	})
}

func TestGame_Reset(t *testing.T) {
	g := startedGame()
	require.NoError(t, g.MakeMove(models.Player1, 3, 3))
	g.Abandon(models.Player2)

	g.Reset(true)

	assert.Equal(t, models.StatusOngoing, g.Status)
	assert.Equal(t, models.Player1, g.CurrentPlayer)
	assert.Equal(t, models.Empty, g.Winner)
	assert.Zero(t, g.MoveCount)
	assert.Equal(t, NewBoard(), g.Board)

	// restart is idempotent
	before := CopyBoard(g.Board)
	g.Reset(true)
	assert.Equal(t, before, g.Board)
	assert.Equal(t, models.StatusOngoing, g.Status)

	// with one seat empty the game goes back to waiting
	g.Reset(false)
	assert.Equal(t, models.StatusWaiting, g.Status)
}
