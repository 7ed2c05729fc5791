package game

import "github.com/fourline-io/server/models"

// the four axes through a cell: horizontal, vertical, both diagonals
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// countInDirection counts contiguous stones of player starting one step
// away from (row, col) and walking outward along (deltaRow, deltaCol).
func countInDirection(board Board, row, col, deltaRow, deltaCol int, player models.Player) int {
	count := 0
	r, c := row+deltaRow, col+deltaCol
	for InBounds(r, c) && board[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

// CheckWin reports whether the stone just placed at (row, col) completed
// a run of at least ToWin. It only scans outward from the placed cell in
// the four axes, never the whole board, so a win can only be detected
// through the last move.
func CheckWin(board Board, row, col int, player models.Player) bool {
	for _, dir := range directions {
		run := 1 +
			countInDirection(board, row, col, dir[0], dir[1], player) +
			countInDirection(board, row, col, -dir[0], -dir[1], player)
		if run >= models.ToWin {
			return true
		}
	}
	return false
}
