package mines

import (
	"strconv"
)

// CellValue is what a board cell holds: an adjacency count in [0, 8] or
// [Mine]. [None] is only ever returned for coordinates outside the board.
type CellValue int8

const (
	None CellValue = -1
	Mine CellValue = 9
)

func (v CellValue) IsMine() bool {
	return v == Mine
}

func (v CellValue) String() string {
	switch {
	case v == Mine:
		return "*"
	case v == 0:
		return " "
	case 0 < v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Disclosure is a cell revealed by a single [Board.Reveal] call.
type Disclosure struct {
	X     int       `json:"x"`
	Y     int       `json:"y"`
	Value CellValue `json:"value"`
}

// Moore neighbourhood in flood-fill order: up, right, down, left, then
// the diagonals clockwise from up-right.
var directions = [8]struct{ dx, dy int }{
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, 0},
	{1, -1},
	{1, 1},
	{-1, 1},
	{-1, -1},
}
