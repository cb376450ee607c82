package session

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is one cell of the player's view of a board.
type CellState int8

const (
	Hidden          CellState = -2
	Marked          CellState = -1
	CorrectlyMarked CellState = 64
	ExplodedMine    CellState = 65
	FalselyMarked   CellState = 66
	UnmarkedMine    CellState = 67
	/*
	 * 	- 0 to 8 mean the cell is revealed and has a surrounding mine
	 * 	  count.
	 *
	 * 	- 64 means the cell was marked and holds a mine, shown once the
	 * 	  game is over.
	 *
	 * 	- 65 means the cell had a mine revealed and this was the one
	 * 	  the player hit.
	 *
	 * 	- 66 means the cell was marked but holds no mine.
	 *
	 * 	- 67 means an unmarked mine shown once the game is over.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Hidden:
		return "·"
	case s == Marked, s == CorrectlyMarked:
		return "⚑"
	case s == ExplodedMine:
		return "X"
	case s == FalselyMarked:
		return "x"
	case s == UnmarkedMine:
		return "*"
	case s == 0:
		return " "
	case 0 < s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
