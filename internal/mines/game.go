package mines

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
)

var Log *slog.Logger = slog.Default()

// Event is the terminal signal produced by a reveal, if any.
type Event uint8

const (
	NoEvent Event = iota
	MineTriggered
	AllSafeCellsRevealed
)

func (e Event) String() string {
	switch e {
	case NoEvent:
		return "none"
	case MineTriggered:
		return "mine_triggered"
	case AllSafeCellsRevealed:
		return "all_safe_cells_revealed"
	default:
		return fmt.Sprintf("Event(%d)", uint8(e))
	}
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

type Outcome struct {
	Cells []Disclosure
	Event Event
}

func (o Outcome) Terminal() bool {
	return o.Event != NoEvent
}

// Board holds the mine layout, the adjacency numbers and which cells have
// been revealed. The layout is fixed at construction; only the revealed
// state changes afterwards, and only through [Board.Reveal].
type Board struct {
	params        GameParams
	cells         []CellValue
	revealed      []bool
	revealedCount int
	safeRevealed  int
}

func newBoard(params GameParams) *Board {
	return &Board{
		params:   params,
		cells:    make([]CellValue, params.Cells()),
		revealed: make([]bool, params.Cells()),
	}
}

// NewBoard places params.MineCount mines uniformly at random using r and
// computes the adjacency numbers. Invalid params yield a
// [*ConfigurationError] and no board.
func NewBoard(params GameParams, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := newBoard(params)
	b.placeMines(r)
	b.countNeighbours()
	Log.Debug("generated board", slog.String("seed", params.Seed()))
	return b, nil
}

// NewBoardFromMines builds a board with mines exactly at the given points.
func NewBoardFromMines(params GameParams, mines []Point) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(mines) != params.MineCount {
		return nil, &ConfigurationError{
			"mine count", params.MineCount,
			fmt.Sprintf("does not match the %d mine locations given", len(mines)),
		}
	}
	b := newBoard(params)
	for _, p := range mines {
		if !params.InBounds(p.X, p.Y) {
			return nil, &ConfigurationError{
				"mine location", b.index(p.X, p.Y),
				fmt.Sprintf("(%d, %d) is out of bounds", p.X, p.Y),
			}
		}
		i := b.index(p.X, p.Y)
		if b.cells[i] == Mine {
			return nil, &ConfigurationError{
				"mine location", i,
				fmt.Sprintf("(%d, %d) is listed twice", p.X, p.Y),
			}
		}
		b.cells[i] = Mine
	}
	b.countNeighbours()
	return b, nil
}

func (b *Board) index(x, y int) int {
	return y*b.params.Width + x
}

func (b *Board) point(i int) (x, y int) {
	return i % b.params.Width, i / b.params.Width
}

// Params returns a copy of the board configuration.
func (b *Board) Params() GameParams {
	return b.params
}

func (b *Board) InBounds(x, y int) bool {
	return b.params.InBounds(x, y)
}

// CellValue returns [None] for coordinates outside the board.
func (b *Board) CellValue(x, y int) CellValue {
	if !b.InBounds(x, y) {
		return None
	}
	return b.cells[b.index(x, y)]
}

func (b *Board) Revealed(x, y int) bool {
	return b.InBounds(x, y) && b.revealed[b.index(x, y)]
}

func (b *Board) RevealedCount() int {
	return b.revealedCount
}

func (b *Board) Hidden() int {
	return len(b.cells) - b.revealedCount
}

// Cleared reports whether every safe cell has been revealed.
func (b *Board) Cleared() bool {
	return b.safeRevealed == len(b.cells)-b.params.MineCount
}

// MineLocations lists every mine in row-major order, whether revealed or
// not.
func (b *Board) MineLocations() []Point {
	points := make([]Point, 0, b.params.MineCount)
	for i, v := range b.cells {
		if v == Mine {
			x, y := b.point(i)
			points = append(points, Point{x, y})
		}
	}
	return points
}

func (b *Board) reveal(i int, out *Outcome) {
	b.revealed[i] = true
	b.revealedCount++
	if b.cells[i] != Mine {
		b.safeRevealed++
	}
	x, y := b.point(i)
	out.Cells = append(out.Cells, Disclosure{x, y, b.cells[i]})
}

// Reveal opens the cell at (x, y) and, when it has no neighbouring mines,
// keeps opening safe neighbours until numbered cells or the board edge
// bound the region. Disclosures are listed in depth-first order starting
// with (x, y). Out-of-bounds or already revealed targets are no-ops.
func (b *Board) Reveal(x, y int) Outcome {
	var out Outcome
	if !b.InBounds(x, y) {
		return out
	}
	start := b.index(x, y)
	if b.revealed[start] {
		return out
	}

	if b.cells[start] == Mine {
		b.reveal(start, &out)
		out.Event = MineTriggered
		return out
	}

	var todo celltodo
	todo.push(start)
	for {
		i, ok := todo.pop()
		if !ok {
			break
		}
		/*
		 * A cell can be queued from several zero-valued neighbours
		 * before it is reached; only the first pop opens it.
		 */
		if b.revealed[i] {
			continue
		}
		b.reveal(i, &out)
		if b.cells[i] != 0 {
			continue
		}

		cx, cy := b.point(i)
		for k := len(directions) - 1; k >= 0; k-- {
			nx, ny := cx+directions[k].dx, cy+directions[k].dy
			if !b.InBounds(nx, ny) {
				continue
			}
			j := b.index(nx, ny)
			if b.cells[j] != Mine && !b.revealed[j] {
				todo.push(j)
			}
		}
	}

	if b.Cleared() {
		out.Event = AllSafeCellsRevealed
	}

	return out
}

// String renders the player's view: '·' for hidden cells, otherwise the
// cell value.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.params.Height {
		for x := range b.params.Width {
			i := b.index(x, y)
			if b.revealed[i] {
				fmt.Fprint(&sb, b.cells[i].String()+" ")
			} else {
				fmt.Fprint(&sb, "· ")
			}
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
