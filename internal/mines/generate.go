package mines

import (
	"math/rand/v2"
)

// placeMines samples row-major indices uniformly and retries on collision
// until mineCount distinct cells hold a mine.
func (b *Board) placeMines(r *rand.Rand) {
	total := b.params.Cells()
	for placed := 0; placed < b.params.MineCount; {
		i := r.IntN(total)
		if b.cells[i] == Mine {
			continue
		}
		b.cells[i] = Mine
		placed++
	}
}

// countNeighbours fills every non-mine cell with the number of mines among
// its in-bounds Moore neighbours.
func (b *Board) countNeighbours() {
	for y := range b.params.Height {
		for x := range b.params.Width {
			i := b.index(x, y)
			if b.cells[i] == Mine {
				continue
			}
			var v CellValue
			for _, d := range directions {
				if b.CellValue(x+d.dx, y+d.dy) == Mine {
					v++
				}
			}
			b.cells[i] = v
		}
	}
}
