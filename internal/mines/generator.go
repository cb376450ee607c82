package mines

import (
	"fmt"
	"strings"
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Cells() int {
	return p.Width * p.Height
}

// Seed is the compact "w:h:m" form of p, as logged and as accepted by
// [ParseSeed].
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate returns a [*ConfigurationError] for the first constraint p
// violates.
func (p GameParams) Validate() error {
	switch {
	case p.Width <= 0:
		return &ConfigurationError{"width", p.Width, "must be positive"}
	case p.Height <= 0:
		return &ConfigurationError{"height", p.Height, "must be positive"}
	case p.MineCount <= 0:
		return &ConfigurationError{"mine count", p.MineCount, "must be positive"}
	case p.MineCount >= p.Width*p.Height:
		return &ConfigurationError{
			"mine count", p.MineCount,
			fmt.Sprintf("must be less than the cell count %d", p.Width*p.Height),
		}
	}
	return nil
}

func (p GameParams) InBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}
