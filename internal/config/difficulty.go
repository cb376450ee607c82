package config

import (
	"fmt"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Difficulty struct {
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MineCount int    `json:"mine_count"`
}

func (d Difficulty) Params() mines.GameParams {
	return mines.GameParams{Width: d.Width, Height: d.Height, MineCount: d.MineCount}
}

const DefaultDifficulty = "medium"

var difficulties = []Difficulty{
	{"easy", 16, 16, 20},
	{"medium", 20, 20, 30},
	{"hard", 20, 20, 50},
	{"impossible", 25, 25, 100},
}

// Difficulties returns the presets, easiest first.
func Difficulties() []Difficulty {
	return append([]Difficulty(nil), difficulties...)
}

// LookupDifficulty finds a preset by case-insensitive name. An empty name
// selects [DefaultDifficulty].
func LookupDifficulty(name string) (Difficulty, error) {
	if name == "" {
		name = DefaultDifficulty
	}
	for _, d := range difficulties {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("unknown difficulty %q", name)
}
