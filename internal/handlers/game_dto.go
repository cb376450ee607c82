package handlers

import (
	"errors"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

const customDifficulty = "custom"

type NewGameDTO struct {
	Difficulty string `schema:"difficulty"`
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
	// Seed is the "w:h:m" shorthand for a custom board.
	Seed string `schema:"seed"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Resolve picks a preset by name or, when any dimension or a seed is given, a
// custom board. Custom params are validated by the board itself.
func (dto NewGameDTO) Resolve() (string, mines.GameParams, error) {
	custom := dto.Width != 0 || dto.Height != 0 || dto.MineCount != 0
	if (custom || dto.Seed != "") && dto.Difficulty != "" ||
		custom && dto.Seed != "" {
		return "", mines.GameParams{}, errors.New(
			"difficulty, seed and width/height/mine_count are mutually exclusive",
		)
	}
	if dto.Seed != "" {
		params, err := mines.ParseSeed(dto.Seed)
		if err != nil {
			return "", mines.GameParams{}, err
		}
		return customDifficulty, *params, nil
	}
	if custom {
		return customDifficulty, mines.GameParams{
			Width:     dto.Width,
			Height:    dto.Height,
			MineCount: dto.MineCount,
		}, nil
	}
	d, err := config.LookupDifficulty(dto.Difficulty)
	if err != nil {
		return "", mines.GameParams{}, err
	}
	return d.Name, d.Params(), nil
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionID string              `json:"game_session_id"`
	Difficulty    string              `json:"difficulty"`
	Width         int                 `json:"width"`
	Height        int                 `json:"height"`
	MineCount     int                 `json:"mine_count"`
	Status        session.Status      `json:"status"`
	Grid          []session.CellState `json:"grid"`
	Revealed      int                 `json:"revealed"`
	Marks         int                 `json:"marks"`
	StartedAt     int64               `json:"started_at"`
	EndedAt       *int64              `json:"ended_at,omitempty"`
	Elapsed       string              `json:"elapsed"`
}

func NewGameSessionDTO(snap session.Snapshot) GameSessionDTO {
	var endedAt *int64
	if !snap.EndedAt.IsZero() {
		e := snap.EndedAt.UnixMilli()
		endedAt = &e
	}
	return GameSessionDTO{
		GameSessionID: snap.ID,
		Difficulty:    snap.Difficulty,
		Width:         snap.Params.Width,
		Height:        snap.Params.Height,
		MineCount:     snap.Params.MineCount,
		Status:        snap.Status,
		Grid:          snap.Grid,
		Revealed:      snap.Revealed,
		Marks:         snap.Marks,
		StartedAt:     snap.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
		Elapsed:       session.FormatElapsed(snap.Elapsed),
	}
}

type NewGameResponse struct {
	Token string         `json:"token"`
	Game  GameSessionDTO `json:"game"`
}

type RevealResponse struct {
	Cells []mines.Disclosure `json:"cells"`
	Event mines.Event        `json:"event"`
	Game  GameSessionDTO     `json:"game"`
}

func NewRevealResponse(out mines.Outcome, snap session.Snapshot) RevealResponse {
	cells := out.Cells
	if cells == nil {
		cells = []mines.Disclosure{}
	}
	return RevealResponse{
		Cells: cells,
		Event: out.Event,
		Game:  NewGameSessionDTO(snap),
	}
}

type MarkResponse struct {
	X      int            `json:"x"`
	Y      int            `json:"y"`
	Marked bool           `json:"marked"`
	Game   GameSessionDTO `json:"game"`
}

type MinesResponse struct {
	Mines []mines.Point `json:"mines"`
}
