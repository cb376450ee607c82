package mines

import (
	"errors"
	"testing"
)

func TestParseSeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seed    string
		want    GameParams
		wantErr bool
	}{
		{seed: "9:9:10", want: GameParams{9, 9, 10}},
		{seed: "30:16:99", want: GameParams{30, 16, 99}},
		{seed: "9:9", wantErr: true},
		{seed: "a:b:c", wantErr: true},
		{seed: "3:3:9", wantErr: true},
		{seed: "", wantErr: true},
	}
	for _, test := range tests {
		p, err := ParseSeed(test.seed)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseSeed(%q) = %+v, want an error", test.seed, *p)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSeed(%q): %v", test.seed, err)
			continue
		}
		if *p != test.want {
			t.Errorf("ParseSeed(%q) = %+v, want %+v", test.seed, *p, test.want)
		}
		if s := p.Seed(); s != test.seed {
			t.Errorf("Seed() = %q, want %q", s, test.seed)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := []GameParams{{1, 2, 1}, {2, 1, 1}, {16, 16, 20}, {25, 25, 624}}
	for _, p := range valid {
		if err := p.Validate(); err != nil {
			t.Errorf("%+v: %v", p, err)
		}
	}

	invalid := []GameParams{{0, 0, 0}, {1, 1, 1}, {5, 5, 0}, {-2, 5, 1}, {4, 4, 16}}
	for _, p := range invalid {
		if err := p.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%+v: have %v, want ErrConfiguration", p, err)
		}
	}
}
