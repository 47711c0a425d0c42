package gamify

import "testing"

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{100, 3},
		{199, 3},
		{200, 4},
		{350, 5},
		{550, 6},
		{1000, 7},
		{2000, 10},
		{2600, 11},
		{5000, 14},
		{6000, 15},
		{7200, 16},
		{10000, 18},
		{14999, 19},
		{15000, 20},
		{999999, 20},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.xp); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Starter"},
		{5, "Starter"},
		{6, "Traveler"},
		{10, "Traveler"},
		{11, "Explorer"},
		{15, "Explorer"},
		{16, "Pioneer"},
		{20, "Pioneer"},
	}

	for _, tt := range tests {
		if got := LevelName(tt.level); got != tt.want {
			t.Errorf("LevelName(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestXPForNextLevel(t *testing.T) {
	tests := []struct {
		xp       int
		needed   int
		intoLvl  int
	}{
		{0, 50, 0},
		{30, 20, 30},
		{50, 50, 0},
		{75, 25, 25},
		{15000, 0, 0},
		{16000, 0, 1000},
	}

	for _, tt := range tests {
		needed, into := XPForNextLevel(tt.xp)
		if needed != tt.needed || into != tt.intoLvl {
			t.Errorf("XPForNextLevel(%d) = (%d, %d), want (%d, %d)",
				tt.xp, needed, into, tt.needed, tt.intoLvl)
		}
	}
}
