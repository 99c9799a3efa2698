package player

import (
	"errors"
	"testing"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
)

func TestNew(t *testing.T) {
	s := New("Ana")
	if s.Level != 1 || s.Points != 0 || s.Progress != 0 {
		t.Errorf("New = %+v", s)
	}
	if s.AvatarSeed != "Ana" {
		t.Errorf("AvatarSeed = %q", s.AvatarSeed)
	}
	if len(s.Achievements) != len(achievements.AllIDs()) {
		t.Errorf("achievements = %d entries", len(s.Achievements))
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points, level, progress int
	}{
		{0, 1, 0},
		{85, 1, 85},
		{99, 1, 99},
		{100, 2, 0},
		{105, 2, 5},
		{250, 3, 50},
	}
	for _, tc := range tests {
		if got := LevelFor(tc.points); got != tc.level {
			t.Errorf("LevelFor(%d) = %d, want %d", tc.points, got, tc.level)
		}
		if got := ProgressFor(tc.points); got != tc.progress {
			t.Errorf("ProgressFor(%d) = %d, want %d", tc.points, got, tc.progress)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State)
	}{
		{"empty name", func(s *State) { s.Name = "" }},
		{"negative points", func(s *State) { s.Points = -1 }},
		{"games drift", func(s *State) { s.GamesPlayed = 3 }},
		{"negative wins", func(s *State) { s.Wins = -1; s.GamesPlayed = -1 }},
		{"level drift", func(s *State) { s.Level = 4 }},
		{"progress drift", func(s *State) { s.Points = 30 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New("Ana")
			tc.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidState) {
				t.Errorf("Validate = %v, want ErrInvalidState", err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	s := State{
		Name:          "Leo",
		Points:        130,
		Level:         9,
		Wins:          2,
		Losses:        1,
		ChallengeGame: game.Kind("NOPE"),
	}
	if !s.Normalize() {
		t.Fatal("Normalize reported no change")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate after Normalize: %v", err)
	}
	if s.Level != 2 || s.Progress != 30 || s.GamesPlayed != 3 {
		t.Errorf("normalized = %+v", s)
	}
	if s.ChallengeGame != "" {
		t.Errorf("invalid challenge kept: %q", s.ChallengeGame)
	}
	if s.Normalize() {
		t.Error("second Normalize reported a change")
	}
}

func TestClone_DeepCopiesAchievements(t *testing.T) {
	s := New("Ana")
	c := s.Clone()
	c.Achievements.Advance(achievements.SumaWins1, 1)
	if s.Achievements[achievements.SumaWins1].Unlocked {
		t.Error("Clone shares the achievements map")
	}
}

func TestWinRate(t *testing.T) {
	s := New("Ana")
	if s.WinRate() != 0 {
		t.Errorf("WinRate with no games = %d", s.WinRate())
	}
	s.Wins, s.Losses, s.GamesPlayed = 3, 1, 4
	if s.WinRate() != 75 {
		t.Errorf("WinRate = %d, want 75", s.WinRate())
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  Ana ", "Ana", false},
		{"Señorita Número", "Señorita Número", false},
		{"   ", "", true},
		{"abcdefghijklmnop", "", true},
		{"ñññññññññññññññ", "ñññññññññññññññ", false},
	}
	for _, tt := range tests {
		got, err := CleanName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("CleanName(%q) err = %v", tt.in, err)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidName) {
			t.Errorf("CleanName(%q) err = %v, want ErrInvalidName", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
