package play

import (
	"time"

	"github.com/abhisek/mathexplorer/internal/store"
)

// savedLoadedMsg carries the saved round found for the game, if any.
type savedLoadedMsg struct {
	Saved *store.SavedRound
	Err   error
}

// timerTickMsg is sent every second while a round runs. Run identifies the
// round run so ticks from an earlier run are dropped.
type timerTickMsg struct {
	Run int
	At  time.Time
}

// feedbackDoneMsg ends the feedback pause after problem Seq.
type feedbackDoneMsg struct {
	Seq int
}

// roundOverMsg ends a won round after the victory pause.
type roundOverMsg struct {
	Run int
}
