// Package play is the screen of a game round: difficulty choice, resume
// prompt, the timed problems and the end of the round.
package play

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/profile"
	"github.com/abhisek/mathexplorer/internal/round"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screen"
	"github.com/abhisek/mathexplorer/internal/screens/summary"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/store"
	"github.com/abhisek/mathexplorer/internal/ui/components"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
)

// Pauses after an answer before the next problem.
const (
	correctPause = 1500 * time.Millisecond
	missPause    = 2 * time.Second
	victoryPause = 2 * time.Second
)

type phase int

const (
	phaseLoading phase = iota
	phaseResume
	phaseDifficulty
	phaseRound
	phaseQuitConfirm
	phaseError
)

// PlayScreen runs one round of a game.
type PlayScreen struct {
	sess  *session.Session
	kind  game.Kind
	phase phase

	difficulties components.Menu
	preset       game.Difficulty
	saved        *store.SavedRound

	round *round.State
	grid  components.OptionGrid

	// run and seq tag timer and feedback messages so stale ones are dropped.
	run int
	seq int

	unlocked []achievements.ID
	finished bool
	errMsg   string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.EscapeHandler = (*PlayScreen)(nil)

// New creates a PlayScreen for kind.
func New(sess *session.Session, kind game.Kind) *PlayScreen {
	s := &PlayScreen{sess: sess, kind: kind}

	var items []components.MenuItem
	for _, d := range game.AllDifficulties() {
		settings, _ := game.SettingsFor(d)
		items = append(items, components.MenuItem{
			Label:  difficultyLabel(d),
			Detail: fmt.Sprintf("%ds por pregunta", int(settings.TimeLimit.Seconds())),
			Action: func() tea.Cmd { return s.start(d) },
		})
	}
	s.difficulties = components.NewMenu(items)
	return s
}

// WithDifficulty skips the difficulty menu when there is no saved round
// to resume.
func (s *PlayScreen) WithDifficulty(d game.Difficulty) *PlayScreen {
	s.preset = d
	return s
}

func difficultyLabel(d game.Difficulty) string {
	switch d {
	case game.DifficultyEasy:
		return "🟢 Fácil"
	case game.DifficultyMedium:
		return "🟡 Medio"
	case game.DifficultyHard:
		return "🔴 Difícil"
	}
	return string(d)
}

func (s *PlayScreen) Init() tea.Cmd {
	rounds, kind, ctx := s.sess.Rounds, s.kind, s.sess.Context()
	return func() tea.Msg {
		saved, err := rounds.Load(ctx, kind)
		return savedLoadedMsg{Saved: saved, Err: err}
	}
}

func (s *PlayScreen) Title() string {
	return s.kind.Icon() + " " + s.kind.DisplayName()
}

// HandlesEscape keeps Esc inside the screen while a round is running so it
// asks before leaving.
func (s *PlayScreen) HandlesEscape() bool {
	return s.phase == phaseRound || s.phase == phaseQuitConfirm
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseResume:
		return []layout.KeyHint{
			{Key: "C", Description: "Continuar"},
			{Key: "N", Description: "Nueva partida"},
			{Key: "Esc", Description: "Volver"},
		}
	case phaseDifficulty:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Elegir"},
			{Key: "Enter", Description: "Jugar"},
			{Key: "Esc", Description: "Volver"},
		}
	case phaseRound:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Responder"},
			{Key: "←→ Enter", Description: "Elegir"},
			{Key: "Esc", Description: "Terminar"},
		}
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "S", Description: "Terminar partida"},
			{Key: "N", Description: "Seguir jugando"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Volver"}}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedLoadedMsg:
		return s, s.handleSaved(msg)

	case timerTickMsg:
		return s, s.handleTick(msg)

	case feedbackDoneMsg:
		return s, s.handleFeedbackDone(msg)

	case roundOverMsg:
		if msg.Run != s.run {
			return s, nil
		}
		return s, s.finish()

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleSaved(msg savedLoadedMsg) tea.Cmd {
	if s.phase != phaseLoading {
		return nil
	}
	if msg.Err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load saved round: %v\n", msg.Err)
	}
	if msg.Saved != nil {
		s.saved = msg.Saved
		s.phase = phaseResume
		return nil
	}
	s.phase = phaseDifficulty
	if s.preset != "" {
		return s.start(s.preset)
	}
	return nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch s.phase {
	case phaseError:
		return func() tea.Msg { return router.PopScreenMsg{} }

	case phaseResume:
		switch key {
		case "c", "C", "enter":
			return s.resume()
		case "n", "N":
			s.discardSaved()
			s.phase = phaseDifficulty
		}
		return nil

	case phaseDifficulty:
		var cmd tea.Cmd
		s.difficulties, cmd = s.difficulties.Update(msg)
		return cmd

	case phaseQuitConfirm:
		switch key {
		case "s", "S", "y", "Y":
			return s.finish()
		case "n", "N", "esc":
			s.phase = phaseRound
		}
		return nil

	case phaseRound:
		if key == "esc" {
			if !s.round.Over() {
				s.phase = phaseQuitConfirm
			}
			return nil
		}
		var choice int
		var picked bool
		s.grid, choice, picked = s.grid.Update(msg)
		if picked {
			return s.answer(choice)
		}
	}
	return nil
}

// start begins a fresh round at difficulty d.
func (s *PlayScreen) start(d game.Difficulty) tea.Cmd {
	r, err := round.Start(s.kind, d, s.sess.Generator)
	if err != nil {
		s.fail(err)
		return nil
	}
	return s.begin(r)
}

// resume continues the saved round.
func (s *PlayScreen) resume() tea.Cmd {
	r, err := round.Restore(*s.saved)
	s.saved = nil
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: saved round cannot be resumed: %v\n", err)
		s.discardSaved()
		s.phase = phaseDifficulty
		return nil
	}
	return s.begin(r)
}

func (s *PlayScreen) begin(r *round.State) tea.Cmd {
	s.round = r
	s.phase = phaseRound
	s.sess.Streak = r.Streak
	s.run++
	s.showProblem()
	return tick(s.run)
}

func (s *PlayScreen) showProblem() {
	s.seq++
	s.grid = components.NewOptionGrid(s.round.Options)
	s.save()
}

func (s *PlayScreen) answer(choice int) tea.Cmd {
	res, err := s.round.Answer(choice)
	if err != nil {
		return nil
	}
	s.grid.Reveal(res.Answer, choice)
	s.unlocked = nil

	if res.Correct {
		s.unlocked = s.sess.RecordStreak(res.Streak)
	} else {
		s.sess.Streak = 0
	}

	if res.Won {
		s.clearSaved()
		run := s.run
		return tea.Tick(victoryPause, func(time.Time) tea.Msg { return roundOverMsg{Run: run} })
	}

	s.save()
	pause := missPause
	if res.Correct {
		pause = correctPause
	}
	return feedbackAfter(pause, s.seq)
}

func (s *PlayScreen) handleTick(msg timerTickMsg) tea.Cmd {
	if msg.Run != s.run || s.round == nil || s.finished {
		return nil
	}
	if s.phase == phaseQuitConfirm {
		return tick(s.run)
	}
	if s.phase != phaseRound {
		return nil
	}

	if s.round.Tick() {
		s.sess.Streak = 0
		s.unlocked = nil
		s.grid.Reveal(s.round.Problem.Answer, -1)
		s.save()
		return tea.Batch(tick(s.run), feedbackAfter(missPause, s.seq))
	}
	if s.round.Phase == round.PhaseAnswering {
		s.save()
	}
	return tick(s.run)
}

func (s *PlayScreen) handleFeedbackDone(msg feedbackDoneMsg) tea.Cmd {
	if msg.Seq != s.seq || s.round == nil || s.round.Phase != round.PhaseFeedback || s.finished {
		return nil
	}
	if err := s.round.NextProblem(s.sess.Generator); err != nil {
		s.fail(err)
		return nil
	}
	s.showProblem()
	return nil
}

// finish ends the round, applies it to the profile and shows the summary.
func (s *PlayScreen) finish() tea.Cmd {
	if s.finished || s.round == nil {
		return nil
	}
	s.finished = true
	s.run++

	r := s.round
	outcome := r.End()
	s.clearSaved()

	progress, err := s.sess.FinishRound(profile.RoundInfo{
		ID:         r.ID,
		Difficulty: r.Difficulty,
		Outcome:    outcome,
	})

	result := summary.Result{
		Kind:       r.Kind,
		Difficulty: r.Difficulty,
		Score:      r.Score,
		Answered:   r.Answered,
		Correct:    r.Correct,
		BestStreak: r.BestStreak,
		Win:        outcome.Win,
		Progress:   progress,
		Err:        err,
	}
	sess, kind := s.sess, s.kind
	next := summary.New(result, func() screen.Screen { return New(sess, kind) })
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *PlayScreen) fail(err error) {
	s.phase = phaseError
	s.errMsg = err.Error()
	s.run++
}

// save persists the round so it can be resumed after leaving the app.
func (s *PlayScreen) save() {
	if s.round == nil || s.round.Over() || s.sess.Rounds == nil {
		return
	}
	if err := s.sess.Rounds.Save(s.sess.Context(), s.round.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save round: %v\n", err)
	}
}

func (s *PlayScreen) clearSaved() {
	if s.sess.Rounds == nil {
		return
	}
	if err := s.sess.Rounds.Clear(s.sess.Context(), s.kind); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to clear saved round: %v\n", err)
	}
}

func (s *PlayScreen) discardSaved() {
	s.saved = nil
	s.clearSaved()
}

func tick(run int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{Run: run, At: t}
	})
}

func feedbackAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return feedbackDoneMsg{Seq: seq}
	})
}
