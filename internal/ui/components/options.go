package components

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

// OptionGrid shows the answer options of a problem as a row of cards.
// Options are chosen with the number keys or with the arrows and enter.
type OptionGrid struct {
	Options []int
	Focused int

	// Revealed switches the grid to feedback mode: Answer is highlighted
	// and Chosen, when wrong, is marked.
	Revealed bool
	Answer   int
	Chosen   int
}

// NewOptionGrid creates a grid for options.
func NewOptionGrid(options []int) OptionGrid {
	return OptionGrid{Options: options, Chosen: -1}
}

// Update moves the focus. It reports the chosen option value and true when
// the player picked one.
func (g OptionGrid) Update(msg tea.Msg) (OptionGrid, int, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || g.Revealed || len(g.Options) == 0 {
		return g, 0, false
	}

	key := kmsg.String()
	switch key {
	case "left", "h", "up", "k":
		if g.Focused > 0 {
			g.Focused--
		}
	case "right", "l", "down", "j", "tab":
		if g.Focused < len(g.Options)-1 {
			g.Focused++
		}
	case "enter", "space":
		return g, g.Options[g.Focused], true
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(g.Options) {
			g.Focused = n - 1
			return g, g.Options[n-1], true
		}
	}
	return g, 0, false
}

// Reveal enters feedback mode. chosen is -1 after a timeout.
func (g *OptionGrid) Reveal(answer, chosen int) {
	g.Revealed = true
	g.Answer = answer
	g.Chosen = chosen
}

// View renders the options side by side, each labelled with its key.
func (g OptionGrid) View() string {
	cards := make([]string, 0, len(g.Options))
	for i, opt := range g.Options {
		style := theme.OptionIdle
		switch {
		case g.Revealed && opt == g.Answer:
			style = theme.OptionCorrect
		case g.Revealed && opt == g.Chosen:
			style = theme.OptionWrong
		case !g.Revealed && i == g.Focused:
			style = theme.OptionFocused
		}
		label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strconv.Itoa(i+1)) +
			"  " + strconv.Itoa(opt)
		cards = append(cards, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
