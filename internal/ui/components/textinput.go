package components

import (
	"strconv"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the game's styling and a rune
// counter.
type TextInput struct {
	Model    textinput.Model
	MaxRunes int
	errMsg   string
}

// NewTextInput creates a focused text input limited to maxRunes characters.
func NewTextInput(placeholder string, maxRunes int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "▸ "
	ti.Focus()

	if maxRunes > 0 {
		ti.CharLimit = maxRunes
	}

	return TextInput{
		Model:    ti,
		MaxRunes: maxRunes,
	}
}

// Init returns the cursor blink command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards msg to the wrapped input. Typing clears the error.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.errMsg = ""
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input, its counter and the current error.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.MaxRunes > 0 {
		n := utf8.RuneCountInString(t.Model.Value())
		view += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(strconv.Itoa(n)+"/"+strconv.Itoa(t.MaxRunes))
	}
	if t.errMsg != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.errMsg)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetError shows msg under the input until the next key press.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}

// Err returns the error currently shown.
func (t TextInput) Err() string {
	return t.errMsg
}
