package uitest

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout bounds every wait in the helpers below.
const DefaultTimeout = 3 * time.Second

// NewTestModel starts m in a test program with the given terminal size.
func NewTestModel(tb testing.TB, m tea.Model, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(tb, m, teatest.WithInitialTermSize(size.Width, size.Height))
}

// WaitForText waits until the program output contains all of the given
// strings.
func WaitForText(tb testing.TB, r io.Reader, texts ...string) {
	tb.Helper()

	teatest.WaitFor(tb, r, func(b []byte) bool {
		for _, text := range texts {
			if !bytes.Contains(b, []byte(text)) {
				return false
			}
		}

		return true
	}, teatest.WithDuration(DefaultTimeout), teatest.WithCheckInterval(5*time.Millisecond))
}

// Type sends each rune of s as a key press.
func Type(tm *teatest.TestModel, s string) {
	for _, r := range s {
		if r == ' ' {
			tm.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}

		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Enter sends the enter key.
func Enter(tm *teatest.TestModel) {
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

// FinalModel waits for the program to exit and returns its last model.
func FinalModel(tb testing.TB, tm *teatest.TestModel) tea.Model { //nolint:ireturn // Returns the model under test.
	tb.Helper()

	return tm.FinalModel(tb, teatest.WithFinalTimeout(DefaultTimeout))
}
