package shell

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/tless/pkg/keyseq"
	"github.com/macropower/tless/pkg/viewport"
)

func (m *Model) Size() viewport.Size {
	return m.size()
}

func (m *Model) Render(frame string) {
	m.frame = frame
	m.framed = true
}

func (m *Model) Clear() {
	m.frame = ""
}

func (m *Model) Done() {
	m.framed = false
}

// Log appends text to the scrollback, dropping the oldest lines beyond the
// configured limit.
func (m *Model) Log(text string) {
	m.scrollback = append(m.scrollback, strings.Split(text, "\n")...)

	if over := len(m.scrollback) - m.cfg.Scrollback; over > 0 {
		m.scrollback = append([]string(nil), m.scrollback[over:]...)
	}
}

func (m *Model) SetDelimiter(delimiter string) {
	m.input.Prompt = delimiter
}

func (m *Model) SetInput(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}

func (m *Model) Submit(string) {
	m.input.SetValue("")
	m.promptActive = false
}

// Prompt opens the pager prompt. It becomes active on the next turn of the
// event loop.
func (m *Model) Prompt(message string) {
	m.input.Prompt = message
	m.input.SetValue("")
	m.promptActive = false

	m.queue(func() tea.Msg { return promptReadyMsg{} })
}

func (m *Model) PromptActive() bool {
	return m.promptActive
}

func (m *Model) Subscribe(fn func(ev keyseq.Event)) func() {
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn

	return func() {
		delete(m.subscribers, id)
	}
}

func (m *Model) AfterFunc(d time.Duration, fn func()) {
	m.queue(afterFunc(d, fn))
}
