// Package pager implements the less-style viewport state machine: cursor
// tracking, key binding resolution with repeat factors, bottom clamping, mode
// switching between content and help, and the status label.
package pager

import (
	"log/slog"
	"strings"

	"github.com/macropower/tless/pkg/keyseq"
	"github.com/macropower/tless/pkg/viewport"
)

// maxPercent caps the repeat factor of the percent motion.
const maxPercent = 100

// Mode selects which buffer is windowed.
type Mode int

const (
	ModeContent Mode = iota
	ModeHelp
)

func (m Mode) String() string {
	if m == ModeHelp {
		return "help"
	}

	return "content"
}

// Cursor is a scroll offset.
type Cursor struct {
	Row int
	Col int
}

// Layout is the geometry of both buffers for the current terminal size.
type Layout struct {
	Content viewport.Geometry
	Help    viewport.Geometry
}

// For returns the geometry of the buffer shown in the given mode.
func (l Layout) For(m Mode) viewport.Geometry {
	if m == ModeHelp {
		return l.Help
	}

	return l.Content
}

// Result describes the outcome of one [Machine.Step].
type Result struct {
	// Action is the resolved action, [ActionNone] when nothing matched.
	Action Action
	// Label is the status label for the next prompt line.
	Label Label
	// Echo is the text to show on the input line.
	Echo string
	// Matched is false when the key was kept in the pending sequence.
	Matched bool
	// Stop is false when the motion was allowed past the bottom.
	Stop bool
	// Quit is set on the transition into the terminal state.
	Quit bool
}

// Machine is the pager state. The zero value is not usable, see [New].
type Machine struct {
	keymap  Keymap
	content Cursor
	help    Cursor
	pending string
	mode    Mode

	helpOnly bool
	quit     bool
}

// Option configures a [Machine].
type Option func(m *Machine)

// WithHelpOnly starts the machine in help mode. Leaving help mode then quits.
func WithHelpOnly(helpOnly bool) Option {
	return func(m *Machine) {
		m.helpOnly = helpOnly
		if helpOnly {
			m.mode = ModeHelp
		}
	}
}

// WithKeymap replaces the default keymap.
func WithKeymap(km Keymap) Option {
	return func(m *Machine) {
		m.keymap = km
	}
}

// New creates a machine in content mode with both cursors at the top.
func New(opts ...Option) *Machine {
	m := &Machine{keymap: DefaultKeymap()}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Mode returns the mode of the buffer being shown.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Pending returns the keys collected since the last match.
func (m *Machine) Pending() string {
	return m.pending
}

// Quit reports whether the machine reached its terminal state.
func (m *Machine) Quit() bool {
	return m.quit
}

// Content returns the content cursor, regardless of mode.
func (m *Machine) Content() Cursor {
	return m.content
}

// Help returns the help cursor, regardless of mode.
func (m *Machine) Help() Cursor {
	return m.help
}

// Cursor returns the cursor of the current mode.
func (m *Machine) Cursor() Cursor {
	return *m.cursor()
}

func (m *Machine) cursor() *Cursor {
	if m.mode == ModeHelp {
		return &m.help
	}

	return &m.content
}

// SetCursor moves the cursor of the current mode without clamping.
func (m *Machine) SetCursor(c Cursor) {
	*m.cursor() = c
}

// Step consumes one decoded key. A zero token is treated as no recognized
// key and leaves the state untouched. Once the machine has quit every step is
// a no-op.
func (m *Machine) Step(tok keyseq.Token, l Layout) Result {
	if m.quit {
		return Result{Action: ActionQuit, Quit: true}
	}

	if tok.IsZero() {
		return Result{Label: m.label(l, false), Echo: m.echo(l), Stop: true}
	}

	g := l.For(m.mode)
	bottom := g.Bottom()
	seq := m.pending + tok.Value
	factor, suffix := keyseq.Split(seq)

	cur := m.cursor()
	row, col := cur.Row, cur.Col
	startedPastBottom := row > bottom

	action, matched := m.keymap.Resolve(tok.Value, suffix, tok.Mods)
	res := Result{Action: action, Matched: matched, Stop: true}

	switch action {
	case ActionForwardPastEnd:
		row += scale(g.Height, factor)
		res.Stop = false

	case ActionLineUp:
		row -= scale(1, factor)

	case ActionLineDown:
		row += scale(1, factor)

	case ActionLeft:
		col -= scale(g.Width/2, factor)

	case ActionRight:
		col += scale(g.Width/2, factor)

	case ActionPageUp:
		row -= scale(g.Height, factor)

	case ActionPageDown:
		row += scale(g.Height, factor)

	case ActionHalfPageUp:
		row -= scale(g.Height/2, factor)

	case ActionHalfPageDown:
		row += scale(g.Height/2, factor)

	case ActionTop:
		row = 0

	case ActionPercent:
		pct := min(factor, maxPercent)
		if pct == 1 {
			row = 0
		} else {
			row = g.Lines * pct / maxPercent
		}

	case ActionBottom:
		row = bottom

	case ActionHelp:
		m.mode = ModeHelp

	case ActionQuit:
		if m.mode != ModeHelp || m.helpOnly {
			m.pending = ""
			m.quit = true
			res.Quit = true

			slog.Debug("pager quit", slog.String("mode", m.mode.String()))

			return res
		}

		m.mode = ModeContent

	case ActionVersion, ActionIgnore, ActionNone:
	}

	if matched {
		m.pending = ""
	} else {
		m.pending = seq
	}

	col = max(col, 0)
	row = max(row, 0)
	if res.Stop && !startedPastBottom {
		row = min(row, bottom)
	}

	cur.Row, cur.Col = row, col

	res.Label = m.label(l, action == ActionVersion)
	res.Echo = m.echo(l)

	return res
}

// scale returns n*factor, saturating at [keyseq.MaxFactor] so that a cursor
// moved by it never overflows.
func scale(n, factor int) int {
	if n <= 0 || factor <= 0 {
		return 0
	}
	if n > keyseq.MaxFactor/factor {
		return keyseq.MaxFactor
	}

	return n * factor
}

// label computes the status label for the current state.
func (m *Machine) label(l Layout, version bool) Label {
	atBottom := m.cursor().Row >= l.For(m.mode).Bottom()

	switch {
	case version:
		return LabelVersion
	case atBottom && m.mode == ModeHelp:
		return LabelHelpEnd
	case atBottom:
		return LabelEnd
	case m.mode == ModeHelp:
		return LabelHelpMore
	case strings.TrimSpace(m.pending) != "":
		return LabelPending
	default:
		return LabelPrompt
	}
}

// echo returns the pending sequence while it is being collected in the
// middle of the content, and nothing otherwise.
func (m *Machine) echo(l Layout) string {
	if m.mode == ModeContent && m.content.Row < l.Content.Bottom() {
		return m.pending
	}

	return ""
}
