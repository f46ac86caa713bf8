// Package session runs one pager lifecycle on top of a [Host]: it accumulates
// fed content, renders the clipped viewport, forwards keypresses to the
// [pager.Machine] and performs the quit handshake with the host prompt.
package session

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/macropower/tless/pkg/keyseq"
	"github.com/macropower/tless/pkg/pager"
	"github.com/macropower/tless/pkg/theme"
	"github.com/macropower/tless/pkg/version"
	"github.com/macropower/tless/pkg/viewport"
)

// DefaultPollInterval is how often the quit handshake checks for an active
// host prompt.
const DefaultPollInterval = 10 * time.Millisecond

// Session is a single pager lifecycle. It is not safe for concurrent use;
// the host serializes every call on its event loop.
type Session struct {
	host    Host
	theme   *theme.Theme
	logger  *slog.Logger
	machine *pager.Machine
	keymap  pager.Keymap
	detach  func()
	done    chan struct{}

	version string
	lines   []string
	help    []string

	pollInterval time.Duration
	size         int
	once         sync.Once

	quitIfOneScreen bool
	helpOnly        bool
	prompted        bool
	hasQuit         bool
}

// Option configures a [Session].
type Option func(s *Session)

// WithTheme sets the styles used for status banners.
func WithTheme(t *theme.Theme) Option {
	return func(s *Session) {
		s.theme = t
	}
}

// WithQuitIfOneScreen makes the session print content that fits one screen
// straight to the host and end without paging.
func WithQuitIfOneScreen(quit bool) Option {
	return func(s *Session) {
		s.quitIfOneScreen = quit
	}
}

// WithHelpOnly opens the session on the help text.
func WithHelpOnly(helpOnly bool) Option {
	return func(s *Session) {
		s.helpOnly = helpOnly
	}
}

// WithPollInterval sets the interval of the quit handshake.
func WithPollInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithVersion sets the version shown by the version banner.
func WithVersion(v string) Option {
	return func(s *Session) {
		s.version = v
	}
}

// WithKeymap replaces the default less keybindings.
func WithKeymap(km pager.Keymap) Option {
	return func(s *Session) {
		s.keymap = km
	}
}

// WithLogger sets the logger for session lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates a session and subscribes it to the host's keypresses.
func New(host Host, opts ...Option) *Session {
	s := &Session{
		host:         host,
		theme:        theme.Default,
		logger:       slog.Default(),
		keymap:       pager.DefaultKeymap(),
		version:      version.GetVersion(),
		pollInterval: DefaultPollInterval,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.machine = pager.New(pager.WithKeymap(s.keymap), pager.WithHelpOnly(s.helpOnly))
	s.help = viewport.Split(pager.HelpText(s.keymap))
	s.detach = host.Subscribe(s.OnKeypress)

	s.logger.Debug("open pager",
		slog.Bool("quit_if_one_screen", s.quitIfOneScreen),
		slog.Bool("help_only", s.helpOnly),
	)

	return s
}

// Done is closed once the session has completed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// HasQuit reports whether quit was requested. Completion may be pending on
// the host prompt, see [Session.Done].
func (s *Session) HasQuit() bool {
	return s.hasQuit
}

// Interactive reports whether the session opened a pager prompt. A session
// that printed its content straight to the host never does.
func (s *Session) Interactive() bool {
	return s.prompted
}

// QuitIfOneScreen reports whether the session was opened with -F.
func (s *Session) QuitIfOneScreen() bool {
	return s.quitIfOneScreen
}

// State is a snapshot of the pager state.
type State struct {
	Mode    pager.Mode
	Content pager.Cursor
	Help    pager.Cursor
	Pending string
	Lines   int
}

// State returns a snapshot of the pager state.
func (s *Session) State() State {
	return State{
		Mode:    s.machine.Mode(),
		Content: s.machine.Content(),
		Help:    s.machine.Help(),
		Pending: s.machine.Pending(),
		Lines:   len(s.lines),
	}
}

// Feed appends a chunk of content as one or more lines and redraws. Once the
// session has quit, Feed does nothing.
func (s *Session) Feed(chunk string) {
	if s.hasQuit {
		return
	}

	s.lines = append(s.lines, strings.Split(chunk, "\n")...)
	s.size += len(chunk) + 1

	if s.quitIfOneScreen && s.machine.Mode() == pager.ModeContent &&
		viewport.New(len(s.lines), s.host.Size()).FitsOneScreen() {
		s.logger.Debug("content fits one screen",
			slog.Int("lines", len(s.lines)),
			slog.String("size", humanize.Bytes(uint64(s.size))), //nolint:gosec // Positive.
		)
		s.host.Log(strings.Join(s.lines, "\n"))
		s.quit(false)

		return
	}

	frame := s.prepare()
	if !s.prompted {
		s.prompt()
	}

	s.host.Render(frame)
}

// OnKeypress runs one key through the pager and redraws.
func (s *Session) OnKeypress(ev keyseq.Event) {
	if s.hasQuit {
		return
	}

	// An undecodable event yields the zero token, which is a no-op step.
	tok, _ := keyseq.Decode(ev)

	s.step(tok)
}

// Redraw renders the frame and status line again for the current host size.
// It does nothing before the first interactive frame or after quit.
func (s *Session) Redraw() {
	if s.hasQuit || !s.prompted {
		return
	}

	s.step(keyseq.Token{})
}

func (s *Session) step(tok keyseq.Token) {
	res := s.machine.Step(tok, s.layout())
	if res.Quit {
		s.quit(true)
		return
	}

	s.host.SetDelimiter(res.Label.Render(s.theme, s.version, s.host.Size().Columns))
	s.host.Render(s.prepare())
	s.host.SetInput(res.Echo)
}

// Quit ends the session. Calling it more than once has no further effect.
func (s *Session) Quit() {
	s.quit(true)
}

func (s *Session) buffer() []string {
	if s.machine.Mode() == pager.ModeHelp {
		return s.help
	}

	return s.lines
}

func (s *Session) layout() pager.Layout {
	size := s.host.Size()

	return pager.Layout{
		Content: viewport.New(len(s.lines), size),
		Help:    viewport.New(len(s.help), size),
	}
}

// prepare returns the frame for the current mode and cursor.
func (s *Session) prepare() string {
	lines := s.buffer()
	g := viewport.New(len(lines), s.host.Size())
	cur := s.machine.Cursor()

	window := viewport.Window(lines, cur.Row, cur.Col, g)
	if !s.quitIfOneScreen {
		window = viewport.Pad(window, g.Height)
	}

	return strings.Join(window, "\n")
}

func (s *Session) prompt() {
	s.prompted = true
	s.host.Prompt(pager.LabelPrompt.Text(s.version))
}

func (s *Session) quit(redraw bool) {
	if s.hasQuit {
		return
	}

	s.hasQuit = true

	s.logger.Debug("quit pager",
		slog.Bool("redraw", redraw),
		slog.Int("lines", len(s.lines)),
		slog.String("size", humanize.Bytes(uint64(s.size))), //nolint:gosec // Positive.
	)

	// Nothing was drawn interactively, so there is no prompt to wait for.
	if !redraw || !s.prompted {
		s.end(false)
		return
	}

	s.wait()
}

// wait polls until the host has registered its prompt, then ends the session.
func (s *Session) wait() {
	if !s.host.PromptActive() {
		s.host.AfterFunc(s.pollInterval, s.wait)
		return
	}

	s.end(true)
}

func (s *Session) end(redraw bool) {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}

	if redraw {
		s.host.Submit("")
		s.host.Clear()
		s.host.Done()
	}

	s.once.Do(func() {
		s.logger.Debug("pager done")
		close(s.done)
	})
}
