// Package shell is the interactive host of the pager: a Bubble Tea program
// with a scrollback, a prompt line and a handful of built-in commands whose
// output can be piped into less.
package shell

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/tless/pkg/command"
	"github.com/macropower/tless/pkg/config"
	"github.com/macropower/tless/pkg/keyseq"
	"github.com/macropower/tless/pkg/session"
	"github.com/macropower/tless/pkg/source"
	"github.com/macropower/tless/pkg/theme"
	"github.com/macropower/tless/pkg/version"
	"github.com/macropower/tless/pkg/viewport"
)

// Fallback terminal size, used until the first window size message.
const (
	defaultRows    = 24
	defaultColumns = 80
)

type (
	chunkMsg struct {
		chunk string
		id    int
	}
	producerDoneMsg struct {
		err error
		id  int
	}
	callbackMsg    struct{ fn func() }
	promptReadyMsg struct{}
	startupMsg     struct{}
)

// job is one executed command line.
type job struct {
	chunks chan string
	errc   chan error
	cancel context.CancelFunc
	less   *command.Less
	id     int
	ended  bool
}

// Model is the shell. It implements [tea.Model] and [session.Host]; every
// host method is called from within Update.
type Model struct {
	cfg     *config.Config
	theme   *theme.Theme
	logger  *slog.Logger
	job     *job
	startup *startup

	subscribers map[int]func(ev keyseq.Event)
	input       textinput.Model
	version     string
	frame       string
	scrollback  []string
	queued      []tea.Cmd

	width   int
	height  int
	nextJob int
	nextSub int

	framed       bool
	promptActive bool
	started      bool
	exiting      bool
}

type startup struct {
	producer source.Producer
	args     command.Args
}

// Option configures a [Model].
type Option func(m *Model)

// WithConfig sets the shell settings.
func WithConfig(cfg *config.Config) Option {
	return func(m *Model) {
		m.cfg = cfg
	}
}

// WithTheme sets the styles of the prompt, errors and pager banners.
func WithTheme(t *theme.Theme) Option {
	return func(m *Model) {
		m.theme = t
	}
}

// WithVersion sets the version shown by the pager's version banner.
func WithVersion(v string) Option {
	return func(m *Model) {
		m.version = v
	}
}

// WithLogger sets the logger passed on to every pager session.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithStartup opens less on the content of p as soon as the terminal size is
// known.
func WithStartup(args command.Args, p source.Producer) Option {
	return func(m *Model) {
		m.startup = &startup{args: args, producer: p}
	}
}

// New creates an idle shell.
func New(opts ...Option) *Model {
	m := &Model{
		cfg:         config.NewConfig(),
		theme:       theme.Default,
		logger:      slog.Default(),
		version:     version.GetVersion(),
		subscribers: map[int]func(ev keyseq.Event){},
	}
	for _, opt := range opts {
		opt(m)
	}

	m.input = textinput.New()
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m.input.Focus()
	m.restorePrompt()

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

//nolint:ireturn // Must satisfy [tea.Model].
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(0, msg.Width-1)

		if !m.started {
			m.started = true

			cmds = append(cmds, func() tea.Msg { return startupMsg{} })
		}

		if m.job != nil && m.job.less != nil {
			m.job.less.Redraw()
		}

	case startupMsg:
		if m.startup != nil && m.job == nil {
			m.open(m.startup.args, m.startup.producer)
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case chunkMsg:
		j := m.job
		if j == nil || j.id != msg.id {
			break
		}

		if j.less != nil {
			j.less.Route(msg.chunk)
		} else {
			m.Log(msg.chunk)
		}

		cmds = append(cmds, listen(j))

	case producerDoneMsg:
		j := m.job
		if j == nil || j.id != msg.id {
			break
		}

		j.ended = true
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.Log(m.theme.Error(msg.err.Error()))
		}

	case promptReadyMsg:
		m.promptActive = true

	case callbackMsg:
		msg.fn()
	}

	m.settle()

	if m.exiting && m.job == nil {
		cmds = append(cmds, tea.Quit)
	}

	cmds = append(cmds, m.queued...)
	m.queued = nil

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.interrupt()
		return nil
	}

	if len(m.subscribers) > 0 {
		for _, ev := range keyEvents(msg) {
			for _, id := range m.subscriberIDs() {
				if fn, ok := m.subscribers[id]; ok {
					fn(ev)
				}
			}
		}

		return nil
	}

	if m.job != nil {
		// Exit once the running command is done.
		if msg.Type == tea.KeyCtrlD {
			m.exiting = true
		}

		return nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		line := m.input.Value()
		m.input.SetValue("")
		m.Log(m.theme.Subtle(m.cfg.Prompt + line))
		m.execute(line)

		return nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.exiting = true
			return nil
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return cmd
}

// interrupt clears the input line, or cancels the running command.
func (m *Model) interrupt() {
	j := m.job
	if j == nil {
		m.input.SetValue("")
		return
	}

	m.logger.Debug("interrupt", slog.Int("job", j.id))

	if j.less != nil {
		j.less.Quit()
	}

	if j.cancel != nil {
		j.cancel()
	}

	j.ended = true
}

// subscriberIDs returns the subscriber ids in registration order.
func (m *Model) subscriberIDs() []int {
	ids := make([]int, 0, len(m.subscribers))
	for id := range m.nextSub {
		if _, ok := m.subscribers[id]; ok {
			ids = append(ids, id)
		}
	}

	return ids
}

// settle finishes the running job once nothing can produce output for it
// any more.
func (m *Model) settle() {
	j := m.job
	if j == nil {
		return
	}

	if j.less != nil && j.less.Session() != nil {
		select {
		case <-j.less.Done():
		default:
			// The pager is open.
			return
		}

		if j.less.Streaming() && !j.ended {
			return
		}
	} else if !j.ended {
		return
	}

	if j.cancel != nil {
		j.cancel()
	}

	m.logger.Debug("job done", slog.Int("job", j.id))

	m.job = nil
	m.framed = false
	m.frame = ""
	m.restorePrompt()
}

func (m *Model) restorePrompt() {
	m.input.Prompt = m.theme.Prompt(m.cfg.Prompt)
	m.input.SetValue("")
	m.promptActive = true
}

// open starts a job running producer, optionally into less.
func (m *Model) open(args command.Args, producer source.Producer) {
	m.start(producer, command.NewLess(m, args,
		session.WithTheme(m.theme),
		session.WithPollInterval(m.cfg.PollInterval),
		session.WithVersion(m.version),
		session.WithLogger(m.logger),
	))
}

// start runs producer in the background. With a nil less its chunks are
// printed to the scrollback.
func (m *Model) start(producer source.Producer, less *command.Less) {
	ctx, cancel := context.WithCancel(context.Background())

	m.nextJob++
	j := &job{
		id:     m.nextJob,
		less:   less,
		chunks: make(chan string),
		errc:   make(chan error, 1),
		cancel: cancel,
	}
	m.job = j
	m.promptActive = false
	m.input.Prompt = ""

	m.logger.Debug("start job", slog.Int("job", j.id), slog.Bool("pager", less != nil))

	if less != nil && less.Start() {
		// Help needs no content.
		producer = nil
	}

	if producer == nil {
		j.ended = true
		return
	}

	go func() {
		j.errc <- producer.Stream(ctx, j.chunks)
	}()

	m.queue(listen(j))
}

// listen waits for the next chunk of j, or for its producer to finish.
// Producers only return once every chunk they sent was received.
func listen(j *job) tea.Cmd {
	return func() tea.Msg {
		select {
		case chunk := <-j.chunks:
			return chunkMsg{id: j.id, chunk: chunk}
		case err := <-j.errc:
			return producerDoneMsg{id: j.id, err: err}
		}
	}
}

func (m *Model) queue(cmd tea.Cmd) {
	m.queued = append(m.queued, cmd)
}

func (m *Model) View() string {
	rows := m.Size().Rows - 1

	var body []string
	if m.framed {
		body = strings.Split(m.frame, "\n")
	} else {
		body = m.scrollback[max(0, len(m.scrollback)-rows):]
	}

	var b strings.Builder
	for _, line := range body {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(m.input.View())

	return b.String()
}

// Scrollback returns the lines printed so far.
func (m *Model) Scrollback() []string {
	return m.scrollback
}

// Paging reports whether a pager frame is shown.
func (m *Model) Paging() bool {
	return m.framed
}

// Running reports whether a command is running.
func (m *Model) Running() bool {
	return m.job != nil
}

// afterFunc is the scheduling primitive behind [Model.AfterFunc].
func afterFunc(d time.Duration, fn func()) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return callbackMsg{fn: fn}
	})
}

var _ session.Host = (*Model)(nil)

// size returns the terminal size, falling back to 80x24.
func (m *Model) size() viewport.Size {
	s := viewport.Size{Rows: m.height, Columns: m.width}
	if s.Rows <= 0 {
		s.Rows = defaultRows
	}
	if s.Columns <= 0 {
		s.Columns = defaultColumns
	}

	return s
}
