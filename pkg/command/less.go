// Package command binds the pager to the shell as the less command: it
// parses the command's flags and routes the content of one invocation into
// a pager session.
package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/macropower/tless/pkg/session"
)

// Name is the command name.
const Name = "less"

var ErrMissingFilename = errors.New(`missing filename ("less --help" for help)`)

// Args are the parsed arguments of one less invocation.
type Args struct {
	Files           []string
	QuitIfOneScreen bool
	Help            bool
}

// ParseArgs parses less arguments. The defaults are used for flags that are
// not given.
func ParseArgs(args []string, defaults Args) (Args, error) {
	flags := pflag.NewFlagSet(Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	a := defaults
	flags.BoolVarP(&a.QuitIfOneScreen, "quit-if-one-screen", "F", defaults.QuitIfOneScreen,
		"quit if the entire content fits on the first screen")
	flags.BoolVarP(&a.Help, "help", "?", false, "display the pager help")

	err := flags.Parse(args)
	if err != nil {
		return Args{}, fmt.Errorf("%s: %w", Name, err)
	}

	a.Files = flags.Args()

	return a, nil
}

// Less is one invocation of the less command. Content chunks are routed to
// a pager session that is opened on the first chunk. It is not safe for
// concurrent use.
type Less struct {
	host    session.Host
	session *session.Session
	logger  *slog.Logger
	opts    []session.Option
	args    Args
}

// NewLess prepares an invocation. No session is opened until content
// arrives, see [Less.Route] and [Less.Start].
func NewLess(host session.Host, args Args, opts ...session.Option) *Less {
	return &Less{
		host:   host,
		args:   args,
		logger: slog.Default(),
		opts:   opts,
	}
}

// Args returns the parsed arguments of the invocation.
func (l *Less) Args() Args {
	return l.args
}

// Start opens the session right away for invocations that need no content.
// It reports whether it did.
func (l *Less) Start() bool {
	if !l.args.Help || l.session != nil {
		return false
	}

	l.Route("")

	return true
}

// Route delivers one chunk of content. Once the session has quit, chunks
// are printed to the host when the session dumped its content with -F, and
// dropped otherwise.
func (l *Less) Route(chunk string) {
	if l.session == nil {
		opts := append([]session.Option{
			session.WithQuitIfOneScreen(l.args.QuitIfOneScreen),
			session.WithHelpOnly(l.args.Help),
		}, l.opts...)

		l.session = session.New(l.host, opts...)

		l.session.Feed(chunk)

		return
	}

	if l.session.HasQuit() {
		if l.Streaming() && chunk != "" {
			l.host.Log(chunk)
		} else {
			l.logger.Debug("drop chunk after quit", slog.Int("bytes", len(chunk)))
		}

		return
	}

	l.session.Feed(chunk)
}

// Done is closed when the session has completed. It is nil until the
// session is opened.
func (l *Less) Done() <-chan struct{} {
	if l.session == nil {
		return nil
	}

	return l.session.Done()
}

// Streaming reports whether the invocation keeps printing content after its
// session ended: content that fit one screen was printed with -F, and any
// later chunks follow it.
func (l *Less) Streaming() bool {
	return l.session != nil && l.session.HasQuit() && l.args.QuitIfOneScreen && !l.session.Interactive()
}

// Quit ends the session, if there is one.
func (l *Less) Quit() {
	if l.session != nil {
		l.session.Quit()
	}
}

// Redraw redraws the open session, e.g. after a terminal resize.
func (l *Less) Redraw() {
	if l.session != nil {
		l.session.Redraw()
	}
}

// Session returns the open session, or nil.
func (l *Less) Session() *session.Session {
	return l.session
}
