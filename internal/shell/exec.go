package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/pflag"

	"github.com/macropower/tless/pkg/command"
	"github.com/macropower/tless/pkg/source"
)

var (
	ErrNotFound     = errors.New("command not found")
	ErrPipeline     = errors.New("only one pipe is supported")
	ErrNotAPager    = errors.New("only less can read from a pipe")
	ErrPipeToPager  = errors.New("less cannot be piped")
	ErrMissingFiles = errors.New("missing file operand")
	ErrOperator     = errors.New("unsupported operator")
)

// builtins lists the usage of every builtin, in help order.
var builtins = []string{
	"less [-F|--quit-if-one-screen] [-?|--help] [FILE...]",
	"cat FILE...",
	"echo [WORD...]",
	"seq [FIRST] LAST",
	"tail [-f] [-n N] FILE",
	"help",
	"clear",
	"exit, quit",
}

// stage is one command of a pipeline.
type stage []string

func (s stage) name() string {
	if len(s) == 0 {
		return ""
	}

	return s[0]
}

// split parses a command line into at most two stages joined by a pipe.
func split(line string) ([]stage, error) {
	var stages []stage

	rest := line
	for {
		p := shellwords.NewParser()

		args, err := p.Parse(rest)
		if err != nil {
			return nil, fmt.Errorf("parse command line: %w", err)
		}

		stages = append(stages, args)

		if p.Position < 0 {
			break
		}

		runes := []rune(rest)
		if op := runes[p.Position]; op != '|' {
			return nil, fmt.Errorf("%w: %q", ErrOperator, op)
		}

		rest = string(runes[p.Position+1:])
	}

	switch {
	case len(stages) > 2:
		return nil, ErrPipeline
	case len(stages) == 2 && (len(stages[0]) == 0 || len(stages[1]) == 0):
		return nil, errors.New("syntax error near unexpected token `|'") //nolint:staticcheck // Matches sh(1).
	}

	return stages, nil
}

// execute runs one command line.
func (m *Model) execute(line string) {
	stages, err := split(line)
	if err != nil {
		m.fail(err)
		return
	}

	if len(stages) == 0 || len(stages[0]) == 0 {
		return
	}

	m.logger.Debug("execute", slog.String("line", line), slog.Int("stages", len(stages)))

	producer := stages[0]

	if len(stages) == 1 {
		switch producer.name() {
		case command.Name:
			m.runLess(producer[1:], nil)
			return

		case "help":
			m.Log(m.help())
			return

		case "clear":
			m.scrollback = nil
			return

		case "exit", "quit":
			m.exiting = true
			return
		}
	}

	p, err := m.producer(producer)
	if err != nil {
		m.fail(err)
		return
	}

	if len(stages) == 1 {
		m.start(p, nil)
		return
	}

	consumer := stages[1]
	if consumer.name() != command.Name {
		m.fail(fmt.Errorf("%s: %w", consumer.name(), ErrNotAPager))
		return
	}

	m.runLess(consumer[1:], p)
}

// runLess parses the arguments of less and opens it on p, or on the given
// files when p is nil.
func (m *Model) runLess(argv []string, p source.Producer) {
	args, err := command.ParseArgs(argv, command.Args{QuitIfOneScreen: m.cfg.QuitIfOneScreen})
	if err != nil {
		m.fail(err)
		return
	}

	if p == nil && len(args.Files) > 0 {
		p = source.Files{Name: command.Name, Paths: args.Files}
	}

	if p == nil && !args.Help {
		m.fail(fmt.Errorf("%s: %w", command.Name, command.ErrMissingFilename))
		return
	}

	m.open(args, p)
}

// producer returns the content source of a builtin.
func (m *Model) producer(s stage) (source.Producer, error) {
	name, args := s.name(), s[1:]

	switch name {
	case "cat":
		if len(args) == 0 {
			return nil, fmt.Errorf("cat: %w", ErrMissingFiles)
		}

		return source.Files{Name: name, Paths: args}, nil

	case "echo":
		return source.Static(strings.Join(args, " ")), nil

	case "seq":
		seq, err := source.NewSeq(args...)
		if err != nil {
			return nil, fmt.Errorf("seq: %w", err)
		}

		return seq, nil

	case "tail":
		return parseTail(args)

	case command.Name:
		return nil, fmt.Errorf("%s: %w", name, ErrPipeToPager)

	case "help":
		return source.Static(m.help()), nil
	}

	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

func parseTail(argv []string) (source.Producer, error) {
	flags := pflag.NewFlagSet("tail", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	follow := flags.BoolP("follow", "f", false, "output appended data as the file grows")
	lines := flags.IntP("lines", "n", source.DefaultTailLines, "output the last N lines")

	err := flags.Parse(argv)
	if err != nil {
		return nil, fmt.Errorf("tail: %w", err)
	}

	if flags.NArg() != 1 {
		return nil, fmt.Errorf("tail: %w", ErrMissingFiles)
	}

	return source.Follow{Path: flags.Arg(0), Lines: *lines, Watch: *follow}, nil
}

func (m *Model) help() string {
	lines := make([]string, 0, len(builtins)+2)
	lines = append(lines, "Commands:")

	for _, usage := range builtins {
		lines = append(lines, "  "+usage)
	}

	lines = append(lines, `Pipe one command into less, e.g. "seq 100 | less".`)

	return strings.Join(lines, "\n")
}

func (m *Model) fail(err error) {
	m.logger.Debug("command failed", slog.Any("err", err))
	m.Log(m.theme.Error(err.Error()))
}
