package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/tless/internal/shell"
	"github.com/macropower/tless/pkg/command"
	"github.com/macropower/tless/pkg/config"
	"github.com/macropower/tless/pkg/log"
	"github.com/macropower/tless/pkg/source"
	"github.com/macropower/tless/pkg/theme"
	"github.com/macropower/tless/pkg/version"
)

const (
	cmdExamples = `  # Start the shell:
  tless

  # Open a file in the pager:
  tless ./README.md

  # Page stdin:
  seq 100 | tless -

  # Exit immediately if the content fits on one screen:
  tless -F ./go.mod

  # Send output to a file (disables TUI):
  tless ./README.md > out.txt`
)

// ErrNoInput is returned when there is nothing to copy to a non-terminal
// stdout.
var ErrNoInput = errors.New("no input: stdout is not a terminal")

type RunArgs struct {
	*RootArgs

	Path            string
	Prompt          string
	PollInterval    time.Duration
	Scrollback      int
	QuitIfOneScreen bool
	NoColor         bool
	ShowConfig      bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.Prompt, "prompt", config.DefaultPrompt, "Shell prompt")
	cmd.Flags().DurationVar(&ra.PollInterval, "poll-interval", config.DefaultPollInterval,
		"Interval at which a quitting pager waits for the shell prompt")
	cmd.Flags().IntVar(&ra.Scrollback, "scrollback", config.DefaultScrollback, "Number of output lines kept by the shell")
	cmd.Flags().BoolVarP(&ra.QuitIfOneScreen, "quit-if-one-screen", "F", false,
		"Make less exit if the content fits on one screen")
	cmd.Flags().BoolVar(&ra.NoColor, "no-color", false, "Disable styling")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")
}

// Config returns the configuration selected by the flags.
func (ra *RunArgs) Config() (*config.Config, error) {
	cfg := &config.Config{
		Prompt:          ra.Prompt,
		PollInterval:    ra.PollInterval,
		Scrollback:      ra.Scrollback,
		QuitIfOneScreen: ra.QuitIfOneScreen,
		NoColor:         ra.NoColor,
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [file|-]",
		Short:   "Default command, can be used explicitly if the path is ambiguous",
		Example: cmdExamples,
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}

			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ra.Path = args[0]
			}

			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	cfg, err := ra.Config()
	if err != nil {
		return err
	}

	if ra.ShowConfig {
		b, err := cfg.MarshalYAML()
		if err != nil {
			return fmt.Errorf("marshal config yaml: %w", err)
		}

		mustN(fmt.Fprint(cmd.OutOrStdout(), string(b)))

		return nil
	}

	piped := ra.Path == "-" || (ra.Path == "" && !isTerminal(cmd.InOrStdin()))

	// If stdout is not a terminal, actually "concatenate".
	if !isTerminal(cmd.OutOrStdout()) {
		log.WithContext(cmd.Context()).Debug("stdout is not a terminal",
			slog.String("path", ra.Path),
			slog.Bool("stdin", piped),
		)

		return writeToOutput(cmd, ra.Path, piped)
	}

	logBuf := log.NewRing(log.DefaultRingCapacity)
	logHandler, err := log.CreateHandlerWithStrings(logBuf, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	err = runUI(log.NewContext(cmd.Context(), logger), cmd, cfg, ra, piped)
	if err != nil {
		logger.Error("run UI", slog.Any("err", err))
		flushLogs(cmd.ErrOrStderr(), logBuf)

		return fmt.Errorf("ui program failure: %w", err)
	}

	flushLogs(cmd.ErrOrStderr(), logBuf)

	return nil
}

func writeToOutput(cmd *cobra.Command, path string, piped bool) error {
	out := cmd.OutOrStdout()

	switch {
	case piped:
		_, err := io.Copy(out, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("copy stdin: %w", err)
		}

	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		_, err = out.Write(b)
		if err != nil {
			return fmt.Errorf("write to stdout: %w", err)
		}

	default:
		return ErrNoInput
	}

	return nil
}

// runUI starts the shell program.
func runUI(ctx context.Context, cmd *cobra.Command, cfg *config.Config, ra *RunArgs, piped bool) error {
	th := theme.Default
	if cfg.NoColor {
		th = theme.Plain()
	}

	opts := []shell.Option{
		shell.WithConfig(cfg),
		shell.WithTheme(th),
		shell.WithVersion(version.GetVersion()),
		shell.WithLogger(log.WithContext(ctx)),
	}

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	}

	args := command.Args{QuitIfOneScreen: cfg.QuitIfOneScreen}

	switch {
	case piped:
		opts = append(opts, shell.WithStartup(args, source.Reader{R: cmd.InOrStdin()}))
		// Stdin carries the content, keys come from the controlling terminal.
		progOpts = append(progOpts, tea.WithInputTTY())

	case ra.Path != "":
		args.Files = []string{ra.Path}
		opts = append(opts, shell.WithStartup(args, source.Files{Name: command.Name, Paths: args.Files}))
	}

	p := tea.NewProgram(shell.New(opts...), progOpts...)

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("tea: %w", err)
	}

	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in an int.
}

func flushLogs(w io.Writer, buf *log.Ring) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Len()),
		slog.Int("max", buf.Cap()),
		slog.Bool("truncated", buf.Len() == buf.Cap()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}
