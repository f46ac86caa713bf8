package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/macropower/tless/internal/cli"
	"github.com/macropower/tless/pkg/config"
)

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err      error
		wantHint bool
	}{
		"usage error": {
			err:      errors.New("unknown flag: --nope"),
			wantHint: true,
		},
		"too many args": {
			err:      errors.New("accepts at most 1 arg(s), received 2"),
			wantHint: true,
		},
		"invalid settings": {
			err:      fmt.Errorf("%w: %w", config.ErrInvalidConfig, errors.New("scrollback must be positive, got 0")),
			wantHint: true,
		},
		"runtime error": {
			err: errors.New("read stdin: closed"),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			cli.ErrorHandler(buf, fang.Styles{}, tc.err)

			got := ansi.Strip(buf.String())
			assert.Contains(t, got, tc.err.Error())
			if tc.wantHint {
				assert.Contains(t, got, "--help")
			} else {
				assert.NotContains(t, got, "--help")
			}
		})
	}
}
