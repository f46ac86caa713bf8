package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/tless/pkg/log"
)

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err    error
		level  string
		format string
		want   string
	}{
		"json": {
			level:  "info",
			format: "json",
			want:   `"msg":"hello"`,
		},
		"logfmt": {
			level:  "DEBUG",
			format: "logfmt",
			want:   "msg=hello",
		},
		"text": {
			level:  "warning",
			format: "text",
			want:   "hello",
		},
		"unknown level": {
			level:  "loud",
			format: "json",
			err:    log.ErrUnknownLogLevel,
		},
		"unknown format": {
			level:  "info",
			format: "yaml",
			err:    log.ErrUnknownLogFormat,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			h, err := log.CreateHandlerWithStrings(&buf, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.ErrorIs(t, err, log.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)

			slog.New(h).Error("hello")
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}

func TestGetLevel_Filters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h, err := log.CreateHandlerWithStrings(&buf, "warn", "logfmt")
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Default(), log.WithContext(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := log.NewContext(context.Background(), logger)
	assert.Same(t, logger, log.WithContext(ctx))
}
