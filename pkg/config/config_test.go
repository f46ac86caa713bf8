package config_test

import (
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/tless/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	assert.Equal(t, "$ ", c.Prompt)
	assert.Equal(t, 10*time.Millisecond, c.PollInterval)
	assert.Equal(t, 1000, c.Scrollback)
	assert.False(t, c.QuitIfOneScreen)
	require.NoError(t, c.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		config config.Config
		err    string
	}{
		"negative poll interval": {
			config: config.Config{PollInterval: -time.Second, Scrollback: 1},
			err:    "poll interval must be positive",
		},
		"zero scrollback": {
			config: config.Config{PollInterval: time.Millisecond},
			err:    "scrollback must be positive",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.config.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.ErrorContains(t, err, tc.err)
		})
	}
}

func TestConfig_MarshalYAML(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	c.QuitIfOneScreen = true

	b, err := c.MarshalYAML()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(b, &got))

	assert.Equal(t, "$ ", got["prompt"])
	assert.Equal(t, "10ms", got["pollInterval"])
	assert.Equal(t, true, got["quitIfOneScreen"])
	assert.Equal(t, false, got["noColor"])
	assert.EqualValues(t, 1000, got["scrollback"])
}
