package version_test

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/tless/pkg/version"
)

func TestRevision(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want     string
		settings []debug.BuildSetting
	}{
		"no build info": {want: "unknown"},
		"short revision": {
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			want:     "0123456",
		},
		"dirty tree": {
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.modified", Value: "true"},
			},
			want: "abc-dirty",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, version.ParseRevision(tc.settings))
		})
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	assert.Contains(t, version.Info(), "tless "+version.GetVersion())
}
