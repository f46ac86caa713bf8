package keys_test

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/tless/pkg/keys"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		code     string
		opts     []keys.KeyOpt
		expected keys.Key
	}{
		"plain key": {
			code:     "j",
			expected: keys.Key{Code: "j"},
		},
		"key with alias": {
			code:     "ESCv",
			opts:     []keys.KeyOpt{keys.WithAlias("ESC-v")},
			expected: keys.Key{Code: "ESCv", Alias: "ESC-v"},
		},
		"hidden key": {
			code:     "tab",
			opts:     []keys.KeyOpt{keys.Hidden()},
			expected: keys.Key{Code: "tab", Hidden: true},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, keys.New(tc.code, tc.opts...))
		})
	}
}

func TestKey_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ESC-v", keys.New("ESCv", keys.WithAlias("ESC-v")).String())
	assert.Equal(t, "^F", keys.New("^F").String())
}

func TestKeyBind_String(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		expected string
		keyBind  keys.KeyBind
	}{
		"single key": {
			keyBind:  keys.NewBind("exit", keys.New("q")),
			expected: "q",
		},
		"multiple keys with alias": {
			keyBind:  keys.NewBind("backward one line", keys.New("k"), keys.New("up", keys.WithAlias("↑"))),
			expected: "k ↑",
		},
		"hidden keys are skipped": {
			keyBind:  keys.NewBind("forward one window", keys.New("space"), keys.New(" ", keys.Hidden())),
			expected: "space",
		},
		"all keys hidden": {
			keyBind:  keys.NewBind("ignored", keys.New("tab", keys.Hidden())),
			expected: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.keyBind.String())
		})
	}
}

func TestKeyBind_StringRow(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		expected  string
		keyBind   keys.KeyBind
		keyWidth  int
		descWidth int
	}{
		"pad key and description": {
			keyBind:   keys.NewBind("quit", keys.New("q")),
			keyWidth:  5,
			descWidth: 10,
			expected:  "q      quit    ",
		},
		"truncate long descriptions": {
			keyBind:   keys.NewBind("very long description that should be truncated", keys.New("q")),
			keyWidth:  5,
			descWidth: 10,
			expected:  "q      very lo…",
		},
		"hidden keybind renders nothing": {
			keyBind:   keys.NewBind("ignored", keys.New("tab", keys.Hidden())),
			keyWidth:  5,
			descWidth: 10,
			expected:  "",
		},
		"zero widths": {
			keyBind:   keys.NewBind("test", keys.New("q")),
			keyWidth:  0,
			descWidth: 0,
			expected:  "q  …",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.keyBind.StringRow(tc.keyWidth, tc.descWidth))
		})
	}
}

func TestKeyBind_Match(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("exit",
		keys.New("q"),
		keys.New(":q"),
		keys.New("ZZ", keys.WithAlias("Z Z")),
	)

	tcs := map[string]struct {
		candidates []string
		expected   bool
	}{
		"single key":               {candidates: []string{"q"}, expected: true},
		"multi-key sequence":       {candidates: []string{"Z", "ZZ", "Z"}, expected: true},
		"alias does not match":     {candidates: []string{"Z Z"}, expected: false},
		"no candidate matches":     {candidates: []string{"j", "3j", "j"}, expected: false},
		"empty candidates ignored": {candidates: []string{"", ""}, expected: false},
		"no candidates":            {candidates: nil, expected: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, kb.Match(tc.candidates...))
		})
	}
}

func TestKeyBind_Codes(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("forward", keys.New("space"), keys.New(" ", keys.Hidden()))
	assert.Equal(t, []string{"space", " "}, kb.Codes())
}

func TestValidateBinds(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		binds   []keys.KeyBind
		wantErr string
	}{
		"unique keys": {
			binds: []keys.KeyBind{
				keys.NewBind("up", keys.New("k")),
				keys.NewBind("down", keys.New("j")),
			},
		},
		"duplicate across binds": {
			binds: []keys.KeyBind{
				keys.NewBind("up", keys.New("k")),
				keys.NewBind("down", keys.New("j"), keys.New("k")),
			},
			wantErr: `duplicate key binding found: "k"`,
		},
		"duplicate within bind": {
			binds: []keys.KeyBind{
				keys.NewBind("up", keys.New("k"), keys.New("k")),
			},
			wantErr: `duplicate key binding found: "k"`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := keys.ValidateBinds(tc.binds...)
			if tc.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestKeyBindRenderer_Render(t *testing.T) {
	t.Parallel()

	kbr := &keys.KeyBindRenderer{}
	assert.Empty(t, kbr.Render(80))

	kbr.AddColumn("MOVING",
		keys.NewBind("forward one line", keys.New("j"), keys.New("e")),
		keys.NewBind("backward one line", keys.New("k"), keys.New("y")),
	)
	kbr.AddColumn("OTHER", keys.NewBind("exit", keys.New("q")))
	kbr.AddColumn("EMPTY")

	out := kbr.Render(80)
	rows := strings.Split(out, "\n")

	// Title, spacer, then two binding rows.
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Equal(t, 80, ansi.PrintableRuneWidth(row), "row %q", row)
	}

	assert.Contains(t, rows[0], "MOVING")
	assert.Contains(t, rows[0], "OTHER")
	assert.Contains(t, rows[2], "j e")
	assert.Contains(t, rows[2], "forward one line")
	assert.Contains(t, rows[2], "exit")
	assert.Contains(t, rows[3], "backward one line")
}
