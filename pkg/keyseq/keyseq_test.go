package keyseq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/tless/pkg/keyseq"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		event  keyseq.Event
		want   keyseq.Token
		wantOK bool
	}{
		"printable character": {
			event:  keyseq.Event{Char: "j", Name: "j"},
			want:   keyseq.Token{Value: "j", Mods: "j"},
			wantOK: true,
		},
		"named key only": {
			event:  keyseq.Event{Name: "pagedown"},
			want:   keyseq.Token{Value: "pagedown", Mods: "pagedown"},
			wantOK: true,
		},
		"escape is normalized": {
			event:  keyseq.Event{Char: "\x1b", Name: "escape"},
			want:   keyseq.Token{Value: "ESC", Mods: "ESC"},
			wantOK: true,
		},
		"space falls back to its name": {
			event:  keyseq.Event{Char: " ", Name: "space"},
			want:   keyseq.Token{Value: "space", Mods: "space"},
			wantOK: true,
		},
		"control modifier": {
			event:  keyseq.Event{Char: "\x02", Name: "b", Ctrl: true},
			want:   keyseq.Token{Value: "b", Mods: "^B"},
			wantOK: true,
		},
		"enter carriage return": {
			event:  keyseq.Event{Char: "\r", Name: "enter"},
			want:   keyseq.Token{Value: "enter", Mods: "enter"},
			wantOK: true,
		},
		"non-printable without name": {
			event:  keyseq.Event{Char: "\x07"},
			wantOK: false,
		},
		"empty event": {
			event:  keyseq.Event{},
			wantOK: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := keyseq.Decode(tc.event)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, !tc.wantOK, got.IsZero())
		})
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		seq        string
		wantSuffix string
		wantFactor int
	}{
		"empty":            {seq: "", wantFactor: 1, wantSuffix: ""},
		"digits only":      {seq: "10", wantFactor: 10, wantSuffix: ""},
		"digits and alpha": {seq: "10j", wantFactor: 10, wantSuffix: "j"},
		"alpha only":       {seq: "ZZ", wantFactor: 1, wantSuffix: "ZZ"},
		"zero factor":      {seq: "0j", wantFactor: 1, wantSuffix: "j"},
		"escape sequence":  {seq: "ESCspace", wantFactor: 1, wantSuffix: "ESCspace"},
		"counted escape":   {seq: "3ESCv", wantFactor: 3, wantSuffix: "ESCv"},
		"factor saturates": {
			seq:        "2147483648j",
			wantFactor: keyseq.MaxFactor,
			wantSuffix: "j",
		},
		"factor beyond int saturates": {
			seq:        "1844674407370955162000f",
			wantFactor: keyseq.MaxFactor,
			wantSuffix: "f",
		},
		"digits after alpha are suffix": {
			seq:        "x10j",
			wantFactor: 1,
			wantSuffix: "x10j",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			factor, suffix := keyseq.Split(tc.seq)
			assert.Equal(t, tc.wantFactor, factor)
			assert.Equal(t, tc.wantSuffix, suffix)
		})
	}
}
