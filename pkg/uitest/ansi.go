package uitest

import (
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// SGR attribute codes checked by the verifier.
const (
	SGRBold      = 1
	SGRUnderline = 4
	SGRReverse   = 7
)

// SetupColorProfile forces the ANSI256 profile so that styles are rendered
// even when the tests do not run in a terminal.
func SetupColorProfile() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

// segment is a run of printable text and the SGR parameters active for it.
type segment struct {
	text   string
	params []int
}

// ANSIStyleVerifier checks styled terminal output.
type ANSIStyleVerifier struct {
	output   string
	segments []segment
}

func NewANSIStyleVerifier(output string) *ANSIStyleVerifier {
	v := &ANSIStyleVerifier{output: output}
	v.segments = parseSegments(output)

	return v
}

// PlainText returns the output with every escape sequence removed.
func (v *ANSIStyleVerifier) PlainText() string {
	return ansi.Strip(v.output)
}

func (v *ANSIStyleVerifier) ContainsPlainText(t *testing.T, expected string) {
	t.Helper()

	assert.Contains(t, v.PlainText(), expected)
}

// ContainsSGR asserts that some text is printed while the SGR parameter code
// is active.
func (v *ANSIStyleVerifier) ContainsSGR(t *testing.T, code int) {
	t.Helper()

	for _, seg := range v.segments {
		if slices.Contains(seg.params, code) {
			return
		}
	}

	t.Errorf("no text rendered with SGR %d in %q", code, v.output)
}

// NoSGR asserts that the output carries no styling at all.
func (v *ANSIStyleVerifier) NoSGR(t *testing.T) {
	t.Helper()

	for _, seg := range v.segments {
		if len(seg.params) > 0 {
			t.Errorf("text %q rendered with SGR %v", seg.text, seg.params)
			return
		}
	}
}

// StyledText asserts that text is printed with code active.
func (v *ANSIStyleVerifier) StyledText(t *testing.T, text string, code int) {
	t.Helper()

	for _, seg := range v.segments {
		if strings.Contains(seg.text, text) && slices.Contains(seg.params, code) {
			return
		}
	}

	t.Errorf("%q not rendered with SGR %d in %q", text, code, v.output)
}

func parseSegments(output string) []segment {
	var (
		segments []segment
		params   []int
		text     strings.Builder
		state    byte
	)

	flush := func() {
		if text.Len() == 0 {
			return
		}

		segments = append(segments, segment{text: text.String(), params: slices.Clone(params)})
		text.Reset()
	}

	p := ansi.GetParser()
	defer ansi.PutParser(p)

	input := []byte(output)
	for len(input) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(input, state, p)

		switch {
		case ansi.HasCsiPrefix(seq) && seq[len(seq)-1] == 'm':
			flush()

			codes := []int{}
			for _, prm := range p.Params() {
				codes = append(codes, prm.Param(0))
			}

			params = applySGR(params, codes)

		case width > 0:
			text.Write(seq)
		}

		input = input[n:]
		state = newState
	}

	flush()

	return segments
}

// applySGR returns the parameters active after an SGR sequence. A reset
// clears everything; other parameters accumulate.
func applySGR(active, codes []int) []int {
	if len(codes) == 0 {
		return nil
	}

	for _, code := range codes {
		if code == 0 {
			active = nil
			continue
		}

		active = append(active, code)
	}

	return active
}
