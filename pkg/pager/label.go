package pager

import (
	"fmt"

	"github.com/muesli/reflow/truncate"

	"github.com/macropower/tless/pkg/theme"
)

// Label is the status line ("delimiter") shown in front of the input line.
type Label int

const (
	// LabelPrompt is the idle ":" prompt.
	LabelPrompt Label = iota
	// LabelPending is a single space, shown while a key sequence is collected.
	LabelPending
	LabelHelpMore
	LabelEnd
	LabelHelpEnd
	// LabelVersion is the one-shot version banner.
	LabelVersion
)

const (
	textEnd      = "END "
	textHelpEnd  = "HELP -- END -- Press g to see it again, or q when done "
	textHelpMore = "HELP -- Press RETURN for more, or q when done "
	textVersion  = "tless %s (press RETURN) "
)

// Text returns the unstyled label.
func (l Label) Text(version string) string {
	switch l {
	case LabelPending:
		return " "
	case LabelHelpMore:
		return textHelpMore
	case LabelEnd:
		return textEnd
	case LabelHelpEnd:
		return textHelpEnd
	case LabelVersion:
		return fmt.Sprintf(textVersion, version)
	case LabelPrompt:
	}

	return ":"
}

// Banner reports whether the label is rendered in the banner style.
func (l Label) Banner() bool {
	return l != LabelPrompt && l != LabelPending
}

// Render styles the label and truncates it to the given terminal width. A
// width of zero or less disables truncation.
func (l Label) Render(th *theme.Theme, version string, width int) string {
	s := l.Text(version)
	if width > 0 {
		s = truncate.String(s, uint(width)) //nolint:gosec // Positive.
	}

	if l.Banner() {
		return th.Banner(s)
	}

	return s
}
