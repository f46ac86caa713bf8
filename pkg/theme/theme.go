// Package theme holds the styles used by the pager and the shell. A [Theme]
// is an explicit value: sessions and the shell receive one at construction.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	// BannerStyle renders status banners such as "END".
	BannerStyle lipgloss.Style
	// ErrorStyle renders command errors in the scrollback.
	ErrorStyle lipgloss.Style
	// PromptStyle renders the shell prompt.
	PromptStyle lipgloss.Style
	// SubtleStyle renders the echoed command lines.
	SubtleStyle lipgloss.Style
}

// Default is the colored theme.
var Default = New()

// New returns the colored theme.
func New() *Theme {
	return &Theme{
		BannerStyle: lipgloss.NewStyle().Reverse(true),
		ErrorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		PromptStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		SubtleStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Plain returns a theme that applies no styling at all.
func Plain() *Theme {
	return &Theme{
		BannerStyle: lipgloss.NewStyle(),
		ErrorStyle:  lipgloss.NewStyle(),
		PromptStyle: lipgloss.NewStyle(),
		SubtleStyle: lipgloss.NewStyle(),
	}
}

func (t *Theme) Banner(s string) string {
	return t.BannerStyle.Render(s)
}

func (t *Theme) Error(s string) string {
	return t.ErrorStyle.Render(s)
}

func (t *Theme) Prompt(s string) string {
	return t.PromptStyle.Render(s)
}

func (t *Theme) Subtle(s string) string {
	return t.SubtleStyle.Render(s)
}
