// Package keyseq normalizes raw keypress events into the tokens matched by
// the pager keymap, and splits pending key sequences into a repeat factor and
// a command suffix.
package keyseq

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	// Escape is the canonical token for the escape key.
	Escape = "ESC"
	// MaxFactor caps the repeat factor. Longer digit runs saturate.
	MaxFactor = math.MaxInt32
)

// Event is a raw keypress as delivered by the host.
type Event struct {
	// Char is the literal character produced by the key, if any.
	Char string
	// Name is the symbolic key name, e.g. "escape", "enter", "left".
	Name string
	// Ctrl is set when the control modifier was held.
	Ctrl bool
}

// Token is a decoded keypress.
type Token struct {
	// Value is the printable character, or the key name when there is none.
	Value string
	// Mods is Value prefixed with "^" when the control modifier was held.
	Mods string
}

// IsZero reports whether the token carries no recognized key.
func (t Token) IsZero() bool {
	return t.Value == ""
}

// Decode maps a raw event to a [Token]. The second return value is false when
// the event carries neither a printable character nor a key name.
func Decode(ev Event) (Token, bool) {
	value := ev.Char
	if !printable(value) {
		value = ""
	}
	if value == "" {
		value = ev.Name
	}
	if value == "" {
		return Token{}, false
	}

	if value == "escape" {
		value = Escape
	}

	mods := value
	if ev.Ctrl {
		mods = "^" + strings.ToUpper(value)
	}

	return Token{Value: value, Mods: mods}, true
}

// printable reports whether s is a non-blank run of printable characters.
// Whitespace-only input is not printable so that space, tab and enter fall
// back to their key names.
func printable(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if r == '\x1b' || !unicode.IsPrint(r) {
			return false
		}
	}

	return true
}

// Split separates a pending sequence into its leading run of decimal digits
// and the remaining suffix. The factor is 1 when there are no digits or they
// evaluate to zero, and at most [MaxFactor].
func Split(seq string) (int, string) {
	i := strings.IndexFunc(seq, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if i < 0 {
		i = len(seq)
	}

	digits, suffix := seq[:i], seq[i:]

	factor, err := strconv.Atoi(digits)
	switch {
	case errors.Is(err, strconv.ErrRange), err == nil && factor > MaxFactor:
		factor = MaxFactor
	case err != nil, factor <= 0:
		factor = 1
	}

	return factor, suffix
}
