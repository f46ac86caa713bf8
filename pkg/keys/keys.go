package keys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/reflow/ansi"
)

// Ellipsis marks truncated help descriptions.
const Ellipsis = "…"

// Key is one key sequence that can trigger a binding.
type Key struct {
	// Code is the token sequence the key is matched by, e.g. "j", "^F", "ESCv".
	Code string
	// Alias is an alternative display name for the key.
	Alias string
	// Hidden keys match but are left out of help output.
	Hidden bool
}

type KeyOpt func(k *Key)

func New(code string, opts ...KeyOpt) Key {
	k := &Key{
		Code: code,
	}
	for _, opt := range opts {
		opt(k)
	}

	return *k
}

func WithAlias(alias string) KeyOpt {
	return func(k *Key) {
		k.Alias = alias
	}
}

func Hidden() KeyOpt {
	return func(k *Key) {
		k.Hidden = true
	}
}

func (k Key) String() string {
	if k.Alias != "" {
		return k.Alias
	}

	return k.Code
}

// KeyBind groups the keys that trigger one command.
type KeyBind struct {
	Description string
	Keys        []Key
}

func NewBind(description string, keys ...Key) KeyBind {
	return KeyBind{
		Description: description,
		Keys:        keys,
	}
}

func (kb *KeyBind) String() string {
	keys := []string{}
	for _, k := range kb.Keys {
		if k.Hidden {
			continue
		}

		keys = append(keys, k.String())
	}

	return strings.Join(keys, " ")
}

// StringRow renders the binding as one help row. keyWidth should generally
// be the widest key string in the column.
func (kb *KeyBind) StringRow(keyWidth, descWidth int) string {
	keys := kb.String()
	if keys == "" {
		return ""
	}

	truncDesc := truncateWithEllipsis(kb.Description, descWidth-2)

	keySpaces := strings.Repeat(" ", max(0, keyWidth-ansi.PrintableRuneWidth(keys)))
	descSpaces := strings.Repeat(" ", max(0, descWidth-ansi.PrintableRuneWidth(truncDesc)-2))

	return fmt.Sprintf("%s%s  %s%s", keys, keySpaces, truncDesc, descSpaces)
}

// Match reports whether any of the candidate sequences equals one of the
// binding's key codes.
func (kb *KeyBind) Match(candidates ...string) bool {
	for _, k := range kb.Keys {
		for _, c := range candidates {
			if c != "" && k.Code == c {
				return true
			}
		}
	}

	return false
}

// Codes returns the key codes of the binding, hidden keys included.
func (kb *KeyBind) Codes() []string {
	codes := make([]string, 0, len(kb.Keys))
	for _, k := range kb.Keys {
		codes = append(codes, k.Code)
	}

	return codes
}

// Column is a titled group of bindings in the help view.
type Column struct {
	Title string
	Binds []KeyBind
}

type KeyBindRenderer struct {
	columns []Column
}

func (kbr *KeyBindRenderer) AddColumn(title string, kbs ...KeyBind) {
	if len(kbs) == 0 {
		return
	}

	kbr.columns = append(kbr.columns, Column{Title: title, Binds: kbs})
}

// Render lays the columns out side by side in the given width. Every row is
// padded to the full width.
func (kbr *KeyBindRenderer) Render(width int) string {
	numCols := len(kbr.columns)
	if numCols == 0 {
		return ""
	}

	colWidth := width / numCols
	colRemainder := width % numCols

	colWidth = max(6, colWidth-2)

	colRows := make([][]string, numCols)
	maxRows := 0

	for i, col := range kbr.columns {
		colRows[i] = stringColumn(colWidth, col)
		maxRows = max(maxRows, len(colRows[i]))
	}

	var sb strings.Builder
	for row := range maxRows {
		for col := range colRows {
			rowContent := strings.Repeat(" ", colWidth)
			if row < len(colRows[col]) {
				rowContent = colRows[col][row]
			}

			sb.WriteString(" " + rowContent + " ")
		}

		sb.WriteString(strings.Repeat(" ", colRemainder))

		if row < maxRows-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func stringColumn(width int, col Column) []string {
	if len(col.Binds) == 0 {
		return []string{}
	}

	maxKeyWidth := 0
	for _, kb := range col.Binds {
		maxKeyWidth = max(maxKeyWidth, ansi.PrintableRuneWidth(kb.String()))
	}
	maxKeyWidth = min(maxKeyWidth, width/2)

	rows := []string{}
	if col.Title != "" {
		title := truncateWithEllipsis(col.Title, width)
		rows = append(rows,
			title+strings.Repeat(" ", max(0, width-ansi.PrintableRuneWidth(title))),
			strings.Repeat(" ", width),
		)
	}

	for _, kb := range col.Binds {
		row := kb.StringRow(maxKeyWidth, width-maxKeyWidth)
		if row != "" {
			rows = append(rows, row)
		}
	}

	return rows
}

// ValidateBinds returns an error for every key code bound more than once.
func ValidateBinds(kbs ...KeyBind) error {
	var errs []error

	seen := make(map[string]bool)
	for _, kb := range kbs {
		for _, key := range kb.Keys {
			if seen[key.Code] {
				errs = append(errs, fmt.Errorf("duplicate key binding found: %q", key.Code))
			}

			seen[key.Code] = true
		}
	}

	return errors.Join(errs...)
}

func truncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		if s == "" {
			return ""
		}

		return Ellipsis
	}
	if ansi.PrintableRuneWidth(s) <= maxWidth {
		return s
	}

	lenEllipsis := ansi.PrintableRuneWidth(Ellipsis)
	if maxWidth <= lenEllipsis {
		return Ellipsis
	}

	availableWidth := maxWidth - lenEllipsis

	var (
		truncated    strings.Builder
		currentWidth int
	)

	for _, r := range s {
		runeWidth := ansi.PrintableRuneWidth(string(r))
		if currentWidth+runeWidth > availableWidth {
			break
		}

		truncated.WriteRune(r)
		currentWidth += runeWidth
	}

	return truncated.String() + Ellipsis
}
