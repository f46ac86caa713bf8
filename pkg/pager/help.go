package pager

import (
	"strings"

	"github.com/macropower/tless/pkg/keys"
)

// HelpWidth is the width the help text is laid out for.
const HelpWidth = 76

var helpColumns = []struct {
	title   string
	actions []Action
}{
	{
		title: "Moving",
		actions: []Action{
			ActionLineDown, ActionLineUp,
			ActionPageDown, ActionPageUp, ActionForwardPastEnd,
			ActionHalfPageDown, ActionHalfPageUp,
			ActionRight, ActionLeft,
		},
	},
	{
		title:   "Jumping",
		actions: []Action{ActionTop, ActionBottom, ActionPercent},
	},
	{
		title:   "Miscellaneous",
		actions: []Action{ActionHelp, ActionVersion, ActionQuit},
	},
}

const helpHeader = `                   SUMMARY OF LESS COMMANDS

      Commands marked with * may be preceded by a number, N.

`

// HelpText renders the help buffer for a keymap. Bindings for actions that
// accept a repeat factor are marked with "*".
func HelpText(km Keymap) string {
	var b strings.Builder

	b.WriteString(helpHeader)

	for _, col := range helpColumns {
		kbr := &keys.KeyBindRenderer{}

		kbs := make([]keys.KeyBind, 0, len(col.actions))
		for _, a := range col.actions {
			bd, ok := km.Lookup(a)
			if !ok {
				continue
			}

			kb := bd.KeyBind
			if a.Repeats() {
				kb.Description = "* " + kb.Description
			}

			kbs = append(kbs, kb)
		}

		kbr.AddColumn(col.title, kbs...)

		out := kbr.Render(HelpWidth)
		if out == "" {
			continue
		}

		b.WriteString(out)
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// Repeats reports whether the action is scaled by the repeat factor.
func (a Action) Repeats() bool {
	switch a {
	case ActionForwardPastEnd, ActionLineUp, ActionLineDown, ActionLeft, ActionRight,
		ActionPageUp, ActionPageDown, ActionHalfPageUp, ActionHalfPageDown, ActionPercent:
		return true
	default:
		return false
	}
}
