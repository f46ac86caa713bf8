package shell

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/tless/pkg/keyseq"
)

var keyNames = map[tea.KeyType]string{
	tea.KeyEnter:     "enter",
	tea.KeyEsc:       "escape",
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyPgUp:      "pageup",
	tea.KeyPgDown:    "pagedown",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyBackspace: "backspace",
	tea.KeyTab:       "tab",
	tea.KeyDelete:    "delete",
}

var escape = keyseq.Event{Char: "\x1b", Name: "escape"}

// keyEvents converts a Bubble Tea key message into the raw events of the
// pager. An alt-modified key arrives as escape followed by the key, the way
// terminals send it.
func keyEvents(msg tea.KeyMsg) []keyseq.Event {
	var evs []keyseq.Event

	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if msg.Alt {
				evs = append(evs, escape)
			}

			evs = append(evs, keyseq.Event{Char: string(r), Name: string(r)})
		}

		return evs

	case tea.KeySpace:
		evs = append(evs, keyseq.Event{Char: " ", Name: "space"})

	default:
		name, ok := keyNames[msg.Type]

		switch {
		case ok:
			evs = append(evs, keyseq.Event{Name: name})
		case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
			evs = append(evs, keyseq.Event{
				Name: string(rune('a' + int(msg.Type-tea.KeyCtrlA))),
				Ctrl: true,
			})
		default:
			evs = append(evs, keyseq.Event{Name: msg.String()})
		}
	}

	if msg.Alt {
		evs = append([]keyseq.Event{escape}, evs...)
	}

	return evs
}
