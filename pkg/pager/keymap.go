package pager

import (
	"github.com/macropower/tless/pkg/keys"
)

// Action is the effect of a resolved key binding.
type Action int

const (
	ActionNone Action = iota
	ActionForwardPastEnd
	ActionLineUp
	ActionLineDown
	ActionLeft
	ActionRight
	ActionPageUp
	ActionPageDown
	ActionHalfPageUp
	ActionHalfPageDown
	ActionTop
	ActionPercent
	ActionBottom
	ActionHelp
	ActionVersion
	ActionQuit
	ActionIgnore
)

func (a Action) String() string {
	return map[Action]string{
		ActionNone:           "none",
		ActionForwardPastEnd: "forward past end",
		ActionLineUp:         "line up",
		ActionLineDown:       "line down",
		ActionLeft:           "left",
		ActionRight:          "right",
		ActionPageUp:         "page up",
		ActionPageDown:       "page down",
		ActionHalfPageUp:     "half page up",
		ActionHalfPageDown:   "half page down",
		ActionTop:            "top",
		ActionPercent:        "percent",
		ActionBottom:         "bottom",
		ActionHelp:           "help",
		ActionVersion:        "version",
		ActionQuit:           "quit",
		ActionIgnore:         "ignore",
	}[a]
}

// Binding ties a [keys.KeyBind] to the action it triggers.
type Binding struct {
	keys.KeyBind

	Action Action
}

// Keymap is an ordered list of bindings. Resolution is first match wins.
type Keymap []Binding

// Resolve returns the action of the first binding matching any candidate.
func (km Keymap) Resolve(candidates ...string) (Action, bool) {
	for _, b := range km {
		if b.Match(candidates...) {
			return b.Action, true
		}
	}

	return ActionNone, false
}

// Binds returns the underlying key binds, in resolution order.
func (km Keymap) Binds() []keys.KeyBind {
	kbs := make([]keys.KeyBind, 0, len(km))
	for _, b := range km {
		kbs = append(kbs, b.KeyBind)
	}

	return kbs
}

// Lookup returns the binding for an action.
func (km Keymap) Lookup(a Action) (Binding, bool) {
	for _, b := range km {
		if b.Action == a {
			return b, true
		}
	}

	return Binding{}, false
}

func bind(a Action, description string, ks ...keys.Key) Binding {
	return Binding{KeyBind: keys.NewBind(description, ks...), Action: a}
}

// DefaultKeymap returns the less keybindings.
//
// Left and right are also on less's ignore list, but they are bound to
// horizontal scrolling first, so they never reach it.
func DefaultKeymap() Keymap {
	return Keymap{
		bind(ActionForwardPastEnd, "forward one window, past end of file",
			keys.New("ESCspace", keys.WithAlias("ESC-SPACE")),
			keys.New("ESC ", keys.Hidden()),
		),
		bind(ActionLineUp, "backward N lines",
			keys.New("up", keys.WithAlias("↑")),
			keys.New("y"),
			keys.New("^Y"),
			keys.New("k"),
			keys.New("^K"),
			keys.New("^P"),
		),
		bind(ActionLineDown, "forward N lines",
			keys.New("down", keys.WithAlias("↓")),
			keys.New("e"),
			keys.New("^E"),
			keys.New("^N"),
			keys.New("j"),
			keys.New("enter", keys.WithAlias("RETURN")),
		),
		bind(ActionLeft, "left one half screen width",
			keys.New("left", keys.WithAlias("←")),
		),
		bind(ActionRight, "right one half screen width",
			keys.New("right", keys.WithAlias("→")),
		),
		bind(ActionPageUp, "backward N windows",
			keys.New("pageup", keys.WithAlias("PGUP")),
			keys.New("b"),
			keys.New("^B"),
			keys.New("ESCv", keys.WithAlias("ESC-v")),
			keys.New("w"),
		),
		bind(ActionPageDown, "forward N windows",
			keys.New("pagedown", keys.WithAlias("PGDN")),
			keys.New("f"),
			keys.New("^F"),
			keys.New("^V"),
			keys.New("space", keys.WithAlias("SPACE")),
			keys.New(" ", keys.Hidden()),
			keys.New("z"),
		),
		bind(ActionHalfPageUp, "backward N half-windows",
			keys.New("u"),
			keys.New("^U"),
		),
		bind(ActionHalfPageDown, "forward N half-windows",
			keys.New("d"),
			keys.New("^D"),
		),
		bind(ActionTop, "go to first line",
			keys.New("g"),
			keys.New("home", keys.WithAlias("HOME")),
			keys.New("<"),
			keys.New("ESC<", keys.WithAlias("ESC-<")),
		),
		bind(ActionPercent, "go to N percent into file",
			keys.New("p"),
			keys.New("%"),
		),
		bind(ActionBottom, "go to last line",
			keys.New("G"),
			keys.New("end", keys.WithAlias("END")),
			keys.New(">"),
			keys.New("ESC>", keys.WithAlias("ESC->")),
		),
		bind(ActionHelp, "display this help",
			keys.New("h"),
			keys.New("H"),
		),
		bind(ActionVersion, "print version number",
			keys.New("V"),
		),
		bind(ActionQuit, "exit",
			keys.New("q"),
			keys.New(":q"),
			keys.New("Q"),
			keys.New(":Q"),
			keys.New("ZZ"),
		),
		bind(ActionIgnore, "ignored",
			keys.New("backspace", keys.Hidden()),
			keys.New("`", keys.Hidden()),
			keys.New("tab", keys.Hidden()),
		),
	}
}
