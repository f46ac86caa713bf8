package session

import (
	"time"

	"github.com/macropower/tless/pkg/keyseq"
	"github.com/macropower/tless/pkg/viewport"
)

// Host is the interactive environment a [Session] runs in. All methods are
// called from the host's event loop, and the host delivers keypresses and
// scheduled callbacks on that same loop.
type Host interface {
	// Size returns the current terminal size.
	Size() viewport.Size
	// Render replaces the rendered frame.
	Render(frame string)
	// Clear erases the rendered frame.
	Clear()
	// Done persists the cleared region and releases it to the host.
	Done()
	// Log prints text straight to the host's output, outside of any frame.
	Log(text string)
	// SetDelimiter sets the prefix of the input line.
	SetDelimiter(delimiter string)
	// SetInput replaces the text shown on the input line.
	SetInput(text string)
	// Submit submits the input line with the given value.
	Submit(value string)
	// Prompt asks the host to open an input prompt. The prompt may only become
	// active on a later turn of the event loop, see [Host.PromptActive].
	Prompt(message string)
	// PromptActive reports whether an input prompt is registered.
	PromptActive() bool
	// Subscribe registers fn for every keypress until detach is called.
	Subscribe(fn func(ev keyseq.Event)) (detach func())
	// AfterFunc runs fn on the event loop once d has elapsed.
	AfterFunc(d time.Duration, fn func())
}
