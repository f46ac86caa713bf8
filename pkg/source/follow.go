package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// DefaultTailLines is the number of lines [Follow] starts with.
const DefaultTailLines = 10

// Follow produces the last Lines lines of a file as one chunk. With Watch
// set it then keeps producing complete lines appended to the file, one chunk
// per write, until ctx is done. A truncated file is followed from its new
// end.
type Follow struct {
	Path  string
	Lines int
	Watch bool
}

func (f Follow) Stream(ctx context.Context, out chan<- string) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("tail: %s: %w", f.Path, describe(err))
	}
	defer file.Close() //nolint:errcheck // Read only.

	b, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("tail: %s: %w", f.Path, err)
	}

	offset := int64(len(b))

	lines := f.Lines
	if lines <= 0 {
		lines = DefaultTailLines
	}

	if !f.Watch {
		return send(ctx, out, lastLines(b, lines))
	}

	// Hold back a trailing partial line, it is completed by a later write.
	complete, partial := splitComplete(b)

	if head := lastLines(complete, lines); head != "" {
		err = send(ctx, out, head)
		if err != nil {
			return err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // Best effort.

	// Watch the directory so that the file can be replaced or recreated.
	err = watcher.Add(filepath.Dir(f.Path))
	if err != nil {
		return fmt.Errorf("watch %s: %w", f.Path, err)
	}

	name := filepath.Clean(f.Path)
	pending := partial

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != name || evt.Has(fsnotify.Chmod) {
				continue
			}

			slog.Debug("follow event", slog.String("event", evt.String()))

			if evt.Has(fsnotify.Create) {
				offset = 0
				pending = nil
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
				continue
			}

			var appended []byte

			appended, offset, err = readFrom(f.Path, offset)
			if err != nil {
				slog.Debug("follow read", slog.Any("err", err))
				continue
			}

			complete, pending = splitComplete(append(pending, appended...))
			if len(complete) == 0 {
				continue
			}

			err = send(ctx, out, strings.TrimSuffix(string(complete), "\n"))
			if err != nil {
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("follow %s: %w", f.Path, err)
		}
	}
}

// readFrom reads the file from offset to its end and returns the new offset.
// A file shorter than offset was truncated and is read from the start.
func readFrom(path string, offset int64) ([]byte, int64, error) {
	file, err := os.Open(path) //nolint:gosec // User supplied path.
	if err != nil {
		return nil, offset, fmt.Errorf("open: %w", err)
	}
	defer file.Close() //nolint:errcheck // Read only.

	info, err := file.Stat()
	if err != nil {
		return nil, offset, fmt.Errorf("stat: %w", err)
	}
	if info.Size() < offset {
		offset = 0
	}

	_, err = file.Seek(offset, io.SeekStart)
	if err != nil {
		return nil, offset, fmt.Errorf("seek: %w", err)
	}

	b, err := io.ReadAll(file)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, offset, fmt.Errorf("read: %w", err)
	}

	return b, offset + int64(len(b)), nil
}

// splitComplete splits b after its last newline.
func splitComplete(b []byte) ([]byte, []byte) {
	i := bytes.LastIndexByte(b, '\n')
	if i < 0 {
		return nil, b
	}

	return b[:i+1], append([]byte(nil), b[i+1:]...)
}

// lastLines returns the final n lines of b without the trailing newline.
func lastLines(b []byte, n int) string {
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return strings.Join(lines, "\n")
}
