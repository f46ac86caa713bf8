// Package source produces the content chunks that the shell feeds into a
// pager session or prints to its scrollback.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned by [NewSeq] for a sequence that cannot be
// produced.
var ErrInvalidRange = errors.New("invalid range")

// Producer writes content chunks to out until it is exhausted or ctx is
// done. Producers never close out.
type Producer interface {
	Stream(ctx context.Context, out chan<- string) error
}

// ProducerFunc adapts a function to [Producer].
type ProducerFunc func(ctx context.Context, out chan<- string) error

func (f ProducerFunc) Stream(ctx context.Context, out chan<- string) error {
	return f(ctx, out)
}

// send delivers one chunk, giving up when ctx is done.
func send(ctx context.Context, out chan<- string, chunk string) error {
	select {
	case out <- chunk:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Static produces a fixed text as a single chunk.
type Static string

func (s Static) Stream(ctx context.Context, out chan<- string) error {
	return send(ctx, out, string(s))
}

// Reader produces everything read from an [io.Reader] as a single chunk.
type Reader struct {
	R io.Reader
}

func (r Reader) Stream(ctx context.Context, out chan<- string) error {
	b, err := io.ReadAll(r.R)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return send(ctx, out, strings.TrimSuffix(string(b), "\n"))
}

// Files produces one chunk per readable file, in order. Unreadable files are
// skipped and reported in the combined error, prefixed with Name.
type Files struct {
	FS    fs.FS
	Name  string
	Paths []string
}

func (f Files) Stream(ctx context.Context, out chan<- string) error {
	var errs []error

	for _, path := range f.Paths {
		b, err := f.read(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %s: %w", f.Name, path, describe(err)))
			continue
		}

		err = send(ctx, out, strings.TrimSuffix(string(b), "\n"))
		if err != nil {
			return err
		}
	}

	return errors.Join(errs...)
}

func (f Files) read(path string) ([]byte, error) {
	if f.FS != nil {
		b, err := fs.ReadFile(f.FS, path)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		return b, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		return nil, fs.ErrInvalid
	}

	b, err := os.ReadFile(path) //nolint:gosec // User supplied path.
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return b, nil
}

// ErrIsDirectory is reported for paths that name a directory.
var ErrIsDirectory = errors.New("Is a directory") //nolint:staticcheck // Matches cat(1).

// describe maps file errors to the short messages printed by cat(1).
func describe(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.New("No such file or directory") //nolint:staticcheck // Matches cat(1).
	case errors.Is(err, fs.ErrPermission):
		return errors.New("Permission denied") //nolint:staticcheck // Matches cat(1).
	case errors.Is(err, fs.ErrInvalid):
		return ErrIsDirectory
	}

	return err
}

// Seq produces the integers First through Last, one per line, as a single
// chunk.
type Seq struct {
	First int
	Last  int
}

// NewSeq parses the arguments of seq(1): LAST, or FIRST LAST.
func NewSeq(args ...string) (Seq, error) {
	nums := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Seq{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidRange, arg)
		}

		nums = append(nums, n)
	}

	switch len(nums) {
	case 1:
		return Seq{First: 1, Last: nums[0]}, nil
	case 2:
		return Seq{First: nums[0], Last: nums[1]}, nil
	}

	return Seq{}, fmt.Errorf("%w: expected LAST or FIRST LAST", ErrInvalidRange)
}

func (s Seq) Stream(ctx context.Context, out chan<- string) error {
	if s.Last < s.First {
		return nil
	}

	var b strings.Builder
	for i := s.First; i <= s.Last; i++ {
		if i > s.First {
			b.WriteByte('\n')
		}

		b.WriteString(strconv.Itoa(i))
	}

	return send(ctx, out, b.String())
}
