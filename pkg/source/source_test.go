package source_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/tless/pkg/source"
)

// collect runs p to completion and returns every chunk it produced.
func collect(t *testing.T, p source.Producer) ([]string, error) {
	t.Helper()

	out := make(chan string, 16)
	err := p.Stream(t.Context(), out)
	close(out)

	chunks := []string{}
	for c := range out {
		chunks = append(chunks, c)
	}

	return chunks, err
}

func TestStatic(t *testing.T) {
	t.Parallel()

	chunks, err := collect(t, source.Static("a\nb"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a\nb"}, chunks)
}

func TestReader(t *testing.T) {
	t.Parallel()

	chunks, err := collect(t, source.Reader{R: strings.NewReader("one\ntwo\n")})
	require.NoError(t, err)
	assert.Equal(t, []string{"one\ntwo"}, chunks)
}

func TestFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.txt": {Data: []byte("alpha\n")},
		"b.txt": {Data: []byte("beta")},
	}

	tcs := map[string]struct {
		err   string
		paths []string
		want  []string
	}{
		"one chunk per file": {
			paths: []string{"a.txt", "b.txt"},
			want:  []string{"alpha", "beta"},
		},
		"missing files are reported": {
			paths: []string{"a.txt", "nope.txt"},
			want:  []string{"alpha"},
			err:   "cat: nope.txt: No such file or directory",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			chunks, err := collect(t, source.Files{FS: fsys, Name: "cat", Paths: tc.paths})
			if tc.err != "" {
				require.EqualError(t, err, tc.err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.want, chunks)
		})
	}
}

func TestFiles_OS(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0o600))

	chunks, err := collect(t, source.Files{Name: "less", Paths: []string{path, dir}})
	require.ErrorIs(t, err, source.ErrIsDirectory)
	assert.Equal(t, []string{"x\ny"}, chunks)
}

func TestNewSeq(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args []string
		want string
		err  bool
	}{
		"last only":    {args: []string{"3"}, want: "1\n2\n3"},
		"first last":   {args: []string{"9", "11"}, want: "9\n10\n11"},
		"single value": {args: []string{"5", "5"}, want: "5"},
		"not a number": {args: []string{"x"}, err: true},
		"no args":      {args: nil, err: true},
		"too many":     {args: []string{"1", "2", "3"}, err: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			seq, err := source.NewSeq(tc.args...)
			if tc.err {
				require.ErrorIs(t, err, source.ErrInvalidRange)
				return
			}

			require.NoError(t, err)

			chunks, err := collect(t, seq)
			require.NoError(t, err)
			assert.Equal(t, []string{tc.want}, chunks)
		})
	}
}

func TestSeq_Empty(t *testing.T) {
	t.Parallel()

	chunks, err := collect(t, source.Seq{First: 3, Last: 1})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestStream_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := source.Static("x").Stream(ctx, make(chan string))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFollow_Tail(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n3\n4\n5\n"), 0o600))

	chunks, err := collect(t, source.Follow{Path: path, Lines: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"4\n5"}, chunks)

	_, err = collect(t, source.Follow{Path: filepath.Join(t.TempDir(), "missing")})
	require.ErrorContains(t, err, "No such file or directory")
}

func TestFollow_Watch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o600))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	out := make(chan string, 16)
	errc := make(chan error, 1)

	go func() {
		errc <- source.Follow{Path: path, Watch: true}.Stream(ctx, out)
	}()

	next := func() string {
		t.Helper()

		select {
		case c := <-out:
			return c
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for chunk")
		}

		return ""
	}

	assert.Equal(t, "first", next())

	// Give the watcher a moment to start.
	time.Sleep(100 * time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)

	_, err = f.WriteString("second\nthi")
	require.NoError(t, err)
	assert.Equal(t, "second", next())

	_, err = f.WriteString("rd\n")
	require.NoError(t, err)
	assert.Equal(t, "third", next())
	require.NoError(t, f.Close())

	cancel()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("follow did not stop")
	}
}
