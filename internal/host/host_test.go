package host_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/markread/internal/host"
	"github.com/kyaoi/markread/internal/viewer"
)

func TestOS_ReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		return path
	}
	h := host.NewOS(nil, zerolog.Nop())

	t.Run("reads text", func(t *testing.T) {
		t.Parallel()
		path := write("a.md", []byte("# Hi\n"))
		got, err := h.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# Hi\n", got)
	})

	t.Run("drops byte order mark", func(t *testing.T) {
		t.Parallel()
		path := write("bom.md", []byte("\xEF\xBB\xBFtext"))
		got, err := h.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "text", got)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := h.ReadFile(context.Background(), filepath.Join(dir, "nope.md"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.NotEmpty(t, err.Error())
	})

	t.Run("binary content", func(t *testing.T) {
		t.Parallel()
		path := write("bin.md", []byte{0xff, 0xfe, 0x00, 0x81})
		_, err := h.ReadFile(context.Background(), path)
		assert.ErrorIs(t, err, host.ErrNotText)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := h.ReadFile(ctx, write("c.md", []byte("x")))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOS_ShowOpenDialog(t *testing.T) {
	t.Parallel()

	t.Run("without dialog", func(t *testing.T) {
		t.Parallel()
		_, err := host.NewOS(nil, zerolog.Nop()).ShowOpenDialog(context.Background(), "t", nil)
		assert.ErrorIs(t, err, host.ErrNoDialog)
	})

	t.Run("through broker", func(t *testing.T) {
		t.Parallel()
		broker := host.NewBroker()
		h := host.NewOS(broker, zerolog.Nop())

		go func() {
			req := <-broker.Requests()
			req.Respond([]string{"/tmp/" + req.Title + ".md"}, nil)
			req.Respond([]string{"ignored"}, nil)
		}()

		paths, err := h.ShowOpenDialog(context.Background(), "picked", viewer.OpenFilters)
		require.NoError(t, err)
		assert.Equal(t, []string{"/tmp/picked.md"}, paths)
	})
}

func TestBroker_ShowOpenDialog(t *testing.T) {
	t.Parallel()

	t.Run("error answer", func(t *testing.T) {
		t.Parallel()
		broker := host.NewBroker()
		want := errors.New("cannot list directory")
		go func() {
			req := <-broker.Requests()
			assert.Equal(t, viewer.OpenFilters, req.Filters)
			req.Respond(nil, want)
		}()
		_, err := broker.ShowOpenDialog(context.Background(), "t", viewer.OpenFilters)
		assert.ErrorIs(t, err, want)
	})

	t.Run("nobody listening", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := host.NewBroker().ShowOpenDialog(ctx, "t", nil)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("never answered", func(t *testing.T) {
		t.Parallel()
		broker := host.NewBroker()
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-broker.Requests()
			cancel()
		}()
		_, err := broker.ShowOpenDialog(ctx, "t", nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOS_Open(t *testing.T) {
	t.Parallel()

	t.Run("starts handler", func(t *testing.T) {
		t.Parallel()
		h := host.NewOS(nil, zerolog.Nop())
		var got []string
		host.SetStart(h, func(name string, args ...string) error {
			got = append([]string{name}, args...)
			return nil
		})
		h.Open("https://example.com")
		require.NotEmpty(t, got)
		assert.Equal(t, "https://example.com", got[len(got)-1])
	})

	t.Run("start failure is swallowed", func(t *testing.T) {
		t.Parallel()
		h := host.NewOS(nil, zerolog.Nop())
		host.SetStart(h, func(string, ...string) error { return errors.New("not found") })
		assert.NotPanics(t, func() { h.Open("https://example.com") })
	})
}

func TestOpenCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos string
		name string
		args []string
	}{
		{goos: "darwin", name: "open", args: []string{"u"}},
		{goos: "linux", name: "xdg-open", args: []string{"u"}},
		{goos: "windows", name: "rundll32", args: []string{"url.dll,FileProtocolHandler", "u"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()
			name, args := host.OpenCommand(tt.goos, "u")
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}
