package viewer_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/markread/internal/mock"
	"github.com/kyaoi/markread/internal/render"
	"github.com/kyaoi/markread/internal/viewer"
)

func newShell(host viewer.Host) *viewer.Shell {
	return viewer.NewShell(host, render.New(), zerolog.Nop())
}

func files(contents map[string]string) *mock.Host {
	return &mock.Host{
		ReadFileFn: func(_ context.Context, path string) (string, error) {
			text, ok := contents[path]
			if !ok {
				return "", errors.New("open " + path + ": no such file or directory")
			}
			return text, nil
		},
	}
}

func TestNewShell(t *testing.T) {
	t.Parallel()

	s := newShell(&mock.Host{}).Session()
	assert.Equal(t, viewer.ThemeLight, s.Theme)
	assert.Equal(t, 100, s.Zoom)
	assert.Nil(t, s.Document)
	assert.NoError(t, s.Err)
	assert.False(t, s.AboutVisible)
}

func TestShell_Zoom(t *testing.T) {
	t.Parallel()

	t.Run("random sequences stay in bounds", func(t *testing.T) {
		t.Parallel()
		rng := rand.New(rand.NewSource(1))
		for run := 0; run < 50; run++ {
			sh := newShell(&mock.Host{})
			for i := 0; i < 200; i++ {
				if rng.Intn(2) == 0 {
					sh.ZoomIn()
				} else {
					sh.ZoomOut()
				}
				z := sh.Session().Zoom
				require.GreaterOrEqual(t, z, viewer.ZoomMin)
				require.LessOrEqual(t, z, viewer.ZoomMax)
				require.Zero(t, z%10)
			}
		}
	})

	t.Run("zoom in saturates at max", func(t *testing.T) {
		t.Parallel()
		sh := newShell(&mock.Host{})
		for i := 0; i < 10; i++ {
			sh.ZoomIn()
		}
		assert.Equal(t, 200, sh.Session().Zoom)
		sh.ZoomIn()
		assert.Equal(t, 200, sh.Session().Zoom)
	})

	t.Run("zoom out saturates at min", func(t *testing.T) {
		t.Parallel()
		sh := newShell(&mock.Host{})
		for i := 0; i < 5; i++ {
			sh.ZoomOut()
		}
		assert.Equal(t, 50, sh.Session().Zoom)
		sh.ZoomOut()
		assert.Equal(t, 50, sh.Session().Zoom)
	})
}

func TestShell_SetTheme(t *testing.T) {
	t.Parallel()

	for _, theme := range viewer.Themes {
		t.Run(string(theme), func(t *testing.T) {
			t.Parallel()
			sh := newShell(&mock.Host{})
			require.NoError(t, sh.SetTheme(theme))
			require.NoError(t, sh.SetTheme(theme))

			var active []viewer.Theme
			for _, opt := range sh.View().Themes {
				if opt.Active {
					active = append(active, opt.Theme)
				}
			}
			assert.Equal(t, []viewer.Theme{theme}, active)
		})
	}

	t.Run("unknown theme rejected", func(t *testing.T) {
		t.Parallel()
		sh := newShell(&mock.Host{})
		err := sh.SetTheme("neon")
		assert.ErrorIs(t, err, viewer.ErrUnknownTheme)
		assert.Equal(t, viewer.ThemeLight, sh.Session().Theme)
	})

	t.Run("cycle wraps around", func(t *testing.T) {
		t.Parallel()
		sh := newShell(&mock.Host{})
		sh.CycleTheme()
		assert.Equal(t, viewer.ThemeDark, sh.Session().Theme)
		sh.CycleTheme()
		assert.Equal(t, viewer.ThemeSepia, sh.Session().Theme)
		sh.CycleTheme()
		assert.Equal(t, viewer.ThemeLight, sh.Session().Theme)
	})
}

func TestShell_LoadFile(t *testing.T) {
	t.Parallel()

	t.Run("success with windows path", func(t *testing.T) {
		t.Parallel()
		sh := newShell(files(map[string]string{`C:\docs\a.md`: "# Hi"}))
		sh.LoadFile(context.Background(), `C:\docs\a.md`)

		s := sh.Session()
		require.NotNil(t, s.Document)
		assert.Equal(t, "a.md", s.FileName())
		assert.Equal(t, "# Hi", s.Document.Text)
		assert.NoError(t, s.Err)

		v := sh.View()
		require.NotNil(t, v.Document)
		assert.Contains(t, v.Document.HTML, ">Hi</h1>")
		assert.Equal(t, "a.md", v.FileName)
		assert.False(t, v.Empty)
	})

	t.Run("success with slash path", func(t *testing.T) {
		t.Parallel()
		sh := newShell(files(map[string]string{"/home/u/notes/b.markdown": "text"}))
		sh.LoadFile(context.Background(), "/home/u/notes/b.markdown")
		assert.Equal(t, "b.markdown", sh.Session().FileName())
	})

	t.Run("failure keeps previous document", func(t *testing.T) {
		t.Parallel()
		sh := newShell(files(map[string]string{"a.md": "# A"}))
		sh.LoadFile(context.Background(), "a.md")
		sh.LoadFile(context.Background(), "missing.md")

		s := sh.Session()
		require.NotNil(t, s.Document)
		assert.Equal(t, "# A", s.Document.Text)
		assert.ErrorIs(t, s.Err, viewer.ErrReadFailure)
		assert.Contains(t, s.ErrorMessage(), "missing.md")

		v := sh.View()
		assert.NotEmpty(t, v.Alert)
		assert.NotNil(t, v.Document)
	})

	t.Run("failure without description uses fallback", func(t *testing.T) {
		t.Parallel()
		sh := newShell(&mock.Host{
			ReadFileFn: func(context.Context, string) (string, error) {
				return "", errors.New("")
			},
		})
		sh.LoadFile(context.Background(), "a.md")
		assert.Equal(t, "Failed to read file", sh.Session().ErrorMessage())
	})

	t.Run("success clears previous error", func(t *testing.T) {
		t.Parallel()
		sh := newShell(files(map[string]string{"a.md": "# A"}))
		sh.LoadFile(context.Background(), "missing.md")
		require.Error(t, sh.Session().Err)
		sh.LoadFile(context.Background(), "a.md")
		assert.NoError(t, sh.Session().Err)
	})

	t.Run("reads once", func(t *testing.T) {
		t.Parallel()
		calls := 0
		sh := newShell(&mock.Host{
			ReadFileFn: func(context.Context, string) (string, error) {
				calls++
				return "", errors.New("permission denied")
			},
		})
		sh.LoadFile(context.Background(), "a.md")
		assert.Equal(t, 1, calls)
	})

	t.Run("overlapping loads resolve last writer wins", func(t *testing.T) {
		t.Parallel()
		sh := newShell(files(map[string]string{"a.md": "A", "b.md": "B"}))
		ctx := context.Background()
		sh.BeginLoad("a.md")
		sh.BeginLoad("b.md")
		b := sh.Read(ctx, "b.md")
		a := sh.Read(ctx, "a.md")
		sh.FinishLoad(b)
		sh.FinishLoad(a)
		assert.Equal(t, "a.md", sh.Session().FileName())
	})
}

func TestShell_OpenFile(t *testing.T) {
	t.Parallel()

	t.Run("empty dialog result leaves session unchanged", func(t *testing.T) {
		t.Parallel()
		sh := newShell(&mock.Host{
			ShowOpenDialogFn: func(context.Context, string, []viewer.Filter) ([]string, error) {
				return nil, nil
			},
		})
		before := sh.Session()
		sh.OpenFile(context.Background())
		assert.Equal(t, before, sh.Session())
	})

	t.Run("loads first selection", func(t *testing.T) {
		t.Parallel()
		var gotTitle string
		var gotFilters []viewer.Filter
		host := files(map[string]string{"/d/one.md": "# One", "/d/two.md": "# Two"})
		host.ShowOpenDialogFn = func(_ context.Context, title string, filters []viewer.Filter) ([]string, error) {
			gotTitle = title
			gotFilters = filters
			return []string{"/d/one.md", "/d/two.md"}, nil
		}
		sh := newShell(host)
		sh.OpenFile(context.Background())

		assert.Equal(t, "Open Markdown File", gotTitle)
		require.Len(t, gotFilters, 2)
		assert.Equal(t, "Markdown Files", gotFilters[0].Name)
		assert.Equal(t, []string{"md", "markdown", "txt"}, gotFilters[0].Extensions)
		assert.Equal(t, []string{"*"}, gotFilters[1].Extensions)
		assert.Equal(t, "one.md", sh.Session().FileName())
	})

	t.Run("dialog failure sets error", func(t *testing.T) {
		t.Parallel()
		sh := newShell(&mock.Host{
			ShowOpenDialogFn: func(context.Context, string, []viewer.Filter) ([]string, error) {
				return nil, errors.New("")
			},
		})
		sh.OpenFile(context.Background())
		err := sh.Session().Err
		assert.ErrorIs(t, err, viewer.ErrDialogFailure)
		assert.Equal(t, "Failed to open file", sh.Session().ErrorMessage())
	})

	t.Run("opening clears previous error", func(t *testing.T) {
		t.Parallel()
		sh := newShell(&mock.Host{})
		sh.LoadFile(context.Background(), "missing.md")
		require.Error(t, sh.Session().Err)
		sh.OpenFile(context.Background())
		assert.NoError(t, sh.Session().Err)
	})
}

func TestShell_Initialize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "markdown argument", args: []string{"/bin/markread", "notes.md"}, want: []string{"notes.md"}},
		{name: "upper case extension", args: []string{"/bin/markread", "README.MARKDOWN"}, want: []string{"README.MARKDOWN"}},
		{name: "text argument", args: []string{"/bin/markread", "todo.txt"}, want: []string{"todo.txt"}},
		{name: "no argument", args: []string{"/bin/markread"}},
		{name: "unsupported extension", args: []string{"/bin/markread", "image.png"}},
		{name: "no extension", args: []string{"/bin/markread", "notes"}},
		{name: "empty argument vector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var reads []string
			sh := newShell(&mock.Host{
				ReadFileFn: func(_ context.Context, path string) (string, error) {
					reads = append(reads, path)
					return "x", nil
				},
			})
			sh.Initialize(context.Background(), tt.args)
			assert.Equal(t, tt.want, reads)
		})
	}
}

func TestShell_About(t *testing.T) {
	t.Parallel()

	t.Run("click inside card keeps overlay", func(t *testing.T) {
		t.Parallel()
		sh := newShell(&mock.Host{})
		sh.ShowAbout()
		sh.ClickAbout(viewer.AboutCard)
		assert.True(t, sh.Session().AboutVisible)
		assert.NotNil(t, sh.View().About)
	})

	for _, target := range []viewer.AboutTarget{viewer.AboutBackground, viewer.AboutClose} {
		t.Run("dismissing click", func(t *testing.T) {
			t.Parallel()
			sh := newShell(&mock.Host{})
			sh.ShowAbout()
			sh.ClickAbout(target)
			assert.False(t, sh.Session().AboutVisible)
			assert.Nil(t, sh.View().About)
		})
	}

	t.Run("author link opens url and keeps overlay", func(t *testing.T) {
		t.Parallel()
		var opened []string
		sh := newShell(&mock.Host{OpenFn: func(url string) { opened = append(opened, url) }})
		sh.ShowAbout()
		sh.ClickAbout(viewer.AboutLink)
		assert.Equal(t, []string{"https://ManiG.dev"}, opened)
		assert.True(t, sh.Session().AboutVisible)
	})

	t.Run("clicks ignored while hidden", func(t *testing.T) {
		t.Parallel()
		var opened []string
		sh := newShell(&mock.Host{OpenFn: func(url string) { opened = append(opened, url) }})
		sh.ClickAbout(viewer.AboutLink)
		assert.Empty(t, opened)
	})
}

func TestShell_OpenExternalLink(t *testing.T) {
	t.Parallel()

	var opened []string
	sh := newShell(&mock.Host{OpenFn: func(url string) { opened = append(opened, url) }})
	before := sh.Session()
	sh.OpenExternalLink("https://example.com")
	assert.Equal(t, []string{"https://example.com"}, opened)
	assert.Equal(t, before, sh.Session())
}
