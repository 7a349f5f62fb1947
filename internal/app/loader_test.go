package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/markread/internal/app"
)

func TestStartDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, []byte("# a"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no argument", args: []string{"markread"}, want: wd},
		{name: "directory", args: []string{"markread", dir}, want: dir},
		{name: "file", args: []string{"markread", file}, want: dir},
		{name: "missing path", args: []string{"markread", filepath.Join(dir, "nope.md")}, want: wd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, app.StartDir(tt.args))
		})
	}
}
