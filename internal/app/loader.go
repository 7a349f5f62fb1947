package app

import (
	"os"
	"path/filepath"
)

// StartDir picks the directory the open dialog starts in: the launch
// argument when it is a directory, the directory of the launch argument
// when it names an existing file, and the working directory otherwise.
func StartDir(args []string) string {
	if len(args) > 1 {
		if abs, err := filepath.Abs(args[1]); err == nil {
			if info, err := os.Stat(abs); err == nil {
				if info.IsDir() {
					return abs
				}
				return filepath.Dir(abs)
			}
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
