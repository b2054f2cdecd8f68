package confkit

import (
	"fmt"
	"os"
	"path/filepath"
)

const maxSearchDepth = 8

// ProjectRoot walks up from the working directory to the first directory
// holding go.mod or .git. It returns the working directory when none is found.
func ProjectRoot() (string, error) {
	dirs := searchDirs()
	if len(dirs) == 0 {
		return ".", fmt.Errorf("confkit: working directory unavailable")
	}
	return dirs[len(dirs)-1], nil
}

// ProjectPath joins the project root with rel.
func ProjectPath(rel string) (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// MustProjectPath is ProjectPath that panics on failure.
func MustProjectPath(rel string) string {
	p, err := ProjectPath(rel)
	if err != nil {
		panic(err)
	}
	return p
}

// searchDirs lists the working directory and its parents up to and including
// the project root. Without a root marker only the working directory is
// returned.
func searchDirs() []string {
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	var dirs []string
	for dir, i := wd, 0; i < maxSearchDepth; i++ {
		dirs = append(dirs, dir)
		if fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git")) {
			return dirs
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return []string{wd}
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
