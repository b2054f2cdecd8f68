package confkit

import (
	"os"
	"path/filepath"
)

// ResolvePath expands environment variables in file and anchors a relative
// result at base.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// Section is a sub-config kept in its own file and referenced from the main
// config by path. Value stays nil until Hydrate runs with a non-empty File.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate loads File, resolved against base, through loader.
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	path := ResolvePath(base, s.File)
	value, err := loader(path)
	if err != nil {
		return err
	}
	s.File, s.Value = path, value
	return nil
}

// Loaded reports whether the section has been hydrated.
func (s *Section[T]) Loaded() bool {
	return s != nil && s.Value != nil
}
