package preflight

import "os"

// System abstracts the filesystem operations the preflight checks need.
// Package-local so tests can run in parallel against fakes without touching
// shared global state.
type System interface {
	Stat(name string) (os.FileInfo, error)
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
