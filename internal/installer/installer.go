// Package installer invokes the external InstallUtil.exe utility that
// registers and unregisters service definitions found inside an executable.
package installer

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

// ExeName is the installer utility's file name inside the .NET directory.
const ExeName = "InstallUtil.exe"

// uninstallFlag switches InstallUtil into unregister mode.
const uninstallFlag = "/u"

// Commander executes an external binary and returns its combined
// stdout/stderr. It exists so tests can substitute a mock.
type Commander interface {
	CombinedOutput(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// ExecCommander runs binaries with os/exec.
type ExecCommander struct{}

// CombinedOutput runs name with args in dir and returns its combined output.
// The working directory is set on the command itself; the process-wide
// working directory is never touched.
func (ExecCommander) CombinedOutput(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Util invokes InstallUtil.exe from a fixed directory.
type Util struct {
	// Dir is the directory containing InstallUtil.exe, also used as the
	// working directory for every invocation.
	Dir string
	// Commander runs the actual process. Defaults to ExecCommander.
	Commander Commander
}

// New returns a Util that runs the InstallUtil.exe found in dir.
func New(dir string) *Util {
	return &Util{Dir: dir, Commander: ExecCommander{}}
}

// Path returns the absolute invocation path of the installer executable.
func (u *Util) Path() string {
	return filepath.Join(u.Dir, ExeName)
}

// Uninstall unregisters the service definition inside exePath.
// The combined output is returned even when the invocation fails.
func (u *Util) Uninstall(ctx context.Context, exePath string) (string, error) {
	return u.run(ctx, uninstallFlag, exePath)
}

// Install registers the service definition inside exePath.
// The combined output is returned even when the invocation fails.
func (u *Util) Install(ctx context.Context, exePath string) (string, error) {
	return u.run(ctx, exePath)
}

func (u *Util) run(ctx context.Context, args ...string) (string, error) {
	out, err := u.Commander.CombinedOutput(ctx, u.Dir, u.Path(), args...)
	if err != nil {
		return out, fmt.Errorf("run %s: %w", ExeName, err)
	}
	return out, nil
}
