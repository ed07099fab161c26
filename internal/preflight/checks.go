// Package preflight validates the environment before the reinstall sequence
// performs any side effect. Every check yields a Result with a remediation
// hint; a single failing check aborts the run.
package preflight

import (
	"fmt"
	"path/filepath"

	"svcredo/internal/installer"
	"svcredo/internal/messages"
)

// Status classifies a check outcome.
type Status int

// Check outcomes.
const (
	StatusOK Status = iota
	StatusFail
)

// Result is the outcome of one preflight check.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// CheckElevation verifies the process holds administrator privileges.
// elevated is injected so tests do not depend on how the test runner is launched.
func CheckElevation(elevated func() bool) Result {
	if !elevated() {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.PreflightCheckNameElevation,
			Message:        messages.PreflightNotElevated,
			Recommendation: messages.PreflightElevationRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckNameElevation,
		Message:   messages.PreflightElevated,
	}
}

// CheckInstallUtil verifies the installer directory exists and contains
// InstallUtil.exe. The executable check is skipped when the directory is
// already missing; one failure per cause is enough.
func CheckInstallUtil(sys System, dir string) []Result {
	info, err := sys.Stat(dir)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.PreflightCheckNameInstallUtilDir,
			Message:        fmt.Sprintf(messages.PreflightInstallUtilDirMissingFmt, dir),
			Recommendation: messages.PreflightInstallUtilDirRecommend,
		}}
	}
	if !info.IsDir() {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.PreflightCheckNameInstallUtilDir,
			Message:        fmt.Sprintf(messages.PreflightInstallUtilDirNotDirFmt, dir),
			Recommendation: messages.PreflightInstallUtilDirRecommend,
		}}
	}

	results := []Result{{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckNameInstallUtilDir,
		Message:   fmt.Sprintf(messages.PreflightInstallUtilDirExistsFmt, dir),
	}}

	exe := filepath.Join(dir, installer.ExeName)
	if _, err := sys.Stat(exe); err != nil {
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.PreflightCheckNameInstallUtil,
			Message:        fmt.Sprintf(messages.PreflightInstallUtilMissingFmt, dir),
			Recommendation: messages.PreflightInstallUtilRecommend,
		})
		return results
	}
	results = append(results, Result{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckNameInstallUtil,
		Message:   fmt.Sprintf(messages.PreflightInstallUtilFoundFmt, exe),
	})
	return results
}

// CheckServiceExe verifies the service executable exists on disk.
func CheckServiceExe(sys System, path string) Result {
	if _, err := sys.Stat(path); err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.PreflightCheckNameServiceExe,
			Message:        fmt.Sprintf(messages.PreflightServiceExeMissingFmt, path),
			Recommendation: messages.PreflightServiceExeRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckNameServiceExe,
		Message:   fmt.Sprintf(messages.PreflightServiceExeFoundFmt, path),
	}
}

// Run executes every precondition check in order.
func Run(sys System, elevated func() bool, installUtilDir string, serviceExe string) []Result {
	results := []Result{CheckElevation(elevated)}
	results = append(results, CheckInstallUtil(sys, installUtilDir)...)
	results = append(results, CheckServiceExe(sys, serviceExe))
	return results
}

// HasFail reports whether any result failed.
func HasFail(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
