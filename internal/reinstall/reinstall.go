// Package reinstall sequences the stop, uninstall, install, and start phases
// of a service redeployment against the control manager and the external
// installer utility.
package reinstall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"svcredo/internal/installer"
	"svcredo/internal/messages"
	"svcredo/internal/scm"
)

// settleDelay is the fixed pause after the stop and uninstall phases. The
// control manager transitions services asynchronously and offers nothing to
// wait on here, so the original blind delay is preserved.
const settleDelay = 2 * time.Second

// Request carries the parameters for one reinstall run.
type Request struct {
	// ExePath is the service executable containing the installer definition.
	ExePath string
	// ServiceName is the registered service name. Empty means derive it
	// from ExePath.
	ServiceName string
	// StartAfterInstall controls whether the start phase runs at all.
	StartAfterInstall bool
	// WaitTime is the pause between the install and start phases, giving
	// the control manager time to finish registering the new service.
	WaitTime time.Duration
}

// Orchestrator runs the reinstall sequence. The zero value is not usable;
// construct it with New.
type Orchestrator struct {
	SCM       scm.Manager
	Installer *installer.Util

	// Sleep is called for every delay in the sequence. Tests replace it
	// to audit durations without waiting.
	Sleep func(time.Duration)

	// Out receives progress lines as the sequence runs.
	Out io.Writer
}

// New returns an Orchestrator using real sleeps and writing progress to out.
func New(m scm.Manager, util *installer.Util, out io.Writer) *Orchestrator {
	return &Orchestrator{SCM: m, Installer: util, Sleep: time.Sleep, Out: out}
}

// Run executes the sequence in strict order: stop, settle, uninstall, settle,
// install, wait, start. Only an install failure returns an error; every other
// failure is recorded in the report and the sequence continues. The report is
// valid even on error, covering the phases that ran.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Report, error) {
	name, guessed := ResolveServiceName(req.ServiceName, req.ExePath)
	report := Report{ResolvedName: name, NameGuessed: guessed}
	if guessed {
		o.printf(messages.ResolvedNameGuessFmt+"\n", name)
	}

	report.Stop = o.stopPhase(name)
	o.sleep(settleDelay)

	report.Uninstall = o.uninstallPhase(ctx, req.ExePath)
	o.sleep(settleDelay)

	o.printf(messages.InstallRunningFmt, req.ExePath)
	out, err := o.Installer.Install(ctx, req.ExePath)
	if err != nil {
		report.Install = PhaseResult{
			Phase:   messages.PhaseInstall,
			Outcome: OutcomeFailed,
			Detail:  installDetail(fmt.Sprintf(messages.InstallFailedFmt, err), out),
		}
		return report, fmt.Errorf(messages.InstallAbortFmt, req.ExePath, err)
	}
	report.Install = PhaseResult{
		Phase:   messages.PhaseInstall,
		Outcome: OutcomeOK,
		Detail:  fmt.Sprintf(messages.InstallOKFmt, req.ExePath),
	}

	o.sleep(req.WaitTime)

	if !req.StartAfterInstall {
		report.Start = PhaseResult{
			Phase:   messages.PhaseStart,
			Outcome: OutcomeSkipped,
			Detail:  messages.StartDisabled,
		}
		return report, nil
	}

	o.startPhase(name, &report)
	return report, nil
}

// stopPhase looks up the service by its exact resolved name and asks it to
// stop. Absence and stop failures are both non-fatal: the service may never
// have been installed, may already be stopped, or may only go away with the
// uninstall that follows.
func (o *Orchestrator) stopPhase(name string) PhaseResult {
	o.printf(messages.StopLookingFmt, name)
	_, err := o.SCM.Lookup(name)
	if errors.Is(err, scm.ErrNotFound) {
		return PhaseResult{
			Phase:   messages.PhaseStop,
			Outcome: OutcomeSkipped,
			Detail:  fmt.Sprintf(messages.StopNotFoundFmt, name),
		}
	}
	if err == nil {
		err = o.SCM.Stop(name)
	}
	if err != nil {
		return PhaseResult{
			Phase:   messages.PhaseStop,
			Outcome: OutcomeFailed,
			Detail:  fmt.Sprintf(messages.StopFailedFmt, name, err),
		}
	}
	return PhaseResult{
		Phase:   messages.PhaseStop,
		Outcome: OutcomeOK,
		Detail:  fmt.Sprintf(messages.StopStoppedFmt, name),
	}
}

// uninstallPhase invokes the installer in unregister mode. Failure is
// non-fatal; a service that was never installed fails this step by design.
func (o *Orchestrator) uninstallPhase(ctx context.Context, exePath string) PhaseResult {
	o.printf(messages.UninstallRunningFmt, exePath)
	out, err := o.Installer.Uninstall(ctx, exePath)
	if err != nil {
		return PhaseResult{
			Phase:   messages.PhaseUninstall,
			Outcome: OutcomeFailed,
			Detail:  installDetail(fmt.Sprintf(messages.UninstallFailedFmt, err), out),
		}
	}
	return PhaseResult{
		Phase:   messages.PhaseUninstall,
		Outcome: OutcomeOK,
		Detail:  fmt.Sprintf(messages.UninstallOKFmt, exePath),
	}
}

// startPhase finds the freshly installed service and starts it. Substring
// matches against name and display name come first; the exact name is only
// tried when the substring search found nothing. Each match is started
// independently, and finding nothing at all is reported but not fatal: the
// install itself already succeeded.
func (o *Orchestrator) startPhase(name string, report *Report) {
	services, err := o.SCM.List()
	if err != nil {
		report.Start = PhaseResult{
			Phase:          messages.PhaseStart,
			Outcome:        OutcomeFailed,
			Detail:         fmt.Sprintf(messages.StartListFailedFmt, err),
			Recommendation: messages.StartNoneFoundRecommend,
		}
		return
	}

	matches := Match(services, name)
	if len(matches) > 0 {
		o.printf(messages.StartMatchedFmt, len(matches), name)
	} else {
		if exact, err := o.SCM.Lookup(name); err == nil {
			o.printf(messages.StartExactFmt, name)
			matches = []scm.Service{exact}
		}
	}

	if len(matches) == 0 {
		report.Start = PhaseResult{
			Phase:          messages.PhaseStart,
			Outcome:        OutcomeFailed,
			Detail:         fmt.Sprintf(messages.StartNoneFoundFmt, name),
			Recommendation: messages.StartNoneFoundRecommend,
		}
		return
	}

	for _, match := range matches {
		report.Starts = append(report.Starts, o.startOne(match.Name))
	}

	outcome := OutcomeOK
	if report.StartedCount() < len(report.Starts) {
		outcome = OutcomeFailed
	}
	report.Start = PhaseResult{
		Phase:   messages.PhaseStart,
		Outcome: outcome,
		Detail:  fmt.Sprintf("%d of %d service(s) running", report.StartedCount(), len(report.Starts)),
	}
}

// startOne starts a single service and verifies it actually reached the
// running state.
func (o *Orchestrator) startOne(name string) StartResult {
	o.printf(messages.StartAttemptFmt, name)
	if err := o.SCM.Start(name); err != nil {
		return StartResult{
			Name:    name,
			Outcome: OutcomeFailed,
			Detail:  fmt.Sprintf(messages.StartFailedFmt, name, err),
		}
	}
	status, err := o.SCM.Status(name)
	if err != nil {
		return StartResult{
			Name:    name,
			Outcome: OutcomeFailed,
			Detail:  fmt.Sprintf(messages.StartFailedFmt, name, err),
		}
	}
	if status != scm.StatusRunning {
		return StartResult{
			Name:    name,
			Outcome: OutcomeFailed,
			Detail:  fmt.Sprintf(messages.StartBadStatusFmt, name, status),
		}
	}
	return StartResult{
		Name:    name,
		Outcome: OutcomeOK,
		Detail:  fmt.Sprintf(messages.StartRunningFmt, name),
	}
}

func (o *Orchestrator) sleep(d time.Duration) {
	o.printf(messages.SettleWaitFmt, d)
	o.Sleep(d)
}

func (o *Orchestrator) printf(format string, args ...any) {
	if o.Out != nil {
		_, _ = fmt.Fprintf(o.Out, format, args...)
	}
}

// installDetail appends captured installer output to a failure message so the
// user sees what InstallUtil itself said.
func installDetail(msg string, out string) string {
	if out == "" {
		return msg
	}
	return msg + "\ninstaller output:\n" + out
}
