package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"svcredo/internal/installer"
	"svcredo/internal/messages"
	"svcredo/internal/preflight"
	"svcredo/internal/privilege"
	"svcredo/internal/reinstall"
	"svcredo/internal/scm"
)

// defaultInstallUtilDir is where 64-bit .NET Framework 4.x ships InstallUtil.exe.
const defaultInstallUtilDir = `C:\Windows\Microsoft.NET\Framework64\v4.0.30319`

const defaultWaitSeconds = 5

// rootOptions carries the flag values shared by the root and check commands.
type rootOptions struct {
	serviceName       string
	installUtilDir    string
	startAfterInstall bool
	waitSeconds       int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReinstall(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.serviceName, "service-name", "", messages.FlagServiceName)
	cmd.Flags().StringVar(&opts.installUtilDir, "installutil-dir", defaultInstallUtilDir, messages.FlagInstallUtilDir)
	cmd.Flags().BoolVar(&opts.startAfterInstall, "start-after-install", true, messages.FlagStartAfterInstall)
	cmd.Flags().IntVar(&opts.waitSeconds, "wait", defaultWaitSeconds, messages.FlagWait)

	cmd.AddCommand(newCheckCmd())
	return cmd
}

// runReinstall validates the environment and then drives the full
// stop/uninstall/install/start sequence. Preflight failures and install
// failures return an error (exit 1); everything else is reported and exits 0.
func runReinstall(cmd *cobra.Command, exeArg string, opts *rootOptions) error {
	out := cmd.OutOrStdout()

	if opts.waitSeconds < 0 {
		return fmt.Errorf(messages.WaitNegativeFmt, opts.waitSeconds)
	}
	exePath, err := expandPath(exeArg)
	if err != nil {
		return err
	}
	dir, err := expandPath(opts.installUtilDir)
	if err != nil {
		return err
	}

	results := preflight.Run(preflight.RealSystem{}, privilege.IsElevated, dir, exePath)
	for _, r := range results {
		printCheckResult(out, r)
	}
	if preflight.HasFail(results) {
		return errors.New(messages.PreflightFailed)
	}

	orch := reinstall.New(scm.New(), installer.New(dir), out)
	report, runErr := orch.Run(cmd.Context(), reinstall.Request{
		ExePath:           exePath,
		ServiceName:       opts.serviceName,
		StartAfterInstall: opts.startAfterInstall,
		WaitTime:          time.Duration(opts.waitSeconds) * time.Second,
	})
	renderReport(out, report)
	return runErr
}

// expandPath expands a leading ~ in a user-supplied path.
func expandPath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf(messages.ExpandPathFailedFmt, p, err)
	}
	return expanded, nil
}

// printCheckResult renders one preflight result with a colored status label.
func printCheckResult(out io.Writer, r preflight.Result) {
	label := color.GreenString(messages.StatusOKLabel)
	if r.Status == preflight.StatusFail {
		label = color.RedString(messages.StatusFailLabel)
	}
	_, _ = fmt.Fprintf(out, messages.ResultLineFmt, label, r.CheckName, r.Message)
	if r.Recommendation != "" {
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.RecommendationPrefix, r.Recommendation)
	}
}

// renderReport prints the per-phase outcomes and the individual start attempts.
func renderReport(out io.Writer, report reinstall.Report) {
	for _, p := range report.Phases() {
		_, _ = fmt.Fprintf(out, messages.ResultLineFmt, outcomeLabel(p.Outcome), p.Phase, p.Detail)
		if p.Recommendation != "" {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.RecommendationPrefix, p.Recommendation)
		}
	}
	for _, s := range report.Starts {
		_, _ = fmt.Fprintf(out, messages.ResultLineFmt, outcomeLabel(s.Outcome), s.Name, s.Detail)
	}
}

func outcomeLabel(o reinstall.Outcome) string {
	switch o {
	case reinstall.OutcomeOK:
		return color.GreenString(messages.StatusOKLabel)
	case reinstall.OutcomeSkipped:
		return color.YellowString(messages.StatusSkipLabel)
	default:
		return color.RedString(messages.StatusFailLabel)
	}
}
