package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"svcredo/internal/messages"
	"svcredo/internal/preflight"
	"svcredo/internal/privilege"
)

// newCheckCmd builds the `check` subcommand: the same preflight the root
// command runs, with no side effects afterwards.
func newCheckCmd() *cobra.Command {
	var installUtilDir string
	cmd := &cobra.Command{
		Use:           messages.CheckUse,
		Short:         messages.CheckShort,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			exePath, err := expandPath(args[0])
			if err != nil {
				return err
			}
			dir, err := expandPath(installUtilDir)
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
			_, _ = fmt.Fprintln(out, messages.PreflightPassed)
			return nil
		},
	}
	cmd.Flags().StringVar(&installUtilDir, "installutil-dir", defaultInstallUtilDir, messages.FlagInstallUtilDir)
	return cmd
}
