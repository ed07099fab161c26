package messages

// CLI messages for the root and check commands.
const (
	RootUse   = "svcredo <service-exe>"
	RootShort = "Reinstall a Windows service from a rebuilt executable"
	RootLong  = `svcredo stops, uninstalls, reinstalls, and restarts a Windows service whose
binary is registered through the .NET InstallUtil utility.

The stop and uninstall steps are best-effort: a service that is absent or
already stopped does not abort the run. A failed install does. Run one
instance at a time against a given service; svcredo does not enforce
mutual exclusion.`

	CheckUse   = "check <service-exe>"
	CheckShort = "Run the preflight checks without touching the service"

	FlagServiceName       = "registered service name (default: executable file name without extension)"
	FlagInstallUtilDir    = "directory containing InstallUtil.exe"
	FlagStartAfterInstall = "start the service after a successful install"
	FlagWait              = "seconds to wait after installing before starting the service"

	StatusOKLabel   = "[ OK ]"
	StatusSkipLabel = "[SKIP]"
	StatusFailLabel = "[FAIL]"

	ResultLineFmt        = "%s %s: %s\n"
	RecommendationPrefix = "       -> "

	PreflightPassed = "Preflight checks passed."
	PreflightFailed = "Preflight failed; nothing was changed."

	ExpandPathFailedFmt = "cannot expand path %q: %v"
	WaitNegativeFmt     = "--wait must not be negative (got %d)"

	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"
)
