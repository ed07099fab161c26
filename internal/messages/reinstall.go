package messages

// Reinstall phase names and progress messages.
const (
	PhaseStop      = "Stop"
	PhaseUninstall = "Uninstall"
	PhaseInstall   = "Install"
	PhaseStart     = "Start"

	ResolvedNameGuessFmt = "No service name supplied; guessing %q from the executable name. The authoritative name is whatever the installer registered, so the stop and start lookups may miss."

	StopLookingFmt  = "Stopping service %q...\n"
	StopNotFoundFmt = "service %q is not registered; nothing to stop"
	StopStoppedFmt  = "service %q stopped"
	StopFailedFmt   = "could not stop service %q: %v (it may already be stopped, or only removable by uninstall)"

	SettleWaitFmt = "Waiting %s for the service control manager to settle...\n"

	UninstallRunningFmt = "Uninstalling %s...\n"
	UninstallOKFmt      = "uninstall completed: %s"
	UninstallFailedFmt  = "uninstall failed (the service may not have been installed): %v"

	InstallRunningFmt = "Installing %s...\n"
	InstallOKFmt      = "install completed: %s"
	InstallFailedFmt  = "install failed: %v"
	InstallAbortFmt   = "install of %s failed: %w"

	StartDisabled      = "start-after-install disabled; leaving the service stopped"
	StartListFailedFmt = "could not list services: %v"
	StartMatchedFmt    = "Found %d service(s) matching %q.\n"
	StartExactFmt      = "No substring match for %q; falling back to the exact name.\n"
	StartAttemptFmt    = "Starting service %q...\n"
	StartRunningFmt    = "service %q is running"
	StartBadStatusFmt  = "service %q did not reach running state (status: %s)"
	StartFailedFmt     = "could not start service %q: %v"

	StartNoneFoundFmt       = "no service matching %q was found to start"
	StartNoneFoundRecommend = "Check the name the installer actually registered (it may differ from the executable name) and review the install output above, then start the service manually."
)
