package messages

// Preflight check names and messages.
const (
	PreflightCheckNameElevation      = "Elevation"
	PreflightCheckNameInstallUtilDir = "InstallUtilDir"
	PreflightCheckNameInstallUtil    = "InstallUtil"
	PreflightCheckNameServiceExe     = "ServiceExe"

	PreflightElevated           = "Running with administrator privileges"
	PreflightNotElevated        = "Not running with administrator privileges"
	PreflightElevationRecommend = "Start this tool from an elevated prompt (Run as administrator)."

	PreflightInstallUtilDirExistsFmt  = "InstallUtil directory exists: %s"
	PreflightInstallUtilDirMissingFmt = "InstallUtil directory does not exist: %s"
	PreflightInstallUtilDirNotDirFmt  = "InstallUtil path exists but is not a directory: %s"
	PreflightInstallUtilDirRecommend  = "Pass the .NET Framework directory that contains InstallUtil.exe with --installutil-dir."

	PreflightInstallUtilFoundFmt   = "Installer found: %s"
	PreflightInstallUtilMissingFmt = "InstallUtil.exe not found in %s"
	PreflightInstallUtilRecommend  = "Verify the .NET Framework installation, or point --installutil-dir at a version that ships InstallUtil.exe."

	PreflightServiceExeFoundFmt   = "Service executable exists: %s"
	PreflightServiceExeMissingFmt = "Service executable does not exist: %s"
	PreflightServiceExeRecommend  = "Build the service first, or fix the path passed on the command line."
)
