//go:build !windows

package privilege

import "os"

// IsElevated reports whether the process runs as root. Service management on
// non-windows hosts is unsupported, but the preflight still wants a sane answer.
func IsElevated() bool {
	return os.Geteuid() == 0
}
