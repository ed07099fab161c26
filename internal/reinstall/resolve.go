package reinstall

import (
	"path"
	"strings"

	"svcredo/internal/scm"
)

// ResolveServiceName returns the declared name when present, otherwise the
// executable's file name with its final extension removed (My.Service.exe
// becomes My.Service). The derived name is a hint only: the authoritative
// name is whatever the installer registered with the control manager, so
// guessed is surfaced to warn the user.
func ResolveServiceName(declared string, exePath string) (name string, guessed bool) {
	if trimmed := strings.TrimSpace(declared); trimmed != "" {
		return trimmed, false
	}
	base := exePath
	// Windows paths must resolve correctly even when this runs under test
	// on another OS, so split on both separator styles by hand.
	if i := strings.LastIndexAny(base, `\/`); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, path.Ext(base)), true
}

// Match returns the services whose name or display name contains hint,
// case-insensitively. Over-matching is accepted behavior: a hint of "Data"
// matches an unrelated "DataBase" service. The exact-name fallback in the
// start phase only runs when this returns nothing, so narrowing the match
// here would change which branch fires.
func Match(services []scm.Service, hint string) []scm.Service {
	needle := strings.ToLower(hint)
	var matches []scm.Service
	for _, s := range services {
		if strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.DisplayName), needle) {
			matches = append(matches, s)
		}
	}
	return matches
}
