// Package privilege reports whether the current process holds the rights
// needed to manage services.
package privilege
