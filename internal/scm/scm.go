// Package scm wraps the platform service control manager behind a small
// query/stop/start interface keyed by service name.
package scm

import "errors"

// Status is the lifecycle state the control manager reports for a service.
type Status string

// Status values. Unknown covers states this tool has no use for (paused,
// continue-pending, and friends).
const (
	StatusRunning      Status = "running"
	StatusStopped      Status = "stopped"
	StatusStartPending Status = "start-pending"
	StatusStopPending  Status = "stop-pending"
	StatusUnknown      Status = "unknown"
)

// Service describes a registered service as read from the control manager.
// Instances are query results only; registration happens through the external
// installer, never through this package.
type Service struct {
	Name        string
	DisplayName string
	Status      Status
}

// Manager is the subset of control-manager operations the reinstall flow
// needs. The windows implementation talks to the real SCM; tests substitute
// a fake.
type Manager interface {
	// List returns every registered service.
	List() ([]Service, error)
	// Lookup returns the service with exactly the given name, or ErrNotFound.
	Lookup(name string) (Service, error)
	// Stop asks the service to stop, stopping its active dependents first.
	// It does not wait for the stop to complete.
	Stop(name string) error
	// Start asks the service to start. It does not wait for it to reach
	// the running state.
	Start(name string) error
	// Status returns the current state of the named service.
	Status(name string) (Status, error)
}

// ErrNotFound reports that no service with the requested name is registered.
var ErrNotFound = errors.New("service not found")

// ErrUnsupported reports that the host OS has no service control manager
// this tool can drive.
var ErrUnsupported = errors.New("service control manager not supported on this platform")
