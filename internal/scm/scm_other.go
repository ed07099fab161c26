//go:build !windows

package scm

// unsupported satisfies Manager on hosts without a Windows SCM so the rest
// of the tool still builds and its preflight can explain the situation.
type unsupported struct{}

// New returns a Manager whose every operation reports ErrUnsupported.
func New() Manager {
	return unsupported{}
}

func (unsupported) List() ([]Service, error) { return nil, ErrUnsupported }

func (unsupported) Lookup(string) (Service, error) { return Service{}, ErrUnsupported }

func (unsupported) Stop(string) error { return ErrUnsupported }

func (unsupported) Start(string) error { return ErrUnsupported }

func (unsupported) Status(string) (Status, error) { return StatusUnknown, ErrUnsupported }
