//go:build windows

package scm

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

// manager drives the real Windows SCM. Each operation opens and closes its
// own connection; the reinstall flow issues a handful of calls per run, so
// holding a connection across phases buys nothing.
type manager struct{}

// New returns a Manager backed by the Windows service control manager.
func New() Manager {
	return manager{}
}

func (manager) List() ([]Service, error) {
	m, err := mgr.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to service manager: %w", err)
	}
	defer m.Disconnect()

	names, err := m.ListServices()
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	services := make([]Service, 0, len(names))
	for _, name := range names {
		s, err := m.OpenService(name)
		if err != nil {
			// Services can vanish between list and open; skip them.
			continue
		}
		info := Service{Name: name, Status: StatusUnknown}
		if cfg, err := s.Config(); err == nil {
			info.DisplayName = cfg.DisplayName
		}
		if status, err := s.Query(); err == nil {
			info.Status = fromState(status.State)
		}
		s.Close()
		services = append(services, info)
	}
	return services, nil
}

func (manager) Lookup(name string) (Service, error) {
	m, err := mgr.Connect()
	if err != nil {
		return Service{}, fmt.Errorf("connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		if errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
			return Service{}, fmt.Errorf("service %q: %w", name, ErrNotFound)
		}
		return Service{}, fmt.Errorf("open service %q: %w", name, err)
	}
	defer s.Close()

	info := Service{Name: name, Status: StatusUnknown}
	if cfg, err := s.Config(); err == nil {
		info.DisplayName = cfg.DisplayName
	}
	if status, err := s.Query(); err == nil {
		info.Status = fromState(status.State)
	}
	return info, nil
}

func (manager) Stop(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		if errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
			return fmt.Errorf("service %q: %w", name, ErrNotFound)
		}
		return fmt.Errorf("open service %q: %w", name, err)
	}
	defer s.Close()

	// Dependents keep the target pinned; stop them first, best effort.
	if deps, err := s.ListDependentServices(svc.Active); err == nil {
		for _, dep := range deps {
			ds, err := m.OpenService(dep)
			if err != nil {
				continue
			}
			_, _ = ds.Control(svc.Stop)
			ds.Close()
		}
	}

	if _, err := s.Control(svc.Stop); err != nil {
		return fmt.Errorf("stop service %q: %w", name, err)
	}
	return nil
}

func (manager) Start(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		if errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
			return fmt.Errorf("service %q: %w", name, ErrNotFound)
		}
		return fmt.Errorf("open service %q: %w", name, err)
	}
	defer s.Close()

	if err := s.Start(); err != nil {
		return fmt.Errorf("start service %q: %w", name, err)
	}
	return nil
}

func (manager) Status(name string) (Status, error) {
	m, err := mgr.Connect()
	if err != nil {
		return StatusUnknown, fmt.Errorf("connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		if errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
			return StatusUnknown, fmt.Errorf("service %q: %w", name, ErrNotFound)
		}
		return StatusUnknown, fmt.Errorf("open service %q: %w", name, err)
	}
	defer s.Close()

	status, err := s.Query()
	if err != nil {
		return StatusUnknown, fmt.Errorf("query service %q: %w", name, err)
	}
	return fromState(status.State), nil
}

func fromState(state svc.State) Status {
	switch state {
	case svc.Running:
		return StatusRunning
	case svc.Stopped:
		return StatusStopped
	case svc.StartPending:
		return StatusStartPending
	case svc.StopPending:
		return StatusStopPending
	default:
		return StatusUnknown
	}
}
