package reinstall

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"svcredo/internal/installer"
	"svcredo/internal/scm"
)

// fakeSCM implements scm.Manager against an in-memory service table and
// records every call in order.
type fakeSCM struct {
	services []scm.Service

	listErr   error
	lookupErr map[string]error
	stopErr   map[string]error
	startErr  map[string]error
	statuses  map[string]scm.Status

	// lookupHook, when set, resolves names not present in services. It
	// simulates the list-vs-lookup race the exact-name fallback exists for.
	lookupHook func(name string) (scm.Service, bool)

	calls []string
}

func (f *fakeSCM) List() ([]scm.Service, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.services, nil
}

func (f *fakeSCM) Lookup(name string) (scm.Service, error) {
	f.calls = append(f.calls, "lookup:"+name)
	if err, ok := f.lookupErr[name]; ok {
		return scm.Service{}, err
	}
	for _, s := range f.services {
		if s.Name == name {
			return s, nil
		}
	}
	if f.lookupHook != nil {
		if s, ok := f.lookupHook(name); ok {
			return s, nil
		}
	}
	return scm.Service{}, fmt.Errorf("service %q: %w", name, scm.ErrNotFound)
}

func (f *fakeSCM) Stop(name string) error {
	f.calls = append(f.calls, "stop:"+name)
	return f.stopErr[name]
}

func (f *fakeSCM) Start(name string) error {
	f.calls = append(f.calls, "start:"+name)
	return f.startErr[name]
}

func (f *fakeSCM) Status(name string) (scm.Status, error) {
	f.calls = append(f.calls, "status:"+name)
	if st, ok := f.statuses[name]; ok {
		return st, nil
	}
	return scm.StatusRunning, nil
}

const testInstallDir = `C:\dotnet\v4`

func newTestOrchestrator(m scm.Manager, cmdr *installer.MockCommander) (*Orchestrator, *[]time.Duration, *bytes.Buffer) {
	util := &installer.Util{Dir: testInstallDir, Commander: cmdr}
	out := &bytes.Buffer{}
	slept := &[]time.Duration{}
	orch := New(m, util, out)
	orch.Sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return orch, slept, out
}

func fooServices() []scm.Service {
	return []scm.Service{
		{Name: "Foo", DisplayName: "Foo Service", Status: scm.StatusRunning},
		{Name: "FooBackup", DisplayName: "Foo Backup Service", Status: scm.StatusStopped},
		{Name: "Bar", DisplayName: "Bar Service", Status: scm.StatusRunning},
	}
}

func TestRunHappyPath(t *testing.T) {
	fake := &fakeSCM{services: fooServices()}
	cmdr := &installer.MockCommander{}
	orch, slept, _ := newTestOrchestrator(fake, cmdr)

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: true,
		WaitTime:          5 * time.Second,
	})
	require.NoError(t, err)

	require.Equal(t, "Foo", report.ResolvedName)
	require.True(t, report.NameGuessed)
	require.Equal(t, OutcomeOK, report.Stop.Outcome)
	require.Equal(t, OutcomeOK, report.Uninstall.Outcome)
	require.Equal(t, OutcomeOK, report.Install.Outcome)
	require.Equal(t, OutcomeOK, report.Start.Outcome)

	// Both Foo and FooBackup match the substring search.
	require.Len(t, report.Starts, 2)
	require.Equal(t, 2, report.StartedCount())

	// Installer invoked twice: uninstall with /u, then plain install, both
	// from the configured directory.
	require.Len(t, cmdr.Calls, 2)
	require.Equal(t, testInstallDir, cmdr.Calls[0].Dir)
	require.Equal(t, []string{"/u", `C:\build\Foo.exe`}, cmdr.Calls[0].Args)
	require.Equal(t, testInstallDir, cmdr.Calls[1].Dir)
	require.Equal(t, []string{`C:\build\Foo.exe`}, cmdr.Calls[1].Args)

	require.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, 5 * time.Second}, *slept)
}

func TestRunInstallFailureIsFatal(t *testing.T) {
	fake := &fakeSCM{services: fooServices()}
	cmdr := &installer.MockCommander{
		CombinedOutputFunc: func(_ context.Context, _ string, _ string, args ...string) (string, error) {
			if args[0] != "/u" {
				return "System.BadImageFormatException", errors.New("exit status 1")
			}
			return "", nil
		},
	}
	orch, slept, _ := newTestOrchestrator(fake, cmdr)

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: true,
		WaitTime:          5 * time.Second,
	})
	require.Error(t, err)
	require.Equal(t, OutcomeFailed, report.Install.Outcome)
	require.Contains(t, report.Install.Detail, "System.BadImageFormatException")

	// The start phase never ran: no list, start, or status calls.
	for _, call := range fake.calls {
		require.NotEqual(t, "list", call)
		require.NotContains(t, call, "start:")
		require.NotContains(t, call, "status:")
	}
	require.Empty(t, report.Starts)
	require.Empty(t, report.Start.Phase)

	// Only the two settle delays happened; the post-install wait did not.
	require.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, *slept)
}

func TestRunStartDisabled(t *testing.T) {
	fake := &fakeSCM{services: fooServices()}
	orch, slept, _ := newTestOrchestrator(fake, &installer.MockCommander{})

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: false,
		WaitTime:          10 * time.Second,
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeSkipped, report.Start.Outcome)
	require.Empty(t, report.Starts)

	// After the stop-phase lookup nothing queries the SCM again.
	require.Equal(t, []string{"lookup:Foo", "stop:Foo"}, fake.calls)
	require.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, 10 * time.Second}, *slept)
}

func TestRunWaitTimeIsConfigurable(t *testing.T) {
	for _, wait := range []time.Duration{0, 10 * time.Second} {
		t.Run(wait.String(), func(t *testing.T) {
			fake := &fakeSCM{services: fooServices()}
			orch, slept, _ := newTestOrchestrator(fake, &installer.MockCommander{})

			_, err := orch.Run(context.Background(), Request{
				ExePath:           `C:\build\Foo.exe`,
				StartAfterInstall: true,
				WaitTime:          wait,
			})
			require.NoError(t, err)
			require.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, wait}, *slept)
		})
	}
}

func TestRunStartAttemptsAreIndependent(t *testing.T) {
	fake := &fakeSCM{
		services: fooServices(),
		startErr: map[string]error{"Foo": errors.New("access denied")},
	}
	orch, _, _ := newTestOrchestrator(fake, &installer.MockCommander{})

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: true,
	})
	require.NoError(t, err)

	require.Len(t, report.Starts, 2)
	require.Equal(t, OutcomeFailed, report.Starts[0].Outcome)
	require.Contains(t, report.Starts[0].Detail, "access denied")
	require.Equal(t, OutcomeOK, report.Starts[1].Outcome)

	// The failed first start did not suppress the second attempt.
	require.Contains(t, fake.calls, "start:Foo")
	require.Contains(t, fake.calls, "start:FooBackup")
	require.Equal(t, OutcomeFailed, report.Start.Outcome)
	require.Equal(t, 1, report.StartedCount())
}

func TestRunStartVerifiesRunningStatus(t *testing.T) {
	fake := &fakeSCM{
		services: []scm.Service{{Name: "Foo", DisplayName: "Foo Service"}},
		statuses: map[string]scm.Status{"Foo": scm.StatusStartPending},
	}
	orch, _, _ := newTestOrchestrator(fake, &installer.MockCommander{})

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: true,
	})
	require.NoError(t, err)
	require.Len(t, report.Starts, 1)
	require.Equal(t, OutcomeFailed, report.Starts[0].Outcome)
	require.Contains(t, report.Starts[0].Detail, string(scm.StatusStartPending))
}

func TestRunNoServiceFoundIsNotFatal(t *testing.T) {
	fake := &fakeSCM{services: []scm.Service{{Name: "Bar", DisplayName: "Bar Service"}}}
	orch, _, out := newTestOrchestrator(fake, &installer.MockCommander{})

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: true,
	})
	require.NoError(t, err)

	require.Equal(t, OutcomeSkipped, report.Stop.Outcome)
	require.Equal(t, OutcomeFailed, report.Start.Outcome)
	require.NotEmpty(t, report.Start.Recommendation)
	require.Empty(t, report.Starts)
	require.Zero(t, report.StartedCount())
	require.Contains(t, out.String(), "Foo")
}

func TestRunExactNameFallback(t *testing.T) {
	// The list is stale and misses Foo, but the exact lookup still finds it.
	fake := &fakeSCM{
		services: []scm.Service{{Name: "Bar", DisplayName: "Bar Service"}},
		lookupHook: func(name string) (scm.Service, bool) {
			if name == "Foo" {
				return scm.Service{Name: "Foo", DisplayName: "Foo Service"}, true
			}
			return scm.Service{}, false
		},
	}
	orch, _, _ := newTestOrchestrator(fake, &installer.MockCommander{})

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: true,
	})
	require.NoError(t, err)
	require.Len(t, report.Starts, 1)
	require.Equal(t, "Foo", report.Starts[0].Name)
	require.Equal(t, OutcomeOK, report.Starts[0].Outcome)
}

func TestRunStopFailureContinues(t *testing.T) {
	fake := &fakeSCM{
		services: fooServices(),
		stopErr:  map[string]error{"Foo": errors.New("timeout waiting for stop")},
	}
	cmdr := &installer.MockCommander{}
	orch, _, _ := newTestOrchestrator(fake, cmdr)

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: true,
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeFailed, report.Stop.Outcome)
	require.Contains(t, report.Stop.Detail, "timeout waiting for stop")
	// Uninstall and install still ran.
	require.Len(t, cmdr.Calls, 2)
	require.Equal(t, OutcomeOK, report.Install.Outcome)
}

func TestRunUninstallFailureContinues(t *testing.T) {
	fake := &fakeSCM{services: fooServices()}
	cmdr := &installer.MockCommander{
		CombinedOutputFunc: func(_ context.Context, _ string, _ string, args ...string) (string, error) {
			if args[0] == "/u" {
				return "No installer types detected", errors.New("exit status 1")
			}
			return "", nil
		},
	}
	orch, _, _ := newTestOrchestrator(fake, cmdr)

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: true,
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeFailed, report.Uninstall.Outcome)
	require.Contains(t, report.Uninstall.Detail, "No installer types detected")
	require.Equal(t, OutcomeOK, report.Install.Outcome)
}

func TestRunDeclaredNameIsNotGuessed(t *testing.T) {
	fake := &fakeSCM{services: fooServices()}
	orch, _, out := newTestOrchestrator(fake, &installer.MockCommander{})

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Worker.exe`,
		ServiceName:       "Foo",
		StartAfterInstall: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Foo", report.ResolvedName)
	require.False(t, report.NameGuessed)
	require.NotContains(t, out.String(), "guessing")
}

func TestRunListFailureIsNotFatal(t *testing.T) {
	fake := &fakeSCM{
		services: fooServices(),
		listErr:  errors.New("rpc unavailable"),
	}
	orch, _, _ := newTestOrchestrator(fake, &installer.MockCommander{})

	report, err := orch.Run(context.Background(), Request{
		ExePath:           `C:\build\Foo.exe`,
		StartAfterInstall: true,
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeFailed, report.Start.Outcome)
	require.Contains(t, report.Start.Detail, "rpc unavailable")
	require.Empty(t, report.Starts)
}
