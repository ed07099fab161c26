package installer

import "context"

// MockCommander is a Commander that records invocations for tests.
type MockCommander struct {
	// CombinedOutputFunc is called when CombinedOutput is invoked.
	CombinedOutputFunc func(ctx context.Context, dir string, name string, args ...string) (string, error)

	// Calls records every invocation in order.
	Calls []MockCall
}

// MockCall records a single CombinedOutput invocation.
type MockCall struct {
	Dir  string
	Name string
	Args []string
}

// CombinedOutput implements Commander.
func (m *MockCommander) CombinedOutput(ctx context.Context, dir string, name string, args ...string) (string, error) {
	m.Calls = append(m.Calls, MockCall{Dir: dir, Name: name, Args: args})
	if m.CombinedOutputFunc != nil {
		return m.CombinedOutputFunc(ctx, dir, name, args...)
	}
	return "", nil
}
