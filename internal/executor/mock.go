package executor

// MockStrategy is a mock implementation of Strategy for testing
type MockStrategy struct {
	// Name is the mechanism reported by the mock
	Name Mechanism
	// Unavailable makes Available return false
	Unavailable bool
	// ExecuteFunc is called when Execute is invoked
	ExecuteFunc func(command string) (string, error)
	// Calls tracks all Execute calls for verification
	Calls []MockCall
}

// MockCall represents a single call to Execute
type MockCall struct {
	Command string
	Output  string
	Error   error
}

// NewMockStrategy creates a new mock strategy for the given mechanism
func NewMockStrategy(m Mechanism) *MockStrategy {
	return &MockStrategy{
		Name:  m,
		Calls: make([]MockCall, 0),
	}
}

// Mechanism returns the configured mechanism
func (m *MockStrategy) Mechanism() Mechanism {
	return m.Name
}

// Available reports whether the mock pretends to be present
func (m *MockStrategy) Available() bool {
	return !m.Unavailable
}

// Execute mocks command execution
func (m *MockStrategy) Execute(command string) (string, error) {
	var out string
	var err error

	if m.ExecuteFunc != nil {
		out, err = m.ExecuteFunc(command)
	} else {
		// Default mock behavior: return success
		out = "mock output"
	}

	m.Calls = append(m.Calls, MockCall{
		Command: command,
		Output:  out,
		Error:   err,
	})

	return out, err
}

// CallCount returns the number of times Execute was called
func (m *MockStrategy) CallCount() int {
	return len(m.Calls)
}

// LastCall returns the last call made to Execute, or nil if none
func (m *MockStrategy) LastCall() *MockCall {
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}
