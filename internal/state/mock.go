// internal/state/mock.go
package state

// Mock is a test double for Manager.
type Mock struct {
	prefs  map[string]string
	writes int
	getErr error
	setErr error
	delErr error
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{prefs: make(map[string]string)}
}

func (m *Mock) GetPreference(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.prefs[key]
	return v, ok, nil
}

func (m *Mock) SetPreference(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.writes++
	m.prefs[key] = value
	return nil
}

func (m *Mock) DeletePreference(key string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.prefs, key)
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetGetError(err error) { m.getErr = err }

func (m *Mock) SetSetError(err error) { m.setErr = err }

func (m *Mock) SetDeleteError(err error) { m.delErr = err }

func (m *Mock) Writes() int { return m.writes }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
