package kvstore

// Memory is an in-memory Store used in tests and as a substitute for a
// real backend when nothing needs to survive the process.
type Memory struct {
	values map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements Store.
func (m *Memory) Get(key string) ([]byte, error) {
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers can't mutate the stored value.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements Store.
func (m *Memory) Set(key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Remove implements Store.
func (m *Memory) Remove(key string) error {
	delete(m.values, key)
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
