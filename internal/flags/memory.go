package flags

// MemoryKV keeps flags in a map for the life of the process.
type MemoryKV struct {
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(name string) (string, bool, error) {
	v, ok := m.values[name]
	return v, ok, nil
}

func (m *MemoryKV) Set(name, value string) error {
	m.values[name] = value
	return nil
}

func (m *MemoryKV) Delete(name string) error {
	delete(m.values, name)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
