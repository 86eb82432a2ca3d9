// Package store persists serialized documents under a key.
package store

// Slot holds at most one serialized document. Load reports false when
// nothing has been stored yet.
type Slot interface {
	Load() (string, bool, error)
	Store(markup string) error
}

// MemorySlot keeps the markup in memory.
type MemorySlot struct {
	value   string
	present bool
}

func NewMemorySlot(initial string) *MemorySlot {
	return &MemorySlot{value: initial, present: true}
}

func (m *MemorySlot) Load() (string, bool, error) {
	return m.value, m.present, nil
}

func (m *MemorySlot) Store(markup string) error {
	m.value, m.present = markup, true
	return nil
}
