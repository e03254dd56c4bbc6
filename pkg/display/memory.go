package display

import "sync"

// Memory is a Surface keeping blocks in insertion order.
type Memory struct {
	lock   sync.RWMutex
	label  string
	order  []string
	blocks map[string]*Block
}

// NewMemory creates a Memory surface.
func NewMemory() *Memory {
	return &Memory{label: LabelIdle, blocks: make(map[string]*Block)}
}

// SetToggleLabel implements Surface.
func (m *Memory) SetToggleLabel(label string) error {
	m.lock.Lock()
	m.label = label
	m.lock.Unlock()
	return nil
}

// Put implements Surface.
func (m *Memory) Put(b *Block) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.blocks == nil {
		m.blocks = make(map[string]*Block)
	}
	if _, exists := m.blocks[b.ID]; !exists {
		m.order = append(m.order, b.ID)
	}
	m.blocks[b.ID] = b
	return nil
}

// Remove implements Surface.
func (m *Memory) Remove(id string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if _, exists := m.blocks[id]; !exists {
		return nil
	}
	delete(m.blocks, id)
	for n, bid := range m.order {
		if bid == id {
			m.order = append(m.order[:n], m.order[n+1:]...)
			break
		}
	}
	return nil
}

// Clear implements Surface.
func (m *Memory) Clear() error {
	m.lock.Lock()
	m.order, m.blocks = nil, make(map[string]*Block)
	m.lock.Unlock()
	return nil
}

// ToggleLabel gets the current label.
func (m *Memory) ToggleLabel() string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.label
}

// Blocks lists blocks in insertion order.
func (m *Memory) Blocks() []*Block {
	m.lock.RLock()
	defer m.lock.RUnlock()
	blocks := make([]*Block, len(m.order))
	for n, id := range m.order {
		blocks[n] = m.blocks[id]
	}
	return blocks
}

// Block gets a block by ID.
func (m *Memory) Block(id string) *Block {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.blocks[id]
}
