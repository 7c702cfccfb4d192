package debugger

import "fmt"

// Breakpoint is one address the run loop stops at.
type Breakpoint struct {
	ID       int
	Address  uint32
	Enabled  bool
	HitCount int
}

// BreakpointManager tracks breakpoints by id and address.
type BreakpointManager struct {
	breakpoints map[int]*Breakpoint
	byAddress   map[uint32]*Breakpoint
	nextID      int
}

// NewBreakpointManager creates an empty manager.
func NewBreakpointManager() *BreakpointManager {
	return &BreakpointManager{
		breakpoints: make(map[int]*Breakpoint),
		byAddress:   make(map[uint32]*Breakpoint),
		nextID:      1,
	}
}

// AddBreakpoint registers a breakpoint at the address. Adding one where
// a breakpoint already exists returns the existing one.
func (m *BreakpointManager) AddBreakpoint(address uint32) *Breakpoint {
	if existing, ok := m.byAddress[address]; ok {
		return existing
	}

	bp := &Breakpoint{
		ID:      m.nextID,
		Address: address,
		Enabled: true,
	}
	m.nextID++
	m.breakpoints[bp.ID] = bp
	m.byAddress[address] = bp
	return bp
}

// DeleteBreakpoint removes a breakpoint by id.
func (m *BreakpointManager) DeleteBreakpoint(id int) error {
	bp, ok := m.breakpoints[id]
	if !ok {
		return fmt.Errorf("no breakpoint with ID %d", id)
	}
	delete(m.breakpoints, id)
	delete(m.byAddress, bp.Address)
	return nil
}

// Clear removes all breakpoints.
func (m *BreakpointManager) Clear() {
	m.breakpoints = make(map[int]*Breakpoint)
	m.byAddress = make(map[uint32]*Breakpoint)
}

// At returns the enabled breakpoint at the address, or nil.
func (m *BreakpointManager) At(address uint32) *Breakpoint {
	bp, ok := m.byAddress[address]
	if !ok || !bp.Enabled {
		return nil
	}
	return bp
}

// All returns every breakpoint, in no particular order.
func (m *BreakpointManager) All() []*Breakpoint {
	result := make([]*Breakpoint, 0, len(m.breakpoints))
	for _, bp := range m.breakpoints {
		result = append(result, bp)
	}
	return result
}
