package vm

import "fmt"

// KeyPress is one scripted key event for MockInput.
type KeyPress struct {
	Key      Key
	Modifier Modifier
}

// MockInput replays a scripted key sequence; reading past the end is an
// error. It is the input sink of choice for tests and batch runs.
type MockInput struct {
	keys []KeyPress
}

// NewMockInput creates an input sink replaying the given presses.
func NewMockInput(keys []KeyPress) *MockInput {
	return &MockInput{keys: keys}
}

// AddKey appends a key press to the script.
func (m *MockInput) AddKey(press KeyPress) {
	m.keys = append(m.keys, press)
}

// LeftOver returns the presses not yet consumed.
func (m *MockInput) LeftOver() []KeyPress {
	return m.keys
}

// GetKey pops the next scripted press.
func (m *MockInput) GetKey() (Key, Modifier, error) {
	if len(m.keys) == 0 {
		return Key{}, ModifierNone, fmt.Errorf("no scripted inputs left")
	}
	press := m.keys[0]
	m.keys = m.keys[1:]
	return press.Key, press.Modifier, nil
}

// VRAMWrite records one routed display write for inspection.
type VRAMWrite struct {
	X, Y  uint32
	Part  DisplayBits
	Value byte
}

// MockDisplay is the headless display sink: it records what a real
// display would have shown.
type MockDisplay struct {
	Writes   []VRAMWrite
	Presents int
	Clears   int
}

// NewMockDisplay creates an empty headless display.
func NewMockDisplay() *MockDisplay {
	return &MockDisplay{}
}

func (m *MockDisplay) WriteVRAM(x, y uint32, part DisplayBits, value byte) {
	m.Writes = append(m.Writes, VRAMWrite{X: x, Y: y, Part: part, Value: value})
}

func (m *MockDisplay) Present(mem *Memory) {
	m.Presents++
}

func (m *MockDisplay) Clear() {
	m.Clears++
	m.Writes = nil
}
