package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndDeleteBreakpoint(t *testing.T) {
	m := NewBreakpointManager()

	bp := m.AddBreakpoint(0x300000)
	assert.Equal(t, 1, bp.ID)
	assert.True(t, bp.Enabled)

	require.NotNil(t, m.At(0x300000))
	assert.Nil(t, m.At(0x300002))

	require.NoError(t, m.DeleteBreakpoint(bp.ID))
	assert.Nil(t, m.At(0x300000))
	assert.Error(t, m.DeleteBreakpoint(bp.ID))
}

func TestDuplicateBreakpointReturnsExisting(t *testing.T) {
	m := NewBreakpointManager()

	first := m.AddBreakpoint(0x300000)
	second := m.AddBreakpoint(0x300000)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, m.All(), 1)
}

func TestDisabledBreakpointIgnored(t *testing.T) {
	m := NewBreakpointManager()

	bp := m.AddBreakpoint(0x300000)
	bp.Enabled = false
	assert.Nil(t, m.At(0x300000))
}

func TestClearBreakpoints(t *testing.T) {
	m := NewBreakpointManager()
	m.AddBreakpoint(0x300000)
	m.AddBreakpoint(0x300004)

	m.Clear()
	assert.Empty(t, m.All())
}

func TestHistoryCollapsesDuplicates(t *testing.T) {
	h := NewCommandHistory()

	h.Add("step")
	h.Add("step")
	h.Add("run")

	assert.Equal(t, []string{"step", "run"}, h.Entries())
	assert.Equal(t, "run", h.Last())
}

func TestHistoryEmptyLast(t *testing.T) {
	h := NewCommandHistory()
	assert.Equal(t, "", h.Last())
}
