package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteRoundTrip(t *testing.T) {
	mem := NewMemory()
	disp := NewMockDisplay()

	mem.WriteByte(13123, 0x42, disp)
	assert.Equal(t, byte(0x42), mem.ReadByte(13123))
	assert.Empty(t, disp.Writes)
}

func TestWordRoundTrip(t *testing.T) {
	mem := NewMemory()
	disp := NewMockDisplay()

	require.NoError(t, mem.WriteWord(100, 0x1234, disp))
	value, err := mem.ReadWord(100)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), value)

	// Big-endian byte order.
	assert.Equal(t, byte(0x12), mem.ReadByte(100))
	assert.Equal(t, byte(0x34), mem.ReadByte(101))
}

func TestLongRoundTrip(t *testing.T) {
	mem := NewMemory()
	disp := NewMockDisplay()

	require.NoError(t, mem.WriteLong(200, 0xdeadbeef, disp))
	value, err := mem.ReadLong(200)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), value)

	assert.Equal(t, byte(0xde), mem.ReadByte(200))
	assert.Equal(t, byte(0xef), mem.ReadByte(203))
}

func TestAlignmentChecks(t *testing.T) {
	mem := NewMemory()
	disp := NewMockDisplay()

	err := mem.WriteWord(101, 1, disp)
	require.Error(t, err)
	var exc *Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, UnalignedAccess, exc.Kind)
	assert.Equal(t, uint32(101), exc.Address)

	_, err = mem.ReadWord(101)
	assert.Error(t, err)

	for _, addr := range []uint32{201, 202, 203} {
		assert.Error(t, mem.WriteLong(addr, 1, disp), "long write at %d", addr)
		_, err := mem.ReadLong(addr)
		assert.Error(t, err, "long read at %d", addr)
	}
}

func TestVRAMRouting(t *testing.T) {
	mem := NewMemory()
	disp := NewMockDisplay()

	// Pixel (1, 0), both halves: bytes 2 and 3 past the VRAM base.
	mem.WriteByte(VRAMBase+2, 0xab, disp)
	mem.WriteByte(VRAMBase+3, 0xcd, disp)

	require.Len(t, disp.Writes, 2)
	assert.Equal(t, VRAMWrite{X: 1, Y: 0, Part: HighBits, Value: 0xab}, disp.Writes[0])
	assert.Equal(t, VRAMWrite{X: 1, Y: 0, Part: LowBits, Value: 0xcd}, disp.Writes[1])

	// VRAM never lands in the heap and reads back as zero.
	assert.Equal(t, byte(0), mem.ReadByte(VRAMBase+2))
	assert.Equal(t, uint32(0), mem.HeapSize())
}

func TestVRAMRowWrap(t *testing.T) {
	mem := NewMemory()
	disp := NewMockDisplay()

	// One full row is 384 pixels = 768 bytes; the next byte starts row 1.
	mem.WriteByte(VRAMBase+VRAMWidth*2, 0x11, disp)

	require.Len(t, disp.Writes, 1)
	assert.Equal(t, uint32(0), disp.Writes[0].X)
	assert.Equal(t, uint32(1), disp.Writes[0].Y)
}

func TestHeapGrowsOnAccess(t *testing.T) {
	mem := NewMemory()
	assert.Equal(t, byte(0), mem.ReadByte(0x7ffff))
	assert.GreaterOrEqual(t, mem.HeapSize(), uint32(0x80000))
}
