package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lol3rrr/prizm-sub000/vm"
)

func TestDisplayStoresPixelHalves(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	d := NewDisplay(screen)

	d.WriteVRAM(3, 2, vm.HighBits, 0xf8)
	d.WriteVRAM(3, 2, vm.LowBits, 0x00)
	assert.Equal(t, uint16(0xf800), d.pixels[2][3])

	d.Clear()
	assert.Equal(t, uint16(0), d.pixels[2][3])
}

func TestDisplayIgnoresOutOfRange(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	d := NewDisplay(screen)
	d.WriteVRAM(vm.VRAMWidth, 0, vm.HighBits, 0xff)
	d.WriteVRAM(0, vm.VRAMHeight, vm.HighBits, 0xff)
	// Nothing to assert beyond not panicking.
}

func TestPresentDrawsWithoutError(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 12)

	d := NewDisplay(screen)
	d.WriteVRAM(0, 0, vm.HighBits, 0xff)
	d.Present(nil)
}

func TestRGB565Conversion(t *testing.T) {
	red := rgb565ToColor(0xf800)
	r, g, b := red.RGB()
	assert.Equal(t, int32(0xf8), r)
	assert.Equal(t, int32(0), g)
	assert.Equal(t, int32(0), b)
}
