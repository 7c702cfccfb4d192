// Package term provides terminal front-ends for the emulator's display
// and input sinks: a tcell screen rendering the VRAM and key handling,
// plus a plain stdin input for the line-based debugger.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Lol3rrr/prizm-sub000/vm"
)

// Display renders the 384x216 16-bpp framebuffer into terminal cells.
// The framebuffer is kept locally; Present samples it down to whatever
// the terminal has room for.
type Display struct {
	screen tcell.Screen
	pixels [vm.VRAMHeight][vm.VRAMWidth]uint16
}

// NewDisplay creates a display sink on the given tcell screen.
func NewDisplay(screen tcell.Screen) *Display {
	return &Display{screen: screen}
}

// WriteVRAM stores one byte of a pixel.
func (d *Display) WriteVRAM(x, y uint32, part vm.DisplayBits, value byte) {
	if x >= vm.VRAMWidth || y >= vm.VRAMHeight {
		return
	}
	current := d.pixels[y][x]
	if part == vm.HighBits {
		d.pixels[y][x] = current&0x00ff | uint16(value)<<8
	} else {
		d.pixels[y][x] = current&0xff00 | uint16(value)
	}
}

// Clear resets the framebuffer.
func (d *Display) Clear() {
	for y := range d.pixels {
		for x := range d.pixels[y] {
			d.pixels[y][x] = 0
		}
	}
}

// Present draws the framebuffer, downsampled to the terminal size.
func (d *Display) Present(mem *vm.Memory) {
	width, height := d.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	for cy := 0; cy < height; cy++ {
		for cx := 0; cx < width; cx++ {
			px := cx * vm.VRAMWidth / width
			py := cy * vm.VRAMHeight / height
			color := rgb565ToColor(d.pixels[py][px])
			style := tcell.StyleDefault.Background(color)
			d.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
	d.screen.Show()
}

// rgb565ToColor expands a 16-bit pixel to a tcell RGB color.
func rgb565ToColor(value uint16) tcell.Color {
	r := int32((value>>11)&0x1f) << 3
	g := int32((value>>5)&0x3f) << 2
	b := int32(value&0x1f) << 3
	return tcell.NewRGBColor(r, g, b)
}
