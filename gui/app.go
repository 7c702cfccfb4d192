// Package main is the windowed front-end: a fyne window showing the
// calculator screen, with the keyboard forwarded to the emulator's input
// sink. The emulator runs on its own goroutine; the sinks bridge the two
// worlds.
package main

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/Lol3rrr/prizm-sub000/vm"
)

// screenScale enlarges the 384x216 framebuffer for modern displays.
const screenScale = 2

// WindowDisplay renders VRAM writes into a fyne canvas image.
type WindowDisplay struct {
	img    *image.RGBA
	canvas *canvas.Image
	pixels [vm.VRAMHeight][vm.VRAMWidth]uint16
}

// NewWindowDisplay creates the display sink and its backing image.
func NewWindowDisplay() *WindowDisplay {
	img := image.NewRGBA(image.Rect(0, 0, vm.VRAMWidth, vm.VRAMHeight))
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.ScaleMode = canvas.ImageScalePixels
	c.SetMinSize(fyne.NewSize(vm.VRAMWidth*screenScale, vm.VRAMHeight*screenScale))

	return &WindowDisplay{img: img, canvas: c}
}

// Canvas returns the widget to place into the window.
func (d *WindowDisplay) Canvas() *canvas.Image {
	return d.canvas
}

// WriteVRAM stores one byte of a pixel.
func (d *WindowDisplay) WriteVRAM(x, y uint32, part vm.DisplayBits, value byte) {
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

// Clear resets the framebuffer and blanks the window.
func (d *WindowDisplay) Clear() {
	for y := range d.pixels {
		for x := range d.pixels[y] {
			d.pixels[y][x] = 0
		}
	}
	d.redraw()
}

// Present converts the framebuffer to RGBA and refreshes the canvas.
func (d *WindowDisplay) Present(mem *vm.Memory) {
	d.redraw()
}

func (d *WindowDisplay) redraw() {
	for y := 0; y < vm.VRAMHeight; y++ {
		for x := 0; x < vm.VRAMWidth; x++ {
			value := d.pixels[y][x]
			d.img.SetRGBA(x, y, color.RGBA{
				R: uint8((value >> 11) & 0x1f << 3),
				G: uint8((value >> 5) & 0x3f << 2),
				B: uint8(value & 0x1f << 3),
				A: 0xff,
			})
		}
	}
	fyne.Do(func() {
		d.canvas.Refresh()
	})
}

// WindowInput feeds key events from the fyne window into the emulator.
type WindowInput struct {
	keys chan vm.KeyPress
}

// NewWindowInput creates the input sink.
func NewWindowInput() *WindowInput {
	return &WindowInput{keys: make(chan vm.KeyPress, 16)}
}

// GetKey blocks until the window delivers a key.
func (in *WindowInput) GetKey() (vm.Key, vm.Modifier, error) {
	press := <-in.keys
	return press.Key, press.Modifier, nil
}

// HandleKey maps a fyne key event onto the calculator keypad.
func (in *WindowInput) HandleKey(event *fyne.KeyEvent) {
	var key vm.Key
	switch event.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		key = vm.Exe()
	case fyne.KeyEscape:
		key = vm.Exit()
	case fyne.KeyBackspace, fyne.KeyDelete:
		key = vm.Del()
	case fyne.KeyUp:
		key = vm.ArrowUp()
	case fyne.KeyDown:
		key = vm.ArrowDown()
	case fyne.KeyLeft:
		key = vm.ArrowLeft()
	case fyne.KeyRight:
		key = vm.ArrowRight()
	case fyne.KeyM:
		key = vm.Menu()
	case fyne.KeyA:
		key = vm.Ac()
	case fyne.Key0, fyne.Key1, fyne.Key2, fyne.Key3, fyne.Key4,
		fyne.Key5, fyne.Key6, fyne.Key7, fyne.Key8, fyne.Key9:
		key = vm.Number(uint8(event.Name[0] - '0'))
	default:
		return
	}

	select {
	case in.keys <- vm.KeyPress{Key: key, Modifier: vm.ModifierNone}:
	default:
		// Drop keys when the program is not consuming them.
	}
}
