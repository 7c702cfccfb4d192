package g3a

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Icon geometry: 92x64 pixels at 16 bits per pixel (RGB565).
const (
	imageWidth    = 92
	imageHeight   = 64
	imageByteSize = imageWidth * imageHeight * 2
)

// Pixel is one icon pixel with 8-bit channels. The low bits lost by the
// RGB565 packing are kept at zero so parse/serialize round-trips exactly.
type Pixel struct {
	R, G, B uint8
}

// parsePixel unpacks a big-endian RGB565 value.
func parsePixel(hi, lo byte) Pixel {
	value := uint16(hi)<<8 | uint16(lo)
	return Pixel{
		R: uint8((value >> 11) & 0x1f << 3),
		G: uint8((value >> 5) & 0x3f << 2),
		B: uint8(value & 0x1f << 3),
	}
}

// serialize packs the pixel back into big-endian RGB565.
func (p Pixel) serialize() (byte, byte) {
	value := uint16(p.R>>3)<<11 | uint16(p.G>>2)<<5 | uint16(p.B>>3)
	return byte(value >> 8), byte(value)
}

// Image is one 92x64 icon bitmap.
type Image struct {
	pixels [imageHeight][imageWidth]Pixel
}

// EmptyImage is an all-black icon.
func EmptyImage() Image {
	return Image{}
}

// ParseImage reads the raw 16-bpp bitmap.
func ParseImage(raw []byte) Image {
	var img Image
	for y := 0; y < imageHeight; y++ {
		for x := 0; x < imageWidth; x++ {
			index := (y*imageWidth + x) * 2
			img.pixels[y][x] = parsePixel(raw[index], raw[index+1])
		}
	}
	return img
}

// Serialize writes the bitmap back to its raw 16-bpp form.
func (img Image) Serialize() []byte {
	result := make([]byte, imageByteSize)
	for y := 0; y < imageHeight; y++ {
		for x := 0; x < imageWidth; x++ {
			index := (y*imageWidth + x) * 2
			result[index], result[index+1] = img.pixels[y][x].serialize()
		}
	}
	return result
}

// At returns the pixel at the coordinates.
func (img Image) At(x, y int) Pixel {
	return img.pixels[y][x]
}

// ImageFromPNG loads an icon from PNG data. The image must be exactly
// 92x64 pixels.
func ImageFromPNG(r io.Reader) (Image, error) {
	decoded, err := png.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("decoding icon: %w", err)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != imageWidth || bounds.Dy() != imageHeight {
		return Image{}, fmt.Errorf("icon must be %dx%d pixels, got %dx%d",
			imageWidth, imageHeight, bounds.Dx(), bounds.Dy())
	}

	var img Image
	for y := 0; y < imageHeight; y++ {
		for x := 0; x < imageWidth; x++ {
			r8, g8, b8, _ := decoded.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixel := Pixel{R: uint8(r8 >> 8), G: uint8(g8 >> 8), B: uint8(b8 >> 8)}
			// Normalise through the 565 packing so serialisation is exact.
			hi, lo := pixel.serialize()
			img.pixels[y][x] = parsePixel(hi, lo)
		}
	}
	return img, nil
}

// ImageFromFile loads an icon from a PNG file.
func ImageFromFile(path string) (Image, error) {
	f, err := os.Open(path) // #nosec G304 -- user-specified icon path
	if err != nil {
		return Image{}, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ImageFromPNG(f)
}

// WritePNG saves the icon as a PNG file.
func (img Image) WritePNG(w io.Writer) error {
	out := image.NewRGBA(image.Rect(0, 0, imageWidth, imageHeight))
	for y := 0; y < imageHeight; y++ {
		for x := 0; x < imageWidth; x++ {
			p := img.pixels[y][x]
			out.Set(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
	return png.Encode(w, out)
}
