// Package g3a reads and writes the calculator's application container
// format: a 0x7000-byte header carrying names, localization, icons and an
// e-activity block, followed by the executable code and a trailing copy
// of the file checksum.
//
// References:
// https://prizm.cemetech.net/index.php/G3A_File_Format
package g3a

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// headerIdentifier is the fixed magic at the start of every container.
var headerIdentifier = [14]byte{
	0xaa, 0xac, 0xbd, 0xaf, 0x90, 0x88, 0x9a, 0x8d,
	0xd3, 0xff, 0xfe, 0xff, 0xfe, 0xff,
}

const (
	headerSize = 0x7000

	offFormatByte     = 0x000f
	offInvertedSize   = 0x0010
	offChecksum       = 0x0020
	offExecutableSize = 0x002e
	offShortName      = 0x0040
	offFileSize       = 0x005c
	offInternalName   = 0x0060
	offLocalized      = 0x006b
	offEActivity      = 0x0170
	offFileName       = 0x0ebc
	offUnselectedIcon = 0x1000
	offSelectedIcon   = 0x4000

	shortNameLen    = 0x1c
	internalNameLen = 0x0b
	fileNameLen     = 0x144
)

// Parse failure modes.
var (
	ErrWrongIdentifier  = errors.New("g3a: wrong identifier")
	ErrWrongFormat      = errors.New("g3a: wrong format")
	ErrChecksumMismatch = errors.New("g3a: checksums are not matching")
	ErrTruncated        = errors.New("g3a: file is truncated")
)

// File is a parsed application container.
type File struct {
	InternalName string
	ShortName    string
	FileName     string
	FileSize     uint32

	SelectedImage   Image
	UnselectedImage Image

	ExecutableCode []byte

	Localized Localized
	EActivity EActivity
}

// Parse reads a container from its raw bytes. It verifies the magic, the
// format byte and the equality of the two checksum copies.
func Parse(content []byte) (*File, error) {
	if len(content) < headerSize+4 {
		return nil, ErrTruncated
	}

	var identifier [14]byte
	copy(identifier[:], content[:14])
	if identifier != headerIdentifier {
		return nil, ErrWrongIdentifier
	}

	if content[offFormatByte] != 0xfe {
		return nil, ErrWrongFormat
	}

	fileSize := binary.BigEndian.Uint32([]byte{
		content[offInvertedSize] ^ 0xff,
		content[offInvertedSize+1] ^ 0xff,
		content[offInvertedSize+2] ^ 0xff,
		content[offInvertedSize+3] ^ 0xff,
	})

	checksum := binary.BigEndian.Uint32(content[offChecksum : offChecksum+4])

	if content[0x0024] != 0x01 || content[0x0025] != 0x01 {
		return nil, ErrWrongFormat
	}

	executableSize := binary.BigEndian.Uint32(content[offExecutableSize : offExecutableSize+4])
	executableEnd := headerSize + int(executableSize)
	if len(content) < executableEnd+4 {
		return nil, ErrTruncated
	}

	checksumCopy := binary.BigEndian.Uint32(content[executableEnd : executableEnd+4])
	if checksum != checksumCopy {
		return nil, ErrChecksumMismatch
	}

	localized, err := parseLocalized(content)
	if err != nil {
		return nil, err
	}
	eactivity, err := parseEActivity(content)
	if err != nil {
		return nil, err
	}

	executable := make([]byte, executableSize)
	copy(executable, content[headerSize:executableEnd])

	return &File{
		InternalName:    string(content[offInternalName : offInternalName+internalNameLen]),
		ShortName:       string(content[offShortName : offShortName+shortNameLen]),
		FileName:        string(content[offFileName : offFileName+fileNameLen]),
		FileSize:        fileSize,
		SelectedImage:   ParseImage(content[offSelectedIcon : offSelectedIcon+imageByteSize]),
		UnselectedImage: ParseImage(content[offUnselectedIcon : offUnselectedIcon+imageByteSize]),
		ExecutableCode:  executable,
		Localized:       localized,
		EActivity:       eactivity,
	}, nil
}

// Serialize writes the container back to bytes. Serialising a parsed file
// reproduces it byte for byte.
func (f *File) Serialize() []byte {
	result := make([]byte, headerSize)

	copy(result[:14], headerIdentifier[:])

	sizeBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(sizeBytes, f.FileSize)

	result[0x000e] = (sizeBytes[3] ^ 0xff) - 0x41
	result[offFormatByte] = 0xfe
	result[offInvertedSize] = sizeBytes[0] ^ 0xff
	result[offInvertedSize+1] = sizeBytes[1] ^ 0xff
	result[offInvertedSize+2] = sizeBytes[2] ^ 0xff
	result[offInvertedSize+3] = sizeBytes[3] ^ 0xff
	result[0x0014] = (sizeBytes[3] ^ 0xff) - 0xb8
	result[0x0024] = 0x01
	result[0x0025] = 0x01

	// #nosec G115 -- executable size is bounded by the container format
	binary.BigEndian.PutUint32(result[offExecutableSize:], uint32(len(f.ExecutableCode)))

	writeString(result[offShortName:offShortName+shortNameLen], f.ShortName)
	binary.BigEndian.PutUint32(result[offFileSize:], f.FileSize)
	writeString(result[offInternalName:offInternalName+internalNameLen], f.InternalName)

	f.Localized.serializeInto(result[offLocalized : offLocalized+localizedSize])
	f.EActivity.serializeInto(result[offEActivity : offEActivity+eactivitySize])

	writeString(result[offFileName:offFileName+fileNameLen], f.FileName)

	copy(result[offUnselectedIcon:], f.UnselectedImage.Serialize())
	copy(result[offSelectedIcon:], f.SelectedImage.Serialize())

	result = append(result, f.ExecutableCode...)

	// The checksum covers the whole file with both copies left out; it is
	// written at 0x20 and repeated after the code block.
	sum := checksum(result)
	sumBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(sumBytes, sum)
	copy(result[offChecksum:], sumBytes)
	result = append(result, sumBytes...)

	return result
}

// checksum is the additive file checksum: the sum of every byte of the
// file, truncated to 32 bits. It runs over the buffer before either
// checksum copy is written, which leaves both copies out of the sum.
func checksum(data []byte) uint32 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return sum
}

// writeString copies the string into the fixed-size field, zero padded.
// Overlong content leaves the field untouched, like the original writer.
func writeString(target []byte, content string) {
	if len(content) > len(target) {
		return
	}
	copy(target, content)
}

// TrimName strips the zero padding of a fixed-size name field.
func TrimName(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == 0 {
			return name[:i]
		}
	}
	return name
}

func (f *File) String() string {
	return fmt.Sprintf("g3a %q (%d bytes code)", TrimName(f.ShortName), len(f.ExecutableCode))
}
