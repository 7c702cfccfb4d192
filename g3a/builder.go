package g3a

import "time"

// FileBuilder assembles a container from its parts, filling in the
// derived fields (file size, localized defaults, creation date).
type FileBuilder struct {
	internalName string
	shortName    string
	fileName     string
	selected     *Image
	unselected   *Image
	localized    Localized
	eactivity    *EActivity
	code         []byte
}

// NewFileBuilder starts a builder. The name seeds every localized slot;
// the creation date is formatted as YYYY.MMDD.HHMM.
func NewFileBuilder(name string, creation time.Time) *FileBuilder {
	return &FileBuilder{
		localized: Localized{
			English:    name,
			Spanish:    name,
			German:     name,
			French:     name,
			Portuguese: name,
			Chinese:    name,
			EActivity:  false,
			Version:    "01.00.0000",
			Date:       creation.Format("2006.0102.1504"),
		},
	}
}

// InternalName sets the @-prefixed internal name.
func (b *FileBuilder) InternalName(name string) *FileBuilder {
	b.internalName = name
	return b
}

// ShortName sets the short application name.
func (b *FileBuilder) ShortName(name string) *FileBuilder {
	b.shortName = name
	return b
}

// FileName sets the on-device file name.
func (b *FileBuilder) FileName(name string) *FileBuilder {
	b.fileName = name
	return b
}

// Version overrides the default 01.00.0000 version string.
func (b *FileBuilder) Version(version string) *FileBuilder {
	b.localized.Version = version
	return b
}

// SelectedImage sets the icon shown while selected.
func (b *FileBuilder) SelectedImage(img Image) *FileBuilder {
	b.selected = &img
	return b
}

// UnselectedImage sets the icon shown while not selected.
func (b *FileBuilder) UnselectedImage(img Image) *FileBuilder {
	b.unselected = &img
	return b
}

// SelectedImagePath loads the selected icon from a PNG file; load
// failures leave the icon empty.
func (b *FileBuilder) SelectedImagePath(path string) *FileBuilder {
	if img, err := ImageFromFile(path); err == nil {
		b.selected = &img
	}
	return b
}

// UnselectedImagePath loads the unselected icon from a PNG file; load
// failures leave the icon empty.
func (b *FileBuilder) UnselectedImagePath(path string) *FileBuilder {
	if img, err := ImageFromFile(path); err == nil {
		b.unselected = &img
	}
	return b
}

// EActivityBlock sets the optional e-activity strip.
func (b *FileBuilder) EActivityBlock(e EActivity) *FileBuilder {
	b.eactivity = &e
	return b
}

// Code sets the executable code block.
func (b *FileBuilder) Code(code []byte) *FileBuilder {
	b.code = code
	return b
}

// Finish produces the container. The file size counts the header, the
// code and the trailing checksum copy.
func (b *FileBuilder) Finish() *File {
	selected := EmptyImage()
	if b.selected != nil {
		selected = *b.selected
	}
	unselected := EmptyImage()
	if b.unselected != nil {
		unselected = *b.unselected
	}
	eactivity := EmptyEActivity()
	if b.eactivity != nil {
		eactivity = *b.eactivity
	}

	// #nosec G115 -- code size is bounded by the container format
	fileSize := uint32(headerSize + 4 + len(b.code))

	return &File{
		InternalName:    b.internalName,
		ShortName:       b.shortName,
		FileName:        b.fileName,
		FileSize:        fileSize,
		SelectedImage:   selected,
		UnselectedImage: unselected,
		ExecutableCode:  b.code,
		Localized:       b.localized,
		EActivity:       eactivity,
	}
}
