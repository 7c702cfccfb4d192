package g3a

// Absolute offsets of the localized name fields in the container header.
const (
	offEnglish    = 0x006b
	offSpanish    = 0x0083
	offGerman     = 0x009b
	offFrench     = 0x00b3
	offPortuguese = 0x00cb
	offChinese    = 0x00e3
	nameTextSize  = 0x18

	offEActivityFlag = 0x012b
	offVersion       = 0x0130
	offDate          = 0x013c

	versionLen = 0x0c
	dateLen    = 0x0e

	localizedSize = 0xdf
)

// Localized is the block of per-language application names plus the
// version and creation-date strings. The date uses the fixed
// YYYY.MMDD.HHMM layout.
type Localized struct {
	English    string
	Spanish    string
	German     string
	French     string
	Portuguese string
	Chinese    string

	EActivity bool
	Version   string
	Date      string
}

func parseLocalized(content []byte) (Localized, error) {
	field := func(off, size int) string {
		return string(content[off : off+size])
	}

	return Localized{
		English:    field(offEnglish, nameTextSize),
		Spanish:    field(offSpanish, nameTextSize),
		German:     field(offGerman, nameTextSize),
		French:     field(offFrench, nameTextSize),
		Portuguese: field(offPortuguese, nameTextSize),
		Chinese:    field(offChinese, nameTextSize),
		EActivity:  content[offEActivityFlag] != 0,
		Version:    field(offVersion, versionLen),
		Date:       field(offDate, dateLen),
	}, nil
}

// serializeInto writes the block into its 0xdf-byte region. The two
// reserved name slots are filled with the english name.
func (l *Localized) serializeInto(buf []byte) {
	writeString(buf[0x00:0x18], l.English)
	writeString(buf[0x18:0x30], l.Spanish)
	writeString(buf[0x30:0x48], l.German)
	writeString(buf[0x48:0x60], l.French)
	writeString(buf[0x60:0x78], l.Portuguese)
	writeString(buf[0x78:0x90], l.Chinese)

	writeString(buf[0x90:0xa8], l.English)
	writeString(buf[0xa8:0xc0], l.English)

	if l.EActivity {
		buf[0xc0] = 0x01
	} else {
		buf[0xc0] = 0x00
	}

	writeString(buf[0xc5:0xd1], l.Version)
	writeString(buf[0xd1:0xdf], l.Date)
}
