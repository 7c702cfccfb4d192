package g3a

const (
	eactivitySize     = 0x420
	eactivityTextSize = 0x24
	eactivityIconOff  = 0x120
	eactivityIconSize = 0x300
)

// EActivity is the optional e-activity strip of the container: localized
// strings plus a small icon blob.
type EActivity struct {
	English    string
	Spanish    string
	German     string
	French     string
	Portuguese string
	Chinese    string
	Icon       []byte
}

// EmptyEActivity is an all-zero block for containers without one.
func EmptyEActivity() EActivity {
	return EActivity{
		English:    string(make([]byte, eactivityTextSize)),
		Spanish:    string(make([]byte, eactivityTextSize)),
		German:     string(make([]byte, eactivityTextSize)),
		French:     string(make([]byte, eactivityTextSize)),
		Portuguese: string(make([]byte, eactivityTextSize)),
		Chinese:    string(make([]byte, eactivityTextSize)),
		Icon:       make([]byte, eactivityIconSize),
	}
}

func parseEActivity(content []byte) (EActivity, error) {
	base := offEActivity
	field := func(index int) string {
		off := base + index*eactivityTextSize
		return string(content[off : off+eactivityTextSize])
	}

	icon := make([]byte, eactivityIconSize)
	copy(icon, content[base+eactivityIconOff:base+eactivityIconOff+eactivityIconSize])

	return EActivity{
		English:    field(0),
		Spanish:    field(1),
		German:     field(2),
		French:     field(3),
		Portuguese: field(4),
		Chinese:    field(5),
		Icon:       icon,
	}, nil
}

// serializeInto writes the block into its 0x420-byte region; the two
// reserved slots carry the english string.
func (e *EActivity) serializeInto(buf []byte) {
	writeString(buf[0x000:0x024], e.English)
	writeString(buf[0x024:0x048], e.Spanish)
	writeString(buf[0x048:0x06c], e.German)
	writeString(buf[0x06c:0x090], e.French)
	writeString(buf[0x090:0x0b4], e.Portuguese)
	writeString(buf[0x0b4:0x0d8], e.Chinese)

	writeString(buf[0x0d8:0x0fc], e.English)
	writeString(buf[0x0fc:0x120], e.English)

	copy(buf[eactivityIconOff:], e.Icon)
}
