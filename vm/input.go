package vm

import "fmt"

// Modifier is the state of the shift/alpha modifier keys.
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierShift
	ModifierAlpha
)

// KeyKind discriminates Key.
type KeyKind int

const (
	KeyMenu KeyKind = iota
	KeyExit
	KeyExe
	KeyDel
	KeyAc
	KeyNumber
	KeyCharacter
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
)

// Key is one keypad key. Digit holds the value of a number key, Char the
// rune of a character key.
type Key struct {
	Kind  KeyKind
	Digit uint8
	Char  rune
}

func Menu() Key { return Key{Kind: KeyMenu} }
func Exit() Key { return Key{Kind: KeyExit} }
func Exe() Key { return Key{Kind: KeyExe} }
func Del() Key { return Key{Kind: KeyDel} }
func Ac() Key { return Key{Kind: KeyAc} }
func Number(n uint8) Key { return Key{Kind: KeyNumber, Digit: n} }
func Character(c rune) Key {
	return Key{Kind: KeyCharacter, Char: c}
}
func ArrowUp() Key { return Key{Kind: KeyArrowUp} }
func ArrowDown() Key { return Key{Kind: KeyArrowDown} }
func ArrowLeft() Key { return Key{Kind: KeyArrowLeft} }
func ArrowRight() Key { return Key{Kind: KeyArrowRight} }

// Serialize maps the key and modifier to the 16-bit code the GetKey
// syscall delivers to programs. Only the unmodified codes are defined.
func (k Key) Serialize(modifier Modifier) (uint16, error) {
	if modifier != ModifierNone {
		return 0, fmt.Errorf("no key code for modifier %d", modifier)
	}

	switch k.Kind {
	case KeyMenu:
		return 0x7533, nil
	case KeyExit:
		return 0x7532, nil
	case KeyExe:
		return 0x7534, nil
	case KeyAc:
		return 0x753f, nil
	case KeyNumber:
		return 0x0030 | uint16(k.Digit&0x0f), nil
	case KeyArrowUp:
		return 0x7542, nil
	case KeyArrowDown:
		return 0x7547, nil
	case KeyArrowLeft:
		return 0x7544, nil
	case KeyArrowRight:
		return 0x7545, nil
	}
	return 0, fmt.Errorf("no key code for key %d", k.Kind)
}
