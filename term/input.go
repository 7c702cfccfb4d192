package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Lol3rrr/prizm-sub000/vm"
)

// Input turns tcell key events into calculator keys. GetKey blocks until
// a mappable key arrives.
type Input struct {
	screen tcell.Screen
}

// NewInput creates an input sink reading from the tcell screen.
func NewInput(screen tcell.Screen) *Input {
	return &Input{screen: screen}
}

// GetKey blocks on the event stream and maps the next key event.
func (in *Input) GetKey() (vm.Key, vm.Modifier, error) {
	for {
		event := in.screen.PollEvent()
		if event == nil {
			return vm.Key{}, vm.ModifierNone, fmt.Errorf("input stream closed")
		}

		keyEvent, ok := event.(*tcell.EventKey)
		if !ok {
			continue
		}

		if key, mapped := mapKey(keyEvent); mapped {
			return key, vm.ModifierNone, nil
		}
	}
}

// mapKey translates one terminal key into a calculator key.
func mapKey(event *tcell.EventKey) (vm.Key, bool) {
	switch event.Key() {
	case tcell.KeyEnter:
		return vm.Exe(), true
	case tcell.KeyEscape:
		return vm.Exit(), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return vm.Del(), true
	case tcell.KeyUp:
		return vm.ArrowUp(), true
	case tcell.KeyDown:
		return vm.ArrowDown(), true
	case tcell.KeyLeft:
		return vm.ArrowLeft(), true
	case tcell.KeyRight:
		return vm.ArrowRight(), true
	case tcell.KeyRune:
		r := event.Rune()
		switch {
		case r >= '0' && r <= '9':
			return vm.Number(uint8(r - '0')), true
		case r == 'm':
			return vm.Menu(), true
		case r == 'a':
			return vm.Ac(), true
		default:
			return vm.Character(r), true
		}
	}
	return vm.Key{}, false
}
