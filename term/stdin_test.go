package term

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lol3rrr/prizm-sub000/vm"
)

func TestStdinInputKeys(t *testing.T) {
	cases := []struct {
		line string
		want vm.Key
	}{
		{"exe", vm.Exe()},
		{"menu", vm.Menu()},
		{"exit", vm.Exit()},
		{"ac", vm.Ac()},
		{"del", vm.Del()},
		{"up", vm.ArrowUp()},
		{"7", vm.Number(7)},
		{"EXE", vm.Exe()}, // case-insensitive
	}

	for _, tc := range cases {
		in := NewStdinInputFrom(strings.NewReader(tc.line+"\n"), io.Discard)
		key, modifier, err := in.GetKey()
		require.NoError(t, err)
		assert.Equal(t, tc.want, key, "input %q", tc.line)
		assert.Equal(t, vm.ModifierNone, modifier)
	}
}

func TestStdinInputSkipsUnknown(t *testing.T) {
	in := NewStdinInputFrom(strings.NewReader("wat\nexe\n"), io.Discard)

	key, _, err := in.GetKey()
	require.NoError(t, err)
	assert.Equal(t, vm.Exe(), key)
}

func TestStdinInputEOF(t *testing.T) {
	in := NewStdinInputFrom(strings.NewReader(""), io.Discard)

	_, _, err := in.GetKey()
	assert.Error(t, err)
}
