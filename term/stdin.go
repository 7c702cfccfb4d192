package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Lol3rrr/prizm-sub000/vm"
)

// StdinInput reads key names from a line-based reader, one key per line:
// a digit, "exe", "menu", "exit", "ac", "del" or the arrow names. It is
// the input sink of the plain command-line debugger, where a tcell screen
// would fight with the REPL over the terminal.
type StdinInput struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewStdinInput creates an input sink on stdin/stdout.
func NewStdinInput() *StdinInput {
	return &StdinInput{
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// NewStdinInputFrom creates an input sink on the given streams.
func NewStdinInputFrom(in io.Reader, out io.Writer) *StdinInput {
	return &StdinInput{reader: bufio.NewReader(in), out: out}
}

// GetKey prompts with '#' and reads the next key name.
func (in *StdinInput) GetKey() (vm.Key, vm.Modifier, error) {
	for {
		fmt.Fprint(in.out, "#")

		line, err := in.reader.ReadString('\n')
		if err != nil {
			return vm.Key{}, vm.ModifierNone, fmt.Errorf("reading key input: %w", err)
		}

		entered := strings.ToLower(strings.TrimSpace(line))
		if entered == "" {
			continue
		}

		if len(entered) == 1 && entered[0] >= '0' && entered[0] <= '9' {
			return vm.Number(entered[0] - '0'), vm.ModifierNone, nil
		}

		switch entered {
		case "exe":
			return vm.Exe(), vm.ModifierNone, nil
		case "menu":
			return vm.Menu(), vm.ModifierNone, nil
		case "exit":
			return vm.Exit(), vm.ModifierNone, nil
		case "ac":
			return vm.Ac(), vm.ModifierNone, nil
		case "del":
			return vm.Del(), vm.ModifierNone, nil
		case "up":
			return vm.ArrowUp(), vm.ModifierNone, nil
		case "down":
			return vm.ArrowDown(), vm.ModifierNone, nil
		case "left":
			return vm.ArrowLeft(), vm.ModifierNone, nil
		case "right":
			return vm.ArrowRight(), vm.ModifierNone, nil
		}

		fmt.Fprintf(in.out, "unknown key: %q\n", entered)
	}
}
