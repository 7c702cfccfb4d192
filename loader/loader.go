// Package loader bridges the container format and the emulator: it reads
// a .g3a file from disk, validates it and boots an emulator instance with
// the code mapped at the execution offset.
package loader

import (
	"fmt"
	"os"

	"github.com/Lol3rrr/prizm-sub000/g3a"
	"github.com/Lol3rrr/prizm-sub000/vm"
)

// LoadContainer reads and parses a .g3a file.
func LoadContainer(path string) (*g3a.File, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- user-specified container path
	if err != nil {
		return nil, fmt.Errorf("reading container: %w", err)
	}

	file, err := g3a.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing container %s: %w", path, err)
	}

	return file, nil
}

// BootEmulator creates an emulator running the container's code with the
// given sinks attached.
func BootEmulator(file *g3a.File, input vm.Input, display vm.Display) *vm.Emulator {
	return vm.New(file.ExecutableCode, input, display)
}

// BootFromPath is the combined load-and-boot convenience used by the CLI.
func BootFromPath(path string, input vm.Input, display vm.Display) (*vm.Emulator, error) {
	file, err := LoadContainer(path)
	if err != nil {
		return nil, err
	}
	return BootEmulator(file, input, display), nil
}
