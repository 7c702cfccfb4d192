package debugger

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// RunCLI drives the debugger as a read-eval-print loop on stdin/stdout
// until quit or end of input.
func RunCLI(d *Debugger) error {
	return RunREPL(d, os.Stdin, os.Stdout)
}

// RunREPL is the testable core of the command loop.
func RunREPL(d *Debugger, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	for !d.Quit {
		fmt.Fprint(out, "> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}

		if cmdErr := d.ExecuteCommand(line); cmdErr != nil {
			fmt.Fprintf(out, "%v\n", cmdErr)
		}
		if output := d.GetOutput(); output != "" {
			fmt.Fprint(out, output)
		}
	}

	return nil
}
