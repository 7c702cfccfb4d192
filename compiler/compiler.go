// Package compiler ties the compilation pipeline together:
// lex -> parse -> lower -> assemble -> raw bytes.
package compiler

import (
	"fmt"
	"os"

	"github.com/Lol3rrr/prizm-sub000/assembler"
	"github.com/Lol3rrr/prizm-sub000/codegen"
	"github.com/Lol3rrr/prizm-sub000/ir"
	"github.com/Lol3rrr/prizm-sub000/parser"
)

// Result is a finished compilation: the raw instruction bytes plus the
// non-fatal diagnostics collected along the way.
type Result struct {
	Code     []byte
	Warnings []string
}

// Compile translates source text into the flat instruction byte sequence
// that loads at the code mapping offset. Parse diagnostics are fatal when
// no function could be parsed at all; otherwise the partial program is
// compiled and the diagnostics are reported as warnings.
func Compile(content, filename string) (*Result, error) {
	functions, parseErrs := parser.ParseSource(content, filename)
	if len(functions) == 0 {
		if parseErrs.HasErrors() {
			return nil, fmt.Errorf("parsing failed:\n%w", parseErrs.Err())
		}
		return nil, fmt.Errorf("%s contains no functions", filename)
	}

	result := &Result{}
	for _, e := range parseErrs.Errors {
		result.Warnings = append(result.Warnings, e.Error())
	}

	instructions, ctx, err := codegen.Generate(functions)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, ctx.Warnings...)

	code, err := assembler.Assemble(instructions)
	if err != nil {
		return nil, err
	}
	result.Code = code

	return result, nil
}

// CompileFile reads and compiles a source file.
func CompileFile(path string) (*Result, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-specified source path
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return Compile(string(content), path)
}

// ParseOnly exposes the front half of the pipeline for tooling that wants
// the IR, like the verbose dump.
func ParseOnly(content, filename string) ([]ir.Function, error) {
	functions, errs := parser.ParseSource(content, filename)
	if errs.HasErrors() {
		return functions, errs.Err()
	}
	return functions, nil
}
