package parser

import (
	"fmt"
	"strings"
)

// Metadata ties a token or diagnostic to its place in the source.
type Metadata struct {
	File string
	Line int
}

func (m Metadata) String() string {
	return fmt.Sprintf("%s:%d", m.File, m.Line)
}

// Error is a single parse or semantic diagnostic.
type Error struct {
	Pos     Metadata
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ErrorList collects diagnostics across a parse. Parsing is best-effort:
// a failed statement or function is dropped, its diagnostic recorded here,
// and parsing continues with the next function.
type ErrorList struct {
	Errors []*Error
}

// Add records a new diagnostic.
func (l *ErrorList) Add(pos Metadata, format string, args ...interface{}) {
	l.Errors = append(l.Errors, &Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic was recorded.
func (l *ErrorList) HasErrors() bool {
	return len(l.Errors) > 0
}

// Err returns the list as a single error, or nil when empty.
func (l *ErrorList) Err() error {
	if !l.HasErrors() {
		return nil
	}
	return l
}

func (l *ErrorList) Error() string {
	var sb strings.Builder
	for i, e := range l.Errors {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}
