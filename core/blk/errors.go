package blk

import "fmt"

// SyntaxError describes malformed config text. It is fatal for the file it
// occurred in: a partially parsed tree is never returned alongside it.
type SyntaxError struct {
	// File is the logical name of the source, as passed to Parse.
	File string
	// Line is the 1-based source line the error was detected on.
	Line int
	// Reason is a short human readable description.
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

func syntaxErr(file string, line int, format string, args ...any) *SyntaxError {
	return &SyntaxError{File: file, Line: line, Reason: fmt.Sprintf(format, args...)}
}
