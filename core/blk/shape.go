package blk

import "fmt"

// ShapeError reports well-formed config text whose tree does not match the
// shape an extractor expects at a known path. It signals an upstream format
// change that needs a code change, so callers must treat it as fatal rather
// than coerce the value.
type ShapeError struct {
	// File is the logical name of the source file.
	File string
	// Path is the slash separated chain of block names (with sibling
	// ordinals) leading to the offending node.
	Path string
	// Expected describes what the extractor required at the path.
	Expected string
	// Got describes what was actually found.
	Got string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: unexpected shape at %s: expected %s, got %s", e.File, e.Path, e.Expected, e.Got)
}

// ShapeErr builds a ShapeError for the given path.
func ShapeErr(file, path, expected, got string) *ShapeError {
	return &ShapeError{File: file, Path: path, Expected: expected, Got: got}
}
