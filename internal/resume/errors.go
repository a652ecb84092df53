package resume

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSection indicates a section name the operation does not support.
	ErrUnknownSection = errors.New("unknown section")

	// ErrUnknownField indicates a key that does not exist in the section.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownCategory indicates a skill category outside the closed set.
	ErrUnknownCategory = errors.New("unknown skill category")

	// ErrInvalidInput indicates a value that does not fit the section shape.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNothingToUndo is returned when the edit history is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned when there is no undone edit to re-apply.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// ImportErrorKind classifies import failures.
type ImportErrorKind string

const (
	ImportParse ImportErrorKind = "parse_error"
	ImportShape ImportErrorKind = "shape_error"
)

// ImportError is the typed failure of ImportJSON. Message is safe to show to users.
type ImportError struct {
	Kind    ImportErrorKind
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }
