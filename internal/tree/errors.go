package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there are no files to build a tree from.
	ErrEmptyInput = errors.New("no file paths provided")
	// ErrMissingFolderSegment is returned when a relative path runs out of
	// segments before reaching a file.
	ErrMissingFolderSegment = errors.New("unable to get folder name")
	// ErrDuplicateTitle is wrapped by DuplicateTitleError.
	ErrDuplicateTitle = errors.New("duplicate page title")
)

// DuplicateTitleError reports the first page title found twice in a tree.
type DuplicateTitleError struct {
	Title string
	Path  string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("page title %q is not unique (again at %s); each page needs its own title", e.Title, e.Path)
}

func (e *DuplicateTitleError) Unwrap() error {
	return ErrDuplicateTitle
}
