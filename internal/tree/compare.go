package tree

import (
	"cmp"
	"strings"

	"github.com/kyaoi/mdadf/internal/adf"
)

// missingName stands in for a file without a name so it sorts after any
// real one.
const missingName = "ZZZZZZ"

// Compare orders sibling pages: ascending sort order first, then file name
// (or folder name) byte-wise, so upper case sorts before lower case. A nil
// file has the default sort order and no name.
func Compare(a, b *adf.LocalFile) int {
	if c := cmp.Compare(sortOrderOf(a), sortOrderOf(b)); c != 0 {
		return c
	}
	return strings.Compare(sortNameOf(a), sortNameOf(b))
}

func sortOrderOf(f *adf.LocalFile) int {
	if f == nil {
		return adf.DefaultSortOrder
	}
	return f.SortOrder
}

func sortNameOf(f *adf.LocalFile) string {
	if name := f.SortName(); name != "" {
		return name
	}
	return missingName
}
