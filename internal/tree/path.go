package tree

import (
	"path/filepath"
	"strings"
)

// CommonPath returns the longest sequence of leading path segments shared
// by every path. Segments are compared whole, so /foo1 is not a prefix of
// /foo12.
func CommonPath(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyInput
	}

	common := splitPath(paths[0])
	for _, p := range paths[1:] {
		parts := splitPath(p)
		for i := range common {
			if i >= len(parts) || parts[i] != common[i] {
				common = common[:i]
				break
			}
		}
	}
	return common, nil
}

// JoinSegments joins path segments produced by CommonPath back into a path.
func JoinSegments(segments []string) string {
	joined := strings.Join(segments, string(filepath.Separator))
	if joined == "" && len(segments) > 0 {
		return string(filepath.Separator)
	}
	return joined
}

func splitPath(p string) []string {
	return strings.Split(filepath.Clean(p), string(filepath.Separator))
}
