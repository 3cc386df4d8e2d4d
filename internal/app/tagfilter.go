package app

import (
	"strings"

	"github.com/kyaoi/mdadf/internal/markdown"
)

// FilterByTag keeps the files whose frontmatter tags contain tag. Tags are
// compared case-insensitively.
func FilterByTag(files []markdown.File, tag string) []markdown.File {
	tag = strings.TrimSpace(tag)
	var kept []markdown.File
	for _, f := range files {
		if hasTag(f.Frontmatter[markdown.TagsKey], tag) {
			kept = append(kept, f)
		}
	}
	return kept
}

func hasTag(raw any, tag string) bool {
	switch v := raw.(type) {
	case string:
		return strings.EqualFold(strings.TrimSpace(v), tag)
	case []string:
		for _, item := range v {
			if strings.EqualFold(strings.TrimSpace(item), tag) {
				return true
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.EqualFold(strings.TrimSpace(s), tag) {
				return true
			}
		}
	}
	return false
}
