package markdown

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kyaoi/mdadf/internal/adf"
	"github.com/kyaoi/mdadf/internal/config"
)

// Frontmatter keys understood by the converter.
const (
	TitleKey                = "connie-title"
	FallbackTitleKey        = "title"
	TagsKey                 = "tags"
	PageIDKey               = "connie-page-id"
	DontChangeParentPageKey = "connie-dont-change-parent-page"
	ContentTypeKey          = "connie-content-type"
	BlogPostDateKey         = "connie-blog-post-date"
)

const blogPostDateLayout = "2006-01-02"

// Converter turns Markdown files into publishable pages.
type Converter struct{}

// Convert parses the body of file into a document and resolves the page
// metadata from its frontmatter.
func (Converter) Convert(file File, settings config.Settings) (*adf.LocalFile, error) {
	fm := file.Frontmatter
	if fm == nil {
		fm = map[string]any{}
	}

	doc := adf.FromMarkdown([]byte(file.Contents), settings.Extensions)

	title, ok := stringValue(fm, TitleKey)
	if !ok {
		title, ok = stringValue(fm, FallbackTitleKey)
	}
	if !ok && settings.FirstHeadingPageTitle {
		title, ok = doc.TakeLeadingTitle()
	}
	if !ok {
		title = file.Stem()
	}

	contentType, err := parseContentType(fm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.AbsolutePath, err)
	}
	blogPostDate, err := parseBlogPostDate(fm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.AbsolutePath, err)
	}
	pageID, _ := stringValue(fm, PageIDKey)
	dontChangeParent, _ := fm[DontChangeParentPageKey].(bool)

	return &adf.LocalFile{
		FolderName:           file.FolderName,
		AbsolutePath:         file.AbsolutePath,
		FileName:             file.FileName,
		Contents:             doc,
		PageTitle:            title,
		Frontmatter:          fm,
		Tags:                 mergeTags(tagValues(fm[TagsKey]), settings.DefaultTags),
		PageID:               pageID,
		DontChangeParentPage: dontChangeParent,
		ContentType:          contentType,
		BlogPostDate:         blogPostDate,
		SortOrder:            adf.DefaultSortOrder,
	}, nil
}

func parseContentType(fm map[string]any) (adf.ContentType, error) {
	raw, ok := stringValue(fm, ContentTypeKey)
	if !ok {
		return adf.ContentTypePage, nil
	}
	switch strings.ToLower(raw) {
	case "page":
		return adf.ContentTypePage, nil
	case "blogpost":
		return adf.ContentTypeBlogPost, nil
	}
	return "", fmt.Errorf("unsupported %s %q", ContentTypeKey, raw)
}

func parseBlogPostDate(fm map[string]any) (string, error) {
	switch v := fm[BlogPostDateKey].(type) {
	case nil:
		return "", nil
	case time.Time:
		return v.Format(blogPostDateLayout), nil
	case string:
		if _, err := time.Parse(blogPostDateLayout, v); err != nil {
			return "", fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", BlogPostDateKey, v)
		}
		return v, nil
	default:
		return "", fmt.Errorf("invalid %s %v", BlogPostDateKey, v)
	}
}

func stringValue(fm map[string]any, key string) (string, bool) {
	switch v := fm[key].(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	}
	return "", false
}

func tagValues(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func mergeTags(lists ...[]string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, list := range lists {
		for _, tag := range list {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
