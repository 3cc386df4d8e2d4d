package adf

// ContentType selects how a page is published.
type ContentType string

const (
	ContentTypePage     ContentType = "page"
	ContentTypeBlogPost ContentType = "blogPost"
)

// DefaultSortOrder is used when a page does not declare a sort order. Lower
// values sort first.
const DefaultSortOrder = 100000

// LocalFile is a converted page that is ready to be published.
type LocalFile struct {
	FolderName           string         `json:"folderName"`
	AbsolutePath         string         `json:"absoluteFilePath"`
	FileName             string         `json:"fileName"`
	Contents             Document       `json:"contents"`
	PageTitle            string         `json:"pageTitle"`
	Frontmatter          map[string]any `json:"frontmatter"`
	Tags                 []string       `json:"tags"`
	PageID               string         `json:"pageId,omitempty"`
	DontChangeParentPage bool           `json:"dontChangeParentPageId"`
	ContentType          ContentType    `json:"contentType"`
	BlogPostDate         string         `json:"blogPostDate,omitempty"`
	SortOrder            int            `json:"sortOrder"`

	// Synthetic marks folder pages generated because no index file existed.
	Synthetic bool `json:"synthetic,omitempty"`
}

// SortName is the name used to break sort order ties.
func (f *LocalFile) SortName() string {
	if f == nil {
		return ""
	}
	if f.FileName != "" {
		return f.FileName
	}
	return f.FolderName
}
