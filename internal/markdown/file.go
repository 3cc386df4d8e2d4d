package markdown

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"
)

// File is a Markdown source file as read from disk.
type File struct {
	AbsolutePath string
	FileName     string
	FolderName   string
	Frontmatter  map[string]any
	Contents     string
}

// Load reads the file at path and splits off its frontmatter.
func Load(path string) (File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return File{}, err
	}
	return Parse(abs, data)
}

// Parse builds a File from raw source. YAML and TOML frontmatter are
// recognised; a file without frontmatter gets an empty map.
func Parse(path string, source []byte) (File, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return File{}, fmt.Errorf("parse frontmatter of %s: %w", path, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return File{
		AbsolutePath: path,
		FileName:     filepath.Base(path),
		FolderName:   filepath.Base(filepath.Dir(path)),
		Frontmatter:  meta,
		Contents:     string(body),
	}, nil
}

// Stem is the file name without its extension.
func (f File) Stem() string {
	return Stem(f.FileName)
}

// Stem strips the extension from a file name.
func Stem(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
