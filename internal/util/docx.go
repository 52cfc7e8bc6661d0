package util

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var xmlTag = regexp.MustCompile(`<[^>]+>`)

// ExtractDocxText returns the visible text of a .docx file with markup removed.
func ExtractDocxText(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", FileError("parse docx", path, err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	text := strings.TrimSpace(xmlTag.ReplaceAllString(content, ""))
	if text == "" {
		return "", fmt.Errorf("no text content found in %s", filepath.Base(path))
	}
	return text, nil
}
