package document

import (
	"regexp"
	"strings"
)

var unsafeName = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]+`)

// FileName turns a book title into a file base name. Titles keep their case
// and spaces; only characters that are invalid in file names are replaced.
func FileName(title string) string {
	s := unsafeName.ReplaceAllString(strings.TrimSpace(title), "-")
	s = strings.Trim(s, "-. ")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if s == "" {
		return "untitled"
	}
	return s
}
