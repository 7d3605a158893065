// Package sanitize removes generation artifacts from model output before it
// is placed in a manuscript.
package sanitize

import (
	"regexp"
	"strings"
)

var artifacts = strings.NewReplacer(
	"*", "",
	"#", "",
	`"`, "",
	"“", "",
	"”", "",
)

// chapterLine matches a line that opens with a generic "Chapter N" marker.
var chapterLine = regexp.MustCompile(`^chapter\s*\d+`)

// Sanitize strips emphasis markers, pound signs and double quotes, then trims
// surrounding whitespace. It never fails and is idempotent.
func Sanitize(text string) string {
	return strings.TrimSpace(artifacts.Replace(text))
}

// StripTitleEcho drops every line that restates the chapter heading: lines
// containing the heading's trailing clause (after the last ":"), lines
// containing the full heading, and lines starting with "Chapter N". Matching is
// case-insensitive. Remaining non-blank lines are kept, trimmed, in order.
func StripTitleEcho(text, heading string) string {
	full := strings.ToLower(strings.TrimSpace(heading))
	parts := strings.Split(full, ":")
	subtitle := strings.TrimSpace(parts[len(parts)-1])

	return filterLines(text, func(line string) bool {
		l := strings.ToLower(line)
		if subtitle != "" && strings.Contains(l, subtitle) {
			return false
		}
		if full != "" && strings.Contains(l, full) {
			return false
		}
		return !chapterLine.MatchString(l)
	})
}

// StripSubheadingEcho drops every line that contains the subheading label.
func StripSubheadingEcho(text, label string) string {
	name := strings.ToLower(strings.TrimSpace(label))
	if name == "" {
		return filterLines(text, func(string) bool { return true })
	}
	return filterLines(text, func(line string) bool {
		return !strings.Contains(strings.ToLower(line), name)
	})
}

func filterLines(text string, keep func(line string) bool) string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !keep(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
