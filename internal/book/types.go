// Package book holds the data that flows between the two pipeline stages:
// book specs, derived profiles and plans, hand-off rows and the prompt units
// an assembler consumes.
package book

import (
	"fmt"
	"strings"
)

// Spec is one row of the input table.
type Spec struct {
	Title     string
	Chapters  int
	Structure string
	Author    string
}

// Profile is the classification and description derived once per Spec.
type Profile struct {
	Genre       string
	Audience    string
	Description string
}

// ChapterPlan is one realized chapter. Index is 1-based and dense.
type ChapterPlan struct {
	Index       int
	Title       string
	Subheadings []string
}

// Heading is the display heading used in the hand-off table and document.
func (c ChapterPlan) Heading() string {
	return fmt.Sprintf("Chapter %d: %s", c.Index, c.Title)
}

// Kind tags a PromptUnit. It is decided when the unit is built from a table
// row; assemblers switch on it and never inspect labels.
type Kind int

const (
	KindIntroduction Kind = iota + 1
	KindChapterIntro
	KindSubsection
	KindPrologue
	KindEpilogue
	// KindChapter is a narrative chapter whose generated text is the whole
	// chapter body.
	KindChapter
)

func (k Kind) String() string {
	switch k {
	case KindIntroduction:
		return "introduction"
	case KindChapterIntro:
		return "chapter-intro"
	case KindSubsection:
		return "subsection"
	case KindPrologue:
		return "prologue"
	case KindEpilogue:
		return "epilogue"
	case KindChapter:
		return "chapter"
	default:
		return "unknown"
	}
}

// PromptUnit is the smallest thing content is generated for.
type PromptUnit struct {
	Kind        Kind
	Instruction string
	Heading     string
}

func (u PromptUnit) Blank() bool {
	return strings.TrimSpace(u.Instruction) == ""
}
