package book

import "strings"

// MaxSubheadings is the number of subheading slots in a hand-off row.
const MaxSubheadings = 4

// Subsection is one subheading slot of a hand-off row.
type Subsection struct {
	Label  string
	Prompt string
}

// HandoffRow is one realized chapter in the table written by the prompts stage
// and read by the assembler.
type HandoffRow struct {
	BookTitle    string
	Author       string
	IntroPrompt  string
	ChapterTitle string
	ChapterIntro string
	Subsections  []Subsection
	Metadata     Metadata
}

// Usable reports whether the row has a chapter label and a chapter-intro
// instruction.
func (r HandoffRow) Usable() bool {
	return strings.TrimSpace(r.ChapterTitle) != "" && strings.TrimSpace(r.ChapterIntro) != ""
}

// NarrativeRow is one row of the fiction-variant table.
type NarrativeRow struct {
	BookTitle string
	Author    string
	Prologue  string
	Chapter   string
	Prompt    string
}
