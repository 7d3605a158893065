package book

import "strings"

// Style selects how an assembler lays out a manuscript.
type Style int

const (
	NonFiction Style = iota
	Narrative
)

func (s Style) String() string {
	if s == Narrative {
		return "narrative"
	}
	return "nonfiction"
}

// Section is a group of units followed by a page break and a checkpoint.
type Section struct {
	Label string
	Units []PromptUnit
}

// Manuscript is the ordered unit sequence for one book title.
type Manuscript struct {
	Title    string
	Author   string
	Style    Style
	Sections []Section
}

// Units flattens the manuscript in assembly order.
func (m Manuscript) Units() []PromptUnit {
	var out []PromptUnit
	for _, s := range m.Sections {
		out = append(out, s.Units...)
	}
	return out
}

// FromHandoff groups hand-off rows by book title in first-seen order. Unusable
// rows are dropped before grouping; the introduction comes from the first
// usable row of each group.
func FromHandoff(rows []HandoffRow) []Manuscript {
	var (
		out   []Manuscript
		index = map[string]int{}
	)
	for _, r := range rows {
		title := strings.TrimSpace(r.BookTitle)
		if title == "" || !r.Usable() {
			continue
		}
		i, ok := index[title]
		if !ok {
			i = len(out)
			index[title] = i
			m := Manuscript{Title: title, Author: strings.TrimSpace(r.Author), Style: NonFiction}
			if intro := strings.TrimSpace(r.IntroPrompt); intro != "" {
				m.Sections = append(m.Sections, Section{
					Label: "Introduction",
					Units: []PromptUnit{{Kind: KindIntroduction, Instruction: intro, Heading: "Introduction"}},
				})
			}
			out = append(out, m)
		}
		out[i].Sections = append(out[i].Sections, chapterSection(r))
	}
	return out
}

func chapterSection(r HandoffRow) Section {
	heading := strings.TrimSpace(r.ChapterTitle)
	s := Section{
		Label: heading,
		Units: []PromptUnit{{Kind: KindChapterIntro, Instruction: strings.TrimSpace(r.ChapterIntro), Heading: heading}},
	}
	for i, sub := range r.Subsections {
		if i == MaxSubheadings {
			break
		}
		label, prompt := strings.TrimSpace(sub.Label), strings.TrimSpace(sub.Prompt)
		if label == "" || prompt == "" {
			continue
		}
		s.Units = append(s.Units, PromptUnit{Kind: KindSubsection, Instruction: prompt, Heading: label})
	}
	return s
}

// FromNarrative groups fiction rows by book title in first-seen order. Rows
// without a unit label are dropped first. A prologue is taken from the first
// remaining row of a group only; a unit whose label starts with "epilogue" is
// tagged KindEpilogue here so assemblers never look at labels.
func FromNarrative(rows []NarrativeRow) []Manuscript {
	var (
		out   []Manuscript
		index = map[string]int{}
	)
	for _, r := range rows {
		title := strings.TrimSpace(r.BookTitle)
		if title == "" || strings.TrimSpace(r.Chapter) == "" {
			continue
		}
		i, ok := index[title]
		if !ok {
			i = len(out)
			index[title] = i
			m := Manuscript{Title: title, Author: strings.TrimSpace(r.Author), Style: Narrative}
			if p := strings.TrimSpace(r.Prologue); p != "" {
				m.Sections = append(m.Sections, Section{
					Label: "Prologue",
					Units: []PromptUnit{{Kind: KindPrologue, Instruction: p, Heading: "Prologue"}},
				})
			}
			out = append(out, m)
		}
		label := strings.TrimSpace(r.Chapter)
		unit := PromptUnit{Kind: KindChapter, Instruction: strings.TrimSpace(r.Prompt), Heading: label}
		if unit.Blank() {
			continue
		}
		if IsEpilogue(label) {
			unit.Kind, unit.Heading = KindEpilogue, "Epilogue"
		}
		out[i].Sections = append(out[i].Sections, Section{Label: label, Units: []PromptUnit{unit}})
	}
	return out
}

// IsEpilogue reports whether a unit label names an epilogue.
func IsEpilogue(label string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), "epilogue")
}
