package book

import (
	"fmt"
	"strings"
)

// Metadata is the per-book descriptive data repeated on every hand-off row.
type Metadata struct {
	Genre       string
	Audience    string
	Tone        string
	Style       string
	Pacing      string
	Language    string
	Readability string
	WordGoal    int
}

// Variant is an audience tier of the non-fiction pipeline. Tiers share the
// same prompt structure and differ in wording, word counts, subheading count
// and fallback classification.
type Variant struct {
	Name            string
	DefaultGenre    string
	DefaultAudience string
	// Subheadings is the fixed number of subheadings per chapter.
	Subheadings int
	// Voice carries the tone/style metadata; Genre and Audience are filled per book.
	Voice Metadata

	classify     string
	describe     string
	plan         string
	intro        string
	chapterIntro string
	subsection   string
}

var Adult = Variant{
	Name:            "adult",
	DefaultGenre:    "Self-Help",
	DefaultAudience: "Adults",
	Subheadings:     4,
	Voice: Metadata{
		Tone:        "Informative and supportive",
		Style:       "Clear and practical",
		Pacing:      "Moderate pace",
		Language:    "English",
		Readability: "Advanced Proficiency",
		WordGoal:    2000,
	},
	classify: `For the book titled '%s', suggest the most suitable genre and ideal target audience. ` +
		`Return as JSON: {"genre": "...", "audience": "..."}`,
	describe: `Using the title '%s', assume this is a non-fiction book for an advanced adult audience. ` +
		`Write an engaging, three-sentence description introducing the topic, exploring key insights, ` +
		`and hinting at what readers will gain.`,
	plan: `Create a list of %d chapter titles and %d subheadings per chapter for a book titled '%s' ` +
		`based on this description: %s. Structure should be %s. ` +
		`Return as JSON like: %s`,
	intro: `Write a 1500-word engaging and informative introduction for the non-fiction book '%s'. ` +
		`Focus on the key themes: %s. Use storytelling, context, and a preview of what's inside. Avoid using headings.`,
	chapterIntro: `Write a 200-word introduction for Chapter %d, titled '%s', in the book '%s'. ` +
		`Start with an emotional or insightful hook. Do not repeat the chapter title. Set context and build reader interest.`,
	subsection: `Write a 500-word engaging section on '%s' for Chapter %d of '%s'. ` +
		`Include real-world examples, useful strategies, and a warm, professional tone. ` +
		`Maintain continuity and avoid repeating the chapter title.`,
}

var Children = Variant{
	Name:            "children",
	DefaultGenre:    "Educational",
	DefaultAudience: "Ages 6-12",
	Subheadings:     3,
	Voice: Metadata{
		Tone:        "Fun and educational",
		Style:       "Simple and engaging",
		Pacing:      "Easy to follow",
		Language:    "English",
		Readability: "Elementary Level",
		WordGoal:    1000,
	},
	classify: `For the children's book titled '%s', suggest the most suitable educational genre and ideal age range. ` +
		`Return as JSON: {"genre": "...", "audience": "..."}`,
	describe: `Using the title '%s', assume this is a non-fiction book for children ages 6-12. ` +
		`Write an engaging, two-sentence description that introduces the topic in a fun way, ` +
		`explains why it's interesting, and hints at what young readers will learn. ` +
		`Use simple, exciting language that makes kids want to read more.`,
	plan: `Create a list of %d fun chapter titles and %d simple subheadings per chapter for a children's book titled '%s' ` +
		`based on this description: %s. Structure should be %s. ` +
		`Make titles exciting and educational. Keep subheadings simple and engaging for kids. ` +
		`Return as JSON like: %s`,
	intro: `Write a 800-word engaging and fun introduction for the children's book '%s'. ` +
		`Focus on the key themes: %s. Use simple language, fun facts, and exciting examples. ` +
		`Make it interesting for kids ages 6-12. Avoid using headings.`,
	chapterIntro: `Write a 100-word fun introduction for Chapter %d, titled '%s', in the children's book '%s'. ` +
		`Start with an exciting hook that makes kids curious. Use simple language. ` +
		`Do not repeat the chapter title. Make it sound like an adventure or discovery.`,
	subsection: `Write a 300-word engaging section on '%s' for Chapter %d of the children's book '%s'. ` +
		`Include fun examples, simple explanations, and interactive elements. ` +
		`Use age-appropriate language for kids ages 6-12. Make it exciting and educational. ` +
		`Maintain continuity and avoid repeating the chapter title.`,
}

// VariantByName resolves "adult" or "children" (also "kids").
func VariantByName(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "adult", "nonfiction":
		return Adult, nil
	case "children", "kids":
		return Children, nil
	default:
		return Variant{}, fmt.Errorf("unknown variant %q", name)
	}
}

func (v Variant) ClassifyPrompt(title string) string {
	return fmt.Sprintf(v.classify, title)
}

func (v Variant) DescribePrompt(title string) string {
	return fmt.Sprintf(v.describe, title)
}

func (v Variant) PlanPrompt(title string, chapters int, description, structure string) string {
	return fmt.Sprintf(v.plan, chapters, v.Subheadings, title, description, structure, v.planShape())
}

func (v Variant) planShape() string {
	slots := make([]string, v.Subheadings)
	for i := range slots {
		slots[i] = `"..."`
	}
	return `{"chapters": [{"title": "...", "subheadings": [` + strings.Join(slots, ", ") + `]}, ...]}`
}

func (v Variant) IntroPrompt(title, description string) string {
	return fmt.Sprintf(v.intro, title, description)
}

func (v Variant) ChapterIntroPrompt(index int, chapterTitle, title string) string {
	return fmt.Sprintf(v.chapterIntro, index, chapterTitle, title)
}

func (v Variant) SubsectionPrompt(subheading string, index int, title string) string {
	return fmt.Sprintf(v.subsection, subheading, index, title)
}

// Metadata returns the variant voice with the book's classification applied.
func (v Variant) Metadata(p Profile) Metadata {
	m := v.Voice
	m.Genre = p.Genre
	m.Audience = p.Audience
	return m
}
