package book

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterHeading(t *testing.T) {
	c := ChapterPlan{Index: 3, Title: "Keystone Habits"}
	assert.Equal(t, "Chapter 3: Keystone Habits", c.Heading())
}

func TestVariantByName(t *testing.T) {
	for name, want := range map[string]string{
		"":         "adult",
		"Adult":    "adult",
		"children": "children",
		" kids ":   "children",
	} {
		v, err := VariantByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, v.Name, name)
	}

	_, err := VariantByName("poetry")
	assert.Error(t, err)
}

func TestVariantPrompts(t *testing.T) {
	p := Adult.ChapterIntroPrompt(1, "Why Habits Matter", "Habits")
	assert.Equal(t, "Write a 200-word introduction for Chapter 1, titled 'Why Habits Matter', in the book 'Habits'. "+
		"Start with an emotional or insightful hook. Do not repeat the chapter title. Set context and build reader interest.", p)

	assert.Contains(t, Adult.IntroPrompt("Habits", "A book about habits."), "1500-word")
	assert.Contains(t, Children.IntroPrompt("Bugs", "A book about bugs."), "800-word")
	assert.Contains(t, Adult.SubsectionPrompt("Cue", 2, "Habits"), "'Cue' for Chapter 2 of 'Habits'")
	assert.Contains(t, Children.SubsectionPrompt("Wings", 1, "Bugs"), "300-word")
	assert.Contains(t, Adult.ClassifyPrompt("Habits"), `{"genre": "...", "audience": "..."}`)
}

func TestPlanPromptShape(t *testing.T) {
	adult := Adult.PlanPrompt("Habits", 2, "desc", "problem-solution")
	assert.Contains(t, adult, "2 chapter titles and 4 subheadings")
	assert.Contains(t, adult, `"subheadings": ["...", "...", "...", "..."]`)

	kids := Children.PlanPrompt("Bugs", 5, "desc", "chronological")
	assert.Contains(t, kids, "5 fun chapter titles and 3 simple subheadings")
	assert.Contains(t, kids, `"subheadings": ["...", "...", "..."]`)
}

func TestVariantMetadata(t *testing.T) {
	m := Children.Metadata(Profile{Genre: "Science", Audience: "Ages 8-10"})
	assert.Equal(t, Metadata{
		Genre:       "Science",
		Audience:    "Ages 8-10",
		Tone:        "Fun and educational",
		Style:       "Simple and engaging",
		Pacing:      "Easy to follow",
		Language:    "English",
		Readability: "Elementary Level",
		WordGoal:    1000,
	}, m)
	assert.Empty(t, Children.Voice.Genre)
}

func TestFromHandoff(t *testing.T) {
	rows := []HandoffRow{
		{BookTitle: "Habits", IntroPrompt: "intro", ChapterTitle: "Chapter 1: Start", ChapterIntro: "c1",
			Subsections: []Subsection{{"Cue", "p1"}, {"", "orphan"}, {"Routine", ""}, {"Reward", "p4"}}},
		{BookTitle: "Sleep", ChapterTitle: "Chapter 1: Rest", ChapterIntro: "s1"},
		{BookTitle: "Habits", IntroPrompt: "ignored", ChapterTitle: "Chapter 2: Keep", ChapterIntro: "c2"},
		{BookTitle: "Habits", ChapterTitle: "Chapter 3: Missing intro"},
		{BookTitle: "", ChapterTitle: "Chapter 1: Nobody", ChapterIntro: "x"},
	}

	got := FromHandoff(rows)

	require.Len(t, got, 2)
	assert.Equal(t, "Habits", got[0].Title)
	assert.Equal(t, "Sleep", got[1].Title)

	want := []PromptUnit{
		{Kind: KindIntroduction, Instruction: "intro", Heading: "Introduction"},
		{Kind: KindChapterIntro, Instruction: "c1", Heading: "Chapter 1: Start"},
		{Kind: KindSubsection, Instruction: "p1", Heading: "Cue"},
		{Kind: KindSubsection, Instruction: "p4", Heading: "Reward"},
		{Kind: KindChapterIntro, Instruction: "c2", Heading: "Chapter 2: Keep"},
	}
	if diff := cmp.Diff(want, got[0].Units()); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, got[0].Sections, 3)

	// no intro prompt means no introduction section at all
	require.Len(t, got[1].Sections, 1)
	assert.Equal(t, KindChapterIntro, got[1].Sections[0].Units[0].Kind)
}

func TestFromNarrative(t *testing.T) {
	rows := []NarrativeRow{
		{BookTitle: "Moon Fox", Author: "Ada", Prologue: "set the scene", Chapter: "Chapter 1", Prompt: "fox wakes"},
		{BookTitle: "Moon Fox", Author: "Ada", Prologue: "second prologue ignored", Chapter: "Chapter 2", Prompt: "fox runs"},
		{BookTitle: "Moon Fox", Chapter: "EPILOGUE: Home", Prompt: "fox sleeps"},
		{BookTitle: "Moon Fox", Chapter: "Chapter 3", Prompt: "  "},
	}

	got := FromNarrative(rows)

	require.Len(t, got, 1)
	m := got[0]
	assert.Equal(t, Narrative, m.Style)
	assert.Equal(t, "Ada", m.Author)
	kinds := make([]string, 0, len(m.Sections))
	for _, u := range m.Units() {
		kinds = append(kinds, u.Kind.String())
	}
	assert.Equal(t, "prologue chapter chapter epilogue", strings.Join(kinds, " "))
	assert.Equal(t, "set the scene", m.Sections[0].Units[0].Instruction)
	assert.Equal(t, "Epilogue", m.Sections[3].Units[0].Heading)
	assert.Equal(t, "EPILOGUE: Home", m.Sections[3].Label)
}

func TestFromNarrativePrologueSkipsUnlabelledRows(t *testing.T) {
	got := FromNarrative([]NarrativeRow{
		{BookTitle: "T", Prologue: "from blank row", Chapter: " ", Prompt: "x"},
		{BookTitle: "T", Prologue: "kept", Chapter: "Chapter 1", Prompt: "p"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Sections[0].Units[0].Instruction)
	assert.Len(t, got[0].Sections, 2)
}

func TestFromNarrativeBlankPrologue(t *testing.T) {
	got := FromNarrative([]NarrativeRow{{BookTitle: "T", Prologue: " ", Chapter: "Chapter 1", Prompt: "p"}})
	require.Len(t, got, 1)
	require.Len(t, got[0].Sections, 1)
	assert.Equal(t, KindChapter, got[0].Sections[0].Units[0].Kind)
}

func TestIsEpilogue(t *testing.T) {
	assert.True(t, IsEpilogue("Epilogue"))
	assert.True(t, IsEpilogue("  epilogue - after"))
	assert.False(t, IsEpilogue("The Epilogue"))
	assert.False(t, IsEpilogue(""))
}

func TestPromptUnitBlank(t *testing.T) {
	assert.True(t, PromptUnit{Instruction: " \n"}.Blank())
	assert.False(t, PromptUnit{Instruction: "x"}.Blank())
}
