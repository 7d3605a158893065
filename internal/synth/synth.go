// Package synth expands input book rows into the hand-off table: a
// classification, a description and a chapter plan per book, lowered into one
// row of generation instructions per chapter.
package synth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/thywilljoshua/bookmaker/internal/ai"
	"github.com/thywilljoshua/bookmaker/internal/book"
	"github.com/thywilljoshua/bookmaker/internal/logger"
	"github.com/thywilljoshua/bookmaker/internal/memory"
	"github.com/thywilljoshua/bookmaker/internal/metrics"
)

var (
	// ErrNoChapters means the plan reply could not be used; the book is skipped.
	ErrNoChapters = errors.New("no chapters generated")
	errBlankTitle = errors.New("blank chapter title")
)

type Synthesizer struct {
	gen     *ai.Generator
	variant book.Variant
	memory  *memory.Store
	metrics *metrics.Recorder
}

// New builds a Synthesizer. mem receives every realized chapter; it may be nil.
func New(gen *ai.Generator, v book.Variant, mem *memory.Store, m *metrics.Recorder) *Synthesizer {
	return &Synthesizer{gen: gen, variant: v, memory: mem, metrics: m}
}

type classification struct {
	Genre    string `json:"genre"`
	Audience string `json:"audience"`
}

// planReply mirrors the requested JSON shape. Pointers tell a missing key from
// an empty one.
type planReply struct {
	Chapters []struct {
		Title       *string   `json:"title"`
		Subheadings *[]string `json:"subheadings"`
	} `json:"chapters"`
}

// Classify asks for genre and audience. Anything short of both values falls
// back to the variant defaults.
func (s *Synthesizer) Classify(ctx context.Context, title string) (genre, audience string) {
	var c classification
	kind := s.gen.JSON(ctx, s.variant.ClassifyPrompt(title), &c)
	genre, audience = strings.TrimSpace(c.Genre), strings.TrimSpace(c.Audience)
	if kind == ai.Invalid || genre == "" || audience == "" {
		logger.Warn(ctx, "⚠️ using default classification",
			"genre", s.variant.DefaultGenre, "audience", s.variant.DefaultAudience)
		return s.variant.DefaultGenre, s.variant.DefaultAudience
	}
	return genre, audience
}

// Describe asks for a short description. A failed call yields "".
func (s *Synthesizer) Describe(ctx context.Context, title string) string {
	return s.gen.Text(ctx, s.variant.DescribePrompt(title)).Content()
}

// Plan asks for the chapter list and clamps it to the requested count and to
// the shorter of the title and subheading lists.
func (s *Synthesizer) Plan(ctx context.Context, spec book.Spec, description string) ([]book.ChapterPlan, error) {
	var reply planReply
	if s.gen.JSON(ctx, s.variant.PlanPrompt(spec.Title, spec.Chapters, description, spec.Structure), &reply) == ai.Invalid {
		return nil, ErrNoChapters
	}

	var titles []string
	var subs [][]string
	for _, c := range reply.Chapters {
		if c.Title == nil || c.Subheadings == nil {
			return nil, fmt.Errorf("%w: chapter entry without title or subheadings", ErrNoChapters)
		}
		titles = append(titles, *c.Title)
		subs = append(subs, *c.Subheadings)
	}

	n := min(spec.Chapters, len(titles), len(subs))
	if n == 0 {
		return nil, ErrNoChapters
	}
	if n < spec.Chapters {
		s.metrics.Shortfall()
		logger.Warn(ctx, "⚠️ partial generation", "available", n, "requested", spec.Chapters)
	}

	plans := make([]book.ChapterPlan, 0, n)
	for i := 0; i < n; i++ {
		sh := subs[i]
		if len(sh) > s.variant.Subheadings {
			sh = sh[:s.variant.Subheadings]
		}
		if len(sh) < s.variant.Subheadings {
			s.metrics.Shortfall()
			logger.Warn(ctx, "⚠️ partial subheadings",
				string(logger.ChapterKey), i+1, "available", len(sh), "expected", s.variant.Subheadings)
		}
		plans = append(plans, book.ChapterPlan{
			Index:       i + 1,
			Title:       strings.TrimSpace(titles[i]),
			Subheadings: sh,
		})
	}
	return plans, nil
}

// Rows lowers a plan into hand-off rows. A chapter that cannot be lowered is
// logged and skipped. The book introduction rides on the first emitted row.
func (s *Synthesizer) Rows(ctx context.Context, spec book.Spec, profile book.Profile, plans []book.ChapterPlan) []book.HandoffRow {
	meta := s.variant.Metadata(profile)
	intro := s.variant.IntroPrompt(spec.Title, profile.Description)

	var rows []book.HandoffRow
	for _, p := range plans {
		cctx := logger.WithValue(ctx, logger.ChapterKey, p.Index)
		row, err := s.row(spec, p)
		if err != nil {
			logger.Error(cctx, "⚠️ skipped chapter", err)
			continue
		}
		if len(rows) == 0 {
			row.IntroPrompt = intro
		}
		row.Metadata = meta
		rows = append(rows, row)
		if s.memory != nil {
			s.memory.Record(p.Title, p.Subheadings)
		}
		s.metrics.Chapter("planned")
	}
	return rows
}

func (s *Synthesizer) row(spec book.Spec, p book.ChapterPlan) (book.HandoffRow, error) {
	if p.Title == "" {
		return book.HandoffRow{}, errBlankTitle
	}
	if len(p.Subheadings) > book.MaxSubheadings {
		return book.HandoffRow{}, fmt.Errorf("%d subheadings exceed %d slots", len(p.Subheadings), book.MaxSubheadings)
	}
	row := book.HandoffRow{
		BookTitle:    spec.Title,
		Author:       spec.Author,
		ChapterTitle: p.Heading(),
		ChapterIntro: s.variant.ChapterIntroPrompt(p.Index, p.Title, spec.Title),
	}
	for _, sh := range p.Subheadings {
		sh = strings.TrimSpace(sh)
		row.Subsections = append(row.Subsections, book.Subsection{
			Label:  sh,
			Prompt: s.variant.SubsectionPrompt(sh, p.Index, spec.Title),
		})
	}
	return row, nil
}

// Book runs the full synthesis for one input row. ErrNoChapters means the book was
// skipped.
func (s *Synthesizer) Book(ctx context.Context, spec book.Spec) ([]book.HandoffRow, error) {
	ctx = logger.WithValue(ctx, logger.BookKey, spec.Title)
	logger.Info(ctx, "📘 planning book", "chapters", spec.Chapters, "structure", spec.Structure)

	var profile book.Profile
	profile.Genre, profile.Audience = s.Classify(ctx, spec.Title)
	profile.Description = s.Describe(ctx, spec.Title)

	plans, err := s.Plan(ctx, spec, profile.Description)
	if err != nil {
		return nil, err
	}
	return s.Rows(ctx, spec, profile, plans), nil
}

// Run synthesizes every input row in order. Skipped books are logged; only context
// cancellation stops the run early.
func (s *Synthesizer) Run(ctx context.Context, specs []book.Spec) ([]book.HandoffRow, error) {
	var rows []book.HandoffRow
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return rows, err
		}
		r, err := s.Book(ctx, spec)
		if err != nil {
			logger.Warn(logger.WithValue(ctx, logger.BookKey, spec.Title), "⚠️ skipping book", "error", err.Error())
			continue
		}
		rows = append(rows, r...)
	}
	return rows, nil
}
