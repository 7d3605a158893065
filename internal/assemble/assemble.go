// Package assemble turns manuscripts into documents one unit at a time,
// checkpointing the document after every section so an interrupted run keeps
// everything completed before the interruption.
package assemble

import (
	"context"
	"fmt"
	"strings"

	"github.com/thywilljoshua/bookmaker/internal/ai"
	"github.com/thywilljoshua/bookmaker/internal/book"
	"github.com/thywilljoshua/bookmaker/internal/document"
	"github.com/thywilljoshua/bookmaker/internal/logger"
	"github.com/thywilljoshua/bookmaker/internal/metrics"
	"github.com/thywilljoshua/bookmaker/internal/sanitize"
)

// Texter generates free text for one instruction.
type Texter interface {
	Text(ctx context.Context, prompt string) ai.Result
}

// Checkpointer persists the whole document.
type Checkpointer interface {
	Checkpoint(ctx context.Context, d *document.Document) error
}

type State int

const (
	NotStarted State = iota
	TitlePageWritten
	IntroWritten
	ChapterLoop
	Finalized
)

func (s State) String() string {
	return [...]string{"not-started", "title-page", "intro", "chapters", "finalized"}[s]
}

const (
	DefaultAttribution = "By AI Book Generator"
	DefaultCopyright   = "Copyright © 2025 AI Book Generator\n" +
		"This is a work of fiction for children. Names, characters, places, and incidents either " +
		"are the product of the author's imagination or are used fictitiously.\n" +
		"Any resemblance to actual events, locales, or persons, living or dead, is entirely coincidental.\n" +
		"All rights reserved.\n\n" +
		"Recommended for ages 6-12"
)

type Options struct {
	// Attribution is the title-page line when a book has no author.
	Attribution string
	// Copyright, when set, adds a copyright page to narrative books.
	Copyright string
}

// Report summarizes one book.
type Report struct {
	Title       string
	State       State
	Chapters    int
	Units       int
	Failed      int
	Skipped     int
	Checkpoints int
	// Overwrites names an earlier book of the same run whose files this
	// book replaced because both titles resolve to the same file name.
	Overwrites string
	Err        error
}

type Assembler struct {
	text    Texter
	store   Checkpointer
	opts    Options
	metrics *metrics.Recorder
}

func New(t Texter, store Checkpointer, opts Options, m *metrics.Recorder) *Assembler {
	if opts.Attribution == "" {
		opts.Attribution = DefaultAttribution
	}
	return &Assembler{text: t, store: store, opts: opts, metrics: m}
}

// Run assembles manuscripts in order. It stops early only when ctx is done.
func (a *Assembler) Run(ctx context.Context, ms []book.Manuscript) ([]Report, error) {
	reports := make([]Report, 0, len(ms))
	files := make(map[string]string, len(ms))
	for _, m := range ms {
		name := document.FileName(m.Title)
		prev, clash := files[name]
		files[name] = m.Title
		if clash {
			logger.Warn(ctx, "⚠️ title shares a file with an earlier book, its output will be replaced",
				"title", m.Title, "earlier", prev, "file", name)
		}
		r := a.Assemble(ctx, m)
		if clash {
			r.Overwrites = prev
		}
		reports = append(reports, r)
		if r.Err != nil {
			return reports, r.Err
		}
	}
	return reports, nil
}

// Assemble realizes one manuscript. Report.Err is set only when ctx was
// cancelled part way; unit failures degrade the document instead.
func (a *Assembler) Assemble(ctx context.Context, m book.Manuscript) Report {
	ctx = logger.WithValue(ctx, logger.BookKey, m.Title)
	rep := Report{Title: m.Title}
	b := &build{Assembler: a, doc: document.New(m.Title), rep: &rep}

	logger.Info(ctx, "📘 starting book", "style", m.Style.String(), "sections", len(m.Sections), "units", len(m.Units()))
	if m.Style == book.Narrative {
		b.narrativeFrontMatter(m.Author)
	} else {
		b.titlePage(m.Author)
	}
	rep.State = TitlePageWritten
	if len(m.Sections) == 0 {
		// nothing to generate; the front matter alone is the book
		b.checkpoint(ctx)
	}

	for _, sec := range m.Sections {
		if err := ctx.Err(); err != nil {
			rep.Err = err
			logger.Warn(ctx, "assembly interrupted", "state", rep.State.String())
			return rep
		}
		b.section(ctx, m.Style, sec)
	}

	rep.State = Finalized
	logger.Info(ctx, "✅ book finished", "chapters", rep.Chapters, "failed_units", rep.Failed, "checkpoints", rep.Checkpoints)
	return rep
}

// build carries the document for the book in progress.
type build struct {
	*Assembler
	doc *document.Document
	rep *Report
}

func (b *build) titlePage(author string) {
	line := b.opts.Attribution
	if author != "" {
		line = "By " + author
	}
	b.doc.CenteredHeading(b.doc.Title, 0, 20).CenteredParagraph(line, 14).PageBreak()
}

func (b *build) narrativeFrontMatter(author string) {
	line := b.opts.Attribution
	if author != "" {
		line = "By " + author
	}
	b.doc.CenteredHeading(b.doc.Title, 0, 24).CenteredParagraph(line, 14).PageBreak()
	if b.opts.Copyright != "" {
		b.doc.CenteredHeading("Copyright", 1, 0).CenteredParagraph(b.opts.Copyright, 0).PageBreak()
	}
}

// section appends one section and checkpoints it. Each unit is isolated: a
// unit that fails is logged and left out while its siblings proceed.
func (b *build) section(ctx context.Context, style book.Style, sec book.Section) {
	ctx = logger.WithValue(ctx, logger.ChapterKey, sec.Label)
	before := len(b.doc.Blocks)
	wrote := false

	for _, u := range sec.Units {
		ok, err := b.unit(ctx, style, u)
		if err != nil {
			b.rep.Skipped++
			logger.Error(ctx, "⚠️ skipped unit", err, "kind", u.Kind.String())
			continue
		}
		wrote = wrote || ok
	}

	if !wrote || len(b.doc.Blocks) == before {
		return
	}
	b.doc.PageBreak()
	b.checkpoint(ctx)
}

// unit generates and appends a single unit. It reports whether anything was
// appended.
func (b *build) unit(ctx context.Context, style book.Style, u book.PromptUnit) (wrote bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	switch u.Kind {
	case book.KindIntroduction:
		logger.Info(ctx, "📄 generating introduction")
		text := sanitize.Sanitize(b.generate(ctx, u))
		if text == "" {
			return false, nil
		}
		b.doc.Heading(u.Heading, 1).Paragraph(text).Paragraph("")
		b.rep.State = IntroWritten
		return true, nil

	case book.KindChapterIntro:
		logger.Info(ctx, "📚 chapter", "heading", u.Heading)
		text := sanitize.Sanitize(sanitize.StripTitleEcho(b.generate(ctx, u), u.Heading))
		b.doc.Heading(u.Heading, 1).Paragraph(text).Paragraph("")
		b.enterChapter()
		return true, nil

	case book.KindSubsection:
		logger.Info(ctx, "🔹 subheading", "heading", u.Heading)
		text := sanitize.Sanitize(sanitize.StripSubheadingEcho(b.generate(ctx, u), u.Heading))
		b.doc.Heading(u.Heading, 2).Paragraph(text).Paragraph("")
		return true, nil

	case book.KindPrologue, book.KindChapter, book.KindEpilogue:
		logger.Info(ctx, "📖 narrative unit", "kind", u.Kind.String(), "heading", u.Heading)
		text := strings.TrimSpace(b.generate(ctx, u))
		b.doc.CenteredHeading(sanitize.Sanitize(u.Heading), 1, 0).Paragraph(text)
		if u.Kind == book.KindChapter {
			b.enterChapter()
		}
		return true, nil

	default:
		return false, fmt.Errorf("unknown unit kind %d", u.Kind)
	}
}

func (b *build) enterChapter() {
	b.rep.Chapters++
	b.rep.State = ChapterLoop
	b.metrics.Chapter("assembled")
}

// generate issues the call for u. Failures are already logged by the
// generator; they count against the report and yield empty text.
func (b *build) generate(ctx context.Context, u book.PromptUnit) string {
	b.rep.Units++
	res := b.text.Text(ctx, u.Instruction)
	if !res.OK() {
		b.rep.Failed++
		return ""
	}
	return res.Content()
}

func (b *build) checkpoint(ctx context.Context) {
	err := b.store.Checkpoint(ctx, b.doc)
	b.metrics.Checkpoint(err)
	if err != nil {
		logger.Error(ctx, "❌ checkpoint failed", err)
		return
	}
	b.rep.Checkpoints++
	logger.Debug(ctx, "💾 saved progress", "blocks", len(b.doc.Blocks))
}
