package ai

import (
	"context"
	"strings"

	"github.com/thywilljoshua/bookmaker/internal/logger"
	"github.com/thywilljoshua/bookmaker/internal/metrics"
)

// Result is the outcome of one generation call: either text or the reason it
// failed. Callers that degrade rather than abort use Content.
type Result struct {
	Text string
	Err  error
}

func Ok(text string) Result      { return Result{Text: text} }
func Failed(err error) Result    { return Result{Err: err} }
func (r Result) OK() bool        { return r.Err == nil }
func (r Result) Content() string { return r.Text }

// Generator issues single best-effort calls against a Provider. It never
// retries and never lets a provider error escape.
type Generator struct {
	provider Provider
	opts     Options
	metrics  *metrics.Recorder
}

func NewGenerator(p Provider, opts Options, m *metrics.Recorder) *Generator {
	if p == nil {
		p = Noop{}
	}
	return &Generator{provider: p, opts: opts, metrics: m}
}

// Text requests free text. Failures are logged and returned as a failed
// Result with empty text.
func (g *Generator) Text(ctx context.Context, prompt string) Result {
	return g.call(ctx, prompt, g.opts)
}

func (g *Generator) call(ctx context.Context, prompt string, opts Options) Result {
	if strings.TrimSpace(prompt) == "" {
		g.metrics.Generation("skipped")
		return Failed(ErrEmptyPrompt)
	}
	logger.Debug(ctx, "🧠 generating", "prompt", preview(prompt))
	out, err := g.provider.Complete(ctx, prompt, opts)
	if err != nil {
		g.metrics.Generation("failed")
		logger.Error(ctx, "generation call failed", err, "prompt", preview(prompt))
		return Failed(err)
	}
	g.metrics.Generation("ok")
	return Ok(strings.TrimSpace(out))
}

// JSON requests a JSON-shaped reply and decodes it into v. The returned
// Extraction is Invalid when the call failed or the reply could not be
// parsed; the raw reply is logged so the caller only has to pick a default.
func (g *Generator) JSON(ctx context.Context, prompt string, v any) Extraction {
	opts := g.opts
	opts.JSON = true
	res := g.call(ctx, prompt, opts)
	if !res.OK() {
		g.metrics.Extraction(Invalid.String())
		return Invalid
	}
	kind, err := DecodeJSON(res.Text, v)
	g.metrics.Extraction(kind.String())
	if err != nil {
		logger.Warn(ctx, "❌ could not parse structured reply",
			"prompt", preview(prompt), "reply", res.Text, "error", err.Error())
	}
	return kind
}

func preview(prompt string) string {
	p := strings.ReplaceAll(strings.TrimSpace(prompt), "\n", " ")
	if r := []rune(p); len(r) > 60 {
		return string(r[:60]) + "..."
	}
	return p
}
