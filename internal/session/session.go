// Package session brackets one bookmaker run: it builds the provider, loads
// the cross-run memory and flushes memory and metrics when the run ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/thywilljoshua/bookmaker/internal/ai"
	"github.com/thywilljoshua/bookmaker/internal/config"
	"github.com/thywilljoshua/bookmaker/internal/logger"
	"github.com/thywilljoshua/bookmaker/internal/memory"
	"github.com/thywilljoshua/bookmaker/internal/metrics"
)

type Options struct {
	// RequireCredential makes a missing API key fatal. Without it the run
	// continues against ai.Noop and every unit comes out empty.
	RequireCredential bool
	// MemoryPath, when set, loads the memory store at Open and saves it at
	// Close.
	MemoryPath string
}

type Session struct {
	ID       string
	Config   *config.Config
	Provider ai.Provider
	Metrics  *metrics.Recorder
	Memory   *memory.Store

	backend memory.Backend
	closed  bool
}

// Open starts a run. The returned context carries the run id for logging.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Session, context.Context, error) {
	s := &Session{
		ID:      uuid.NewString(),
		Config:  cfg,
		Metrics: metrics.New(),
	}
	ctx = logger.WithValue(ctx, logger.RunIDKey, s.ID)

	if opts.RequireCredential {
		if err := cfg.RequireCredential(); err != nil {
			return nil, ctx, err
		}
	}
	p, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, ctx, err
	}
	s.Provider = p

	if opts.MemoryPath != "" {
		b, err := memory.Open(cfg.Memory.Backend, opts.MemoryPath)
		if err != nil {
			return nil, ctx, err
		}
		st, err := b.Load(ctx)
		if err != nil {
			return nil, ctx, fmt.Errorf("load memory: %w", err)
		}
		s.backend, s.Memory = b, st
		logger.Info(ctx, "🧠 memory loaded", "path", opts.MemoryPath,
			"titles", len(st.Titles), "subheadings", len(st.Subheadings))
	}

	logger.Info(ctx, "🚀 run started", "provider", cfg.Provider.Name)
	return s, ctx, nil
}

// NewProvider builds the configured provider. A provider without a
// credential, or the "off" provider, is ai.Noop.
func NewProvider(ctx context.Context, cfg *config.Config) (ai.Provider, error) {
	name := strings.ToLower(cfg.Provider.Name)
	key := cfg.Credential()
	if name == "off" || name == "none" {
		return ai.Noop{}, nil
	}
	if key == "" && (name == "openai" || name == "gemini") {
		logger.Warn(ctx, "⚠️ no API key configured, generation disabled", "provider", name)
		return ai.Noop{}, nil
	}
	switch name {
	case "openai":
		return ai.NewOpenAI(key, cfg.Provider.Model, cfg.Provider.BaseURL)
	case "gemini":
		return ai.NewGemini(ctx, key, cfg.Provider.Model)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider.Name)
	}
}

// Generator returns a generator over the session provider.
func (s *Session) Generator(opts ai.Options) *ai.Generator {
	return ai.NewGenerator(s.Provider, opts, s.Metrics)
}

// Close saves memory and writes the metrics file. It is safe to call twice.
// Cancellation of ctx does not stop the save: an interrupted run still keeps
// what it recorded.
func (s *Session) Close(ctx context.Context) error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	ctx = context.WithoutCancel(ctx)

	var errs []error
	if s.backend != nil {
		if err := s.backend.Save(ctx, s.Memory); err != nil {
			errs = append(errs, fmt.Errorf("save memory: %w", err))
		}
	}
	if path := s.Config.Metrics.File; path != "" {
		if err := s.Metrics.WriteFile(path); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	logger.Info(ctx, "🏁 run finished")
	return errors.Join(errs...)
}
