// Package config defines bookmaker's configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredential means the configured provider has no API key.
var ErrMissingCredential = errors.New("missing provider credential")

type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Prompts  PromptsConfig  `mapstructure:"prompts"`
	Assemble AssembleConfig `mapstructure:"assemble"`
	Fiction  FictionConfig  `mapstructure:"fiction"`
	Memory   MemoryConfig   `mapstructure:"memory"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ProviderConfig selects the generation service. Name is "openai", "gemini"
// or "off".
type ProviderConfig struct {
	Name      string `mapstructure:"name"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	OpenAIKey string `mapstructure:"openai_api_key"`
	GeminiKey string `mapstructure:"gemini_api_key"`
}

type PromptsConfig struct {
	Variant string `mapstructure:"variant"`
	Input   string `mapstructure:"input"`
	Output  string `mapstructure:"output"`
}

type AssembleConfig struct {
	Input       string   `mapstructure:"input"`
	OutputDir   string   `mapstructure:"output_dir"`
	Formats     []string `mapstructure:"formats"`
	Attribution string   `mapstructure:"attribution"`
}

type FictionConfig struct {
	Input         string   `mapstructure:"input"`
	OutputDir     string   `mapstructure:"output_dir"`
	Formats       []string `mapstructure:"formats"`
	AuthorList    string   `mapstructure:"author_list"`
	SystemPrompt  string   `mapstructure:"system_prompt"`
	MaxTokens     int      `mapstructure:"max_tokens"`
	Temperature   float64  `mapstructure:"temperature"`
	CopyrightPage bool     `mapstructure:"copyright_page"`
}

// MemoryConfig locates the cross-run memory. An empty Path uses the variant's
// default file.
type MemoryConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// Credential returns the API key for the configured provider.
func (c *Config) Credential() string {
	switch strings.ToLower(c.Provider.Name) {
	case "openai":
		return strings.TrimSpace(c.Provider.OpenAIKey)
	case "gemini":
		return strings.TrimSpace(c.Provider.GeminiKey)
	default:
		return ""
	}
}

// RequireCredential fails when the provider cannot be called.
func (c *Config) RequireCredential() error {
	if c.Credential() == "" {
		return fmt.Errorf("%w for provider %q", ErrMissingCredential, c.Provider.Name)
	}
	return nil
}

func children(variant string) bool {
	v := strings.ToLower(strings.TrimSpace(variant))
	return v == "children" || v == "kids"
}

// PromptFiles resolves the stage-one input, output and memory paths, falling
// back to the variant's file names.
func (c *Config) PromptFiles() (input, output, memory string) {
	input, output, memory = "book_input.xlsx", "Book_Generated_Content.xlsx", "chapter_memory.json"
	if children(c.Prompts.Variant) {
		input, output, memory = "kids_book_input.xlsx", "Kids_Book_Generated_Content.xlsx", "kids_chapter_memory.json"
	}
	if c.Prompts.Input != "" {
		input = c.Prompts.Input
	}
	if c.Prompts.Output != "" {
		output = c.Prompts.Output
	}
	if c.Memory.Path != "" {
		memory = c.Memory.Path
	}
	return input, output, memory
}
