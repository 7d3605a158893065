package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultFile is read when present and no explicit path is given.
const DefaultFile = "bookmaker.yaml"

// flagKeys maps persistent CLI flags onto config keys.
var flagKeys = map[string]string{
	"log-level":    "logging.level",
	"log-format":   "logging.format",
	"log-file":     "logging.file",
	"metrics-file": "metrics.file",
	"provider":     "provider.name",
	"model":        "provider.model",
	"memory":       "memory.path",
}

// Load builds the configuration. Later sources win: defaults, the yaml file,
// BOOKMAKER_* environment variables, then flags that were set explicitly.
// Provider keys are also read from OPENAI_API_KEY, GOOGLE_API_KEY and
// GEMINI_API_KEY.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if path != "" {
		if err := loadConfigFile(v, path, false); err != nil {
			return nil, err
		}
	} else if err := loadConfigFile(v, DefaultFile, true); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("BOOKMAKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("provider.openai_api_key", "BOOKMAKER_PROVIDER_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("provider.gemini_api_key", "BOOKMAKER_PROVIDER_GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// loadConfigFile reads path, expands ${VAR:default} placeholders and merges it
// into v.
func loadConfigFile(v *viper.Viper, path string, optional bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := v.MergeConfig(strings.NewReader(expandEnv(string(content)))); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

var placeholder = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// expandEnv replaces ${VAR} and ${VAR:default}. Unset variables without a
// default are left as written.
func expandEnv(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		sub := placeholder.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		if sub[2] != "" {
			return sub[3]
		}
		return match
	})
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.name", "openai")
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.openai_api_key", "")
	v.SetDefault("provider.gemini_api_key", "")

	v.SetDefault("prompts.variant", "adult")
	v.SetDefault("prompts.input", "")
	v.SetDefault("prompts.output", "")

	v.SetDefault("assemble.input", "Book_Generated_Content.xlsx")
	v.SetDefault("assemble.output_dir", "BookOutput")
	v.SetDefault("assemble.formats", []string{"pdf", "md"})
	v.SetDefault("assemble.attribution", "By AI Book Generator")

	v.SetDefault("fiction.input", "kids_fiction_output.xlsx")
	v.SetDefault("fiction.output_dir", "Kids Fiction Books")
	v.SetDefault("fiction.formats", []string{"pdf", "md"})
	v.SetDefault("fiction.author_list", "Kids_Book_Author_List.xlsx")
	v.SetDefault("fiction.system_prompt", "You are a helpful assistant who writes engaging children's stories.")
	v.SetDefault("fiction.max_tokens", 4000)
	v.SetDefault("fiction.temperature", 0.7)
	v.SetDefault("fiction.copyright_page", true)

	v.SetDefault("memory.backend", "json")
	v.SetDefault("memory.path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")

	v.SetDefault("metrics.file", "")
}
