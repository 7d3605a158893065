package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/bookmaker/internal/config"
	"github.com/thywilljoshua/bookmaker/internal/logger"
)

// app is shared by all subcommands; cfg is set before any RunE runs.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "bookmaker",
		Short:         "Plan and draft books with a text-generation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			return logger.Init(logger.Options{
				Level:   cfg.Logging.Level,
				Format:  cfg.Logging.Format,
				File:    cfg.Logging.File,
				Console: cmd.ErrOrStderr(),
			})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: ./"+config.DefaultFile+" when present)")
	pf.String("log-level", "", "log level: debug|info|warn|error")
	pf.String("log-format", "", "console log format: text|json")
	pf.String("log-file", "", "also write JSON logs to this file")
	pf.String("metrics-file", "", "write run metrics in Prometheus text format to this file")
	pf.String("provider", "", "generation provider: openai|gemini|off")
	pf.String("model", "", "model identifier for the provider")
	pf.String("memory", "", "memory file (default depends on the variant)")

	root.AddCommand(
		promptsCmd(a),
		assembleCmd(a),
		fictionCmd(a),
		previewCmd(),
		inspectCmd(),
	)
	return root
}
