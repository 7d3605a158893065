package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/bookmaker/internal/ai"
	"github.com/thywilljoshua/bookmaker/internal/book"
	"github.com/thywilljoshua/bookmaker/internal/logger"
	"github.com/thywilljoshua/bookmaker/internal/session"
	"github.com/thywilljoshua/bookmaker/internal/synth"
	"github.com/thywilljoshua/bookmaker/internal/table"
)

func promptsCmd(a *app) *cobra.Command {
	var variant, input, output string

	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Plan each input book and write the hand-off table of chapter prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg := a.cfg
			if variant != "" {
				cfg.Prompts.Variant = variant
			}
			if input != "" {
				cfg.Prompts.Input = input
			}
			if output != "" {
				cfg.Prompts.Output = output
			}
			v, err := book.VariantByName(cfg.Prompts.Variant)
			if err != nil {
				return err
			}
			in, out, mem := cfg.PromptFiles()

			sess, ctx, err := session.Open(cmd.Context(), cfg, session.Options{RequireCredential: true, MemoryPath: mem})
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, sess.Close(ctx)) }()
			ctx = logger.WithValue(ctx, logger.StageKey, "prompts")

			specs, err := table.ReadSpecs(ctx, in)
			if err != nil {
				return err
			}
			logger.Info(ctx, "📥 input loaded", "path", in, "books", len(specs), "variant", v.Name)

			syn := synth.New(sess.Generator(ai.Options{}), v, sess.Memory, sess.Metrics)
			rows, runErr := syn.Run(ctx, specs)
			if err := table.WriteHandoff(out, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Prompts written to: %s (%d chapters)\n", out, len(rows))
			return runErr
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "audience tier: adult|children")
	cmd.Flags().StringVarP(&input, "input", "i", "", "input table (default depends on the variant)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "hand-off table to write (default depends on the variant)")
	return cmd
}
