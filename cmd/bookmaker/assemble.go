package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/bookmaker/internal/ai"
	"github.com/thywilljoshua/bookmaker/internal/assemble"
	"github.com/thywilljoshua/bookmaker/internal/book"
	"github.com/thywilljoshua/bookmaker/internal/document"
	"github.com/thywilljoshua/bookmaker/internal/logger"
	"github.com/thywilljoshua/bookmaker/internal/session"
	"github.com/thywilljoshua/bookmaker/internal/table"
)

func assembleCmd(a *app) *cobra.Command {
	var input, out string

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Draft a document per book from the hand-off table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg := a.cfg
			if input != "" {
				cfg.Assemble.Input = input
			}
			if out != "" {
				cfg.Assemble.OutputDir = out
			}
			formats, err := parseFormats(cfg.Assemble.Formats)
			if err != nil {
				return err
			}

			sess, ctx, err := session.Open(cmd.Context(), cfg, session.Options{})
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, sess.Close(ctx)) }()
			ctx = logger.WithValue(ctx, logger.StageKey, "assemble")

			rows, err := table.ReadHandoff(cfg.Assemble.Input)
			if err != nil {
				return err
			}
			books := book.FromHandoff(rows)
			logger.Info(ctx, "📥 hand-off loaded", "path", cfg.Assemble.Input, "rows", len(rows), "books", len(books))

			store := document.NewFileStore(cfg.Assemble.OutputDir, formats...)
			asm := assemble.New(sess.Generator(ai.Options{}), store,
				assemble.Options{Attribution: cfg.Assemble.Attribution}, sess.Metrics)
			reports, runErr := asm.Run(ctx, books)
			printReports(cmd.OutOrStdout(), store, reports)
			return runErr
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "hand-off table (default Book_Generated_Content.xlsx)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory for the documents")
	return cmd
}

func parseFormats(names []string) ([]document.Format, error) {
	var out []document.Format
	for _, n := range names {
		switch f := document.Format(strings.ToLower(strings.TrimSpace(n))); f {
		case document.PDF, document.Markdown:
			out = append(out, f)
		case "":
		default:
			return nil, fmt.Errorf("unknown output format %q", n)
		}
	}
	return out, nil
}

func printReports(w io.Writer, store *document.FileStore, reports []assemble.Report) {
	for _, r := range reports {
		fmt.Fprintf(w, "📘 %s: %d chapters, %d failed units, %d checkpoints (%s)\n",
			r.Title, r.Chapters, r.Failed, r.Checkpoints, r.State)
		if r.Overwrites != "" {
			fmt.Fprintf(w, "   ⚠️ replaced the files of %q\n", r.Overwrites)
		}
		for _, f := range store.Formats {
			fmt.Fprintf(w, "   💾 %s\n", store.Path(r.Title, f))
		}
	}
}
