package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/bookmaker/internal/ai"
	"github.com/thywilljoshua/bookmaker/internal/assemble"
	"github.com/thywilljoshua/bookmaker/internal/book"
	"github.com/thywilljoshua/bookmaker/internal/document"
	"github.com/thywilljoshua/bookmaker/internal/logger"
	"github.com/thywilljoshua/bookmaker/internal/session"
	"github.com/thywilljoshua/bookmaker/internal/table"
)

func fictionCmd(a *app) *cobra.Command {
	var input, out, authors string

	cmd := &cobra.Command{
		Use:   "fiction",
		Short: "Draft narrative books from the fiction table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg := a.cfg
			fc := cfg.Fiction
			if input != "" {
				fc.Input = input
			}
			if out != "" {
				fc.OutputDir = out
			}
			if authors != "" {
				fc.AuthorList = authors
			}
			formats, err := parseFormats(fc.Formats)
			if err != nil {
				return err
			}

			sess, ctx, err := session.Open(cmd.Context(), cfg, session.Options{})
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, sess.Close(ctx)) }()
			ctx = logger.WithValue(ctx, logger.StageKey, "fiction")

			rows, err := table.ReadNarrative(fc.Input)
			if err != nil {
				return err
			}
			books := book.FromNarrative(rows)
			logger.Info(ctx, "📥 fiction table loaded", "path", fc.Input, "rows", len(rows), "books", len(books))

			gen := sess.Generator(ai.Options{
				System:      fc.SystemPrompt,
				MaxTokens:   fc.MaxTokens,
				Temperature: ai.Temperature(fc.Temperature),
			})
			opts := assemble.Options{Attribution: cfg.Assemble.Attribution}
			if fc.CopyrightPage {
				opts.Copyright = assemble.DefaultCopyright
			}
			store := document.NewFileStore(fc.OutputDir, formats...)
			reports, runErr := assemble.New(gen, store, opts, sess.Metrics).Run(ctx, books)
			printReports(cmd.OutOrStdout(), store, reports)

			entries := make([]table.AuthorEntry, 0, len(books))
			for _, b := range books[:len(reports)] {
				entries = append(entries, table.AuthorEntry{Title: b.Title, Author: b.Author})
			}
			if err := table.WriteAuthorList(fc.AuthorList, entries); err != nil {
				return errors.Join(runErr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Book list written to: %s\n", fc.AuthorList)
			return runErr
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "fiction table (default kids_fiction_output.xlsx)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory for the documents")
	cmd.Flags().StringVar(&authors, "authors", "", "book/author summary table to write")
	return cmd
}
