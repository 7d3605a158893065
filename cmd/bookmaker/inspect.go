package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/bookmaker/internal/document"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <book.pdf>",
		Short: "Report the page count of a drafted PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := document.PageCount(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📄 %s: %d pages\n", args[0], n)
			return nil
		},
	}
}
