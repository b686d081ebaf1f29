package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiaozuhui/aether-lsp/internal/aether"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <file.ae>",
	Short: "Print the symbol outline of an Aether file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		doc := aether.Parse(string(src))
		if len(doc.Errors) > 0 {
			e := doc.Errors[0]
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (line %d, column %d)\n",
				errStyle.Render("parse failed:"), e.Message, e.Line, e.Column)
			os.Exit(1)
		}

		for _, sym := range doc.Symbols.DocumentSymbols() {
			pos := fmt.Sprintf("%d:%d", sym.SelectionSpan.Start.Line, sym.SelectionSpan.Start.Col)
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-24s %s  %s\n",
				sym.Kind.String(), sym.Name, sym.Detail, dimStyle.Render(pos))
		}
		return nil
	},
}
