package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiaozuhui/aether-lsp/internal/aether"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.ae>",
	Short: "Parse an Aether file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		p := aether.NewParser(string(src))
		ast, err := p.ParseProgram()
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), errStyle.Render("parse failed"))
			fmt.Fprintln(cmd.OutOrStdout(), aether.WrapErrorWithName(err, args[0], string(src)).Error())
			os.Exit(1)
		}

		fmt.Fprint(cmd.OutOrStdout(), aether.Dump(ast))
		return nil
	},
}
