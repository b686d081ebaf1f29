// Command aether is the developer CLI for the Aether language front end:
// syntax checking, AST inspection, symbol outlines and a parse REPL.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xiaozuhui/aether-lsp/internal/aether"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "aether",
	Short:         "Tooling for the Aether scripting language",
	Version:       aether.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to .aether.toml (default: search upward from cwd)")
	rootCmd.AddCommand(checkCmd, parseCmd, symbolsCmd, replCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}
