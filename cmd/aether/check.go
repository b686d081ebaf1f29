package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiaozuhui/aether-lsp/internal/aether"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.ae> [file.ae ...]",
	Short: "Parse and lint Aether source files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		failed := false
		for _, path := range args {
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if !checkFile(cmd, cfg, path, string(src)) {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
		return nil
	},
}

// checkFile prints the findings for one file and reports whether it is
// free of errors.
func checkFile(cmd *cobra.Command, cfg Config, path, src string) bool {
	doc := aether.Parse(src)
	diags := aether.Analyze(doc)

	clean := true
	for _, d := range diags {
		if d.Code == "W001" && !cfg.Lint.Enabled {
			continue
		}

		loc := fmt.Sprintf("%s:%d:%d", path, d.Range.Start.Line+1, d.Range.Start.Character+1)
		switch d.Severity {
		case aether.SeverityError:
			clean = false
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				dimStyle.Render(loc), errStyle.Render(d.Code), d.Message)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				dimStyle.Render(loc), warnStyle.Render(d.Code), firstLine(d.Message))
		}
	}

	// Reparse for the caret snippet; the diagnostic list carries only
	// positions and messages.
	if !clean {
		p := aether.NewParser(src)
		if _, err := p.ParseProgram(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), aether.WrapErrorWithName(err, path, src).Error())
		}
		return false
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("ok"), path)
	return true
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
