package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/xiaozuhui/aether-lsp/internal/aether"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive Aether parser session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		runRepl(cfg)
		return nil
	},
}

func runRepl(cfg Config) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath(cfg)
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("Aether %s. Type :quit to exit.\n", aether.Version)

	for {
		src, ok := readByParseProbe(line, "==> ", "... ")
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		if strings.TrimSpace(src) == ":quit" {
			return
		}
		line.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		p := aether.NewParser(src)
		ast, err := p.ParseProgram()
		if err != nil {
			fmt.Println(errStyle.Render(aether.WrapErrorWithSource(err, src).Error()))
			continue
		}
		fmt.Print(aether.Dump(ast))
	}
}

// readByParseProbe reads lines until the buffer parses, or fails with an
// error other than "ran out of input". A block opener on the first line
// keeps the prompt open until the parser stops asking for more.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if b.Len() == len(line) && strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		p := aether.NewParser(src)
		_, perr := p.ParseProgram()
		if perr == nil {
			return src, true
		}
		if aether.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
