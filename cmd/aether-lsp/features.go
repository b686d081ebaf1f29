// cmd/aether-lsp/features.go
//
// ROLE: LSP feature implementations built on top of the caches/utilities
//       from core.go. Converts editor requests into language answers.
//
// What lives here
//   • Handlers for LSP methods:
//        - initialize: advertise capabilities.
//        - text sync (didOpen/didChange/didClose): update docState and
//          trigger analyze.
//        - language features: hover, definition, completion, document
//          symbols, rename.
//
// What does NOT live here
//   • No transport framing or JSON-RPC loop (see main.go).
//   • No parsing or diagnostics computation (see internal/aether).

package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xiaozuhui/aether-lsp/internal/aether"
)

////////////////////////////////////////////////////////////////////////////////
// Initialize & text sync
////////////////////////////////////////////////////////////////////////////////

func (s *server) onInitialize(id json.RawMessage, _ json.RawMessage) {
	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: TextDocumentSyncOptions{
				OpenClose: true,
				Change:    1, // Full
			},
			HoverProvider:      true,
			DefinitionProvider: true,
			CompletionProvider: &struct {
				TriggerCharacters []string `json:"triggerCharacters"`
			}{TriggerCharacters: []string{"(", ",", " "}},
			DocumentSymbolProvider: true,
			RenameProvider:         true,
		},
		ServerInfo: map[string]string{
			"name":    "aether-lsp",
			"version": aether.Version,
		},
	}
	s.sendResponse(id, result, nil)
}

func (s *server) onDidOpen(raw json.RawMessage) {
	var params struct {
		TextDocument TextDocumentItem `json:"textDocument"`
	}
	_ = json.Unmarshal(raw, &params)
	s.mu.Lock()
	doc := &docState{
		uri:   params.TextDocument.URI,
		text:  params.TextDocument.Text,
		lines: lineOffsets(params.TextDocument.Text),
	}
	s.docs[doc.uri] = doc
	s.mu.Unlock()
	s.analyze(doc)
}

func (s *server) onDidChange(raw json.RawMessage) {
	var params struct {
		TextDocument struct {
			URI string `json:"uri"`
		} `json:"textDocument"`
		ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
	}
	_ = json.Unmarshal(raw, &params)

	s.mu.Lock()
	doc := s.docs[params.TextDocument.URI]
	s.mu.Unlock()
	if doc == nil || len(params.ContentChanges) == 0 {
		return
	}

	// We advertise full sync, but tolerate incremental edits from clients
	// that send them anyway.
	fullIdx := -1
	for i, ch := range params.ContentChanges {
		if ch.Range == nil {
			fullIdx = i
			break
		}
	}
	if fullIdx >= 0 {
		doc.text = params.ContentChanges[fullIdx].Text
		doc.lines = lineOffsets(doc.text)
		s.analyze(doc)
		return
	}

	for _, ch := range params.ContentChanges {
		start := posToOffset(doc.lines, ch.Range.Start, doc.text)
		end := posToOffset(doc.lines, ch.Range.End, doc.text)
		var b bytes.Buffer
		b.WriteString(doc.text[:start])
		b.WriteString(ch.Text)
		if end < len(doc.text) {
			b.WriteString(doc.text[end:])
		}
		doc.text = b.String()
		doc.lines = lineOffsets(doc.text)
	}
	s.analyze(doc)
}

func (s *server) onDidClose(raw json.RawMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	_ = json.Unmarshal(raw, &params)

	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()

	s.notify("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})
}

////////////////////////////////////////////////////////////////////////////////
// Hover
////////////////////////////////////////////////////////////////////////////////

// wordAt scans the identifier characters around a wire position.
func wordAt(doc *docState, pos Position) (string, Range) {
	off := posToOffset(doc.lines, pos, doc.text)
	if off < 0 || off > len(doc.text) {
		return "", Range{}
	}
	isIdent := func(b byte) bool {
		return b == '_' ||
			(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
			(b >= '0' && b <= '9')
	}
	i, j := off, off
	for i > 0 && isIdent(doc.text[i-1]) {
		i--
	}
	for j < len(doc.text) && isIdent(doc.text[j]) {
		j++
	}
	if i < j {
		return doc.text[i:j], makeRange(doc.lines, i, j, doc.text)
	}
	return "", Range{}
}

func (s *server) onHover(id json.RawMessage, raw json.RawMessage) {
	var params TextDocumentPositionParams
	_ = json.Unmarshal(raw, &params)

	doc := s.snapshotDoc(params.TextDocument.URI)
	if doc == nil || doc.parsed == nil {
		s.sendResponse(id, nil, nil)
		return
	}

	// Declared symbols first; engine spans are 1-based with byte columns.
	off := posToOffset(doc.lines, params.Position, doc.text)
	line, col := offsetToEngine(doc, off)
	if sym := doc.parsed.Symbols.FindAtPosition(line, col); sym != nil {
		rng := spanToRange(doc, sym.SelectionSpan)
		s.sendResponse(id, Hover{
			Contents: MarkupContent{
				Kind:  "markdown",
				Value: fmt.Sprintf("```aether\n%s\n```\n\n%s", sym.Detail, sym.Documentation),
			},
			Range: &rng,
		}, nil)
		return
	}

	// Then built-ins by the word under the cursor.
	word, rng := wordAt(doc, params.Position)
	if word != "" {
		if b := aether.FindBuiltin(word); b != nil {
			s.sendResponse(id, Hover{
				Contents: MarkupContent{
					Kind:  "markdown",
					Value: fmt.Sprintf("```aether\n%s\n```\n\n%s", b.Signature, b.MarkdownDoc()),
				},
				Range: &rng,
			}, nil)
			return
		}
		for _, kw := range keywordCompletions {
			if kw.label == word {
				s.sendResponse(id, Hover{
					Contents: MarkupContent{
						Kind:  "markdown",
						Value: fmt.Sprintf("**%s**\n\n%s\n\n```aether\n%s\n```", kw.label, kw.detail, kw.example),
					},
					Range: &rng,
				}, nil)
				return
			}
		}
	}
	s.sendResponse(id, nil, nil)
}

// offsetToEngine converts a byte offset to the engine's 1-based
// line/column convention.
func offsetToEngine(doc *docState, off int) (line, col int) {
	if off < 0 {
		off = 0
	}
	if off > len(doc.text) {
		off = len(doc.text)
	}
	i, j := 0, len(doc.lines)
	for i+1 < j {
		m := (i + j) / 2
		if doc.lines[m] <= off {
			i = m
		} else {
			j = m
		}
	}
	return i + 1, off - doc.lines[i] + 1
}

////////////////////////////////////////////////////////////////////////////////
// Definition
////////////////////////////////////////////////////////////////////////////////

func (s *server) onDefinition(id json.RawMessage, raw json.RawMessage) {
	var params TextDocumentPositionParams
	_ = json.Unmarshal(raw, &params)

	doc := s.snapshotDoc(params.TextDocument.URI)
	if doc == nil || doc.parsed == nil {
		s.sendResponse(id, nil, nil)
		return
	}

	word, _ := wordAt(doc, params.Position)
	if word == "" {
		s.sendResponse(id, nil, nil)
		return
	}
	def := doc.parsed.Symbols.FindDefinition(word)
	if def == nil {
		s.sendResponse(id, nil, nil)
		return
	}
	s.sendResponse(id, Location{
		URI:   doc.uri,
		Range: spanToRange(doc, def.SelectionSpan),
	}, nil)
}

////////////////////////////////////////////////////////////////////////////////
// Completion
////////////////////////////////////////////////////////////////////////////////

// keywordCompletions lists every keyword with a short description and a
// usage sketch for the documentation popup.
var keywordCompletions = []struct {
	label   string
	detail  string
	example string
}{
	{"Set", "Variable assignment", "Set VAR value"},
	{"Func", "Function definition", "Func NAME(params) { ... }"},
	{"Return", "Return a value", "Return value"},
	{"If", "Conditional", "If (condition) { ... }"},
	{"Elif", "Else-if branch", "Elif (condition) { ... }"},
	{"Else", "Else branch", "Else { ... }"},
	{"While", "Loop while a condition holds", "While (condition) { ... }"},
	{"For", "Iterate a collection", "For VAR In collection { ... }"},
	{"In", "Loop keyword", "For X In [1,2,3] { ... }"},
	{"Break", "Exit the current loop", "Break"},
	{"Continue", "Skip to the next iteration", "Continue"},
	{"Generator", "Generator definition", "Generator NAME(params) { ... }"},
	{"Yield", "Yield a value", "Yield value"},
	{"Lazy", "Deferred evaluation", "Lazy NAME(expr)"},
	{"Force", "Force a lazy value", "Force(lazy_value)"},
	{"Switch", "Multi-way branch", "Switch (value) { Case x: ... }"},
	{"Case", "Switch branch", "Case value: statements"},
	{"Default", "Switch fallback", "Default: statements"},
	{"Import", "Import from a module", `Import {NAME} From "path"`},
	{"Export", "Export a symbol", "Export NAME"},
	{"From", "Import source", `Import X From "path"`},
	{"As", "Import alias", `Import X As Y From "path"`},
	{"Lambda", "Anonymous function", "Lambda X -> expr"},
	{"True", "Boolean true", "True"},
	{"False", "Boolean false", "False"},
	{"Null", "Null value", "Null"},
}

func (s *server) onCompletion(id json.RawMessage, raw json.RawMessage) {
	var params TextDocumentPositionParams
	_ = json.Unmarshal(raw, &params)

	doc := s.snapshotDoc(params.TextDocument.URI)

	var items []CompletionItem
	for _, kw := range keywordCompletions {
		items = append(items, CompletionItem{
			Label:  kw.label,
			Kind:   completionKindKeyword,
			Detail: kw.detail,
			Documentation: &MarkupContent{
				Kind:  "markdown",
				Value: fmt.Sprintf("**%s**\n\n%s\n\n```aether\n%s\n```", kw.label, kw.detail, kw.example),
			},
			InsertText: kw.label,
		})
	}

	for _, b := range aether.Builtins() {
		items = append(items, CompletionItem{
			Label:  b.Name,
			Kind:   completionKindFunction,
			Detail: b.Detail(),
			Documentation: &MarkupContent{
				Kind:  "markdown",
				Value: b.MarkdownDoc(),
			},
			InsertText:       b.Name + "($1)",
			InsertTextFormat: insertTextFormatSnippet,
		})
	}

	// User declarations from the current document.
	if doc != nil && doc.parsed != nil {
		for _, sym := range doc.parsed.Symbols.DocumentSymbols() {
			kind := completionKindVariable
			if sym.Kind == aether.SymbolFunction {
				kind = completionKindFunction
			}
			items = append(items, CompletionItem{
				Label:      sym.Name,
				Kind:       kind,
				Detail:     sym.Detail,
				InsertText: sym.Name,
			})
		}
	}

	s.sendResponse(id, items, nil)
}

////////////////////////////////////////////////////////////////////////////////
// Document symbols
////////////////////////////////////////////////////////////////////////////////

func (s *server) onDocumentSymbols(id json.RawMessage, raw json.RawMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	_ = json.Unmarshal(raw, &params)

	doc := s.snapshotDoc(params.TextDocument.URI)
	if doc == nil || doc.parsed == nil {
		s.sendResponse(id, []DocumentSymbol{}, nil)
		return
	}

	all := doc.parsed.Symbols.DocumentSymbols()
	out := make([]DocumentSymbol, 0, len(all))
	for _, sym := range all {
		kind := symbolKindVariable
		if sym.Kind == aether.SymbolFunction {
			kind = symbolKindFunction
		}
		out = append(out, DocumentSymbol{
			Name:           sym.Name,
			Detail:         sym.Detail,
			Kind:           kind,
			Range:          spanToRange(doc, sym.Span),
			SelectionRange: spanToRange(doc, sym.SelectionSpan),
		})
	}
	s.sendResponse(id, out, nil)
}

////////////////////////////////////////////////////////////////////////////////
// Rename
////////////////////////////////////////////////////////////////////////////////

// onRename validates the requested name but produces no edits: reference
// tracking is not implemented, and a partial rename would corrupt the
// document. Clients treat a null result as "rename not available here".
func (s *server) onRename(id json.RawMessage, raw json.RawMessage) {
	var params RenameParams
	_ = json.Unmarshal(raw, &params)

	if !aether.IsValidName(params.NewName) {
		s.sendResponse(id, nil, &ResponseError{
			Code:    -32602,
			Message: fmt.Sprintf("'%s' is not a valid Aether name (use UPPER_SNAKE_CASE)", params.NewName),
		})
		return
	}

	doc := s.snapshotDoc(params.TextDocument.URI)
	if doc == nil || doc.parsed == nil {
		s.sendResponse(id, nil, nil)
		return
	}
	word, _ := wordAt(doc, params.Position)
	if edits := doc.parsed.Symbols.RenameSymbol(word, params.NewName); edits == nil {
		s.sendResponse(id, nil, nil)
		return
	}
	s.sendResponse(id, nil, nil)
}
