// cmd/aether-lsp/core.go
//
// ROLE: Shared infrastructure for the LSP server: transport helpers,
//       server state, text/position math and the analysis pipeline.
//
// What lives here
//   • Transport helpers for framed stdio (Content-Length) and convenience
//     send/notify wrappers.
//   • Server model:
//        - server: global state (open docs, mutex).
//        - docState: per-document caches (raw text, line starts, parse result).
//   • UTF-16 column math and byte↔position conversions consistent with
//     the LSP spec (wire positions are UTF-16 code units).
//   • The analysis pipeline (`analyze`): parse, extract symbols, run the
//     diagnostics assembler, publish the result.
//
// What does NOT live here
//   • No LSP feature handlers (hover, completion, etc. — see features.go).
//   • No transport loop (see main.go).

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/xiaozuhui/aether-lsp/internal/aether"
)

////////////////////////////////////////////////////////////////////////////////
// Transport (stdio framing) + send/notify
////////////////////////////////////////////////////////////////////////////////

var stdoutSink io.Writer = os.Stdout

func init() {
	// Silence unsolicited output during `go test` unless opted in.
	if strings.HasSuffix(os.Args[0], ".test") && os.Getenv("LSP_STDOUT") == "" {
		stdoutSink = io.Discard
	}
}

func readMsg(r *bufio.Reader) ([]byte, error) {
	var contentLen int
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if i := strings.IndexByte(line, ':'); i >= 0 {
			key := strings.ToLower(strings.TrimSpace(line[:i]))
			val := strings.TrimSpace(line[i+1:])
			if key == "content-length" {
				_, _ = fmt.Sscanf(val, "%d", &contentLen)
			}
		}
	}
	if contentLen <= 0 {
		return nil, io.EOF
	}
	buf := make([]byte, contentLen)
	_, err := io.ReadFull(r, buf)
	return buf, err
}

func writeMsg(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "Content-Length: %d\r\n\r\n", len(body))
	b.Write(body)
	_, err = w.Write(b.Bytes())
	return err
}

func (s *server) sendResponse(id json.RawMessage, result any, respErr *ResponseError) {
	if respErr == nil && result == nil {
		rawNull := json.RawMessage([]byte("null"))
		_ = writeMsg(stdoutSink, Response{JSONRPC: "2.0", ID: id, Result: rawNull})
		return
	}
	_ = writeMsg(stdoutSink, Response{JSONRPC: "2.0", ID: id, Result: result, Error: respErr})
}

func (s *server) notify(method string, params any) {
	_ = writeMsg(stdoutSink, map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}

////////////////////////////////////////////////////////////////////////////////
// Server state & document model
////////////////////////////////////////////////////////////////////////////////

type docState struct {
	uri    string
	text   string
	lines  []int // line start offsets (byte indices)
	parsed *aether.ParsedDocument
}

type server struct {
	mu   sync.RWMutex
	docs map[string]*docState
}

func newServer() *server {
	return &server{docs: make(map[string]*docState)}
}

// snapshotDoc returns a consistent, read-only snapshot of a document.
func (s *server) snapshotDoc(uri string) *docState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.docs[uri]
	if d == nil {
		return nil
	}
	cp := *d // shallow copy
	if d.lines != nil {
		cp.lines = append([]int(nil), d.lines...)
	}
	// parsed is rebuilt wholesale on every edit; sharing it is safe.
	cp.parsed = d.parsed
	return &cp
}

////////////////////////////////////////////////////////////////////////////////
// Text & UTF-16 helpers
////////////////////////////////////////////////////////////////////////////////

// CRLF-aware: treat "\r\n" as a single newline; store offsets at the byte *after* '\n'.
func lineOffsets(text string) []int {
	offs := []int{0}
	for i := 0; i < len(text); {
		if text[i] == '\r' {
			i++
			continue
		}
		if text[i] == '\n' {
			offs = append(offs, i+1)
			i++
			continue
		}
		_, sz := utf8.DecodeRuneInString(text[i:])
		if sz <= 0 {
			sz = 1
		}
		i += sz
	}
	return offs
}

func toU16(r rune) int {
	if r < 0x10000 {
		return 1
	}
	return 2
}

func posToOffset(lines []int, p Position, text string) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(lines) {
		return len(text)
	}
	i := lines[p.Line]
	need := p.Character // in UTF-16 units
	for i < len(text) && need > 0 {
		r, sz := utf8.DecodeRuneInString(text[i:])
		if r == '\r' { // ignore CR in column math
			i += sz
			continue
		}
		if r == '\n' {
			break
		}
		need -= toU16(r)
		i += sz
	}
	return i
}

func offsetToPos(lines []int, off int, text string) Position {
	if off < 0 {
		off = 0
	}
	if off > len(text) {
		off = len(text)
	}
	i, j := 0, len(lines)
	for i+1 < j {
		m := (i + j) / 2
		if lines[m] <= off {
			i = m
		} else {
			j = m
		}
	}
	u16 := 0
	for k := lines[i]; k < off && k < len(text); {
		r, sz := utf8.DecodeRuneInString(text[k:])
		if r == '\r' {
			k += sz
			continue
		}
		if r == '\n' {
			break
		}
		u16 += toU16(r)
		k += sz
	}
	return Position{Line: i, Character: u16}
}

func makeRange(lines []int, start, end int, text string) Range {
	return Range{
		Start: offsetToPos(lines, start, text),
		End:   offsetToPos(lines, end, text),
	}
}

// The engine gives byte columns; clamp within the line.
func byteColToOffset(lines []int, line0, byteCol int, text string) int {
	if line0 < 0 {
		line0 = 0
	}
	if line0 >= len(lines) {
		return len(text)
	}
	start := lines[line0]
	end := len(text)
	if line0+1 < len(lines) {
		end = lines[line0+1]
	}
	off := start + byteCol
	if off < start {
		off = start
	}
	if off > end {
		off = end
	}
	return off
}

// spanToRange converts an engine span (1-based, byte columns) to a wire range.
func spanToRange(doc *docState, sp aether.Span) Range {
	start := byteColToOffset(doc.lines, sp.Start.Line-1, sp.Start.Col-1, doc.text)
	end := byteColToOffset(doc.lines, sp.End.Line-1, sp.End.Col-1, doc.text)
	return makeRange(doc.lines, start, end, doc.text)
}

////////////////////////////////////////////////////////////////////////////////
// Analysis — publishes diagnostics via notify
////////////////////////////////////////////////////////////////////////////////

// analyze reparses the document and publishes the resulting diagnostics.
// The parse result (AST, symbols, errors) is cached on docState so feature
// handlers stay fast and side-effect-free.
func (s *server) analyze(doc *docState) {
	doc.parsed = aether.Parse(doc.text)

	engineDiags := aether.Analyze(doc.parsed)
	out := make([]Diagnostic, 0, len(engineDiags))
	for _, d := range engineDiags {
		// Engine characters are byte columns; rebase them to UTF-16.
		start := byteColToOffset(doc.lines, d.Range.Start.Line, d.Range.Start.Character, doc.text)
		end := byteColToOffset(doc.lines, d.Range.End.Line, d.Range.End.Character, doc.text)
		out = append(out, Diagnostic{
			Range:    makeRange(doc.lines, start, end, doc.text),
			Severity: int(d.Severity),
			Code:     d.Code,
			Source:   d.Source,
			Message:  d.Message,
		})
	}

	s.notify("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         doc.uri,
		Diagnostics: out,
	})
}
