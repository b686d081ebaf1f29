package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustDoc(t *testing.T, uri, src string) *docState {
	t.Helper()
	s := newServer()
	doc := &docState{uri: uri, text: src, lines: lineOffsets(src)}
	s.analyze(doc)
	return doc
}

// captureOutput swaps stdoutSink for a buffer for the duration of fn.
func captureOutput(t *testing.T, fn func()) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdoutSink
	stdoutSink = &buf
	defer func() { stdoutSink = old }()
	fn()
	return &buf
}

// wireNotif is a minimal envelope for LSP notifications we care about.
type wireNotif struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// readAllMsgs decodes all framed messages currently in buf into a slice of raw bodies.
func readAllMsgs(buf *bytes.Buffer) (bodies [][]byte, _ error) {
	r := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	for {
		body, err := readMsg(r)
		if err != nil {
			// readMsg returns io.EOF when buffer is exhausted
			break
		}
		bodies = append(bodies, body)
	}
	return bodies, nil
}

// --- tests -----------------------------------------------------------------

func TestUTF16Positioning(t *testing.T) {
	text := "a🙂b\n" // 🙂 is 2 UTF-16 code units
	lines := lineOffsets(text)

	// Position AFTER 🙂 ⇒ 1 (a) + 2 (🙂) = 3 code units
	pos := Position{Line: 0, Character: 3}
	off := posToOffset(lines, pos, text)
	if got := text[:off]; got != "a🙂" {
		t.Fatalf("posToOffset slice got %q, want %q", got, "a🙂")
	}
	rt := offsetToPos(lines, off, text)
	if rt.Line != 0 || rt.Character != 3 {
		t.Fatalf("offsetToPos roundtrip = (%d,%d), want (0,3)", rt.Line, rt.Character)
	}
}

func TestFraming(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMsg(&buf, map[string]string{"hello": "world"}); err != nil {
		t.Fatalf("writeMsg: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Content-Length: ") {
		t.Fatalf("missing header: %q", buf.String())
	}
	body, err := readMsg(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("readMsg: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil || got["hello"] != "world" {
		t.Fatalf("roundtrip body = %q (err %v)", body, err)
	}
}

func TestAnalyzePublishesDiagnostics(t *testing.T) {
	s := newServer()
	doc := &docState{uri: "file:///bad.ae", text: "Set 123", lines: lineOffsets("Set 123")}

	buf := captureOutput(t, func() { s.analyze(doc) })
	bodies, _ := readAllMsgs(buf)
	if len(bodies) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(bodies))
	}

	var n wireNotif
	if err := json.Unmarshal(bodies[0], &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.Method != "textDocument/publishDiagnostics" {
		t.Fatalf("method = %q", n.Method)
	}
	var params PublishDiagnosticsParams
	if err := json.Unmarshal(n.Params, &params); err != nil {
		t.Fatalf("params: %v", err)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", params.Diagnostics)
	}
	d := params.Diagnostics[0]
	if d.Severity != 1 || d.Source != "aether-parser" || d.Code != "E003" {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestAnalyzeClearsDiagnosticsOnCleanParse(t *testing.T) {
	s := newServer()
	src := `Set GREETING "hi"`
	doc := &docState{uri: "file:///ok.ae", text: src, lines: lineOffsets(src)}

	buf := captureOutput(t, func() { s.analyze(doc) })
	bodies, _ := readAllMsgs(buf)
	if len(bodies) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(bodies))
	}
	var n wireNotif
	_ = json.Unmarshal(bodies[0], &n)
	var params PublishDiagnosticsParams
	_ = json.Unmarshal(n.Params, &params)
	if len(params.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %+v", params.Diagnostics)
	}
}

func TestAnalyzeCachesParseResult(t *testing.T) {
	doc := mustDoc(t, "file:///cache.ae", "Set COUNT 0\nFunc ADD(A, B) { Return A + B }")
	if doc.parsed == nil {
		t.Fatal("parsed not cached")
	}
	if len(doc.parsed.Symbols.Variables) != 1 || len(doc.parsed.Symbols.Functions) != 1 {
		t.Fatalf("symbols = %+v", doc.parsed.Symbols)
	}
}

func TestWordAt(t *testing.T) {
	src := "Set LIMIT 10\nSet TOTAL LIMIT + 1\n"
	doc := mustDoc(t, "file:///word.ae", src)

	refIdx := strings.LastIndex(src, "LIMIT")
	pos := offsetToPos(doc.lines, refIdx, src)
	name, rng := wordAt(doc, pos)
	if name != "LIMIT" {
		t.Fatalf("wordAt = %q", name)
	}
	if rng.Start.Line != 1 || rng.Start.Character != 10 {
		t.Fatalf("range = %+v", rng)
	}
}

func TestOffsetToEngine(t *testing.T) {
	src := "Set A_VAR 1\nSet B_VAR 2"
	doc := mustDoc(t, "file:///eng.ae", src)

	line, col := offsetToEngine(doc, strings.Index(src, "B_VAR"))
	if line != 2 || col != 5 {
		t.Fatalf("engine position = %d:%d", line, col)
	}
}
