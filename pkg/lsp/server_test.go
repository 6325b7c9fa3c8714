package lsp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/deskcalc/deskcalc/pkg/tt"
)

const testURI = lsp.DocumentURI("file:///test.calc")

type notification struct {
	method string
	params any
}

// A JSONRPC2 that records notifications.
type testConn struct {
	notes chan notification
}

func newTestConn() *testConn { return &testConn{make(chan notification, 10)} }

func (c *testConn) Call(context.Context, string, any, any, ...jsonrpc2.CallOption) error {
	return nil
}

func (c *testConn) Notify(_ context.Context, method string, params any, _ ...jsonrpc2.CallOption) error {
	c.notes <- notification{method, params}
	return nil
}

func (c *testConn) Close() error { return nil }

func rawJSON(v any) json.RawMessage {
	bs, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bs
}

func open(t *testing.T, s *server, conn *testConn, content string) []lsp.Diagnostic {
	t.Helper()
	_, err := s.didOpen(context.Background(), conn, rawJSON(lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: testURI, Text: content}}))
	if err != nil {
		t.Fatalf("didOpen returns error %v", err)
	}
	return receiveDiagnostics(t, conn)
}

func receiveDiagnostics(t *testing.T, conn *testConn) []lsp.Diagnostic {
	t.Helper()
	note := <-conn.notes
	if note.method != "textDocument/publishDiagnostics" {
		t.Fatalf("got notification %s, want textDocument/publishDiagnostics", note.method)
	}
	params := note.params.(lsp.PublishDiagnosticsParams)
	if params.URI != testURI {
		t.Errorf("got diagnostics for %s, want %s", params.URI, testURI)
	}
	return params.Diagnostics
}

func TestDiagnostics(t *testing.T) {
	s, conn := newServer(), newTestConn()

	diags := open(t, s, conn, "1+1\n# comment\n2 $ 3\n")
	want := []lsp.Diagnostic{{
		Range: lsp.Range{
			Start: lsp.Position{Line: 2, Character: 2},
			End:   lsp.Position{Line: 2, Character: 3}},
		Severity: lsp.Error,
		Source:   "lex-error",
		Message:  `unexpected character '$'`,
	}}
	if diff := cmp.Diff(want, diags); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	_, err := s.didChange(context.Background(), conn, rawJSON(lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "1+1\n"}}}))
	if err != nil {
		t.Fatalf("didChange returns error %v", err)
	}
	if diags := receiveDiagnostics(t, conn); len(diags) != 0 {
		t.Errorf("got diagnostics %v after fixing the error, want none", diags)
	}
}

func TestDiagnostics_EvalErrors(t *testing.T) {
	s, conn := newServer(), newTestConn()

	diags := open(t, s, conn, "2*3\n1/(Ans-6)\nfoo\n")
	var sources, messages []string
	for _, d := range diags {
		sources = append(sources, d.Source)
		messages = append(messages, d.Message)
		if d.Range.Start.Line == 0 {
			t.Errorf("got diagnostic on the first line, which has no error")
		}
	}
	if diff := cmp.Diff([]string{"divide-by-zero", "undefined-name"}, sources); diff != "" {
		t.Errorf("sources (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"divide by zero: divisor of / is 0", "undefined name: foo"}, messages); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}
}

func TestHover(t *testing.T) {
	s, conn := newServer(), newTestConn()
	open(t, s, conn, "2*3\nAns+1\n\n1/0")

	hover := func(line, char int) string {
		result, err := s.hover(context.Background(), conn, rawJSON(lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: line, Character: char}}))
		if err != nil {
			t.Fatalf("hover returns error %v", err)
		}
		h := result.(lsp.Hover)
		if len(h.Contents) == 0 {
			return ""
		}
		return h.Contents[0].Value
	}

	tt.Test(t, tt.Fn("hover", hover), tt.Table{
		tt.Args(0, 0).Rets("= 6"),
		tt.Args(0, 3).Rets("= 6"),
		tt.Args(1, 2).Rets("= 7"),
		tt.Args(2, 0).Rets(""),
		tt.Args(3, 1).Rets("Division by Zero: divide by zero: divisor of / is 0"),
	})
}

func TestCompletion(t *testing.T) {
	complete := func(s *server, content string, char int) []string {
		s.content[testURI] = content
		result, err := s.completion(context.Background(), nil, rawJSON(lsp.CompletionParams{
			TextDocumentPositionParams: lsp.TextDocumentPositionParams{
				TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
				Position:     lsp.Position{Line: 0, Character: char}}}))
		if err != nil {
			t.Fatalf("completion returns error %v", err)
		}
		var labels []string
		for _, item := range result.([]lsp.CompletionItem) {
			labels = append(labels, item.Label)
		}
		return labels
	}

	s := newServer()
	tt.Test(t, tt.Fn("complete", complete), tt.Table{
		tt.Args(s, "1+s", 3).Rets([]string{"sin", "sqrt"}),
		tt.Args(s, "1+sq", 4).Rets([]string{"sqrt"}),
		tt.Args(s, "A", 1).Rets([]string{"Ans"}),
		tt.Args(s, "x", 1).Rets([]string(nil)),
	})

	normal := newServer()
	_, err := normal.initialize(context.Background(), nil,
		json.RawMessage(`{"initializationOptions": {"mode": "normal", "angle": "rad"}}`))
	if err != nil {
		t.Fatalf("initialize returns error %v", err)
	}
	if normal.mode.String() != "normal" || normal.unit.String() != "rad" {
		t.Errorf("got mode %v and angle unit %v after initialize", normal.mode, normal.unit)
	}
	if got := complete(normal, "", 0); !cmp.Equal(got, []string{"Ans"}) {
		t.Errorf("got completions %v in normal mode, want [Ans]", got)
	}
}

func TestInitialize_BadOptions(t *testing.T) {
	s := newServer()
	_, err := s.initialize(context.Background(), nil,
		json.RawMessage(`{"initializationOptions": {"mode": "programmer"}}`))
	if err == nil {
		t.Errorf("initialize with a bad mode returns no error")
	}
}

func TestPositionConversion(t *testing.T) {
	content := "ab\r\nπ𝜋c\nd"
	tt.Test(t, tt.Fn("lspPositionFromIdx", lspPositionFromIdx), tt.Table{
		tt.Args(content, 0).Rets(lsp.Position{Line: 0, Character: 0}),
		tt.Args(content, 2).Rets(lsp.Position{Line: 0, Character: 2}),
		tt.Args(content, 4).Rets(lsp.Position{Line: 1, Character: 0}),
		// π takes 2 bytes and one UTF-16 unit; 𝜋 takes 4 bytes and two units.
		tt.Args(content, 6).Rets(lsp.Position{Line: 1, Character: 1}),
		tt.Args(content, 10).Rets(lsp.Position{Line: 1, Character: 3}),
		tt.Args(content, 12).Rets(lsp.Position{Line: 2, Character: 0}),
	})
	tt.Test(t, tt.Fn("lspPositionToIdx", lspPositionToIdx), tt.Table{
		tt.Args(content, lsp.Position{Line: 1, Character: 3}).Rets(10),
		tt.Args(content, lsp.Position{Line: 2, Character: 1}).Rets(13),
	})
}
