package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/deskcalc/deskcalc/pkg/diag"
	"github.com/deskcalc/deskcalc/pkg/eval"
	"github.com/deskcalc/deskcalc/pkg/parse"
	"github.com/deskcalc/deskcalc/pkg/sheet"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	mu      sync.Mutex
	mode    eval.Mode
	unit    eval.AngleUnit
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{mode: eval.Scientific, unit: eval.Degrees,
		content: make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		"initialized": noop,
		"shutdown":    noop,
		"exit":        noop,
		// Sent by some clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			logger.Printf("unsupported method %s", req.Method)
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Settings that a client may send in initializationOptions.
type initOptions struct {
	Mode  string `json:"mode"`
	Angle string `json:"angle"`
}

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params struct {
		InitializationOptions *initOptions `json:"initializationOptions"`
	}
	if len(rawParams) > 0 && json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	if opts := params.InitializationOptions; opts != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if opts.Mode != "" {
			mode, err := eval.ParseMode(opts.Mode)
			if err != nil {
				return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
			}
			s.mode = mode
		}
		if opts.Angle != "" {
			unit, err := eval.ParseAngleUnit(opts.Angle)
			if err != nil {
				return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
			}
			s.unit = unit
		}
	}
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider:      true,
			CompletionProvider: &lsp.CompletionOptions{},
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.update(ctx, conn, params.TextDocument.URI, params.TextDocument.Text)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}
	// Only full sync is advertised, so the last change has the full text.
	changes := params.ContentChanges
	s.update(ctx, conn, params.TextDocument.URI, changes[len(changes)-1].Text)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) update(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	s.mu.Lock()
	s.content[uri] = content
	mode, unit := s.mode, s.unit
	s.mu.Unlock()
	go publishDiagnostics(ctx, conn, uri, content, mode, unit)
}

// Returns the content of a document and the settings to evaluate it with.
func (s *server) document(uri lsp.DocumentURI) (string, eval.Mode, eval.AngleUnit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content[uri], s.mode, s.unit
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	content, mode, unit := s.document(params.TextDocument.URI)
	idx := lspPositionToIdx(content, params.Position)
	for _, r := range sheet.Eval(string(params.TextDocument.URI), content, mode, unit) {
		if idx < r.From || r.From+len(r.Code) < idx {
			continue
		}
		rg := lspRangeFromRange(content, diag.Ranging{From: r.From, To: r.From + len(r.Code)})
		var text string
		if r.Err != nil {
			text = eval.KindOf(r.Err).Message() + ": " + errorMessage(r.Err)
		} else {
			text = "= " + eval.FormatNumber(r.Value)
		}
		return lsp.Hover{Contents: []lsp.MarkedString{lsp.RawMarkedString(text)}, Range: &rg}, nil
	}
	return lsp.Hover{}, nil
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	content, mode, _ := s.document(params.TextDocument.URI)
	dot := lspPositionToIdx(content, params.Position)
	begin := identifierStart(content, dot)
	prefix := content[begin:dot]
	replace := lspRangeFromRange(content, diag.Ranging{From: begin, To: dot})

	symbols := mode.Symbols()
	items := []lsp.CompletionItem{}
	for _, name := range append(symbols.Names(), "Ans") {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		kind, detail := lsp.CIKVariable, "last answer"
		if sym, ok := symbols.Lookup(name); ok {
			if sym.Arity == 1 {
				kind, detail = lsp.CIKFunction, "function"
			} else {
				kind, detail = lsp.CIKConstant, "= "+eval.FormatNumber(sym.Value)
			}
		}
		items = append(items, lsp.CompletionItem{
			Label:    name,
			Kind:     kind,
			Detail:   detail,
			TextEdit: &lsp.TextEdit{Range: replace, NewText: name},
		})
	}
	return items, nil
}

// Returns the start of the identifier that ends at dot.
func identifierStart(s string, dot int) int {
	begin := dot
	for begin > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:begin])
		if r != '_' && r != '√' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		begin -= size
	}
	return begin
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string, mode eval.Mode, unit eval.AngleUnit) {
	err := conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content, mode, unit)})
	if err != nil {
		logger.Printf("publish diagnostics for %s: %v", uri, err)
	}
}

func diagnostics(uri lsp.DocumentURI, content string, mode eval.Mode, unit eval.AngleUnit) []lsp.Diagnostic {
	diags := []lsp.Diagnostic{}
	for _, r := range sheet.Eval(string(uri), content, mode, unit) {
		if r.Err == nil {
			continue
		}
		rg := diag.Ranging{From: 0, To: len(r.Code)}
		var ranger diag.Ranger
		if errors.As(r.Err, &ranger) {
			rg = ranger.Range()
		}
		rg.From += r.From
		rg.To += r.From
		diags = append(diags, lsp.Diagnostic{
			Range:    lspRangeFromRange(content, rg),
			Severity: lsp.Error,
			Source:   eval.KindOf(r.Err).String(),
			Message:  errorMessage(r.Err),
		})
	}
	return diags
}

func errorMessage(err error) string {
	var lexErr *parse.LexError
	var syntaxErr *parse.SyntaxError
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Message
	case errors.As(err, &syntaxErr):
		return syntaxErr.Message
	default:
		return err.Error()
	}
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !lastCR {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// One UTF-16 unit.
			p.Character++
		default:
			// Two UTF-16 units.
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
