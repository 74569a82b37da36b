package lsp

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/jarredhawkins/urscript-lsp/internal/analysis"
	"github.com/jarredhawkins/urscript-lsp/internal/format"
	"github.com/jarredhawkins/urscript-lsp/internal/source"
	"github.com/jarredhawkins/urscript-lsp/internal/types"
	"go.lsp.dev/jsonrpc2"
)

const (
	ServerName    = "urscript-lsp"
	ServerVersion = "0.1.0"
)

// Server implements the LSP server
type Server struct {
	analyzer  *analysis.Analyzer
	documents *DocumentStore
}

// NewServer creates a new LSP server
func NewServer(a *analysis.Analyzer) *Server {
	return &Server{
		analyzer:  a,
		documents: NewDocumentStore(),
	}
}

// Serve starts the LSP server on the given reader/writer
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	conn := jsonrpc2.NewConn(stream)

	conn.Go(ctx, s.handler)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-conn.Done():
		return conn.Err()
	}
}

func (s *Server) handler(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	log.Printf("LSP request: %s", req.Method())

	switch req.Method() {
	case "initialize":
		return s.handleInitialize(ctx, reply, req)
	case "initialized":
		return reply(ctx, nil, nil)
	case "shutdown":
		return reply(ctx, nil, nil)
	case "exit":
		return nil
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, reply, req)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, reply, req)
	case "textDocument/didClose":
		return s.handleDidClose(ctx, reply, req)
	case "textDocument/completion":
		return s.handleCompletion(ctx, reply, req)
	case "textDocument/hover":
		return s.handleHover(ctx, reply, req)
	case "textDocument/signatureHelp":
		return s.handleSignatureHelp(ctx, reply, req)
	case "textDocument/definition":
		return s.handleDefinition(ctx, reply, req)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(ctx, reply, req)
	case "textDocument/formatting":
		return s.handleFormatting(ctx, reply, req)
	case "textDocument/rangeFormatting":
		return s.handleRangeFormatting(ctx, reply, req)
	case "textDocument/onTypeFormatting":
		return s.handleOnTypeFormatting(ctx, reply, req)
	default:
		// Method not found
		return reply(ctx, nil, &jsonrpc2.Error{
			Code:    jsonrpc2.MethodNotFound,
			Message: "method not supported: " + req.Method(),
		})
	}
}

func invalidParams(ctx context.Context, reply jsonrpc2.Replier, err error) error {
	return reply(ctx, nil, &jsonrpc2.Error{
		Code:    jsonrpc2.InvalidParams,
		Message: err.Error(),
	})
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
			},
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: []string{"#", "@"},
			},
			HoverProvider: true,
			SignatureHelpProvider: &SignatureHelpOptions{
				TriggerCharacters:   []string{"("},
				RetriggerCharacters: []string{","},
			},
			DefinitionProvider:              true,
			DocumentSymbolProvider:          true,
			DocumentFormattingProvider:      true,
			DocumentRangeFormattingProvider: true,
			DocumentOnTypeFormattingProvider: &DocumentOnTypeFormattingOptions{
				FirstTriggerCharacter: "\n",
				MoreTriggerCharacter:  []string{")", "]"},
			},
		},
		ServerInfo: &ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	s.documents.Open(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	if len(params.ContentChanges) > 0 {
		// Full sync mode - just take the last content
		text := params.ContentChanges[len(params.ContentChanges)-1].Text
		if !s.documents.Update(params.TextDocument.URI, params.TextDocument.Version, text) {
			log.Printf("dropped change to %s at version %d", params.TextDocument.URI, params.TextDocument.Version)
		}
	}
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	s.documents.Close(params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

// position resolves a document and converts an LSP position to a byte column
func (s *Server) position(p TextDocumentPositionParams) (*source.Buffer, int, int) {
	buf := s.getBuffer(p.TextDocument.URI)
	if buf == nil {
		return nil, 0, 0
	}
	line := int(p.Position.Line)
	return buf, line, byteColumn(buf.Line(line), p.Position.Character)
}

func (s *Server) handleCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	buf, line, col := s.position(params)
	if buf == nil {
		return reply(ctx, nil, nil)
	}
	list := s.analyzer.Completions(buf, line, col)
	if list == nil {
		return reply(ctx, nil, nil)
	}

	result := CompletionList{
		IsIncomplete: list.Incomplete,
		Items:        make([]CompletionItem, len(list.Items)),
	}
	for i, c := range list.Items {
		result.Items[i] = s.completionItem(buf, c)
	}
	return reply(ctx, result, nil)
}

func (s *Server) completionItem(buf *source.Buffer, c types.Completion) CompletionItem {
	item := CompletionItem{
		Label:            c.Label,
		Kind:             completionKind(c.Kind),
		Detail:           c.Detail,
		InsertText:       c.InsertText,
		InsertTextFormat: InsertTextFormatPlainText,
		CommitCharacters: c.CommitCharacters,
	}
	if c.Documentation != "" {
		item.Documentation = markdown(c.Documentation)
	}
	if c.Snippet {
		item.InsertTextFormat = InsertTextFormatSnippet
	}
	if c.Replace != nil {
		item.TextEdit = &TextEdit{
			Range:   editRange(buf.Line(c.Replace.Line), *c.Replace),
			NewText: c.InsertText,
		}
	}
	return item
}

func completionKind(k types.CompletionKind) CompletionItemKind {
	switch k {
	case types.CompletionMethod:
		return CompletionItemKindMethod
	case types.CompletionVariable:
		return CompletionItemKindVariable
	case types.CompletionSnippet:
		return CompletionItemKindSnippet
	default:
		return CompletionItemKindFunction
	}
}

func (s *Server) handleHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	buf, line, col := s.position(params)
	if buf == nil {
		return reply(ctx, nil, nil)
	}
	h := s.analyzer.Hover(buf, line, col)
	if h == nil {
		return reply(ctx, nil, nil)
	}
	return reply(ctx, Hover{Contents: *markdown(h.Markdown())}, nil)
}

func (s *Server) handleSignatureHelp(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	buf, line, col := s.position(params)
	if buf == nil {
		return reply(ctx, nil, nil)
	}
	sig := s.analyzer.Signature(buf, line, col)
	if sig == nil {
		return reply(ctx, nil, nil)
	}

	info := SignatureInformation{Label: sig.Label}
	if sig.Documentation != "" {
		info.Documentation = markdown(sig.Documentation)
	}
	for _, p := range sig.Parameters {
		pi := ParameterInformation{Label: p.Label}
		if p.Documentation != "" {
			pi.Documentation = markdown(p.Documentation)
		}
		info.Parameters = append(info.Parameters, pi)
	}
	return reply(ctx, SignatureHelp{
		Signatures:      []SignatureInformation{info},
		ActiveParameter: uint32(sig.ActiveParameter),
	}, nil)
}

func (s *Server) handleDefinition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	buf, line, col := s.position(params)
	if buf == nil {
		return reply(ctx, nil, nil)
	}
	locs := s.analyzer.Definitions(buf, line, col)
	if len(locs) == 0 {
		return reply(ctx, nil, nil)
	}

	log.Printf("definition request at %s:%d:%d found %d", buf.Name(), line, col, len(locs))

	// Convert to LSP locations
	if len(locs) == 1 {
		return reply(ctx, s.toLocation(locs[0]), nil)
	}
	locations := make([]Location, len(locs))
	for i, loc := range locs {
		locations[i] = s.toLocation(loc)
	}
	return reply(ctx, locations, nil)
}

func (s *Server) handleDocumentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DocumentSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	buf := s.getBuffer(params.TextDocument.URI)
	if buf == nil {
		return reply(ctx, nil, nil)
	}

	symbols := []DocumentSymbol{}
	for _, e := range s.analyzer.Outline(buf) {
		text := buf.Line(e.Line)
		r := Range{
			Start: Position{Line: uint32(e.Line), Character: utf16Column(text, e.Column)},
			End:   Position{Line: uint32(e.Line), Character: utf16Column(text, e.EndColumn)},
		}
		kind := SymbolKindFunction
		if e.Kind == types.KindThread {
			kind = SymbolKindEvent
		}
		symbols = append(symbols, DocumentSymbol{
			Name:           e.Name,
			Detail:         e.Detail,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
		})
	}
	return reply(ctx, symbols, nil)
}

// formatOptions prefers the editor's settings and falls back to config
func (s *Server) formatOptions(o FormattingOptions) format.Options {
	if o.TabSize <= 0 {
		return s.analyzer.FormatOptions()
	}
	return format.Options{TabSize: o.TabSize, InsertSpaces: o.InsertSpaces}
}

func (s *Server) handleFormatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DocumentFormattingParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	buf := s.getBuffer(params.TextDocument.URI)
	if buf == nil {
		return reply(ctx, nil, nil)
	}
	edits := s.analyzer.FormatDocument(buf, s.formatOptions(params.Options))
	return reply(ctx, toTextEdits(buf, edits), nil)
}

func (s *Server) handleRangeFormatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DocumentRangeFormattingParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	buf := s.getBuffer(params.TextDocument.URI)
	if buf == nil {
		return reply(ctx, nil, nil)
	}
	edits := s.analyzer.FormatRange(buf, int(params.Range.Start.Line), int(params.Range.End.Line), s.formatOptions(params.Options))
	return reply(ctx, toTextEdits(buf, edits), nil)
}

func (s *Server) handleOnTypeFormatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DocumentOnTypeFormattingParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return invalidParams(ctx, reply, err)
	}

	buf := s.getBuffer(params.TextDocument.URI)
	if buf == nil {
		return reply(ctx, nil, nil)
	}
	edits := s.analyzer.FormatOnType(buf, int(params.Position.Line), params.Ch, s.formatOptions(params.Options))
	return reply(ctx, toTextEdits(buf, edits), nil)
}

func editRange(text string, e types.TextEdit) Range {
	return Range{
		Start: Position{Line: uint32(e.Line), Character: utf16Column(text, e.StartColumn)},
		End:   Position{Line: uint32(e.Line), Character: utf16Column(text, e.EndColumn)},
	}
}

func toTextEdits(buf *source.Buffer, edits []types.TextEdit) []TextEdit {
	out := make([]TextEdit, len(edits))
	for i, e := range edits {
		out[i] = TextEdit{Range: editRange(buf.Line(e.Line), e), NewText: e.NewText}
	}
	return out
}

// toLocation converts a byte-column location, reading the target line to
// compute UTF-16 columns
func (s *Server) toLocation(loc types.Location) Location {
	uri := pathToURI(loc.Path)
	start, end := uint32(loc.Column), uint32(loc.EndColumn)
	if buf := s.getBuffer(uri); buf != nil {
		text := buf.Line(loc.Line)
		start, end = utf16Column(text, loc.Column), utf16Column(text, loc.EndColumn)
	}
	return Location{
		URI: uri,
		Range: Range{
			Start: Position{Line: uint32(loc.Line), Character: start},
			End:   Position{Line: uint32(loc.Line), Character: end},
		},
	}
}

// getBuffer returns the open document for uri, falling back to disk
func (s *Server) getBuffer(uri string) *source.Buffer {
	// Check open documents first
	if buf, ok := s.documents.Buffer(uri); ok {
		return buf
	}

	// Fall back to reading from disk
	path := uriToPath(uri)
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("failed to read file %s: %v", path, err)
		return nil
	}
	return source.NewBuffer(path, string(content))
}

// readWriteCloser wraps reader and writer into a ReadWriteCloser
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	return nil
}
