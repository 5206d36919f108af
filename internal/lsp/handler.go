package lsp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"ponscripter/internal/compiler"
	"ponscripter/internal/errors"
	"ponscripter/internal/semantic"
)

var log = commonlog.GetLogger("ponscripter.lsp")

// document is the analysis of one open script.
type document struct {
	lines       []string
	script      *compiler.Script // parsed up to the first error
	db          *semantic.Database
	diagnostics []protocol.Diagnostic
}

func analyze(source string, opts compiler.Options) *document {
	lines := compiler.SplitLines(source)
	doc := &document{lines: lines}

	result, err := compiler.Compile(lines, opts)
	var warnings []errors.Warning
	if result != nil {
		warnings = result.Warnings
		doc.db = result.Database
		doc.script = result.Script
	}
	doc.diagnostics = Diagnostics(lines, warnings, err)

	if doc.db == nil {
		doc.db = semantic.NewDatabaseWithBuiltins()
		doc.db.Prescan(lines)
	}
	return doc
}

// Handler implements the LSP server handlers for scripts.
type Handler struct {
	opts compiler.Options

	mu        sync.RWMutex
	documents map[string]*document
}

func NewHandler(opts compiler.Options) *Handler {
	return &Handler{
		opts:      opts,
		documents: make(map[string]*document),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			DefinitionProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("opened %s", params.TextDocument.URI)
	h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.documents, params.TextDocument.URI)
	return nil
}

// TextDocumentDidChange handles full-text change notifications; the last
// change carries the whole document.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	var text string
	var found bool
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, found = c.Text, true
		case *protocol.TextDocumentContentChangeEventWhole:
			text, found = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			text, found = c.Text, true
		case *protocol.TextDocumentContentChangeEvent:
			text, found = c.Text, true
		}
	}
	if !found {
		return fmt.Errorf("no document text in change notification for %s", params.TextDocument.URI)
	}
	h.update(ctx, params.TextDocument.URI, text)
	return nil
}

func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	var prefix string
	if line := int(params.Position.Line); line < len(doc.lines) {
		text := doc.lines[line]
		prefix = wordBefore(text, byteOffset(text, params.Position.Character))
	}
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        Completions(doc.db, prefix),
	}, nil
}

func (h *Handler) TextDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	line := int(params.Position.Line)
	if line >= len(doc.lines) {
		return nil, nil
	}
	r, ok := Definition(doc.script, doc.lines, line, byteOffset(doc.lines[line], params.Position.Character))
	if !ok {
		return nil, nil
	}
	return protocol.Location{URI: params.TextDocument.URI, Range: r}, nil
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	tokens := collectSemanticTokens(doc.lines, doc.db, h.opts.AllowText)
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(tokens)}, nil
}

func (h *Handler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) *document {
	doc := analyze(text, h.opts)

	h.mu.Lock()
	h.documents[uri] = doc
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, doc.diagnostics)
	return doc
}

// document returns the analysis of an open script, reading it from disk
// when the client never opened it.
func (h *Handler) document(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.documents[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return h.update(ctx, uri, string(content)), nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	if data, err := json.Marshal(diagnostics); err == nil {
		log.Debugf("publishing diagnostics for %s: %s", uri, data)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
