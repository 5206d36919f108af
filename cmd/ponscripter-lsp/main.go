// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"ponscripter/internal/compiler"
	"ponscripter/internal/lsp"
)

const lsName = "ponscripter"

var handler protocol.Handler

func main() {
	verbosity := flag.Int("verbosity", 1, "log verbosity")
	builtins := flag.String("builtins", "", "built-in command table overriding the static one")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)

	opts := compiler.DefaultOptions()
	opts.BuiltinsPath = *builtins
	scriptHandler := lsp.NewHandler(opts)

	handler = protocol.Handler{
		Initialize:                     scriptHandler.Initialize,
		Initialized:                    scriptHandler.Initialized,
		Shutdown:                       scriptHandler.Shutdown,
		SetTrace:                       scriptHandler.SetTrace,
		TextDocumentDidOpen:            scriptHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           scriptHandler.TextDocumentDidClose,
		TextDocumentDidChange:          scriptHandler.TextDocumentDidChange,
		TextDocumentCompletion:         scriptHandler.TextDocumentCompletion,
		TextDocumentDefinition:         scriptHandler.TextDocumentDefinition,
		TextDocumentSemanticTokensFull: scriptHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting Ponscripter LSP server...")

	// Editors talk to the server over stdin/stdout.
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting Ponscripter LSP server:", err)
		os.Exit(1)
	}
}
