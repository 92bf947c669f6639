package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tailored-agentic-units/layers/document"
	"github.com/tailored-agentic-units/layers/observability"
	"github.com/tailored-agentic-units/layers/workspace"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to workspace config file, JSON or YAML")
		docName    = flag.String("doc", "", "Document to open (required)")
		scriptFile = flag.String("script", "", "Path to a JSON request script to apply")
		backend    = flag.String("store", "", "Document store backend: memory, file or sqlite (overrides config)")
		storePath  = flag.String("path", "", "Store directory or database file (overrides config)")
		trace      = flag.Bool("trace", false, "Print every event after the run")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	if *docName == "" {
		fmt.Fprintln(os.Stderr, "Usage: layers -doc <name> [-script <file>] [-config <file>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := workspace.DefaultConfig()
	if *configFile != "" {
		loaded, err := workspace.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *backend != "" {
		cfg.Document.Backend = *backend
	}
	if *storePath != "" {
		cfg.Document.Path = *storePath
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	recorder := observability.NewRecorder()
	observer := observability.NewMultiObserver(observability.NewSlogObserver(logger), recorder)

	ws, err := workspace.New(&cfg, workspace.WithObserver(observer))
	if err != nil {
		log.Fatalf("Failed to create workspace: %v", err)
	}
	defer ws.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := ws.Open(ctx, *docName); err != nil {
		log.Fatalf("Failed to open %s: %v", *docName, err)
	}

	if *scriptFile != "" {
		data, err := os.ReadFile(*scriptFile)
		if err != nil {
			log.Fatalf("Failed to read script: %v", err)
		}
		reqs, err := document.DecodeRequests(data)
		if err != nil {
			log.Fatalf("Failed to parse script: %v", err)
		}
		if _, err := ws.Apply(ctx, reqs...); err != nil {
			log.Fatalf("Script rejected: %v", err)
		}
		if err := ws.Save(ctx); err != nil {
			log.Fatalf("Failed to save %s: %v", *docName, err)
		}
	}

	fmt.Printf("Document: %s\n\n", ws.Name())
	render(os.Stdout, ws.Snapshot())

	if *trace {
		fmt.Println("\nEvents:")
		for i, e := range recorder.Events() {
			fmt.Printf("  [%d] %s %s %v\n", i+1, e.Level, e.Type, e.Data)
		}
	}
}
