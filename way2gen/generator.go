// Package way2gen compiles Wayland protocol XML documents into Zig
// declarations.
//
// A run discovers documents under one or more protocol tree roots, parses
// them into a read-only document set, compiles one unit per document plus
// a shared types unit and a global index unit, formats every unit and
// writes them out. Nothing is written unless every unit succeeds.
package way2gen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cyuria/way2/internal/discover"
	"github.com/cyuria/way2/middleware"
	"github.com/cyuria/way2/way2gen/format"
	"github.com/cyuria/way2/way2gen/ir"
	"github.com/cyuria/way2/way2gen/provider"
	"github.com/cyuria/way2/way2gen/sink"
	"github.com/cyuria/way2/way2gen/zig"
)

// Result describes a completed run.
type Result struct {
	// Documents are the discovered document paths, in load order. Paths
	// skipped by the mismatch policy are included.
	Documents []string

	// Protocols are the names of the loaded documents, in load order.
	Protocols []string

	// Files are the generated units, in write order.
	Files []zig.OutputFile

	// Interfaces is the number of interfaces emitted.
	Interfaces int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// Generate runs the whole pipeline for cfg.
func Generate(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	// 1. Find documents
	docs, err := discover.Find(cfg.Roots...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents: %w", err)
	}
	for _, d := range docs {
		logger.DebugContext(ctx, "discovered document",
			slog.String("path", d.Path),
			slog.String("category", d.Category.String()),
		)
	}
	paths := discover.Paths(docs)

	// 2. Build the document set
	p := &provider.XMLProvider{}
	set, err := p.BuildSet(ctx, provider.XMLInputOptions{
		Paths:          paths,
		OnMismatch:     cfg.OnMismatch,
		SkipInterfaces: cfg.SkipInterfaces,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	// 3. Compile, format and write
	var out sink.OutputSink
	if cfg.DryRun {
		out = sink.NewMemorySink()
	} else {
		out = sink.NewFilesystemSink(cfg.OutDir)
	}

	gen := &zig.ZigGenerator{}
	result, err := gen.Generate(ctx, set, zig.GenerateOptions{
		Sink:      out,
		Formatter: middleware.LoggingFormatter(formatterFor(cfg), logger),
		Config: zig.GeneratorConfig{
			TypesUnit:       cfg.TypesUnit,
			IndexUnit:       cfg.IndexUnit,
			TypeMappings:    cfg.TypeMappings,
			EventsOnlyIndex: cfg.EventsOnlyIndex,
			IndentSize:      cfg.IndentSize,
		},
	})
	if err != nil {
		return nil, err
	}

	for _, f := range result.Files {
		logger.DebugContext(ctx, "emitted unit", slog.String("path", f.Path), slog.Int64("size", f.Size))
	}
	protocols := make([]string, 0, set.Len())
	for _, d := range set.Documents() {
		protocols = append(protocols, d.Name)
	}

	logger.InfoContext(ctx, "generation complete",
		slog.Int("documents", set.Len()),
		slog.Int("interfaces", result.Interfaces),
		slog.Int("units", len(result.Files)),
		slog.Int("warnings", len(result.Warnings)),
		slog.Bool("dry_run", cfg.DryRun),
		slog.Duration("duration", time.Since(start)),
	)

	return &Result{
		Documents:  paths,
		Protocols:  protocols,
		Files:      result.Files,
		Interfaces: result.Interfaces,
		Warnings:   result.Warnings,
	}, nil
}

func formatterFor(cfg Config) format.Formatter {
	switch {
	case cfg.NoFormat:
		return format.Nop
	case cfg.Format != nil:
		return cfg.Format
	default:
		return &format.Exec{Command: cfg.Formatter}
	}
}
