package zig

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyuria/way2/way2gen/format"
	"github.com/cyuria/way2/way2gen/ir"
)

// ZigGenerator compiles a document set into one declaration unit per
// document, the shared types unit and the global index unit.
type ZigGenerator struct{}

var _ Generator = (*ZigGenerator)(nil)

// Name returns "zig".
func (g *ZigGenerator) Name() string { return "zig" }

// Generate compiles and formats every unit before writing any of them, so
// a failure anywhere leaves the sink untouched.
func (g *ZigGenerator) Generate(ctx context.Context, set *ir.Set, opts GenerateOptions) (*GenerateResult, error) {
	cfg := opts.Config.withDefaults()
	if cfg.TypesUnit == cfg.IndexUnit {
		return nil, fmt.Errorf("types unit and index unit share the name %q", cfg.TypesUnit)
	}
	reserved := append([]string{cfg.TypesUnit, cfg.IndexUnit}, indexDecls...)
	if errs := set.Validate(reserved...); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	emitter, err := NewEmitter(set, cfg)
	if err != nil {
		return nil, err
	}

	var files []OutputFile
	for _, doc := range set.Documents() {
		src, err := emitter.EmitDocument(doc)
		if err != nil {
			return nil, err
		}
		files = append(files, OutputFile{Path: doc.Name + ".zig", Content: src})
	}
	files = append(files, OutputFile{Path: cfg.TypesUnit + ".zig", Content: emitter.EmitTypes()})
	index, err := emitter.EmitIndex()
	if err != nil {
		return nil, err
	}
	files = append(files, OutputFile{Path: cfg.IndexUnit + ".zig", Content: index})

	formatter := opts.Formatter
	if formatter == nil {
		formatter = format.Nop
	}
	for i := range files {
		out, err := formatter.Format(format.WithUnit(ctx, files[i].Path), files[i].Content)
		if err != nil {
			return nil, ir.Errorf(ir.CodeFormatFailed, "formatting %s", files[i].Path).Wrap(err)
		}
		files[i].Content = out
		files[i].Size = int64(len(out))
	}

	if opts.Sink != nil {
		for _, f := range files {
			if err := opts.Sink.WriteFile(ctx, f.Path, f.Content); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
			}
		}
	}

	return &GenerateResult{
		Files:      files,
		Interfaces: interfaceCount(set),
		Warnings:   set.Warnings,
	}, nil
}
