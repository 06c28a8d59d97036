package zig

import (
	"context"

	"github.com/cyuria/way2/way2gen/format"
	"github.com/cyuria/way2/way2gen/ir"
	"github.com/cyuria/way2/way2gen/sink"
)

// Generator transforms a document set into Zig source units.
type Generator interface {
	// Name returns the generator's identifier.
	Name() string

	// Generate compiles every unit for the given set.
	Generate(ctx context.Context, set *ir.Set, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation behavior.
type GenerateOptions struct {
	// Sink receives generated output files. A nil Sink compiles and
	// formats every unit without writing anything.
	Sink sink.OutputSink

	// Formatter pretty-prints each unit. Nil means format.Nop.
	Formatter format.Formatter

	// Config contains generator configuration.
	Config GeneratorConfig
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all units, in write order.
	Files []OutputFile

	// Interfaces is the number of interfaces emitted across all documents.
	Interfaces int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// OutputFile describes a generated unit.
type OutputFile struct {
	// Path is the relative path of the unit, e.g. "wayland.zig".
	Path string

	// Size is the number of bytes written.
	Size int64

	// Content is the formatted source.
	Content []byte
}

// GeneratorConfig provides generation options.
type GeneratorConfig struct {
	TypesUnit string // Shared primitive types unit name, without extension
	IndexUnit string // Global index unit name, without extension

	// TypeMappings overrides the Zig type of a primitive argument kind,
	// keyed by schema kind name ("int", "fixed", ...).
	TypeMappings map[string]string

	// EventsOnlyIndex omits the Requests union from the index unit.
	EventsOnlyIndex bool

	IndentSize int // Spaces per indent level before formatting
}

// DefaultGeneratorConfig returns the configuration used when fields are
// left zero.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		TypesUnit:  "types",
		IndexUnit:  "proto",
		IndentSize: 4,
	}
}

func (c GeneratorConfig) withDefaults() GeneratorConfig {
	d := DefaultGeneratorConfig()
	if c.TypesUnit == "" {
		c.TypesUnit = d.TypesUnit
	}
	if c.IndexUnit == "" {
		c.IndexUnit = d.IndexUnit
	}
	if c.IndentSize <= 0 {
		c.IndentSize = d.IndentSize
	}
	return c
}
