package way2gen

import (
	"context"
	"log/slog"
	"maps"

	"github.com/cyuria/way2/way2gen/format"
	"github.com/cyuria/way2/way2gen/provider"
)

// Generator provides a fluent API for code generation.
// Create with FromRoots() and configure with method chaining.
//
// Example:
//
//	way2gen.FromRoots("/usr/share/wayland", "/usr/share/wayland-protocols").
//		SkipInterfaces("wl_shell", "wl_shell_surface").
//		ToDir("./src/proto")
type Generator struct {
	cfg Config
}

// FromRoots creates a Generator reading documents from the given protocol
// tree roots, with DefaultConfig settings.
func FromRoots(roots ...string) *Generator {
	cfg := DefaultConfig()
	cfg.Roots = roots
	return &Generator{cfg: cfg}
}

// FromConfig creates a Generator starting from an existing configuration.
func FromConfig(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// WithFormatter formats units with f instead of the formatter command.
func (g *Generator) WithFormatter(f format.Formatter) *Generator {
	g.cfg.Format = f
	return g
}

// FormatCommand sets the formatter command line.
func (g *Generator) FormatCommand(command ...string) *Generator {
	g.cfg.Formatter = command
	return g
}

// NoFormat writes units exactly as emitted.
func (g *Generator) NoFormat() *Generator {
	g.cfg.NoFormat = true
	return g
}

// OnMismatch sets the policy for XML documents that are not protocols.
func (g *Generator) OnMismatch(p provider.MismatchPolicy) *Generator {
	g.cfg.OnMismatch = p
	return g
}

// SkipInterfaces leaves the named interfaces out of every unit.
// Can be called multiple times.
func (g *Generator) SkipInterfaces(names ...string) *Generator {
	g.cfg.SkipInterfaces = append(g.cfg.SkipInterfaces, names...)
	return g
}

// TypeMapping overrides the Zig type of a primitive argument kind.
func (g *Generator) TypeMapping(kind, zigType string) *Generator {
	if g.cfg.TypeMappings == nil {
		g.cfg.TypeMappings = make(map[string]string)
	} else {
		g.cfg.TypeMappings = maps.Clone(g.cfg.TypeMappings)
	}
	g.cfg.TypeMappings[kind] = zigType
	return g
}

// Units renames the shared types and index units.
func (g *Generator) Units(types, index string) *Generator {
	g.cfg.TypesUnit = types
	g.cfg.IndexUnit = index
	return g
}

// EventsOnlyIndex leaves the Requests union out of the index unit.
func (g *Generator) EventsOnlyIndex() *Generator {
	g.cfg.EventsOnlyIndex = true
	return g
}

// WithLogger sets the logger for progress and warnings.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	g.cfg.Logger = l
	return g
}

// Config returns a copy of the accumulated configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// ToDir generates every unit into dir.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(dir string) (*Result, error) {
	cfg := g.cfg
	cfg.OutDir = dir
	cfg.DryRun = false
	return Generate(context.Background(), cfg)
}

// Check compiles and formats every unit in memory without writing to disk.
// The generated content is available in Result.Files.
func (g *Generator) Check() (*Result, error) {
	cfg := g.cfg
	cfg.DryRun = true
	return Generate(context.Background(), cfg)
}
