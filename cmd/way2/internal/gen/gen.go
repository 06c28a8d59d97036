package gen

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cyuria/way2/cmd/way2/internal/options"
	"github.com/cyuria/way2/way2gen"
)

type Cmd struct {
	options.Generation

	Out   string   `arg:"" optional:"" help:"Output directory for generated units." type:"path"`
	Roots []string `arg:"" optional:"" help:"Protocol tree roots, searched in order." type:"path"`
}

func (c *Cmd) Run(g *options.Globals) error {
	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	if c.Out != "" {
		// Resolve output directory to absolute path
		if cfg.OutDir, err = filepath.Abs(c.Out); err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
	}
	options.Roots(&cfg, c.Roots)
	c.Generation.Apply(&cfg)

	result, err := way2gen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(g.Stderr, "warning: %s\n", w)
	}
	fmt.Fprintf(g.Stdout, "wrote %d units for %d protocols to %s\n", len(result.Files), len(result.Protocols), cfg.OutDir)
	return nil
}
