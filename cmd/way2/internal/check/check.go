package check

import (
	"context"
	"fmt"

	"github.com/cyuria/way2/cmd/way2/internal/options"
	"github.com/cyuria/way2/way2gen"
)

type Cmd struct {
	options.Generation

	Roots []string `arg:"" optional:"" help:"Protocol tree roots, searched in order." type:"path"`
}

func (c *Cmd) Run(g *options.Globals) error {
	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	options.Roots(&cfg, c.Roots)
	c.Generation.Apply(&cfg)
	cfg.DryRun = true

	result, err := way2gen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(g.Stderr, "warning: %s\n", w)
	}
	fmt.Fprintf(g.Stdout, "✓ %d documents, %d protocols, %d interfaces\n",
		len(result.Documents), len(result.Protocols), result.Interfaces)
	fmt.Fprintf(g.Stdout, "✓ %d units compiled\n", len(result.Files))
	fmt.Fprintln(g.Stdout, "✓ All enum references resolved")
	return nil
}
