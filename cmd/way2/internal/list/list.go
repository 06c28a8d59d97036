package list

import (
	"fmt"

	"github.com/cyuria/way2/cmd/way2/internal/options"
	"github.com/cyuria/way2/internal/discover"
)

type Cmd struct {
	Roots []string `arg:"" optional:"" help:"Protocol tree roots, searched in order." type:"path"`
}

func (c *Cmd) Run(g *options.Globals) error {
	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	options.Roots(&cfg, c.Roots)
	if len(cfg.Roots) == 0 {
		return fmt.Errorf("no protocol roots given")
	}

	docs, err := discover.Find(cfg.Roots...)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	for _, d := range docs {
		fmt.Fprintf(g.Stdout, "%-8s %s\n", d.Category, d.Path)
	}
	return nil
}
