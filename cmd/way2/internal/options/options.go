// Package options holds the flags shared by way2 subcommands and turns
// them into a way2gen configuration.
package options

import (
	"io"
	"log/slog"
	"strings"

	"github.com/cyuria/way2/way2gen"
	"github.com/cyuria/way2/way2gen/provider"
)

// Globals are the flags accepted by every subcommand.
type Globals struct {
	Config   string `help:"TOML configuration file." short:"c" type:"existingfile"`
	LogLevel string `help:"Log level: debug, info, warn or error." default:"warn" enum:"debug,info,warn,error" name:"log-level"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

// Logger returns a text logger on Stderr at the requested level.
func (g *Globals) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: level}))
}

// LoadConfig returns the configuration file's settings, or the defaults
// when no file was given, with the logger attached.
func (g *Globals) LoadConfig() (way2gen.Config, error) {
	cfg := way2gen.DefaultConfig()
	if g.Config != "" {
		var err error
		if cfg, err = way2gen.LoadConfigFile(g.Config); err != nil {
			return way2gen.Config{}, err
		}
	}
	cfg.Logger = g.Logger()
	return cfg, nil
}

// Generation are the flags of subcommands that compile units.
// Flags left unset keep the configuration file's values.
type Generation struct {
	NoFormat        bool     `help:"Write units exactly as emitted, without the formatter." name:"no-format"`
	Formatter       string   `help:"Formatter command line (default: zig fmt --stdin)." placeholder:"CMD"`
	OnMismatch      string   `help:"What to do with XML files that are not protocols: skip, warn or error." name:"on-mismatch" placeholder:"POLICY"`
	SkipInterface   []string `help:"Interface to leave out of the output. Repeatable." name:"skip-interface" placeholder:"NAME"`
	EventsOnlyIndex bool     `help:"Leave the Requests union out of the index unit." name:"events-only-index"`
}

// Apply overlays the flags that were set onto cfg.
func (o *Generation) Apply(cfg *way2gen.Config) {
	if o.NoFormat {
		cfg.NoFormat = true
	}
	if fields := strings.Fields(o.Formatter); len(fields) > 0 {
		cfg.Formatter = fields
	}
	if o.OnMismatch != "" {
		cfg.OnMismatch = provider.MismatchPolicy(o.OnMismatch)
	}
	if len(o.SkipInterface) > 0 {
		cfg.SkipInterfaces = append(cfg.SkipInterfaces, o.SkipInterface...)
	}
	if o.EventsOnlyIndex {
		cfg.EventsOnlyIndex = true
	}
}

// Roots replaces the configured roots when any were given on the command
// line.
func Roots(cfg *way2gen.Config, roots []string) {
	if len(roots) > 0 {
		cfg.Roots = roots
	}
}
