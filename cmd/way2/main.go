package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cyuria/way2/cmd/way2/internal/check"
	"github.com/cyuria/way2/cmd/way2/internal/gen"
	"github.com/cyuria/way2/cmd/way2/internal/list"
	"github.com/cyuria/way2/cmd/way2/internal/options"
)

type CLI struct {
	options.Globals

	Gen     gen.Cmd    `cmd:"" default:"withargs" help:"Generate Zig declarations (default command)."`
	Check   check.Cmd  `cmd:"" help:"Compile every unit in memory without writing files."`
	List    list.Cmd   `cmd:"" help:"List the protocol documents that would be compiled."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *options.Globals) error {
	fmt.Fprintln(g.Stdout, Version())
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args and executes the selected command, returning the
// process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cli := &CLI{}
	cli.Stdout, cli.Stderr = stdout, stderr

	exitCode := -1
	parser, err := kong.New(cli,
		kong.Name("way2"),
		kong.Description("Compile Wayland protocol XML documents into Zig declarations."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "way2: %v\n", err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help and friends.
		return exitCode
	}
	if err != nil {
		parser.Errorf("%s", err)
		if perr, ok := err.(*kong.ParseError); ok {
			_ = perr.Context.PrintUsage(false)
		}
		return 1
	}

	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintf(stderr, "way2: error: %v\n", err)
		return 1
	}
	return 0
}
