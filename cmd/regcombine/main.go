// Command regcombine combines regex fragment trees from definition files.
//
// Usage:
//
//	regcombine combine defs/*.kdl
//	regcombine generate --out internal/patterns 'defs/**/*.{kdl,toml,json}'
//	regcombine watch --out internal/patterns 'defs/**/*.kdl'
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

func newApp() *cli.App {
	outFlag := &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Directory for generated files (defaults to the directory of each definition file)",
	}
	jobsFlag := &cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "Maximum number of definition files processed concurrently",
		Value:   runtime.GOMAXPROCS(0),
	}

	return &cli.App{
		Name:                   "regcombine",
		Usage:                  "Combine regex fragment trees into single patterns",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log wrapping and group numbering decisions to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "combine",
				Usage:     "Print the combined pattern of every definition",
				ArgsUsage: "GLOB...",
				Action:    combineCommand,
			},
			{
				Name:      "generate",
				Aliases:   []string{"gen"},
				Usage:     "Generate Go constants for every definition file",
				ArgsUsage: "GLOB...",
				Flags:     []cli.Flag{outFlag, jobsFlag},
				Action:    generateCommand,
			},
			{
				Name:      "watch",
				Usage:     "Generate, then regenerate whenever a definition file changes",
				ArgsUsage: "GLOB...",
				Flags:     []cli.Flag{outFlag, jobsFlag},
				Action:    watchCommand,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
