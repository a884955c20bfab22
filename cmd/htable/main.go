// Command htable exercises the htable package: a guided demo and a
// configurable fill/verify benchmark.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/theflywheel/htable/internal/logger"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "htable: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "htable",
		Usage: "Chained hash table demo and benchmark",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML or JSON config file (also HTABLE_CONFIG)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error (defaults to LOG_LEVEL)",
			},
			&cli.StringFlag{
				Name:  "log-handler",
				Usage: "dev, text or json (defaults to LOG_HANDLER)",
			},
		},
		Commands: []*cli.Command{
			demoCommand(),
			benchCommand(),
		},
	}
}

func loggerFrom(cmd *cli.Command) *slog.Logger {
	opts := []logger.Opt{logger.WithWriter(cmd.Root().ErrWriter)}
	if lvl := cmd.String("log-level"); lvl != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(lvl)))
	}
	if h := cmd.String("log-handler"); h != "" {
		opts = append(opts, logger.WithHandler(logger.ParseHandler(h)))
	}
	return logger.New(opts...)
}
