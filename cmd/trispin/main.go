package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./cmd/trispin <command> <flags>

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML config file",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "minimum log level (debug, info, warn, error)",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Usage: "log output format (text, json, none)",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of orbit scan workers",
	}
	memoryLimitFlag = cli.Int64Flag{
		Name:  "memory-limit",
		Usage: "hard limit in bytes for scan memory, 0 for unlimited",
	}
	storeFlag = cli.StringFlag{
		Name:  "store",
		Usage: "snapshot store kind (none, local, s3, minio)",
	}
	storePathFlag = cli.StringFlag{
		Name:  "store-path",
		Usage: "root directory of the local snapshot store",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "serve Prometheus metrics on this address while running, disabled if empty",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "trispin",
		Usage: "symmetry-reduced spin-1/2 bases and Hamiltonians on the triangular lattice",
		Flags: []cli.Flag{
			&configFlag,
			&logLevelFlag,
			&logFormatFlag,
			&workersFlag,
			&memoryLimitFlag,
			&storeFlag,
			&storePathFlag,
			&metricsAddrFlag,
		},
		Commands: []*cli.Command{
			&BasisCmd,
			&HamiltonianCmd,
			&TermsCmd,
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
