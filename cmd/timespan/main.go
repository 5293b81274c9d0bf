// Command timespan parses, converts and compares durations and time ranges.
//
// Usage:
//
//	timespan <command> [flags] <args>
//
// Commands:
//
//	parse      Parse a duration or range literal
//	convert    Convert a duration to another unit
//	contains   Check whether a point lies within a range
//	intersect  Intersect two ranges
//	encode     Print the CBOR encoding of a literal as hex
//	decode     Decode a hex CBOR value
//	check      Validate a YAML catalog
//	shell      Start the interactive shell
//
// Examples:
//
//	timespan parse "[100-200] MINUTES"
//	timespan convert 3600 SECONDS HOURS
//	timespan contains "[0-10] MINUTES" 120 SECONDS
//	timespan intersect "[0-10] MINUTES" "[300-] SECONDS"
//	timespan check -catalog windows.yaml
//
// Environment:
//
//	TIMESPAN_LOG_LEVEL  debug, info, warn or error (default warn)
//	TIMESPAN_CATALOG    default catalog for check and shell
//	TIMESPAN_HISTORY    shell history file
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mash-protocol/timespan/cmd/timespan/commands"
	"github.com/mash-protocol/timespan/cmd/timespan/interactive"
	"github.com/mash-protocol/timespan/pkg/timerange"
)

const usage = `timespan - durations and time ranges

Usage:
  timespan <command> [flags] <args>

Commands:
  parse <literal>                  Parse a duration or range literal
  convert <duration> <UNIT>        Convert a duration to another unit
  contains <range> <value> <UNIT>  Check whether a point lies within a range
  intersect <range> <range>        Intersect two ranges
  encode <literal>                 Print the CBOR encoding of a literal as hex
  decode <hex>                     Decode a hex CBOR value
  check [-catalog file]            Validate a YAML catalog
  shell [-catalog file]            Start the interactive shell

Literals:
  duration  "<count> <UNIT>"         e.g. "30 SECONDS"
  range     "[<start>-<end>] <UNIT>" e.g. "[100-] MINUTES"

Use "timespan <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}
	logger, err := setupLogging(cfg.LogLevel, os.Stderr)
	if err != nil {
		fatal(err)
	}
	reg := timerange.NewRegistry(timerange.WithLogger(logger))

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "parse":
		runLiterals("parse", "<literal>", args, 1, func(lits []string) error {
			return commands.RunParse(reg, lits[0], os.Stdout)
		})
	case "convert":
		runLiterals("convert", "<duration> <UNIT>", args, 2, func(lits []string) error {
			return commands.RunConvert(lits[0], lits[1], os.Stdout)
		})
	case "contains":
		runLiterals("contains", "<range> <value> <UNIT>", args, 2, func(lits []string) error {
			return commands.RunContains(reg, lits[0], lits[1], os.Stdout)
		})
	case "intersect":
		runLiterals("intersect", "<range> <range>", args, 2, func(lits []string) error {
			return commands.RunIntersect(reg, lits[0], lits[1], os.Stdout)
		})
	case "encode":
		runLiterals("encode", "<literal>", args, 1, func(lits []string) error {
			return commands.RunEncode(reg, lits[0], os.Stdout)
		})
	case "decode":
		runDecode(reg, args)
	case "check":
		runCheck(reg, cfg, args)
	case "shell":
		runShell(reg, cfg, logger, args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// runLiterals parses the flags of a literal-taking command, groups the
// remaining arguments into n literals and runs fn.
func runLiterals(name, synopsis string, args []string, n int, fn func([]string) error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  timespan %s %s\n", name, synopsis)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	lits := commands.Literals(fs.Args())
	if len(lits) != n {
		fmt.Fprintf(os.Stderr, "Error: expected %s\n", synopsis)
		fs.Usage()
		os.Exit(1)
	}

	if err := fn(lits); err != nil {
		fatal(err)
	}
}

func runDecode(reg *timerange.Registry, args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  timespan decode <hex>\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: hex value required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunDecode(reg, fs.Arg(0), os.Stdout); err != nil {
		fatal(err)
	}
}

func runCheck(reg *timerange.Registry, cfg Config, args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `timespan check - Validate a YAML catalog

Usage:
  timespan check [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	path := fs.String("catalog", cfg.Catalog, "Catalog file (default $TIMESPAN_CATALOG)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *path == "" {
		fmt.Fprintln(os.Stderr, "Error: catalog file required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunCheck(reg, *path, os.Stdout); err != nil {
		fatal(err)
	}
}

func runShell(reg *timerange.Registry, cfg Config, logger *slog.Logger, args []string) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `timespan shell - Start the interactive shell

Usage:
  timespan shell [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	path := fs.String("catalog", cfg.Catalog, "Catalog file loaded at startup")
	history := fs.String("history", cfg.History, "History file")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	shell := interactive.New(reg, interactive.Config{
		HistoryFile: *history,
		CatalogPath: *path,
	}, logger)
	if err := shell.Run(ctx); err != nil && ctx.Err() == nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
