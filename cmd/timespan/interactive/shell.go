// Package interactive provides the interactive shell for timespan.
package interactive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/mash-protocol/timespan/cmd/timespan/commands"
	"github.com/mash-protocol/timespan/pkg/catalog"
	"github.com/mash-protocol/timespan/pkg/timerange"
)

// Config holds shell settings.
type Config struct {
	// HistoryFile persists command history across sessions when set.
	HistoryFile string

	// CatalogPath is loaded at startup when set.
	CatalogPath string

	// Stdin and Stdout replace the terminal when set.
	Stdin  io.ReadCloser
	Stdout io.Writer
}

// Shell is the interactive command loop.
type Shell struct {
	reg     *timerange.Registry
	config  Config
	logger  *slog.Logger
	session string

	catalog     *catalog.Catalog
	catalogPath string
}

// New creates a shell. Every log record of the shell carries the session id.
func New(reg *timerange.Registry, cfg Config, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	session := uuid.New().String()
	return &Shell{
		reg:     reg,
		config:  cfg,
		logger:  logger.With(slog.String("session", session)),
		session: session,
	}
}

// Session returns the session id.
func (s *Shell) Session() string {
	return s.session
}

// Run starts the interactive command loop. It returns nil when the user
// quits or input ends, and ctx.Err() once ctx is cancelled, even while
// waiting for input.
func (s *Shell) Run(ctx context.Context) error {
	rlConfig := &readline.Config{
		Prompt:          "timespan> ",
		HistoryFile:     s.config.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           s.config.Stdin,
		Stdout:          s.config.Stdout,
	}
	if s.config.Stdin != nil {
		rlConfig.FuncIsTerminal = func() bool { return false }
	}
	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}

	var closeOnce sync.Once
	closeReadline := func() {
		closeOnce.Do(func() { rl.Close() })
	}
	defer closeReadline()

	// Closing readline unblocks a pending Readline call.
	stop := context.AfterFunc(ctx, closeReadline)
	defer stop()

	s.logger.Info("shell started")
	defer s.logger.Info("shell stopped")

	if s.config.CatalogPath != "" {
		s.cmdLoad(rl.Stdout(), []string{s.config.CatalogPath})
	}

	s.printHelp(rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}

		if quit := s.Execute(line, rl.Stdout()); quit {
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}
	}
}

// Execute runs a single command line and writes its output to w. It
// reports whether the user asked to quit.
func (s *Shell) Execute(line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	s.logger.Debug("command", slog.String("cmd", cmd), slog.Int("args", len(args)))

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp(w)

	case "parse", "p":
		err = s.withLiterals(args, 1, "parse <literal>", func(lits []string) error {
			return commands.RunParse(s.reg, lits[0], w)
		})

	case "convert", "c":
		err = s.withLiterals(args, 2, "convert <duration> <UNIT>", func(lits []string) error {
			return commands.RunConvert(lits[0], lits[1], w)
		})

	case "contains":
		err = s.withLiterals(args, 2, "contains <range> <value> <UNIT>", func(lits []string) error {
			return commands.RunContains(s.reg, lits[0], lits[1], w)
		})

	case "intersect", "x":
		err = s.withLiterals(args, 2, "intersect <range> <range>", func(lits []string) error {
			return commands.RunIntersect(s.reg, lits[0], lits[1], w)
		})

	case "encode", "e":
		err = s.withLiterals(args, 1, "encode <literal>", func(lits []string) error {
			return commands.RunEncode(s.reg, lits[0], w)
		})

	case "decode", "d":
		if len(args) != 1 {
			fmt.Fprintln(w, "Usage: decode <hex>")
			return false
		}
		err = commands.RunDecode(s.reg, args[0], w)

	case "load":
		s.cmdLoad(w, args)

	case "names", "ls":
		s.cmdNames(w)

	case "show":
		s.cmdShow(w, args)

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		s.logger.Debug("command failed", slog.String("cmd", cmd), slog.Any("error", err))
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return false
}

// withLiterals resolves catalog names and groups args into exactly n
// literals before calling fn.
func (s *Shell) withLiterals(args []string, n int, usage string, fn func([]string) error) error {
	lits := commands.Literals(s.resolveNames(args))
	if len(lits) != n {
		return fmt.Errorf("usage: %s", usage)
	}
	return fn(lits)
}

// resolveNames replaces "@name" arguments with the catalog literal of that
// name.
func (s *Shell) resolveNames(args []string) []string {
	if s.catalog == nil {
		return args
	}
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = arg
		name, ok := strings.CutPrefix(arg, "@")
		if !ok {
			continue
		}
		if tr, err := s.catalog.Range(name); err == nil {
			out[i] = tr.String()
		} else if d, err := s.catalog.Duration(name); err == nil {
			out[i] = d.String()
		}
	}
	return out
}

func (s *Shell) cmdLoad(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: load <catalog.yaml>")
		return
	}

	c, err := catalog.LoadFile(args[0], s.reg)
	if err != nil {
		s.logger.Warn("catalog load failed", slog.String("path", args[0]), slog.Any("error", err))
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	s.catalog = c
	s.catalogPath = args[0]
	s.logger.Info("catalog loaded",
		slog.String("path", args[0]),
		slog.Int("durations", len(c.DurationNames())),
		slog.Int("ranges", len(c.RangeNames())))
	fmt.Fprintf(w, "Loaded %s: %d durations, %d ranges\n",
		args[0], len(c.DurationNames()), len(c.RangeNames()))
}

func (s *Shell) cmdNames(w io.Writer) {
	if s.catalog == nil {
		fmt.Fprintln(w, "No catalog loaded (use 'load <file>')")
		return
	}

	fmt.Fprintf(w, "Catalog %s\n", s.catalogPath)
	for _, name := range s.catalog.DurationNames() {
		d, _ := s.catalog.Duration(name)
		fmt.Fprintf(w, "  @%-18s %s\n", name, d)
	}
	for _, name := range s.catalog.RangeNames() {
		tr, _ := s.catalog.Range(name)
		fmt.Fprintf(w, "  @%-18s %s\n", name, tr)
	}
}

func (s *Shell) cmdShow(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: show <name>")
		return
	}
	if s.catalog == nil {
		fmt.Fprintln(w, "No catalog loaded (use 'load <file>')")
		return
	}

	name := strings.TrimPrefix(args[0], "@")
	if d, err := s.catalog.Duration(name); err == nil {
		fmt.Fprintf(w, "%s = %s\n", name, d)
		return
	}
	tr, err := s.catalog.Range(name)
	if err != nil {
		fmt.Fprintf(w, "Unknown name: %s\n", name)
		return
	}
	fmt.Fprintf(w, "%s = %s (%s)\n", name, tr, tr.Shape())

	overlaps, _ := s.catalog.Intersecting(name)
	if len(overlaps) > 0 {
		fmt.Fprintf(w, "  intersects: %s\n", strings.Join(overlaps, ", "))
	}
}

func (s *Shell) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Timespan Commands:
  Values:
    parse <literal>              - Parse a duration or range literal
    convert <duration> <UNIT>    - Convert a duration to another unit
    contains <range> <v> <UNIT>  - Check whether a point lies in a range
    intersect <range> <range>    - Intersect two ranges

  Encoding:
    encode <literal>             - Print the CBOR encoding as hex
    decode <hex>                 - Decode a CBOR value

  Catalog:
    load <file>                  - Load a YAML catalog
    names                        - List catalog entries (usable as @name)
    show <name>                  - Show a catalog entry

  Other:
    help                         - Show this help
    quit                         - Exit`)
}
