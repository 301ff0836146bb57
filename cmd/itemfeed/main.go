package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/itemfeed"
	"github.com/fwojciec/itemfeed/goquery"
	feedhttp "github.com/fwojciec/itemfeed/http"
	"github.com/fwojciec/itemfeed/pipeline"
	"github.com/fwojciec/itemfeed/render"
	"github.com/fwojciec/itemfeed/rod"
	"github.com/fwojciec/itemfeed/routes"
	feedslog "github.com/fwojciec/itemfeed/slog"
	"github.com/fwojciec/itemfeed/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database holding item history.
	DB *sqlite.DB

	// Acquisition overrides for end-to-end testing. When nil, Run creates
	// them from flags.
	Fetcher  itemfeed.Fetcher
	Payloads itemfeed.PayloadFetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("itemfeed"),
		kong.Description("Build feeds from shopping and event listing sites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'itemfeed --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = kongCtx.Command()

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	deps.Logger = logger

	registry := routes.Default()
	if cli.Descriptors != "" {
		overrides, err := routes.LoadOverridesFile(cli.Descriptors)
		if err != nil {
			return err
		}
		if err := overrides.Apply(registry, goquery.Validate); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", itemfeed.ErrorMessage(err))
			return err
		}
	}
	deps.Routes = registry

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	switch {
	case cmd == "history":
		if err := m.openDB(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.History = sqlite.NewItemService(m.DB)

	case strings.HasPrefix(cmd, "run"):
		route, err := registry.Get(cli.Run.Route)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", itemfeed.ErrorMessage(err))
			fmt.Fprintln(stderr, "Hint: run 'itemfeed list' to see available routes")
			return err
		}

		runner := &pipeline.Runner{
			Extractor: feedslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
			Renderer:  render.Renderer{},
		}

		if route.Page != nil {
			fetcher, err := m.pageFetcher(cli.Run)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --fetcher http")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer fetcher.Close()
			runner.Fetcher = feedslog.NewLoggingFetcher(fetcher, logger)
		} else {
			payloads := m.Payloads
			if payloads == nil {
				payloads = feedhttp.NewPayloadFetcher(
					feedhttp.WithTimeout(cli.Run.Timeout),
					feedhttp.WithRateLimit(cli.Run.RateLimit),
				)
			}
			runner.Payloads = feedslog.NewLoggingPayloadFetcher(payloads, logger)
		}

		if !cli.Run.NoHistory {
			if err := m.openDB(stderr); err != nil {
				return err
			}
			defer m.Close()
			runner.History = feedslog.NewLoggingItemHistory(sqlite.NewItemService(m.DB), logger)
		}
		deps.Runner = runner
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(stderr io.Writer) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ITEMFEED_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return nil
}

func (m *Main) pageFetcher(c RunCmd) (itemfeed.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if c.Fetcher == "http" {
		return feedhttp.NewFetcher(feedhttp.WithTimeout(c.Timeout)), nil
	}
	f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func defaultDBPath() string {
	if path := os.Getenv("ITEMFEED_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "itemfeed.db"
	}
	dir := filepath.Join(home, ".itemfeed")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "history.db")
}
