package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/itemfeed"
	"github.com/fwojciec/itemfeed/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Routes  itemfeed.RouteRegistry
	Runner  *pipeline.Runner
	History itemfeed.ItemHistory
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool   `short:"v" help:"Log fetches and extraction to stderr"`
	Descriptors string `short:"d" type:"path" help:"YAML file replacing the selectors of page routes"`
	DB          string `name:"db" env:"ITEMFEED_DB" help:"Item history database path"`

	List    ListCmd    `cmd:"" help:"List available routes"`
	Run     RunCmd     `cmd:"" help:"Build the feed of a route"`
	History HistoryCmd `cmd:"" help:"Show recently updated items"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Route     string        `arg:"" help:"Route name"`
	Params    []string      `arg:"" optional:"" help:"Route parameters, in order"`
	Format    string        `short:"f" enum:"rss,json,markdown" default:"rss" help:"Output format (rss, json, markdown)"`
	Fetcher   string        `enum:"rod,http" default:"rod" help:"Page fetcher (rod renders JavaScript, http does not)"`
	Timeout   time.Duration `short:"t" default:"10s" help:"Default fetch timeout"`
	RateLimit float64       `default:"1" help:"API requests per second per host"`
	NoHistory bool          `help:"Do not record items in the history database"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Since time.Duration `help:"Only items updated within this duration (e.g. 24h)"`
	Limit int           `short:"n" default:"20" help:"Maximum number of items"`
}
