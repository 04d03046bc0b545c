package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/shaulkr/ragcontent"
	raghttp "github.com/shaulkr/ragcontent/http"
	"github.com/shaulkr/ragcontent/notify"
	"github.com/shaulkr/ragcontent/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *ragcontent.Config
	Logger    *slog.Logger
	Pages     *sqlite.PageService
	Perms     ragcontent.PermissionChecker
	Filter    *ragcontent.RelevanceFilter
	Extractor ragcontent.Extractor
	Notifier  *notify.Notifier
	Server    *raghttp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to YAML config file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Serve   ServeCmd   `cmd:"" help:"Run the content API server"`
	Extract ExtractCmd `cmd:"" help:"Extract a page's content and print it as JSON"`
	Notify  NotifyCmd  `cmd:"" help:"Simulate a page change event"`
	Export  ExportCmd  `cmd:"" help:"Export all indexable pages as a JSON snapshot"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	PageID int64 `arg:"" help:"Page ID to extract"`
}

// NotifyCmd is the "notify" subcommand.
type NotifyCmd struct {
	PageID        int64  `arg:"" help:"Page ID the event is about"`
	Event         string `default:"updated" enum:"updated,deleted,moved" help:"Event type (updated, deleted, moved)"`
	FromNamespace int    `help:"Source namespace for a move event"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Output directory for the snapshot" type:"path"`
}
