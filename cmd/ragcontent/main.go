package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/shaulkr/ragcontent"
	raggoquery "github.com/shaulkr/ragcontent/goquery"
	raghttp "github.com/shaulkr/ragcontent/http"
	"github.com/shaulkr/ragcontent/koanf"
	"github.com/shaulkr/ragcontent/notify"
	"github.com/shaulkr/ragcontent/queue"
	ragslog "github.com/shaulkr/ragcontent/slog"
	"github.com/shaulkr/ragcontent/sqlite"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the store services.
	DB *sqlite.DB

	// Queue drained on shutdown.
	Queue *queue.Memory
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Queue != nil {
		m.Queue.Close()
	}
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
		kong.Name("ragcontent"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ragcontent --help' to see available commands")
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

	cfg, err := koanf.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(cfg.DatabasePath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", cfg.DatabasePath, err)
	}
	defer m.Close()

	pages := sqlite.NewPageService(m.DB)
	props := sqlite.NewPropertyService(m.DB)
	classifier := sqlite.NewClassifier(m.DB)
	perms := sqlite.NewPermissionChecker(m.DB)

	filter := &ragcontent.RelevanceFilter{
		Config:     cfg,
		Classifier: classifier,
		Props:      props,
	}

	extractor := ragslog.NewLoggingExtractor(
		raggoquery.NewExtractor(pages, classifier), logger)

	pinger := ragslog.NewLoggingPinger(raghttp.NewPinger(cfg), logger)
	m.Queue = queue.NewMemory(pinger, logger)

	notifier := notify.New(cfg, filter,
		ragslog.NewLoggingJobQueue(m.Queue, logger), pages, logger)

	deps.Config = cfg
	deps.Logger = logger
	deps.Pages = pages
	deps.Perms = perms
	deps.Filter = filter
	deps.Extractor = extractor
	deps.Notifier = notifier
	deps.Server = raghttp.NewServer(cfg, pages, perms, filter, extractor, notifier, logger)

	return kongCtx.Run(deps)
}
