package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/mdlinkcheck/internal/checker"
	"git.home.luguber.info/inful/mdlinkcheck/internal/config"
	"git.home.luguber.info/inful/mdlinkcheck/internal/report"
	"git.home.luguber.info/inful/mdlinkcheck/internal/watch"
	"github.com/alecthomas/kong"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:".mdlinkcheck.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	Quiet   bool   `short:"q" help:"Only log errors"`

	Check struct {
		Input             string `arg:"" help:"Input file or directory"`
		IgnoreHeaderLinks bool   `help:"Do not check that headers are valid in links (e.g. 'document.md#some-header')"`
		DisallowDirLinks  bool   `help:"Only accept links to files"`
		Format            string `short:"f" help:"Output format (text or json)"`
	} `cmd:"" default:"withargs" help:"Check a Markdown file or directory tree for broken links"`

	Watch struct {
		Input             string `arg:"" help:"Directory to watch"`
		IgnoreHeaderLinks bool   `help:"Do not check that headers are valid in links"`
		DisallowDirLinks  bool   `help:"Only accept links to files"`
	} `cmd:"" help:"Re-run the check whenever Markdown files change"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mdlinkcheck"),
		kong.Description("Detect broken links in Markdown files"))

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	if CLI.Quiet {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(2)
	}

	switch ctx.Command() {
	case "check <input>":
		os.Exit(runCheck(cfg))
	case "watch <input>":
		if err := runWatch(cfg); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(2)
		}
	}
}

// runCheck performs one scan and returns the process exit code: 0 for a clean
// tree, 1 when broken links were found, 2 on I/O failure.
func runCheck(cfg *config.Config) int {
	input := CLI.Check.Input
	if _, err := os.Stat(input); os.IsNotExist(err) {
		slog.Error("Input path not found", "path", input)
		return 2
	}

	opts := checker.Options{
		IgnoreHeaderLinks: CLI.Check.IgnoreHeaderLinks || cfg.IgnoreHeaderLinks,
		DisallowDirLinks:  CLI.Check.DisallowDirLinks || cfg.DisallowDirLinks,
	}
	chk := checker.New(opts)

	links, err := chk.CheckPath(input)
	if err != nil {
		slog.Error("IO error", "error", err)
		return 2
	}

	format := CLI.Check.Format
	if format == "" {
		format = cfg.Format
	}
	formatter := report.NewFormatter(format, report.ColorSupported())
	result := &report.Result{Path: input, FilesChecked: chk.FilesChecked(), Links: links}
	if err := formatter.Format(os.Stdout, result); err != nil {
		slog.Error("Failed to render report", "error", err)
		return 2
	}

	if result.HasErrors() {
		return 1
	}
	return 0
}

func runWatch(cfg *config.Config) error {
	input := CLI.Watch.Input
	info, err := os.Stat(input)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		slog.Error("Watch input must be a directory", "path", input)
		os.Exit(2)
	}

	opts := checker.Options{
		IgnoreHeaderLinks: CLI.Watch.IgnoreHeaderLinks || cfg.IgnoreHeaderLinks,
		DisallowDirLinks:  CLI.Watch.DisallowDirLinks || cfg.DisallowDirLinks,
	}

	w, err := watch.New(input, func(runID string) {
		// A fresh checker per run: slug caches must not outlive a scan.
		chk := checker.New(opts)
		links, err := chk.CheckPath(input)
		if err != nil {
			slog.Error("Scan failed", "run_id", runID, "error", err)
			return
		}
		for _, link := range links {
			slog.Error("Broken link", "run_id", runID, "file", link.File, "line", link.Line, "error", link.Message)
		}
		if len(links) == 0 {
			slog.Info("Scan clean", "run_id", runID, "files", chk.FilesChecked())
		} else {
			slog.Warn("Scan found broken links", "run_id", runID, "count", len(links), "files", chk.FilesChecked())
		}
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return w.Run(ctx)
}
