package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fleetviz/internal/config"
	"fleetviz/internal/database"
	"fleetviz/internal/display"
	"fleetviz/internal/models"
	"fleetviz/internal/pipeline"
	"fleetviz/internal/render"
)

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-config file] <command> [-out file.png] [input.csv]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  modes   stacked time-in-mode chart per vehicle type (default input %s)\n", pipeline.DefaultModesInput)
	fmt.Fprintf(os.Stderr, "  stats   2x3 dashboard of per-type statistics (default input %s)\n", pipeline.DefaultStatsInput)
	fmt.Fprintf(os.Stderr, "  runs    list archived runs, or re-render one with -show id (needs archive.db_path)\n\n")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	if *configPath != "" {
		os.Setenv("FLEETVIZ_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		// Logger isn't initialized yet
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	if err := run(cfg, flag.Arg(0), flag.Args()[1:]); err != nil {
		slog.Error("Run failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, command string, args []string) error {
	if command == "runs" {
		return runArchive(cfg, args)
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	out := fs.String("out", cfg.OutputPath, "Write the chart to this PNG file instead of opening a window")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	input := fs.Arg(0)

	var sink pipeline.Sink = display.Window{}
	if *out != "" {
		sink = display.File{Path: *out}
	}

	var runs database.RunRepository
	if cfg.ArchivePath != "" {
		db, err := database.New(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to initialize archive: %w", err)
		}
		defer db.Close()
		runs = db.Runs()
	}

	switch command {
	case "modes":
		p := &pipeline.Modes{
			Sink:    sink,
			Options: modeOptions(cfg),
		}
		if runs != nil {
			p.Archive = runs
		}
		return p.Run(input)
	case "stats":
		p := &pipeline.Stats{
			Sink:    sink,
			Options: statsOptions(cfg),
		}
		if runs != nil {
			p.Archive = runs
		}
		return p.Run(input)
	default:
		return fmt.Errorf("unknown command %q (must be modes, stats or runs)", command)
	}
}

// runArchive lists or replays runs stored in the archive database
func runArchive(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	pipelineName := fs.String("pipeline", models.PipelineModes, "Pipeline to list (modes or stats)")
	limit := fs.Int("limit", 10, "Maximum number of runs to list")
	show := fs.String("show", "", "Re-render the run with this id instead of listing")
	out := fs.String("out", cfg.OutputPath, "Write the replayed chart to this PNG file instead of opening a window")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.ArchivePath == "" {
		return fmt.Errorf("runs needs archive.db_path (or FLEETVIZ_ARCHIVE_DB_PATH) to be set")
	}

	db, err := database.New(cfg.ArchivePath)
	if err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}
	defer db.Close()

	if *show == "" {
		if *limit <= 0 {
			return fmt.Errorf("limit must be greater than 0")
		}
		return pipeline.ListRuns(os.Stdout, db.Runs(), *pipelineName, *limit)
	}

	var sink pipeline.Sink = display.Window{}
	if *out != "" {
		sink = display.File{Path: *out}
	}

	p := &pipeline.Replay{
		Runs:         db.Runs(),
		Sink:         sink,
		ModeOptions:  modeOptions(cfg),
		StatsOptions: statsOptions(cfg),
	}
	return p.Run(*show)
}

func modeOptions(cfg *config.Config) render.Options {
	return render.Options{Width: cfg.Render.ModesWidth, Height: cfg.Render.ModesHeight, DPI: cfg.Render.DPI}
}

func statsOptions(cfg *config.Config) render.Options {
	return render.Options{Width: cfg.Render.StatsWidth, Height: cfg.Render.StatsHeight, DPI: cfg.Render.DPI}
}
