// Command wnconvert normalizes the WordNet YAML sources: it reconciles
// sense identifiers against the legacy XML files, closes relation
// inverses and writes the YAML documents back. With -from xml it converts
// the legacy XML files into YAML instead.
//
// Flags:
//
//	-config    path to YAML config file (default: CONFIG_PATH or env only)
//	-phase     comma-separated phases to run: load,reconcile,save,publish (default: all)
//	-from      source format, yaml or xml (overrides config)
//	-entries   comma-separated entry buckets to write (a..z, 0)
//	-lexfiles  comma-separated lexicographer files to write
//	-dry-run   run every phase without writing files or publishing
//	-version   print the version and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/wordnet-yaml/internal/adapter/postgres"
	"github.com/heartmarshall/wordnet-yaml/internal/adapter/postgres/snapshot"
	"github.com/heartmarshall/wordnet-yaml/internal/app"
	"github.com/heartmarshall/wordnet-yaml/internal/app/convert"
	"github.com/heartmarshall/wordnet-yaml/internal/config"
	"github.com/heartmarshall/wordnet-yaml/internal/exporter"
	"github.com/heartmarshall/wordnet-yaml/internal/metric"
)

// Compile-time interface assertion.
var _ convert.SnapshotRepo = (*snapshot.Repo)(nil)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	fromFlag := flag.String("from", "", "source format: yaml or xml")
	entriesFlag := flag.String("entries", "", "comma-separated entry buckets to write")
	lexfilesFlag := flag.String("lexfiles", "", "comma-separated lexicographer files to write")
	dryRunFlag := flag.Bool("dry-run", false, "do not write files or publish")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(app.BuildVersion())
		return
	}

	if *fromFlag != "" {
		// applied before Validate so the flag is checked like the config value
		if err := os.Setenv("WN_FROM", *fromFlag); err != nil {
			log.Fatalf("set source format: %v", err)
		}
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting wnconvert", slog.String("version", app.BuildVersion()))

	phases, err := convert.ParsePhases(*phaseFlag)
	if err != nil {
		logger.Error("parse phases", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, logger, cfg, phases, convert.Options{
		Source:  cfg.Source,
		Lexicon: cfg.Lexicon.Metadata(),
		Scope: exporter.ChangeScope{
			EntryBuckets: exporter.ParseList(*entriesFlag),
			LexFiles:     exporter.ParseList(*lexfilesFlag),
		},
		DryRun: *dryRunFlag,
	}))
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, phases []string, opts convert.Options) int {
	metrics, err := metric.New()
	if err != nil {
		logger.Error("init metrics", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if cfg.Metrics.TextfilePath == "" {
			return
		}
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			logger.Warn("metrics not written", slog.String("error", err.Error()))
		}
	}()

	var repo convert.SnapshotRepo
	if cfg.Database.Enabled() {
		dbCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
		defer cancel()

		if _, err := postgres.Migrate(dbCtx, cfg.Database.DSN); err != nil {
			logger.Error("migrate database", slog.String("error", err.Error()))
			return 1
		}

		pool, err := postgres.NewPool(dbCtx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			return 1
		}
		defer pool.Close()

		repo = snapshot.New(pool, postgres.NewTxManager(pool), cfg.Database.BatchSize)
		opts.PublishTimeout = cfg.Database.Timeout
	}

	pipeline := convert.NewPipeline(logger, opts, repo, metrics)
	if err := pipeline.Run(ctx, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("pipeline completed successfully")
	return 0
}
