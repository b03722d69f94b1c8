// Package convert orchestrates a conversion run: load the sources,
// reconcile identifiers, save the YAML documents and optionally publish a
// snapshot to PostgreSQL.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/wordnet-yaml/internal/config"
	"github.com/heartmarshall/wordnet-yaml/internal/domain"
	"github.com/heartmarshall/wordnet-yaml/internal/exporter"
	"github.com/heartmarshall/wordnet-yaml/internal/importer"
	"github.com/heartmarshall/wordnet-yaml/internal/lmf"
	"github.com/heartmarshall/wordnet-yaml/internal/metric"
	"github.com/heartmarshall/wordnet-yaml/internal/reconcile"
	"github.com/heartmarshall/wordnet-yaml/internal/wnyaml"
)

// Phase names in canonical execution order.
const (
	PhaseLoad      = "load"
	PhaseReconcile = "reconcile"
	PhaseSave      = "save"
	PhasePublish   = "publish"
)

var allPhases = []string{PhaseLoad, PhaseReconcile, PhaseSave, PhasePublish}

// requires lists the phases a phase cannot run without.
var requires = map[string][]string{
	PhaseReconcile: {PhaseLoad},
	PhaseSave:      {PhaseReconcile},
	PhasePublish:   {PhaseReconcile},
}

// SnapshotRepo is the publish target. Implemented by snapshot.Repo.
type SnapshotRepo interface {
	Latest(ctx context.Context, lexiconID string) (*domain.Snapshot, error)
	Save(ctx context.Context, lex *domain.Lexicon, digest string) (*domain.Snapshot, error)
}

// Options configures a run.
type Options struct {
	Source  config.SourceConfig
	Lexicon domain.Metadata
	Scope   exporter.ChangeScope
	DryRun  bool
	// PublishTimeout bounds the snapshot lookup and save. Zero means no limit.
	PublishTimeout time.Duration
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Processed int
	Written   int
	Unchanged int
	Skipped   int
	Warnings  int
	Duration  time.Duration
	Err       error
}

// Pipeline runs the conversion phases in order. A failed phase stops the
// run, so no document is written from a lexicon that failed to reconcile.
type Pipeline struct {
	log     *slog.Logger
	opts    Options
	codec   domain.Codec
	repo    SnapshotRepo
	metrics *metric.Metrics
	results map[string]PhaseResult

	lex     *domain.Lexicon
	members domain.MemberOrders
	frames  *domain.FrameTable
	legacy  *reconcile.LegacyIndex
	docs    *exporter.Documents
}

// NewPipeline creates a Pipeline. repo and metrics may be nil; without a
// repo the publish phase is skipped.
func NewPipeline(log *slog.Logger, opts Options, repo SnapshotRepo, metrics *metric.Metrics) *Pipeline {
	return &Pipeline{
		log:     log,
		opts:    opts,
		codec:   domain.NewCodec(opts.Lexicon.ID),
		repo:    repo,
		metrics: metrics,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase failed.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Lexicon returns the lexicon built by the load phase.
func (p *Pipeline) Lexicon() *domain.Lexicon {
	return p.lex
}

// ParsePhases splits a comma separated phase list. Unknown names are an
// error; an empty string selects every phase.
func ParsePhases(s string) ([]string, error) {
	var out []string
	for _, ph := range strings.Split(s, ",") {
		ph = strings.TrimSpace(ph)
		if ph == "" {
			continue
		}
		if !slices.Contains(allPhases, ph) {
			return nil, fmt.Errorf("unknown phase %q (want one of %s)", ph, strings.Join(allPhases, ","))
		}
		out = append(out, ph)
	}
	return out, nil
}

// plan returns the phases to run: the selection plus everything it
// requires, in canonical order.
func plan(selected []string) []string {
	if len(selected) == 0 {
		return allPhases
	}
	want := make(map[string]bool, len(allPhases))
	var add func(string)
	add = func(ph string) {
		if want[ph] {
			return
		}
		want[ph] = true
		for _, dep := range requires[ph] {
			add(dep)
		}
	}
	for _, ph := range selected {
		add(ph)
	}

	var out []string
	for _, ph := range allPhases {
		if want[ph] {
			out = append(out, ph)
		}
	}
	return out
}

// Run executes the pipeline. If phases is non-empty, only the listed
// phases and their prerequisites run.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun := plan(phases)

	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseLoad:
			result = p.runLoad(ctx)
		case PhaseReconcile:
			result = p.runReconcile()
		case PhaseSave:
			result = p.runSave()
		case PhasePublish:
			result = p.runPublish(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result
		if p.metrics != nil {
			p.metrics.ObservePhase(phase, result.Duration, result.Err != nil)
		}

		if result.Err != nil {
			p.log.Error("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return fmt.Errorf("%s: %w", phase, result.Err)
		}
		p.log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("processed", result.Processed),
			slog.Int("written", result.Written),
			slog.Int("unchanged", result.Unchanged),
			slog.Int("skipped", result.Skipped),
			slog.Int("warnings", result.Warnings),
			slog.Duration("duration", result.Duration),
		)
	}

	if p.metrics != nil {
		p.metrics.MarkSuccess(time.Now())
	}
	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

// runLoad reads the lexicon from the configured source and, for YAML
// sources, indexes the legacy files used as ordinal authority.
func (p *Pipeline) runLoad(ctx context.Context) PhaseResult {
	if p.opts.Source.From == config.FromXML {
		return p.loadXML(ctx)
	}

	src, err := wnyaml.ReadDir(p.opts.Source.YAMLDir)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("read yaml: %w", err)}
	}
	res, err := importer.New(p.codec, p.log).Import(p.opts.Lexicon, src)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("import yaml: %w", err)}
	}
	p.lex, p.members, p.frames = res.Lexicon, res.Members, res.Frames

	legacy, err := p.loadLegacy(ctx)
	if err != nil {
		return PhaseResult{Err: err}
	}
	p.legacy = legacy

	p.log.Info("yaml loaded",
		slog.Int("entries", res.Stats.Entries),
		slog.Int("senses", res.Stats.Senses),
		slog.Int("synsets", res.Stats.Synsets),
	)
	p.observeLexicon()
	return PhaseResult{
		Processed: res.Stats.Entries + res.Stats.Synsets,
		Skipped:   res.Stats.DroppedRelations,
	}
}

func (p *Pipeline) loadLegacy(ctx context.Context) (*reconcile.LegacyIndex, error) {
	dir := p.opts.Source.XMLDir
	if dir == "" {
		return reconcile.EmptyLegacyIndex(), nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		p.log.Warn("legacy xml directory not found, ordinals come from member order only",
			slog.String("dir", dir),
		)
		return reconcile.EmptyLegacyIndex(), nil
	}

	files, err := lmf.ParseDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("read legacy xml: %w", err)
	}
	p.log.Info("legacy xml indexed", slog.Int("files", len(files)))
	return reconcile.NewLegacyIndex(files), nil
}

func (p *Pipeline) loadXML(ctx context.Context) PhaseResult {
	files, err := lmf.ParseDir(ctx, p.opts.Source.XMLDir)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("read xml: %w", err)}
	}
	if len(files) == 0 {
		return PhaseResult{Err: fmt.Errorf("no %s files in %s: %w", lmf.FilePattern, p.opts.Source.XMLDir, domain.ErrNotFound)}
	}
	lex, err := lmf.Merge(p.opts.Lexicon, files)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("merge xml: %w", err)}
	}
	p.lex = lex
	p.frames = domain.DefaultFrameTable()

	p.log.Info("xml loaded",
		slog.Int("files", len(files)),
		slog.Int("entries", len(lex.Entries())),
		slog.Int("synsets", len(lex.Synsets())),
	)
	p.observeLexicon()
	return PhaseResult{Processed: len(lex.Entries()) + len(lex.Synsets())}
}

func (p *Pipeline) observeLexicon() {
	if p.metrics == nil {
		return
	}
	p.metrics.Senses.Set(float64(p.lex.SenseCount()))
	p.metrics.Synsets.Set(float64(len(p.lex.Synsets())))
}

// runReconcile assigns final sense ids. Legacy XML already carries final
// ids, so a lexicon loaded from it passes through.
func (p *Pipeline) runReconcile() PhaseResult {
	if p.opts.Source.From == config.FromXML {
		return PhaseResult{Skipped: p.lex.SenseCount()}
	}

	stats, err := reconcile.New(p.codec, p.log).Reconcile(p.lex, p.members, p.legacy)
	if err != nil {
		return PhaseResult{Err: err}
	}

	if p.metrics != nil {
		p.metrics.Overridden.Set(float64(stats.Overridden))
		p.metrics.Inverses.WithLabelValues("sense").Set(float64(stats.SenseInverses))
		p.metrics.Inverses.WithLabelValues("synset").Set(float64(stats.SynsetInverses))
	}
	return PhaseResult{
		Processed: stats.Senses,
		Written:   stats.SenseInverses + stats.SynsetInverses,
		Warnings:  stats.DroppedLinks,
	}
}

// build renders the documents once per run.
func (p *Pipeline) build() (*exporter.Documents, int, error) {
	if p.docs != nil {
		return p.docs, 0, nil
	}
	res, err := exporter.New(p.codec, p.frames, p.log).Build(p.lex)
	if err != nil {
		return nil, 0, fmt.Errorf("build documents: %w", err)
	}
	if p.metrics != nil {
		p.metrics.Duplicates.Set(float64(len(res.Duplicates)))
	}
	p.docs = res.Documents
	return p.docs, len(res.Duplicates), nil
}

// runSave writes the documents in scope. In dry-run mode everything is
// rendered but nothing is written.
func (p *Pipeline) runSave() PhaseResult {
	docs, dups, err := p.build()
	if err != nil {
		return PhaseResult{Err: err}
	}

	if p.opts.DryRun {
		files, skipped, err := exporter.Render(docs, p.opts.Scope)
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("render: %w", err)}
		}
		p.log.Info("dry run, nothing written", slog.Int("documents", len(files)))
		return PhaseResult{Processed: len(files), Skipped: skipped, Warnings: dups}
	}

	stats, err := exporter.Write(p.opts.Source.Output(), docs, p.opts.Scope)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("write: %w", err)}
	}
	if p.metrics != nil {
		p.metrics.Files.WithLabelValues("written").Add(float64(stats.Written))
		p.metrics.Files.WithLabelValues("unchanged").Add(float64(stats.Unchanged))
		p.metrics.Files.WithLabelValues("out_of_scope").Add(float64(stats.OutOfScope))
	}
	return PhaseResult{
		Processed: stats.Written + stats.Unchanged,
		Written:   stats.Written,
		Unchanged: stats.Unchanged,
		Skipped:   stats.OutOfScope,
		Warnings:  dups,
	}
}

// runPublish stores the lexicon as a new snapshot unless the newest
// snapshot was taken from identical documents.
func (p *Pipeline) runPublish(ctx context.Context) PhaseResult {
	if p.repo == nil {
		p.log.Info("publish skipped, no database configured")
		return PhaseResult{Skipped: 1}
	}

	docs, dups, err := p.build()
	if err != nil {
		return PhaseResult{Err: err}
	}
	digest, err := Digest(docs)
	if err != nil {
		return PhaseResult{Err: err}
	}

	if p.opts.PublishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.PublishTimeout)
		defer cancel()
	}

	latest, err := p.repo.Latest(ctx, p.lex.ID)
	switch {
	case err == nil && latest.Digest == digest:
		p.log.Info("snapshot unchanged",
			slog.String("snapshot_id", latest.ID.String()),
			slog.String("digest", digest),
		)
		return PhaseResult{Unchanged: 1, Warnings: dups}
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return PhaseResult{Err: fmt.Errorf("latest snapshot: %w", err)}
	}

	if p.opts.DryRun {
		return PhaseResult{Skipped: 1, Warnings: dups}
	}

	snap, err := p.repo.Save(ctx, p.lex, digest)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("save snapshot: %w", err)}
	}

	written := 0
	for table, n := range snap.Rows {
		written += n
		if p.metrics != nil {
			p.metrics.Published.WithLabelValues(table).Add(float64(n))
		}
	}
	p.log.Info("snapshot published",
		slog.String("snapshot_id", snap.ID.String()),
		slog.String("digest", digest),
		slog.Int("rows", written),
	)
	return PhaseResult{Processed: 1, Written: written, Warnings: dups}
}
