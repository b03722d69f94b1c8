// Package snapshot publishes reconciled lexicons into PostgreSQL. Every
// publish inserts a new snapshot; earlier snapshots are left untouched.
package snapshot

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/wordnet-yaml/internal/adapter/postgres"
	"github.com/heartmarshall/wordnet-yaml/internal/domain"
)

// Table names.
const (
	TableSnapshots       = "lexicon_snapshots"
	TableSynsets         = "wn_synsets"
	TableEntries         = "wn_entries"
	TableSenses          = "wn_senses"
	TableSenseRelations  = "wn_sense_relations"
	TableSynsetRelations = "wn_synset_relations"
)

const defaultBatchSize = 1000

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo writes snapshots.
type Repo struct {
	q         postgres.Querier
	txm       *postgres.TxManager
	batchSize int
	now       func() time.Time
	newID     func() uuid.UUID
}

// New creates a Repo. batchSize bounds the rows of one INSERT statement.
func New(q postgres.Querier, txm *postgres.TxManager, batchSize int) *Repo {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Repo{
		q:         q,
		txm:       txm,
		batchSize: batchSize,
		now:       time.Now,
		newID:     uuid.New,
	}
}

// Latest returns the newest snapshot of a lexicon, or domain.ErrNotFound.
func (r *Repo) Latest(ctx context.Context, lexiconID string) (*domain.Snapshot, error) {
	query, args, err := psql.
		Select("id", "lexicon_id", "version", "digest", "created_at").
		From(TableSnapshots).
		Where(sq.Eq{"lexicon_id": lexiconID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s domain.Snapshot
	err = postgres.QuerierFromCtx(ctx, r.q).QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.LexiconID, &s.Version, &s.Digest, &s.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "snapshot", lexiconID)
	}
	return &s, nil
}

// Save inserts the lexicon as a new snapshot in one transaction. Entries
// sharing an id keep the last one; relations whose ends were not
// published are left out.
func (r *Repo) Save(ctx context.Context, lex *domain.Lexicon, digest string) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		ID:        r.newID(),
		LexiconID: lex.ID,
		Version:   lex.Version,
		Digest:    digest,
		CreatedAt: r.now().UTC(),
		Rows:      make(map[string]int, 6),
	}
	rows := buildRows(snap.ID, lex)

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.q)

		query, args, err := psql.
			Insert(TableSnapshots).
			Columns("id", "lexicon_id", "label", "language", "version", "digest", "created_at").
			Values(snap.ID, lex.ID, lex.Label, lex.Language, lex.Version, digest, snap.CreatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("build snapshot insert: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "snapshot", snap.ID.String())
		}
		snap.Rows[TableSnapshots] = 1

		// parents before children
		for _, t := range []struct {
			name    string
			columns []string
			values  [][]any
		}{
			{TableSynsets, synsetColumns, rows.synsets},
			{TableEntries, entryColumns, rows.entries},
			{TableSenses, senseColumns, rows.senses},
			{TableSenseRelations, relationColumns, rows.senseRelations},
			{TableSynsetRelations, relationColumns, rows.synsetRelations},
		} {
			n, err := r.insertBatches(ctx, q, t.name, t.columns, t.values)
			if err != nil {
				return err
			}
			snap.Rows[t.name] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *Repo) insertBatches(ctx context.Context, q postgres.Querier, table string, columns []string, values [][]any) (int, error) {
	total := 0
	for i := 0; i < len(values); i += r.batchSize {
		end := min(i+r.batchSize, len(values))

		b := psql.Insert(table).Columns(columns...)
		for _, row := range values[i:end] {
			b = b.Values(row...)
		}
		query, args, err := b.ToSql()
		if err != nil {
			return total, fmt.Errorf("build %s insert: %w", table, err)
		}

		tag, err := q.Exec(ctx, query, args...)
		if err != nil {
			return total, postgres.MapError(err, table, fmt.Sprintf("rows %d-%d", i, end))
		}
		total += int(tag.RowsAffected())
	}
	return total, nil
}
