package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/wordnet-yaml/internal/adapter/postgres"
	"github.com/heartmarshall/wordnet-yaml/internal/domain"
)

var (
	fixedID  = uuid.MustParse("6f1d8b1e-3c55-4d7e-9a51-1f0f5a4c2b10")
	fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newMockRepo(t *testing.T, batchSize int) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := New(mock, postgres.NewTxManager(mock), batchSize)
	repo.now = func() time.Time { return fixedNow }
	repo.newID = func() uuid.UUID { return fixedID }
	return repo, mock
}

func testLexicon(t *testing.T) *domain.Lexicon {
	t.Helper()
	lex := domain.NewLexicon(domain.Metadata{ID: "ewn", Label: "English WordNet", Language: "en", Version: "2024"})

	require.NoError(t, lex.AddSynset(&domain.Synset{
		ID: "ewn-01926311-v", PartOfSpeech: domain.PartOfSpeechVerb, LexName: "verb.motion",
		Definitions: []string{"move fast"},
		Relations:   []domain.SynsetRelation{{Target: "ewn-01860795-v", Kind: domain.SynsetRelHypernym}},
	}))
	require.NoError(t, lex.AddSynset(&domain.Synset{
		ID: "ewn-01860795-v", PartOfSpeech: domain.PartOfSpeechVerb, LexName: "verb.motion",
		Relations: []domain.SynsetRelation{{Target: "ewn-01926311-v", Kind: domain.SynsetRelHyponym}},
	}))

	lex.AddEntry(&domain.Entry{
		ID: "ewn-run-v", Lemma: domain.Lemma{WrittenForm: "run", PartOfSpeech: domain.PartOfSpeechVerb},
		Forms: []string{"ran"},
		Senses: []*domain.Sense{{
			ID: "ewn-run-v-01926311-02", SynsetID: "ewn-01926311-v", SenseKey: "run%2:38:00::",
			Relations: []domain.SenseRelation{
				{Target: "ewn-stop-v-01860795-01", Kind: domain.SenseRelAntonym},
				{Target: "ewn-gone-v-00000000-01", Kind: domain.SenseRelAlso},
			},
		}},
	})
	lex.AddEntry(&domain.Entry{
		ID: "ewn-jog-v", Lemma: domain.Lemma{WrittenForm: "jog", PartOfSpeech: domain.PartOfSpeechVerb},
		Senses: []*domain.Sense{{ID: "ewn-jog-v-01926311-01", SynsetID: "ewn-01926311-v", SenseKey: "jog%2:38:00::"}},
	})
	lex.AddEntry(&domain.Entry{
		ID: "ewn-stop-v", Lemma: domain.Lemma{WrittenForm: "stop", PartOfSpeech: domain.PartOfSpeechVerb},
		Senses: []*domain.Sense{{
			ID: "ewn-stop-v-01860795-01", SynsetID: "ewn-01860795-v", SenseKey: "stop%2:38:00::",
			Relations: []domain.SenseRelation{{Target: "ewn-run-v-01926311-02", Kind: domain.SenseRelAntonym}},
		}},
	})
	return lex
}

func TestBuildRows(t *testing.T) {
	t.Parallel()

	r := buildRows(fixedID, testLexicon(t))

	assert.Len(t, r.synsets, 2)
	assert.Len(t, r.entries, 3)
	assert.Len(t, r.senses, 3)
	assert.Len(t, r.senseRelations, 2, "relation to an unknown sense is left out")
	assert.Len(t, r.synsetRelations, 2)

	assert.Equal(t, []any{fixedID, "ewn-run-v", "run", "v", []string{"ran"}}, r.entries[0])
	assert.Equal(t, []any{fixedID, "ewn-jog-v", "jog", "v", []string{}}, r.entries[1])
	assert.Equal(t, []any{fixedID, "ewn-run-v-01926311-02", "ewn-run-v", "ewn-01926311-v", "run%2:38:00::", 1}, r.senses[0])
	assert.Equal(t, []any{fixedID, "ewn-01860795-v", "", "v", "verb.motion", []string{}, ""}, r.synsets[1])
}

func TestBuildRows_DuplicateEntryLastWins(t *testing.T) {
	t.Parallel()

	lex := domain.NewLexicon(domain.Metadata{ID: "ewn"})
	require.NoError(t, lex.AddSynset(&domain.Synset{ID: "ewn-01926311-v", PartOfSpeech: domain.PartOfSpeechVerb, LexName: "verb.motion"}))
	lex.AddEntry(&domain.Entry{ID: "ewn-run-v", Lemma: domain.Lemma{WrittenForm: "run", PartOfSpeech: "v"}, Forms: []string{"ran"}})
	lex.AddEntry(&domain.Entry{ID: "ewn-run-v", Lemma: domain.Lemma{WrittenForm: "run", PartOfSpeech: "v"}, Forms: []string{"runned"}})

	r := buildRows(fixedID, lex)
	require.Len(t, r.entries, 1)
	assert.Equal(t, []string{"runned"}, r.entries[0][4])
}

func TestRepo_Save(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t, 2)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO lexicon_snapshots`).
		WithArgs(fixedID, "ewn", "English WordNet", "en", "2024", "digest-1", fixedNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO wn_synsets`).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`INSERT INTO wn_entries`).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`INSERT INTO wn_entries`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO wn_senses`).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`INSERT INTO wn_senses`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO wn_sense_relations`).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`INSERT INTO wn_synset_relations`).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	snap, err := repo.Save(context.Background(), testLexicon(t), "digest-1")
	require.NoError(t, err)

	assert.Equal(t, fixedID, snap.ID)
	assert.Equal(t, "ewn", snap.LexiconID)
	assert.Equal(t, "digest-1", snap.Digest)
	assert.Equal(t, map[string]int{
		TableSnapshots:       1,
		TableSynsets:         2,
		TableEntries:         3,
		TableSenses:          3,
		TableSenseRelations:  2,
		TableSynsetRelations: 2,
	}, snap.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Save_RollsBackOnError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t, 100)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO lexicon_snapshots`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO wn_synsets`).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`INSERT INTO wn_entries`).WillReturnError(boom)
	mock.ExpectRollback()

	_, err := repo.Save(context.Background(), testLexicon(t), "digest-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Latest(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t, 0)

		rows := pgxmock.NewRows([]string{"id", "lexicon_id", "version", "digest", "created_at"}).
			AddRow(fixedID.String(), "ewn", "2024", "digest-1", fixedNow)
		mock.ExpectQuery(`SELECT id, lexicon_id, version, digest, created_at FROM lexicon_snapshots`).
			WithArgs("ewn").
			WillReturnRows(rows)

		snap, err := repo.Latest(context.Background(), "ewn")
		require.NoError(t, err)
		assert.Equal(t, fixedID, snap.ID)
		assert.Equal(t, "digest-1", snap.Digest)
		assert.Equal(t, fixedNow, snap.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t, 0)

		mock.ExpectQuery(`SELECT`).
			WithArgs("ewn").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Latest(context.Background(), "ewn")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
