package exporter

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
	"github.com/heartmarshall/wordnet-yaml/internal/importer"
	"github.com/heartmarshall/wordnet-yaml/internal/reconcile"
	"github.com/heartmarshall/wordnet-yaml/internal/wnyaml"
)

var codec = domain.NewCodec("ewn")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var sourceFiles = map[string]string{
	"entries-r.yaml": `
run:
  v:
    form: [ran]
    sense:
    - synset: 01926311-v
      id: "run%2:38:00::"
      subcat: [via, vii]
      antonym: ["stop%2:38:00::"]
  n:
    sense:
    - synset: 00293916-n
      id: "run%1:04:00::"
      domain_topic: ["baseball%1:04:00::"]
`,
	"entries-j.yaml": `
jog:
  v:
    sense:
    - synset: 01926311-v
      id: "jog%2:38:00::"
      also: ["run%2:38:00::"]
`,
	"entries-s.yaml": `
stop:
  v:
    sense:
    - synset: 01860795-v
      id: "stop%2:38:00::"
`,
	"entries-b.yaml": `
baseball:
  n:
    sense:
    - synset: 00471613-n
      id: "baseball%1:04:00::"
`,
	"verb.motion.yaml": `
01926311-v:
  ili: i35543
  partOfSpeech: v
  definition: [move fast by using one's feet]
  example:
  - text: He ran to the store
    source: Corpus
  - Don't run
  hypernym: [01860795-v]
  members: [jog, run]
01860795-v:
  partOfSpeech: v
  definition: [come to a halt]
  members: [stop]
`,
	"noun.act.yaml": `
00293916-n:
  partOfSpeech: n
  definition: [a score in baseball]
  members: [run]
00471613-n:
  partOfSpeech: n
  definition: [a ball game]
  source: Princeton
  members: [baseball]
`,
}

func writeSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range sourceFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// roundTrip reads dir, reconciles and exports into a fresh directory.
func roundTrip(t *testing.T, dir string) (string, *Result) {
	t.Helper()
	src, err := wnyaml.ReadDir(dir)
	require.NoError(t, err)
	imp, err := importer.New(codec, discardLogger()).Import(domain.Metadata{ID: "ewn"}, src)
	require.NoError(t, err)
	_, err = reconcile.New(codec, discardLogger()).Reconcile(imp.Lexicon, imp.Members, reconcile.EmptyLegacyIndex())
	require.NoError(t, err)

	res, err := New(codec, imp.Frames, discardLogger()).Build(imp.Lexicon)
	require.NoError(t, err)

	out := t.TempDir()
	_, err = Write(out, res.Documents, ChangeScope{})
	require.NoError(t, err)
	return out, res
}

func readAll(t *testing.T, dir string) map[string]string {
	t.Helper()
	items, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := make(map[string]string, len(items))
	for _, it := range items {
		data, err := os.ReadFile(filepath.Join(dir, it.Name()))
		require.NoError(t, err)
		out[it.Name()] = string(data)
	}
	return out
}

func TestExport_Idempotent(t *testing.T) {
	t.Parallel()

	first, _ := roundTrip(t, writeSource(t))
	second, _ := roundTrip(t, first)

	a, b := readAll(t, first), readAll(t, second)
	assert.Len(t, a, 27+2+1)
	assert.Equal(t, a, b)
}

func TestExport_RewriteIsNoOp(t *testing.T) {
	t.Parallel()

	out, res := roundTrip(t, writeSource(t))
	stats, err := Write(out, res.Documents, ChangeScope{})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Written)
	assert.Equal(t, 30, stats.Unchanged)
}

func TestExport_Records(t *testing.T) {
	t.Parallel()

	_, res := roundTrip(t, writeSource(t))
	docs := res.Documents

	r := docs.Entries["r"]
	require.Len(t, r.Lemmas, 1)
	require.Len(t, r.Lemmas[0].Entries, 2)
	verb := r.Lemmas[0].Entries[0]
	assert.Equal(t, "v", verb.PartOfSpeech)
	assert.Equal(t, []string{"ran"}, verb.Forms)
	assert.Equal(t, wnyaml.SenseRecord{
		Synset: "01926311-v",
		ID:     "run%2:38:00::",
		Subcat: []string{"via", "vii"},
		Relations: []wnyaml.RelationRecord{
			{Kind: "antonym", Targets: []string{"stop%2:38:00::"}},
		},
	}, verb.Senses[0])

	// has_domain_topic is the inverse of domain_topic and is not written
	baseball := docs.Entries["b"].Lemmas[0].Entries[0].Senses[0]
	assert.Empty(t, baseball.Relations)

	var motion wnyaml.SynsetRecord
	for _, s := range docs.Synsets["verb.motion"].Synsets {
		if s.Key == "01926311-v" {
			motion = s
		}
	}
	assert.Equal(t, "i35543", motion.ILI)
	assert.Equal(t, []string{"jog", "run"}, motion.Members)
	assert.Equal(t, []wnyaml.ExampleRecord{
		{Text: "He ran to the store", Source: "Corpus"},
		{Text: "Don't run"},
	}, motion.Examples)

	for _, s := range docs.Synsets["verb.motion"].Synsets {
		if s.Key == "01860795-v" {
			assert.Empty(t, s.ILI, "unassigned ili is omitted")
			assert.Empty(t, s.Relations, "hyponym is not written")
		}
	}
	assert.Equal(t, "Princeton", docs.Synsets["noun.act"].Synsets[1].Source)
	assert.Len(t, docs.Frames.Frames, 39)
}

func TestOrderedMembers(t *testing.T) {
	t.Parallel()

	lex := domain.NewLexicon(domain.Metadata{ID: "ewn"})
	for _, e := range []*domain.Entry{
		{ID: "ewn-b-n", Lemma: domain.Lemma{WrittenForm: "b", PartOfSpeech: "n"}, Senses: []*domain.Sense{{ID: "ewn-b-n-00000001-02", SynsetID: "ewn-00000001-n"}}},
		{ID: "ewn-c-n", Lemma: domain.Lemma{WrittenForm: "c", PartOfSpeech: "n"}, Senses: []*domain.Sense{{ID: "ewn-c-n-00000001-00", SynsetID: "ewn-00000001-n"}}},
		{ID: "ewn-a-n", Lemma: domain.Lemma{WrittenForm: "a", PartOfSpeech: "n"}, Senses: []*domain.Sense{{ID: "ewn-a-n-00000001-01", SynsetID: "ewn-00000001-n"}}},
	} {
		lex.AddEntry(e)
	}

	assert.Equal(t, []string{"c", "a", "b"}, orderedMembers(lex, "ewn-00000001-n"))
	assert.Equal(t, domain.UnknownOrdinal, memberOrdinal(lex, "zzz", "ewn-00000001-n"))
}

func TestBuild_Duplicates(t *testing.T) {
	t.Parallel()

	lex := domain.NewLexicon(domain.Metadata{ID: "ewn"})
	lex.AddEntry(&domain.Entry{ID: "ewn-run-v", Lemma: domain.Lemma{WrittenForm: "run", PartOfSpeech: "v"}, Forms: []string{"ran"}})
	lex.AddEntry(&domain.Entry{ID: "ewn-run-v", Lemma: domain.Lemma{WrittenForm: "run", PartOfSpeech: "v"}, Forms: []string{"runned"}})

	res, err := New(codec, nil, discardLogger()).Build(lex)
	require.NoError(t, err)

	assert.Equal(t, []Duplicate{{Lemma: "run", PartOfSpeech: domain.PartOfSpeechVerb}}, res.Duplicates)
	r := res.Documents.Entries["r"]
	require.Len(t, r.Lemmas, 1)
	require.Len(t, r.Lemmas[0].Entries, 1)
	assert.Equal(t, []string{"runned"}, r.Lemmas[0].Entries[0].Forms, "last duplicate wins")
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown frame pattern", func(t *testing.T) {
		t.Parallel()
		lex := domain.NewLexicon(domain.Metadata{ID: "ewn"})
		lex.AddEntry(&domain.Entry{
			ID:                  "ewn-run-v",
			Lemma:               domain.Lemma{WrittenForm: "run", PartOfSpeech: "v"},
			SyntacticBehaviours: []domain.SyntacticBehaviour{{Frame: "Somebody ----s wildly"}},
		})
		_, err := New(codec, nil, discardLogger()).Build(lex)
		assert.ErrorIs(t, err, domain.ErrUnknownFrame)
	})

	t.Run("relation to unknown sense", func(t *testing.T) {
		t.Parallel()
		lex := domain.NewLexicon(domain.Metadata{ID: "ewn"})
		lex.AddEntry(&domain.Entry{
			ID:    "ewn-run-v",
			Lemma: domain.Lemma{WrittenForm: "run", PartOfSpeech: "v"},
			Senses: []*domain.Sense{{
				ID:        "ewn-run-v-01926311-01",
				SynsetID:  "ewn-01926311-v",
				Relations: []domain.SenseRelation{{Target: "ewn-gone-v-00000000-01", Kind: domain.SenseRelAntonym}},
			}},
		})
		_, err := New(codec, nil, discardLogger()).Build(lex)
		assert.ErrorIs(t, err, domain.ErrIntegrity)
	})
}

func TestWrite_ChangeScope(t *testing.T) {
	t.Parallel()

	_, res := roundTrip(t, writeSource(t))
	out := t.TempDir()

	stats, err := Write(out, res.Documents, ChangeScope{EntryBuckets: []string{"r"}, LexFiles: []string{"verb.motion"}})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Written)
	assert.Equal(t, 26+1, stats.OutOfScope)

	names := make([]string, 0)
	for name := range readAll(t, out) {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"entries-r.yaml", "verb.motion.yaml", "frames.yaml"}, names)
}

func TestBucketOf(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"run":    "r",
		"Zebra":  "z",
		"1990s":  "0",
		"éclair": "0",
		"'hood":  "0",
		"":       "0",
	}
	for lemma, want := range tests {
		assert.Equal(t, want, BucketOf(lemma), lemma)
	}
	assert.Len(t, Buckets(), 27)
	assert.Equal(t, "0", Buckets()[26])
}

func TestRender_EmptyBucket(t *testing.T) {
	t.Parallel()

	res, err := New(codec, nil, discardLogger()).Build(domain.NewLexicon(domain.Metadata{}))
	require.NoError(t, err)
	files, skipped, err := Render(res.Documents, ChangeScope{})
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, files, 28)
	assert.Equal(t, "entries-a.yaml", files[0].Name)
	assert.Equal(t, "{}", strings.TrimSpace(string(files[0].Data)))
	assert.Equal(t, wnyaml.FramesFile, files[27].Name)
}

func TestParseList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "0"}, ParseList("a, b,,0 "))
	assert.Nil(t, ParseList(""))
}
