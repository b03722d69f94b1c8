package lmf

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
)

func TestParse(t *testing.T) {
	t.Parallel()

	f, err := Parse(filepath.Join("testdata", "wn-verb.motion.xml"))
	require.NoError(t, err)
	assert.Equal(t, "verb.motion", f.LexName)

	lex := f.Lexicon
	assert.Equal(t, "ewn", lex.ID)
	assert.Equal(t, "English WordNet", lex.Label)
	assert.Equal(t, "2020", lex.Version)

	run := lex.EntryByID("ewn-run-v")
	require.NotNil(t, run)
	assert.Equal(t, []string{"ran"}, run.Forms)
	require.Len(t, run.Senses, 1)
	sense := run.Senses[0]
	assert.Equal(t, "ewn-run-v-01926311-01", sense.ID)
	assert.Equal(t, "ewn-01926311-v", sense.SynsetID)
	assert.Equal(t, "run%2:38:00::", sense.SenseKey)
	assert.Equal(t, []domain.SenseRelation{
		{Target: "ewn-walk-v-01904930-00", Kind: domain.SenseRelAlso},
	}, sense.Relations, "unknown relation kinds are skipped")
	assert.Equal(t, []domain.SyntacticBehaviour{
		{Frame: "Somebody ----s", Senses: []string{"ewn-run-v-01926311-01"}},
	}, run.SyntacticBehaviours)

	ss := lex.SynsetByID("ewn-01926311-v")
	require.NotNil(t, ss)
	assert.Equal(t, "i35543", ss.ILI)
	assert.Equal(t, "verb.motion", ss.LexName)
	assert.Equal(t, []string{"move fast by using one's feet"}, ss.Definitions)
	assert.Equal(t, []domain.Example{{Text: "The children ran to the store", Source: "Corpus"}}, ss.Examples)

	walk := lex.SynsetByID("ewn-01904930-v")
	require.NotNil(t, walk)
	assert.Equal(t, domain.ILIUnassigned, walk.ILI)
	assert.Equal(t, "Princeton", walk.Source)
	assert.Equal(t, "use one's feet to advance", walk.ILIDefinition)
	assert.Equal(t, []domain.SynsetRelation{{Target: "ewn-01926311-v", Kind: domain.SynsetRelHyponym}}, walk.Relations)
}

func TestDecode_WithoutNamespaceDeclaration(t *testing.T) {
	t.Parallel()

	doc := `<LexicalResource><Lexicon id="ewn">
<LexicalEntry id="ewn-a-n"><Lemma writtenForm="a" partOfSpeech="n"/>
<Sense id="ewn-a-n-00000001-01" synset="ewn-00000001-n" dc:identifier="a%1:00:00::"/>
</LexicalEntry>
<Synset id="ewn-00000001-n" partOfSpeech="n" dc:subject="noun.Tops"><Definition>first</Definition></Synset>
</Lexicon></LexicalResource>`

	lex, err := Decode(strings.NewReader(doc), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "a%1:00:00::", lex.SenseByID("ewn-a-n-00000001-01").SenseKey)
	assert.Equal(t, "noun.Tops", lex.SynsetByID("ewn-00000001-n").LexName)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "no lexicon", doc: `<LexicalResource/>`, wantErr: domain.ErrNotFound},
		{
			name:    "bad part of speech",
			doc:     `<LexicalResource><Lexicon id="ewn"><LexicalEntry id="x"><Lemma writtenForm="x" partOfSpeech="q"/></LexicalEntry></Lexicon></LexicalResource>`,
			wantErr: domain.ErrUnknownPOS,
		},
		{
			name:    "sense without synset",
			doc:     `<LexicalResource><Lexicon id="ewn"><LexicalEntry id="x"><Lemma writtenForm="x" partOfSpeech="n"/><Sense id="x-1"/></LexicalEntry></Lexicon></LexicalResource>`,
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "duplicate synset",
			doc:     `<LexicalResource><Lexicon id="ewn"><Synset id="s" partOfSpeech="n"/><Synset id="s" partOfSpeech="n"/></Lexicon></LexicalResource>`,
			wantErr: domain.ErrIntegrity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(strings.NewReader(tt.doc), "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Decode(strings.NewReader(`<LexicalResource><Lexicon>`), "x")
	assert.Error(t, err, "truncated document")
}

func TestParseDir(t *testing.T) {
	t.Parallel()

	files, err := ParseDir(context.Background(), "testdata")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "noun.act", files[0].LexName)
	assert.Equal(t, "verb.motion", files[1].LexName)
}

func TestParseDir_MissingDirectory(t *testing.T) {
	t.Parallel()

	files, err := ParseDir(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestParseDir_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseDir(ctx, "testdata")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	files, err := ParseDir(context.Background(), "testdata")
	require.NoError(t, err)

	lex, err := Merge(domain.Metadata{ID: "ewn", Label: "English WordNet"}, files)
	require.NoError(t, err)
	assert.Equal(t, "English WordNet", lex.Label)

	ids := make([]string, 0, len(lex.Entries()))
	for _, e := range lex.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"ewn-run-n", "ewn-run-v", "ewn-walk-v"}, ids)

	run := lex.EntryByID("ewn-run-v")
	require.NotNil(t, run)
	assert.Equal(t, []string{"ran", "running"}, run.Forms)
	require.Len(t, run.Senses, 2)
	assert.Equal(t, "ewn-run-v-00293916-03", run.Senses[0].ID)
	assert.Equal(t, "ewn-run-v-01926311-01", run.Senses[1].ID)
	assert.Equal(t, 1, run.Senses[1].N)
	assert.Equal(t, []domain.SyntacticBehaviour{
		{Frame: "Somebody ----s", Senses: []string{"ewn-run-v-00293916-03", "ewn-run-v-01926311-01"}},
	}, run.SyntacticBehaviours)

	assert.NotNil(t, lex.SenseByID("ewn-walk-v-01904930-00"))
	assert.Len(t, lex.Synsets(), 3)
}
