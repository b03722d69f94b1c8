package snapshot

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
)

var (
	synsetColumns   = []string{"snapshot_id", "id", "ili", "part_of_speech", "lexfile", "definitions", "source"}
	entryColumns    = []string{"snapshot_id", "id", "lemma", "part_of_speech", "forms"}
	senseColumns    = []string{"snapshot_id", "id", "entry_id", "synset_id", "sense_key", "position"}
	relationColumns = []string{"snapshot_id", "source_id", "target_id", "kind"}
)

// rows is a lexicon flattened into insert values, one slice per table.
type rows struct {
	synsets         [][]any
	entries         [][]any
	senses          [][]any
	senseRelations  [][]any
	synsetRelations [][]any
}

func buildRows(snapshotID uuid.UUID, lex *domain.Lexicon) rows {
	var out rows

	synsets := make(map[string]bool, len(lex.Synsets()))
	for _, ss := range lex.Synsets() {
		synsets[ss.ID] = true
		out.synsets = append(out.synsets, []any{
			snapshotID, ss.ID, ss.ILI, string(ss.PartOfSpeech), ss.LexName, nonNil(ss.Definitions), ss.Source,
		})
	}

	// last entry wins per id
	entries := make(map[string]*domain.Entry, len(lex.Entries()))
	order := make([]string, 0, len(lex.Entries()))
	for _, e := range lex.Entries() {
		if _, seen := entries[e.ID]; !seen {
			order = append(order, e.ID)
		}
		entries[e.ID] = e
	}

	senses := make(map[string]bool, lex.SenseCount())
	for _, id := range order {
		e := entries[id]
		out.entries = append(out.entries, []any{
			snapshotID, e.ID, e.Lemma.WrittenForm, string(e.Lemma.PartOfSpeech), nonNil(e.Forms),
		})
		for i, s := range e.Senses {
			if senses[s.ID] || !synsets[s.SynsetID] {
				continue
			}
			senses[s.ID] = true
			out.senses = append(out.senses, []any{
				snapshotID, s.ID, e.ID, s.SynsetID, s.SenseKey, i + 1,
			})
		}
	}

	for _, id := range order {
		for _, s := range entries[id].Senses {
			for _, rel := range s.Relations {
				if senses[s.ID] && senses[rel.Target] {
					out.senseRelations = append(out.senseRelations, []any{snapshotID, s.ID, rel.Target, string(rel.Kind)})
				}
			}
		}
	}
	for _, ss := range lex.Synsets() {
		for _, rel := range ss.Relations {
			if synsets[rel.Target] {
				out.synsetRelations = append(out.synsetRelations, []any{snapshotID, ss.ID, rel.Target, string(rel.Kind)})
			}
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
