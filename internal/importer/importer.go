// Package importer turns raw YAML records into lexicon objects.
// Identifiers produced here are provisional: sense ids carry no ordinal
// and sense relation targets are sense keys until the lexicon is reconciled.
package importer

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
	"github.com/heartmarshall/wordnet-yaml/internal/wnyaml"
)

// Result holds the imported lexicon and the data the reconciler needs.
type Result struct {
	Lexicon *domain.Lexicon
	// Members is the declared member order per synset id.
	Members domain.MemberOrders
	// Frames is the table the subcat labels were resolved through.
	Frames *domain.FrameTable
	Stats  Stats
}

// Stats holds importer statistics for logging.
type Stats struct {
	Entries          int
	Senses           int
	Synsets          int
	Behaviours       int
	DroppedRelations int
}

// Importer builds a lexicon from YAML source documents.
type Importer struct {
	codec domain.Codec
	log   *slog.Logger
}

// New creates an Importer for the lexicon identified by codec.
func New(codec domain.Codec, log *slog.Logger) *Importer {
	return &Importer{codec: codec, log: log}
}

// Import converts every document in src. The frame table comes from
// frames.yaml when present and falls back to the built-in table.
func (im *Importer) Import(meta domain.Metadata, src *wnyaml.Source) (*Result, error) {
	res := &Result{
		Lexicon: domain.NewLexicon(meta),
		Members: make(domain.MemberOrders),
		Frames:  framesFrom(src.Frames),
	}

	for _, named := range src.Entries {
		for _, lr := range named.Doc.Lemmas {
			for _, rec := range lr.Entries {
				entry, err := im.entry(lr.Lemma, rec, res)
				if err != nil {
					return nil, fmt.Errorf("entries-%s: %w", named.Bucket, err)
				}
				res.Lexicon.AddEntry(entry)
				res.Stats.Entries++
				res.Stats.Senses += len(entry.Senses)
				res.Stats.Behaviours += len(entry.SyntacticBehaviours)
			}
		}
	}

	for _, named := range src.Synsets {
		for _, rec := range named.Doc.Synsets {
			ss, err := im.synset(named.LexName, rec, res)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", named.LexName, err)
			}
			if err := res.Lexicon.AddSynset(ss); err != nil {
				return nil, fmt.Errorf("%s: %w", named.LexName, err)
			}
			res.Members[ss.ID] = rec.Members
			res.Stats.Synsets++
		}
	}

	im.log.Debug("yaml imported",
		slog.Int("entries", res.Stats.Entries),
		slog.Int("senses", res.Stats.Senses),
		slog.Int("synsets", res.Stats.Synsets),
		slog.Int("dropped_relations", res.Stats.DroppedRelations),
	)
	return res, nil
}

func framesFrom(doc *wnyaml.FramesDocument) *domain.FrameTable {
	if doc == nil || len(doc.Frames) == 0 {
		return domain.DefaultFrameTable()
	}
	frames := make([]domain.Frame, 0, len(doc.Frames))
	for _, f := range doc.Frames {
		frames = append(frames, domain.Frame{Label: f.Label, Pattern: f.Pattern})
	}
	return domain.NewFrameTable(frames)
}

func (im *Importer) entry(lemma string, rec wnyaml.EntryRecord, res *Result) (*domain.Entry, error) {
	pos, err := domain.ParsePartOfSpeech(rec.PartOfSpeech)
	if err != nil {
		return nil, fmt.Errorf("lemma %q: %w", lemma, err)
	}
	if rec.Senses == nil {
		return nil, fmt.Errorf("lemma %q: %w", lemma, domain.NewFieldError("entry "+lemma, "sense"))
	}

	entry := &domain.Entry{
		ID:    im.codec.EntryID(lemma, pos),
		Lemma: domain.Lemma{WrittenForm: lemma, PartOfSpeech: pos},
		Forms: rec.Forms,
	}

	// subcat label -> sense ids, in sense order
	bySubcat := make(map[string][]string)
	for n, sr := range rec.Senses {
		sense, err := im.sense(lemma, pos, n, sr, res)
		if err != nil {
			return nil, fmt.Errorf("lemma %q: %w", lemma, err)
		}
		entry.Senses = append(entry.Senses, sense)
		for _, label := range sr.Subcat {
			bySubcat[label] = append(bySubcat[label], sense.ID)
		}
	}

	labels := make([]string, 0, len(bySubcat))
	for label := range bySubcat {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		pattern, ok := res.Frames.Pattern(label)
		if !ok {
			return nil, fmt.Errorf("lemma %q: subcat %q: %w", lemma, label, domain.ErrUnknownFrame)
		}
		entry.SyntacticBehaviours = append(entry.SyntacticBehaviours, domain.SyntacticBehaviour{
			Frame:  pattern,
			Senses: bySubcat[label],
		})
	}
	return entry, nil
}

func (im *Importer) sense(lemma string, pos domain.PartOfSpeech, n int, rec wnyaml.SenseRecord, res *Result) (*domain.Sense, error) {
	if rec.Synset == "" {
		return nil, domain.NewFieldError(fmt.Sprintf("sense %d", n), "synset")
	}
	if rec.ID == "" {
		return nil, domain.NewFieldError(fmt.Sprintf("sense %d", n), "id")
	}

	adj := domain.AdjPosition(rec.AdjPosition)
	sense := &domain.Sense{
		ID:          im.codec.SenseBase(lemma, domain.QualifiedPOS(pos, adj), rec.Synset),
		SynsetID:    im.codec.SynsetID(rec.Synset),
		SenseKey:    rec.ID,
		N:           n,
		AdjPosition: adj,
	}
	for _, rel := range rec.Relations {
		kind := domain.SenseRelType(rel.Kind)
		if !kind.IsValid() {
			res.Stats.DroppedRelations++
			continue
		}
		for _, target := range rel.Targets {
			sense.AddRelation(domain.SenseRelation{Target: target, Kind: kind})
		}
	}
	return sense, nil
}

func (im *Importer) synset(lexName string, rec wnyaml.SynsetRecord, res *Result) (*domain.Synset, error) {
	record := "synset " + rec.Key
	if rec.PartOfSpeech == "" {
		return nil, domain.NewFieldError(record, "partOfSpeech")
	}
	if rec.Definitions == nil {
		return nil, domain.NewFieldError(record, "definition")
	}
	if rec.Members == nil {
		return nil, domain.NewFieldError(record, "members")
	}
	pos, err := domain.ParsePartOfSpeech(rec.PartOfSpeech)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", record, err)
	}

	ss := &domain.Synset{
		ID:           im.codec.SynsetID(rec.Key),
		ILI:          rec.ILI,
		PartOfSpeech: pos,
		LexName:      lexName,
		Source:       rec.Source,
		Definitions:  rec.Definitions,
	}
	if ss.ILI == "" {
		ss.ILI = domain.ILIUnassigned
		if len(rec.Definitions) > 0 {
			ss.ILIDefinition = rec.Definitions[0]
		}
	}
	for _, ex := range rec.Examples {
		ss.Examples = append(ss.Examples, domain.Example{Text: ex.Text, Source: ex.Source})
	}
	for _, rel := range rec.Relations {
		kind := domain.SynsetRelType(rel.Kind)
		if !kind.IsValid() {
			res.Stats.DroppedRelations++
			continue
		}
		for _, target := range rel.Targets {
			ss.AddRelation(domain.SynsetRelation{Target: im.codec.SynsetID(target), Kind: kind})
		}
	}
	return ss, nil
}
