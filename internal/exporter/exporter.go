// Package exporter converts a reconciled lexicon back into YAML source
// documents: 27 entry buckets, one synset document per lexfile and the
// frames document.
package exporter

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
	"github.com/heartmarshall/wordnet-yaml/internal/wnyaml"
)

// OtherBucket collects lemmas that do not start with an ASCII letter.
const OtherBucket = "0"

// Buckets returns the entry bucket names in file order: "a".."z", "0".
func Buckets() []string {
	out := make([]string, 0, 27)
	for c := 'a'; c <= 'z'; c++ {
		out = append(out, string(c))
	}
	return append(out, OtherBucket)
}

// BucketOf returns the entry bucket of a lemma.
func BucketOf(lemma string) string {
	for _, r := range lemma {
		r = unicode.ToLower(r)
		if r >= 'a' && r <= 'z' {
			return string(r)
		}
		break
	}
	return OtherBucket
}

// Sense relations never written: their inverse is always present and is
// the one serialized.
var ignoredSenseRels = map[domain.SenseRelType]bool{
	domain.SenseRelHasDomainRegion: true,
	domain.SenseRelHasDomainTopic:  true,
	domain.SenseRelIsExemplifiedBy: true,
}

var ignoredSynsetRels = map[domain.SynsetRelType]bool{
	domain.SynsetRelHyponym:                 true,
	domain.SynsetRelInstanceHyponym:         true,
	domain.SynsetRelHolonym:                 true,
	domain.SynsetRelHoloLocation:            true,
	domain.SynsetRelHoloMember:              true,
	domain.SynsetRelHoloPart:                true,
	domain.SynsetRelHoloPortion:             true,
	domain.SynsetRelHoloSubstance:           true,
	domain.SynsetRelStateOf:                 true,
	domain.SynsetRelIsCausedBy:              true,
	domain.SynsetRelIsSubeventOf:            true,
	domain.SynsetRelInManner:                true,
	domain.SynsetRelRestrictedBy:            true,
	domain.SynsetRelClassifiedBy:            true,
	domain.SynsetRelIsEntailedBy:            true,
	domain.SynsetRelHasDomainRegion:         true,
	domain.SynsetRelHasDomainTopic:          true,
	domain.SynsetRelIsExemplifiedBy:         true,
	domain.SynsetRelInvolved:                true,
	domain.SynsetRelInvolvedAgent:           true,
	domain.SynsetRelInvolvedPatient:         true,
	domain.SynsetRelInvolvedResult:          true,
	domain.SynsetRelInvolvedInstrument:      true,
	domain.SynsetRelInvolvedLocation:        true,
	domain.SynsetRelInvolvedDirection:       true,
	domain.SynsetRelInvolvedTargetDirection: true,
	domain.SynsetRelInvolvedSourceDirection: true,
	domain.SynsetRelCoPatientAgent:          true,
	domain.SynsetRelCoInstrumentAgent:       true,
	domain.SynsetRelCoResultAgent:           true,
	domain.SynsetRelCoInstrumentPatient:     true,
	domain.SynsetRelCoInstrumentResult:      true,
}

// Documents is the full YAML rendition of a lexicon.
type Documents struct {
	Frames *wnyaml.FramesDocument
	// Entries is keyed by bucket; every bucket is present.
	Entries map[string]*wnyaml.EntryDocument
	// Synsets is keyed by lexfile name.
	Synsets map[string]*wnyaml.SynsetDocument
}

// Duplicate is a lemma/part-of-speech pair found more than once.
type Duplicate struct {
	Lemma        string
	PartOfSpeech domain.PartOfSpeech
}

// Result holds the documents and the data-quality warnings of a build.
type Result struct {
	Documents  *Documents
	Duplicates []Duplicate
}

// Exporter renders a lexicon as YAML documents.
type Exporter struct {
	codec  domain.Codec
	frames *domain.FrameTable
	log    *slog.Logger
}

// New creates an Exporter. A nil frame table means the built-in one.
func New(codec domain.Codec, frames *domain.FrameTable, log *slog.Logger) *Exporter {
	if frames == nil {
		frames = domain.DefaultFrameTable()
	}
	return &Exporter{codec: codec, frames: frames, log: log}
}

// Build renders every document. Duplicate lemma/part-of-speech pairs are
// reported and the last one is kept. A relation to an unknown sense or a
// frame pattern missing from the table is an error.
func (x *Exporter) Build(lex *domain.Lexicon) (*Result, error) {
	docs := &Documents{
		Frames:  x.framesDocument(),
		Entries: make(map[string]*wnyaml.EntryDocument, 27),
		Synsets: make(map[string]*wnyaml.SynsetDocument),
	}
	for _, b := range Buckets() {
		docs.Entries[b] = &wnyaml.EntryDocument{}
	}
	res := &Result{Documents: docs}

	// bucket -> lemma -> index in that bucket's Lemmas
	lemmaIdx := make(map[string]map[string]int)
	for _, e := range lex.Entries() {
		rec, err := x.entryRecord(lex, e)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}

		lemma := e.Lemma.WrittenForm
		bucket := BucketOf(lemma)
		doc := docs.Entries[bucket]
		idx, ok := lemmaIdx[bucket]
		if !ok {
			idx = make(map[string]int)
			lemmaIdx[bucket] = idx
		}
		i, ok := idx[lemma]
		if !ok {
			i = len(doc.Lemmas)
			idx[lemma] = i
			doc.Lemmas = append(doc.Lemmas, wnyaml.LemmaRecord{Lemma: lemma})
		}

		lr := &doc.Lemmas[i]
		if j := slices.IndexFunc(lr.Entries, func(r wnyaml.EntryRecord) bool { return r.PartOfSpeech == rec.PartOfSpeech }); j >= 0 {
			x.log.Warn("duplicate entry",
				slog.String("lemma", lemma),
				slog.String("pos", rec.PartOfSpeech),
			)
			res.Duplicates = append(res.Duplicates, Duplicate{Lemma: lemma, PartOfSpeech: e.Lemma.PartOfSpeech})
			lr.Entries[j] = rec
			continue
		}
		lr.Entries = append(lr.Entries, rec)
	}

	for _, ss := range lex.Synsets() {
		doc, ok := docs.Synsets[ss.LexName]
		if !ok {
			doc = &wnyaml.SynsetDocument{}
			docs.Synsets[ss.LexName] = doc
		}
		doc.Synsets = append(doc.Synsets, x.synsetRecord(lex, ss))
	}
	return res, nil
}

func (x *Exporter) framesDocument() *wnyaml.FramesDocument {
	doc := &wnyaml.FramesDocument{}
	for _, f := range x.frames.Frames() {
		doc.Frames = append(doc.Frames, wnyaml.FrameRecord{Label: f.Label, Pattern: f.Pattern})
	}
	return doc
}

func (x *Exporter) entryRecord(lex *domain.Lexicon, e *domain.Entry) (wnyaml.EntryRecord, error) {
	// sense id -> subcat labels
	subcats := make(map[string][]string)
	for _, sb := range e.SyntacticBehaviours {
		label, ok := x.frames.Label(sb.Frame)
		if !ok {
			return wnyaml.EntryRecord{}, fmt.Errorf("frame %q: %w", sb.Frame, domain.ErrUnknownFrame)
		}
		for _, id := range sb.Senses {
			if !slices.Contains(subcats[id], label) {
				subcats[id] = append(subcats[id], label)
			}
		}
	}

	rec := wnyaml.EntryRecord{
		PartOfSpeech: string(e.Lemma.PartOfSpeech),
		Forms:        e.Forms,
		Senses:       make([]wnyaml.SenseRecord, 0, len(e.Senses)),
	}
	for _, s := range e.Senses {
		sr := wnyaml.SenseRecord{
			Synset:      x.codec.SynsetKey(s.SynsetID),
			ID:          s.SenseKey,
			AdjPosition: string(s.AdjPosition),
		}
		for _, rel := range s.Relations {
			if ignoredSenseRels[rel.Kind] {
				continue
			}
			target := lex.SenseByID(rel.Target)
			if target == nil {
				return wnyaml.EntryRecord{}, domain.NewIntegrityError("sense relation target", rel.Target)
			}
			sr.Relations = append(sr.Relations, wnyaml.RelationRecord{
				Kind:    string(rel.Kind),
				Targets: []string{target.SenseKey},
			})
		}
		if labels := subcats[s.ID]; len(labels) > 0 {
			sr.Subcat = slices.Clone(labels)
			sort.Strings(sr.Subcat)
		}
		rec.Senses = append(rec.Senses, sr)
	}
	return rec, nil
}

func (x *Exporter) synsetRecord(lex *domain.Lexicon, ss *domain.Synset) wnyaml.SynsetRecord {
	rec := wnyaml.SynsetRecord{
		Key:          x.codec.SynsetKey(ss.ID),
		PartOfSpeech: string(ss.PartOfSpeech),
		Definitions:  ss.Definitions,
		Source:       ss.Source,
		Members:      orderedMembers(lex, ss.ID),
	}
	if ss.ILI != "" && ss.ILI != domain.ILIUnassigned {
		rec.ILI = ss.ILI
	}
	for _, ex := range ss.Examples {
		rec.Examples = append(rec.Examples, wnyaml.ExampleRecord{Text: ex.Text, Source: ex.Source})
	}
	for _, rel := range ss.Relations {
		if ignoredSynsetRels[rel.Kind] {
			continue
		}
		rec.Relations = append(rec.Relations, wnyaml.RelationRecord{
			Kind:    string(rel.Kind),
			Targets: []string{x.codec.SynsetKey(rel.Target)},
		})
	}
	return rec
}

// orderedMembers sorts the synset's member lemmas by the ordinal suffix of
// their sense in it; lemmas without one sort last.
func orderedMembers(lex *domain.Lexicon, synsetID string) []string {
	members := lex.Members(synsetID)
	ordinals := make(map[string]string, len(members))
	for _, lemma := range members {
		ordinals[lemma] = memberOrdinal(lex, lemma, synsetID)
	}
	sort.SliceStable(members, func(i, j int) bool {
		return ordinals[members[i]] < ordinals[members[j]]
	})
	return members
}

func memberOrdinal(lex *domain.Lexicon, lemma, synsetID string) string {
	for _, e := range lex.EntriesByLemma(lemma) {
		for _, s := range e.Senses {
			if s.SynsetID == synsetID {
				return domain.Ordinal(s.ID)
			}
		}
	}
	return domain.UnknownOrdinal
}

// ChangeScope restricts which documents are written. The zero value
// writes everything.
type ChangeScope struct {
	EntryBuckets []string
	LexFiles     []string
}

// Empty reports whether the scope places no restriction.
func (c ChangeScope) Empty() bool {
	return len(c.EntryBuckets) == 0 && len(c.LexFiles) == 0
}

func (c ChangeScope) bucket(b string) bool {
	return c.Empty() || slices.Contains(c.EntryBuckets, b)
}

func (c ChangeScope) lexFile(name string) bool {
	return c.Empty() || slices.Contains(c.LexFiles, name)
}

// ParseList splits a comma separated flag value, dropping blanks.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
