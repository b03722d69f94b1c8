package domain

import "slices"

// ILIUnassigned is the interlingual index sentinel for "not yet assigned".
const ILIUnassigned = "in"

// Metadata describes a lexicon as a whole.
type Metadata struct {
	ID       string
	Label    string
	Language string
	Email    string
	License  string
	Version  string
	URL      string
}

// Lemma is the canonical written form of an entry.
type Lemma struct {
	WrittenForm  string
	PartOfSpeech PartOfSpeech
}

// Entry is one lemma/part-of-speech pair with its senses.
type Entry struct {
	ID                  string
	Lemma               Lemma
	Forms               []string
	Senses              []*Sense
	SyntacticBehaviours []SyntacticBehaviour
}

// Sense links an entry to a synset. ID stays a placeholder until the
// lexicon is reconciled; SenseKey is stable across formats.
type Sense struct {
	ID          string
	SynsetID    string
	SenseKey    string
	N           int
	AdjPosition AdjPosition
	Relations   []SenseRelation
}

// AddRelation appends an outgoing relation.
func (s *Sense) AddRelation(r SenseRelation) {
	s.Relations = append(s.Relations, r)
}

// HasRelation reports whether an edge of kind to target already exists.
func (s *Sense) HasRelation(target string, kind SenseRelType) bool {
	for _, r := range s.Relations {
		if r.Target == target && r.Kind == kind {
			return true
		}
	}
	return false
}

// Example is a usage example, optionally attributed to a source.
type Example struct {
	Text   string
	Source string
}

// Synset is a concept node grouped by lexicographer file.
type Synset struct {
	ID            string
	ILI           string
	PartOfSpeech  PartOfSpeech
	LexName       string
	Source        string
	Definitions   []string
	ILIDefinition string
	Examples      []Example
	Relations     []SynsetRelation
}

// AddRelation appends an outgoing relation.
func (s *Synset) AddRelation(r SynsetRelation) {
	s.Relations = append(s.Relations, r)
}

// HasRelation reports whether an edge of kind to target already exists.
func (s *Synset) HasRelation(target string, kind SynsetRelType) bool {
	for _, r := range s.Relations {
		if r.Target == target && r.Kind == kind {
			return true
		}
	}
	return false
}

// SyntacticBehaviour attaches a subcategorization frame pattern to senses.
type SyntacticBehaviour struct {
	Frame  string
	Senses []string
}

// MemberOrders maps a synset id to its declared member lemma order.
type MemberOrders map[string][]string

// Lexicon owns every entry and synset of one dictionary.
// Indexes are maintained by the Add methods and by Reindex.
type Lexicon struct {
	Metadata

	entries []*Entry
	synsets []*Synset

	entryByID      map[string]*Entry
	senseByID      map[string]*Sense
	synsetByID     map[string]*Synset
	entriesByLemma map[string][]*Entry
	members        map[string][]string
}

// NewLexicon creates an empty lexicon.
func NewLexicon(meta Metadata) *Lexicon {
	return &Lexicon{
		Metadata:       meta,
		entryByID:      make(map[string]*Entry),
		senseByID:      make(map[string]*Sense),
		synsetByID:     make(map[string]*Synset),
		entriesByLemma: make(map[string][]*Entry),
		members:        make(map[string][]string),
	}
}

// AddEntry appends an entry and indexes its senses. An entry with an
// already known id replaces the old one in the id index only; duplicates
// are reported at export time.
func (l *Lexicon) AddEntry(e *Entry) {
	l.entries = append(l.entries, e)
	l.entryByID[e.ID] = e
	l.entriesByLemma[e.Lemma.WrittenForm] = append(l.entriesByLemma[e.Lemma.WrittenForm], e)
	for _, s := range e.Senses {
		l.senseByID[s.ID] = s
		l.addMember(s.SynsetID, e.Lemma.WrittenForm)
	}
}

func (l *Lexicon) addMember(synsetID, lemma string) {
	if slices.Contains(l.members[synsetID], lemma) {
		return
	}
	l.members[synsetID] = append(l.members[synsetID], lemma)
}

// AddSynset appends a synset. Synset ids must be unique.
func (l *Lexicon) AddSynset(s *Synset) error {
	if _, dup := l.synsetByID[s.ID]; dup {
		return NewIntegrityError("duplicate synset", s.ID)
	}
	l.synsets = append(l.synsets, s)
	l.synsetByID[s.ID] = s
	return nil
}

// Entries returns entries in insertion order.
func (l *Lexicon) Entries() []*Entry { return l.entries }

// Synsets returns synsets in insertion order.
func (l *Lexicon) Synsets() []*Synset { return l.synsets }

// EntryByID returns nil when no entry has the id.
func (l *Lexicon) EntryByID(id string) *Entry { return l.entryByID[id] }

// SenseByID returns nil when no sense has the id.
func (l *Lexicon) SenseByID(id string) *Sense { return l.senseByID[id] }

// SynsetByID returns nil when no synset has the id.
func (l *Lexicon) SynsetByID(id string) *Synset { return l.synsetByID[id] }

// EntriesByLemma returns every entry whose lemma has the written form.
func (l *Lexicon) EntriesByLemma(lemma string) []*Entry { return l.entriesByLemma[lemma] }

// Members returns the lemmas with a sense in the synset, in first-seen order.
func (l *Lexicon) Members(synsetID string) []string {
	return slices.Clone(l.members[synsetID])
}

// SenseCount returns the number of senses across all entries.
func (l *Lexicon) SenseCount() int {
	n := 0
	for _, e := range l.entries {
		n += len(e.Senses)
	}
	return n
}

// Reindex rebuilds the sense id index after identifiers were rewritten.
func (l *Lexicon) Reindex() {
	l.senseByID = make(map[string]*Sense, len(l.senseByID))
	for _, e := range l.entries {
		for _, s := range e.Senses {
			l.senseByID[s.ID] = s
		}
	}
}
