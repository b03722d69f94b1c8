package reconcile

import (
	"strings"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
	"github.com/heartmarshall/wordnet-yaml/internal/lmf"
)

// zeroOrdinal marks a sense numbered from zero in the legacy files.
const zeroOrdinal = "00"

// LegacyIndex is what reconciliation reads from the legacy XML files:
// which synsets number their senses from zero, and the final sense ids
// per lexfile.
type LegacyIndex struct {
	zeroStart map[string]struct{}
	files     map[string]*legacyFile
}

type legacyFile struct {
	entries map[string]struct{}
	// sense base (id without "-NN") -> legacy id; last one wins
	byBase map[string]string
}

// NewLegacyIndex scans parsed legacy files. Files are read in the given
// order, so when several legacy senses share a base the last one wins.
func NewLegacyIndex(files []*lmf.File) *LegacyIndex {
	ix := &LegacyIndex{
		zeroStart: make(map[string]struct{}),
		files:     make(map[string]*legacyFile, len(files)),
	}
	for _, f := range files {
		lf, ok := ix.files[f.LexName]
		if !ok {
			lf = &legacyFile{
				entries: make(map[string]struct{}),
				byBase:  make(map[string]string),
			}
			ix.files[f.LexName] = lf
		}
		for _, e := range f.Lexicon.Entries() {
			lf.entries[e.ID] = struct{}{}
			for _, s := range e.Senses {
				if strings.HasSuffix(s.ID, zeroOrdinal) {
					ix.zeroStart[s.SynsetID] = struct{}{}
				}
				lf.byBase[domain.TrimOrdinal(s.ID)] = s.ID
			}
		}
	}
	return ix
}

// EmptyLegacyIndex returns an index for a lexicon without legacy files.
func EmptyLegacyIndex() *LegacyIndex {
	return NewLegacyIndex(nil)
}

// ZeroStart reports whether the legacy files number senses of the synset from zero.
func (ix *LegacyIndex) ZeroStart(synsetID string) bool {
	_, ok := ix.zeroStart[synsetID]
	return ok
}

// HasFile reports whether a legacy file exists for the lexfile.
func (ix *LegacyIndex) HasFile(lexName string) bool {
	_, ok := ix.files[lexName]
	return ok
}

// Override returns the legacy id for a sense base when the lexfile has a
// legacy file that also contains the entry.
func (ix *LegacyIndex) Override(lexName, entryID, base string) (string, bool) {
	lf, ok := ix.files[lexName]
	if !ok {
		return "", false
	}
	if _, ok := lf.entries[entryID]; !ok {
		return "", false
	}
	id, ok := lf.byBase[base]
	return id, ok
}
