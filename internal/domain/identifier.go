package domain

import (
	"fmt"
	"strings"
)

// ordinalWidth is the number of digits in a sense ordinal suffix.
const ordinalWidth = 2

// UnknownOrdinal sorts members whose sense cannot be found after all others.
const UnknownOrdinal = "99"

// Codec builds and parses the composite identifiers of one lexicon.
// Every identifier it produces is prefixed with "<lexicon id>-".
type Codec struct {
	prefix string
}

// NewCodec creates a Codec for the lexicon with the given id (e.g. "ewn").
func NewCodec(lexiconID string) Codec {
	return Codec{prefix: lexiconID + "-"}
}

// Prefix returns the "<lexicon id>-" prefix shared by all identifiers.
func (c Codec) Prefix() string { return c.prefix }

// EntryID returns the identifier of the entry for lemma with the given part of speech.
func (c Codec) EntryID(lemma string, pos PartOfSpeech) string {
	return c.prefix + EscapeLemma(lemma) + "-" + string(pos)
}

// SynsetID qualifies a bare synset key such as "01926311-v".
func (c Codec) SynsetID(key string) string {
	return c.prefix + key
}

// SynsetKey strips the lexicon prefix from a synset identifier.
func (c Codec) SynsetKey(id string) string {
	return strings.TrimPrefix(id, c.prefix)
}

// SenseBase returns the sense identifier without its ordinal suffix:
// lexicon prefix, escaped lemma, qualified part of speech and the synset
// offset with its trailing "-<pos>" removed.
func (c Codec) SenseBase(lemma, qualifiedPOS, synsetKey string) string {
	offset := synsetKey
	if len(offset) >= 2 {
		offset = offset[:len(offset)-2]
	}
	return c.prefix + EscapeLemma(lemma) + "-" + qualifiedPOS + "-" + offset
}

// IsQualified reports whether ref is a final identifier of this lexicon
// rather than a placeholder sense key.
func (c Codec) IsQualified(ref string) bool {
	return strings.HasPrefix(ref, c.prefix)
}

// QualifiedPOS returns "<adjposition>-<pos>" when adjposition is set, pos otherwise.
func QualifiedPOS(pos PartOfSpeech, adjposition AdjPosition) string {
	if adjposition != "" {
		return string(adjposition) + "-" + string(pos)
	}
	return string(pos)
}

// WithOrdinal appends a zero-padded two digit ordinal to a sense base.
func WithOrdinal(base string, n int) string {
	return fmt.Sprintf("%s-%0*d", base, ordinalWidth, n)
}

// Ordinal returns the two-character ordinal suffix of a final sense id.
func Ordinal(id string) string {
	if len(id) < ordinalWidth {
		return id
	}
	return id[len(id)-ordinalWidth:]
}

// TrimOrdinal drops the "-NN" ordinal suffix, yielding the sense base.
func TrimOrdinal(id string) string {
	if len(id) < ordinalWidth+1 {
		return id
	}
	return id[:len(id)-ordinalWidth-1]
}

// EscapeLemma maps a lemma onto characters valid in an XML identifier.
// The mapping is total; characters without a named escape become -XXXX-.
func EscapeLemma(lemma string) string {
	var b strings.Builder
	b.Grow(len(lemma))
	for _, r := range lemma {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		default:
			if esc, ok := lemmaEscapes[r]; ok {
				b.WriteString(esc)
			} else {
				fmt.Fprintf(&b, "-%04x-", r)
			}
		}
	}
	return b.String()
}

var lemmaEscapes = map[rune]string{
	'(':  "-lb-",
	')':  "-rb-",
	'\'': "-ap-",
	'/':  "-sl-",
	',':  "-cm-",
	'!':  "-ex-",
	'+':  "-pl-",
}
