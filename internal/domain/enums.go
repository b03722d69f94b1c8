package domain

import "fmt"

// PartOfSpeech is the WordNet part-of-speech code of a lemma or synset.
type PartOfSpeech string

const (
	PartOfSpeechNoun               PartOfSpeech = "n"
	PartOfSpeechVerb               PartOfSpeech = "v"
	PartOfSpeechAdjective          PartOfSpeech = "a"
	PartOfSpeechAdverb             PartOfSpeech = "r"
	PartOfSpeechAdjectiveSatellite PartOfSpeech = "s"
	PartOfSpeechConjunction        PartOfSpeech = "c"
	PartOfSpeechAdposition         PartOfSpeech = "p"
	PartOfSpeechOther              PartOfSpeech = "x"
	PartOfSpeechUnknown            PartOfSpeech = "u"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechAdjectiveSatellite, PartOfSpeechConjunction, PartOfSpeechAdposition,
		PartOfSpeechOther, PartOfSpeechUnknown:
		return true
	}
	return false
}

// ParsePartOfSpeech validates a raw part-of-speech code.
func ParsePartOfSpeech(s string) (PartOfSpeech, error) {
	p := PartOfSpeech(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownPOS)
	}
	return p, nil
}

// AdjPosition marks the syntactic position an adjective sense is restricted to.
type AdjPosition string

const (
	AdjPositionAttributive          AdjPosition = "a"
	AdjPositionImmediatePostnominal AdjPosition = "ip"
	AdjPositionPredicative          AdjPosition = "p"
)

func (a AdjPosition) String() string { return string(a) }

func (a AdjPosition) IsValid() bool {
	switch a {
	case AdjPositionAttributive, AdjPositionImmediatePostnominal, AdjPositionPredicative:
		return true
	}
	return false
}
