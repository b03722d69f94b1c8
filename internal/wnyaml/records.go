// Package wnyaml reads and writes the raw YAML source documents of the
// lexicon: frames.yaml, entries-<c>.yaml and one document per
// lexicographer file. Records preserve the key order found in the file;
// encoding is canonical (sorted keys, block style) so unchanged data
// always produces identical bytes. No domain logic lives here.
package wnyaml

// Well-known record keys.
const (
	keyForm         = "form"
	keySense        = "sense"
	keySynset       = "synset"
	keyID           = "id"
	keyAdjPosition  = "adjposition"
	keySubcat       = "subcat"
	keyILI          = "ili"
	keyPartOfSpeech = "partOfSpeech"
	keyDefinition   = "definition"
	keyExample      = "example"
	keySource       = "source"
	keyMembers      = "members"
	keyText         = "text"
)

// FramesDocument is frames.yaml: label -> pattern.
type FramesDocument struct {
	Frames []FrameRecord
}

// FrameRecord is one frames.yaml pair.
type FrameRecord struct {
	Label   string
	Pattern string
}

// EntryDocument is one entries-<c>.yaml file: lemma -> pos -> record.
type EntryDocument struct {
	Lemmas []LemmaRecord
}

// LemmaRecord holds all part-of-speech variants of one lemma.
type LemmaRecord struct {
	Lemma   string
	Entries []EntryRecord
}

// EntryRecord is the record of one lemma/part-of-speech pair.
// Forms and Senses are nil when the key is absent.
type EntryRecord struct {
	PartOfSpeech string
	Forms        []string
	Senses       []SenseRecord
}

// SenseRecord is one ordinal-indexed sense of an entry. Relations holds
// every key that is not a well-known sense field, in file order; callers
// decide which of them are relation kinds.
type SenseRecord struct {
	Synset      string
	ID          string
	AdjPosition string
	Subcat      []string
	Relations   []RelationRecord
}

// RelationRecord groups the targets of one relation kind.
type RelationRecord struct {
	Kind    string
	Targets []string
}

// SynsetDocument is one lexicographer file: synset key -> record.
type SynsetDocument struct {
	Synsets []SynsetRecord
}

// SynsetRecord is one concept. Definitions and Members are nil when absent.
type SynsetRecord struct {
	Key          string
	ILI          string
	PartOfSpeech string
	Definitions  []string
	Examples     []ExampleRecord
	Source       string
	Members      []string
	Relations    []RelationRecord
}

// ExampleRecord is an example; a record without Source encodes as a plain string.
type ExampleRecord struct {
	Text   string
	Source string
}
