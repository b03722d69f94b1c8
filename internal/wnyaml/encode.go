package wnyaml

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// MarshalFrames encodes a frames document canonically.
func MarshalFrames(doc *FramesDocument) ([]byte, error) {
	m := newMapping()
	for _, f := range doc.Frames {
		m.set(f.Label, str(f.Pattern))
	}
	return encode(m.node())
}

// MarshalEntries encodes an entries document canonically.
// A lemma or part of speech listed twice keeps its last record.
func MarshalEntries(doc *EntryDocument) ([]byte, error) {
	root := newMapping()
	byLemma := make(map[string]*mapping)
	for _, lr := range doc.Lemmas {
		posMap, ok := byLemma[lr.Lemma]
		if !ok {
			posMap = newMapping()
			byLemma[lr.Lemma] = posMap
		}
		for _, rec := range lr.Entries {
			posMap.set(rec.PartOfSpeech, entryNode(rec))
		}
	}
	for lemma, posMap := range byLemma {
		root.set(lemma, posMap.node())
	}
	return encode(root.node())
}

func entryNode(rec EntryRecord) *yaml.Node {
	m := newMapping()
	if len(rec.Forms) > 0 {
		m.set(keyForm, strSeq(rec.Forms))
	}
	senses := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, s := range rec.Senses {
		senses.Content = append(senses.Content, senseNode(s))
	}
	m.set(keySense, senses)
	return m.node()
}

func senseNode(s SenseRecord) *yaml.Node {
	m := newMapping()
	m.set(keySynset, str(s.Synset))
	m.set(keyID, str(s.ID))
	if s.AdjPosition != "" {
		m.set(keyAdjPosition, str(s.AdjPosition))
	}
	if len(s.Subcat) > 0 {
		m.set(keySubcat, strSeq(s.Subcat))
	}
	setRelations(m, s.Relations)
	return m.node()
}

// MarshalSynsets encodes a lexicographer file document canonically.
func MarshalSynsets(doc *SynsetDocument) ([]byte, error) {
	root := newMapping()
	for _, rec := range doc.Synsets {
		root.set(rec.Key, synsetNode(rec))
	}
	return encode(root.node())
}

func synsetNode(rec SynsetRecord) *yaml.Node {
	m := newMapping()
	if rec.ILI != "" {
		m.set(keyILI, str(rec.ILI))
	}
	m.set(keyPartOfSpeech, str(rec.PartOfSpeech))
	m.set(keyDefinition, strSeq(rec.Definitions))
	if len(rec.Examples) > 0 {
		examples := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, ex := range rec.Examples {
			examples.Content = append(examples.Content, exampleNode(ex))
		}
		m.set(keyExample, examples)
	}
	if rec.Source != "" {
		m.set(keySource, str(rec.Source))
	}
	setRelations(m, rec.Relations)
	m.set(keyMembers, strSeq(rec.Members))
	return m.node()
}

func exampleNode(ex ExampleRecord) *yaml.Node {
	if ex.Source == "" {
		return str(ex.Text)
	}
	m := newMapping()
	m.set(keyText, str(ex.Text))
	m.set(keySource, str(ex.Source))
	return m.node()
}

// setRelations merges records of the same kind, keeping target order.
func setRelations(m *mapping, rels []RelationRecord) {
	merged := make(map[string][]string)
	var kinds []string
	for _, r := range rels {
		if _, seen := merged[r.Kind]; !seen {
			kinds = append(kinds, r.Kind)
		}
		merged[r.Kind] = append(merged[r.Kind], r.Targets...)
	}
	for _, k := range kinds {
		m.set(k, strSeq(merged[k]))
	}
}

// ---------------------------------------------------------------------------
// Node construction
// ---------------------------------------------------------------------------

// mapping collects key/value pairs and emits them sorted by key.
type mapping struct {
	values map[string]*yaml.Node
}

func newMapping() *mapping {
	return &mapping{values: make(map[string]*yaml.Node)}
}

func (m *mapping) set(key string, v *yaml.Node) {
	m.values[key] = v
}

func (m *mapping) node() *yaml.Node {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range keys {
		n.Content = append(n.Content, str(k), m.values[k])
	}
	return n
}

// str builds a string scalar; the encoder quotes values that would
// otherwise resolve to another type ("true", "1", "null").
func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func strSeq(items []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, s := range items {
		n.Content = append(n.Content, str(s))
	}
	return n
}

func encode(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
