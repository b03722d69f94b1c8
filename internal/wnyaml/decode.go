package wnyaml

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeFrames reads a frames document.
func DecodeFrames(r io.Reader) (*FramesDocument, error) {
	root, err := documentRoot(r)
	if err != nil {
		return nil, err
	}
	doc := &FramesDocument{}
	err = eachPair(root, func(label string, v *yaml.Node) error {
		pattern, err := scalar(v)
		if err != nil {
			return fmt.Errorf("frame %q: %w", label, err)
		}
		doc.Frames = append(doc.Frames, FrameRecord{Label: label, Pattern: pattern})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeEntries reads an entries document, keeping lemma and
// part-of-speech order as found in the file.
func DecodeEntries(r io.Reader) (*EntryDocument, error) {
	root, err := documentRoot(r)
	if err != nil {
		return nil, err
	}
	doc := &EntryDocument{}
	err = eachPair(root, func(lemma string, posMap *yaml.Node) error {
		lr := LemmaRecord{Lemma: lemma}
		err := eachPair(posMap, func(pos string, v *yaml.Node) error {
			rec, err := decodeEntryRecord(pos, v)
			if err != nil {
				return err
			}
			lr.Entries = append(lr.Entries, rec)
			return nil
		})
		if err != nil {
			return fmt.Errorf("lemma %q: %w", lemma, err)
		}
		doc.Lemmas = append(doc.Lemmas, lr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeEntryRecord(pos string, n *yaml.Node) (EntryRecord, error) {
	rec := EntryRecord{PartOfSpeech: pos}
	err := eachPair(n, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case keyForm:
			rec.Forms, err = stringList(v)
		case keySense:
			rec.Senses, err = decodeSenses(v)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return EntryRecord{}, fmt.Errorf("pos %q: %w", pos, err)
	}
	return rec, nil
}

func decodeSenses(n *yaml.Node) ([]SenseRecord, error) {
	n = resolve(n)
	if err := expectKind(n, yaml.SequenceNode); err != nil {
		return nil, err
	}
	senses := make([]SenseRecord, 0, len(n.Content))
	for i, item := range n.Content {
		s, err := decodeSense(item)
		if err != nil {
			return nil, fmt.Errorf("sense %d: %w", i, err)
		}
		senses = append(senses, s)
	}
	return senses, nil
}

func decodeSense(n *yaml.Node) (SenseRecord, error) {
	var s SenseRecord
	err := eachPair(n, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case keySynset:
			s.Synset, err = scalar(v)
		case keyID:
			s.ID, err = scalar(v)
		case keyAdjPosition:
			s.AdjPosition, err = scalar(v)
		case keySubcat:
			s.Subcat, err = stringList(v)
		default:
			if rel, ok := relationRecord(key, v); ok {
				s.Relations = append(s.Relations, rel)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
	return s, err
}

// DecodeSynsets reads one lexicographer file document.
func DecodeSynsets(r io.Reader) (*SynsetDocument, error) {
	root, err := documentRoot(r)
	if err != nil {
		return nil, err
	}
	doc := &SynsetDocument{}
	err = eachPair(root, func(key string, v *yaml.Node) error {
		rec, err := decodeSynset(key, v)
		if err != nil {
			return fmt.Errorf("synset %q: %w", key, err)
		}
		doc.Synsets = append(doc.Synsets, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeSynset(key string, n *yaml.Node) (SynsetRecord, error) {
	rec := SynsetRecord{Key: key}
	err := eachPair(n, func(k string, v *yaml.Node) error {
		var err error
		switch k {
		case keyILI:
			rec.ILI, err = scalar(v)
		case keyPartOfSpeech:
			rec.PartOfSpeech, err = scalar(v)
		case keyDefinition:
			rec.Definitions, err = stringList(v)
		case keyExample:
			rec.Examples, err = decodeExamples(v)
		case keySource:
			rec.Source, err = scalar(v)
		case keyMembers:
			rec.Members, err = stringList(v)
		default:
			if rel, ok := relationRecord(k, v); ok {
				rec.Relations = append(rec.Relations, rel)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		return nil
	})
	return rec, err
}

func decodeExamples(n *yaml.Node) ([]ExampleRecord, error) {
	n = resolve(n)
	if err := expectKind(n, yaml.SequenceNode); err != nil {
		return nil, err
	}
	out := make([]ExampleRecord, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolve(item)
		if item.Kind == yaml.ScalarNode {
			out = append(out, ExampleRecord{Text: item.Value})
			continue
		}
		var ex ExampleRecord
		err := eachPair(item, func(k string, v *yaml.Node) error {
			var err error
			switch k {
			case keyText:
				ex.Text, err = scalar(v)
			case keySource:
				ex.Source, err = scalar(v)
			}
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("example: %w", err)
		}
		out = append(out, ex)
	}
	return out, nil
}

// relationRecord accepts a list of targets or a single scalar target.
// Any other shape is not a relation and is ignored.
func relationRecord(kind string, n *yaml.Node) (RelationRecord, bool) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return RelationRecord{Kind: kind, Targets: []string{n.Value}}, true
	case yaml.SequenceNode:
		targets, err := stringList(n)
		if err != nil {
			return RelationRecord{}, false
		}
		return RelationRecord{Kind: kind, Targets: targets}, true
	}
	return RelationRecord{}, false
}

// ---------------------------------------------------------------------------
// Node helpers
// ---------------------------------------------------------------------------

// documentRoot decodes r and returns its top-level mapping, or an empty
// mapping for an empty document.
func documentRoot(r io.Reader) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &yaml.Node{Kind: yaml.MappingNode}, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode}, nil
	}
	root := resolve(doc.Content[0])
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return &yaml.Node{Kind: yaml.MappingNode}, nil
	}
	if err := expectKind(root, yaml.MappingNode); err != nil {
		return nil, err
	}
	return root, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	n = resolve(n)
	if err := expectKind(n, yaml.MappingNode); err != nil {
		return err
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func scalar(n *yaml.Node) (string, error) {
	n = resolve(n)
	if err := expectKind(n, yaml.ScalarNode); err != nil {
		return "", err
	}
	return n.Value, nil
}

// stringList returns a non-nil slice for a present (possibly empty) sequence.
func stringList(n *yaml.Node) ([]string, error) {
	n = resolve(n)
	if err := expectKind(n, yaml.SequenceNode); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		s, err := scalar(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func expectKind(n *yaml.Node, want yaml.Kind) error {
	if n.Kind != want {
		return fmt.Errorf("line %d: expected %s, got %s", n.Line, kindName(want), kindName(n.Kind))
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
