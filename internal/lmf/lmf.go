// Package lmf reads lexicon files in the legacy GWN-LMF XML format.
// Identifiers in these files are final; the package never writes them.
package lmf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
)

const dcNamespace = "http://purl.org/dc/elements/1.1/"

// File is one parsed legacy file.
type File struct {
	Path    string
	LexName string
	Lexicon *domain.Lexicon
}

type xmlEntry struct {
	ID    string `xml:"id,attr"`
	Lemma struct {
		WrittenForm  string `xml:"writtenForm,attr"`
		PartOfSpeech string `xml:"partOfSpeech,attr"`
	} `xml:"Lemma"`
	Forms []struct {
		WrittenForm string `xml:"writtenForm,attr"`
	} `xml:"Form"`
	Senses     []xmlSense     `xml:"Sense"`
	Behaviours []xmlBehaviour `xml:"SyntacticBehaviour"`
}

type xmlSense struct {
	ID          string        `xml:"id,attr"`
	Synset      string        `xml:"synset,attr"`
	AdjPosition string        `xml:"adjposition,attr"`
	Attrs       []xml.Attr    `xml:",any,attr"`
	Relations   []xmlRelation `xml:"SenseRelation"`
}

type xmlBehaviour struct {
	Frame  string `xml:"subcategorizationFrame,attr"`
	Senses string `xml:"senses,attr"`
}

type xmlRelation struct {
	Target string `xml:"target,attr"`
	Kind   string `xml:"relType,attr"`
}

type xmlSynset struct {
	ID            string        `xml:"id,attr"`
	ILI           string        `xml:"ili,attr"`
	PartOfSpeech  string        `xml:"partOfSpeech,attr"`
	Attrs         []xml.Attr    `xml:",any,attr"`
	Definitions   []string      `xml:"Definition"`
	ILIDefinition string        `xml:"ILIDefinition"`
	Examples      []xmlExample  `xml:"Example"`
	Relations     []xmlRelation `xml:"SynsetRelation"`
}

type xmlExample struct {
	Text  string     `xml:",chardata"`
	Attrs []xml.Attr `xml:",any,attr"`
}

// Parse reads one legacy file. The lexfile name is taken from a
// "wn-<lexfile>.xml" file name.
func Parse(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	lexName := LexName(path)
	lex, err := Decode(f, lexName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &File{Path: path, LexName: lexName, Lexicon: lex}, nil
}

// LexName derives the lexfile name from a legacy file path.
func LexName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".xml")
	return strings.TrimPrefix(name, "wn-")
}

// Decode streams a GWN-LMF document. Synsets without a dc:subject are
// assigned to lexName.
func Decode(r io.Reader, lexName string) (*domain.Lexicon, error) {
	dec := xml.NewDecoder(r)
	var lex *domain.Lexicon

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read token: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "Lexicon":
			lex = domain.NewLexicon(metadata(start.Attr))
		case "LexicalEntry":
			if lex == nil {
				return nil, fmt.Errorf("LexicalEntry outside Lexicon")
			}
			var raw xmlEntry
			if err := dec.DecodeElement(&raw, &start); err != nil {
				return nil, fmt.Errorf("decode entry: %w", err)
			}
			entry, err := toEntry(raw)
			if err != nil {
				return nil, err
			}
			lex.AddEntry(entry)
		case "Synset":
			if lex == nil {
				return nil, fmt.Errorf("Synset outside Lexicon")
			}
			var raw xmlSynset
			if err := dec.DecodeElement(&raw, &start); err != nil {
				return nil, fmt.Errorf("decode synset: %w", err)
			}
			ss, err := toSynset(raw, lexName)
			if err != nil {
				return nil, err
			}
			if err := lex.AddSynset(ss); err != nil {
				return nil, err
			}
		}
	}

	if lex == nil {
		return nil, fmt.Errorf("no Lexicon element: %w", domain.ErrNotFound)
	}
	return lex, nil
}

func metadata(attrs []xml.Attr) domain.Metadata {
	var m domain.Metadata
	for _, a := range attrs {
		switch a.Name.Local {
		case "id":
			m.ID = a.Value
		case "label":
			m.Label = a.Value
		case "language":
			m.Language = a.Value
		case "email":
			m.Email = a.Value
		case "license":
			m.License = a.Value
		case "version":
			m.Version = a.Value
		case "url":
			m.URL = a.Value
		}
	}
	return m
}

func toEntry(raw xmlEntry) (*domain.Entry, error) {
	if raw.ID == "" {
		return nil, domain.NewFieldError("LexicalEntry", "id")
	}
	pos, err := domain.ParsePartOfSpeech(raw.Lemma.PartOfSpeech)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", raw.ID, err)
	}

	e := &domain.Entry{
		ID:    raw.ID,
		Lemma: domain.Lemma{WrittenForm: raw.Lemma.WrittenForm, PartOfSpeech: pos},
	}
	for _, f := range raw.Forms {
		e.Forms = append(e.Forms, f.WrittenForm)
	}
	for n, rs := range raw.Senses {
		if rs.ID == "" || rs.Synset == "" {
			return nil, domain.NewFieldError("Sense of "+raw.ID, "id/synset")
		}
		s := &domain.Sense{
			ID:          rs.ID,
			SynsetID:    rs.Synset,
			SenseKey:    dcAttr(rs.Attrs, "identifier"),
			N:           n,
			AdjPosition: domain.AdjPosition(rs.AdjPosition),
		}
		for _, rel := range rs.Relations {
			kind := domain.SenseRelType(rel.Kind)
			if !kind.IsValid() {
				continue
			}
			s.AddRelation(domain.SenseRelation{Target: rel.Target, Kind: kind})
		}
		e.Senses = append(e.Senses, s)
	}
	for _, b := range raw.Behaviours {
		e.SyntacticBehaviours = append(e.SyntacticBehaviours, domain.SyntacticBehaviour{
			Frame:  b.Frame,
			Senses: strings.Fields(b.Senses),
		})
	}
	return e, nil
}

func toSynset(raw xmlSynset, lexName string) (*domain.Synset, error) {
	if raw.ID == "" {
		return nil, domain.NewFieldError("Synset", "id")
	}
	pos, err := domain.ParsePartOfSpeech(raw.PartOfSpeech)
	if err != nil {
		return nil, fmt.Errorf("synset %s: %w", raw.ID, err)
	}

	ss := &domain.Synset{
		ID:            raw.ID,
		ILI:           raw.ILI,
		PartOfSpeech:  pos,
		LexName:       lexName,
		Source:        dcAttr(raw.Attrs, "source"),
		Definitions:   raw.Definitions,
		ILIDefinition: raw.ILIDefinition,
	}
	if subject := dcAttr(raw.Attrs, "subject"); subject != "" {
		ss.LexName = subject
	}
	if ss.ILI == "" {
		ss.ILI = domain.ILIUnassigned
	}
	for _, ex := range raw.Examples {
		ss.Examples = append(ss.Examples, domain.Example{
			Text:   ex.Text,
			Source: dcAttr(ex.Attrs, "source"),
		})
	}
	for _, rel := range raw.Relations {
		kind := domain.SynsetRelType(rel.Kind)
		if !kind.IsValid() {
			continue
		}
		ss.AddRelation(domain.SynsetRelation{Target: rel.Target, Kind: kind})
	}
	return ss, nil
}

// dcAttr finds a Dublin Core attribute whether or not the document
// declares the dc namespace.
func dcAttr(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local && (a.Name.Space == dcNamespace || a.Name.Space == "dc") {
			return a.Value
		}
	}
	return ""
}
