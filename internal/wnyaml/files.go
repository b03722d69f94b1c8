package wnyaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FramesFile is the name of the frame pattern document.
const FramesFile = "frames.yaml"

const (
	entriesPrefix = "entries-"
	yamlExt       = ".yaml"
)

// EntriesFile returns the file name of an entry bucket ("a".."z", "0").
func EntriesFile(bucket string) string {
	return entriesPrefix + bucket + yamlExt
}

// LexFile returns the file name of a lexicographer file document.
func LexFile(lexName string) string {
	return lexName + yamlExt
}

// Source is the full set of YAML documents of a lexicon, in file name order.
type Source struct {
	// Frames is nil when frames.yaml does not exist.
	Frames  *FramesDocument
	Entries []NamedEntries
	Synsets []NamedSynsets
}

// NamedEntries is an entries document with its bucket name.
type NamedEntries struct {
	Bucket string
	Doc    *EntryDocument
}

// NamedSynsets is a lexicographer file document with its lexfile name.
type NamedSynsets struct {
	LexName string
	Doc     *SynsetDocument
}

// ReadDir loads every YAML document in dir. Files are visited in
// lexical order so the resulting lexicon is deterministic.
func ReadDir(dir string) (*Source, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	src := &Source{}
	for _, it := range items {
		name := it.Name()
		if it.IsDir() || !strings.HasSuffix(name, yamlExt) {
			continue
		}
		path := filepath.Join(dir, name)
		base := strings.TrimSuffix(name, yamlExt)

		switch {
		case name == FramesFile:
			doc, err := readFile(path, DecodeFrames)
			if err != nil {
				return nil, err
			}
			src.Frames = doc
		case strings.HasPrefix(name, entriesPrefix):
			doc, err := readFile(path, DecodeEntries)
			if err != nil {
				return nil, err
			}
			src.Entries = append(src.Entries, NamedEntries{
				Bucket: strings.TrimPrefix(base, entriesPrefix),
				Doc:    doc,
			})
		default:
			doc, err := readFile(path, DecodeSynsets)
			if err != nil {
				return nil, err
			}
			src.Synsets = append(src.Synsets, NamedSynsets{LexName: base, Doc: doc})
		}
	}
	return src, nil
}

func readFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	doc, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteIfChanged writes data to path unless the file already holds exactly
// these bytes, so untouched documents keep their timestamps.
func WriteIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
