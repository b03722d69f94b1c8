package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/heartmarshall/wordnet-yaml/internal/wnyaml"
)

// File is one rendered output document.
type File struct {
	Name string
	Data []byte
}

// WriteStats counts what Write did.
type WriteStats struct {
	Written    int
	Unchanged  int
	OutOfScope int
}

// Render encodes the documents selected by scope: entry buckets in
// bucket order, lexfiles by name, then frames.yaml, which is always
// included. Nothing is written.
func Render(docs *Documents, scope ChangeScope) ([]File, int, error) {
	var (
		files   []File
		skipped int
	)

	for _, b := range Buckets() {
		if !scope.bucket(b) {
			skipped++
			continue
		}
		doc, ok := docs.Entries[b]
		if !ok {
			doc = &wnyaml.EntryDocument{}
		}
		data, err := wnyaml.MarshalEntries(doc)
		if err != nil {
			return nil, 0, fmt.Errorf("bucket %s: %w", b, err)
		}
		files = append(files, File{Name: wnyaml.EntriesFile(b), Data: data})
	}

	names := make([]string, 0, len(docs.Synsets))
	for name := range docs.Synsets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !scope.lexFile(name) {
			skipped++
			continue
		}
		data, err := wnyaml.MarshalSynsets(docs.Synsets[name])
		if err != nil {
			return nil, 0, fmt.Errorf("lexfile %s: %w", name, err)
		}
		files = append(files, File{Name: wnyaml.LexFile(name), Data: data})
	}

	data, err := wnyaml.MarshalFrames(docs.Frames)
	if err != nil {
		return nil, 0, fmt.Errorf("frames: %w", err)
	}
	files = append(files, File{Name: wnyaml.FramesFile, Data: data})
	return files, skipped, nil
}

// Write renders the documents in scope and writes those whose bytes
// changed into dir, creating it if needed. Every document is encoded
// before the first file is touched.
func Write(dir string, docs *Documents, scope ChangeScope) (WriteStats, error) {
	files, skipped, err := Render(docs, scope)
	if err != nil {
		return WriteStats{}, err
	}
	stats := WriteStats{OutOfScope: skipped}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stats, fmt.Errorf("create output dir: %w", err)
	}
	for _, f := range files {
		changed, err := wnyaml.WriteIfChanged(filepath.Join(dir, f.Name), f.Data)
		if err != nil {
			return stats, err
		}
		if changed {
			stats.Written++
		} else {
			stats.Unchanged++
		}
	}
	return stats, nil
}
