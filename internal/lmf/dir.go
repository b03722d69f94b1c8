package lmf

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
)

// FilePattern matches legacy lexicon files inside a directory.
const FilePattern = "wn-*.xml"

// ParseDir parses every legacy file in dir concurrently. Files are
// independent; the result keeps file name order. A missing directory
// yields no files.
func ParseDir(ctx context.Context, dir string) ([]*File, error) {
	paths, err := filepath.Glob(filepath.Join(dir, FilePattern))
	if err != nil {
		return nil, fmt.Errorf("glob legacy files: %w", err)
	}
	slices.Sort(paths)

	files := make([]*File, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := Parse(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Merge combines legacy files into one lexicon with meta as its metadata.
// An entry split across files (one per lexfile) becomes a single entry
// whose senses keep file order.
func Merge(meta domain.Metadata, files []*File) (*domain.Lexicon, error) {
	lex := domain.NewLexicon(meta)

	var order []*domain.Entry
	byID := make(map[string]*domain.Entry)
	for _, f := range files {
		for _, e := range f.Lexicon.Entries() {
			merged, ok := byID[e.ID]
			if !ok {
				merged = &domain.Entry{ID: e.ID, Lemma: e.Lemma}
				byID[e.ID] = merged
				order = append(order, merged)
			}
			for _, form := range e.Forms {
				if !slices.Contains(merged.Forms, form) {
					merged.Forms = append(merged.Forms, form)
				}
			}
			for _, s := range e.Senses {
				s.N = len(merged.Senses)
				merged.Senses = append(merged.Senses, s)
			}
			for _, sb := range e.SyntacticBehaviours {
				mergeBehaviour(merged, sb)
			}
		}
	}
	for _, e := range order {
		lex.AddEntry(e)
	}

	for _, f := range files {
		for _, ss := range f.Lexicon.Synsets() {
			if err := lex.AddSynset(ss); err != nil {
				return nil, fmt.Errorf("%s: %w", filepath.Base(f.Path), err)
			}
		}
	}
	return lex, nil
}

func mergeBehaviour(e *domain.Entry, sb domain.SyntacticBehaviour) {
	for i := range e.SyntacticBehaviours {
		if e.SyntacticBehaviours[i].Frame == sb.Frame {
			e.SyntacticBehaviours[i].Senses = append(e.SyntacticBehaviours[i].Senses, sb.Senses...)
			return
		}
	}
	e.SyntacticBehaviours = append(e.SyntacticBehaviours, domain.SyntacticBehaviour{
		Frame:  sb.Frame,
		Senses: slices.Clone(sb.Senses),
	})
}
