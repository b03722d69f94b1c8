package reconcile

import (
	"github.com/heartmarshall/wordnet-yaml/internal/domain"
)

// CloseSenseRelations adds, for every sense relation whose kind declares a
// distinct inverse, the inverse edge on the target sense unless an edge with
// the same kind and target already exists. Of the self-inverse kinds only
// antonym is closed; also, similar and the rest stay as written.
// Targets must be final sense ids. It returns the number of edges added.
func CloseSenseRelations(lex *domain.Lexicon) (int, error) {
	added := 0
	for _, e := range lex.Entries() {
		for _, s := range e.Senses {
			// edges appended to s during the loop are inverses themselves
			n := len(s.Relations)
			for i := 0; i < n; i++ {
				rel := s.Relations[i]
				if !closesSense(rel.Kind) {
					continue
				}
				inv, _ := rel.Kind.Inverse()
				target := lex.SenseByID(rel.Target)
				if target == nil {
					return added, domain.NewIntegrityError("sense relation target", rel.Target)
				}
				if target.HasRelation(s.ID, inv) {
					continue
				}
				target.AddRelation(domain.SenseRelation{Target: s.ID, Kind: inv})
				added++
			}
		}
	}
	return added, nil
}

// CloseSynsetRelations is CloseSenseRelations for synset relations, except
// that no self-inverse synset kind is closed.
func CloseSynsetRelations(lex *domain.Lexicon) (int, error) {
	added := 0
	for _, ss := range lex.Synsets() {
		n := len(ss.Relations)
		for i := 0; i < n; i++ {
			rel := ss.Relations[i]
			inv, ok := rel.Kind.Inverse()
			if !ok || inv == rel.Kind {
				continue
			}
			target := lex.SynsetByID(rel.Target)
			if target == nil {
				return added, domain.NewIntegrityError("synset relation target", rel.Target)
			}
			if target.HasRelation(ss.ID, inv) {
				continue
			}
			target.AddRelation(domain.SynsetRelation{Target: ss.ID, Kind: inv})
			added++
		}
	}
	return added, nil
}

func closesSense(kind domain.SenseRelType) bool {
	inv, ok := kind.Inverse()
	if !ok {
		return false
	}
	return inv != kind || kind == domain.SenseRelAntonym
}
