// Package reconcile turns an imported lexicon with provisional sense ids
// into one with final ids, using the legacy XML files as the authority
// for ordinals. It runs in two stages: Plan computes every final id into
// immutable tables without touching the lexicon, Apply rewrites the
// lexicon from the plan.
package reconcile

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
)

// Stats holds reconciliation statistics for logging.
type Stats struct {
	Senses          int
	ZeroStart       int
	Overridden      int
	ResolvedTargets int
	SenseInverses   int
	SynsetInverses  int
	Relinked        int
	DroppedLinks    int
}

// Reconciler assigns final sense ids and closes relation inverses.
type Reconciler struct {
	codec domain.Codec
	log   *slog.Logger
}

// New creates a Reconciler for the lexicon identified by codec.
func New(codec domain.Codec, log *slog.Logger) *Reconciler {
	return &Reconciler{codec: codec, log: log}
}

// Reconcile plans and applies in one call. On error the lexicon must not
// be serialized; a planning error leaves it untouched.
func (r *Reconciler) Reconcile(lex *domain.Lexicon, members domain.MemberOrders, legacy *LegacyIndex) (Stats, error) {
	plan, err := r.Plan(lex, members, legacy)
	if err != nil {
		return Stats{}, fmt.Errorf("plan: %w", err)
	}
	stats, err := r.Apply(lex, plan)
	if err != nil {
		return stats, fmt.Errorf("apply: %w", err)
	}

	r.log.Info("lexicon reconciled",
		slog.Int("senses", stats.Senses),
		slog.Int("zero_start", stats.ZeroStart),
		slog.Int("overridden", stats.Overridden),
		slog.Int("resolved_targets", stats.ResolvedTargets),
		slog.Int("sense_inverses", stats.SenseInverses),
		slog.Int("synset_inverses", stats.SynsetInverses),
	)
	return stats, nil
}

// Plan is the immutable outcome of stage 1.
type Plan struct {
	oldIDs      map[string]string // sense key -> id before reconciliation
	finalIDs    map[string]string // sense key -> final id
	assignments []assignment
	zeroStart   int
	overridden  int
}

type assignment struct {
	entry *domain.Entry
	sense *domain.Sense
	old   string
	base  string
	final string
}

// OldID returns the id a sense key had before reconciliation.
func (p *Plan) OldID(senseKey string) (string, bool) {
	id, ok := p.oldIDs[senseKey]
	return id, ok
}

// FinalID returns the id a sense key is assigned.
func (p *Plan) FinalID(senseKey string) (string, bool) {
	id, ok := p.finalIDs[senseKey]
	return id, ok
}

// Len returns the number of planned senses.
func (p *Plan) Len() int { return len(p.assignments) }

// Plan computes final ids in lemma-encounter order. The ordinal is the
// position of the entry's lemma in the synset member order, counted from
// zero for zero-start synsets and from one otherwise. A legacy id with the
// same base takes precedence when the synset's lexfile has a legacy file
// containing the entry.
func (r *Reconciler) Plan(lex *domain.Lexicon, members domain.MemberOrders, legacy *LegacyIndex) (*Plan, error) {
	if legacy == nil {
		legacy = EmptyLegacyIndex()
	}
	n := lex.SenseCount()
	p := &Plan{
		oldIDs:      make(map[string]string, n),
		finalIDs:    make(map[string]string, n),
		assignments: make([]assignment, 0, n),
	}
	owner := make(map[string]string, n) // final id -> sense key

	for _, e := range lex.Entries() {
		lemma := e.Lemma.WrittenForm
		for _, s := range e.Senses {
			synset := lex.SynsetByID(s.SynsetID)
			if synset == nil {
				return nil, domain.NewIntegrityError("unknown synset", s.SynsetID)
			}
			order, ok := members[s.SynsetID]
			if !ok {
				return nil, domain.NewIntegrityError("synset without member order", s.SynsetID)
			}
			idx := slices.Index(order, lemma)
			if idx < 0 {
				return nil, domain.NewIntegrityError("lemma not among synset members", lemma+" in "+s.SynsetID)
			}

			base := r.codec.SenseBase(lemma, domain.QualifiedPOS(e.Lemma.PartOfSpeech, s.AdjPosition), r.codec.SynsetKey(s.SynsetID))
			ordinal := idx + 1
			if legacy.ZeroStart(s.SynsetID) {
				ordinal = idx
				p.zeroStart++
			}
			final := domain.WithOrdinal(base, ordinal)
			if id, ok := legacy.Override(synset.LexName, e.ID, base); ok {
				if id != final {
					p.overridden++
				}
				final = id
			}

			if _, dup := p.finalIDs[s.SenseKey]; dup {
				return nil, domain.NewIntegrityError("duplicate sense key", s.SenseKey)
			}
			if key, dup := owner[final]; dup {
				return nil, domain.NewIntegrityError("duplicate sense id", fmt.Sprintf("%s (%s, %s)", final, key, s.SenseKey))
			}
			owner[final] = s.SenseKey

			p.oldIDs[s.SenseKey] = s.ID
			p.finalIDs[s.SenseKey] = final
			p.assignments = append(p.assignments, assignment{
				entry: e,
				sense: s,
				old:   s.ID,
				base:  base,
				final: final,
			})
		}
	}
	return p, nil
}

// Apply rewrites the lexicon from a plan built for it: sense ids and the
// id index, placeholder relation targets, inverse edges and syntactic
// behaviour links, in that order.
func (r *Reconciler) Apply(lex *domain.Lexicon, p *Plan) (Stats, error) {
	stats := Stats{
		Senses:     len(p.assignments),
		ZeroStart:  p.zeroStart,
		Overridden: p.overridden,
	}

	for _, a := range p.assignments {
		a.sense.ID = a.final
	}
	lex.Reindex()

	resolved, err := r.resolveTargets(lex, p)
	stats.ResolvedTargets = resolved
	if err != nil {
		return stats, err
	}

	if stats.SenseInverses, err = CloseSenseRelations(lex); err != nil {
		return stats, err
	}
	if stats.SynsetInverses, err = CloseSynsetRelations(lex); err != nil {
		return stats, err
	}

	stats.Relinked, stats.DroppedLinks = relinkBehaviours(p)
	return stats, nil
}

// resolveTargets replaces sense-key targets with final ids.
func (r *Reconciler) resolveTargets(lex *domain.Lexicon, p *Plan) (int, error) {
	resolved := 0
	for _, e := range lex.Entries() {
		for _, s := range e.Senses {
			for i := range s.Relations {
				target := s.Relations[i].Target
				if r.codec.IsQualified(target) {
					continue
				}
				final, ok := p.finalIDs[target]
				if !ok {
					return resolved, domain.NewIntegrityError("unresolved sense key", target)
				}
				s.Relations[i].Target = final
				resolved++
			}
		}
	}
	return resolved, nil
}

// relinkBehaviours points behaviour sense lists at final ids. A reference
// matches a sense of the same entry by its previous id or by its base.
func relinkBehaviours(p *Plan) (relinked, dropped int) {
	byEntry := make(map[*domain.Entry]map[string]string)
	for _, a := range p.assignments {
		refs, ok := byEntry[a.entry]
		if !ok {
			refs = make(map[string]string)
			byEntry[a.entry] = refs
		}
		refs[a.old] = a.final
		refs[a.base] = a.final
	}

	for e, refs := range byEntry {
		for i := range e.SyntacticBehaviours {
			sb := &e.SyntacticBehaviours[i]
			linked := make([]string, 0, len(sb.Senses))
			for _, ref := range sb.Senses {
				final, ok := refs[ref]
				if !ok {
					final, ok = refs[domain.TrimOrdinal(ref)]
				}
				if !ok {
					dropped++
					continue
				}
				linked = append(linked, final)
				relinked++
			}
			sb.Senses = linked
		}
	}
	return relinked, dropped
}
