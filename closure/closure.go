// Package closure computes ε-closures over a transindex.Index: given a set
// of NFA states, extend it with every state reachable along zero or more
// ε-transitions (automaton.Epsilon, symbol 0).
//
// Both determinize and determinizepar call Close with the identical
// worklist shape, grounded on dfa/lazy.Builder.epsilonClosure's
// mark-before-recurse discipline (mark a state visited before pushing its
// successors, so cyclic ε-graphs terminate in O(|ε-edges|)).
package closure

import (
	"github.com/coregx/detmin/automaton"
	"github.com/coregx/detmin/bitset"
	"github.com/coregx/detmin/transindex"
)

// Close returns the smallest superset of seed closed under idx's
// ε-transitions (Forward(automaton.Epsilon, ·)). seed is not mutated; the
// result is a new BitSet.
func Close(idx *transindex.Index, seed bitset.BitSet) bitset.BitSet {
	result := seed.Clone()
	worklist := seed.Slice()

	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, next := range idx.Forward(automaton.Epsilon, automaton.StateID(s)) {
			if !result.Contains(int(next)) {
				result.Set(int(next))
				worklist = append(worklist, int(next))
			}
		}
	}
	return result
}
