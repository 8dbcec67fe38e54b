// Package transindex precomputes the forward and reverse adjacency of an
// automaton's transition table so that determinization and minimization
// never re-scan the flat transition list while expanding a subset state or
// splitting a partition block.
//
// Build is the only entry point; the result is read-only and is typically
// dropped at the end of the algorithm that built it, matching the
// lifecycle in spec.md §3 ("built once per input automaton; read-only
// thereafter").
package transindex

import "github.com/coregx/detmin/automaton"

// Index holds the forward and reverse adjacency of an Automaton, each
// dimensioned (A+1) x (N+1) and indexed [symbol][state] per spec.md §3 --
// the extra row/column keep ε (symbol 0) and any size-th sentinel lookup
// always in range without a bounds check in hot loops.
type Index struct {
	alphabet int
	size     int
	// forward[sym][src] is the ordered list of dst such that (src, sym, dst)
	// is a transition.
	forward [][][]automaton.StateID
	// reverse[sym][dst] is the ordered list of src such that (src, sym, dst)
	// is a transition.
	reverse [][][]automaton.StateID
}

// Build constructs an Index from a's transition table. Lists are left in
// the order transitions appear in a.Transitions() (already sorted by New);
// duplicates are not removed, which is harmless for determinization and
// cannot occur in a DFA's reverse index since New rejects non-deterministic
// DFA tables.
func Build(a automaton.Automaton) *Index {
	alphabet := a.Alphabet()
	size := a.Size()

	idx := &Index{
		alphabet: alphabet,
		size:     size,
		forward:  newAdjacency(alphabet, size),
		reverse:  newAdjacency(alphabet, size),
	}
	for _, t := range a.Transitions() {
		sym := int(t.Sym)
		idx.forward[sym][int(t.Src)] = append(idx.forward[sym][int(t.Src)], t.Dst)
		idx.reverse[sym][int(t.Dst)] = append(idx.reverse[sym][int(t.Dst)], t.Src)
	}
	return idx
}

func newAdjacency(alphabet, size int) [][][]automaton.StateID {
	arr := make([][][]automaton.StateID, alphabet+1)
	for sym := range arr {
		arr[sym] = make([][]automaton.StateID, size+1)
	}
	return arr
}

// Forward returns the ordered list of destinations reachable from src on
// sym. The returned slice must not be mutated.
func (idx *Index) Forward(sym automaton.Symbol, src automaton.StateID) []automaton.StateID {
	return idx.forward[int(sym)][int(src)]
}

// Reverse returns the ordered list of sources that reach dst on sym. The
// returned slice must not be mutated.
func (idx *Index) Reverse(sym automaton.Symbol, dst automaton.StateID) []automaton.StateID {
	return idx.reverse[int(sym)][int(dst)]
}

// Alphabet returns the alphabet size the index was built for.
func (idx *Index) Alphabet() int { return idx.alphabet }

// Size returns the state count the index was built for.
func (idx *Index) Size() int { return idx.size }
