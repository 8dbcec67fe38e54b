// Package automaton defines the shared in-memory representation of finite
// automata used by the determinization and minimization engines: the
// Kind/Symbol/StateID vocabulary, the Transition triple, and the
// Automaton value type itself.
//
// Automaton values are immutable once constructed: New validates and
// normalizes its input (transitions sorted, starts/accepts deduplicated
// and sorted ascending) so that every value handed to a determinizer or
// the minimizer already satisfies the invariants in spec.md §3.
package automaton

import (
	"fmt"
	"sort"

	"github.com/coregx/detmin/internal/conv"
)

// Kind distinguishes deterministic from nondeterministic automata.
type Kind uint8

const (
	// Det is a deterministic finite automaton: at most one destination
	// per (source, symbol) pair, symbol != 0, no ε-transitions.
	Det Kind = iota
	// NonDet is a nondeterministic finite automaton, possibly with
	// ε-transitions (symbol 0).
	NonDet
)

func (k Kind) String() string {
	switch k {
	case Det:
		return "det"
	case NonDet:
		return "nondet"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Symbol is a transition label. Symbol 0 is reserved for ε and is only
// valid on a NonDet automaton. Ordinary symbols are in [1, Alphabet].
type Symbol int32

// Epsilon is the reserved ε-transition symbol.
const Epsilon Symbol = 0

// StateID is a state index, dense within [0, Size) for its automaton.
type StateID int32

// Transition is a (source, symbol, destination) triple. Duplicate
// transitions within an automaton's table are harmless; every producing
// algorithm in this module eliminates them on output.
type Transition struct {
	Src StateID
	Sym Symbol
	Dst StateID
}

func lessTransition(a, b Transition) bool {
	if a.Src != b.Src {
		return a.Src < b.Src
	}
	if a.Sym != b.Sym {
		return a.Sym < b.Sym
	}
	return a.Dst < b.Dst
}

// Automaton is an immutable finite automaton: a kind tag, a state count,
// an alphabet size, a transition table, and ordered sets of start and
// accepting states. Construct one with New or Empty; zero values are
// not valid automata.
type Automaton struct {
	kind        Kind
	size        int32
	alphabet    int32
	transitions []Transition
	starts      []StateID
	accepts     []StateID
}

// New validates and normalizes the given fields into an Automaton,
// returning a *ValidationError wrapping one of the sentinel errors in
// error.go if any state id, symbol, or ε/kind combination is malformed.
//
// Normalization sorts transitions lexicographically by (Src, Sym, Dst)
// and deduplicates them; starts and accepts are deduplicated and sorted
// ascending. This is the only constructor every other package in this
// module trusts: once an Automaton exists, its invariants hold.
func New(kind Kind, size, alphabet int, transitions []Transition, starts, accepts []StateID) (Automaton, error) {
	if size < 0 {
		return Automaton{}, &ValidationError{Field: "size", Value: int64(size), Err: ErrStateOutOfRange}
	}
	if alphabet < 0 {
		return Automaton{}, &ValidationError{Field: "alphabet", Value: int64(alphabet), Err: ErrSymbolOutOfRange}
	}

	for i, t := range transitions {
		if int(t.Src) < 0 || int(t.Src) >= size {
			return Automaton{}, &ValidationError{Field: fmt.Sprintf("transitions[%d].Src", i), Value: int64(t.Src), Err: ErrStateOutOfRange}
		}
		if int(t.Dst) < 0 || int(t.Dst) >= size {
			return Automaton{}, &ValidationError{Field: fmt.Sprintf("transitions[%d].Dst", i), Value: int64(t.Dst), Err: ErrStateOutOfRange}
		}
		if t.Sym == Epsilon {
			if kind == Det {
				return Automaton{}, &ValidationError{Field: fmt.Sprintf("transitions[%d].Sym", i), Value: int64(t.Sym), Err: ErrEpsilonOnDet}
			}
		} else if int(t.Sym) < 1 || int(t.Sym) > alphabet {
			return Automaton{}, &ValidationError{Field: fmt.Sprintf("transitions[%d].Sym", i), Value: int64(t.Sym), Err: ErrSymbolOutOfRange}
		}
	}
	for i, s := range starts {
		if int(s) < 0 || int(s) >= size {
			return Automaton{}, &ValidationError{Field: fmt.Sprintf("starts[%d]", i), Value: int64(s), Err: ErrStateOutOfRange}
		}
	}
	for i, s := range accepts {
		if int(s) < 0 || int(s) >= size {
			return Automaton{}, &ValidationError{Field: fmt.Sprintf("accepts[%d]", i), Value: int64(s), Err: ErrStateOutOfRange}
		}
	}
	if len(starts) == 0 && size > 0 {
		return Automaton{}, &ValidationError{Field: "starts", Value: 0, Err: ErrNoStarts}
	}

	normStarts := dedupSortStates(starts)
	if kind == Det && size > 0 && len(normStarts) != 1 {
		return Automaton{}, &ValidationError{Field: "starts", Value: int64(len(normStarts)), Err: ErrMultipleStarts}
	}

	normTrans := append([]Transition(nil), transitions...)
	sort.Slice(normTrans, func(i, j int) bool { return lessTransition(normTrans[i], normTrans[j]) })
	normTrans = dedupTransitions(normTrans)

	if kind == Det {
		type srcSym struct {
			src StateID
			sym Symbol
		}
		seen := make(map[srcSym]bool, len(normTrans))
		for _, t := range normTrans {
			key := srcSym{t.Src, t.Sym}
			if seen[key] {
				return Automaton{}, &ValidationError{Field: "transitions", Value: int64(t.Src), Err: ErrNotDeterministic}
			}
			seen[key] = true
		}
	}

	return Automaton{
		kind:        kind,
		size:        conv.IntToInt32(size),
		alphabet:    conv.IntToInt32(alphabet),
		transitions: normTrans,
		starts:      normStarts,
		accepts:     dedupSortStates(accepts),
	}, nil
}

func dedupSortStates(s []StateID) []StateID {
	if len(s) == 0 {
		return nil
	}
	out := append([]StateID(nil), s...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	w := 1
	for r := 1; r < len(out); r++ {
		if out[r] != out[w-1] {
			out[w] = out[r]
			w++
		}
	}
	return out[:w]
}

func dedupTransitions(sorted []Transition) []Transition {
	if len(sorted) == 0 {
		return nil
	}
	w := 1
	for r := 1; r < len(sorted); r++ {
		if sorted[r] != sorted[w-1] {
			sorted[w] = sorted[r]
			w++
		}
	}
	return sorted[:w]
}

// Empty returns the zero-state, zero-symbol automaton recognizing the
// empty language. spec.md §7 requires this exact value on parse failure,
// and every component in this module (determinize, minimize, format) must
// process it without error.
func Empty() Automaton {
	a, err := New(Det, 0, 0, nil, nil, nil)
	if err != nil {
		panic(err)
	}
	return a
}

// Kind returns whether the automaton is deterministic.
func (a Automaton) Kind() Kind { return a.kind }

// Size returns the number of states; state ids range over [0, Size).
func (a Automaton) Size() int { return int(a.size) }

// Alphabet returns the alphabet size A; ordinary symbols are in [1, A].
func (a Automaton) Alphabet() int { return int(a.alphabet) }

// Transitions returns the normalized transition table. The returned
// slice must not be mutated by the caller.
func (a Automaton) Transitions() []Transition { return a.transitions }

// Starts returns the sorted, deduplicated start states.
func (a Automaton) Starts() []StateID { return a.starts }

// Accepts returns the sorted, deduplicated accepting states.
func (a Automaton) Accepts() []StateID { return a.accepts }

// IsAccepting reports whether s is an accepting state.
func (a Automaton) IsAccepting(s StateID) bool {
	i := sort.Search(len(a.accepts), func(i int) bool { return a.accepts[i] >= s })
	return i < len(a.accepts) && a.accepts[i] == s
}

// String renders a debug representation; it is not the textual exchange
// format (see package format for that).
func (a Automaton) String() string {
	return fmt.Sprintf("Automaton{kind=%s, size=%d, alphabet=%d, transitions=%d, starts=%v, accepts=%v}",
		a.kind, a.size, a.alphabet, len(a.transitions), a.starts, a.accepts)
}
