package determinize

import (
	"reflect"
	"sort"
	"testing"

	"github.com/coregx/detmin/automaton"
)

func mustNew(t *testing.T, kind automaton.Kind, size, alphabet int, trans []automaton.Transition, starts, accepts []automaton.StateID) automaton.Automaton {
	t.Helper()
	a, err := automaton.New(kind, size, alphabet, trans, starts, accepts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func assertSameLanguageShape(t *testing.T, got automaton.Automaton, wantSize, wantAlphabet int, wantTrans []automaton.Transition, wantStarts, wantAccepts []automaton.StateID) {
	t.Helper()
	if got.Kind() != automaton.Det {
		t.Fatalf("expected Det kind, got %v", got.Kind())
	}
	if got.Size() != wantSize {
		t.Fatalf("size: got %d want %d", got.Size(), wantSize)
	}
	if got.Alphabet() != wantAlphabet {
		t.Fatalf("alphabet: got %d want %d", got.Alphabet(), wantAlphabet)
	}
	sort.Slice(wantTrans, func(i, j int) bool {
		a, b := wantTrans[i], wantTrans[j]
		if a.Src != b.Src {
			return a.Src < b.Src
		}
		if a.Sym != b.Sym {
			return a.Sym < b.Sym
		}
		return a.Dst < b.Dst
	})
	if !reflect.DeepEqual(got.Transitions(), wantTrans) {
		t.Fatalf("transitions: got %v want %v", got.Transitions(), wantTrans)
	}
	if !reflect.DeepEqual(got.Starts(), wantStarts) {
		t.Fatalf("starts: got %v want %v", got.Starts(), wantStarts)
	}
	if !reflect.DeepEqual(got.Accepts(), wantAccepts) {
		t.Fatalf("accepts: got %v want %v", got.Accepts(), wantAccepts)
	}
}

// Scenario 1: redundant determinization of an already-deterministic NFA.
func TestRedundantDeterminization(t *testing.T) {
	a := mustNew(t, automaton.NonDet, 1, 2,
		[]automaton.Transition{{0, 1, 0}, {0, 2, 0}},
		[]automaton.StateID{0}, []automaton.StateID{0})

	got := Run(a)
	assertSameLanguageShape(t, got, 1, 2,
		[]automaton.Transition{{0, 1, 0}, {0, 2, 0}},
		[]automaton.StateID{0}, []automaton.StateID{0})
}

// Scenario 2: empty language completion introduces a sink state.
func TestEmptyLanguageCompletion(t *testing.T) {
	a := mustNew(t, automaton.NonDet, 1, 2, nil, []automaton.StateID{0}, []automaton.StateID{0})

	got := Run(a)
	assertSameLanguageShape(t, got, 2, 2,
		[]automaton.Transition{{0, 1, 1}, {0, 2, 1}, {1, 1, 1}, {1, 2, 1}},
		[]automaton.StateID{0}, []automaton.StateID{0})
}

// Scenario 3: unreachable states are pruned.
func TestUnreachablePruning(t *testing.T) {
	a := mustNew(t, automaton.NonDet, 2, 2,
		[]automaton.Transition{{0, 1, 0}, {0, 2, 0}},
		[]automaton.StateID{0}, []automaton.StateID{0})

	got := Run(a)
	assertSameLanguageShape(t, got, 1, 2,
		[]automaton.Transition{{0, 1, 0}, {0, 2, 0}},
		[]automaton.StateID{0}, []automaton.StateID{0})
}

// Scenario 4: ε-closure correctness across a chain of epsilon edges.
func TestEpsilonClosureCorrectness(t *testing.T) {
	a := mustNew(t, automaton.NonDet, 4, 2,
		[]automaton.Transition{
			{0, automaton.Epsilon, 1},
			{0, 1, 2},
			{1, 1, 3},
			{2, 2, 3},
			{3, automaton.Epsilon, 3},
			{3, 1, 3},
			{3, 2, 3},
		},
		[]automaton.StateID{0}, []automaton.StateID{3})

	got := Run(a)
	assertSameLanguageShape(t, got, 4, 2,
		[]automaton.Transition{
			{0, 1, 1}, {0, 2, 2},
			{1, 1, 3}, {1, 2, 3},
			{2, 1, 2}, {2, 2, 2},
			{3, 1, 3}, {3, 2, 3},
		},
		[]automaton.StateID{0}, []automaton.StateID{1, 3})
}

func TestDeterminizeIdempotentUpToIsomorphism(t *testing.T) {
	a := mustNew(t, automaton.NonDet, 4, 2,
		[]automaton.Transition{
			{0, automaton.Epsilon, 1},
			{0, 1, 2},
			{1, 1, 3},
			{2, 2, 3},
		},
		[]automaton.StateID{0}, []automaton.StateID{3})

	once := Run(a)
	twice := Run(once)
	if !reflect.DeepEqual(once.Transitions(), twice.Transitions()) ||
		!reflect.DeepEqual(once.Starts(), twice.Starts()) ||
		!reflect.DeepEqual(once.Accepts(), twice.Accepts()) {
		t.Fatalf("det(det(M)) != det(M):\n%v\nvs\n%v", once, twice)
	}
}
