package minimize

import (
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

// Scenario 5: minimization separates equivalence classes down to 3 blocks.
func TestMinimizeSeparatesEquivalenceClasses(t *testing.T) {
	a := mustNew(t, automaton.Det, 6, 2,
		[]automaton.Transition{
			{0, 1, 3}, {0, 2, 1},
			{1, 1, 2}, {1, 2, 5},
			{2, 1, 2}, {2, 2, 5},
			{3, 1, 0}, {3, 2, 4},
			{4, 1, 2}, {4, 2, 5},
			{5, 1, 5}, {5, 2, 5},
		},
		[]automaton.StateID{0}, []automaton.StateID{1, 2, 4})

	got := Run(a)
	if got.Size() != 3 {
		t.Fatalf("expected 3 states after minimization, got %d (%v)", got.Size(), got)
	}
	if len(got.Accepts()) != 1 {
		t.Fatalf("expected exactly one accepting block, got %v", got.Accepts())
	}
}

// Scenario 6: a DFA already minimal is returned unchanged in size.
func TestMinimumAlreadyAchieved(t *testing.T) {
	a := mustNew(t, automaton.Det, 4, 2,
		[]automaton.Transition{
			{0, 1, 1}, {0, 2, 2},
			{1, 1, 2}, {1, 2, 3},
			{2, 1, 2}, {2, 2, 2},
			{3, 1, 1}, {3, 2, 3},
		},
		[]automaton.StateID{0}, []automaton.StateID{3})

	got := Run(a)
	if got.Size() != 4 {
		t.Fatalf("expected size to remain 4, got %d", got.Size())
	}
}

func TestMinimizeCloneForSmallOrNonDet(t *testing.T) {
	small := mustNew(t, automaton.Det, 2, 1, []automaton.Transition{{0, 1, 1}, {1, 1, 1}}, []automaton.StateID{0}, []automaton.StateID{1})
	if got := Run(small); got.Size() != 2 {
		t.Fatalf("size<=2 should be returned unchanged, got size %d", got.Size())
	}

	nd := mustNew(t, automaton.NonDet, 3, 1, []automaton.Transition{{0, automaton.Epsilon, 1}}, []automaton.StateID{0}, []automaton.StateID{1})
	if got := Run(nd); got.Size() != 3 {
		t.Fatalf("nondeterministic automaton should be returned unchanged, got size %d", got.Size())
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	a := mustNew(t, automaton.Det, 6, 2,
		[]automaton.Transition{
			{0, 1, 3}, {0, 2, 1},
			{1, 1, 2}, {1, 2, 5},
			{2, 1, 2}, {2, 2, 5},
			{3, 1, 0}, {3, 2, 4},
			{4, 1, 2}, {4, 2, 5},
			{5, 1, 5}, {5, 2, 5},
		},
		[]automaton.StateID{0}, []automaton.StateID{1, 2, 4})

	once := Run(a)
	twice := Run(once)
	if once.Size() != twice.Size() {
		t.Fatalf("min(min(M)) size changed: %d vs %d", once.Size(), twice.Size())
	}
	if len(once.Transitions()) != len(twice.Transitions()) {
		t.Fatalf("min(min(M)) transition count changed")
	}
}

func TestMinimizeTransitionBlockIDsInRange(t *testing.T) {
	a := mustNew(t, automaton.Det, 6, 2,
		[]automaton.Transition{
			{0, 1, 3}, {0, 2, 1},
			{1, 1, 2}, {1, 2, 5},
			{2, 1, 2}, {2, 2, 5},
			{3, 1, 0}, {3, 2, 4},
			{4, 1, 2}, {4, 2, 5},
			{5, 1, 5}, {5, 2, 5},
		},
		[]automaton.StateID{0}, []automaton.StateID{1, 2, 4})

	got := Run(a)
	// Every block id referenced by a transition must be < size.
	for _, tr := range got.Transitions() {
		if int(tr.Src) >= got.Size() || int(tr.Dst) >= got.Size() {
			t.Fatalf("transition references out-of-range block: %v", tr)
		}
	}
}

func TestMinimizeUnreachableAndEquivalentSinkStatesMerge(t *testing.T) {
	// States 2 and 3 are unreachable from the start and both dead
	// (non-accepting, looping on themselves forever); Hopcroft must
	// merge them into one block purely from the full transition table,
	// without ever computing reachability from state 0.
	a := mustNew(t, automaton.Det, 4, 1,
		[]automaton.Transition{
			{0, 1, 1},
			{1, 1, 1},
			{2, 1, 3},
			{3, 1, 3},
		},
		[]automaton.StateID{0}, []automaton.StateID{1})

	got := Run(a)
	if got.Size() != 3 {
		t.Fatalf("expected {0},{1},{2,3} = 3 blocks, got %d", got.Size())
	}
}
