package determinizepar

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/coregx/detmin/automaton"
	"github.com/coregx/detmin/determinize"
	"github.com/coregx/detmin/minimize"
)

func mustNew(t *testing.T, kind automaton.Kind, size, alphabet int, trans []automaton.Transition, starts, accepts []automaton.StateID) automaton.Automaton {
	t.Helper()
	a, err := automaton.New(kind, size, alphabet, trans, starts, accepts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func sampleNFA(t *testing.T) automaton.Automaton {
	t.Helper()
	return mustNew(t, automaton.NonDet, 6, 2,
		[]automaton.Transition{
			{0, automaton.Epsilon, 1},
			{0, 1, 2},
			{1, 1, 3},
			{2, 2, 3},
			{3, automaton.Epsilon, 4},
			{4, 1, 5},
			{4, 2, 5},
			{5, 1, 5},
			{5, 2, 5},
		},
		[]automaton.StateID{0}, []automaton.StateID{3, 5})
}

// canonicalForm renumbers a's reachable states by BFS discovery order
// (following symbols 1..Alphabet in order), producing a string that is
// equal for two automata iff they are isomorphic as complete DFAs. Used
// to compare the parallel determinizer's output against the sequential
// one without depending on either's particular id assignment.
func canonicalForm(t *testing.T, a automaton.Automaton) string {
	t.Helper()
	if a.Kind() != automaton.Det {
		t.Fatalf("canonicalForm: expected a deterministic automaton, got %v", a.Kind())
	}
	if len(a.Starts()) != 1 {
		t.Fatalf("canonicalForm: expected exactly one start state, got %v", a.Starts())
	}

	adj := make(map[automaton.StateID]map[automaton.Symbol]automaton.StateID)
	for _, tr := range a.Transitions() {
		if adj[tr.Src] == nil {
			adj[tr.Src] = make(map[automaton.Symbol]automaton.StateID)
		}
		adj[tr.Src][tr.Sym] = tr.Dst
	}

	renumber := map[automaton.StateID]int{a.Starts()[0]: 0}
	order := []automaton.StateID{a.Starts()[0]}
	for i := 0; i < len(order); i++ {
		src := order[i]
		for sym := automaton.Symbol(1); int(sym) <= a.Alphabet(); sym++ {
			dst, ok := adj[src][sym]
			if !ok {
				continue
			}
			if _, seen := renumber[dst]; !seen {
				renumber[dst] = len(order)
				order = append(order, dst)
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "states=%d alphabet=%d\n", len(order), a.Alphabet())
	for _, src := range order {
		for sym := automaton.Symbol(1); int(sym) <= a.Alphabet(); sym++ {
			dst, ok := adj[src][sym]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "%d -%d-> %d\n", renumber[src], sym, renumber[dst])
		}
	}

	accSet := make(map[automaton.StateID]bool)
	for _, acc := range a.Accepts() {
		accSet[acc] = true
	}
	var accNums []int
	for _, s := range order {
		if accSet[s] {
			accNums = append(accNums, renumber[s])
		}
	}
	sort.Ints(accNums)
	fmt.Fprintf(&sb, "accepts=%v\n", accNums)
	return sb.String()
}

// Property from spec.md §8/§9: min(det_K(M)) is the same DFA, up to state
// numbering, for every shard count K, including the sequential case
// (K == 1 here exercises the same sharded code path with one partition).
func TestDeterminizeParMatchesSequentialAfterMinimization(t *testing.T) {
	nfa := sampleNFA(t)
	want := canonicalForm(t, minimize.Run(determinize.Run(nfa)))

	for _, shards := range []int{1, 2, 3, 5} {
		got, err := Run(nfa, Config{Shards: shards})
		if err != nil {
			t.Fatalf("Run(shards=%d): %v", shards, err)
		}
		gotForm := canonicalForm(t, minimize.Run(got))
		if gotForm != want {
			t.Fatalf("shards=%d: canonical form mismatch\ngot:\n%s\nwant:\n%s", shards, gotForm, want)
		}
	}
}

func TestDeterminizeParAlreadyDeterministic(t *testing.T) {
	dfa := mustNew(t, automaton.Det, 2, 1,
		[]automaton.Transition{{0, 1, 1}, {1, 1, 1}},
		[]automaton.StateID{0}, []automaton.StateID{1})

	got, err := Run(dfa, DefaultConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Size() != 2 {
		t.Fatalf("expected unchanged DFA, got size %d", got.Size())
	}
}

func TestDeterminizeParRejectsInvalidConfig(t *testing.T) {
	nfa := sampleNFA(t)
	if _, err := Run(nfa, Config{Shards: 0}); err == nil {
		t.Fatalf("expected error for zero shards")
	}
}

func TestDeterminizeParStartIsGlobalZero(t *testing.T) {
	nfa := sampleNFA(t)
	got, err := Run(nfa, Config{Shards: 4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Starts()[0] != 0 {
		t.Fatalf("expected start state 0, got %v", got.Starts())
	}
}

// A single-state start subset with a large shard count exercises shards
// that never discover any subset at all; Run must still terminate and
// produce a correct, minimal-in-this-case automaton.
func TestDeterminizeParManyShardsNoWork(t *testing.T) {
	a := mustNew(t, automaton.NonDet, 1, 1, nil, []automaton.StateID{0}, []automaton.StateID{0})

	got, err := Run(a, Config{Shards: 16})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Size() != 2 {
		t.Fatalf("expected completion to add one sink state, got size %d", got.Size())
	}
}
