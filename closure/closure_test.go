package closure

import (
	"testing"

	"github.com/coregx/detmin/automaton"
	"github.com/coregx/detmin/bitset"
	"github.com/coregx/detmin/transindex"
)

func TestCloseFollowsChainOfEpsilons(t *testing.T) {
	a, err := automaton.New(automaton.NonDet, 4, 1,
		[]automaton.Transition{
			{Src: 0, Sym: automaton.Epsilon, Dst: 1},
			{Src: 1, Sym: automaton.Epsilon, Dst: 2},
			{Src: 2, Sym: 1, Dst: 3},
		},
		[]automaton.StateID{0}, []automaton.StateID{3},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	idx := transindex.Build(a)

	seed := bitset.FromSlice([]int{0})
	got := Close(idx, seed)

	for _, want := range []int{0, 1, 2} {
		if !got.Contains(want) {
			t.Fatalf("closure missing state %d: %v", want, got.Slice())
		}
	}
	if got.Contains(3) {
		t.Fatalf("closure should not cross a non-epsilon edge")
	}
}

func TestCloseTerminatesOnCycle(t *testing.T) {
	a, err := automaton.New(automaton.NonDet, 2, 1,
		[]automaton.Transition{
			{Src: 0, Sym: automaton.Epsilon, Dst: 1},
			{Src: 1, Sym: automaton.Epsilon, Dst: 0},
		},
		[]automaton.StateID{0}, nil,
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	idx := transindex.Build(a)

	got := Close(idx, bitset.FromSlice([]int{0}))
	if got.PopCount() != 2 {
		t.Fatalf("expected both states in the cyclic closure, got %v", got.Slice())
	}
}

func TestCloseOfEmptySeedIsEmpty(t *testing.T) {
	a := automaton.Empty()
	idx := transindex.Build(a)
	got := Close(idx, bitset.Empty())
	if !got.IsEmpty() {
		t.Fatalf("expected empty closure, got %v", got.Slice())
	}
}
