// Package determinize implements the sequential Rabin-Scott subset
// construction: converting an NFA (with optional ε-transitions) into an
// equivalent DFA.
//
// Grounded on dfa/lazy.Builder.Build's start-state/cache-insert sequencing
// and original_source/automaton_sequential.rs's rabin_scott_seq FIFO
// frontier + dedup table, adapted from lazy (on-demand, driven by a
// search) to eager (build the whole DFA up front, per spec.md's
// workload).
package determinize

import (
	"fmt"

	"github.com/coregx/detmin/automaton"
	"github.com/coregx/detmin/bitset"
	"github.com/coregx/detmin/closure"
	"github.com/coregx/detmin/transindex"
)

// Run converts a into an equivalent DFA via subset construction with
// ε-closure. If a is already deterministic, Run returns it unchanged
// (Automaton is an immutable value type, so this is already a clone in
// every sense that matters).
//
// State ids in the result are assigned in FIFO order of first discovery,
// so the start id is always 0, matching spec.md §4.4's ordering
// guarantee.
func Run(a automaton.Automaton) automaton.Automaton {
	if a.Kind() == automaton.Det {
		return a
	}

	idx := transindex.Build(a)
	alphabet := a.Alphabet()

	var seed bitset.BitSet
	for _, s := range a.Starts() {
		seed.Set(int(s))
	}
	start := closure.Close(idx, seed)

	idOf := make(map[string]int)
	var subsets []bitset.BitSet
	var frontier []int

	addSubset := func(s bitset.BitSet) (id int, isNew bool) {
		key := s.Key()
		if id, ok := idOf[key]; ok {
			return id, false
		}
		id = len(subsets)
		idOf[key] = id
		subsets = append(subsets, s)
		return id, true
	}

	var accepts []automaton.StateID
	markIfAccepting := func(id int, s bitset.BitSet) {
		for _, acc := range a.Accepts() {
			if s.Contains(int(acc)) {
				accepts = append(accepts, automaton.StateID(id))
				return
			}
		}
	}

	startID, _ := addSubset(start)
	if startID != 0 {
		panic("determinize: internal error: start subset did not get id 0")
	}
	frontier = append(frontier, startID)
	markIfAccepting(startID, start)

	var transitions []automaton.Transition
	for head := 0; head < len(frontier); head++ {
		uID := frontier[head]
		uSet := subsets[uID]

		for sym := 1; sym <= alphabet; sym++ {
			var reached bitset.BitSet
			uSet.IterAscending(func(q int) bool {
				for _, d := range idx.Forward(automaton.Symbol(sym), automaton.StateID(q)) {
					reached.Set(int(d))
				}
				return true
			})
			v := closure.Close(idx, reached)

			vID, isNew := addSubset(v)
			if isNew {
				markIfAccepting(vID, v)
				frontier = append(frontier, vID)
			}
			transitions = append(transitions, automaton.Transition{
				Src: automaton.StateID(uID),
				Sym: automaton.Symbol(sym),
				Dst: automaton.StateID(vID),
			})
		}
	}

	out, err := automaton.New(automaton.Det, len(subsets), alphabet, transitions, []automaton.StateID{0}, accepts)
	if err != nil {
		// Every id and symbol above was derived from idx/subsets built
		// from a validated input automaton; reaching here is a
		// programming error in this package, not malformed input.
		panic(fmt.Sprintf("determinize: produced invalid automaton: %v", err))
	}
	return out
}
