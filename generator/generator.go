// Package generator builds synthetic benchmark automata of a
// controllable size, for feeding cmd/automaton's timing mode without
// requiring a hand-written input file.
//
// original_source/tpn.rs and transition_graphs.rs both sketch a
// buffer-and-stack automaton over permutation configurations but never
// finish it -- both end in Automaton::empty() with TODO markers where the
// buffer-to-stack and input-to-buffer transitions should be. This package
// keeps their two bounded resources (a buffer of capacity b, a stack of
// capacity n) and their three-operation vocabulary (load the buffer, move
// a buffer token onto the stack, pop the stack), but finishes the
// construction as a direct grid indexing instead of an open-ended
// BFS over permutation states, which keeps the generator deterministic,
// total, and sized exactly by its two parameters -- see DESIGN.md.
package generator

import "github.com/coregx/detmin/automaton"

// Symbols for BufferStack: 1 loads a token into the buffer (clamped at
// capacity b), 2 moves a token from the buffer onto the stack (clamped at
// capacity n; a no-op if the buffer is empty), 3 pops the stack (a no-op
// if the stack is empty).
const (
	bsSymLoad automaton.Symbol = 1
	bsSymPush automaton.Symbol = 2
	bsSymPop  automaton.Symbol = 3
)

// BufferStack builds a DFA whose states are (bufLen, stackLen) pairs with
// bufLen in [0, b] and stackLen in [0, n]: (b+1)*(n+1) states total, three
// symbols, total everywhere (every operation clamps instead of getting
// stuck), with the single state (0, 0) as both start and sole accept --
// the configuration where the buffer and stack have both drained.
func BufferStack(b, n int) automaton.Automaton {
	if b < 0 || n < 0 {
		panic("generator: BufferStack: b and n must be non-negative")
	}

	width := n + 1
	id := func(bufLen, stackLen int) automaton.StateID {
		return automaton.StateID(bufLen*width + stackLen)
	}
	size := (b + 1) * width

	var transitions []automaton.Transition
	for bufLen := 0; bufLen <= b; bufLen++ {
		for stackLen := 0; stackLen <= n; stackLen++ {
			src := id(bufLen, stackLen)

			loadBuf := bufLen
			if loadBuf < b {
				loadBuf++
			}
			transitions = append(transitions, automaton.Transition{Src: src, Sym: bsSymLoad, Dst: id(loadBuf, stackLen)})

			pushBuf, pushStack := bufLen, stackLen
			if bufLen > 0 && stackLen < n {
				pushBuf, pushStack = bufLen-1, stackLen+1
			}
			transitions = append(transitions, automaton.Transition{Src: src, Sym: bsSymPush, Dst: id(pushBuf, pushStack)})

			popStack := stackLen
			if popStack > 0 {
				popStack--
			}
			transitions = append(transitions, automaton.Transition{Src: src, Sym: bsSymPop, Dst: id(bufLen, popStack)})
		}
	}

	start := id(0, 0)
	a, err := automaton.New(automaton.Det, size, 3, transitions, []automaton.StateID{start}, []automaton.StateID{start})
	if err != nil {
		panic("generator: BufferStack: " + err.Error())
	}
	return a
}

// Symbols for TwoStack: 1 and 2 push/pop the first stack, 3 and 4
// push/pop the second.
const (
	tsSymPush1 automaton.Symbol = 1
	tsSymPop1  automaton.Symbol = 2
	tsSymPush2 automaton.Symbol = 3
	tsSymPop2  automaton.Symbol = 4
)

// TwoStack builds a DFA whose states are (depth1, depth2) pairs with
// depth1 in [0, n1] and depth2 in [0, n2]: (n1+1)*(n2+1) states, four
// symbols (push/pop per stack, each clamped to its own capacity), with
// (0, 0) as both start and sole accept -- the two-stack analogue of
// BufferStack's single buffer-plus-stack resource model.
func TwoStack(n1, n2 int) automaton.Automaton {
	if n1 < 0 || n2 < 0 {
		panic("generator: TwoStack: n1 and n2 must be non-negative")
	}

	width := n2 + 1
	id := func(d1, d2 int) automaton.StateID {
		return automaton.StateID(d1*width + d2)
	}
	size := (n1 + 1) * width

	var transitions []automaton.Transition
	for d1 := 0; d1 <= n1; d1++ {
		for d2 := 0; d2 <= n2; d2++ {
			src := id(d1, d2)

			push1 := d1
			if push1 < n1 {
				push1++
			}
			transitions = append(transitions, automaton.Transition{Src: src, Sym: tsSymPush1, Dst: id(push1, d2)})

			pop1 := d1
			if pop1 > 0 {
				pop1--
			}
			transitions = append(transitions, automaton.Transition{Src: src, Sym: tsSymPop1, Dst: id(pop1, d2)})

			push2 := d2
			if push2 < n2 {
				push2++
			}
			transitions = append(transitions, automaton.Transition{Src: src, Sym: tsSymPush2, Dst: id(d1, push2)})

			pop2 := d2
			if pop2 > 0 {
				pop2--
			}
			transitions = append(transitions, automaton.Transition{Src: src, Sym: tsSymPop2, Dst: id(d1, pop2)})
		}
	}

	start := id(0, 0)
	a, err := automaton.New(automaton.Det, size, 4, transitions, []automaton.StateID{start}, []automaton.StateID{start})
	if err != nil {
		panic("generator: TwoStack: " + err.Error())
	}
	return a
}
