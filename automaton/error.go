package automaton

import (
	"errors"
	"fmt"
)

// Sentinel validation errors. These describe malformed input per the
// contract in spec.md §7: callers must not pass out-of-range state ids,
// out-of-range symbols, or ε-symbols on an automaton declared DET.
var (
	// ErrStateOutOfRange indicates a transition, start, or accept state
	// references a state id >= size.
	ErrStateOutOfRange = errors.New("automaton: state id out of range")

	// ErrSymbolOutOfRange indicates a transition symbol is outside
	// [0, alphabet] for an NFA, or outside [1, alphabet] for a DFA.
	ErrSymbolOutOfRange = errors.New("automaton: symbol out of range")

	// ErrEpsilonOnDet indicates an ε-transition (symbol 0) was found on
	// an automaton declared DET.
	ErrEpsilonOnDet = errors.New("automaton: epsilon transition on deterministic automaton")

	// ErrNoStarts indicates the start set is empty, which violates the
	// non-empty start invariant of spec.md §3.
	ErrNoStarts = errors.New("automaton: start set must be non-empty")

	// ErrMultipleStarts indicates a DET automaton was given more than one
	// start state.
	ErrMultipleStarts = errors.New("automaton: deterministic automaton must have exactly one start state")

	// ErrNotDeterministic indicates an automaton declared DET was given
	// more than one destination for some (source, symbol) pair.
	ErrNotDeterministic = errors.New("automaton: transition table is not deterministic")
)

// ValidationError wraps a sentinel validation error with the offending
// value, so callers can report a precise diagnostic without string
// parsing. It mirrors nfa.CompileError/BuildError in the regex engine
// this module was adapted from.
type ValidationError struct {
	// Field names the part of the automaton that failed validation
	// (e.g. "transitions[3].Dst", "starts[0]").
	Field string
	// Value is the offending value, formatted for display.
	Value int64
	// Err is one of the sentinel errors above.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s=%d", e.Err, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
