package format

import "fmt"

// ParseError reports a lexical or syntactic problem at a byte offset in
// the source text. Parse always pairs a non-nil error of this type with
// automaton.Empty(), per spec.md §7's "surfaced as empty automaton +
// diagnostic" contract.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("format: parse error at byte %d: %s", e.Pos, e.Msg)
}
