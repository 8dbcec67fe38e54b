// Package format implements the curly-brace textual exchange format for
// Automaton values described in spec.md §6: Parse reads it into an
// automaton.Automaton, Encode writes the canonical dump back out.
//
// This surface is explicitly out of the algorithmic core's scope (spec.md
// §1 calls it "thin glue"), but it is the only way anything outside this
// module's own tests ever produces or consumes an Automaton, so it gets a
// real, minimal implementation: a hand-written recursive-descent parser
// over a small token stream, with keyword recognition delegated to an
// ahocorasick.Automaton the way meta.Strategy delegates
// literal recognition to a prefilter.
package format

import (
	"fmt"

	"github.com/coregx/ahocorasick"
)

var keywords = []string{
	"det", "nondet", "epsilon",
	"kind", "size", "alphabet", "transitions", "starts", "accepts",
}

type tokenKind int

const (
	tokLBrace tokenKind = iota
	tokRBrace
	tokLBracket
	tokRBracket
	tokColon
	tokSemicolon
	tokComma
	tokKeyword
	tokNumber
	tokString
	tokEOF
)

func (k tokenKind) String() string {
	switch k {
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokColon:
		return "':'"
	case tokSemicolon:
		return "';'"
	case tokComma:
		return "','"
	case tokKeyword:
		return "keyword"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokEOF:
		return "EOF"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer tokenizes the textual automaton format. Keyword recognition is
// delegated to an ahocorasick.Automaton built once over the fixed keyword
// set; everything else (punctuation, numbers, quoted alphabet strings) is
// handled directly since those alphabets are either single characters or
// require accumulating digits, neither of which benefits from multi-
// pattern matching.
type lexer struct {
	src []byte
	pos int
	kw  *ahocorasick.Automaton
}

func newLexer(src []byte) (*lexer, error) {
	b := ahocorasick.NewBuilder()
	for _, k := range keywords {
		if err := b.AddPattern([]byte(k)); err != nil {
			return nil, fmt.Errorf("format: building keyword lexer: %w", err)
		}
	}
	auto, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("format: building keyword lexer: %w", err)
	}
	return &lexer{src: src, kw: auto}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

// next returns the next token, consuming it from the stream.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	switch l.src[l.pos] {
	case '{':
		l.pos++
		return token{kind: tokLBrace, text: "{", pos: start}, nil
	case '}':
		l.pos++
		return token{kind: tokRBrace, text: "}", pos: start}, nil
	case '[':
		l.pos++
		return token{kind: tokLBracket, text: "[", pos: start}, nil
	case ']':
		l.pos++
		return token{kind: tokRBracket, text: "]", pos: start}, nil
	case ':':
		l.pos++
		return token{kind: tokColon, text: ":", pos: start}, nil
	case ';':
		l.pos++
		return token{kind: tokSemicolon, text: ";", pos: start}, nil
	case ',':
		l.pos++
		return token{kind: tokComma, text: ",", pos: start}, nil
	case '"':
		return l.scanString()
	}

	if isDigit(l.src[l.pos]) {
		return l.scanNumber(), nil
	}

	if m := l.kw.Find(l.src, l.pos); m != nil && m.Start == l.pos {
		text := string(l.src[m.Start:m.End])
		l.pos = m.End
		return token{kind: tokKeyword, text: text, pos: start}, nil
	}

	return token{}, &ParseError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", l.src[l.pos])}
}

func (l *lexer) scanNumber() token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokNumber, text: string(l.src[start:l.pos]), pos: start}
}

func (l *lexer) scanString() (token, error) {
	start := l.pos
	l.pos++ // opening quote
	contentStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{}, &ParseError{Pos: start, Msg: "unterminated string"}
	}
	text := string(l.src[contentStart:l.pos])
	l.pos++ // closing quote
	return token{kind: tokString, text: text, pos: start}, nil
}
