package format

import (
	"fmt"
	"io"
	"strconv"

	"github.com/coregx/detmin/automaton"
)

// Parse reads the curly-brace automaton format from r and returns the
// automaton.Automaton it describes. On any lexical or syntactic error,
// Parse returns automaton.Empty() alongside a non-nil *ParseError, per
// spec.md §7 -- the caller is expected to log the error and let the rest
// of the pipeline run on the empty automaton rather than abort.
func Parse(r io.Reader) (automaton.Automaton, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return automaton.Empty(), &ParseError{Msg: fmt.Sprintf("reading input: %v", err)}
	}

	lx, err := newLexer(src)
	if err != nil {
		return automaton.Empty(), err
	}
	p := &parser{lx: lx}
	if err := p.advance(); err != nil {
		return automaton.Empty(), err
	}

	a, err := p.parseAutomaton()
	if err != nil {
		return automaton.Empty(), err
	}
	return a, nil
}

type parser struct {
	lx  *lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expect(k tokenKind) (token, error) {
	if p.tok.kind != k {
		return token{}, &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("expected %s, got %s %q", k, p.tok.kind, p.tok.text)}
	}
	t := p.tok
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

func (p *parser) expectKeyword(word string) error {
	if p.tok.kind != tokKeyword || p.tok.text != word {
		return &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("expected keyword %q, got %s %q", word, p.tok.kind, p.tok.text)}
	}
	return p.advance()
}

func (p *parser) parseAutomaton() (automaton.Automaton, error) {
	if _, err := p.expect(tokLBrace); err != nil {
		return automaton.Automaton{}, err
	}

	if err := p.expectKeyword("kind"); err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return automaton.Automaton{}, err
	}
	kind, err := p.parseKind()
	if err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return automaton.Automaton{}, err
	}

	if err := p.expectKeyword("size"); err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return automaton.Automaton{}, err
	}
	size, err := p.parseNumber()
	if err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return automaton.Automaton{}, err
	}

	if err := p.expectKeyword("alphabet"); err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return automaton.Automaton{}, err
	}
	alphabet, err := p.parseAlphabet()
	if err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return automaton.Automaton{}, err
	}

	if err := p.expectKeyword("transitions"); err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return automaton.Automaton{}, err
	}
	transitions, err := p.parseTransitions(kind, alphabet)
	if err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return automaton.Automaton{}, err
	}

	if err := p.expectKeyword("starts"); err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return automaton.Automaton{}, err
	}
	starts, err := p.parseStateList()
	if err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return automaton.Automaton{}, err
	}

	if err := p.expectKeyword("accepts"); err != nil {
		return automaton.Automaton{}, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return automaton.Automaton{}, err
	}
	accepts, err := p.parseStateList()
	if err != nil {
		return automaton.Automaton{}, err
	}

	if _, err := p.expect(tokRBrace); err != nil {
		return automaton.Automaton{}, err
	}

	a, err := automaton.New(kind, size, alphabet, transitions, starts, accepts)
	if err != nil {
		return automaton.Automaton{}, &ParseError{Msg: fmt.Sprintf("building automaton: %v", err)}
	}
	return a, nil
}

// parseKind maps the textual kind keyword to automaton.Kind; "nondet" and
// "epsilon" both map to NonDet per spec.md §6.
func (p *parser) parseKind() (automaton.Kind, error) {
	if p.tok.kind != tokKeyword {
		return 0, &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("expected kind, got %s %q", p.tok.kind, p.tok.text)}
	}
	word := p.tok.text
	if err := p.advance(); err != nil {
		return 0, err
	}
	switch word {
	case "det":
		return automaton.Det, nil
	case "nondet", "epsilon":
		return automaton.NonDet, nil
	default:
		return 0, &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("unknown kind %q", word)}
	}
}

func (p *parser) parseNumber() (int, error) {
	t, err := p.expect(tokNumber)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(t.text)
	if convErr != nil {
		return 0, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("invalid number %q: %v", t.text, convErr)}
	}
	return n, nil
}

// parseAlphabet accepts either a bare integer A or a quoted string of A
// distinct printable characters, where an '@' marks the ε position and is
// not itself counted: each non-'@' character in order is assigned symbol
// numbers 1, 2, 3, ... as it is seen, so an '@' earlier in the string
// "shifts" every later character's symbol number down by one relative to
// its raw position, matching spec.md §6.
func (p *parser) parseAlphabet() (int, error) {
	if p.tok.kind == tokNumber {
		return p.parseNumber()
	}
	if p.tok.kind == tokString {
		text := p.tok.text
		if err := p.advance(); err != nil {
			return 0, err
		}
		count := 0
		for _, c := range text {
			if c != '@' {
				count++
			}
		}
		return count, nil
	}
	return 0, &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("expected alphabet (number or string), got %s %q", p.tok.kind, p.tok.text)}
}

// parseTransitions reads an A-long (det) or (A+1)-long (nondet, row 0
// reserved for ε) sequence of per-symbol rows, each row a size-long
// sequence of destination lists, and flattens them into the
// []automaton.Transition form automaton.New expects.
func (p *parser) parseTransitions(kind automaton.Kind, alphabet int) ([]automaton.Transition, error) {
	var out []automaton.Transition

	firstSym := 1
	if kind == automaton.NonDet {
		firstSym = 0
	}
	lastSym := alphabet

	if _, err := p.expect(tokLBracket); err != nil {
		return nil, err
	}
	sym := firstSym
	first := true
	for p.tok.kind != tokRBracket {
		if !first {
			if _, err := p.expect(tokComma); err != nil {
				return nil, err
			}
		}
		first = false

		row, err := p.parseRow(automaton.Symbol(sym))
		if err != nil {
			return nil, err
		}
		out = append(out, row...)
		sym++
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return nil, err
	}

	expectedRows := 0
	if lastSym >= firstSym {
		expectedRows = lastSym - firstSym + 1
	}
	if gotRows := sym - firstSym; gotRows != expectedRows {
		// automaton.New would reject any resulting out-of-range symbol
		// regardless, but this gives a clearer diagnostic for the common
		// wrong-row-count typo.
		return nil, &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("expected %d transition rows, got %d", expectedRows, gotRows)}
	}
	return out, nil
}

func (p *parser) parseRow(sym automaton.Symbol) ([]automaton.Transition, error) {
	var out []automaton.Transition
	if _, err := p.expect(tokLBracket); err != nil {
		return nil, err
	}
	src := 0
	first := true
	for p.tok.kind != tokRBracket {
		if !first {
			if _, err := p.expect(tokComma); err != nil {
				return nil, err
			}
		}
		first = false

		dests, err := p.parseStateList()
		if err != nil {
			return nil, err
		}
		for _, d := range dests {
			out = append(out, automaton.Transition{Src: automaton.StateID(src), Sym: sym, Dst: d})
		}
		src++
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseStateList() ([]automaton.StateID, error) {
	var out []automaton.StateID
	if _, err := p.expect(tokLBracket); err != nil {
		return nil, err
	}
	first := true
	for p.tok.kind != tokRBracket {
		if !first {
			if _, err := p.expect(tokComma); err != nil {
				return nil, err
			}
		}
		first = false

		n, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		out = append(out, automaton.StateID(n))
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return nil, err
	}
	return out, nil
}
