package format

import (
	"fmt"
	"io"

	"github.com/coregx/detmin/automaton"
)

// Encode writes a's canonical textual dump to w: transitions sorted
// lexicographically (automaton.New already guarantees this on a's own
// table), starts and accepts sorted ascending, per spec.md §6. Alphabet
// is always written in integer form; the quoted-string spelling parseAlphabet
// accepts is purely an input convenience and carries no information this
// package's Automaton retains after parsing.
func Encode(w io.Writer, a automaton.Automaton) error {
	kindWord := "det"
	if a.Kind() == automaton.NonDet {
		kindWord = "nondet"
	}

	if _, err := fmt.Fprintf(w, "{\n  kind: %s;\n  size: %d;\n  alphabet: %d;\n  transitions: [\n", kindWord, a.Size(), a.Alphabet()); err != nil {
		return err
	}

	firstSym := 1
	if a.Kind() == automaton.NonDet {
		firstSym = 0
	}

	byRowCol := make(map[automaton.Symbol]map[automaton.StateID][]automaton.StateID)
	for _, t := range a.Transitions() {
		row, ok := byRowCol[t.Sym]
		if !ok {
			row = make(map[automaton.StateID][]automaton.StateID)
			byRowCol[t.Sym] = row
		}
		row[t.Src] = append(row[t.Src], t.Dst)
	}

	for sym := firstSym; sym <= a.Alphabet(); sym++ {
		row := byRowCol[automaton.Symbol(sym)]
		if err := writeCells(w, row, a.Size()); err != nil {
			return err
		}
		if sym != a.Alphabet() {
			if _, err := io.WriteString(w, ",\n"); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}

	if _, err := io.WriteString(w, "  ];\n  starts: "); err != nil {
		return err
	}
	if err := writeStateList(w, a.Starts()); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ";\n  accepts: "); err != nil {
		return err
	}
	if err := writeStateList(w, a.Accepts()); err != nil {
		return err
	}
	_, err := io.WriteString(w, ";\n}\n")
	return err
}

func writeCells(w io.Writer, row map[automaton.StateID][]automaton.StateID, size int) error {
	if _, err := io.WriteString(w, "    ["); err != nil {
		return err
	}
	for src := 0; src < size; src++ {
		if src != 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if err := writeStateList(w, row[automaton.StateID(src)]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

func writeStateList(w io.Writer, ids []automaton.StateID) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, id := range ids {
		if i != 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d", id); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}
