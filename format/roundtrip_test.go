package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coregx/detmin/determinize"
	"github.com/coregx/detmin/minimize"
)

// TestParseDeterminizeMinimizeEncode exercises the full pipeline spec.md
// §8 calls out for integration coverage: a textual NFA is parsed,
// determinized, minimized, and re-encoded, and the re-encoded text must
// itself parse back into an automaton with the same shape.
func TestParseDeterminizeMinimizeEncode(t *testing.T) {
	src := `{
		kind: epsilon;
		size: 4;
		alphabet: 2;
		transitions: [
			[[1], [], [3], []],
			[[2], [3], [3], [3]],
			[[], [3], [3], [3]]
		];
		starts: [0];
		accepts: [3];
	}`

	nfa, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	dfa := determinize.Run(nfa)
	min := minimize.Run(dfa)

	var buf bytes.Buffer
	if err := Encode(&buf, min); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	reparsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse(Encode(min(det(nfa)))): %v\ntext:\n%s", err, buf.String())
	}
	if reparsed.Size() != min.Size() || reparsed.Alphabet() != min.Alphabet() {
		t.Fatalf("round trip shape mismatch: got size=%d alphabet=%d want size=%d alphabet=%d",
			reparsed.Size(), reparsed.Alphabet(), min.Size(), min.Alphabet())
	}
	if len(reparsed.Transitions()) != len(min.Transitions()) {
		t.Fatalf("round trip transition count mismatch: got %d want %d", len(reparsed.Transitions()), len(min.Transitions()))
	}
}
