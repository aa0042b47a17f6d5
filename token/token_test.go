package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeCharsAndSpaces(t *testing.T) {
	toks := Tokenize("a b")
	require.Len(t, toks, 3)
	require.Equal(t, Char, toks[0].Kind)
	require.Equal(t, "a", toks[0].Text)
	require.Equal(t, Char, toks[1].Kind)
	require.Equal(t, " ", toks[1].Text)
	require.Equal(t, Char, toks[2].Kind)
	require.Equal(t, "b", toks[2].Text)
}

func TestTokenizeInt(t *testing.T) {
	toks := Tokenize("deal 7 damage")
	var ints []Token
	for _, tk := range toks {
		if tk.Kind == Int {
			ints = append(ints, tk)
		}
	}
	require.Len(t, ints, 1)
	require.Equal(t, "7", ints[0].Text)
}

func TestTokenizeFloat(t *testing.T) {
	toks := Tokenize("3.14")
	require.Len(t, toks, 1)
	require.Equal(t, Float, toks[0].Kind)
	require.Equal(t, "3.14", toks[0].Text)
}

func TestTokenizeMultiDotFallsBackToChars(t *testing.T) {
	// "1.2.3" parses as neither int nor float, so it must fall back to
	// one Char token per digit/dot (spec.md §4.1, §9).
	toks := Tokenize("1.2.3")
	require.Len(t, toks, 5)
	for _, tk := range toks {
		require.Equal(t, Char, tk.Kind)
	}
	require.Equal(t, "1.2.3", Concatenated(toks))
}

func TestTokenizeString(t *testing.T) {
	toks := Tokenize(`status "burned"`)
	require.Len(t, toks, 8) // s t a t u s, space, "burned"
	last := toks[len(toks)-1]
	require.Equal(t, StringLit, last.Kind)
	require.Equal(t, "burned", last.Text)
}

func TestTokenizeStringUnterminated(t *testing.T) {
	toks := Tokenize(`"abc`)
	require.Len(t, toks, 1)
	require.Equal(t, StringLit, toks[0].Kind)
	require.Equal(t, "abc", toks[0].Text)
}

func TestSpansPartitionInput(t *testing.T) {
	inputs := []string{"a b", "deal 7 damage", `status "burned"`, "1.2.3", "to self : heal for 7"}
	for _, in := range inputs {
		toks := Tokenize(in)
		prev := 0
		for _, tk := range toks {
			require.Equal(t, prev, tk.Span.From(), "token spans must be contiguous for input %q", in)
			require.LessOrEqual(t, tk.Span.From(), tk.Span.To())
			prev = tk.Span.To()
		}
		require.Equal(t, len(in), prev, "tokens must cover the whole input %q", in)
	}
}

func TestUnicodeCodepoint(t *testing.T) {
	toks := Tokenize("héllo")
	require.Equal(t, 5, len(toks))
	require.Equal(t, "é", toks[1].Text)
	require.Equal(t, 1, toks[1].Span.From())
	require.Equal(t, 3, toks[1].Span.To()) // é is 2 bytes in UTF-8
}
