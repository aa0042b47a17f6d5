/*
Package token segments input text into scalar-typed atoms (§4.1).

Rules, applied left to right at each input position:

 1. A double quote opens a string literal: scan until the next unescaped
    quote (no escapes are recognized); the token's Text is the text between
    the quotes, but its Span covers both quotes.
 2. An ASCII digit starts a numeric run: extend while the next code point is
    an ASCII digit or '.'. If the run parses as an integer, emit one Int
    token; else if it parses as a float, emit one Float token; else emit
    each code point of the run as its own Char token.
 3. Otherwise: emit one Char token for the single code point.

Whitespace is never skipped — a space becomes a Char token with text " ".
Grammars that want to match literal spaces rely on this.
*/
package token

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("earlgrey.token")
}

// Kind categorizes a Token.
type Kind int

const (
	// Char is a single Unicode scalar value, including whitespace.
	Char Kind = iota
	// Int is a run of ASCII digits that parsed as an integer.
	Int
	// Float is a run of ASCII digits and '.' that parsed as a float.
	Float
	// StringLit is the text between a pair of double quotes (quotes excluded).
	StringLit
)

func (k Kind) String() string {
	switch k {
	case Char:
		return "Char"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case StringLit:
		return "StringLit"
	default:
		return "?"
	}
}

// Token is an atom produced by Tokenize. Tokens partition the input's byte
// range exactly: spans are monotonically increasing and non-overlapping.
type Token struct {
	Kind Kind
	Text string // raw text; for StringLit, the text *inside* the quotes
	Span Span   // byte range this token covers in the original input
}

// Tokenize segments input into an ordered list of tokens covering every
// byte. Tokenize never fails: any input can be scanned, worst case one
// Char token per code point.
func Tokenize(input string) []Token {
	toks := make([]Token, 0, len(input))
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case r == '"':
			toks, i = scanString(input, i, toks)
		case r >= '0' && r <= '9':
			toks, i = scanNumber(input, i, toks)
		default:
			toks = append(toks, Token{Kind: Char, Text: input[i : i+size], Span: Span{i, i + size}})
			i += size
		}
	}
	tracer().Debugf("tokenized %d bytes into %d tokens", len(input), len(toks))
	return toks
}

// scanString consumes a '"'-delimited run starting at i (which must point
// at the opening quote) and returns the updated token list and next index.
func scanString(input string, i int, toks []Token) ([]Token, int) {
	start := i
	j := i + 1 // past opening quote
	for j < len(input) {
		r, size := utf8.DecodeRuneInString(input[j:])
		if r == '"' {
			inner := input[start+1 : j]
			toks = append(toks, Token{Kind: StringLit, Text: inner, Span: Span{start, j + 1}})
			return toks, j + 1
		}
		j += size
	}
	// unterminated string: the rest of the input becomes the literal body
	inner := input[start+1:]
	toks = append(toks, Token{Kind: StringLit, Text: inner, Span: Span{start, len(input)}})
	return toks, len(input)
}

// scanNumber consumes a run of ASCII digits and '.' starting at i and
// returns the updated token list and next index.
func scanNumber(input string, i int, toks []Token) ([]Token, int) {
	start := i
	j := i
	for j < len(input) {
		r, size := utf8.DecodeRuneInString(input[j:])
		if (r >= '0' && r <= '9') || r == '.' {
			j += size
			continue
		}
		break
	}
	run := input[start:j]
	if _, err := strconv.ParseInt(run, 10, 64); err == nil {
		toks = append(toks, Token{Kind: Int, Text: run, Span: Span{start, j}})
		return toks, j
	}
	if _, err := strconv.ParseFloat(run, 64); err == nil {
		toks = append(toks, Token{Kind: Float, Text: run, Span: Span{start, j}})
		return toks, j
	}
	// neither int nor float: emit each code point of the run as a Char
	k := start
	for k < j {
		_, size := utf8.DecodeRuneInString(input[k:])
		toks = append(toks, Token{Kind: Char, Text: input[k : k+size], Span: Span{k, k + size}})
		k += size
	}
	return toks, j
}

// Concatenated reassembles the original input text from a token list; used
// to verify P3 (tokens partition the input exactly).
func Concatenated(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		switch t.Kind {
		case StringLit:
			b.WriteByte('"')
			b.WriteString(t.Text)
			if t.Span.Len() == len(t.Text)+2 { // unterminated literals have no closing quote
				b.WriteByte('"')
			}
		default:
			b.WriteString(t.Text)
		}
	}
	return b.String()
}
