// Package lexer defines the tokenizer for the CSS property grammar dialect.
package lexer

import (
	"regexp"
)

// Token patterns are tried in a fixed priority order and the first match
// wins: numbers before identifiers, two-character punctuation before its
// one-character prefixes, function identifiers before plain identifiers.
// Each capturing group maps to the token type at the same index of
// groupTypes; a match with no captured group (whitespace) is discarded
// without emitting a token.
var dialectRe = regexp.MustCompile(`^(?:\s+|` +
	`(-?[0-9]+(?:\.[0-9]+)?)|` +
	`(<<|>>|\|\||&&)|` +
	`([-a-zA-Z_][-a-zA-Z_0-9]*\()|` +
	`([-a-zA-Z_][-a-zA-Z_0-9]*)|` +
	`('[^']*')|` +
	`([#+*?{}])|` +
	`([|,])|` +
	`([\[\]<>()@=!/&]))`)

var groupTypes = []TokenType{
	NumberToken,
	PunctToken, // << >> are punctuation, || && are combinators; fixed below
	FunctionToken,
	IdentToken,
	StringToken,
	MultiplierToken,
	CombinatorToken,
	PunctToken,
}

// Lexer produces a lazy, finite, non-restartable token sequence for one
// grammar string. After the end of input it keeps returning EoiToken.
type Lexer struct {
	src string
	pos int
}

func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Source returns the full input string, used by parse errors.
func (l *Lexer) Source() string {
	return l.src
}

// Next fetches the token at the current position and advances past it.
// A position matching no pattern yields an IllegalToken covering exactly
// one character.
func (l *Lexer) Next() Token {
	for l.pos < len(l.src) {
		match := dialectRe.FindStringSubmatchIndex(l.src[l.pos:])
		if len(match) == 0 || match[1] <= 0 {
			t := Token{IllegalToken, l.src[l.pos : l.pos+1], l.pos}
			l.pos++
			return t
		}

		start := l.pos
		l.pos += match[1]
		for i := 2; i < len(match); i += 2 {
			if match[i] < 0 {
				continue
			}
			text := l.src[start+match[i] : start+match[i+1]]
			tt := groupTypes[(i>>1)-1]
			if tt == PunctToken && (text == "||" || text == "&&") {
				tt = CombinatorToken
			}
			return Token{tt, text, start + match[i]}
		}
		// Whitespace: no group captured, fetch again at the new position.
	}

	return Token{EoiToken, "", len(l.src)}
}

// Tokens drains the lexer and returns all remaining tokens, the
// terminating EoiToken included.
func (l *Lexer) Tokens() []Token {
	result := make([]Token, 0, 16)
	for {
		t := l.Next()
		result = append(result, t)
		if t.IsEoi() {
			return result
		}
	}
}
