package lexer

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	// IllegalToken captures a character matching no token pattern. The
	// lexer never fails by itself; the parser fails on the first illegal
	// token it sees, which produces a far more informative message.
	IllegalToken TokenType = iota

	// EoiToken terminates every token sequence.
	EoiToken

	NumberToken
	IdentToken

	// FunctionToken is an identifier immediately followed by "(", the
	// opening paren included in the token text.
	FunctionToken

	// StringToken is a single-quoted literal, quotes included.
	StringToken

	// MultiplierToken is one of # + * ? { }.
	MultiplierToken

	// CombinatorToken is one of | || && and the comma.
	CombinatorToken

	// PunctToken covers the remaining punctuation: [ ] < > << >> ( ) @ = ! / &.
	PunctToken
)

var typeNames = map[TokenType]string{
	IllegalToken:    "illegal",
	EoiToken:        "end-of-input",
	NumberToken:     "number",
	IdentToken:      "identifier",
	FunctionToken:   "function",
	StringToken:     "string",
	MultiplierToken: "multiplier",
	CombinatorToken: "combinator",
	PunctToken:      "punctuation",
}

func (tt TokenType) String() string {
	return typeNames[tt]
}

// Token is a (type, literal text) pair plus the byte offset it was matched at.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

func (t Token) IsEoi() bool {
	return t.Type == EoiToken
}
