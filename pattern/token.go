package pattern

import "fmt"

// TokenKind defines the different kinds of tokens produced by the lexer.
type TokenKind int

const (
	TokenIdentifier TokenKind = iota // names, literals, type constraints
	TokenLeftBrace                   // '{'
	TokenRightBrace                  // '}'
	TokenColon                       // ':'
	TokenQuestion                    // '?'
	TokenPipe                        // '|'
	TokenAsterisk                    // '*'
	TokenSingleDash                  // '-'
	TokenDoubleDash                  // '--'
	TokenComma                       // ','
	TokenInvalid                     // anything the lexer does not recognize
	TokenEndOfInput                  // end of the pattern string
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdentifier:
		return "identifier"
	case TokenLeftBrace:
		return "'{'"
	case TokenRightBrace:
		return "'}'"
	case TokenColon:
		return "':'"
	case TokenQuestion:
		return "'?'"
	case TokenPipe:
		return "'|'"
	case TokenAsterisk:
		return "'*'"
	case TokenSingleDash:
		return "'-'"
	case TokenDoubleDash:
		return "'--'"
	case TokenComma:
		return "','"
	case TokenInvalid:
		return "invalid"
	case TokenEndOfInput:
		return "end of pattern"
	default:
		return "unknown"
	}
}

// Token represents a single lexical token with its kind, text and byte span
// into the original pattern string.
type Token struct {
	Kind     TokenKind
	Text     string
	Position int // starting byte offset in the pattern
	Length   int // byte length of the token text
}

// End returns the byte offset just past the token.
func (t Token) End() int { return t.Position + t.Length }

func (t Token) String() string {
	return fmt.Sprintf("%s(%q@%d)", t.Kind, t.Text, t.Position)
}
