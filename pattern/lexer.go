package pattern

// Lexer scans a route pattern string and produces tokens. It is a total
// function over its input: unexpected characters become TokenInvalid tokens
// so that all error reporting happens uniformly in the parser.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

// NewLexer returns a new Lexer over the given pattern string.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0, len(input)/2),
	}
}

// Tokenize processes the entire input and returns the token list. The list
// always ends with exactly one TokenEndOfInput token, whatever the input.
func Tokenize(input string) []Token {
	return NewLexer(input).Tokenize()
}

// Tokenize consumes the whole input. Whitespace separates tokens and is
// discarded, never emitted.
func (l *Lexer) Tokenize() []Token {
	for l.position < len(l.input) {
		start := l.position
		switch c := l.input[l.position]; {
		case isWhitespace(c):
			l.position++

		case c == '{':
			l.addToken(TokenLeftBrace, "{", start)
			l.position++

		case c == '}':
			l.addToken(TokenRightBrace, "}", start)
			l.position++

		case c == ':':
			l.addToken(TokenColon, ":", start)
			l.position++

		case c == '?':
			l.addToken(TokenQuestion, "?", start)
			l.position++

		case c == '|':
			l.addToken(TokenPipe, "|", start)
			l.position++

		case c == '*':
			l.addToken(TokenAsterisk, "*", start)
			l.position++

		case c == ',':
			l.addToken(TokenComma, ",", start)
			l.position++

		case c == '-':
			l.lexDash(start)

		case c == '<':
			// Users coming from other tools often write <name> instead of
			// {name}. Capture the whole run as one invalid token so the
			// parser can suggest the curly-brace form.
			l.lexAngleRun(start)

		case isAlphanumeric(c):
			l.lexIdentifier(start)

		default:
			l.addToken(TokenInvalid, string(c), start)
			l.position++
		}
	}

	l.addToken(TokenEndOfInput, "", l.position)
	return l.tokens
}

// lexDash distinguishes '-' from '--' by one byte of lookahead.
func (l *Lexer) lexDash(start int) {
	if l.position+1 < len(l.input) && l.input[l.position+1] == '-' {
		l.addToken(TokenDoubleDash, "--", start)
		l.position += 2
		return
	}
	l.addToken(TokenSingleDash, "-", start)
	l.position++
}

// lexIdentifier scans an identifier: alphanumerics, with embedded dashes
// allowed when followed by another alphanumeric, so compound names like
// "no-edit" or "dry-run" lex as a single token.
func (l *Lexer) lexIdentifier(start int) {
	for l.position < len(l.input) {
		c := l.input[l.position]
		if isAlphanumeric(c) {
			l.position++
			continue
		}
		if c == '-' && l.position+1 < len(l.input) && isAlphanumeric(l.input[l.position+1]) {
			l.position++
			continue
		}
		break
	}
	l.addToken(TokenIdentifier, l.input[start:l.position], start)
}

// lexAngleRun captures "<...>" (or "<..." to end of input) as one invalid
// token. The parser turns it into a diagnostic with a rewrite suggestion.
func (l *Lexer) lexAngleRun(start int) {
	for l.position < len(l.input) {
		if l.input[l.position] == '>' {
			l.position++
			break
		}
		l.position++
	}
	l.addToken(TokenInvalid, l.input[start:l.position], start)
}

func (l *Lexer) addToken(kind TokenKind, text string, pos int) {
	l.tokens = append(l.tokens, Token{
		Kind:     kind,
		Text:     text,
		Position: pos,
		Length:   len(text),
	})
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isAlphanumeric(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
