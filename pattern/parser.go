package pattern

import (
	"fmt"
	"strings"
)

// Parser consumes the token stream of one pattern and builds the syntax
// tree, collecting every syntax error it can recover from. All state is
// private to a single Parse call, so concurrent parsing of independent
// patterns needs no synchronization.
type Parser struct {
	source  string
	tokens  []Token
	current int
	errs    []*ParseError
}

// Parse tokenizes and parses a pattern string. It always returns a Pattern
// (possibly with fewer segments than the source suggests) together with
// every syntax error found; callers must treat a non-empty error list as
// failure and ignore the partial tree.
func Parse(source string) (*Pattern, []*ParseError) {
	return ParseTokens(source, Tokenize(source))
}

// ParseTokens parses an already-tokenized pattern. The token slice must end
// with a TokenEndOfInput token, as produced by Tokenize.
func ParseTokens(source string, tokens []Token) (*Pattern, []*ParseError) {
	p := &Parser{source: source, tokens: tokens}
	return p.parsePattern(), p.errs
}

func (p *Parser) parsePattern() *Pattern {
	pat := &Pattern{Source: p.source}

	for p.current < len(p.tokens) && !p.at(TokenEndOfInput) {
		before := p.current
		if seg := p.parseSegment(); seg != nil {
			pat.Segments = append(pat.Segments, seg)
		}
		// Every iteration must consume at least one token; otherwise a
		// malformed input could loop forever.
		if p.current == before {
			p.current++
		}
	}

	return pat
}

// parseSegment dispatches on the lookahead token. It returns nil when the
// token opened a segment that could not be completed (an error has been
// recorded and the cursor advanced).
func (p *Parser) parseSegment() Segment {
	tok := p.cur()

	switch tok.Kind {
	case TokenIdentifier:
		p.advance()
		return &Literal{Text: tok.Text, pos: tok.Position}

	case TokenLeftBrace:
		param := p.parseParameter()
		if param == nil {
			return nil
		}
		return param

	case TokenDoubleDash:
		// "--force" is an option, a bare "--" is the end-of-options
		// separator. Adjacency in the source disambiguates the two.
		if p.adjacentIdentifier(tok) {
			return p.parseOption()
		}
		p.advance()
		return &Separator{pos: tok.Position}

	case TokenSingleDash:
		return p.parseOption()

	case TokenRightBrace:
		p.errorAt(tok, "unexpected '}' with no matching '{'")
		p.advance()
		return nil

	case TokenInvalid:
		if strings.HasPrefix(tok.Text, "<") {
			inner := strings.TrimSuffix(strings.TrimPrefix(tok.Text, "<"), ">")
			p.errorWithSuggestion(tok,
				fmt.Sprintf("unexpected %q: parameters use curly braces", tok.Text),
				"{"+inner+"}")
		} else {
			p.errorAt(tok, fmt.Sprintf("unexpected character %q", tok.Text))
		}
		p.advance()
		return nil

	default:
		p.errorAt(tok, fmt.Sprintf("unexpected %s", tok.Kind))
		p.advance()
		return nil
	}
}

// parseParameter parses '{' '*'? name ('?' | '*')? (':' type '?'?)?
// ('|' description)? '}'. It returns nil after recording an error when the
// parameter cannot be completed.
func (p *Parser) parseParameter() *Parameter {
	lbrace := p.advance()
	param := &Parameter{pos: lbrace.Position}

	if p.at(TokenAsterisk) {
		p.advance()
		param.CatchAll = true
	}

	if !p.at(TokenIdentifier) {
		if p.at(TokenRightBrace) {
			rbrace := p.advance()
			p.errs = append(p.errs, &ParseError{
				Position: lbrace.Position,
				Length:   rbrace.End() - lbrace.Position,
				Message:  "parameter name is missing",
			})
			return nil
		}
		p.errorAt(p.cur(), fmt.Sprintf("expected parameter name, found %s", p.cur().Kind))
		p.synchronize()
		return nil
	}
	name := p.advance()
	param.Name = name.Text

	switch {
	case p.at(TokenQuestion):
		p.advance()
		param.Optional = true
	case p.at(TokenAsterisk):
		p.advance()
		param.Repeated = true
	}

	if p.at(TokenColon) {
		p.advance()
		if !p.at(TokenIdentifier) {
			p.errorAt(p.cur(), "expected a type name after ':'")
			p.synchronize()
			return nil
		}
		constraint := p.advance()
		param.Constraint = constraint.Text
		if p.at(TokenQuestion) {
			p.advance()
			param.Nullable = true
		}
	}

	if p.at(TokenPipe) {
		p.advance()
		param.Description = p.parseDescription(TokenRightBrace)
	}

	if !p.at(TokenRightBrace) {
		if p.at(TokenEndOfInput) {
			p.errorAt(lbrace, fmt.Sprintf("unterminated parameter {%s: expected '}' before end of pattern", param.Name))
		} else {
			p.errorAt(p.cur(), fmt.Sprintf("expected '}' to close parameter {%s, found %s", param.Name, p.cur().Kind))
		}
		p.synchronize()
		return nil
	}
	rbrace := p.advance()
	param.end = rbrace.End()

	return param
}

// parseOption parses ('--' | '-') name (',' '-' alias)? ('|' description)?
// parameter?. The long form, wherever it appears, becomes the primary form.
func (p *Parser) parseOption() *Option {
	dash := p.advance()
	opt := &Option{pos: dash.Position, end: dash.End()}

	if !p.adjacentIdentifierAt(dash) {
		p.errorAt(dash, fmt.Sprintf("expected an option name directly after %q", dash.Text))
		p.synchronize()
		return nil
	}
	name := p.advance()
	if dash.Kind == TokenDoubleDash {
		opt.Long = name.Text
	} else {
		opt.Short = name.Text
	}
	opt.end = name.End()

	if p.at(TokenComma) {
		p.advance()
		if !p.at(TokenSingleDash) && !p.at(TokenDoubleDash) {
			p.errorAt(p.cur(), "expected '-' to introduce an option alias after ','")
			p.synchronize()
			return nil
		}
		aliasDash := p.advance()
		if !p.adjacentIdentifierAt(aliasDash) {
			p.errorAt(aliasDash, "expected an alias name directly after the dash")
			p.synchronize()
			return nil
		}
		alias := p.advance()
		if aliasDash.Kind == TokenDoubleDash {
			if opt.Long != "" {
				p.errorAt(alias, fmt.Sprintf("option --%s already has a long form", opt.Long))
			} else {
				opt.Long = alias.Text
			}
		} else {
			if opt.Short != "" {
				p.errorAt(alias, fmt.Sprintf("option -%s already has a short form", opt.Short))
			} else {
				opt.Short = alias.Text
			}
		}
		opt.end = alias.End()
	}

	if p.at(TokenPipe) {
		p.advance()
		desc := p.parseDescription(TokenLeftBrace, TokenSingleDash, TokenDoubleDash)
		opt.Description = desc
		if desc != "" {
			opt.end = p.tokens[p.current-1].End()
		}
	}

	if p.at(TokenLeftBrace) {
		if param := p.parseParameter(); param != nil {
			opt.Param = param
			opt.end = param.End()
		}
	}

	return opt
}

// parseDescription consumes free text word by word until one of the stop
// kinds or the end of input is reached.
func (p *Parser) parseDescription(stops ...TokenKind) string {
	var words []string
	for !p.at(TokenEndOfInput) {
		tok := p.cur()
		stopped := false
		for _, s := range stops {
			if tok.Kind == s {
				stopped = true
				break
			}
		}
		if stopped {
			break
		}
		words = append(words, tok.Text)
		p.advance()
	}
	return strings.Join(words, " ")
}

// synchronize advances past the offending token and then skips ahead to the
// next plausible segment start, guaranteeing forward progress after any
// error.
func (p *Parser) synchronize() {
	if !p.at(TokenEndOfInput) {
		p.current++
	}
	for !p.at(TokenEndOfInput) {
		switch p.cur().Kind {
		case TokenLeftBrace, TokenDoubleDash, TokenSingleDash, TokenIdentifier:
			return
		}
		p.current++
	}
}

func (p *Parser) cur() Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // the EndOfInput sentinel
	}
	return p.tokens[p.current]
}

func (p *Parser) at(kind TokenKind) bool { return p.cur().Kind == kind }

func (p *Parser) advance() Token {
	tok := p.cur()
	if p.current < len(p.tokens)-1 {
		p.current++
	} else {
		p.current = len(p.tokens)
	}
	return tok
}

// adjacentIdentifier reports whether the token directly following tok in the
// source (no whitespace between) is an identifier.
func (p *Parser) adjacentIdentifier(tok Token) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	next := p.tokens[p.current+1]
	return next.Kind == TokenIdentifier && next.Position == tok.End()
}

// adjacentIdentifierAt is adjacentIdentifier for the case where tok has
// already been consumed and the candidate identifier is the current token.
func (p *Parser) adjacentIdentifierAt(tok Token) bool {
	cur := p.cur()
	return cur.Kind == TokenIdentifier && cur.Position == tok.End()
}

func (p *Parser) errorAt(tok Token, message string) {
	length := tok.Length
	if length == 0 {
		length = 1
	}
	p.errs = append(p.errs, &ParseError{
		Position: tok.Position,
		Length:   length,
		Message:  message,
	})
}

func (p *Parser) errorWithSuggestion(tok Token, message, suggestion string) {
	p.errs = append(p.errs, &ParseError{
		Position:   tok.Position,
		Length:     tok.Length,
		Message:    message,
		Suggestion: suggestion,
	})
}
