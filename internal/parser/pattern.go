package parser

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/token"
)

// parsePattern parses a single pattern with an optional `: Type`
// ascription; `| pat | pat` alternation is handled by parseOrPattern.
// Callers must have advanced curTok onto the first token of the pattern.
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parsePrimaryPattern()

	if p.peekIs(token.COLON) {
		start := first.Span()
		p.nextToken() // ':'
		p.nextToken()
		typ := p.parseType()
		first = ast.NewPatternTyped(first, typ, token.Merge(start, p.curTok.Span))
	}

	return first
}

func (p *Parser) parsePrimaryPattern() ast.Pattern {
	switch p.curTok.Kind {
	case token.IDENT:
		return p.parseIdentOrConstructorPattern(false)
	case token.MUT:
		p.nextToken()
		name := p.parseIdentNode()
		return ast.NewPatternIdent(name, true, name.Span())
	case token.INT:
		return p.parseLiteralOrRangePattern()
	case token.FLOAT:
		lit := ast.NewPatternLiteralFloat(patFloatVal(p.curTok), p.curTok.Span)
		return lit
	case token.STRING:
		return ast.NewPatternLiteralString(p.curTok.Value, p.curTok.Span)
	case token.CHAR:
		return p.parseCharOrRangePattern()
	case token.TRUE, token.FALSE:
		return ast.NewPatternLiteralBool(p.curIs(token.TRUE), p.curTok.Span)
	case token.MINUS:
		return p.parseNegativeLiteralPattern()
	case token.LPAREN:
		return p.parseTuplePattern()
	case token.LBRACE:
		return p.parseRecordPattern(nil)
	default:
		if p.curTok.Lexeme == "_" && p.curIs(token.IDENT) {
			return ast.NewPatternWild(p.curTok.Span)
		}
		p.reportUnexpected("a pattern", p.curTok)
		return ast.NewPatternWild(p.curTok.Span)
	}
}

func patFloatVal(t token.Token) float64 {
	if t.FloatVal != nil {
		return *t.FloatVal
	}
	return 0
}

func (p *Parser) parseIdentNode() *ast.Ident {
	if !p.curIs(token.IDENT) {
		p.reportUnexpected("identifier", p.curTok)
		return ast.NewIdent("", p.curTok.Span)
	}
	return ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)
}

// parseIdentOrConstructorPattern disambiguates a bare identifier binding
// (`x`), the wildcard spelled as an identifier (`_`), and a (possibly
// path-qualified) variant/record constructor pattern.
func (p *Parser) parseIdentOrConstructorPattern(mutable bool) ast.Pattern {
	start := p.curTok.Span
	if p.curTok.Lexeme == "_" {
		return ast.NewPatternWild(start)
	}

	var path []*ast.Ident
	path = append(path, ast.NewIdent(p.curTok.Lexeme, p.curTok.Span))
	for p.peekIs(token.DOUBLE_COLON) {
		p.nextToken()
		p.nextToken()
		path = append(path, p.parseIdentNode())
	}

	isUpper := len(path[0].Name) > 0 && path[0].Name[0] >= 'A' && path[0].Name[0] <= 'Z'

	if p.peekIs(token.LPAREN) {
		p.nextToken() // '('
		p.nextToken()
		var args []ast.PatternArg
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			args = append(args, ast.PatternArg{Pattern: p.parsePattern()})
			if p.peekIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
		p.expectPeek(token.RPAREN)
		return ast.NewPatternConstructor(path, args, token.Merge(start, p.curTok.Span))
	}

	if p.peekIs(token.LBRACE) {
		p.nextToken()
		return p.parseRecordPattern(path[len(path)-1])
	}

	if !isUpper && len(path) == 1 {
		return ast.NewPatternIdent(path[0], mutable, token.Merge(start, p.curTok.Span))
	}
	// bare unit-variant path (`None`, `Color::Red`)
	return ast.NewPatternConstructor(path, nil, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseRecordPattern(typeName *ast.Ident) ast.Pattern {
	start := p.curTok.Span
	p.nextToken() // consume '{'
	p.skipNewlines()

	var fields []ast.PatternArg
	hasRest := false
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.DOTDOT) {
			hasRest = true
			break
		}
		name := p.parseIdentNode()
		var fieldPat ast.Pattern
		if p.peekIs(token.COLON) {
			p.nextToken() // ':'
			p.nextToken()
			fieldPat = p.parsePattern()
		} else {
			fieldPat = ast.NewPatternIdent(name, false, name.Span())
		}
		fields = append(fields, ast.PatternArg{Name: name, Pattern: fieldPat})
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			p.skipNewlines()
			continue
		}
		break
	}
	p.skipNewlines()
	p.expectPeek(token.RBRACE)
	return ast.NewPatternRecord(typeName, fields, hasRest, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	start := p.curTok.Span
	p.nextToken() // consume '('
	var elems []ast.Pattern
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.DOTDOT) {
			elems = append(elems, ast.NewPatternRest(p.curTok.Span))
			p.nextToken()
		} else {
			elems = append(elems, p.parsePattern())
		}
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RPAREN)
	if len(elems) == 1 {
		return elems[0]
	}
	return ast.NewPatternTuple(elems, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseNegativeLiteralPattern() ast.Pattern {
	start := p.curTok.Span
	p.nextToken() // consume '-'
	switch p.curTok.Kind {
	case token.INT:
		v := int64(0)
		if p.curTok.IntVal != nil {
			v = *p.curTok.IntVal
		}
		return ast.NewPatternLiteralInt(-v, token.Merge(start, p.curTok.Span))
	case token.FLOAT:
		return ast.NewPatternLiteralFloat(-patFloatVal(p.curTok), token.Merge(start, p.curTok.Span))
	default:
		p.reportUnexpected("a numeric literal after '-'", p.curTok)
		return ast.NewPatternWild(token.Merge(start, p.curTok.Span))
	}
}

func (p *Parser) parseLiteralOrRangePattern() ast.Pattern {
	start := p.curTok.Span
	v := int64(0)
	if p.curTok.IntVal != nil {
		v = *p.curTok.IntVal
	}
	lit := ast.NewPatternLiteralInt(v, start)

	if p.peekIs(token.DOTDOT) || p.peekIs(token.DOTDOTEQ) {
		inclusive := p.peekIs(token.DOTDOTEQ)
		p.nextToken() // '..' or '..='
		p.nextToken()
		end := p.parsePrimaryPattern()
		return ast.NewPatternRange(ast.RangeInt, lit, end, inclusive, token.Merge(start, p.curTok.Span))
	}
	return lit
}

func (p *Parser) parseCharOrRangePattern() ast.Pattern {
	start := p.curTok.Span
	r := rune(0)
	if len(p.curTok.Value) > 0 {
		r = []rune(p.curTok.Value)[0]
	}
	lit := ast.NewPatternLiteralChar(r, start)

	if p.peekIs(token.DOTDOT) || p.peekIs(token.DOTDOTEQ) {
		inclusive := p.peekIs(token.DOTDOTEQ)
		p.nextToken()
		p.nextToken()
		end := p.parsePrimaryPattern()
		return ast.NewPatternRange(ast.RangeChar, lit, end, inclusive, token.Merge(start, p.curTok.Span))
	}
	return lit
}

// parseOrPattern wraps parsePattern with `|`-alternation handling, used at
// match-arm position where alternation is legal.
func (p *Parser) parseOrPattern() ast.Pattern {
	first := p.parsePattern()
	if !p.peekIs(token.PIPE) {
		return first
	}
	start := first.Span()
	alts := []ast.Pattern{first}
	for p.peekIs(token.PIPE) {
		p.nextToken() // '|'
		p.nextToken()
		alts = append(alts, p.parsePattern())
	}
	return ast.NewPatternOr(alts, token.Merge(start, p.curTok.Span))
}
