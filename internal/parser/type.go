package parser

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/token"
)

var primitiveTypeNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
	"f32": true, "f64": true, "bool": true, "char": true, "string": true,
}

// parseType parses a syntactic type annotation. Callers must have already
// advanced curTok onto the first token of the type.
func (p *Parser) parseType() ast.TypeExpr {
	switch p.curTok.Kind {
	case token.IDENT:
		return p.parseNamedOrGenericType()
	case token.SELF_TY:
		t := ast.NewSelfTypeExpr(p.curTok.Span)
		return t
	case token.FN:
		return p.parseFnTypeExpr(false)
	case token.EFFECT:
		if p.peekIs(token.FN) {
			p.nextToken()
			return p.parseFnTypeExpr(true)
		}
		p.reportUnexpected("'fn' after 'effect'", p.peekTok)
		return nil
	case token.LPAREN:
		return p.parseTupleTypeExpr()
	case token.LBRACKET:
		return p.parseArrayTypeExpr()
	default:
		p.reportUnexpected("a type", p.curTok)
		return nil
	}
}

func (p *Parser) parseNamedOrGenericType() ast.TypeExpr {
	start := p.curTok.Span
	if primitiveTypeNames[p.curTok.Lexeme] {
		name := p.curTok.Lexeme
		if !p.peekIs(token.LBRACKET) {
			return ast.NewPrimitiveTypeExpr(name, start)
		}
	}

	switch p.curTok.Lexeme {
	case "IO":
		return p.parseIOTypeExpr()
	case "Result":
		return p.parseResultTypeExpr()
	case "Option":
		return p.parseOptionTypeExpr()
	}

	var path []*ast.Ident
	path = append(path, ast.NewIdent(p.curTok.Lexeme, p.curTok.Span))
	for p.peekIs(token.DOUBLE_COLON) {
		p.nextToken()
		p.nextToken()
		path = append(path, ast.NewIdent(p.curTok.Lexeme, p.curTok.Span))
	}

	var base ast.TypeExpr
	if primitiveTypeNames[path[len(path)-1].Name] && len(path) == 1 {
		base = ast.NewPrimitiveTypeExpr(path[0].Name, start)
	} else {
		base = ast.NewNamedTypeExpr(path, token.Merge(start, p.curTok.Span))
	}

	if !p.peekIs(token.LBRACKET) {
		return base
	}
	p.nextToken() // '['
	p.nextToken()

	var args []ast.TypeExpr
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		args = append(args, p.parseType())
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RBRACKET)

	return ast.NewGenericTypeExpr(base, args, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseIOTypeExpr() ast.TypeExpr {
	start := p.curTok.Span
	if !p.expectPeek(token.LBRACKET) {
		return nil
	}
	p.nextToken()
	elem := p.parseType()
	p.expectPeek(token.RBRACKET)
	return ast.NewIOTypeExpr(elem, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseResultTypeExpr() ast.TypeExpr {
	start := p.curTok.Span
	if !p.expectPeek(token.LBRACKET) {
		return nil
	}
	p.nextToken()
	ok := p.parseType()
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	p.nextToken()
	errType := p.parseType()
	p.expectPeek(token.RBRACKET)
	return ast.NewResultTypeExpr(ok, errType, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseOptionTypeExpr() ast.TypeExpr {
	start := p.curTok.Span
	if !p.expectPeek(token.LBRACKET) {
		return nil
	}
	p.nextToken()
	elem := p.parseType()
	p.expectPeek(token.RBRACKET)
	return ast.NewOptionTypeExpr(elem, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseFnTypeExpr(isEffect bool) ast.TypeExpr {
	start := p.curTok.Span
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	var params []ast.TypeExpr
	if !p.peekIs(token.RPAREN) {
		p.nextToken()
		for {
			params = append(params, p.parseType())
			if p.peekIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	var ret ast.TypeExpr
	if p.peekIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		ret = p.parseType()
	}

	return ast.NewFnTypeExpr(isEffect, params, ret, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseTupleTypeExpr() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // consume '('
	var elems []ast.TypeExpr
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseType())
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RPAREN)
	return ast.NewTupleTypeExpr(elems, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseArrayTypeExpr() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // consume '['
	elem := p.parseType()

	var length *int
	if p.peekIs(token.COLON) {
		p.nextToken() // ':'
		if p.expectPeek(token.INT) && p.curTok.IntVal != nil {
			n := int(*p.curTok.IntVal)
			length = &n
		}
	}
	p.expectPeek(token.RBRACKET)
	return ast.NewArrayTypeExpr(elem, length, token.Merge(start, p.curTok.Span))
}
