package parser

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/token"
)

func isDeclStart(k token.Kind) bool {
	switch k {
	case token.PUB, token.FN, token.EFFECT, token.STRUCT, token.ENUM, token.TRAIT,
		token.IMPL, token.TYPE, token.CONST, token.LET, token.TEST:
		return true
	default:
		return false
	}
}

func (p *Parser) parseDecl() ast.Decl {
	pub := false
	if p.curIs(token.PUB) {
		pub = true
		p.nextToken()
	}

	switch p.curTok.Kind {
	case token.FN:
		return p.parseFnDecl(pub, false)
	case token.EFFECT:
		if p.peekIs(token.FN) {
			p.nextToken()
			return p.parseFnDecl(pub, true)
		}
		p.reportUnexpected("'fn' after 'effect'", p.peekTok)
		return nil
	case token.STRUCT:
		return p.parseStructDecl(pub)
	case token.ENUM:
		return p.parseEnumDecl(pub)
	case token.TRAIT:
		return p.parseTraitDecl(pub)
	case token.IMPL:
		return p.parseImplDecl()
	case token.TYPE:
		return p.parseAliasTypeDecl(pub)
	case token.CONST:
		return p.parseConstDecl(pub)
	case token.LET:
		return p.parseTopLevelLetDecl(pub)
	case token.TEST:
		return p.parseTestDecl()
	default:
		p.reportUnexpected("a declaration", p.curTok)
		return nil
	}
}

func (p *Parser) parseGenericParams() []ast.GenericParam {
	if !p.curIs(token.LBRACKET) {
		return nil
	}
	var params []ast.GenericParam
	p.nextToken() // consume '['
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		name := p.parseIdent()
		var constraints []*ast.Ident
		if p.peekIs(token.COLON) {
			p.nextToken() // ':'
			p.nextToken()
			constraints = append(constraints, p.parseIdent())
			for p.peekIs(token.PLUS) {
				p.nextToken() // '+'
				p.nextToken()
				constraints = append(constraints, p.parseIdent())
			}
		}
		params = append(params, ast.GenericParam{Name: name, Constraints: constraints})
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RBRACKET)
	return params
}

func (p *Parser) parseParams() []*ast.Param {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	var params []*ast.Param
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	if p.curIs(token.SELF) {
		// The receiver is implicit in the signature; method dispatch binds
		// it, so it never appears in Params.
		if !p.peekIs(token.COMMA) {
			p.expectPeek(token.RPAREN)
			return params
		}
		p.nextToken() // ','
		p.nextToken()
	}
	for {
		start := p.curTok.Span
		pat := p.parsePrimaryPattern()
		if !p.expectPeek(token.COLON) {
			return params
		}
		p.nextToken()
		typ := p.parseType()
		params = append(params, ast.NewParam(pat, typ, token.Merge(start, p.curTok.Span)))
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseWhereClause() *ast.WhereClause {
	if !p.peekIs(token.WHERE) {
		return nil
	}
	p.nextToken() // 'where'
	var constraints []ast.WhereConstraint
	p.nextToken()
	for {
		param := p.parseIdent()
		if !p.expectPeek(token.COLON) {
			break
		}
		p.nextToken()
		trait := p.parseIdent()
		constraints = append(constraints, ast.WhereConstraint{Param: param, Trait: trait})
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	return &ast.WhereClause{Constraints: constraints}
}

func (p *Parser) parseFnDecl(pub, isEffect bool) *ast.FnDecl {
	start := p.curTok.Span
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)

	var typeParams []ast.GenericParam
	if p.peekIs(token.LBRACKET) {
		p.nextToken()
		typeParams = p.parseGenericParams()
	}

	params := p.parseParams()

	var retType ast.TypeExpr
	if p.peekIs(token.ARROW) {
		p.nextToken() // '->'
		p.nextToken()
		retType = p.parseType()
	}

	where := p.parseWhereClause()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockExpr()

	return ast.NewFnDecl(pub, isEffect, name, typeParams, params, retType, where, body, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseField() *ast.Field {
	start := p.curTok.Span
	name := p.parseIdent()
	if !p.expectPeek(token.COLON) {
		return ast.NewField(name, nil, token.Merge(start, p.curTok.Span))
	}
	p.nextToken()
	typ := p.parseType()
	return ast.NewField(name, typ, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseStructDecl(pub bool) *ast.ProductTypeDecl {
	start := p.curTok.Span
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)

	var typeParams []ast.GenericParam
	if p.peekIs(token.LBRACKET) {
		p.nextToken()
		typeParams = p.parseGenericParams()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	p.skipNewlines()

	var fields []*ast.Field
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		fields = append(fields, p.parseField())
		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
		p.nextToken()
		p.skipNewlines()
	}

	return ast.NewProductTypeDecl(pub, name, typeParams, fields, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseVariantDecl() *ast.VariantDecl {
	start := p.curTok.Span
	name := p.parseIdent()

	var fields []*ast.Field
	if p.peekIs(token.LPAREN) {
		p.nextToken() // '('
		p.nextToken()
		idx := 0
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			typ := p.parseType()
			synthName := ast.NewIdent(itoa(idx), typ.Span())
			fields = append(fields, ast.NewField(synthName, typ, typ.Span()))
			idx++
			if p.peekIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
		p.expectPeek(token.RPAREN)
	} else if p.peekIs(token.LBRACE) {
		p.nextToken() // '{'
		p.nextToken()
		p.skipNewlines()
		for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			fields = append(fields, p.parseField())
			if p.peekIs(token.COMMA) {
				p.nextToken()
			}
			p.nextToken()
			p.skipNewlines()
		}
	}

	return ast.NewVariantDecl(name, fields, token.Merge(start, p.curTok.Span))
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

func (p *Parser) parseEnumDecl(pub bool) *ast.SumTypeDecl {
	start := p.curTok.Span
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)

	var typeParams []ast.GenericParam
	if p.peekIs(token.LBRACKET) {
		p.nextToken()
		typeParams = p.parseGenericParams()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	p.skipNewlines()

	var variants []*ast.VariantDecl
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		variants = append(variants, p.parseVariantDecl())
		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
		p.nextToken()
		p.skipNewlines()
	}

	return ast.NewSumTypeDecl(pub, name, typeParams, variants, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseAliasTypeDecl(pub bool) *ast.AliasTypeDecl {
	start := p.curTok.Span
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)

	var typeParams []ast.GenericParam
	if p.peekIs(token.LBRACKET) {
		p.nextToken()
		typeParams = p.parseGenericParams()
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	underlying := p.parseType()

	return ast.NewAliasTypeDecl(pub, name, typeParams, underlying, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseConstDecl(pub bool) *ast.ConstDecl {
	start := p.curTok.Span
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)

	var typ ast.TypeExpr
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		typ = p.parseType()
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpr(precLowest)

	return ast.NewConstDecl(pub, name, typ, value, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseTopLevelLetDecl(pub bool) *ast.LetDecl {
	start := p.curTok.Span
	p.nextToken()
	pat := p.parsePrimaryPattern()

	var typ ast.TypeExpr
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		typ = p.parseType()
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpr(precLowest)

	return ast.NewLetDecl(pub, pat, typ, value, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseTraitMethodSig() *ast.TraitMethodSig {
	start := p.curTok.Span
	isEffect := false
	if p.curIs(token.EFFECT) {
		isEffect = true
		p.nextToken()
	}
	if !p.curIs(token.FN) {
		p.reportUnexpected("'fn'", p.curTok)
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)
	params := p.parseParams()

	var retType ast.TypeExpr
	if p.peekIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		retType = p.parseType()
	}

	var body *ast.BlockExpr
	if p.peekIs(token.LBRACE) {
		p.nextToken()
		body = p.parseBlockExpr()
	}

	return ast.NewTraitMethodSig(name, isEffect, params, retType, body, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseTraitDecl(pub bool) *ast.TraitDecl {
	start := p.curTok.Span
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)

	var typeParams []ast.GenericParam
	if p.peekIs(token.LBRACKET) {
		p.nextToken()
		typeParams = p.parseGenericParams()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	p.skipNewlines()

	var methods []*ast.TraitMethodSig
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		m := p.parseTraitMethodSig()
		if m != nil {
			methods = append(methods, m)
		}
		p.nextToken()
		p.skipNewlines()
	}

	return ast.NewTraitDecl(pub, name, typeParams, methods, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseImplDecl() *ast.ImplDecl {
	start := p.curTok.Span
	p.nextToken() // consume 'impl'

	var typeParams []ast.GenericParam
	if p.curIs(token.LBRACKET) {
		typeParams = p.parseGenericParams()
		p.nextToken()
	}

	first := p.parseType()

	var trait *ast.Ident
	var typ ast.TypeExpr
	if named, ok := first.(*ast.NamedTypeExpr); ok && p.peekIs(token.FOR) {
		trait = named.Path[len(named.Path)-1]
		p.nextToken() // consume 'for'
		p.nextToken()
		typ = p.parseType()
	} else {
		typ = first
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	p.skipNewlines()

	var methods []*ast.FnDecl
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		isEffect := false
		if p.curIs(token.EFFECT) {
			isEffect = true
			p.nextToken()
		}
		if p.curIs(token.FN) {
			m := p.parseFnDecl(false, isEffect)
			if m != nil {
				methods = append(methods, m)
			}
		}
		p.nextToken()
		p.skipNewlines()
	}

	return ast.NewImplDecl(typeParams, trait, typ, methods, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseTestDecl() *ast.TestDecl {
	start := p.curTok.Span
	if !p.expectPeek(token.STRING) {
		return nil
	}
	name := ast.NewTokenStringLit(p.curTok.Value, p.curTok.Span)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockExpr()
	return ast.NewTestDecl(name, body, token.Merge(start, p.curTok.Span))
}
