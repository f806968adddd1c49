package parser

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/token"
)

// parseExpr is the Pratt-parser entry point: it parses a prefix expression
// then repeatedly absorbs infix/postfix operators whose precedence exceeds
// the caller's minimum.
func (p *Parser) parseExpr(precedence int) ast.Expr {
	prefix, ok := p.prefixFns[p.curTok.Kind]
	if !ok {
		p.reportUnexpected("an expression", p.curTok)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.NEWLINE) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekTok.Kind]
		if !ok {
			break
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	start := p.curTok.Span
	op := ast.OpNeg
	if p.curIs(token.BANG) {
		op = ast.OpNot
	}
	p.nextToken()
	operand := p.parseExpr(precUnary)
	return ast.NewUnaryExpr(op, operand, token.Merge(start, p.curTok.Span))
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.PLUS:    ast.OpAdd,
	token.MINUS:   ast.OpSub,
	token.STAR:    ast.OpMul,
	token.SLASH:   ast.OpDiv,
	token.PERCENT: ast.OpMod,
	token.LT:      ast.OpLt,
	token.LE:      ast.OpLe,
	token.GT:      ast.OpGt,
	token.GE:      ast.OpGe,
	token.EQ:      ast.OpEq,
	token.NOT_EQ:  ast.OpNotEq,
	token.AND:     ast.OpAnd,
	token.OR:      ast.OpOr,
	token.IS:      ast.OpIs,
	token.IN:      ast.OpIn,
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	op := binaryOps[p.curTok.Kind]
	prec := precedences[p.curTok.Kind]
	p.nextToken()
	right := p.parseExpr(prec)
	return ast.NewBinaryExpr(op, left, right, token.Merge(left.Span(), p.curTok.Span))
}

func (p *Parser) parseRangeExpr(left ast.Expr) ast.Expr {
	inclusive := p.curIs(token.DOTDOTEQ)
	start := left.Span()
	if p.peekIs(token.NEWLINE) || p.peekIs(token.RBRACE) || p.peekIs(token.RPAREN) || p.peekIs(token.RBRACKET) || p.peekIs(token.COMMA) {
		return ast.NewRangeExpr(left, nil, inclusive, token.Merge(start, p.curTok.Span))
	}
	p.nextToken()
	end := p.parseExpr(precRange)
	return ast.NewRangeExpr(left, end, inclusive, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseOpenRangeExpr() ast.Expr {
	inclusive := p.curIs(token.DOTDOTEQ)
	start := p.curTok.Span
	p.nextToken()
	end := p.parseExpr(precRange)
	return ast.NewRangeExpr(nil, end, inclusive, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseCoalesceExpr(left ast.Expr) ast.Expr {
	p.nextToken()
	def := p.parseExpr(precCoalesce)
	return ast.NewCoalesceExpr(left, def, token.Merge(left.Span(), p.curTok.Span))
}

func (p *Parser) parseTryExpr(left ast.Expr) ast.Expr {
	return ast.NewTryExpr(left, token.Merge(left.Span(), p.curTok.Span))
}

func (p *Parser) parseCastExpr(left ast.Expr) ast.Expr {
	p.nextToken()
	typ := p.parseType()
	return ast.NewTypeCastExpr(left, typ, token.Merge(left.Span(), p.curTok.Span))
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	start := callee.Span()
	var args []ast.Expr
	if !p.peekIs(token.RPAREN) {
		p.nextToken()
		for {
			args = append(args, p.parseExpr(precLowest))
			if p.peekIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
	}
	p.expectPeek(token.RPAREN)
	return ast.NewCallExpr(callee, args, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseIndexExpr(receiver ast.Expr) ast.Expr {
	start := receiver.Span()
	p.nextToken()
	idx := p.parseExpr(precLowest)
	p.expectPeek(token.RBRACKET)
	return ast.NewIndexExpr(receiver, idx, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseDotExpr(receiver ast.Expr) ast.Expr {
	start := receiver.Span()
	if p.peekIs(token.INT) {
		p.nextToken()
		idx := 0
		if p.curTok.IntVal != nil {
			idx = int(*p.curTok.IntVal)
		}
		return ast.NewTupleIndexExpr(receiver, idx, token.Merge(start, p.curTok.Span))
	}
	if !p.expectPeek(token.IDENT) {
		return receiver
	}
	name := ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)
	if p.peekIs(token.LPAREN) {
		p.nextToken() // '('
		var args []ast.Expr
		if !p.peekIs(token.RPAREN) {
			p.nextToken()
			for {
				args = append(args, p.parseExpr(precLowest))
				if p.peekIs(token.COMMA) {
					p.nextToken()
					p.nextToken()
					continue
				}
				break
			}
		}
		p.expectPeek(token.RPAREN)
		return ast.NewMethodCallExpr(receiver, name, args, token.Merge(start, p.curTok.Span))
	}
	return ast.NewFieldExpr(receiver, name, token.Merge(start, p.curTok.Span))
}

// parseGroupOrTupleExpr parses `(expr)` or `(e1, e2, ...)`. A trailing
// comma after a single element forces a one-element tuple.
func (p *Parser) parseGroupOrTupleExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // consume '('
	if p.curIs(token.RPAREN) {
		return ast.NewTupleExpr(nil, token.Merge(start, p.curTok.Span))
	}
	first := p.parseExpr(precLowest)
	if !p.peekIs(token.COMMA) {
		p.expectPeek(token.RPAREN)
		return ast.NewGroupExpr(first, token.Merge(start, p.curTok.Span))
	}
	elems := []ast.Expr{first}
	for p.peekIs(token.COMMA) {
		p.nextToken() // ','
		if p.peekIs(token.RPAREN) {
			p.nextToken()
			break
		}
		p.nextToken()
		elems = append(elems, p.parseExpr(precLowest))
	}
	if !p.curIs(token.RPAREN) {
		p.expectPeek(token.RPAREN)
	}
	return ast.NewTupleExpr(elems, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseArrayExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // consume '['
	var elems []ast.Expr
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseExpr(precLowest))
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RBRACKET)
	return ast.NewArrayExpr(elems, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseBlockLiteral() ast.Expr {
	return p.parseBlockExpr()
}

// parseBlockExpr parses `{ stmts... tail? }`. curTok must be LBRACE on entry;
// curTok is RBRACE on return.
func (p *Parser) parseBlockExpr() *ast.BlockExpr {
	start := p.curTok.Span
	p.nextToken() // consume '{'
	p.skipNewlines()

	block := ast.NewBlockExpr(nil, nil, start)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt, tail := p.parseStmtOrTail()
		if tail != nil {
			block.Tail = tail
			p.nextToken() // onto '}'
			break
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
			if !p.curIs(token.NEWLINE) {
				p.nextToken() // past the statement's final token
			}
		}
		p.skipNewlines()
	}

	if !p.curIs(token.RBRACE) {
		p.reportUnexpected("'}'", p.curTok)
	}
	block.SetSpan(token.Merge(start, p.curTok.Span))
	return block
}

func (p *Parser) parseIfExprPrefix() ast.Expr { return p.parseIfExpr() }

func (p *Parser) parseIfExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // consume 'if'
	cond := p.parseExpr(precLowest)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	then := p.parseBlockExpr()

	var els ast.Expr
	if p.peekIs(token.ELSE) {
		p.nextToken() // 'else'
		if p.peekIs(token.IF) {
			p.nextToken()
			els = p.parseIfExpr()
		} else if p.expectPeek(token.LBRACE) {
			els = p.parseBlockExpr()
		}
	}

	return ast.NewIfExpr(cond, then, els, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseMatchExprPrefix() ast.Expr { return p.parseMatchExpr() }

func (p *Parser) parseMatchExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // consume 'match'
	subject := p.parseExpr(precLowest)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	p.skipNewlines()

	var arms []ast.MatchArm
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		armStart := p.curTok.Span
		pat := p.parseOrPattern()

		if p.peekIs(token.IF) {
			p.nextToken() // 'if'
			p.nextToken()
			guard := p.parseExpr(precLowest)
			pat = ast.NewPatternGuarded(pat, guard, token.Merge(armStart, p.curTok.Span))
		}

		if !p.expectPeek(token.FATARROW) {
			return nil
		}
		p.nextToken()
		body := p.parseExpr(precLowest)
		arms = append(arms, ast.NewMatchArm(pat, body, token.Merge(armStart, p.curTok.Span)))

		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
		p.nextToken()
		p.skipNewlines()
	}

	return ast.NewMatchExpr(subject, arms, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseClosurePlain() ast.Expr  { return p.parseClosure(false) }
func (p *Parser) parseClosureEffect() ast.Expr {
	p.nextToken() // consume 'effect', land on 'fn'
	return p.parseClosure(true)
}

func (p *Parser) parseClosure(isEffect bool) ast.Expr {
	start := p.curTok.Span
	params := p.parseParams()

	var retType ast.TypeExpr
	if p.peekIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		retType = p.parseType()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockExpr()
	return ast.NewClosureExpr(isEffect, params, retType, body, token.Merge(start, p.curTok.Span))
}
