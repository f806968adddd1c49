package parser

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/token"
)

// parseStmtOrTail parses one statement-position unit. It returns a non-nil
// stmt for ordinary statements, or a non-nil tail expression when the unit
// is an expression followed by the block's closing brace, either directly
// or after a single NEWLINE terminator.
func (p *Parser) parseStmtOrTail() (ast.Stmt, ast.Expr) {
	switch p.curTok.Kind {
	case token.LET:
		return p.parseLetStmt(), nil
	case token.VAR:
		return p.parseVarStmt(), nil
	case token.FOR:
		return p.parseForStmt(), nil
	case token.WHILE:
		return p.parseWhileStmt(), nil
	case token.LOOP:
		return p.parseLoopStmt(), nil
	case token.RETURN:
		return p.parseReturnStmt(), nil
	case token.BREAK:
		start := p.curTok.Span
		p.consumeTerminator()
		return ast.NewBreakStmt(start), nil
	default:
		return p.parseExprStmtOrAssignOrTail()
	}
}

// consumeTerminator advances past a single trailing NEWLINE if present; a
// following '}' or EOF also legally terminates a statement without one.
func (p *Parser) consumeTerminator() {
	if p.peekIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken() // consume 'let'
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
	stmt := ast.NewLetStmt(pat, typ, value, token.Merge(start, p.curTok.Span))
	p.consumeTerminator()
	return stmt
}

func (p *Parser) parseVarStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken() // consume 'var'
	pat := p.parsePrimaryPattern()

	var typ ast.TypeExpr
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		typ = p.parseType()
	}

	var value ast.Expr
	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value = p.parseExpr(precLowest)
	}
	stmt := ast.NewVarStmt(pat, typ, value, token.Merge(start, p.curTok.Span))
	p.consumeTerminator()
	return stmt
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken() // consume 'for'
	pat := p.parsePattern()
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	iterable := p.parseExpr(precLowest)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockExpr()
	stmt := ast.NewForStmt(pat, iterable, body, token.Merge(start, p.curTok.Span))
	p.consumeTerminator()
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken() // consume 'while'
	cond := p.parseExpr(precLowest)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockExpr()
	stmt := ast.NewWhileStmt(cond, body, token.Merge(start, p.curTok.Span))
	p.consumeTerminator()
	return stmt
}

func (p *Parser) parseLoopStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken() // consume 'loop'
	if !p.curIs(token.LBRACE) {
		p.reportUnexpected("'{'", p.curTok)
		return nil
	}
	body := p.parseBlockExpr()
	stmt := ast.NewLoopStmt(body, token.Merge(start, p.curTok.Span))
	p.consumeTerminator()
	return stmt
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curTok.Span
	var value ast.Expr
	if !p.peekIs(token.NEWLINE) && !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		value = p.parseExpr(precLowest)
	}
	stmt := ast.NewReturnStmt(value, token.Merge(start, p.curTok.Span))
	p.consumeTerminator()
	return stmt
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.ASSIGN:  ast.AssignPlain,
	token.PLUSEQ:  ast.AssignAdd,
	token.MINUSEQ: ast.AssignSub,
	token.STAREQ:  ast.AssignMul,
	token.SLASHEQ: ast.AssignDiv,
}

// parseExprStmtOrAssignOrTail parses a leading expression, then decides
// whether it is an assignment target, an ordinary statement, or — when only
// the closing brace (optionally after one NEWLINE) follows it — the block's
// tail expression.
func (p *Parser) parseExprStmtOrAssignOrTail() (ast.Stmt, ast.Expr) {
	start := p.curTok.Span
	expr := p.parseExpr(precLowest)
	if expr == nil {
		// avoid an infinite loop on unparseable input
		if !p.curIs(token.EOF) {
			p.nextToken()
		}
		return nil, nil
	}

	if op, ok := assignOps[p.peekTok.Kind]; ok {
		p.nextToken() // move onto the assignment operator
		p.nextToken()
		value := p.parseExpr(precLowest)
		stmt := ast.NewAssignStmt(expr, op, value, token.Merge(start, p.curTok.Span))
		p.consumeTerminator()
		return stmt, nil
	}

	if p.peekIs(token.RBRACE) {
		return nil, expr
	}

	stmt := ast.NewExprStmt(expr, token.Merge(start, p.curTok.Span))
	p.consumeTerminator()
	if p.peekIs(token.RBRACE) {
		return nil, expr
	}
	return stmt, nil
}
