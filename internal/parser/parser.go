// Package parser implements Lucent's recursive-descent/Pratt parser,
// turning a lexer's significant-newline token stream into an *ast.File.
package parser

import (
	"strconv"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/lexer"
	"github.com/lucent-lang/lucent/internal/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

const (
	precLowest = iota
	precCoalesce
	precOr
	precAnd
	precEquality
	precComparison
	precRange
	precSum
	precProduct
	precCast
	precUnary
	precPostfix
)

var precedences = map[token.Kind]int{
	token.QUESTION2: precCoalesce,
	token.OR:        precOr,
	token.AND:       precAnd,
	token.EQ:        precEquality,
	token.NOT_EQ:    precEquality,
	token.LT:        precComparison,
	token.LE:        precComparison,
	token.GT:        precComparison,
	token.GE:        precComparison,
	token.IS:        precComparison,
	token.IN:        precComparison,
	token.DOTDOT:    precRange,
	token.DOTDOTEQ:  precRange,
	token.PLUS:      precSum,
	token.MINUS:     precSum,
	token.STAR:      precProduct,
	token.SLASH:     precProduct,
	token.PERCENT:   precProduct,
	token.AS:        precCast,
	token.LPAREN:    precPostfix,
	token.LBRACKET:  precPostfix,
	token.DOT:       precPostfix,
	token.QUESTION:  precPostfix,
}

// Parser is a single-file recursive-descent parser. Lookahead is carried
// entirely in curTok/peekTok; every other method mutates the token window
// only by calling nextToken.
type Parser struct {
	lx       *lexer.Lexer
	filename string

	curTok  token.Token
	peekTok token.Token

	errors []diag.Diagnostic

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New creates a parser over input, attributing diagnostics to filename.
func New(filename, input string) *Parser {
	p := &Parser{
		lx:        lexer.New(filename, input),
		filename:  filename,
		prefixFns: make(map[token.Kind]prefixParseFn),
		infixFns:  make(map[token.Kind]infixParseFn),
	}

	p.registerPrefix(token.IDENT, p.parseIdentOrPath)
	p.registerPrefix(token.INT, p.parseIntLit)
	p.registerPrefix(token.FLOAT, p.parseFloatLit)
	p.registerPrefix(token.STRING, p.parseStringLit)
	p.registerPrefix(token.INTERP_STRING, p.parseInterpStringLit)
	p.registerPrefix(token.CHAR, p.parseCharLit)
	p.registerPrefix(token.TRUE, p.parseBoolLit)
	p.registerPrefix(token.FALSE, p.parseBoolLit)
	p.registerPrefix(token.SELF, p.parseSelfExpr)
	p.registerPrefix(token.MINUS, p.parseUnaryExpr)
	p.registerPrefix(token.BANG, p.parseUnaryExpr)
	p.registerPrefix(token.LPAREN, p.parseGroupOrTupleExpr)
	p.registerPrefix(token.LBRACKET, p.parseArrayExpr)
	p.registerPrefix(token.LBRACE, p.parseBlockLiteral)
	p.registerPrefix(token.IF, p.parseIfExprPrefix)
	p.registerPrefix(token.MATCH, p.parseMatchExprPrefix)
	p.registerPrefix(token.FN, p.parseClosurePlain)
	p.registerPrefix(token.EFFECT, p.parseClosureEffect)
	p.registerPrefix(token.DOTDOT, p.parseOpenRangeExpr)
	p.registerPrefix(token.DOTDOTEQ, p.parseOpenRangeExpr)
	p.registerPrefix(token.SPAWN, p.parseUnsupportedConcurrency)
	p.registerPrefix(token.CHAN, p.parseUnsupportedConcurrency)
	p.registerPrefix(token.SELECT, p.parseUnsupportedConcurrency)

	p.registerInfix(token.PLUS, p.parseBinaryExpr)
	p.registerInfix(token.MINUS, p.parseBinaryExpr)
	p.registerInfix(token.STAR, p.parseBinaryExpr)
	p.registerInfix(token.SLASH, p.parseBinaryExpr)
	p.registerInfix(token.PERCENT, p.parseBinaryExpr)
	p.registerInfix(token.LT, p.parseBinaryExpr)
	p.registerInfix(token.LE, p.parseBinaryExpr)
	p.registerInfix(token.GT, p.parseBinaryExpr)
	p.registerInfix(token.GE, p.parseBinaryExpr)
	p.registerInfix(token.EQ, p.parseBinaryExpr)
	p.registerInfix(token.NOT_EQ, p.parseBinaryExpr)
	p.registerInfix(token.AND, p.parseBinaryExpr)
	p.registerInfix(token.OR, p.parseBinaryExpr)
	p.registerInfix(token.IS, p.parseBinaryExpr)
	p.registerInfix(token.IN, p.parseBinaryExpr)
	p.registerInfix(token.DOTDOT, p.parseRangeExpr)
	p.registerInfix(token.DOTDOTEQ, p.parseRangeExpr)
	p.registerInfix(token.QUESTION2, p.parseCoalesceExpr)
	p.registerInfix(token.QUESTION, p.parseTryExpr)
	p.registerInfix(token.AS, p.parseCastExpr)
	p.registerInfix(token.LPAREN, p.parseCallExpr)
	p.registerInfix(token.LBRACKET, p.parseIndexExpr)
	p.registerInfix(token.DOT, p.parseDotExpr)

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every recoverable diagnostic accumulated while parsing.
func (p *Parser) Errors() []diag.Diagnostic { return p.errors }

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.Next()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekTok.Kind == k }

// expectPeek advances so that peekTok becomes curTok if it matches k,
// otherwise reports an error and leaves the token window untouched.
func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekIs(k) {
		p.nextToken()
		return true
	}
	p.reportUnexpected(string(k), p.peekTok)
	return false
}

func (p *Parser) reportUnexpected(expected string, got token.Token) {
	p.report(diag.CodeParseUnexpectedToken, "expected "+expected+", found "+string(got.Kind), got.Span)
}

func (p *Parser) report(code diag.Code, msg string, span token.Span) {
	p.errors = append(p.errors, diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span:     diag.FromTokenSpan(span),
	})
}

func (p *Parser) registerPrefix(k token.Kind, fn prefixParseFn) { p.prefixFns[k] = fn }
func (p *Parser) registerInfix(k token.Kind, fn infixParseFn)   { p.infixFns[k] = fn }

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekTok.Kind]; ok {
		return pr
	}
	return precLowest
}

// skipNewlines consumes zero or more consecutive NEWLINE tokens, used
// between top-level declarations and around block delimiters where blank
// lines carry no meaning.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.nextToken()
	}
}

// ParseFile parses a full compilation unit. The returned diagnostics carry
// both the parser's own errors and any lexical errors recorded while
// scanning.
func ParseFile(filename, input string) (*ast.File, []diag.Diagnostic) {
	p := New(filename, input)
	file := p.parseFile()
	errs := p.errors
	for _, le := range p.lx.Errors {
		errs = append(errs, diag.Diagnostic{
			Stage:    diag.StageLexer,
			Severity: diag.SeverityError,
			Code:     lexErrorCode(le.Kind),
			Message:  le.Message,
			Span:     diag.FromTokenSpan(le.Span),
		})
	}
	return file, errs
}

func lexErrorCode(kind lexer.ErrorKind) diag.Code {
	switch kind {
	case lexer.ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case lexer.ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	default:
		return diag.CodeLexerIllegalRune
	}
}

func (p *Parser) parseFile() *ast.File {
	start := p.curTok.Span
	file := ast.NewFile(start)
	p.skipNewlines()

	if p.curIs(token.MODULE) {
		file.Module = p.parseModuleDecl()
		p.nextToken()
		p.skipNewlines()
	}

	for p.curIs(token.IMPORT) {
		file.Imports = append(file.Imports, p.parseImportDecl())
		p.nextToken()
		p.skipNewlines()
	}

	for !p.curIs(token.EOF) {
		prevKind, prevStart := p.curTok.Kind, p.curTok.Span.Start
		decl := p.parseDecl()
		if decl != nil {
			file.Decls = append(file.Decls, decl)
			p.nextToken() // past the decl's final token
		}
		p.skipNewlines()
		if p.curTok.Kind == prevKind && p.curTok.Span.Start == prevStart && !p.curIs(token.EOF) {
			// parseDecl made no progress; force advance to avoid looping forever.
			p.nextToken()
			p.skipNewlines()
		}
	}

	file.SetSpan(token.Merge(start, p.curTok.Span))
	return file
}

func (p *Parser) parseModuleDecl() *ast.ModuleDecl {
	start := p.curTok.Span
	p.nextToken() // consume 'module'
	name := p.parseIdent()
	for p.peekIs(token.DOUBLE_COLON) {
		p.nextToken() // '::'
		p.nextToken() // next segment
	}
	return ast.NewModuleDecl(name, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.curTok.Span
	p.nextToken() // consume 'import'

	var path []*ast.Ident
	path = append(path, p.parseIdent())
	for p.peekIs(token.DOUBLE_COLON) {
		p.nextToken() // '::'
		p.nextToken() // next ident
		path = append(path, p.parseIdent())
	}

	var alias *ast.Ident
	if p.peekIs(token.AS) {
		p.nextToken() // 'as'
		p.nextToken()
		alias = p.parseIdent()
	}

	return ast.NewImportDecl(path, alias, token.Merge(start, p.curTok.Span))
}

func (p *Parser) parseIdent() *ast.Ident {
	if !p.curIs(token.IDENT) {
		p.reportUnexpected("identifier", p.curTok)
		return ast.NewIdent("", p.curTok.Span)
	}
	return ast.NewIdent(p.curTok.Lexeme, p.curTok.Span)
}

func (p *Parser) parseIntLit() ast.Expr {
	tok := p.curTok
	var v int64
	if tok.IntVal != nil {
		v = *tok.IntVal
	} else if parsed, err := strconv.ParseInt(tok.Lexeme, 10, 64); err == nil {
		v = parsed
	}
	return ast.NewIntLit(v, tok.Suffix, tok.Span)
}

func (p *Parser) parseFloatLit() ast.Expr {
	tok := p.curTok
	var v float64
	if tok.FloatVal != nil {
		v = *tok.FloatVal
	}
	return ast.NewFloatLit(v, tok.Suffix, tok.Span)
}

func (p *Parser) parseStringLit() ast.Expr {
	return ast.NewStringLit(p.curTok.Value, p.curTok.Span)
}

func (p *Parser) parseInterpStringLit() ast.Expr {
	tok := p.curTok
	var parts []ast.StringPart
	for _, part := range tok.Parts {
		if part.IsExpr {
			sub := New(p.filename, part.ExprSrc)
			expr := sub.parseExpr(precLowest)
			p.errors = append(p.errors, sub.errors...)
			parts = append(parts, ast.StringPart{Expr: expr})
		} else {
			parts = append(parts, ast.StringPart{Literal: part.Literal})
		}
	}
	return ast.NewInterpStringExpr(parts, tok.Span)
}

func (p *Parser) parseCharLit() ast.Expr {
	r := rune(0)
	if len(p.curTok.Value) > 0 {
		r = []rune(p.curTok.Value)[0]
	}
	return ast.NewCharLit(r, p.curTok.Span)
}

func (p *Parser) parseBoolLit() ast.Expr {
	return ast.NewBoolLit(p.curIs(token.TRUE), p.curTok.Span)
}

func (p *Parser) parseSelfExpr() ast.Expr {
	return ast.NewSelfExpr(p.curTok.Span)
}

// parseUnsupportedConcurrency reports spawn/chan/select as unsupported
// rather than silently mis-evaluating them; the tokens remain in the
// lexical grammar for forward compatibility.
func (p *Parser) parseUnsupportedConcurrency() ast.Expr {
	p.report(diag.CodeParseUnsupported, "concurrency is not supported", p.curTok.Span)
	return ast.NewIdent("", p.curTok.Span)
}

// parseIdentOrPath parses a bare identifier, a `::`-qualified path (folded
// into one Ident whose Name carries the full "a::b::c" text — the checker
// splits on "::" when resolving against the symbol table), and a record
// literal when the path's final segment is capitalized and is immediately
// followed by '{'.
func (p *Parser) parseIdentOrPath() ast.Expr {
	start := p.curTok.Span
	name := p.curTok.Lexeme
	for p.peekIs(token.DOUBLE_COLON) {
		p.nextToken() // '::'
		p.nextToken()
		name += "::" + p.curTok.Lexeme
	}
	ident := ast.NewIdent(name, token.Merge(start, p.curTok.Span))

	last := name
	if idx := lastIndexOfColonColon(name); idx >= 0 {
		last = name[idx+2:]
	}
	isUpper := len(last) > 0 && last[0] >= 'A' && last[0] <= 'Z'

	if isUpper && p.peekIs(token.LBRACE) {
		p.nextToken() // consume '{'
		return p.parseRecordExprBody(ident)
	}

	return ident
}

func lastIndexOfColonColon(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] == ':' && s[i+1] == ':' {
			return i
		}
	}
	return -1
}

func (p *Parser) parseRecordExprBody(typeName *ast.Ident) ast.Expr {
	start := typeName.Span()
	p.nextToken() // move past '{'
	p.skipNewlines()

	var fields []ast.RecordField
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		fname := p.parseIdent()
		var value ast.Expr
		if p.peekIs(token.COLON) {
			p.nextToken() // ':'
			p.nextToken()
			value = p.parseExpr(precLowest)
		} else {
			value = fname
		}
		fields = append(fields, ast.RecordField{Name: fname, Value: value})
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
	return ast.NewRecordExpr(typeName, fields, token.Merge(start, p.curTok.Span))
}
