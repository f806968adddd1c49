package parser_test

import (
	"testing"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/parser"
)

func parseSrc(t *testing.T, src string) (*ast.File, []diag.Diagnostic) {
	t.Helper()
	file, errs := parser.ParseFile("test.lc", src)
	return file, errs
}

func assertNoErrors(t *testing.T, errs []diag.Diagnostic) {
	t.Helper()
	if len(errs) == 0 {
		return
	}
	for _, e := range errs {
		t.Errorf("unexpected parse error: %s", e.Message)
	}
	t.Fatalf("parser reported %d error(s)", len(errs))
}

func singleFn(t *testing.T, file *ast.File) *ast.FnDecl {
	t.Helper()
	if len(file.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(file.Decls))
	}
	fn, ok := file.Decls[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected *ast.FnDecl, got %T", file.Decls[0])
	}
	return fn
}

func TestParseModuleAndImport(t *testing.T) {
	const src = `
module app::core

import std::io as io

fn main() {}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	if file.Module == nil || file.Module.Name.Name != "app" {
		t.Fatalf("expected module name 'app', got %#v", file.Module)
	}

	if len(file.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(file.Imports))
	}
	imp := file.Imports[0]
	if len(imp.Path) != 2 || imp.Path[0].Name != "std" || imp.Path[1].Name != "io" {
		t.Fatalf("expected path std::io, got %#v", imp.Path)
	}
	if imp.Alias == nil || imp.Alias.Name != "io" {
		t.Fatalf("expected alias 'io', got %#v", imp.Alias)
	}
}

func TestParseEmptyFnDecl(t *testing.T) {
	const src = `fn main() {}`

	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	if fn.Name == nil || fn.Name.Name != "main" {
		t.Fatalf("expected fn name 'main', got %#v", fn.Name)
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 0 || fn.Body.Tail != nil {
		t.Fatalf("expected empty body, got %#v", fn.Body)
	}
}

func TestParseLetStmt(t *testing.T) {
	const src = `
fn main() {
	let x: i32 = 1
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body.Stmts))
	}

	letStmt, ok := fn.Body.Stmts[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", fn.Body.Stmts[0])
	}

	ident, ok := letStmt.Pattern.(*ast.PatternIdent)
	if !ok || ident.Name.Name != "x" {
		t.Fatalf("expected binding pattern 'x', got %#v", letStmt.Pattern)
	}

	named, ok := letStmt.Type.(*ast.PrimitiveTypeExpr)
	if !ok || named.Name != "i32" {
		t.Fatalf("expected type 'i32', got %#v (type %T)", letStmt.Type, letStmt.Type)
	}

	intLit, ok := letStmt.Value.(*ast.IntLit)
	if !ok || intLit.Value != 1 {
		t.Fatalf("expected int literal 1, got %#v", letStmt.Value)
	}
}

func TestParseBlockTailExpression(t *testing.T) {
	const src = `
fn add(x: i32, y: i32) -> i32 {
	x + y
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	if len(fn.Body.Stmts) != 0 {
		t.Fatalf("expected 0 statements, got %d", len(fn.Body.Stmts))
	}
	if fn.Body.Tail == nil {
		t.Fatalf("expected tail expression")
	}
	bin, ok := fn.Body.Tail.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected '+' tail expression, got %#v", fn.Body.Tail)
	}
}

func TestParseStatementThenTailExpression(t *testing.T) {
	const src = `
fn main() -> i32 {
	let x = 1
	x
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body.Stmts))
	}
	if fn.Body.Tail == nil {
		t.Fatalf("expected tail expression")
	}
	ident, ok := fn.Body.Tail.(*ast.Ident)
	if !ok || ident.Name != "x" {
		t.Fatalf("expected tail identifier 'x', got %#v", fn.Body.Tail)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	const src = `
fn main() {
	let x = 1 + 2 * 3
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	sum, ok := letStmt.Value.(*ast.BinaryExpr)
	if !ok || sum.Op != ast.OpAdd {
		t.Fatalf("expected top-level '+', got %#v", letStmt.Value)
	}

	product, ok := sum.Right.(*ast.BinaryExpr)
	if !ok || product.Op != ast.OpMul {
		t.Fatalf("expected right operand '*', got %#v", sum.Right)
	}
}

func TestParseUnaryAndGrouping(t *testing.T) {
	const src = `
fn main() {
	let x = -(1 + 2)
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	unary, ok := letStmt.Value.(*ast.UnaryExpr)
	if !ok || unary.Op != ast.OpNeg {
		t.Fatalf("expected unary negation, got %#v", letStmt.Value)
	}

	group, ok := unary.Operand.(*ast.GroupExpr)
	if !ok {
		t.Fatalf("expected grouped inner expression, got %T", unary.Operand)
	}

	inner, ok := group.Inner.(*ast.BinaryExpr)
	if !ok || inner.Op != ast.OpAdd {
		t.Fatalf("expected '+' inside group, got %#v", group.Inner)
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	const src = `
fn main() {
	var x = 1
	x += 2
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body.Stmts))
	}

	assign, ok := fn.Body.Stmts[1].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", fn.Body.Stmts[1])
	}
	if assign.Op != ast.AssignAdd {
		t.Fatalf("expected AssignAdd, got %v", assign.Op)
	}
}

func TestParseCallAndFieldChain(t *testing.T) {
	const src = `
fn main() {
	let v = service.clients[0].handler().name
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	field, ok := letStmt.Value.(*ast.FieldExpr)
	if !ok || field.Field.Name != "name" {
		t.Fatalf("expected trailing field 'name', got %#v", letStmt.Value)
	}

	call, ok := field.Receiver.(*ast.MethodCallExpr)
	if !ok || call.Method.Name != "handler" {
		t.Fatalf("expected method call 'handler', got %#v", field.Receiver)
	}

	idx, ok := call.Receiver.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected index expression, got %T", call.Receiver)
	}

	fieldExpr, ok := idx.Receiver.(*ast.FieldExpr)
	if !ok || fieldExpr.Field.Name != "clients" {
		t.Fatalf("expected field 'clients', got %#v", idx.Receiver)
	}
}

func TestParseQualifiedPathFoldedIntoIdent(t *testing.T) {
	const src = `
fn main() {
	let x = a::b::c
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	ident, ok := letStmt.Value.(*ast.Ident)
	if !ok || ident.Name != "a::b::c" {
		t.Fatalf("expected folded path 'a::b::c', got %#v", letStmt.Value)
	}
}

func TestParseRecordExprRequiresCapitalizedName(t *testing.T) {
	const src = `
fn main() {
	let p = Point { x: 1, y: 2 }
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	rec, ok := letStmt.Value.(*ast.RecordExpr)
	if !ok || rec.TypeName.Name != "Point" {
		t.Fatalf("expected record expr 'Point', got %#v", letStmt.Value)
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(rec.Fields))
	}
	if rec.Fields[0].Name.Name != "x" {
		t.Fatalf("expected first field 'x', got %#v", rec.Fields[0].Name)
	}
}

func TestParseLowercaseIdentBeforeBraceIsNotRecord(t *testing.T) {
	const src = `
fn main() {
	if cond {
		let x = 1
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	ifExpr, ok := fn.Body.Tail.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected if expression as tail, got %#v", fn.Body.Tail)
	}

	cond, ok := ifExpr.Cond.(*ast.Ident)
	if !ok || cond.Name != "cond" {
		t.Fatalf("expected bare identifier condition 'cond', got %#v", ifExpr.Cond)
	}
	if len(ifExpr.Then.Stmts) != 1 {
		t.Fatalf("expected 1 statement in then-block, got %d", len(ifExpr.Then.Stmts))
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	const src = `
fn main() -> i32 {
	if a {
		1
	} else if b {
		2
	} else {
		3
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	outer, ok := fn.Body.Tail.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected outer if expression, got %#v", fn.Body.Tail)
	}

	elseIf, ok := outer.Else.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected else-if chain, got %T", outer.Else)
	}

	if elseIf.Else == nil {
		t.Fatalf("expected final else block")
	}
}

func TestParseMatchExprWithGuardAndAlternation(t *testing.T) {
	const src = `
fn classify(n: i32) -> string {
	match n {
		0 => "zero",
		1 | 2 | 3 => "small",
		x if x < 0 => "negative",
		_ => "large",
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	matchExpr, ok := fn.Body.Tail.(*ast.MatchExpr)
	if !ok {
		t.Fatalf("expected match expression, got %#v", fn.Body.Tail)
	}

	if len(matchExpr.Arms) != 4 {
		t.Fatalf("expected 4 arms, got %d", len(matchExpr.Arms))
	}

	orPat, ok := matchExpr.Arms[1].Pattern.(*ast.PatternOr)
	if !ok || len(orPat.Alternatives) != 3 {
		t.Fatalf("expected 3-way alternation, got %#v", matchExpr.Arms[1].Pattern)
	}

	guarded, ok := matchExpr.Arms[2].Pattern.(*ast.PatternGuarded)
	if !ok {
		t.Fatalf("expected guarded pattern, got %#v", matchExpr.Arms[2].Pattern)
	}
	if _, ok := guarded.Guard.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected binary guard expression, got %T", guarded.Guard)
	}

	if _, ok := matchExpr.Arms[3].Pattern.(*ast.PatternWild); !ok {
		t.Fatalf("expected wildcard final arm, got %#v", matchExpr.Arms[3].Pattern)
	}
}

func TestParseMatchExprWithConstructorPattern(t *testing.T) {
	const src = `
fn describe(opt: Option[i32]) -> string {
	match opt {
		Some(x) => "has value",
		None => "empty",
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	matchExpr, ok := fn.Body.Tail.(*ast.MatchExpr)
	if !ok {
		t.Fatalf("expected match expression, got %#v", fn.Body.Tail)
	}

	ctor, ok := matchExpr.Arms[0].Pattern.(*ast.PatternConstructor)
	if !ok || len(ctor.Path) != 1 || ctor.Path[0].Name != "Some" {
		t.Fatalf("expected constructor pattern 'Some', got %#v", matchExpr.Arms[0].Pattern)
	}
	if len(ctor.Args) != 1 {
		t.Fatalf("expected 1 constructor arg, got %d", len(ctor.Args))
	}

	none, ok := matchExpr.Arms[1].Pattern.(*ast.PatternConstructor)
	if !ok || none.Path[0].Name != "None" {
		t.Fatalf("expected unit constructor 'None', got %#v", matchExpr.Arms[1].Pattern)
	}
}

func TestParseForWhileLoop(t *testing.T) {
	const src = `
fn main() {
	for x in items {
		print(x)
	}
	while running {
		tick()
	}
	loop {
		break
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	if len(fn.Body.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(fn.Body.Stmts))
	}

	forStmt, ok := fn.Body.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", fn.Body.Stmts[0])
	}
	pat, ok := forStmt.Pattern.(*ast.PatternIdent)
	if !ok || pat.Name.Name != "x" {
		t.Fatalf("expected for-pattern 'x', got %#v", forStmt.Pattern)
	}

	if _, ok := fn.Body.Stmts[1].(*ast.WhileStmt); !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", fn.Body.Stmts[1])
	}

	loopStmt, ok := fn.Body.Stmts[2].(*ast.LoopStmt)
	if !ok {
		t.Fatalf("expected *ast.LoopStmt, got %T", fn.Body.Stmts[2])
	}
	if len(loopStmt.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement in loop body, got %d", len(loopStmt.Body.Stmts))
	}
	if _, ok := loopStmt.Body.Stmts[0].(*ast.BreakStmt); !ok {
		t.Fatalf("expected break statement, got %T", loopStmt.Body.Stmts[0])
	}
}

func TestParseClosureExpr(t *testing.T) {
	const src = `
fn main() {
	let add = fn(a: i32, b: i32) -> i32 { a + b }
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	closure, ok := letStmt.Value.(*ast.ClosureExpr)
	if !ok {
		t.Fatalf("expected closure expression, got %T", letStmt.Value)
	}
	if len(closure.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(closure.Params))
	}
	if closure.IsEffect {
		t.Fatalf("expected non-effect closure")
	}
}

func TestParseEffectClosureExpr(t *testing.T) {
	const src = `
fn main() {
	let handler = effect fn() {
		log("hi")
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	closure, ok := letStmt.Value.(*ast.ClosureExpr)
	if !ok || !closure.IsEffect {
		t.Fatalf("expected effect closure, got %#v", letStmt.Value)
	}
}

func TestParseRangeExprs(t *testing.T) {
	const src = `
fn main() {
	let a = 0..10
	let b = 0..=10
	let c = ..10
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)

	rangeA := fn.Body.Stmts[0].(*ast.LetStmt).Value.(*ast.RangeExpr)
	if rangeA.Inclusive {
		t.Fatalf("expected exclusive range")
	}
	if rangeA.Start == nil || rangeA.End == nil {
		t.Fatalf("expected both bounds populated")
	}

	rangeB := fn.Body.Stmts[1].(*ast.LetStmt).Value.(*ast.RangeExpr)
	if !rangeB.Inclusive {
		t.Fatalf("expected inclusive range")
	}

	rangeC := fn.Body.Stmts[2].(*ast.LetStmt).Value.(*ast.RangeExpr)
	if rangeC.Start != nil {
		t.Fatalf("expected open-start range, got %#v", rangeC.Start)
	}
}

func TestParseTryAndCoalesceExprs(t *testing.T) {
	const src = `
fn main() {
	let a = load()?
	let b = find() ?? default()
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)

	tryExpr, ok := fn.Body.Stmts[0].(*ast.LetStmt).Value.(*ast.TryExpr)
	if !ok {
		t.Fatalf("expected try expression, got %T", fn.Body.Stmts[0].(*ast.LetStmt).Value)
	}
	if _, ok := tryExpr.Value.(*ast.CallExpr); !ok {
		t.Fatalf("expected call expression inside try, got %T", tryExpr.Value)
	}

	coalesce, ok := fn.Body.Stmts[1].(*ast.LetStmt).Value.(*ast.CoalesceExpr)
	if !ok {
		t.Fatalf("expected coalesce expression, got %T", fn.Body.Stmts[1].(*ast.LetStmt).Value)
	}
	if _, ok := coalesce.Default.(*ast.CallExpr); !ok {
		t.Fatalf("expected call expression default, got %T", coalesce.Default)
	}
}

func TestParseTypeCastExpr(t *testing.T) {
	const src = `
fn main() {
	let a = x as i64
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	cast, ok := fn.Body.Stmts[0].(*ast.LetStmt).Value.(*ast.TypeCastExpr)
	if !ok {
		t.Fatalf("expected type cast expression, got %T", fn.Body.Stmts[0].(*ast.LetStmt).Value)
	}
	prim, ok := cast.Type.(*ast.PrimitiveTypeExpr)
	if !ok || prim.Name != "i64" {
		t.Fatalf("expected cast target 'i64', got %#v", cast.Type)
	}
}

func TestParseGenericFnDeclAndTraitBounds(t *testing.T) {
	const src = `
fn max[T: Comparable](a: T, b: T) -> T {
	a
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	if len(fn.TypeParams) != 1 {
		t.Fatalf("expected 1 type param, got %d", len(fn.TypeParams))
	}
	tp := fn.TypeParams[0]
	if tp.Name.Name != "T" {
		t.Fatalf("expected type param 'T', got %#v", tp.Name)
	}
	if len(tp.Constraints) != 1 || tp.Constraints[0].Name != "Comparable" {
		t.Fatalf("expected constraint 'Comparable', got %#v", tp.Constraints)
	}
}

func TestParseStructDecl(t *testing.T) {
	const src = `
struct Point[T] {
	x: T,
	y: T,
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	decl, ok := file.Decls[0].(*ast.ProductTypeDecl)
	if !ok {
		t.Fatalf("expected *ast.ProductTypeDecl, got %T", file.Decls[0])
	}
	if decl.Name.Name != "Point" {
		t.Fatalf("expected struct name 'Point', got %#v", decl.Name)
	}
	if len(decl.TypeParams) != 1 || decl.TypeParams[0].Name.Name != "T" {
		t.Fatalf("expected 1 type param 'T', got %#v", decl.TypeParams)
	}
	if len(decl.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(decl.Fields))
	}
}

func TestParseEnumDeclWithPositionalAndNamedVariants(t *testing.T) {
	const src = `
enum Shape {
	Circle { radius: f64 },
	Rect(f64, f64),
	Point,
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	decl, ok := file.Decls[0].(*ast.SumTypeDecl)
	if !ok {
		t.Fatalf("expected *ast.SumTypeDecl, got %T", file.Decls[0])
	}
	if len(decl.Variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(decl.Variants))
	}

	circle := decl.Variants[0]
	if circle.Name.Name != "Circle" || len(circle.Fields) != 1 || circle.Fields[0].Name.Name != "radius" {
		t.Fatalf("unexpected Circle variant: %#v", circle)
	}

	rect := decl.Variants[1]
	if rect.Name.Name != "Rect" || len(rect.Fields) != 2 {
		t.Fatalf("unexpected Rect variant: %#v", rect)
	}
	if rect.Fields[0].Name.Name != "0" || rect.Fields[1].Name.Name != "1" {
		t.Fatalf("expected synthesized positional field names, got %#v", rect.Fields)
	}

	point := decl.Variants[2]
	if point.Name.Name != "Point" || len(point.Fields) != 0 {
		t.Fatalf("unexpected Point variant: %#v", point)
	}
}

func TestParseTraitAndImplDecl(t *testing.T) {
	const src = `
trait Printable {
	fn print(self) -> string
	fn tag(self) -> string {
		"default"
	}
}

impl Printable for Point {
	fn print(self) -> string {
		"point"
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	if len(file.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(file.Decls))
	}

	traitDecl, ok := file.Decls[0].(*ast.TraitDecl)
	if !ok {
		t.Fatalf("expected *ast.TraitDecl, got %T", file.Decls[0])
	}
	if len(traitDecl.Methods) != 2 {
		t.Fatalf("expected 2 trait methods, got %d", len(traitDecl.Methods))
	}
	if traitDecl.Methods[0].Default != nil {
		t.Fatalf("expected required method to have no default body")
	}
	if traitDecl.Methods[1].Default == nil {
		t.Fatalf("expected defaulted method to have a body")
	}

	implDecl, ok := file.Decls[1].(*ast.ImplDecl)
	if !ok {
		t.Fatalf("expected *ast.ImplDecl, got %T", file.Decls[1])
	}
	if implDecl.Trait == nil || implDecl.Trait.Name != "Printable" {
		t.Fatalf("expected trait 'Printable', got %#v", implDecl.Trait)
	}
	named, ok := implDecl.Type.(*ast.NamedTypeExpr)
	if !ok || named.Path[0].Name != "Point" {
		t.Fatalf("expected impl target 'Point', got %#v", implDecl.Type)
	}
	if len(implDecl.Methods) != 1 {
		t.Fatalf("expected 1 impl method, got %d", len(implDecl.Methods))
	}
}

func TestParseInherentImplDecl(t *testing.T) {
	const src = `
impl Point {
	fn origin() -> Point {
		Point { x: 0, y: 0 }
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	implDecl, ok := file.Decls[0].(*ast.ImplDecl)
	if !ok {
		t.Fatalf("expected *ast.ImplDecl, got %T", file.Decls[0])
	}
	if implDecl.Trait != nil {
		t.Fatalf("expected no trait for inherent impl, got %#v", implDecl.Trait)
	}
}

func TestParseConstAndTopLevelLetDecl(t *testing.T) {
	const src = `
const MAX: i32 = 10
let counter = 0
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	if len(file.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(file.Decls))
	}

	constDecl, ok := file.Decls[0].(*ast.ConstDecl)
	if !ok || constDecl.Name.Name != "MAX" {
		t.Fatalf("expected const 'MAX', got %#v", file.Decls[0])
	}

	letDecl, ok := file.Decls[1].(*ast.LetDecl)
	if !ok {
		t.Fatalf("expected *ast.LetDecl, got %T", file.Decls[1])
	}
	pat, ok := letDecl.Pattern.(*ast.PatternIdent)
	if !ok || pat.Name.Name != "counter" {
		t.Fatalf("expected binding 'counter', got %#v", letDecl.Pattern)
	}
}

func TestParseTypeAliasDecl(t *testing.T) {
	const src = `type MyResult[T] = Result[T, string]`

	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	alias, ok := file.Decls[0].(*ast.AliasTypeDecl)
	if !ok {
		t.Fatalf("expected *ast.AliasTypeDecl, got %T", file.Decls[0])
	}
	if alias.Name.Name != "MyResult" {
		t.Fatalf("expected alias name 'MyResult', got %#v", alias.Name)
	}
	result, ok := alias.Underlying.(*ast.ResultTypeExpr)
	if !ok {
		t.Fatalf("expected Result underlying type, got %T", alias.Underlying)
	}
	if _, ok := result.Ok.(*ast.TypeVarExpr); ok {
		t.Fatalf("did not expect bare type var for Ok, got %#v", result.Ok)
	}
}

func TestParseFunctionTypeAnnotation(t *testing.T) {
	const src = `
fn main() {
	let handler: fn(i32, bool) -> Result[i32, string] = foo
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	fnType, ok := letStmt.Type.(*ast.FnTypeExpr)
	if !ok {
		t.Fatalf("expected *ast.FnTypeExpr, got %T", letStmt.Type)
	}
	if len(fnType.Params) != 2 {
		t.Fatalf("expected 2 param types, got %d", len(fnType.Params))
	}
	if _, ok := fnType.Return.(*ast.ResultTypeExpr); !ok {
		t.Fatalf("expected Result return type, got %T", fnType.Return)
	}
}

func TestParseArrayTypeAnnotationFixedAndDynamic(t *testing.T) {
	const src = `
fn main() {
	let fixed: [i32: 3] = [1, 2, 3]
	let dynamic: [i32] = [1, 2, 3]
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)

	fixedType := fn.Body.Stmts[0].(*ast.LetStmt).Type.(*ast.ArrayTypeExpr)
	if fixedType.Len == nil || *fixedType.Len != 3 {
		t.Fatalf("expected fixed length 3, got %#v", fixedType.Len)
	}

	dynamicType := fn.Body.Stmts[1].(*ast.LetStmt).Type.(*ast.ArrayTypeExpr)
	if dynamicType.Len != nil {
		t.Fatalf("expected no fixed length, got %#v", dynamicType.Len)
	}
}

func TestParseTestDecl(t *testing.T) {
	const src = `
test "addition works" {
	let result = 1 + 1
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	testDecl, ok := file.Decls[0].(*ast.TestDecl)
	if !ok {
		t.Fatalf("expected *ast.TestDecl, got %T", file.Decls[0])
	}
	if testDecl.Name.Value != "addition works" {
		t.Fatalf("expected test name 'addition works', got %q", testDecl.Name.Value)
	}
}

func TestParseTuplePatternDestructuring(t *testing.T) {
	const src = `
fn main() {
	let (a, b) = pair
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	tuple, ok := letStmt.Pattern.(*ast.PatternTuple)
	if !ok || len(tuple.Elems) != 2 {
		t.Fatalf("expected 2-tuple pattern, got %#v", letStmt.Pattern)
	}
}

func TestParseSingleParenPatternIsNotOneTuple(t *testing.T) {
	const src = `
fn main() {
	let (a) = wrapped
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	if _, ok := letStmt.Pattern.(*ast.PatternTuple); ok {
		t.Fatalf("expected plain binding pattern, got tuple %#v", letStmt.Pattern)
	}
	ident, ok := letStmt.Pattern.(*ast.PatternIdent)
	if !ok || ident.Name.Name != "a" {
		t.Fatalf("expected binding pattern 'a', got %#v", letStmt.Pattern)
	}
}

func TestParseRecordPatternWithRestAndPunning(t *testing.T) {
	const src = `
fn main() {
	match p {
		Point { x, y: 0, .. } => x,
		_ => 0,
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	matchExpr := fn.Body.Tail.(*ast.MatchExpr)

	rec, ok := matchExpr.Arms[0].Pattern.(*ast.PatternRecord)
	if !ok {
		t.Fatalf("expected *ast.PatternRecord, got %T", matchExpr.Arms[0].Pattern)
	}
	if !rec.HasRest {
		t.Fatalf("expected HasRest true")
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("expected 2 explicit fields, got %d", len(rec.Fields))
	}
	if rec.Fields[0].Name.Name != "x" {
		t.Fatalf("expected first field 'x', got %#v", rec.Fields[0].Name)
	}
	punned, ok := rec.Fields[0].Pattern.(*ast.PatternIdent)
	if !ok || punned.Name.Name != "x" {
		t.Fatalf("expected punned binding 'x', got %#v", rec.Fields[0].Pattern)
	}
}

func TestParseIntRangePattern(t *testing.T) {
	const src = `
fn main() {
	match n {
		0..10 => "low",
		10..=20 => "high",
		_ => "other",
	}
}
`
	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	matchExpr := fn.Body.Tail.(*ast.MatchExpr)

	rangeA, ok := matchExpr.Arms[0].Pattern.(*ast.PatternRange)
	if !ok || rangeA.Inclusive {
		t.Fatalf("expected exclusive int range, got %#v", matchExpr.Arms[0].Pattern)
	}

	rangeB, ok := matchExpr.Arms[1].Pattern.(*ast.PatternRange)
	if !ok || !rangeB.Inclusive {
		t.Fatalf("expected inclusive int range, got %#v", matchExpr.Arms[1].Pattern)
	}
}

func TestParseConcurrencyKeywordsReportUnsupported(t *testing.T) {
	cases := []string{
		"fn main() { let x = spawn }",
		"fn main() { let x = chan }",
		"fn main() { let x = select }",
	}
	for _, src := range cases {
		_, errs := parseSrc(t, src)
		if len(errs) == 0 {
			t.Fatalf("expected diagnostic for %q", src)
		}
		if errs[0].Code != diag.CodeParseUnsupported {
			t.Fatalf("expected code %q, got %q", diag.CodeParseUnsupported, errs[0].Code)
		}
	}
}

func TestParseInterpolatedStringExpr(t *testing.T) {
	src := "fn main() {\n\tlet greeting = \"hello ${name}!\"\n}\n"

	file, errs := parseSrc(t, src)
	assertNoErrors(t, errs)

	fn := singleFn(t, file)
	letStmt := fn.Body.Stmts[0].(*ast.LetStmt)

	interp, ok := letStmt.Value.(*ast.InterpStringExpr)
	if !ok {
		t.Fatalf("expected interpolated string expression, got %T", letStmt.Value)
	}
	if len(interp.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d: %#v", len(interp.Parts), interp.Parts)
	}
	if interp.Parts[0].Literal != "hello " {
		t.Fatalf("expected leading literal 'hello ', got %q", interp.Parts[0].Literal)
	}
	if interp.Parts[1].Expr == nil {
		t.Fatalf("expected embedded expression part")
	}
	nameIdent, ok := interp.Parts[1].Expr.(*ast.Ident)
	if !ok || nameIdent.Name != "name" {
		t.Fatalf("expected embedded identifier 'name', got %#v", interp.Parts[1].Expr)
	}
	if interp.Parts[2].Literal != "!" {
		t.Fatalf("expected trailing literal '!', got %q", interp.Parts[2].Literal)
	}
}

func TestParseReportsUnexpectedToken(t *testing.T) {
	const src = `fn main( {}`

	_, errs := parseSrc(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected parse errors")
	}
	if errs[0].Code != diag.CodeParseUnexpectedToken {
		t.Fatalf("expected code %q, got %q", diag.CodeParseUnexpectedToken, errs[0].Code)
	}
}

func TestParseFileRecoversAfterMalformedDecl(t *testing.T) {
	const src = `
123

fn ok() {}
`
	file, errs := parseSrc(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected parse errors for malformed leading token")
	}
	if file == nil {
		t.Fatalf("expected file to be returned despite errors")
	}

	fn := singleFn(t, file)
	if fn.Name.Name != "ok" {
		t.Fatalf("expected recovered function 'ok', got %#v", fn.Name)
	}
}
