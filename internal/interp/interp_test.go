package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/check"
	"github.com/lucent-lang/lucent/internal/interp"
	"github.com/lucent-lang/lucent/internal/parser"
	"github.com/lucent-lang/lucent/internal/token"
	"github.com/lucent-lang/lucent/internal/value"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, errs := parser.ParseFile("test.lc", src)
	for _, e := range errs {
		t.Errorf("unexpected parse error: %s", e.Message)
	}
	require.Empty(t, errs)
	return file
}

func loadSrc(t *testing.T, src string) *interp.Interpreter {
	t.Helper()
	in := interp.New(interp.Options{})
	require.Nil(t, in.Load(mustParse(t, src)))
	return in
}

func evalName(t *testing.T, in *interp.Interpreter, name string) value.Value {
	t.Helper()
	v, err := in.Eval(ast.NewIdent(name, token.Span{}))
	require.NoError(t, err)
	return v
}

func callFn(t *testing.T, in *interp.Interpreter, name string, args ...value.Value) value.Value {
	t.Helper()
	out, err := in.Call(evalName(t, in, name), args)
	require.NoError(t, err)
	return out
}

// runMain checks and runs a complete program, returning captured stdout.
func runMain(t *testing.T, src string) string {
	t.Helper()
	file := mustParse(t, src)
	batch := check.NewChecker("test.lc").Check(file)
	for _, d := range batch.Errors() {
		t.Errorf("unexpected check error: %s", d.Message)
	}
	require.False(t, batch.HasErrors())

	var buf bytes.Buffer
	in := interp.New(interp.Options{Stdout: &buf})
	_, err := in.Run(file)
	require.NoError(t, err)
	return buf.String()
}

func TestEvalTopLevelLets(t *testing.T) {
	in := loadSrc(t, "let x: i32 = 42\nlet y: i32 = x + 1")
	v := evalName(t, in, "y")
	require.IsType(t, &value.Int{}, v)
	assert.Equal(t, int64(43), v.(*value.Int).Value)
}

func TestEvalFunctionCall(t *testing.T) {
	in := loadSrc(t, `
fn add(x: i32, y: i32) -> i32 {
	return x + y
}
`)
	v := callFn(t, in, "add", &value.Int{Value: 2}, &value.Int{Value: 3})
	assert.Equal(t, int64(5), v.(*value.Int).Value)
}

func TestEvalListMap(t *testing.T) {
	in := loadSrc(t, `
fn squares() {
	list.map([1, 2, 3], fn(n: i32) -> i32 { return n * n })
}
`)
	v := callFn(t, in, "squares")
	list, ok := v.(*value.List)
	require.True(t, ok, "expected a cons-list, got %s", v.Kind())
	assert.Equal(t, "[1, 4, 9]", list.Inspect())
}

func TestEvalOptionUnwrapOr(t *testing.T) {
	in := loadSrc(t, `
fn defaulted() {
	option.unwrap_or(None, 7)
}
`)
	v := callFn(t, in, "defaulted")
	assert.Equal(t, int64(7), v.(*value.Int).Value)
}

func TestEvalMatchWithGuards(t *testing.T) {
	in := loadSrc(t, `
fn classify(n: i32) -> string {
	match n {
		0 => "zero",
		x if x < 0 => "negative",
		1..=9 => "small",
		_ => "large"
	}
}
`)
	cases := map[int64]string{0: "zero", -5: "negative", 4: "small", 100: "large"}
	for input, want := range cases {
		v := callFn(t, in, "classify", &value.Int{Value: input})
		assert.Equal(t, want, v.(*value.String).Value, "classify(%d)", input)
	}
}

func TestEvalMatchConstructors(t *testing.T) {
	in := loadSrc(t, `
fn describe(o: Option[i32]) -> string {
	match o {
		Some(n) => "has ${n}",
		None => "empty"
	}
}
`)
	v := callFn(t, in, "describe", value.Some(&value.Int{Value: 3}))
	assert.Equal(t, "has 3", v.(*value.String).Value)
	v = callFn(t, in, "describe", value.None)
	assert.Equal(t, "empty", v.(*value.String).Value)
}

func TestRunPrintsToStdout(t *testing.T) {
	out := runMain(t, `
effect fn main() {
	io.println("hello")
	io.print("a", "b")
}
`)
	assert.Equal(t, "hello\na b", out)
}

func TestRunTryPropagation(t *testing.T) {
	runMain(t, `
effect fn safe_div(a: i32, b: i32) -> Result[i32, string] {
	if b == 0 {
		return Err("division by zero")
	}
	return Ok(a / b)
}

effect fn chain(a: i32, b: i32) -> Result[i32, string] {
	let v: i32 = safe_div(a, b)?
	return Ok(v + 1)
}

effect fn main() {
	assert_eq(chain(10, 2), Ok(6))
	assert_eq(chain(1, 0), Err("division by zero"))
}
`)
}

func TestRunLoopsAndMutation(t *testing.T) {
	runMain(t, `
effect fn main() {
	var total: i32 = 0
	for x in [1, 2, 3, 4] {
		total += x
	}
	assert_eq(total, 10)

	var countdown: i32 = 3
	while countdown > 0 {
		countdown -= 1
	}
	assert_eq(countdown, 0)

	var spins: i32 = 0
	loop {
		spins += 1
		if spins == 5 {
			break
		}
	}
	assert_eq(spins, 5)

	var ranged: i32 = 0
	for i in 0..4 {
		ranged += i
	}
	assert_eq(ranged, 6)
}
`)
}

func TestRunRecordsAndMethods(t *testing.T) {
	runMain(t, `
struct Point {
	x: i32
	y: i32
}

trait Described {
	fn describe(self) -> string {
		return "shape"
	}
}

impl Described for Point {
}

impl Point {
	fn sum(self) -> i32 {
		return self.x + self.y
	}
}

effect fn main() {
	let p: Point = Point { x: 1, y: 2 }
	assert_eq(p.x, 1)
	assert_eq(p.sum(), 3)
	assert_eq(p.describe(), "shape")
}
`)
}

func TestRunEnumVariants(t *testing.T) {
	runMain(t, `
enum Shape {
	Empty
	Circle(f64)
}

fn area(s: Shape) -> f64 {
	match s {
		Shape::Empty => 0.0,
		Shape::Circle(r) => r * r * 3.0
	}
}

effect fn main() {
	let c: Shape = Shape::Circle(2.0)
	assert(c is Circle)
	assert_eq(area(c), 12.0)
	assert_eq(area(Shape::Empty), 0.0)
}
`)
}

func TestRunCoalesceAndStrings(t *testing.T) {
	runMain(t, `
effect fn main() {
	let missing: Option[i32] = None
	assert_eq(missing ?? 7, 7)
	assert_eq(Some(3) ?? 7, 3)

	let total: string = "total: ${1 + 2}"
	assert_eq(total, "total: 3")

	assert_eq(string.concat("ab", "cd"), "abcd")
	assert_eq(string.upper("abc"), "ABC")
	assert_eq(string.len("abc"), 3)
}
`)
}

func TestRunClosuresCapture(t *testing.T) {
	runMain(t, `
fn make_adder(n: i32) -> fn(i32) -> i32 {
	return fn(x: i32) -> i32 { return x + n }
}

effect fn main() {
	let add2: fn(i32) -> i32 = make_adder(2)
	assert_eq(add2(40), 42)
}
`)
}

func TestRunAssertionFailure(t *testing.T) {
	file := mustParse(t, `
effect fn main() {
	assert(false, "boom")
}
`)
	in := interp.New(interp.Options{})
	_, err := in.Run(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunDivisionByZero(t *testing.T) {
	file := mustParse(t, `
effect fn main() {
	let x: i32 = 1 / 0
}
`)
	in := interp.New(interp.Options{})
	_, err := in.Run(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestEffectGateAtRuntime(t *testing.T) {
	// Defense-in-depth: calling an effect function through the embedding
	// API's pure context is rejected even though the checker never saw the
	// call site.
	in := loadSrc(t, `
effect fn noisy() {
	io.println("x")
}
`)
	_, err := in.Call(evalName(t, in, "noisy"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pure context")
}

func TestRunTests(t *testing.T) {
	file := mustParse(t, `
fn double(n: i32) -> i32 {
	return n * 2
}

test "doubling" {
	assert_eq(double(21), 42)
}

test "failing" {
	assert_eq(double(1), 3)
}
`)
	in := interp.New(interp.Options{})
	results, err := in.RunTests(file)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "doubling", results[0].Name)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "failing", results[1].Name)
	assert.Error(t, results[1].Err)
}

func TestRunIndexingAndTuples(t *testing.T) {
	runMain(t, `
effect fn main() {
	let xs: [i32] = [10, 20, 30]
	assert_eq(xs[1], 20)

	let pair: (i32, string) = (1, "one")
	assert_eq(pair.0, 1)
	assert_eq(pair.1, "one")

	let s: string = "hi"
	assert_eq(s[0], 'h')
	assert(2 in [1, 2, 3])
}
`)
}

func TestRunCasts(t *testing.T) {
	runMain(t, `
effect fn main() {
	assert_eq('a' as i32, 97)
	assert_eq(97 as char, 'a')
	assert_eq(3 as f64, 3.0)
	assert_eq(3.9 as i32, 3)
}
`)
}

func TestMatchFirstArmWins(t *testing.T) {
	// Match arms are tried in declaration order; an earlier wildcard wins.
	in := loadSrc(t, `
fn first(n: i32) -> string {
	match n {
		_ => "wild",
		1 => "one"
	}
}
`)
	v := callFn(t, in, "first", &value.Int{Value: 1})
	assert.Equal(t, "wild", v.(*value.String).Value)
}
