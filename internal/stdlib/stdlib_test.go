package stdlib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucent-lang/lucent/internal/value"
)

// squarer stands in for the interpreter when a test drives a higher-order
// builtin directly.
type squarer struct{}

func (squarer) Call(_ value.Value, args []value.Value) (value.Value, error) {
	n := args[0].(*value.Int).Value
	return &value.Int{Value: n * n}, nil
}

func ctx() *value.BuiltinContext {
	return &value.BuiltinContext{Caller: squarer{}, Stdout: &bytes.Buffer{}, Stdin: strings.NewReader("")}
}

func callBuiltin(t *testing.T, ns, name string, args ...value.Value) value.Value {
	t.Helper()
	desc, ok := Signature(ns, name)
	if !ok {
		t.Fatalf("no builtin %s.%s", ns, name)
	}
	out, err := desc.Impl(ctx(), args)
	if err != nil {
		t.Fatalf("%s.%s failed: %v", ns, name, err)
	}
	return out
}

func ints(ns ...int64) []value.Value {
	out := make([]value.Value, len(ns))
	for i, n := range ns {
		out[i] = &value.Int{Value: n}
	}
	return out
}

func TestRegistryShape(t *testing.T) {
	for _, ns := range []string{"list", "option", "result", "string", "io", "time"} {
		if !IsNamespace(ns) {
			t.Errorf("expected namespace %q", ns)
		}
	}
	if IsNamespace("random") {
		t.Error("unexpected namespace")
	}
	if _, ok := Bare("assert"); !ok {
		t.Error("assert must be a bare builtin")
	}
	if _, ok := Bare("assert_eq"); !ok {
		t.Error("assert_eq must be a bare builtin")
	}
}

func TestEffectFlags(t *testing.T) {
	pure := []string{"list.map", "option.unwrap_or", "string.len"}
	for _, name := range pure {
		parts := strings.SplitN(name, ".", 2)
		desc, ok := Signature(parts[0], parts[1])
		if !ok || desc.IsEffect {
			t.Errorf("%s must be a pure builtin", name)
		}
	}
	effect := []string{"io.print", "io.println", "io.read_line", "time.now", "time.sleep"}
	for _, name := range effect {
		parts := strings.SplitN(name, ".", 2)
		desc, ok := Signature(parts[0], parts[1])
		if !ok || !desc.IsEffect {
			t.Errorf("%s must be an effect builtin", name)
		}
	}
}

func TestListBuiltins(t *testing.T) {
	arr := &value.Array{Elements: ints(1, 2, 3)}

	mapped := callBuiltin(t, "list", "map", arr, value.TheVoid)
	if mapped.Inspect() != "[1, 4, 9]" {
		t.Errorf("list.map = %s", mapped.Inspect())
	}

	length := callBuiltin(t, "list", "length", mapped)
	if length.(*value.Int).Value != 3 {
		t.Errorf("list.length = %s", length.Inspect())
	}

	rev := callBuiltin(t, "list", "reverse", arr)
	if rev.Inspect() != "[3, 2, 1]" {
		t.Errorf("list.reverse = %s", rev.Inspect())
	}

	head := callBuiltin(t, "list", "head", arr)
	if head.Inspect() != "Some(1)" {
		t.Errorf("list.head = %s", head.Inspect())
	}
	if callBuiltin(t, "list", "head", value.NilList).Inspect() != "None" {
		t.Error("list.head of nil must be None")
	}

	tail := callBuiltin(t, "list", "tail", value.ListFromSlice(ints(1, 2, 3)))
	if tail.Inspect() != "[2, 3]" {
		t.Errorf("list.tail = %s", tail.Inspect())
	}
}

func TestOptionAndResultBuiltins(t *testing.T) {
	got := callBuiltin(t, "option", "unwrap_or", value.None, &value.Int{Value: 7})
	if got.(*value.Int).Value != 7 {
		t.Errorf("option.unwrap_or(None, 7) = %s", got.Inspect())
	}
	got = callBuiltin(t, "option", "unwrap_or", value.Some(&value.Int{Value: 3}), &value.Int{Value: 7})
	if got.(*value.Int).Value != 3 {
		t.Errorf("option.unwrap_or(Some(3), 7) = %s", got.Inspect())
	}

	if callBuiltin(t, "result", "is_ok", value.Ok(value.TheVoid)) != value.True {
		t.Error("result.is_ok(Ok) must be true")
	}
	got = callBuiltin(t, "result", "unwrap_or", value.Err(&value.String{Value: "e"}), &value.Int{Value: 9})
	if got.(*value.Int).Value != 9 {
		t.Errorf("result.unwrap_or(Err, 9) = %s", got.Inspect())
	}
}

func TestStringBuiltins(t *testing.T) {
	s := &value.String{Value: "a,b,c"}
	parts := callBuiltin(t, "string", "split", s, &value.String{Value: ","})
	if parts.Inspect() != "[a, b, c]" {
		t.Errorf("string.split = %s", parts.Inspect())
	}

	bytes := callBuiltin(t, "string", "to_utf8", &value.String{Value: "hi"})
	if bytes.Inspect() != "[104, 105]" {
		t.Errorf("string.to_utf8 = %s", bytes.Inspect())
	}

	back := callBuiltin(t, "string", "from_utf8_checked", bytes)
	if back.Inspect() != "Ok(hi)" {
		t.Errorf("from_utf8_checked round-trip = %s", back.Inspect())
	}

	bad := callBuiltin(t, "string", "from_utf8_checked", &value.Array{Elements: ints(0xff)})
	if res, ok := bad.(*value.Result); !ok || res.IsOk {
		t.Errorf("invalid UTF-8 must produce Err, got %s", bad.Inspect())
	}
}

func TestIOPrintln(t *testing.T) {
	var buf bytes.Buffer
	desc, _ := Signature("io", "println")
	c := &value.BuiltinContext{Stdout: &buf}
	if _, err := desc.Impl(c, []value.Value{&value.String{Value: "hi"}, &value.Int{Value: 3}}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hi 3\n" {
		t.Errorf("io.println wrote %q", buf.String())
	}
}

func TestAssertBuiltins(t *testing.T) {
	desc, _ := Bare("assert")
	if _, err := desc.Impl(ctx(), []value.Value{value.True}); err != nil {
		t.Errorf("assert(true) must pass: %v", err)
	}
	_, err := desc.Impl(ctx(), []value.Value{value.False, &value.String{Value: "boom"}})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("assert(false, msg) must fail with the message, got %v", err)
	}

	eq, _ := Bare("assert_eq")
	if _, err := eq.Impl(ctx(), ints(1, 1)); err != nil {
		t.Errorf("assert_eq(1, 1) must pass: %v", err)
	}
	if _, err := eq.Impl(ctx(), ints(1, 2)); err == nil {
		t.Error("assert_eq(1, 2) must fail")
	}
}

func TestInstallBindsNamespaces(t *testing.T) {
	env := value.NewEnvironment()
	Install(env)

	for _, ns := range []string{"list", "option", "result", "string", "io", "time", "std"} {
		if _, ok := env.Get(ns); !ok {
			t.Errorf("Install must bind %q", ns)
		}
	}
	stdv, _ := env.Get("std")
	std := stdv.(*value.Record)
	if _, ok := std.Get("io"); !ok {
		t.Error("std record must aggregate the io namespace")
	}
	if _, ok := std.Get("assert"); !ok {
		t.Error("std record must aggregate bare builtins")
	}

	listv, _ := env.Get("list")
	mapv, ok := listv.(*value.Record).Get("map")
	if !ok {
		t.Fatal("list record must expose map")
	}
	if b, ok := mapv.(*value.Builtin); !ok || b.Name != "list.map" {
		t.Errorf("list.map descriptor mismatch: %v", mapv)
	}
}
