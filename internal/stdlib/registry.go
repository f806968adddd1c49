// Package stdlib defines Lucent's builtin capability surface: the
// descriptors the interpreter installs into the root environment and the
// signatures the type checker consults for static effect/arity checking.
package stdlib

import (
	"github.com/lucent-lang/lucent/internal/types"
	"github.com/lucent-lang/lucent/internal/value"
)

// Descriptor is one builtin: its name, effect flag, arity, an optional
// static signature for the checker, and the host implementation.
//
// Params/Return describe only what the checker can usefully enforce: a nil
// Params slice (or a nil entry) means "any type" — generic builtins like
// list.map are checked for arity and effect only, with their result typed
// as the checker's error type so downstream diagnostics do not cascade.
type Descriptor struct {
	Name     string
	IsEffect bool
	Arity    int // -1 marks a variadic builtin
	Params   []types.Type
	Return   types.Type
	Impl     value.BuiltinFunc
}

// Namespace groups descriptors under one record name (`list`, `io`, ...).
type Namespace struct {
	Name     string
	Builtins []*Descriptor
}

var namespaces = buildNamespaces()

func buildNamespaces() map[string]*Namespace {
	all := []*Namespace{
		listNamespace(),
		optionNamespace(),
		resultNamespace(),
		stringNamespace(),
		ioNamespace(),
		timeNamespace(),
	}
	out := make(map[string]*Namespace, len(all))
	for _, ns := range all {
		out[ns.Name] = ns
	}
	return out
}

// bare builtins are installed directly into the root environment rather
// than under a namespace record.
var bare = bareBuiltins()

// IsNamespace reports whether name is a standard-library namespace.
func IsNamespace(name string) bool {
	_, ok := namespaces[name]
	return ok
}

// Signature finds the descriptor for ns.fn, used by the checker to enforce
// effect discipline and arity on builtin calls.
func Signature(ns, fn string) (*Descriptor, bool) {
	n, ok := namespaces[ns]
	if !ok {
		return nil, false
	}
	for _, d := range n.Builtins {
		if d.Name == fn {
			return d, true
		}
	}
	return nil, false
}

// Bare finds a root-level builtin (assert, assert_eq) by name.
func Bare(name string) (*Descriptor, bool) {
	for _, d := range bare {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// Install binds the standard library into env: one record per namespace,
// the bare builtins, and a `std` record aggregating all of them. It runs
// once at interpreter construction; everything it installs is read-only
// thereafter.
func Install(env *value.Environment) {
	var stdFields []value.RecordField
	for _, nsName := range []string{"list", "option", "result", "string", "io", "time"} {
		ns := namespaces[nsName]
		fields := make([]value.RecordField, len(ns.Builtins))
		for i, d := range ns.Builtins {
			fields[i] = value.RecordField{
				Name:  d.Name,
				Value: &value.Builtin{Name: ns.Name + "." + d.Name, IsEffect: d.IsEffect, Arity: d.Arity, Fn: d.Impl},
			}
		}
		rec := &value.Record{TypeName: ns.Name, Fields: fields}
		env.Define(ns.Name, rec)
		stdFields = append(stdFields, value.RecordField{Name: ns.Name, Value: rec})
	}
	for _, d := range bare {
		b := &value.Builtin{Name: d.Name, IsEffect: d.IsEffect, Arity: d.Arity, Fn: d.Impl}
		env.Define(d.Name, b)
		stdFields = append(stdFields, value.RecordField{Name: d.Name, Value: b})
	}
	env.Define("std", &value.Record{TypeName: "std", Fields: stdFields})
}

// arityError builds the uniform wrong-argument-count runtime error.
func arityError(name string, want, got int) error {
	return value.NewError("ArityMismatch", "%s expects %d argument(s), got %d", name, want, got)
}

func typeError(name, want string, got value.Value) error {
	return value.NewError("TypeMismatch", "%s expects %s, got %s", name, want, got.Kind())
}
