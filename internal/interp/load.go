package interp

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/value"
)

// Load installs file's declarations into the global environment: functions
// and variant constructors first (so top-level initializers may call
// forward), then constants and module-scope bindings in declaration order.
// It returns a runtime error value if a top-level initializer failed, nil
// otherwise.
func (in *Interpreter) Load(file *ast.File) *value.ErrorSignal {
	for _, d := range file.Decls {
		switch decl := d.(type) {
		case *ast.FnDecl:
			in.global.Define(decl.Name.Name, &value.Function{
				Name:     decl.Name.Name,
				Params:   decl.Params,
				IsEffect: decl.IsEffect,
				Body:     decl.Body,
				Env:      in.global,
			})
		case *ast.SumTypeDecl:
			in.loadSumType(decl)
		case *ast.ProductTypeDecl:
			names := make([]string, len(decl.Fields))
			for i, f := range decl.Fields {
				names[i] = f.Name.Name
			}
			in.fieldOrder[decl.Name.Name] = names
		case *ast.TraitDecl:
			in.loadTraitDefaults(decl)
		case *ast.ImplDecl:
			in.loadImpl(decl)
		}
	}

	for _, d := range file.Decls {
		switch decl := d.(type) {
		case *ast.ConstDecl:
			v := in.evalExpr(decl.Value, in.global)
			if errv, ok := v.(*value.ErrorSignal); ok {
				return errv
			}
			in.global.Define(decl.Name.Name, v)
		case *ast.LetDecl:
			v := in.evalExpr(decl.Value, in.global)
			if errv, ok := v.(*value.ErrorSignal); ok {
				return errv
			}
			matched, sig := in.matchPattern(decl.Pattern, v, in.global)
			if errv, ok := sig.(*value.ErrorSignal); ok {
				return errv
			}
			if !matched {
				return value.NewError("TypeMismatch", "top-level binding pattern did not match its initializer")
			}
		}
	}
	return nil
}

// loadSumType installs one constructor per variant under the qualified
// `Type::Variant` name: unit variants bind the constructed value directly,
// the rest bind a builtin that materializes a record tagged with the
// variant's qualified name.
func (in *Interpreter) loadSumType(decl *ast.SumTypeDecl) {
	for _, v := range decl.Variants {
		qualified := decl.Name.Name + "::" + v.Name.Name
		if len(v.Fields) == 0 {
			in.global.Define(qualified, &value.Record{TypeName: qualified})
			continue
		}
		fieldNames := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			fieldNames[i] = f.Name.Name
		}
		in.fieldOrder[qualified] = fieldNames
		name := qualified
		names := fieldNames
		in.global.Define(qualified, &value.Builtin{
			Name:  name,
			Arity: len(names),
			Fn: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				fields := make([]value.RecordField, len(args))
				for i, a := range args {
					fields[i] = value.RecordField{Name: names[i], Value: a}
				}
				return &value.Record{TypeName: name, Fields: fields}, nil
			},
		})
	}
}

func (in *Interpreter) loadTraitDefaults(decl *ast.TraitDecl) {
	defaults := map[string]*value.Function{}
	for _, m := range decl.Methods {
		if m.Default == nil {
			continue
		}
		defaults[m.Name.Name] = &value.Function{
			Name:     m.Name.Name,
			Params:   m.Params,
			IsEffect: m.IsEffect,
			Body:     m.Default,
			Env:      in.global,
		}
	}
	in.traitDefaults[decl.Name.Name] = defaults
}

func (in *Interpreter) loadImpl(decl *ast.ImplDecl) {
	typeName := typeExprName(decl.Type)
	if typeName == "" {
		return
	}
	table := in.methods[typeName]
	if table == nil {
		table = map[string]*value.Function{}
		in.methods[typeName] = table
	}
	for _, m := range decl.Methods {
		table[m.Name.Name] = &value.Function{
			Name:     m.Name.Name,
			Params:   m.Params,
			IsEffect: m.IsEffect,
			Body:     m.Body,
			Env:      in.global,
		}
	}
	if decl.Trait != nil {
		in.implTraits[typeName] = append(in.implTraits[typeName], decl.Trait.Name)
	}
}

// typeExprName extracts the bare name an impl block targets.
func typeExprName(t ast.TypeExpr) string {
	switch te := t.(type) {
	case *ast.NamedTypeExpr:
		if len(te.Path) == 0 {
			return ""
		}
		return te.Path[len(te.Path)-1].Name
	case *ast.GenericTypeExpr:
		return typeExprName(te.Base)
	default:
		return ""
	}
}

// lookupMethod resolves a method on the type named root, falling back to
// the default bodies of traits the type declares an impl for.
func (in *Interpreter) lookupMethod(root, name string) (*value.Function, bool) {
	if table, ok := in.methods[root]; ok {
		if fn, ok := table[name]; ok {
			return fn, true
		}
	}
	for _, trait := range in.implTraits[root] {
		if fn, ok := in.traitDefaults[trait][name]; ok {
			return fn, true
		}
	}
	return nil, false
}
