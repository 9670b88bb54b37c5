package codegen

import (
	"github.com/Yamashou/gqlir/directive"
	"github.com/Yamashou/gqlir/runtime"
)

// Meta returns the runtime metadata a generated type for t carries.
func (t *Type) Meta() *runtime.TypeMeta {
	m := &runtime.TypeMeta{
		Name:            t.Name,
		Fields:          map[string]directive.FieldMeta{},
		Expansion:       t.Expansion,
		ExpansionTarget: t.ExpansionTarget,
		Methods:         map[string]directive.Method{},
		StaticMethods:   map[string]directive.StaticMethod{},
	}
	for _, f := range t.Fields {
		if !f.Meta.IsZero() {
			m.Fields[f.Name] = f.Meta
		}
	}
	for _, method := range t.Methods {
		m.Methods[method.Name] = directive.Method{Fn: method.Fn, Expr: method.Expr}
	}
	for _, sm := range t.StaticMethods {
		m.StaticMethods[sm.Name] = directive.StaticMethod{Name: sm.Name, Expr: sm.Expr}
	}
	return m
}
