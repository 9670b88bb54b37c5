// Package directive defines the closed set of directives the generator understands.
//
// Schema authors attach these to fields and types:
//
//	@compute(fn: String, expr: String)
//	@expand(into: String)
//	@method(fn: String, expr: String)
//	@default(expr: String)
//	@static_method(name: String, expr: String)
//
// Any other directive is kept as Unrecognized and ignored by the resolver.
package directive

import (
	"fmt"
	"maps"
	"strings"
)

const (
	NameCompute      = "compute"
	NameExpand       = "expand"
	NameMethod       = "method"
	NameDefault      = "default"
	NameStaticMethod = "static_method"
)

// Directive is one of Compute, Expand, Method, Default, StaticMethod or Unrecognized.
type Directive interface {
	DirectiveName() string
	directive()
}

// Compute marks a field whose value is produced by a registered function or an expression.
// When both are given Expr wins and Fn is dropped.
type Compute struct {
	Fn   string `yaml:"fn,omitempty" json:"fn,omitempty"`
	Expr string `yaml:"expr,omitempty" json:"expr,omitempty"`
}

// Expand carries the template a field (or type) expands into.
type Expand struct {
	Into Template `yaml:"into" json:"into"`
}

// Method turns a field into a derived instance method instead of a stored field.
type Method struct {
	Fn   string `yaml:"fn,omitempty" json:"fn,omitempty"`
	Expr string `yaml:"expr,omitempty" json:"expr,omitempty"`
}

// Default holds the expression that supplies a field's default value.
type Default struct {
	Expr string `yaml:"expr" json:"expr"`
}

// StaticMethod declares a method on the type itself. It is repeatable.
type StaticMethod struct {
	Name string `yaml:"name" json:"name"`
	Expr string `yaml:"expr" json:"expr"`
}

// Unrecognized preserves a directive outside the vocabulary verbatim.
type Unrecognized struct {
	Name string         `yaml:"name" json:"name"`
	Args map[string]any `yaml:"args,omitempty" json:"args,omitempty"`
}

func (Compute) DirectiveName() string      { return NameCompute }
func (Expand) DirectiveName() string       { return NameExpand }
func (Method) DirectiveName() string       { return NameMethod }
func (Default) DirectiveName() string      { return NameDefault }
func (StaticMethod) DirectiveName() string { return NameStaticMethod }
func (u Unrecognized) DirectiveName() string {
	return u.Name
}

func (Compute) directive()      {}
func (Expand) directive()       {}
func (Method) directive()       {}
func (Default) directive()      {}
func (StaticMethod) directive() {}
func (Unrecognized) directive() {}

// Valid reports whether the compute directive names something to evaluate.
func (c Compute) Valid() bool { return c.Fn != "" || c.Expr != "" }

// Valid reports whether the method directive names something to evaluate.
func (m Method) Valid() bool { return m.Fn != "" || m.Expr != "" }

// Valid reports whether both required arguments are present.
func (s StaticMethod) Valid() bool { return s.Name != "" && s.Expr != "" }

// Parse converts a directive name and its literal arguments into a variant.
// Type-level and field-level expand templates are parsed differently, so the
// caller says which one it is looking at.
func Parse(name string, args map[string]any, onType bool) Directive {
	switch name {
	case NameCompute:
		if expr := stringArg(args, "expr"); expr != "" {
			return Compute{Expr: expr}
		}
		return Compute{Fn: stringArg(args, "fn")}
	case NameMethod:
		if expr := stringArg(args, "expr"); expr != "" {
			return Method{Expr: expr}
		}
		return Method{Fn: stringArg(args, "fn")}
	case NameDefault:
		return Default{Expr: stringArg(args, "expr")}
	case NameStaticMethod:
		return StaticMethod{Name: stringArg(args, "name"), Expr: stringArg(args, "expr")}
	case NameExpand:
		into, ok := args["into"]
		if !ok || into == nil {
			return Expand{Into: Template{Value: map[string]any{}}}
		}
		if obj, ok := into.(map[string]any); ok {
			// @expand(into: {…}) written as a GraphQL object literal
			return Expand{Into: Template{Value: obj}}
		}
		raw := fmt.Sprint(into)
		if onType {
			return Expand{Into: ParseTypeTemplate(raw)}
		}
		return Expand{Into: ParseFieldTemplate(raw)}
	default:
		return Unrecognized{Name: name, Args: maps.Clone(args)}
	}
}

func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

// FieldMeta is the metadata bag attached to a stored field.
type FieldMeta struct {
	Compute *Compute `yaml:"compute,omitempty" json:"compute,omitempty"`
	Expand  *Expand  `yaml:"expand,omitempty" json:"expand,omitempty"`
	Default *Default `yaml:"default,omitempty" json:"default,omitempty"`
}

// IsZero reports whether no directive contributed to the bag.
func (m FieldMeta) IsZero() bool {
	return m.Compute == nil && m.Expand == nil && m.Default == nil
}
