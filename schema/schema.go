// Package schema holds the structured model of a GraphQL schema that the
// resolver consumes. It is built once per run and not modified afterwards.
package schema

import (
	"github.com/Yamashou/gqlir/directive"
)

type Kind string

const (
	KindObject    Kind = "object"
	KindInterface Kind = "interface"
	KindUnion     Kind = "union"
)

// Directive is a directive as written in the schema, with literal argument values.
type Directive struct {
	Name string         `yaml:"name"`
	Args map[string]any `yaml:"args,omitempty"`
}

// Variant returns the tagged form of the directive.
func (d Directive) Variant(onType bool) directive.Directive {
	return directive.Parse(d.Name, d.Args, onType)
}

type Directives []Directive

// Has reports whether a directive with the given name is present.
func (ds Directives) Has(name string) bool {
	for _, d := range ds {
		if d.Name == name {
			return true
		}
	}
	return false
}

// ForName returns the first directive with the given name, or nil.
func (ds Directives) ForName(name string) *Directive {
	for i := range ds {
		if ds[i].Name == name {
			return &ds[i]
		}
	}
	return nil
}

// All returns every directive with the given name, in declaration order.
func (ds Directives) All(name string) Directives {
	var all Directives
	for _, d := range ds {
		if d.Name == name {
			all = append(all, d)
		}
	}
	return all
}

// Field is a field as declared on one type. ElemRequired is the non-null flag
// of list elements; the resolver narrows it away.
type Field struct {
	Name         string     `yaml:"name"`
	TypeName     string     `yaml:"type"`
	IsList       bool       `yaml:"list,omitempty"`
	IsRequired   bool       `yaml:"required,omitempty"`
	ElemRequired bool       `yaml:"elemRequired,omitempty"`
	Directives   Directives `yaml:"directives,omitempty"`
}

type Type struct {
	Name         string     `yaml:"name"`
	Kind         Kind       `yaml:"kind"`
	Fields       []*Field   `yaml:"fields,omitempty"`
	Directives   Directives `yaml:"directives,omitempty"`
	Interfaces   []string   `yaml:"interfaces,omitempty"`
	UnionMembers []string   `yaml:"unionMembers,omitempty"`
}

// Field returns the field with the given name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

type Enum struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// Info is the closed collection of everything the schema declares.
type Info struct {
	Types   []*Type  `yaml:"types"`
	Enums   []*Enum  `yaml:"enums,omitempty"`
	Scalars []string `yaml:"scalars,omitempty"`
	// Roots names the operation root types, whatever they are called.
	Roots []string `yaml:"roots,omitempty"`
}

// Type returns the type with the given name, or nil.
func (i *Info) Type(name string) *Type {
	for _, t := range i.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}
