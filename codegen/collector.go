// Package codegen resolves the schema model into the renderer-neutral IR:
// effective fields, derived methods, capabilities and expansion templates.
package codegen

import (
	"slices"
	"strings"

	"github.com/Yamashou/gqlir/directive"
	"github.com/Yamashou/gqlir/schema"
)

var operationRoots = []string{"Query", "Mutation", "Subscription"}

// Capability is a base a generated type builds on: either one of the
// interfaces it implements or the root Record.
type Capability struct {
	Interface string
}

// Record is the root capability of types that implement no interface.
var Record = Capability{}

func StructuralParent(name string) Capability {
	return Capability{Interface: name}
}

func (c Capability) IsRecord() bool { return c.Interface == "" }

func (c Capability) String() string {
	if c.IsRecord() {
		return "Record"
	}
	return c.Interface
}

func (c Capability) MarshalYAML() (any, error) {
	return c.String(), nil
}

type Field struct {
	Name   string              `yaml:"name"`
	GoName string              `yaml:"goName"`
	Type   TypeRef             `yaml:"type"`
	Meta   directive.FieldMeta `yaml:"meta,omitempty"`
}

// Method is a derived member. Static methods have no return type.
type Method struct {
	Name       string   `yaml:"name"`
	GoName     string   `yaml:"goName"`
	ReturnType *TypeRef `yaml:"returnType,omitempty"`
	Expr       string   `yaml:"expr,omitempty"`
	Fn         string   `yaml:"fn,omitempty"`
}

type Type struct {
	Name               string              `yaml:"name"`
	GoName             string              `yaml:"goName"`
	Kind               schema.Kind         `yaml:"kind"`
	Bases              []Capability        `yaml:"bases,omitempty"`
	RequiresComputable bool                `yaml:"requiresComputable,omitempty"`
	RequiresExpandable bool                `yaml:"requiresExpandable,omitempty"`
	Fields             []*Field            `yaml:"fields,omitempty"`
	Methods            []*Method           `yaml:"methods,omitempty"`
	StaticMethods      []*Method           `yaml:"staticMethods,omitempty"`
	Expansion          *directive.Template `yaml:"expansion,omitempty"`
	ExpansionTarget    string              `yaml:"expansionTarget,omitempty"`
	UnionMembers       []string            `yaml:"unionMembers,omitempty"`
	Interfaces         []string            `yaml:"interfaces,omitempty"`
}

// Field returns the stored field with the given name, or nil.
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
	GoName string   `yaml:"goName"`
	Values []string `yaml:"values"`
}

// Result is everything a renderer needs: the resolved types in declaration
// order and the capability and import flags derived from them.
type Result struct {
	Types           []*Type  `yaml:"types"`
	Enums           []*Enum  `yaml:"enums,omitempty"`
	NeedsComputable bool     `yaml:"needsComputable,omitempty"`
	NeedsExpandable bool     `yaml:"needsExpandable,omitempty"`
	Imports         []string `yaml:"imports,omitempty"`
}

// Type returns the resolved type with the given name, or nil.
func (r *Result) Type(name string) *Type {
	for _, t := range r.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Lookup resolves a (possibly forward) reference against the full type set.
func (r *Result) Lookup(ref TypeRef) *Type {
	if ref.Kind != RefType {
		return nil
	}
	return r.Type(ref.Name)
}

type Collector struct {
	scalars *scalarTable
}

// NewCollector returns a collector using the given scalar table on top of the
// built-in mapping. Entries in scalars override the built-ins.
func NewCollector(scalars map[string]string) *Collector {
	return &Collector{scalars: newScalarTable(scalars)}
}

// Collect resolves every generatable type of info. The only failure is a cycle
// in the implements graph; directive arguments never fail generation.
// A Collector keeps no state between calls and may be reused.
func (c *Collector) Collect(info *schema.Info) (*Result, error) {
	graph := newImplementsGraph(info)
	enums := make(map[string]bool, len(info.Enums))
	for _, e := range info.Enums {
		enums[e.Name] = true
	}

	r := &Result{}
	collected := map[string]bool{}
	imports := map[string]bool{}
	for _, t := range info.Types {
		if excluded(t.Name, info.Roots) {
			continue
		}

		if t.Kind == schema.KindUnion {
			r.Types = append(r.Types, &Type{
				Name:         t.Name,
				GoName:       GoName(t.Name),
				Kind:         schema.KindUnion,
				UnionMembers: slices.Clone(t.UnionMembers),
			})
			collected[t.Name] = true
			continue
		}

		inherited, err := graph.inheritedFields(t)
		if err != nil {
			return nil, err
		}

		resolved := c.resolve(t, inherited, func(name string) TypeRef {
			return c.typeRef(name, enums, collected, imports)
		})
		r.Types = append(r.Types, resolved)
		collected[t.Name] = true

		if resolved.RequiresComputable || len(resolved.Methods) > 0 {
			r.NeedsComputable = true
		}
		if resolved.RequiresExpandable {
			r.NeedsExpandable = true
		}
	}

	for _, e := range info.Enums {
		r.Enums = append(r.Enums, &Enum{
			Name:   e.Name,
			GoName: GoName(e.Name),
			Values: slices.Clone(e.Values),
		})
	}
	r.Imports = importPaths(imports)

	return r, nil
}

func excluded(name string, roots []string) bool {
	return slices.Contains(operationRoots, name) ||
		slices.Contains(roots, name) ||
		strings.HasSuffix(name, "Input")
}

func (c *Collector) typeRef(name string, enums, collected, imports map[string]bool) TypeRef {
	if goType, pkgPath, ok := c.scalars.lookup(name); ok {
		if pkgPath != "" {
			imports[pkgPath] = true
		}
		return TypeRef{Name: name, GoType: goType, Kind: RefScalar}
	}
	if enums[name] {
		return TypeRef{Name: name, GoType: GoName(name), Kind: RefEnum}
	}
	return TypeRef{Name: name, GoType: GoName(name), Kind: RefType, Forward: !collected[name]}
}

func (c *Collector) resolve(t *schema.Type, inherited map[string]bool, ref func(name string) TypeRef) *Type {
	rt := &Type{
		Name:       t.Name,
		GoName:     GoName(t.Name),
		Kind:       t.Kind,
		Interfaces: slices.Clone(t.Interfaces),
	}

	for _, name := range t.Interfaces {
		rt.Bases = append(rt.Bases, StructuralParent(name))
	}
	if len(rt.Bases) == 0 {
		rt.Bases = []Capability{Record}
	}

	for _, f := range t.Fields {
		if inherited[f.Name] {
			continue
		}

		r := ref(f.TypeName)
		r.List = f.IsList

		if d := f.Directives.ForName(directive.NameMethod); d != nil {
			m := d.Variant(false).(directive.Method)
			// method results may always be absent
			r.Optional = true
			rt.Methods = append(rt.Methods, &Method{
				Name:       f.Name,
				GoName:     GoName(f.Name),
				ReturnType: &r,
				Expr:       m.Expr,
				Fn:         m.Fn,
			})
			continue
		}

		r.Optional = !f.IsRequired
		rt.Fields = append(rt.Fields, &Field{
			Name:   f.Name,
			GoName: GoName(f.Name),
			Type:   r,
			Meta:   fieldMeta(f.Directives),
		})
	}

	for _, d := range t.Directives.All(directive.NameStaticMethod) {
		sm := d.Variant(true).(directive.StaticMethod)
		if !sm.Valid() {
			continue
		}
		rt.StaticMethods = append(rt.StaticMethods, &Method{
			Name:   sm.Name,
			GoName: GoName(sm.Name),
			Expr:   sm.Expr,
		})
	}

	if d := t.Directives.ForName(directive.NameExpand); d != nil {
		e := d.Variant(true).(directive.Expand)
		rt.Expansion = &e.Into
		rt.ExpansionTarget = t.Name
		if result := t.Field("result"); result != nil {
			rt.ExpansionTarget = result.TypeName
		}
	}

	rt.RequiresComputable = requiresComputable(t)
	rt.RequiresExpandable = requiresExpandable(t)

	return rt
}

// fieldMeta collects the directive metadata of a stored field. Directives with
// missing arguments contribute nothing.
func fieldMeta(ds schema.Directives) directive.FieldMeta {
	var meta directive.FieldMeta
	for _, d := range ds {
		switch v := d.Variant(false).(type) {
		case directive.Compute:
			if v.Valid() {
				meta.Compute = &v
			}
		case directive.Expand:
			meta.Expand = &v
		case directive.Default:
			if v.Expr != "" {
				meta.Default = &v
			}
		}
	}
	return meta
}

// requiresComputable looks at directive presence only, so a directive whose
// arguments were dropped still turns the capability on.
func requiresComputable(t *schema.Type) bool {
	if t.Directives.Has(directive.NameStaticMethod) {
		return true
	}
	for _, f := range t.Fields {
		if f.Directives.Has(directive.NameCompute) || f.Directives.Has(directive.NameDefault) {
			return true
		}
	}
	return false
}

func requiresExpandable(t *schema.Type) bool {
	if t.Directives.Has(directive.NameExpand) {
		return true
	}
	for _, f := range t.Fields {
		if f.Directives.Has(directive.NameExpand) {
			return true
		}
	}
	return false
}
