package schema

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/Yamashou/gqlir/schemaparser"
)

var builtinScalars = []string{"String", "Int", "Float", "Boolean", "ID"}

// Build walks a loaded document and produces the schema model.
// Types keep the order in which the schema author declared them.
func Build(doc *schemaparser.Document) *Info {
	info := &Info{}

	for _, def := range declared(doc) {
		switch def.Kind {
		case ast.Object:
			info.Types = append(info.Types, newType(def, KindObject))
		case ast.Interface:
			info.Types = append(info.Types, newType(def, KindInterface))
		case ast.Union:
			t := newType(def, KindUnion)
			t.UnionMembers = append([]string{}, def.Types...)
			info.Types = append(info.Types, t)
		case ast.Enum:
			info.Enums = append(info.Enums, newEnum(def))
		case ast.Scalar:
			info.Scalars = append(info.Scalars, def.Name)
		}
	}

	for _, name := range builtinScalars {
		if _, ok := doc.Schema.Types[name]; ok {
			info.Scalars = append(info.Scalars, name)
		}
	}

	for _, root := range []*ast.Definition{doc.Schema.Query, doc.Schema.Mutation, doc.Schema.Subscription} {
		if root != nil {
			info.Roots = append(info.Roots, root.Name)
		}
	}

	return info
}

// declared returns the author's definitions in declaration order, with
// extensions already merged in by validation.
func declared(doc *schemaparser.Document) []*ast.Definition {
	seen := make(map[string]bool)
	var defs []*ast.Definition
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if def := doc.Schema.Types[name]; def != nil && !def.BuiltIn {
			defs = append(defs, def)
		}
	}

	for _, def := range doc.Doc.Definitions {
		add(def.Name)
	}
	for _, ext := range doc.Doc.Extensions {
		add(ext.Name)
	}

	return defs
}

func newType(def *ast.Definition, kind Kind) *Type {
	t := &Type{
		Name:       def.Name,
		Kind:       kind,
		Directives: newDirectives(def.Directives),
	}
	if kind != KindUnion && len(def.Interfaces) > 0 {
		t.Interfaces = append([]string{}, def.Interfaces...)
	}

	for _, f := range def.Fields {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		t.Fields = append(t.Fields, newField(f))
	}

	return t
}

func newField(f *ast.FieldDefinition) *Field {
	typeName, isList, isRequired, elemRequired := unwrapType(f.Type)
	return &Field{
		Name:         f.Name,
		TypeName:     typeName,
		IsList:       isList,
		IsRequired:   isRequired,
		ElemRequired: elemRequired,
		Directives:   newDirectives(f.Directives),
	}
}

// unwrapType peels the required wrapper first, then one list wrapper, then the
// element's own required wrapper. Deeper list nesting narrows to the innermost name.
func unwrapType(t *ast.Type) (name string, isList, isRequired, elemRequired bool) {
	isRequired = t.NonNull
	if t.Elem != nil {
		isList = true
		elemRequired = t.Elem.NonNull
	}
	return t.Name(), isList, isRequired, elemRequired
}

func newEnum(def *ast.Definition) *Enum {
	values := make([]string, 0, len(def.EnumValues))
	for _, v := range def.EnumValues {
		values = append(values, v.Name)
	}
	return &Enum{Name: def.Name, Values: values}
}

func newDirectives(list ast.DirectiveList) Directives {
	if len(list) == 0 {
		return nil
	}

	directives := make(Directives, 0, len(list))
	for _, d := range list {
		directives = append(directives, Directive{
			Name: d.Name,
			Args: argumentValues(d.Arguments),
		})
	}
	return directives
}

// argumentValues takes literal values as written; anything that fails to
// convert keeps its raw text.
func argumentValues(args ast.ArgumentList) map[string]any {
	if len(args) == 0 {
		return nil
	}

	values := make(map[string]any, len(args))
	for _, arg := range args {
		if arg.Value == nil {
			continue
		}
		v, err := arg.Value.Value(nil)
		if err != nil {
			v = arg.Value.Raw
		}
		values[arg.Name] = v
	}
	return values
}
