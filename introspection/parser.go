package introspection

import (
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

var (
	builtinScalars    = []string{"String", "Int", "Float", "Boolean", "ID"}
	builtinDirectives = []string{"include", "skip", "deprecated", "specifiedBy", "defer", "oneOf"}
)

// SchemaFromIntrospection rebuilds the author's schema document from an
// introspection response. Built-in types and directives are left out since
// the validator prelude declares them. Argument default values are dropped.
// Every node is positioned in a source called name, so validation errors
// point at the server.
func SchemaFromIntrospection(name string, q Query) *ast.SchemaDocument {
	b := &builder{pos: &ast.Position{Src: &ast.Source{Name: name}}}
	doc := &ast.SchemaDocument{}

	schemaDef := &ast.SchemaDefinition{Position: b.pos}
	for _, root := range []struct {
		op  ast.Operation
		ref *namedRef
	}{
		{ast.Query, q.Schema.QueryType},
		{ast.Mutation, q.Schema.MutationType},
		{ast.Subscription, q.Schema.SubscriptionType},
	} {
		if root.ref == nil || root.ref.Name == nil {
			continue
		}
		schemaDef.OperationTypes = append(schemaDef.OperationTypes, &ast.OperationTypeDefinition{
			Operation: root.op,
			Type:      *root.ref.Name,
			Position:  b.pos,
		})
	}
	if len(schemaDef.OperationTypes) > 0 {
		doc.Schema = append(doc.Schema, schemaDef)
	}

	for _, typ := range q.Schema.Types {
		if typ.Name == nil || strings.HasPrefix(*typ.Name, "__") {
			continue
		}
		if typ.Kind == TypeKindScalar && slices.Contains(builtinScalars, *typ.Name) {
			continue
		}
		if def := b.definition(typ); def != nil {
			doc.Definitions = append(doc.Definitions, def)
		}
	}

	for _, d := range q.Schema.Directives {
		if slices.Contains(builtinDirectives, d.Name) {
			continue
		}
		locations := make([]ast.DirectiveLocation, 0, len(d.Locations))
		for _, l := range d.Locations {
			locations = append(locations, ast.DirectiveLocation(l))
		}
		doc.Directives = append(doc.Directives, &ast.DirectiveDefinition{
			Description:  deref(d.Description),
			Name:         d.Name,
			Arguments:    b.arguments(d.Args),
			Locations:    locations,
			IsRepeatable: d.IsRepeatable,
			Position:     b.pos,
		})
	}

	return doc
}

type builder struct {
	pos *ast.Position
}

func (b *builder) definition(typ *FullType) *ast.Definition {
	def := &ast.Definition{
		Name:        *typ.Name,
		Description: deref(typ.Description),
		Position:    b.pos,
	}

	switch typ.Kind {
	case TypeKindScalar:
		def.Kind = ast.Scalar
	case TypeKindObject, TypeKindInterface:
		def.Kind = ast.Object
		if typ.Kind == TypeKindInterface {
			def.Kind = ast.Interface
		}
		for _, f := range typ.Fields {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Description: deref(f.Description),
				Name:        f.Name,
				Arguments:   b.arguments(f.Args),
				Type:        b.astType(&f.Type),
				Position:    b.pos,
			})
		}
		for _, i := range typ.Interfaces {
			if i.Name != nil {
				def.Interfaces = append(def.Interfaces, *i.Name)
			}
		}
	case TypeKindUnion:
		def.Kind = ast.Union
		for _, p := range typ.PossibleTypes {
			if p.Name != nil {
				def.Types = append(def.Types, *p.Name)
			}
		}
	case TypeKindEnum:
		def.Kind = ast.Enum
		for _, v := range typ.EnumValues {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{
				Description: deref(v.Description),
				Name:        v.Name,
				Position:    b.pos,
			})
		}
	case TypeKindInputObject:
		def.Kind = ast.InputObject
		for _, f := range typ.InputFields {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Description: deref(f.Description),
				Name:        f.Name,
				Type:        b.astType(&f.Type),
				Position:    b.pos,
			})
		}
	default:
		return nil
	}

	return def
}

func (b *builder) arguments(args []*InputValue) ast.ArgumentDefinitionList {
	var list ast.ArgumentDefinitionList
	for _, a := range args {
		list = append(list, &ast.ArgumentDefinition{
			Description: deref(a.Description),
			Name:        a.Name,
			Type:        b.astType(&a.Type),
			Position:    b.pos,
		})
	}
	return list
}

func (b *builder) astType(ref *TypeRef) *ast.Type {
	switch ref.Kind {
	case TypeKindNonNull:
		if ref.OfType == nil {
			return nil
		}
		t := b.astType(ref.OfType)
		if t != nil {
			t.NonNull = true
		}
		return t
	case TypeKindList:
		if ref.OfType == nil {
			return nil
		}
		return &ast.Type{Elem: b.astType(ref.OfType), Position: b.pos}
	}
	return &ast.Type{NamedType: deref(ref.Name), Position: b.pos}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
