package schemaparser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/Yamashou/gqlir/directive"
)

// vocabulary declares the directives the generator understands. A schema may
// declare any of them itself, in which case its own declaration is used.
var vocabulary = []struct {
	name string
	sdl  string
}{
	{directive.NameCompute, `directive @compute(fn: String, expr: String) on FIELD_DEFINITION`},
	{directive.NameExpand, `directive @expand(into: String) on OBJECT | INTERFACE | FIELD_DEFINITION`},
	{directive.NameMethod, `directive @method(fn: String, expr: String) on FIELD_DEFINITION`},
	{directive.NameDefault, `directive @default(expr: String) on FIELD_DEFINITION`},
	{directive.NameStaticMethod, `directive @static_method(name: String, expr: String) repeatable on OBJECT | INTERFACE`},
}

var builtinDirectives = []string{"include", "skip", "deprecated", "specifiedBy", "defer", "oneOf"}

const anyLocation = "SCHEMA | SCALAR | OBJECT | FIELD_DEFINITION | ARGUMENT_DEFINITION | INTERFACE | UNION | ENUM | ENUM_VALUE | INPUT_OBJECT | INPUT_FIELD_DEFINITION"

// directivePrelude returns the directive declarations doc needs in order to
// validate: the vocabulary it does not declare itself, plus a permissive
// declaration for every other directive it uses without declaring.
func directivePrelude(doc *ast.SchemaDocument) *ast.Source {
	declared := make(map[string]bool, len(doc.Directives))
	for _, d := range doc.Directives {
		declared[d.Name] = true
	}

	var buf strings.Builder
	for _, v := range vocabulary {
		if declared[v.name] {
			continue
		}
		declared[v.name] = true
		buf.WriteString(v.sdl)
		buf.WriteString("\n")
	}

	used := usedDirectives(doc)
	for _, name := range used.names {
		if declared[name] || slices.Contains(builtinDirectives, name) {
			continue
		}
		buf.WriteString("directive @" + name)
		if args := used.args[name]; len(args) > 0 {
			defs := make([]string, 0, len(args))
			for _, arg := range args {
				defs = append(defs, arg+": String")
			}
			fmt.Fprintf(&buf, "(%s)", strings.Join(defs, ", "))
		}
		buf.WriteString(" repeatable on " + anyLocation + "\n")
	}

	return &ast.Source{Name: "directives.graphql", Input: buf.String(), BuiltIn: true}
}

type directiveUsage struct {
	names []string
	args  map[string][]string
}

func (u *directiveUsage) add(list ast.DirectiveList) {
	for _, d := range list {
		if _, ok := u.args[d.Name]; !ok {
			u.names = append(u.names, d.Name)
			u.args[d.Name] = nil
		}
		for _, arg := range d.Arguments {
			if !slices.Contains(u.args[d.Name], arg.Name) {
				u.args[d.Name] = append(u.args[d.Name], arg.Name)
			}
		}
	}
}

func usedDirectives(doc *ast.SchemaDocument) *directiveUsage {
	u := &directiveUsage{args: map[string][]string{}}
	for _, s := range doc.Schema {
		u.add(s.Directives)
	}
	for _, s := range doc.SchemaExtension {
		u.add(s.Directives)
	}
	defs := append(ast.DefinitionList{}, doc.Definitions...)
	defs = append(defs, doc.Extensions...)
	for _, def := range defs {
		u.add(def.Directives)
		for _, field := range def.Fields {
			u.add(field.Directives)
			for _, arg := range field.Arguments {
				u.add(arg.Directives)
			}
		}
		for _, value := range def.EnumValues {
			u.add(value.Directives)
		}
	}
	for _, d := range doc.Directives {
		for _, arg := range d.Arguments {
			u.add(arg.Directives)
		}
	}
	return u
}
