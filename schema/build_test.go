package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Yamashou/gqlir/schema"
	"github.com/Yamashou/gqlir/schemaparser"
)

func build(t *testing.T, sdl string) *schema.Info {
	t.Helper()

	doc, err := schemaparser.Load("test.graphql", sdl)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return schema.Build(doc)
}

func TestBuild_Types(t *testing.T) {
	t.Parallel()

	info := build(t, `
type Zebra implements Named { name: String! stripes: Int }
interface Named { name: String! }
union Animal = Zebra | Lion
type Lion implements Named { name: String! }
enum Colour { BLACK WHITE }
scalar Time
type Query { zebras: [Zebra!]! }
`)

	want := []*schema.Type{
		{
			Name:       "Zebra",
			Kind:       schema.KindObject,
			Interfaces: []string{"Named"},
			Fields: []*schema.Field{
				{Name: "name", TypeName: "String", IsRequired: true},
				{Name: "stripes", TypeName: "Int"},
			},
		},
		{
			Name: "Named",
			Kind: schema.KindInterface,
			Fields: []*schema.Field{
				{Name: "name", TypeName: "String", IsRequired: true},
			},
		},
		{
			Name:         "Animal",
			Kind:         schema.KindUnion,
			UnionMembers: []string{"Zebra", "Lion"},
		},
		{
			Name:       "Lion",
			Kind:       schema.KindObject,
			Interfaces: []string{"Named"},
			Fields: []*schema.Field{
				{Name: "name", TypeName: "String", IsRequired: true},
			},
		},
		{
			Name: "Query",
			Kind: schema.KindObject,
			Fields: []*schema.Field{
				{Name: "zebras", TypeName: "Zebra", IsList: true, IsRequired: true, ElemRequired: true},
			},
		},
	}
	if diff := cmp.Diff(want, info.Types); diff != "" {
		t.Errorf("types diff(-want +got): %s", diff)
	}

	if diff := cmp.Diff([]*schema.Enum{{Name: "Colour", Values: []string{"BLACK", "WHITE"}}}, info.Enums); diff != "" {
		t.Errorf("enums diff(-want +got): %s", diff)
	}
	if diff := cmp.Diff([]string{"Time", "String", "Int", "Float", "Boolean", "ID"}, info.Scalars); diff != "" {
		t.Errorf("scalars diff(-want +got): %s", diff)
	}
	if diff := cmp.Diff([]string{"Query"}, info.Roots); diff != "" {
		t.Errorf("roots diff(-want +got): %s", diff)
	}
}

func TestBuild_FieldTypes(t *testing.T) {
	t.Parallel()

	info := build(t, `
type T {
  a: String
  b: String!
  c: [String]
  d: [String!]
  e: [String]!
  f: [String!]!
  g: [[Int!]]
}
`)

	want := []*schema.Field{
		{Name: "a", TypeName: "String"},
		{Name: "b", TypeName: "String", IsRequired: true},
		{Name: "c", TypeName: "String", IsList: true},
		{Name: "d", TypeName: "String", IsList: true, ElemRequired: true},
		{Name: "e", TypeName: "String", IsList: true, IsRequired: true},
		{Name: "f", TypeName: "String", IsList: true, IsRequired: true, ElemRequired: true},
		// nested lists narrow to the innermost named type
		{Name: "g", TypeName: "Int", IsList: true},
	}
	if diff := cmp.Diff(want, info.Type("T").Fields); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}

func TestBuild_Directives(t *testing.T) {
	t.Parallel()

	info := build(t, `
type Order @static_method(name: "zero", expr: "0") @static_method(name: "one", expr: "1") {
  total: Float! @compute(fn: "sum") @cached(ttl: 60, tags: ["a", "b"])
  count: Int @default(expr: "1")
}
`)

	order := info.Type("Order")
	if order == nil {
		t.Fatal("Order not built")
	}

	wantTypeDirectives := schema.Directives{
		{Name: "static_method", Args: map[string]any{"name": "zero", "expr": "0"}},
		{Name: "static_method", Args: map[string]any{"name": "one", "expr": "1"}},
	}
	if diff := cmp.Diff(wantTypeDirectives, order.Directives); diff != "" {
		t.Errorf("type directives diff(-want +got): %s", diff)
	}

	wantFieldDirectives := schema.Directives{
		{Name: "compute", Args: map[string]any{"fn": "sum"}},
		{Name: "cached", Args: map[string]any{"ttl": int64(60), "tags": []any{"a", "b"}}},
	}
	if diff := cmp.Diff(wantFieldDirectives, order.Field("total").Directives); diff != "" {
		t.Errorf("field directives diff(-want +got): %s", diff)
	}

	if got := order.Directives.All("static_method"); len(got) != 2 {
		t.Errorf("All(static_method) = %d directives, want 2", len(got))
	}
	if !order.Field("count").Directives.Has("default") {
		t.Error("count should carry @default")
	}
	if d := order.Field("count").Directives.ForName("compute"); d != nil {
		t.Errorf("ForName(compute) = %v, want nil", d)
	}
}

func TestBuild_SchemaRoots(t *testing.T) {
	t.Parallel()

	info := build(t, `
schema { query: RootQuery mutation: RootMutation }
type RootQuery { ping: String }
type RootMutation { pong: String }
`)

	if diff := cmp.Diff([]string{"RootQuery", "RootMutation"}, info.Roots); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}

func TestBuild_Extensions(t *testing.T) {
	t.Parallel()

	info := build(t, `
type Cup { size: Int }
extend type Cup { lid: Boolean }
`)

	var got []string
	for _, f := range info.Type("Cup").Fields {
		got = append(got, f.Name)
	}
	if diff := cmp.Diff([]string{"size", "lid"}, got); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}
