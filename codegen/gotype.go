package codegen

import (
	"slices"
	"strings"

	"github.com/ettle/strcase"
)

// RefKind says what a TypeRef points at.
type RefKind string

const (
	RefScalar RefKind = "scalar"
	RefEnum   RefKind = "enum"
	RefType   RefKind = "type"
)

// TypeRef is the derived representation of a field or method type.
// Element nullability is not represented: [T!] and [T] derive the same ref.
type TypeRef struct {
	Name     string  `yaml:"name"`
	GoType   string  `yaml:"goType"`
	Kind     RefKind `yaml:"kind"`
	List     bool    `yaml:"list,omitempty"`
	Optional bool    `yaml:"optional,omitempty"`
	// Forward is set when the referenced type had not been collected yet at the
	// point of reference: itself, a later sibling, or a name that never shows up.
	Forward bool `yaml:"forward,omitempty"`
}

// String renders the ref the way a generated Go field would declare it.
func (r TypeRef) String() string {
	t := r.GoType
	if r.Kind == RefType && (r.List || r.Forward) {
		// list elements and forward references are always held by pointer
		t = "*" + t
	}
	if r.List {
		t = "[]" + t
	}
	if r.Optional && !strings.HasPrefix(t, "*") {
		t = "*" + t
	}
	return t
}

var defaultScalars = map[string]string{
	"String":  "string",
	"Int":     "int",
	"Float":   "float64",
	"Boolean": "bool",
	"ID":      "string",
}

// scalarTable maps GraphQL scalar names to Go types. A mapping may name a type
// in another package by its import path, e.g. "github.com/google/uuid.UUID".
// The table is read-only after construction.
type scalarTable struct {
	types map[string]string
}

func newScalarTable(custom map[string]string) *scalarTable {
	t := &scalarTable{
		types: make(map[string]string, len(defaultScalars)+len(custom)),
	}
	for name, goType := range defaultScalars {
		t.types[name] = goType
	}
	for name, goType := range custom {
		t.types[name] = goType
	}
	return t
}

// lookup returns the Go type for a scalar and the import path it needs, if any.
func (t *scalarTable) lookup(name string) (goType, pkgPath string, ok bool) {
	goType, ok = t.types[name]
	if !ok {
		return "", "", false
	}

	i := strings.LastIndex(goType, ".")
	if i < 0 {
		return goType, "", true
	}
	pkgPath = goType[:i]
	pkgName := pkgPath[strings.LastIndex(pkgPath, "/")+1:]
	return pkgName + goType[i:], pkgPath, true
}

func importPaths(imports map[string]bool) []string {
	paths := make([]string, 0, len(imports))
	for p := range imports {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// GoName converts a GraphQL name into an exported Go identifier.
func GoName(name string) string {
	return strcase.ToGoPascal(name)
}
