package runtime

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/Yamashou/gqlir/directive"
)

// TypeMeta is the directive metadata a generated type carries.
type TypeMeta struct {
	Name string
	// Fields holds the metadata of stored fields that carry any.
	Fields          map[string]directive.FieldMeta
	Expansion       *directive.Template
	ExpansionTarget string
	Methods         map[string]directive.Method
	StaticMethods   map[string]directive.StaticMethod
}

// Object is implemented by every generated type.
type Object interface {
	TypeMeta() *TypeMeta
}

// Computable is implemented by types with computed fields, defaults or static methods.
type Computable interface {
	Object
	Compute(reg *Registry, field string) (any, error)
}

// Expandable is implemented by types carrying an expansion template.
type Expandable interface {
	Object
	Expand(reg *Registry, dst any) error
}

// Compute evaluates the computed value of field on obj.
// A field without compute metadata falls back to its default expression.
func Compute(reg *Registry, obj Object, field string) (any, error) {
	meta, ok := fieldMeta(obj, field)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoComputeMetadata, typeName(obj), field)
	}

	switch {
	case meta.Compute != nil && meta.Compute.Expr != "":
		return evalOn(reg, obj, meta.Compute.Expr)
	case meta.Compute != nil && meta.Compute.Fn != "":
		fn, err := reg.computeFunction(meta.Compute.Fn)
		if err != nil {
			return nil, err
		}
		return fn(obj, field, *meta.Compute)
	case meta.Default != nil && meta.Default.Expr != "":
		return evalOn(reg, obj, meta.Default.Expr)
	}

	return nil, fmt.Errorf("%w: %s.%s", ErrNoComputeMetadata, typeName(obj), field)
}

// ComputeAs is Compute with the result converted to T through its JSON shape.
func ComputeAs[T any](reg *Registry, obj Object, field string) (T, error) {
	var out T
	v, err := Compute(reg, obj, field)
	if err != nil {
		return out, err
	}
	if err := convert(v, &out); err != nil {
		return out, fmt.Errorf("convert %s.%s: %w", typeName(obj), field, err)
	}
	return out, nil
}

// CallMethod invokes a derived instance method.
func CallMethod(reg *Registry, obj Object, name string) (any, error) {
	var m directive.Method
	ok := false
	if tm := obj.TypeMeta(); tm != nil {
		m, ok = tm.Methods[name]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, typeName(obj), name)
	}

	switch {
	case m.Expr != "":
		return evalOn(reg, obj, m.Expr)
	case m.Fn != "":
		fn, err := reg.computeFunction(m.Fn)
		if err != nil {
			return nil, err
		}
		return fn(obj, name, directive.Compute{Fn: m.Fn})
	}

	return nil, fmt.Errorf("%w: method %s.%s", ErrNoComputeMetadata, typeName(obj), name)
}

// CallStatic invokes a static method. Its expression sees no attributes.
func CallStatic(reg *Registry, meta *TypeMeta, name string) (any, error) {
	if meta == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	sm, ok := meta.StaticMethods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, meta.Name, name)
	}
	return reg.eval(sm.Expr, map[string]any{})
}

// ApplyDefaults sets every unset field of obj that carries a default
// expression. obj must be a pointer.
//
// A pointer field is unset only when nil, so a pointer to 0, false or ""
// is kept. A value field has no such marker: an explicit 0, false, "" or
// empty list in it cannot be told from a missing one and is replaced.
func ApplyDefaults(reg *Registry, obj Object) error {
	tm := obj.TypeMeta()
	if tm == nil {
		return nil
	}

	attrs, err := attributes(obj)
	if err != nil {
		return err
	}
	explicit := setPointers(obj)

	patch := map[string]any{}
	for name, meta := range tm.Fields {
		if meta.Default == nil || explicit[name] || !isZero(attrs[name]) {
			continue
		}
		v, err := reg.eval(meta.Default.Expr, attrs)
		if err != nil {
			return fmt.Errorf("default of %s.%s: %w", tm.Name, name, err)
		}
		patch[name] = v
	}
	if len(patch) == 0 {
		return nil
	}

	b, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("apply defaults to %s: %w", tm.Name, err)
	}
	// objects merge into an existing struct, leaving other fields alone
	if err := json.Unmarshal(b, obj); err != nil {
		return fmt.Errorf("apply defaults to %s: %w", tm.Name, err)
	}
	return nil
}

func fieldMeta(obj Object, field string) (directive.FieldMeta, bool) {
	tm := obj.TypeMeta()
	if tm == nil {
		return directive.FieldMeta{}, false
	}
	meta, ok := tm.Fields[field]
	return meta, ok
}

func typeName(obj Object) string {
	if tm := obj.TypeMeta(); tm != nil && tm.Name != "" {
		return tm.Name
	}
	return fmt.Sprintf("%T", obj)
}

func evalOn(reg *Registry, obj Object, src string) (any, error) {
	attrs, err := attributes(obj)
	if err != nil {
		return nil, err
	}
	return reg.eval(src, attrs)
}

// attributes is the read-only namespace expressions and templates see: the
// instance's JSON shape keyed by field name.
func attributes(obj Object) (map[string]any, error) {
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("attributes of %s: %w", typeName(obj), err)
	}
	attrs := map[string]any{}
	if err := json.Unmarshal(b, &attrs); err != nil {
		return nil, fmt.Errorf("attributes of %s: %w", typeName(obj), err)
	}
	return attrs, nil
}

func convert(v, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// setPointers returns the JSON names of the non-nil pointer fields of obj.
func setPointers(obj Object) map[string]bool {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	set := map[string]bool{}
	collectSetPointers(v, set)
	return set
}

func collectSetPointers(v reflect.Value, set map[string]bool) {
	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" && opts == "" {
			continue
		}

		fv := v.Field(i)
		if strings.Contains(opts, "inline") {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				collectSetPointers(fv, set)
			}
			continue
		}

		if name == "" {
			name = sf.Name
		}
		if fv.Kind() == reflect.Pointer && !fv.IsNil() {
			set[name] = true
		}
	}
}

func isZero(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case float64:
		return v == 0
	case bool:
		return !v
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}
