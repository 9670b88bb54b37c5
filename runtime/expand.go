package runtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Yamashou/gqlir/directive"
)

// Expand builds obj's expansion into dst, which must be a pointer to the
// expansion target. The type-level template is used when present, otherwise
// the single field carrying an expand template.
func Expand(reg *Registry, obj Object, dst any) error {
	tm := obj.TypeMeta()
	if tm == nil {
		return fmt.Errorf("%w: %s", ErrNoExpansionTemplate, typeName(obj))
	}
	if tm.Expansion != nil {
		return expandInto(reg, obj, *tm.Expansion, dst)
	}

	var found []string
	for name, meta := range tm.Fields {
		if meta.Expand != nil {
			found = append(found, name)
		}
	}
	if len(found) != 1 {
		return fmt.Errorf("%w: %s has %d field templates", ErrNoExpansionTemplate, tm.Name, len(found))
	}
	return expandInto(reg, obj, tm.Fields[found[0]].Expand.Into, dst)
}

// ExpandField builds the expansion declared on one field.
func ExpandField(reg *Registry, obj Object, field string, dst any) error {
	meta, ok := fieldMeta(obj, field)
	if !ok || meta.Expand == nil {
		return fmt.Errorf("%w: %s.%s", ErrNoExpansionTemplate, typeName(obj), field)
	}
	return expandInto(reg, obj, meta.Expand.Into, dst)
}

func expandInto(reg *Registry, obj Object, tmpl directive.Template, dst any) error {
	var (
		v   any
		err error
	)
	switch {
	case tmpl.IsFunc():
		fn, ferr := reg.expandFunction(tmpl.Fn)
		if ferr != nil {
			return ferr
		}
		v, err = fn(obj, tmpl)
	case tmpl.IsMalformed():
		return fmt.Errorf("%w: %s: %q", ErrMalformedTemplate, typeName(obj), tmpl.Raw)
	default:
		var attrs map[string]any
		attrs, err = attributes(obj)
		if err != nil {
			return err
		}
		v, err = substitute(tmpl.Value, attrs)
	}
	if err != nil {
		return fmt.Errorf("expand %s: %w", typeName(obj), err)
	}

	if err := convert(v, dst); err != nil {
		return fmt.Errorf("expand %s into %T: %w", typeName(obj), dst, err)
	}
	return nil
}

var placeholder = regexp.MustCompile(`^\$(?:([A-Za-z_][\w.]*)|\{([A-Za-z_][\w.]*)\})$`)

// substitute walks a decoded template and fills placeholders from attrs.
//
//	"$path" or "${path}"  the whole string is replaced by the value, keeping its type
//	"...${path}..."       the value is interpolated as text
//	"$$"                  a literal $
func substitute(v any, attrs map[string]any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			s, err := substitute(e, attrs)
			if err != nil {
				return nil, err
			}
			out[k] = s
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, e := range v {
			s, err := substitute(e, attrs)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		if m := placeholder.FindStringSubmatch(v); m != nil {
			return lookup(attrs, m[1]+m[2])
		}
		return interpolate(v, attrs)
	}
	return v, nil
}

func interpolate(s string, attrs map[string]any) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}

	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i+1 == len(s) {
			buf.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case '$':
			buf.WriteByte('$')
			i++
		case '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated placeholder in %q", ErrMalformedTemplate, s)
			}
			v, err := lookup(attrs, s[i+2:i+2+end])
			if err != nil {
				return "", err
			}
			buf.WriteString(text(v))
			i += 2 + end
		default:
			buf.WriteByte('$')
		}
	}
	return buf.String(), nil
}

// lookup resolves a dot separated path. Numeric segments index into lists.
func lookup(attrs map[string]any, path string) (any, error) {
	var cur any = attrs
	for _, seg := range strings.Split(path, ".") {
		switch c := cur.(type) {
		case map[string]any:
			v, ok := c[seg]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, path)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, path)
			}
			cur = c[i]
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, path)
		}
	}
	return cur, nil
}

func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
