package directive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	t.Parallel()

	type args struct {
		name   string
		args   map[string]any
		onType bool
	}

	type want struct {
		directive Directive
	}

	tests := []struct {
		name string
		args args
		want want
	}{
		{
			name: "compute with fn",
			args: args{name: "compute", args: map[string]any{"fn": "calcCalories"}},
			want: want{directive: Compute{Fn: "calcCalories"}},
		},
		{
			name: "compute with both fn and expr keeps expr only",
			args: args{name: "compute", args: map[string]any{"fn": "calcCalories", "expr": "grams * 2"}},
			want: want{directive: Compute{Expr: "grams * 2"}},
		},
		{
			name: "compute without arguments is invalid but kept",
			args: args{name: "compute", args: map[string]any{}},
			want: want{directive: Compute{}},
		},
		{
			name: "method with both fn and expr keeps expr only",
			args: args{name: "method", args: map[string]any{"fn": "names", "expr": "map(parts, .name)"}},
			want: want{directive: Method{Expr: "map(parts, .name)"}},
		},
		{
			name: "default",
			args: args{name: "default", args: map[string]any{"expr": "0"}},
			want: want{directive: Default{Expr: "0"}},
		},
		{
			name: "static_method",
			args: args{name: "static_method", args: map[string]any{"name": "create", "expr": "1 + 1"}},
			want: want{directive: StaticMethod{Name: "create", Expr: "1 + 1"}},
		},
		{
			name: "field-level expand with JSON object",
			args: args{name: "expand", args: map[string]any{"into": `{"name": "$name"}`}},
			want: want{directive: Expand{Into: Template{Value: map[string]any{"name": "$name"}}}},
		},
		{
			name: "field-level expand with malformed JSON defaults to an empty object",
			args: args{name: "expand", args: map[string]any{"into": `{"name": `}},
			want: want{directive: Expand{Into: Template{Value: map[string]any{}}}},
		},
		{
			name: "type-level expand with malformed JSON keeps the raw string",
			args: args{name: "expand", args: map[string]any{"into": `{"name": `}, onType: true},
			want: want{directive: Expand{Into: Template{Raw: `{"name": `}}},
		},
		{
			name: "type-level expand with a bare name refers to a function",
			args: args{name: "expand", args: map[string]any{"into": "buildSmoothie"}, onType: true},
			want: want{directive: Expand{Into: Template{Fn: "buildSmoothie"}}},
		},
		{
			name: "field-level object with a single fn key stays a structured value",
			args: args{name: "expand", args: map[string]any{"into": `{"fn": "literal"}`}},
			want: want{directive: Expand{Into: Template{Value: map[string]any{"fn": "literal"}}}},
		},
		{
			name: "型レベルでもfnだけのオブジェクトは構造化された値",
			args: args{name: "expand", args: map[string]any{"into": `{"fn": "literal"}`}, onType: true},
			want: want{directive: Expand{Into: Template{Value: map[string]any{"fn": "literal"}}}},
		},
		{
			name: "GraphQL object literal with a single fn key stays a structured value",
			args: args{name: "expand", args: map[string]any{"into": map[string]any{"fn": "literal"}}, onType: true},
			want: want{directive: Expand{Into: Template{Value: map[string]any{"fn": "literal"}}}},
		},
		{
			name: "expand written as a GraphQL object literal",
			args: args{name: "expand", args: map[string]any{"into": map[string]any{"size": "$size"}}, onType: true},
			want: want{directive: Expand{Into: Template{Value: map[string]any{"size": "$size"}}}},
		},
		{
			name: "expand without into is an empty object",
			args: args{name: "expand", args: nil, onType: true},
			want: want{directive: Expand{Into: Template{Value: map[string]any{}}}},
		},
		{
			name: "unknown directives are preserved",
			args: args{name: "deprecated", args: map[string]any{"reason": "old"}},
			want: want{directive: Unrecognized{Name: "deprecated", Args: map[string]any{"reason": "old"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Parse(tt.args.name, tt.args.args, tt.args.onType)
			if diff := cmp.Diff(tt.want.directive, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
			if got.DirectiveName() != tt.args.name {
				t.Errorf("DirectiveName() = %q, want %q", got.DirectiveName(), tt.args.name)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		template      Template
		wantFunc      bool
		wantMalformed bool
	}{
		{name: "structured", template: ParseTypeTemplate(`{"a": 1}`)},
		{name: "array literal", template: ParseTypeTemplate(`[1, 2]`)},
		{name: "function", template: ParseTypeTemplate(" buildIt "), wantFunc: true},
		{name: "object with only fn", template: ParseTypeTemplate(`{"fn": "buildIt"}`)},
		{name: "malformed", template: ParseTypeTemplate(`{oops}`), wantMalformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.template.IsFunc(); got != tt.wantFunc {
				t.Errorf("IsFunc() = %v, want %v", got, tt.wantFunc)
			}
			if got := tt.template.IsMalformed(); got != tt.wantMalformed {
				t.Errorf("IsMalformed() = %v, want %v", got, tt.wantMalformed)
			}
		})
	}
}
