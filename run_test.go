package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Yamashou/gqlir/config"
	"github.com/Yamashou/gqlir/schemaparser"
)

// copySchema copies a testdata schema dir so generated files stay out of testdata.
func copySchema(t *testing.T, name string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.CopyFS(dir, os.DirFS(filepath.Join("testdata", "schema", name))); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRun(t *testing.T) {
	t.Parallel()

	type want struct {
		files  []string
		stdout []string
		stderr []string
	}

	tests := []struct {
		name   string
		schema string
		opts   options
		want   want
	}{
		{
			name:   "smoothiesのIRを1ファイルに出力する",
			schema: "smoothies",
			opts:   options{verbose: true},
			want: want{
				files:  []string{"gqlir.yml", "schema.graphql", "smoothies.ir.yml"},
				stderr: []string{"schema: 8 types, 2 enums, 5 scalars", "resolved: 7 types", "output: "},
			},
		},
		{
			name:   "userpostは型ごとのファイルに出力する",
			schema: "userpost",
			opts:   options{},
			want: want{
				files: []string{"gqlir.yml", "schema.graphql", "userpost"},
			},
		},
		{
			name:   "-flat overrides the config",
			schema: "userpost",
			opts:   options{flat: true},
			want: want{
				files: []string{"gqlir.yml", "schema.graphql", "userpost.ir.yml"},
			},
		},
		{
			name:   "-stdout writes nothing to disk",
			schema: "userpost",
			opts:   options{stdout: true, flat: true},
			want: want{
				files:  []string{"gqlir.yml", "schema.graphql"},
				stdout: []string{"package: userpost", "name: TextPost", "- time"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.opts.dir = copySchema(t, tt.schema)

			var stdout, stderr bytes.Buffer
			if err := run(t.Context(), tt.opts, &stdout, &stderr); err != nil {
				t.Fatalf("run: %v", err)
			}

			entries, err := os.ReadDir(tt.opts.dir)
			if err != nil {
				t.Fatal(err)
			}
			var files []string
			for _, e := range entries {
				files = append(files, e.Name())
			}
			if diff := cmp.Diff(tt.want.files, files); diff != "" {
				t.Errorf("files diff(-want +got): %s", diff)
			}

			for _, s := range tt.want.stdout {
				if !strings.Contains(stdout.String(), s) {
					t.Errorf("stdout misses %q:\n%s", s, stdout.String())
				}
			}
			for _, s := range tt.want.stderr {
				if !strings.Contains(stderr.String(), s) {
					t.Errorf("stderr misses %q:\n%s", s, stderr.String())
				}
			}
			if !tt.opts.verbose && stderr.Len() != 0 {
				t.Errorf("unexpected stderr output: %s", stderr.String())
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
		schema string
		want   error
	}{
		{
			name: "設定ファイルがない",
			want: config.ErrConfigNotFound,
		},
		{
			name:   "不正な設定",
			config: "package: smoothies\nruntime_package: x\ncodegen_version: \"9\"\n",
			want:   config.ErrInvalidConfiguration,
		},
		{
			name:   "スキーマファイルがない",
			config: "package: smoothies\nruntime_package: x\ncodegen_version: \"0.1\"\n",
			want:   schemaparser.ErrSchemaNotFound,
		},
		{
			name:   "schema syntax error",
			config: "package: smoothies\nruntime_package: x\ncodegen_version: \"0.1\"\n",
			schema: "type Broken {",
			want:   schemaparser.ErrSchemaSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tt.config != "" {
				if err := os.WriteFile(filepath.Join(dir, "gqlir.yml"), []byte(tt.config), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			if tt.schema != "" {
				if err := os.WriteFile(filepath.Join(dir, "schema.graphql"), []byte(tt.schema), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var stdout, stderr bytes.Buffer
			err := run(t.Context(), options{dir: dir}, &stdout, &stderr)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
