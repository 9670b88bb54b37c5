// Package irdump writes the resolved IR as YAML. The output is what an
// external renderer consumes to produce target-language source.
package irdump

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ettle/strcase"
	"github.com/goccy/go-yaml"

	"github.com/Yamashou/gqlir/codegen"
	"github.com/Yamashou/gqlir/config"
)

const fileSuffix = ".ir.yml"

// packageFile holds the header in per-type mode. No snake-cased type name
// starts with an underscore, so it cannot collide with a type file.
const packageFile = "_package" + fileSuffix

// Header is the package-level part of the IR: everything a renderer needs
// before it looks at individual types.
type Header struct {
	Package         string          `yaml:"package"`
	RuntimePackage  string          `yaml:"runtimePackage"`
	CodegenVersion  string          `yaml:"codegenVersion"`
	TemplatesDir    string          `yaml:"templatesDir,omitempty"`
	NeedsComputable bool            `yaml:"needsComputable,omitempty"`
	NeedsExpandable bool            `yaml:"needsExpandable,omitempty"`
	Imports         []string        `yaml:"imports,omitempty"`
	Enums           []*codegen.Enum `yaml:"enums,omitempty"`
	// TypeFiles maps type names to their files in per-type mode.
	TypeFiles map[string]string `yaml:"typeFiles,omitempty"`
}

// Document is the flat form: the header and every type in one file.
type Document struct {
	Header `yaml:",inline"`
	Types  []*codegen.Type `yaml:"types"`
}

type file struct {
	path    string
	content []byte
}

type Plugin struct {
	cfg    *config.Config
	result *codegen.Result
	w      io.Writer
	rename func(oldpath, newpath string) error
}

// New returns the plugin. w receives the output when cfg.Stdout is set.
func New(cfg *config.Config, result *codegen.Result, w io.Writer) *Plugin {
	return &Plugin{
		cfg:    cfg,
		result: result,
		w:      w,
		rename: os.Rename,
	}
}

func (p *Plugin) Name() string {
	return "irdump"
}

func (p *Plugin) Generate() error {
	files, err := p.render()
	if err != nil {
		return err
	}

	if p.cfg.Stdout {
		for i, f := range files {
			if i > 0 {
				if _, err := io.WriteString(p.w, "---\n"); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			if _, err := p.w.Write(f.content); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}

	if err := p.writeFiles(files); err != nil {
		return err
	}
	if !p.cfg.FlatOutput {
		return removeStale(filepath.Join(p.cfg.OutputDir(), p.cfg.Package), files)
	}
	return nil
}

func (p *Plugin) header() Header {
	return Header{
		Package:         p.cfg.Package,
		RuntimePackage:  p.cfg.RuntimePackage,
		CodegenVersion:  p.cfg.CodegenVersion,
		TemplatesDir:    p.cfg.TemplatesDir,
		NeedsComputable: p.result.NeedsComputable,
		NeedsExpandable: p.result.NeedsExpandable,
		Imports:         p.result.Imports,
		Enums:           p.result.Enums,
	}
}

// render lays out the output files in order. In per-type mode the header comes first.
func (p *Plugin) render() ([]file, error) {
	if p.cfg.FlatOutput {
		content, err := yaml.Marshal(&Document{Header: p.header(), Types: p.result.Types})
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", p.cfg.Package, err)
		}
		return []file{{path: filepath.Join(p.cfg.OutputDir(), p.cfg.Package+fileSuffix), content: content}}, nil
	}

	dir := filepath.Join(p.cfg.OutputDir(), p.cfg.Package)
	header := p.header()
	header.TypeFiles = make(map[string]string, len(p.result.Types))

	owners := map[string]string{}
	files := []file{{path: filepath.Join(dir, packageFile)}}
	for _, t := range p.result.Types {
		name := strcase.ToSnake(t.Name) + fileSuffix
		if other, ok := owners[name]; ok {
			return nil, fmt.Errorf("types %s and %s both map to %s", other, t.Name, name)
		}
		owners[name] = t.Name
		header.TypeFiles[t.Name] = name

		content, err := yaml.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", t.Name, err)
		}
		files = append(files, file{path: filepath.Join(dir, name), content: content})
	}

	content, err := yaml.Marshal(&header)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", p.cfg.Package, err)
	}
	files[0].content = content

	return files, nil
}

// writeFiles writes every file to a temporary sibling first and moves them
// into place only once all writes succeeded. A failing move restores the
// files replaced so far. A crash in the middle of the moves is not covered
// and can leave a mix of old and new files.
func (p *Plugin) writeFiles(files []file) (err error) {
	temps := make([]string, 0, len(files))
	defer func() {
		if err != nil {
			for _, tmp := range temps {
				_ = os.Remove(tmp)
			}
		}
	}()

	for _, f := range files {
		dir := filepath.Dir(f.path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", f.path, err)
		}
		temps = append(temps, tmp.Name())

		if _, err := io.Copy(tmp, bytes.NewReader(f.content)); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
	}

	return p.commit(files, temps)
}

// replaced is a target moved into place; backup holds the previous file and
// is empty when the target did not exist.
type replaced struct {
	target string
	backup string
}

func (p *Plugin) commit(files []file, temps []string) error {
	done := make([]replaced, 0, len(files))
	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			if done[i].backup == "" {
				_ = os.Remove(done[i].target)
				continue
			}
			_ = os.Rename(done[i].backup, done[i].target)
		}
	}

	for i, f := range files {
		r := replaced{target: f.path}
		if _, err := os.Lstat(f.path); err == nil {
			r.backup = temps[i] + ".bak"
			if err := p.rename(f.path, r.backup); err != nil {
				rollback()
				return fmt.Errorf("failed to write %s: %w", f.path, err)
			}
		}
		if err := p.rename(temps[i], f.path); err != nil {
			if r.backup != "" {
				_ = os.Rename(r.backup, f.path)
			}
			rollback()
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		done = append(done, r)
	}

	for _, r := range done {
		if r.backup != "" {
			_ = os.Remove(r.backup)
		}
	}
	return nil
}

// removeStale deletes IR files in dir left behind by types that no longer exist.
func removeStale(dir string, written []file) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	keep := make([]string, 0, len(written))
	for _, f := range written {
		keep = append(keep, filepath.Base(f.path))
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileSuffix) || slices.Contains(keep, name) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("failed to remove stale %s: %w", name, err)
		}
	}

	return nil
}
