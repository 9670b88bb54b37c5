// Package schemaparser reads GraphQL SDL, optionally sliced out of a larger base
// schema, and turns it into a validated gqlparser document.
package schemaparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

var (
	ErrSchemaNotFound = errors.New("schema not found")
	ErrSchemaSyntax   = errors.New("schema syntax error")
)

// SyntaxError wraps the gqlparser error so that both errors.Is(err, ErrSchemaSyntax)
// and errors.As(err, **gqlerror.Error) work.
type SyntaxError struct {
	Source string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s in %s: %v", ErrSchemaSyntax, e.Source, e.Err)
}

func (e *SyntaxError) Unwrap() []error {
	return []error{ErrSchemaSyntax, e.Err}
}

// Document is a parsed and validated schema.
type Document struct {
	Source *ast.Source
	// Doc holds only the definitions written by the schema author, in declaration order.
	Doc    *ast.SchemaDocument
	Schema *ast.Schema
}

// LoadFile loads a whole schema file.
func LoadFile(path string) (*Document, error) {
	content, err := readSchemaFile(path)
	if err != nil {
		return nil, err
	}

	return Load(filepath.Base(path), content)
}

// LoadSliced loads the given line ranges of a base schema file as one schema.
func LoadSliced(basePath, lineRanges string) (*Document, error) {
	content, err := readSchemaFile(basePath)
	if err != nil {
		return nil, err
	}

	sliced, err := ExtractLines(content, lineRanges)
	if err != nil {
		return nil, fmt.Errorf("slice %s: %w", basePath, err)
	}

	return Load(fmt.Sprintf("%s[%s]", filepath.Base(basePath), lineRanges), sliced)
}

// Load parses and validates schema text.
func Load(name, input string) (*Document, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrSchemaNotFound, name)
	}

	source := &ast.Source{Name: name, Input: input}
	doc, err := parser.ParseSchema(source)
	if err != nil {
		return nil, &SyntaxError{Source: name, Err: err}
	}

	d, err := LoadDocument(name, doc)
	if err != nil {
		return nil, err
	}
	d.Source = source
	return d, nil
}

// LoadDocument validates an already parsed document, such as one rebuilt from
// an introspection response.
func LoadDocument(name string, doc *ast.SchemaDocument) (*Document, error) {
	full, err := parser.ParseSchemas(validator.Prelude, directivePrelude(doc))
	if err != nil {
		// the prelude is generated from names that already parsed once
		return nil, fmt.Errorf("directive prelude: %w", err)
	}
	full.Merge(doc)

	schema, err := validator.ValidateSchemaDocument(full)
	if err != nil {
		return nil, &SyntaxError{Source: name, Err: err}
	}

	return &Document{
		Doc:    doc,
		Schema: schema,
	}, nil
}

func readSchemaFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no schema path given", ErrSchemaNotFound)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
		}
		return "", fmt.Errorf("unable to read schema: %w", err)
	}

	return string(content), nil
}
