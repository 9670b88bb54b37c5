package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/token"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/Yamashou/gqlir/schemaparser"
)

const SupportedCodegenVersion = "0.1"

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrConfigNotFound       = errors.New("config file not found")
)

// DefaultConfigNames are the file names FindConfigFile looks for, in order.
var DefaultConfigNames = []string{"gqlir.yml", ".gqlir.yml", "gqlir.yaml", ".gqlir.yaml"}

// Config represents the gqlir.yml config file.
type Config struct {
	Package        string            `yaml:"package"`
	RuntimePackage string            `yaml:"runtime_package"`
	CodegenVersion string            `yaml:"codegen_version"`
	Scalars        map[string]string `yaml:"scalars,omitempty"`
	TemplatesDir   string            `yaml:"templates_dir,omitempty"`
	FlatOutput     bool              `yaml:"flat_output,omitempty"`
	Stdout         bool              `yaml:"stdout,omitempty"`
	Schema         string            `yaml:"schema,omitempty"`
	SchemaLines    string            `yaml:"schema_lines,omitempty"`
	BaseSchema     string            `yaml:"base_schema,omitempty"`
	Endpoint       *EndpointConfig   `yaml:"endpoint,omitempty"`
	Output         string            `yaml:"output,omitempty"`

	// Dir is the directory of the config file. Relative paths are resolved against it.
	Dir string `yaml:"-"`
}

// EndpointConfig are the allowed options for the 'endpoint' config.
type EndpointConfig struct {
	URL     string      `yaml:"url"`
	Headers http.Header `yaml:"headers,omitempty"`
	// Client is used for the introspection request; http.DefaultClient when nil.
	Client *http.Client `yaml:"-"`
}

// FindConfigFile returns the first of names that exists in dir.
func FindConfigFile(dir string, names []string) (string, error) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: none of %v in %s", ErrConfigNotFound, names, dir)
}

// Load loads and validates a config file.
func Load(configFilename string) (*Config, error) {
	configContent, err := os.ReadFile(configFilename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	var c Config

	yamlDecoder := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(configContent)))), yaml.DisallowUnknownField())
	if err := yamlDecoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	c.Dir = filepath.Dir(configFilename)

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	return &c, nil
}

func (c *Config) validate() error {
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package name %q is not a valid Go identifier", c.Package)
	}

	if c.RuntimePackage == "" {
		return errors.New("'runtime_package' is required")
	}

	if c.CodegenVersion != SupportedCodegenVersion {
		return fmt.Errorf("unsupported codegen version %q, expected %q", c.CodegenVersion, SupportedCodegenVersion)
	}

	if c.Endpoint != nil && (c.Schema != "" || c.BaseSchema != "") {
		return errors.New("'schema' and 'endpoint' both specified. Use schema to load from a local file, use endpoint to load from a remote server (using introspection)")
	}

	if c.Endpoint != nil && c.Endpoint.URL == "" {
		return errors.New("'endpoint' requires 'url'")
	}

	if c.SchemaLines != "" {
		if c.BaseSchema == "" {
			return errors.New("'schema_lines' is set, 'base_schema' must be set")
		}
		if _, err := schemaparser.ParseLineRanges(c.SchemaLines); err != nil {
			return fmt.Errorf("schema_lines: %w", err)
		}
	} else if c.BaseSchema != "" {
		return errors.New("'base_schema' is set, 'schema_lines' must be set")
	}

	if c.Schema == "" && c.BaseSchema == "" && c.Endpoint == nil {
		c.Schema = "schema.graphql"
	}

	return nil
}

// LoadSchema loads the schema from whichever source the config names.
func (c *Config) LoadSchema(ctx context.Context) (*schemaparser.Document, error) {
	switch {
	case c.Endpoint != nil:
		httpClient := c.Endpoint.Client
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		doc, err := introspectionSchema(ctx, httpClient, c.Endpoint.URL, c.Endpoint.Headers)
		if err != nil {
			return nil, fmt.Errorf("introspect schema failed: %w", err)
		}
		return doc, nil
	case c.SchemaLines != "":
		doc, err := schemaparser.LoadSliced(c.Path(c.BaseSchema), c.SchemaLines)
		if err != nil {
			return nil, fmt.Errorf("load sliced schema failed: %w", err)
		}
		return doc, nil
	default:
		doc, err := schemaparser.LoadFile(c.Path(c.Schema))
		if err != nil {
			return nil, fmt.Errorf("load local schema failed: %w", err)
		}
		return doc, nil
	}
}

// Path resolves p against the config directory.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// OutputDir is where generated files go. It defaults to the config directory.
func (c *Config) OutputDir() string {
	if c.Output == "" {
		return c.Dir
	}
	return c.Path(c.Output)
}
