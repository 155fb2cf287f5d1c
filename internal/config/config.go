// Package config loads addressbook settings.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// environment variables, then command-line flags (applied by the caller).
// The merged result is checked against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed config.cue
var schemaSource string

// Environment variables that override file settings.
const (
	EnvPath    = "ADDRESSBOOK_PATH"
	EnvBackend = "ADDRESSBOOK_BACKEND"
)

// Backend names.
const (
	BackendAuto   = "auto"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the complete addressbook configuration.
type Config struct {
	Book   Book   `yaml:"book" json:"book"`
	Log    Log    `yaml:"log" json:"log"`
	Prompt string `yaml:"prompt" json:"prompt"`
}

// Book locates the persisted address book.
type Book struct {
	Path    string `yaml:"path" json:"path"`
	Backend string `yaml:"backend" json:"backend"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level" json:"level"`
	File   string `yaml:"file" json:"file"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Book:   Book{Path: "address_book.json", Backend: BackendAuto},
		Log:    Log{Level: "info", Format: "text"},
		Prompt: "> ",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment read through lookup.
//
// Unknown YAML keys are rejected. The result is validated before return.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if lookup != nil {
		cfg.ApplyEnv(lookup)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays YAML onto cfg; keys absent from data keep their values.
func decode(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPath); ok && v != "" {
		c.Book.Path = v
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Book.Backend = strings.ToLower(v)
	}
}

// Validate checks c against the embedded schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("config.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	v := ctx.Encode(c)
	if err := v.Err(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// ResolveBackend returns the concrete backend for c: "auto" picks sqlite for
// .db, .sqlite and .sqlite3 paths and json otherwise.
func (c *Config) ResolveBackend() string {
	return ResolveBackend(c.Book.Backend, c.Book.Path)
}

// ResolveBackend resolves backend for path. See Config.ResolveBackend.
func ResolveBackend(backend, path string) string {
	if backend != "" && backend != BackendAuto {
		return backend
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	default:
		return BackendJSON
	}
}

// formatCUEError reports the first schema violation.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("invalid config: %w", err)
	}
	return fmt.Errorf("invalid config: %s", cueerrors.String(errs[0]))
}
