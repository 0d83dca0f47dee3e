// Package config handles flatmerge.yaml discovery and configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for from the working directory upward.
const FileName = "flatmerge.yaml"

// Environment variables that override file values.
const (
	EnvVariant = "FLATMERGE_VARIANT"
	EnvSources = "FLATMERGE_SOURCES"
	EnvOutput  = "FLATMERGE_OUTPUT"
)

// Defaults used when neither a file, the environment nor a flag sets a value.
const (
	DefaultVariant  = "local"
	DefaultSources  = "cargo-sources.json"
	DefaultOutput   = "{{ .AppID }}.json"
	DefaultResolver = "shell"
)

// ErrNotFound indicates no config file exists between the start directory and /.
var ErrNotFound = errors.New("config file not found")

// Config holds the flatmerge configuration.
type Config struct {
	// Path is the file the config was loaded from. Empty when using defaults.
	Path string `yaml:"-"`

	// Dir is the directory relative paths are resolved against.
	// Empty means the current working directory.
	Dir string `yaml:"-"`

	// Variant selects the manifest template (local, flathub).
	Variant string `yaml:"variant"`

	// Sources is the cargo sources file to append.
	Sources string `yaml:"sources"`

	// Output is a template for the output path, rendered with the manifest
	// parameters and sprig functions.
	Output string `yaml:"output"`

	// Resolver selects how the commit is resolved (shell, go-git).
	Resolver string `yaml:"resolver"`

	// Repository is the checkout whose HEAD is pinned.
	Repository string `yaml:"repository"`

	// RepoURL is the git URL written into pinned sources.
	RepoURL string `yaml:"repo_url"`

	// AppID overrides the application identifier.
	AppID string `yaml:"app_id"`

	// Command overrides the binary name.
	Command string `yaml:"command"`

	// FinishArgs overrides the sandbox permissions.
	FinishArgs []string `yaml:"finish_args"`
}

// Default returns a config with every default applied.
func Default() *Config {
	return &Config{
		Variant:  DefaultVariant,
		Sources:  DefaultSources,
		Output:   DefaultOutput,
		Resolver: DefaultResolver,
	}
}

// FindFile searches upward from start for FileName.
func FindFile(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, FileName)
}

// Load returns the configuration at path, or the discovered config file when
// path is empty. A missing discovered file falls back to defaults. An
// explicitly named file must exist.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	found, err := FindFile(wd)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadFile(found)
}

// LoadFile parses a config file. Unset fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.Path = abs
	cfg.Dir = filepath.Dir(abs)

	return cfg, nil
}

// ApplyEnv overrides values from environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvVariant); v != "" {
		c.Variant = v
	}
	if v := getenv(EnvSources); v != "" {
		c.Sources = v
	}
	if v := getenv(EnvOutput); v != "" {
		c.Output = v
	}
}

// ResolvePath makes p relative to the config directory.
// Absolute paths and configs without a directory are returned unchanged.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// SourcesPath returns the resolved sources file path.
func (c *Config) SourcesPath() string {
	return c.ResolvePath(c.Sources)
}

// RepositoryDir returns the resolved repository directory.
func (c *Config) RepositoryDir() string {
	if c.Repository == "" {
		return c.Dir
	}
	return c.ResolvePath(c.Repository)
}

// OutputPath renders the output template with data and resolves the result.
func (c *Config) OutputPath(data any) (string, error) {
	out, err := RenderOutput(c.Output, data)
	if err != nil {
		return "", err
	}
	return c.ResolvePath(out), nil
}

// RenderOutput renders an output path template with sprig functions.
func RenderOutput(tmpl string, data any) (string, error) {
	if tmpl == "" {
		tmpl = DefaultOutput
	}

	t, err := template.New("output").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse output template %q: %w", tmpl, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render output template %q: %w", tmpl, err)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "", fmt.Errorf("output template %q rendered an empty path", tmpl)
	}
	return out, nil
}
