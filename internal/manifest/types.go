package manifest

import (
	"encoding/json"
	"fmt"
)

// Source type constants for the static entries this package builds itself.
const (
	// SourceTypeDir points flatpak-builder at a local directory.
	SourceTypeDir = "dir"

	// SourceTypeGit points flatpak-builder at a git repository and commit.
	SourceTypeGit = "git"
)

// Source is a single entry of a module's sources list. It is kept as raw
// JSON because its shape is owned by whoever generated it.
type Source = json.RawMessage

// Manifest is a flatpak application manifest.
// Field order matches the order flatpak manifests are usually written in.
type Manifest struct {
	// AppID is the reverse-DNS application identifier.
	AppID string `json:"app-id"`

	// Runtime is the runtime name (e.g., "org.gnome.Platform").
	Runtime string `json:"runtime"`

	// RuntimeVersion is the runtime branch (e.g., "47").
	RuntimeVersion string `json:"runtime-version"`

	// SDK is the SDK name matching Runtime.
	SDK string `json:"sdk"`

	// SDKExtensions lists extra SDK extensions needed at build time.
	SDKExtensions []string `json:"sdk-extensions,omitempty"`

	// Command is the binary launched by `flatpak run`.
	Command string `json:"command"`

	// FinishArgs are the sandbox permissions.
	FinishArgs []string `json:"finish-args"`

	// BuildOptions apply to every module.
	BuildOptions BuildOptions `json:"build-options"`

	// Modules are built in order. The merge target is always the first one.
	Modules []Module `json:"modules"`
}

// BuildOptions holds manifest-wide build settings.
type BuildOptions struct {
	// AppendPath is appended to PATH during the build.
	AppendPath string `json:"append-path,omitempty"`

	// Env sets environment variables during the build.
	Env map[string]string `json:"env"`
}

// Module is a single build module.
type Module struct {
	Name          string   `json:"name"`
	BuildSystem   string   `json:"buildsystem"`
	BuildCommands []string `json:"build-commands"`
	Sources       []Source `json:"sources"`
}

// DirSource is a local directory source.
type DirSource struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// GitSource is a git repository pinned to a commit.
type GitSource struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Commit string `json:"commit"`
}

// NewSource encodes a typed source descriptor into a Source.
func NewSource(v any) (Source, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode source: %w", err)
	}
	return Source(data), nil
}

// Clone returns a deep copy of the manifest.
// Source bytes are copied so appending to the clone never aliases the original.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}

	out := *m
	out.SDKExtensions = cloneStrings(m.SDKExtensions)
	out.FinishArgs = cloneStrings(m.FinishArgs)

	if m.BuildOptions.Env != nil {
		out.BuildOptions.Env = make(map[string]string, len(m.BuildOptions.Env))
		for k, v := range m.BuildOptions.Env {
			out.BuildOptions.Env[k] = v
		}
	}

	if m.Modules != nil {
		out.Modules = make([]Module, len(m.Modules))
		for i, mod := range m.Modules {
			out.Modules[i] = Module{
				Name:          mod.Name,
				BuildSystem:   mod.BuildSystem,
				BuildCommands: cloneStrings(mod.BuildCommands),
				Sources:       cloneSources(mod.Sources),
			}
		}
	}

	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	result := make([]string, len(s))
	copy(result, s)
	return result
}

func cloneSources(s []Source) []Source {
	if s == nil {
		return nil
	}
	result := make([]Source, len(s))
	for i, src := range s {
		result[i] = append(Source(nil), src...)
	}
	return result
}
