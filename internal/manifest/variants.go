package manifest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Variant names.
const (
	// VariantLocal builds from the working tree.
	VariantLocal = "local"

	// VariantFlathub builds from the upstream repository pinned to a commit.
	VariantFlathub = "flathub"
)

// Defaults for the carmenta application.
const (
	DefaultAppID   = "io.github.szymonwilczek.carmenta"
	DefaultCommand = "carmenta"
	DefaultRepoURL = "https://github.com/szymonwilczek/carmenta.git"

	// DefaultSourcesFile is the file written by flatpak-cargo-generator.
	DefaultSourcesFile = "cargo-sources.json"
)

var (
	// ErrUnknownVariant indicates a variant name that is not registered.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrMissingRevision indicates a variant that pins a commit was built without one.
	ErrMissingRevision = errors.New("variant requires a revision")
)

// DefaultFinishArgs are the sandbox permissions shared by all variants.
var DefaultFinishArgs = []string{
	"--share=ipc",
	"--socket=fallback-x11",
	"--socket=wayland",
	"--device=dri",
	"--talk-name=org.gnome.Shell",
}

// Params customizes a variant template. Zero values use the defaults above.
type Params struct {
	AppID      string
	Command    string
	RepoURL    string
	Revision   string
	FinishArgs []string
}

func (p Params) withDefaults() Params {
	if p.AppID == "" {
		p.AppID = DefaultAppID
	}
	if p.Command == "" {
		p.Command = DefaultCommand
	}
	if p.RepoURL == "" {
		p.RepoURL = DefaultRepoURL
	}
	if len(p.FinishArgs) == 0 {
		p.FinishArgs = DefaultFinishArgs
	}
	return p
}

// Variant is a named manifest template.
type Variant struct {
	// Name identifies the variant on the command line.
	Name string

	// Description is shown by `flatmerge variants`.
	Description string

	// NeedsRevision is true when the template pins a git commit.
	NeedsRevision bool

	build func(p Params) (*Manifest, error)
}

// Build returns a fresh template for the variant.
func (v Variant) Build(p Params) (*Manifest, error) {
	p = p.withDefaults()
	if v.NeedsRevision && p.Revision == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRevision, v.Name)
	}
	return v.build(p)
}

var variants = map[string]Variant{
	VariantLocal: {
		Name:        VariantLocal,
		Description: "Build from the local working tree (GNOME 47)",
		build:       buildLocal,
	},
	VariantFlathub: {
		Name:          VariantFlathub,
		Description:   "Build from the upstream git repository at the current commit (GNOME 49)",
		NeedsRevision: true,
		build:         buildFlathub,
	},
}

// LookupVariant returns the variant registered under name.
func LookupVariant(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %s (available: %s)", ErrUnknownVariant, name, strings.Join(VariantNames(), ", "))
	}
	return v, nil
}

// Variants returns all registered variants sorted by name.
func Variants() []Variant {
	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// VariantNames returns the sorted variant names.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for _, v := range Variants() {
		names = append(names, v.Name)
	}
	return names
}

func buildLocal(p Params) (*Manifest, error) {
	src, err := NewSource(DirSource{Type: SourceTypeDir, Path: "."})
	if err != nil {
		return nil, err
	}

	m := baseManifest(p, "47")
	m.Modules[0].Sources = []Source{src}
	return m, nil
}

func buildFlathub(p Params) (*Manifest, error) {
	src, err := NewSource(GitSource{Type: SourceTypeGit, URL: p.RepoURL, Commit: p.Revision})
	if err != nil {
		return nil, err
	}

	m := baseManifest(p, "49")
	m.SDKExtensions = []string{"org.freedesktop.Sdk.Extension.rust-stable"}
	m.BuildOptions.AppendPath = "/usr/lib/sdk/rust-stable/bin"
	m.Modules[0].Sources = []Source{src}
	return m, nil
}

// baseManifest holds the fields every variant shares.
func baseManifest(p Params, runtimeVersion string) *Manifest {
	return &Manifest{
		AppID:          p.AppID,
		Runtime:        "org.gnome.Platform",
		RuntimeVersion: runtimeVersion,
		SDK:            "org.gnome.Sdk",
		Command:        p.Command,
		FinishArgs:     cloneStrings(p.FinishArgs),
		BuildOptions: BuildOptions{
			Env: map[string]string{
				"CARGO_HOME": "/run/build/" + p.Command + "/cargo",
			},
		},
		Modules: []Module{
			{
				Name:          p.Command,
				BuildSystem:   "simple",
				BuildCommands: buildCommands(p.AppID, p.Command),
			},
		},
	}
}

func buildCommands(appID, command string) []string {
	return []string{
		"cargo build --release --offline",
		fmt.Sprintf("install -D target/release/%s /app/bin/%s", command, command),
		fmt.Sprintf("install -D data/%s.desktop /app/share/applications/%s.desktop", appID, appID),
		fmt.Sprintf("install -D data/%s.svg /app/share/icons/hicolor/scalable/apps/%s.svg", appID, appID),
		fmt.Sprintf("install -D data/%s.metainfo.xml /app/share/metainfo/%s.metainfo.xml", appID, appID),
	}
}
