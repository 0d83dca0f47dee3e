package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cameronsjo/flatmerge/internal/fileutil"
)

var (
	// ErrNotAList indicates the sources file holds valid JSON that is not an array.
	ErrNotAList = errors.New("sources file does not contain a JSON array")

	// ErrNoModules indicates the template has no module to append sources to.
	ErrNoModules = errors.New("manifest has no modules")
)

// Result describes a completed merge.
type Result struct {
	// Manifest is the merged manifest.
	Manifest *Manifest

	// OutputPath is where the manifest was written. Empty for in-memory merges.
	OutputPath string

	// Appended is the number of sources taken from the sources file.
	Appended int

	// Total is the final length of the first module's sources.
	Total int
}

// LoadSources reads a JSON array of source descriptors from path.
// A missing file returns an error wrapping fs.ErrNotExist.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	return ParseSources(data)
}

// ParseSources decodes a JSON array of source descriptors.
// Elements are kept verbatim and in order.
func ParseSources(data []byte) ([]Source, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse sources: %w", err)
	}

	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, ErrNotAList
	}

	var sources []Source
	if err := json.Unmarshal(raw, &sources); err != nil {
		return nil, fmt.Errorf("parse sources: %w", err)
	}
	if sources == nil {
		sources = []Source{}
	}
	return sources, nil
}

// Merge appends sources to the first module of tmpl and returns the result.
// tmpl is not modified.
func Merge(tmpl *Manifest, sources []Source) (*Manifest, error) {
	if tmpl == nil || len(tmpl.Modules) == 0 {
		return nil, ErrNoModules
	}

	result := tmpl.Clone()
	target := &result.Modules[0]

	merged := make([]Source, 0, len(target.Sources)+len(sources))
	merged = append(merged, target.Sources...)
	merged = append(merged, cloneSources(sources)...)
	target.Sources = merged

	return result, nil
}

// Encode renders the manifest as indented JSON with a trailing newline.
func Encode(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes the manifest and atomically replaces the file at path.
func Write(path string, m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// MergeFile loads sources from sourcesPath, merges them into tmpl and writes
// the result to outputPath.
func MergeFile(tmpl *Manifest, sourcesPath, outputPath string) (*Result, error) {
	result, err := MergeSourcesFile(tmpl, sourcesPath)
	if err != nil {
		return nil, err
	}

	if err := Write(outputPath, result.Manifest); err != nil {
		return nil, err
	}

	result.OutputPath = outputPath
	return result, nil
}

// MergeSourcesFile loads sources from sourcesPath and merges them into tmpl
// without writing anything.
func MergeSourcesFile(tmpl *Manifest, sourcesPath string) (*Result, error) {
	sources, err := LoadSources(sourcesPath)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(tmpl, sources)
	if err != nil {
		return nil, err
	}

	return &Result{
		Manifest: merged,
		Appended: len(sources),
		Total:    len(merged.Modules[0].Sources),
	}, nil
}
