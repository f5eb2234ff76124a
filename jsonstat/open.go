package jsonstat

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-jsonstat/internal/filter"
)

// Format identifies the text encoding of a document.
type Format uint8

const (
	// FormatAuto picks JSON when the document starts with '{' and YAML
	// otherwise.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// Parse builds a Dataset from a JSON document. Compressed input (gzip,
// zstd, lz4, s2) is decompressed first. Numbers are kept exact until
// conversion.
func Parse(data []byte, opts ...Option) (*Dataset, error) {
	return parse(data, FormatJSON, applyOptions(opts))
}

// ParseYAML builds a Dataset from a YAML document with the same structure
// as the JSON form.
func ParseYAML(data []byte, opts ...Option) (*Dataset, error) {
	return parse(data, FormatYAML, applyOptions(opts))
}

// Read builds a Dataset from r, detecting compression and format from the
// content.
func Read(r io.Reader, opts ...Option) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return parse(data, FormatAuto, applyOptions(opts))
}

// Open reads a dataset file. A compression suffix (".gz", ".zst", ".lz4",
// ".s2", ".sz") must match the content. The format is taken from the
// remaining name: ".yaml" and ".yml" are YAML, ".json" is JSON and anything
// else is detected from the content.
func Open(path string, opts ...Option) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	o := applyOptions(opts)
	id, base := filter.FromExtension(path)
	pipeline, err := filter.NewPipeline(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !pipeline.Empty() {
		if data, err = pipeline.Decode(data); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrMalformedDataset, err)
		}
		o.logger.Debug("decompressed dataset", "file", path, "filters", pipeline.Len(), "bytes", len(data))
	}

	ds, err := parse(data, formatOf(base), o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

func formatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

func parse(data []byte, format Format, o *options) (*Dataset, error) {
	data, applied, err := filter.Sniff(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}
	if len(applied) > 0 {
		o.logger.Debug("decompressed dataset", "filters", applied, "bytes", len(data))
	}

	if format == FormatAuto {
		format = sniffFormat(data)
	}

	var tree map[string]any
	switch format {
	case FormatYAML:
		tree, err = decodeYAML(data)
	default:
		tree, err = decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}

	return newDataset(tree, o)
}

func sniffFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: decoding JSON: %w", ErrMalformedDataset, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: decoding JSON: trailing data after document", ErrMalformedDataset)
	}
	return tree, nil
}

func decodeYAML(data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding YAML: %w", ErrMalformedDataset, err)
	}
	if doc == nil {
		return nil, nil
	}
	tree, ok := normalizeYAML(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: decoding YAML: document is not a mapping", ErrMalformedDataset)
	}
	return tree, nil
}

// normalizeYAML converts mappings with non-string keys, such as status
// offsets written as bare integers, into map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeYAML(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalizeYAML(e)
		}
		return t
	default:
		return v
	}
}
