package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"gridpick/internal/domain"
)

// ErrUnsupportedFormat is returned for files that are not YAML, TOML or JSON
var ErrUnsupportedFormat = errors.New("unsupported resource file format")

// Format of a resource file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFor picks a format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%s", path)
}

// document is the mapping form of a resource file
type document struct {
	Resources []map[string]any `yaml:"resources" toml:"resources" json:"resources"`
}

// Load reads resources from path
func Load(ctx context.Context, path string) ([]domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open resources %s", path)
	}
	defer f.Close()

	resources, err := Decode(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "decode resources %s", path)
	}
	return resources, nil
}

// Decode reads resources in the given format. YAML and JSON accept either a
// top level list or a mapping with a "resources" key; TOML needs the key.
func Decode(r io.Reader, format Format) ([]domain.Resource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var rows []map[string]any
	switch format {
	case FormatYAML:
		rows, err = decodeYAML(data)
	case FormatJSON:
		rows, err = decodeJSON(data)
	case FormatTOML:
		var doc document
		err = toml.Unmarshal(data, &doc)
		rows = doc.Resources
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if err != nil {
		return nil, err
	}

	out := make([]domain.Resource, len(rows))
	for i, row := range rows {
		out[i] = domain.Resource(row)
	}
	return out, nil
}

func decodeYAML(data []byte) ([]map[string]any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	if node.Content[0].Kind == yaml.SequenceNode {
		var rows []map[string]any
		err := node.Decode(&rows)
		return rows, err
	}
	var doc document
	err := node.Decode(&doc)
	return doc.Resources, err
}

func decodeJSON(data []byte) ([]map[string]any, error) {
	if data[0] == '[' {
		var rows []map[string]any
		err := json.Unmarshal(data, &rows)
		return rows, err
	}
	var doc document
	err := json.Unmarshal(data, &doc)
	return doc.Resources, err
}

var statuses = []string{"active", "draft", "archived"}

// Generate builds n demo resources with random ids
func Generate(n int) []domain.Resource {
	out := make([]domain.Resource, n)
	for i := range out {
		out[i] = domain.Resource{
			"id":     uuid.NewString(),
			"title":  fmt.Sprintf("Resource %d", i+1),
			"status": statuses[i%len(statuses)],
			"rank":   i + 1,
		}
	}
	return out
}

// Columns lists the fields present across resources: idField first, the
// rest in first-seen order with keys of each row sorted.
func Columns(resources []domain.Resource, idField string) []string {
	seen := map[string]bool{idField: true}
	cols := []string{idField}
	for _, r := range resources {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}
