package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/metadata"
)

// Format is the encoding of a model document.
type Format string

// Document formats.
const (
	YAML    Format = "yaml"
	JSON    Format = "json"
	Msgpack Format = "msgpack"
)

// FormatOf returns the format of the document at path, by extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".msgpack", ".mp":
		return Msgpack, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q", ext)
	}
}

// Parse decodes a document. Unknown fields are rejected.
func Parse(data []byte, f Format) (*Document, error) {
	d := &Document{}
	switch f {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(d); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(d); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case Msgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		dec.DisallowUnknownFields(true)
		dec.UseLooseInterfaceDecoding(true)
		if err := dec.Decode(d); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", f)
	}
	return d, nil
}

// Encode encodes a document.
func Encode(d *Document, f Format) ([]byte, error) {
	switch f {
	case YAML:
		return yaml.Marshal(d)
	case JSON:
		return json.MarshalIndent(d, "", "  ")
	case Msgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(d); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported document format %q", f)
	}
}

// Read reads and decodes the document at path.
func Read(path string) (*Document, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, relmap.NewLoadError(path, "", "", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, relmap.NewLoadError(path, "", "", err)
	}
	d, err := Parse(data, f)
	if err != nil {
		return nil, relmap.NewLoadError(path, "", "", err)
	}
	d.path = path
	return d, nil
}

// Load reads the document at path and builds its model.
func Load(path string) (*metadata.Model, error) {
	d, err := Read(path)
	if err != nil {
		return nil, err
	}
	return d.Build()
}
