package store

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is an on-disk document encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// validFormats is the set of recognized format names.
var validFormats = map[Format]bool{
	FormatJSON:    true,
	FormatYAML:    true,
	FormatMsgpack: true,
}

// IsValidFormat returns true if name is a recognized format.
func IsValidFormat(name string) bool {
	return validFormats[Format(name)]
}

// FormatFromPath picks the format from the file extension:
// .json, .yaml/.yml or .msgpack.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("cannot infer document format from %q (want .json, .yaml, .yml or .msgpack)", path)
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(v)
	}
	return fmt.Errorf("unknown format %q", f)
}

// decode rejects unknown fields in JSON and YAML so that typos in
// hand-written documents surface as errors.
func decode(r io.Reader, f Format, v any) error {
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		return dec.Decode(v)
	case FormatMsgpack:
		return msgpack.NewDecoder(r).Decode(v)
	}
	return fmt.Errorf("unknown format %q", f)
}
