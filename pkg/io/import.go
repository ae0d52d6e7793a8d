package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/barchart/pkg/errors"
)

// Format is a definition file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported definition file %q (want .toml or .json)", path)
}

// ReadDefinition decodes a chart definition from r and validates it.
//
// Decoding starts from [NewDefinition], so keys absent from the input keep
// their defaults. Unknown keys are rejected: a misspelt "gap_fration" would
// otherwise be silently ignored.
//
// ReadDefinition does not close r.
func ReadDefinition(r io.Reader, format Format) (*Definition, error) {
	def := NewDefinition()
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(def)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(def); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode json")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported definition format %q", format)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// ReadDefinitionFile reads the definition at path, choosing the format from
// its extension.
func ReadDefinitionFile(path string) (*Definition, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "definition %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	def, err := ReadDefinition(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}
