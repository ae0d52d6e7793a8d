package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/barchart/pkg/chart"
	errs "github.com/matzehuels/barchart/pkg/errors"
)

// WriteDefinition encodes def in format and writes it to w. The output can
// be read back with [ReadDefinition].
func WriteDefinition(w io.Writer, def *Definition, format Format) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(def); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(def); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unsupported definition format %q", format)
	}
	return nil
}

// WriteDefinitionFile writes def to path in the format given by its
// extension.
func WriteDefinitionFile(def *Definition, path string) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDefinition(f, def, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteLayoutJSON writes the computed geometry of l as indented JSON.
func WriteLayoutJSON(w io.Writer, l *chart.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
