package pipeline

import (
	"bytes"
	"fmt"

	bio "github.com/matzehuels/barchart/pkg/io"
)

// Parse decodes and validates a chart definition from raw bytes, as posted
// to the API or read from stdin.
func Parse(data []byte, format bio.Format) (*bio.Definition, error) {
	def, err := bio.ReadDefinition(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	return def, nil
}

// ParseFile reads the definition at path.
func ParseFile(path string) (*bio.Definition, error) {
	return bio.ReadDefinitionFile(path)
}
