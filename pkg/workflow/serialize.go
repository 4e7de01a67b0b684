package workflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument serializes a Document back into the textual schema.
// Fields the engine never interpreted (inline extras, raw node data) are
// written out unchanged, so parse → serialize round-trips losslessly.
func MarshalDocument(d *Document) ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}

// WriteDocumentFile writes a Document as YAML to path with 0644 permissions.
func WriteDocumentFile(d *Document, path string) error {
	data, err := MarshalDocument(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDocumentFile reads path and strictly parses it into a Document.
// The file content is not repaired first; run it through the repair
// normalizer before calling this if the text may be damaged.
func ReadDocumentFile(path string) (*Document, []ParseError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, perrs := Parse(string(data))
	return doc, perrs, nil
}
