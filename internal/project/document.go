package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/AttachEdit/internal/document"
)

// FileExtension is appended to saved documents.
const FileExtension = ".attach"

// SaveDocument writes doc to path as JSON.
func SaveDocument(path string, doc *document.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}
	data, err := json.MarshalIndent(doc.ToFile(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// LoadDocument reads a document saved with SaveDocument.
func LoadDocument(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	var f document.File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	doc, err := document.FromFile(f)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
