package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/evidentia/internal/model"
)

// DecodeDocument parses an extraction document and checks its required keys
func DecodeDocument(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := doc.CheckRequired(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeAudit parses a consistency audit. Empty input means no audit.
func DecodeAudit(data []byte) (*model.ConsistencyAudit, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var audit model.ConsistencyAudit
	if err := json.Unmarshal(data, &audit); err != nil {
		return nil, fmt.Errorf("decode consistency audit: %w", err)
	}
	return &audit, nil
}

// readInputs reads the document and, when a path is given, the audit
func readInputs(inputPath, auditPath string) ([]byte, []byte, error) {
	docData, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	if auditPath == "" {
		return docData, nil, nil
	}
	auditData, err := os.ReadFile(auditPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read consistency audit: %w", err)
	}
	return docData, auditData, nil
}
