// Package tickets reads batches of incoming tickets from JSON or YAML files.
//
// Both formats hold a single "tickets" list:
//
//	{ "tickets": [ { "id": "T1", "content": "...", "area": "Finanzas" } ] }
//
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON
// (comments and trailing commas allowed).
package tickets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
)

// Ensure FileReader implements the interface.
var _ driven.TicketSource = (*FileReader)(nil)

type batch struct {
	Tickets []domain.Ticket `json:"tickets" yaml:"tickets"`
}

// FileReader reads ticket batches from the filesystem.
type FileReader struct{}

// NewFileReader creates a ticket batch reader.
func NewFileReader() *FileReader {
	return &FileReader{}
}

// ReadTickets parses the batch file at path. Tickets keep their file order.
func (r *FileReader) ReadTickets(_ context.Context, path string) ([]domain.Ticket, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a batch. ext selects the format (".yaml", ".yml" or JSON otherwise).
func Parse(data []byte, ext string) ([]domain.Ticket, error) {
	var b batch
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("%w: parsing YAML tickets: %v", domain.ErrInvalidInput, err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &b); err != nil {
			return nil, fmt.Errorf("%w: parsing JSON tickets: %v", domain.ErrInvalidInput, err)
		}
	}
	return b.Tickets, nil
}
