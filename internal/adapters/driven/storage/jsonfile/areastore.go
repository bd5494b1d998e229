package jsonfile

import (
	"context"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
)

// Ensure AreaStore implements the interface.
var _ driven.AreaRepository = (*AreaStore)(nil)

type areaDocument struct {
	Areas []areaRecord `json:"areas"`
}

type areaRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	ModifiedAt  string `json:"modified_at,omitempty"`
}

// AreaStore keeps the area list in a JSON file.
type AreaStore struct {
	path string
}

// NewAreaStore creates an area repository backed by the file at path.
func NewAreaStore(path string) *AreaStore {
	return &AreaStore{path: path}
}

// Path returns the backing file path.
func (s *AreaStore) Path() string {
	return s.path
}

// Load reads the area list.
func (s *AreaStore) Load(_ context.Context) ([]domain.Area, error) {
	var doc areaDocument
	if err := readDocument(s.path, &doc); err != nil {
		return nil, err
	}

	areas := make([]domain.Area, 0, len(doc.Areas))
	for _, a := range doc.Areas {
		areas = append(areas, domain.Area{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			CreatedAt:   parseStamp(a.CreatedAt),
			ModifiedAt:  parseStamp(a.ModifiedAt),
		})
	}
	return areas, nil
}

// Save writes the area list, replacing the file.
func (s *AreaStore) Save(_ context.Context, areas []domain.Area) error {
	doc := areaDocument{Areas: make([]areaRecord, 0, len(areas))}
	for _, a := range areas {
		doc.Areas = append(doc.Areas, areaRecord{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			CreatedAt:   formatStamp(a.CreatedAt),
			ModifiedAt:  formatStamp(a.ModifiedAt),
		})
	}
	return writeDocument(s.path, doc)
}
