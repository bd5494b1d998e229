package domain

import "time"

// Area is an organisational area a ticket may be raised from.
// Areas are reference data used to validate tickets at the boundary.
type Area struct {
	// ID is the store-assigned identifier ("A" + zero-padded sequence).
	ID string

	// Name is unique among areas, compared case-insensitively.
	Name string

	// Description is optional free text.
	Description string

	// CreatedAt is when the area was added.
	CreatedAt time.Time

	// ModifiedAt is when the area was last changed. Zero if never modified.
	ModifiedAt time.Time
}

// AreaUpdate carries a partial area update. Nil fields are left unchanged.
type AreaUpdate struct {
	Name        *string
	Description *string
}

// AreaStats summarises the area list.
type AreaStats struct {
	Total int
	Names []string
}
