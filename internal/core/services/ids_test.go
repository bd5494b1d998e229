package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSequentialID(t *testing.T) {
	tests := []struct {
		name  string
		width int
		ids   []string
		want  string
	}{
		{"empty", 2, nil, "R01"},
		{"after highest", 2, []string{"R01", "R02"}, "R03"},
		{"gap is not reused", 2, []string{"R01", "R03"}, "R04"},
		{"unordered", 2, []string{"R07", "R02"}, "R08"},
		{"grows past width", 2, []string{"R99"}, "R100"},
		{"ignores foreign ids", 2, []string{"X09", "Rabc", "R01"}, "R02"},
		{"wider", 3, []string{"R001"}, "R002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextSequentialID("R", tt.width, tt.ids))
		})
	}
}
