package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_IsValid(t *testing.T) {
	for _, c := range RuleCategories() {
		assert.True(t, c.IsValid(), c.String())
	}

	// Outcome-only categories cannot be assigned by rules
	assert.False(t, CategoryError.IsValid())
	assert.False(t, CategoryGeneral.IsValid())
	assert.False(t, Category("hardware").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestCategory_Description(t *testing.T) {
	assert.Equal(t, "Printing / scanning equipment", CategoryPrintScan.Description())
	assert.Equal(t, "General", CategoryGeneral.Description())
	assert.Equal(t, unknownDescription, Category("OTHER").Description())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" network ")
	require.NoError(t, err)
	assert.Equal(t, CategoryNetwork, c)

	c, err = ParseCategory("print_scan")
	require.NoError(t, err)
	assert.Equal(t, CategoryPrintScan, c)

	_, err = ParseCategory("ERROR")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseCategory("REDES")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseOutcomeCategory(t *testing.T) {
	c, err := ParseOutcomeCategory("general")
	require.NoError(t, err)
	assert.Equal(t, CategoryGeneral, c)

	c, err = ParseOutcomeCategory("Error")
	require.NoError(t, err)
	assert.Equal(t, CategoryError, c)

	c, err = ParseOutcomeCategory("hardware")
	require.NoError(t, err)
	assert.Equal(t, CategoryHardware, c)

	_, err = ParseOutcomeCategory("REDES")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input    string
		expected Priority
	}{
		{"High", PriorityHigh},
		{"high", PriorityHigh},
		{" MEDIUM", PriorityMedium},
		{"low", PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePriority(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}

	_, err := ParsePriority("Alta")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRule_Label(t *testing.T) {
	rule := Rule{ID: "R03", Name: "Printers"}
	assert.Equal(t, "Custom rule: Printers (R03)", rule.Label())
}

func TestRule_Matches(t *testing.T) {
	rule := Rule{Keywords: []string{"toner", "atasco de papel"}}

	assert.True(t, rule.Matches("se acabo el toner"))
	assert.True(t, rule.Matches("hay un atasco de papel en la bandeja"))
	assert.False(t, rule.Matches("atasco"))
	assert.False(t, rule.Matches(""))
}

func TestRule_Matches_SubstringNotWord(t *testing.T) {
	// Matching is by substring: "red" fires inside "redirect".
	rule := Rule{Keywords: []string{"red"}}
	assert.True(t, rule.Matches("please redirect my mail"))
}

func TestNormalizeKeywords(t *testing.T) {
	got := NormalizeKeywords([]string{" Impresora", "", "TONER ", "  ", "escáner"})
	assert.Equal(t, []string{"impresora", "toner", "escáner"}, got)
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"red", "internet", "wifi"}, SplitKeywords("Red, internet,,WiFi "))
	assert.Empty(t, SplitKeywords(" , "))
}

func TestContainsAny_IgnoresEmptyKeyword(t *testing.T) {
	assert.False(t, ContainsAny("anything", []string{""}))
	assert.False(t, ContainsAny("anything", nil))
}

func TestRuleUpdate_IsEmpty(t *testing.T) {
	assert.True(t, RuleUpdate{}.IsEmpty())

	active := false
	assert.False(t, RuleUpdate{Active: &active}.IsEmpty())
	assert.False(t, RuleUpdate{Keywords: []string{"vpn"}}.IsEmpty())
}
