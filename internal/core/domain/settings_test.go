package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategy_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		expected bool
	}{
		{name: "ladder is valid", strategy: StrategyLadder, expected: true},
		{name: "scorer is valid", strategy: StrategyScorer, expected: true},
		{name: "empty string is invalid", strategy: Strategy(""), expected: false},
		{name: "unknown strategy is invalid", strategy: Strategy("ml"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.strategy.IsValid())
		})
	}
}

func TestStrategy_Description(t *testing.T) {
	for _, s := range AllStrategies() {
		assert.NotEqual(t, unknownDescription, s.Description(), s.String())
	}
	assert.Equal(t, unknownDescription, Strategy("other").Description())
}

func TestTicketLogBackend_IsValid(t *testing.T) {
	for _, b := range AllTicketLogBackends() {
		assert.True(t, b.IsValid(), b.String())
	}
	assert.False(t, TicketLogBackend("postgres").IsValid())
	assert.False(t, TicketLogBackend("").IsValid())
}

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Empty(t, settings.Storage.DataDir)
	assert.Equal(t, "rules.json", settings.Storage.RulesFile)
	assert.Equal(t, "areas.json", settings.Storage.AreasFile)
	assert.Equal(t, TicketLogJSON, settings.Storage.TicketLog)
	assert.Equal(t, StrategyLadder, settings.Classifier.Strategy)
}
