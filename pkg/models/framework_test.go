package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameworkPolicy_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		policy     FrameworkPolicy
		masterCode string
		expected   string
	}{
		{
			name:       "no overrides uses master's code",
			policy:     FrameworkPolicy{},
			masterCode: "BKS",
			expected:   "BKS",
		},
		{
			name:       "explicit code overrides master's code",
			policy:     FrameworkPolicy{ExplicitCode: "SER"},
			masterCode: "BKS",
			expected:   "SER",
		},
		{
			name:       "force default resolves to the empty code",
			policy:     FrameworkPolicy{ForceDefault: true},
			masterCode: "BKS",
			expected:   "",
		},
		{
			name:       "master with default code stays default",
			policy:     FrameworkPolicy{},
			masterCode: "",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.policy.Resolve(tt.masterCode))
		})
	}
}

func TestFrameworkPolicy_Validate(t *testing.T) {
	assert.NoError(t, FrameworkPolicy{}.Validate())
	assert.NoError(t, FrameworkPolicy{ExplicitCode: "SER"}.Validate())
	assert.NoError(t, FrameworkPolicy{ForceDefault: true}.Validate())
	assert.Error(t, FrameworkPolicy{ForceDefault: true, ExplicitCode: "SER"}.Validate())
}
