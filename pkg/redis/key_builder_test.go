package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyBuilder(t *testing.T) {
	tests := []struct {
		environment string
		wantPrefix  string
	}{
		{"production", "prod"},
		{"development", "staging"},
		{"staging", "staging"},
		{"test", "staging"},
		{"", "prod"},
		{"anything-else", "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.wantPrefix, kb.GetPrefix())
		})
	}
}

func TestKeyBuilderKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:activity:42", kb.KeyActivityByID(42))
	assert.Equal(t, "prod:activities:hot", kb.KeyActivitiesHot())
	assert.Equal(t, "prod:user:7:profile", kb.KeyUserProfile(7))
	assert.Equal(t, "prod:wx:session:061xYz", kb.KeyWxSessionIdem("061xYz"))
}

func TestKeyBuilderEnvironmentIsolation(t *testing.T) {
	prod := NewKeyBuilder("production")
	staging := NewKeyBuilder("staging")

	assert.NotEqual(t, prod.KeyActivityByID(1), staging.KeyActivityByID(1))
}
