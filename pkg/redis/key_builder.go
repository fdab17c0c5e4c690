package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building so staging and
// production can share a Redis instance without colliding.
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}
	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

func (kb *KeyBuilder) KeyActivityByID(activityID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyActivityByID, activityID))
}

func (kb *KeyBuilder) KeyActivitiesHot() string {
	return kb.BuildKey(KeyActivitiesHot)
}

func (kb *KeyBuilder) KeyUserProfile(userID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyUserProfile, userID))
}

func (kb *KeyBuilder) KeyWxSessionIdem(code string) string {
	return kb.BuildKey(fmt.Sprintf(KeyWxSessionIdem, code))
}
