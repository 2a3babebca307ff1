package models

type APIKey struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	KeyHash    string   `json:"-"`
	KeyPrefix  string   `json:"key_prefix"`
	Scopes     []string `json:"scopes"` // JSON array in DB
	LastUsedAt *int64   `json:"last_used_at,omitempty"`
	ExpiresAt  *int64   `json:"expires_at,omitempty"`
	CreatedAt  int64    `json:"created_at"`
	RevokedAt  *int64   `json:"revoked_at,omitempty"`
}

// Active reports whether the key may authenticate at unix time now.
func (k *APIKey) Active(now int64) bool {
	if k.RevokedAt != nil {
		return false
	}
	return k.ExpiresAt == nil || *k.ExpiresAt > now
}

// HasScope is true for an empty scope list, which grants everything.
func (k *APIKey) HasScope(scope string) bool {
	if len(k.Scopes) == 0 {
		return true
	}
	for _, s := range k.Scopes {
		if s == scope || s == "*" {
			return true
		}
	}
	return false
}
