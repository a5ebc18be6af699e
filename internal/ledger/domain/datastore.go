package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
)

// DataStore describes where a tenant's entity and policy data live and
// which keys may sign it. It is persisted as JSON, so the tags are the
// storage format.
type DataStore struct {
	Entity DataSource `json:"entity"`
	Policy DataSource `json:"policy"`
}

// DataSource is one side of a DataStore.
type DataSource struct {
	Type        string     `json:"type"`
	Location    string     `json:"location"`
	SigningKeys []jwtx.JWK `json:"signingKeys"`
}

// Validate checks both sources.
func (d DataStore) Validate() error {
	if err := d.Entity.Validate(); err != nil {
		return fmt.Errorf("entity: %w", err)
	}
	if err := d.Policy.Validate(); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	return nil
}

// Validate requires a type, an absolute location URL and at least one
// parseable signing key.
func (s DataSource) Validate() error {
	if strings.TrimSpace(s.Type) == "" {
		return errors.New("type is required")
	}

	u, err := url.Parse(s.Location)
	if err != nil || !u.IsAbs() {
		return errors.New("location must be an absolute URL")
	}

	if len(s.SigningKeys) == 0 {
		return errors.New("signingKeys must not be empty")
	}
	for i, k := range s.SigningKeys {
		if err := k.Validate(); err != nil {
			return fmt.Errorf("signingKeys[%d]: %w", i, err)
		}
	}
	return nil
}

// WithSigningKey returns a copy of s with k appended. The receiver's slice
// is never shared with the result.
func (s DataSource) WithSigningKey(k jwtx.JWK) DataSource {
	keys := make([]jwtx.JWK, 0, len(s.SigningKeys)+1)
	keys = append(keys, s.SigningKeys...)
	s.SigningKeys = append(keys, k)
	return s
}
