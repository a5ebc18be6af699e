package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// KeySetVerifier verifies EdDSA and ES256 tokens against a KeySet. The
// method is pinned by the key type found under the token's kid, so a token
// can't pick a weaker algorithm for a known key.
type KeySetVerifier struct {
	keys   *KeySet
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// NewKeySetVerifier returns a verifier enforcing issuer (if non-empty) and a
// small clock-skew leeway on exp/nbf.
func NewKeySetVerifier(keys *KeySet, issuer string, leeway time.Duration) *KeySetVerifier {
	return &KeySetVerifier{keys: keys, issuer: issuer, leeway: leeway, now: time.Now}
}

func (v *KeySetVerifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg(), jwt.SigningMethodES256.Alg()}),
		jwt.WithoutClaimsValidation(), // exp/nbf/iss checked below with our leeway
	)

	var claims Claims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("jwtx: missing kid")
		}

		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
		}

		switch key := pub.(type) {
		case ed25519.PublicKey:
			if t.Method != jwt.SigningMethodEdDSA {
				return nil, errors.New("jwtx: algorithm mismatch")
			}
			return key, nil
		case *ecdsa.PublicKey:
			if t.Method != jwt.SigningMethodES256 {
				return nil, errors.New("jwtx: algorithm mismatch")
			}
			return key, nil
		default:
			return nil, ErrUnsupportedKey
		}
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}
	if !token.Valid {
		return Claims{}, errors.New("jwtx: invalid token")
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.now().UTC(), v.leeway); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
