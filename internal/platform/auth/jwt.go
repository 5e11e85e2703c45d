package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is a back-office user role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSecretary Role = "secretaire"
)

// ErrUnknownRole is returned by Verify for a correctly signed token whose role
// has no back-office access.
var ErrUnknownRole = errors.New("unknown role")

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleSecretary
}

// FlexibleID accepts a user id encoded either as a JSON string or a number.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id must be a string or a number: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// Claims are the access-token claims issued by the back-office backend.
type Claims struct {
	UserID FlexibleID `json:"user_id"`
	Email  string     `json:"email,omitempty"`
	Role   Role       `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 access tokens shared with the backend.
type JWTManager struct {
	secret    []byte
	accessTTL time.Duration
}

// NewJWTManager creates a JWTManager.
func NewJWTManager(secret string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), accessTTL: accessTTL}
}

// Generate issues an access token. The backend normally issues tokens; this is
// used by tooling and tests.
func (m *JWTManager) Generate(userID, email string, role Role) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: FlexibleID(userID),
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify checks the token signature and returns its claims. Expiry is not
// inspected here: login sessions expire through the SessionTracker.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	claims := &Claims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user id")
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownRole, claims.Role)
	}
	return claims, nil
}
