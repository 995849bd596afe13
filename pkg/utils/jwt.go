package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OperatorClaims are the claims the platform embeds in the bearer
// token it issues at login. The gateway never mints tokens for real
// operators; it only validates what the platform signed.
type OperatorClaims struct {
	OperatorID   uuid.UUID `json:"operator_id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	PharmacyName string    `json:"pharmacy_name"`
	Email        string    `json:"email"`
	Roles        []string  `json:"roles"`
	jwt.RegisteredClaims
}

// JWTManager validates platform-issued operator tokens.
type JWTManager struct {
	secretKey []byte
}

// NewJWTManager creates a manager sharing the platform's signing
// secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secretKey: []byte(secret)}
}

// Validate parses and verifies an operator token.
func (m *JWTManager) Validate(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*OperatorClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.OperatorID == uuid.Nil || claims.TenantID == uuid.Nil {
		return nil, errors.New("token missing operator identity")
	}

	return claims, nil
}

// Generate signs an operator token. Used by local tooling and tests;
// production tokens come from the platform.
func (m *JWTManager) Generate(operatorID, tenantID uuid.UUID, pharmacyName, email string, roles []string, expiry time.Duration) (string, error) {
	claims := &OperatorClaims{
		OperatorID:   operatorID,
		TenantID:     tenantID,
		PharmacyName: pharmacyName,
		Email:        email,
		Roles:        roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "pharmatill-platform",
			Subject:   operatorID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}
