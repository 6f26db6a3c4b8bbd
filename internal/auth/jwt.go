// Package auth provides JWT issuance/validation and password hashing for
// the complaint triage service.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/complaintdesk/triage/internal/domain"
)

// Claims represents the JWT claims carried per authenticated user.
type Claims struct {
	UserID     string `json:"sub"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	Department string `json:"department"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token generation and validation.
type JWTManager struct {
	secret     []byte
	expiration time.Duration
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(secret string, expiration time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken generates a new JWT token for user.
func (m *JWTManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.expiration)
	claims := &Claims{
		UserID:     user.ID.String(),
		EmployeeID: user.EmployeeID,
		Role:       string(user.Role),
		Department: user.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Identity is the authenticated caller extracted from validated claims.
type Identity struct {
	UserID     uuid.UUID
	EmployeeID string
	Role       domain.Role
	Department string
}

// IdentityFromClaims converts validated claims into an Identity.
func IdentityFromClaims(claims *Claims) (Identity, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Identity{}, errors.New("invalid subject claim")
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return Identity{}, errors.New("invalid role claim")
	}
	return Identity{
		UserID:     userID,
		EmployeeID: claims.EmployeeID,
		Role:       role,
		Department: claims.Department,
	}, nil
}
