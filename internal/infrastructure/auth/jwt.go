package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/identity"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
)

// Claims represents the custom JWT claims carried by an access token
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetRole returns the role carried by the token
func (c *Claims) GetRole() identity.Role {
	return identity.Role(c.Role)
}

// JWTService issues and validates signed access tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// Issue creates a signed access token for the given user
func (s *JWTService) Issue(userID uuid.UUID, username string, role identity.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID.String(),
		Username: username,
		Role:     role.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate parses a token string and returns its claims
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}
