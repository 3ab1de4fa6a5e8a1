package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohanthewiz/serr"
)

const (
	// TokenExpirationHours defines how long tokens remain valid (7 days)
	TokenExpirationHours = 24 * 7

	// TokenIssuer identifies the application that issued the token
	TokenIssuer = "scratch"

	// MinSecretLength is the minimum acceptable length for the JWT secret
	MinSecretLength = 32
)

// devSecret is used when no secret is configured
const devSecret = "development-only-secret-do-not-use-in-production"

// jwtSecret is set by InitJWT and used for all token operations
var jwtSecret []byte

// TokenClaims extends the registered claims with the owning user
type TokenClaims struct {
	jwt.RegisteredClaims
	UserGUID string `json:"user_guid"`
	Username string `json:"username"`
}

// InitJWT sets the signing key. An empty secret falls back to a
// development key so a local server starts without setup.
func InitJWT(secret string) error {
	if secret == "" {
		secret = devSecret
	}
	if len(secret) < MinSecretLength {
		return serr.New("JWT secret must be at least 32 characters")
	}

	jwtSecret = []byte(secret)
	return nil
}

// GenerateToken creates a signed JWT for the authenticated user
func GenerateToken(user *User) (string, error) {
	if len(jwtSecret) == 0 {
		return "", serr.New("JWT not initialized - call InitJWT first")
	}

	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   user.GUID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour * TokenExpirationHours)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		UserGUID: user.GUID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", serr.Wrap(err, "failed to sign token")
	}
	return tokenString, nil
}

// ValidateToken parses a token and returns its claims if it is
// unexpired and signed with our key.
func ValidateToken(tokenString string) (*TokenClaims, error) {
	if len(jwtSecret) == 0 {
		return nil, serr.New("JWT not initialized - call InitJWT first")
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, serr.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, serr.Wrap(err, "failed to parse token")
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, serr.New("invalid token claims")
	}
	return claims, nil
}
