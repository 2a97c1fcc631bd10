package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rodriamarog/monitor-judicial-sub003/internal/core/domain"
)

// jwtClaims carries the caller identity inside a signed token
type jwtClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Verifier validates the two credential kinds the API accepts: JWT bearer
// tokens issued by the platform, and service API keys checked against a
// bcrypt hash. It issues tokens too, for tests and operational tooling.
type Verifier struct {
	jwtSecret  []byte
	apiKeyHash []byte
	bcryptCost int
}

// NewVerifier creates a Verifier. Either credential kind may be left
// unconfigured by passing an empty string; the corresponding check then
// rejects everything.
func NewVerifier(jwtSecret, apiKeyHash string) *Verifier {
	return &Verifier{
		jwtSecret:  []byte(jwtSecret),
		apiKeyHash: []byte(apiKeyHash),
		bcryptCost: bcrypt.DefaultCost,
	}
}

// GenerateToken creates a signed JWT for a user id
func (v *Verifier) GenerateToken(userID string, ttl time.Duration) (string, error) {
	if len(v.jwtSecret) == 0 {
		return "", fmt.Errorf("jwt secret not configured")
	}

	now := time.Now()
	claims := jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.jwtSecret)
}

// ParseToken validates a JWT and returns the caller's user id. With no
// secret configured every token is rejected, so an API-key-only deployment
// cannot be entered through bearer tokens signed with the empty key.
func (v *Verifier) ParseToken(tokenString string) (string, error) {
	if len(v.jwtSecret) == 0 {
		return "", fmt.Errorf("%w: bearer tokens not accepted", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	if claims, ok := token.Claims.(*jwtClaims); ok && token.Valid {
		return claims.UserID, nil
	}
	return "", fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
}

// HashAPIKey generates a bcrypt hash for an API key
func (v *Verifier) HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), v.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAPIKey checks a presented API key against the configured hash
func (v *Verifier) VerifyAPIKey(key string) bool {
	if len(v.apiKeyHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.apiKeyHash, []byte(key)) == nil
}
