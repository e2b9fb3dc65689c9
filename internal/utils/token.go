package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the signed bearer payload: subject id, role, tenant scope and
// supervisor level. Tampering breaks the HMAC signature.
type Claims struct {
	UserID          uint        `json:"user_id"`
	Role            models.Role `json:"role"`
	TenantID        *uint       `json:"tenant_id,omitempty"`
	SupervisorLevel int         `json:"supervisor_level,omitempty"`
	TenantName      string      `json:"tenant_name,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies bearer tokens. Constructed once at startup
// with the shared secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Generate issues a token for the account. Tokens are stateless; expiry and
// the denylist are the only invalidation mechanisms.
func (tm *TokenManager) Generate(account *models.Account, tenantName string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:          account.ID,
		Role:            account.Role,
		TenantID:        account.TenantID,
		SupervisorLevel: account.SupervisorLevel,
		TenantName:      tenantName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate parses and verifies a token, distinguishing expiry from any other
// decode or signature failure.
func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractToken reads the bearer token from the Authorization header.
func ExtractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", errors.New("bearer token not found")
	}

	return strings.TrimPrefix(authHeader, bearerPrefix), nil
}
