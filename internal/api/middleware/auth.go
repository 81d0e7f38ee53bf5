package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// AdminClaimsKey is the key used to store admin claims in the context
	AdminClaimsKey = "admin_claims"
)

// AdminClaims is the JWT payload for back-office sessions
type AdminClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAdminToken creates a signed HS256 JWT for an admin session
func GenerateAdminToken(secret string, ttl time.Duration, adminID, email, name, role string) (string, error) {
	claims := AdminClaims{
		AdminID: adminID,
		Email:   email,
		Name:    name,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAdminToken validates a token string and returns its claims
func ParseAdminToken(secret, tokenStr string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// RequireAdmin validates the bearer token and stashes the claims in the gin
// context. Requests without a token get 401 "No token"; requests with a bad
// one get 401 "Invalid token".
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			abortUnauthorized(c, "No token")
			return
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "No token")
			return
		}

		claims, err := ParseAdminToken(secret, parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}

// GetAdminClaims pulls the *AdminClaims out of the gin context (or nil)
func GetAdminClaims(c *gin.Context) *AdminClaims {
	if v, exists := c.Get(AdminClaimsKey); exists {
		if claims, ok := v.(*AdminClaims); ok {
			return claims
		}
	}
	return nil
}

// GetAdminEmail returns the authenticated admin's email, or "" if none
func GetAdminEmail(c *gin.Context) string {
	if claims := GetAdminClaims(c); claims != nil {
		return claims.Email
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	response := gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	}
	if correlationID := GetCorrelationID(c); correlationID != "" {
		response["correlation_id"] = correlationID
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, response)
}
