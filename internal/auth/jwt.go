package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
)

// Constants for context keys
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	RoleKey     = "user_role"
)

// Claims represents JWT claims
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token operations
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateToken generates a JWT token for a user
func (j *JWTService) GenerateToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.ttl)
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// Identity is the authenticated caller of a request
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

// IsAdmin returns true if the caller is an admin
func (i Identity) IsAdmin() bool {
	return i.Role == string(models.RoleAdmin)
}

// CurrentIdentity returns the caller set by JWTMiddleware
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	username := c.GetString(UsernameKey)
	if username == "" {
		return Identity{}, false
	}
	id, _ := c.Get(UserIDKey)
	userID, _ := id.(uuid.UUID)
	return Identity{UserID: userID, Username: username, Role: c.GetString(RoleKey)}, true
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// JWTMiddleware creates a middleware that validates bearer tokens
func JWTMiddleware(service *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Authentication required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abort(c, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Bearer token required")
			return
		}

		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			abort(c, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid token")
			return
		}

		// Set user information in context
		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole allows only callers with one of the given roles
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		for _, r := range roles {
			if role == string(r) {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, errors.ErrCodeForbidden, "Insufficient permissions")
	}
}

// RequireSelfOrAdmin allows admins, and judges whose username equals the
// named path parameter.
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if ok && (id.IsAdmin() || id.Username == c.Param(param)) {
			c.Next()
			return
		}
		abort(c, http.StatusForbidden, errors.ErrCodeForbidden, "Insufficient permissions")
	}
}

// RequireSelf allows only the judge whose username equals the named path
// parameter.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if ok && id.Role == string(models.RoleJudge) && id.Username == c.Param(param) {
			c.Next()
			return
		}
		abort(c, http.StatusForbidden, errors.ErrCodeForbidden, "Judges may only act as themselves")
	}
}
