package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/identity"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/auth"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTAuth validates the Bearer token on every request and stores the
// claims in the gin context
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "UNAUTHORIZED", "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.Validate(tokenString)
		if err != nil {
			code, message := "UNAUTHORIZED", "Authentication required"
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				code, message = "TOKEN_EXPIRED", "Token has expired"
			case errors.Is(err, auth.ErrInvalidToken):
				code, message = "INVALID_TOKEN", "Invalid token"
			case errors.Is(err, auth.ErrTokenNotYetValid):
				code, message = "TOKEN_NOT_VALID", "Token is not yet valid"
			}
			abortUnauthorized(c, code, message)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole rejects requests whose token role is not in the allowed set
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse("FORBIDDEN", "Insufficient role for this operation"))
	}
}

// RequireUserManagement rejects requests from roles that cannot manage accounts
func RequireUserManagement() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetJWTRole(c).CanManageUsers() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "User management requires the admin role"))
			return
		}
		c.Next()
	}
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}

// GetJWTRole retrieves the role from JWT claims in context
func GetJWTRole(c *gin.Context) identity.Role {
	if role, exists := c.Get(JWTRoleKey); exists {
		if r, ok := role.(string); ok {
			return identity.Role(r)
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
