package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"house-preview-backend/internal/config"
	"house-preview-backend/internal/logging"
	"house-preview-backend/internal/models"
)

// StaffIDKey holds the authenticated staff member's numeric user id.
const StaffIDKey = "staff_id"

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.Envelope{
		Success: false,
		Message: "Unauthenticated.",
		Error:   message,
	})
}

// AuthMiddleware accepts an HS256 bearer token signed with the Supabase JWT
// secret whose sub claim is a numeric user id.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			unauthorized(c, "empty token")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			logging.Ctx(c.Request.Context()).Debug().Err(err).Msg("rejected bearer token")
			unauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "invalid token claims")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			unauthorized(c, "missing user id in token")
			return
		}
		staffID, err := strconv.ParseInt(sub, 10, 64)
		if err != nil || staffID < 1 {
			unauthorized(c, "invalid user id in token")
			return
		}

		c.Set(StaffIDKey, staffID)
		c.Next()
	}
}

// StaffID returns the id stored by AuthMiddleware.
func StaffID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(StaffIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
