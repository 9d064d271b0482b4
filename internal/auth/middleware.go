package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/api"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "ironhub_session"
	RefreshCookie = "ironhub_refresh"
	GymHeader     = "X-Gym-ID"

	ctxUserID = "user_id"
	ctxEmail  = "user_email"
	ctxRole   = "user_role"
	ctxGymID  = "gym_id"
)

// AuthMiddleware accepts the session cookie first and falls back to a
// bearer token.
func AuthMiddleware(accessTokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			api.AbortFail(c, http.StatusUnauthorized, "Sesión requerida")
			return
		}

		claims, err := ValidateToken(tokenString, accessTokenSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				api.AbortFail(c, http.StatusUnauthorized, "La sesión expiró")
			default:
				api.AbortFail(c, http.StatusUnauthorized, "Sesión inválida")
			}
			return
		}

		if claims.TokenType != "access" {
			api.AbortFail(c, http.StatusUnauthorized, "Sesión inválida")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxGymID, claims.GymID)

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			api.AbortFail(c, http.StatusUnauthorized, "Sesión requerida")
			return
		}

		roleStr, ok := role.(string)
		if !ok {
			api.AbortFail(c, http.StatusUnauthorized, "Sesión inválida")
			return
		}

		if roleStr != requiredRole {
			api.AbortFail(c, http.StatusForbidden, "Permisos insuficientes")
			return
		}

		c.Next()
	}
}

// RequireTenant pins the request to one gym. Staff are bound to the gym in
// their token; platform admins pick one through the X-Gym-ID header.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, _ := GetGymID(c)

		if role, _ := c.Get(ctxRole); role == RoleAdmin {
			if raw := c.GetHeader(GymHeader); raw != "" {
				id, err := strconv.Atoi(raw)
				if err != nil || id <= 0 {
					api.AbortFail(c, http.StatusBadRequest, "Gimnasio inválido")
					return
				}
				gymID = id
			}
		}

		if gymID <= 0 {
			api.AbortFail(c, http.StatusForbidden, "Seleccioná un gimnasio")
			return
		}

		c.Set(ctxGymID, gymID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (int, bool) {
	return getInt(c, ctxUserID)
}

func GetGymID(c *gin.Context) (int, bool) {
	return getInt(c, ctxGymID)
}

func getInt(c *gin.Context, key string) (int, bool) {
	v, exists := c.Get(key)
	if !exists {
		return 0, false
	}

	id, ok := v.(int)
	if !ok {
		return 0, false
	}

	return id, true
}
