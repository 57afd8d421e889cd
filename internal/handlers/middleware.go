package handlers

import (
	"net/http"
	"strings"

	"tasktracker/internal/models"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "currentUser"

// unauthorized writes a 401 with the RFC 6750 challenge header. The message
// stays generic so a caller cannot distinguish which check failed.
func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// authMiddleware validates the bearer token and resolves the caller's user
// record into the request context. Each request re-validates independently;
// no session state survives between requests.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		unauthorized(c, "missing Authorization header")
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		unauthorized(c, "invalid Authorization header format")
		return
	}

	user, err := h.services.Authenticate(c.Request.Context(), parts[1])
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err)
		}
		unauthorized(c, "invalid or expired token")
		return
	}

	c.Set(ctxUserKey, user)
	c.Next()
}

// currentUser returns the authenticated user stored by authMiddleware.
func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
