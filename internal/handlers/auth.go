package handlers

import (
	"errors"
	"net/http"

	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Shared credentials payload for registration and login.
type authCredentials struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// writeValidationError emits the field-level 400 for service validation failures.
func writeValidationError(c *gin.Context, vErr *service.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
}

// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  authCredentials  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "id, name"
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Register(c.Request.Context(), input.Name, input.Password)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeValidationError(c, vErr)
		case errors.Is(err, service.ErrNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		default:
			if h.log != nil {
				h.log.Errorw("register_failed", "name", input.Name, "err", err)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "name": user.Name})
}

// @Summary      Log in
// @Description  Verifies credentials and returns an access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  authCredentials  true  "Credentials"
// @Success      200  {object}  service.TokenPair
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	pair, err := h.services.Login(c.Request.Context(), input.Name, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("login_rejected", "name", input.Name)
			}
			unauthorized(c, "invalid username or password")
			return
		}
		if h.log != nil {
			h.log.Errorw("login_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, pair)
}

// @Summary      Refresh tokens
// @Description  Exchanges a valid refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  refreshRequest  true  "Refresh token"
// @Success      200  {object}  service.TokenPair
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	var input refreshRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	pair, err := h.services.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		if h.log != nil {
			h.log.Infow("refresh_rejected", "err", err)
		}
		unauthorized(c, "invalid or expired token")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "id, name"
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "invalid or expired token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "name": user.Name})
}

// @Summary      Delete own account
// @Description  Removes the account and all owned tasks
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /users/me [delete]
// @Security     BearerAuth
func (h *Handler) deleteMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "invalid or expired token")
		return
	}

	if err := h.services.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			unauthorized(c, "invalid or expired token")
			return
		}
		if h.log != nil {
			h.log.Errorw("delete_account_failed", "user_id", user.ID, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
