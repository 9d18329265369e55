package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/middleware"
	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// AuthHandler exposes admin portal authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// A department admin may only log into their own portal.
	dept := middleware.CurrentDepartment(c)
	if resp.User.Role != models.RoleSuperAdmin && resp.User.Department != dept {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "no access to this department"))
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Verify godoc
// @Summary Verify session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	resp, err := h.auth.Verify(c.Request.Context(), parts[1])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Refresh godoc
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	resp, err := h.auth.RefreshToken(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Logout godoc
// @Summary Logout and revoke sessions
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), claims.UserID, c.ClientIP(), c.GetHeader("User-Agent")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Logged out", nil)
}
