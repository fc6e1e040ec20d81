package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/services"
	"eventstaff_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

// RegisterRoutes mounts /auth. limit throttles the credential endpoints.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, authMW, limit gin.HandlerFunc) {
	group := r.Group("/auth")
	{
		group.POST("/signup", limit, h.SignUp)
		group.POST("/signin", limit, h.SignIn)
		group.POST("/signout", authMW, h.SignOut)
		group.GET("/me", authMW, h.Me)
	}
}

// SignUp godoc
// @Summary Register a client or staff account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Account and profile"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} appErrors.ErrorResponse
// @Failure 409 {object} appErrors.ErrorResponse "Email already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.SignUp(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SignIn godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} appErrors.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.SignIn(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignOut godoc
// @Summary End the current session
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	if err := h.authService.SignOut(h.GetDB(c), session); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Current user, profile and session
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	resp, err := h.authService.Me(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
