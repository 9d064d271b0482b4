package user

import (
	"errors"
	"net/http"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/api"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/auth"

	"github.com/gin-gonic/gin"
)

// CookieOptions controls the session cookies set on login.
type CookieOptions struct {
	Domain string
	Secure bool
}

type Handler struct {
	service Service
	cookies CookieOptions
}

func NewHandler(service Service, cookies CookieOptions) *Handler {
	return &Handler{
		service: service,
		cookies: cookies,
	}
}

// @Summary      Log in
// @Description  Validates staff credentials and sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.LoginRequest true "Credentials"
// @Success      200 {object} api.Envelope
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "Email y contraseña son obligatorios")
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			api.Fail(c, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		api.Fail(c, http.StatusInternalServerError, "No se pudo iniciar sesión")
		return
	}

	h.setSession(c, session)
	api.OK(c, http.StatusOK, LoginResponse{AccessToken: session.AccessToken, User: *session.User})
}

// @Summary      Refresh the session
// @Tags         auth
// @Produce      json
// @Success      200 {object} api.Envelope
// @Failure      401 {object} api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	token, err := c.Cookie(auth.RefreshCookie)
	if err != nil || token == "" {
		api.Fail(c, http.StatusUnauthorized, "Sesión requerida")
		return
	}

	session, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		api.Fail(c, http.StatusUnauthorized, "Sesión inválida")
		return
	}

	h.setSession(c, session)
	api.OK(c, http.StatusOK, LoginResponse{AccessToken: session.AccessToken, User: *session.User})
}

// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200 {object} api.Envelope
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(auth.RefreshCookie, "", -1, "/auth", h.cookies.Domain, h.cookies.Secure, true)
	api.OK(c, http.StatusOK, api.MessageResponse{Message: "Sesión cerrada"})
}

// @Summary      Current staff user
// @Tags         auth
// @Produce      json
// @Success      200 {object} api.Envelope
// @Failure      401 {object} api.ErrorResponse
// @Router       /auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "Sesión requerida")
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			api.Fail(c, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		api.Fail(c, http.StatusInternalServerError, "Error de conexión")
		return
	}

	api.OK(c, http.StatusOK, user)
}

// @Summary      Create staff account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body user.CreateStaffRequest true "Staff payload"
// @Success      201 {object} api.Envelope
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/users [post]
func (h *Handler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, api.ValidationMessage(err, "Datos inválidos"))
		return
	}

	user, err := h.service.CreateStaff(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			api.Fail(c, http.StatusConflict, "El email ya está registrado")
			return
		}
		api.Fail(c, http.StatusInternalServerError, "No se pudo crear el usuario")
		return
	}

	api.OK(c, http.StatusCreated, user)
}

func (h *Handler) setSession(c *gin.Context, s *Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, s.AccessToken, int(auth.AccessTokenTTL.Seconds()), "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(auth.RefreshCookie, s.RefreshToken, int(auth.RefreshTokenTTL.Seconds()), "/auth", h.cookies.Domain, h.cookies.Secure, true)
}
