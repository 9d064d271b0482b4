package checkin

import (
	"errors"
	"net/http"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/api"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/auth"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/logger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/member"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Issue a QR check-in token
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Param        request body checkin.IssueRequest true "Member"
// @Success      201 {object} api.Envelope{data=checkin.Token}
// @Failure      404 {object} api.ErrorResponse
// @Router       /checkin/qr [post]
func (h *Handler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "Seleccioná un socio")
		return
	}
	gymID, _ := auth.GetGymID(c)

	token, err := h.service.Issue(c.Request.Context(), gymID, req.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusCreated, token)
}

// @Summary      Scan a QR check-in token
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Param        request body checkin.ScanRequest true "Token"
// @Success      200 {object} api.Envelope{data=checkin.Token}
// @Failure      409 {object} api.ErrorResponse
// @Failure      410 {object} api.ErrorResponse
// @Router       /checkin/scan [post]
func (h *Handler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "Código QR inválido")
		return
	}
	gymID, _ := auth.GetGymID(c)

	token, err := h.service.Scan(c.Request.Context(), gymID, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, token)
}

// @Summary      Check-in token status
// @Description  Polled by the member app until the token is verified or expired
// @Tags         checkin
// @Produce      json
// @Param        token path string true "Token"
// @Success      200 {object} api.Envelope{data=checkin.Token}
// @Router       /checkin/qr/{token} [get]
func (h *Handler) Status(c *gin.Context) {
	raw := c.Param("token")
	if _, err := uuid.Parse(raw); err != nil {
		api.BadRequest(c, "Código QR inválido")
		return
	}
	gymID, _ := auth.GetGymID(c)

	token, err := h.service.Status(c.Request.Context(), gymID, raw)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, token)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, member.ErrMemberNotFound):
		api.Fail(c, http.StatusNotFound, "Socio no encontrado")
	case errors.Is(err, ErrTokenNotFound):
		api.Fail(c, http.StatusNotFound, "Código QR no encontrado")
	case errors.Is(err, ErrTokenExpired):
		api.Fail(c, http.StatusGone, "El código QR expiró")
	case errors.Is(err, ErrTokenUsed):
		api.Fail(c, http.StatusConflict, "El código QR ya fue usado")
	default:
		logger.WithError(err).Error("check-in failed")
		api.Fail(c, http.StatusInternalServerError, "Error de conexión")
	}
}
