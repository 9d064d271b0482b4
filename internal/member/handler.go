package member

import (
	"net/http"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/api"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List members
// @Tags         socios
// @Produce      json
// @Param        q query string false "Name search"
// @Success      200 {object} api.Envelope
// @Router       /socios [get]
func (h *Handler) List(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	members, err := h.service.List(c.Request.Context(), gymID, c.Query("q"))
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, "Error de conexión")
		return
	}

	api.OK(c, http.StatusOK, members)
}

// @Summary      Create member
// @Tags         socios
// @Accept       json
// @Produce      json
// @Param        request body member.CreateMemberRequest true "Member payload"
// @Success      201 {object} api.Envelope
// @Failure      400 {object} api.ErrorResponse
// @Router       /socios [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "Datos del socio inválidos")
		return
	}

	gymID, _ := auth.GetGymID(c)
	m, err := h.service.Create(c.Request.Context(), gymID, req)
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, "No se pudo crear el socio")
		return
	}

	api.OK(c, http.StatusCreated, m)
}
