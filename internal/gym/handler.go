package gym

import (
	"errors"
	"net/http"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a gym
// @Description  Platform admin: register a new tenant
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body gym.CreateGymRequest true "Gym payload"
// @Success      201 {object} api.Envelope
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/gyms [post]
func (h *Handler) CreateGym(c *gin.Context) {
	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, api.ValidationMessage(err, "Datos inválidos"))
		return
	}

	gym, err := h.service.CreateGym(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrSubdomainExists) {
			api.Fail(c, http.StatusConflict, "El subdominio ya está en uso")
			return
		}
		api.Fail(c, http.StatusInternalServerError, "No se pudo crear el gimnasio")
		return
	}

	api.OK(c, http.StatusCreated, gym)
}

// @Summary      List gyms
// @Tags         admin
// @Produce      json
// @Success      200 {object} api.Envelope
// @Router       /admin/gyms [get]
func (h *Handler) ListGyms(c *gin.Context) {
	gyms, err := h.service.GetAllGyms(c.Request.Context())
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, "No se pudieron obtener los gimnasios")
		return
	}

	api.OK(c, http.StatusOK, gyms)
}

// @Summary      Resolve a gym by subdomain
// @Description  Public lookup used by the web app to find its tenant
// @Tags         gyms
// @Produce      json
// @Param        subdomain path string true "Subdomain"
// @Success      200 {object} api.Envelope
// @Failure      404 {object} api.ErrorResponse
// @Router       /gimnasios/{subdomain} [get]
func (h *Handler) Resolve(c *gin.Context) {
	gym, err := h.service.Resolve(c.Request.Context(), c.Param("subdomain"))
	if err != nil {
		if errors.Is(err, ErrGymNotFound) {
			api.Fail(c, http.StatusNotFound, "Gimnasio no encontrado")
			return
		}
		api.Fail(c, http.StatusInternalServerError, "Error de conexión")
		return
	}

	api.OK(c, http.StatusOK, gym)
}
