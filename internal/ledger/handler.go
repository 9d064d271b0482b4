package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/api"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/auth"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List enrollments of a slot
// @Tags         horarios
// @Produce      json
// @Param        id path int true "Slot ID"
// @Success      200 {object} api.Envelope{data=ledger.Roster}
// @Failure      404 {object} api.ErrorResponse
// @Router       /horarios/{id}/inscripciones [get]
func (h *Handler) Enrollments(c *gin.Context) {
	slotID, ok := slotParam(c)
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	roster, err := h.service.Enrollments(c.Request.Context(), gymID, slotID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, roster)
}

// @Summary      Enroll a member
// @Tags         horarios
// @Accept       json
// @Produce      json
// @Param        id path int true "Slot ID"
// @Param        request body ledger.MemberRequest true "Member"
// @Success      201 {object} api.Envelope{data=ledger.Snapshot}
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /horarios/{id}/inscribir [post]
func (h *Handler) Enroll(c *gin.Context) {
	slotID, req, ok := bindMember(c)
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	snap, err := h.service.Enroll(c.Request.Context(), gymID, slotID, req.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusCreated, snap)
}

// @Summary      Unenroll a member
// @Tags         horarios
// @Accept       json
// @Produce      json
// @Param        id path int true "Slot ID"
// @Param        request body ledger.MemberRequest true "Member"
// @Success      200 {object} api.Envelope{data=ledger.Snapshot}
// @Failure      404 {object} api.ErrorResponse
// @Router       /horarios/{id}/desinscribir [post]
func (h *Handler) Unenroll(c *gin.Context) {
	slotID, req, ok := bindMember(c)
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	snap, err := h.service.Unenroll(c.Request.Context(), gymID, slotID, req.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, snap)
}

// @Summary      List the waitlist of a slot
// @Tags         horarios
// @Produce      json
// @Param        id path int true "Slot ID"
// @Success      200 {object} api.Envelope{data=[]ledger.WaitlistEntry}
// @Router       /horarios/{id}/lista_espera [get]
func (h *Handler) Waitlist(c *gin.Context) {
	slotID, ok := slotParam(c)
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	entries, err := h.service.Waitlist(c.Request.Context(), gymID, slotID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, entries)
}

// @Summary      Add a member to the waitlist
// @Tags         horarios
// @Accept       json
// @Produce      json
// @Param        id path int true "Slot ID"
// @Param        request body ledger.MemberRequest true "Member"
// @Success      201 {object} api.Envelope{data=ledger.Snapshot}
// @Failure      409 {object} api.ErrorResponse
// @Router       /horarios/{id}/lista_espera [post]
func (h *Handler) AddToWaitlist(c *gin.Context) {
	slotID, req, ok := bindMember(c)
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	snap, err := h.service.AddToWaitlist(c.Request.Context(), gymID, slotID, req.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusCreated, snap)
}

// @Summary      Remove a member from the waitlist
// @Tags         horarios
// @Produce      json
// @Param        id path int true "Slot ID"
// @Param        memberID path int true "Member ID"
// @Success      200 {object} api.Envelope{data=ledger.Snapshot}
// @Failure      404 {object} api.ErrorResponse
// @Router       /horarios/{id}/lista_espera/{memberID} [delete]
func (h *Handler) RemoveFromWaitlist(c *gin.Context) {
	slotID, ok := slotParam(c)
	if !ok {
		return
	}
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil || memberID <= 0 {
		api.BadRequest(c, "ID de socio inválido")
		return
	}
	gymID, _ := auth.GetGymID(c)

	snap, err := h.service.RemoveFromWaitlist(c.Request.Context(), gymID, slotID, memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, snap)
}

// @Summary      Notify the next member on the waitlist
// @Description  Pops the waitlist head and queues a message. Does not enroll. Empty waitlist returns ok without data.
// @Tags         horarios
// @Produce      json
// @Param        id path int true "Slot ID"
// @Success      200 {object} api.Envelope{data=ledger.WaitlistEntry}
// @Router       /horarios/{id}/lista_espera/notificar [post]
func (h *Handler) NotifyNext(c *gin.Context) {
	slotID, ok := slotParam(c)
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	entry, err := h.service.NotifyNext(c.Request.Context(), gymID, slotID)
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		api.OK(c, http.StatusOK, nil)
		return
	}

	api.OK(c, http.StatusOK, entry)
}

func slotParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		api.BadRequest(c, "ID de horario inválido")
		return 0, false
	}
	return id, true
}

func bindMember(c *gin.Context) (int, MemberRequest, bool) {
	var req MemberRequest

	slotID, ok := slotParam(c)
	if !ok {
		return 0, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "Seleccioná un socio")
		return 0, req, false
	}
	return slotID, req, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		api.Fail(c, http.StatusConflict, "Cupo completo")
	case errors.Is(err, ErrAlreadyEnrolled):
		api.Fail(c, http.StatusConflict, "El socio ya está inscripto")
	case errors.Is(err, ErrAlreadyWaitlisted):
		api.Fail(c, http.StatusConflict, "El socio ya está en lista de espera")
	case errors.Is(err, ErrNotEnrolled):
		api.Fail(c, http.StatusNotFound, "El socio no está inscripto")
	case errors.Is(err, ErrNotWaitlisted):
		api.Fail(c, http.StatusNotFound, "El socio no está en lista de espera")
	case errors.Is(err, ErrSlotNotFound):
		api.Fail(c, http.StatusNotFound, "Horario no encontrado")
	case errors.Is(err, ErrMemberNotFound):
		api.Fail(c, http.StatusNotFound, "Socio no encontrado")
	default:
		logger.WithError(err).Error("ledger operation failed")
		api.Fail(c, http.StatusInternalServerError, "Error de conexión")
	}
}
