package clase

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/api"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/auth"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/logger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List classes
// @Tags         clases
// @Produce      json
// @Success      200 {object} api.Envelope{data=[]clase.Class}
// @Router       /clases [get]
func (h *Handler) ListClasses(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	classes, err := h.service.ListClasses(c.Request.Context(), gymID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, classes)
}

// @Summary      Create class
// @Tags         clases
// @Accept       json
// @Produce      json
// @Param        request body clase.ClassRequest true "Class"
// @Success      201 {object} api.Envelope{data=clase.Class}
// @Failure      400 {object} api.ErrorResponse
// @Router       /clases [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "El nombre de la clase es obligatorio")
		return
	}
	gymID, _ := auth.GetGymID(c)

	class, err := h.service.CreateClass(c.Request.Context(), gymID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusCreated, class)
}

// @Summary      Update class
// @Tags         clases
// @Accept       json
// @Produce      json
// @Param        id path int true "Class ID"
// @Param        request body clase.ClassRequest true "Class"
// @Success      200 {object} api.Envelope{data=clase.Class}
// @Failure      404 {object} api.ErrorResponse
// @Router       /clases/{id} [put]
func (h *Handler) UpdateClass(c *gin.Context) {
	id, ok := idParam(c, "id", "ID de clase inválido")
	if !ok {
		return
	}
	var req ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "El nombre de la clase es obligatorio")
		return
	}
	gymID, _ := auth.GetGymID(c)

	class, err := h.service.UpdateClass(c.Request.Context(), gymID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, class)
}

// @Summary      Delete class
// @Description  Deletes the class with its slots, enrollments and waitlists
// @Tags         clases
// @Produce      json
// @Param        id path int true "Class ID"
// @Success      200 {object} api.Envelope
// @Failure      404 {object} api.ErrorResponse
// @Router       /clases/{id} [delete]
func (h *Handler) DeleteClass(c *gin.Context) {
	id, ok := idParam(c, "id", "ID de clase inválido")
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	if err := h.service.DeleteClass(c.Request.Context(), gymID, id); err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, nil)
}

// @Summary      List slots of a class
// @Tags         clases
// @Produce      json
// @Param        id path int true "Class ID"
// @Success      200 {object} api.Envelope{data=[]clase.Slot}
// @Router       /clases/{id}/horarios [get]
func (h *Handler) ListSlots(c *gin.Context) {
	classID, ok := idParam(c, "id", "ID de clase inválido")
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	slots, err := h.service.ListSlots(c.Request.Context(), gymID, classID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, slots)
}

// @Summary      Create slot
// @Tags         clases
// @Accept       json
// @Produce      json
// @Param        id path int true "Class ID"
// @Param        request body clase.CreateSlotRequest true "Slot"
// @Success      201 {object} api.Envelope{data=clase.Slot}
// @Failure      400 {object} api.ErrorResponse
// @Router       /clases/{id}/horarios [post]
func (h *Handler) CreateSlot(c *gin.Context) {
	classID, ok := idParam(c, "id", "ID de clase inválido")
	if !ok {
		return
	}
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "Completá día, hora de inicio y hora de fin")
		return
	}
	gymID, _ := auth.GetGymID(c)

	slot, err := h.service.CreateSlot(c.Request.Context(), gymID, classID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusCreated, slot)
}

// @Summary      Delete slot
// @Tags         clases
// @Produce      json
// @Param        id path int true "Class ID"
// @Param        horarioID path int true "Slot ID"
// @Success      200 {object} api.Envelope
// @Failure      404 {object} api.ErrorResponse
// @Router       /clases/{id}/horarios/{horarioID} [delete]
func (h *Handler) DeleteSlot(c *gin.Context) {
	classID, ok := idParam(c, "id", "ID de clase inválido")
	if !ok {
		return
	}
	slotID, ok := idParam(c, "horarioID", "ID de horario inválido")
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	if err := h.service.DeleteSlot(c.Request.Context(), gymID, classID, slotID); err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, nil)
}

// @Summary      Next occurrence of a class
// @Description  Soonest upcoming session with its enrollment snapshot. No data when the class has no schedulable slot.
// @Tags         clases
// @Produce      json
// @Param        id path int true "Class ID"
// @Success      200 {object} api.Envelope{data=clase.NextOccurrence}
// @Failure      404 {object} api.ErrorResponse
// @Router       /clases/{id}/proxima [get]
func (h *Handler) NextOccurrence(c *gin.Context) {
	classID, ok := idParam(c, "id", "ID de clase inválido")
	if !ok {
		return
	}
	gymID, _ := auth.GetGymID(c)

	next, err := h.service.NextOccurrence(c.Request.Context(), gymID, classID)
	if err != nil {
		respondError(c, err)
		return
	}
	if next == nil {
		api.OK(c, http.StatusOK, nil)
		return
	}

	api.OK(c, http.StatusOK, next)
}

// @Summary      Weekly schedule grid
// @Tags         horarios
// @Produce      json
// @Success      200 {object} api.Envelope{data=clase.GridResponse}
// @Router       /horarios/grid [get]
func (h *Handler) Grid(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	grid, err := h.service.Grid(c.Request.Context(), gymID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, grid)
}

// @Summary      List professors
// @Tags         profesores
// @Produce      json
// @Success      200 {object} api.Envelope{data=[]clase.Professor}
// @Router       /profesores [get]
func (h *Handler) ListProfessors(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	professors, err := h.service.ListProfessors(c.Request.Context(), gymID)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusOK, professors)
}

// @Summary      Create professor
// @Tags         profesores
// @Accept       json
// @Produce      json
// @Param        request body clase.CreateProfessorRequest true "Professor"
// @Success      201 {object} api.Envelope{data=clase.Professor}
// @Failure      400 {object} api.ErrorResponse
// @Router       /profesores [post]
func (h *Handler) CreateProfessor(c *gin.Context) {
	var req CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "Datos del profesor inválidos")
		return
	}
	gymID, _ := auth.GetGymID(c)

	professor, err := h.service.CreateProfessor(c.Request.Context(), gymID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	api.OK(c, http.StatusCreated, professor)
}

func idParam(c *gin.Context, name, message string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		api.BadRequest(c, message)
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrUnknownWeekday):
		api.BadRequest(c, "Día inválido")
	case errors.Is(err, schedule.ErrInvalidClock):
		api.BadRequest(c, "Hora inválida, usá HH:MM")
	case errors.Is(err, ErrSlotRange):
		api.BadRequest(c, "La hora de fin debe ser posterior a la de inicio")
	case errors.Is(err, ErrInvalidCapacity):
		api.BadRequest(c, "El cupo debe ser mayor a cero")
	case errors.Is(err, ErrInvalidSlot):
		api.BadRequest(c, "Horario inválido")
	case errors.Is(err, ErrClassNotFound):
		api.Fail(c, http.StatusNotFound, "Clase no encontrada")
	case errors.Is(err, ErrSlotNotFound):
		api.Fail(c, http.StatusNotFound, "Horario no encontrado")
	case errors.Is(err, ErrProfessorNotFound):
		api.Fail(c, http.StatusNotFound, "Profesor no encontrado")
	default:
		logger.WithError(err).Error("class operation failed")
		api.Fail(c, http.StatusInternalServerError, "Error de conexión")
	}
}
