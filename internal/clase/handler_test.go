package clase

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(repo *MockRepository, enrollments *fakeEnrollments) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(newTestService(repo, enrollments, mondayAt(11, 0)))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("gym_id", 1)
		c.Next()
	})
	r.GET("/clases", h.ListClasses)
	r.POST("/clases", h.CreateClass)
	r.DELETE("/clases/:id", h.DeleteClass)
	r.POST("/clases/:id/horarios", h.CreateSlot)
	r.GET("/clases/:id/proxima", h.NextOccurrence)
	r.GET("/horarios/grid", h.Grid)
	return r
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var env map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHandler_CreateClass(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateClass", mock.Anything, 1, "Funcional", "").Return(&Class{ID: 3, GymID: 1, Name: "Funcional"}, nil)

	w, env := do(setupRouter(repo, &fakeEnrollments{}), http.MethodPost, "/clases", `{"nombre":"Funcional"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, env["ok"])
}

func TestHandler_CreateClassMissingName(t *testing.T) {
	w, env := do(setupRouter(new(MockRepository), &fakeEnrollments{}), http.MethodPost, "/clases", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, env["ok"])
}

func TestHandler_CreateSlotUnknownDay(t *testing.T) {
	w, env := do(setupRouter(new(MockRepository), &fakeEnrollments{}), http.MethodPost, "/clases/3/horarios",
		`{"dia":"funday","hora_inicio":"08:00","hora_fin":"09:00"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Día inválido", env["error"])
}

func TestHandler_DeleteClassNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("DeleteClass", mock.Anything, 1, 3).Return(ErrClassNotFound)

	w, env := do(setupRouter(repo, &fakeEnrollments{}), http.MethodDelete, "/clases/3", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Clase no encontrada", env["error"])
}

func TestHandler_NextOccurrenceEmptyState(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetClass", mock.Anything, 1, 3).Return(&Class{ID: 3, GymID: 1}, nil)
	repo.On("ListSlots", mock.Anything, 1, 3).Return([]Slot{}, nil)

	w, env := do(setupRouter(repo, &fakeEnrollments{}), http.MethodGet, "/clases/3/proxima", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env["ok"])
	assert.NotContains(t, env, "data")
}

func TestHandler_NextOccurrence(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetClass", mock.Anything, 1, 3).Return(&Class{ID: 3, GymID: 1}, nil)
	repo.On("ListSlots", mock.Anything, 1, 3).Return([]Slot{
		{ID: 1, ClassID: 3, Day: "Domingo", StartTime: "23:00", EndTime: "23:59"},
	}, nil)

	w, env := do(setupRouter(repo, &fakeEnrollments{}), http.MethodGet, "/clases/3/proxima", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := env["data"].(map[string]interface{})
	assert.Equal(t, "Domingo", data["dia"])
	assert.Equal(t, float64(6), data["dias"])
}

func TestHandler_Grid(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListGymSlots", mock.Anything, 1).Return([]Slot{
		{ID: 1, ClassName: "Funcional", Day: "Martes", StartTime: "18:00", EndTime: "19:00"},
	}, nil)

	w, env := do(setupRouter(repo, &fakeEnrollments{counts: map[int]int{}}), http.MethodGet, "/horarios/grid", "")

	require.Equal(t, http.StatusOK, w.Code)
	days := env["data"].(map[string]interface{})["dias"].([]interface{})
	assert.Len(t, days, 7)
	tuesday := days[1].(map[string]interface{})
	assert.Equal(t, "Martes", tuesday["label"])
	assert.Len(t, tuesday["slots"], 1)
}
