package checkin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func setupRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("gym_id", 1)
		c.Next()
	})
	r.POST("/checkin/qr", h.Issue)
	r.POST("/checkin/scan", h.Scan)
	r.GET("/checkin/qr/:token", h.Status)
	return r
}

func serve(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var env map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHandler_IssueUnknownMember(t *testing.T) {
	db, _ := redismock.NewClientMock()

	w, env := serve(setupRouter(newTestService(db)), http.MethodPost, "/checkin/qr", `{"member_id":404}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Socio no encontrado", env["error"])
}

func TestHandler_ScanUsed(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(tokenKey(testToken)).SetVal(storedToken(t, 1, fixedNow.Add(60*time.Second)))
	mock.ExpectSetNX(scanKey(testToken), fixedNow.Format(time.RFC3339Nano), 60*time.Second).SetVal(false)

	w, env := serve(setupRouter(newTestService(db)), http.MethodPost, "/checkin/scan", `{"token":"`+testToken+`"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "El código QR ya fue usado", env["error"])
}

func TestHandler_ScanExpired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(tokenKey(testToken)).RedisNil()

	w, _ := serve(setupRouter(newTestService(db)), http.MethodPost, "/checkin/scan", `{"token":"`+testToken+`"}`)

	assert.Equal(t, http.StatusGone, w.Code)
}

func TestHandler_StatusBadToken(t *testing.T) {
	db, _ := redismock.NewClientMock()

	w, _ := serve(setupRouter(newTestService(db)), http.MethodGet, "/checkin/qr/not-a-token", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_StatusPending(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectMGet(tokenKey(testToken), scanKey(testToken)).SetVal([]interface{}{storedToken(t, 1, fixedNow.Add(time.Minute)), nil})

	w, env := serve(setupRouter(newTestService(db)), http.MethodGet, "/checkin/qr/"+testToken, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", env["data"].(map[string]interface{})["status"])
}
