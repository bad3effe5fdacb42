package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reservodojo/database/repository"
	"reservodojo/handlers"
	"reservodojo/services/trainer"
	"reservodojo/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	stores := repository.NewMemoryStores()
	svc := &trainer.DefaultTrainerService{
		Configs:  stores.Configs,
		Tasks:    stores.Tasks,
		Drafts:   stores.Drafts,
		DraftTTL: time.Hour,
	}
	r := gin.New()
	RegisterRoutes(r, handlers.NewHandlerBundle(handlers.NewTrainerHandler(svc)))
	return r
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(utils.Identity{UserID: "u-1", AccommodationID: "acc-1", Role: role}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func request(r http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_AuthRequired(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/config", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/tasks", "", "").Code)
	assert.NotEqual(t, http.StatusUnauthorized, request(r, http.MethodGet, "/health", "", "").Code)
}

func TestRoutes_ConfigEditingNeedsAdmin(t *testing.T) {
	r := newRouter()
	body := `{"guests":[{"full_name":"Jane Doe"}]}`

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/config", bearer(t, utils.RoleUser), "").Code)
	assert.Equal(t, http.StatusForbidden, request(r, http.MethodPut, "/api/config", bearer(t, utils.RoleUser), body).Code)
	assert.Equal(t, http.StatusForbidden, request(r, http.MethodPost, "/api/config/validate", bearer(t, utils.RoleUser), body).Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodPut, "/api/config", bearer(t, utils.RoleAdmin), body).Code)
}
