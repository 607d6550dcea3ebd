package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tasktrail/tasktrail/database"
	"tasktrail/tasktrail/middleware"
	"tasktrail/tasktrail/services"
	"tasktrail/tasktrail/templates"
	"tasktrail/tasktrail/utils/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter() (*gin.Engine, *services.AuthService) {
	gin.SetMode(gin.TestMode)
	authService := services.NewAuthService("hunter2", "test-secret", 1)

	router := gin.New()
	router.SetHTMLTemplate(templates.Load())
	RegisterAuthRoutes(router, authService)

	authorized := router.Group("/", middleware.AuthMiddleware(authService))
	RegisterTaskRoutes(authorized, &database.Database{}, &MockTaskService{}, &MockEventService{})

	return router, authService
}

func TestLoginWrongPasswordFlashes(t *testing.T) {
	router, _ := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", strings.NewReader("password=wrong"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), flashCookie)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router, _ := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", strings.NewReader("password=hunter2"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), token.SessionCookie)
}

func TestIndexRequiresSession(t *testing.T) {
	router, _ := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestIndexWithValidSession(t *testing.T) {
	router, authService := setupAuthRouter()

	tokenString, err := authService.Login("hunter2")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: token.SessionCookie, Value: tokenString})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIndexWithTamperedSessionRedirects(t *testing.T) {
	router, _ := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: token.SessionCookie, Value: "forged"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	router, _ := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/logout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), token.SessionCookie+"=;")
}

func TestLoginPageRedirectsWhenAuthed(t *testing.T) {
	router, authService := setupAuthRouter()

	tokenString, err := authService.Login("hunter2")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: token.SessionCookie, Value: tokenString})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
