package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foliohub/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest wires an in-memory database, a temp-dir object store and a
// router, resetting the package globals for each test.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg = defaultConfig()
	cfg.JWT.Secret = "test-secret"

	var err error
	db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same :memory: database
	sqlDB.SetMaxOpenConns(1)
	migrate(db)

	store, err = storage.NewLocal(t.TempDir(), "/public")
	require.NoError(t, err)

	r := gin.New()
	setupRoutes(r)
	return r
}

func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postJSON(r http.Handler, path string, payload any, token string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(payload)
	return performRequest(r, http.MethodPost, path, bytes.NewReader(raw), token, "application/json")
}

func putJSON(r http.Handler, path string, payload any, token string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(payload)
	return performRequest(r, http.MethodPut, path, bytes.NewReader(raw), token, "application/json")
}

func patchJSON(r http.Handler, path string, payload any, token string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(payload)
	return performRequest(r, http.MethodPatch, path, bytes.NewReader(raw), token, "application/json")
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerAccount creates an account through the API and returns its
// token and id.
func registerAccount(t *testing.T, r http.Handler, username string) (string, uint) {
	t.Helper()
	rec := postJSON(r, "/auth/register", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
		"portfolioData": map[string]any{
			"fullName": "Test " + username,
		},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	require.NotZero(t, id)
	return token, uint(id)
}

func TestHealthz(t *testing.T) {
	r := setupTest(t)
	rec := performRequest(r, http.MethodGet, "/healthz", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r := setupTest(t)
	for _, path := range []string{"/projects", "/images", "/music", "/skills", "/cv", "/contact"} {
		rec := performRequest(r, http.MethodGet, path, nil, "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, fmt.Sprintf("path %s", path))
	}
}
