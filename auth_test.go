package main

import (
	"net/http"
	"testing"
	"time"

	"foliohub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStoresHashedPassword(t *testing.T) {
	r := setupTest(t)
	_, id := registerAccount(t, r, "alice")

	var u models.User
	require.NoError(t, db.First(&u, id).Error)
	assert.NotEmpty(t, u.HashedPassword)
	assert.NotContains(t, string(u.HashedPassword), "secret123")
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.True(t, u.Portfolio.IsPublic)
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	r := setupTest(t)
	_, id := registerAccount(t, r, "alice")

	for _, login := range []string{"alice", "alice@example.com"} {
		rec := postJSON(r, "/auth/login", map[string]any{"login": login, "password": "secret123"}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody(t, rec)
		user := body["user"].(map[string]any)
		assert.EqualValues(t, id, user["id"])
	}

	// legacy clients send the "username" key instead
	rec := postJSON(r, "/auth/login", map[string]any{"username": "alice", "password": "secret123"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(r, "/auth/login", map[string]any{"login": "alice", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	r := setupTest(t)
	registerAccount(t, r, "alice")

	payload := map[string]any{
		"username":      "alice",
		"email":         "other@example.com",
		"password":      "secret123",
		"portfolioData": map[string]any{"fullName": "Other"},
	}
	rec := postJSON(r, "/auth/register", payload, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	payload["username"] = "bob"
	payload["email"] = "alice@example.com"
	rec = postJSON(r, "/auth/register", payload, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestTokenRequiresSecret(t *testing.T) {
	u := &models.User{ID: 1, Username: "x", Role: models.RoleAdmin}
	_, err := issueToken(u, "", time.Hour)
	assert.ErrorIs(t, err, errNoSecret)
	_, err = parseToken("whatever", "")
	assert.ErrorIs(t, err, errNoSecret)
}

func TestTokenRoundTrip(t *testing.T) {
	u := &models.User{ID: 42, Username: "alice", Role: models.RoleAdmin}
	token, err := issueToken(u, "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := parseToken(token, "s3cret")
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = parseToken(token, "other-secret")
	assert.Error(t, err)

	expired, err := issueToken(u, "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = parseToken(expired, "s3cret")
	assert.Error(t, err)
}

func TestStaleRoleTokenRejected(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")

	rec := performRequest(r, http.MethodGet, "/analytics/dashboard", nil, token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// demote the stored role after issuance; the otherwise-valid token
	// must now trip the stale-role signal
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).Update("role", "viewer").Error)

	rec = performRequest(r, http.MethodGet, "/analytics/dashboard", nil, token, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "role_changed", body["code"])
}

func TestPrivatePortfolioVisibility(t *testing.T) {
	r := setupTest(t)
	token, _ := registerAccount(t, r, "alice")

	rec := performRequest(r, http.MethodGet, "/auth/portfolio/alice", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = putJSON(r, "/auth/portfolio/update", map[string]any{"isPublic": false}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = performRequest(r, http.MethodGet, "/auth/portfolio/alice", nil, "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// the owner still sees it
	rec = performRequest(r, http.MethodGet, "/auth/portfolio/alice", nil, token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// and it drops out of the public directory
	rec = performRequest(r, http.MethodGet, "/auth/portfolios/public", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 0, body["count"])
}

func TestSetDefaultPortfolio(t *testing.T) {
	r := setupTest(t)
	tokenA, idA := registerAccount(t, r, "alice")
	_, idB := registerAccount(t, r, "bob")

	rec := performRequest(r, http.MethodPut, "/auth/set-default/bob", nil, tokenA, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var a, b models.User
	require.NoError(t, db.First(&a, idA).Error)
	require.NoError(t, db.First(&b, idB).Error)
	assert.False(t, a.IsDefaultUser)
	assert.True(t, b.IsDefaultUser)

	rec = performRequest(r, http.MethodGet, "/auth/portfolio/default", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	user := body["user"].(map[string]any)
	assert.Equal(t, "bob", user["username"])
}

func TestDeleteAccountCascades(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")

	rec := postJSON(r, "/projects", map[string]any{"title": "p1"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = postJSON(r, "/skills", map[string]any{"name": "Go"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = performRequest(r, http.MethodDelete, "/auth/account", nil, token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var users, projects, skills int64
	db.Model(&models.User{}).Where("id = ?", id).Count(&users)
	db.Model(&models.Project{}).Where("user_id = ?", id).Count(&projects)
	db.Model(&models.Skill{}).Where("user_id = ?", id).Count(&skills)
	assert.Zero(t, users)
	assert.Zero(t, projects)
	assert.Zero(t, skills)
}

func TestVerifyAndMe(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")

	rec := performRequest(r, http.MethodGet, "/auth/verify", nil, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["valid"])
	assert.EqualValues(t, id, body["userId"])

	rec = performRequest(r, http.MethodGet, "/auth/me", nil, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
}
