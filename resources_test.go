package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"foliohub/models"
	"foliohub/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProject(t *testing.T, r http.Handler, token string, payload map[string]any) uint {
	t.Helper()
	rec := postJSON(r, "/projects", payload, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	p := body["project"].(map[string]any)
	return uint(p["id"].(float64))
}

func TestProjectOwnershipEnforced(t *testing.T) {
	r := setupTest(t)
	tokenA, _ := registerAccount(t, r, "alice")
	tokenB, _ := registerAccount(t, r, "bob")

	id := createProject(t, r, tokenA, map[string]any{"title": "mine"})

	// a different authenticated account gets forbidden, not not-found
	rec := putJSON(r, "/projects/1", map[string]any{"title": "stolen"}, tokenB)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = performRequest(r, http.MethodDelete, "/projects/1", nil, tokenB, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var p models.Project
	require.NoError(t, db.First(&p, id).Error)
	assert.Equal(t, "mine", p.Title)

	// a missing record is not-found, distinctly
	rec = putJSON(r, "/projects/999", map[string]any{"title": "x"}, tokenB)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the owner can update and delete
	rec = putJSON(r, "/projects/1", map[string]any{"title": "renamed"}, tokenA)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = performRequest(r, http.MethodDelete, "/projects/1", nil, tokenA, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProjectPublicOrdering(t *testing.T) {
	r := setupTest(t)
	token, _ := registerAccount(t, r, "alice")

	createProject(t, r, token, map[string]any{"title": "plain-late", "order": 5})
	createProject(t, r, token, map[string]any{"title": "featured", "featured": true, "order": 9})
	createProject(t, r, token, map[string]any{"title": "plain-early", "order": 1})

	rec := performRequest(r, http.MethodGet, "/projects/user/alice", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	projects := body["projects"].([]any)
	require.Len(t, projects, 3)

	titles := make([]string, 0, 3)
	for _, p := range projects {
		titles = append(titles, p.(map[string]any)["title"].(string))
	}
	// featured first, then explicit order ascending
	assert.Equal(t, []string{"featured", "plain-early", "plain-late"}, titles)
}

func TestProjectListVisibility(t *testing.T) {
	r := setupTest(t)
	token, _ := registerAccount(t, r, "alice")
	createProject(t, r, token, map[string]any{"title": "p"})

	rec := putJSON(r, "/auth/portfolio/update", map[string]any{"isPublic": false}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(r, http.MethodGet, "/projects/user/alice", nil, "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = performRequest(r, http.MethodGet, "/projects/user/alice", nil, token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSkillGlobalUniqueness(t *testing.T) {
	r := setupTest(t)
	tokenA, _ := registerAccount(t, r, "alice")
	tokenB, _ := registerAccount(t, r, "bob")

	rec := postJSON(r, "/skills", map[string]any{"name": "Go", "category": "Backend"}, tokenA)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// uniqueness is collection-wide and case-insensitive
	rec = postJSON(r, "/skills", map[string]any{"name": "go"}, tokenB)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = postJSON(r, "/skills", map[string]any{"name": "Rust", "category": "Cooking"}, tokenA)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(r, "/skills", map[string]any{"name": "Rust", "proficiency": "Guru"}, tokenA)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactStatusTransitions(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")

	rec := postJSON(r, "/contact/alice", map[string]any{
		"name":    "Visitor",
		"email":   "v@example.com",
		"message": "hello there",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var msg models.ContactMessage
	require.NoError(t, db.Where("user_id = ?", id).First(&msg).Error)
	assert.Equal(t, models.ContactNew, msg.Status)

	for _, status := range []string{models.ContactRead, models.ContactReplied} {
		rec = patchJSON(r, "/analytics/contacts/1/status", map[string]any{"status": status}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	require.NoError(t, db.First(&msg, msg.ID).Error)
	assert.Equal(t, models.ContactReplied, msg.Status)

	// out-of-domain value rejected, stored status unchanged
	rec = patchJSON(r, "/analytics/contacts/1/status", map[string]any{"status": "archived"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, db.First(&msg, msg.ID).Error)
	assert.Equal(t, models.ContactReplied, msg.Status)
}

func uploadMultipart(t *testing.T, r http.Handler, path, field, filename string, content []byte, fields map[string]string, token string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	w, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	rec := performRequest(r, http.MethodPost, path, buf, token, mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestImageUploadAndDelete(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")

	uploadMultipart(t, r, "/images/upload", "file", "shot.png", tinyPNG(t),
		map[string]string{"description": "a shot"}, token)

	var img models.Image
	require.NoError(t, db.Where("user_id = ?", id).First(&img).Error)
	assert.Equal(t, models.ImageGallery, img.Type)
	assert.NotEmpty(t, img.URL)
	assert.NotEmpty(t, img.StorageID)
	assert.Equal(t, "shot.png", img.OriginalName)

	rec := performRequest(r, http.MethodDelete, "/images/1", nil, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var count int64
	db.Model(&models.Image{}).Count(&count)
	assert.Zero(t, count)
}

func TestImageUploadRejectsBadExtension(t *testing.T) {
	r := setupTest(t)
	token, _ := registerAccount(t, r, "alice")

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	w, _ := mw.CreateFormFile("file", "malware.exe")
	_, _ = w.Write([]byte("nope"))
	_ = mw.Close()
	rec := performRequest(r, http.MethodPost, "/images/upload", buf, token, mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfilePictureSingleton(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")

	uploadMultipart(t, r, "/images/profile", "file", "one.png", tinyPNG(t), nil, token)
	uploadMultipart(t, r, "/images/profile", "file", "two.png", tinyPNG(t), nil, token)

	var active []models.Image
	require.NoError(t, db.Where("user_id = ? AND type = ? AND is_active = ?", id, models.ImageProfile, true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, "two.png", active[0].OriginalName)

	var u models.User
	require.NoError(t, db.First(&u, id).Error)
	assert.Equal(t, active[0].StorageID, u.Portfolio.Picture.StorageID)
}

func TestGenericUploadRefusesProfileType(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")

	uploadMultipart(t, r, "/images/profile", "file", "one.png", tinyPNG(t), nil, token)

	// the generic endpoint must not mint a second active profile image
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("type", models.ImageProfile))
	w, err := mw.CreateFormFile("file", "two.png")
	require.NoError(t, err)
	_, err = w.Write(tinyPNG(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	rec := performRequest(r, http.MethodPost, "/images/upload", buf, token, mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var active int64
	db.Model(&models.Image{}).
		Where("user_id = ? AND type = ? AND is_active = ?", id, models.ImageProfile, true).
		Count(&active)
	assert.EqualValues(t, 1, active)
}

func TestProjectDeleteRemovesThumbnailRecord(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")
	createProject(t, r, token, map[string]any{"title": "p"})

	uploadMultipart(t, r, "/projects/upload", "file", "thumb.png", tinyPNG(t),
		map[string]string{"projectId": "1"}, token)

	var img models.Image
	require.NoError(t, db.Where("user_id = ? AND type = ?", id, models.ImageProject).First(&img).Error)
	require.NotEmpty(t, img.StorageID)
	onDisk := filepath.Join(store.(*storage.LocalStore).BaseDir(), filepath.FromSlash(img.StorageID))
	_, err := os.Stat(onDisk)
	require.NoError(t, err)

	rec := performRequest(r, http.MethodDelete, "/projects/1", nil, token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// neither the paired image record nor the stored object survives
	var count int64
	db.Model(&models.Image{}).Where("user_id = ?", id).Count(&count)
	assert.Zero(t, count)
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestCVActivationSingleton(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")

	pdf := []byte("%PDF-1.4 test")
	for range 3 {
		uploadMultipart(t, r, "/cv/upload", "file", "resume.pdf", pdf, nil, token)
	}

	var docs []models.CVDocument
	require.NoError(t, db.Where("user_id = ?", id).Order("id asc").Find(&docs).Error)
	require.Len(t, docs, 3)
	assert.Equal(t, 3, docs[2].Version)

	// activate the first; exactly one active regardless of prior state
	rec := performRequest(r, http.MethodPut, "/cv/1/activate", nil, token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NoError(t, db.Where("user_id = ?", id).Order("id asc").Find(&docs).Error)
	assert.True(t, docs[0].IsActive)
	assert.False(t, docs[1].IsActive)
	assert.False(t, docs[2].IsActive)

	// the public endpoint serves the active one
	rec = performRequest(r, http.MethodGet, "/cv/user/alice", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	cv := body["cv"].(map[string]any)
	assert.EqualValues(t, 1, cv["id"])
}

func TestMusicDefaultSingleton(t *testing.T) {
	r := setupTest(t)
	token, id := registerAccount(t, r, "alice")

	audio := []byte("ID3 not really audio")
	uploadMultipart(t, r, "/music/upload", "file", "a.mp3", audio, map[string]string{"title": "First"}, token)
	uploadMultipart(t, r, "/music/upload", "file", "b.mp3", audio, map[string]string{"title": "Second"}, token)

	var tracks []models.MusicTrack
	require.NoError(t, db.Where("user_id = ?", id).Order("id asc").Find(&tracks).Error)
	require.Len(t, tracks, 2)
	// first upload is the implicit default
	assert.True(t, tracks[0].IsDefault)
	assert.False(t, tracks[1].IsDefault)

	rec := performRequest(r, http.MethodPut, "/music/2/default", nil, token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NoError(t, db.Where("user_id = ?", id).Order("id asc").Find(&tracks).Error)
	assert.False(t, tracks[0].IsDefault)
	assert.True(t, tracks[1].IsDefault)
}
