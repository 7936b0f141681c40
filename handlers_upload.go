package main

import (
	"net/http"

	"foliohub/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// store is the configured object store; main wires it at startup and
// tests swap in a LocalStore over a temp dir.
var store storage.ObjectStore

// storedFile is the result of pushing one multipart upload to the store.
type storedFile struct {
	URL          string
	Key          string
	OriginalName string
	Size         int64
}

// storeUpload validates, transforms and stores the named multipart file.
// On failure it has already written the error response.
func storeUpload(c *gin.Context, field string, kind storage.Kind) (*storedFile, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		fail(c, http.StatusBadRequest, "file missing")
		return nil, false
	}
	if err := kind.Validate(file.Filename, file.Size); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	src, err := file.Open()
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to read upload", err)
		return nil, false
	}
	defer src.Close()
	body, err := kind.Process(src, file.Filename)
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to process upload", err)
		return nil, false
	}
	key := kind.Key(file.Filename)
	url, err := store.Put(c.Request.Context(), key, body, file.Header.Get("Content-Type"))
	if err != nil {
		failErr(c, http.StatusBadGateway, "storage provider rejected upload", err)
		return nil, false
	}
	return &storedFile{URL: url, Key: key, OriginalName: file.Filename, Size: file.Size}, true
}

// deleteStored removes a remote object, best effort. A provider failure
// is logged and swallowed; the database record is removed regardless.
func deleteStored(c *gin.Context, key string) {
	if key == "" {
		return
	}
	if err := store.Delete(c.Request.Context(), key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("remote object delete failed")
	}
}
