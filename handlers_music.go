package main

import (
	"net/http"
	"strconv"

	"foliohub/models"
	"foliohub/pkg/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// listMusicByUsernameHandler is the public track listing, default first.
func listMusicByUsernameHandler(c *gin.Context) {
	target, ok := publicAccount(c)
	if !ok {
		return
	}
	var tracks []models.MusicTrack
	if err := db.Where("user_id = ?", target.ID).
		Order("is_default desc, created_at desc").Find(&tracks).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list music", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracks": tracks, "count": len(tracks)})
}

func listOwnMusicHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var tracks []models.MusicTrack
	if err := db.Where("user_id = ?", u.ID).
		Order("is_default desc, created_at desc").Find(&tracks).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list music", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracks": tracks, "count": len(tracks)})
}

// uploadMusicHandler stores an audio file. The first track an account
// uploads becomes its default automatically.
func uploadMusicHandler(c *gin.Context) {
	claims := tokenClaims(c)
	title := c.PostForm("title")
	if title == "" {
		fail(c, http.StatusBadRequest, "title is required")
		return
	}
	sf, ok := storeUpload(c, "file", storage.MusicFile)
	if !ok {
		return
	}
	var count int64
	db.Model(&models.MusicTrack{}).Where("user_id = ?", claims.UserID).Count(&count)
	track := models.MusicTrack{
		Title:     title,
		Artist:    c.PostForm("artist"),
		URL:       sf.URL,
		StorageID: sf.Key,
		IsDefault: count == 0,
		UserID:    claims.UserID,
	}
	if v := c.PostForm("duration"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d > 0 {
			track.Duration = &d
		}
	}
	if err := db.Create(&track).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to record track", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "track uploaded", "track": track})
}

type musicUpdateRequest struct {
	Title    *string `json:"title"`
	Artist   *string `json:"artist"`
	Duration *int    `json:"duration"`
}

func updateMusicHandler(c *gin.Context) {
	track, ok := loadOwned[models.MusicTrack](c, c.Param("id"))
	if !ok {
		return
	}
	var req musicUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title != nil {
		if *req.Title == "" {
			fail(c, http.StatusBadRequest, "title cannot be empty")
			return
		}
		track.Title = *req.Title
	}
	if req.Artist != nil {
		track.Artist = *req.Artist
	}
	if req.Duration != nil {
		track.Duration = req.Duration
	}
	if err := db.Save(track).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to update track", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "track updated", "track": track})
}

// setDefaultMusicHandler moves the default flag to one track, clearing
// the siblings in the same transaction.
func setDefaultMusicHandler(c *gin.Context) {
	track, ok := loadOwned[models.MusicTrack](c, c.Param("id"))
	if !ok {
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MusicTrack{}).
			Where("user_id = ?", track.UserID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(track).Update("is_default", true).Error
	})
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to set default track", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "default track updated", "track": track})
}

func deleteMusicHandler(c *gin.Context) {
	track, ok := loadOwned[models.MusicTrack](c, c.Param("id"))
	if !ok {
		return
	}
	if err := db.Delete(track).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to delete track", err)
		return
	}
	deleteStored(c, track.StorageID)
	c.JSON(http.StatusOK, gin.H{"message": "track deleted"})
}
