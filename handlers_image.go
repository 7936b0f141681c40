package main

import (
	"net/http"
	"strconv"

	"foliohub/models"
	"foliohub/pkg/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// listImagesByUsernameHandler is the public gallery.
func listImagesByUsernameHandler(c *gin.Context) {
	target, ok := publicAccount(c)
	if !ok {
		return
	}
	var images []models.Image
	if err := db.Where("user_id = ? AND type = ?", target.ID, models.ImageGallery).
		Order("created_at desc").Find(&images).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list images", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images, "count": len(images)})
}

// listOwnImagesHandler lists the account's images, optionally filtered by
// type (?type=gallery).
func listOwnImagesHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	q := db.Where("user_id = ?", u.ID)
	if t := c.Query("type"); t != "" {
		if !models.ValidImageType(t) {
			fail(c, http.StatusBadRequest, "unknown image type")
			return
		}
		q = q.Where("type = ?", t)
	}
	var images []models.Image
	if err := q.Order("created_at desc").Find(&images).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list images", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images, "count": len(images)})
}

// uploadImageHandler stores a gallery image and its metadata.
func uploadImageHandler(c *gin.Context) {
	claims := tokenClaims(c)
	imgType := c.DefaultPostForm("type", models.ImageGallery)
	if !models.ValidImageType(imgType) {
		fail(c, http.StatusBadRequest, "unknown image type")
		return
	}
	// profile pictures carry the single-active invariant and their own
	// crop; only the dedicated endpoint handles them
	if imgType == models.ImageProfile {
		fail(c, http.StatusBadRequest, "profile pictures must be uploaded via /images/profile")
		return
	}
	kind := storage.GalleryImage
	if imgType == models.ImageThumbnail || imgType == models.ImageProject {
		kind = storage.ProjectThumbnail
	}
	sf, ok := storeUpload(c, "file", kind)
	if !ok {
		return
	}
	img := models.Image{
		URL:          sf.URL,
		StorageID:    sf.Key,
		OriginalName: sf.OriginalName,
		Description:  c.PostForm("description"),
		Type:         imgType,
		UserID:       claims.UserID,
	}
	if tags := c.PostFormArray("tags"); len(tags) > 0 {
		img.Tags = tags
	}
	if v := c.PostForm("projectId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil && id != 0 {
			pid := uint(id)
			img.ProjectID = &pid
		}
	}
	if err := db.Create(&img).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to record image", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "image uploaded", "image": img})
}

// uploadProfilePictureHandler replaces the account's profile picture:
// the new image becomes the single active profile-type image and the
// account's embedded picture reference is repointed, all in one
// transaction.
func uploadProfilePictureHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	sf, ok := storeUpload(c, "file", storage.ProfilePicture)
	if !ok {
		return
	}
	oldKey := u.Portfolio.Picture.StorageID
	img := models.Image{
		URL:          sf.URL,
		StorageID:    sf.Key,
		OriginalName: sf.OriginalName,
		Type:         models.ImageProfile,
		IsActive:     true,
		UserID:       u.ID,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Image{}).
			Where("user_id = ? AND type = ? AND is_active = ?", u.ID, models.ImageProfile, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Create(&img).Error; err != nil {
			return err
		}
		return tx.Model(u).Updates(map[string]any{
			"portfolio_picture_url":        sf.URL,
			"portfolio_picture_storage_id": sf.Key,
		}).Error
	})
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to set profile picture", err)
		return
	}
	if oldKey != sf.Key {
		deleteStored(c, oldKey)
	}
	c.JSON(http.StatusCreated, gin.H{"message": "profile picture updated", "image": img})
}

type imageUpdateRequest struct {
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	ProjectID   *uint    `json:"projectId"`
}

func updateImageHandler(c *gin.Context) {
	img, ok := loadOwned[models.Image](c, c.Param("id"))
	if !ok {
		return
	}
	var req imageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Description != nil {
		img.Description = *req.Description
	}
	if req.Tags != nil {
		img.Tags = req.Tags
	}
	if req.ProjectID != nil {
		img.ProjectID = req.ProjectID
	}
	if err := db.Save(img).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to update image", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image updated", "image": img})
}

func deleteImageHandler(c *gin.Context) {
	img, ok := loadOwned[models.Image](c, c.Param("id"))
	if !ok {
		return
	}
	if err := db.Delete(img).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to delete image", err)
		return
	}
	deleteStored(c, img.StorageID)
	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
