package main

import (
	"net/http"

	"foliohub/models"
	"foliohub/pkg/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// getActiveCVHandler serves the public (active) CV of a portfolio.
func getActiveCVHandler(c *gin.Context) {
	target, ok := publicAccount(c)
	if !ok {
		return
	}
	var doc models.CVDocument
	if err := db.Where("user_id = ? AND is_active = ?", target.ID, true).First(&doc).Error; err != nil {
		fail(c, http.StatusNotFound, "no active cv")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cv": doc})
}

func listOwnCVsHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var docs []models.CVDocument
	if err := db.Where("user_id = ?", u.ID).Order("version desc").Find(&docs).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list cvs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cvs": docs, "count": len(docs)})
}

// uploadCVHandler stores a CV PDF. Versions count up per account and the
// newest upload becomes active, deactivating the rest.
func uploadCVHandler(c *gin.Context) {
	claims := tokenClaims(c)
	sf, ok := storeUpload(c, "file", storage.CVFile)
	if !ok {
		return
	}
	var maxVersion int
	db.Model(&models.CVDocument{}).Where("user_id = ?", claims.UserID).
		Select("coalesce(max(version), 0)").Scan(&maxVersion)
	doc := models.CVDocument{
		Filename:     sf.Key,
		OriginalName: sf.OriginalName,
		URL:          sf.URL,
		StorageID:    sf.Key,
		Size:         sf.Size,
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Version:      maxVersion + 1,
		IsActive:     true,
		UserID:       claims.UserID,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CVDocument{}).
			Where("user_id = ?", claims.UserID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&doc).Error
	})
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to record cv", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "cv uploaded", "cv": doc})
}

type cvUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func updateCVHandler(c *gin.Context) {
	doc, ok := loadOwned[models.CVDocument](c, c.Param("id"))
	if !ok {
		return
	}
	var req cvUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Description != nil {
		doc.Description = *req.Description
	}
	if err := db.Save(doc).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to update cv", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cv updated", "cv": doc})
}

// activateCVHandler makes one document the account's active CV; siblings
// are deactivated in the same transaction.
func activateCVHandler(c *gin.Context) {
	doc, ok := loadOwned[models.CVDocument](c, c.Param("id"))
	if !ok {
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CVDocument{}).
			Where("user_id = ?", doc.UserID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(doc).Update("is_active", true).Error
	})
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to activate cv", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cv activated", "cv": doc})
}

func deleteCVHandler(c *gin.Context) {
	doc, ok := loadOwned[models.CVDocument](c, c.Param("id"))
	if !ok {
		return
	}
	if err := db.Delete(doc).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to delete cv", err)
		return
	}
	deleteStored(c, doc.StorageID)
	c.JSON(http.StatusOK, gin.H{"message": "cv deleted"})
}
