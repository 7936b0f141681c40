package main

import (
	"net/http"

	"foliohub/models"
	"foliohub/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// projectOrder is the public listing contract: featured first, explicit
// order ascending, then newest first.
const projectOrder = "featured desc, sort_order asc, created_at desc"

// listProjectsByUsernameHandler is the public project listing.
func listProjectsByUsernameHandler(c *gin.Context) {
	target, ok := publicAccount(c)
	if !ok {
		return
	}
	var projects []models.Project
	if err := db.Where("user_id = ?", target.ID).Order(projectOrder).Find(&projects).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects, "count": len(projects)})
}

func listOwnProjectsHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var projects []models.Project
	if err := db.Where("user_id = ?", u.ID).Order(projectOrder).Find(&projects).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects, "count": len(projects)})
}

type projectRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Thumbnail   string   `json:"thumbnail"`
	LiveURL     string   `json:"liveUrl"`
	RepoURL     string   `json:"repoUrl"`
	Featured    *bool    `json:"featured"`
	Order       *int     `json:"order"`
}

// createProjectHandler persists a project for the token's account; the
// owner reference never comes from the body.
func createProjectHandler(c *gin.Context) {
	claims := tokenClaims(c)
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	p := models.Project{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		Thumbnail:   req.Thumbnail,
		LiveURL:     req.LiveURL,
		RepoURL:     req.RepoURL,
		UserID:      claims.UserID,
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.Order != nil {
		p.Order = *req.Order
	}
	if err := db.Create(&p).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to create project", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "project created", "project": p})
}

func updateProjectHandler(c *gin.Context) {
	p, ok := loadOwned[models.Project](c, c.Param("id"))
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	p.Title = req.Title
	p.Description = req.Description
	p.Skills = req.Skills
	if req.Thumbnail != "" {
		p.Thumbnail = req.Thumbnail
	}
	p.LiveURL = req.LiveURL
	p.RepoURL = req.RepoURL
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.Order != nil {
		p.Order = *req.Order
	}
	if err := db.Save(p).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to update project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project updated", "project": p})
}

func deleteProjectHandler(c *gin.Context) {
	p, ok := loadOwned[models.Project](c, c.Param("id"))
	if !ok {
		return
	}
	if err := db.Delete(p).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to delete project", err)
		return
	}
	if p.ThumbnailID != "" {
		// the upload handler records a paired Image row for the thumbnail;
		// drop it too so no stale record keeps pointing at the object
		if err := db.Where("user_id = ? AND storage_id = ?", p.UserID, p.ThumbnailID).
			Delete(&models.Image{}).Error; err != nil {
			log.Warn().Err(err).Str("key", p.ThumbnailID).Msg("thumbnail record cleanup failed")
		}
		deleteStored(c, p.ThumbnailID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// uploadProjectThumbnailHandler stores a thumbnail and, when a project id
// accompanies the file, attaches it to that project.
func uploadProjectThumbnailHandler(c *gin.Context) {
	claims := tokenClaims(c)
	sf, ok := storeUpload(c, "file", storage.ProjectThumbnail)
	if !ok {
		return
	}
	if id := c.PostForm("projectId"); id != "" {
		p, ok := loadOwned[models.Project](c, id)
		if !ok {
			deleteStored(c, sf.Key)
			return
		}
		old := p.ThumbnailID
		p.Thumbnail = sf.URL
		p.ThumbnailID = sf.Key
		if err := db.Save(p).Error; err != nil {
			deleteStored(c, sf.Key)
			failErr(c, http.StatusInternalServerError, "failed to attach thumbnail", err)
			return
		}
		deleteStored(c, old)
	}
	img := models.Image{
		URL:          sf.URL,
		StorageID:    sf.Key,
		OriginalName: sf.OriginalName,
		Type:         models.ImageProject,
		UserID:       claims.UserID,
	}
	if err := db.Create(&img).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to record upload", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "thumbnail uploaded", "url": sf.URL, "storageId": sf.Key, "image": img})
}
