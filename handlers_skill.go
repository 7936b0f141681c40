package main

import (
	"net/http"
	"strings"

	"foliohub/models"

	"github.com/gin-gonic/gin"
)

func listSkillsByUsernameHandler(c *gin.Context) {
	target, ok := publicAccount(c)
	if !ok {
		return
	}
	var skills []models.Skill
	if err := db.Where("user_id = ?", target.ID).
		Order("category asc, name asc").Find(&skills).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list skills", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills, "count": len(skills)})
}

func listOwnSkillsHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var skills []models.Skill
	if err := db.Where("user_id = ?", u.ID).
		Order("category asc, name asc").Find(&skills).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list skills", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills, "count": len(skills)})
}

type skillRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (r *skillRequest) validate() string {
	if r.Category != "" && !models.ValidSkillCategory(r.Category) {
		return "unknown skill category"
	}
	if r.Proficiency != "" && !models.ValidProficiency(r.Proficiency) {
		return "unknown proficiency level"
	}
	return ""
}

// createSkillHandler adds a skill. Names are unique case-insensitively
// across the entire collection.
func createSkillHandler(c *gin.Context) {
	claims := tokenClaims(c)
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}
	name := strings.TrimSpace(req.Name)
	var existing models.Skill
	if err := db.Where("lower(name) = lower(?)", name).First(&existing).Error; err == nil {
		fail(c, http.StatusConflict, "a skill with this name already exists")
		return
	}
	s := models.Skill{
		Name:        name,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
		UserID:      claims.UserID,
	}
	if s.Category == "" {
		s.Category = models.SkillOther
	}
	if s.Proficiency == "" {
		s.Proficiency = models.ProficiencyIntermediate
	}
	if err := db.Create(&s).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to create skill", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "skill created", "skill": s})
}

func updateSkillHandler(c *gin.Context) {
	s, ok := loadOwned[models.Skill](c, c.Param("id"))
	if !ok {
		return
	}
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}
	name := strings.TrimSpace(req.Name)
	if !strings.EqualFold(name, s.Name) {
		var existing models.Skill
		if err := db.Where("lower(name) = lower(?) AND id <> ?", name, s.ID).First(&existing).Error; err == nil {
			fail(c, http.StatusConflict, "a skill with this name already exists")
			return
		}
	}
	s.Name = name
	if req.Category != "" {
		s.Category = req.Category
	}
	if req.Proficiency != "" {
		s.Proficiency = req.Proficiency
	}
	s.Icon = req.Icon
	s.Color = req.Color
	s.Description = req.Description
	if err := db.Save(s).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to update skill", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "skill updated", "skill": s})
}

func deleteSkillHandler(c *gin.Context) {
	s, ok := loadOwned[models.Skill](c, c.Param("id"))
	if !ok {
		return
	}
	if err := db.Delete(s).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to delete skill", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "skill deleted"})
}
