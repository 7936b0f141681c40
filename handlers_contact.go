package main

import (
	"net/http"

	"foliohub/models"

	"github.com/gin-gonic/gin"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// submitContactHandler records a message from a visitor to the portfolio
// named in the path. Private portfolios do not accept messages from
// non-owners.
func submitContactHandler(c *gin.Context) {
	target, ok := publicAccount(c)
	if !ok {
		return
	}
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	msg := models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Status:    models.ContactNew,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		UserID:    target.ID,
	}
	if err := db.Create(&msg).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to submit message", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "message sent", "id": msg.ID})
}

// listContactsHandler lists the account's received messages, newest
// first, optionally filtered by status.
func listContactsHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	q := db.Where("user_id = ?", u.ID)
	if s := c.Query("status"); s != "" {
		if !models.ValidContactStatus(s) {
			fail(c, http.StatusBadRequest, "unknown status")
			return
		}
		q = q.Where("status = ?", s)
	}
	var msgs []models.ContactMessage
	if err := q.Order("created_at desc").Find(&msgs).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list messages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "count": len(msgs)})
}

type contactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateContactStatusHandler moves a message through new → read →
// replied. Values outside the three are rejected and the stored status
// stays unchanged.
func updateContactStatusHandler(c *gin.Context) {
	msg, ok := loadOwned[models.ContactMessage](c, c.Param("id"))
	if !ok {
		return
	}
	var req contactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !models.ValidContactStatus(req.Status) {
		fail(c, http.StatusBadRequest, "status must be one of new, read, replied")
		return
	}
	if err := db.Model(msg).Update("status", req.Status).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to update status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated", "contact": msg})
}

func deleteContactHandler(c *gin.Context) {
	msg, ok := loadOwned[models.ContactMessage](c, c.Param("id"))
	if !ok {
		return
	}
	if err := db.Delete(msg).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to delete message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}
