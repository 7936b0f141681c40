package main

import (
	"net/http"
	"time"

	"foliohub/models"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type trackRequest struct {
	Type      string `json:"type" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Page      string `json:"page"`
	ProjectID *uint  `json:"projectId"`
	ImageID   *uint  `json:"imageId"`
	SkillID   *uint  `json:"skillId"`
	SessionID string `json:"sessionId"`
	Referrer  string `json:"referrer"`
	Duration  int    `json:"duration"`
	ClickX    int    `json:"clickX"`
	ClickY    int    `json:"clickY"`
}

// trackHandler ingests one visitor event. Ingestion is append-only: a
// page view may mint or bump the visitor session, but no past event row
// is ever touched.
func trackHandler(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !models.ValidEventType(req.Type) {
		fail(c, http.StatusBadRequest, "unknown event type")
		return
	}
	var target models.User
	if err := db.Where("username = ?", req.Username).First(&target).Error; err != nil {
		fail(c, http.StatusNotFound, "portfolio not found")
		return
	}

	ua := c.Request.UserAgent()
	ip := c.ClientIP()
	device := sniffDevice(ua)
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if req.Type == models.EventPageView {
		now := time.Now()
		var sess models.VisitorSession
		err := db.Where("session_id = ? AND user_id = ?", sessionID, target.ID).First(&sess).Error
		if err != nil {
			sess = models.VisitorSession{
				SessionID:    sessionID,
				UserID:       target.ID,
				IP:           ip,
				UserAgent:    ua,
				FirstVisit:   now,
				LastActivity: now,
				PageViews:    1,
				IsActive:     true,
				Referrer:     req.Referrer,
				DeviceType:   device,
			}
			if err := db.Create(&sess).Error; err != nil {
				log.Warn().Err(err).Str("session", sessionID).Msg("visitor session create failed")
			}
		} else {
			if err := db.Model(&sess).Updates(map[string]any{
				"last_activity": now,
				"page_views":    gorm.Expr("page_views + 1"),
				"is_active":     true,
			}).Error; err != nil {
				log.Warn().Err(err).Str("session", sessionID).Msg("visitor session update failed")
			}
		}
	}

	meta, _ := json.Marshal(models.EventMetadata{
		UserAgent: ua,
		IP:        ip,
		Referrer:  req.Referrer,
		Duration:  req.Duration,
		ClickX:    req.ClickX,
		ClickY:    req.ClickY,
	})
	event := models.AnalyticsEvent{
		Type:       req.Type,
		Page:       req.Page,
		ProjectID:  req.ProjectID,
		ImageID:    req.ImageID,
		SkillID:    req.SkillID,
		SessionID:  sessionID,
		DeviceType: device,
		Metadata:   datatypes.JSON(meta),
		UserID:     target.ID,
	}
	if err := db.Create(&event).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to record event", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "event recorded", "sessionId": sessionID})
}

// dashboardHandler serves the windowed rollup for the admin's own
// portfolio. ?window=24h|7d|30d|90d, defaulting to 7d.
func dashboardHandler(c *gin.Context) {
	claims := tokenClaims(c)
	window := c.DefaultQuery("window", "7d")
	if _, ok := parseWindow(window); !ok {
		fail(c, http.StatusBadRequest, "window must be one of 24h, 7d, 30d, 90d")
		return
	}
	stats, err := computeDashboard(c.Request.Context(), claims.UserID, window)
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to compute dashboard", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func realtimeHandler(c *gin.Context) {
	claims := tokenClaims(c)
	stats, err := computeRealtime(c.Request.Context(), claims.UserID)
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to compute realtime stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
