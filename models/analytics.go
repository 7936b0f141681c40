package models

import (
	"time"

	"gorm.io/datatypes"
)

// Analytics event types.
const (
	EventPageView          = "page_view"
	EventProjectClick      = "project_click"
	EventContactFormView   = "contact_form_view"
	EventContactFormSubmit = "contact_form_submit"
	EventImageView         = "image_view"
	EventSkillView         = "skill_view"
	EventExternalLinkClick = "external_link_click"
)

// ValidEventType reports whether t is a known analytics event type.
func ValidEventType(t string) bool {
	switch t {
	case EventPageView, EventProjectClick, EventContactFormView,
		EventContactFormSubmit, EventImageView, EventSkillView,
		EventExternalLinkClick:
		return true
	}
	return false
}

// Device classes derived from the User-Agent.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
)

// AnalyticsEvent is one visitor interaction ping. Rows are append-only;
// ingestion never mutates past events.
type AnalyticsEvent struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
	Type       string         `gorm:"size:32;not null;index" json:"type"`
	Page       string         `gorm:"size:512" json:"page"`
	ProjectID  *uint          `gorm:"index" json:"projectId,omitempty"`
	ImageID    *uint          `json:"imageId,omitempty"`
	SkillID    *uint          `json:"skillId,omitempty"`
	SessionID  string         `gorm:"size:64;index" json:"sessionId"`
	DeviceType string         `gorm:"size:16;index" json:"deviceType"`
	Metadata   datatypes.JSON `json:"metadata"`
	UserID     uint           `gorm:"index;not null" json:"userId"`
}

func (e AnalyticsEvent) OwnerID() uint { return e.UserID }

// EventMetadata is the blob serialized into AnalyticsEvent.Metadata.
type EventMetadata struct {
	UserAgent string `json:"userAgent,omitempty"`
	IP        string `json:"ip,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	ClickX    int    `json:"clickX,omitempty"`
	ClickY    int    `json:"clickY,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
}

// VisitorSession correlates events from one browsing session. The session
// id is client-generated (or minted server-side on the first page view).
type VisitorSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	SessionID    string    `gorm:"size:64;not null;uniqueIndex:idx_session_owner" json:"sessionId"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_session_owner;index" json:"userId"`
	IP           string    `gorm:"size:64" json:"ip"`
	UserAgent    string    `gorm:"size:512" json:"userAgent"`
	FirstVisit   time.Time `json:"firstVisit"`
	LastActivity time.Time `gorm:"index" json:"lastActivity"`
	PageViews    int       `gorm:"default:0" json:"pageViews"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	Referrer     string    `gorm:"size:512" json:"referrer"`
	DeviceType   string    `gorm:"size:16" json:"deviceType"`
}

func (s VisitorSession) OwnerID() uint { return s.UserID }
