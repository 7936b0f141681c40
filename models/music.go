package models

import "time"

// MusicTrack is an uploaded audio file; one track per account may be the
// default background track.
type MusicTrack struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Artist    string    `gorm:"size:255" json:"artist"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	StorageID string    `gorm:"size:255;not null" json:"storageId"`
	// Duration in seconds, when the client reports it.
	Duration  *int `json:"duration,omitempty"`
	IsDefault bool `gorm:"default:false;index" json:"isDefault"`
	UserID    uint `gorm:"index;not null" json:"userId"`
}

func (m MusicTrack) OwnerID() uint { return m.UserID }
