package models

import "time"

// Project is a portfolio project card.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:4096" json:"description"`
	Skills      []string  `gorm:"serializer:json" json:"skills"`
	Thumbnail   string    `gorm:"size:512" json:"thumbnail"`
	ThumbnailID string    `gorm:"size:255" json:"thumbnailId"`
	LiveURL     string    `gorm:"size:512" json:"liveUrl"`
	RepoURL     string    `gorm:"size:512" json:"repoUrl"`
	Featured    bool      `gorm:"default:false;index" json:"featured"`
	// Order is the explicit sort key within a portfolio. Public listing
	// orders featured first, then Order ascending, then newest first.
	Order  int  `gorm:"column:sort_order;default:0" json:"order"`
	UserID uint `gorm:"index;not null" json:"userId"`
}

func (p Project) OwnerID() uint { return p.UserID }
