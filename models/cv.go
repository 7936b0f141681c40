package models

import "time"

// CVDocument is an uploaded CV PDF. Only one document per account is
// active; activation deactivates the siblings.
type CVDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Filename     string    `gorm:"size:255;not null" json:"filename"`
	OriginalName string    `gorm:"size:255" json:"originalName"`
	URL          string    `gorm:"size:512;not null" json:"url"`
	StorageID    string    `gorm:"size:255;not null" json:"storageId"`
	Size         int64     `json:"size"`
	Title        string    `gorm:"size:255" json:"title"`
	Description  string    `gorm:"size:1024" json:"description"`
	Version      int       `gorm:"default:1" json:"version"`
	IsActive     bool      `gorm:"default:false;index" json:"isActive"`
	UserID       uint      `gorm:"index;not null" json:"userId"`
}

func (d CVDocument) OwnerID() uint { return d.UserID }
