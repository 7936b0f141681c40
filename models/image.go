package models

import "time"

// Image type enum.
const (
	ImageGallery   = "gallery"
	ImageThumbnail = "thumbnail"
	ImageProject   = "project"
	ImageProfile   = "profile"
)

// ValidImageType reports whether t is one of the known image kinds.
func ValidImageType(t string) bool {
	switch t {
	case ImageGallery, ImageThumbnail, ImageProject, ImageProfile:
		return true
	}
	return false
}

// Image is an uploaded picture (gallery shot, project art or profile
// picture) stored on the object store.
type Image struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	URL          string    `gorm:"size:512;not null" json:"url"`
	StorageID    string    `gorm:"size:255;not null" json:"storageId"`
	OriginalName string    `gorm:"size:255" json:"originalName"`
	Description  string    `gorm:"size:1024" json:"description"`
	Tags         []string  `gorm:"serializer:json" json:"tags"`
	Type         string    `gorm:"size:32;not null;default:gallery;index" json:"type"`
	ProjectID    *uint     `gorm:"index" json:"projectId,omitempty"`
	// IsActive only matters for profile-type images: uploading a new
	// profile picture deactivates the previous one.
	IsActive bool `gorm:"default:true" json:"isActive"`
	UserID   uint `gorm:"index;not null" json:"userId"`
}

func (i Image) OwnerID() uint { return i.UserID }
