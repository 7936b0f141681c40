package models

import "time"

// Contact message statuses. Transitions are admin-driven only.
const (
	ContactNew     = "new"
	ContactRead    = "read"
	ContactReplied = "replied"
)

// ValidContactStatus reports whether s is one of the three statuses.
func ValidContactStatus(s string) bool {
	return s == ContactNew || s == ContactRead || s == ContactReplied
}

// ContactMessage is a message left by a portfolio visitor.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Message   string    `gorm:"size:8192;not null" json:"message"`
	Status    string    `gorm:"size:16;not null;default:new;index" json:"status"`
	IP        string    `gorm:"size:64" json:"ip"`
	UserAgent string    `gorm:"size:512" json:"userAgent"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
}

func (c ContactMessage) OwnerID() uint { return c.UserID }
