package models

import "time"

// ProfilePicture points at the stored profile image.
type ProfilePicture struct {
	URL       string `gorm:"size:512" json:"url"`
	StorageID string `gorm:"size:255" json:"storageId"`
}

// SocialLinks holds the public links shown on a portfolio.
type SocialLinks struct {
	Github   string `gorm:"size:512" json:"github"`
	Linkedin string `gorm:"size:512" json:"linkedin"`
	Twitter  string `gorm:"size:512" json:"twitter"`
	Website  string `gorm:"size:512" json:"website"`
}

// ThemeColors are the portfolio's configurable colors.
type ThemeColors struct {
	Primary    string `gorm:"size:32" json:"primary"`
	Background string `gorm:"size:32" json:"background"`
	Text       string `gorm:"size:32" json:"text"`
}

// Portfolio is the profile value object embedded on every account.
// FullName is the only mandatory field; older records may miss the rest,
// which the login path and cmd/backfill_profiles fill in.
type Portfolio struct {
	FullName      string         `gorm:"size:255" json:"fullName"`
	Bio           string         `gorm:"size:2048" json:"bio"`
	Title         string         `gorm:"size:255" json:"title"`
	Location      string         `gorm:"size:255" json:"location"`
	ContactEmail  string         `gorm:"size:255" json:"contactEmail"`
	Phone         string         `gorm:"size:64" json:"phone"`
	Picture       ProfilePicture `gorm:"embedded;embeddedPrefix:picture_" json:"profilePicture"`
	Social        SocialLinks    `gorm:"embedded;embeddedPrefix:social_" json:"socialLinks"`
	Theme         ThemeColors    `gorm:"embedded;embeddedPrefix:theme_" json:"theme"`
	IsPublic      bool           `gorm:"default:true;not null" json:"isPublic"`
	ShowAnalytics bool           `gorm:"default:false;not null" json:"showAnalytics"`
	CustomDomain  string         `gorm:"size:255" json:"customDomain"`
}

// RoleAdmin is the only role the platform hands out today; every
// registered user administers their own portfolio.
const RoleAdmin = "admin"

// User is a registered account owning exactly one portfolio.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `gorm:"index" json:"-"`
	Username       string     `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email          string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	HashedPassword []byte     `gorm:"not null" json:"-"`
	Role           string     `gorm:"size:32;not null;default:admin" json:"role"`
	// IsDefaultUser marks the portfolio served at the bare root path.
	// At most one account should carry it; setDefaultPortfolio swaps it
	// inside a transaction.
	IsDefaultUser bool      `gorm:"default:false;index" json:"isDefaultUser"`
	Portfolio     Portfolio `gorm:"embedded;embeddedPrefix:portfolio_" json:"portfolioData"`
}
