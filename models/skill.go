package models

import "time"

// Skill categories.
const (
	SkillFrontend = "Frontend"
	SkillBackend  = "Backend"
	SkillDatabase = "Database"
	SkillDevOps   = "DevOps"
	SkillMobile   = "Mobile"
	SkillDesign   = "Design"
	SkillOther    = "Other"
)

// Proficiency levels.
const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyExpert       = "Expert"
)

// ValidSkillCategory reports whether c is a known category.
func ValidSkillCategory(c string) bool {
	switch c {
	case SkillFrontend, SkillBackend, SkillDatabase, SkillDevOps, SkillMobile, SkillDesign, SkillOther:
		return true
	}
	return false
}

// ValidProficiency reports whether p is a known proficiency level.
func ValidProficiency(p string) bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

// Skill is a technology or ability listed on a portfolio. Names are
// unique case-insensitively across the whole collection, not per account.
type Skill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Category    string    `gorm:"size:32;not null;default:Other" json:"category"`
	Proficiency string    `gorm:"size:32;not null;default:Intermediate" json:"proficiency"`
	Icon        string    `gorm:"size:255" json:"icon"`
	Color       string    `gorm:"size:32" json:"color"`
	Description string    `gorm:"size:1024" json:"description"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
}

func (s Skill) OwnerID() uint { return s.UserID }
