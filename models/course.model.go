package models

import "gorm.io/gorm"

// Minimum skill levels
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

type Course struct {
	gorm.Model
	Title                string  `json:"title" gorm:"not null"`
	Description          string  `json:"description"`
	Weeks                string  `json:"weeks"`
	Tuition              float64 `json:"tuition"`
	MinimumSkill         string  `json:"minimumSkill"` // beginner, intermediate, advanced
	ScholarshipAvailable bool    `json:"scholarshipAvailable" gorm:"default:false"`

	BootcampID uint      `json:"bootcamp"`
	UserID     uint      `json:"user"`
	Bootcamp   *Bootcamp `json:"bootcampDetail,omitempty" gorm:"foreignKey:BootcampID"`
}
