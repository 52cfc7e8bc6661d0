package model

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(120);uniqueIndex" json:"name"`
	Category    string    `gorm:"type:varchar(120);index" json:"category"`
	SkillURL    string    `gorm:"type:text" json:"skill_url"`
	Description string    `gorm:"type:text" json:"description"`
	Priority    int       `gorm:"default:0" json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Skill) TableName() string {
	return "skills"
}
