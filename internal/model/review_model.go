package model

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OriginalFile string    `gorm:"type:text;index" json:"original_file"`
	DisplayFile  string    `gorm:"type:text" json:"display_file"`
	Mode         string    `gorm:"type:varchar(20);index" json:"mode"` // "review" or "fix"
	Result       string    `gorm:"type:text" json:"result"`
	Skills       string    `gorm:"type:jsonb;default:'[]'" json:"skills"`
	SchemaValid  bool      `json:"schema_valid"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *Review) TableName() string {
	return "reviews"
}
