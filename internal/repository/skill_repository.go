package repository

import (
	"github.com/fadilmartias/cv-reviewer/internal/model"
	"gorm.io/gorm"
)

type SkillRepositoryInterface interface {
	GetSkills() ([]model.Skill, error)
	GetSkillsPage(page, pageSize int) ([]model.Skill, int64, error)
	CreateSkill(skill *model.Skill) error
	FindSkillByName(name string) (*model.Skill, error)
}

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db}
}

// GetSkills returns the whole catalog, highest priority first.
func (r *SkillRepository) GetSkills() ([]model.Skill, error) {
	var skills []model.Skill
	err := r.db.Order("priority DESC").Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) GetSkillsPage(page, pageSize int) ([]model.Skill, int64, error) {
	var (
		skills []model.Skill
		total  int64
	)
	if err := r.db.Model(&model.Skill{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Order("priority DESC").
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&skills).Error
	return skills, total, err
}

func (r *SkillRepository) CreateSkill(skill *model.Skill) error {
	return r.db.Create(skill).Error
}

func (r *SkillRepository) FindSkillByName(name string) (*model.Skill, error) {
	var s model.Skill
	err := r.db.First(&s, "LOWER(name) = LOWER(?)", name).Error
	return &s, err
}
