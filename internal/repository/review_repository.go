package repository

import (
	"errors"

	"github.com/fadilmartias/cv-reviewer/internal/model"
	"gorm.io/gorm"
)

type ReviewRepositoryInterface interface {
	CreateReview(review *model.Review) error
	FindLatestReview(originalFile, mode string) (*model.Review, error)
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db}
}

func (r *ReviewRepository) CreateReview(review *model.Review) error {
	return r.db.Create(review).Error
}

// FindLatestReview returns nil without error when the file has no stored result
// for the mode.
func (r *ReviewRepository) FindLatestReview(originalFile, mode string) (*model.Review, error) {
	var review model.Review
	err := r.db.
		Where("original_file = ? AND mode = ?", originalFile, mode).
		Order("created_at DESC").
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}
