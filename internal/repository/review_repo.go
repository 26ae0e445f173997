package repository

import (
	"context"
	"errors"

	"markethub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewListFilter struct {
	ProductID *uuid.UUID
	UserID    *uuid.UUID
	Limit     int
	Offset    int
}

type ReviewRepo interface {
	Create(ctx context.Context, rev *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	List(ctx context.Context, f ReviewListFilter) ([]models.Review, int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) ReviewRepo { return &reviewRepo{db: db} }

func (r *reviewRepo) Create(ctx context.Context, rev *models.Review) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var rev models.Review
	err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rev, err
}

func (r *reviewRepo) ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *reviewRepo) List(ctx context.Context, f ReviewListFilter) ([]models.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{})

	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Review
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

func (r *reviewRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(fields).Error
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
