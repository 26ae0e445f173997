package service

import (
	"context"

	"markethub/internal/models"

	"github.com/google/uuid"
)

type CreateReviewInput struct {
	ProductID uuid.UUID
	Rating    int16
	Comment   *string
}

type UpdateReviewInput struct {
	Rating  *int16
	Comment *string
}

type ReviewListInput struct {
	ProductID *uuid.UUID
	UserID    *uuid.UUID
	Limit     int
	Offset    int
}

type ReviewService interface {
	CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListReviews(ctx context.Context, in ReviewListInput) ([]models.Review, int64, error)
	UpdateReview(ctx context.Context, id uuid.UUID, in UpdateReviewInput) (*models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}
