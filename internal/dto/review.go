package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Rating    int16     `json:"rating" binding:"required,min=1,max=5"`
	Comment   *string   `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int16  `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int16     `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReviewListResponse struct {
	Items []ReviewResponse `json:"items"`
	Total int64            `json:"total"`
}
