package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=128"`
	Slug string `json:"slug" binding:"required,min=1,max=128"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=128"`
	Slug *string `json:"slug" binding:"omitempty,min=1,max=128"`
}

type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type CreateProductRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=255"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents" binding:"min=0"`
	Stock       int32     `json:"stock" binding:"min=0"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	PriceCents  *int64     `json:"price_cents" binding:"omitempty,min=0"`
	Stock       *int32     `json:"stock" binding:"omitempty,min=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int32     `json:"stock"`
	CategoryID  uuid.UUID `json:"category_id"`
	SellerID    uuid.UUID `json:"seller_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
}
