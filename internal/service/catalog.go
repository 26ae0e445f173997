package service

import (
	"context"

	"markethub/internal/models"

	"github.com/google/uuid"
)

type CreateCategoryInput struct {
	Name string
	Slug string
}

type UpdateCategoryInput struct {
	Name *string
	Slug *string
}

type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Stock       int32
	CategoryID  uuid.UUID
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Stock       *int32
	CategoryID  *uuid.UUID
}

type ProductListInput struct {
	SellerID   *uuid.UUID
	CategoryID *uuid.UUID
	Query      string
	Limit      int
	Offset     int
}

type CatalogService interface {
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, in ProductListInput) ([]models.Product, int64, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
