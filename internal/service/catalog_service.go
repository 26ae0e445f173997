package service

import (
	"context"
	"errors"

	"markethub/internal/models"
	"markethub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{repo: repo, log: log}
}

func (s *catalogService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff {
		return nil, ErrForbidden
	}

	c := &models.Category{Name: in.Name, Slug: in.Slug}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return c, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*models.Category, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff {
		return nil, ErrForbidden
	}

	c, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Slug != nil {
		fields["slug"] = *in.Slug
	}
	if err := s.repo.Categories.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return s.repo.Categories.GetByID(ctx, id)
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	actor, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	if !actor.IsStaff {
		return ErrForbidden
	}

	ok, err := s.repo.Categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

// ListCategories открыт без аутентификации.
func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories.List(ctx)
}

func (s *catalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleSeller {
		return nil, ErrForbidden
	}
	if in.PriceCents < 0 {
		return nil, ErrPriceNegative
	}
	if in.Stock < 0 {
		return nil, ErrStockNegative
	}

	cat, err := s.repo.Categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		SellerID:    actor.UserID, // владелец — всегда автор запроса
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, p.ID)
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) ListProducts(ctx context.Context, in ProductListInput) ([]models.Product, int64, error) {
	return s.repo.Products.List(ctx, repository.ProductListFilter{
		SellerID:   in.SellerID,
		CategoryID: in.CategoryID,
		Query:      in.Query,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
}

// ownProduct проверяет, что товар существует и принадлежит актору-продавцу.
func (s *catalogService) ownProduct(ctx context.Context, actor Actor, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if p.SellerID != actor.UserID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*models.Product, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownProduct(ctx, actor, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			return nil, ErrPriceNegative
		}
		fields["price_cents"] = *in.PriceCents
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, ErrStockNegative
		}
		fields["stock"] = *in.Stock
	}
	if in.CategoryID != nil {
		cat, err := s.repo.Categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
		fields["category_id"] = *in.CategoryID
	}

	if err := s.repo.Products.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	actor, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	if _, err := s.ownProduct(ctx, actor, id); err != nil {
		return err
	}

	ok, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		// RESTRICT-FK: товар, на который ссылаются позиции заказов
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrProductInUse
		}
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}
