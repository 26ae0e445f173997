package handlers

import (
	"net/http"
	"strconv"

	"markethub/internal/dto"
	"markethub/internal/models"
	"markethub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

func toCategoryResponse(cat *models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
}

func toProductResponse(p *models.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// параметры limit/offset с дефолтом и верхней границей
func parsePage(c *gin.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// ListCategories godoc
// @Summary Список категорий
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryResponse(&cats[i]))
	}
	c.JSON(http.StatusOK, out)
}

// CreateCategory godoc
// @Summary Создание категории (staff)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CreateCategoryRequest true "Категория"
// @Success 201 {object} dto.CategoryResponse
// @Failure 403 {object} dto.BaseError
// @Failure 409 {object} dto.BaseError "Slug уже занят"
// @Router /api/v1/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.log, err)
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), service.CreateCategoryInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

// UpdateCategory godoc
// @Summary Изменение категории (staff)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID категории"
// @Param category body dto.UpdateCategoryRequest true "Изменяемые поля"
// @Success 200 {object} dto.CategoryResponse
// @Router /api/v1/categories/{id} [patch]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.log, err)
		return
	}
	cat, err := h.catalog.UpdateCategory(c.Request.Context(), id, service.UpdateCategoryInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// DeleteCategory godoc
// @Summary Удаление категории (staff)
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "ID категории"
// @Success 204 "Удалено"
// @Router /api/v1/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProducts godoc
// @Summary Список товаров
// @Tags catalog
// @Produce json
// @Param category_id query string false "Фильтр по категории"
// @Param seller_id query string false "Фильтр по продавцу"
// @Param q query string false "Поиск по названию"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.ProductListResponse
// @Router /api/v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	in := service.ProductListInput{Query: c.Query("q")}
	in.Limit, in.Offset = parsePage(c)
	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid category_id", nil))
			return
		}
		in.CategoryID = &id
	}
	if v := c.Query("seller_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid seller_id", nil))
			return
		}
		in.SellerID = &id
	}

	items, total, err := h.catalog.ListProducts(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	resp := dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(items)), Total: total}
	for i := range items {
		resp.Items = append(resp.Items, toProductResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetProduct godoc
// @Summary Карточка товара
// @Tags catalog
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.BaseError
// @Router /api/v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

// CreateProduct godoc
// @Summary Создание товара (seller)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.CreateProductRequest true "Товар"
// @Success 201 {object} dto.ProductResponse
// @Failure 403 {object} dto.BaseError
// @Router /api/v1/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.log, err)
		return
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	h.log.Info("product created", zap.String("product_id", p.ID.String()))
	c.JSON(http.StatusCreated, toProductResponse(p))
}

// UpdateProduct godoc
// @Summary Изменение товара (владелец)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param product body dto.UpdateProductRequest true "Изменяемые поля"
// @Success 200 {object} dto.ProductResponse
// @Failure 403 {object} dto.BaseError
// @Router /api/v1/products/{id} [patch]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.log, err)
		return
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

// DeleteProduct godoc
// @Summary Удаление товара (владелец)
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 204 "Удалено"
// @Failure 409 {object} dto.BaseError "Товар уже встречается в заказах"
// @Router /api/v1/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
