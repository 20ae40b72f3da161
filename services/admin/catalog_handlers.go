package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogUseCaseInterface define a interface para o use case do catálogo
type CatalogUseCaseInterface interface {
	CreateBank(ctx context.Context, input NewBank) (*Bank, error)
	ListBanks(ctx context.Context) ([]Bank, error)
	GetBank(ctx context.Context, id string) (*Bank, error)
	UpdateBank(ctx context.Context, id string, patch BankPatch) (*Bank, error)
	DeleteBank(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, input NewCategory) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, input NewProduct) (*Product, error)
	ListProducts(ctx context.Context) ([]ProductWithCategory, error)
	GetProduct(ctx context.Context, id string) (*ProductWithCategory, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CatalogHandler contém os handlers HTTP de bancos, categorias e produtos
type CatalogHandler struct {
	useCase CatalogUseCaseInterface
	storage FileStorage
	logger  *zap.Logger
}

// NewCatalogHandler cria uma nova instância de CatalogHandler
func NewCatalogHandler(useCase CatalogUseCaseInterface, storage FileStorage, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		useCase: useCase,
		storage: storage,
		logger:  logger,
	}
}

// saveImage grava o arquivo "image" se presente; devolve nil quando não há arquivo
func (h *CatalogHandler) saveImage(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	ref, err := h.storage.Save(c.Request.Context(), file)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func postFormPtr(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

// ── Banks ───────────────────────────────────────────────

func (h *CatalogHandler) CreateBank(c *gin.Context) {
	var input NewBank
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	bank, err := h.useCase.CreateBank(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err, "Error creating bank")
		return
	}
	c.JSON(http.StatusCreated, bank)
}

func (h *CatalogHandler) ListBanks(c *gin.Context) {
	banks, err := h.useCase.ListBanks(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Error getting banks")
		return
	}
	c.JSON(http.StatusOK, banks)
}

func (h *CatalogHandler) GetBank(c *gin.Context) {
	bank, err := h.useCase.GetBank(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Error getting bank")
		return
	}
	c.JSON(http.StatusOK, bank)
}

func (h *CatalogHandler) UpdateBank(c *gin.Context) {
	var patch BankPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	bank, err := h.useCase.UpdateBank(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err, "Error updating bank")
		return
	}
	c.JSON(http.StatusOK, bank)
}

func (h *CatalogHandler) DeleteBank(c *gin.Context) {
	if err := h.useCase.DeleteBank(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Error deleting bank")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bank deleted successfully"})
}

// ── Categories ──────────────────────────────────────────

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var input NewCategory
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	image, err := h.saveImage(c)
	if err != nil {
		respondError(c, h.logger, err, "Error creating category")
		return
	}
	if image != nil {
		input.ImageURL = *image
	}

	category, err := h.useCase.CreateCategory(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err, "Error creating category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Error getting categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.useCase.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Error getting category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var patch CategoryPatch
	if isMultipart(c) {
		patch.Name = postFormPtr(c, "name")
		patch.Description = postFormPtr(c, "description")
		image, err := h.saveImage(c)
		if err != nil {
			respondError(c, h.logger, err, "Error updating category")
			return
		}
		patch.ImageURL = image
	} else if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	category, err := h.useCase.UpdateCategory(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err, "Error updating category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.useCase.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Error deleting category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// ── Products ────────────────────────────────────────────

// productForm é a variante multipart do cadastro de produto
type productForm struct {
	CategoryID  string `form:"category_id" binding:"required"`
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Stock       *int   `form:"stock"`
	Price       string `form:"price" binding:"required"`
}

func (h *CatalogHandler) bindNewProduct(c *gin.Context) (NewProduct, error) {
	if !isMultipart(c) {
		var input NewProduct
		if err := c.ShouldBindJSON(&input); err != nil {
			return NewProduct{}, &ValidationError{Message: bindingErrorMessage(err)}
		}
		return input, nil
	}

	var form productForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		return NewProduct{}, &ValidationError{Message: bindingErrorMessage(err)}
	}
	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		return NewProduct{}, newValidationError("invalid price")
	}

	input := NewProduct{
		CategoryID:  form.CategoryID,
		Name:        form.Name,
		Description: form.Description,
		Stock:       form.Stock,
		Price:       price,
	}
	image, err := h.saveImage(c)
	if err != nil {
		return NewProduct{}, err
	}
	if image != nil {
		input.ImageURL = *image
	}
	return input, nil
}

func (h *CatalogHandler) bindProductPatch(c *gin.Context) (ProductPatch, error) {
	var patch ProductPatch
	if !isMultipart(c) {
		if err := c.ShouldBindJSON(&patch); err != nil {
			return ProductPatch{}, newValidationError("Invalid JSON payload")
		}
		return patch, nil
	}

	patch.CategoryID = postFormPtr(c, "category_id")
	patch.Name = postFormPtr(c, "name")
	patch.Description = postFormPtr(c, "description")
	if raw := postFormPtr(c, "stock"); raw != nil {
		stock, err := strconv.Atoi(*raw)
		if err != nil {
			return ProductPatch{}, newValidationError("invalid stock")
		}
		patch.Stock = &stock
	}
	if raw := postFormPtr(c, "price"); raw != nil {
		price, err := decimal.NewFromString(*raw)
		if err != nil {
			return ProductPatch{}, newValidationError("invalid price")
		}
		patch.Price = &price
	}
	image, err := h.saveImage(c)
	if err != nil {
		return ProductPatch{}, err
	}
	patch.ImageURL = image
	return patch, nil
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	input, err := h.bindNewProduct(c)
	if err != nil {
		respondError(c, h.logger, err, "Error creating product")
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err, "Error creating product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Error getting products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.useCase.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Error getting product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	patch, err := h.bindProductPatch(c)
	if err != nil {
		respondError(c, h.logger, err, "Error updating product")
		return
	}

	product, err := h.useCase.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err, "Error updating product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.useCase.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Error deleting product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully!"})
}
