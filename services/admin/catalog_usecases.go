package main

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogUseCase contém as regras de CRUD de bancos, categorias e produtos
type CatalogUseCase struct {
	banks      BankRepository
	categories CategoryRepository
	products   ProductRepository
	logger     *zap.Logger
}

// NewCatalogUseCase cria uma nova instância de CatalogUseCase
func NewCatalogUseCase(
	banks BankRepository,
	categories CategoryRepository,
	products ProductRepository,
	logger *zap.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		banks:      banks,
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func blankPtr(s *string) bool {
	return s != nil && blank(*s)
}

// ── Banks ───────────────────────────────────────────────

func (uc *CatalogUseCase) CreateBank(ctx context.Context, input NewBank) (*Bank, error) {
	if blank(input.BankName) || blank(input.AccountName) || blank(input.AccountNumber) {
		return nil, newValidationError("bank_name, account_name and account_number are required")
	}

	bank := &Bank{
		ID:            uuid.New().String(),
		BankName:      input.BankName,
		AccountName:   input.AccountName,
		AccountNumber: input.AccountNumber,
	}
	if err := uc.banks.CreateBank(ctx, bank); err != nil {
		return nil, err
	}
	uc.logger.Info("✅ [BANK] created", zap.String("bank_id", bank.ID))
	return bank, nil
}

func (uc *CatalogUseCase) ListBanks(ctx context.Context) ([]Bank, error) {
	return uc.banks.FindAllBanks(ctx)
}

func (uc *CatalogUseCase) GetBank(ctx context.Context, id string) (*Bank, error) {
	return uc.banks.FindBankByID(ctx, id)
}

func (uc *CatalogUseCase) UpdateBank(ctx context.Context, id string, patch BankPatch) (*Bank, error) {
	if blankPtr(patch.BankName) || blankPtr(patch.AccountName) || blankPtr(patch.AccountNumber) {
		return nil, newValidationError("bank fields must not be blank")
	}
	return uc.banks.UpdateBank(ctx, id, patch)
}

func (uc *CatalogUseCase) DeleteBank(ctx context.Context, id string) error {
	if _, err := uc.banks.DeleteBank(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("♻️ [BANK] deleted", zap.String("bank_id", id))
	return nil
}

// ── Categories ──────────────────────────────────────────

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, input NewCategory) (*Category, error) {
	if blank(input.Name) {
		return nil, newValidationError("name is required")
	}

	category := &Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := uc.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	uc.logger.Info("✅ [CATEGORY] created", zap.String("category_id", category.ID))
	return category, nil
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]Category, error) {
	return uc.categories.FindAllCategories(ctx)
}

func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*Category, error) {
	return uc.categories.FindCategoryByID(ctx, id)
}

func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*Category, error) {
	if blankPtr(patch.Name) {
		return nil, newValidationError("name must not be blank")
	}
	return uc.categories.UpdateCategory(ctx, id, patch)
}

func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.categories.DeleteCategory(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("♻️ [CATEGORY] deleted", zap.String("category_id", id))
	return nil
}

// ── Products ────────────────────────────────────────────

func (uc *CatalogUseCase) CreateProduct(ctx context.Context, input NewProduct) (*Product, error) {
	if blank(input.Name) || blank(input.CategoryID) {
		return nil, newValidationError("name and category_id are required")
	}
	if !input.Price.IsPositive() {
		return nil, newValidationError("price must be greater than 0")
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if stock < 0 {
		return nil, newValidationError("stock must be >= 0")
	}

	product := &Product{
		ID:          uuid.New().String(),
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Stock:       stock,
		Price:       input.Price,
	}
	if err := uc.products.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	uc.logger.Info("✅ [PRODUCT] created", zap.String("product_id", product.ID), zap.Int("stock", stock))
	return product, nil
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]ProductWithCategory, error) {
	return uc.products.FindAllProducts(ctx)
}

func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*ProductWithCategory, error) {
	return uc.products.FindProductByID(ctx, id)
}

// UpdateProduct aplica o patch; alterar o preço não afeta itens já vendidos
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	if blankPtr(patch.Name) || blankPtr(patch.CategoryID) {
		return nil, newValidationError("name and category_id must not be blank")
	}
	if patch.Price != nil && !patch.Price.IsPositive() {
		return nil, newValidationError("price must be greater than 0")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, newValidationError("stock must be >= 0")
	}
	return uc.products.UpdateProduct(ctx, id, patch)
}

func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uc.products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("♻️ [PRODUCT] deleted", zap.String("product_id", id))
	return nil
}
