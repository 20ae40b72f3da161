package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// StockLedger é o livro de estoque/preço usado pelo fluxo de pedidos.
// Todas as operações rodam dentro da transação do chamador.
type StockLedger interface {
	// PriceSnapshot lê o preço atual do produto para congelá-lo no item
	PriceSnapshot(ctx context.Context, tx Tx, productID string) (decimal.Decimal, error)

	// ConditionalDecrement aplica stock = stock - qty somente se stock >= qty,
	// num único statement. Retorna false quando o estoque não é suficiente.
	ConditionalDecrement(ctx context.Context, tx Tx, productID string, qty int) (bool, error)
}

// ProductRepository define a interface para operações de banco de dados de produtos
type ProductRepository interface {
	StockLedger
	CreateProduct(ctx context.Context, product *Product) error
	FindAllProducts(ctx context.Context) ([]ProductWithCategory, error)
	FindProductByID(ctx context.Context, id string) (*ProductWithCategory, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*Product, error)
	DeleteProduct(ctx context.Context, id string) (*Product, error)
}

// PostgresProductRepository implementa ProductRepository usando PostgreSQL
type PostgresProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de PostgresProductRepository
func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, category_id, name, description, image_url, stock, price, created_at, updated_at`

const productWithCategoryQuery = `
	SELECT
		p.id, p.category_id, p.name, p.description, p.image_url, p.stock, p.price, p.created_at, p.updated_at,
		c.id, c.name, c.description, c.image_url, c.created_at, c.updated_at
	FROM products p
	INNER JOIN categories c ON p.category_id = c.id
`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.ImageURL, &p.Stock, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProductWithCategory(row pgx.Row) (ProductWithCategory, error) {
	var p ProductWithCategory
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.ImageURL, &p.Stock, &p.Price, &p.CreatedAt, &p.UpdatedAt,
		&p.Category.ID, &p.Category.Name, &p.Category.Description, &p.Category.ImageURL, &p.Category.CreatedAt, &p.Category.UpdatedAt,
	)
	return p, err
}

// CreateProduct insere um novo produto
func (r *PostgresProductRepository) CreateProduct(ctx context.Context, product *Product) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO products (id, category_id, name, description, image_url, stock, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, product.ID, product.CategoryID, product.Name, product.Description, product.ImageURL, product.Stock, product.Price)

	if err := row.Scan(&product.CreatedAt, &product.UpdatedAt); err != nil {
		return mapProductWriteError(err, product.CategoryID)
	}
	return nil
}

// FindAllProducts lista os produtos com a categoria embutida
func (r *PostgresProductRepository) FindAllProducts(ctx context.Context) ([]ProductWithCategory, error) {
	rows, err := r.db.Query(ctx, productWithCategoryQuery+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []ProductWithCategory{}
	for rows.Next() {
		p, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// FindProductByID busca um produto com a categoria
func (r *PostgresProductRepository) FindProductByID(ctx context.Context, id string) (*ProductWithCategory, error) {
	p, err := scanProductWithCategory(r.db.QueryRow(ctx, productWithCategoryQuery+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "product", ID: id}
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// UpdateProduct aplica o patch campo a campo; campos nil mantêm o valor atual
func (r *PostgresProductRepository) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	if patch.IsEmpty() {
		current, err := r.FindProductByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &current.Product, nil
	}

	product, err := scanProduct(r.db.QueryRow(ctx, `
		UPDATE products
		SET category_id = COALESCE($1, category_id),
		    name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    image_url   = COALESCE($4, image_url),
		    stock       = COALESCE($5, stock),
		    price       = COALESCE($6, price),
		    updated_at  = NOW()
		WHERE id = $7
		RETURNING `+productColumns,
		patch.CategoryID, patch.Name, patch.Description, patch.ImageURL, patch.Stock, patch.Price, id,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "product", ID: id}
		}
		categoryID := ""
		if patch.CategoryID != nil {
			categoryID = *patch.CategoryID
		}
		return nil, mapProductWriteError(err, categoryID)
	}
	return product, nil
}

// DeleteProduct remove o produto e devolve a linha removida
func (r *PostgresProductRepository) DeleteProduct(ctx context.Context, id string) (*Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, `DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "product", ID: id}
		}
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, &ConflictError{Message: fmt.Sprintf("product %s is referenced by existing transactions", id)}
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return product, nil
}

// PriceSnapshot lê o preço atual do produto dentro da transação
func (r *PostgresProductRepository) PriceSnapshot(ctx context.Context, tx Tx, productID string) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := pgTxOf(tx).QueryRow(ctx, `SELECT price FROM products WHERE id = $1`, productID).Scan(&price)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, &NotFoundError{Entity: "product", ID: productID}
		}
		return decimal.Zero, fmt.Errorf("failed to read product price: %w", err)
	}
	return price, nil
}

// ConditionalDecrement diminui o estoque apenas se houver quantidade suficiente
func (r *PostgresProductRepository) ConditionalDecrement(ctx context.Context, tx Tx, productID string, qty int) (bool, error) {
	tag, err := pgTxOf(tx).Exec(ctx, `
		UPDATE products
		SET stock = stock - $1,
		    updated_at = NOW()
		WHERE id = $2
			AND stock >= $1
	`, qty, productID)
	if err != nil {
		return false, fmt.Errorf("failed to decrease stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func mapProductWriteError(err error, categoryID string) error {
	switch pgErrorCode(err) {
	case pgForeignKeyViolation, pgInvalidText:
		return newValidationError("category not found: %s", categoryID)
	case pgCheckViolation:
		return newValidationError("stock must be >= 0 and price must be > 0")
	}
	return fmt.Errorf("failed to write product: %w", err)
}
