package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository define a interface para operações de banco de dados de categorias
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *Category) error
	FindAllCategories(ctx context.Context) ([]Category, error)
	FindCategoryByID(ctx context.Context, id string) (*Category, error)
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*Category, error)
	DeleteCategory(ctx context.Context, id string) (*Category, error)
}

// PostgresCategoryRepository implementa CategoryRepository usando PostgreSQL
type PostgresCategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) CategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

const categoryColumns = `id, name, description, image_url, created_at, updated_at`

func scanCategory(row pgx.Row) (*Category, error) {
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func categoryLookupError(err error, id string) error {
	if isNoRows(err) {
		return &NotFoundError{Entity: "category", ID: id}
	}
	if pgErrorCode(err) == pgForeignKeyViolation {
		return &ConflictError{Message: fmt.Sprintf("category %s still has products", id)}
	}
	return fmt.Errorf("category query failed: %w", err)
}

func (r *PostgresCategoryRepository) CreateCategory(ctx context.Context, category *Category) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (id, name, description, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, category.ID, category.Name, category.Description, category.ImageURL).Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *PostgresCategoryRepository) FindAllCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *PostgresCategoryRepository) FindCategoryByID(ctx context.Context, id string) (*Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, categoryLookupError(err, id)
	}
	return c, nil
}

func (r *PostgresCategoryRepository) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*Category, error) {
	if patch.IsEmpty() {
		return r.FindCategoryByID(ctx, id)
	}

	c, err := scanCategory(r.db.QueryRow(ctx, `
		UPDATE categories
		SET name        = COALESCE($1, name),
		    description = COALESCE($2, description),
		    image_url   = COALESCE($3, image_url),
		    updated_at  = NOW()
		WHERE id = $4
		RETURNING `+categoryColumns,
		patch.Name, patch.Description, patch.ImageURL, id,
	))
	if err != nil {
		return nil, categoryLookupError(err, id)
	}
	return c, nil
}

// DeleteCategory falha com ConflictError enquanto houver produtos na categoria
func (r *PostgresCategoryRepository) DeleteCategory(ctx context.Context, id string) (*Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `DELETE FROM categories WHERE id = $1 RETURNING `+categoryColumns, id))
	if err != nil {
		return nil, categoryLookupError(err, id)
	}
	return c, nil
}
