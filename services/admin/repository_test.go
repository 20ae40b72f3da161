package main

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func TestNewRepositories(t *testing.T) {
	// Arrange
	var db *pgxpool.Pool // Mock pool

	// Act / Assert
	assert.IsType(t, &PostgresTransactionRepository{}, NewTransactionRepository(db))
	assert.IsType(t, &PostgresProductRepository{}, NewProductRepository(db))
	assert.IsType(t, &PostgresBankRepository{}, NewBankRepository(db))
	assert.IsType(t, &PostgresCategoryRepository{}, NewCategoryRepository(db))
	assert.IsType(t, &PostgresUserRepository{}, NewUserRepository(db))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)))
	assert.True(t, isNoRows(&pgconn.PgError{Code: pgInvalidText}))
	assert.False(t, isNoRows(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.False(t, isNoRows(errors.New("boom")))
}

func TestMapProductWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantValidation bool
	}{
		{name: "categoria inexistente", err: &pgconn.PgError{Code: pgForeignKeyViolation}, wantValidation: true},
		{name: "categoria não uuid", err: &pgconn.PgError{Code: pgInvalidText}, wantValidation: true},
		{name: "check de estoque", err: &pgconn.PgError{Code: pgCheckViolation}, wantValidation: true},
		{name: "erro genérico", err: errors.New("conn reset"), wantValidation: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := mapProductWriteError(tt.err, "cat-1")

			// Assert
			var validation *ValidationError
			assert.Equal(t, tt.wantValidation, errors.As(err, &validation))
		})
	}
}

func TestCategoryLookupError(t *testing.T) {
	var notFound *NotFoundError
	var conflict *ConflictError

	assert.ErrorAs(t, categoryLookupError(pgx.ErrNoRows, "c1"), &notFound)
	assert.ErrorAs(t, categoryLookupError(&pgconn.PgError{Code: pgForeignKeyViolation}, "c1"), &conflict)
}
