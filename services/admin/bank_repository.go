package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BankRepository define a interface para operações de banco de dados de bancos
type BankRepository interface {
	CreateBank(ctx context.Context, bank *Bank) error
	FindAllBanks(ctx context.Context) ([]Bank, error)
	FindBankByID(ctx context.Context, id string) (*Bank, error)
	UpdateBank(ctx context.Context, id string, patch BankPatch) (*Bank, error)
	DeleteBank(ctx context.Context, id string) (*Bank, error)
}

// PostgresBankRepository implementa BankRepository usando PostgreSQL
type PostgresBankRepository struct {
	db *pgxpool.Pool
}

func NewBankRepository(db *pgxpool.Pool) BankRepository {
	return &PostgresBankRepository{db: db}
}

const bankColumns = `id, bank_name, account_name, account_number, created_at, updated_at`

func scanBank(row pgx.Row) (*Bank, error) {
	var b Bank
	if err := row.Scan(&b.ID, &b.BankName, &b.AccountName, &b.AccountNumber, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func bankLookupError(err error, id string) error {
	if isNoRows(err) {
		return &NotFoundError{Entity: "bank", ID: id}
	}
	return fmt.Errorf("bank query failed: %w", err)
}

func (r *PostgresBankRepository) CreateBank(ctx context.Context, bank *Bank) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO banks (id, bank_name, account_name, account_number)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, bank.ID, bank.BankName, bank.AccountName, bank.AccountNumber).Scan(&bank.CreatedAt, &bank.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert bank: %w", err)
	}
	return nil
}

func (r *PostgresBankRepository) FindAllBanks(ctx context.Context) ([]Bank, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bankColumns+` FROM banks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	defer rows.Close()

	banks := []Bank{}
	for rows.Next() {
		b, err := scanBank(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		banks = append(banks, *b)
	}
	return banks, rows.Err()
}

func (r *PostgresBankRepository) FindBankByID(ctx context.Context, id string) (*Bank, error) {
	b, err := scanBank(r.db.QueryRow(ctx, `SELECT `+bankColumns+` FROM banks WHERE id = $1`, id))
	if err != nil {
		return nil, bankLookupError(err, id)
	}
	return b, nil
}

// UpdateBank aplica o patch campo a campo
func (r *PostgresBankRepository) UpdateBank(ctx context.Context, id string, patch BankPatch) (*Bank, error) {
	if patch.IsEmpty() {
		return r.FindBankByID(ctx, id)
	}

	b, err := scanBank(r.db.QueryRow(ctx, `
		UPDATE banks
		SET bank_name      = COALESCE($1, bank_name),
		    account_name   = COALESCE($2, account_name),
		    account_number = COALESCE($3, account_number),
		    updated_at     = NOW()
		WHERE id = $4
		RETURNING `+bankColumns,
		patch.BankName, patch.AccountName, patch.AccountNumber, id,
	))
	if err != nil {
		return nil, bankLookupError(err, id)
	}
	return b, nil
}

func (r *PostgresBankRepository) DeleteBank(ctx context.Context, id string) (*Bank, error) {
	b, err := scanBank(r.db.QueryRow(ctx, `DELETE FROM banks WHERE id = $1 RETURNING `+bankColumns, id))
	if err != nil {
		return nil, bankLookupError(err, id)
	}
	return b, nil
}
