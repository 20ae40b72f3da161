package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TransactionRepository define a interface para operações de banco de dados de transações
type TransactionRepository interface {
	BeginTx(ctx context.Context) (Tx, error)

	// Escritas dentro da unidade atômica
	InsertTransaction(ctx context.Context, tx Tx, t *Transaction) error
	InsertItem(ctx context.Context, tx Tx, item *TransactionItem) error
	SetTotalPayment(ctx context.Context, tx Tx, id string, total decimal.Decimal) error
	SetStatus(ctx context.Context, tx Tx, id string, status TransactionStatus) error

	// LockTransaction lê a transação com lock pessimista (FOR UPDATE)
	LockTransaction(ctx context.Context, tx Tx, id string) (*Transaction, error)
	ListItems(ctx context.Context, tx Tx, transactionID string) ([]TransactionItem, error)

	// Leituras (projeção)
	FindByID(ctx context.Context, id string) (*TransactionWithItems, error)
	FindAll(ctx context.Context) ([]TransactionWithItems, error)
}

// PostgresTransactionRepository implementa TransactionRepository usando PostgreSQL
type PostgresTransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository cria uma nova instância de PostgresTransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

const transactionColumns = `id, status, payment_proof, total_payment, customer_name, customer_contact, customer_address, created_at, updated_at`

const itemsWithProductQuery = `
	SELECT
		ti.id, ti.transaction_id, ti.product_id, ti.qty, ti.price_at_purchase,
		p.id, p.name, p.description, p.image_url, p.stock, p.price, p.category_id
	FROM transaction_items ti
	INNER JOIN products p ON ti.product_id = p.id
`

// BeginTx inicia uma nova transação
func (r *PostgresTransactionRepository) BeginTx(ctx context.Context) (Tx, error) {
	return beginPostgresTx(ctx, r.db)
}

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction
	err := row.Scan(
		&t.ID, &t.Status, &t.PaymentProof, &t.TotalPayment,
		&t.CustomerName, &t.CustomerContact, &t.CustomerAddress,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// InsertTransaction cria a linha da transação
func (r *PostgresTransactionRepository) InsertTransaction(ctx context.Context, tx Tx, t *Transaction) error {
	_, err := pgTxOf(tx).Exec(ctx, `
		INSERT INTO transactions (id, status, payment_proof, total_payment, customer_name, customer_contact, customer_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, t.ID, t.Status, t.PaymentProof, t.TotalPayment, t.CustomerName, t.CustomerContact, t.CustomerAddress, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// InsertItem cria um item com o preço snapshot
func (r *PostgresTransactionRepository) InsertItem(ctx context.Context, tx Tx, item *TransactionItem) error {
	_, err := pgTxOf(tx).Exec(ctx, `
		INSERT INTO transaction_items (id, transaction_id, product_id, qty, price_at_purchase)
		VALUES ($1, $2, $3, $4, $5)
	`, item.ID, item.TransactionID, item.ProductID, item.Qty, item.PriceAtPurchase)
	if err != nil {
		return fmt.Errorf("failed to insert transaction item: %w", err)
	}
	return nil
}

// SetTotalPayment grava o total derivado dos itens
func (r *PostgresTransactionRepository) SetTotalPayment(ctx context.Context, tx Tx, id string, total decimal.Decimal) error {
	_, err := pgTxOf(tx).Exec(ctx, `UPDATE transactions SET total_payment = $1 WHERE id = $2`, total, id)
	if err != nil {
		return fmt.Errorf("failed to set total payment: %w", err)
	}
	return nil
}

// SetStatus atualiza o status de uma transação
func (r *PostgresTransactionRepository) SetStatus(ctx context.Context, tx Tx, id string, status TransactionStatus) error {
	tag, err := pgTxOf(tx).Exec(ctx, `
		UPDATE transactions
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "transaction", ID: id}
	}
	return nil
}

// LockTransaction obtém a transação com lock pessimista (FOR UPDATE)
func (r *PostgresTransactionRepository) LockTransaction(ctx context.Context, tx Tx, id string) (*Transaction, error) {
	t, err := scanTransaction(pgTxOf(tx).QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "transaction", ID: id}
		}
		return nil, fmt.Errorf("failed to get transaction with lock: %w", err)
	}
	return t, nil
}

// ListItems lista os itens de uma transação dentro da unidade atômica
func (r *PostgresTransactionRepository) ListItems(ctx context.Context, tx Tx, transactionID string) ([]TransactionItem, error) {
	rows, err := pgTxOf(tx).Query(ctx, `
		SELECT id, transaction_id, product_id, qty, price_at_purchase
		FROM transaction_items
		WHERE transaction_id = $1
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction items: %w", err)
	}
	defer rows.Close()

	var items []TransactionItem
	for rows.Next() {
		var item TransactionItem
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.ProductID, &item.Qty, &item.PriceAtPurchase); err != nil {
			return nil, fmt.Errorf("failed to scan transaction item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindByID busca a transação com itens e produtos
func (r *PostgresTransactionRepository) FindByID(ctx context.Context, id string) (*TransactionWithItems, error) {
	t, err := scanTransaction(r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "transaction", ID: id}
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	items, err := r.queryItems(ctx, itemsWithProductQuery+` WHERE ti.transaction_id = $1`, id)
	if err != nil {
		return nil, err
	}

	assembled := assembleTransactions([]Transaction{*t}, items)
	return &assembled[0], nil
}

// FindAll lista todas as transações; os itens vêm numa única consulta em lote
func (r *PostgresTransactionRepository) FindAll(ctx context.Context) ([]TransactionWithItems, error) {
	rows, err := r.db.Query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return []TransactionWithItems{}, nil
	}

	ids := make([]string, len(transactions))
	for i, t := range transactions {
		ids[i] = t.ID
	}

	items, err := r.queryItems(ctx, itemsWithProductQuery+` WHERE ti.transaction_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	return assembleTransactions(transactions, items), nil
}

func (r *PostgresTransactionRepository) queryItems(ctx context.Context, query string, arg any) ([]itemRow, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	var items []itemRow
	for rows.Next() {
		var row itemRow
		err := rows.Scan(
			&row.ID, &row.TransactionID, &row.ProductID, &row.Qty, &row.PriceAtPurchase,
			&row.ProductRefID, &row.ProductName, &row.ProductDescription, &row.ProductImageURL,
			&row.ProductStock, &row.ProductPrice, &row.ProductCategoryID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction item: %w", err)
		}
		items = append(items, row)
	}
	return items, rows.Err()
}
