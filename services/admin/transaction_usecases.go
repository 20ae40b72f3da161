package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionUseCase contém o fluxo de pedidos: criação atômica com snapshot
// de preço e transição de status com baixa condicional de estoque.
type TransactionUseCase struct {
	repository TransactionRepository
	ledger     StockLedger
	publisher  EventPublisher
	metrics    *workflowMetrics
	logger     *zap.Logger
}

// NewTransactionUseCase cria uma nova instância de TransactionUseCase
func NewTransactionUseCase(
	repository TransactionRepository,
	ledger StockLedger,
	publisher EventPublisher,
	metrics *workflowMetrics,
	logger *zap.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		repository: repository,
		ledger:     ledger,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

func validateCreateInput(input CreateTransactionInput) error {
	if len(input.Items) == 0 {
		return newValidationError("items must not be empty")
	}
	for i, item := range input.Items {
		if item.ProductID == "" {
			return newValidationError("items[%d].product_id is required", i)
		}
		if item.Qty <= 0 {
			return newValidationError("items[%d].qty must be greater than 0", i)
		}
	}
	return nil
}

// Create persiste a transação e todos os itens numa única unidade atômica
func (uc *TransactionUseCase) Create(ctx context.Context, input CreateTransactionInput) (*TransactionWithItems, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	transaction := NewTransaction(uuid.New().String(), input, time.Now())
	log := uc.logger.With(zap.String("transaction_id", transaction.ID))
	log.Info("➡️ [CREATE TRANSACTION]", zap.Int("items", len(input.Items)))

	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.repository.InsertTransaction(ctx, tx, transaction); err != nil {
		log.Error("❌ [CREATE TRANSACTION] insert failed", zap.Error(err))
		return nil, err
	}

	total := decimal.Zero
	for _, line := range input.Items {
		price, err := uc.ledger.PriceSnapshot(ctx, tx, line.ProductID)
		if err != nil {
			log.Warn("❌ [CREATE TRANSACTION] price snapshot failed", zap.String("product_id", line.ProductID), zap.Error(err))
			return nil, err
		}

		item := &TransactionItem{
			ID:              uuid.New().String(),
			TransactionID:   transaction.ID,
			ProductID:       line.ProductID,
			Qty:             line.Qty,
			PriceAtPurchase: price,
		}
		if err := uc.repository.InsertItem(ctx, tx, item); err != nil {
			log.Error("❌ [CREATE TRANSACTION] item insert failed", zap.String("product_id", line.ProductID), zap.Error(err))
			return nil, err
		}
		total = total.Add(item.Subtotal())
	}

	// The client total is informational only; the stored total is derived from the snapshots.
	if input.TotalPayment != nil && !input.TotalPayment.Equal(total) {
		log.Warn("ℹ️ [CREATE TRANSACTION] client total differs from derived total",
			zap.String("client_total", input.TotalPayment.String()),
			zap.String("derived_total", total.String()))
	}
	if err := uc.repository.SetTotalPayment(ctx, tx, transaction.ID, total); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	uc.metrics.recordCreated(ctx)
	log.Info("✅ [CREATE TRANSACTION] committed", zap.String("total_payment", total.String()))

	return uc.repository.FindByID(ctx, transaction.ID)
}

// UpdateStatus muda o status. A baixa de estoque acontece somente na
// transição para paid a partir de um status diferente de paid; qualquer item
// sem estoque aborta a unidade inteira e o status permanece inalterado.
func (uc *TransactionUseCase) UpdateStatus(ctx context.Context, id string, status TransactionStatus) (*TransactionWithItems, error) {
	if !status.Valid() {
		return nil, newValidationError("invalid status %q: must be one of pending, paid, rejected", status)
	}

	log := uc.logger.With(zap.String("transaction_id", id), zap.String("status", string(status)))
	log.Info("➡️ [UPDATE STATUS]")

	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock pessimista: chamadas concorrentes na mesma transação esperam aqui
	current, err := uc.repository.LockTransaction(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	applyStock := status == TransactionStatusPaid && current.Status != TransactionStatusPaid
	if applyStock {
		if err := uc.decrementStock(ctx, tx, id); err != nil {
			log.Warn("❌ [UPDATE STATUS] stock decrement failed, rolling back", zap.Error(err))
			return nil, err
		}
	}

	if err := uc.repository.SetStatus(ctx, tx, id, status); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	if applyStock {
		uc.metrics.recordPaid(ctx)
	}
	log.Info("✅ [UPDATE STATUS] committed",
		zap.String("previous_status", string(current.Status)),
		zap.Bool("stock_applied", applyStock))

	if current.Status != status {
		uc.publishStatusChanged(ctx, TransactionStatusChanged{
			TransactionID:  id,
			PreviousStatus: current.Status,
			Status:         status,
			StockApplied:   applyStock,
			OccurredAt:     time.Now().UTC(),
		})
	}

	return uc.repository.FindByID(ctx, id)
}

func (uc *TransactionUseCase) decrementStock(ctx context.Context, tx Tx, transactionID string) error {
	items, err := uc.repository.ListItems(ctx, tx, transactionID)
	if err != nil {
		return err
	}

	for _, item := range items {
		ok, err := uc.ledger.ConditionalDecrement(ctx, tx, item.ProductID, item.Qty)
		if err != nil {
			return err
		}
		if !ok {
			uc.metrics.recordInsufficientStock(ctx, item.ProductID)
			return &InsufficientStockError{ProductID: item.ProductID, Requested: item.Qty}
		}
	}
	return nil
}

// publishStatusChanged never fails the request: the status change is already committed.
func (uc *TransactionUseCase) publishStatusChanged(ctx context.Context, event TransactionStatusChanged) {
	if err := uc.publisher.PublishStatusChanged(ctx, event); err != nil {
		uc.logger.Error("❌ [EVENT] failed to publish status change",
			zap.String("transaction_id", event.TransactionID),
			zap.Error(err))
	}
}

// GetByID retorna a projeção completa de uma transação
func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*TransactionWithItems, error) {
	return uc.repository.FindByID(ctx, id)
}

// List retorna todas as transações, mais recentes primeiro
func (uc *TransactionUseCase) List(ctx context.Context) ([]TransactionWithItems, error) {
	return uc.repository.FindAll(ctx)
}
