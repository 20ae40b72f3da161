package main

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTx simula uma transação de banco
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTransactionRepository para testes que não precisam de banco real
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) BeginTx(ctx context.Context) (Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Tx), args.Error(1)
}

func (m *MockTransactionRepository) InsertTransaction(ctx context.Context, tx Tx, t *Transaction) error {
	args := m.Called(ctx, tx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) InsertItem(ctx context.Context, tx Tx, item *TransactionItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockTransactionRepository) SetTotalPayment(ctx context.Context, tx Tx, id string, total decimal.Decimal) error {
	args := m.Called(ctx, tx, id, total)
	return args.Error(0)
}

func (m *MockTransactionRepository) SetStatus(ctx context.Context, tx Tx, id string, status TransactionStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

func (m *MockTransactionRepository) LockTransaction(ctx context.Context, tx Tx, id string) (*Transaction, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListItems(ctx context.Context, tx Tx, transactionID string) ([]TransactionItem, error) {
	args := m.Called(ctx, tx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TransactionItem), args.Error(1)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*TransactionWithItems, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TransactionWithItems), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context) ([]TransactionWithItems, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TransactionWithItems), args.Error(1)
}

// MockStockLedger simula o livro de estoque
type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) PriceSnapshot(ctx context.Context, tx Tx, productID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockLedger) ConditionalDecrement(ctx context.Context, tx Tx, productID string, qty int) (bool, error) {
	args := m.Called(ctx, tx, productID, qty)
	return args.Bool(0), args.Error(1)
}

// recordingPublisher guarda os eventos publicados
type recordingPublisher struct {
	mu     sync.Mutex
	events []TransactionStatusChanged
	err    error
}

func (p *recordingPublisher) PublishStatusChanged(ctx context.Context, event TransactionStatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) published() []TransactionStatusChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TransactionStatusChanged(nil), p.events...)
}
