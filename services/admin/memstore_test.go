package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// memStore é um banco em memória para os testes do fluxo de pedidos.
// O mutex fica preso de BeginTx até Commit/Rollback, então as unidades
// atômicas são serializadas como num lock de linha.
type memStore struct {
	mu        sync.Mutex
	state     memState
	begins    int
	commits   int
	rollbacks int
}

type memState struct {
	products     map[string]Product
	transactions map[string]Transaction
	order        []string
	items        []TransactionItem
}

func (s memState) clone() memState {
	out := memState{
		products:     make(map[string]Product, len(s.products)),
		transactions: make(map[string]Transaction, len(s.transactions)),
		order:        append([]string(nil), s.order...),
		items:        append([]TransactionItem(nil), s.items...),
	}
	for k, v := range s.products {
		out.products[k] = v
	}
	for k, v := range s.transactions {
		out.transactions[k] = v
	}
	return out
}

func newMemStore() *memStore {
	return &memStore{state: memState{
		products:     map[string]Product{},
		transactions: map[string]Transaction{},
	}}
}

var errMemTxClosed = errors.New("tx closed")

type memTx struct {
	store *memStore
	state memState
	done  bool
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return errMemTxClosed
	}
	t.done = true
	t.store.state = t.state
	t.store.commits++
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.rollbacks++
	t.store.mu.Unlock()
	return nil
}

func memTxOf(tx Tx) *memTx {
	return tx.(*memTx)
}

// addProduct semeia um produto já commitado
func (s *memStore) addProduct(id string, stock int, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.products[id] = Product{
		ID:         id,
		CategoryID: "cat-1",
		Name:       "product " + id,
		Stock:      stock,
		Price:      decimal.RequireFromString(price),
	}
}

func (s *memStore) setPrice(id, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.state.products[id]
	p.Price = decimal.RequireFromString(price)
	s.state.products[id] = p
}

func (s *memStore) stock(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.products[id].Stock
}

func (s *memStore) transactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.transactions)
}

func (s *memStore) itemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.items)
}

// ── TransactionRepository ──────────────────────────────

func (s *memStore) BeginTx(ctx context.Context) (Tx, error) {
	s.mu.Lock()
	s.begins++
	return &memTx{store: s, state: s.state.clone()}, nil
}

func (s *memStore) InsertTransaction(ctx context.Context, tx Tx, t *Transaction) error {
	st := &memTxOf(tx).state
	st.transactions[t.ID] = *t
	st.order = append(st.order, t.ID)
	return nil
}

func (s *memStore) InsertItem(ctx context.Context, tx Tx, item *TransactionItem) error {
	st := &memTxOf(tx).state
	if _, ok := st.products[item.ProductID]; !ok {
		return newValidationError("product not found: %s", item.ProductID)
	}
	st.items = append(st.items, *item)
	return nil
}

func (s *memStore) SetTotalPayment(ctx context.Context, tx Tx, id string, total decimal.Decimal) error {
	st := &memTxOf(tx).state
	t := st.transactions[id]
	t.TotalPayment = total
	st.transactions[id] = t
	return nil
}

func (s *memStore) SetStatus(ctx context.Context, tx Tx, id string, status TransactionStatus) error {
	st := &memTxOf(tx).state
	t, ok := st.transactions[id]
	if !ok {
		return &NotFoundError{Entity: "transaction", ID: id}
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	st.transactions[id] = t
	return nil
}

func (s *memStore) LockTransaction(ctx context.Context, tx Tx, id string) (*Transaction, error) {
	t, ok := memTxOf(tx).state.transactions[id]
	if !ok {
		return nil, &NotFoundError{Entity: "transaction", ID: id}
	}
	return &t, nil
}

func (s *memStore) ListItems(ctx context.Context, tx Tx, transactionID string) ([]TransactionItem, error) {
	var out []TransactionItem
	for _, item := range memTxOf(tx).state.items {
		if item.TransactionID == transactionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *memStore) project(t Transaction) TransactionWithItems {
	out := TransactionWithItems{Transaction: t, Items: []TransactionItemWithProduct{}}
	for _, item := range s.state.items {
		if item.TransactionID != t.ID {
			continue
		}
		p := s.state.products[item.ProductID]
		out.Items = append(out.Items, TransactionItemWithProduct{
			TransactionItem: item,
			Product: ItemProduct{
				ID:         p.ID,
				Name:       p.Name,
				Stock:      p.Stock,
				Price:      p.Price,
				CategoryID: p.CategoryID,
			},
		})
	}
	return out
}

func (s *memStore) FindByID(ctx context.Context, id string) (*TransactionWithItems, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.state.transactions[id]
	if !ok {
		return nil, &NotFoundError{Entity: "transaction", ID: id}
	}
	out := s.project(t)
	return &out, nil
}

func (s *memStore) FindAll(ctx context.Context) ([]TransactionWithItems, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TransactionWithItems, 0, len(s.state.order))
	for i := len(s.state.order) - 1; i >= 0; i-- {
		out = append(out, s.project(s.state.transactions[s.state.order[i]]))
	}
	return out, nil
}

// ── StockLedger ────────────────────────────────────────

func (s *memStore) PriceSnapshot(ctx context.Context, tx Tx, productID string) (decimal.Decimal, error) {
	p, ok := memTxOf(tx).state.products[productID]
	if !ok {
		return decimal.Zero, &NotFoundError{Entity: "product", ID: productID}
	}
	return p.Price, nil
}

func (s *memStore) ConditionalDecrement(ctx context.Context, tx Tx, productID string, qty int) (bool, error) {
	st := &memTxOf(tx).state
	p, ok := st.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	st.products[productID] = p
	return true, nil
}
