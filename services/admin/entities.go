package main

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus representa os possíveis status de uma transação
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusPaid     TransactionStatus = "paid"
	TransactionStatusRejected TransactionStatus = "rejected"
)

// Valid informa se o status pertence ao conjunto conhecido
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusPaid, TransactionStatusRejected:
		return true
	}
	return false
}

// Bank representa uma conta bancária exibida para pagamento
type Bank struct {
	ID            string    `json:"id" db:"id"`
	BankName      string    `json:"bank_name" db:"bank_name"`
	AccountName   string    `json:"account_name" db:"account_name"`
	AccountNumber string    `json:"account_number" db:"account_number"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// NewBank é o payload de criação de um banco
type NewBank struct {
	BankName      string `json:"bank_name" binding:"required"`
	AccountName   string `json:"account_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
}

// BankPatch enumera os campos alteráveis de um banco
type BankPatch struct {
	BankName      *string `json:"bank_name"`
	AccountName   *string `json:"account_name"`
	AccountNumber *string `json:"account_number"`
}

func (p BankPatch) IsEmpty() bool {
	return p.BankName == nil && p.AccountName == nil && p.AccountNumber == nil
}

// Category representa uma categoria de produtos
type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewCategory é o payload de criação de uma categoria
type NewCategory struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url"`
}

// CategoryPatch enumera os campos alteráveis de uma categoria
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ImageURL == nil
}

// Product representa um produto do catálogo com estoque e preço atuais
type Product struct {
	ID          string          `json:"id" db:"id"`
	CategoryID  string          `json:"category_id" db:"category_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	ImageURL    string          `json:"image_url" db:"image_url"`
	Stock       int             `json:"stock" db:"stock"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductWithCategory é o produto com a categoria embutida (leitura)
type ProductWithCategory struct {
	Product
	Category Category `json:"category"`
}

// NewProduct é o payload de criação de um produto. Stock ausente vale 0.
type NewProduct struct {
	CategoryID  string          `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Stock       *int            `json:"stock"`
	Price       decimal.Decimal `json:"price"`
}

// ProductPatch enumera os campos alteráveis de um produto
type ProductPatch struct {
	CategoryID  *string          `json:"category_id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
	Stock       *int             `json:"stock"`
	Price       *decimal.Decimal `json:"price"`
}

func (p ProductPatch) IsEmpty() bool {
	return p.CategoryID == nil && p.Name == nil && p.Description == nil &&
		p.ImageURL == nil && p.Stock == nil && p.Price == nil
}

// Transaction representa um pedido de compra
type Transaction struct {
	ID              string            `json:"id" db:"id"`
	Status          TransactionStatus `json:"status" db:"status"`
	PaymentProof    *string           `json:"payment_proof" db:"payment_proof"`
	TotalPayment    decimal.Decimal   `json:"total_payment" db:"total_payment"`
	CustomerName    string            `json:"customer_name" db:"customer_name"`
	CustomerContact string            `json:"customer_contact" db:"customer_contact"`
	CustomerAddress string            `json:"customer_address" db:"customer_address"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// NewTransaction cria uma transação pendente a partir do input do cliente
func NewTransaction(id string, input CreateTransactionInput, now time.Time) *Transaction {
	t := &Transaction{
		ID:              id,
		Status:          TransactionStatusPending,
		TotalPayment:    decimal.Zero,
		CustomerName:    input.CustomerName,
		CustomerContact: input.CustomerContact,
		CustomerAddress: input.CustomerAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.PaymentProof != "" {
		proof := input.PaymentProof
		t.PaymentProof = &proof
	}
	return t
}

// TransactionItem é uma linha do pedido. PriceAtPurchase é o snapshot do
// preço no momento da criação e nunca muda depois.
type TransactionItem struct {
	ID              string          `json:"id" db:"id"`
	TransactionID   string          `json:"transaction_id" db:"transaction_id"`
	ProductID       string          `json:"product_id" db:"product_id"`
	Qty             int             `json:"qty" db:"qty"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase" db:"price_at_purchase"`
}

// Subtotal retorna qty × preço snapshot
func (i TransactionItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// ItemProduct é a visão do produto embutida em cada item
type ItemProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id"`
}

// TransactionItemWithProduct é o item com os detalhes do produto (leitura)
type TransactionItemWithProduct struct {
	TransactionItem
	Product ItemProduct `json:"product"`
}

// TransactionWithItems é a projeção completa devolvida pela API
type TransactionWithItems struct {
	Transaction
	Items []TransactionItemWithProduct `json:"items"`
}

// TransactionItemInput é uma linha pedida pelo cliente
type TransactionItemInput struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// CreateTransactionInput é o input do caso de uso de criação
type CreateTransactionInput struct {
	PaymentProof    string
	TotalPayment    *decimal.Decimal
	CustomerName    string
	CustomerContact string
	CustomerAddress string
	Items           []TransactionItemInput
}

// TransactionStatusChanged é o evento publicado após uma mudança de status
type TransactionStatusChanged struct {
	TransactionID  string            `json:"transaction_id"`
	PreviousStatus TransactionStatus `json:"previous_status"`
	Status         TransactionStatus `json:"status"`
	StockApplied   bool              `json:"stock_applied"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

// User é o administrador único do painel
type User struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	HashedPass string    `json:"-" db:"hashed_pass"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
