package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleTransactions(t *testing.T) {
	// Arrange
	transactions := []Transaction{{ID: "t2"}, {ID: "t1"}, {ID: "t3"}}
	rows := []itemRow{
		{ID: "i1", TransactionID: "t1", ProductID: "p1", Qty: 2, PriceAtPurchase: decimal.NewFromInt(10), ProductRefID: "p1", ProductName: "Bola"},
		{ID: "i2", TransactionID: "t2", ProductID: "p2", Qty: 1, PriceAtPurchase: decimal.NewFromInt(5), ProductRefID: "p2", ProductName: "Raket"},
		{ID: "i3", TransactionID: "t1", ProductID: "p2", Qty: 4, PriceAtPurchase: decimal.NewFromInt(5), ProductRefID: "p2", ProductName: "Raket"},
	}

	// Act
	out := assembleTransactions(transactions, rows)

	// Assert
	require.Len(t, out, 3)
	assert.Equal(t, "t2", out[0].ID)
	assert.Equal(t, "t1", out[1].ID)
	assert.Equal(t, "t3", out[2].ID)

	require.Len(t, out[1].Items, 2)
	assert.Equal(t, "i1", out[1].Items[0].ID)
	assert.Equal(t, "Bola", out[1].Items[0].Product.Name)
	assert.Equal(t, "i3", out[1].Items[1].ID)

	assert.NotNil(t, out[2].Items)
	assert.Empty(t, out[2].Items)
}

func TestTransactionItem_Subtotal(t *testing.T) {
	item := TransactionItem{Qty: 3, PriceAtPurchase: decimal.RequireFromString("19.90")}

	assert.True(t, decimal.RequireFromString("59.70").Equal(item.Subtotal()))
}

func TestTransactionStatus_Valid(t *testing.T) {
	assert.True(t, TransactionStatusPending.Valid())
	assert.True(t, TransactionStatusPaid.Valid())
	assert.True(t, TransactionStatusRejected.Valid())
	assert.False(t, TransactionStatus("PAID").Valid())
	assert.False(t, TransactionStatus("").Valid())
}

func TestNewTransaction(t *testing.T) {
	// Arrange
	input := CreateTransactionInput{CustomerName: "Budi", CustomerContact: "0812", CustomerAddress: "Jl. A"}

	// Act
	withoutProof := NewTransaction("t1", input, fixedNow)
	input.PaymentProof = "uploads/x.png"
	withProof := NewTransaction("t2", input, fixedNow)

	// Assert
	assert.Equal(t, TransactionStatusPending, withoutProof.Status)
	assert.Nil(t, withoutProof.PaymentProof)
	assert.True(t, withoutProof.TotalPayment.IsZero())
	require.NotNil(t, withProof.PaymentProof)
	assert.Equal(t, "uploads/x.png", *withProof.PaymentProof)
}
