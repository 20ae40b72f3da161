package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Credentials do administrador usado no smoke
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// runScenario exercita o ciclo completo de estoque:
// cria produto com 5 unidades, paga um pedido de 5 duas vezes e verifica
// que um segundo pedido sem estoque falha sem alterar nada.
func runScenario(ctx context.Context, client *Client, creds Credentials, logger *zap.Logger) error {
	err := client.InitiateAdmin(ctx, creds.Name, creds.Email, creds.Password)
	var statusErr *StatusError
	if err != nil && !(errors.As(err, &statusErr) && statusErr.Status == http.StatusBadRequest) {
		return err
	}

	if err := client.SignIn(ctx, creds.Email, creds.Password); err != nil {
		return err
	}
	logger.Info("✅ [SMOKE] signed in")

	cat, err := client.CreateCategory(ctx, "Smoke Category")
	if err != nil {
		return err
	}
	prod, err := client.CreateProduct(ctx, cat.ID, "Smoke Ball", 5, decimal.NewFromInt(100))
	if err != nil {
		return err
	}
	logger.Info("✅ [SMOKE] product created", zap.String("product_id", prod.ID))

	first, err := client.CreateTransaction(ctx, []transactionItem{{ProductID: prod.ID, Qty: 5}})
	if err != nil {
		return err
	}
	if !first.TotalPayment.Equal(decimal.NewFromInt(500)) {
		return fmt.Errorf("total_payment = %s, want 500", first.TotalPayment)
	}

	for i := 0; i < 2; i++ {
		paid, err := client.UpdateStatus(ctx, first.ID, "paid")
		if err != nil {
			return err
		}
		if paid.Status != "paid" {
			return fmt.Errorf("status = %s, want paid", paid.Status)
		}
		if err := expectStock(ctx, client, prod.ID, 0); err != nil {
			return err
		}
	}
	logger.Info("✅ [SMOKE] paid twice, stock decremented once")

	second, err := client.CreateTransaction(ctx, []transactionItem{{ProductID: prod.ID, Qty: 1}})
	if err != nil {
		return err
	}
	_, err = client.UpdateStatus(ctx, second.ID, "paid")
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusBadRequest {
		return fmt.Errorf("paying without stock: got %v, want status 400", err)
	}

	unchanged, err := client.GetTransaction(ctx, second.ID)
	if err != nil {
		return err
	}
	if unchanged.Status != "pending" {
		return fmt.Errorf("status after failed payment = %s, want pending", unchanged.Status)
	}
	if err := expectStock(ctx, client, prod.ID, 0); err != nil {
		return err
	}
	logger.Info("✅ [SMOKE] insufficient stock rolled back")
	return nil
}

func expectStock(ctx context.Context, client *Client, productID string, want int) error {
	p, err := client.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if p.Stock != want {
		return fmt.Errorf("stock = %d, want %d", p.Stock, want)
	}
	return nil
}
