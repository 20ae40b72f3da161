package main

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// workflowMetrics agrupa os contadores do fluxo de pedidos
type workflowMetrics struct {
	transactionsCreated metric.Int64Counter
	transactionsPaid    metric.Int64Counter
	insufficientStock   metric.Int64Counter
}

func newWorkflowMetrics(meter metric.Meter) (*workflowMetrics, error) {
	created, err := meter.Int64Counter("sporton.transactions.created",
		metric.WithDescription("Transactions created with their items"))
	if err != nil {
		return nil, err
	}
	paid, err := meter.Int64Counter("sporton.transactions.paid",
		metric.WithDescription("Transitions to paid that applied stock decrements"))
	if err != nil {
		return nil, err
	}
	insufficient, err := meter.Int64Counter("sporton.stock.insufficient",
		metric.WithDescription("Status updates rejected for insufficient stock"))
	if err != nil {
		return nil, err
	}

	return &workflowMetrics{
		transactionsCreated: created,
		transactionsPaid:    paid,
		insufficientStock:   insufficient,
	}, nil
}

func (m *workflowMetrics) recordCreated(ctx context.Context) {
	m.transactionsCreated.Add(ctx, 1)
}

func (m *workflowMetrics) recordPaid(ctx context.Context) {
	m.transactionsPaid.Add(ctx, 1)
}

func (m *workflowMetrics) recordInsufficientStock(ctx context.Context, productID string) {
	m.insufficientStock.Add(ctx, 1, metric.WithAttributes(attribute.String("product_id", productID)))
}
