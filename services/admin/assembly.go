package main

import "github.com/shopspring/decimal"

// itemRow é a linha plana do JOIN transaction_items × products
type itemRow struct {
	ID              string
	TransactionID   string
	ProductID       string
	Qty             int
	PriceAtPurchase decimal.Decimal

	ProductRefID       string
	ProductName        string
	ProductDescription string
	ProductImageURL    string
	ProductStock       int
	ProductPrice       decimal.Decimal
	ProductCategoryID  string
}

func (r itemRow) toItemWithProduct() TransactionItemWithProduct {
	return TransactionItemWithProduct{
		TransactionItem: TransactionItem{
			ID:              r.ID,
			TransactionID:   r.TransactionID,
			ProductID:       r.ProductID,
			Qty:             r.Qty,
			PriceAtPurchase: r.PriceAtPurchase,
		},
		Product: ItemProduct{
			ID:          r.ProductRefID,
			Name:        r.ProductName,
			Description: r.ProductDescription,
			ImageURL:    r.ProductImageURL,
			Stock:       r.ProductStock,
			Price:       r.ProductPrice,
			CategoryID:  r.ProductCategoryID,
		},
	}
}

// assembleTransactions agrupa as linhas planas de itens por transação,
// preservando a ordem das transações recebidas.
func assembleTransactions(transactions []Transaction, rows []itemRow) []TransactionWithItems {
	byTransaction := make(map[string][]TransactionItemWithProduct, len(transactions))
	for _, row := range rows {
		byTransaction[row.TransactionID] = append(byTransaction[row.TransactionID], row.toItemWithProduct())
	}

	out := make([]TransactionWithItems, 0, len(transactions))
	for _, t := range transactions {
		items := byTransaction[t.ID]
		if items == nil {
			items = []TransactionItemWithProduct{}
		}
		out = append(out, TransactionWithItems{Transaction: t, Items: items})
	}
	return out
}
