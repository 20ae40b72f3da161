package main

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// apiError é o corpo de erro devolvido pelo serviço admin
type apiError struct {
	Error     string `json:"error"`
	ProductID string `json:"product_id,omitempty"`
}

type category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

type transactionItem struct {
	ProductID       string          `json:"product_id"`
	Qty             int             `json:"qty"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

type transaction struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	TotalPayment decimal.Decimal   `json:"total_payment"`
	Items        []transactionItem `json:"items"`
}

// StatusError é devolvido quando a API responde fora da faixa 2xx
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   apiError
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body.Error)
}

// Client fala com a API admin via resty
type Client struct {
	http *resty.Client
}

// NewClient cria um cliente apontando para baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var apiErr apiError
	req := c.http.R().
		SetContext(ctx).
		SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode(), Body: apiErr}
	}
	return nil
}

func (c *Client) InitiateAdmin(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, resty.MethodPost, "/api/auth/initiate-admin-user", body, nil)
}

// SignIn autentica e passa a enviar o token nas próximas requisições
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, resty.MethodPost, "/api/auth/signin", body, &out); err != nil {
		return err
	}
	c.http.SetAuthToken(out.Token)
	return nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*category, error) {
	var out category
	err := c.do(ctx, resty.MethodPost, "/api/categories", map[string]string{"name": name}, &out)
	return &out, err
}

func (c *Client) CreateProduct(ctx context.Context, categoryID, name string, stock int, price decimal.Decimal) (*product, error) {
	var out product
	body := map[string]any{
		"category_id": categoryID,
		"name":        name,
		"stock":       stock,
		"price":       price,
	}
	err := c.do(ctx, resty.MethodPost, "/api/products", body, &out)
	return &out, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (*product, error) {
	var out product
	err := c.do(ctx, resty.MethodGet, "/api/products/"+id, nil, &out)
	return &out, err
}

func (c *Client) CreateTransaction(ctx context.Context, items []transactionItem) (*transaction, error) {
	var out transaction
	body := map[string]any{
		"customer_name":    "Smoke Test",
		"customer_contact": "0800000000",
		"customer_address": "Jl. Smoke No. 1",
		"items":            items,
	}
	err := c.do(ctx, resty.MethodPost, "/api/transactions", body, &out)
	return &out, err
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*transaction, error) {
	var out transaction
	err := c.do(ctx, resty.MethodGet, "/api/transactions/"+id, nil, &out)
	return &out, err
}

func (c *Client) UpdateStatus(ctx context.Context, id, status string) (*transaction, error) {
	var out transaction
	err := c.do(ctx, resty.MethodPatch, "/api/transactions/"+id, map[string]string{"status": status}, &out)
	return &out, err
}
