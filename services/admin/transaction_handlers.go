package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TransactionUseCaseInterface define a interface para o use case de transações
type TransactionUseCaseInterface interface {
	Create(ctx context.Context, input CreateTransactionInput) (*TransactionWithItems, error)
	UpdateStatus(ctx context.Context, id string, status TransactionStatus) (*TransactionWithItems, error)
	GetByID(ctx context.Context, id string) (*TransactionWithItems, error)
	List(ctx context.Context) ([]TransactionWithItems, error)
}

// TransactionHandler contém os handlers HTTP de transações
type TransactionHandler struct {
	useCase TransactionUseCaseInterface
	storage FileStorage
	tracer  trace.Tracer
	logger  *zap.Logger
}

// NewTransactionHandler cria uma nova instância de TransactionHandler
func NewTransactionHandler(useCase TransactionUseCaseInterface, storage FileStorage, tracer trace.Tracer, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		useCase: useCase,
		storage: storage,
		tracer:  tracer,
		logger:  logger,
	}
}

type createTransactionRequest struct {
	PaymentProof    string                 `json:"payment_proof"`
	TotalPayment    *decimal.Decimal       `json:"total_payment"`
	CustomerName    string                 `json:"customer_name" binding:"required"`
	CustomerContact string                 `json:"customer_contact" binding:"required"`
	CustomerAddress string                 `json:"customer_address" binding:"required"`
	Items           []TransactionItemInput `json:"items"`
}

// createTransactionForm é a variante multipart: items chega como string JSON
type createTransactionForm struct {
	TotalPayment    string `form:"total_payment"`
	CustomerName    string `form:"customer_name" binding:"required"`
	CustomerContact string `form:"customer_contact" binding:"required"`
	CustomerAddress string `form:"customer_address" binding:"required"`
	Items           string `form:"items" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *TransactionHandler) bindCreateInput(ctx context.Context, c *gin.Context) (CreateTransactionInput, error) {
	if !isMultipart(c) {
		var req createTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return CreateTransactionInput{}, &ValidationError{Message: bindingErrorMessage(err)}
		}
		return CreateTransactionInput{
			PaymentProof:    req.PaymentProof,
			TotalPayment:    req.TotalPayment,
			CustomerName:    req.CustomerName,
			CustomerContact: req.CustomerContact,
			CustomerAddress: req.CustomerAddress,
			Items:           req.Items,
		}, nil
	}

	var form createTransactionForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		return CreateTransactionInput{}, &ValidationError{Message: bindingErrorMessage(err)}
	}

	input := CreateTransactionInput{
		CustomerName:    form.CustomerName,
		CustomerContact: form.CustomerContact,
		CustomerAddress: form.CustomerAddress,
	}
	if err := json.Unmarshal([]byte(form.Items), &input.Items); err != nil {
		return CreateTransactionInput{}, newValidationError("invalid format for items")
	}
	if form.TotalPayment != "" {
		total, err := decimal.NewFromString(form.TotalPayment)
		if err != nil {
			return CreateTransactionInput{}, newValidationError("invalid total_payment")
		}
		input.TotalPayment = &total
	}

	if file, err := c.FormFile("payment_proof"); err == nil {
		ref, err := h.storage.Save(ctx, file)
		if err != nil {
			return CreateTransactionInput{}, err
		}
		input.PaymentProof = ref
	}
	return input, nil
}

// CreateTransaction cria uma transação pendente com seus itens
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "transactions.create")
	defer span.End()

	input, err := h.bindCreateInput(ctx, c)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err, "Error creating transaction")
		return
	}
	span.SetAttributes(attribute.Int("items", len(input.Items)))

	result, err := h.useCase.Create(ctx, input)
	if err != nil {
		span.RecordError(err)
		// A missing product is a bad request here, not a missing route resource.
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": notFound.Error(), "product_id": notFound.ID})
			return
		}
		respondError(c, h.logger, err, "Error creating transaction")
		return
	}

	span.SetAttributes(attribute.String("transaction_id", result.ID))
	c.JSON(http.StatusCreated, result)
}

// ListTransactions lista as transações com itens e produtos
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "transactions.list")
	defer span.End()

	result, err := h.useCase.List(ctx)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err, "Error getting transactions")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTransaction busca uma transação pelo id
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "transactions.get")
	defer span.End()

	id := c.Param("id")
	span.SetAttributes(attribute.String("transaction_id", id))

	result, err := h.useCase.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err, "Error getting transaction")
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateTransactionStatus muda o status; paid baixa o estoque
func (h *TransactionHandler) UpdateTransactionStatus(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "transactions.update_status")
	defer span.End()

	id := c.Param("id")
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	span.SetAttributes(
		attribute.String("transaction_id", id),
		attribute.String("status", req.Status),
	)

	result, err := h.useCase.UpdateStatus(ctx, id, TransactionStatus(req.Status))
	if err != nil {
		span.RecordError(err)
		respondError(c, h.logger, err, "Error updating transaction status")
		return
	}
	c.JSON(http.StatusOK, result)
}
