package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// HealthCheck verifica a saúde do serviço
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sporton-admin",
	})
}

// respondError traduz os erros de domínio para status HTTP. Erros inesperados
// são logados e respondidos com uma mensagem genérica.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var (
		validationErr   *ValidationError
		notFoundErr     *NotFoundError
		insufficientErr *InsufficientStockError
		conflictErr     *ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &insufficientErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      insufficientErr.Error(),
			"product_id": insufficientErr.ProductID,
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindingErrorMessage transforma erros do validator em mensagens por campo
func bindingErrorMessage(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return "invalid request body"
	}

	msgs := make([]string, 0, len(vErrs))
	for _, vErr := range vErrs {
		switch vErr.Tag() {
		case "required":
			msgs = append(msgs, vErr.Field()+" value missing")
		case "min":
			msgs = append(msgs, vErr.Field()+" value is less than "+vErr.Param())
		case "email":
			msgs = append(msgs, vErr.Field()+" must be a valid email")
		case "oneof":
			msgs = append(msgs, vErr.Field()+" must be one of "+vErr.Param())
		default:
			msgs = append(msgs, vErr.Field()+": "+vErr.Tag())
		}
	}
	return strings.Join(msgs, ", ")
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}
