package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthUseCaseInterface define a interface para o use case de autenticação
type AuthUseCaseInterface interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	ParseToken(raw string) (*Claims, error)
	InitiateAdmin(ctx context.Context, input NewAdmin) error
}

// AuthHandler contém os handlers HTTP de autenticação
type AuthHandler struct {
	useCase AuthUseCaseInterface
	logger  *zap.Logger
}

// NewAuthHandler cria uma nova instância de AuthHandler
func NewAuthHandler(useCase AuthUseCaseInterface, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: useCase,
		logger:  logger,
	}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	result, err := h.useCase.SignIn(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Credentials"})
		return
	}
	if err != nil {
		respondError(c, h.logger, err, "Error signing in")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) InitiateAdmin(c *gin.Context) {
	var input NewAdmin
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	err := h.useCase.InitiateAdmin(c.Request.Context(), input)
	if errors.Is(err, ErrAdminExists) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin user already exists"})
		return
	}
	if err != nil {
		respondError(c, h.logger, err, "Error creating admin user")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin user created successfully"})
}
