package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Claims é o conteúdo do token do administrador
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignInResult é devolvido após um login válido
type SignInResult struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// NewAdmin é o payload para criar o administrador inicial
type NewAdmin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// AuthUseCase emite e valida tokens do administrador único
type AuthUseCase struct {
	users    UserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewAuthUseCase cria uma nova instância de AuthUseCase
func NewAuthUseCase(users UserRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// SignIn verifica a senha e emite um token HS256
func (uc *AuthUseCase) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, err := uc.users.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPass), []byte(password)); err != nil {
		uc.logger.Warn("ℹ️ [SIGNIN] wrong password", zap.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	now := uc.now()
	claims := Claims{
		ID:    user.ID,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	result := &SignInResult{Token: token}
	result.User.ID = user.ID
	result.User.Name = user.Name
	result.User.Email = user.Email
	return result, nil
}

// ParseToken valida assinatura, algoritmo e expiração
func (uc *AuthUseCase) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return uc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(uc.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// InitiateAdmin cria o administrador somente se ainda não houver nenhum usuário
func (uc *AuthUseCase) InitiateAdmin(ctx context.Context, input NewAdmin) error {
	count, err := uc.users.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAdminExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Email:      strings.TrimSpace(input.Email),
		HashedPass: string(hashed),
	}
	if err := uc.users.CreateUser(ctx, user); err != nil {
		return err
	}

	uc.logger.Info("✅ [ADMIN] admin user created", zap.String("user_id", user.ID))
	return nil
}
