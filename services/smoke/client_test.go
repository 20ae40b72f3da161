package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SignInSetsBearerToken(t *testing.T) {
	// Arrange
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "abc"})
	})
	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "cat-1", "name": "Shoes"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL)

	// Act
	require.NoError(t, client.SignIn(context.Background(), "admin@sporton.test", "secret"))
	cat, err := client.CreateCategory(context.Background(), "Shoes")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "cat-1", cat.ID)
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestClient_ErrorStatusIsTyped(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":      "insufficient stock",
			"product_id": "p-1",
		})
	}))
	defer srv.Close()

	// Act
	_, err := NewClient(srv.URL).UpdateStatus(context.Background(), "t-1", "paid")

	// Assert
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Status)
	assert.Equal(t, "p-1", statusErr.Body.ProductID)
	assert.Contains(t, statusErr.Error(), "PATCH /api/transactions/t-1")
}
