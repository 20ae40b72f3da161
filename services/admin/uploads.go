package main

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// FileStorage guarda arquivos enviados e devolve uma referência estável
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// LocalFileStorage grava os uploads num diretório servido como estático
type LocalFileStorage struct {
	dir      string
	maxBytes int64
}

// NewLocalFileStorage cria o diretório de uploads se necessário
func NewLocalFileStorage(dir string, maxBytes int64) (*LocalFileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalFileStorage{dir: dir, maxBytes: maxBytes}, nil
}

// Save valida tamanho e extensão e grava com nome baseado em uuid.
// A referência devolvida é "uploads/<nome>".
func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxBytes {
		return "", newValidationError("file %q exceeds the %d byte limit", file.Filename, s.maxBytes)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		return "", newValidationError("file type %q is not allowed", ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + ext
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes)); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", err
	}

	return path.Join("uploads", name), nil
}
