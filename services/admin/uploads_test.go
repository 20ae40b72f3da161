package main

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalFileStorage_Save(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	storage, err := NewLocalFileStorage(dir, 1024)
	require.NoError(t, err)

	// Act
	ref, err := storage.Save(context.Background(), fileHeader(t, "proof.PNG", []byte("png-bytes")))

	// Assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(saved))
}

func TestLocalFileStorage_Save_Rejects(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalFileStorage(dir, 8)
	require.NoError(t, err)

	tests := []struct {
		name     string
		filename string
		content  []byte
	}{
		{name: "extensão proibida", filename: "script.sh", content: []byte("rm")},
		{name: "arquivo grande", filename: "big.jpg", content: bytes.Repeat([]byte("x"), 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			_, err := storage.Save(context.Background(), fileHeader(t, tt.filename, tt.content))

			// Assert
			var validation *ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
