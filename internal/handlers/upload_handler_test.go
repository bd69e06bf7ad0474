package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = io.Copy(part, bytes.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadImageStoresFile(t *testing.T) {
	dir := t.TempDir()
	handler, err := NewUploadHandler(dir)
	require.NoError(t, err)

	e := echo.New()
	e.POST("/upload", handler.UploadImage)

	body, contentType := multipartUpload(t, "image", "photo.png", []byte("fake png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	url := resp["image_url"]
	require.True(t, strings.HasPrefix(url, "/uploads/"), "unexpected url %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), data)
}

func TestUploadImageRejectsUnsupportedExtension(t *testing.T) {
	handler, err := NewUploadHandler(t.TempDir())
	require.NoError(t, err)

	e := echo.New()
	e.POST("/upload", handler.UploadImage)

	body, contentType := multipartUpload(t, "image", "script.sh", []byte("#!/bin/sh"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImageRequiresFile(t *testing.T) {
	handler, err := NewUploadHandler(t.TempDir())
	require.NoError(t, err)

	e := echo.New()
	e.POST("/upload", handler.UploadImage)

	body, contentType := multipartUpload(t, "not-image", "photo.png", []byte("data"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
