package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxUploadSize caps image uploads at 5 MB.
const maxUploadSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadHandler stores uploaded images on disk and hands back the URL they
// are served from. The core never inspects file contents; posts just carry
// the returned URL.
type UploadHandler struct {
	dir string
}

// NewUploadHandler creates an UploadHandler writing into dir, creating it
// if needed.
func NewUploadHandler(dir string) (*UploadHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &UploadHandler{dir: dir}, nil
}

// RegisterUploadRoutes registers the authenticated upload route
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/upload", h.UploadImage)
}

// UploadImage accepts a multipart "image" field (.jpg/.jpeg/.png, up to
// 5 MB) and returns the URL it will be served from.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	if fileHeader.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File exceeds the 5MB size limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		return echo.NewHTTPError(http.StatusBadRequest, "Only .jpg, .jpeg, or .png files are allowed")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer src.Close()

	filename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.dir, filename))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store uploaded file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, maxUploadSize)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store uploaded file")
	}

	return c.JSON(http.StatusOK, echo.Map{"image_url": "/uploads/" + filename})
}
