package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// AllowedImageFile reports whether the uploaded filename carries an
// allow-listed image extension.
func AllowedImageFile(filename string) bool {
	return allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SaveImageUpload writes the uploaded file under uploadDir with a
// generated filesystem-safe name and returns the public /uploads path
// stored on the pizza row. The original filename is discarded entirely,
// only its extension survives.
func SaveImageUpload(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return "/uploads/" + filename, nil
}
