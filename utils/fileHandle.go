package utils

import (
	"devcamper/config"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SaveBootcampPhoto validates and stores an uploaded bootcamp photo.
// Only image MIME types are accepted, the size is capped by config, and
// the stored filename is deterministic so re-uploads overwrite.
func SaveBootcampPhoto(file *multipart.FileHeader, bootcampID uint) (string, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image") {
		return "", fiber.NewError(fiber.StatusBadRequest, "Please upload an image file")
	}

	if file.Size > config.AppConfig.MaxFileUpload {
		return "", fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Please upload an image less than %d bytes", config.AppConfig.MaxFileUpload))
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := config.AppConfig.FileUploadPath
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("photo_%d%s", bootcampID, filepath.Ext(file.Filename))

	dst, err := os.Create(filepath.Join(destDir, newFilename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return newFilename, nil
}
