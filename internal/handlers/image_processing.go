package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/shelfsort/bookident/internal/utils"
)

// saveImageFile writes the uploaded image under uploads/ with an
// MD5-derived name and returns that filename
func (h *Handler) saveImageFile(imageData []byte, filename string) (string, error) {
	if err := h.ensureUploadsDir(); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	md5Hash := utils.CalculateDataMD5(imageData)
	ext := filepath.Ext(filename)
	imageFilename := md5Hash + ext
	imageFilePath := filepath.Join("uploads", imageFilename)

	if err := os.WriteFile(imageFilePath, imageData, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	slog.Info("Image saved", "filename", imageFilename)
	return imageFilename, nil
}

func (h *Handler) downloadImageFromURL(imageURL string) ([]byte, error) {
	resp, err := http.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}
