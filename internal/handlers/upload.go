package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/shelfsort/bookident/internal/models"
)

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Check if this is a JSON request with image URL
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleURLUpload(w, r)
		return
	}

	// Handle file upload
	h.handleFileUpload(w, r)
}

func (h *Handler) handleURLUpload(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURL string `json:"image_url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.ImageURL == "" {
		h.writeError(w, "image_url is required", http.StatusBadRequest)
		return
	}

	imageData, err := h.downloadImageFromURL(request.ImageURL)
	if err != nil {
		h.writeError(w, "Failed to process image URL: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Extract filename from URL
	parts := strings.Split(request.ImageURL, "/")
	filename := parts[len(parts)-1]
	if filename == "" {
		filename = "cover.jpg"
	}

	session, err := h.processUpload(r, imageData, filename)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	session.ImageURL = request.ImageURL

	h.writeJSON(w, session)
}

func (h *Handler) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	// Limit file size to 10MB
	imageData, err := io.ReadAll(io.LimitReader(file, 10*1024*1024))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if len(imageData) >= 10*1024*1024 {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	session, err := h.processUpload(r, imageData, header.Filename)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, session)
}

func (h *Handler) processUpload(r *http.Request, imageData []byte, filename string) (*models.IdentifySession, error) {
	imageFilename, err := h.saveImageFile(imageData, filename)
	if err != nil {
		return nil, err
	}

	// Use filename (without extension) as session name, with timestamp for uniqueness
	baseFilename := strings.TrimSuffix(filename, filepath.Ext(filename))
	sessionID := fmt.Sprintf("%s_%d", baseFilename, time.Now().Unix())

	result := h.createIdentifySession(r.Context(), sessionID, imageFilename, imageData)
	h.sessionStore.Set(sessionID, result)

	return result, nil
}
