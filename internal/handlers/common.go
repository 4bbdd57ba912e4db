package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/shelfsort/bookident/internal/covers"
	"github.com/shelfsort/bookident/internal/identify"
	"github.com/shelfsort/bookident/internal/models"
	"github.com/shelfsort/bookident/internal/storage"
)

type Handler struct {
	sessionStore    *storage.SessionStore
	identifyService *identify.Service
	coverFetcher    *covers.Fetcher
}

func New(service *identify.Service, fetcher *covers.Fetcher) *Handler {
	return &Handler{
		sessionStore:    storage.New(),
		identifyService: service,
		coverFetcher:    fetcher,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.IdentifySession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// File operation helpers
func (h *Handler) ensureUploadsDir() error {
	uploadsDir := "uploads"
	return os.MkdirAll(uploadsDir, 0755)
}

// createIdentifySession runs identification on the uploaded image and
// records the outcome. An identification failure is stored on the
// session rather than failing the upload.
func (h *Handler) createIdentifySession(ctx context.Context, sessionID, imageFilename string, imageData []byte) *models.IdentifySession {
	session := &models.IdentifySession{
		ID:            sessionID,
		ImageFilename: imageFilename,
		CreatedAt:     time.Now(),
	}

	slog.Info("Identifying book from cover image", "session_id", sessionID, "filename", imageFilename)
	record, err := h.identifyService.Identify(ctx, imageData)
	if err != nil {
		slog.Error("Failed to identify book", "session_id", sessionID, "error", err)
		session.Error = err.Error()
		return session
	}

	session.Record = record
	slog.Info("Book identified", "session_id", sessionID, "isbn", record.ISBN, "title", record.Title)

	if h.coverFetcher != nil && record.ISBN != "" {
		session.CoverURL = h.coverFetcher.LookupURL(ctx, record.ISBN)
	}

	return session
}
