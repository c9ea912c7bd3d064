package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	// Register decoders so image dimensions can be read from uploads.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/gradeport/gradeport/internal/models"
	"github.com/gradeport/gradeport/internal/vision"
)

// maxUploadBytes bounds one uploaded image.
const maxUploadBytes = 10 * 1024 * 1024

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		sessions := h.sessionStore.GetAll()
		sessionList := make([]*models.GradingSession, 0, len(sessions))
		for _, session := range sessions {
			sessionList = append(sessionList, session)
		}
		h.writeJSON(w, sessionList)
	case "POST":
		contentType := r.Header.Get("Content-Type")
		if strings.Contains(contentType, "application/json") {
			h.createSessionFromJSON(w, r)
			return
		}
		h.createSessionFromUpload(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) createSessionFromUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, "Failed to parse upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		files = r.MultipartForm.File["file"]
	}
	if len(files) == 0 {
		h.writeError(w, "No files in upload", http.StatusBadRequest)
		return
	}

	session := h.newSession()
	for _, header := range files {
		item, err := h.storeUpload(r, header)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		session.Images = append(session.Images, item)
	}

	h.sessionStore.Set(session.ID, session)
	h.writeJSON(w, map[string]any{
		"session_id": session.ID,
		"message":    fmt.Sprintf("Successfully uploaded %d image(s)", len(session.Images)),
		"images":     len(session.Images),
	})
}

func (h *Handler) storeUpload(r *http.Request, header *multipart.FileHeader) (models.ImageItem, error) {
	file, err := header.Open()
	if err != nil {
		return models.ImageItem{}, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return models.ImageItem{}, fmt.Errorf("failed to read %s: %w", header.Filename, err)
	}
	if len(data) >= maxUploadBytes {
		return models.ImageItem{}, fmt.Errorf("%s is too large (max 10MB)", header.Filename)
	}

	contentType := header.Header.Get("Content-Type")
	return h.storeImage(r, header.Filename, data, contentType)
}

func (h *Handler) storeImage(r *http.Request, filename string, data []byte, contentType string) (models.ImageItem, error) {
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return models.ImageItem{}, fmt.Errorf("%s is not an image", filename)
	}

	url, key, err := h.images.Put(r.Context(), filename, data, contentType)
	if err != nil {
		return models.ImageItem{}, fmt.Errorf("failed to store %s: %w", filename, err)
	}

	item := models.ImageItem{
		ID:          key,
		Filename:    filename,
		ImageURL:    url,
		ContentType: contentType,
	}
	if config, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		item.Width = config.Width
		item.Height = config.Height
	}
	return item, nil
}

func (h *Handler) createSessionFromJSON(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Images []struct {
			Filename string `json:"filename"`
			ImageURL string `json:"image_url"`
		} `json:"images"`
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.ImageURL != "" {
		request.Images = append(request.Images, struct {
			Filename string `json:"filename"`
			ImageURL string `json:"image_url"`
		}{ImageURL: request.ImageURL})
	}
	if len(request.Images) == 0 {
		h.writeError(w, "image_url is required", http.StatusBadRequest)
		return
	}

	session := h.newSession()
	for _, img := range request.Images {
		payload, mimeType := vision.StripDataURI(img.ImageURL)
		if mimeType == "" {
			h.writeError(w, "image_url must be a base64 data URI", http.StatusBadRequest)
			return
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			h.writeError(w, "Invalid base64 image data: "+err.Error(), http.StatusBadRequest)
			return
		}
		filename := img.Filename
		if filename == "" {
			filename = "upload"
		}
		item, err := h.storeImage(r, filename, data, mimeType)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		session.Images = append(session.Images, item)
	}

	h.sessionStore.Set(session.ID, session)
	h.writeJSON(w, map[string]any{
		"session_id": session.ID,
		"message":    fmt.Sprintf("Successfully uploaded %d image(s)", len(session.Images)),
		"images":     len(session.Images),
		"source":     "url",
	})
}

func (h *Handler) newSession() *models.GradingSession {
	now := h.now()
	return &models.GradingSession{
		ID:        fmt.Sprintf("session_%d_%s", now.UnixMilli(), uuid.NewString()[:8]),
		Images:    []models.ImageItem{},
		Cards:     []models.CardRecord{},
		CreatedAt: now,
	}
}

func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if sessionID, ok := strings.CutSuffix(path, "/analyze"); ok {
		h.handleAnalyze(w, r, sessionID)
		return
	}
	sessionID := path

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, session)
	case "PUT":
		var updatedSession models.GradingSession
		if err := json.NewDecoder(r.Body).Decode(&updatedSession); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		updatedSession.ID = sessionID
		if updatedSession.CreatedAt.IsZero() {
			updatedSession.CreatedAt = session.CreatedAt
		}
		h.sessionStore.Set(sessionID, &updatedSession)
		h.writeJSON(w, updatedSession)
	case "DELETE":
		h.sessionStore.Delete(sessionID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
