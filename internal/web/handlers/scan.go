package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/jsvoboda/shelfscan/internal/catalog"
	"github.com/jsvoboda/shelfscan/internal/ocr"
	"github.com/jsvoboda/shelfscan/internal/scan"
)

// maxUploadBytes caps shelf photo uploads at 20 MB.
const maxUploadBytes = 20 << 20

// ScanHandler turns uploaded shelf photos into book candidates.
type ScanHandler struct {
	provider ocr.Provider
	catalog  *catalog.Service
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(provider ocr.Provider, svc *catalog.Service) *ScanHandler {
	return &ScanHandler{
		provider: provider,
		catalog:  svc,
	}
}

// ScanResponse is the result of scanning one photo.
type ScanResponse struct {
	Provider   string              `json:"provider"`
	Author     string              `json:"author,omitempty"`
	Candidates []catalog.Candidate `json:"candidates"`
}

// Scan accepts a multipart upload under the "image" field, runs text
// recognition and returns candidate titles annotated with duplicate matches
// against the caller's catalog.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		respondError(w, http.StatusServiceUnavailable, "no OCR provider configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read image")
		return
	}

	rawText, err := h.provider.RecognizeText(r.Context(), imageData)
	if err != nil {
		log.Printf("text recognition failed: %v", err)
		respondError(w, http.StatusBadGateway, "text recognition failed")
		return
	}

	author, _ := scan.ExtractAuthor(rawText)

	// Author marker lines pass the title predicates but are not titles.
	var titles []string
	for _, title := range scan.ExtractTitles(rawText) {
		if !scan.IsAuthorLine(title) {
			titles = append(titles, title)
		}
	}

	candidates, err := h.catalog.Evaluate(r.Context(), userID(r), titles)
	if err != nil {
		log.Printf("could not evaluate candidates: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to evaluate candidates")
		return
	}

	respondJSON(w, http.StatusOK, ScanResponse{
		Provider:   h.provider.Name(),
		Author:     author,
		Candidates: candidates,
	})
}
