package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/service"
)

type LetterHandler struct {
	letters *service.LetterService
	logger  *slog.Logger
}

func NewLetterHandler(letters *service.LetterService, logger *slog.Logger) *LetterHandler {
	return &LetterHandler{letters: letters, logger: logger}
}

type letterRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Preview   string `json:"preview"`
	Content   string `json:"content"`
	From      string `json:"from"`
	IsPrivate bool   `json:"isPrivate"`
}

// HandleList returns letters newest first. Private letters are only
// included with ?includePrivate=true.
//
// HTTP: GET /api/letters
func (h *LetterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	letters, err := h.letters.List(r.Context(), queryFlag(r, "includePrivate"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch love letters")
		return
	}
	writeJSON(w, http.StatusOK, letters)
}

// HandleCreate stores a letter.
//
// HTTP: POST /api/letters
func (h *LetterHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to create love letter"

	var req letterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failed)
		return
	}

	letter, err := h.letters.Create(r.Context(), model.LoveLetter{
		Title:     req.Title,
		Date:      req.Date,
		Preview:   req.Preview,
		Content:   req.Content,
		From:      req.From,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		writeError(w, h.logger, err, failed)
		return
	}
	writeJSON(w, http.StatusCreated, letter)
}
