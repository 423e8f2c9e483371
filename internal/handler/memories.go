package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
	"github.com/sakif/scrapbook/internal/service"
)

type MemoryHandler struct {
	memories *service.MemoryService
	logger   *slog.Logger
}

func NewMemoryHandler(memories *service.MemoryService, logger *slog.Logger) *MemoryHandler {
	return &MemoryHandler{memories: memories, logger: logger}
}

// memoryRequest is the body of POST and PUT. Pointer fields tell "absent"
// apart from "set to the zero value", which PUT relies on.
type memoryRequest struct {
	ID         string           `json:"id"`
	Type       *model.MediaType `json:"type"`
	URL        *string          `json:"url"`
	Thumbnail  *string          `json:"thumbnail"`
	Caption    *string          `json:"caption"`
	Date       *string          `json:"date"`
	Poetry     *string          `json:"poetry"`
	Tags       *[]string        `json:"tags"`
	IsFavorite *bool            `json:"isFavorite"`
}

func (req memoryRequest) memory() model.Memory {
	var m model.Memory
	req.patch().Apply(&m)
	return m
}

func (req memoryRequest) patch() model.MemoryPatch {
	return model.MemoryPatch{
		Type:       req.Type,
		URL:        req.URL,
		Thumbnail:  req.Thumbnail,
		Caption:    req.Caption,
		Date:       req.Date,
		Poetry:     req.Poetry,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
	}
}

// HandleList returns memories newest first.
//
// HTTP: GET /api/memories?type=image|video&favorite=true
func (h *MemoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := repository.MemoryFilter{
		Type:         model.MediaType(r.URL.Query().Get("type")),
		FavoriteOnly: queryFlag(r, "favorite"),
	}

	memories, err := h.memories.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch memories")
		return
	}
	writeJSON(w, http.StatusOK, memories)
}

// HandleCreate stores a memory pointing at an already uploaded asset.
//
// HTTP: POST /api/memories
// REQUEST BODY: {"url": "https://...", "caption": "Day one"}
func (h *MemoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to create memory"

	var req memoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failed)
		return
	}

	memory, err := h.memories.Create(r.Context(), req.memory())
	if err != nil {
		writeError(w, h.logger, err, failed)
		return
	}
	writeJSON(w, http.StatusCreated, memory)
}

// HandleUpdate changes the fields present in the body of the memory whose
// id is in the body.
//
// HTTP: PUT /api/memories
// REQUEST BODY: {"id": "...", "isFavorite": true}
func (h *MemoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to update memory"

	var req memoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failed)
		return
	}

	memory, err := h.memories.Update(r.Context(), req.ID, req.patch())
	if err != nil {
		writeError(w, h.logger, err, failed)
		return
	}
	writeJSON(w, http.StatusOK, memory)
}

// HandleDelete removes the memory named by the id query parameter.
//
// HTTP: DELETE /api/memories?id=...
func (h *MemoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.memories.Delete(r.Context(), r.URL.Query().Get("id")); err != nil {
		writeError(w, h.logger, err, "Failed to delete memory")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
