package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/service"
)

type VideoHandler struct {
	videos *service.VideoService
	logger *slog.Logger
}

func NewVideoHandler(videos *service.VideoService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, logger: logger}
}

type videoRequest struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title"`
	URL         *string   `json:"url"`
	Thumbnail   *string   `json:"thumbnail"`
	Duration    *string   `json:"duration"`
	Description *string   `json:"description"`
	Date        *string   `json:"date"`
	Tags        *[]string `json:"tags"`
	IsFavorite  *bool     `json:"isFavorite"`
}

func (req videoRequest) video() model.VideoMemory {
	var v model.VideoMemory
	req.patch().Apply(&v)
	return v
}

func (req videoRequest) patch() model.VideoPatch {
	return model.VideoPatch{
		Title:       req.Title,
		URL:         req.URL,
		Thumbnail:   req.Thumbnail,
		Duration:    req.Duration,
		Description: req.Description,
		Date:        req.Date,
		Tags:        req.Tags,
		IsFavorite:  req.IsFavorite,
	}
}

// HTTP: GET /api/videos?favorite=true
func (h *VideoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videos.List(r.Context(), queryFlag(r, "favorite"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch videos")
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// HTTP: POST /api/videos
func (h *VideoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to create video"

	var req videoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failed)
		return
	}

	video, err := h.videos.Create(r.Context(), req.video())
	if err != nil {
		writeError(w, h.logger, err, failed)
		return
	}
	writeJSON(w, http.StatusCreated, video)
}

// HTTP: PUT /api/videos
func (h *VideoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to update video"

	var req videoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failed)
		return
	}

	video, err := h.videos.Update(r.Context(), req.ID, req.patch())
	if err != nil {
		writeError(w, h.logger, err, failed)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// HTTP: DELETE /api/videos?id=...
func (h *VideoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.videos.Delete(r.Context(), r.URL.Query().Get("id")); err != nil {
		writeError(w, h.logger, err, "Failed to delete video")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
