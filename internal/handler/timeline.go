package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/service"
)

type TimelineHandler struct {
	timeline *service.TimelineService
	logger   *slog.Logger
}

func NewTimelineHandler(timeline *service.TimelineService, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{timeline: timeline, logger: logger}
}

type timelineRequest struct {
	Date        string             `json:"date"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Icon        model.TimelineIcon `json:"icon"`
	Poetry      string             `json:"poetry"`
	Order       *int               `json:"order"`
}

// HandleList returns the timeline in ascending order.
//
// HTTP: GET /api/timeline
func (h *TimelineHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.timeline.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch timeline events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// HandleCreate appends an event. Without "order" it goes after the last one.
//
// HTTP: POST /api/timeline
func (h *TimelineHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to create timeline event"

	var req timelineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, failed)
		return
	}

	event, err := h.timeline.Create(r.Context(), model.TimelineEvent{
		Date:        req.Date,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Icon:        req.Icon,
		Poetry:      req.Poetry,
	}, req.Order)
	if err != nil {
		writeError(w, h.logger, err, failed)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}
