package event_api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"tangokultura/internal/auth"
	"tangokultura/internal/events"
	"tangokultura/internal/logger"
	"tangokultura/internal/models"
)

type Handler struct {
	EventService *events.EventService
	Logger       *logger.Logger
}

func NewHandler(eventService *events.EventService, log *logger.Logger) *Handler {
	return &Handler{
		EventService: eventService,
		Logger:       log,
	}
}

// ListEvents handles GET /api/events. The response is a bare JSON array of
// event views, matching what the React client consumes.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	upcoming := true
	if raw := q.Get("upcomingCourses"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			upcoming = parsed
		}
	}

	filters := events.Filters{
		EventType:       q.Get("eventType"),
		SubEventType:    q.Get("subEventType"),
		County:          q.Get("county"),
		UpcomingCourses: upcoming,
	}

	views, err := h.EventService.ListEvents(filters)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListEvents: %v", err))
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListEvents: failed to encode response: %v", err))
	}
}

// CreateEvents handles POST /api/events. The body is either a single event
// object or an array of them (the repetition picker submits one payload per
// generated date). Always responds with the array of created records.
func (h *Handler) CreateEvents(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "User identity not found", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		http.Error(w, "No event data provided", http.StatusBadRequest)
		return
	}

	inputs, err := decodeEventInputs(body)
	if err != nil {
		h.Logger.Warn("API", fmt.Sprintf("CreateEvents: bad payload: %v", err))
		http.Error(w, "Invalid event data format: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.EventService.CreateEvents(inputs, principal)
	if err != nil {
		if errors.Is(err, events.ErrInvalidPayload) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateEvents: %v", err))
		http.Error(w, "Failed to create events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateEvents: failed to encode response: %v", err))
	}
}

// decodeEventInputs accepts a JSON object or array of objects.
func decodeEventInputs(body []byte) ([]models.EventInput, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var inputs []models.EventInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, err
		}
		return inputs, nil
	}

	var input models.EventInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, err
	}
	return []models.EventInput{input}, nil
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "User identity not found", http.StatusUnauthorized)
		return
	}

	var input models.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.EventService.UpdateEvent(eventID, input, principal)
	if err != nil {
		h.writeMutationError(w, "UpdateEvent", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateEvent: failed to encode response: %v", err))
	}
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "User identity not found", http.StatusUnauthorized)
		return
	}

	if err := h.EventService.DeleteEvent(eventID, principal); err != nil {
		h.writeMutationError(w, "DeleteEvent", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EventQR handles GET /api/events/{id}/qr: a PNG QR code of the event link,
// for sharing from the listing page.
func (h *Handler) EventQR(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	event, err := h.EventService.GetEvent(eventID)
	if err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	if event.EventLink == "" {
		http.Error(w, "Event has no link", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(event.EventLink, qrcode.Medium, 256)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("EventQR: failed to encode QR: %v", err))
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) writeMutationError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, events.ErrInvalidPayload):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, events.ErrForbidden):
		http.Error(w, "You can only modify your own events", http.StatusForbidden)
	case events.IsNotFound(err):
		http.Error(w, "Event not found", http.StatusNotFound)
	default:
		h.Logger.Error("API", fmt.Sprintf("%s: %v", op, err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
