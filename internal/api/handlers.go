// Package api exposes the HTTP surface of the roomcare service.
//
// The handlers are a thin I/O wrapper: decode the payload, call the
// dispatcher (or the token encoder, or the catalog), encode the result.
// All correctness-bearing logic lives behind them.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"roomcare/internal/catalog"
	"roomcare/internal/dispatch"
	apperrors "roomcare/internal/errors"
	"roomcare/internal/health"
	"roomcare/internal/qr"
	"roomcare/internal/request"
	"roomcare/internal/sheets"
	"roomcare/internal/telegram"
)

// Handlers bundles the collaborators every route needs.
type Handlers struct {
	Dispatcher *dispatch.Dispatcher
	Catalog    *catalog.Catalog
	Encoder    *qr.Encoder
	Monitor    *health.Monitor
}

// NewHandlers creates the handler set.
func NewHandlers(d *dispatch.Dispatcher, c *catalog.Catalog, e *qr.Encoder, m *health.Monitor) *Handlers {
	return &Handlers{Dispatcher: d, Catalog: c, Encoder: e, Monitor: m}
}

// submitResponse is the JSON body of a dispatch result.
type submitResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	TelegramSent bool   `json:"telegram_sent"`
	SheetsSaved  bool   `json:"sheets_saved"`
	SinkResults  any    `json:"sink_results"`
}

// SubmitRequest handles POST /api/submit_request.
//
// Responses:
//   - 400 with a missing_fields list on validation failure (no sink runs)
//   - 200 with success=true when at least one sink accepted the record
//   - 500 with success=false when every sink failed
func (h *Handlers) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var sub request.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}

	report, err := h.Dispatcher.Submit(r.Context(), sub)
	if err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":          verr.Error(),
				"missing_fields": verr.Missing,
			})
			return
		}
		log.Printf("⚠️  Error submitting request: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	telegramSent := false
	if out, ok := report.Outcome(telegram.SinkName); ok {
		telegramSent = out.Succeeded
	}
	sheetsSaved := false
	if out, ok := report.Outcome(sheets.SinkName); ok {
		sheetsSaved = out.Succeeded
	}

	if !report.AnySucceeded() {
		h.Monitor.UpdateDispatchStatus("all sinks failed")
		writeJSON(w, http.StatusInternalServerError, submitResponse{
			Success:     false,
			Message:     "Ошибка при отправке заявки",
			SinkResults: report.Outcomes,
		})
		return
	}

	h.Monitor.UpdateDispatchStatus("delivered")
	writeJSON(w, http.StatusOK, submitResponse{
		Success:      true,
		Message:      "Заявка отправлена успешно!",
		TelegramSent: telegramSent,
		SheetsSaved:  sheetsSaved,
		SinkResults:  report.Outcomes,
	})
}

// GetRooms handles GET /api/rooms.
func (h *Handlers) GetRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Rooms())
}

// GenerateQR handles GET /api/generate_qr/{roomNumber}.
//
// Returns the deep link and the QR image as a base64 PNG data URI.
func (h *Handlers) GenerateQR(w http.ResponseWriter, r *http.Request) {
	roomNumber, err := strconv.Atoi(chi.URLParam(r, "roomNumber"))
	if err != nil || roomNumber < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid room number"})
		return
	}

	token, err := h.Encoder.Encode(roomNumber)
	if err != nil {
		log.Printf("⚠️  Error generating QR code: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate QR code"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"qr_code":     token.DataURI(),
		"url":         token.URL,
		"room_number": roomNumber,
	})
}

// RoomSign handles GET /api/room_sign/{roomNumber}.
//
// Returns a printable PNG door sign for a cataloged room.
func (h *Handlers) RoomSign(w http.ResponseWriter, r *http.Request) {
	roomNumber, err := strconv.Atoi(chi.URLParam(r, "roomNumber"))
	if err != nil || roomNumber < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid room number"})
		return
	}

	room, ok := h.Catalog.Lookup(roomNumber)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown room"})
		return
	}

	sign, err := h.Encoder.RenderSign(room, roomNumber)
	if err != nil {
		log.Printf("⚠️  Error rendering room sign: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to render room sign"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(sign)
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Monitor.GetStatus())
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
