package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomcare/internal/catalog"
	"roomcare/internal/dispatch"
	"roomcare/internal/health"
	"roomcare/internal/qr"
	"roomcare/internal/request"
	"roomcare/internal/sink"
)

// stubSink is a scriptable sink double.
type stubSink struct {
	name    string
	succeed bool
	calls   atomic.Int32
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Attempt(ctx context.Context, rec *request.Record) sink.Outcome {
	s.calls.Add(1)
	if s.succeed {
		return sink.Succeed(s.name)
	}
	return sink.Fail(s.name, "simulated network error")
}

func newTestServer(t *testing.T, chatOK, ledgerOK bool) (*httptest.Server, *stubSink, *stubSink) {
	t.Helper()
	chat := &stubSink{name: "telegram", succeed: chatOK}
	ledger := &stubSink{name: "sheets", succeed: ledgerOK}

	rooms := catalog.New()
	h := NewHandlers(
		dispatch.New(time.Second, rooms.Lookup, chat, ledger),
		rooms,
		qr.NewEncoder("https://example.com"),
		health.NewMonitor(),
	)

	srv := httptest.NewServer(SetupRoutes(h))
	t.Cleanup(srv.Close)
	return srv, chat, ledger
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestSubmitRequestPartialDeliveryStillSucceeds(t *testing.T) {
	srv, chat, ledger := newTestServer(t, true, false)

	resp := postJSON(t, srv.URL+"/api/submit_request", map[string]any{
		"room":         map[string]string{"building": "A", "floor": "02", "type": "WC", "number": "001"},
		"problem_type": "soap",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success      bool           `json:"success"`
		Message      string         `json:"message"`
		TelegramSent bool           `json:"telegram_sent"`
		SheetsSaved  bool           `json:"sheets_saved"`
		SinkResults  []sink.Outcome `json:"sink_results"`
	}
	decode(t, resp, &body)

	assert.True(t, body.Success)
	assert.Equal(t, "Заявка отправлена успешно!", body.Message)
	assert.True(t, body.TelegramSent)
	assert.False(t, body.SheetsSaved)
	require.Len(t, body.SinkResults, 2)
	assert.Equal(t, "telegram", body.SinkResults[0].Sink)
	assert.True(t, body.SinkResults[0].Succeeded)
	assert.Equal(t, "sheets", body.SinkResults[1].Sink)
	assert.False(t, body.SinkResults[1].Succeeded)

	assert.Equal(t, int32(1), chat.calls.Load())
	assert.Equal(t, int32(1), ledger.calls.Load())
}

func TestSubmitRequestMissingFieldRejectsBeforeSinks(t *testing.T) {
	srv, chat, ledger := newTestServer(t, true, true)

	resp := postJSON(t, srv.URL+"/api/submit_request", map[string]any{
		"room": map[string]string{"building": "A", "floor": "02", "type": "WC", "number": "001"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error         string   `json:"error"`
		MissingFields []string `json:"missing_fields"`
	}
	decode(t, resp, &body)
	assert.Equal(t, []string{"problem_type"}, body.MissingFields)

	assert.Equal(t, int32(0), chat.calls.Load(), "validation failure must not invoke sinks")
	assert.Equal(t, int32(0), ledger.calls.Load())
}

func TestSubmitRequestAllSinksFailed(t *testing.T) {
	srv, _, _ := newTestServer(t, false, false)

	resp := postJSON(t, srv.URL+"/api/submit_request", map[string]any{
		"room":         map[string]string{"building": "A", "floor": "02", "type": "WC", "number": "001"},
		"problem_type": "soap",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	assert.False(t, body.Success)
	assert.Equal(t, "Ошибка при отправке заявки", body.Message)
}

func TestSubmitRequestByRoomNumber(t *testing.T) {
	srv, chat, _ := newTestServer(t, true, true)

	resp := postJSON(t, srv.URL+"/api/submit_request", map[string]any{
		"room_number":  7,
		"problem_type": "cleaning",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), chat.calls.Load())
}

func TestSubmitRequestInvalidJSON(t *testing.T) {
	srv, _, _ := newTestServer(t, true, true)

	resp, err := http.Post(srv.URL+"/api/submit_request", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRooms(t *testing.T) {
	srv, _, _ := newTestServer(t, true, true)

	resp, err := http.Get(srv.URL + "/api/rooms")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rooms []catalog.Room
	decode(t, resp, &rooms)
	assert.Len(t, rooms, 100)
	assert.Equal(t, "001", rooms[0].Number)
}

func TestGenerateQR(t *testing.T) {
	srv, _, _ := newTestServer(t, true, true)

	resp, err := http.Get(srv.URL + "/api/generate_qr/7")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success    bool   `json:"success"`
		QRCode     string `json:"qr_code"`
		URL        string `json:"url"`
		RoomNumber int    `json:"room_number"`
	}
	decode(t, resp, &body)

	assert.True(t, body.Success)
	assert.Equal(t, "https://example.com/room/7", body.URL)
	assert.Equal(t, 7, body.RoomNumber)
	assert.Contains(t, body.QRCode, "data:image/png;base64,")
}

func TestGenerateQRInvalidRoomNumber(t *testing.T) {
	srv, _, _ := newTestServer(t, true, true)

	for _, path := range []string{"/api/generate_qr/abc", "/api/generate_qr/0"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
	}
}

func TestRoomSignUnknownRoom(t *testing.T) {
	srv, _, _ := newTestServer(t, true, true)

	resp, err := http.Get(srv.URL + "/api/room_sign/999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	srv, _, _ := newTestServer(t, true, true)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status health.Status
	decode(t, resp, &status)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "no submissions yet", status.LastDispatchStatus)
}
