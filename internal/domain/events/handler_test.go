package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_GetEvent(t *testing.T) {
	h, e := newTestHandler()
	summary := "Control"
	ev, _ := h.svc.Ingest(context.Background(), RawEvent{UID: "evt-1", Summary: &summary})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ev.ID.String())

	if err := h.GetEvent(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetEvent_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := h.GetEvent(c); err == nil {
		t.Error("expected error for not found")
	}
}

func TestHandler_GetEvent_InvalidID(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := h.GetEvent(c); err == nil {
		t.Error("expected error for invalid id")
	}
}

func TestHandler_ListEvents(t *testing.T) {
	h, e := newTestHandler()
	summary := "Vacuna acaros (50)"
	h.svc.Ingest(context.Background(), RawEvent{UID: "evt-1", Summary: &summary})

	req := httptest.NewRequest(http.MethodGet, "/?category=Tratamiento+subcut%C3%A1neo", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListEvents(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestHandler_ListEvents_BadParams(t *testing.T) {
	h, e := newTestHandler()
	for _, target := range []string{"/?from=yesterday", "/?attended=maybe", "/?include_ignored=si"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := h.ListEvents(c); err == nil {
			t.Errorf("expected error for %s", target)
		}
	}
}

func TestHandler_ReparseEvent(t *testing.T) {
	h, e := newTestHandler()
	summary := "Roxair"
	ev, _ := h.svc.Ingest(context.Background(), RawEvent{UID: "evt-1", Summary: &summary})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ev.ID.String())

	if err := h.ReparseEvent(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var got CalendarEvent
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.AmountExpected == nil || *got.AmountExpected != 150000 {
		t.Errorf("amount_expected = %v, want 150000", got.AmountExpected)
	}
}

func TestHandler_ParseText(t *testing.T) {
	h, e := newTestHandler()
	body := `{"summary":"Vacuna acaros (25/50)","description":"asistió"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ParseText(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var got ParseResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.AmountPaid == nil || *got.AmountPaid != 25000 {
		t.Errorf("amount_paid = %v, want 25000", got.AmountPaid)
	}
	if got.Attended == nil || !*got.Attended {
		t.Errorf("attended = %v, want true", got.Attended)
	}
	if got.Ignored {
		t.Error("ignored = true, want false")
	}
}

func TestHandler_ParseText_NullFields(t *testing.T) {
	h, e := newTestHandler()
	body := `{"summary":"Almuerzo"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ParseText(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unknown fields must serialize as explicit nulls, not be omitted.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	for _, key := range []string{"category", "amount_expected", "amount_paid", "attended"} {
		v, ok := raw[key]
		if !ok {
			t.Errorf("missing %q in response", key)
			continue
		}
		if string(v) != "null" {
			t.Errorf("%s = %s, want null", key, v)
		}
	}
}
