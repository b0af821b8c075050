package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"arduino_agent/internal/models"
	"arduino_agent/internal/service"
)

func TestPingAndHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	for path, want := range map[string]string{"/ping": statusAlive, "/health": statusOK} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
		var out map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if out["status"] != want {
			t.Fatalf("%s body=%v", path, out)
		}
	}
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "https://create.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q (status %d)", got, w.Code)
	}
}

func TestListPorts(t *testing.T) {
	ports := &mockPorts{ports: []models.PortEntry{
		{SerialDevice: models.SerialDevice{Path: "/dev/ttyS0", Description: "Bluetooth"}},
		{SerialDevice: models.SerialDevice{Path: "/dev/ttyACM0", Description: "Arduino Uno", IsUSB: true}, Matched: true},
	}}
	r := newTestRouter(&service.Service{Ports: ports})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ports", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var out struct {
		Count int                `json:"count"`
		Ports []models.PortEntry `json:"ports"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || out.Ports[0].Path != "/dev/ttyS0" || !out.Ports[1].Matched {
		t.Fatalf("unexpected body %+v", out)
	}

	ports.err = errors.New("enumeration failed")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ports", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetStatus(t *testing.T) {
	mon := &mockMonitoring{status: models.AgentStatus{
		Phase:  models.PhaseCompiling,
		Busy:   true,
		Device: &models.SerialDevice{Path: "COM3"},
	}}
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var st models.AgentStatus
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	if st.Phase != models.PhaseCompiling || !st.Busy || st.Device == nil || st.Device.Path != "COM3" {
		t.Fatalf("unexpected status %+v", st)
	}

	mon.err = errors.New("boom")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
