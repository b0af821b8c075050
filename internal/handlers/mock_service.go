package handlers

import (
	"context"
	"sync"
	"time"

	"arduino_agent/internal/models"
	"arduino_agent/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockUploader struct {
	mu     sync.Mutex
	res    models.UploadResult
	err    error
	calls  int
	params service.UploadParams
}

func (m *mockUploader) Upload(ctx context.Context, p service.UploadParams) (models.UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.params = p
	return m.res, m.err
}

type mockPorts struct {
	ports []models.PortEntry
	err   error
}

func (m *mockPorts) ListPorts(ctx context.Context) ([]models.PortEntry, error) {
	return m.ports, m.err
}

type mockMonitoring struct {
	status  models.AgentStatus
	err     error
	changes chan struct{}
}

func (m *mockMonitoring) GetStatus(ctx context.Context) (models.AgentStatus, error) {
	return m.status, m.err
}

// Subscribe hands out m.changes; nil means the status never changes.
func (m *mockMonitoring) Subscribe() (<-chan struct{}, func()) {
	return m.changes, func() {}
}

type mockEventLog struct {
	resp      []models.AgentEvent
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastLimit int
	calls     int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.AgentEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastLimit = f.Limit
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
