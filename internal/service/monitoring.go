package service

import (
	"context"
	"sync"
	"time"

	"arduino_agent/internal/models"
)

// MonitoringService keeps the in-process agent status. It is fed by the
// orchestrator (phases), the upload service (results) and the watcher (board),
// and wakes subscribers after every change.
type MonitoringService struct {
	mu     sync.RWMutex
	status models.AgentStatus
	now    func() time.Time
	subs   map[chan struct{}]struct{}
}

func NewMonitoringService() *MonitoringService {
	s := &MonitoringService{
		now:  func() time.Time { return time.Now().UTC() },
		subs: make(map[chan struct{}]struct{}),
	}
	s.status = models.AgentStatus{Phase: models.PhaseIdle, UpdatedAt: s.now()}
	return s
}

// GetStatus returns a copy of the current snapshot.
func (s *MonitoringService) GetStatus(ctx context.Context) (models.AgentStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.status
	if st.Device != nil {
		d := *st.Device
		st.Device = &d
	}
	if st.LastUpload != nil {
		u := *st.LastUpload
		st.LastUpload = &u
	}
	return st, nil
}

// Subscribe returns a channel that receives a signal after each status change
// and a func that releases it. Signals coalesce: a slow reader sees one
// pending signal and should re-read the status with GetStatus.
func (s *MonitoringService) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
		})
	}
}

// changed stamps the status and wakes subscribers. Callers hold s.mu.
func (s *MonitoringService) changed() {
	s.status.UpdatedAt = s.now()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Enter moves the agent to a new phase of the upload state machine.
func (s *MonitoringService) Enter(phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Phase = phase
	s.status.Busy = phase != models.PhaseIdle
	s.changed()
}

// RecordUpload stores the summary of a finished upload.
func (s *MonitoringService) RecordUpload(res models.UploadResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastUpload = &models.UploadSummary{
		Success:    res.Success,
		Stage:      res.Stage,
		Port:       res.Port,
		FQBN:       res.FQBN,
		FinishedAt: s.now(),
	}
	s.changed()
}

// ObserveDevice records the board currently seen by the watcher (nil: none).
func (s *MonitoringService) ObserveDevice(dev *models.SerialDevice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev != nil {
		d := *dev
		dev = &d
	}
	s.status.Device = dev
	s.changed()
}
