package service

import (
	"context"
	"time"

	"arduino_agent/internal/logger"
	"arduino_agent/internal/models"
	"arduino_agent/internal/repository"

	"github.com/google/uuid"
)

type deviceSnapshotter interface {
	Snapshot() (models.SerialDevice, bool, error)
}

type deviceObserver interface {
	ObserveDevice(dev *models.SerialDevice)
}

// WatcherService polls the serial bus and records when the board the locator
// would pick appears, disappears or changes port. Uploads never read its
// result; they always enumerate afresh.
type WatcherService struct {
	locator   deviceSnapshotter
	eventRepo repository.EventRepo
	observer  deviceObserver
	log       *logger.Logger

	current *models.SerialDevice
}

func NewWatcherService(locator deviceSnapshotter, eventRepo repository.EventRepo, observer deviceObserver, log *logger.Logger) *WatcherService {
	return &WatcherService{locator: locator, eventRepo: eventRepo, observer: observer, log: log}
}

// Run polls at the given interval until ctx is canceled. A non-positive tick
// disables watching.
func (s *WatcherService) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		return
	}
	s.poll(ctx, time.Now())

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.poll(ctx, now)
		}
	}
}

// poll takes one snapshot and emits attach/detach events for any change.
func (s *WatcherService) poll(ctx context.Context, now time.Time) {
	dev, ok, err := s.locator.Snapshot()
	if err != nil {
		if s.log != nil {
			s.log.Debugw("watch_enumerate_failed", "err", err)
		}
		return
	}

	switch {
	case ok && s.current != nil && s.current.Path == dev.Path:
		return
	case ok:
		if s.current != nil {
			s.detach(ctx, now)
		}
		s.current = &dev
		s.append(ctx, now, models.EventDeviceAttached, "Board attached on "+dev.Path, dev)
		if s.log != nil {
			s.log.Infow("board_attached", "port", dev.Path, "description", dev.Description)
		}
	case s.current != nil:
		s.detach(ctx, now)
	default:
		return
	}

	if s.observer != nil {
		s.observer.ObserveDevice(s.current)
	}
}

func (s *WatcherService) detach(ctx context.Context, now time.Time) {
	gone := *s.current
	s.current = nil
	s.append(ctx, now, models.EventDeviceDetached, "Board detached from "+gone.Path, gone)
	if s.log != nil {
		s.log.Infow("board_detached", "port", gone.Path)
	}
}

func (s *WatcherService) append(ctx context.Context, now time.Time, typ, desc string, dev models.SerialDevice) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Append(ctx, models.AgentEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now.UTC(),
		Type:        typ,
		Description: desc,
		Metadata: map[string]any{
			"port":        dev.Path,
			"description": dev.Description,
			"vid":         dev.VID,
			"pid":         dev.PID,
		},
	})
	if err != nil && s.log != nil {
		s.log.Errorw("event_append_failed", "err", err, "type", typ)
	}
}
