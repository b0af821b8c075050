package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"arduino_agent/internal/logger"
	"arduino_agent/internal/models"
	"arduino_agent/internal/repository"
	"arduino_agent/internal/serial"

	"github.com/google/uuid"
)

// ErrEmptySource is returned when there is no sketch text to upload.
var ErrEmptySource = errors.New("missing sketch source")

type portLocator interface {
	Locate() (models.SerialDevice, error)
}

type sketchRunner interface {
	Run(ctx context.Context, source, port, fqbn string) (models.UploadResult, error)
}

type uploadRecorder interface {
	RecordUpload(res models.UploadResult)
}

// UploadService is the single entry point behind POST /upload. Uploads are
// serialized: one board, one toolchain, one request at a time.
type UploadService struct {
	locator     portLocator
	runner      sketchRunner
	eventRepo   repository.EventRepo
	recorder    uploadRecorder
	defaultFQBN string
	log         *logger.Logger

	slot chan struct{}
}

func NewUploadService(locator portLocator, runner sketchRunner, eventRepo repository.EventRepo, recorder uploadRecorder, defaultFQBN string, log *logger.Logger) *UploadService {
	return &UploadService{
		locator:     locator,
		runner:      runner,
		eventRepo:   eventRepo,
		recorder:    recorder,
		defaultFQBN: defaultFQBN,
		log:         log,
		slot:        make(chan struct{}, 1),
	}
}

// Upload waits for the upload slot, locates the board and runs the
// orchestrator. serial.ErrDeviceNotFound is returned before any toolchain
// process is started. Giving up on the slot returns the context error.
func (s *UploadService) Upload(ctx context.Context, p UploadParams) (models.UploadResult, error) {
	if p.Source == "" {
		return models.UploadResult{}, ErrEmptySource
	}
	fqbn := strings.TrimSpace(p.FQBN)
	if fqbn == "" {
		fqbn = s.defaultFQBN
	}

	select {
	case s.slot <- struct{}{}:
	case <-ctx.Done():
		return models.UploadResult{}, fmt.Errorf("wait for upload slot: %w", ctx.Err())
	}
	defer func() { <-s.slot }()

	// history is written even if the caller already went away
	recordCtx := context.WithoutCancel(ctx)

	dev, err := s.locator.Locate()
	if err != nil {
		if errors.Is(err, serial.ErrDeviceNotFound) {
			s.record(recordCtx, models.EventDeviceNotFound, "No matching serial device", map[string]any{"fqbn": fqbn})
		}
		return models.UploadResult{}, err
	}

	res, err := s.runner.Run(ctx, p.Source, dev.Path, fqbn)
	if err != nil {
		s.record(recordCtx, models.EventUploadFailed, "Workspace staging failed", map[string]any{
			"stage": models.StageStage,
			"port":  dev.Path,
			"fqbn":  fqbn,
			"error": err.Error(),
		})
		return models.UploadResult{}, err
	}

	if s.recorder != nil {
		s.recorder.RecordUpload(res)
	}
	meta := map[string]any{
		"port":        res.Port,
		"fqbn":        res.FQBN,
		"duration_ms": res.DurationMs,
		"source_size": len(p.Source),
	}
	if res.Success {
		if s.log != nil {
			s.log.Infow("upload_succeeded", "port", res.Port, "fqbn", res.FQBN, "duration_ms", res.DurationMs)
		}
		s.record(recordCtx, models.EventUploadSucceeded, "Sketch uploaded to "+res.Port, meta)
	} else {
		meta["stage"] = res.Stage
		if s.log != nil {
			s.log.Warnw("upload_failed", "stage", res.Stage, "port", res.Port, "fqbn", res.FQBN)
		}
		s.record(recordCtx, models.EventUploadFailed, res.Stage+" step failed", meta)
	}
	return res, nil
}

// record appends a history event; failures are logged, never returned.
func (s *UploadService) record(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Append(ctx, models.AgentEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil && s.log != nil {
		s.log.Errorw("event_append_failed", "err", err, "type", typ)
	}
}
