package service

import (
	"context"
	"time"

	"arduino_agent/internal/logger"
	"arduino_agent/internal/models"
	"arduino_agent/internal/repository"
	"arduino_agent/internal/serial"
	"arduino_agent/internal/sketch"
	"arduino_agent/internal/toolchain"
)

// Uploader stages, compiles and flashes one sketch to the attached board.
type Uploader interface {
	Upload(ctx context.Context, p UploadParams) (models.UploadResult, error)
}

// Ports lists serial devices with the board heuristic applied.
type Ports interface {
	ListPorts(ctx context.Context) ([]models.PortEntry, error)
}

// Monitoring exposes the agent's current phase and last results.
type Monitoring interface {
	GetStatus(ctx context.Context) (models.AgentStatus, error)
	Subscribe() (<-chan struct{}, func())
}

// EventLog exposes the append-only agent history with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.AgentEvent, error)
}

// Watcher polls for board attach/detach until ctx is canceled.
type Watcher interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Uploader
	Ports
	Monitoring
	EventLog
	Watcher
}

// Deps are the collaborators built in main from configuration.
type Deps struct {
	Repos       *repository.Repository
	Locator     *serial.Locator
	Stager      *sketch.Stager
	Toolchain   *toolchain.Runner
	DefaultFQBN string
	Log         *logger.Logger
}

func NewService(d Deps) *Service {
	monitoring := NewMonitoringService()
	orchestrator := NewOrchestrator(d.Stager, d.Toolchain, monitoring, d.Log.Component("orchestrator"))
	return &Service{
		Uploader:   NewUploadService(d.Locator, orchestrator, d.Repos.EventRepo, monitoring, d.DefaultFQBN, d.Log.Component("upload")),
		Ports:      NewPortsService(d.Locator),
		Monitoring: monitoring,
		EventLog:   NewEventLogService(d.Repos.EventRepo),
		Watcher:    NewWatcherService(d.Locator, d.Repos.EventRepo, monitoring, d.Log.Component("watcher")),
	}
}
