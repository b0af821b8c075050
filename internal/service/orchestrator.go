package service

import (
	"context"
	"time"

	"arduino_agent/internal/logger"
	"arduino_agent/internal/models"
	"arduino_agent/internal/sketch"
)

type stager interface {
	Stage(source string) (*sketch.Workspace, error)
}

type buildTool interface {
	Compile(ctx context.Context, sketchDir, fqbn string) models.Invocation
	Upload(ctx context.Context, sketchDir, port, fqbn string) models.Invocation
}

type phaseTracker interface {
	Enter(phase string)
}

// Orchestrator runs stage → compile → upload for one request.
type Orchestrator struct {
	stager  stager
	tool    buildTool
	tracker phaseTracker
	log     *logger.Logger
}

func NewOrchestrator(st stager, tool buildTool, tracker phaseTracker, log *logger.Logger) *Orchestrator {
	return &Orchestrator{stager: st, tool: tool, tracker: tracker, log: log}
}

// Run stages source into a fresh workspace, compiles it for fqbn and, only if
// that succeeded, flashes it to port. A staging failure is returned as an
// error wrapping sketch.ErrWorkspaceIO; toolchain failures are reported in the
// result with the failing stage. The workspace is removed before Run returns.
func (o *Orchestrator) Run(ctx context.Context, source, port, fqbn string) (models.UploadResult, error) {
	start := time.Now()
	o.enter(models.PhaseStaging)
	defer o.enter(models.PhaseIdle)

	ws, err := o.stager.Stage(source)
	if err != nil {
		if o.log != nil {
			o.log.Errorw("stage_failed", "err", err)
		}
		return models.UploadResult{}, err
	}
	defer func() {
		if rerr := ws.Remove(); rerr != nil && o.log != nil {
			o.log.Errorw("workspace_cleanup_failed", "err", rerr, "path", ws.Root())
		}
	}()

	result := models.UploadResult{Port: port, FQBN: fqbn}

	o.enter(models.PhaseCompiling)
	compiled := o.tool.Compile(ctx, ws.Dir(), fqbn)
	if !compiled.Success {
		return finish(result, start, models.StageCompile, compiled.Logs), nil
	}

	o.enter(models.PhaseUploading)
	uploaded := o.tool.Upload(ctx, ws.Dir(), port, fqbn)
	logs := compiled.Logs + "\n" + uploaded.Logs
	if !uploaded.Success {
		return finish(result, start, models.StageUpload, logs), nil
	}
	return finish(result, start, "", logs), nil
}

// finish fills in the terminal fields; an empty failedStage means success.
func finish(r models.UploadResult, start time.Time, failedStage, logs string) models.UploadResult {
	r.Success = failedStage == ""
	r.Stage = failedStage
	r.Logs = logs
	r.DurationMs = time.Since(start).Milliseconds()
	return r
}

func (o *Orchestrator) enter(phase string) {
	if o.tracker != nil {
		o.tracker.Enter(phase)
	}
}
