package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"arduino_agent/internal/models"
)

// fakeTool stands in for the toolchain runner and records every invocation.
type fakeTool struct {
	compile models.Invocation
	upload  models.Invocation

	mu             sync.Mutex
	compileCalls   int
	uploadCalls    int
	dirs           []string
	sources        []string
	lastPort       string
	lastFQBN       string
	blockCompile   chan struct{}
	compileEntered chan struct{}
}

func (f *fakeTool) Compile(ctx context.Context, sketchDir, fqbn string) models.Invocation {
	if f.compileEntered != nil {
		f.compileEntered <- struct{}{}
	}
	if f.blockCompile != nil {
		<-f.blockCompile
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compileCalls++
	f.dirs = append(f.dirs, sketchDir)
	b, _ := os.ReadFile(filepath.Join(sketchDir, filepath.Base(sketchDir)+".ino"))
	f.sources = append(f.sources, string(b))
	f.lastFQBN = fqbn
	return f.compile
}

func (f *fakeTool) Upload(ctx context.Context, sketchDir, port, fqbn string) models.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	f.lastPort = port
	return f.upload
}

func (f *fakeTool) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.compileCalls + f.uploadCalls
}

// phaseLog records orchestrator phase transitions.
type phaseLog struct {
	mu     sync.Mutex
	phases []string
}

func (p *phaseLog) Enter(phase string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phases = append(p.phases, phase)
}

// fakeEventRepo is a minimal stub that satisfies repository.EventRepo.
type fakeEventRepo struct {
	mu      sync.Mutex
	appends []models.AgentEvent

	gotFrom time.Time
	gotTo   time.Time
	gotType string
	events  []models.AgentEvent
	err     error
	calls   int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.AgentEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends = append(f.appends, e)
	return f.err
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.AgentEvent, error) {
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appends))
	for _, e := range f.appends {
		out = append(out, e.Type)
	}
	return out
}

// fakeLocator returns a scripted sequence of snapshots.
type fakeLocator struct {
	dev       models.SerialDevice
	err       error
	locates   int
	snapshots []*models.SerialDevice
	next      int
}

func (f *fakeLocator) Locate() (models.SerialDevice, error) {
	f.locates++
	return f.dev, f.err
}

func (f *fakeLocator) Snapshot() (models.SerialDevice, bool, error) {
	if f.err != nil {
		return models.SerialDevice{}, false, f.err
	}
	if f.next >= len(f.snapshots) {
		return models.SerialDevice{}, false, nil
	}
	d := f.snapshots[f.next]
	f.next++
	if d == nil {
		return models.SerialDevice{}, false, nil
	}
	return *d, true, nil
}

func (f *fakeLocator) List() ([]models.PortEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.PortEntry{{SerialDevice: f.dev, Matched: true}}, nil
}
