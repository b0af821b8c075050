package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"arduino_agent/internal/models"
)

type deviceLog struct {
	seen []*models.SerialDevice
}

func (d *deviceLog) ObserveDevice(dev *models.SerialDevice) { d.seen = append(d.seen, dev) }

func TestWatcher_AttachDetachAndChange(t *testing.T) {
	uno := &models.SerialDevice{Path: "/dev/ttyACM0", Description: "Arduino Uno"}
	nano := &models.SerialDevice{Path: "/dev/ttyUSB0", Description: "USB Serial"}
	loc := &fakeLocator{snapshots: []*models.SerialDevice{nil, uno, uno, nano, nil, nil}}
	repo := &fakeEventRepo{}
	obs := &deviceLog{}
	w := NewWatcherService(loc, repo, obs, nil)

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		w.poll(context.Background(), now.Add(time.Duration(i)*time.Second))
	}

	want := []string{
		models.EventDeviceAttached, // uno
		models.EventDeviceDetached, // uno -> nano
		models.EventDeviceAttached,
		models.EventDeviceDetached, // nano gone
	}
	if got := repo.types(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("events=%v, want %v", got, want)
	}

	meta := repo.appends[0].Metadata.(map[string]any)
	if meta["port"] != "/dev/ttyACM0" {
		t.Fatalf("attach metadata missing port: %v", meta)
	}

	if len(obs.seen) != 3 {
		t.Fatalf("expected 3 observer updates, got %d", len(obs.seen))
	}
	if obs.seen[1] == nil || obs.seen[1].Path != "/dev/ttyUSB0" || obs.seen[2] != nil {
		t.Fatalf("unexpected observer sequence: %+v", obs.seen)
	}
}

func TestWatcher_EnumerationErrorKeepsState(t *testing.T) {
	loc := &fakeLocator{err: errors.New("permission denied")}
	repo := &fakeEventRepo{}
	w := NewWatcherService(loc, repo, nil, nil)
	w.current = &models.SerialDevice{Path: "COM3"}

	w.poll(context.Background(), time.Now())
	if len(repo.types()) != 0 || w.current == nil {
		t.Fatalf("an enumeration error must not be treated as a detach")
	}
}

func TestWatcher_RunDisabledWithoutInterval(t *testing.T) {
	loc := &fakeLocator{snapshots: []*models.SerialDevice{{Path: "COM3"}}}
	w := NewWatcherService(loc, &fakeEventRepo{}, nil, nil)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background(), 0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run with zero interval should return immediately")
	}
	if loc.next != 0 {
		t.Fatalf("no snapshot expected, got %d", loc.next)
	}
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	loc := &fakeLocator{snapshots: []*models.SerialDevice{{Path: "COM3"}}}
	repo := &fakeEventRepo{}
	w := NewWatcherService(loc, repo, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, time.Hour)
		close(done)
	}()

	deadline := time.After(time.Second)
	for len(repo.types()) == 0 {
		select {
		case <-deadline:
			t.Fatal("initial poll did not happen")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestPortsService_ListPorts(t *testing.T) {
	loc := &fakeLocator{dev: models.SerialDevice{Path: "COM3"}}
	got, err := NewPortsService(loc).ListPorts(context.Background())
	if err != nil || len(got) != 1 || !got[0].Matched {
		t.Fatalf("got=%+v err=%v", got, err)
	}
}
