package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"arduino_agent/internal/models"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	plus2 := time.FixedZone("UTC+2", 2*3600)
	tests := []struct {
		name    string
		in      LogFilter
		want    LogFilter
		wantErr bool
	}{
		{name: "empty filter ok", in: LogFilter{}, want: LogFilter{}},
		{
			name: "bounds to UTC and type upper-cased",
			in: LogFilter{
				From: time.Date(2025, 9, 10, 10, 0, 0, 0, plus2),
				Type: "  device_attached ",
			},
			want: LogFilter{
				From: time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC),
				Type: models.EventDeviceAttached,
			},
		},
		{
			name: "from after to",
			in: LogFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
			},
			wantErr: true,
		},
		{name: "unknown type", in: LogFilter{Type: "start"}, wantErr: true},
		{name: "negative limit", in: LogFilter{Limit: -1}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := normalize(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidFilter) {
					t.Fatalf("expected ErrInvalidFilter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !got.From.Equal(tc.want.From) || got.Type != tc.want.Type {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			if !got.From.IsZero() && got.From.Location() != time.UTC {
				t.Fatalf("from not in UTC: %v", got.From.Location())
			}
		})
	}
}

func TestEventLogService_List_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{events: []models.AgentEvent{{EventID: "1"}}}
	svc := NewEventLogService(frepo)

	from := time.Date(2025, time.September, 10, 10, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	to := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)
	got, err := svc.List(context.Background(), LogFilter{From: from, To: to, Type: "device_not_found"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || frepo.calls != 1 {
		t.Fatalf("expected one delegated call, got calls=%d events=%d", frepo.calls, len(got))
	}
	if frepo.gotFrom.Location() != time.UTC || !frepo.gotFrom.Equal(from) {
		t.Fatalf("from not normalized: %v", frepo.gotFrom)
	}
	if frepo.gotType != models.EventDeviceNotFound {
		t.Fatalf("type not normalized: %q", frepo.gotType)
	}
}

func TestEventLogService_List_LimitKeepsNewest(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{events: []models.AgentEvent{{EventID: "1"}, {EventID: "2"}, {EventID: "3"}}}
	got, err := NewEventLogService(frepo).List(context.Background(), LogFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "2" || got[1].EventID != "3" {
		t.Fatalf("expected the two newest oldest-first, got %+v", got)
	}

	got, _ = NewEventLogService(frepo).List(context.Background(), LogFilter{Limit: 10})
	if len(got) != 3 {
		t.Fatalf("limit above the result size must keep everything, got %d", len(got))
	}
}

func TestEventLogService_List_InvalidFilterSkipsRepo(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{}
	svc := NewEventLogService(frepo)
	for _, f := range []LogFilter{
		{From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Type: "MODE_CHANGE"},
	} {
		if _, err := svc.List(context.Background(), f); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("expected ErrInvalidFilter for %+v, got %v", f, err)
		}
	}
	if frepo.calls != 0 {
		t.Fatalf("repo must not be called, got %d", frepo.calls)
	}
}

func TestEventLogService_List_WrapsRepoError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("db down")
	_, err := NewEventLogService(&fakeEventRepo{err: dbErr}).List(context.Background(), LogFilter{})
	if !errors.Is(err, dbErr) || errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
