package repository

import (
	"context"
	"database/sql"
	"time"

	"arduino_agent/internal/models"
)

type EventRepo interface {
	Append(ctx context.Context, e models.AgentEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AgentEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}
