package service

import (
	"context"

	"arduino_agent/internal/models"
)

type portLister interface {
	List() ([]models.PortEntry, error)
}

type PortsService struct {
	lister portLister
}

func NewPortsService(lister portLister) *PortsService {
	return &PortsService{lister: lister}
}

// ListPorts enumerates serial devices in OS order, flagging probable boards.
func (s *PortsService) ListPorts(ctx context.Context) ([]models.PortEntry, error) {
	return s.lister.List()
}
