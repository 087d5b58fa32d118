// Package tracking registra e consulta eventos de interação dos clientes
// com o cardápio
package tracking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

const defaultMostViewedLimit = 10

var (
	ErrInvalidEventType = errors.New("tipo de evento inválido")
	ErrMissingSession   = errors.New("identificador de sessão é obrigatório")
	ErrUnknownItem      = errors.New("item do cardápio não encontrado")
)

type RecordEventRequest struct {
	SessionID  string         `json:"session_id"`
	EventType  string         `json:"event_type"`
	MenuItemID *string        `json:"menu_item_id"`
	Metadata   map[string]any `json:"metadata"`
}

type Tracker interface {
	RecordEvent(req *RecordEventRequest) (*domain.CustomerActivity, error)
	ListEvents(filter repository.ActivityFilter) ([]*domain.CustomerActivity, error)
	GetStats() (*domain.ActivityStats, error)
}

type Service struct {
	activityRepo repository.CustomerActivityRepository
	itemRepo     repository.MenuItemRepository
}

func NewService(
	activityRepo repository.CustomerActivityRepository,
	itemRepo repository.MenuItemRepository,
) Tracker {
	return &Service{
		activityRepo: activityRepo,
		itemRepo:     itemRepo,
	}
}

func (s *Service) RecordEvent(req *RecordEventRequest) (*domain.CustomerActivity, error) {
	if req.SessionID == "" {
		return nil, ErrMissingSession
	}

	eventType, ok := domain.ParseActivityEventType(req.EventType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEventType, req.EventType)
	}

	if req.MenuItemID != nil {
		item, err := s.itemRepo.GetByID(*req.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrUnknownItem
		}
	}

	activity := &domain.CustomerActivity{
		ID:         uuid.New().String(),
		SessionID:  req.SessionID,
		EventType:  eventType,
		MenuItemID: req.MenuItemID,
		Metadata:   req.Metadata,
	}

	return s.activityRepo.Create(activity)
}

func (s *Service) ListEvents(filter repository.ActivityFilter) ([]*domain.CustomerActivity, error) {
	return s.activityRepo.List(filter)
}

func (s *Service) GetStats() (*domain.ActivityStats, error) {
	return s.activityRepo.GetStats(defaultMostViewedLimit)
}
