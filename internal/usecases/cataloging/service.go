// Package cataloging gerencia seções e itens do cardápio
package cataloging

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

var (
	ErrSectionNotFound = errors.New("seção do cardápio não encontrada")
	ErrItemNotFound    = errors.New("item do cardápio não encontrado")
	ErrInvalidPrice    = errors.New("preço deve ser maior que zero")
	ErrMissingTitle    = errors.New("título é obrigatório")
)

type Cataloger interface {
	CreateSection(section *domain.MenuSection) (*domain.MenuSection, error)
	UpdateSection(section *domain.MenuSection) error
	ListSections(onlyActive bool) ([]*domain.MenuSection, error)
	CreateItem(item *domain.MenuItem) (*domain.MenuItem, error)
	UpdateItem(req *domain.UpdateMenuItemRequest) (*domain.MenuItem, error)
	GetItem(itemID string) (*domain.MenuItem, error)
	ListItems(sectionID *string, onlyActive bool) ([]*domain.MenuItem, error)
	GetPublicMenu() ([]*domain.PublicMenuSection, error)
}

type Service struct {
	sectionRepo repository.MenuSectionRepository
	itemRepo    repository.MenuItemRepository
}

func NewService(
	sectionRepo repository.MenuSectionRepository,
	itemRepo repository.MenuItemRepository,
) Cataloger {
	return &Service{
		sectionRepo: sectionRepo,
		itemRepo:    itemRepo,
	}
}

func (s *Service) CreateSection(section *domain.MenuSection) (*domain.MenuSection, error) {
	if section.Name == "" {
		return nil, errors.New("nome da seção é obrigatório")
	}

	if section.ID == "" {
		section.ID = uuid.New().String()
	}
	section.Active = true

	return s.sectionRepo.CreateSection(section)
}

func (s *Service) UpdateSection(section *domain.MenuSection) error {
	if section.ID == "" {
		return errors.New("ID is required")
	}

	existing, err := s.sectionRepo.GetByID(section.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrSectionNotFound
	}

	return s.sectionRepo.UpdateSection(section)
}

func (s *Service) ListSections(onlyActive bool) ([]*domain.MenuSection, error) {
	return s.sectionRepo.ListSections(onlyActive)
}

func (s *Service) CreateItem(item *domain.MenuItem) (*domain.MenuItem, error) {
	if item.Title == "" {
		return nil, ErrMissingTitle
	}

	if item.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	if item.Cost != nil && *item.Cost < 0 {
		return nil, errors.New("custo não pode ser negativo")
	}

	section, err := s.sectionRepo.GetByID(item.SectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.Active = true

	// Todo item novo entra sem categoria até a próxima análise
	item.Category = domain.CategoryUnclassified
	item.Confidence = nil
	item.LastAnalyzedAt = nil

	return s.itemRepo.CreateItem(item)
}

func (s *Service) UpdateItem(req *domain.UpdateMenuItemRequest) (*domain.MenuItem, error) {
	if req.ID == "" {
		return nil, errors.New("ID is required")
	}

	item, err := s.itemRepo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	if req.SectionID != nil {
		section, err := s.sectionRepo.GetByID(*req.SectionID)
		if err != nil {
			return nil, err
		}
		if section == nil {
			return nil, ErrSectionNotFound
		}
		item.SectionID = *req.SectionID
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrMissingTitle
		}
		item.Title = *req.Title
	}

	if req.Description != nil {
		item.Description = *req.Description
	}

	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		item.Price = *req.Price
	}

	if req.Cost != nil {
		if *req.Cost < 0 {
			return nil, errors.New("custo não pode ser negativo")
		}
		item.Cost = req.Cost
	}

	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}

	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := s.itemRepo.UpdateItem(item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) GetItem(itemID string) (*domain.MenuItem, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	return item, nil
}

func (s *Service) ListItems(sectionID *string, onlyActive bool) ([]*domain.MenuItem, error) {
	return s.itemRepo.ListItems(sectionID, onlyActive)
}

// GetPublicMenu monta a visão pública do cardápio: apenas seções ativas
// com seus itens ativos, sem custo, margem ou categoria
func (s *Service) GetPublicMenu() ([]*domain.PublicMenuSection, error) {
	sections, err := s.sectionRepo.ListSections(true)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar seções do cardápio: %w", err)
	}

	menu := make([]*domain.PublicMenuSection, 0, len(sections))
	for _, section := range sections {
		items, err := s.itemRepo.ListItems(&section.ID, true)
		if err != nil {
			return nil, fmt.Errorf("erro ao listar itens da seção %s: %w", section.ID, err)
		}

		publicItems := make([]domain.PublicMenuItem, 0, len(items))
		for _, item := range items {
			publicItems = append(publicItems, domain.PublicMenuItem{
				ID:          item.ID,
				Title:       item.Title,
				Description: item.Description,
				Price:       item.Price,
			})
		}

		menu = append(menu, &domain.PublicMenuSection{
			ID:          section.ID,
			Name:        section.Name,
			Description: section.Description,
			Items:       publicItems,
		})
	}

	return menu, nil
}
