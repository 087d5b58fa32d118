// Package ordering gerencia o ciclo de vida dos pedidos
package ordering

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/pkg/utils"
)

// Transições de status permitidas. Cancelamento é permitido em qualquer
// estado não terminal.
var allowedTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending:   {domain.OrderStatusConfirmed, domain.OrderStatusCancelled},
	domain.OrderStatusConfirmed: {domain.OrderStatusPreparing, domain.OrderStatusCancelled},
	domain.OrderStatusPreparing: {domain.OrderStatusReady, domain.OrderStatusCancelled},
	domain.OrderStatusReady:     {domain.OrderStatusCompleted, domain.OrderStatusCancelled},
	domain.OrderStatusCompleted: {},
	domain.OrderStatusCancelled: {},
}

type Orderer interface {
	CreateOrder(req *domain.CreateOrderRequest) (*domain.Order, error)
	GetOrder(orderID string) (*domain.Order, error)
	ListOrders(status *domain.OrderStatus, limit int) ([]*domain.Order, error)
	UpdateStatus(orderID string, status domain.OrderStatus) (*domain.Order, error)
	GetOrderStats() (*domain.OrderStats, error)
}

type Service struct {
	orderRepo    repository.OrderRepository
	itemRepo     repository.MenuItemRepository
	activityRepo repository.CustomerActivityRepository
}

func NewService(
	orderRepo repository.OrderRepository,
	itemRepo repository.MenuItemRepository,
	activityRepo repository.CustomerActivityRepository,
) Orderer {
	return &Service{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		activityRepo: activityRepo,
	}
}

// CreateOrder valida os itens, captura os preços vigentes e registra o pedido
// com status pendente
func (s *Service) CreateOrder(req *domain.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &domain.Order{
		ID:          uuid.New().String(),
		Status:      domain.OrderStatusPending,
		TableNumber: req.TableNumber,
		Notes:       req.Notes,
		Items:       make([]domain.OrderItem, 0, len(req.Items)),
	}

	reference, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar código do pedido: %w", err)
	}
	order.Reference = reference

	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		item, err := s.itemRepo.GetByID(line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Active {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, line.MenuItemID)
		}

		orderItem := domain.OrderItem{
			ID:           uuid.New().String(),
			OrderID:      order.ID,
			MenuItemID:   item.ID,
			Quantity:     line.Quantity,
			PriceAtOrder: item.Price,
		}

		order.Subtotal += orderItem.LineTotal()
		order.Items = append(order.Items, orderItem)
	}

	order.Subtotal = utils.RoundWithTwoDecimalPlace(order.Subtotal)
	order.Total = order.Subtotal

	created, err := s.orderRepo.CreateOrder(order)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":  created.ID,
		"reference": created.Reference,
		"items":     len(created.Items),
		"total":     created.Total,
	}).Info("Pedido criado")

	return created, nil
}

func (s *Service) GetOrder(orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	return order, nil
}

func (s *Service) ListOrders(status *domain.OrderStatus, limit int) ([]*domain.Order, error) {
	return s.orderRepo.ListOrders(status, limit)
}

// UpdateStatus avança o pedido no fluxo pending -> confirmed -> preparing ->
// ready -> completed. Ao concluir, os totais acumulados dos itens são
// atualizados e os eventos de compra registrados.
func (s *Service) UpdateStatus(orderID string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == domain.OrderStatusCompleted || order.Status == domain.OrderStatusCancelled {
		return nil, ErrOrderFinalized
	}

	if !transitionAllowed(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}

	if status == domain.OrderStatusCompleted {
		s.registerCompletion(order)
	}

	order.Status = status
	return order, nil
}

func (s *Service) GetOrderStats() (*domain.OrderStats, error) {
	return s.orderRepo.GetOrderStats()
}

func transitionAllowed(from, to domain.OrderStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// registerCompletion acumula os totais de compra de cada item e registra os
// eventos de compra. Falhas aqui não revertem a mudança de status: o pedido
// já foi concluído e os totais podem ser reconstruídos pela análise noturna.
func (s *Service) registerCompletion(order *domain.Order) {
	for _, line := range order.Items {
		revenue := line.LineTotal()

		item, err := s.itemRepo.GetByID(line.MenuItemID)
		profit := revenue
		if err == nil && item != nil && item.Cost != nil {
			profit = float64(line.Quantity) * (line.PriceAtOrder - *item.Cost)
		}

		if err := s.itemRepo.IncrementPurchaseTotals(line.MenuItemID, line.Quantity, revenue, profit); err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": order.ID,
				"item_id":  line.MenuItemID,
			}).Warnf("Erro ao acumular totais de compra: %v", err)
		}

		itemID := line.MenuItemID
		_, err = s.activityRepo.Create(&domain.CustomerActivity{
			ID:         uuid.New().String(),
			SessionID:  order.ID,
			EventType:  domain.EventPurchase,
			MenuItemID: &itemID,
			Metadata: map[string]any{
				"order_reference": order.Reference,
				"quantity":        line.Quantity,
			},
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": order.ID,
				"item_id":  line.MenuItemID,
			}).Warnf("Erro ao registrar evento de compra: %v", err)
		}
	}
}
