package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func floatPtr(f float64) *float64 {
	return &f
}

func activeItem(id string, price float64, cost *float64) *domain.MenuItem {
	return &domain.MenuItem{
		ID:     id,
		Title:  "Item " + id,
		Price:  price,
		Cost:   cost,
		Active: true,
	}
}

func TestService_CreateOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)
	mockActivityRepo := mocks.NewMockCustomerActivityRepository(ctrl)

	service := NewService(mockOrderRepo, mockItemRepo, mockActivityRepo)

	t.Run("Pedido sem itens é rejeitado", func(t *testing.T) {
		order, err := service.CreateOrder(&domain.CreateOrderRequest{})

		assert.ErrorIs(t, err, ErrEmptyOrder)
		assert.Nil(t, order)
	})

	t.Run("Quantidade zero é rejeitada", func(t *testing.T) {
		order, err := service.CreateOrder(&domain.CreateOrderRequest{
			Items: []domain.CreateOrderItemRequest{
				{MenuItemID: "item-1", Quantity: 0},
			},
		})

		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Nil(t, order)
	})

	t.Run("Item inativo é rejeitado", func(t *testing.T) {
		inactive := activeItem("item-1", 30.0, nil)
		inactive.Active = false

		mockItemRepo.EXPECT().GetByID("item-1").Return(inactive, nil)

		order, err := service.CreateOrder(&domain.CreateOrderRequest{
			Items: []domain.CreateOrderItemRequest{
				{MenuItemID: "item-1", Quantity: 1},
			},
		})

		assert.ErrorIs(t, err, ErrItemUnavailable)
		assert.Nil(t, order)
	})

	t.Run("Captura o preço vigente e calcula o total", func(t *testing.T) {
		mockItemRepo.EXPECT().GetByID("item-1").Return(activeItem("item-1", 30.0, floatPtr(10.0)), nil)
		mockItemRepo.EXPECT().GetByID("item-2").Return(activeItem("item-2", 12.5, nil), nil)

		mockOrderRepo.EXPECT().
			CreateOrder(gomock.Any()).
			DoAndReturn(func(order *domain.Order) (*domain.Order, error) {
				return order, nil
			})

		order, err := service.CreateOrder(&domain.CreateOrderRequest{
			Items: []domain.CreateOrderItemRequest{
				{MenuItemID: "item-1", Quantity: 2},
				{MenuItemID: "item-2", Quantity: 1},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.NotEmpty(t, order.ID)
		assert.NotEmpty(t, order.Reference)
		assert.Len(t, order.Items, 2)
		assert.Equal(t, 30.0, order.Items[0].PriceAtOrder)
		assert.InDelta(t, 72.5, order.Subtotal, 1e-9)
		assert.InDelta(t, 72.5, order.Total, 1e-9)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)
	mockActivityRepo := mocks.NewMockCustomerActivityRepository(ctrl)

	service := NewService(mockOrderRepo, mockItemRepo, mockActivityRepo)

	t.Run("Pedido inexistente retorna erro de não encontrado", func(t *testing.T) {
		mockOrderRepo.EXPECT().GetByID("nope").Return(nil, nil)

		order, err := service.UpdateStatus("nope", domain.OrderStatusConfirmed)

		assert.ErrorIs(t, err, ErrOrderNotFound)
		assert.Nil(t, order)
	})

	t.Run("Pedido finalizado não muda mais de status", func(t *testing.T) {
		mockOrderRepo.EXPECT().GetByID("order-1").Return(&domain.Order{
			ID:     "order-1",
			Status: domain.OrderStatusCompleted,
		}, nil)

		order, err := service.UpdateStatus("order-1", domain.OrderStatusCancelled)

		assert.ErrorIs(t, err, ErrOrderFinalized)
		assert.Nil(t, order)
	})

	t.Run("Transição fora do fluxo é rejeitada", func(t *testing.T) {
		mockOrderRepo.EXPECT().GetByID("order-1").Return(&domain.Order{
			ID:     "order-1",
			Status: domain.OrderStatusPending,
		}, nil)

		order, err := service.UpdateStatus("order-1", domain.OrderStatusReady)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Nil(t, order)
	})

	t.Run("Transição válida persiste o novo status", func(t *testing.T) {
		mockOrderRepo.EXPECT().GetByID("order-1").Return(&domain.Order{
			ID:     "order-1",
			Status: domain.OrderStatusPending,
		}, nil)
		mockOrderRepo.EXPECT().UpdateStatus("order-1", domain.OrderStatusConfirmed).Return(nil)

		order, err := service.UpdateStatus("order-1", domain.OrderStatusConfirmed)

		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	})

	t.Run("Conclusão acumula totais e registra eventos de compra", func(t *testing.T) {
		completedOrder := &domain.Order{
			ID:        "order-1",
			Reference: "AB12CD",
			Status:    domain.OrderStatusReady,
			Items: []domain.OrderItem{
				{MenuItemID: "item-1", Quantity: 2, PriceAtOrder: 30.0},
			},
		}

		mockOrderRepo.EXPECT().GetByID("order-1").Return(completedOrder, nil)
		mockOrderRepo.EXPECT().UpdateStatus("order-1", domain.OrderStatusCompleted).Return(nil)

		// Lucro usa o custo cadastrado: 2 * (30 - 10) = 40
		mockItemRepo.EXPECT().GetByID("item-1").Return(activeItem("item-1", 30.0, floatPtr(10.0)), nil)
		mockItemRepo.EXPECT().IncrementPurchaseTotals("item-1", 2, 60.0, 40.0).Return(nil)

		mockActivityRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(activity *domain.CustomerActivity) (*domain.CustomerActivity, error) {
				assert.Equal(t, domain.EventPurchase, activity.EventType)
				assert.Equal(t, "order-1", activity.SessionID)
				assert.Equal(t, "AB12CD", activity.Metadata["order_reference"])
				return activity, nil
			})

		order, err := service.UpdateStatus("order-1", domain.OrderStatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	})
}

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{domain.OrderStatusPending, domain.OrderStatusConfirmed, true},
		{domain.OrderStatusPending, domain.OrderStatusCancelled, true},
		{domain.OrderStatusPending, domain.OrderStatusCompleted, false},
		{domain.OrderStatusConfirmed, domain.OrderStatusPreparing, true},
		{domain.OrderStatusPreparing, domain.OrderStatusReady, true},
		{domain.OrderStatusReady, domain.OrderStatusCompleted, true},
		{domain.OrderStatusCompleted, domain.OrderStatusCancelled, false},
		{domain.OrderStatusCancelled, domain.OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, transitionAllowed(tt.from, tt.to),
			"transição %s -> %s", tt.from, tt.to)
	}
}
