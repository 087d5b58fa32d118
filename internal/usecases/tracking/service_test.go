package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string {
	return &s
}

func TestService_RecordEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockActivityRepo := mocks.NewMockCustomerActivityRepository(ctrl)
	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)

	service := NewService(mockActivityRepo, mockItemRepo)

	t.Run("Sessão vazia é rejeitada", func(t *testing.T) {
		activity, err := service.RecordEvent(&RecordEventRequest{
			EventType: string(domain.EventView),
		})

		assert.ErrorIs(t, err, ErrMissingSession)
		assert.Nil(t, activity)
	})

	t.Run("Tipo de evento fora da enumeração é rejeitado", func(t *testing.T) {
		activity, err := service.RecordEvent(&RecordEventRequest{
			SessionID: "sess-1",
			EventType: "hover",
		})

		assert.ErrorIs(t, err, ErrInvalidEventType)
		assert.Nil(t, activity)
	})

	t.Run("Item referenciado precisa existir", func(t *testing.T) {
		mockItemRepo.EXPECT().GetByID("nope").Return(nil, nil)

		activity, err := service.RecordEvent(&RecordEventRequest{
			SessionID:  "sess-1",
			EventType:  string(domain.EventView),
			MenuItemID: strPtr("nope"),
		})

		assert.ErrorIs(t, err, ErrUnknownItem)
		assert.Nil(t, activity)
	})

	t.Run("Evento válido é persistido com metadados", func(t *testing.T) {
		mockItemRepo.EXPECT().GetByID("item-1").Return(&domain.MenuItem{ID: "item-1"}, nil)
		mockActivityRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(activity *domain.CustomerActivity) (*domain.CustomerActivity, error) {
				return activity, nil
			})

		activity, err := service.RecordEvent(&RecordEventRequest{
			SessionID:  "sess-1",
			EventType:  string(domain.EventAddToCart),
			MenuItemID: strPtr("item-1"),
			Metadata:   map[string]any{"position": 3},
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, activity.ID)
		assert.Equal(t, "sess-1", activity.SessionID)
		assert.Equal(t, domain.EventAddToCart, activity.EventType)
		assert.Equal(t, 3, activity.Metadata["position"])
	})

	t.Run("Evento sem item é aceito", func(t *testing.T) {
		mockActivityRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(activity *domain.CustomerActivity) (*domain.CustomerActivity, error) {
				return activity, nil
			})

		activity, err := service.RecordEvent(&RecordEventRequest{
			SessionID: "sess-1",
			EventType: string(domain.EventView),
		})

		assert.NoError(t, err)
		assert.Nil(t, activity.MenuItemID)
	})
}

func TestService_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockActivityRepo := mocks.NewMockCustomerActivityRepository(ctrl)
	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)

	service := NewService(mockActivityRepo, mockItemRepo)

	expected := &domain.ActivityStats{
		ByEventType: []domain.ActivityEventCount{
			{EventType: domain.EventView, Count: 42},
		},
	}
	mockActivityRepo.EXPECT().GetStats(defaultMostViewedLimit).Return(expected, nil)

	stats, err := service.GetStats()

	assert.NoError(t, err)
	assert.Equal(t, expected, stats)
}
