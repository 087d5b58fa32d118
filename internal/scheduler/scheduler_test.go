package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/menu-engine-api/internal/config"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/internal/usecases/classifying"
	"github.com/vfg2006/menu-engine-api/internal/usecases/recommending"
	"github.com/vfg2006/menu-engine-api/pkg/cache"
	"go.uber.org/mock/gomock"
)

func floatPtr(f float64) *float64 {
	return &f
}

func schedulerConfig() *config.Config {
	return &config.Config{
		Recommendation: config.Recommendation{
			AffinityTTLMinutes:         15,
			FrequentlyBoughtTTLMinutes: 30,
		},
		AffinityRebuild: config.AffinityRebuild{
			CronSchedule: "*/15 * * * *",
			Enabled:      false,
		},
		ClassificationSync: config.ClassificationSync{
			CronSchedule: "0 3 * * *",
			Enabled:      false,
		},
	}
}

func TestClassificationSyncService_ClassifyMenu(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)

	tests := []struct {
		name      string
		setup     func()
		expectErr bool
	}{
		{
			name: "Classifica a população ativa e registra o horário da execução",
			setup: func() {
				cost := floatPtr(10.0)
				mockItemRepo.EXPECT().ListActiveItems().Return([]*domain.MenuItem{
					{ID: "item-1", Title: "Pudim", Price: 18.0, Cost: cost, Active: true, TotalPurchases: 50},
					{ID: "item-2", Title: "Suco", Price: 12.0, Cost: cost, Active: true, TotalPurchases: 5},
				}, nil)
				mockItemRepo.EXPECT().
					UpdateClassification(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
			expectErr: false,
		},
		{
			name: "Propaga o erro quando não há população para analisar",
			setup: func() {
				mockItemRepo.EXPECT().ListActiveItems().Return([]*domain.MenuItem{}, nil)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			service := NewClassificationSyncService(
				classifying.NewService(mockItemRepo),
				schedulerConfig(),
			)

			err := service.ClassifyMenu()

			if tt.expectErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)

			status := service.GetStatus()
			assert.False(t, status["sync_enabled"].(bool))
			assert.Equal(t, "0 3 * * *", status["sync_cron"])
			assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
		})
	}
}

func TestAffinityRebuildService_RebuildAffinity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)
	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)

	mockOrderRepo.EXPECT().
		ListCompletedOrderRecords().
		Return([]*domain.OrderRecord{
			{Items: map[string]int{"A": 1, "B": 2}},
			{Items: map[string]int{"A": 1}},
		}, nil)

	recommender := recommending.NewService(mockItemRepo, mockOrderRepo, cache.New(), schedulerConfig())
	service := NewAffinityRebuildService(recommender, schedulerConfig())

	err := service.RebuildAffinity()

	assert.NoError(t, err)

	status := service.GetStatus()
	assert.Equal(t, "*/15 * * * *", status["sync_cron"])
	assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}
