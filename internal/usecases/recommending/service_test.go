package recommending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/menu-engine-api/internal/config"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"github.com/vfg2006/menu-engine-api/pkg/cache"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Recommendation: config.Recommendation{
			AffinityTTLMinutes:         15,
			FrequentlyBoughtTTLMinutes: 30,
			DefaultLimit:               5,
		},
	}
}

func TestService_FrequentlyBoughtWith(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)
	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)

	t.Run("Identificador vazio é rejeitado antes de qualquer consulta", func(t *testing.T) {
		service := NewService(mockItemRepo, mockOrderRepo, cache.New(), testConfig())

		result, err := service.FrequentlyBoughtWith("  ", 5)

		assert.ErrorIs(t, err, ErrInvalidItemID)
		assert.Nil(t, result)
	})

	t.Run("Resultado é servido do cache nas chamadas seguintes", func(t *testing.T) {
		service := NewService(mockItemRepo, mockOrderRepo, cache.New(), testConfig())

		// O histórico só é lido uma vez; a segunda chamada usa o resultado
		// pré-computado
		mockOrderRepo.EXPECT().
			ListCompletedOrderRecords().
			Return([]*domain.OrderRecord{
				orderRecord("A", "B"),
				orderRecord("A", "B"),
			}, nil).
			Times(1)

		first, err := service.FrequentlyBoughtWith("A", 5)
		assert.NoError(t, err)
		assert.Len(t, first, 1)
		assert.Equal(t, "B", first[0].ItemID)

		second, err := service.FrequentlyBoughtWith("A", 5)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Item sem co-ocorrência retorna lista vazia", func(t *testing.T) {
		service := NewService(mockItemRepo, mockOrderRepo, cache.New(), testConfig())

		mockOrderRepo.EXPECT().
			ListCompletedOrderRecords().
			Return([]*domain.OrderRecord{}, nil).
			Times(1)

		result, err := service.FrequentlyBoughtWith("solitario", 5)

		assert.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestService_Recommend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)
	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)

	t.Run("Estratégia desconhecida é rejeitada antes de qualquer consulta", func(t *testing.T) {
		service := NewService(mockItemRepo, mockOrderRepo, cache.New(), testConfig())

		result, err := service.Recommend(nil, "agressiva", 5)

		assert.ErrorIs(t, err, ErrUnknownStrategy)
		assert.Nil(t, result)
	})

	t.Run("Identificador vazio no carrinho é rejeitado", func(t *testing.T) {
		service := NewService(mockItemRepo, mockOrderRepo, cache.New(), testConfig())

		result, err := service.Recommend([]string{"valido", ""}, string(domain.StrategyBalanced), 5)

		assert.ErrorIs(t, err, ErrInvalidItemID)
		assert.Nil(t, result)
	})

	t.Run("Ranqueia o pool ativo sob a estratégia pedida", func(t *testing.T) {
		service := NewService(mockItemRepo, mockOrderRepo, cache.New(), testConfig())

		pool := []*domain.MenuItem{
			poolItem("star", "s1", domain.CategoryStar, 50.0, 20.0, 200),
			poolItem("dog", "s1", domain.CategoryDog, 30.0, 25.0, 5),
		}

		mockItemRepo.EXPECT().ListActiveItems().Return(pool, nil)
		mockOrderRepo.EXPECT().
			ListCompletedOrderRecords().
			Return([]*domain.OrderRecord{}, nil)

		result, err := service.Recommend(nil, string(domain.StrategyBalanced), 5)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, "star", result[0].Item.ID)
	})
}

func TestService_RebuildAffinity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)
	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)

	service := NewService(mockItemRepo, mockOrderRepo, cache.New(), testConfig())

	mockOrderRepo.EXPECT().
		ListCompletedOrderRecords().
		Return([]*domain.OrderRecord{
			orderRecord("A", "B"),
			orderRecord("A", "C"),
		}, nil).
		Times(1)

	affinity, err := service.RebuildAffinity()

	assert.NoError(t, err)
	assert.Equal(t, 2, affinity.TotalOrders)

	// A reconstrução alimenta o cache: a consulta seguinte não relê o
	// histórico
	result, err := service.FrequentlyBoughtWith("A", 5)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
}
