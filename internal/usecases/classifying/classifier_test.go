package classifying

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/menu-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/menu-engine-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func floatPtr(f float64) *float64 {
	return &f
}

func menuItem(id string, purchases int, price float64, cost *float64) *domain.MenuItem {
	return &domain.MenuItem{
		ID:             id,
		Title:          "Item " + id,
		Price:          price,
		Cost:           cost,
		Active:         true,
		TotalPurchases: purchases,
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name                      string
		items                     []*domain.MenuItem
		expectedErr               error
		expectedPurchaseThreshold float64
		expectedMarginThreshold   float64
	}{
		{
			name:        "População vazia retorna erro de dados insuficientes",
			items:       []*domain.MenuItem{},
			expectedErr: ErrInsufficientData,
		},
		{
			name: "Medianas com população par",
			items: []*domain.MenuItem{
				// Margens: 20%, 30%, 35%, 45% -> mediana 32.5%
				menuItem("a", 10, 100.0, floatPtr(80.0)),
				menuItem("b", 100, 100.0, floatPtr(70.0)),
				menuItem("c", 5, 100.0, floatPtr(65.0)),
				menuItem("d", 90, 100.0, floatPtr(55.0)),
			},
			expectedPurchaseThreshold: 50.0,
			expectedMarginThreshold:   0.325,
		},
		{
			name: "Mediana com população ímpar",
			items: []*domain.MenuItem{
				menuItem("a", 1, 100.0, floatPtr(50.0)),
				menuItem("b", 7, 100.0, floatPtr(60.0)),
				menuItem("c", 3, 100.0, floatPtr(70.0)),
			},
			expectedPurchaseThreshold: 3.0,
			expectedMarginThreshold:   0.40,
		},
		{
			name: "Itens sem custo ficam fora da mediana de margem",
			items: []*domain.MenuItem{
				menuItem("a", 10, 100.0, floatPtr(60.0)),
				menuItem("b", 20, 100.0, nil),
				menuItem("c", 30, 100.0, floatPtr(40.0)),
			},
			expectedPurchaseThreshold: 20.0,
			expectedMarginThreshold:   0.50,
		},
		{
			name: "Nenhum item com custo usa o limiar padrão de margem",
			items: []*domain.MenuItem{
				menuItem("a", 10, 100.0, nil),
				menuItem("b", 20, 100.0, nil),
			},
			expectedPurchaseThreshold: 15.0,
			expectedMarginThreshold:   defaultMarginThreshold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := ComputeStats(tt.items)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, stats)
				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, tt.expectedPurchaseThreshold, stats.PurchaseThreshold, 1e-9)
			assert.InDelta(t, tt.expectedMarginThreshold, stats.MarginThreshold, 1e-9)
			assert.Equal(t, len(tt.items), stats.PopulationSize)
		})
	}
}

func TestClassify(t *testing.T) {
	stats := &domain.AggregateStats{
		PurchaseThreshold: 50.0,
		MarginThreshold:   0.30,
		PopulationSize:    4,
	}

	tests := []struct {
		name             string
		item             *domain.MenuItem
		expectedCategory domain.Category
	}{
		{
			name:             "Popular e lucrativo é star",
			item:             menuItem("a", 100, 100.0, floatPtr(50.0)),
			expectedCategory: domain.CategoryStar,
		},
		{
			name:             "Popular com margem baixa é plowhorse",
			item:             menuItem("b", 100, 100.0, floatPtr(90.0)),
			expectedCategory: domain.CategoryPlowhorse,
		},
		{
			name:             "Pouco pedido mas lucrativo é puzzle",
			item:             menuItem("c", 5, 100.0, floatPtr(50.0)),
			expectedCategory: domain.CategoryPuzzle,
		},
		{
			name:             "Pouco pedido e margem baixa é dog",
			item:             menuItem("d", 5, 100.0, floatPtr(90.0)),
			expectedCategory: domain.CategoryDog,
		},
		{
			name:             "Empate nos dois eixos resolve para star",
			item:             menuItem("e", 50, 100.0, floatPtr(70.0)),
			expectedCategory: domain.CategoryStar,
		},
		{
			name:             "Sem custo cadastrado a margem conta como melhor caso",
			item:             menuItem("f", 100, 100.0, nil),
			expectedCategory: domain.CategoryStar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, confidence := Classify(tt.item, stats)

			assert.Equal(t, tt.expectedCategory, category)
			assert.GreaterOrEqual(t, confidence, minConfidence)
			assert.LessOrEqual(t, confidence, maxConfidence)
		})
	}
}

func TestClassify_Confidence(t *testing.T) {
	stats := &domain.AggregateStats{
		PurchaseThreshold: 50.0,
		MarginThreshold:   0.30,
	}

	t.Run("Item em cima das fronteiras tem confiança mínima", func(t *testing.T) {
		// Exatamente 50 compras e 30% de margem: distância zero das duas
		// fronteiras
		item := menuItem("a", 50, 100.0, floatPtr(70.0))

		_, confidence := Classify(item, stats)

		assert.InDelta(t, minConfidence, confidence, 1e-9)
	})

	t.Run("Item longe das fronteiras tem confiança máxima", func(t *testing.T) {
		item := menuItem("b", 500, 100.0, floatPtr(5.0))

		_, confidence := Classify(item, stats)

		assert.InDelta(t, maxConfidence, confidence, 1e-9)
	})

	t.Run("Item sem compras tem confiança limitada pela partida fria", func(t *testing.T) {
		item := menuItem("c", 0, 100.0, floatPtr(5.0))

		_, confidence := Classify(item, stats)

		assert.LessOrEqual(t, confidence, coldStartCap)
	})

	t.Run("Classificação é determinística para a mesma entrada", func(t *testing.T) {
		item := menuItem("d", 73, 100.0, floatPtr(61.0))

		firstCategory, firstConfidence := Classify(item, stats)
		secondCategory, secondConfidence := Classify(item, stats)

		assert.Equal(t, firstCategory, secondCategory)
		assert.Equal(t, firstConfidence, secondConfidence)
	})
}

func TestSuggestActions(t *testing.T) {
	for _, category := range []domain.Category{
		domain.CategoryStar,
		domain.CategoryPuzzle,
		domain.CategoryPlowhorse,
		domain.CategoryDog,
	} {
		assert.NotEmpty(t, SuggestActions(category))
	}

	assert.NotEmpty(t, SuggestActions(domain.CategoryUnclassified))
}

func TestService_ClassifyItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)
	service := NewService(mockItemRepo)

	t.Run("Item inexistente retorna erro de não encontrado", func(t *testing.T) {
		mockItemRepo.EXPECT().GetByID("nope").Return(nil, nil)

		result, err := service.ClassifyItem("nope")

		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.Nil(t, result)
	})

	t.Run("Classifica e persiste o resultado", func(t *testing.T) {
		item := menuItem("item-1", 100, 100.0, floatPtr(50.0))
		population := []*domain.MenuItem{
			item,
			menuItem("item-2", 10, 100.0, floatPtr(80.0)),
			menuItem("item-3", 5, 100.0, floatPtr(90.0)),
		}

		mockItemRepo.EXPECT().GetByID("item-1").Return(item, nil)
		mockItemRepo.EXPECT().ListActiveItems().Return(population, nil)
		mockItemRepo.EXPECT().
			UpdateClassification("item-1", domain.CategoryStar, gomock.Any(), gomock.Any()).
			Return(nil)

		result, err := service.ClassifyItem("item-1")

		assert.NoError(t, err)
		assert.Equal(t, domain.CategoryStar, result.Category)
		assert.NotEmpty(t, result.SuggestedActions)
	})
}

func TestService_ClassifyAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockItemRepo := mocks.NewMockMenuItemRepository(ctrl)
	service := NewService(mockItemRepo)

	t.Run("População vazia não grava nada", func(t *testing.T) {
		mockItemRepo.EXPECT().ListActiveItems().Return([]*domain.MenuItem{}, nil)

		result, err := service.ClassifyAll()

		assert.ErrorIs(t, err, ErrInsufficientData)
		assert.Nil(t, result)
	})

	t.Run("Falha em um item não aborta os demais", func(t *testing.T) {
		population := []*domain.MenuItem{
			menuItem("item-1", 100, 100.0, floatPtr(50.0)),
			menuItem("item-2", 10, 100.0, floatPtr(80.0)),
		}

		mockItemRepo.EXPECT().ListActiveItems().Return(population, nil)
		mockItemRepo.EXPECT().
			UpdateClassification("item-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("falha no banco"))
		mockItemRepo.EXPECT().
			UpdateClassification("item-2", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		result, err := service.ClassifyAll()

		assert.NoError(t, err)
		assert.Len(t, result.Classified, 1)
		assert.Len(t, result.Failed, 1)
		assert.Equal(t, "item-1", result.Failed[0].ItemID)
	})

	t.Run("Classifica toda a população e reporta os limiares", func(t *testing.T) {
		population := []*domain.MenuItem{
			menuItem("item-1", 100, 100.0, floatPtr(50.0)),
			menuItem("item-2", 10, 100.0, floatPtr(80.0)),
			menuItem("item-3", 5, 100.0, floatPtr(90.0)),
		}

		mockItemRepo.EXPECT().ListActiveItems().Return(population, nil)
		mockItemRepo.EXPECT().
			UpdateClassification(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(3)

		result, err := service.ClassifyAll()

		assert.NoError(t, err)
		assert.Len(t, result.Classified, 3)
		assert.Empty(t, result.Failed)
		assert.Equal(t, 3, result.Stats.PopulationSize)
		assert.InDelta(t, 10.0, result.Stats.PurchaseThreshold, 1e-9)
	})
}
