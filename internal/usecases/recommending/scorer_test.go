package recommending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

func poolItem(id, section string, category domain.Category, price, cost float64, purchases int) *domain.MenuItem {
	return &domain.MenuItem{
		ID:             id,
		SectionID:      section,
		Title:          "Item " + id,
		Price:          price,
		Cost:           &cost,
		Active:         true,
		Category:       category,
		TotalPurchases: purchases,
		TotalRevenue:   price * float64(purchases),
	}
}

func TestStrategyWeights(t *testing.T) {
	for _, strategy := range []domain.Strategy{
		domain.StrategyBalanced,
		domain.StrategyUpsell,
		domain.StrategyCrossSell,
	} {
		weights, err := strategyWeights(strategy)
		assert.NoError(t, err)

		sum := weights.category + weights.margin + weights.coPurchase + weights.popularity + weights.context
		assert.InDelta(t, 1.0, sum, 1e-9, "pesos da estratégia %s devem somar 1.0", strategy)
	}

	_, err := strategyWeights(domain.Strategy("aggressive"))
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestRecommend(t *testing.T) {
	emptyAffinity := BuildAffinity([]*domain.OrderRecord{})

	t.Run("Itens do carrinho e inativos ficam fora do resultado", func(t *testing.T) {
		inactive := poolItem("inativo", "s1", domain.CategoryStar, 50.0, 20.0, 100)
		inactive.Active = false

		pool := []*domain.MenuItem{
			poolItem("no-carrinho", "s1", domain.CategoryStar, 50.0, 20.0, 100),
			poolItem("elegivel", "s1", domain.CategoryPuzzle, 40.0, 15.0, 30),
			inactive,
		}

		result, err := Recommend([]string{"no-carrinho"}, pool, emptyAffinity, domain.StrategyBalanced, 10)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, "elegivel", result[0].Item.ID)
	})

	t.Run("Pool sem candidatos elegíveis retorna erro de pool vazio", func(t *testing.T) {
		pool := []*domain.MenuItem{
			poolItem("unico", "s1", domain.CategoryStar, 50.0, 20.0, 100),
		}

		result, err := Recommend([]string{"unico"}, pool, emptyAffinity, domain.StrategyBalanced, 10)

		assert.ErrorIs(t, err, ErrEmptyPool)
		assert.Nil(t, result)
	})

	t.Run("Carrinho vazio ranqueia star popular em primeiro", func(t *testing.T) {
		pool := []*domain.MenuItem{
			poolItem("dog", "s1", domain.CategoryDog, 30.0, 25.0, 5),
			poolItem("star", "s1", domain.CategoryStar, 50.0, 20.0, 200),
			poolItem("plowhorse", "s1", domain.CategoryPlowhorse, 40.0, 32.0, 180),
		}

		result, err := Recommend(nil, pool, emptyAffinity, domain.StrategyBalanced, 10)

		assert.NoError(t, err)
		assert.Len(t, result, 3)
		assert.Equal(t, "star", result[0].Item.ID)
		assert.Equal(t, "dog", result[2].Item.ID)
	})

	t.Run("Estratégia de venda cruzada prioriza a co-compra", func(t *testing.T) {
		// "combinado" sempre acompanha "principal" nos pedidos; "sozinho"
		// nunca aparece junto
		orders := []*domain.OrderRecord{
			orderRecord("principal", "combinado"),
			orderRecord("principal", "combinado"),
			orderRecord("principal", "combinado"),
			orderRecord("sozinho"),
		}
		affinity := BuildAffinity(orders)

		pool := []*domain.MenuItem{
			poolItem("principal", "s1", domain.CategoryStar, 50.0, 20.0, 100),
			poolItem("combinado", "s2", domain.CategoryDog, 20.0, 15.0, 10),
			poolItem("sozinho", "s2", domain.CategoryPlowhorse, 20.0, 15.0, 90),
		}

		result, err := Recommend([]string{"principal"}, pool, affinity, domain.StrategyCrossSell, 10)

		assert.NoError(t, err)
		assert.Equal(t, "combinado", result[0].Item.ID)
		assert.Equal(t, domain.FactorCoPurchase, result[0].Factor)
	})

	t.Run("Empates resolvem por receita e depois por título", func(t *testing.T) {
		// Pontuações idênticas: mesma categoria, margem, popularidade e seção
		first := poolItem("a", "s1", domain.CategoryStar, 50.0, 20.0, 100)
		second := poolItem("b", "s1", domain.CategoryStar, 50.0, 20.0, 100)
		second.TotalRevenue = first.TotalRevenue

		result, err := Recommend(nil, []*domain.MenuItem{second, first}, emptyAffinity, domain.StrategyBalanced, 10)

		assert.NoError(t, err)
		assert.Equal(t, "Item a", result[0].Item.Title)
		assert.Equal(t, "Item b", result[1].Item.Title)
	})

	t.Run("Resultado respeita o limite e carrega motivo legível", func(t *testing.T) {
		pool := []*domain.MenuItem{
			poolItem("a", "s1", domain.CategoryStar, 50.0, 20.0, 100),
			poolItem("b", "s1", domain.CategoryPuzzle, 45.0, 15.0, 20),
			poolItem("c", "s1", domain.CategoryPlowhorse, 35.0, 28.0, 150),
		}

		result, err := Recommend(nil, pool, emptyAffinity, domain.StrategyBalanced, 2)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		for _, candidate := range result {
			assert.NotEmpty(t, candidate.Reason)
			assert.NotEmpty(t, candidate.Factor)
			assert.Greater(t, candidate.Score, 0.0)
		}
	})
}
