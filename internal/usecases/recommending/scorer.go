package recommending

import (
	"fmt"
	"sort"

	"github.com/vfg2006/menu-engine-api/internal/domain"
)

// factorWeights é o vetor de pesos de uma estratégia; os pesos somam 1.0
type factorWeights struct {
	category   float64
	margin     float64
	coPurchase float64
	popularity float64
	context    float64
}

// strategyWeights retorna o vetor de pesos da estratégia.
// Enumeração fechada: qualquer outro valor falha com erro de validação antes
// de qualquer computação.
func strategyWeights(strategy domain.Strategy) (factorWeights, error) {
	switch strategy {
	case domain.StrategyBalanced:
		return factorWeights{category: 0.35, margin: 0.30, coPurchase: 0.20, popularity: 0.10, context: 0.05}, nil
	case domain.StrategyUpsell:
		return factorWeights{category: 0.30, margin: 0.45, coPurchase: 0.15, popularity: 0.05, context: 0.05}, nil
	case domain.StrategyCrossSell:
		return factorWeights{category: 0.25, margin: 0.20, coPurchase: 0.35, popularity: 0.10, context: 0.10}, nil
	default:
		return factorWeights{}, ErrUnknownStrategy
	}
}

// categoryScore é o mapeamento fixo da matriz de engenharia de cardápio
func categoryScore(category domain.Category) float64 {
	switch category {
	case domain.CategoryStar:
		return 1.0
	case domain.CategoryPuzzle:
		return 0.8
	case domain.CategoryPlowhorse:
		return 0.5
	case domain.CategoryDog:
		return 0.1
	default:
		return 0.3
	}
}

// Recommend ranqueia os candidatos elegíveis combinando cinco fatores
// normalizados contra o próprio pool. Itens do carrinho e inativos são
// excluídos antes do ranqueamento; um carrinho vazio nunca é erro — a
// pontuação degrada para categoria/popularidade.
func Recommend(
	cartItemIDs []string,
	candidatePool []*domain.MenuItem,
	affinity *domain.AffinityMap,
	strategy domain.Strategy,
	limit int,
) ([]domain.RecommendationCandidate, error) {
	weights, err := strategyWeights(strategy)
	if err != nil {
		return nil, err
	}

	inCart := make(map[string]bool, len(cartItemIDs))
	for _, id := range cartItemIDs {
		inCart[id] = true
	}

	// Seções presentes no carrinho, resolvidas antes de excluir os itens do
	// pool
	cartSections := make(map[string]bool)
	for _, item := range candidatePool {
		if inCart[item.ID] {
			cartSections[item.SectionID] = true
		}
	}

	candidates := make([]*domain.MenuItem, 0, len(candidatePool))
	for _, item := range candidatePool {
		if inCart[item.ID] || !item.Active {
			continue
		}
		candidates = append(candidates, item)
	}

	if len(candidates) == 0 {
		return nil, ErrEmptyPool
	}

	// Na estratégia de venda cruzada o sinal de co-compra usa o lift, que
	// não é limitado a [0,1] e precisa ser normalizado contra o pool
	useLift := strategy == domain.StrategyCrossSell

	rawCoPurchase := make([]float64, len(candidates))
	maxRawCoPurchase := 0.0
	maxMarginPercent := 0.0
	maxPurchases := 0

	for i, item := range candidates {
		rawCoPurchase[i] = coPurchaseSignal(cartItemIDs, item.ID, affinity, useLift)
		if rawCoPurchase[i] > maxRawCoPurchase {
			maxRawCoPurchase = rawCoPurchase[i]
		}
		if item.MarginPercent() > maxMarginPercent {
			maxMarginPercent = item.MarginPercent()
		}
		if item.TotalPurchases > maxPurchases {
			maxPurchases = item.TotalPurchases
		}
	}

	scored := make([]domain.RecommendationCandidate, 0, len(candidates))
	for i, item := range candidates {
		factors := map[domain.RecommendationFactor]float64{
			domain.FactorCategory:   categoryScore(item.Category),
			domain.FactorMargin:     normalize(item.MarginPercent(), maxMarginPercent),
			domain.FactorCoPurchase: normalizeCoPurchase(rawCoPurchase[i], maxRawCoPurchase, useLift),
			domain.FactorPopularity: normalize(float64(item.TotalPurchases), float64(maxPurchases)),
			domain.FactorContext:    contextSignal(item, cartSections),
		}

		score := weights.category*factors[domain.FactorCategory] +
			weights.margin*factors[domain.FactorMargin] +
			weights.coPurchase*factors[domain.FactorCoPurchase] +
			weights.popularity*factors[domain.FactorPopularity] +
			weights.context*factors[domain.FactorContext]

		dominant := dominantFactor(weights, factors)

		scored = append(scored, domain.RecommendationCandidate{
			Item:   item,
			Score:  score,
			Factor: dominant,
			Reason: reasonFor(dominant, item),
		})
	}

	// Empates resolvidos por receita e título para saída determinística
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Item.TotalRevenue != scored[j].Item.TotalRevenue {
			return scored[i].Item.TotalRevenue > scored[j].Item.TotalRevenue
		}
		return scored[i].Item.Title < scored[j].Item.Title
	})

	if limit > 0 && limit < len(scored) {
		scored = scored[:limit]
	}

	return scored, nil
}

// coPurchaseSignal retorna o maior sinal de associação entre o candidato e
// qualquer item do carrinho. Com carrinho vazio o sinal é 0 e os fatores de
// categoria/popularidade dominam.
func coPurchaseSignal(cartItemIDs []string, candidateID string, affinity *domain.AffinityMap, useLift bool) float64 {
	if affinity == nil {
		return 0
	}

	best := 0.0
	for _, cartID := range cartItemIDs {
		for _, entry := range affinity.Associations[cartID] {
			if entry.ItemID != candidateID {
				continue
			}
			signal := entry.Confidence
			if useLift {
				signal = entry.Lift
			}
			if signal > best {
				best = signal
			}
		}
	}
	return best
}

func normalizeCoPurchase(raw, maxRaw float64, useLift bool) float64 {
	if !useLift {
		// Confiança já pertence a [0,1]
		return raw
	}
	return normalize(raw, maxRaw)
}

func normalize(value, max float64) float64 {
	if max == 0 {
		return 0
	}
	return value / max
}

// contextSignal é o sinal de um bit de contexto: candidato compartilha seção
// com algum item do carrinho
func contextSignal(item *domain.MenuItem, cartSections map[string]bool) float64 {
	if cartSections[item.SectionID] {
		return 1.0
	}
	return 0.0
}

// dominantFactor retorna o fator com a maior contribuição ponderada
func dominantFactor(weights factorWeights, factors map[domain.RecommendationFactor]float64) domain.RecommendationFactor {
	contributions := []struct {
		factor domain.RecommendationFactor
		value  float64
	}{
		{domain.FactorCategory, weights.category * factors[domain.FactorCategory]},
		{domain.FactorMargin, weights.margin * factors[domain.FactorMargin]},
		{domain.FactorCoPurchase, weights.coPurchase * factors[domain.FactorCoPurchase]},
		{domain.FactorPopularity, weights.popularity * factors[domain.FactorPopularity]},
		{domain.FactorContext, weights.context * factors[domain.FactorContext]},
	}

	dominant := contributions[0]
	for _, c := range contributions[1:] {
		if c.value > dominant.value {
			dominant = c
		}
	}
	return dominant.factor
}

func reasonFor(factor domain.RecommendationFactor, item *domain.MenuItem) string {
	switch factor {
	case domain.FactorCategory:
		switch item.Category {
		case domain.CategoryStar:
			return "Favorito da casa"
		case domain.CategoryPuzzle:
			return "Joia escondida do cardápio"
		default:
			return "Destaque do cardápio"
		}
	case domain.FactorMargin:
		return "Ótimo custo-benefício"
	case domain.FactorCoPurchase:
		return "Combina com o seu pedido"
	case domain.FactorPopularity:
		return fmt.Sprintf("Pedido %d vezes pelos nossos clientes", item.TotalPurchases)
	case domain.FactorContext:
		return "Da mesma seção do seu pedido"
	default:
		return "Recomendado para você"
	}
}
