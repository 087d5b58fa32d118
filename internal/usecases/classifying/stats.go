// Package classifying implementa a matriz de engenharia de cardápio:
// classifica itens em Star/Puzzle/Plowhorse/Dog a partir de limiares
// populacionais de popularidade e margem.
package classifying

import (
	"sort"

	"github.com/vfg2006/menu-engine-api/internal/domain"
)

// defaultMarginThreshold é usado quando nenhum item ativo tem custo
// cadastrado e a mediana de margem não pode ser calculada
const defaultMarginThreshold = 0.30

// ComputeStats calcula os limiares populacionais sobre o conjunto de itens
// ativos. A mediana é usada no lugar da média para que bestsellers atípicos
// não desloquem a fronteira. Itens sem custo cadastrado são excluídos da
// mediana de margem, mas continuam sendo classificados.
func ComputeStats(activeItems []*domain.MenuItem) (*domain.AggregateStats, error) {
	if len(activeItems) == 0 {
		return nil, ErrInsufficientData
	}

	purchases := make([]float64, 0, len(activeItems))
	margins := make([]float64, 0, len(activeItems))

	for _, item := range activeItems {
		purchases = append(purchases, float64(item.TotalPurchases))
		if item.HasCost() {
			margins = append(margins, item.MarginPercent())
		}
	}

	marginThreshold := defaultMarginThreshold
	if len(margins) > 0 {
		marginThreshold = median(margins)
	}

	return &domain.AggregateStats{
		PurchaseThreshold: median(purchases),
		MarginThreshold:   marginThreshold,
		PopulationSize:    len(activeItems),
	}, nil
}

// median calcula a mediana de uma lista não vazia
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
