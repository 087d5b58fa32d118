package classifying

import (
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

const (
	// Limites de clamp da confiança. Itens longe das fronteiras recebem
	// confiança alta; itens próximos recebem confiança baixa, sinalizando ao
	// gerente que o rótulo é limítrofe. As constantes são ajustáveis, não
	// carregam correção do algoritmo.
	minConfidence = 0.05
	maxConfidence = 1.0

	// coldStartCap limita a confiança de itens sem nenhuma compra
	coldStartCap = 0.95

	// missingCostDiscount reduz o termo de margem quando o custo é
	// desconhecido, refletindo a incerteza do dado ausente
	missingCostDiscount = 0.5
)

// Classify enquadra um item na matriz de engenharia de cardápio usando os
// limiares populacionais. Empates resolvem para a categoria de maior valor
// (>= em ambos os eixos).
//
//	compras >= limiar | margem >= limiar | categoria
//	       sim        |       sim        | star
//	       sim        |       não        | plowhorse
//	       não        |       sim        | puzzle
//	       não        |       não        | dog
func Classify(item *domain.MenuItem, stats *domain.AggregateStats) (domain.Category, float64) {
	marginPercent := item.MarginPercent()
	if !item.HasCost() {
		// Sem custo cadastrado a margem é tratada como melhor caso para o
		// item nunca ser penalizado por dado ausente
		marginPercent = 1.0
	}

	highPopularity := float64(item.TotalPurchases) >= stats.PurchaseThreshold
	highProfitability := marginPercent >= stats.MarginThreshold

	var category domain.Category
	switch {
	case highPopularity && highProfitability:
		category = domain.CategoryStar
	case highPopularity && !highProfitability:
		category = domain.CategoryPlowhorse
	case !highPopularity && highProfitability:
		category = domain.CategoryPuzzle
	default:
		category = domain.CategoryDog
	}

	confidence := calculateConfidence(item, marginPercent, stats)

	return category, confidence
}

// calculateConfidence mede a distância normalizada das duas fronteiras:
// clamp((|Δcompras|/limiar + |Δmargem|/limiar) / 2, 0.05, 1.0)
func calculateConfidence(item *domain.MenuItem, marginPercent float64, stats *domain.AggregateStats) float64 {
	purchaseTerm := 1.0
	if item.TotalPurchases > 0 && stats.PurchaseThreshold > 0 {
		purchaseTerm = abs(float64(item.TotalPurchases)-stats.PurchaseThreshold) / stats.PurchaseThreshold
	}

	marginTerm := 1.0
	if stats.MarginThreshold > 0 {
		marginTerm = abs(marginPercent-stats.MarginThreshold) / stats.MarginThreshold
	}
	if !item.HasCost() {
		marginTerm *= missingCostDiscount
	}

	confidence := (purchaseTerm + marginTerm) / 2

	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	// Itens sem nenhuma compra ficam com a confiança limitada para sinalizar
	// a incerteza de partida fria
	if item.TotalPurchases == 0 && confidence > coldStartCap {
		confidence = coldStartCap
	}

	return confidence
}

// SuggestActions retorna as ações sugeridas para cada categoria.
// Tabela pura, sem efeitos colaterais.
func SuggestActions(category domain.Category) []string {
	switch category {
	case domain.CategoryStar:
		return []string{
			"Manter preço e posicionamento atuais",
			"Destacar o item no cardápio",
			"Usar como âncora em combos",
		}
	case domain.CategoryPuzzle:
		return []string{
			"Reposicionar para um lugar mais visível do cardápio",
			"Treinar a equipe para sugerir ativamente o item",
			"Incluir em combos populares",
		}
	case domain.CategoryPlowhorse:
		return []string{
			"Aumentar o preço em 5-10% (itens populares toleram reajustes)",
			"Oferecer adicionais premium para elevar a margem",
			"Revisar custos com fornecedores",
		}
	case domain.CategoryDog:
		return []string{
			"Testar redução de preço para medir demanda",
			"Considerar remover ou reformular o item",
			"Mover para posição menos nobre do cardápio",
		}
	default:
		return []string{"Classificar o item para receber sugestões"}
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
