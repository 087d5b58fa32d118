package domain

// Strategy é a estratégia de recomendação (vetor de pesos nomeado)
type Strategy string

const (
	StrategyBalanced  Strategy = "balanced"
	StrategyUpsell    Strategy = "upsell"
	StrategyCrossSell Strategy = "cross-sell"
)

// ParseStrategy valida e converte uma string para Strategy
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategyBalanced, StrategyUpsell, StrategyCrossSell:
		return Strategy(s), true
	}
	return "", false
}

// RecommendationFactor identifica o fator dominante de uma recomendação
type RecommendationFactor string

const (
	FactorCategory   RecommendationFactor = "category"
	FactorMargin     RecommendationFactor = "margin"
	FactorCoPurchase RecommendationFactor = "co_purchase"
	FactorPopularity RecommendationFactor = "popularity"
	FactorContext    RecommendationFactor = "context"
)

// RecommendationCandidate é o resultado transitório de uma recomendação.
// Nunca é persistido.
type RecommendationCandidate struct {
	Item   *MenuItem            `json:"item"`
	Score  float64              `json:"score"`
	Factor RecommendationFactor `json:"factor"`
	Reason string               `json:"reason"`
}

// ClassificationResult é o resultado da classificação de um item
type ClassificationResult struct {
	ItemID           string   `json:"item_id"`
	Title            string   `json:"title"`
	Category         Category `json:"category"`
	Confidence       float64  `json:"confidence"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
}

// BulkClassificationResult agrega o resultado de uma classificação em lote.
// A falha de um item não aborta os demais (sucesso parcial, não atômico).
type BulkClassificationResult struct {
	Classified []ClassificationResult  `json:"classified"`
	Failed     []ClassificationFailure `json:"failed"`
	Stats      *AggregateStats         `json:"stats"`
}

type ClassificationFailure struct {
	ItemID string `json:"item_id"`
	Error  string `json:"error"`
}

// AggregateStats são os limiares populacionais de uma execução de
// classificação. Nunca persistido; recalculado a cada execução para
// acompanhar o cardápio ativo.
type AggregateStats struct {
	PurchaseThreshold float64 `json:"purchase_threshold"`
	MarginThreshold   float64 `json:"margin_threshold"` // Fração (0.0 a 1.0)
	PopulationSize    int     `json:"population_size"`
}

// CategoryStats agrega contagens e receita por categoria
type CategoryStats struct {
	Category     Category `json:"category"`
	Count        int      `json:"count"`
	TotalRevenue float64  `json:"total_revenue"`
}

// MenuItemStats é a resposta de estatísticas do cardápio
type MenuItemStats struct {
	TotalItems  int             `json:"total_items"`
	PerCategory []CategoryStats `json:"per_category"`
}
