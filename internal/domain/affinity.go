package domain

// AffinityEntry é uma associação direcional de co-compra (A -> B).
// Confidence e lift não são simétricos: A->B e B->A são entradas distintas.
type AffinityEntry struct {
	ItemID     string  `json:"item_id"` // Item B da regra A -> B
	Count      int     `json:"count"`   // Pedidos contendo A e B
	Support    float64 `json:"support"`
	Confidence float64 `json:"confidence"`
	Lift       float64 `json:"lift"`
}

// AffinityMap é a estrutura completa de afinidade construída a partir do
// histórico de pedidos concluídos. Reconstruída integralmente a cada execução
// do analisador; somente leitura para os demais componentes.
type AffinityMap struct {
	// Associations mapeia o item A para suas entradas direcionais A -> B
	Associations map[string][]AffinityEntry `json:"associations"`
	// ItemFrequencies mapeia cada item para o número de pedidos que o contêm
	ItemFrequencies map[string]int `json:"item_frequencies"`
	TotalOrders     int            `json:"total_orders"`
}

// ItemAssociation é o resultado de "frequentemente pedidos juntos" para a API
type ItemAssociation struct {
	ItemID     string  `json:"item_id"`
	Confidence float64 `json:"confidence"`
	Lift       float64 `json:"lift"`
	Count      int     `json:"count"`
	Message    string  `json:"message"`
}
