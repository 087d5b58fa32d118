// Package recommending implementa a análise de cesta de compras
// (suporte/confiança/lift direcionais) e o ranqueador multi-fator de
// recomendações do cardápio.
package recommending

import (
	"fmt"
	"sort"

	"github.com/vfg2006/menu-engine-api/internal/domain"
)

// BuildAffinity constrói a estrutura de afinidade direcional a partir do
// histórico de pedidos concluídos. A estrutura é reconstruída integralmente a
// cada execução.
//
// A complexidade é O(pedidos × itensPorPedido²): para históricos grandes a
// reconstrução deve rodar como job periódico (ver internal/scheduler), nunca
// por requisição.
func BuildAffinity(orders []*domain.OrderRecord) *domain.AffinityMap {
	totalOrders := len(orders)

	itemFrequencies := make(map[string]int)
	pairCounts := make(map[string]map[string]int)

	for _, order := range orders {
		// Itens distintos do pedido; quantidades não importam para a
		// co-ocorrência
		itemIDs := make([]string, 0, len(order.Items))
		for itemID := range order.Items {
			itemIDs = append(itemIDs, itemID)
		}

		for _, itemID := range itemIDs {
			itemFrequencies[itemID]++
		}

		// Pares ordenados distintos (A,B) com A != B: A->B e B->A são
		// contadores independentes, nunca colapsados em um par simétrico
		for _, a := range itemIDs {
			for _, b := range itemIDs {
				if a == b {
					continue
				}
				if pairCounts[a] == nil {
					pairCounts[a] = make(map[string]int)
				}
				pairCounts[a][b]++
			}
		}
	}

	associations := make(map[string][]domain.AffinityEntry, len(pairCounts))

	for a, counts := range pairCounts {
		entries := make([]domain.AffinityEntry, 0, len(counts))
		for b, count := range counts {
			entries = append(entries, domain.AffinityEntry{
				ItemID:     b,
				Count:      count,
				Support:    safeRatio(float64(count), float64(totalOrders)),
				Confidence: safeRatio(float64(count), float64(itemFrequencies[a])),
				Lift:       lift(count, itemFrequencies[a], itemFrequencies[b], totalOrders),
			})
		}

		sortEntries(entries, itemFrequencies)
		associations[a] = entries
	}

	return &domain.AffinityMap{
		Associations:    associations,
		ItemFrequencies: itemFrequencies,
		TotalOrders:     totalOrders,
	}
}

// FrequentlyBoughtWith retorna os k itens mais associados ao item informado,
// ordenados por confiança. Um item que nunca co-ocorreu retorna lista vazia,
// não erro.
func FrequentlyBoughtWith(affinity *domain.AffinityMap, itemID string, k int) []domain.ItemAssociation {
	entries := affinity.Associations[itemID]
	if len(entries) == 0 {
		return []domain.ItemAssociation{}
	}

	if k > len(entries) {
		k = len(entries)
	}

	result := make([]domain.ItemAssociation, 0, k)
	for _, entry := range entries[:k] {
		result = append(result, domain.ItemAssociation{
			ItemID:     entry.ItemID,
			Confidence: entry.Confidence,
			Lift:       entry.Lift,
			Count:      entry.Count,
			Message:    associationMessage(entry.Confidence),
		})
	}

	return result
}

// sortEntries ordena por confiança, desempatando por lift, depois pela
// frequência do item associado e por fim pelo identificador, para saída
// determinística
func sortEntries(entries []domain.AffinityEntry, itemFrequencies map[string]int) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Confidence != entries[j].Confidence {
			return entries[i].Confidence > entries[j].Confidence
		}
		if entries[i].Lift != entries[j].Lift {
			return entries[i].Lift > entries[j].Lift
		}
		if itemFrequencies[entries[i].ItemID] != itemFrequencies[entries[j].ItemID] {
			return itemFrequencies[entries[i].ItemID] > itemFrequencies[entries[j].ItemID]
		}
		return entries[i].ItemID < entries[j].ItemID
	})
}

func associationMessage(confidence float64) string {
	return fmt.Sprintf("Pedido junto em %d%% dos pedidos que contêm este item", int(confidence*100))
}

// safeRatio divide protegendo contra denominador zero, substituindo por 0
func safeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// lift = confiança(A->B) / P(B); 0 quando qualquer denominador é zero
func lift(pairCount, countA, countB, totalOrders int) float64 {
	confidence := safeRatio(float64(pairCount), float64(countA))
	pb := safeRatio(float64(countB), float64(totalOrders))
	return safeRatio(confidence, pb)
}
