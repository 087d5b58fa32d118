package recommending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/menu-engine-api/internal/domain"
)

func orderRecord(itemIDs ...string) *domain.OrderRecord {
	items := make(map[string]int, len(itemIDs))
	for _, id := range itemIDs {
		items[id]++
	}
	return &domain.OrderRecord{Items: items}
}

func findEntry(entries []domain.AffinityEntry, itemID string) *domain.AffinityEntry {
	for i := range entries {
		if entries[i].ItemID == itemID {
			return &entries[i]
		}
	}
	return nil
}

func TestBuildAffinity(t *testing.T) {
	t.Run("Histórico vazio produz estrutura vazia sem divisão por zero", func(t *testing.T) {
		affinity := BuildAffinity([]*domain.OrderRecord{})

		assert.Equal(t, 0, affinity.TotalOrders)
		assert.Empty(t, affinity.Associations)
		assert.Empty(t, affinity.ItemFrequencies)
	})

	t.Run("Pedido com um único item não gera pares", func(t *testing.T) {
		affinity := BuildAffinity([]*domain.OrderRecord{
			orderRecord("A"),
		})

		assert.Equal(t, 1, affinity.TotalOrders)
		assert.Equal(t, 1, affinity.ItemFrequencies["A"])
		assert.Empty(t, affinity.Associations)
	})

	t.Run("Quantidades não inflam a co-ocorrência", func(t *testing.T) {
		// Três unidades de A e uma de B no mesmo pedido contam como uma
		// única co-ocorrência
		affinity := BuildAffinity([]*domain.OrderRecord{
			{Items: map[string]int{"A": 3, "B": 1}},
		})

		entry := findEntry(affinity.Associations["A"], "B")
		assert.NotNil(t, entry)
		assert.Equal(t, 1, entry.Count)
	})

	t.Run("Confiança é direcional e assimétrica", func(t *testing.T) {
		// A aparece em 3 pedidos, B em 5; o par ocorre em 2.
		orders := []*domain.OrderRecord{
			orderRecord("A", "B"),
			orderRecord("A", "B"),
			orderRecord("A"),
			orderRecord("B"),
			orderRecord("B"),
			orderRecord("B"),
		}

		affinity := BuildAffinity(orders)

		assert.Equal(t, 6, affinity.TotalOrders)
		assert.Equal(t, 3, affinity.ItemFrequencies["A"])
		assert.Equal(t, 5, affinity.ItemFrequencies["B"])

		aToB := findEntry(affinity.Associations["A"], "B")
		bToA := findEntry(affinity.Associations["B"], "A")
		assert.NotNil(t, aToB)
		assert.NotNil(t, bToA)

		// Suporte é o mesmo nas duas direções: 2/6
		assert.InDelta(t, 2.0/6.0, aToB.Support, 1e-9)
		assert.InDelta(t, 2.0/6.0, bToA.Support, 1e-9)

		// Confiança muda com a direção: 2/3 contra 2/5
		assert.InDelta(t, 2.0/3.0, aToB.Confidence, 1e-9)
		assert.InDelta(t, 2.0/5.0, bToA.Confidence, 1e-9)

		// Lift é simétrico: (2/3)/(5/6) == (2/5)/(3/6)
		assert.InDelta(t, 0.8, aToB.Lift, 1e-9)
		assert.InDelta(t, 0.8, bToA.Lift, 1e-9)
	})

	t.Run("Associações ordenadas por confiança decrescente", func(t *testing.T) {
		orders := []*domain.OrderRecord{
			orderRecord("A", "B"),
			orderRecord("A", "B"),
			orderRecord("A", "C"),
		}

		affinity := BuildAffinity(orders)

		entries := affinity.Associations["A"]
		assert.Len(t, entries, 2)
		assert.Equal(t, "B", entries[0].ItemID)
		assert.Equal(t, "C", entries[1].ItemID)
	})
}

func TestFrequentlyBoughtWith(t *testing.T) {
	orders := []*domain.OrderRecord{
		orderRecord("A", "B", "C"),
		orderRecord("A", "B"),
		orderRecord("A", "C"),
		orderRecord("B", "C"),
	}
	affinity := BuildAffinity(orders)

	t.Run("Item sem co-ocorrência retorna lista vazia", func(t *testing.T) {
		result := FrequentlyBoughtWith(affinity, "inexistente", 5)

		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("Respeita o limite pedido", func(t *testing.T) {
		result := FrequentlyBoughtWith(affinity, "A", 1)

		assert.Len(t, result, 1)
	})

	t.Run("Retorna confiança, lift e mensagem por associação", func(t *testing.T) {
		result := FrequentlyBoughtWith(affinity, "A", 5)

		assert.Len(t, result, 2)
		for _, association := range result {
			assert.Greater(t, association.Confidence, 0.0)
			assert.Greater(t, association.Lift, 0.0)
			assert.Greater(t, association.Count, 0)
			assert.NotEmpty(t, association.Message)
		}
	})
}
