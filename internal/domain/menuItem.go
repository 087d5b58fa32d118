// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Category é a categoria de engenharia de cardápio de um item
type Category string

const (
	CategoryUnclassified Category = "unclassified"
	CategoryStar         Category = "star"
	CategoryPuzzle       Category = "puzzle"
	CategoryPlowhorse    Category = "plowhorse"
	CategoryDog          Category = "dog"
)

// ParseCategory valida e converte uma string para Category
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryUnclassified, CategoryStar, CategoryPuzzle, CategoryPlowhorse, CategoryDog:
		return Category(s), true
	}
	return "", false
}

type MenuItem struct {
	ID             string     `json:"id"`
	SectionID      string     `json:"section_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	Cost           *float64   `json:"cost"` // nil quando o custo ainda não foi cadastrado
	DisplayOrder   int        `json:"display_order"`
	Active         bool       `json:"active"`
	Category       Category   `json:"category"`
	Confidence     *float64   `json:"confidence"`
	LastAnalyzedAt *time.Time `json:"last_analyzed_at"`
	TotalPurchases int        `json:"total_purchases"`
	TotalRevenue   float64    `json:"total_revenue"`
	TotalProfit    float64    `json:"total_profit"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Margin retorna a margem de contribuição por unidade (preço - custo)
func (m *MenuItem) Margin() float64 {
	if m.Cost == nil {
		return m.Price
	}
	return m.Price - *m.Cost
}

// MarginPercent retorna a margem como fração do preço (0.0 a 1.0).
// Retorna 0 quando o preço é zero e 1.0 quando o custo é desconhecido.
func (m *MenuItem) MarginPercent() float64 {
	if m.Price == 0 {
		return 0
	}
	if m.Cost == nil {
		return 1.0
	}
	return (m.Price - *m.Cost) / m.Price
}

// HasCost indica se o item tem custo cadastrado
func (m *MenuItem) HasCost() bool {
	return m.Cost != nil
}

type UpdateMenuItemRequest struct {
	ID           string   `json:"id"`
	SectionID    *string  `json:"section_id"`
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Cost         *float64 `json:"cost"`
	DisplayOrder *int     `json:"display_order"`
	Active       *bool    `json:"active"`
}

// ItemClassification é a proposta de escrita após uma classificação
type ItemClassification struct {
	ItemID     string   `json:"item_id"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}
