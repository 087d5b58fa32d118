package domain

import "time"

// OrderStatus é o status de um pedido
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus valida e converte uma string para OrderStatus
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CompletedOrderStatuses são os status considerados concluídos para fins de análise.
// Pedidos pendentes ou cancelados nunca alimentam a análise de co-compra.
var CompletedOrderStatuses = []OrderStatus{
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusConfirmed,
}

type Order struct {
	ID          string      `json:"id"`
	Reference   string      `json:"reference"` // Código curto exibido para a equipe (ex: X4k9Pa)
	Status      OrderStatus `json:"status"`
	TableNumber *string     `json:"table_number"`
	Notes       string      `json:"notes"`
	Subtotal    float64     `json:"subtotal"`
	Total       float64     `json:"total"`
	Items       []OrderItem `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"order_id"`
	MenuItemID   string  `json:"menu_item_id"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"price_at_order"` // Preço capturado no momento do pedido
}

// LineTotal calcula o total da linha do pedido
func (i *OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.PriceAtOrder
}

// OrderRecord é a visão mínima de um pedido concluído usada pela análise de
// co-compra: apenas o multiconjunto de itens com quantidades.
type OrderRecord struct {
	OrderedAt time.Time      `json:"ordered_at"`
	Items     map[string]int `json:"items"` // itemID -> quantidade
}

type CreateOrderRequest struct {
	TableNumber *string                  `json:"table_number"`
	Notes       string                   `json:"notes"`
	Items       []CreateOrderItemRequest `json:"items"`
}

type CreateOrderItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// OrderStats são as estatísticas de pedidos exibidas para gerentes
type OrderStats struct {
	TodayCount        int                `json:"today_count"`
	TodayRevenue      float64            `json:"today_revenue"`
	ByStatus          []OrderStatusCount `json:"by_status"`
	AverageOrderValue float64            `json:"average_order_value"`
}

type OrderStatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}
