package domain

import "time"

// ActivityEventType é o tipo de evento de interação do cliente
type ActivityEventType string

const (
	EventView           ActivityEventType = "view"
	EventClick          ActivityEventType = "click"
	EventAddToCart      ActivityEventType = "add_to_cart"
	EventRemoveFromCart ActivityEventType = "remove_from_cart"
	EventPurchase       ActivityEventType = "purchase"
	EventRating         ActivityEventType = "rating"
)

// ParseActivityEventType valida e converte uma string para ActivityEventType
func ParseActivityEventType(s string) (ActivityEventType, bool) {
	switch ActivityEventType(s) {
	case EventView, EventClick, EventAddToCart, EventRemoveFromCart, EventPurchase, EventRating:
		return ActivityEventType(s), true
	}
	return "", false
}

type CustomerActivity struct {
	ID         string            `json:"id"`
	SessionID  string            `json:"session_id"`
	EventType  ActivityEventType `json:"event_type"`
	MenuItemID *string           `json:"menu_item_id"`
	Metadata   map[string]any    `json:"metadata"`
	Timestamp  time.Time         `json:"timestamp"`
}

type ActivityStats struct {
	ByEventType []ActivityEventCount `json:"by_event_type"`
	MostViewed  []ItemViewCount      `json:"most_viewed_items"`
}

type ActivityEventCount struct {
	EventType ActivityEventType `json:"event_type"`
	Count     int               `json:"count"`
}

type ItemViewCount struct {
	MenuItemID string `json:"menu_item_id"`
	Title      string `json:"title"`
	Views      int    `json:"views"`
}
