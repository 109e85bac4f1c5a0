package models

import "time"

// OrderCreatedEvent is published to the order events exchange after intake.
type OrderCreatedEvent struct {
	OrderID   int64      `json:"order_id"`
	Name      string     `json:"name"`
	Item      string     `json:"item"`
	Phone     string     `json:"phone"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

func NewOrderCreatedEvent(order Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:   order.ID,
		Name:      order.Name,
		Item:      order.Item,
		Phone:     order.Phone,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Timestamp: time.Now().UTC(),
	}
}

func (e OrderCreatedEvent) View() OrderView {
	return OrderView{
		ID:     e.OrderID,
		Name:   e.Name,
		Item:   e.Item,
		Phone:  e.Phone,
		Status: e.Status,
	}
}
