package models

import "time"

// StatusReceived is the status every order is created with.
const StatusReceived = "received"

// StatusCreated is the marker returned to the client after a successful intake.
const StatusCreated = "created"

const DefaultListLimit = 50

type CreateOrder struct {
	Name  string `json:"name"`
	Item  string `json:"item"`
	Phone string `json:"phone"`
}

type Order struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Item      string     `json:"item"`
	Phone     string     `json:"phone"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"created_at"`
}

// OrderView is the read-only projection handed to every notification adapter.
type OrderView struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Item   string `json:"item"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

func (o Order) View() OrderView {
	return OrderView{
		ID:     o.ID,
		Name:   o.Name,
		Item:   o.Item,
		Phone:  o.Phone,
		Status: o.Status,
	}
}

type OrderResponse struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	Notification string `json:"notification,omitempty"`
}

// MirrorResult is what the secondary store reports for a duplicate write.
type MirrorResult struct {
	Success bool
	Row     OrderView
	Error   string
}
