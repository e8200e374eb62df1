package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is a pharmacy catalog record.
type Medicine struct {
	ID                   string          `json:"id" validate:"required"`
	Name                 string          `json:"name" validate:"required"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `json:"price"`
	Category             string          `json:"category"`
	Manufacturer         string          `json:"manufacturer"`
	RequiresPrescription bool            `json:"requiresPrescription"`
	InStock              bool            `json:"inStock"`
	Image                string          `json:"image,omitempty"`
	Dosage               string          `json:"dosage,omitempty"`
}

// CartLine pairs a medicine snapshot with a positive quantity.
type CartLine struct {
	Medicine Medicine `json:"medicine"`
	Quantity int      `json:"quantity"`
}

// Subtotal is price × quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Medicine.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

var orderRank = map[OrderStatus]int{
	OrderPending:    0,
	OrderProcessing: 1,
	OrderShipped:    2,
	OrderDelivered:  3,
}

// CanAdvanceTo reports whether next is strictly later in the fulfillment lifecycle.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	cur, ok := orderRank[s]
	if !ok {
		return false
	}
	n, ok := orderRank[next]
	return ok && n > cur
}

// Order is an immutable checkout snapshot; only Status moves.
type Order struct {
	ID              string          `json:"id"`
	Items           []CartLine      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	DeliveryAddress string          `json:"deliveryAddress"`
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	out := o
	out.Items = CloneCart(o.Items)
	return out
}

// CloneCart copies cart lines.
func CloneCart(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}

// CartTotal sums price × quantity over lines without rounding.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
