package entity

import (
	"fmt"
	"time"
)

// Contact is the shipper information collected at checkout.
type Contact struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Notes   *string `json:"notes,omitempty"`
}

// Order is an append-only snapshot of one cart line at checkout time.
type Order struct {
	ID         uint      `json:"id"`
	CartLineID uint      `json:"cart_line_id"`
	Contact    Contact   `json:"contact"`
	CartLine   *CartLine `json:"cart_line,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Headline is the first message of an order notification batch.
func (c Contact) Headline() string {
	return fmt.Sprintf("Order from %s, email: %s, to address: %s, telephone number: %s",
		c.Name, c.Email, c.Address, c.Phone)
}

// Summary describes the ordered line for the operator.
func (o *Order) Summary() string {
	line := o.CartLine
	if line == nil {
		return fmt.Sprintf("Order #%d", o.ID)
	}

	return fmt.Sprintf("Product: %s, quantity: %d, price: %s, with total price: %s",
		line.ItemName(), line.Quantity, line.UnitPrice().StringFixed(2), line.LineTotal().StringFixed(2))
}

// NotificationBatch renders the header followed by one summary per order.
// It returns nil when there are no orders.
func NotificationBatch(contact Contact, orders []*Order) []string {
	if len(orders) == 0 {
		return nil
	}

	messages := make([]string, 0, len(orders)+1)
	messages = append(messages, contact.Headline())
	for _, order := range orders {
		messages = append(messages, order.Summary())
	}

	return messages
}
