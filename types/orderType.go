package types

import "fmt"

type OrderType string

type OrderStatus string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"

	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderType validates an order type coming from a request body.
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case OrderTypeBuy:
		return OrderTypeBuy, nil
	case OrderTypeSell:
		return OrderTypeSell, nil
	}
	return "", fmt.Errorf("unknown order type %q", s)
}

// ParseOrderStatus validates an order status read back from storage.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusCompleted:
		return OrderStatusCompleted, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}
