package orders

import "github.com/rabuste-coffee/rabuste-backend/pkg/enums"

// CanTransition reports whether an order may move from one status to
// another. Pending orders can complete or cancel; both of those are terminal.
func CanTransition(from, to enums.OrderStatus) bool {
	if from == to {
		return false
	}
	switch from {
	case enums.OrderStatusPending:
		return to == enums.OrderStatusCompleted || to == enums.OrderStatusCancelled
	default:
		return false
	}
}
