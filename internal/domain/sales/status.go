package sales

// OrderType tells how the customer is served
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

// IsValid checks if the order type is a known value
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

// Status represents the lifecycle of a sale
type Status string

const (
	StatusOpen      Status = "open"      // Dine-in order being served, not yet paid
	StatusClosed    Status = "closed"    // Paid
	StatusCancelled Status = "cancelled" // Abandoned before payment
	StatusVoided    Status = "voided"    // Reversed after payment
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusCancelled, StatusVoided:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusOpen:
		return target == StatusClosed || target == StatusCancelled
	case StatusClosed:
		return target == StatusVoided
	}
	return false
}

// IsFinal reports whether no further transition is possible
func (s Status) IsFinal() bool {
	return s == StatusCancelled || s == StatusVoided
}

// PaymentMethod is how a sale was settled. Payments are recorded, not processed.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCard     PaymentMethod = "card"
)

// IsValid checks if the payment method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCard:
		return true
	}
	return false
}
