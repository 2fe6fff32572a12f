package models

// Order statuses form an open string enum: unknown values are preserved
// as-is and render with the fallback badge.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// OrderStatuses lists the values accepted by the edit form, in display order.
var OrderStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusRunning,
	StatusCompleted,
	StatusCancelled,
}

// ValidStatus reports whether s is one of the accepted statuses.
func ValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is the canonical in-memory booking record. Every field is always
// present and well-typed after normalization; see store.NormalizeOrder.
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	Status        string      `json:"status"`
	Total         float64     `json:"total"`
	OrderDate     string      `json:"orderDate"` // RFC3339 UTC, for display
	CarType       string      `json:"carType"`
	TimeSlot      string      `json:"timeSlot"`
	PaymentMethod string      `json:"paymentMethod"`
	Items         []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Subtotal is the display-only line-item sum; it is never persisted.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += float64(it.Quantity) * it.Price
	}
	return sum
}

// StatusBadge maps an order status to a badge variant for the templates.
// Any unrecognized status falls back to "outline".
func StatusBadge(status string) string {
	switch status {
	case StatusCompleted:
		return "success"
	case StatusConfirmed:
		return "default"
	case StatusRunning:
		return "secondary"
	case StatusCancelled:
		return "destructive"
	default:
		return "outline"
	}
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash
}
