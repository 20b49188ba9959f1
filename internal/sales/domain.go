package sales

import "time"

// Status is the lifecycle state of a sale.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Customer identifies the buyer on a sale.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Item is one line of a sale, referencing a catalog product.
type Item struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Sale represents a sales transaction in the system. Inventory is not
// touched at creation time; stock moves only when the sale is delivered.
type Sale struct {
	ID        string    `json:"id"`
	Customer  Customer  `json:"customer"`
	Items     []Item    `json:"items"`
	Total     float64   `json:"total"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Etiquetas y estilos para mostrar cada estado en la UI
var statusLabels = map[Status]string{
	StatusPending:   "Pendiente",
	StatusConfirmed: "Confirmado",
	StatusDelivered: "Entregado",
	StatusCancelled: "Cancelado",
}

var statusColors = map[Status]string{
	StatusPending:   "bg-yellow-100 text-yellow-800",
	StatusConfirmed: "bg-blue-100 text-blue-800",
	StatusDelivered: "bg-green-100 text-green-800",
	StatusCancelled: "bg-red-100 text-red-800",
}

// StatusLabel maps a status to its display text, with a fallback for
// anything unrecognized.
func StatusLabel(s Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Desconocido"
}

// StatusColor maps a status to its display style token.
func StatusColor(s Status) string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return "bg-gray-100 text-gray-800"
}
