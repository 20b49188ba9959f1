package sales

import "fmt"

// Error para estados desconocidos en una transición
var ErrInvalidStatus = &ValidationError{Reason: "invalid status value"}

// ValidationError rejects malformed sale input before any remote call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid sale: " + e.Reason
}

// NotFoundError reports a sale or referenced product that is absent where
// presence is required.
type NotFoundError struct {
	Kind string // "sale" or "product"
	ID   string
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s not found: %s (id %s)", e.Kind, e.Name, e.ID)
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InsufficientStockError blocks a delivery debit when a product does not
// have enough stock for the requested quantity.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Required    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, required %d",
		e.ProductName, e.Available, e.Required)
}
