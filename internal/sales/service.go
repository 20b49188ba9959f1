package sales

import (
	"context"
	"errors"
	"time"

	"agrostore/internal/docstore"

	"go.uber.org/zap"
)

const (
	salesCollection    = "sales"
	productsCollection = "products"

	// fetchLimit caps FetchAll at the most recent sales; no pagination.
	fetchLimit = 50
)

// NewSale is the caller-supplied input to Create.
type NewSale struct {
	Customer Customer
	Items    []Item
	Total    float64
}

// Service owns sale creation, retrieval and status transitions, enforcing
// that inventory is debited once per delivery and restored once per
// reversal, with stock sufficiency checked before any debit is committed.
type Service struct {
	store  docstore.Store
	cache  *Cache
	guard  Guard
	logger *zap.Logger
}

// NewService creates a new sale lifecycle Service over the given store.
// Each instance owns its own cache of recent sales.
func NewService(store docstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		store:  store,
		cache:  NewCache(),
		guard:  NopGuard{},
		logger: logger,
	}
}

// UseGuard swaps the stock concurrency-control strategy. The default is
// NopGuard; see Guard.
func (s *Service) UseGuard(g Guard) {
	s.guard = g
}

// Create validates and persists a new pending sale, returning its ID.
// Inventory is not touched here; stock is reserved only at delivery.
func (s *Service) Create(ctx context.Context, in NewSale) (string, error) {
	// Validar los datos antes de cualquier llamada remota
	if err := validateNewSale(in); err != nil {
		return "", err
	}

	id, err := s.store.Create(ctx, salesCollection, map[string]any{
		"customer": map[string]any{
			"name":  in.Customer.Name,
			"phone": in.Customer.Phone,
		},
		"items":  itemsToFields(in.Items),
		"total":  in.Total,
		"status": string(StatusPending),
	})
	if err != nil {
		s.logger.Error("failed to create sale", zap.Error(err))
		return "", err
	}

	// Local timestamps stand in until the store's values are fetched.
	now := time.Now()
	s.cache.Prepend(&Sale{
		ID:        id,
		Customer:  in.Customer,
		Items:     in.Items,
		Total:     in.Total,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})

	s.logger.Info("sale created", zap.String("sale_id", id), zap.Float64("total", in.Total))
	return id, nil
}

// FetchAll retrieves the most recent sales, newest first, and replaces the
// cache wholesale.
func (s *Service) FetchAll(ctx context.Context) ([]*Sale, error) {
	docs, err := s.store.Query(ctx, salesCollection, docstore.FieldCreatedAt, true, fetchLimit)
	if err != nil {
		s.logger.Error("failed to fetch sales", zap.Error(err))
		return nil, err
	}

	fetched := make([]*Sale, 0, len(docs))
	for _, doc := range docs {
		fetched = append(fetched, saleFromDoc(doc))
	}
	s.cache.Replace(fetched)
	return s.cache.All(), nil
}

// GetByID looks up a sale in the cache only. A sale that exists remotely
// but was never fetched or created through this instance is not found.
func (s *Service) GetByID(saleID string) (*Sale, bool) {
	return s.cache.Get(saleID)
}

type inventoryAction int

const (
	actionNone inventoryAction = iota
	actionDebit
	actionCredit
)

// transitionAction resolves the (previous, new) status pair to the stock
// movement it requires. Only crossing the delivered boundary moves stock.
func transitionAction(prev, next Status) inventoryAction {
	switch {
	case prev != StatusDelivered && next == StatusDelivered:
		return actionDebit
	case prev == StatusDelivered && next != StatusDelivered:
		return actionCredit
	default:
		return actionNone
	}
}

// SetStatus transitions a sale to newStatus, applying the stock debit or
// credit the transition requires.
//
// The status field is written to the store before any inventory work, so a
// failed debit leaves the sale already marked with the new status and the
// stock untouched. The caller sees the error; nothing is rolled back.
func (s *Service) SetStatus(ctx context.Context, saleID string, newStatus Status) error {
	if !ValidStatus(newStatus) {
		return ErrInvalidStatus
	}

	sale, ok := s.cache.Get(saleID)
	if !ok {
		return &NotFoundError{Kind: "sale", ID: saleID}
	}
	prev := sale.Status

	if err := s.store.UpdateByID(ctx, salesCollection, saleID, map[string]any{
		"status": string(newStatus),
	}); err != nil {
		s.logger.Error("failed to update sale status",
			zap.String("sale_id", saleID), zap.Error(err))
		return err
	}

	switch transitionAction(prev, newStatus) {
	case actionDebit:
		release := s.guard.Acquire(productIDs(sale.Items))
		defer release()

		// Verificar stock disponible antes de descontar
		if err := s.checkStock(ctx, sale.Items); err != nil {
			s.logger.Warn("delivery blocked",
				zap.String("sale_id", saleID), zap.Error(err))
			return err
		}
		if err := s.debitStock(ctx, sale.Items); err != nil {
			return err
		}
		s.logger.Info("inventory debited", zap.String("sale_id", saleID))

	case actionCredit:
		release := s.guard.Acquire(productIDs(sale.Items))
		defer release()

		if err := s.creditStock(ctx, sale.Items); err != nil {
			return err
		}
		s.logger.Info("inventory restored", zap.String("sale_id", saleID))
	}

	s.cache.SetStatus(saleID, newStatus, time.Now())
	s.logger.Info("sale status updated",
		zap.String("sale_id", saleID),
		zap.String("from", string(prev)),
		zap.String("to", string(newStatus)))
	return nil
}

// checkStock verifies availability >= quantity for every item before any
// debit is applied, so a shortfall on a later item cannot leave earlier
// items partially debited.
func (s *Service) checkStock(ctx context.Context, items []Item) error {
	for _, item := range items {
		available, err := s.availability(ctx, item)
		if err != nil {
			return err
		}
		if available < item.Quantity {
			return &InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: item.Name,
				Available:   available,
				Required:    item.Quantity,
			}
		}
	}
	return nil
}

// debitStock decrements each item's product stock by its quantity,
// strictly one item at a time.
func (s *Service) debitStock(ctx context.Context, items []Item) error {
	for _, item := range items {
		available, err := s.availability(ctx, item)
		if err != nil {
			return err
		}
		newStock := available - item.Quantity
		if newStock < 0 {
			newStock = 0
		}
		if err := s.writeAvailability(ctx, item, newStock); err != nil {
			return err
		}
	}
	return nil
}

// creditStock restores each item's product stock by its quantity. Restoring
// cannot go negative, so there is no pre-check.
func (s *Service) creditStock(ctx context.Context, items []Item) error {
	for _, item := range items {
		available, err := s.availability(ctx, item)
		if err != nil {
			return err
		}
		if err := s.writeAvailability(ctx, item, available+item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) availability(ctx context.Context, item Item) (int, error) {
	doc, err := s.store.GetByID(ctx, productsCollection, item.ProductID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return 0, &NotFoundError{Kind: "product", ID: item.ProductID, Name: item.Name}
		}
		return 0, err
	}
	return doc.Int("availability"), nil
}

func (s *Service) writeAvailability(ctx context.Context, item Item, stock int) error {
	err := s.store.UpdateByID(ctx, productsCollection, item.ProductID, map[string]any{
		"availability": stock,
	})
	if err != nil {
		s.logger.Error("failed to write product stock",
			zap.String("product_id", item.ProductID), zap.Error(err))
		return err
	}
	return nil
}

func validateNewSale(in NewSale) error {
	if in.Customer.Name == "" {
		return &ValidationError{Reason: "customer name is required"}
	}
	if in.Customer.Phone == "" {
		return &ValidationError{Reason: "customer phone is required"}
	}
	if len(in.Items) == 0 {
		return &ValidationError{Reason: "sale has no items"}
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return &ValidationError{Reason: "item is missing a product id"}
		}
		if item.Quantity <= 0 {
			return &ValidationError{Reason: "item quantity must be greater than zero"}
		}
	}
	if in.Total <= 0 {
		return &ValidationError{Reason: "total must be greater than zero"}
	}
	return nil
}

func productIDs(items []Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func itemsToFields(items []Item) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{
			"productId": item.ProductID,
			"name":      item.Name,
			"quantity":  item.Quantity,
			"unitPrice": item.UnitPrice,
		})
	}
	return out
}

func saleFromDoc(doc docstore.Document) *Sale {
	sale := &Sale{
		ID:        doc.ID,
		Total:     doc.Float("total"),
		Status:    Status(doc.String("status")),
		CreatedAt: doc.Time(docstore.FieldCreatedAt),
		UpdatedAt: doc.Time(docstore.FieldUpdatedAt),
	}
	if customer, ok := doc.Fields["customer"].(map[string]any); ok {
		sale.Customer.Name, _ = customer["name"].(string)
		sale.Customer.Phone, _ = customer["phone"].(string)
	}
	if items, ok := doc.Fields["items"].([]any); ok {
		for _, raw := range items {
			fields, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			item := Item{}
			item.ProductID, _ = fields["productId"].(string)
			item.Name, _ = fields["name"].(string)
			item.Quantity = docstore.Document{Fields: fields}.Int("quantity")
			item.UnitPrice = docstore.Document{Fields: fields}.Float("unitPrice")
			sale.Items = append(sale.Items, item)
		}
	}
	return sale
}
