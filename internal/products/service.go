package products

import (
	"context"
	"errors"
	"fmt"

	"agrostore/internal/docstore"
	"agrostore/internal/media"

	"go.uber.org/zap"
)

const collection = "products"

// ErrNotFound is returned when a product with the given ID is not found.
var ErrNotFound = errors.New("product not found")

// ImageStore is the slice of the object store the catalog needs: deleting
// a product also deletes its stored image.
type ImageStore interface {
	Remove(paths []string) error
}

// NewProduct is the input to Create.
type NewProduct struct {
	Name         string
	Category     int
	Price        float64
	Availability int
	Image        string
}

// UpdateProduct holds optional mutation values; nil fields are left as-is.
type UpdateProduct struct {
	Name         *string
	Category     *int
	Price        *float64
	Availability *int
	Image        *string
}

// Service provides catalog CRUD over the document store.
type Service struct {
	store  docstore.Store
	images ImageStore
	logger *zap.Logger
}

// NewService creates a new catalog Service.
func NewService(store docstore.Store, images ImageStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{store: store, images: images, logger: logger}
}

// Create persists a new catalog product and returns its ID.
func (s *Service) Create(ctx context.Context, in NewProduct) (string, error) {
	if in.Name == "" {
		return "", fmt.Errorf("product name is required")
	}
	if !ValidCategory(in.Category) {
		return "", fmt.Errorf("unknown category: %d", in.Category)
	}
	if in.Price <= 0 {
		return "", fmt.Errorf("price must be greater than zero")
	}
	if in.Availability < 0 {
		return "", fmt.Errorf("availability cannot be negative")
	}

	id, err := s.store.Create(ctx, collection, map[string]any{
		"name":         in.Name,
		"category":     in.Category,
		"price":        in.Price,
		"availability": in.Availability,
		"image":        in.Image,
	})
	if err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return "", err
	}

	s.logger.Info("product created", zap.String("product_id", id), zap.String("name", in.Name))
	return id, nil
}

// GetByID fetches one product. Returns ErrNotFound when absent.
func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	doc, err := s.store.GetByID(ctx, collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fromDoc(doc), nil
}

// List returns the whole catalog ordered by availability ascending, so the
// products closest to running out come first.
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	docs, err := s.store.Query(ctx, collection, "availability", false, 0)
	if err != nil {
		s.logger.Error("failed to list products", zap.Error(err))
		return nil, err
	}
	out := make([]*Product, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDoc(doc))
	}
	return out, nil
}

// Filter keeps only in-stock products, optionally narrowed to a category.
// Category 0 means all categories.
func Filter(list []*Product, category int) []*Product {
	out := make([]*Product, 0, len(list))
	for _, p := range list {
		if !p.InStock() {
			continue
		}
		if category != 0 && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Update merges the given fields into an existing product.
func (s *Service) Update(ctx context.Context, id string, in UpdateProduct) error {
	fields := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return fmt.Errorf("product name is required")
		}
		fields["name"] = *in.Name
	}
	if in.Category != nil {
		if !ValidCategory(*in.Category) {
			return fmt.Errorf("unknown category: %d", *in.Category)
		}
		fields["category"] = *in.Category
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return fmt.Errorf("price must be greater than zero")
		}
		fields["price"] = *in.Price
	}
	if in.Availability != nil {
		if *in.Availability < 0 {
			return fmt.Errorf("availability cannot be negative")
		}
		fields["availability"] = *in.Availability
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.store.UpdateByID(ctx, collection, id, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a product and, when the product carries an image URL, the
// stored image behind it. A storage failure on the image is logged and
// tolerated; the catalog document is removed regardless.
func (s *Service) Delete(ctx context.Context, id string) error {
	doc, err := s.store.GetByID(ctx, collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if image := doc.String("image"); image != "" && s.images != nil {
		if path := media.PathFromURL(image); path != "" {
			if err := s.images.Remove([]string{path}); err != nil {
				s.logger.Warn("failed to remove product image",
					zap.String("product_id", id), zap.Error(err))
			}
		}
	}

	if err := s.store.DeleteByID(ctx, collection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

func fromDoc(doc docstore.Document) *Product {
	return &Product{
		ID:           doc.ID,
		Name:         doc.String("name"),
		Category:     doc.Int("category"),
		Price:        doc.Float("price"),
		Availability: doc.Int("availability"),
		Image:        doc.String("image"),
		CreatedAt:    doc.Time(docstore.FieldCreatedAt),
		UpdatedAt:    doc.Time(docstore.FieldUpdatedAt),
	}
}
