package products

import (
	"context"
	"testing"

	"agrostore/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// recordingImages captures Remove calls without touching any real storage.
type recordingImages struct {
	removed []string
	err     error
}

func (r *recordingImages) Remove(paths []string) error {
	r.removed = append(r.removed, paths...)
	return r.err
}

func newTestCatalog(t *testing.T) (*Service, *docstore.MemoryStore, *recordingImages) {
	t.Helper()
	store := docstore.NewMemoryStore()
	images := &recordingImages{}
	return NewService(store, images, zaptest.NewLogger(t)), store, images
}

func TestCreateAndGet(t *testing.T) {
	svc, _, _ := newTestCatalog(t)

	id, err := svc.Create(context.Background(), NewProduct{
		Name:         "Urea Granulada",
		Category:     1,
		Price:        1500,
		Availability: 20,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Urea Granulada", got.Name)
	assert.Equal(t, 20, got.Availability)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestCatalog(t)

	cases := []struct {
		name string
		in   NewProduct
	}{
		{"empty name", NewProduct{Category: 1, Price: 10, Availability: 1}},
		{"unknown category", NewProduct{Name: "x", Category: 9, Price: 10}},
		{"all category not assignable", NewProduct{Name: "x", Category: 0, Price: 10}},
		{"zero price", NewProduct{Name: "x", Category: 1}},
		{"negative availability", NewProduct{Name: "x", Category: 1, Price: 10, Availability: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			assert.Error(t, err)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_OrderedByAvailability(t *testing.T) {
	svc, _, _ := newTestCatalog(t)

	for _, p := range []NewProduct{
		{Name: "abundante", Category: 1, Price: 10, Availability: 50},
		{Name: "por agotarse", Category: 2, Price: 10, Availability: 1},
		{Name: "medio", Category: 1, Price: 10, Availability: 10},
	} {
		_, err := svc.Create(context.Background(), p)
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "por agotarse", list[0].Name, "lowest stock first")
	assert.Equal(t, "abundante", list[2].Name)
}

func TestFilter(t *testing.T) {
	list := []*Product{
		{Name: "a", Category: 1, Availability: 5},
		{Name: "b", Category: 2, Availability: 3},
		{Name: "agotado", Category: 1, Availability: 0},
	}

	all := Filter(list, 0)
	require.Len(t, all, 2, "out-of-stock products are hidden")

	fert := Filter(list, 1)
	require.Len(t, fert, 1)
	assert.Equal(t, "a", fert[0].Name)
}

func TestUpdate_MergesFields(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	id, err := svc.Create(context.Background(), NewProduct{
		Name: "Urea", Category: 1, Price: 1500, Availability: 20,
	})
	require.NoError(t, err)

	price := 1800.0
	require.NoError(t, svc.Update(context.Background(), id, UpdateProduct{Price: &price}))

	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1800.0, got.Price)
	assert.Equal(t, "Urea", got.Name, "unset fields stay as they were")
	assert.Equal(t, 20, got.Availability)
}

func TestUpdate_Validation(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	id, err := svc.Create(context.Background(), NewProduct{
		Name: "Urea", Category: 1, Price: 1500, Availability: 20,
	})
	require.NoError(t, err)

	empty := ""
	assert.Error(t, svc.Update(context.Background(), id, UpdateProduct{Name: &empty}))

	bad := 42
	assert.Error(t, svc.Update(context.Background(), id, UpdateProduct{Category: &bad}))

	assert.ErrorIs(t,
		svc.Update(context.Background(), "missing", UpdateProduct{Price: &[]float64{10}[0]}),
		ErrNotFound)
}

func TestDelete_RemovesStoredImage(t *testing.T) {
	svc, store, images := newTestCatalog(t)
	id, err := svc.Create(context.Background(), NewProduct{
		Name:         "Urea",
		Category:     1,
		Price:        1500,
		Availability: 20,
		Image:        "http://localhost:8081/storage/v1/object/public/product-images/products/abc.png",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))

	assert.Equal(t, []string{"products/abc.png"}, images.removed)
	_, err = store.GetByID(context.Background(), "products", id)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDelete_ToleratesImageStoreFailure(t *testing.T) {
	svc, store, images := newTestCatalog(t)
	images.err = assert.AnError

	id, err := svc.Create(context.Background(), NewProduct{
		Name:         "Urea",
		Category:     1,
		Price:        1500,
		Availability: 20,
		Image:        "http://localhost:8081/storage/v1/object/public/product-images/products/abc.png",
	})
	require.NoError(t, err)

	// El documento se elimina aunque falle el borrado de la imagen
	require.NoError(t, svc.Delete(context.Background(), id))
	_, err = store.GetByID(context.Background(), "products", id)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrNotFound)
}
