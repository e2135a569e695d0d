package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

func TestCatalogService_CRUD(t *testing.T) {
	idx := newFakeIndex()
	svc, pub := newCatalogService(t, idx)
	ctx := context.Background()

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	created, err := svc.Create(ctx, models.Product{ID: 99, Name: "Pen", Quantity: 10, MRP: 1.5})
	require.NoError(t, err)
	assert.NotEqual(t, uint(99), created.ID)
	assert.Contains(t, idx.indexed, created.ID)

	changed, err := svc.Update(ctx, created.ID, models.Product{Name: "Pen", Quantity: 0, MRP: 2})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, idx.indexed[created.ID].Quantity)

	items, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Quantity)
	assert.InDelta(t, 2.0, items[0].MRP, 1e-9)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []uint{created.ID}, idx.deleted)

	assert.Equal(t, []string{events.ProductCreated, events.ProductUpdated, events.ProductDeleted}, pub.types())
}

func TestCatalogService_MissingIDIsNoop(t *testing.T) {
	idx := newFakeIndex()
	svc, pub := newCatalogService(t, idx)
	ctx := context.Background()

	changed, err := svc.Update(ctx, 4242, models.Product{Name: "X"})
	require.NoError(t, err)
	assert.False(t, changed)

	deleted, err := svc.Delete(ctx, 4242)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.Empty(t, pub.types())
	assert.Empty(t, idx.deleted)
}

func TestCatalogService_CreateRejectsNegativeQuantity(t *testing.T) {
	svc, pub := newCatalogService(t, nil)

	_, err := svc.Create(context.Background(), models.Product{Name: "Bad", Quantity: -1, MRP: 1})
	require.Error(t, err)
	assert.Empty(t, pub.types())
}

func TestCatalogService_SearchUsesEngine(t *testing.T) {
	idx := newFakeIndex()
	idx.total = 1
	idx.hits = []models.Product{{ID: 7, Name: "Engine Hit"}}
	svc, _ := newCatalogService(t, idx)

	res, err := svc.SearchProducts(context.Background(), " hit ", 2, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Engine Hit", res.Products[0].Name)
	assert.Equal(t, 5, idx.lastFrom)
	assert.Equal(t, 5, idx.lastSize)
}

func TestCatalogService_SearchFallsBackToStore(t *testing.T) {
	idx := newFakeIndex()
	idx.searchErr = errEngineDown
	svc, _ := newCatalogService(t, idx)
	ctx := context.Background()

	for _, name := range []string{"Blue Pen", "Red Pen", "Notebook"} {
		_, err := svc.Create(ctx, models.Product{Name: name, Quantity: 1, MRP: 1})
		require.NoError(t, err)
	}

	res, err := svc.SearchProducts(ctx, "pen", 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
	assert.Len(t, res.Products, 2)
	assert.Equal(t, util.DefaultPageSize, idx.lastSize)
}

func TestCatalogService_SearchWithoutEngine(t *testing.T) {
	svc, _ := newCatalogService(t, nil)

	res, err := svc.SearchProducts(context.Background(), "nothing", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.NotNil(t, res.Products)
	assert.Empty(t, res.Products)
}
