package service

import (
	"context"
	"testing"

	"warehouse-backend/internal/model"
	"warehouse-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (CatalogService, *fakeActivityRepo) {
	activityRepo := &fakeActivityRepo{}
	svc := NewCatalogService(newFakeWarehouseRepo(), newFakeCategoryRepo(), activityRepo, fakeTxManager{})
	return svc, activityRepo
}

func TestCreateWarehouse(t *testing.T) {
	svc, activityRepo := newCatalogFixture()

	w, err := svc.CreateWarehouse(context.Background(), "", CreateWarehouseRequest{
		Code:     "WH-NEW",
		Name:     "New Warehouse",
		Location: "Cairo",
		Capacity: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, model.WarehouseActive, w.Status, "status defaults to active")
	assert.Len(t, activityRepo.entries, 1)
	assert.Equal(t, model.ActionCreateWarehouse, activityRepo.entries[0].Action)

	_, err = svc.CreateWarehouse(context.Background(), "", CreateWarehouseRequest{
		Code: "WH-NEW", Name: "Duplicate",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	listed, err := svc.ListWarehouses(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateCategory(t *testing.T) {
	svc, activityRepo := newCatalogFixture()

	c, err := svc.CreateCategory(context.Background(), "", CreateCategoryRequest{
		Name:        "Electronics",
		Description: "Devices and accessories",
	})
	require.NoError(t, err)
	assert.Equal(t, "Electronics", c.Name)
	assert.Len(t, activityRepo.entries, 1)
	assert.Equal(t, model.ActionCreateCategory, activityRepo.entries[0].Action)

	_, err = svc.CreateCategory(context.Background(), "", CreateCategoryRequest{Name: "Electronics"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}
