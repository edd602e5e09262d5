package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nutrilog/domain"
	"nutrilog/entities"
	"nutrilog/pkg/gemini"
	"nutrilog/pkg/nutrition"
)

type stubCatalogRepository struct {
	items map[string]*entities.CatalogItem
}

func newStubCatalogRepository() *stubCatalogRepository {
	return &stubCatalogRepository{items: make(map[string]*entities.CatalogItem)}
}

func (r *stubCatalogRepository) AddItem(_ context.Context, item *entities.CatalogItem) error {
	copied := *item
	r.items[item.ID.String()] = &copied
	return nil
}

func (r *stubCatalogRepository) GetItemByID(_ context.Context, id string) (*entities.CatalogItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *stubCatalogRepository) GetItemsByIDs(_ context.Context, ids []string) ([]*entities.CatalogItem, error) {
	var out []*entities.CatalogItem
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *stubCatalogRepository) UpdateItem(_ context.Context, item *entities.CatalogItem) error {
	if _, ok := r.items[item.ID.String()]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *item
	r.items[item.ID.String()] = &copied
	return nil
}

func (r *stubCatalogRepository) DeleteItem(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *stubCatalogRepository) SearchItems(_ context.Context, userID string, _ string, _, _ int) ([]*entities.CatalogItem, int64, error) {
	var out []*entities.CatalogItem
	for _, item := range r.items {
		if item.UserID.String() == userID {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

type stubEstimator struct {
	vector nutrition.Vector
	err    error
	called bool
}

func (s *stubEstimator) DecomposeRecipe(_ context.Context, _, _ string) ([]gemini.Ingredient, error) {
	return nil, errors.New("not used")
}

func (s *stubEstimator) EstimateNutrients(_ context.Context, _ gemini.EstimateRequest) (nutrition.Vector, error) {
	s.called = true
	return s.vector, s.err
}

func fptr(f float64) *float64 { return &f }

func TestAddItemManualEntry(t *testing.T) {
	repo := newStubCatalogRepository()
	service := NewCatalogService(repo, &stubEstimator{}, nil)

	res, err := service.AddItem(context.Background(), domain.AddCatalogItemRequest{
		Name:        "rolled oats",
		ServingQty:  40,
		ServingUnit: "g",
		Nutrients: domain.NutrientValues{
			Protein: fptr(5.4),
			Carbs:   fptr(23),
			Fibers:  fptr(4),
			Fat:     fptr(2.8),
		},
	}, uuid.NewString())
	require.NoError(t, err)

	// 5.4*3 + 19*3.7 + 4*2 + 2.8*9 = 119.7 -> 120
	assert.Equal(t, 120, res.Kcal)
	assert.Equal(t, 5.4, *res.Nutrients.Protein)
	// Untouched nutrients stay absent rather than zero.
	assert.Nil(t, res.Nutrients.Sugar)
}

func TestAddItemValidation(t *testing.T) {
	service := NewCatalogService(newStubCatalogRepository(), &stubEstimator{}, nil)
	userID := uuid.NewString()

	_, err := service.AddItem(context.Background(), domain.AddCatalogItemRequest{
		Name:        "bad",
		ServingQty:  0,
		ServingUnit: "g",
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidServingQty)

	_, err = service.AddItem(context.Background(), domain.AddCatalogItemRequest{
		Name:        "bad",
		ServingQty:  1,
		ServingUnit: "bucket",
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidServingUnit)
}

func TestAddItemWithEstimate(t *testing.T) {
	repo := newStubCatalogRepository()
	ai := &stubEstimator{vector: nutrition.Vector{Protein: 31, Fat: 4, Carbs: 0}}
	service := NewCatalogService(repo, ai, nil)

	res, err := service.AddItem(context.Background(), domain.AddCatalogItemRequest{
		Name:        "grilled chicken breast",
		ServingQty:  100,
		ServingUnit: "g",
		Estimate:    true,
	}, uuid.NewString())
	require.NoError(t, err)

	assert.True(t, ai.called)
	assert.Equal(t, 31.0, *res.Nutrients.Protein)
	assert.Equal(t, 129, res.Kcal)
}

func TestAddItemEstimateFailure(t *testing.T) {
	repo := newStubCatalogRepository()
	ai := &stubEstimator{err: errors.New("model returned malformed response")}
	service := NewCatalogService(repo, ai, nil)

	_, err := service.AddItem(context.Background(), domain.AddCatalogItemRequest{
		Name:        "mystery stew",
		ServingQty:  1,
		ServingUnit: "portion",
		Estimate:    true,
	}, uuid.NewString())
	assert.Error(t, err)
	assert.Empty(t, repo.items)
}

func TestUpdateItemPartial(t *testing.T) {
	repo := newStubCatalogRepository()
	service := NewCatalogService(repo, &stubEstimator{}, nil)
	userID := uuid.NewString()

	created, err := service.AddItem(context.Background(), domain.AddCatalogItemRequest{
		Name:        "yogurt",
		ServingQty:  150,
		ServingUnit: "g",
		Nutrients:   domain.NutrientValues{Protein: fptr(15), Fat: fptr(0.5)},
	}, userID)
	require.NoError(t, err)

	err = service.UpdateItem(context.Background(), created.ID, domain.UpdateCatalogItemRequest{
		Nutrients: domain.NutrientValues{Sugar: fptr(6)},
	}, userID)
	require.NoError(t, err)

	updated, err := service.GetItemByID(context.Background(), created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, *updated.Nutrients.Protein)
	assert.Equal(t, 6.0, *updated.Nutrients.Sugar)
	assert.Equal(t, "yogurt", updated.Name)
}

func TestUpdateItemForeignUser(t *testing.T) {
	repo := newStubCatalogRepository()
	service := NewCatalogService(repo, &stubEstimator{}, nil)

	created, err := service.AddItem(context.Background(), domain.AddCatalogItemRequest{
		Name:        "yogurt",
		ServingQty:  150,
		ServingUnit: "g",
		Nutrients:   domain.NutrientValues{Protein: fptr(15)},
	}, uuid.NewString())
	require.NoError(t, err)

	err = service.UpdateItem(context.Background(), created.ID, domain.UpdateCatalogItemRequest{
		Name: strptr("stolen"),
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestDeleteItemKeepsNoGhostRecord(t *testing.T) {
	repo := newStubCatalogRepository()
	service := NewCatalogService(repo, &stubEstimator{}, nil)
	userID := uuid.NewString()

	created, err := service.AddItem(context.Background(), domain.AddCatalogItemRequest{
		Name:        "leftovers",
		ServingQty:  1,
		ServingUnit: "portion",
		Nutrients:   domain.NutrientValues{Protein: fptr(10)},
	}, userID)
	require.NoError(t, err)

	require.NoError(t, service.DeleteItem(context.Background(), created.ID, userID))

	_, err = service.GetItemByID(context.Background(), created.ID, userID)
	assert.ErrorIs(t, err, domain.ErrCatalogItemNotFound)
}

func strptr(s string) *string { return &s }
