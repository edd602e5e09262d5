package recipe

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nutrilog/domain"
	"nutrilog/entities"
	"nutrilog/pkg/gemini"
	"nutrilog/pkg/nutrition"
)

type fakeRecipeRepository struct {
	mu     sync.Mutex
	drafts map[string]*entities.RecipeDraft
	items  *fakeCatalogRepository
}

func newFakeRecipeRepository(items *fakeCatalogRepository) *fakeRecipeRepository {
	return &fakeRecipeRepository{
		drafts: make(map[string]*entities.RecipeDraft),
		items:  items,
	}
}

func (r *fakeRecipeRepository) CreateDraft(_ context.Context, draft *entities.RecipeDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *draft
	copied.Ingredients = append([]entities.DraftIngredient(nil), draft.Ingredients...)
	r.drafts[draft.ID.String()] = &copied
	return nil
}

func (r *fakeRecipeRepository) GetDraftByID(_ context.Context, id string) (*entities.RecipeDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *draft
	copied.Ingredients = append([]entities.DraftIngredient(nil), draft.Ingredients...)
	for i := range copied.Ingredients {
		ing := &copied.Ingredients[i]
		if ing.CatalogItemID != nil {
			ing.CatalogItem = r.items.get(ing.CatalogItemID.String())
		}
	}
	return &copied, nil
}

func (r *fakeRecipeRepository) UpdateDraft(_ context.Context, draft *entities.RecipeDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.drafts[draft.ID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Name = draft.Name
	stored.Status = draft.Status
	return nil
}

func (r *fakeRecipeRepository) GetIngredientByID(_ context.Context, id string) (*entities.DraftIngredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, draft := range r.drafts {
		for i := range draft.Ingredients {
			if draft.Ingredients[i].ID.String() == id {
				copied := draft.Ingredients[i]
				return &copied, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRecipeRepository) UpdateIngredient(_ context.Context, ingredient *entities.DraftIngredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[ingredient.DraftID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range draft.Ingredients {
		if draft.Ingredients[i].ID == ingredient.ID {
			draft.Ingredients[i] = *ingredient
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRecipeRepository) DeleteIngredient(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, draft := range r.drafts {
		for i := range draft.Ingredients {
			if draft.Ingredients[i].ID.String() == id {
				draft.Ingredients = append(draft.Ingredients[:i], draft.Ingredients[i+1:]...)
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeCatalogRepository struct {
	mu    sync.Mutex
	items map[string]*entities.CatalogItem
}

func newFakeCatalogRepository() *fakeCatalogRepository {
	return &fakeCatalogRepository{items: make(map[string]*entities.CatalogItem)}
}

func (r *fakeCatalogRepository) get(id string) *entities.CatalogItem {
	item, ok := r.items[id]
	if !ok {
		return nil
	}
	copied := *item
	return &copied
}

func (r *fakeCatalogRepository) AddItem(_ context.Context, item *entities.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ID.String()] = &copied
	return nil
}

func (r *fakeCatalogRepository) GetItemByID(_ context.Context, id string) (*entities.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.get(id)
	if item == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakeCatalogRepository) GetItemsByIDs(_ context.Context, ids []string) ([]*entities.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.CatalogItem
	for _, id := range ids {
		if item := r.get(id); item != nil {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepository) UpdateItem(_ context.Context, item *entities.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ID.String()] = &copied
	return nil
}

func (r *fakeCatalogRepository) DeleteItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeCatalogRepository) SearchItems(_ context.Context, userID string, _ string, _, _ int) ([]*entities.CatalogItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.CatalogItem
	for id, item := range r.items {
		if item.UserID.String() == userID {
			out = append(out, r.get(id))
		}
	}
	return out, int64(len(out)), nil
}

type fakeDiaryRepository struct {
	entries []*entities.LogEntry
}

func (r *fakeDiaryRepository) AddEntry(_ context.Context, entry *entities.LogEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeDiaryRepository) GetEntryByID(_ context.Context, id string) (*entities.LogEntry, error) {
	for _, entry := range r.entries {
		if entry.ID.String() == id {
			return entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDiaryRepository) GetEntriesByIDs(_ context.Context, userID string, ids []string) ([]*entities.LogEntry, error) {
	var out []*entities.LogEntry
	for _, id := range ids {
		for _, entry := range r.entries {
			if entry.ID.String() == id && entry.UserID.String() == userID {
				out = append(out, entry)
			}
		}
	}
	return out, nil
}

func (r *fakeDiaryRepository) GetEntriesByRange(_ context.Context, userID string, from, to time.Time) ([]*entities.LogEntry, error) {
	var out []*entities.LogEntry
	for _, entry := range r.entries {
		if entry.UserID.String() == userID && !entry.LoggedAt.Before(from) && entry.LoggedAt.Before(to) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeDiaryRepository) UpdateEntry(_ context.Context, _ *entities.LogEntry) error {
	return nil
}

func (r *fakeDiaryRepository) DeleteEntry(_ context.Context, _ string) error {
	return nil
}

// fakeAI decomposes into a fixed ingredient list and estimates a fixed
// vector per ingredient name. Names in failing report a resolution error.
type fakeAI struct {
	mu          sync.Mutex
	ingredients []gemini.Ingredient
	vectors     map[string]nutrition.Vector
	failing     map[string]bool
}

func (f *fakeAI) DecomposeRecipe(_ context.Context, _, _ string) ([]gemini.Ingredient, error) {
	return f.ingredients, nil
}

func (f *fakeAI) EstimateNutrients(_ context.Context, req gemini.EstimateRequest) (nutrition.Vector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[req.Name] {
		return nutrition.Vector{}, errors.New("model returned malformed response")
	}
	return f.vectors[req.Name], nil
}

func newDraftFixture(t *testing.T) (RecipeService, *fakeAI, *fakeCatalogRepository, string) {
	t.Helper()

	ai := &fakeAI{
		ingredients: []gemini.Ingredient{
			{Name: "chicken breast", Quantity: 300, Unit: "g"},
			{Name: "coconut milk", Quantity: 2, Unit: "dl"},
			{Name: "red curry paste", Quantity: 40, Unit: "g"},
			{Name: "jasmine rice", Quantity: 150, Unit: "g"},
			{Name: "bell pepper", Quantity: 1, Unit: "pcs"},
		},
		vectors: map[string]nutrition.Vector{
			"chicken breast":  {Protein: 69, Fat: 8},
			"coconut milk":    {Fat: 34, Carbs: 6},
			"red curry paste": {Carbs: 8, Fat: 3},
			"jasmine rice":    {Carbs: 118, Protein: 10, Fibers: 2},
			"bell pepper":     {Carbs: 5, Fibers: 2, Sugar: 4},
		},
		failing: map[string]bool{},
	}

	catalogRepo := newFakeCatalogRepository()
	service := NewRecipeService(
		newFakeRecipeRepository(catalogRepo),
		catalogRepo,
		&fakeDiaryRepository{},
		ai,
	)
	return service, ai, catalogRepo, uuid.NewString()
}

func TestCreateDraftResolvesEveryIngredientIndependently(t *testing.T) {
	service, ai, catalogRepo, userID := newDraftFixture(t)
	ai.failing["red curry paste"] = true

	draft, err := service.CreateDraft(context.Background(), domain.CreateDraftRequest{Name: "thai red curry"}, userID)
	require.NoError(t, err)
	require.Len(t, draft.Ingredients, 5)

	byName := map[string]domain.DraftIngredientResponse{}
	for _, ing := range draft.Ingredients {
		byName[ing.Name] = ing
	}

	for _, name := range []string{"chicken breast", "coconut milk", "jasmine rice", "bell pepper"} {
		assert.Equal(t, entities.IngredientStatusDone, byName[name].Status, name)
		assert.NotEmpty(t, byName[name].CatalogItemID, name)
		assert.Empty(t, byName[name].ErrorMessage, name)
	}

	failed := byName["red curry paste"]
	assert.Equal(t, entities.IngredientStatusError, failed.Status)
	assert.Empty(t, failed.CatalogItemID)
	assert.Contains(t, failed.ErrorMessage, "malformed")

	// The four successes persisted catalog items despite the failure.
	assert.Len(t, catalogRepo.items, 4)
	assert.False(t, draft.CanCreateRecipe)
}

func TestFinalizeDraftRejectedWhileIngredientFailed(t *testing.T) {
	service, ai, _, userID := newDraftFixture(t)
	ai.failing["red curry paste"] = true

	draft, err := service.CreateDraft(context.Background(), domain.CreateDraftRequest{Name: "thai red curry"}, userID)
	require.NoError(t, err)

	_, err = service.FinalizeDraft(context.Background(), draft.ID, domain.FinalizeDraftRequest{}, userID)
	assert.ErrorIs(t, err, domain.ErrDraftNotReady)
}

func TestRetryIngredientThenFinalize(t *testing.T) {
	service, ai, _, userID := newDraftFixture(t)
	ai.failing["red curry paste"] = true

	draft, err := service.CreateDraft(context.Background(), domain.CreateDraftRequest{Name: "thai red curry"}, userID)
	require.NoError(t, err)

	var failedID string
	for _, ing := range draft.Ingredients {
		if ing.Status == entities.IngredientStatusError {
			failedID = ing.ID
		}
	}
	require.NotEmpty(t, failedID)

	ai.mu.Lock()
	ai.failing["red curry paste"] = false
	ai.mu.Unlock()

	retried, err := service.RetryIngredient(context.Background(), draft.ID, failedID, userID)
	require.NoError(t, err)
	assert.True(t, retried.CanCreateRecipe)
	for _, ing := range retried.Ingredients {
		assert.Equal(t, entities.IngredientStatusDone, ing.Status)
	}

	item, err := service.FinalizeDraft(context.Background(), draft.ID, domain.FinalizeDraftRequest{}, userID)
	require.NoError(t, err)

	assert.Equal(t, "thai red curry", item.Name)
	assert.Equal(t, float64(1), item.ServingQty)
	assert.Equal(t, "recipe serving", item.ServingUnit)
	assert.True(t, strings.Contains(item.Comment, "Derived from:"))

	// Sum over the five fixture vectors, multiplier 1 each.
	assert.InDelta(t, 79.0, *item.Nutrients.Protein, 1e-9)
	assert.InDelta(t, 45.0, *item.Nutrients.Fat, 1e-9)
	assert.InDelta(t, 137.0, *item.Nutrients.Carbs, 1e-9)
	assert.InDelta(t, 4.0, *item.Nutrients.Fibers, 1e-9)

	_, err = service.FinalizeDraft(context.Background(), draft.ID, domain.FinalizeDraftRequest{}, userID)
	assert.ErrorIs(t, err, domain.ErrDraftAlreadyFinalized)
}

func TestRetryIngredientRejectsResolvedIngredient(t *testing.T) {
	service, _, _, userID := newDraftFixture(t)

	draft, err := service.CreateDraft(context.Background(), domain.CreateDraftRequest{Name: "thai red curry"}, userID)
	require.NoError(t, err)
	require.True(t, draft.CanCreateRecipe)

	_, err = service.RetryIngredient(context.Background(), draft.ID, draft.Ingredients[0].ID, userID)
	assert.ErrorIs(t, err, domain.ErrIngredientNotRetryable)
}

func TestDeleteIngredientUnblocksFinalize(t *testing.T) {
	service, ai, _, userID := newDraftFixture(t)
	ai.failing["red curry paste"] = true

	draft, err := service.CreateDraft(context.Background(), domain.CreateDraftRequest{Name: "thai red curry"}, userID)
	require.NoError(t, err)

	var failedID string
	for _, ing := range draft.Ingredients {
		if ing.Status == entities.IngredientStatusError {
			failedID = ing.ID
		}
	}

	require.NoError(t, service.DeleteIngredient(context.Background(), draft.ID, failedID, userID))

	item, err := service.FinalizeDraft(context.Background(), draft.ID, domain.FinalizeDraftRequest{}, userID)
	require.NoError(t, err)
	assert.InDelta(t, 129.0, *item.Nutrients.Carbs, 1e-9)
}

func TestGetDraftRejectsForeignUser(t *testing.T) {
	service, _, _, userID := newDraftFixture(t)

	draft, err := service.CreateDraft(context.Background(), domain.CreateDraftRequest{Name: "thai red curry"}, userID)
	require.NoError(t, err)

	_, err = service.GetDraft(context.Background(), draft.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestCreateFromSelectionSkipsUnresolvedEntries(t *testing.T) {
	userUUID := uuid.New()
	catalogRepo := newFakeCatalogRepository()

	oats := &entities.CatalogItem{ID: uuid.New(), UserID: userUUID, Name: "oats", ServingQty: 40, ServingUnit: "g"}
	oats.SetVector(nutrition.Vector{Protein: 5, Carbs: 24, Fibers: 4, Fat: 3})
	milk := &entities.CatalogItem{ID: uuid.New(), UserID: userUUID, Name: "milk", ServingQty: 2, ServingUnit: "dl"}
	milk.SetVector(nutrition.Vector{Protein: 7, Carbs: 10, Fat: 7})
	require.NoError(t, catalogRepo.AddItem(context.Background(), oats))
	require.NoError(t, catalogRepo.AddItem(context.Background(), milk))

	diaryRepo := &fakeDiaryRepository{}
	resolved1 := &entities.LogEntry{ID: uuid.New(), UserID: userUUID, CatalogItemID: oats.ID, Multiplier: 2, CatalogItem: oats}
	resolved2 := &entities.LogEntry{ID: uuid.New(), UserID: userUUID, CatalogItemID: milk.ID, Multiplier: 1, CatalogItem: milk}
	orphan := &entities.LogEntry{ID: uuid.New(), UserID: userUUID, CatalogItemID: uuid.New(), Multiplier: 3}
	diaryRepo.entries = []*entities.LogEntry{resolved1, resolved2, orphan}

	service := NewRecipeService(newFakeRecipeRepository(catalogRepo), catalogRepo, diaryRepo, &fakeAI{})

	item, err := service.CreateFromSelection(context.Background(), domain.CreateRecipeFromSelectionRequest{
		Name:        "overnight oats",
		LogEntryIDs: []string{resolved1.ID.String(), resolved2.ID.String(), orphan.ID.String()},
	}, userUUID.String())
	require.NoError(t, err)

	// 2 x oats + 1 x milk; the orphan contributes nothing.
	assert.InDelta(t, 17.0, *item.Nutrients.Protein, 1e-9)
	assert.InDelta(t, 58.0, *item.Nutrients.Carbs, 1e-9)
	assert.InDelta(t, 13.0, *item.Nutrients.Fat, 1e-9)
	assert.Equal(t, "recipe serving", item.ServingUnit)
}

func TestCreateFromSelectionEmpty(t *testing.T) {
	catalogRepo := newFakeCatalogRepository()
	service := NewRecipeService(newFakeRecipeRepository(catalogRepo), catalogRepo, &fakeDiaryRepository{}, &fakeAI{})

	_, err := service.CreateFromSelection(context.Background(), domain.CreateRecipeFromSelectionRequest{
		Name:        "nothing",
		LogEntryIDs: []string{uuid.NewString()},
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
}
