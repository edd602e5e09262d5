package diary

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nutrilog/domain"
	"nutrilog/entities"
	"nutrilog/pkg/nutrition"
)

type stubDiaryRepository struct {
	entries map[string]*entities.LogEntry
	items   map[string]*entities.CatalogItem
}

func newStubDiaryRepository() *stubDiaryRepository {
	return &stubDiaryRepository{
		entries: make(map[string]*entities.LogEntry),
		items:   make(map[string]*entities.CatalogItem),
	}
}

func (r *stubDiaryRepository) attach(entry *entities.LogEntry) *entities.LogEntry {
	copied := *entry
	copied.CatalogItem = r.items[entry.CatalogItemID.String()]
	return &copied
}

func (r *stubDiaryRepository) AddEntry(_ context.Context, entry *entities.LogEntry) error {
	copied := *entry
	r.entries[entry.ID.String()] = &copied
	return nil
}

func (r *stubDiaryRepository) GetEntryByID(_ context.Context, id string) (*entities.LogEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.attach(entry), nil
}

func (r *stubDiaryRepository) GetEntriesByIDs(_ context.Context, userID string, ids []string) ([]*entities.LogEntry, error) {
	var out []*entities.LogEntry
	for _, id := range ids {
		if entry, ok := r.entries[id]; ok && entry.UserID.String() == userID {
			out = append(out, r.attach(entry))
		}
	}
	return out, nil
}

func (r *stubDiaryRepository) GetEntriesByRange(_ context.Context, userID string, from, to time.Time) ([]*entities.LogEntry, error) {
	var out []*entities.LogEntry
	for _, entry := range r.entries {
		if entry.UserID.String() == userID && !entry.LoggedAt.Before(from) && entry.LoggedAt.Before(to) {
			out = append(out, r.attach(entry))
		}
	}
	return out, nil
}

func (r *stubDiaryRepository) UpdateEntry(_ context.Context, entry *entities.LogEntry) error {
	copied := *entry
	copied.CatalogItem = nil
	r.entries[entry.ID.String()] = &copied
	return nil
}

func (r *stubDiaryRepository) DeleteEntry(_ context.Context, id string) error {
	delete(r.entries, id)
	return nil
}

func (r *stubDiaryRepository) addItem(userID uuid.UUID, name string, v nutrition.Vector) *entities.CatalogItem {
	item := &entities.CatalogItem{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		ServingQty:  100,
		ServingUnit: "g",
	}
	item.SetVector(v)
	r.items[item.ID.String()] = item
	return item
}

func TestAddEntryRejectsInvalidMultiplier(t *testing.T) {
	service := NewDiaryService(newStubDiaryRepository())
	userID := uuid.NewString()

	for _, m := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := service.AddEntry(context.Background(), domain.AddLogEntryRequest{
			CatalogItemID: uuid.NewString(),
			Multiplier:    m,
		}, userID)
		assert.ErrorIs(t, err, domain.ErrInvalidMultiplier)
	}
}

func TestGetDaySkipsUnresolvedEntries(t *testing.T) {
	repo := newStubDiaryRepository()
	userUUID := uuid.New()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	egg := repo.addItem(userUUID, "egg", nutrition.Vector{Protein: 12, Fat: 10})
	bread := repo.addItem(userUUID, "bread", nutrition.Vector{Carbs: 40, Fibers: 4, Protein: 8})

	for i, row := range []struct {
		item       uuid.UUID
		multiplier float64
	}{
		{egg.ID, 1},
		{bread.ID, 0.5},
		{uuid.New(), 2}, // item deleted since logging
	} {
		require.NoError(t, repo.AddEntry(context.Background(), &entities.LogEntry{
			ID:            uuid.New(),
			UserID:        userUUID,
			CatalogItemID: row.item,
			Multiplier:    row.multiplier,
			LoggedAt:      day.Add(time.Duration(8+i) * time.Hour),
		}))
	}

	service := NewDiaryService(repo)
	res, err := service.GetDay(context.Background(), "2026-03-14", userUUID.String())
	require.NoError(t, err)

	require.Len(t, res.Entries, 3)
	assert.Equal(t, 2, res.Summary.Count)
	assert.InDelta(t, 16.0, *res.Summary.Totals.Protein, 1e-9)
	assert.InDelta(t, 20.0, *res.Summary.Totals.Carbs, 1e-9)
	assert.InDelta(t, 2.0, *res.Summary.Totals.Fibers, 1e-9)

	unresolved := 0
	for _, entry := range res.Entries {
		if !entry.Resolved {
			unresolved++
			assert.Nil(t, entry.Contribution)
			assert.Zero(t, entry.Kcal)
		}
	}
	assert.Equal(t, 1, unresolved)
}

func TestGetDayRejectsMalformedDate(t *testing.T) {
	service := NewDiaryService(newStubDiaryRepository())

	_, err := service.GetDay(context.Background(), "14-03-2026", uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestCopyEntryRefreshesTimestamp(t *testing.T) {
	repo := newStubDiaryRepository()
	userUUID := uuid.New()
	egg := repo.addItem(userUUID, "egg", nutrition.Vector{Protein: 12, Fat: 10})

	original := &entities.LogEntry{
		ID:            uuid.New(),
		UserID:        userUUID,
		CatalogItemID: egg.ID,
		Multiplier:    2,
		LoggedAt:      time.Now().AddDate(0, 0, -3),
	}
	require.NoError(t, repo.AddEntry(context.Background(), original))

	service := NewDiaryService(repo)
	copied, err := service.CopyEntry(context.Background(), original.ID.String(), userUUID.String())
	require.NoError(t, err)

	assert.NotEqual(t, original.ID.String(), copied.ID)
	assert.Equal(t, original.CatalogItemID.String(), copied.CatalogItemID)
	assert.Equal(t, original.Multiplier, copied.Multiplier)
	assert.WithinDuration(t, time.Now(), copied.LoggedAt, time.Minute)
}

func TestCopyEntryForeignUser(t *testing.T) {
	repo := newStubDiaryRepository()
	userUUID := uuid.New()
	egg := repo.addItem(userUUID, "egg", nutrition.Vector{Protein: 12})

	entry := &entities.LogEntry{ID: uuid.New(), UserID: userUUID, CatalogItemID: egg.ID, Multiplier: 1, LoggedAt: time.Now()}
	require.NoError(t, repo.AddEntry(context.Background(), entry))

	service := NewDiaryService(repo)
	_, err := service.CopyEntry(context.Background(), entry.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestGetSummaryRangeBucketsByDay(t *testing.T) {
	repo := newStubDiaryRepository()
	userUUID := uuid.New()
	egg := repo.addItem(userUUID, "egg", nutrition.Vector{Protein: 12, Fat: 10})

	monday := time.Date(2026, 3, 9, 12, 0, 0, 0, time.Local)
	wednesday := time.Date(2026, 3, 11, 18, 0, 0, 0, time.Local)
	for _, at := range []time.Time{monday, monday.Add(time.Hour), wednesday} {
		require.NoError(t, repo.AddEntry(context.Background(), &entities.LogEntry{
			ID:            uuid.New(),
			UserID:        userUUID,
			CatalogItemID: egg.ID,
			Multiplier:    1,
			LoggedAt:      at,
		}))
	}

	service := NewDiaryService(repo)
	summaries, err := service.GetSummaryRange(context.Background(), "2026-03-09", "2026-03-13", userUUID.String())
	require.NoError(t, err)

	// Empty days are omitted, not zero-filled.
	require.Len(t, summaries, 2)
	assert.Equal(t, "2026-03-09", summaries[0].Date)
	assert.Equal(t, 2, summaries[0].Count)
	assert.Equal(t, "2026-03-11", summaries[1].Date)
	assert.Equal(t, 1, summaries[1].Count)
}

func TestSummaryKcalDerivation(t *testing.T) {
	// protein 10, carbs 15, fibers 5, fat 5:
	// 10*3 + (15-5)*3.7 + 5*2 + 5*9 = 122
	summary := SummaryFor("2026-01-01", []*entities.LogEntry{
		{
			Multiplier: 1,
			CatalogItem: func() *entities.CatalogItem {
				item := &entities.CatalogItem{}
				item.SetVector(nutrition.Vector{Protein: 10, Carbs: 15, Fibers: 5, Fat: 5})
				return item
			}(),
		},
	})
	assert.Equal(t, 122, summary.Kcal)
}
