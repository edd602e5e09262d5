package diary

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutrilog/domain"
	"nutrilog/entities"
	"nutrilog/pkg/nutrition"
)

type (
	DiaryService interface {
		AddEntry(ctx context.Context, req domain.AddLogEntryRequest, userID string) (domain.LogEntryResponse, error)
		CopyEntry(ctx context.Context, id string, userID string) (domain.LogEntryResponse, error)
		UpdateEntry(ctx context.Context, id string, req domain.UpdateLogEntryRequest, userID string) error
		DeleteEntry(ctx context.Context, id string, userID string) error
		GetDay(ctx context.Context, date string, userID string) (domain.DiaryDayResponse, error)
		GetSummaryRange(ctx context.Context, from, to string, userID string) ([]domain.DailySummary, error)
	}

	diaryService struct {
		diaryRepository DiaryRepository
	}
)

func NewDiaryService(diaryRepository DiaryRepository) DiaryService {
	return &diaryService{diaryRepository: diaryRepository}
}

const dateLayout = "2006-01-02"

// dayBounds returns [start, end) of the calendar day in local time.
func dayBounds(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDate
	}
	return day, day.AddDate(0, 0, 1), nil
}

// portionOf maps a log entry to an aggregation input. An entry whose
// catalog item was deleted is unresolved and will be skipped by the sum.
func portionOf(entry *entities.LogEntry) nutrition.Portion {
	p := nutrition.Portion{Multiplier: entry.Multiplier}
	if entry.CatalogItem != nil {
		p.PerServing = entry.CatalogItem.Vector()
		p.Resolved = true
	}
	return p
}

func roundedValues(v nutrition.Vector) domain.NutrientValues {
	round := func(f float64) *float64 {
		r := math.Round(f*10) / 10
		return &r
	}
	return domain.NutrientValues{
		Protein:      round(v.Protein),
		Fat:          round(v.Fat),
		Carbs:        round(v.Carbs),
		Fibers:       round(v.Fibers),
		Sugar:        round(v.Sugar),
		Mufa:         round(v.Mufa),
		Pufa:         round(v.Pufa),
		Sfa:          round(v.Sfa),
		GlycemicLoad: round(v.GlycemicLoad),
		Omega3:       round(v.Omega3),
		Omega6:       round(v.Omega6),
	}
}

func toEntryResponse(entry *entities.LogEntry) domain.LogEntryResponse {
	res := domain.LogEntryResponse{
		ID:            entry.ID.String(),
		CatalogItemID: entry.CatalogItemID.String(),
		Multiplier:    entry.Multiplier,
		LoggedAt:      entry.LoggedAt,
	}
	if entry.CatalogItem != nil {
		res.Resolved = true
		res.ItemName = entry.CatalogItem.Name
		res.ServingQty = entry.CatalogItem.ServingQty
		res.ServingUnit = entry.CatalogItem.ServingUnit

		// Display copy only; derived values always come from the raw vector.
		contribution := entry.CatalogItem.Vector().Scale(entry.Multiplier)
		values := roundedValues(contribution)
		res.Contribution = &values
		res.Kcal = nutrition.Kcal(contribution)
	}
	return res
}

// SummaryFor aggregates a day's entries into the response summary. The
// unrounded totals feed the kcal derivation; only the returned copy is
// rounded.
func SummaryFor(date string, entries []*entities.LogEntry) domain.DailySummary {
	portions := make([]nutrition.Portion, 0, len(entries))
	for _, entry := range entries {
		portions = append(portions, portionOf(entry))
	}
	totals := nutrition.Aggregate(portions)
	return domain.DailySummary{
		Date:   date,
		Totals: roundedValues(totals.Vector),
		Kcal:   nutrition.Kcal(totals.Vector),
		Count:  totals.Count,
	}
}

func (s *diaryService) AddEntry(ctx context.Context, req domain.AddLogEntryRequest, userID string) (domain.LogEntryResponse, error) {
	if req.Multiplier <= 0 || math.IsInf(req.Multiplier, 0) || math.IsNaN(req.Multiplier) {
		return domain.LogEntryResponse{}, domain.ErrInvalidMultiplier
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.LogEntryResponse{}, domain.ErrParseUUID
	}
	itemUUID, err := uuid.Parse(req.CatalogItemID)
	if err != nil {
		return domain.LogEntryResponse{}, domain.ErrParseUUID
	}

	loggedAt := time.Now()
	if req.LoggedAt != nil {
		loggedAt = *req.LoggedAt
	}

	entry := &entities.LogEntry{
		ID:            uuid.New(),
		UserID:        userUUID,
		CatalogItemID: itemUUID,
		Multiplier:    req.Multiplier,
		LoggedAt:      loggedAt,
	}

	if err := s.diaryRepository.AddEntry(ctx, entry); err != nil {
		return domain.LogEntryResponse{}, err
	}

	created, err := s.diaryRepository.GetEntryByID(ctx, entry.ID.String())
	if err != nil {
		return domain.LogEntryResponse{}, err
	}
	return toEntryResponse(created), nil
}

// CopyEntry duplicates an entry with a refreshed timestamp.
func (s *diaryService) CopyEntry(ctx context.Context, id string, userID string) (domain.LogEntryResponse, error) {
	entry, err := s.diaryRepository.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LogEntryResponse{}, domain.ErrLogEntryNotFound
		}
		return domain.LogEntryResponse{}, err
	}

	if entry.UserID.String() != userID {
		return domain.LogEntryResponse{}, domain.ErrUnauthorizedAccess
	}

	copied := &entities.LogEntry{
		ID:            uuid.New(),
		UserID:        entry.UserID,
		CatalogItemID: entry.CatalogItemID,
		Multiplier:    entry.Multiplier,
		LoggedAt:      time.Now(),
	}
	if err := s.diaryRepository.AddEntry(ctx, copied); err != nil {
		return domain.LogEntryResponse{}, err
	}
	copied.CatalogItem = entry.CatalogItem
	return toEntryResponse(copied), nil
}

func (s *diaryService) UpdateEntry(ctx context.Context, id string, req domain.UpdateLogEntryRequest, userID string) error {
	entry, err := s.diaryRepository.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLogEntryNotFound
		}
		return err
	}

	if entry.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if req.Multiplier != nil {
		if *req.Multiplier <= 0 || math.IsInf(*req.Multiplier, 0) || math.IsNaN(*req.Multiplier) {
			return domain.ErrInvalidMultiplier
		}
		entry.Multiplier = *req.Multiplier
	}
	if req.LoggedAt != nil {
		entry.LoggedAt = *req.LoggedAt
	}

	return s.diaryRepository.UpdateEntry(ctx, entry)
}

func (s *diaryService) DeleteEntry(ctx context.Context, id string, userID string) error {
	entry, err := s.diaryRepository.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLogEntryNotFound
		}
		return err
	}

	if entry.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	return s.diaryRepository.DeleteEntry(ctx, id)
}

func (s *diaryService) GetDay(ctx context.Context, date string, userID string) (domain.DiaryDayResponse, error) {
	from, to, err := dayBounds(date)
	if err != nil {
		return domain.DiaryDayResponse{}, err
	}

	entries, err := s.diaryRepository.GetEntriesByRange(ctx, userID, from, to)
	if err != nil {
		return domain.DiaryDayResponse{}, err
	}

	out := make([]domain.LogEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryResponse(entry))
	}

	return domain.DiaryDayResponse{
		Entries: out,
		Summary: SummaryFor(date, entries),
	}, nil
}

func (s *diaryService) GetSummaryRange(ctx context.Context, from, to string, userID string) ([]domain.DailySummary, error) {
	start, _, err := dayBounds(from)
	if err != nil {
		return nil, err
	}
	_, end, err := dayBounds(to)
	if err != nil {
		return nil, err
	}

	entries, err := s.diaryRepository.GetEntriesByRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	// Bucket by local calendar day of each entry's timestamp.
	byDay := make(map[string][]*entities.LogEntry)
	for _, entry := range entries {
		key := entry.LoggedAt.In(time.Local).Format(dateLayout)
		byDay[key] = append(byDay[key], entry)
	}

	summaries := make([]domain.DailySummary, 0, len(byDay))
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		dayEntries, ok := byDay[key]
		if !ok {
			continue
		}
		summaries = append(summaries, SummaryFor(key, dayEntries))
	}
	return summaries, nil
}
