package target

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutrilog/domain"
	"nutrilog/entities"
	"nutrilog/pkg/diary"
	"nutrilog/pkg/nutrition"
)

type (
	TargetService interface {
		AddTarget(ctx context.Context, req domain.AddTargetRequest, userID string) (domain.TargetResponse, error)
		UpdateTarget(ctx context.Context, id string, req domain.UpdateTargetRequest, userID string) error
		DeleteTarget(ctx context.Context, id string, userID string) error
		GetTargets(ctx context.Context, userID string) ([]domain.TargetResponse, error)
		EvaluateDay(ctx context.Context, date string, userID string) (domain.EvaluateTargetsResponse, error)
	}

	targetService struct {
		targetRepository TargetRepository
		diaryRepository  diary.DiaryRepository
	}
)

func NewTargetService(targetRepository TargetRepository, diaryRepository diary.DiaryRepository) TargetService {
	return &targetService{
		targetRepository: targetRepository,
		diaryRepository:  diaryRepository,
	}
}

func knownNutrient(name string) bool {
	if nutrition.Nutrient(name) == nutrition.Calories {
		return true
	}
	for _, n := range nutrition.StoredNutrients {
		if string(n) == name {
			return true
		}
	}
	return false
}

func toTargetResponse(t *entities.NutritionTarget) domain.TargetResponse {
	return domain.TargetResponse{
		ID:        t.ID.String(),
		Nutrient1: t.Nutrient1,
		Nutrient2: t.Nutrient2,
		MinValue:  t.MinValue,
		MaxValue:  t.MaxValue,
	}
}

func (s *targetService) AddTarget(ctx context.Context, req domain.AddTargetRequest, userID string) (domain.TargetResponse, error) {
	if !knownNutrient(req.Nutrient1) || (req.Nutrient2 != "" && !knownNutrient(req.Nutrient2)) {
		return domain.TargetResponse{}, domain.ErrUnknownNutrientName
	}
	if req.MinValue == nil && req.MaxValue == nil {
		return domain.TargetResponse{}, domain.ErrTargetNoBounds
	}

	// The pair is unique per user; the unique index backs this up, but the
	// explicit check gives a clean domain error instead of a driver error.
	if _, err := s.targetRepository.GetTargetByPair(ctx, userID, req.Nutrient1, req.Nutrient2); err == nil {
		return domain.TargetResponse{}, domain.ErrTargetPairExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TargetResponse{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.TargetResponse{}, domain.ErrParseUUID
	}

	target := &entities.NutritionTarget{
		ID:        uuid.New(),
		UserID:    userUUID,
		Nutrient1: req.Nutrient1,
		Nutrient2: req.Nutrient2,
		MinValue:  req.MinValue,
		MaxValue:  req.MaxValue,
	}

	if err := s.targetRepository.AddTarget(ctx, target); err != nil {
		return domain.TargetResponse{}, err
	}
	return toTargetResponse(target), nil
}

func (s *targetService) UpdateTarget(ctx context.Context, id string, req domain.UpdateTargetRequest, userID string) error {
	target, err := s.targetRepository.GetTargetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTargetNotFound
		}
		return err
	}

	if target.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if req.MinValue != nil {
		target.MinValue = req.MinValue
	}
	if req.MaxValue != nil {
		target.MaxValue = req.MaxValue
	}
	if target.MinValue == nil && target.MaxValue == nil {
		return domain.ErrTargetNoBounds
	}

	return s.targetRepository.UpdateTarget(ctx, target)
}

func (s *targetService) DeleteTarget(ctx context.Context, id string, userID string) error {
	target, err := s.targetRepository.GetTargetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTargetNotFound
		}
		return err
	}

	if target.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	return s.targetRepository.DeleteTarget(ctx, id)
}

func (s *targetService) GetTargets(ctx context.Context, userID string) ([]domain.TargetResponse, error) {
	targets, err := s.targetRepository.GetTargets(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.TargetResponse, 0, len(targets))
	for _, t := range targets {
		out = append(out, toTargetResponse(t))
	}
	return out, nil
}

// EvaluateDay computes the day's unrounded totals and evaluates every
// stored target against them. A target that fails (unsupported pair, zero
// denominator) carries its own reason and never aborts the others.
func (s *targetService) EvaluateDay(ctx context.Context, date string, userID string) (domain.EvaluateTargetsResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return domain.EvaluateTargetsResponse{}, domain.ErrInvalidDate
	}

	entries, err := s.diaryRepository.GetEntriesByRange(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return domain.EvaluateTargetsResponse{}, err
	}

	portions := make([]nutrition.Portion, 0, len(entries))
	for _, entry := range entries {
		p := nutrition.Portion{Multiplier: entry.Multiplier}
		if entry.CatalogItem != nil {
			p.PerServing = entry.CatalogItem.Vector()
			p.Resolved = true
		}
		portions = append(portions, p)
	}
	totals := nutrition.Aggregate(portions)

	targets, err := s.targetRepository.GetTargets(ctx, userID)
	if err != nil {
		return domain.EvaluateTargetsResponse{}, err
	}

	evaluations := make([]domain.TargetEvaluation, 0, len(targets))
	for _, t := range targets {
		evaluations = append(evaluations, evaluateOne(totals.Vector, t))
	}

	round := func(f float64) *float64 {
		r := math.Round(f*10) / 10
		return &r
	}
	v := totals.Vector
	return domain.EvaluateTargetsResponse{
		Date: date,
		Totals: domain.NutrientValues{
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
		},
		Kcal:        nutrition.Kcal(totals.Vector),
		EntryCount:  totals.Count,
		Evaluations: evaluations,
	}, nil
}

func evaluateOne(totals nutrition.Vector, row *entities.NutritionTarget) domain.TargetEvaluation {
	t := row.Target()
	ev := nutrition.Evaluate(totals, t)

	out := domain.TargetEvaluation{
		Target: toTargetResponse(row),
		Actual: ev.Actual,
		Error:  ev.Reason,
	}

	out.DisplayMax = nutrition.DisplayMax(t, ev.Actual)
	for _, b := range t.Bands(out.DisplayMax) {
		out.Bands = append(out.Bands, domain.TargetBand{From: b.From, To: b.To, InRange: b.InRange})
	}
	if ev.Actual != nil {
		out.Zone = string(t.Classify(*ev.Actual))
	}
	return out
}
