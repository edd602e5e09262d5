package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutrilog/domain"
	"nutrilog/entities"
	"nutrilog/pkg/catalog"
	"nutrilog/pkg/diary"
	"nutrilog/pkg/gemini"
	"nutrilog/pkg/nutrition"
)

const (
	recipeServingUnit = "recipe serving"
	recipeServingQty  = 1
)

type (
	RecipeService interface {
		CreateFromSelection(ctx context.Context, req domain.CreateRecipeFromSelectionRequest, userID string) (domain.CatalogItemResponse, error)
		CreateDraft(ctx context.Context, req domain.CreateDraftRequest, userID string) (domain.DraftResponse, error)
		GetDraft(ctx context.Context, draftID string, userID string) (domain.DraftResponse, error)
		RetryIngredient(ctx context.Context, draftID, ingredientID string, userID string) (domain.DraftResponse, error)
		DeleteIngredient(ctx context.Context, draftID, ingredientID string, userID string) error
		FinalizeDraft(ctx context.Context, draftID string, req domain.FinalizeDraftRequest, userID string) (domain.CatalogItemResponse, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		diaryRepository   diary.DiaryRepository
		ai                gemini.Client
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	catalogRepository catalog.CatalogRepository,
	diaryRepository diary.DiaryRepository,
	ai gemini.Client,
) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		diaryRepository:   diaryRepository,
		ai:                ai,
	}
}

// CreateFromSelection sums the contributions of the selected log entries
// into a new catalog item. Entries whose catalog item no longer resolves
// are excluded from the sum, same as in daily totals.
func (s *recipeService) CreateFromSelection(ctx context.Context, req domain.CreateRecipeFromSelectionRequest, userID string) (domain.CatalogItemResponse, error) {
	entries, err := s.diaryRepository.GetEntriesByIDs(ctx, userID, req.LogEntryIDs)
	if err != nil {
		return domain.CatalogItemResponse{}, err
	}
	if len(entries) == 0 {
		return domain.CatalogItemResponse{}, domain.ErrEmptySelection
	}

	portions := make([]nutrition.Portion, 0, len(entries))
	var lines []string
	for _, entry := range entries {
		p := nutrition.Portion{Multiplier: entry.Multiplier}
		if entry.CatalogItem != nil {
			p.PerServing = entry.CatalogItem.Vector()
			p.Resolved = true
			lines = append(lines, constituentLine(
				entry.CatalogItem.Name,
				entry.CatalogItem.ServingQty,
				entry.CatalogItem.ServingUnit,
				entry.Multiplier,
			))
		}
		portions = append(portions, p)
	}
	totals := nutrition.Aggregate(portions)
	if totals.Count == 0 {
		return domain.CatalogItemResponse{}, domain.ErrEmptySelection
	}

	return s.persistRecipeItem(ctx, userID, req.Name, totals.Vector, lines, req.Comment)
}

// CreateDraft asks the AI collaborator to decompose the recipe name into
// ingredients, persists the working set, and resolves every ingredient
// concurrently. A failed ingredient ends up in error state with its reason;
// its siblings keep their results.
func (s *recipeService) CreateDraft(ctx context.Context, req domain.CreateDraftRequest, userID string) (domain.DraftResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.DraftResponse{}, domain.ErrParseUUID
	}

	ingredients, err := s.ai.DecomposeRecipe(ctx, req.Name, req.Context)
	if err != nil {
		return domain.DraftResponse{}, err
	}

	draft := &entities.RecipeDraft{
		ID:      uuid.New(),
		UserID:  userUUID,
		Name:    req.Name,
		Context: req.Context,
		Status:  entities.DraftStatusOpen,
	}
	for _, ing := range ingredients {
		draft.Ingredients = append(draft.Ingredients, entities.DraftIngredient{
			ID:         uuid.New(),
			DraftID:    draft.ID,
			Name:       ing.Name,
			Quantity:   ing.Quantity,
			Unit:       ing.Unit,
			Multiplier: 1,
			Status:     entities.IngredientStatusIdle,
		})
	}

	if err := s.recipeRepository.CreateDraft(ctx, draft); err != nil {
		return domain.DraftResponse{}, err
	}

	s.resolveIngredients(ctx, draft, draft.Ingredients)

	updated, err := s.recipeRepository.GetDraftByID(ctx, draft.ID.String())
	if err != nil {
		return domain.DraftResponse{}, err
	}
	return toDraftResponse(updated), nil
}

// resolveIngredients fans the pending ingredients out to one resolution
// task each and waits for all of them. The join collects every outcome:
// one ingredient failing must never roll back or discard the successes,
// so each task writes its own row and nothing aborts the batch.
func (s *recipeService) resolveIngredients(ctx context.Context, draft *entities.RecipeDraft, ingredients []entities.DraftIngredient) {
	var wg sync.WaitGroup
	for i := range ingredients {
		ing := &ingredients[i]
		if ing.Status == entities.IngredientStatusDone || ing.Status == entities.IngredientStatusProcessing {
			continue
		}

		ing.Status = entities.IngredientStatusProcessing
		ing.ErrorMessage = ""
		if err := s.recipeRepository.UpdateIngredient(ctx, ing); err != nil {
			continue
		}

		wg.Add(1)
		go func(ing *entities.DraftIngredient) {
			defer wg.Done()
			s.resolveOne(ctx, draft, ing)
		}(ing)
	}
	wg.Wait()
}

func (s *recipeService) resolveOne(ctx context.Context, draft *entities.RecipeDraft, ing *entities.DraftIngredient) {
	vector, err := s.ai.EstimateNutrients(ctx, gemini.EstimateRequest{
		Name:        ing.Name,
		ServingQty:  ing.Quantity,
		ServingUnit: ing.Unit,
		Context:     draft.Name,
	})
	if err != nil {
		ing.Status = entities.IngredientStatusError
		ing.ErrorMessage = err.Error()
		_ = s.recipeRepository.UpdateIngredient(ctx, ing)
		return
	}

	// The resolved ingredient becomes a catalog item of its own right away,
	// so it is reusable and the draft only holds references. An abandoned
	// draft can therefore leave orphan items; accepted.
	item := &entities.CatalogItem{
		ID:          uuid.New(),
		UserID:      draft.UserID,
		Name:        ing.Name,
		ServingQty:  ing.Quantity,
		ServingUnit: ing.Unit,
		Comment:     fmt.Sprintf("AI-estimated ingredient of %q", draft.Name),
	}
	item.SetVector(vector)

	if err := s.catalogRepository.AddItem(ctx, item); err != nil {
		ing.Status = entities.IngredientStatusError
		ing.ErrorMessage = err.Error()
		_ = s.recipeRepository.UpdateIngredient(ctx, ing)
		return
	}

	itemID := item.ID
	ing.CatalogItemID = &itemID
	ing.Status = entities.IngredientStatusDone
	ing.ErrorMessage = ""
	if err := s.recipeRepository.UpdateIngredient(ctx, ing); err != nil {
		ing.Status = entities.IngredientStatusError
		ing.ErrorMessage = err.Error()
		_ = s.recipeRepository.UpdateIngredient(ctx, ing)
	}
}

func (s *recipeService) getOwnedDraft(ctx context.Context, draftID, userID string) (*entities.RecipeDraft, error) {
	draft, err := s.recipeRepository.GetDraftByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}
	if draft.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return draft, nil
}

func (s *recipeService) GetDraft(ctx context.Context, draftID string, userID string) (domain.DraftResponse, error) {
	draft, err := s.getOwnedDraft(ctx, draftID, userID)
	if err != nil {
		return domain.DraftResponse{}, err
	}
	return toDraftResponse(draft), nil
}

// RetryIngredient re-resolves a single failed ingredient. Ingredients that
// are already done are never re-resolved.
func (s *recipeService) RetryIngredient(ctx context.Context, draftID, ingredientID string, userID string) (domain.DraftResponse, error) {
	draft, err := s.getOwnedDraft(ctx, draftID, userID)
	if err != nil {
		return domain.DraftResponse{}, err
	}
	if draft.Status == entities.DraftStatusFinalized {
		return domain.DraftResponse{}, domain.ErrDraftAlreadyFinalized
	}

	var target *entities.DraftIngredient
	for i := range draft.Ingredients {
		if draft.Ingredients[i].ID.String() == ingredientID {
			target = &draft.Ingredients[i]
			break
		}
	}
	if target == nil {
		return domain.DraftResponse{}, domain.ErrIngredientNotFound
	}
	if target.Status != entities.IngredientStatusError && target.Status != entities.IngredientStatusIdle {
		return domain.DraftResponse{}, domain.ErrIngredientNotRetryable
	}

	target.Status = entities.IngredientStatusProcessing
	target.ErrorMessage = ""
	if err := s.recipeRepository.UpdateIngredient(ctx, target); err != nil {
		return domain.DraftResponse{}, err
	}
	s.resolveOne(ctx, draft, target)

	updated, err := s.recipeRepository.GetDraftByID(ctx, draftID)
	if err != nil {
		return domain.DraftResponse{}, err
	}
	return toDraftResponse(updated), nil
}

// DeleteIngredient removes an ingredient from the working set. Nothing is
// persisted into the recipe until finalize, so removal has no cascading
// effect; an already-created catalog item for the ingredient stays.
func (s *recipeService) DeleteIngredient(ctx context.Context, draftID, ingredientID string, userID string) error {
	draft, err := s.getOwnedDraft(ctx, draftID, userID)
	if err != nil {
		return err
	}
	if draft.Status == entities.DraftStatusFinalized {
		return domain.ErrDraftAlreadyFinalized
	}

	for i := range draft.Ingredients {
		if draft.Ingredients[i].ID.String() == ingredientID {
			return s.recipeRepository.DeleteIngredient(ctx, ingredientID)
		}
	}
	return domain.ErrIngredientNotFound
}

// FinalizeDraft is only permitted once every remaining ingredient is done.
func (s *recipeService) FinalizeDraft(ctx context.Context, draftID string, req domain.FinalizeDraftRequest, userID string) (domain.CatalogItemResponse, error) {
	draft, err := s.getOwnedDraft(ctx, draftID, userID)
	if err != nil {
		return domain.CatalogItemResponse{}, err
	}
	if draft.Status == entities.DraftStatusFinalized {
		return domain.CatalogItemResponse{}, domain.ErrDraftAlreadyFinalized
	}
	if !canCreateRecipe(draft) {
		return domain.CatalogItemResponse{}, domain.ErrDraftNotReady
	}

	vectors := make([]nutrition.Vector, 0, len(draft.Ingredients))
	var lines []string
	for i := range draft.Ingredients {
		ing := &draft.Ingredients[i]
		if ing.CatalogItem == nil {
			return domain.CatalogItemResponse{}, domain.ErrDraftNotReady
		}
		vectors = append(vectors, ing.CatalogItem.Vector().Scale(ing.Multiplier))
		lines = append(lines, constituentLine(
			ing.CatalogItem.Name,
			ing.CatalogItem.ServingQty,
			ing.CatalogItem.ServingUnit,
			ing.Multiplier,
		))
	}
	combined := nutrition.Sum(vectors...)

	res, err := s.persistRecipeItem(ctx, userID, draft.Name, combined, lines, req.Comment)
	if err != nil {
		return domain.CatalogItemResponse{}, err
	}

	draft.Status = entities.DraftStatusFinalized
	if err := s.recipeRepository.UpdateDraft(ctx, draft); err != nil {
		return domain.CatalogItemResponse{}, err
	}
	return res, nil
}

func canCreateRecipe(draft *entities.RecipeDraft) bool {
	if len(draft.Ingredients) == 0 {
		return false
	}
	for _, ing := range draft.Ingredients {
		if ing.Status != entities.IngredientStatusDone {
			return false
		}
	}
	return true
}

func constituentLine(name string, servingQty float64, servingUnit string, multiplier float64) string {
	return fmt.Sprintf("- %s (%g %s) x %g", name, servingQty, servingUnit, multiplier)
}

func (s *recipeService) persistRecipeItem(ctx context.Context, userID, name string, combined nutrition.Vector, lines []string, extraComment string) (domain.CatalogItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CatalogItemResponse{}, domain.ErrParseUUID
	}

	comment := "Derived from:\n" + strings.Join(lines, "\n")
	if extraComment != "" {
		comment = extraComment + "\n\n" + comment
	}

	item := &entities.CatalogItem{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        name,
		ServingQty:  recipeServingQty,
		ServingUnit: recipeServingUnit,
		Comment:     comment,
	}
	item.SetVector(combined)

	if err := s.catalogRepository.AddItem(ctx, item); err != nil {
		return domain.CatalogItemResponse{}, err
	}

	return domain.CatalogItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		ServingQty:  item.ServingQty,
		ServingUnit: item.ServingUnit,
		Nutrients:   catalog.ValuesFromVector(combined),
		Kcal:        nutrition.Kcal(combined),
		Comment:     item.Comment,
		CreatedAt:   item.CreatedAt,
	}, nil
}

func toDraftResponse(draft *entities.RecipeDraft) domain.DraftResponse {
	res := domain.DraftResponse{
		ID:              draft.ID.String(),
		Name:            draft.Name,
		Status:          draft.Status,
		CanCreateRecipe: draft.Status == entities.DraftStatusOpen && canCreateRecipe(draft),
	}
	for _, ing := range draft.Ingredients {
		out := domain.DraftIngredientResponse{
			ID:           ing.ID.String(),
			Name:         ing.Name,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
			Multiplier:   ing.Multiplier,
			Status:       ing.Status,
			ErrorMessage: ing.ErrorMessage,
		}
		if ing.CatalogItemID != nil {
			out.CatalogItemID = ing.CatalogItemID.String()
		}
		res.Ingredients = append(res.Ingredients, out)
	}
	return res
}
