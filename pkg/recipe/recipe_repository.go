package recipe

import (
	"context"

	"gorm.io/gorm"

	"nutrilog/entities"
)

type (
	RecipeRepository interface {
		CreateDraft(ctx context.Context, draft *entities.RecipeDraft) error
		GetDraftByID(ctx context.Context, id string) (*entities.RecipeDraft, error)
		UpdateDraft(ctx context.Context, draft *entities.RecipeDraft) error
		GetIngredientByID(ctx context.Context, id string) (*entities.DraftIngredient, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.DraftIngredient) error
		DeleteIngredient(ctx context.Context, id string) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateDraft(ctx context.Context, draft *entities.RecipeDraft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *recipeRepository) GetDraftByID(ctx context.Context, id string) (*entities.RecipeDraft, error) {
	var draft entities.RecipeDraft
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.CatalogItem").
		Where("id = ?", id).
		First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *recipeRepository) UpdateDraft(ctx context.Context, draft *entities.RecipeDraft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *recipeRepository) GetIngredientByID(ctx context.Context, id string) (*entities.DraftIngredient, error) {
	var ingredient entities.DraftIngredient
	if err := r.db.WithContext(ctx).
		Preload("CatalogItem").
		Where("id = ?", id).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *recipeRepository) UpdateIngredient(ctx context.Context, ingredient *entities.DraftIngredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *recipeRepository) DeleteIngredient(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.DraftIngredient{}).Error
}
