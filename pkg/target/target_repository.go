package target

import (
	"context"

	"gorm.io/gorm"

	"nutrilog/entities"
)

type (
	TargetRepository interface {
		AddTarget(ctx context.Context, target *entities.NutritionTarget) error
		GetTargetByID(ctx context.Context, id string) (*entities.NutritionTarget, error)
		GetTargetByPair(ctx context.Context, userID, nutrient1, nutrient2 string) (*entities.NutritionTarget, error)
		GetTargets(ctx context.Context, userID string) ([]*entities.NutritionTarget, error)
		UpdateTarget(ctx context.Context, target *entities.NutritionTarget) error
		DeleteTarget(ctx context.Context, id string) error
	}

	targetRepository struct {
		db *gorm.DB
	}
)

func NewTargetRepository(db *gorm.DB) TargetRepository {
	return &targetRepository{db: db}
}

func (r *targetRepository) AddTarget(ctx context.Context, target *entities.NutritionTarget) error {
	return r.db.WithContext(ctx).Create(target).Error
}

func (r *targetRepository) GetTargetByID(ctx context.Context, id string) (*entities.NutritionTarget, error) {
	var target entities.NutritionTarget
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&target).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *targetRepository) GetTargetByPair(ctx context.Context, userID, nutrient1, nutrient2 string) (*entities.NutritionTarget, error) {
	var target entities.NutritionTarget
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND nutrient_1 = ? AND nutrient_2 = ?", userID, nutrient1, nutrient2).
		First(&target).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *targetRepository) GetTargets(ctx context.Context, userID string) ([]*entities.NutritionTarget, error) {
	var targets []*entities.NutritionTarget
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("nutrient_1 asc, nutrient_2 asc").
		Find(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

func (r *targetRepository) UpdateTarget(ctx context.Context, target *entities.NutritionTarget) error {
	return r.db.WithContext(ctx).Save(target).Error
}

func (r *targetRepository) DeleteTarget(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.NutritionTarget{}).Error
}
