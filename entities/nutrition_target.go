package entities

import (
	"github.com/google/uuid"

	"nutrilog/pkg/nutrition"
)

// NutritionTarget bounds a nutrient (absolute, Nutrient2 empty) or a
// nutrient ratio (relative). The (user, nutrient_1, nutrient_2) pair is
// unique; min and max are each optional.
type NutritionTarget struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_target_pair" json:"user_id"`
	Nutrient1 string    `gorm:"uniqueIndex:idx_target_pair;not null" json:"nutrient_1"`
	Nutrient2 string    `gorm:"uniqueIndex:idx_target_pair" json:"nutrient_2"`
	MinValue  *float64  `json:"min_value"`
	MaxValue  *float64  `json:"max_value"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

// Target maps the row to the evaluation engine's target type.
func (t *NutritionTarget) Target() nutrition.Target {
	return nutrition.Target{
		Nutrient1: nutrition.Nutrient(t.Nutrient1),
		Nutrient2: nutrition.Nutrient(t.Nutrient2),
		Min:       t.MinValue,
		Max:       t.MaxValue,
	}
}
