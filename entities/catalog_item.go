package entities

import (
	"github.com/google/uuid"

	"nutrilog/pkg/nutrition"
)

// CatalogItem is one food in the user's catalog. Nutrient values are per
// (ServingQty ServingUnit) serving; a nil column means the value was never
// entered and counts as zero. Energy is never stored, always derived.
// Edits overwrite in place: log entries reference the item, so changing it
// retroactively changes historical totals.
type CatalogItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	Name        string    `gorm:"not null;index" json:"name"`
	ServingQty  float64   `json:"serving_qty"`
	ServingUnit string    `json:"serving_unit"` // "g", "dl", "pcs", "portion", "recipe serving"

	Protein      *float64 `json:"protein"`
	Fat          *float64 `json:"fat"`
	Carbs        *float64 `json:"carbs"` // net carbs, fiber excluded
	Fibers       *float64 `json:"fibers"`
	Sugar        *float64 `json:"sugar"`
	Mufa         *float64 `json:"mufa"`
	Pufa         *float64 `json:"pufa"`
	Sfa          *float64 `json:"sfa"`
	GlycemicLoad *float64 `json:"glycemic_load"`
	Omega3       *float64 `json:"omega3"`
	Omega6       *float64 `json:"omega6"`

	Comment  string `gorm:"type:text" json:"comment"`
	ImageURL string `json:"image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Vector maps the nullable nutrient columns to the arithmetic vector,
// treating absent values as zero.
func (c *CatalogItem) Vector() nutrition.Vector {
	return nutrition.Vector{
		Protein:      deref(c.Protein),
		Fat:          deref(c.Fat),
		Carbs:        deref(c.Carbs),
		Fibers:       deref(c.Fibers),
		Sugar:        deref(c.Sugar),
		Mufa:         deref(c.Mufa),
		Pufa:         deref(c.Pufa),
		Sfa:          deref(c.Sfa),
		GlycemicLoad: deref(c.GlycemicLoad),
		Omega3:       deref(c.Omega3),
		Omega6:       deref(c.Omega6),
	}
}

// SetVector writes v back into the nullable nutrient columns. Every field
// becomes non-nil; used when a vector is computed (recipe synthesis) or
// estimated (AI-assisted entry).
func (c *CatalogItem) SetVector(v nutrition.Vector) {
	c.Protein = &v.Protein
	c.Fat = &v.Fat
	c.Carbs = &v.Carbs
	c.Fibers = &v.Fibers
	c.Sugar = &v.Sugar
	c.Mufa = &v.Mufa
	c.Pufa = &v.Pufa
	c.Sfa = &v.Sfa
	c.GlycemicLoad = &v.GlycemicLoad
	c.Omega3 = &v.Omega3
	c.Omega6 = &v.Omega6
}
