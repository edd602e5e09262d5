package entities

import (
	"github.com/google/uuid"
)

// Draft ingredient resolution states. Each ingredient is an independent
// unit of work; a failed one never invalidates its siblings.
const (
	IngredientStatusIdle       = "idle"
	IngredientStatusProcessing = "processing"
	IngredientStatusDone       = "done"
	IngredientStatusError      = "error"
)

const (
	DraftStatusOpen      = "open"
	DraftStatusFinalized = "finalized"
)

// RecipeDraft is the working set of an AI-decomposed recipe before it is
// finalized into a catalog item. Resolved ingredients persist catalog items
// immediately, so an abandoned draft may leave orphan items behind; that is
// accepted behavior.
type RecipeDraft struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID `gorm:"index" json:"user_id"`
	Name    string    `gorm:"not null" json:"name"`
	Context string    `gorm:"type:text" json:"context"`
	Status  string    `json:"status"`

	Ingredients []DraftIngredient `gorm:"foreignKey:DraftID" json:"ingredients"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type DraftIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DraftID      uuid.UUID `gorm:"type:uuid;index" json:"draft_id"`
	Name         string    `gorm:"not null" json:"name"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Multiplier   float64   `json:"multiplier"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`

	// Set once resolution succeeded and the ingredient's catalog item exists.
	CatalogItemID *uuid.UUID   `gorm:"type:uuid" json:"catalog_item_id,omitempty"`
	CatalogItem   *CatalogItem `gorm:"foreignKey:CatalogItemID" json:"catalog_item,omitempty"`

	Timestamp
}
