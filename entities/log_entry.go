package entities

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry records one consumption event: a reference to a catalog item and
// a unitless multiplier over its serving. The nutrient contribution is
// always multiplier x item vector at read time, never cached; a soft-deleted
// item leaves the entry dangling and it is then excluded from totals.
type LogEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `gorm:"index" json:"user_id"`
	CatalogItemID uuid.UUID `gorm:"type:uuid;index" json:"catalog_item_id"`
	Multiplier    float64   `json:"multiplier"`
	LoggedAt      time.Time `gorm:"index" json:"logged_at"`

	CatalogItem *CatalogItem `gorm:"foreignKey:CatalogItemID" json:"catalog_item,omitempty"`
	User        *User        `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
