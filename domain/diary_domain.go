package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddLogEntry    = "log entry added successfully"
	MessageSuccessCopyLogEntry   = "log entry copied successfully"
	MessageSuccessUpdateLogEntry = "log entry updated successfully"
	MessageSuccessDeleteLogEntry = "log entry deleted successfully"
	MessageSuccessGetDiary       = "diary retrieved successfully"
	MessageSuccessGetSummary     = "summary retrieved successfully"

	MessageFailedAddLogEntry    = "failed to add log entry"
	MessageFailedCopyLogEntry   = "failed to copy log entry"
	MessageFailedUpdateLogEntry = "failed to update log entry"
	MessageFailedDeleteLogEntry = "failed to delete log entry"
	MessageFailedGetDiary       = "failed to retrieve diary"
	MessageFailedGetSummary     = "failed to retrieve summary"

	ErrLogEntryNotFound  = errors.New("log entry not found")
	ErrInvalidMultiplier = errors.New("multiplier must be a positive number")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
)

type (
	AddLogEntryRequest struct {
		CatalogItemID string     `json:"catalog_item_id" validate:"required,uuid"`
		Multiplier    float64    `json:"multiplier" validate:"required,gt=0"`
		LoggedAt      *time.Time `json:"logged_at"`
	}

	UpdateLogEntryRequest struct {
		Multiplier *float64   `json:"multiplier" validate:"omitempty,gt=0"`
		LoggedAt   *time.Time `json:"logged_at"`
	}

	// LogEntryResponse carries the entry plus its nutrient contribution
	// (multiplier x item vector, computed at read time). Values are rounded
	// for display only; the unrounded sums stay server-side.
	LogEntryResponse struct {
		ID            string          `json:"id"`
		CatalogItemID string          `json:"catalog_item_id"`
		ItemName      string          `json:"item_name,omitempty"`
		ServingQty    float64         `json:"serving_qty,omitempty"`
		ServingUnit   string          `json:"serving_unit,omitempty"`
		Multiplier    float64         `json:"multiplier"`
		LoggedAt      time.Time       `json:"logged_at"`
		Resolved      bool            `json:"resolved"`
		Contribution  *NutrientValues `json:"contribution,omitempty"`
		Kcal          int             `json:"kcal"`
	}

	// DailySummary is the aggregate of one calendar day (local day bounds of
	// the requested date). Count excludes entries whose catalog item no
	// longer resolves.
	DailySummary struct {
		Date   string         `json:"date"`
		Totals NutrientValues `json:"totals"`
		Kcal   int            `json:"kcal"`
		Count  int            `json:"count"`
	}

	DiaryDayResponse struct {
		Entries []LogEntryResponse `json:"entries"`
		Summary DailySummary       `json:"summary"`
	}
)
