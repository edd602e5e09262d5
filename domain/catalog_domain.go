package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddCatalogItem    = "catalog item added successfully"
	MessageSuccessUpdateCatalogItem = "catalog item updated successfully"
	MessageSuccessDeleteCatalogItem = "catalog item deleted successfully"
	MessageSuccessGetCatalogItems   = "catalog items retrieved successfully"
	MessageSuccessUploadItemPhoto   = "item photo uploaded successfully"

	MessageFailedAddCatalogItem    = "failed to add catalog item"
	MessageFailedUpdateCatalogItem = "failed to update catalog item"
	MessageFailedDeleteCatalogItem = "failed to delete catalog item"
	MessageFailedGetCatalogItems   = "failed to retrieve catalog items"
	MessageFailedUploadItemPhoto   = "failed to upload item photo"
	MessageFailedEstimateNutrients = "failed to estimate nutrients"

	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrInvalidServingQty   = errors.New("serving quantity must be positive")
	ErrInvalidServingUnit  = errors.New("invalid serving unit")
	ErrNegativeNutrient    = errors.New("nutrient values must not be negative")
	ErrUnauthorizedAccess  = errors.New("unauthorized access to resource")
)

// ServingUnits is the closed set of valid serving units.
var ServingUnits = []string{"g", "dl", "pcs", "portion", "recipe serving"}

type (
	// NutrientValues carries the optional per-serving nutrient amounts of a
	// request. Nil means not entered; negative values are rejected at the
	// boundary.
	NutrientValues struct {
		Protein      *float64 `json:"protein" validate:"omitempty,gte=0"`
		Fat          *float64 `json:"fat" validate:"omitempty,gte=0"`
		Carbs        *float64 `json:"carbs" validate:"omitempty,gte=0"`
		Fibers       *float64 `json:"fibers" validate:"omitempty,gte=0"`
		Sugar        *float64 `json:"sugar" validate:"omitempty,gte=0"`
		Mufa         *float64 `json:"mufa" validate:"omitempty,gte=0"`
		Pufa         *float64 `json:"pufa" validate:"omitempty,gte=0"`
		Sfa          *float64 `json:"sfa" validate:"omitempty,gte=0"`
		GlycemicLoad *float64 `json:"glycemic_load" validate:"omitempty,gte=0"`
		Omega3       *float64 `json:"omega3" validate:"omitempty,gte=0"`
		Omega6       *float64 `json:"omega6" validate:"omitempty,gte=0"`
	}

	AddCatalogItemRequest struct {
		Name        string         `json:"name" validate:"required"`
		ServingQty  float64        `json:"serving_qty" validate:"required,gt=0"`
		ServingUnit string         `json:"serving_unit" validate:"required"`
		Nutrients   NutrientValues `json:"nutrients"`
		Comment     string         `json:"comment"`
		// Estimate asks the AI collaborator to fill the nutrient vector from
		// the name and serving definition instead of manual entry.
		Estimate bool `json:"estimate"`
	}

	UpdateCatalogItemRequest struct {
		Name        *string        `json:"name" validate:"omitempty"`
		ServingQty  *float64       `json:"serving_qty" validate:"omitempty,gt=0"`
		ServingUnit *string        `json:"serving_unit" validate:"omitempty"`
		Nutrients   NutrientValues `json:"nutrients"`
		Comment     *string        `json:"comment"`
	}

	UploadItemPhotoRequest struct {
		ItemID string                `json:"item_id" form:"item_id" validate:"required,uuid"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	CatalogItemResponse struct {
		ID          string         `json:"id"`
		Name        string         `json:"name"`
		ServingQty  float64        `json:"serving_qty"`
		ServingUnit string         `json:"serving_unit"`
		Nutrients   NutrientValues `json:"nutrients"`
		// Kcal is derived per serving, never stored.
		Kcal      int       `json:"kcal"`
		Comment   string    `json:"comment"`
		ImageURL  string    `json:"image_url,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
)
