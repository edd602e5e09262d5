package domain

import "errors"

var (
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessCreateDraft      = "recipe draft created successfully"
	MessageSuccessGetDraft         = "recipe draft retrieved successfully"
	MessageSuccessRetryIngredient  = "ingredient resolution retried"
	MessageSuccessDeleteIngredient = "ingredient removed from draft"
	MessageSuccessFinalizeDraft    = "recipe draft finalized successfully"

	MessageFailedCreateRecipe     = "failed to create recipe"
	MessageFailedCreateDraft      = "failed to create recipe draft"
	MessageFailedGetDraft         = "failed to retrieve recipe draft"
	MessageFailedRetryIngredient  = "failed to retry ingredient resolution"
	MessageFailedDeleteIngredient = "failed to remove ingredient"
	MessageFailedFinalizeDraft    = "failed to finalize recipe draft"

	ErrDraftNotFound          = errors.New("recipe draft not found")
	ErrIngredientNotFound     = errors.New("draft ingredient not found")
	ErrDraftNotReady          = errors.New("draft has unresolved ingredients")
	ErrDraftAlreadyFinalized  = errors.New("draft already finalized")
	ErrIngredientNotRetryable = errors.New("only failed ingredients can be retried")
	ErrEmptySelection         = errors.New("selection contains no log entries")
	ErrResolutionFailed       = errors.New("nutrient resolution failed")
)

type (
	CreateRecipeFromSelectionRequest struct {
		Name        string   `json:"name" validate:"required"`
		LogEntryIDs []string `json:"log_entry_ids" validate:"required,min=1,dive,uuid"`
		Comment     string   `json:"comment"`
	}

	CreateDraftRequest struct {
		Name    string `json:"name" validate:"required"`
		Context string `json:"context"`
	}

	DraftIngredientResponse struct {
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		Quantity      float64 `json:"quantity"`
		Unit          string  `json:"unit"`
		Multiplier    float64 `json:"multiplier"`
		Status        string  `json:"status"`
		ErrorMessage  string  `json:"error_message,omitempty"`
		CatalogItemID string  `json:"catalog_item_id,omitempty"`
	}

	// DraftResponse includes CanCreateRecipe: finalization is only permitted
	// once every remaining ingredient is done.
	DraftResponse struct {
		ID              string                    `json:"id"`
		Name            string                    `json:"name"`
		Status          string                    `json:"status"`
		Ingredients     []DraftIngredientResponse `json:"ingredients"`
		CanCreateRecipe bool                      `json:"can_create_recipe"`
	}

	FinalizeDraftRequest struct {
		Comment string `json:"comment"`
	}
)
