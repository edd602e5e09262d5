package domain

import "errors"

var (
	MessageSuccessAddTarget      = "nutrition target added successfully"
	MessageSuccessUpdateTarget   = "nutrition target updated successfully"
	MessageSuccessDeleteTarget   = "nutrition target deleted successfully"
	MessageSuccessGetTargets     = "nutrition targets retrieved successfully"
	MessageSuccessEvaluateTarget = "nutrition targets evaluated successfully"

	MessageFailedAddTarget      = "failed to add nutrition target"
	MessageFailedUpdateTarget   = "failed to update nutrition target"
	MessageFailedDeleteTarget   = "failed to delete nutrition target"
	MessageFailedGetTargets     = "failed to retrieve nutrition targets"
	MessageFailedEvaluateTarget = "failed to evaluate nutrition targets"

	ErrTargetNotFound      = errors.New("nutrition target not found")
	ErrTargetPairExists    = errors.New("a target for this nutrient pair already exists")
	ErrTargetNoBounds      = errors.New("target needs at least one of min_value and max_value")
	ErrUnknownNutrientName = errors.New("unknown nutrient name")
)

type (
	AddTargetRequest struct {
		Nutrient1 string   `json:"nutrient_1" validate:"required"`
		Nutrient2 string   `json:"nutrient_2"`
		MinValue  *float64 `json:"min_value" validate:"omitempty,gte=0"`
		MaxValue  *float64 `json:"max_value" validate:"omitempty,gte=0"`
	}

	UpdateTargetRequest struct {
		MinValue *float64 `json:"min_value" validate:"omitempty,gte=0"`
		MaxValue *float64 `json:"max_value" validate:"omitempty,gte=0"`
	}

	TargetResponse struct {
		ID        string   `json:"id"`
		Nutrient1 string   `json:"nutrient_1"`
		Nutrient2 string   `json:"nutrient_2,omitempty"`
		MinValue  *float64 `json:"min_value"`
		MaxValue  *float64 `json:"max_value"`
	}

	// TargetBand is one segment of the [0, display_max] visual range.
	TargetBand struct {
		From    float64 `json:"from"`
		To      float64 `json:"to"`
		InRange bool    `json:"in_range"`
	}

	// TargetEvaluation is the per-target outcome for one day. Actual is null
	// when evaluation failed; Error then names the reason ("zero
	// denominator" is distinct from an unsupported combination).
	TargetEvaluation struct {
		Target     TargetResponse `json:"target"`
		Actual     *float64       `json:"actual"`
		Error      string         `json:"error,omitempty"`
		Zone       string         `json:"zone,omitempty"`
		DisplayMax float64        `json:"display_max"`
		Bands      []TargetBand   `json:"bands"`
	}

	EvaluateTargetsResponse struct {
		Date        string             `json:"date"`
		Totals      NutrientValues     `json:"totals"`
		Kcal        int                `json:"kcal"`
		EntryCount  int                `json:"entry_count"`
		Evaluations []TargetEvaluation `json:"evaluations"`
	}
)
