package nutrition

import "math"

// The display range always starts at zero and must cover both the target's
// own bounds and the current actual value, so a progress bar never clips.
const (
	displayFloor   = 10
	defaultMax     = 100
	ratioScaledMax = 10000 // omega6:omega3 stores ratio x100
)

// DisplayMax computes the normalized upper bound of the [0, displayMax]
// range for rendering a target. A nil actual is treated as zero for the
// padding step only.
func DisplayMax(t Target, actual *float64) float64 {
	initial := initialMax(t)

	padded := 0.0
	if actual != nil {
		padded = *actual * 1.05
	}

	max := math.Max(initial, padded)
	if max < displayFloor {
		max = displayFloor
	}
	return prettyCeil(max)
}

func initialMax(t Target) float64 {
	if t.Relative() {
		// Percentage scale, except the omega6:omega3 ratio target whose
		// stored convention is ratio x100 and needs a far larger ceiling.
		if t.Nutrient1 == Omega6 && t.Nutrient2 == Omega3 {
			if t.Max != nil {
				return *t.Max * 2
			}
			return ratioScaledMax
		}
		return defaultMax
	}

	switch {
	case t.Max != nil:
		return *t.Max * 1.2
	case t.Min != nil:
		return *t.Min * 2
	}
	return defaultMax
}

// prettyCeil rounds v up to the next unit appropriate to its magnitude:
// integers below 30, tens below 300, hundreds below 3500, thousands above.
func prettyCeil(v float64) float64 {
	switch {
	case v < 30:
		return math.Ceil(v)
	case v < 300:
		return math.Ceil(v/10) * 10
	case v < 3500:
		return math.Ceil(v/100) * 100
	}
	return math.Ceil(v/1000) * 1000
}
