package nutrition

// Target bounds either a single nutrient (absolute, Nutrient2 empty) or the
// ratio of one nutrient against another (relative). Min and Max are both
// optional; nil means no bound on that side.
type Target struct {
	Nutrient1 Nutrient
	Nutrient2 Nutrient
	Min       *float64
	Max       *float64
}

// Relative reports whether the target is a ratio/percentage target.
func (t Target) Relative() bool {
	return t.Nutrient2 != ""
}

// Evaluation failure reasons. A failed target never aborts evaluation of
// its siblings.
const (
	ReasonUnsupportedCombination = "unsupported target combination"
	ReasonZeroDenominator        = "zero denominator"
	ReasonUnknownNutrient        = "unknown nutrient"
)

// Evaluation is the outcome for a single target. Actual is nil when the
// target could not be computed; Reason then carries the cause. A zero
// denominator is an explicit degenerate case, distinct from an unsupported
// combination.
type Evaluation struct {
	Actual *float64
	Reason string
}

// relativeRule selects the numerator and denominator for one supported
// relative pair. The pair-to-rule mapping is an explicit policy table: the
// calories special case (kcal-equivalent conversion) is enumerated here
// rather than inferred from field names.
type relativeRule struct {
	numerator   func(Vector) (float64, bool)
	denominator func(Vector) float64
}

func fieldOf(n Nutrient) func(Vector) (float64, bool) {
	return func(v Vector) (float64, bool) { return v.Field(n) }
}

func relativeRuleFor(t Target) (relativeRule, bool) {
	// Share of total energy: both sides kcal-equivalent. Only the four
	// energy-bearing nutrients convert; anything else is unsupported.
	if t.Nutrient2 == Calories {
		n1 := t.Nutrient1
		if _, ok := KcalEquivalent(Vector{}, n1); !ok {
			return relativeRule{}, false
		}
		return relativeRule{
			numerator: func(v Vector) (float64, bool) {
				return KcalEquivalent(v, n1)
			},
			denominator: KcalValue,
		}, true
	}

	// Share of total fat, raw grams.
	if t.Nutrient2 == Fat {
		switch t.Nutrient1 {
		case Mufa, Pufa, Sfa:
			return relativeRule{
				numerator:   fieldOf(t.Nutrient1),
				denominator: func(v Vector) float64 { return v.Fat },
			}, true
		}
		return relativeRule{}, false
	}

	// Raw gram ratios, stored as percentage-of-ratio: omega6:omega3 of 4:1
	// is the value 400.
	switch {
	case t.Nutrient1 == Omega6 && t.Nutrient2 == Omega3,
		t.Nutrient1 == Pufa && t.Nutrient2 == Sfa:
		return relativeRule{
			numerator:   fieldOf(t.Nutrient1),
			denominator: func(v Vector) float64 {
				d, _ := v.Field(t.Nutrient2)
				return d
			},
		}, true
	}

	return relativeRule{}, false
}

// Evaluate computes the actual value of a single target against unrounded
// totals. It never panics and never divides into infinity: a zero
// denominator yields a nil actual with an explicit reason.
func Evaluate(totals Vector, t Target) Evaluation {
	if !t.Relative() {
		if t.Nutrient1 == Calories {
			actual := KcalValue(totals)
			return Evaluation{Actual: &actual}
		}
		actual, ok := totals.Field(t.Nutrient1)
		if !ok {
			return Evaluation{Reason: ReasonUnknownNutrient}
		}
		return Evaluation{Actual: &actual}
	}

	rule, ok := relativeRuleFor(t)
	if !ok {
		return Evaluation{Reason: ReasonUnsupportedCombination}
	}
	num, ok := rule.numerator(totals)
	if !ok {
		return Evaluation{Reason: ReasonUnsupportedCombination}
	}
	den := rule.denominator(totals)
	if den == 0 {
		return Evaluation{Reason: ReasonZeroDenominator}
	}
	actual := num / den * 100
	return Evaluation{Actual: &actual}
}

// Zone classifies an actual value against the target's bounds.
type Zone string

const (
	ZoneBelowMin Zone = "below_min"
	ZoneInRange  Zone = "in_range"
	ZoneAboveMax Zone = "above_max"
	ZoneNeutral  Zone = "neutral"
)

// Classify places actual into one of the target's zones: three zones when
// both bounds are set, two with a single bound, one neutral zone with none.
func (t Target) Classify(actual float64) Zone {
	if t.Min == nil && t.Max == nil {
		return ZoneNeutral
	}
	if t.Min != nil && actual < *t.Min {
		return ZoneBelowMin
	}
	if t.Max != nil && actual > *t.Max {
		return ZoneAboveMax
	}
	return ZoneInRange
}

// Band is one contiguous segment of the display range.
type Band struct {
	From    float64
	To      float64
	InRange bool
}

// Bands splits [0, displayMax] at the target's bounds. The segmentation is
// the rendering-independent contract for progress-bar style display: a
// below-min band, the in-range band, and an above-max band, with one-sided
// and unbounded targets degenerating to two and one bands.
func (t Target) Bands(displayMax float64) []Band {
	if t.Min == nil && t.Max == nil {
		return []Band{{From: 0, To: displayMax, InRange: true}}
	}

	var bands []Band
	lo := 0.0
	if t.Min != nil {
		min := *t.Min
		if min > displayMax {
			min = displayMax
		}
		bands = append(bands, Band{From: 0, To: min, InRange: false})
		lo = min
	}
	hi := displayMax
	if t.Max != nil && *t.Max < displayMax {
		hi = *t.Max
	}
	bands = append(bands, Band{From: lo, To: hi, InRange: true})
	if hi < displayMax {
		bands = append(bands, Band{From: hi, To: displayMax, InRange: false})
	}
	return bands
}
