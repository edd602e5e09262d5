package nutrition

// Portion is one log entry's input to an aggregation: the referenced item's
// per-serving vector and the logged multiplier. Resolved is false when the
// referenced catalog item no longer exists; such portions are skipped, not
// fatal.
type Portion struct {
	PerServing Vector
	Multiplier float64
	Resolved   bool
}

// Totals is the unrounded sum of a set of portions. The raw vector is the
// source of truth for every derived calculation (kcal, targets); rounding is
// applied only to presentation copies, never here, to avoid compounding
// rounding error.
type Totals struct {
	Vector Vector
	Count  int
}

// Sum returns the field-by-field sum of vs. Empty input yields the zero
// vector. Addition is commutative, so the result is order-independent.
func Sum(vs ...Vector) Vector {
	var total Vector
	for _, v := range vs {
		total = total.Add(v)
	}
	return total
}

// Aggregate sums the scaled contributions of the resolved portions.
// Unresolved portions are excluded from both the vector and the count.
func Aggregate(portions []Portion) Totals {
	var t Totals
	for _, p := range portions {
		if !p.Resolved {
			continue
		}
		t.Vector = t.Vector.Add(p.PerServing.Scale(p.Multiplier))
		t.Count++
	}
	return t
}
