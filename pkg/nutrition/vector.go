package nutrition

// Nutrient identifies one tracked nutrient field. Calories is a
// pseudo-nutrient: it is never stored, only derived via Kcal.
type Nutrient string

const (
	Protein      Nutrient = "protein"
	Fat          Nutrient = "fat"
	Carbs        Nutrient = "carbs" // net carbs, fiber already excluded
	Fibers       Nutrient = "fibers"
	Sugar        Nutrient = "sugar"
	Mufa         Nutrient = "mufa"
	Pufa         Nutrient = "pufa"
	Sfa          Nutrient = "sfa"
	GlycemicLoad Nutrient = "glycemic_load"
	Omega3       Nutrient = "omega3"
	Omega6       Nutrient = "omega6"

	Calories Nutrient = "calories"
)

// StoredNutrients lists every nutrient that can appear on a catalog item,
// in display order. Calories is deliberately not included.
var StoredNutrients = []Nutrient{
	Protein, Fat, Carbs, Fibers, Sugar,
	Mufa, Pufa, Sfa, GlycemicLoad, Omega3, Omega6,
}

// Vector holds per-serving nutrient amounts in grams (glycemic load is
// unitless). Absent source values are stored as 0; callers must not supply
// negative amounts.
type Vector struct {
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Carbs        float64 `json:"carbs"`
	Fibers       float64 `json:"fibers"`
	Sugar        float64 `json:"sugar"`
	Mufa         float64 `json:"mufa"`
	Pufa         float64 `json:"pufa"`
	Sfa          float64 `json:"sfa"`
	GlycemicLoad float64 `json:"glycemic_load"`
	Omega3       float64 `json:"omega3"`
	Omega6       float64 `json:"omega6"`
}

// Field returns the stored value for n. The second return is false for
// Calories and unknown nutrients, which have no stored field.
func (v Vector) Field(n Nutrient) (float64, bool) {
	switch n {
	case Protein:
		return v.Protein, true
	case Fat:
		return v.Fat, true
	case Carbs:
		return v.Carbs, true
	case Fibers:
		return v.Fibers, true
	case Sugar:
		return v.Sugar, true
	case Mufa:
		return v.Mufa, true
	case Pufa:
		return v.Pufa, true
	case Sfa:
		return v.Sfa, true
	case GlycemicLoad:
		return v.GlycemicLoad, true
	case Omega3:
		return v.Omega3, true
	case Omega6:
		return v.Omega6, true
	}
	return 0, false
}

// Add returns the field-by-field sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return Vector{
		Protein:      v.Protein + o.Protein,
		Fat:          v.Fat + o.Fat,
		Carbs:        v.Carbs + o.Carbs,
		Fibers:       v.Fibers + o.Fibers,
		Sugar:        v.Sugar + o.Sugar,
		Mufa:         v.Mufa + o.Mufa,
		Pufa:         v.Pufa + o.Pufa,
		Sfa:          v.Sfa + o.Sfa,
		GlycemicLoad: v.GlycemicLoad + o.GlycemicLoad,
		Omega3:       v.Omega3 + o.Omega3,
		Omega6:       v.Omega6 + o.Omega6,
	}
}

// Scale returns v with every field multiplied by m. The multiplier is
// unitless relative to the item's serving definition: 0.5 means half of the
// defined serving, not half a gram. Multiplier validity (finite, positive)
// is enforced at the request boundary, not here.
func (v Vector) Scale(m float64) Vector {
	return Vector{
		Protein:      v.Protein * m,
		Fat:          v.Fat * m,
		Carbs:        v.Carbs * m,
		Fibers:       v.Fibers * m,
		Sugar:        v.Sugar * m,
		Mufa:         v.Mufa * m,
		Pufa:         v.Pufa * m,
		Sfa:          v.Sfa * m,
		GlycemicLoad: v.GlycemicLoad * m,
		Omega3:       v.Omega3 * m,
		Omega6:       v.Omega6 * m,
	}
}

// IsZero reports whether every field is exactly zero.
func (v Vector) IsZero() bool {
	return v == Vector{}
}
