package nutrition

import "math"

// Energy multipliers adjusted for the thermic effect of food, instead of the
// naive Atwater 4/4/9 values. Fiber counts separately at its lower
// metabolizable energy.
const (
	kcalPerGramProtein = 3.0
	kcalPerGramCarbs   = 3.7
	kcalPerGramFibers  = 2.0
	kcalPerGramFat     = 9.0
)

// NetCarbs returns carbs minus fibers, clamped at zero. Carbs is defined
// system-wide as net carbohydrate, so the subtraction is a guard against
// sources that stored gross carbohydrate.
func NetCarbs(v Vector) float64 {
	return math.Max(0, v.Carbs-v.Fibers)
}

// KcalValue returns the unrounded derived energy of v. Only protein, fat,
// carbs and fibers contribute.
func KcalValue(v Vector) float64 {
	return v.Protein*kcalPerGramProtein +
		NetCarbs(v)*kcalPerGramCarbs +
		v.Fibers*kcalPerGramFibers +
		v.Fat*kcalPerGramFat
}

// Kcal returns the derived energy of v as an integer, rounded
// half-away-from-zero. A zero vector yields exactly 0.
func Kcal(v Vector) int {
	return int(math.Round(KcalValue(v)))
}

// KcalEquivalent returns the kcal contribution of a single nutrient within
// v, for relative targets expressed against total calories. The second
// return is false for nutrients that have no kcal conversion.
func KcalEquivalent(v Vector, n Nutrient) (float64, bool) {
	switch n {
	case Protein:
		return v.Protein * kcalPerGramProtein, true
	case Fat:
		return v.Fat * kcalPerGramFat, true
	case Carbs:
		return NetCarbs(v) * kcalPerGramCarbs, true
	case Fibers:
		return v.Fibers * kcalPerGramFibers, true
	}
	return 0, false
}
