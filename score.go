package autodes

// ComputeScore derives the 0-100 daily score from the four subjective
// ratings plus the plan-adherence bonus. Ratings land on a 1-10 scale,
// so the scaled sum naturally tops out at 100; the cap guards against
// out-of-range input.
func ComputeScore(wellbeing, nutrition, motivation, relationships float64, adhered bool) float64 {
	bonus := 0.0
	if adhered {
		bonus = AdherenceBonus
	}
	score := ScoreScale * (wellbeing + nutrition + motivation + relationships + bonus)
	if score > ScoreMax {
		return ScoreMax
	}
	return score
}
