package heuristics

// OverallScore aggregates the four quality reports into a 0..100 score.
func OverallScore(repeated []WordFrequency, impact ImpactAnalysis, brevity BrevityResult, skills SkillCoverage) int {
	score := 100

	switch n := len(repeated); {
	case n > 5:
		score -= 10
	case n > 0:
		score -= 5
	}

	switch n := len(impact.Weak); {
	case n > 5:
		score -= 15
	case n > 0:
		score -= 5
	}

	switch {
	case brevity.Score < 70:
		score -= 10
	case brevity.Score < 85:
		score -= 5
	}

	if len(skills.Missing) > 3 {
		score -= 10
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
