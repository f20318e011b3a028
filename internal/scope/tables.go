package scope

import "strings"

// WeeksPerMonth converts weekly figures to monthly ones.
const WeeksPerMonth = 4.33

var visitsPerWeek = map[FrequencyCode]float64{
	FrequencyDaily:      5,
	FrequencyFiveWeekly: 5,
	FrequencyThreeWeek:  3,
	FrequencyTwiceWeek:  2,
	FrequencyWeekly:     1,
	FrequencyBiweekly:   0.5,
	FrequencyMonthly:    0.23,
	FrequencyAsNeeded:   0,
}

var difficultyMultipliers = map[Difficulty]float64{
	DifficultyEasy:      0.85,
	DifficultyStandard:  1.0,
	DifficultyDifficult: 1.25,
}

// VisitsPerWeek returns the weekly visit count for a frequency code.
func VisitsPerWeek(code FrequencyCode) (float64, bool) {
	v, ok := visitsPerWeek[FrequencyCode(strings.ToUpper(strings.TrimSpace(string(code))))]
	return v, ok
}

// DifficultyMultiplier returns the multiplier for a difficulty. An empty
// difficulty is read as STANDARD.
func DifficultyMultiplier(d Difficulty) (float64, bool) {
	if strings.TrimSpace(string(d)) == "" {
		return 1.0, true
	}
	v, ok := difficultyMultipliers[Difficulty(strings.ToUpper(strings.TrimSpace(string(d))))]
	return v, ok
}

// FrequencyCodes lists every known frequency code.
func FrequencyCodes() []FrequencyCode {
	return []FrequencyCode{
		FrequencyDaily, FrequencyFiveWeekly, FrequencyThreeWeek, FrequencyTwiceWeek,
		FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyAsNeeded,
	}
}
