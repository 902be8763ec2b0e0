package main

import "math"

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used for
// input validation in updateMetrics.
var activityMultipliers = map[string]float64{
	"Sedentary":         1.2,
	"Lightly Active":    1.375,
	"Moderately Active": 1.55,
	"Very Active":       1.725,
	"Extremely Active":  1.9,
}

// defaultActivityMultiplier is applied when a stored profile carries an
// unrecognized activity level (rows written before validation tightened).
const defaultActivityMultiplier = 1.55

// validFitnessGoals is the set of allowed fitness goal strings.
// Reject unknown values with 400 rather than silently computing a maintenance target.
var validFitnessGoals = map[string]bool{
	"Maintain Weight":   true,
	"Lose Weight":       true,
	"Gain Muscle":       true,
	"Improve Endurance": true,
}

// minDailyCalories is the hard safety floor for any computed calorie target.
const minDailyCalories = 1200

// derivedMetrics holds the values computed from a user's biometrics.
type derivedMetrics struct {
	BMI           float64
	BMR           float64
	TDEE          float64
	DailyCalories int
}

// computeBMI returns weight(kg) / height(m)². No range validation here —
// callers are responsible for rejecting implausible biometrics.
func computeBMI(weightKG, heightCM float64) float64 {
	h := heightCM / 100
	return weightKG / (h * h)
}

// computeDerivedMetrics computes BMI, BMR (Mifflin-St Jeor), TDEE, and the
// goal-adjusted daily calorie target.
//
// The male BMR constant (+5) is used unconditionally: the user schema has no
// sex field, so there is nothing to branch on. Adding the field would change
// stored targets for existing users, so the limitation stands until the
// schema grows one.
func computeDerivedMetrics(weightKG, heightCM float64, ageYears int, activityLevel, fitnessGoal string) derivedMetrics {
	bmi := computeBMI(weightKG, heightCM)
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(ageYears) + 5

	mult, found := activityMultipliers[activityLevel]
	if !found {
		mult = defaultActivityMultiplier
	}
	tdee := bmr * mult

	adjusted := tdee
	switch fitnessGoal {
	case "Lose Weight":
		adjusted = tdee - 500
	case "Gain Muscle":
		adjusted = tdee + 300
	}

	daily := int(math.Round(adjusted))
	if daily < minDailyCalories {
		daily = minDailyCalories
	}

	return derivedMetrics{BMI: bmi, BMR: bmr, TDEE: tdee, DailyCalories: daily}
}
