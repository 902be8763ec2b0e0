package main

import (
	"math"
	"testing"
)

/* ─── BMI tests ──────────────────────────────────────────────────────── */

// TestComputeBMI verifies the formula weight(kg)/height(m)² against
// hand-computed values to floating tolerance.
func TestComputeBMI(t *testing.T) {
	cases := []struct {
		name     string
		weightKG float64
		heightCM float64
		want     float64
	}{
		{"seed profile", 78, 178, 78 / (1.78 * 1.78)},
		{"tall light", 55, 190, 55 / (1.9 * 1.9)},
		{"short heavy", 95, 155, 95 / (1.55 * 1.55)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := computeBMI(tc.weightKG, tc.heightCM)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("computeBMI(%v, %v) = %v, want %v", tc.weightKG, tc.heightCM, got, tc.want)
			}
		})
	}
}

/* ─── BMR / TDEE tests ───────────────────────────────────────────────── */

// TestComputeDerivedMetrics_BMR verifies the Mifflin-St Jeor formula with the
// male constant: 10*78 + 6.25*178 - 5*32 + 5 = 1737.5.
func TestComputeDerivedMetrics_BMR(t *testing.T) {
	m := computeDerivedMetrics(78, 178, 32, "Moderately Active", "Maintain Weight")
	if math.Abs(m.BMR-1737.5) > 1e-9 {
		t.Errorf("BMR = %v, want 1737.5", m.BMR)
	}
}

// TestComputeDerivedMetrics_ActivityMultipliers verifies the exact multiplier
// for each of the five enumerated levels.
func TestComputeDerivedMetrics_ActivityMultipliers(t *testing.T) {
	cases := []struct {
		level string
		mult  float64
	}{
		{"Sedentary", 1.2},
		{"Lightly Active", 1.375},
		{"Moderately Active", 1.55},
		{"Very Active", 1.725},
		{"Extremely Active", 1.9},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			m := computeDerivedMetrics(78, 178, 32, tc.level, "Maintain Weight")
			want := m.BMR * tc.mult
			if math.Abs(m.TDEE-want) > 1e-9 {
				t.Errorf("TDEE = %v, want BMR*%v = %v", m.TDEE, tc.mult, want)
			}
		})
	}
}

// TestComputeDerivedMetrics_UnknownLevelDefaults verifies that any
// unrecognized activity level falls back to the 1.55 multiplier.
func TestComputeDerivedMetrics_UnknownLevelDefaults(t *testing.T) {
	for _, level := range []string{"", "couch potato", "MODERATELY ACTIVE"} {
		m := computeDerivedMetrics(78, 178, 32, level, "Maintain Weight")
		want := m.BMR * 1.55
		if math.Abs(m.TDEE-want) > 1e-9 {
			t.Errorf("level %q: TDEE = %v, want %v", level, m.TDEE, want)
		}
	}
}

/* ─── Goal adjustment tests ──────────────────────────────────────────── */

// TestComputeDerivedMetrics_GoalAdjustments verifies the per-goal calorie
// deltas: Lose Weight -500, Gain Muscle +300, others unchanged.
func TestComputeDerivedMetrics_GoalAdjustments(t *testing.T) {
	base := computeDerivedMetrics(78, 178, 32, "Moderately Active", "Maintain Weight")

	cases := []struct {
		goal  string
		delta float64
	}{
		{"Lose Weight", -500},
		{"Gain Muscle", 300},
		{"Maintain Weight", 0},
		{"Improve Endurance", 0},
	}

	for _, tc := range cases {
		t.Run(tc.goal, func(t *testing.T) {
			m := computeDerivedMetrics(78, 178, 32, "Moderately Active", tc.goal)
			want := int(math.Round(base.TDEE + tc.delta))
			if m.DailyCalories != want {
				t.Errorf("DailyCalories = %d, want %d", m.DailyCalories, want)
			}
		})
	}
}

/* ─── Calorie floor tests ────────────────────────────────────────────── */

// TestComputeDerivedMetrics_CalorieFloor verifies the 1200-calorie safety
// floor: a small sedentary profile on a deficit would land at ~316 without it.
func TestComputeDerivedMetrics_CalorieFloor(t *testing.T) {
	m := computeDerivedMetrics(30, 140, 100, "Sedentary", "Lose Weight")
	if m.DailyCalories != minDailyCalories {
		t.Errorf("DailyCalories = %d, want floor %d", m.DailyCalories, minDailyCalories)
	}
}

// TestComputeDerivedMetrics_FloorHoldsEverywhere sweeps a grid of extreme
// inputs and asserts the target never drops below 1200.
func TestComputeDerivedMetrics_FloorHoldsEverywhere(t *testing.T) {
	weights := []float64{30, 60, 120, 250}
	heights := []float64{140, 170, 210}
	ages := []int{16, 45, 100}
	levels := []string{"Sedentary", "Moderately Active", "Extremely Active", "bogus"}
	goals := []string{"Lose Weight", "Gain Muscle", "Maintain Weight", "Improve Endurance"}

	for _, w := range weights {
		for _, h := range heights {
			for _, a := range ages {
				for _, l := range levels {
					for _, g := range goals {
						m := computeDerivedMetrics(w, h, a, l, g)
						if m.DailyCalories < minDailyCalories {
							t.Fatalf("DailyCalories = %d for (w=%v h=%v a=%d %q %q), below floor",
								m.DailyCalories, w, h, a, l, g)
						}
					}
				}
			}
		}
	}
}
