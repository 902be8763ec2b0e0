package main

import "time"

/* ─── Domain records ─────────────────────────────────────────────────── */

// user maps to the users table. Password is hidden from JSON responses.
type user struct {
	ID            int       `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	Password      string    `json:"-" db:"password"`
	Email         string    `json:"email" db:"email"`
	Name          string    `json:"name" db:"name"`
	Age           int       `json:"age" db:"age"`
	Height        float64   `json:"height" db:"height"`              // cm
	Weight        float64   `json:"weight" db:"weight"`              // kg
	TargetWeight  float64   `json:"targetWeight" db:"target_weight"` // kg
	ActivityLevel string    `json:"activityLevel" db:"activity_level"`
	FitnessGoal   string    `json:"fitnessGoal" db:"fitness_goal"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// userUpdate carries a partial profile update. Only non-nil fields are applied —
// same pointer convention as the request bodies (nil means "keep current value").
type userUpdate struct {
	Weight        *float64
	TargetWeight  *float64
	ActivityLevel *string
	FitnessGoal   *string
}

// healthMetric is one immutable snapshot in a user's append-only metric history.
// The latest entry is the user's current derived state.
type healthMetric struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"userId" db:"user_id"`
	Weight        float64   `json:"weight" db:"weight"` // kg at recording time
	BMI           float64   `json:"bmi" db:"bmi"`
	DailyCalories int       `json:"dailyCalories" db:"daily_calories"`
	RecordedAt    time.Time `json:"recordedAt" db:"recorded_at"`
}

// fitnessRecommendation and nutritionRecommendation are two parallel
// append-only snapshot families with identical latest-wins semantics.
type fitnessRecommendation struct {
	ID          int            `json:"id" db:"id"`
	UserID      int            `json:"userId" db:"user_id"`
	Content     fitnessContent `json:"content" db:"content"`
	GeneratedAt time.Time      `json:"generatedAt" db:"generated_at"`
}

type nutritionRecommendation struct {
	ID          int              `json:"id" db:"id"`
	UserID      int              `json:"userId" db:"user_id"`
	Content     nutritionContent `json:"content" db:"content"`
	GeneratedAt time.Time        `json:"generatedAt" db:"generated_at"`
}

// waterIntake is a single logged glass/bottle. Events are never aggregated
// destructively — daily totals are recomputed from the event log.
type waterIntake struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"userId" db:"user_id"`
	Amount     float64   `json:"amount" db:"amount"` // liters
	RecordedAt time.Time `json:"recordedAt" db:"recorded_at"`
}

/* ─── Request / response shapes ──────────────────────────────────────── */

// metricsUpdateRequest is the body for POST /api/user/:id/metrics.
// TargetWeight is optional; the current value is kept when omitted.
type metricsUpdateRequest struct {
	Weight        float64  `json:"weight"`
	TargetWeight  *float64 `json:"targetWeight"`
	ActivityLevel string   `json:"activityLevel"`
	FitnessGoal   string   `json:"fitnessGoal"`
}

// waterIntakeRequest is the body for POST /api/user/:id/water-intake.
type waterIntakeRequest struct {
	Amount float64 `json:"amount"`
}

// waterStatus is the daily hydration summary returned by both water endpoints.
// Percentage is clamped at 100 — over-consumption is not reported as >100%.
type waterStatus struct {
	Amount     float64 `json:"amount"`
	Target     float64 `json:"target"`
	Percentage int     `json:"percentage"`
}
