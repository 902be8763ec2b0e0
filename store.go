package main

import (
	"context"
	"errors"
	"time"
)

// errNotFound is returned by store lookups when no matching record exists.
// Handlers translate it to 404; everything else is a 500.
var errNotFound = errors.New("not found")

// store is the persistence contract for the five record families. Every
// operation is keyed by user id; the four snapshot families are append-only
// (ids monotonically increasing per family, never reused), and only the user
// profile itself is replace-on-write.
//
// Two implementations exist: memStore (tests, dev without DB_URL) and
// pgStore (production, PostgreSQL via pgx).
type store interface {
	GetUser(ctx context.Context, id int) (user, error)
	GetUserByUsername(ctx context.Context, username string) (user, error)
	CreateUser(ctx context.Context, u user) (user, error)
	UpdateUser(ctx context.Context, id int, upd userUpdate) (user, error)

	CreateHealthMetric(ctx context.Context, userID int, weightKG, bmi float64, dailyCalories int) (healthMetric, error)
	GetLastHealthMetric(ctx context.Context, userID int) (healthMetric, error)
	GetHealthMetricHistory(ctx context.Context, userID int) ([]healthMetric, error)

	CreateFitnessRecommendation(ctx context.Context, userID int, content fitnessContent) (fitnessRecommendation, error)
	GetLatestFitnessRecommendation(ctx context.Context, userID int) (fitnessRecommendation, error)

	CreateNutritionRecommendation(ctx context.Context, userID int, content nutritionContent) (nutritionRecommendation, error)
	GetLatestNutritionRecommendation(ctx context.Context, userID int) (nutritionRecommendation, error)

	AddWaterIntake(ctx context.Context, userID int, amountLiters float64) (waterIntake, error)
	GetTodayWaterIntake(ctx context.Context, userID int) (float64, error)
}

// dayWindow returns the [start, end) bounds of the calendar day containing t,
// in t's location. Both store implementations aggregate "today's" water intake
// against an explicit window like this rather than comparing formatted date
// strings, so behavior near midnight is deterministic and testable.
func dayWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
