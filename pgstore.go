package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStore is the production store implementation on a pgx connection pool.
// Per-family id monotonicity comes from the serial columns; same-user append
// serialization comes from the database itself.
type pgStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func newPGStore(pool *pgxpool.Pool) *pgStore {
	return &pgStore{pool: pool, now: time.Now}
}

// getDBPool creates a connection pool. We use a pool (not a single conn)
// because managed Postgres providers close idle connections aggressively.
func getDBPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return pool, nil
}

/* ─── Query helpers ──────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// pgx.ErrNoRows is mapped to errNotFound so handlers never see driver errors.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) (T, error) {
	var zero T
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, errNotFound
		}
		log.Printf("[queryOne] Scan error: %v", err)
		return zero, err
	}
	return result, nil
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

/* ─── User operations ────────────────────────────────────────────────── */

func (s *pgStore) GetUser(ctx context.Context, id int) (user, error) {
	return queryOne[user](s.pool, ctx,
		"SELECT * FROM users WHERE id = @id",
		pgx.NamedArgs{"id": id})
}

func (s *pgStore) GetUserByUsername(ctx context.Context, username string) (user, error) {
	return queryOne[user](s.pool, ctx,
		"SELECT * FROM users WHERE username = @username",
		pgx.NamedArgs{"username": username})
}

func (s *pgStore) CreateUser(ctx context.Context, u user) (user, error) {
	return queryOne[user](s.pool, ctx,
		`INSERT INTO users (username, password, email, name, age, height, weight, target_weight, activity_level, fitness_goal)
		 VALUES (@username, @password, @email, @name, @age, @height, @weight, @targetWeight, @activityLevel, @fitnessGoal)
		 RETURNING *`,
		pgx.NamedArgs{
			"username":      u.Username,
			"password":      u.Password,
			"email":         u.Email,
			"name":          u.Name,
			"age":           u.Age,
			"height":        u.Height,
			"weight":        u.Weight,
			"targetWeight":  u.TargetWeight,
			"activityLevel": u.ActivityLevel,
			"fitnessGoal":   u.FitnessGoal,
		})
}

func (s *pgStore) UpdateUser(ctx context.Context, id int, upd userUpdate) (user, error) {
	// COALESCE keeps the current value for fields the caller didn't send.
	return queryOne[user](s.pool, ctx,
		`UPDATE users SET
			weight         = COALESCE(@weight, weight),
			target_weight  = COALESCE(@targetWeight, target_weight),
			activity_level = COALESCE(@activityLevel, activity_level),
			fitness_goal   = COALESCE(@fitnessGoal, fitness_goal)
		 WHERE id = @id
		 RETURNING *`,
		pgx.NamedArgs{
			"id":            id,
			"weight":        upd.Weight,
			"targetWeight":  upd.TargetWeight,
			"activityLevel": upd.ActivityLevel,
			"fitnessGoal":   upd.FitnessGoal,
		})
}

/* ─── Health metric operations ───────────────────────────────────────── */

func (s *pgStore) CreateHealthMetric(ctx context.Context, userID int, weightKG, bmi float64, dailyCalories int) (healthMetric, error) {
	return queryOne[healthMetric](s.pool, ctx,
		`INSERT INTO health_metrics (user_id, weight, bmi, daily_calories)
		 VALUES (@userID, @weight, @bmi, @dailyCalories)
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "weight": weightKG, "bmi": bmi, "dailyCalories": dailyCalories})
}

func (s *pgStore) GetLastHealthMetric(ctx context.Context, userID int) (healthMetric, error) {
	return queryOne[healthMetric](s.pool, ctx,
		`SELECT * FROM health_metrics
		 WHERE user_id = @userID
		 ORDER BY id DESC LIMIT 1`,
		pgx.NamedArgs{"userID": userID})
}

func (s *pgStore) GetHealthMetricHistory(ctx context.Context, userID int) ([]healthMetric, error) {
	return queryMany[healthMetric](s.pool, ctx,
		`SELECT * FROM health_metrics
		 WHERE user_id = @userID
		 ORDER BY id ASC`,
		pgx.NamedArgs{"userID": userID})
}

/* ─── Recommendation operations ──────────────────────────────────────── */

func (s *pgStore) CreateFitnessRecommendation(ctx context.Context, userID int, content fitnessContent) (fitnessRecommendation, error) {
	payload, err := json.Marshal(content)
	if err != nil {
		return fitnessRecommendation{}, fmt.Errorf("encode content: %w", err)
	}
	return queryOne[fitnessRecommendation](s.pool, ctx,
		`INSERT INTO fitness_recommendations (user_id, content)
		 VALUES (@userID, @content)
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "content": string(payload)})
}

func (s *pgStore) GetLatestFitnessRecommendation(ctx context.Context, userID int) (fitnessRecommendation, error) {
	return queryOne[fitnessRecommendation](s.pool, ctx,
		`SELECT * FROM fitness_recommendations
		 WHERE user_id = @userID
		 ORDER BY id DESC LIMIT 1`,
		pgx.NamedArgs{"userID": userID})
}

func (s *pgStore) CreateNutritionRecommendation(ctx context.Context, userID int, content nutritionContent) (nutritionRecommendation, error) {
	payload, err := json.Marshal(content)
	if err != nil {
		return nutritionRecommendation{}, fmt.Errorf("encode content: %w", err)
	}
	return queryOne[nutritionRecommendation](s.pool, ctx,
		`INSERT INTO nutrition_recommendations (user_id, content)
		 VALUES (@userID, @content)
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "content": string(payload)})
}

func (s *pgStore) GetLatestNutritionRecommendation(ctx context.Context, userID int) (nutritionRecommendation, error) {
	return queryOne[nutritionRecommendation](s.pool, ctx,
		`SELECT * FROM nutrition_recommendations
		 WHERE user_id = @userID
		 ORDER BY id DESC LIMIT 1`,
		pgx.NamedArgs{"userID": userID})
}

/* ─── Water intake operations ────────────────────────────────────────── */

func (s *pgStore) AddWaterIntake(ctx context.Context, userID int, amountLiters float64) (waterIntake, error) {
	return queryOne[waterIntake](s.pool, ctx,
		`INSERT INTO water_intakes (user_id, amount)
		 VALUES (@userID, @amount)
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "amount": amountLiters})
}

func (s *pgStore) GetTodayWaterIntake(ctx context.Context, userID int) (float64, error) {
	// The day window is computed server-side in Go so "today" means the same
	// thing here as it does in memStore, regardless of the database timezone.
	start, end := dayWindow(s.now())
	var total float64
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM water_intakes
		 WHERE user_id = @userID AND recorded_at >= @start AND recorded_at < @end`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end},
	).Scan(&total)
	if err != nil {
		log.Printf("[GetTodayWaterIntake] Query error: %v", err)
		return 0, err
	}
	return total, nil
}
