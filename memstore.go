package main

import (
	"context"
	"sync"
	"time"
)

// memStore is the in-memory store implementation. It backs tests and local
// development when DB_URL is unset. A single mutex serializes all access:
// appends for the same user can never lose updates, and cross-user traffic
// is light enough that finer-grained locking isn't worth the complexity.
type memStore struct {
	mu  sync.Mutex
	now func() time.Time // injectable clock for day-boundary tests

	users         map[int]user
	healthMetrics map[int][]healthMetric
	fitnessRecs   map[int][]fitnessRecommendation
	nutritionRecs map[int][]nutritionRecommendation
	waterIntakes  map[int][]waterIntake

	nextUserID      int
	nextMetricID    int
	nextFitnessID   int
	nextNutritionID int
	nextWaterID     int
}

func newMemStore() *memStore {
	return &memStore{
		now:           time.Now,
		users:         make(map[int]user),
		healthMetrics: make(map[int][]healthMetric),
		fitnessRecs:   make(map[int][]fitnessRecommendation),
		nutritionRecs: make(map[int][]nutritionRecommendation),
		waterIntakes:  make(map[int][]waterIntake),

		nextUserID:      1,
		nextMetricID:    1,
		nextFitnessID:   1,
		nextNutritionID: 1,
		nextWaterID:     1,
	}
}

/* ─── User operations ────────────────────────────────────────────────── */

func (s *memStore) GetUser(_ context.Context, id int) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user{}, errNotFound
	}
	return u, nil
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user{}, errNotFound
}

func (s *memStore) CreateUser(_ context.Context, u user) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUserID
	s.nextUserID++
	u.CreatedAt = s.now()
	s.users[u.ID] = u

	// Initialize the user's record families so history reads are always defined.
	s.healthMetrics[u.ID] = []healthMetric{}
	s.fitnessRecs[u.ID] = []fitnessRecommendation{}
	s.nutritionRecs[u.ID] = []nutritionRecommendation{}
	s.waterIntakes[u.ID] = []waterIntake{}

	return u, nil
}

func (s *memStore) UpdateUser(_ context.Context, id int, upd userUpdate) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user{}, errNotFound
	}

	if upd.Weight != nil {
		u.Weight = *upd.Weight
	}
	if upd.TargetWeight != nil {
		u.TargetWeight = *upd.TargetWeight
	}
	if upd.ActivityLevel != nil {
		u.ActivityLevel = *upd.ActivityLevel
	}
	if upd.FitnessGoal != nil {
		u.FitnessGoal = *upd.FitnessGoal
	}

	s.users[id] = u
	return u, nil
}

/* ─── Health metric operations ───────────────────────────────────────── */

func (s *memStore) CreateHealthMetric(_ context.Context, userID int, weightKG, bmi float64, dailyCalories int) (healthMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := healthMetric{
		ID:            s.nextMetricID,
		UserID:        userID,
		Weight:        weightKG,
		BMI:           bmi,
		DailyCalories: dailyCalories,
		RecordedAt:    s.now(),
	}
	s.nextMetricID++
	s.healthMetrics[userID] = append(s.healthMetrics[userID], m)
	return m, nil
}

func (s *memStore) GetLastHealthMetric(_ context.Context, userID int) (healthMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics := s.healthMetrics[userID]
	if len(metrics) == 0 {
		return healthMetric{}, errNotFound
	}
	return metrics[len(metrics)-1], nil
}

func (s *memStore) GetHealthMetricHistory(_ context.Context, userID int) ([]healthMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]healthMetric, len(s.healthMetrics[userID]))
	copy(history, s.healthMetrics[userID])
	return history, nil
}

/* ─── Recommendation operations ──────────────────────────────────────── */

func (s *memStore) CreateFitnessRecommendation(_ context.Context, userID int, content fitnessContent) (fitnessRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := fitnessRecommendation{
		ID:          s.nextFitnessID,
		UserID:      userID,
		Content:     content,
		GeneratedAt: s.now(),
	}
	s.nextFitnessID++
	s.fitnessRecs[userID] = append(s.fitnessRecs[userID], rec)
	return rec, nil
}

func (s *memStore) GetLatestFitnessRecommendation(_ context.Context, userID int) (fitnessRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.fitnessRecs[userID]
	if len(recs) == 0 {
		return fitnessRecommendation{}, errNotFound
	}
	return recs[len(recs)-1], nil
}

func (s *memStore) CreateNutritionRecommendation(_ context.Context, userID int, content nutritionContent) (nutritionRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := nutritionRecommendation{
		ID:          s.nextNutritionID,
		UserID:      userID,
		Content:     content,
		GeneratedAt: s.now(),
	}
	s.nextNutritionID++
	s.nutritionRecs[userID] = append(s.nutritionRecs[userID], rec)
	return rec, nil
}

func (s *memStore) GetLatestNutritionRecommendation(_ context.Context, userID int) (nutritionRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.nutritionRecs[userID]
	if len(recs) == 0 {
		return nutritionRecommendation{}, errNotFound
	}
	return recs[len(recs)-1], nil
}

/* ─── Water intake operations ────────────────────────────────────────── */

func (s *memStore) AddWaterIntake(_ context.Context, userID int, amountLiters float64) (waterIntake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := waterIntake{
		ID:         s.nextWaterID,
		UserID:     userID,
		Amount:     amountLiters,
		RecordedAt: s.now(),
	}
	s.nextWaterID++
	s.waterIntakes[userID] = append(s.waterIntakes[userID], w)
	return w, nil
}

func (s *memStore) GetTodayWaterIntake(_ context.Context, userID int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, end := dayWindow(s.now())
	var total float64
	for _, w := range s.waterIntakes[userID] {
		if !w.RecordedAt.Before(start) && w.RecordedAt.Before(end) {
			total += w.Amount
		}
	}
	return total, nil
}
