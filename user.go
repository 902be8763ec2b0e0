package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// getUser returns the user's profile. The password hash is excluded from the
// JSON encoding at the struct level, so no handler can leak it by accident.
// GET /api/user/:id.
func (h *Handler) getUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	u, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errNotFound) {
			apiError(c, http.StatusNotFound, "User not found")
		} else {
			apiError(c, http.StatusInternalServerError, "Failed to fetch user")
		}
		return
	}

	c.JSON(http.StatusOK, u)
}

// updateMetrics applies new biometrics to the profile, appends a health
// metric snapshot, and refreshes both recommendation kinds.
// POST /api/user/:id/metrics.
//
// Ordering matters: the metric append must succeed before any generation is
// attempted, and a generation failure never rolls back the metric write.
func (h *Handler) updateMetrics(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	u, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errNotFound) {
			apiError(c, http.StatusNotFound, "User not found")
		} else {
			apiError(c, http.StatusInternalServerError, "Failed to fetch user")
		}
		return
	}

	var req metricsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Weight < 30 || req.Weight > 250 {
		apiError(c, http.StatusBadRequest, "weight must be between 30 and 250 kg")
		return
	}
	if req.TargetWeight != nil && (*req.TargetWeight < 30 || *req.TargetWeight > 250) {
		apiError(c, http.StatusBadRequest, "targetWeight must be between 30 and 250 kg")
		return
	}
	if _, ok := activityMultipliers[req.ActivityLevel]; !ok {
		apiError(c, http.StatusBadRequest, "activityLevel must be one of: Sedentary, Lightly Active, Moderately Active, Very Active, Extremely Active")
		return
	}
	if !validFitnessGoals[req.FitnessGoal] {
		apiError(c, http.StatusBadRequest, "fitnessGoal must be one of: Maintain Weight, Lose Weight, Gain Muscle, Improve Endurance")
		return
	}

	upd := userUpdate{
		Weight:        &req.Weight,
		TargetWeight:  req.TargetWeight,
		ActivityLevel: &req.ActivityLevel,
		FitnessGoal:   &req.FitnessGoal,
	}
	updated, err := h.store.UpdateUser(c.Request.Context(), id, upd)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to update user metrics")
		return
	}

	m := computeDerivedMetrics(req.Weight, u.Height, u.Age, req.ActivityLevel, req.FitnessGoal)
	if _, err := h.store.CreateHealthMetric(c.Request.Context(), id, req.Weight, m.BMI, m.DailyCalories); err != nil {
		log.Printf("[updateMetrics] %s: metric append failed for user %d: %v", c.GetString("request_id"), id, err)
		apiError(c, http.StatusInternalServerError, "Failed to update metrics")
		return
	}

	// Explicit refresh: regenerate both kinds from the updated biometrics.
	h.refreshRecommendations(c, updated)

	c.JSON(http.StatusOK, gin.H{
		"user":    updated,
		"message": "Metrics updated successfully",
	})
}
