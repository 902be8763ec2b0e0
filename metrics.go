package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealthMetrics returns the user's latest health metric snapshot.
// GET /api/user/:id/health-metrics.
//
// Lazy bootstrap: a user who has never posted a metrics update gets an
// initial snapshot computed from their stored profile, persisted so
// subsequent reads are plain lookups.
func (h *Handler) getHealthMetrics(c *gin.Context) {
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

	last, err := h.store.GetLastHealthMetric(c.Request.Context(), id)
	if err == nil {
		c.JSON(http.StatusOK, last)
		return
	}
	if !errors.Is(err, errNotFound) {
		apiError(c, http.StatusInternalServerError, "Failed to fetch health metrics")
		return
	}

	m := computeDerivedMetrics(u.Weight, u.Height, u.Age, u.ActivityLevel, u.FitnessGoal)
	metric, err := h.store.CreateHealthMetric(c.Request.Context(), id, u.Weight, m.BMI, m.DailyCalories)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to record health metrics")
		return
	}

	c.JSON(http.StatusOK, metric)
}

// getHealthMetricHistory returns the user's full metric history, oldest first.
// GET /api/user/:id/health-metrics/history. Returns an empty array (not null)
// for a user with no snapshots yet.
func (h *Handler) getHealthMetricHistory(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	if _, err := h.store.GetUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, errNotFound) {
			apiError(c, http.StatusNotFound, "User not found")
		} else {
			apiError(c, http.StatusInternalServerError, "Failed to fetch user")
		}
		return
	}

	history, err := h.store.GetHealthMetricHistory(c.Request.Context(), id)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to fetch health metrics")
		return
	}
	if history == nil {
		history = []healthMetric{}
	}

	c.JSON(http.StatusOK, history)
}
