package main

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// waterStatusFor reduces a daily total to the response shape. Percentage is
// clamped at 100 so over-consumption never reads as >100%.
func waterStatusFor(amount, target float64) waterStatus {
	pct := int(math.Round(amount / target * 100))
	if pct > 100 {
		pct = 100
	}
	return waterStatus{Amount: amount, Target: target, Percentage: pct}
}

// getWaterIntake returns today's hydration status.
// GET /api/user/:id/water-intake.
func (h *Handler) getWaterIntake(c *gin.Context) {
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

	amount, err := h.store.GetTodayWaterIntake(c.Request.Context(), id)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to fetch water intake")
		return
	}

	c.JSON(http.StatusOK, waterStatusFor(amount, h.cfg.WaterTargetLiters))
}

// addWaterIntake records one intake event and returns the updated daily
// status. POST /api/user/:id/water-intake.
//
// Two identical posts are two distinct events and an additively larger total;
// deduplicating same-glass submissions is the UI's job.
func (h *Handler) addWaterIntake(c *gin.Context) {
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

	var req waterIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid water amount")
		return
	}
	if req.Amount <= 0 {
		apiError(c, http.StatusBadRequest, "Invalid water amount")
		return
	}

	if _, err := h.store.AddWaterIntake(c.Request.Context(), id, req.Amount); err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to record water intake")
		return
	}

	total, err := h.store.GetTodayWaterIntake(c.Request.Context(), id)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to fetch water intake")
		return
	}

	c.JSON(http.StatusOK, waterStatusFor(total, h.cfg.WaterTargetLiters))
}
