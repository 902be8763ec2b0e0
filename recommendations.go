package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// The recommendation cache policy: content is generated lazily once per
// (user, kind) and then served from storage indefinitely. Only a metrics
// update regenerates it. When the generator fails, the fixed fallback is
// returned but NOT persisted — the snapshot history only ever contains
// validated generator output, and the next read retries generation.

// getFitnessRecommendations returns the latest fitness snapshot, generating
// and persisting one first if none exists. GET /api/user/:id/fitness-recommendations.
func (h *Handler) getFitnessRecommendations(c *gin.Context) {
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

	rec, err := h.store.GetLatestFitnessRecommendation(c.Request.Context(), id)
	if err == nil {
		c.JSON(http.StatusOK, rec)
		return
	}
	if !errors.Is(err, errNotFound) {
		apiError(c, http.StatusInternalServerError, "Failed to fetch recommendations")
		return
	}

	content, genErr := h.generateFitnessContent(c.Request.Context(), u)
	if genErr != nil {
		log.Printf("[fitnessRecommendations] %s: generator failed for user %d: %v", c.GetString("request_id"), id, genErr)
		c.JSON(http.StatusOK, fitnessRecommendation{
			UserID:      id,
			Content:     fallbackFitnessContent(),
			GeneratedAt: time.Now(),
		})
		return
	}

	rec, err = h.store.CreateFitnessRecommendation(c.Request.Context(), id, content)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to store recommendations")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// getNutritionRecommendations is the nutrition counterpart of
// getFitnessRecommendations. GET /api/user/:id/nutrition-recommendations.
func (h *Handler) getNutritionRecommendations(c *gin.Context) {
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

	rec, err := h.store.GetLatestNutritionRecommendation(c.Request.Context(), id)
	if err == nil {
		c.JSON(http.StatusOK, rec)
		return
	}
	if !errors.Is(err, errNotFound) {
		apiError(c, http.StatusInternalServerError, "Failed to fetch recommendations")
		return
	}

	content, genErr := h.generateNutritionContent(c.Request.Context(), u)
	if genErr != nil {
		log.Printf("[nutritionRecommendations] %s: generator failed for user %d: %v", c.GetString("request_id"), id, genErr)
		c.JSON(http.StatusOK, nutritionRecommendation{
			UserID:      id,
			Content:     fallbackNutritionContent(),
			GeneratedAt: time.Now(),
		})
		return
	}

	rec, err = h.store.CreateNutritionRecommendation(c.Request.Context(), id, content)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to store recommendations")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// refreshRecommendations regenerates and persists both recommendation kinds
// from the given (already updated) profile. Failures are logged and swallowed:
// the caller's metric write has already succeeded and must not be undone by a
// flaky generator. Fitness first, then nutrition — same order as the reads.
func (h *Handler) refreshRecommendations(c *gin.Context, u user) {
	ctx := c.Request.Context()
	reqID := c.GetString("request_id")

	if content, err := h.generateFitnessContent(ctx, u); err != nil {
		log.Printf("[refreshRecommendations] %s: fitness generator failed for user %d: %v", reqID, u.ID, err)
	} else if _, err := h.store.CreateFitnessRecommendation(ctx, u.ID, content); err != nil {
		log.Printf("[refreshRecommendations] %s: fitness append failed for user %d: %v", reqID, u.ID, err)
	}

	if content, err := h.generateNutritionContent(ctx, u); err != nil {
		log.Printf("[refreshRecommendations] %s: nutrition generator failed for user %d: %v", reqID, u.ID, err)
	} else if _, err := h.store.CreateNutritionRecommendation(ctx, u.ID, content); err != nil {
		log.Printf("[refreshRecommendations] %s: nutrition append failed for user %d: %v", reqID, u.ID, err)
	}
}
