package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler holds shared dependencies (store, config) for all route handlers.
// The store is an interface so tests run against memStore while production
// wires pgStore; the OpenAI base URL in cfg is overridable for tests.
type Handler struct {
	store store
	cfg   config
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// userIDParam parses the :id path parameter. On failure it writes the 400
// response itself and returns ok=false so handlers can bail with a bare return.
func userIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "Invalid user ID")
		return 0, false
	}
	return id, true
}

// requestID tags every request with a UUID, echoed in the X-Request-ID header
// and attached to operational log lines so generator failures are traceable.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/user/:id", h.getUser)
	api.POST("/user/:id/metrics", h.updateMetrics)
	api.GET("/user/:id/health-metrics", h.getHealthMetrics)
	api.GET("/user/:id/health-metrics/history", h.getHealthMetricHistory)
	api.GET("/user/:id/fitness-recommendations", h.getFitnessRecommendations)
	api.GET("/user/:id/nutrition-recommendations", h.getNutritionRecommendations)
	api.GET("/user/:id/water-intake", h.getWaterIntake)
	api.POST("/user/:id/water-intake", h.addWaterIntake)
}
