package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// seedTestUser inserts the standard test profile and returns it.
func seedTestUser(t *testing.T, s *memStore) user {
	t.Helper()
	u, err := s.CreateUser(context.Background(), user{
		Username:      "johndoe",
		Password:      "hash",
		Email:         "john.doe@example.com",
		Name:          "John Doe",
		Age:           32,
		Height:        178,
		Weight:        78,
		TargetWeight:  72.5,
		ActivityLevel: "Moderately Active",
		FitnessGoal:   "Lose Weight",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// newTestRouter builds a Gin engine in test mode with all routes registered.
func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.registerRoutes(router)
	return router
}

// doJSON sends a request with a JSON body and returns the recorder.
func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

/* ─── Mock OpenAI server ─────────────────────────────────────────────── */

// mockGenerator is an httptest stand-in for the OpenAI API. It inspects the
// system prompt to decide whether a fitness or nutrition payload is wanted,
// counts calls, and can be switched into failure or bad-payload modes.
type mockGenerator struct {
	srv *httptest.Server

	mu           sync.Mutex
	calls        int
	failStatus   int    // when non-zero, respond with this status
	overrideJSON string // when non-empty, return this content verbatim
}

// Calls returns how many generation requests the mock has served.
func (m *mockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockGenerator) Fail(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failStatus = status
}

func (m *mockGenerator) Return(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrideJSON = content
}

func (m *mockGenerator) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.calls++
	failStatus := m.failStatus
	override := m.overrideJSON
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failStatus != 0 {
		w.WriteHeader(failStatus)
		json.NewEncoder(w).Encode(map[string]string{"error": "mock failure"})
		return
	}

	var req openAIRequest
	json.NewDecoder(r.Body).Decode(&req)

	content := override
	if content == "" {
		if len(req.Messages) > 0 && req.Messages[0].Content == nutritionSystemPrompt {
			content = generatedNutritionJSON()
		} else {
			content = generatedFitnessJSON()
		}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	})
}

func newMockGenerator() *mockGenerator {
	m := &mockGenerator{}
	m.srv = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// newTestHandler wires a Handler onto a fresh memStore and a mock generator.
func newTestHandler(t *testing.T) (*Handler, *memStore, *mockGenerator) {
	t.Helper()
	mock := newMockGenerator()
	t.Cleanup(mock.srv.Close)

	mem := newMemStore()
	h := &Handler{
		store: mem,
		cfg: config{
			OpenAIAPIKey:      "test-key",
			OpenAIBaseURL:     mock.srv.URL,
			WaterTargetLiters: 3.2,
		},
	}
	return h, mem, mock
}

/* ─── Generated-content fixtures ─────────────────────────────────────── */

// generatedFitnessJSON is a schema-valid fitness payload distinguishable from
// the fallback by its titles.
func generatedFitnessJSON() string {
	fc := fallbackFitnessContent()
	fc.Cardio.Title = "Generated Cardio Plan"
	fc.Strength.Title = "Generated Strength Plan"
	b, _ := json.Marshal(fc)
	return string(b)
}

func generatedNutritionJSON() string {
	nc := fallbackNutritionContent()
	nc.CalorieTarget.Title = "Generated Calorie Target"
	nc.CalorieTarget.Amount = 2224
	b, _ := json.Marshal(nc)
	return string(b)
}
