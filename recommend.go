package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

/* ─── Recommendation content schemas ─────────────────────────────────── */

// recSection is a titled free-text block shared by both recommendation kinds.
type recSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// recAmountSection is a recSection with a numeric headline value attached.
type recAmountSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      int    `json:"amount"`
}

// scheduleDay is one entry in the weekly workout schedule. Color is the UI
// tag the dashboard uses to tint the day's card.
type scheduleDay struct {
	WorkoutType string `json:"workoutType"`
	Color       string `json:"color"`
}

// fitnessContent is the structured payload stored in fitness_recommendations.
// WeeklySchedule is keyed by lowercase day name and must carry all seven days.
type fitnessContent struct {
	Cardio         recSection             `json:"cardio"`
	Strength       recSection             `json:"strength"`
	Flexibility    recSection             `json:"flexibility"`
	WeeklySchedule map[string]scheduleDay `json:"weeklySchedule"`
}

// macroSplit is the macro-percentage triple; the three values must sum to 100.
type macroSplit struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

// mealEntry is one meal in the daily plan.
type mealEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	Protein     int    `json:"protein"`
	Carbs       int    `json:"carbs"`
	Fats        int    `json:"fats"`
}

type mealPlan struct {
	Breakfast mealEntry `json:"breakfast"`
	Lunch     mealEntry `json:"lunch"`
	Dinner    mealEntry `json:"dinner"`
}

// nutritionContent is the structured payload stored in nutrition_recommendations.
type nutritionContent struct {
	CalorieTarget     recAmountSection `json:"calorieTarget"`
	ProteinIntake     recAmountSection `json:"proteinIntake"`
	MealTiming        recSection       `json:"mealTiming"`
	MacroDistribution macroSplit       `json:"macroDistribution"`
	MealPlan          mealPlan         `json:"mealPlan"`
}

/* ─── Content validation ─────────────────────────────────────────────── */

// weekDays is the required key set for fitnessContent.WeeklySchedule.
var weekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// validateFitnessContent checks the generator payload before it is stored.
// A payload that fails here is treated the same as a failed generator call:
// malformed output must never corrupt the snapshot history.
func validateFitnessContent(fc fitnessContent) error {
	if fc.Cardio.Title == "" || fc.Strength.Title == "" || fc.Flexibility.Title == "" {
		return fmt.Errorf("missing recommendation section")
	}
	for _, day := range weekDays {
		entry, ok := fc.WeeklySchedule[day]
		if !ok || entry.WorkoutType == "" {
			return fmt.Errorf("weekly schedule missing %s", day)
		}
	}
	return nil
}

// validateNutritionContent checks the generator payload before it is stored.
// The macro split must sum to 100; ±1 is tolerated for model rounding.
func validateNutritionContent(nc nutritionContent) error {
	if nc.CalorieTarget.Title == "" || nc.ProteinIntake.Title == "" || nc.MealTiming.Title == "" {
		return fmt.Errorf("missing recommendation section")
	}
	sum := nc.MacroDistribution.Protein + nc.MacroDistribution.Carbs + nc.MacroDistribution.Fats
	if sum < 99 || sum > 101 {
		return fmt.Errorf("macro distribution sums to %d, want 100", sum)
	}
	for _, meal := range []mealEntry{nc.MealPlan.Breakfast, nc.MealPlan.Lunch, nc.MealPlan.Dinner} {
		if meal.Title == "" {
			return fmt.Errorf("meal plan entry missing title")
		}
	}
	return nil
}

/* ─── OpenAI prompts ─────────────────────────────────────────────────── */

const fitnessSystemPrompt = "You are a certified fitness coach specializing in personalized workout programming. Provide evidence-based, safe recommendations."

const nutritionSystemPrompt = "You are a certified nutritionist specializing in personalized meal planning. Provide evidence-based, safe dietary recommendations."

const fitnessPromptTemplate = `Generate personalized fitness recommendations for a user with the following characteristics:
%s

Please provide detailed recommendations in JSON format with the following structure:
{
  "cardio": {"title": "Cardio Recommendation", "description": "Detailed cardio workout recommendation"},
  "strength": {"title": "Strength Training", "description": "Detailed strength training recommendation"},
  "flexibility": {"title": "Flexibility & Recovery", "description": "Detailed flexibility and recovery recommendation"},
  "weeklySchedule": {
    "monday": {"workoutType": "Cardio", "color": "secondary"},
    "tuesday": {"workoutType": "Strength", "color": "primary"},
    "wednesday": {"workoutType": "Rest", "color": "gray"},
    "thursday": {"workoutType": "Cardio", "color": "secondary"},
    "friday": {"workoutType": "Strength", "color": "primary"},
    "saturday": {"workoutType": "Yoga", "color": "accent"},
    "sunday": {"workoutType": "Rest", "color": "gray"}
  }
}

The recommendations should be evidence-based, safe, and tailored to the user's specific parameters.`

const nutritionPromptTemplate = `Generate personalized nutrition recommendations for a user with the following characteristics:
%s

Please provide detailed nutrition recommendations in JSON format with the following structure:
{
  "calorieTarget": {"title": "Calorie Target", "description": "Detailed calorie recommendation", "amount": 0},
  "proteinIntake": {"title": "Protein Intake", "description": "Detailed protein intake recommendation", "amount": 0},
  "mealTiming": {"title": "Meal Timing", "description": "Detailed meal timing recommendation"},
  "macroDistribution": {"protein": 40, "carbs": 30, "fats": 30},
  "mealPlan": {
    "breakfast": {"title": "Breakfast", "description": "Detailed breakfast recommendation", "calories": 420, "protein": 26, "carbs": 38, "fats": 14},
    "lunch": {"title": "Lunch", "description": "Detailed lunch recommendation", "calories": 560, "protein": 42, "carbs": 40, "fats": 20},
    "dinner": {"title": "Dinner", "description": "Detailed dinner recommendation", "calories": 520, "protein": 36, "carbs": 45, "fats": 18}
  }
}

The recommendations should be evidence-based, safe, and tailored to the user's specific parameters.`

// biometricProfile renders the user's stats for the prompt. Imperial
// equivalents are included so the model doesn't invent its own conversions.
func biometricProfile(u user) string {
	feet, inches := cmToFeetInches(u.Height)
	return fmt.Sprintf(`- Age: %d years
- Current weight: %.1f kg (%.0f lbs)
- Height: %.0f cm (%d'%d")
- Target weight: %.1f kg (%.0f lbs)
- Activity level: %s
- Fitness goal: %s`,
		u.Age,
		u.Weight, kgToLbs(u.Weight),
		u.Height, feet, inches,
		u.TargetWeight, kgToLbs(u.TargetWeight),
		u.ActivityLevel,
		u.FitnessGoal,
	)
}

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model          string                 `json:"model"`
	Messages       []openAIMessage        `json:"messages"`
	ResponseFormat map[string]interface{} `json:"response_format"`
}

// callOpenAI sends a chat completions request and returns the raw content
// string from the first choice. Uses raw net/http to avoid pulling in the
// OpenAI SDK. The 15s client timeout doubles as the generator deadline: an
// expired call surfaces as an error and the caller falls back.
func callOpenAI(ctx context.Context, messages []openAIMessage, baseURL, apiKey string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := openAIRequest{
		Model:    "gpt-4o",
		Messages: messages,
		ResponseFormat: map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return result.Choices[0].Message.Content, nil
}

/* ─── Generators ─────────────────────────────────────────────────────── */

// generateFitnessContent asks the model for a fitness plan built from the
// user's biometrics. Any failure — transport, malformed JSON, schema
// violation — is returned as an error; callers substitute the fallback and
// never propagate generation failures to the client.
func (h *Handler) generateFitnessContent(ctx context.Context, u user) (fitnessContent, error) {
	messages := []openAIMessage{
		{Role: "system", Content: fitnessSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(fitnessPromptTemplate, biometricProfile(u))},
	}

	raw, err := callOpenAI(ctx, messages, h.cfg.OpenAIBaseURL, h.cfg.OpenAIAPIKey)
	if err != nil {
		return fitnessContent{}, err
	}

	var fc fitnessContent
	if err := json.Unmarshal([]byte(raw), &fc); err != nil {
		return fitnessContent{}, fmt.Errorf("decode fitness content: %w", err)
	}
	if err := validateFitnessContent(fc); err != nil {
		return fitnessContent{}, err
	}
	return fc, nil
}

// generateNutritionContent is the nutrition counterpart of generateFitnessContent.
func (h *Handler) generateNutritionContent(ctx context.Context, u user) (nutritionContent, error) {
	messages := []openAIMessage{
		{Role: "system", Content: nutritionSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(nutritionPromptTemplate, biometricProfile(u))},
	}

	raw, err := callOpenAI(ctx, messages, h.cfg.OpenAIBaseURL, h.cfg.OpenAIAPIKey)
	if err != nil {
		return nutritionContent{}, err
	}

	var nc nutritionContent
	if err := json.Unmarshal([]byte(raw), &nc); err != nil {
		return nutritionContent{}, fmt.Errorf("decode nutrition content: %w", err)
	}
	if err := validateNutritionContent(nc); err != nil {
		return nutritionContent{}, err
	}
	return nc, nil
}

/* ─── Fallback content ───────────────────────────────────────────────── */

// fallbackFitnessContent is served when the generator fails. It is returned
// to the caller but never persisted, so the next read retries generation.
func fallbackFitnessContent() fitnessContent {
	return fitnessContent{
		Cardio: recSection{
			Title:       "Cardio Recommendation",
			Description: "Start with 30 minutes of moderate-intensity cardio 3 days per week. Focus on jogging, cycling, or swimming to improve heart health.",
		},
		Strength: recSection{
			Title:       "Strength Training",
			Description: "Incorporate 2-3 days of full-body strength training. Focus on compound movements with moderate weights and 10-12 repetitions.",
		},
		Flexibility: recSection{
			Title:       "Flexibility & Recovery",
			Description: "Add 10-15 minutes of stretching after workouts to improve flexibility and reduce injury risk. Consider adding one yoga session weekly.",
		},
		WeeklySchedule: map[string]scheduleDay{
			"monday":    {WorkoutType: "Cardio", Color: "secondary"},
			"tuesday":   {WorkoutType: "Strength", Color: "primary"},
			"wednesday": {WorkoutType: "Rest", Color: "gray"},
			"thursday":  {WorkoutType: "Cardio", Color: "secondary"},
			"friday":    {WorkoutType: "Strength", Color: "primary"},
			"saturday":  {WorkoutType: "Yoga", Color: "accent"},
			"sunday":    {WorkoutType: "Rest", Color: "gray"},
		},
	}
}

func fallbackNutritionContent() nutritionContent {
	return nutritionContent{
		CalorieTarget: recAmountSection{
			Title:       "Calorie Target",
			Description: "Based on your parameters and weight loss goal, aim for 1,860 calories per day with a macro ratio of 40% protein, 30% carbs, and 30% healthy fats.",
			Amount:      1860,
		},
		ProteinIntake: recAmountSection{
			Title:       "Protein Intake",
			Description: "Consume 0.8g of protein per pound of body weight (approximately 138g daily). Focus on lean sources like chicken, fish, tofu, legumes, and low-fat dairy.",
			Amount:      138,
		},
		MealTiming: recSection{
			Title:       "Meal Timing",
			Description: "Distribute your calories across 4-5 smaller meals throughout the day. Consider eating your largest meal within 2 hours of your workout for optimal recovery.",
		},
		MacroDistribution: macroSplit{Protein: 40, Carbs: 30, Fats: 30},
		MealPlan: mealPlan{
			Breakfast: mealEntry{
				Title:       "Breakfast",
				Description: "Greek yogurt with berries and honey, 2 boiled eggs",
				Calories:    420, Protein: 26, Carbs: 38, Fats: 14,
			},
			Lunch: mealEntry{
				Title:       "Lunch",
				Description: "Grilled chicken salad with olive oil dressing, quinoa",
				Calories:    560, Protein: 42, Carbs: 40, Fats: 20,
			},
			Dinner: mealEntry{
				Title:       "Dinner",
				Description: "Baked salmon with roasted vegetables and brown rice",
				Calories:    520, Protein: 36, Carbs: 45, Fats: 18,
			},
		},
	}
}
