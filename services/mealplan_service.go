package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backend/logger"
	"backend/models"
	"backend/utils"
)

// RecipeNutrients mirrors the per-serving numbers the model is asked for.
type RecipeNutrients struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type RecipeIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type Recipe struct {
	Title             string             `json:"title"`
	SourceURL         string             `json:"source_url"`
	ImageURL          string             `json:"image_url"`
	Ingredients       []RecipeIngredient `json:"ingredients"`
	Steps             []string           `json:"steps"`
	Nutrients         RecipeNutrients    `json:"nutrients"`
	AllergyWarnings   []string           `json:"allergy_warnings"`
	DailyContribution string             `json:"daily_contribution"`
}

// MealPlanOverrides lets a request adjust the stored profile for one plan.
type MealPlanOverrides struct {
	Goal           string                  `json:"goal"`
	TargetCalories int                     `json:"targetCalories"`
	Allergies      []string                `json:"allergies"`
	DietType       string                  `json:"dietType"`
	Preferences    *models.MealPreferences `json:"preferences"`
	Request        string                  `json:"request"`
}

type MealPlanService struct {
	profiles *ProfileService
	llm      *OpenRouterClient
	sessions *SessionService
}

func NewMealPlanService(profiles *ProfileService, llm *OpenRouterClient, sessions *SessionService) *MealPlanService {
	return &MealPlanService{profiles: profiles, llm: llm, sessions: sessions}
}

// BuildMealPlanPrompt merges profile, computed targets and overrides into the
// recipe-search prompt. Targets, when available, drive portioning; the goal
// line is the fallback.
func BuildMealPlanPrompt(profile *models.UserProfile, targets *DailyTargets, ov MealPlanOverrides) string {
	goal := profile.Goal
	if ov.Goal != "" {
		goal = ov.Goal
	}
	allergies := []string(profile.Allergies)
	if ov.Allergies != nil {
		allergies = ov.Allergies
	}
	dietType := profile.DietType
	if ov.DietType != "" {
		dietType = ov.DietType
	}
	prefs := profile.Preferences.Data()
	if ov.Preferences != nil {
		prefs = *ov.Preferences
	}

	var sb strings.Builder
	sb.WriteString("Act as a nutrition coach. Use web search to find recipes that match the following requirements:\n\n")

	if targets != nil {
		sb.WriteString(fmt.Sprintf("User's daily targets: %d kcal, %d g protein, %d g carbs, %d g fat. ",
			targets.Calories, targets.ProteinG, targets.CarbsG, targets.FatG))
		sb.WriteString("Suggest recipes and portions that fit within these targets. ")
		if targets.Goal != "" {
			sb.WriteString(fmt.Sprintf("Goal: %s weight. ", targets.Goal))
		}
		sb.WriteString("\n")
	} else if goal != "" {
		sb.WriteString(fmt.Sprintf("Goal: %s weight", goal))
		if ov.TargetCalories > 0 {
			sb.WriteString(fmt.Sprintf(" (target: %d calories per day)", ov.TargetCalories))
		}
		sb.WriteString("\n")
	}

	if dietType != "" && dietType != "none" {
		sb.WriteString(fmt.Sprintf("Diet type: %s\n", dietType))
	}

	if len(allergies) > 0 {
		sb.WriteString(fmt.Sprintf(
			"CRITICAL: The user has these allergies/dietary restrictions that MUST be avoided: %s. Do not suggest any recipes containing these ingredients.\n",
			strings.Join(allergies, ", ")))
	}

	if prefs.Cuisine != "" {
		sb.WriteString(fmt.Sprintf("Preferred cuisine: %s\n", prefs.Cuisine))
	}
	if prefs.CookingTime != "" {
		sb.WriteString(fmt.Sprintf("Cooking time preference: %s\n", prefs.CookingTime))
	}
	if prefs.MealType != "" {
		sb.WriteString(fmt.Sprintf("Meal type: %s\n", prefs.MealType))
	}

	if ov.Request != "" {
		sb.WriteString(fmt.Sprintf("\nUser request: %s\n", ov.Request))
	}

	sb.WriteString("\n\nIMPORTANT: Return ONLY valid JSON with this exact schema. Do not include any text before or after the JSON:\n")
	sb.WriteString(`{
  "recipes": [
    {
      "title": "Recipe name",
      "source_url": "https://recipe-source-url.com",
      "image_url": "https://image-url.com/recipe.jpg",
      "ingredients": [
        {"name": "ingredient name", "amount": "quantity", "unit": "unit"}
      ],
      "steps": ["step 1", "step 2", "step 3"],
      "nutrients": {"calories": 500, "protein_g": 30, "carbs_g": 45, "fat_g": 20},
      "allergy_warnings": ["warning1", "warning2"],
      "daily_contribution": "This meal is ~35% of daily calories and ~40% of daily protein."
    }
  ]
}
`)
	sb.WriteString("\nProvide 2-3 recipe options. For each recipe:\n")
	sb.WriteString("- Find a real recipe URL and image URL from web search\n")
	sb.WriteString("- Include complete ingredients with amounts and units\n")
	sb.WriteString("- Provide detailed step-by-step instructions\n")
	sb.WriteString("- Calculate accurate nutrition values (per serving)\n")
	sb.WriteString("- Include \"daily_contribution\": a short sentence saying how this serving contributes to the user's daily totals\n")
	sb.WriteString("- List any allergy warnings if the recipe contains allergens\n")
	sb.WriteString("- If image_url is not available, use an empty string\n")
	return sb.String()
}

// ParseRecipes extracts the recipe list from model output. Returns an empty
// slice when nothing parseable comes back.
func ParseRecipes(content string) []Recipe {
	var parsed struct {
		Recipes []Recipe `json:"recipes"`
	}
	if !utils.ExtractJSONObject(content, &parsed) || parsed.Recipes == nil {
		return []Recipe{}
	}
	return parsed.Recipes
}

func (s *MealPlanService) Plan(ctx context.Context, userID uint, ov MealPlanOverrides) ([]Recipe, *ChatResult, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	// Targets are optional here: planning still works from the goal line
	// when the profile cannot produce numbers.
	targets, _ := ComputeDailyTargets(profile)

	prompt := BuildMealPlanPrompt(profile, targets, ov)
	result, err := s.llm.Chat(ctx, []ChatMessage{
		{Role: "system", Content: "You are a nutrition coach and recipe expert. You MUST return ONLY valid JSON. Do not include any explanatory text, markdown formatting, or code blocks. Return pure JSON that matches the exact schema requested."},
		{Role: "user", Content: prompt},
	}, ChatOptions{Temperature: 0.7, MaxTokens: 1000})
	if err != nil {
		return nil, nil, fmt.Errorf("meal plan llm call: %w", err)
	}

	recipes := ParseRecipes(result.Content)
	if len(recipes) == 0 {
		logger.Warn("meal plan reply had no parseable recipes", "user", userID, "len", len(result.Content))
	}

	s.sessions.Save(ctx, userID, map[string]any{"kind": "plan_meal", "prompt": prompt, "overrides": ov, "at": time.Now()}, result)
	return recipes, result, nil
}

// AnalyzeRecipe asks the model for a free-text analysis of a recipe URL in
// the context of the user's profile. The reply is plain prose, not JSON.
func (s *MealPlanService) AnalyzeRecipe(ctx context.Context, userID uint, url string) (string, *ChatResult, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyze this recipe from the URL: %s\n\n", url))
	sb.WriteString("User Profile:\n")
	if profile.Goal != "" {
		sb.WriteString(fmt.Sprintf("- Goal: %s weight\n", profile.Goal))
	}
	if profile.TargetCalories > 0 {
		sb.WriteString(fmt.Sprintf("- Target calories: %d per day\n", profile.TargetCalories))
	}
	if profile.DietType != "" && profile.DietType != "none" {
		sb.WriteString(fmt.Sprintf("- Diet type: %s\n", profile.DietType))
	}
	if len(profile.Allergies) > 0 {
		sb.WriteString(fmt.Sprintf("- Allergies/restrictions: %s\n", strings.Join(profile.Allergies, ", ")))
	}

	sb.WriteString("\nPlease provide:\n")
	sb.WriteString("1. Recipe name and source URL\n")
	sb.WriteString("2. Complete step-by-step cooking instructions\n")
	sb.WriteString("3. Full list of ingredients with exact quantities\n")
	sb.WriteString("4. Calories per serving (calculate if not mentioned in the recipe)\n")
	sb.WriteString("5. Detailed nutrients: protein (g), carbohydrates (g), fats (g), fiber (g), vitamins, minerals\n")
	sb.WriteString("6. Safety check: Does this recipe contain any of the user's allergies/restrictions?\n")
	sb.WriteString(fmt.Sprintf("7. Compatibility: Does this match the user's diet type (%s)?\n", profile.DietType))
	sb.WriteString(fmt.Sprintf("8. Recommendations: Is this suitable for the user's goal (%s)?\n", profile.Goal))
	sb.WriteString("\nFormat your response clearly with all sections labeled.")

	prompt := sb.String()
	result, err := s.llm.Chat(ctx, []ChatMessage{
		{Role: "system", Content: "You are a nutrition coach and recipe expert."},
		{Role: "user", Content: prompt},
	}, ChatOptions{Temperature: 0.3, MaxTokens: 1000})
	if err != nil {
		return "", nil, fmt.Errorf("recipe analysis llm call: %w", err)
	}

	s.sessions.Save(ctx, userID, map[string]any{"kind": "analyze_recipe", "url": url, "prompt": prompt, "at": time.Now()}, result)
	return result.Content, result, nil
}
