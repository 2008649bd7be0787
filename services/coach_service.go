package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backend/logger"
	"backend/utils"
)

// CoachFeedback is the structured half of a coaching reply. Nil when the
// model's output could not be parsed; the raw text is still returned.
type CoachFeedback struct {
	Observations []string `json:"observations"`
	Suggestions  []string `json:"suggestions"`
}

type CoachService struct {
	insights *InsightsService
	llm      *OpenRouterClient
	sessions *SessionService
}

func NewCoachService(insights *InsightsService, llm *OpenRouterClient, sessions *SessionService) *CoachService {
	return &CoachService{insights: insights, llm: llm, sessions: sessions}
}

// BuildCoachPrompt formats the insight rows and target summary into the text
// handed to the model. Pure string assembly.
func BuildCoachPrompt(targets *DailyTargets, rows []InsightRow) string {
	var sb strings.Builder
	sb.WriteString("Act as a nutrition coach reviewing a client's recent log.\n\n")

	if targets != nil {
		sb.WriteString(fmt.Sprintf(
			"Daily targets: %d kcal, %d g protein, %d g carbs, %d g fat (goal: %s weight).\n\n",
			targets.Calories, targets.ProteinG, targets.CarbsG, targets.FatG, targets.Goal))
	} else {
		sb.WriteString("Daily targets: not available (incomplete profile).\n\n")
	}

	sb.WriteString(fmt.Sprintf("Last %d days:\n", len(rows)))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf(
			"- %s: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat, %d steps\n",
			r.Date, r.CaloriesTotal, r.ProteinTotal, r.CarbsTotal, r.FatTotal, r.Steps))
	}

	sb.WriteString("\nReturn ONLY valid JSON with this exact schema, no other text:\n")
	sb.WriteString(`{"observations": ["..."], "suggestions": ["..."]}` + "\n")
	sb.WriteString("Give 2-4 short observations about patterns in the log and 2-4 concrete, practical suggestions.\n")
	return sb.String()
}

// Coach builds the prompt from the user's recent window, calls the model and
// best-effort parses the reply. Parse failure is not an error: the raw text
// comes back with nil feedback.
func (s *CoachService) Coach(ctx context.Context, userID uint, days int) (string, *CoachFeedback, error) {
	report, err := s.insights.Compute(ctx, userID, days)
	if err != nil {
		return "", nil, err
	}

	prompt := BuildCoachPrompt(report.Targets, report.Rows)
	result, err := s.llm.Chat(ctx, []ChatMessage{
		{Role: "system", Content: "You are a pragmatic, evidence-based nutrition coach. You MUST return only valid JSON matching the requested schema."},
		{Role: "user", Content: prompt},
	}, ChatOptions{Temperature: 0.4, MaxTokens: 600})
	if err != nil {
		return "", nil, fmt.Errorf("coach llm call: %w", err)
	}

	var parsed CoachFeedback
	feedback := &parsed
	if !utils.ExtractJSONObject(result.Content, &parsed) {
		logger.Warn("coach reply was not parseable JSON", "user", userID, "len", len(result.Content))
		feedback = nil
	}

	s.sessions.Save(ctx, userID, map[string]any{"kind": "coach", "days": days, "prompt": prompt, "at": time.Now()}, result)
	return result.Content, feedback, nil
}
