package review

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"algoview/internal/llm"
	"algoview/internal/models"
	"algoview/internal/prompts"
)

// Reviewer turns (candidate code, problem) into a structured CodeReview by
// calling the LLM provider and parsing its labeled reply.
//
// Review never fails: any provider or template error degrades into a review
// whose feedback explains the failure, so the interview keeps moving even
// when the model is unavailable.
type Reviewer struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewReviewer(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Reviewer {
	return &Reviewer{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// Review generates an incremental or final review of the candidate's code.
func (r *Reviewer) Review(ctx context.Context, code string, problem *models.Problem, isFinal bool) *models.CodeReview {
	variant := "incremental"
	data := map[string]string{
		"Title":       problem.Title,
		"Description": problem.Description,
		"Code":        code,
	}
	if isFinal {
		variant = "final"
		data["OptimalSolution"] = problem.OptimalSolution
		data["TimeComplexity"] = problem.TimeComplexity
		data["SpaceComplexity"] = problem.SpaceComplexity
	}

	prompt, err := r.prompts.BuildPrompt("review", variant, data)
	if err != nil {
		r.logger.Error("failed to build review prompt",
			zap.Error(err),
			zap.String("variant", variant))
		return r.degradedReview(code, isFinal, err)
	}

	content, err := r.provider.GenerateText(ctx, prompt)
	if err != nil {
		r.logger.Warn("code review generation failed",
			zap.Error(err),
			zap.String("provider", r.provider.GetProviderName()),
			zap.Bool("is_final", isFinal))
		return r.degradedReview(code, isFinal, err)
	}

	review := ParseReviewResponse(content, isFinal)
	review.LineCount = countLines(code)
	review.Timestamp = time.Now()
	return review
}

// degradedReview is the fail-soft stand-in returned when the model cannot
// be reached; structured fields stay empty and isFinal is preserved.
func (r *Reviewer) degradedReview(code string, isFinal bool, cause error) *models.CodeReview {
	return &models.CodeReview{
		LineCount: countLines(code),
		Feedback:  "Unable to review code: " + cause.Error(),
		IsFinal:   isFinal,
		Timestamp: time.Now(),
	}
}

func countLines(code string) int {
	return len(strings.Split(code, "\n"))
}
