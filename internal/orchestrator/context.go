package orchestrator

import (
	"fmt"
	"strings"

	"algoview/internal/models"
)

// formatReviewContext renders an incremental review as a system-style note
// for the interviewer agent.
func formatReviewContext(review *models.CodeReview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[CODE REVIEW UPDATE - Line %d]\n\n", review.LineCount)
	b.WriteString(review.Feedback)
	b.WriteString("\n\n")

	if len(review.Bugs) > 0 {
		b.WriteString("Bugs found:\n")
		for _, bug := range review.Bugs {
			fmt.Fprintf(&b, "- %s\n", bug)
		}
		b.WriteString("\n")
	}

	if len(review.Suggestions) > 0 {
		b.WriteString("Suggestions:\n")
		for _, suggestion := range review.Suggestions {
			fmt.Fprintf(&b, "- %s\n", suggestion)
		}
	}

	b.WriteString("\n[Please discuss this review with the candidate naturally. Don't just read it - engage in conversation about their approach.]")

	return b.String()
}

// formatFinalReviewContext renders the final review, including the
// complexity analysis and optimality verdict, with a closing instruction
// that depends on whether the solution is optimal.
func formatFinalReviewContext(review *models.CodeReview) string {
	var b strings.Builder

	b.WriteString("[FINAL CODE REVIEW]\n\n")
	b.WriteString(review.Feedback)
	b.WriteString("\n\n")

	if len(review.Bugs) > 0 {
		b.WriteString("Bugs found:\n")
		for _, bug := range review.Bugs {
			fmt.Fprintf(&b, "- %s\n", bug)
		}
		b.WriteString("\n")
	}

	optimal := review.IsOptimal != nil && *review.IsOptimal

	fmt.Fprintf(&b, "Time Complexity: %s\n", review.TimeComplexity)
	fmt.Fprintf(&b, "Space Complexity: %s\n", review.SpaceComplexity)
	fmt.Fprintf(&b, "Is Optimal: %s\n\n", yesNo(optimal))

	if !optimal && len(review.Suggestions) > 0 {
		b.WriteString("Optimization suggestions:\n")
		for _, suggestion := range review.Suggestions {
			fmt.Fprintf(&b, "- %s\n", suggestion)
		}
		b.WriteString("\n")
	}

	b.WriteString("[Discuss this final review with the candidate. ")
	if optimal {
		b.WriteString("Congratulate them on the optimal solution and move to final evaluation and ratings.]")
	} else {
		b.WriteString("If there's time remaining, you may offer them a chance to optimize. Otherwise, move to final evaluation and ratings.]")
	}

	return b.String()
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
