package review

import (
	"strings"

	"algoview/internal/models"
)

// Parsing is deliberately lenient: the model reply is semi-structured text
// with one labeled field per line. A known label opens a section and its
// remainder seeds the content; unlabeled lines append to whichever section
// is open. A strict grammar would break on normal model formatting drift.

type section int

const (
	sectionNone section = iota
	sectionFeedback
	sectionBugs
	sectionSuggestions
)

// ParseReviewResponse extracts the structured review fields from the raw
// model reply. Missing labels leave their fields at defaults; the literal
// value "none" (any case) does not create a list entry. IS_OPTIMAL is true
// iff its value contains "yes" (any case).
func ParseReviewResponse(content string, isFinal bool) *models.CodeReview {
	review := &models.CodeReview{
		Bugs:        []string{},
		Suggestions: []string{},
		IsFinal:     isFinal,
	}

	current := sectionNone

	for _, raw := range strings.Split(strings.TrimSpace(content), "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "FEEDBACK:"):
			current = sectionFeedback
			review.Feedback = strings.TrimSpace(strings.TrimPrefix(line, "FEEDBACK:"))

		case strings.HasPrefix(line, "BUGS:"):
			current = sectionBugs
			if entry := strings.TrimSpace(strings.TrimPrefix(line, "BUGS:")); entry != "" && !isNone(entry) {
				review.Bugs = append(review.Bugs, entry)
			}

		case strings.HasPrefix(line, "SUGGESTIONS:"):
			current = sectionSuggestions
			if entry := strings.TrimSpace(strings.TrimPrefix(line, "SUGGESTIONS:")); entry != "" && !isNone(entry) {
				review.Suggestions = append(review.Suggestions, entry)
			}

		case strings.HasPrefix(line, "TIME_COMPLEXITY:"):
			review.TimeComplexity = strings.TrimSpace(strings.TrimPrefix(line, "TIME_COMPLEXITY:"))

		case strings.HasPrefix(line, "SPACE_COMPLEXITY:"):
			review.SpaceComplexity = strings.TrimSpace(strings.TrimPrefix(line, "SPACE_COMPLEXITY:"))

		case strings.HasPrefix(line, "IS_OPTIMAL:"):
			value := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "IS_OPTIMAL:")))
			optimal := strings.Contains(value, "yes")
			review.IsOptimal = &optimal

		case line != "":
			// continuation line for the open section
			switch current {
			case sectionFeedback:
				review.Feedback += " " + line
			case sectionBugs:
				if !isNone(line) {
					review.Bugs = append(review.Bugs, line)
				}
			case sectionSuggestions:
				if !isNone(line) {
					review.Suggestions = append(review.Suggestions, line)
				}
			}
		}
	}

	return review
}

func isNone(value string) bool {
	return strings.EqualFold(value, "none")
}
