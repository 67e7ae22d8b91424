package models

import "time"

// CodeReview is one review invocation's result. Immutable once produced;
// appended verbatim into the owning session's review log.
//
// TimeComplexity, SpaceComplexity and IsOptimal are only populated for
// final reviews. IsOptimal is a pointer so "not assessed" is distinguishable
// from "assessed as not optimal".
type CodeReview struct {
	LineCount       int       `json:"line_count"`
	Feedback        string    `json:"feedback"`
	Bugs            []string  `json:"bugs"`
	Suggestions     []string  `json:"suggestions"`
	IsFinal         bool      `json:"is_final"`
	TimeComplexity  string    `json:"time_complexity,omitempty"`
	SpaceComplexity string    `json:"space_complexity,omitempty"`
	IsOptimal       *bool     `json:"is_optimal,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
