package models

// Problem is a catalog entry for one coding question. Catalog entries are
// loaded once at startup and never mutated.
type Problem struct {
	ID              string           `json:"id" yaml:"id"`
	Title           string           `json:"title" yaml:"title"`
	Difficulty      string           `json:"difficulty" yaml:"difficulty"`
	Description     string           `json:"description" yaml:"description"`
	Examples        []ProblemExample `json:"examples,omitempty" yaml:"examples"`
	Constraints     []string         `json:"constraints,omitempty" yaml:"constraints"`
	Link            string           `json:"link,omitempty" yaml:"link"`
	OptimalSolution string           `json:"optimal_solution,omitempty" yaml:"optimal_solution"`
	TimeComplexity  string           `json:"time_complexity,omitempty" yaml:"time_complexity"`
	SpaceComplexity string           `json:"space_complexity,omitempty" yaml:"space_complexity"`
	Hints           []string         `json:"hints,omitempty" yaml:"hints"`
}

// ProblemExample is a worked input/output pair shown to the candidate.
type ProblemExample struct {
	Input       string `json:"input" yaml:"input"`
	Output      string `json:"output" yaml:"output"`
	Explanation string `json:"explanation,omitempty" yaml:"explanation"`
}
