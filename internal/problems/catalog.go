package problems

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"algoview/internal/models"
)

// embeds all .yaml problem files into the binary at compile time
//
//go:embed catalog/*.yaml
var catalogFS embed.FS

// Catalog is the problem lookup the orchestrator and handlers use. Problems
// are parsed once at startup from the embedded YAML files.
type Catalog struct {
	problems map[string]models.Problem
}

// NewCatalog loads every embedded problem file.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{
		problems: make(map[string]models.Problem),
	}

	entries, err := catalogFS.ReadDir("catalog")
	if err != nil {
		return nil, fmt.Errorf("failed to read problem catalog: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := catalogFS.ReadFile("catalog/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read problem file %s: %w", entry.Name(), err)
		}

		var problem models.Problem
		if err := yaml.Unmarshal(data, &problem); err != nil {
			return nil, fmt.Errorf("failed to parse problem file %s: %w", entry.Name(), err)
		}
		if problem.ID == "" {
			return nil, fmt.Errorf("problem file %s has no id", entry.Name())
		}

		c.problems[problem.ID] = problem
	}

	if len(c.problems) == 0 {
		return nil, fmt.Errorf("problem catalog is empty")
	}

	return c, nil
}

// Get returns the problem with the given ID.
func (c *Catalog) Get(id string) (*models.Problem, bool) {
	problem, ok := c.problems[id]
	if !ok {
		return nil, false
	}
	return &problem, true
}

// All returns every catalog entry, ordered by ID for stable output.
func (c *Catalog) All() []models.Problem {
	ids := make([]string, 0, len(c.problems))
	for id := range c.problems {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]models.Problem, 0, len(ids))
	for _, id := range ids {
		all = append(all, c.problems[id])
	}
	return all
}
