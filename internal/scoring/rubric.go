package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
)

// Criterion is one scored aspect of a project
type Criterion struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Max         int    `json:"max"`
	Description string `json:"description"`
}

// Rubric is the fixed set of criteria every judge scores against
type Rubric struct {
	Criteria []Criterion `json:"criteria"`
	MaxTotal int         `json:"maxTotal"`

	byKey map[string]Criterion
}

// NewRubric creates a rubric from the given criteria
func NewRubric(criteria []Criterion) *Rubric {
	r := &Rubric{
		Criteria: criteria,
		byKey:    make(map[string]Criterion, len(criteria)),
	}
	for _, c := range criteria {
		r.byKey[c.Key] = c
		r.MaxTotal += c.Max
	}
	return r
}

// DefaultRubric returns the five hackathon criteria, each out of 10
func DefaultRubric() *Rubric {
	return NewRubric([]Criterion{
		{Key: "innovation", Name: "Innovation", Max: 10, Description: "Originality of the idea and approach"},
		{Key: "technical", Name: "Technical Complexity", Max: 10, Description: "Depth and quality of the implementation"},
		{Key: "feasibility", Name: "Feasibility", Max: 10, Description: "How realistic the solution is to build and run"},
		{Key: "presentation", Name: "Presentation Quality", Max: 10, Description: "Clarity of the pitch and demo"},
		{Key: "impact", Name: "Potential Impact", Max: 10, Description: "Value to the intended users"},
	})
}

// Evaluate checks a submission against the rubric and returns the
// accepted criteria with their total. Every criterion must be present
// with a whole number within [0, Max]; unknown keys are rejected.
func (r *Rubric) Evaluate(values map[string]float64) (models.Criteria, int, error) {
	var unknown []string
	for key := range values {
		if _, ok := r.byKey[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, 0, errors.InvalidScore(fmt.Sprintf("unknown criteria: %s", strings.Join(unknown, ", ")))
	}

	criteria := make(models.Criteria, len(r.Criteria))
	for _, c := range r.Criteria {
		v, ok := values[c.Key]
		if !ok {
			return nil, 0, errors.InvalidScore(fmt.Sprintf("missing criterion %q", c.Key))
		}
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, 0, errors.InvalidScore(fmt.Sprintf("criterion %q must be a whole number", c.Key))
		}
		if v < 0 || v > float64(c.Max) {
			return nil, 0, errors.InvalidScore(fmt.Sprintf("criterion %q must be between 0 and %d, got %v", c.Key, c.Max, v))
		}
		criteria[c.Key] = int(v)
	}
	return criteria, criteria.Sum(), nil
}
