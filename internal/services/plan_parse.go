package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/forgefit/forgefit-backend/internal/types"
)

// GeneratedPlan is the in-memory shape of one model-produced plan, owned by
// the parser until handoff to persistence.
type GeneratedPlan struct {
	Description string             `json:"description"`
	Difficulty  string             `json:"difficulty"`
	RestDays    []int              `json:"rest_days"`
	Workouts    []GeneratedWorkout `json:"workouts"`
}

type GeneratedWorkout struct {
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	DayOfWeek         int                 `json:"day_of_week"`
	EstimatedDuration string              `json:"estimated_duration"`
	Category          string              `json:"category"`
	Exercises         []GeneratedExercise `json:"exercises"`
}

type GeneratedExercise struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Sets             int      `json:"sets"`
	Reps             int      `json:"reps"`
	RestDuration     string   `json:"rest_duration"`
	OrderIndex       int      `json:"order_index"`
	PrimaryMuscles   []string `json:"primary_muscles"`
	SecondaryMuscles []string `json:"secondary_muscles"`
	Equipment        []string `json:"equipment"`
	Category         string   `json:"category"`
}

// PlanParseError wraps an unrecoverable model output. Raw is kept for
// diagnostics only and never echoed to the client.
type PlanParseError struct {
	Raw string
	Err error
}

func (e *PlanParseError) Error() string {
	return fmt.Sprintf("model output is not a valid plan: %v", e.Err)
}

func (e *PlanParseError) Unwrap() error { return e.Err }

// ParseGeneratedPlan turns raw model text into a validated GeneratedPlan.
// Model output is usually JSON but not guaranteed to be: formatting
// artifacts are stripped, a balanced-brace substring is tried as a fallback,
// and structurally-close output is repaired rather than rejected.
func ParseGeneratedPlan(raw string) (*GeneratedPlan, error) {
	cleaned := stripCodeFences(raw)

	var plan GeneratedPlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		candidate := extractBalancedObject(cleaned)
		if candidate == "" {
			return nil, &PlanParseError{Raw: raw, Err: err}
		}
		plan = GeneratedPlan{}
		if err2 := json.Unmarshal([]byte(candidate), &plan); err2 != nil {
			return nil, &PlanParseError{Raw: raw, Err: err2}
		}
	}

	repairPlan(&plan)

	if fieldErrs := validateGeneratedPlan(&plan); len(fieldErrs) > 0 {
		return nil, &PlanParseError{
			Raw: raw,
			Err: fmt.Errorf("generated plan failed shape validation: %s", (&ValidationError{Fields: fieldErrs}).Error()),
		}
	}
	return &plan, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// extractBalancedObject returns the largest balanced-brace substring of s, or
// "" when none exists. Braces inside JSON strings are ignored.
func extractBalancedObject(s string) string {
	best := ""
	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(s); i++ {
			ch := s[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case ch == '\\':
					escaped = true
				case ch == '"':
					inString = false
				}
				continue
			}
			switch ch {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					if i+1-start > len(best) {
						best = s[start : i+1]
					}
					i = len(s)
				}
			}
		}
	}
	return best
}

// repairPlan coerces a structurally-close plan into a conformant one:
// out-of-vocabulary muscle names are dropped instead of failing the plan, and
// duration-like strings are normalized. Idempotent.
func repairPlan(plan *GeneratedPlan) {
	if plan == nil {
		return
	}
	plan.Difficulty = strings.ToLower(strings.TrimSpace(plan.Difficulty))
	for i := range plan.Workouts {
		w := &plan.Workouts[i]
		w.Category = strings.ToLower(strings.TrimSpace(w.Category))
		w.EstimatedDuration = normalizeDuration(w.EstimatedDuration)
		for j := range w.Exercises {
			ex := &w.Exercises[j]
			ex.Category = strings.ToLower(strings.TrimSpace(ex.Category))
			ex.RestDuration = normalizeDuration(ex.RestDuration)
			ex.PrimaryMuscles = filterMuscleGroups(ex.PrimaryMuscles)
			ex.SecondaryMuscles = filterMuscleGroups(ex.SecondaryMuscles)
		}
	}
}

func filterMuscleGroups(in []string) []string {
	out := make([]string, 0, len(in))
	for _, m := range in {
		norm := strings.ToLower(strings.TrimSpace(m))
		if types.IsMuscleGroup(norm) {
			out = append(out, norm)
		}
	}
	return out
}

var firstIntRe = regexp.MustCompile(`\d+`)

// normalizeDuration re-emits any duration-like string as "<N> minutes" using
// the first embedded integer. The integer is treated as a minute count even
// when the source text says otherwise ("90 sec" becomes "90 minutes"); this
// matches the historical behavior the rest of the product expects.
func normalizeDuration(s string) string {
	match := firstIntRe.FindString(s)
	if match == "" {
		return "30 minutes"
	}
	n, err := strconv.Atoi(match)
	if err != nil || n <= 0 {
		return "30 minutes"
	}
	return fmt.Sprintf("%d minutes", n)
}
