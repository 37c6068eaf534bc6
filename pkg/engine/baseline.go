package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DefaultBaselinePath is where scan snapshots live unless overridden.
const DefaultBaselinePath = ".apisentry-baseline.json"

// Baseline is a saved scan result used for regression comparison.
type Baseline struct {
	SavedAt  time.Time `json:"saved_at"`
	Findings []Finding `json:"findings"`
}

// BaselineDiff buckets the current findings against a baseline.
type BaselineDiff struct {
	New       []Finding
	Fixed     []Finding
	Unchanged []Finding
}

// SaveBaseline writes findings to path as JSON.
func SaveBaseline(path string, findings []Finding) error {
	b := Baseline{SavedAt: time.Now().UTC(), Findings: findings}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadBaseline reads a previously saved baseline.
func LoadBaseline(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline %s: %w", path, err)
	}
	return &b, nil
}

// CompareBaseline classifies current findings as new, fixed or
// unchanged relative to a baseline. Identity is (path, method,
// message): details may legitimately vary between runs (field lists,
// counts) without the finding itself changing.
func CompareBaseline(current []Finding, baseline *Baseline) BaselineDiff {
	diff := BaselineDiff{}

	key := func(f Finding) string {
		return f.Path + "\x00" + f.Method + "\x00" + f.Message
	}

	baseKeys := make(map[string]bool, len(baseline.Findings))
	for _, f := range baseline.Findings {
		baseKeys[key(f)] = true
	}
	curKeys := make(map[string]bool, len(current))
	for _, f := range current {
		curKeys[key(f)] = true
	}

	for _, f := range current {
		if baseKeys[key(f)] {
			diff.Unchanged = append(diff.Unchanged, f)
		} else {
			diff.New = append(diff.New, f)
		}
	}
	for _, f := range baseline.Findings {
		if !curKeys[key(f)] {
			diff.Fixed = append(diff.Fixed, f)
		}
	}
	return diff
}
