// Package parser extracts ordered action statements from free-form model
// output.
package parser

import (
	"regexp"
	"strings"
)

const (
	maxActions   = 8
	minMarkerLen = 20
	// Bounds for the heuristic second pass.
	minHeuristicLen = 25
	maxHeuristicLen = 300
	// The second pass only runs when the marker pass found fewer than this.
	heuristicTrigger = 4
)

var (
	numbered = regexp.MustCompile(`^(\d+)[.)]\s*(.+)$`)
	bulleted = regexp.MustCompile(`^[-*•]\s*(.+)$`)
)

var actionVerbs = []string{
	"develop", "implement", "establish", "create", "invest",
	"expand", "focus", "prioritize", "enhance", "strengthen",
}

// Actions extracts at most 8 action statements from text in discovery
// order. Numbered and bulleted lines are taken first; when fewer than 4 are
// found, a heuristic pass accepts sentence-length lines containing an
// action verb. Empty input yields an empty list.
func Actions(text string) []string {
	if text == "" {
		return nil
	}

	var actions []string
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := numbered.FindStringSubmatch(line); m != nil {
			if item := strings.TrimSpace(m[2]); len(item) > minMarkerLen {
				actions = append(actions, item)
			}
			continue
		}
		if m := bulleted.FindStringSubmatch(line); m != nil {
			if item := strings.TrimSpace(m[1]); len(item) > minMarkerLen {
				actions = append(actions, item)
			}
		}
	}

	if len(actions) < heuristicTrigger {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			// Marked lines were already consumed by the first pass.
			if numbered.MatchString(line) || bulleted.MatchString(line) {
				continue
			}
			if len(line) > minHeuristicLen && len(line) < maxHeuristicLen &&
				containsActionVerb(line) && !contains(actions, line) {
				actions = append(actions, line)
				if len(actions) >= maxActions {
					break
				}
			}
		}
	}

	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	return actions
}

func containsActionVerb(line string) bool {
	lower := strings.ToLower(line)
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
