package main

import (
	"minder/internal/models"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	switch models.KindOf(err) {
	case models.KindNotFound:
		lines = append(lines, "hint: identifiers are ids or slugs; list entities to see what exists.")
	case models.KindInvalidTransition:
		lines = append(lines, "hint: statuses move along fixed paths; show the entity to see its current status.")
	case models.KindIncompleteChildren:
		lines = append(lines, "hint: finish or abandon the listed items first.")
	case models.KindNotEmpty:
		lines = append(lines, "hint: pass --force to delete the project together with its tasks.")
	case models.KindDependentExists:
		lines = append(lines, "hint: remove the dependency edges before deleting the task.")
	case models.KindConflict:
		lines = append(lines, "hint: dependencies must stay acyclic; check the graph with 'minder dep list'.")
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
