package main

import (
	"errors"
	"testing"

	"minder/internal/models"
)

func TestFormatCLIError_NotFoundGuidance(t *testing.T) {
	err := models.NotFoundf("project not found: ghost")
	lines := formatCLIError(err)
	if lines[0] != "project not found: ghost" {
		t.Fatalf("expected error message first, got %v", lines)
	}
	if !containsLine(lines, "hint: identifiers are ids or slugs; list entities to see what exists.") {
		t.Fatalf("expected identifier guidance, got %v", lines)
	}
}

func TestFormatCLIError_TransitionGuidance(t *testing.T) {
	err := models.InvalidTransitionError("task", "NOT_STARTED", "COMPLETED")
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: statuses move along fixed paths; show the entity to see its current status.") {
		t.Fatalf("expected transition guidance, got %v", lines)
	}
}

func TestFormatCLIError_NotEmptyGuidance(t *testing.T) {
	err := models.NotEmptyf("project demo still has 3 task(s); use force to delete everything")
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: pass --force to delete the project together with its tasks.") {
		t.Fatalf("expected force guidance, got %v", lines)
	}
}

func TestFormatCLIError_ConflictGuidance(t *testing.T) {
	err := models.Conflictf("dependency a -> b would create a circular reference")
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: dependencies must stay acyclic; check the graph with 'minder dep list'.") {
		t.Fatalf("expected cycle guidance, got %v", lines)
	}
}

func TestFormatCLIError_PlainError(t *testing.T) {
	err := errors.New("something broke")
	lines := formatCLIError(err)
	if len(lines) != 1 || lines[0] != "something broke" {
		t.Fatalf("plain errors should carry no hints, got %v", lines)
	}
}

func containsLine(lines []string, expected string) bool {
	for _, line := range lines {
		if line == expected {
			return true
		}
	}
	return false
}
