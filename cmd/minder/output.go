package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"minder/internal/format"
	"minder/internal/models"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeProjectList(projects []models.Project) error {
	for _, project := range projects {
		if err := writePlain("%s [%s] - %s\n", project.Slug, project.Status, project.Name); err != nil {
			return err
		}
	}
	return nil
}

func writeProjectDetail(project *models.Project) error {
	lines := []string{
		fmt.Sprintf("id: %s", project.ID),
		fmt.Sprintf("slug: %s", project.Slug),
		fmt.Sprintf("name: %s", project.Name),
		fmt.Sprintf("status: %s", project.Status),
		fmt.Sprintf("created_at: %s", formatTimestamp(project.CreatedAt)),
		fmt.Sprintf("updated_at: %s", formatTimestamp(project.UpdatedAt)),
	}
	if project.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", project.Description))
	}
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeTaskList(tasks []models.Task) error {
	for _, task := range tasks {
		if err := writePlain("%s [%s] - %s\n", task.Slug, task.Status, task.Name); err != nil {
			return err
		}
	}
	return nil
}

func writeTaskDetail(task *models.Task) error {
	lines := []string{
		fmt.Sprintf("id: %s", task.ID),
		fmt.Sprintf("project_id: %s", task.ProjectID),
		fmt.Sprintf("slug: %s", task.Slug),
		fmt.Sprintf("name: %s", task.Name),
		fmt.Sprintf("status: %s", task.Status),
		fmt.Sprintf("created_at: %s", formatTimestamp(task.CreatedAt)),
		fmt.Sprintf("updated_at: %s", formatTimestamp(task.UpdatedAt)),
	}
	if task.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", task.Description))
	}
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeSubtaskList(subtasks []models.Subtask) error {
	for _, subtask := range subtasks {
		marker := " "
		if subtask.RequiredForCompletion {
			marker = "*"
		}
		if err := writePlain("%s %s [%s] - %s\n", marker, subtask.ID, subtask.Status, subtask.Name); err != nil {
			return err
		}
	}
	return nil
}

func writeSubtaskDetail(subtask *models.Subtask) error {
	lines := []string{
		fmt.Sprintf("id: %s", subtask.ID),
		fmt.Sprintf("task_id: %s", subtask.TaskID),
		fmt.Sprintf("name: %s", subtask.Name),
		fmt.Sprintf("status: %s", subtask.Status),
		fmt.Sprintf("required_for_completion: %t", subtask.RequiredForCompletion),
		fmt.Sprintf("created_at: %s", formatTimestamp(subtask.CreatedAt)),
		fmt.Sprintf("updated_at: %s", formatTimestamp(subtask.UpdatedAt)),
	}
	if subtask.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", subtask.Description))
	}
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeNoteList(notes []models.Note) error {
	for _, note := range notes {
		author := note.Author
		if author == "" {
			author = "-"
		}
		if err := writePlain("%s %s (%s): %s\n", note.ID, formatTimestamp(note.CreatedAt), author, note.Content); err != nil {
			return err
		}
	}
	return nil
}

func writeMetadataList(values []models.MetadataValue) error {
	for _, value := range values {
		if err := writePlain("%s (%s): %v\n", value.Key, value.Type, value.Value()); err != nil {
			return err
		}
	}
	return nil
}

func writeTemplateList(templates []models.TaskTemplate) error {
	for _, template := range templates {
		if err := writePlain("%s - %s\n", template.ID, template.Name); err != nil {
			return err
		}
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
