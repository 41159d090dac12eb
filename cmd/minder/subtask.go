package main

import (
	"strings"

	"github.com/spf13/cobra"

	"minder/internal/config"
	"minder/internal/service"
)

func newSubtaskCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage subtasks",
	}

	cmd.AddCommand(
		newSubtaskCreateCmd(cfg, jsonOutput),
		newSubtaskShowCmd(cfg, jsonOutput),
		newSubtaskListCmd(cfg, jsonOutput),
		newSubtaskUpdateCmd(cfg, jsonOutput),
		newSubtaskDeleteCmd(cfg),
	)
	return cmd
}

func newSubtaskCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, task, description string
	var optional bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a subtask under a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				input := service.SubtaskCreateInput{
					Project:     project,
					Task:        task,
					Name:        strings.Join(args, " "),
					Description: description,
				}
				if optional {
					required := false
					input.Required = &required
				}

				subtask, err := svc.subtasks.Create(cmd.Context(), input)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(subtask)
				}
				return writePlain("%s\n", subtask.ID)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	cmd.Flags().StringVarP(&task, "task", "t", "", "owning task (id or slug)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "subtask description")
	cmd.Flags().BoolVar(&optional, "optional", false, "do not require this subtask for task completion")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newSubtaskShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <subtask-id>",
		Short: "Show a subtask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				subtask, err := svc.subtasks.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(subtask)
				}
				return writeSubtaskDetail(subtask)
			})
		},
	}
}

func newSubtaskListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, task, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subtasks of a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				subtasks, err := svc.subtasks.List(cmd.Context(), project, task, status)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(subtasks)
				}
				return writeSubtaskList(subtasks)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	cmd.Flags().StringVarP(&task, "task", "t", "", "owning task (id or slug)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "status filter")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newSubtaskUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var name, description, status string
	var required bool

	cmd := &cobra.Command{
		Use:   "update <subtask-id>",
		Short: "Update a subtask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				input := service.SubtaskUpdateInput{}
				if cmd.Flags().Changed("name") {
					input.Name = &name
				}
				if cmd.Flags().Changed("description") {
					input.Description = &description
				}
				if cmd.Flags().Changed("status") {
					input.Status = &status
				}
				if cmd.Flags().Changed("required") {
					input.Required = &required
				}

				subtask, err := svc.subtasks.Update(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(subtask)
				}
				return writeSubtaskDetail(subtask)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().BoolVar(&required, "required", true, "require this subtask for task completion")
	return cmd
}

func newSubtaskDeleteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <subtask-id>",
		Short: "Delete a subtask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				return svc.subtasks.Delete(cmd.Context(), args[0])
			})
		},
	}
}
