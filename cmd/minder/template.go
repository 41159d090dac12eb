package main

import (
	"strings"

	"github.com/spf13/cobra"

	"minder/internal/config"
)

func newTemplateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable subtask templates",
	}

	cmd.AddCommand(
		newTemplateCreateCmd(cfg, jsonOutput),
		newTemplateShowCmd(cfg, jsonOutput),
		newTemplateListCmd(cfg, jsonOutput),
		newTemplateDeleteCmd(cfg),
		newTemplateAddSubtaskCmd(cfg, jsonOutput),
		newTemplateApplyCmd(cfg, jsonOutput),
		newTemplateImportCmd(cfg, jsonOutput),
	)
	return cmd
}

func newTemplateCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty template",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				template, err := svc.templates.Create(cmd.Context(), strings.Join(args, " "), description)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(template)
				}
				return writePlain("%s\n", template.ID)
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "template description")
	return cmd
}

func newTemplateShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a template and its subtask blueprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				template, err := svc.templates.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				blueprints, err := svc.templates.Subtasks(cmd.Context(), template.ID)
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(map[string]any{
						"template": template,
						"subtasks": blueprints,
					})
				}

				if err := writePlain("%s - %s\n", template.ID, template.Name); err != nil {
					return err
				}
				for _, blueprint := range blueprints {
					marker := " "
					if blueprint.RequiredForCompletion {
						marker = "*"
					}
					if err := writePlain("%s %s\n", marker, blueprint.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newTemplateListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				templates, err := svc.templates.List(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(templates)
				}
				return writeTemplateList(templates)
			})
		},
	}
}

func newTemplateDeleteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <template-id>",
		Short: "Delete a template and its blueprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				return svc.templates.Delete(cmd.Context(), args[0])
			})
		},
	}
}

func newTemplateAddSubtaskCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var description string
	var optional bool

	cmd := &cobra.Command{
		Use:   "add-subtask <template-id> <name>",
		Short: "Append a subtask blueprint to a template",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				var required *bool
				if optional {
					value := false
					required = &value
				}
				blueprint, err := svc.templates.AddSubtask(cmd.Context(), args[0], strings.Join(args[1:], " "), description, required)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(blueprint)
				}
				return writePlain("%s\n", blueprint.ID)
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "blueprint description")
	cmd.Flags().BoolVar(&optional, "optional", false, "do not require this subtask for task completion")
	return cmd
}

func newTemplateApplyCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, task string

	cmd := &cobra.Command{
		Use:   "apply <template-id>",
		Short: "Instantiate a template's subtasks under a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				created, err := svc.templates.Apply(cmd.Context(), args[0], project, task)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(created)
				}
				return writeSubtaskList(created)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	cmd.Flags().StringVarP(&task, "task", "t", "", "target task (id or slug)")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newTemplateImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create a template from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				template, err := svc.templates.Import(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(template)
				}
				return writePlain("%s\n", template.ID)
			})
		},
	}
}
