package main

import (
	"github.com/spf13/cobra"

	"minder/internal/config"
)

func newMetaCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Manage typed metadata on tasks",
	}

	cmd.AddCommand(
		newMetaSetCmd(cfg, jsonOutput),
		newMetaGetCmd(cfg, jsonOutput),
		newMetaDeleteCmd(cfg),
		newMetaQueryCmd(cfg, jsonOutput),
	)
	return cmd
}

func newMetaSetCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, task, valueType string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a metadata value on a task",
		Long: `Set a metadata value on a task. Without --type the type is inferred
(int, float, datetime, bool, JSON object/array, then string). Setting an
existing key overwrites it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				value, err := svc.metadata.Set(cmd.Context(), project, task, args[0], args[1], valueType)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(value)
				}
				return writePlain("%s (%s): %v\n", value.Key, value.Type, value.Value())
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	cmd.Flags().StringVarP(&task, "task", "t", "", "task (id or slug)")
	cmd.Flags().StringVar(&valueType, "type", "", "explicit type (string, int, float, datetime, bool, json)")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newMetaGetCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, task string

	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get metadata on a task, all entries or one key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				key := ""
				if len(args) > 0 {
					key = args[0]
				}
				values, err := svc.metadata.Get(cmd.Context(), project, task, key)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(values)
				}
				return writeMetadataList(values)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	cmd.Flags().StringVarP(&task, "task", "t", "", "task (id or slug)")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newMetaDeleteCmd(cfg *config.Config) *cobra.Command {
	var project, task string

	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a metadata key from a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				return svc.metadata.Delete(cmd.Context(), project, task, args[0])
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	cmd.Flags().StringVarP(&task, "task", "t", "", "task (id or slug)")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newMetaQueryCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var valueType string

	cmd := &cobra.Command{
		Use:   "query <key> <value>",
		Short: "Find tasks whose metadata key equals a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				tasks, err := svc.metadata.Query(cmd.Context(), args[0], args[1], valueType)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(tasks)
				}
				return writeTaskList(tasks)
			})
		},
	}

	cmd.Flags().StringVar(&valueType, "type", "", "explicit type for the comparison value")
	return cmd
}
