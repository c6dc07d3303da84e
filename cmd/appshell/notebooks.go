package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowcards/appshell/internal/core/domain"
)

func newNotebooksCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebooks",
		Short: "Manage notebooks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notebooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/dashboard"); err != nil {
					return err
				}
				notebooks, err := a.notebooks.List(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, notebooks)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "default",
		Short: "Show the default notebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/cards/new"); err != nil {
					return err
				}
				nb, err := a.notebooks.Default(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, nb)
			})
		},
	})
	cmd.AddCommand(newNotebooksCreateCmd(flags))
	cmd.AddCommand(newNotebooksUpdateCmd(flags))
	cmd.AddCommand(newNotebooksDeleteCmd(flags))

	return cmd
}

func newNotebooksCreateCmd(flags *globalFlags) *cobra.Command {
	var req domain.CreateNotebookRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a notebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validate.Struct(req); err != nil {
				return fmt.Errorf("invalid notebook: %w", err)
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/dashboard"); err != nil {
					return err
				}
				nb, err := a.notebooks.Create(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd, nb)
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "notebook name")
	cmd.Flags().StringVar(&req.Description, "description", "", "description")
	cmd.Flags().StringVar(&req.Color, "color", "", "hex color, e.g. #3b82f6")
	cmd.Flags().BoolVar(&req.IsDefault, "default", false, "make it the default notebook")

	return cmd
}

func newNotebooksUpdateCmd(flags *globalFlags) *cobra.Command {
	var (
		name, description, color string
		isDefault                bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			var req domain.UpdateNotebookRequest
			if fs.Changed("name") {
				req.Name = &name
			}
			if fs.Changed("description") {
				req.Description = &description
			}
			if fs.Changed("color") {
				req.Color = &color
			}
			if fs.Changed("default") {
				req.IsDefault = &isDefault
			}
			if err := validate.Struct(req); err != nil {
				return fmt.Errorf("invalid notebook update: %w", err)
			}

			id := domain.ID(args[0])
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/dashboard"); err != nil {
					return err
				}
				nb, err := a.notebooks.Update(cmd.Context(), id, req)
				if err != nil {
					return err
				}
				return printJSON(cmd, nb)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "notebook name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #3b82f6")
	cmd.Flags().BoolVar(&isDefault, "default", false, "make it the default notebook")

	return cmd
}

func newNotebooksDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ID(args[0])
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/dashboard"); err != nil {
					return err
				}
				if err := a.notebooks.Delete(cmd.Context(), id); err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"deleted": id.String()})
			})
		},
	}
}
