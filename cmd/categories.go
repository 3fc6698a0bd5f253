package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tcp_snm/algodex/internal/forms"
)

func newCategoriesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "c"},
		Short:   "List and edit problem categories",
	}
	cmd.AddCommand(
		newCategoriesListCmd(c),
		newCategoriesCreateCmd(c),
		newCategoriesRenameCmd(c),
		newCategoriesDeleteCmd(c),
	)
	return cmd
}

func newCategoriesListCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.services()
			if err != nil {
				return err
			}
			categories, err := s.categories.ListCategories(cmd.Context())
			if err != nil {
				return err
			}

			out := newPrinter(cmd)
			if asJSON {
				return out.json(categories)
			}
			if len(categories) == 0 {
				out.muted("No categories yet.")
				return nil
			}
			for _, category := range categories {
				fmt.Fprintln(out.w, category)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newCategoriesCreateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a category, asking for the name when none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else if err := runForm(cmd.Context(), forms.CategoryForm("Category name", &name), "pass the name as an argument"); err != nil {
				return err
			}

			s, err := c.services()
			if err != nil {
				return err
			}
			if err := s.categories.CreateCategory(cmd.Context(), name); err != nil {
				return err
			}
			newPrinter(cmd).success("created category %q", name)
			return nil
		},
	}
}

func newCategoriesRenameCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> [new-name]",
		Short: "Rename a category on every problem that carries it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName := args[0]
			newName := oldName
			if len(args) == 2 {
				newName = args[1]
			} else if err := runForm(cmd.Context(), forms.CategoryForm("New name for "+oldName, &newName), "pass the new name as an argument"); err != nil {
				return err
			}

			s, err := c.services()
			if err != nil {
				return err
			}
			if err := s.categories.UpdateCategory(cmd.Context(), oldName, newName); err != nil {
				return err
			}
			newPrinter(cmd).success("renamed category %q to %q", oldName, newName)
			return nil
		},
	}
}

func newCategoriesDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a category and drop it from every problem",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			ok, err := confirm(cmd.Context(), yes, fmt.Sprintf("Delete category %q?", name))
			if err != nil || !ok {
				return err
			}

			s, err := c.services()
			if err != nil {
				return err
			}
			if err := s.categories.DeleteCategory(cmd.Context(), name); err != nil {
				return err
			}
			newPrinter(cmd).success("deleted category %q", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
