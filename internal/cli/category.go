package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/repository"
)

// NewCategoryCommand creates the category command group.
func NewCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage item categories",
	}
	cmd.AddCommand(newCategoryLsCommand(rootOpts))
	cmd.AddCommand(newCategoryAddCommand(rootOpts))
	cmd.AddCommand(newCategoryRmCommand(rootOpts))
	return cmd
}

func printCategories(w io.Writer, categories []model.Category) {
	for _, c := range categories {
		kind := "custom"
		if c.IsDefault {
			kind = "built-in"
		}
		fmt.Fprintf(w, "%4d  %-20s %-9s %s\n", c.ID, c.Name, c.Color, kind)
	}
}

func newCategoryLsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Show categories, built-in ones first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			categories, err := repo.Categories()
			if err != nil {
				return err
			}
			if categories == nil {
				categories = []model.Category{}
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(categories, func(w io.Writer) {
				printCategories(w, categories)
			})
		},
	}
}

func newCategoryAddCommand(rootOpts *RootOptions) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			c, err := repo.CreateCategory(args[0], color)
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(c, func(w io.Writer) {
				fmt.Fprintf(w, "Created category %d: %s\n", c.ID, c.Name)
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #4CAF50")
	return cmd
}

func newCategoryRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "category id")
			if err != nil {
				return err
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			out := newFormatter(rootOpts, cmd.OutOrStdout())
			c, err := repo.GetCategory(id)
			if err != nil {
				return err
			}
			if c == nil {
				return out.NotFound("category", id)
			}
			err = repo.DeleteCategory(id)
			if errors.Is(err, repository.ErrDefaultCategory) {
				return fmt.Errorf("category %q is built in and cannot be deleted", c.Name)
			}
			if err != nil {
				return err
			}
			return out.Success(map[string]int64{"deleted": id}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted category %d: %s\n", c.ID, c.Name)
			})
		},
	}
}
