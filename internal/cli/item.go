package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/progress"
	"github.com/dukerupert/smartcart/internal/repository"
)

// NewItemCommand creates the item command group.
func NewItemCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the items of a list",
	}
	cmd.AddCommand(newItemLsCommand(rootOpts))
	cmd.AddCommand(newItemAddCommand(rootOpts))
	cmd.AddCommand(newItemToggleCommand(rootOpts))
	cmd.AddCommand(newItemMoveCommand(rootOpts, "up", "Move an item one place up", (*repository.Repository).MoveItemUp))
	cmd.AddCommand(newItemMoveCommand(rootOpts, "down", "Move an item one place down", (*repository.Repository).MoveItemDown))
	cmd.AddCommand(newItemRmCommand(rootOpts))
	return cmd
}

// itemListing is the JSON shape of item ls.
type itemListing struct {
	Items    []model.Item   `json:"items"`
	Progress model.Progress `json:"progress"`
}

func printItems(w io.Writer, items []model.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items")
		return
	}
	for _, it := range items {
		mark := " "
		if it.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "%4d  [%s] %-24s %-10s %s\n", it.ID, mark, it.Name, it.Quantity, it.Category)
	}
}

func newItemLsCommand(rootOpts *RootOptions) *cobra.Command {
	var completed, open bool

	cmd := &cobra.Command{
		Use:   "ls <list-id>",
		Short: "Show the items of a list in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if completed && open {
				return fmt.Errorf("--completed and --open are mutually exclusive")
			}
			listID, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			var items []model.Item
			if completed || open {
				items, err = repo.ItemsByCompletion(listID, completed)
			} else {
				items, err = repo.Items(listID)
			}
			if err != nil {
				return err
			}
			if items == nil {
				items = []model.Item{}
			}

			p := progress.Compute(items)
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(itemListing{Items: items, Progress: p}, func(w io.Writer) {
				printItems(w, items)
				if !completed && !open {
					fmt.Fprintf(w, "%d/%d done (%d%%)\n", p.CompletedItems, p.TotalItems, progress.Percent(p))
				}
			})
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "only completed items")
	cmd.Flags().BoolVar(&open, "open", false, "only items still to buy")
	return cmd
}

func newItemAddCommand(rootOpts *RootOptions) *cobra.Command {
	var category, quantity, notes string

	cmd := &cobra.Command{
		Use:   "add <list-id> <name>",
		Short: "Add an item to the end of a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			item, err := repo.AddItem(model.Item{
				ListID:   listID,
				Name:     args[1],
				Category: category,
				Quantity: quantity,
				Notes:    notes,
			})
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(item, func(w io.Writer) {
				fmt.Fprintf(w, "Added item %d: %s (%s, %s)\n", item.ID, item.Name, item.Quantity, item.Category)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category name (default General)")
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "", "free-form quantity, e.g. \"2 lbs\"")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "notes")
	return cmd
}

func newItemToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip an item between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "item id")
			if err != nil {
				return err
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			out := newFormatter(rootOpts, cmd.OutOrStdout())
			item, err := repo.ToggleItemCompleted(id)
			if err != nil {
				return err
			}
			if item == nil {
				return out.NotFound("item", id)
			}
			return out.Success(item, func(w io.Writer) {
				state := "done"
				if !item.Completed {
					state = "not done"
				}
				fmt.Fprintf(w, "Item %d is %s\n", item.ID, state)
			})
		},
	}
}

func newItemMoveCommand(rootOpts *RootOptions, use, short string, move func(*repository.Repository, int64, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <list-id> <id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			id, err := parseID(args[1], "item id")
			if err != nil {
				return err
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := move(repo, listID, id); err != nil {
				return err
			}
			items, err := repo.Items(listID)
			if err != nil {
				return err
			}
			if items == nil {
				items = []model.Item{}
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(items, func(w io.Writer) {
				printItems(w, items)
			})
		},
	}
}

func newItemRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "item id")
			if err != nil {
				return err
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			out := newFormatter(rootOpts, cmd.OutOrStdout())
			item, err := repo.GetItem(id)
			if err != nil {
				return err
			}
			if item == nil {
				return out.NotFound("item", id)
			}
			if err := repo.DeleteItem(id); err != nil {
				return err
			}
			return out.Success(map[string]int64{"deleted": id}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted item %d: %s\n", item.ID, item.Name)
			})
		},
	}
}
