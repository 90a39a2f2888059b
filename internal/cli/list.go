package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/progress"
)

// NewListCommand creates the list command group.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage shopping lists",
	}
	cmd.AddCommand(newListLsCommand(rootOpts))
	cmd.AddCommand(newListAddCommand(rootOpts))
	cmd.AddCommand(newListRenameCommand(rootOpts))
	cmd.AddCommand(newListDoneCommand(rootOpts))
	cmd.AddCommand(newListRmCommand(rootOpts))
	return cmd
}

func newListLsCommand(rootOpts *RootOptions) *cobra.Command {
	var completed, open bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Show lists with their progress, most recently changed first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if completed && open {
				return fmt.Errorf("--completed and --open are mutually exclusive")
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			out := newFormatter(rootOpts, cmd.OutOrStdout())
			if completed || open {
				lists, err := repo.ListsByCompletion(completed)
				if err != nil {
					return err
				}
				counts := make(map[int64]model.Progress, len(lists))
				for _, l := range lists {
					if counts[l.ID], err = repo.Progress(l.ID); err != nil {
						return err
					}
				}
				summaries := progress.Summarize(lists, counts)
				return out.Success(summaries, func(w io.Writer) {
					for _, s := range summaries {
						printSummary(w, s)
					}
				})
			}

			summaries, err := repo.Lists()
			if err != nil {
				return err
			}
			return out.Success(summaries, func(w io.Writer) {
				if len(summaries) == 0 {
					fmt.Fprintln(w, "No lists yet")
					return
				}
				for _, s := range summaries {
					printSummary(w, s)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "only lists marked completed")
	cmd.Flags().BoolVar(&open, "open", false, "only lists not marked completed")
	return cmd
}

func printSummary(w io.Writer, s model.ListSummary) {
	mark := " "
	if s.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s  %d/%d items (%d%%)  updated %s\n",
		s.ID, mark, s.Name, s.CompletedItems, s.TotalItems, progress.Percent(s.Progress), humanize.Time(s.ModifiedAt))
}

func newListAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			id, err := repo.CreateList(args[0])
			if err != nil {
				return err
			}
			l, err := repo.GetList(id)
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(l, func(w io.Writer) {
				fmt.Fprintf(w, "Created list %d: %s\n", l.ID, l.Name)
			})
		},
	}
}

func newListRenameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			out := newFormatter(rootOpts, cmd.OutOrStdout())
			l, err := repo.RenameList(id, args[1])
			if err != nil {
				return err
			}
			if l == nil {
				return out.NotFound("list", id)
			}
			return out.Success(l, func(w io.Writer) {
				fmt.Fprintf(w, "Renamed list %d to %s\n", l.ID, l.Name)
			})
		},
	}
}

func newListDoneCommand(rootOpts *RootOptions) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a list completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			out := newFormatter(rootOpts, cmd.OutOrStdout())
			l, err := repo.SetListCompleted(id, !undo)
			if err != nil {
				return err
			}
			if l == nil {
				return out.NotFound("list", id)
			}
			return out.Success(l, func(w io.Writer) {
				state := "completed"
				if !l.Completed {
					state = "open"
				}
				fmt.Fprintf(w, "List %d is %s\n", l.ID, state)
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "mark the list open again")
	return cmd
}

func newListRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a list and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			out := newFormatter(rootOpts, cmd.OutOrStdout())
			l, err := repo.GetList(id)
			if err != nil {
				return err
			}
			if l == nil {
				return out.NotFound("list", id)
			}
			if err := repo.DeleteList(id); err != nil {
				return err
			}
			return out.Success(map[string]int64{"deleted": id}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted list %d: %s\n", l.ID, l.Name)
			})
		},
	}
}
