package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert built-in categories and sample lists into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepo(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB()

			res, err := repo.SeedIfEmpty()
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Success(res, func(w io.Writer) {
				if res.Categories == 0 && res.Lists == 0 {
					fmt.Fprintln(w, "Already seeded, nothing to do")
					return
				}
				fmt.Fprintf(w, "Seeded %d categories, %d lists, %d items\n", res.Categories, res.Lists, res.Items)
			})
		},
	}
}
