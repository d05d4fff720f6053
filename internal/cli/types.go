package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/shapegen/internal/shapes"
)

// typesCommand prints the class table in effect.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List shape types and their class ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			table, err := cfg.ClassTable()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "Shape types")
			for _, e := range table.Entries() {
				t, err := shapes.ParseShapeType(e.Name)
				if err != nil {
					return err
				}
				category := "polygon"
				if t.Category() == shapes.Round {
					category = "round"
				}
				printRow(out, e.ID, e.Name, category)
			}
			return nil
		},
	}
}
