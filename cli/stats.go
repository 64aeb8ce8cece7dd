package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd(cli *Cli) *cobra.Command {
	var id string

	c := cobra.Command{
		Use:   "stats [file]",
		Short: "Count the elements of a diagram file or a stored diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var fileName string
			if len(args) != 0 {
				fileName = args[0]
			}

			d, err := loadDiagram(cli, fileName, id)
			if err != nil {
				return err
			}

			c.Println(d.String())

			counts := d.CountAllElements()

			table := newTable([]string{
				"ELEMENTS",
				"COUNT",
			})

			for _, key := range counts.Keys() {
				table.addRow([]string{
					key,
					strconv.Itoa(counts[key]),
				})
			}

			table.addRow([]string{"total", strconv.Itoa(counts.Total())})

			c.Print(table.format())
			return nil
		},
		Annotations: map[string]string{noClientRequired: ""},
	}

	c.Flags().StringVar(&id, "id", "", "ID of a stored diagram")

	return &c
}
