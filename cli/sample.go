package cli

import (
	"errors"
	"strings"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/sample"
	"github.com/spf13/cobra"
)

func newSampleCmd(cli *Cli) *cobra.Command {
	var (
		list           bool
		outputFileName string
		format         = formatValue(codec.FormatJSON)
	)

	c := cobra.Command{
		Use:   "sample [name]",
		Short: "Create a sample diagram",
		Long:  "Create a sample diagram. Available samples: " + strings.Join(sample.Names(), ", "),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if list {
				for _, name := range sample.Names() {
					c.Println(name)
				}
				return nil
			}

			if len(args) == 0 {
				return errors.New("no sample name specified")
			}

			d, err := sample.ByName(args[0])
			if err != nil {
				return err
			}

			return writeDiagram(c, d, codec.Format(format), outputFileName)
		},
		ValidArgs:   sample.Names(),
		Annotations: map[string]string{noClientRequired: ""},
	}

	c.Flags().BoolVar(&list, "list", false, "List the names of all samples")
	c.Flags().VarP(&format, "format", "f", "Output format: json or yaml")
	c.Flags().StringVarP(&outputFileName, "output", "o", "", "Path to an output file")

	return &c
}
