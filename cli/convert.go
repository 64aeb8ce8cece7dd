package cli

import (
	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/spf13/cobra"
)

func newConvertCmd(cli *Cli) *cobra.Command {
	var (
		outputFileName string
		format         = formatValue(codec.FormatJSON)
	)

	c := cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a diagram file to JSON or YAML",
		Long: `Convert a diagram file to JSON or YAML.

The input format is determined by the file extension: .json, .yaml, .yml, .bpmn or .xml.
Without an output file, the result is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			d, err := readDiagram(args[0])
			if err != nil {
				return err
			}

			return writeDiagram(c, d, codec.Format(format), outputFileName)
		},
		Annotations: map[string]string{noClientRequired: ""},
	}

	c.Flags().VarP(&format, "format", "f", "Output format: json or yaml")
	c.Flags().StringVarP(&outputFileName, "output", "o", "", "Path to an output file")

	return &c
}
