package cli

import (
	"context"
	"strconv"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/store"
	"github.com/spf13/cobra"
)

func newDiagramCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:         "diagram",
		Short:       "Manage and query stored diagrams",
		RunE:        cli.help,
		Annotations: map[string]string{noClientRequired: ""},
	}

	c.AddCommand(newDiagramCreateCmd(cli))
	c.AddCommand(newDiagramDeleteCmd(cli))
	c.AddCommand(newDiagramGetCmd(cli))
	c.AddCommand(newDiagramQueryCmd(cli))

	return &c
}

func newDiagramCreateCmd(cli *Cli) *cobra.Command {
	var (
		fileName string

		cmd store.SaveCmd
	)

	c := cobra.Command{
		Use:   "create",
		Short: "Create or update a diagram",
		RunE: func(c *cobra.Command, _ []string) error {
			d, err := readDiagram(fileName)
			if err != nil {
				return err
			}

			cmd.Diagram = d

			record, err := cli.client.Save(context.Background(), cmd)
			if err != nil {
				return err
			}

			c.Println(record)
			return nil
		},
	}

	c.Flags().StringVar(&fileName, "file", "", "Path to a diagram file")
	c.Flags().IntVar(&cmd.Revision, "revision", 0, "Expected revision of the stored diagram")

	c.MarkFlagRequired("file")

	c.MarkFlagFilename("file", "json", "yaml", "yml", "bpmn", "xml")

	return &c
}

func newDiagramDeleteCmd(cli *Cli) *cobra.Command {
	var id string

	c := cobra.Command{
		Use:   "delete",
		Short: "Delete a diagram",
		RunE: func(c *cobra.Command, _ []string) error {
			return cli.client.Delete(context.Background(), id)
		},
	}

	c.Flags().StringVar(&id, "id", "", "Diagram ID")

	c.MarkFlagRequired("id")

	return &c
}

func newDiagramGetCmd(cli *Cli) *cobra.Command {
	var (
		id             string
		outputFileName string
		format         = formatValue(codec.FormatJSON)
	)

	c := cobra.Command{
		Use:   "get",
		Short: "Get a diagram",
		RunE: func(c *cobra.Command, _ []string) error {
			d, _, err := cli.client.Load(context.Background(), id)
			if err != nil {
				return err
			}

			return writeDiagram(c, d, codec.Format(format), outputFileName)
		},
	}

	c.Flags().StringVar(&id, "id", "", "Diagram ID")
	c.Flags().VarP(&format, "format", "f", "Output format: json or yaml")
	c.Flags().StringVarP(&outputFileName, "output", "o", "", "Path to an output file")

	c.MarkFlagRequired("id")

	return &c
}

func newDiagramQueryCmd(cli *Cli) *cobra.Command {
	var (
		hasErrors optionalBoolValue

		criteria store.Criteria
	)

	c := cobra.Command{
		Use:   "query",
		Short: "Query diagrams",
		RunE: func(c *cobra.Command, _ []string) error {
			criteria.HasErrors = hasErrors.value

			results, err := cli.client.Query(context.Background(), criteria)
			if err != nil {
				return err
			}

			table := newTable([]string{
				"ID",
				"NAME",
				"VERSION",
				"REVISION",
				"ERRORS",
				"WARNINGS",
				"INFOS",
				"SAVED AT",
			})

			for _, result := range results {
				table.addRow([]string{
					result.DiagramId,
					result.Name,
					result.Version,
					strconv.Itoa(result.Revision),
					strconv.Itoa(result.Errors),
					strconv.Itoa(result.Warnings),
					strconv.Itoa(result.Infos),
					formatTime(result.SavedAt),
				})
			}

			c.Print(table.format())
			return nil
		},
	}

	c.Flags().StringVar(&criteria.DiagramId, "id", "", "Diagram ID")
	c.Flags().StringVar(&criteria.Name, "name", "", "Part of the diagram name, case insensitive")
	c.Flags().StringVar(&criteria.Version, "version", "", "Diagram version")
	c.Flags().Var(&hasErrors, "has-errors", "Determines if diagrams with or without validation errors are queried")
	c.Flags().Lookup("has-errors").NoOptDefVal = "true"

	c.Flags().IntVar(&criteria.Limit, "limit", 100, "")
	c.Flags().IntVar(&criteria.Offset, "offset", 0, "")

	return &c
}
