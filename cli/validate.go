package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gclaussn/go-bpmn-schema/http/common"
	"github.com/gclaussn/go-bpmn-schema/validation"
	"github.com/spf13/cobra"
)

func newValidateCmd(cli *Cli) *cobra.Command {
	var (
		id          string
		jsonEnabled bool
		noColor     bool
		rules       ruleFlags
	)

	c := cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a diagram file or a stored diagram",
		Long: `Validate a diagram file or a stored diagram.

The file format is determined by the file extension: .json, .yaml, .yml, .bpmn or .xml.
The command fails, if the diagram has findings of severity ERROR.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var fileName string
			if len(args) != 0 {
				fileName = args[0]
			}

			var (
				res common.FindingsRes
				err error
			)
			if id != "" && fileName == "" {
				// validate on server side
				if err := cli.connect(); err != nil {
					return err
				}
				res, err = cli.client.Findings(context.Background(), id, rules.names()...)
			} else {
				d, loadErr := loadDiagram(cli, fileName, id)
				if loadErr != nil {
					return loadErr
				}

				customizer, enableErr := common.EnableRules(rules.names())
				if enableErr != nil {
					return enableErr
				}
				res, err = common.NewFindingsRes(d, customizer)
			}
			if err != nil {
				return err
			}

			if jsonEnabled {
				b, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %v", err)
				}
				c.Println(string(b))
			} else {
				c.Println(formatReport(validation.Report(res.Findings), noColor))
			}

			if !res.Valid {
				return fmt.Errorf("diagram %s has %d validation errors", res.DiagramId, res.Errors)
			}
			return nil
		},
		Annotations: map[string]string{noClientRequired: ""},
	}

	c.Flags().StringVar(&id, "id", "", "ID of a stored diagram")
	c.Flags().BoolVar(&jsonEnabled, "json", false, "Print the findings as JSON")
	c.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	flagRules(&c, &rules)

	return &c
}
