package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/http/common"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/spf13/cobra"
)

// ruleFlags enable opt-in validation rules.
type ruleFlags struct {
	condition bool
	reference bool
	timer     bool
}

func (f ruleFlags) names() []string {
	var names []string
	if f.condition {
		names = append(names, common.RuleCondition)
	}
	if f.reference {
		names = append(names, common.RuleReference)
	}
	if f.timer {
		names = append(names, common.RuleTimer)
	}
	return names
}

func flagRules(c *cobra.Command, rules *ruleFlags) {
	c.Flags().BoolVar(&rules.condition, "condition", false, "Enable the condition expression rule")
	c.Flags().BoolVar(&rules.reference, "reference", false, "Enable the reference rule (unique IDs, dangling references)")
	c.Flags().BoolVar(&rules.timer, "timer", false, "Enable the timer trigger rule")
}

// loadDiagram reads a diagram from a file or, if an ID is specified, loads a stored diagram.
func loadDiagram(cli *Cli, fileName string, id string) (*model.Diagram, error) {
	switch {
	case fileName != "" && id != "":
		return nil, errors.New("either a file or an ID must be specified")
	case id != "":
		if err := cli.connect(); err != nil {
			return nil, err
		}

		d, _, err := cli.client.Load(context.Background(), id)
		return d, err
	case fileName != "":
		return readDiagram(fileName)
	default:
		return nil, errors.New("no file or ID specified")
	}
}

// readDiagram reads a diagram from a file. The format is determined by the file extension.
func readDiagram(fileName string) (*model.Diagram, error) {
	format, err := codec.FormatByFileName(fileName)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %v", fileName, err)
	}

	return codec.Decode(format, b)
}

// writeDiagram encodes a diagram and writes it to a file or, if no file name is specified, to the output of the command.
func writeDiagram(c *cobra.Command, d *model.Diagram, format codec.Format, fileName string) error {
	b, err := codec.Encode(format, d)
	if err != nil {
		return err
	}

	if fileName == "" {
		c.Println(strings.TrimSpace(string(b)))
		return nil
	}

	if err := os.WriteFile(fileName, b, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %v", fileName, err)
	}
	return nil
}
