package cli

import (
	"context"
	"testing"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/sample"
	"github.com/gclaussn/go-bpmn-schema/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagram(t *testing.T) {
	c := mustCreateClient(t)

	d, err := sample.OrderFulfillment()
	require.NoError(t, err)

	fileName := mustWriteFile(t, d, codec.FormatYAML, "order.yaml")

	t.Run("create", func(t *testing.T) {
		assert := assert.New(t)

		output := mustExecute(t, c, []string{"diagram", "create", "--file", fileName})
		assert.Equal(d.Id+"@1\n", output)

		output = mustExecute(t, c, []string{"diagram", "create", "--file", fileName, "--revision", "1"})
		assert.Equal(d.Id+"@2\n", output)
	})

	t.Run("create returns error when revision does not match", func(t *testing.T) {
		_, err := execute(c, []string{"diagram", "create", "--file", fileName, "--revision", "1"})
		assert.IsTypef(t, model.Error{}, err, "expected model error")
		assert.Equal(t, model.ErrorConflict, err.(model.Error).Type)
	})

	t.Run("get", func(t *testing.T) {
		assert := assert.New(t)

		output := mustExecute(t, c, []string{"diagram", "get", "--id", d.Id, "--format", "yaml"})

		loaded, err := codec.DecodeYAML([]byte(output))
		require.NoError(t, err)
		assert.Equal(d.Name, loaded.Name)
		assert.Equal(d.CountAllElements(), loaded.CountAllElements())
	})

	t.Run("get returns error when format is not supported", func(t *testing.T) {
		_, err := execute(c, []string{"diagram", "get", "--id", d.Id, "--format", "xml"})
		assert.ErrorContains(t, err, "invalid output format xml: must be json or yaml")
	})

	t.Run("query", func(t *testing.T) {
		assert := assert.New(t)

		_, err := c.Save(context.Background(), store.SaveCmd{Diagram: mustCreateInvalidDiagram(t, "invalid")})
		require.NoError(t, err)

		output := mustExecute(t, c, []string{"diagram", "query"})
		assert.Contains(output, "ID")
		assert.Contains(output, d.Id)
		assert.Contains(output, "invalid")

		output = mustExecute(t, c, []string{"diagram", "query", "--has-errors"})
		assert.NotContains(output, d.Id)
		assert.Contains(output, "invalid")

		output = mustExecute(t, c, []string{"diagram", "query", "--has-errors=false"})
		assert.Contains(output, d.Id)
		assert.NotContains(output, "invalid")
	})

	t.Run("stats of stored diagram", func(t *testing.T) {
		output := mustExecute(t, c, []string{"stats", "--id", d.Id})
		assert.Contains(t, output, d.String())
	})

	t.Run("delete", func(t *testing.T) {
		assert := assert.New(t)

		mustExecute(t, c, []string{"diagram", "delete", "--id", d.Id})

		_, err := execute(c, []string{"diagram", "delete", "--id", d.Id})
		assert.IsTypef(model.Error{}, err, "expected model error")
		assert.Equal(model.ErrorNotFound, err.(model.Error).Type)
	})
}
