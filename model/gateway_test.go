package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateway(t *testing.T) {
	assert := assert.New(t)

	t.Run("new", func(t *testing.T) {
		gateway := NewGateway("g1", GatewayExclusive)

		assert.Equal(GatewayExclusive, gateway.GatewayType())
		assert.Equal(GatewayDirectionUnspecified, gateway.Direction)
		assert.Equal("", gateway.DefaultFlow())
		assert.False(gateway.Instantiate())
	})

	t.Run("set default flow", func(t *testing.T) {
		tests := map[GatewayType]bool{
			GatewayComplex:             false,
			GatewayEventBased:          false,
			GatewayExclusive:           true,
			GatewayExclusiveEventBased: false,
			GatewayInclusive:           true,
			GatewayParallel:            false,
			GatewayParallelEventBased:  false,
		}

		for gatewayType, supported := range tests {
			t.Run(gatewayType.String(), func(t *testing.T) {
				gateway := NewGateway("g1", gatewayType)

				err := gateway.SetDefaultFlow("f1")
				if supported {
					assert.NoError(err)
					assert.Equal("f1", gateway.DefaultFlow())
				} else {
					assertErrorType(t, err, ErrorConfiguration)
					assert.Equal("", gateway.DefaultFlow())
				}
			})
		}
	})

	t.Run("set default flow error names gateway type", func(t *testing.T) {
		gateway := NewGateway("g1", GatewayParallel)

		err := gateway.SetDefaultFlow("f1")
		assert.EqualError(err, "CONFIGURATION: failed to set default flow: default flow not supported for parallel gateway")
	})

	t.Run("enable process instantiation", func(t *testing.T) {
		tests := map[GatewayType]bool{
			GatewayComplex:             false,
			GatewayEventBased:          true,
			GatewayExclusive:           false,
			GatewayExclusiveEventBased: true,
			GatewayInclusive:           false,
			GatewayParallel:            false,
			GatewayParallelEventBased:  true,
		}

		for gatewayType, supported := range tests {
			t.Run(gatewayType.String(), func(t *testing.T) {
				gateway := NewGateway("g1", gatewayType)

				err := gateway.EnableProcessInstantiation()
				if supported {
					assert.NoError(err)
					assert.True(gateway.Instantiate())
					assert.True(gateway.IsEventBased())
				} else {
					assertErrorType(t, err, ErrorConfiguration)
					assert.False(gateway.Instantiate())
				}
			})
		}
	})

	t.Run("predicates", func(t *testing.T) {
		gateway := NewGateway("g1", GatewayInclusive)
		gateway.Direction = GatewayDirectionConverging

		assert.True(gateway.IsInclusive())
		assert.False(gateway.IsExclusive())
		assert.False(gateway.IsParallel())
		assert.False(gateway.IsComplex())
		assert.True(gateway.IsConverging())
		assert.False(gateway.IsDiverging())
		assert.False(gateway.IsMixed())
	})

	t.Run("symbol", func(t *testing.T) {
		tests := map[GatewayType]string{
			GatewayComplex:             "*",
			GatewayEventBased:          "⬟",
			GatewayExclusive:           "X",
			GatewayExclusiveEventBased: "⬟",
			GatewayInclusive:           "O",
			GatewayParallel:            "+",
			GatewayParallelEventBased:  "⬟",
		}

		for gatewayType, expected := range tests {
			assert.Equal(expected, NewGateway("g1", gatewayType).Symbol())
		}
	})

	t.Run("string", func(t *testing.T) {
		gateway := NewGateway("g1", GatewayExclusive)
		gateway.Name = "Approved?"
		assert.Equal("Exclusive Gateway 'Approved?' [X]", gateway.String())

		gateway.Direction = GatewayDirectionDiverging
		assert.Equal("Exclusive Gateway 'Approved?' [X] (diverging)", gateway.String())

		gateway = NewGateway("g2", GatewayEventBased)
		assert.Equal("Event Based Gateway '' [⬟]", gateway.String())
	})
}
