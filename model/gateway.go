package model

import (
	"fmt"
	"strings"
)

func NewGateway(id string, gatewayType GatewayType) *Gateway {
	return &Gateway{
		BaseElement: newBaseElement(id),
		Direction:   GatewayDirectionUnspecified,

		gatewayType: gatewayType,
	}
}

type Gateway struct {
	BaseElement

	Direction GatewayDirection

	defaultFlow string
	gatewayType GatewayType
	instantiate bool
}

// DefaultFlow returns the ID of the sequence flow, taken when no condition evaluates to true.
func (g *Gateway) DefaultFlow() string {
	return g.defaultFlow
}

func (g *Gateway) ElementType() ElementType {
	return ElementGateway
}

// EnableProcessInstantiation lets the gateway start a process instance, which is only supported by event-based gateways.
func (g *Gateway) EnableProcessInstantiation() error {
	if !g.IsEventBased() {
		return newConfigurationError(
			"failed to enable process instantiation",
			"process instantiation only supported for event-based gateways",
		)
	}

	g.instantiate = true
	return nil
}

func (g *Gateway) GatewayType() GatewayType {
	return g.gatewayType
}

func (g *Gateway) Instantiate() bool {
	return g.instantiate
}

func (g *Gateway) IsComplex() bool {
	return g.gatewayType == GatewayComplex
}

func (g *Gateway) IsConverging() bool {
	return g.Direction == GatewayDirectionConverging
}

func (g *Gateway) IsDiverging() bool {
	return g.Direction == GatewayDirectionDiverging
}

func (g *Gateway) IsEventBased() bool {
	switch g.gatewayType {
	case GatewayEventBased, GatewayExclusiveEventBased, GatewayParallelEventBased:
		return true
	default:
		return false
	}
}

func (g *Gateway) IsExclusive() bool {
	return g.gatewayType == GatewayExclusive
}

func (g *Gateway) IsInclusive() bool {
	return g.gatewayType == GatewayInclusive
}

func (g *Gateway) IsMixed() bool {
	return g.Direction == GatewayDirectionMixed
}

func (g *Gateway) IsParallel() bool {
	return g.gatewayType == GatewayParallel
}

// SetDefaultFlow sets the default flow of an exclusive or inclusive gateway.
func (g *Gateway) SetDefaultFlow(flowId string) error {
	if !g.IsExclusive() && !g.IsInclusive() {
		return newConfigurationError(
			"failed to set default flow",
			"default flow not supported for %s gateway",
			strings.ToLower(g.gatewayType.String()),
		)
	}

	g.defaultFlow = flowId
	return nil
}

func (g *Gateway) String() string {
	var direction string
	if g.Direction != GatewayDirectionUnspecified && g.Direction != 0 {
		direction = fmt.Sprintf(" (%s)", strings.ToLower(g.Direction.String()))
	}
	return fmt.Sprintf("%s Gateway '%s' [%s]%s", title(g.gatewayType.String()), g.Name, g.Symbol(), direction)
}

// Symbol returns the marker, a gateway shows in a diagram.
func (g *Gateway) Symbol() string {
	switch g.gatewayType {
	case GatewayComplex:
		return "*"
	case GatewayExclusive:
		return "X"
	case GatewayInclusive:
		return "O"
	case GatewayParallel:
		return "+"
	case GatewayEventBased, GatewayExclusiveEventBased, GatewayParallelEventBased:
		return "⬟"
	default:
		return "?"
	}
}

func (g *Gateway) isFlowObject() {}

type GatewayDirection int

const (
	GatewayDirectionConverging GatewayDirection = iota + 1
	GatewayDirectionDiverging
	GatewayDirectionMixed
	GatewayDirectionUnspecified
)

func MapGatewayDirection(s string) GatewayDirection {
	switch s {
	case "CONVERGING":
		return GatewayDirectionConverging
	case "DIVERGING":
		return GatewayDirectionDiverging
	case "MIXED":
		return GatewayDirectionMixed
	case "UNSPECIFIED":
		return GatewayDirectionUnspecified
	default:
		return 0
	}
}

func (v GatewayDirection) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v GatewayDirection) String() string {
	switch v {
	case GatewayDirectionConverging:
		return "CONVERGING"
	case GatewayDirectionDiverging:
		return "DIVERGING"
	case GatewayDirectionMixed:
		return "MIXED"
	case GatewayDirectionUnspecified:
		return "UNSPECIFIED"
	default:
		return ""
	}
}

func (v *GatewayDirection) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "gateway direction", func(s string) bool {
		*v = MapGatewayDirection(s)
		return *v != 0
	})
}

type GatewayType int

const (
	GatewayComplex GatewayType = iota + 1
	GatewayEventBased
	GatewayExclusive
	GatewayExclusiveEventBased
	GatewayInclusive
	GatewayParallel
	GatewayParallelEventBased
)

func MapGatewayType(s string) GatewayType {
	switch s {
	case "COMPLEX":
		return GatewayComplex
	case "EVENT_BASED":
		return GatewayEventBased
	case "EXCLUSIVE":
		return GatewayExclusive
	case "EXCLUSIVE_EVENT_BASED":
		return GatewayExclusiveEventBased
	case "INCLUSIVE":
		return GatewayInclusive
	case "PARALLEL":
		return GatewayParallel
	case "PARALLEL_EVENT_BASED":
		return GatewayParallelEventBased
	default:
		return 0
	}
}

func (v GatewayType) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v GatewayType) String() string {
	switch v {
	case GatewayComplex:
		return "COMPLEX"
	case GatewayEventBased:
		return "EVENT_BASED"
	case GatewayExclusive:
		return "EXCLUSIVE"
	case GatewayExclusiveEventBased:
		return "EXCLUSIVE_EVENT_BASED"
	case GatewayInclusive:
		return "INCLUSIVE"
	case GatewayParallel:
		return "PARALLEL"
	case GatewayParallelEventBased:
		return "PARALLEL_EVENT_BASED"
	default:
		return ""
	}
}

func (v *GatewayType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "gateway type", func(s string) bool {
		*v = MapGatewayType(s)
		return *v != 0
	})
}
