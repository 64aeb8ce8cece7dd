package model

import (
	"slices"

	"github.com/samber/lo"
)

// activityMarkers holds the markers of a task or sub-process.
// Parallel and sequential multi-instance markers exclude each other.
type activityMarkers struct {
	markers []ActivityMarker
}

// AddMarker adds a marker, unless already present.
// A multi-instance marker replaces the opposite multi-instance marker.
func (a *activityMarkers) AddMarker(marker ActivityMarker) {
	switch marker {
	case MarkerParallelMultiInstance:
		a.markers = lo.Without(a.markers, MarkerSequentialMultiInstance)
	case MarkerSequentialMultiInstance:
		a.markers = lo.Without(a.markers, MarkerParallelMultiInstance)
	}

	if !slices.Contains(a.markers, marker) {
		a.markers = append(a.markers, marker)
	}
}

func (a *activityMarkers) HasMarker(marker ActivityMarker) bool {
	return slices.Contains(a.markers, marker)
}

func (a *activityMarkers) Markers() []ActivityMarker {
	return slices.Clone(a.markers)
}

// ActivityMarker indicates a special behavior of an activity.
type ActivityMarker int

const (
	MarkerAdHoc ActivityMarker = iota + 1
	MarkerCompensation
	MarkerLoop
	MarkerParallelMultiInstance
	MarkerSequentialMultiInstance
)

func MapActivityMarker(s string) ActivityMarker {
	switch s {
	case "AD_HOC":
		return MarkerAdHoc
	case "COMPENSATION":
		return MarkerCompensation
	case "LOOP":
		return MarkerLoop
	case "PARALLEL_MULTI_INSTANCE":
		return MarkerParallelMultiInstance
	case "SEQUENTIAL_MULTI_INSTANCE":
		return MarkerSequentialMultiInstance
	default:
		return 0
	}
}

func (v ActivityMarker) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v ActivityMarker) String() string {
	switch v {
	case MarkerAdHoc:
		return "AD_HOC"
	case MarkerCompensation:
		return "COMPENSATION"
	case MarkerLoop:
		return "LOOP"
	case MarkerParallelMultiInstance:
		return "PARALLEL_MULTI_INSTANCE"
	case MarkerSequentialMultiInstance:
		return "SEQUENTIAL_MULTI_INSTANCE"
	default:
		return ""
	}
}

func (v *ActivityMarker) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "activity marker", func(s string) bool {
		*v = MapActivityMarker(s)
		return *v != 0
	})
}
