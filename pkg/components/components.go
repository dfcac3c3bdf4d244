// Package components defines the typed component values logged through the archetypes in
// package archetypes. Every type implements component.Loggable.
package components

import (
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/rotisserie/eris"
)

// All returns the zero value of every component type, in name order.
func All() []component.Loggable {
	return []component.Loggable{
		AlbedoFactor(0),
		AnnotationContext{},
		Blob(nil),
		ClassID(0),
		ClearIsRecursive(false),
		Color(0),
		Colormap(0),
		DepthMeter(0),
		DisconnectedSpace(false),
		DrawOrder(0),
		FillRatio(0),
		HalfSize2D{},
		HalfSize3D{},
		ImageFormat{},
		KeypointID(0),
		LineStrip2D{},
		LineStrip3D{},
		MarkerShape(0),
		MarkerSize(0),
		MediaType(""),
		Name(""),
		Opacity(0),
		PinholeProjection{},
		Position2D{},
		Position3D{},
		Radius(0),
		Resolution{},
		Rotation3D{},
		Scalar(0),
		Scale3D{},
		ShowLabels(false),
		StrokeWidth(0),
		TensorData{},
		Texcoord2D{},
		Text(""),
		TextLogLevel(""),
		TransformRelation(0),
		Translation3D{},
		TriangleIndices{},
		ValueRange{},
		Vector2D{},
		Vector3D{},
		ViewCoordinates{},
	}
}

// Register registers every component type with reg.
func Register(reg *component.Registry) error {
	for _, c := range All() {
		if err := reg.Register(c.Name(), c.DataType()); err != nil {
			return eris.Wrapf(err, "failed to register component %s", c.Name())
		}
	}
	return nil
}

func floats(xs ...float32) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
