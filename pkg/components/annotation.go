package components

import "github.com/argus-labs/loggable/pkg/datatype"

// AnnotationInfo labels and colors a class or a keypoint. Nil fields are left to the viewer.
type AnnotationInfo struct {
	ID    uint16  `json:"id"`
	Label *string `json:"label,omitempty"`
	Color *Color  `json:"color,omitempty"`
}

// KeypointPair connects two keypoints of a class with a line.
type KeypointPair struct {
	Keypoint0 KeypointID `json:"keypoint0"`
	Keypoint1 KeypointID `json:"keypoint1"`
}

// ClassDescription describes a class together with its keypoint skeleton.
type ClassDescription struct {
	Info                AnnotationInfo   `json:"info"`
	KeypointAnnotations []AnnotationInfo `json:"keypoint_annotations,omitempty"`
	KeypointConnections []KeypointPair   `json:"keypoint_connections,omitempty"`
}

// ClassDescriptionMapElem binds a class id to its description.
type ClassDescriptionMapElem struct {
	ClassID     ClassID          `json:"class_id"`
	Description ClassDescription `json:"class_description"`
}

// AnnotationContext maps class ids to class descriptions. Class ids and keypoint ids logged in
// the same entity subtree are resolved through it.
type AnnotationContext []ClassDescriptionMapElem

func (AnnotationContext) Name() string { return "AnnotationContext" }

func (AnnotationContext) DataType() datatype.DataType {
	info := datatype.Struct(
		datatype.NewField("id", datatype.UInt16()),
		datatype.NullableField("label", datatype.Utf8()),
		datatype.NullableField("color", datatype.UInt32()),
	)
	return datatype.List(datatype.Struct(
		datatype.NewField("class_id", datatype.UInt16()),
		datatype.NewField("class_description", datatype.Struct(
			datatype.NewField("info", info),
			datatype.NewField("keypoint_annotations", datatype.List(info)),
			datatype.NewField("keypoint_connections", datatype.List(datatype.Struct(
				datatype.NewField("keypoint0", datatype.UInt16()),
				datatype.NewField("keypoint1", datatype.UInt16()),
			))),
		)),
	))
}

func (a AnnotationContext) Value() any {
	out := make([]any, len(a))
	for i, elem := range a {
		desc := elem.Description
		keypoints := make([]any, len(desc.KeypointAnnotations))
		for j, kp := range desc.KeypointAnnotations {
			keypoints[j] = kp.value()
		}
		connections := make([]any, len(desc.KeypointConnections))
		for j, pair := range desc.KeypointConnections {
			connections[j] = []any{uint16(pair.Keypoint0), uint16(pair.Keypoint1)}
		}
		out[i] = []any{uint16(elem.ClassID), []any{desc.Info.value(), keypoints, connections}}
	}
	return out
}

func (a AnnotationInfo) value() []any {
	var label, color any
	if a.Label != nil {
		label = *a.Label
	}
	if a.Color != nil {
		color = uint32(*a.Color)
	}
	return []any{a.ID, label, color}
}
