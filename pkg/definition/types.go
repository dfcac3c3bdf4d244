package definition

import (
	"slices"

	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// typeSpec is the YAML form of a data type. A bare scalar is shorthand for a kind without
// parameters ("float32") or one of the vector aliases ("vec2", "vec3").
type typeSpec struct {
	Kind     string      `yaml:"kind"`
	Elem     *typeSpec   `yaml:"elem"`
	Size     int         `yaml:"size"`
	Fields   []fieldSpec `yaml:"fields"`
	Variants []string    `yaml:"variants"`
}

type fieldSpec struct {
	Name     string   `yaml:"name"`
	Type     typeSpec `yaml:"type"`
	Nullable bool     `yaml:"nullable"`
}

func (t *typeSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*t = typeSpec{Kind: node.Value}
		return nil
	}
	if err := checkKeys(node, "type", "kind", "elem", "size", "fields", "variants"); err != nil {
		return err
	}
	type plain typeSpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = typeSpec(p)
	return nil
}

func (f *fieldSpec) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "field", "name", "type", "nullable"); err != nil {
		return err
	}
	type plain fieldSpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*f = fieldSpec(p)
	return nil
}

// checkKeys rejects a mapping node holding a key outside allowed. node.Decode does not inherit
// KnownFields from the outer decoder.
func checkKeys(node *yaml.Node, what string, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return eris.Errorf("line %d: unknown %s key %q", key.Line, what, key.Value)
		}
	}
	return nil
}

func (t *typeSpec) dataType() (datatype.DataType, error) {
	switch t.Kind {
	case "":
		return datatype.DataType{}, eris.New("missing data type kind")
	case "vec2":
		return datatype.Vec2(), nil
	case "vec3":
		return datatype.Vec3(), nil
	}

	kind, err := datatype.ParseKind(t.Kind)
	if err != nil {
		return datatype.DataType{}, err
	}

	dt := datatype.DataType{Kind: kind}
	switch kind { //nolint:exhaustive // primitives carry no parameters
	case datatype.KindList, datatype.KindFixedSizeList:
		if t.Elem == nil {
			return datatype.DataType{}, eris.Errorf("%s requires an elem type", kind)
		}
		elem, err := t.Elem.dataType()
		if err != nil {
			return datatype.DataType{}, eris.Wrapf(err, "%s elem", kind)
		}
		dt.Elem = &elem
		if kind == datatype.KindFixedSizeList {
			dt.Size = t.Size
		}
	case datatype.KindStruct, datatype.KindUnion:
		dt.Fields = make([]datatype.Field, len(t.Fields))
		for i, f := range t.Fields {
			ft, err := f.Type.dataType()
			if err != nil {
				return datatype.DataType{}, eris.Wrapf(err, "%s field %s", kind, f.Name)
			}
			dt.Fields[i] = datatype.Field{Name: f.Name, Type: ft, Nullable: f.Nullable}
		}
	case datatype.KindEnum:
		dt.Variants = t.Variants
	}
	return dt, nil
}
