// Package datatype describes the columnar element types of components.
//
// A DataType is a plain value: two data types describe the same column layout if and only if
// Equal reports true, and String renders a canonical form that is stable across processes. Values
// logged under a data type use a canonical Go shape that Check verifies:
//
//	Null            nil
//	Bool            bool
//	UInt8..Float64  the matching Go scalar (uint8, uint16, uint32, uint64, int32, int64, float32, float64)
//	Utf8            string
//	Binary          []byte
//	FixedSizeList   []any with exactly Size elements
//	List            []any
//	Struct          []any with one element per field, in field order (nil for null nullable fields)
//	Union           UnionValue
//	Enum            uint8 variant index
package datatype

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Kind identifies the layout family of a DataType.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindUtf8
	KindBinary
	KindFixedSizeList
	KindList
	KindStruct
	KindUnion
	KindEnum
)

var kindNames = [...]string{ //nolint:gochecknoglobals // read-only lookup table
	KindNull:          "null",
	KindBool:          "bool",
	KindUInt8:         "uint8",
	KindUInt16:        "uint16",
	KindUInt32:        "uint32",
	KindUInt64:        "uint64",
	KindInt32:         "int32",
	KindInt64:         "int64",
	KindFloat32:       "float32",
	KindFloat64:       "float64",
	KindUtf8:          "utf8",
	KindBinary:        "binary",
	KindFixedSizeList: "fixed_size_list",
	KindList:          "list",
	KindStruct:        "struct",
	KindUnion:         "union",
	KindEnum:          "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind converts the canonical kind name back into a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == strings.ToLower(s) {
			return Kind(k), nil
		}
	}
	return KindNull, eris.Errorf("unknown data type kind: %q", s)
}

// MaxUnionVariants is the number of variants a dense union type id can address.
const MaxUnionVariants = 127

// MaxEnumVariants is the number of variants an enum value (uint8) can address.
const MaxEnumVariants = 256

// Field is a named member of a struct, or a variant of a union.
type Field struct {
	Name     string   `msgpack:"name"`
	Type     DataType `msgpack:"type"`
	Nullable bool     `msgpack:"nullable"`
}

// DataType describes the element type of a component column.
type DataType struct {
	Kind     Kind      `msgpack:"kind"`
	Elem     *DataType `msgpack:"elem"`     // List and FixedSizeList
	Size     int       `msgpack:"size"`     // FixedSizeList
	Fields   []Field   `msgpack:"fields"`   // Struct fields or Union variants
	Variants []string  `msgpack:"variants"` // Enum
}

// UnionValue is the canonical value of a Union data type.
type UnionValue struct {
	Variant int // Index into the union's variants
	Value   any
}

func Null() DataType    { return DataType{Kind: KindNull} }
func Bool() DataType    { return DataType{Kind: KindBool} }
func UInt8() DataType   { return DataType{Kind: KindUInt8} }
func UInt16() DataType  { return DataType{Kind: KindUInt16} }
func UInt32() DataType  { return DataType{Kind: KindUInt32} }
func UInt64() DataType  { return DataType{Kind: KindUInt64} }
func Int32() DataType   { return DataType{Kind: KindInt32} }
func Int64() DataType   { return DataType{Kind: KindInt64} }
func Float32() DataType { return DataType{Kind: KindFloat32} }
func Float64() DataType { return DataType{Kind: KindFloat64} }
func Utf8() DataType    { return DataType{Kind: KindUtf8} }
func Binary() DataType  { return DataType{Kind: KindBinary} }

// FixedSizeList returns a list type where every value has exactly size elements.
func FixedSizeList(elem DataType, size int) DataType {
	return DataType{Kind: KindFixedSizeList, Elem: &elem, Size: size}
}

// List returns a variable-length list type.
func List(elem DataType) DataType {
	return DataType{Kind: KindList, Elem: &elem}
}

// Struct returns a struct type with the given fields, in order.
func Struct(fields ...Field) DataType {
	return DataType{Kind: KindStruct, Fields: fields}
}

// Union returns a dense union type. Each field is a variant.
func Union(variants ...Field) DataType {
	return DataType{Kind: KindUnion, Fields: variants}
}

// Enum returns an enum type with the given unit variants.
func Enum(variants ...string) DataType {
	return DataType{Kind: KindEnum, Variants: variants}
}

// NewField returns a non-nullable field.
func NewField(name string, dt DataType) Field {
	return Field{Name: name, Type: dt, Nullable: false}
}

// NullableField returns a field whose values may be nil.
func NullableField(name string, dt DataType) Field {
	return Field{Name: name, Type: dt, Nullable: true}
}

// Vec2 is the two float32 vector used by 2D positions, sizes, and vectors.
func Vec2() DataType { return FixedSizeList(Float32(), 2) }

// Vec3 is the three float32 vector used by 3D positions, sizes, and vectors.
func Vec3() DataType { return FixedSizeList(Float32(), 3) }

// -------------------------------------------------------------------------------------------------
// Comparison and rendering
// -------------------------------------------------------------------------------------------------

// Equal reports whether two data types describe the same layout.
func (dt DataType) Equal(other DataType) bool {
	if dt.Kind != other.Kind || dt.Size != other.Size {
		return false
	}
	if (dt.Elem == nil) != (other.Elem == nil) {
		return false
	}
	if dt.Elem != nil && !dt.Elem.Equal(*other.Elem) {
		return false
	}
	if len(dt.Fields) != len(other.Fields) || len(dt.Variants) != len(other.Variants) {
		return false
	}
	for i := range dt.Fields {
		a, b := dt.Fields[i], other.Fields[i]
		if a.Name != b.Name || a.Nullable != b.Nullable || !a.Type.Equal(b.Type) {
			return false
		}
	}
	for i := range dt.Variants {
		if dt.Variants[i] != other.Variants[i] {
			return false
		}
	}
	return true
}

// String renders the canonical form, e.g. "fixed_size_list<float32, 2>" or
// "struct<width: uint32, format: enum<rgb, rgba>?>". Nullable fields carry a trailing "?".
func (dt DataType) String() string {
	var sb strings.Builder
	dt.write(&sb)
	return sb.String()
}

func (dt DataType) write(sb *strings.Builder) {
	sb.WriteString(dt.Kind.String())
	switch dt.Kind { //nolint:exhaustive // primitives have no parameters
	case KindFixedSizeList:
		sb.WriteByte('<')
		dt.elem().write(sb)
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(dt.Size))
		sb.WriteByte('>')
	case KindList:
		sb.WriteByte('<')
		dt.elem().write(sb)
		sb.WriteByte('>')
	case KindStruct, KindUnion:
		sb.WriteByte('<')
		for i, f := range dt.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			f.Type.write(sb)
			if f.Nullable {
				sb.WriteByte('?')
			}
		}
		sb.WriteByte('>')
	case KindEnum:
		sb.WriteByte('<')
		sb.WriteString(strings.Join(dt.Variants, ", "))
		sb.WriteByte('>')
	}
}

func (dt DataType) elem() DataType {
	if dt.Elem == nil {
		return Null()
	}
	return *dt.Elem
}

// Validate checks that the data type is well formed: list element types are set, fixed sizes are
// positive, field and variant names are non-empty and unique, and variant counts fit their index.
func (dt DataType) Validate() error {
	switch dt.Kind {
	case KindNull, KindBool, KindUInt8, KindUInt16, KindUInt32, KindUInt64, KindInt32, KindInt64,
		KindFloat32, KindFloat64, KindUtf8, KindBinary:
		return nil
	case KindFixedSizeList:
		if dt.Size <= 0 {
			return eris.Errorf("fixed size list must have a positive size, got %d", dt.Size)
		}
		if dt.Elem == nil {
			return eris.New("fixed size list has no element type")
		}
		return eris.Wrap(dt.Elem.Validate(), "invalid fixed size list element")
	case KindList:
		if dt.Elem == nil {
			return eris.New("list has no element type")
		}
		return eris.Wrap(dt.Elem.Validate(), "invalid list element")
	case KindStruct, KindUnion:
		if len(dt.Fields) == 0 {
			return eris.Errorf("%s must have at least one field", dt.Kind)
		}
		if dt.Kind == KindUnion && len(dt.Fields) > MaxUnionVariants {
			return eris.Errorf("union has %d variants, max is %d", len(dt.Fields), MaxUnionVariants)
		}
		seen := make(map[string]struct{}, len(dt.Fields))
		for _, f := range dt.Fields {
			if f.Name == "" {
				return eris.Errorf("%s field name cannot be empty", dt.Kind)
			}
			if _, ok := seen[f.Name]; ok {
				return eris.Errorf("duplicate %s field %q", dt.Kind, f.Name)
			}
			seen[f.Name] = struct{}{}
			if err := f.Type.Validate(); err != nil {
				return eris.Wrapf(err, "invalid field %q", f.Name)
			}
		}
		return nil
	case KindEnum:
		if len(dt.Variants) == 0 || len(dt.Variants) > MaxEnumVariants {
			return eris.Errorf("enum must have between 1 and %d variants, got %d", MaxEnumVariants, len(dt.Variants))
		}
		seen := make(map[string]struct{}, len(dt.Variants))
		for _, v := range dt.Variants {
			if v == "" {
				return eris.New("enum variant name cannot be empty")
			}
			if _, ok := seen[v]; ok {
				return eris.Errorf("duplicate enum variant %q", v)
			}
			seen[v] = struct{}{}
		}
		return nil
	default:
		return eris.Errorf("unknown data type kind %d", dt.Kind)
	}
}
