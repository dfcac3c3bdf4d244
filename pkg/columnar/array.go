// Package columnar lays out component values as typed, Arrow-style columnar arrays.
//
// Layouts per kind:
//   - primitives: one typed value buffer (F32, U8, ...)
//   - utf8/binary: Offsets (len+1) into Data
//   - list: Offsets (len+1) into Children[0]
//   - fixed size list: Children[0] with Length*Size elements
//   - struct: one child per field, each with Length elements
//   - union: dense layout, TypeIDs and Offsets into one child per variant
//   - enum: U8 variant indices
//   - null: Length only
//
// Valid is nil when every slot holds a value, otherwise Valid[i] is false for null slots. Null
// slots still occupy a zero value in value buffers so that offsets stay positional.
package columnar

import (
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/rotisserie/eris"
)

// Array is a columnar array of values sharing one data type.
type Array struct {
	Type   datatype.DataType `msgpack:"type"`
	Length int               `msgpack:"length"`
	Valid  []bool            `msgpack:"valid"`

	Bools []bool    `msgpack:"bools"`
	U8    []uint8   `msgpack:"u8"`
	U16   []uint16  `msgpack:"u16"`
	U32   []uint32  `msgpack:"u32"`
	U64   []uint64  `msgpack:"u64"`
	I32   []int32   `msgpack:"i32"`
	I64   []int64   `msgpack:"i64"`
	F32   []float32 `msgpack:"f32"`
	F64   []float64 `msgpack:"f64"`

	Offsets  []int32 `msgpack:"offsets"`
	Data     []byte  `msgpack:"data"`
	TypeIDs  []int8  `msgpack:"type_ids"`
	Children []Array `msgpack:"children"`
}

// Empty returns a zero-length array of the given type. Indicator markers and cleared components
// are lowered to empty arrays.
func Empty(dt datatype.DataType) Array {
	return Array{Type: dt, Length: 0}
}

// IsNull reports whether the value at index i is null.
func (a *Array) IsNull(i int) bool {
	if a.Type.Kind == datatype.KindNull {
		return true
	}
	return a.Valid != nil && !a.Valid[i]
}

// NullCount returns the number of null slots.
func (a *Array) NullCount() int {
	if a.Type.Kind == datatype.KindNull {
		return a.Length
	}
	count := 0
	for _, v := range a.Valid {
		if !v {
			count++
		}
	}
	return count
}

// Build lays out values, which must have the canonical shape of dt, into an Array. It fails if
// dt is malformed or a value does not fit the layout.
func Build(dt datatype.DataType, values []any) (Array, error) {
	if err := dt.Validate(); err != nil {
		return Array{}, eris.Wrapf(err, "cannot lay out data type %s", dt)
	}
	return build(dt, values)
}

func build(dt datatype.DataType, values []any) (Array, error) { //nolint:cyclop // one case per kind
	arr := Array{Type: dt, Length: len(values)}
	if dt.Kind != datatype.KindNull {
		arr.Valid = validity(values)
	}

	var err error
	switch dt.Kind {
	case datatype.KindNull:
		for i, v := range values {
			if v != nil {
				return Array{}, eris.Errorf("index %d: null column holds %T", i, v)
			}
		}
	case datatype.KindBool:
		arr.Bools, err = primitives[bool](values)
	case datatype.KindUInt8:
		arr.U8, err = primitives[uint8](values)
	case datatype.KindUInt16:
		arr.U16, err = primitives[uint16](values)
	case datatype.KindUInt32:
		arr.U32, err = primitives[uint32](values)
	case datatype.KindUInt64:
		arr.U64, err = primitives[uint64](values)
	case datatype.KindInt32:
		arr.I32, err = primitives[int32](values)
	case datatype.KindInt64:
		arr.I64, err = primitives[int64](values)
	case datatype.KindFloat32:
		arr.F32, err = primitives[float32](values)
	case datatype.KindFloat64:
		arr.F64, err = primitives[float64](values)
	case datatype.KindUtf8:
		arr.Offsets, arr.Data, err = variableBytes(values, func(v any) ([]byte, bool) {
			s, ok := v.(string)
			return []byte(s), ok
		})
	case datatype.KindBinary:
		arr.Offsets, arr.Data, err = variableBytes(values, func(v any) ([]byte, bool) {
			b, ok := v.([]byte)
			return b, ok
		})
	case datatype.KindEnum:
		arr.U8, err = primitives[uint8](values)
		if err == nil {
			err = checkEnum(arr.U8, len(dt.Variants))
		}
	case datatype.KindFixedSizeList:
		err = buildFixedSizeList(&arr, values)
	case datatype.KindList:
		err = buildList(&arr, values)
	case datatype.KindStruct:
		err = buildStruct(&arr, values)
	case datatype.KindUnion:
		err = buildUnion(&arr, values)
	default:
		err = eris.Errorf("unsupported data type kind %s", dt.Kind)
	}
	if err != nil {
		return Array{}, eris.Wrapf(err, "failed to lay out %s", dt)
	}
	return arr, nil
}

func validity(values []any) []bool {
	var valid []bool
	for i, v := range values {
		if v != nil {
			continue
		}
		if valid == nil {
			valid = make([]bool, len(values))
			for j := range valid {
				valid[j] = true
			}
		}
		valid[i] = false
	}
	return valid
}

func primitives[T any](values []any) ([]T, error) {
	out := make([]T, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		concrete, ok := v.(T)
		if !ok {
			var zero T
			return nil, eris.Errorf("index %d: expected %T, got %T", i, zero, v)
		}
		out[i] = concrete
	}
	return out, nil
}

func checkEnum(indices []uint8, variants int) error {
	for i, idx := range indices {
		if int(idx) >= variants {
			return eris.Errorf("index %d: enum variant %d out of range [0, %d)", i, idx, variants)
		}
	}
	return nil
}

func variableBytes(values []any, conv func(any) ([]byte, bool)) ([]int32, []byte, error) {
	offsets := make([]int32, 0, len(values)+1)
	offsets = append(offsets, 0)
	var data []byte
	for i, v := range values {
		if v != nil {
			b, ok := conv(v)
			if !ok {
				return nil, nil, eris.Errorf("index %d: unexpected %T", i, v)
			}
			data = append(data, b...)
		}
		offsets = append(offsets, int32(len(data))) //nolint:gosec // component payloads are far below 2GiB
	}
	return offsets, data, nil
}

func buildFixedSizeList(arr *Array, values []any) error {
	size := arr.Type.Size
	flat := make([]any, 0, len(values)*size)
	for i, v := range values {
		if v == nil {
			for range size {
				flat = append(flat, nil)
			}
			continue
		}
		list, ok := v.([]any)
		if !ok {
			return eris.Errorf("index %d: expected []any, got %T", i, v)
		}
		if len(list) != size {
			return eris.Errorf("index %d: expected %d elements, got %d", i, size, len(list))
		}
		flat = append(flat, list...)
	}
	child, err := build(*arr.Type.Elem, flat)
	if err != nil {
		return eris.Wrap(err, "fixed size list child")
	}
	arr.Children = []Array{child}
	return nil
}

func buildList(arr *Array, values []any) error {
	offsets := make([]int32, 0, len(values)+1)
	offsets = append(offsets, 0)
	var flat []any
	for i, v := range values {
		if v != nil {
			list, ok := v.([]any)
			if !ok {
				return eris.Errorf("index %d: expected []any, got %T", i, v)
			}
			flat = append(flat, list...)
		}
		offsets = append(offsets, int32(len(flat))) //nolint:gosec // bounded by batch size
	}
	child, err := build(*arr.Type.Elem, flat)
	if err != nil {
		return eris.Wrap(err, "list child")
	}
	arr.Offsets = offsets
	arr.Children = []Array{child}
	return nil
}

func buildStruct(arr *Array, values []any) error {
	fields := arr.Type.Fields
	columns := make([][]any, len(fields))
	for f := range columns {
		columns[f] = make([]any, len(values))
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		row, ok := v.([]any)
		if !ok {
			return eris.Errorf("index %d: expected []any, got %T", i, v)
		}
		if len(row) != len(fields) {
			return eris.Errorf("index %d: expected %d fields, got %d", i, len(fields), len(row))
		}
		for f := range fields {
			if row[f] == nil && !fields[f].Nullable {
				return eris.Errorf("index %d: field %q is not nullable", i, fields[f].Name)
			}
			columns[f][i] = row[f]
		}
	}
	arr.Children = make([]Array, len(fields))
	for f, field := range fields {
		child, err := build(field.Type, columns[f])
		if err != nil {
			return eris.Wrapf(err, "struct field %q", field.Name)
		}
		arr.Children[f] = child
	}
	return nil
}

func buildUnion(arr *Array, values []any) error {
	variants := arr.Type.Fields
	columns := make([][]any, len(variants))
	arr.TypeIDs = make([]int8, len(values))
	arr.Offsets = make([]int32, len(values))
	for i, v := range values {
		if v == nil {
			// Null slots point at a null placeholder in the first variant.
			arr.Offsets[i] = int32(len(columns[0])) //nolint:gosec // bounded by batch size
			columns[0] = append(columns[0], nil)
			continue
		}
		uv, ok := v.(datatype.UnionValue)
		if !ok {
			return eris.Errorf("index %d: expected datatype.UnionValue, got %T", i, v)
		}
		if uv.Variant < 0 || uv.Variant >= len(variants) {
			return eris.Errorf("index %d: union variant %d out of range", i, uv.Variant)
		}
		// Both casts are bounded: variants by MaxUnionVariants, offsets by the batch size.
		arr.TypeIDs[i] = int8(uv.Variant)                //nolint:gosec // see above
		arr.Offsets[i] = int32(len(columns[uv.Variant])) //nolint:gosec // see above
		columns[uv.Variant] = append(columns[uv.Variant], uv.Value)
	}
	arr.Children = make([]Array, len(variants))
	for c, variant := range variants {
		child, err := build(variant.Type, columns[c])
		if err != nil {
			return eris.Wrapf(err, "union variant %q", variant.Name)
		}
		arr.Children[c] = child
	}
	return nil
}
