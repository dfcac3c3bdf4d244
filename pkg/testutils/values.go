package testutils

import (
	"math/rand/v2"
	"strconv"

	"github.com/argus-labs/loggable/pkg/datatype"
)

// -------------------------------------------------------------------------------------------------
// Data types and values
// -------------------------------------------------------------------------------------------------

var primitiveTypes = []datatype.DataType{ //nolint:gochecknoglobals // read-only test table
	datatype.Bool(),
	datatype.UInt8(),
	datatype.UInt16(),
	datatype.UInt32(),
	datatype.UInt64(),
	datatype.Int32(),
	datatype.Int64(),
	datatype.Float32(),
	datatype.Float64(),
	datatype.Utf8(),
	datatype.Binary(),
}

// RandDataType returns a random well-formed data type nested at most depth levels deep. Null is
// never returned since only indicators use it.
func RandDataType(r *rand.Rand, depth int) datatype.DataType {
	if depth <= 0 || r.IntN(3) == 0 {
		if r.IntN(8) == 0 {
			return datatype.Enum(names(r, "v", 1+r.IntN(4))...)
		}
		return primitiveTypes[r.IntN(len(primitiveTypes))]
	}

	switch r.IntN(4) {
	case 0:
		return datatype.FixedSizeList(RandDataType(r, depth-1), 1+r.IntN(4))
	case 1:
		return datatype.List(RandDataType(r, depth-1))
	case 2:
		fields := make([]datatype.Field, 1+r.IntN(3))
		for i, name := range names(r, "f", len(fields)) {
			fields[i] = datatype.Field{Name: name, Type: RandDataType(r, depth-1), Nullable: r.IntN(2) == 0}
		}
		return datatype.Struct(fields...)
	default:
		variants := make([]datatype.Field, 1+r.IntN(3))
		for i, name := range names(r, "u", len(variants)) {
			variants[i] = datatype.NewField(name, RandDataType(r, depth-1))
		}
		return datatype.Union(variants...)
	}
}

// RandValue returns a random value with the canonical shape of dt.
func RandValue(r *rand.Rand, dt datatype.DataType) any { //nolint:cyclop // one case per kind
	switch dt.Kind {
	case datatype.KindNull:
		return nil
	case datatype.KindBool:
		return r.IntN(2) == 0
	case datatype.KindUInt8:
		return uint8(r.Uint32()) //nolint:gosec // truncation is the point
	case datatype.KindUInt16:
		return uint16(r.Uint32()) //nolint:gosec // truncation is the point
	case datatype.KindUInt32:
		return r.Uint32()
	case datatype.KindUInt64:
		return r.Uint64()
	case datatype.KindInt32:
		return r.Int32()
	case datatype.KindInt64:
		return r.Int64()
	case datatype.KindFloat32:
		return r.Float32()
	case datatype.KindFloat64:
		return r.Float64()
	case datatype.KindUtf8:
		return RandString(r, r.IntN(8))
	case datatype.KindBinary:
		return []byte(RandString(r, 1+r.IntN(8)))
	case datatype.KindEnum:
		return uint8(r.IntN(len(dt.Variants))) //nolint:gosec // at most 256 variants
	case datatype.KindFixedSizeList:
		return RandValues(r, *dt.Elem, dt.Size)
	case datatype.KindList:
		return RandValues(r, *dt.Elem, r.IntN(4))
	case datatype.KindStruct:
		row := make([]any, len(dt.Fields))
		for i, f := range dt.Fields {
			if f.Nullable && r.IntN(4) == 0 {
				continue
			}
			row[i] = RandValue(r, f.Type)
		}
		return row
	case datatype.KindUnion:
		variant := r.IntN(len(dt.Fields))
		return datatype.UnionValue{Variant: variant, Value: RandValue(r, dt.Fields[variant].Type)}
	default:
		panic("unsupported data type kind " + dt.Kind.String())
	}
}

// RandValues returns n random values of dt.
func RandValues(r *rand.Rand, dt datatype.DataType, n int) []any {
	values := make([]any, n)
	for i := range values {
		values[i] = RandValue(r, dt)
	}
	return values
}

func names(r *rand.Rand, prefix string, n int) []string {
	out := make([]string, n)
	offset := r.IntN(100)
	for i := range out {
		out[i] = prefix + strconv.Itoa(offset+i)
	}
	return out
}
