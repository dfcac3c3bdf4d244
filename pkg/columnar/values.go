package columnar

import (
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/rotisserie/eris"
)

// Values reads the array back into canonical values, the inverse of Build. Arrays decoded from
// untrusted input are checked as they are read: a malformed type or buffer is an error.
func (a *Array) Values() ([]any, error) {
	if err := a.Type.Validate(); err != nil {
		return nil, eris.Wrap(err, "malformed array type")
	}
	if a.Length < 0 {
		return nil, eris.Errorf("negative array length %d", a.Length)
	}
	out := make([]any, a.Length)
	for i := range out {
		v, err := a.value(i)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to read index %d", i)
		}
		out[i] = v
	}
	return out, nil
}

func (a *Array) value(i int) (any, error) { //nolint:cyclop // one case per kind
	if i < 0 || i >= a.Length {
		return nil, eris.Errorf("index %d out of range [0, %d)", i, a.Length)
	}
	if a.Valid != nil && len(a.Valid) != a.Length {
		return nil, eris.Errorf("validity has %d entries for %d values", len(a.Valid), a.Length)
	}
	if a.IsNull(i) {
		return nil, nil //nolint:nilnil // null slot
	}

	switch a.Type.Kind {
	case datatype.KindBool:
		return at(a.Bools, i)
	case datatype.KindUInt8, datatype.KindEnum:
		return at(a.U8, i)
	case datatype.KindUInt16:
		return at(a.U16, i)
	case datatype.KindUInt32:
		return at(a.U32, i)
	case datatype.KindUInt64:
		return at(a.U64, i)
	case datatype.KindInt32:
		return at(a.I32, i)
	case datatype.KindInt64:
		return at(a.I64, i)
	case datatype.KindFloat32:
		return at(a.F32, i)
	case datatype.KindFloat64:
		return at(a.F64, i)
	case datatype.KindUtf8:
		b, err := a.slice(i)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case datatype.KindBinary:
		b, err := a.slice(i)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	case datatype.KindFixedSizeList:
		child, err := a.child(0, *a.Type.Elem)
		if err != nil {
			return nil, err
		}
		return child.rangeValues(i*a.Type.Size, (i+1)*a.Type.Size)
	case datatype.KindList:
		child, err := a.child(0, *a.Type.Elem)
		if err != nil {
			return nil, err
		}
		start, end, err := a.bounds(i)
		if err != nil {
			return nil, err
		}
		return child.rangeValues(start, end)
	case datatype.KindStruct:
		row := make([]any, len(a.Type.Fields))
		for f := range row {
			child, err := a.child(f, a.Type.Fields[f].Type)
			if err != nil {
				return nil, err
			}
			if row[f], err = child.value(i); err != nil {
				return nil, eris.Wrapf(err, "struct field %q", a.Type.Fields[f].Name)
			}
		}
		return row, nil
	case datatype.KindUnion:
		if i >= len(a.TypeIDs) || i >= len(a.Offsets) {
			return nil, eris.New("union type ids or offsets are truncated")
		}
		variant := int(a.TypeIDs[i])
		if variant < 0 || variant >= len(a.Type.Fields) {
			return nil, eris.Errorf("union variant %d out of range", variant)
		}
		child, err := a.child(variant, a.Type.Fields[variant].Type)
		if err != nil {
			return nil, err
		}
		v, err := child.value(int(a.Offsets[i]))
		if err != nil {
			return nil, eris.Wrapf(err, "union variant %d", variant)
		}
		return datatype.UnionValue{Variant: variant, Value: v}, nil
	case datatype.KindNull:
		return nil, nil //nolint:nilnil // unreachable, IsNull covers it
	default:
		return nil, eris.Errorf("unsupported data type kind %s", a.Type.Kind)
	}
}

func (a *Array) rangeValues(start, end int) ([]any, error) {
	if start < 0 || end < start {
		return nil, eris.Errorf("invalid range [%d, %d)", start, end)
	}
	out := make([]any, 0, end-start)
	for j := start; j < end; j++ {
		v, err := a.value(j)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// child returns child idx, which must be laid out as want.
func (a *Array) child(idx int, want datatype.DataType) (*Array, error) {
	if idx < 0 || idx >= len(a.Children) {
		return nil, eris.Errorf("child %d missing, array has %d children", idx, len(a.Children))
	}
	child := &a.Children[idx]
	if !child.Type.Equal(want) {
		return nil, eris.Errorf("child %d has type %s, want %s", idx, child.Type, want)
	}
	return child, nil
}

func (a *Array) bounds(i int) (int, int, error) {
	if i+1 >= len(a.Offsets) {
		return 0, 0, eris.Errorf("offsets truncated at index %d", i)
	}
	start, end := int(a.Offsets[i]), int(a.Offsets[i+1])
	if start < 0 || start > end {
		return 0, 0, eris.Errorf("offsets decrease at index %d", i)
	}
	return start, end, nil
}

func (a *Array) slice(i int) ([]byte, error) {
	start, end, err := a.bounds(i)
	if err != nil {
		return nil, err
	}
	if end > len(a.Data) {
		return nil, eris.Errorf("offset %d past data length %d", end, len(a.Data))
	}
	return a.Data[start:end], nil
}

func at[T any](buf []T, i int) (any, error) {
	if i >= len(buf) {
		return nil, eris.Errorf("value buffer truncated at index %d", i)
	}
	return buf[i], nil
}
