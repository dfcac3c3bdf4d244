package datatype

import (
	"strconv"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

// Check verifies that v has the canonical shape of the data type. The returned error describes
// the first mismatch, including the path to the offending element.
func (dt DataType) Check(v any) error {
	return dt.check(v, "")
}

func (dt DataType) check(v any, path string) error { //nolint:gocognit,cyclop // one case per kind
	if v == nil {
		if dt.Kind == KindNull {
			return nil
		}
		return mismatch(path, dt, v)
	}

	ok := false
	switch dt.Kind {
	case KindNull:
		ok = false
	case KindBool:
		_, ok = v.(bool)
	case KindUInt8:
		_, ok = v.(uint8)
	case KindUInt16:
		_, ok = v.(uint16)
	case KindUInt32:
		_, ok = v.(uint32)
	case KindUInt64:
		_, ok = v.(uint64)
	case KindInt32:
		_, ok = v.(int32)
	case KindInt64:
		_, ok = v.(int64)
	case KindFloat32:
		_, ok = v.(float32)
	case KindFloat64:
		_, ok = v.(float64)
	case KindUtf8:
		str, isString := v.(string)
		if !isString {
			return mismatch(path, dt, v)
		}
		if !utf8.ValidString(str) {
			return eris.Errorf("%s: invalid UTF-8 %q", pathOrRoot(path), str)
		}
		return nil
	case KindBinary:
		_, ok = v.([]byte)
	case KindFixedSizeList:
		list, isList := v.([]any)
		if !isList {
			return mismatch(path, dt, v)
		}
		if len(list) != dt.Size {
			return eris.Errorf("%s: expected %d elements, got %d", pathOrRoot(path), dt.Size, len(list))
		}
		return dt.elem().checkAll(list, path)
	case KindList:
		list, isList := v.([]any)
		if !isList {
			return mismatch(path, dt, v)
		}
		return dt.elem().checkAll(list, path)
	case KindStruct:
		fields, isList := v.([]any)
		if !isList {
			return mismatch(path, dt, v)
		}
		if len(fields) != len(dt.Fields) {
			return eris.Errorf("%s: expected %d struct fields, got %d", pathOrRoot(path), len(dt.Fields), len(fields))
		}
		for i, f := range dt.Fields {
			if fields[i] == nil && f.Nullable {
				continue
			}
			if err := f.Type.check(fields[i], path+"."+f.Name); err != nil {
				return err
			}
		}
		return nil
	case KindUnion:
		uv, isUnion := v.(UnionValue)
		if !isUnion {
			return mismatch(path, dt, v)
		}
		if uv.Variant < 0 || uv.Variant >= len(dt.Fields) {
			return eris.Errorf("%s: union variant %d out of range [0, %d)", pathOrRoot(path), uv.Variant, len(dt.Fields))
		}
		variant := dt.Fields[uv.Variant]
		if uv.Value == nil && variant.Nullable {
			return nil
		}
		return variant.Type.check(uv.Value, path+"."+variant.Name)
	case KindEnum:
		idx, isEnum := v.(uint8)
		if !isEnum {
			return mismatch(path, dt, v)
		}
		if int(idx) >= len(dt.Variants) {
			return eris.Errorf("%s: enum variant %d out of range [0, %d)", pathOrRoot(path), idx, len(dt.Variants))
		}
		return nil
	}

	if !ok {
		return mismatch(path, dt, v)
	}
	return nil
}

func (dt DataType) checkAll(values []any, path string) error {
	for i, v := range values {
		if err := dt.check(v, path+"["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}
	return nil
}

func mismatch(path string, dt DataType, v any) error {
	return eris.Errorf("%s: expected %s, got %T", pathOrRoot(path), dt, v)
}

func pathOrRoot(path string) string {
	if path == "" {
		return "value"
	}
	return "value" + path
}
