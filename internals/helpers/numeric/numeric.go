// Package numeric rewrites query results into JSON-safe values.
//
// Normalize walks a value (struct, map, slice, array, pointer or scalar) and returns
// a structurally identical copy in which every wide integer (int64, uint64,
// big.Int) and every fixed-point decimal (shopspring decimal.Decimal) is replaced
// by a float64. Decimals are converted from their exact string form, never through
// an intermediate binary approximation. Struct field order and JSON tag names are
// preserved via Object; map keys come out sorted, as encoding/json would emit them.
//
// Precision boundary: integers with magnitude above 2^53 are still converted and
// land on the nearest representable float64. Identifiers are expected to stay
// well below that range.
package numeric

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field is one key/value pair of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is an ordered JSON object.
type Object []Field

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("numeric: field %q: %w", f.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

var (
	decimalType     = reflect.TypeOf(decimal.Decimal{})
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})
	bigIntType      = reflect.TypeOf(big.Int{})
	marshalerType   = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
)

// Normalize returns the JSON-safe copy of v. v itself is never modified.
func Normalize(v any) any {
	return walk(reflect.ValueOf(v))
}

// Decimal converts d through its exact decimal string.
func Decimal(d decimal.Decimal) float64 {
	// out-of-range input yields ±Inf from ParseFloat, which is the nearest we can do
	f, _ := strconv.ParseFloat(d.String(), 64)
	return f
}

func bigInt(b *big.Int) float64 {
	f, _ := new(big.Float).SetInt(b).Float64()
	return f
}

func walk(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return walk(rv.Elem())
	}

	switch rv.Type() {
	case decimalType:
		return Decimal(rv.Interface().(decimal.Decimal))
	case nullDecimalType:
		nd := rv.Interface().(decimal.NullDecimal)
		if !nd.Valid {
			return nil
		}
		return Decimal(nd.Decimal)
	case bigIntType:
		b := rv.Interface().(big.Int)
		return bigInt(&b)
	}

	switch rv.Kind() {
	case reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Struct:
		if isMarshaler(rv.Type()) {
			return rv.Interface()
		}
		return walkStruct(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		if isMarshaler(rv.Type()) {
			return rv.Interface()
		}
		return walkMap(rv)
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface()
		}
		return walkList(rv)
	case reflect.Array:
		return walkList(rv)
	default:
		return rv.Interface()
	}
}

func isMarshaler(t reflect.Type) bool {
	return t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType)
}

func walkList(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = walk(rv.Index(i))
	}
	return out
}

func walkMap(rv reflect.Value) Object {
	keys := rv.MapKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = fmt.Sprint(k.Interface())
	}
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return names[idx[a]] < names[idx[b]] })

	out := make(Object, 0, len(keys))
	for _, i := range idx {
		out = append(out, Field{Key: names[i], Value: walk(rv.MapIndex(keys[i]))})
	}
	return out
}

func walkStruct(rv reflect.Value) Object {
	t := rv.Type()
	out := make(Object, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)

		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && !isMarshaler(ft) {
				if fv.Kind() == reflect.Ptr {
					if fv.IsNil() {
						continue
					}
					fv = fv.Elem()
				}
				out = append(out, walkStruct(fv)...)
				continue
			}
		}

		if name == "" {
			name = sf.Name
		}
		if hasOpt(opts, "omitempty") && isEmpty(fv) {
			continue
		}
		out = append(out, Field{Key: name, Value: walk(fv)})
	}
	return out
}

func hasOpt(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}

// isEmpty mirrors encoding/json's omitempty rule.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
