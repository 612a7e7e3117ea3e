package routerservice

import "reflect"

// QueryParams is a flat set of named query parameter values.
type QueryParams map[string]any

// Clone returns a shallow copy of q. A nil q yields an empty, non-nil map.
func (q QueryParams) Clone() QueryParams {
	out := make(QueryParams, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// EqualQueryParams reports whether a and b hold the same keys with values
// that are SameValue. Values are never compared recursively.
func EqualQueryParams(a, b QueryParams) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !SameValue(av, bv) {
			return false
		}
	}
	return true
}

// SameValue reports whether a and b are strictly equal: same dynamic type
// and equal under ==. Maps, slices and funcs are equal only when
// they share the same underlying reference. Numeric types are not coerced,
// so int(1) and int64(1) differ.
//
// Struct and array values have no identity of their own. When one holds an
// incomparable value such as a slice, it is never equal to anything,
// including itself, so a QueryParams holding one is not equal to itself
// under EqualQueryParams. Pass a pointer to share such a value.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		switch ta.Kind() {
		case reflect.Struct, reflect.Array:
			// May hold incomparable values behind interface fields.
			return safeEqual(a, b)
		}
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		return false
	}
}

func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
