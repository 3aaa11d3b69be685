package colops

// The canonical null marker for a cell is an untyped nil interface value.
// Engines and operations must use IsNull rather than comparing against nil
// directly, so typed-nil pointers smuggled into a column register as null.

import "reflect"

// IsNull returns true iff v is the canonical null marker
func IsNull(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}
