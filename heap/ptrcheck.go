package heap

import (
	"fmt"
	"reflect"
)

// PointerFree reports whether values of type T embed no Go pointers and may
// therefore live in segment memory. Segments are untyped byte buffers the
// garbage collector never scans: a pointer stored inside one does not keep
// its referent alive.
func PointerFree[T any]() bool {
	return !typeHasPointers(reflect.TypeOf((*T)(nil)).Elem())
}

// MustPointerFree panics with an error wrapping ErrPointerfulType when T
// embeds Go pointers. The typed allocation entry points call it before
// handing out a view over segment memory.
func MustPointerFree[T any]() {
	if t := reflect.TypeOf((*T)(nil)).Elem(); typeHasPointers(t) {
		panic(fmt.Errorf("%w: %v", ErrPointerfulType, t))
	}
}

func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointer, UnsafePointer, Slice, String, Map, Chan, Func, Interface.
		return true
	}
}
