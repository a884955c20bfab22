package htable

import (
	"reflect"

	"github.com/pkg/errors"
)

// checkPlain verifies that values of t are plain memory: no pointers or
// references anywhere inside. When dense is set it also rejects types with
// padding bytes, since padding would make raw byte comparison meaningless.
func checkPlain(t reflect.Type, dense bool) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil

	case reflect.Array:
		if err := checkPlain(t.Elem(), dense); err != nil {
			return errors.Wrapf(err, "element of %s", t)
		}
		return nil

	case reflect.Struct:
		var sum uintptr
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if err := checkPlain(f.Type, dense); err != nil {
				return errors.Wrapf(err, "field %s of %s", f.Name, t)
			}
			sum += f.Type.Size()
		}
		if dense && sum != t.Size() {
			return errors.Errorf("%s has %d padding bytes", t, t.Size()-sum)
		}
		return nil
	}

	return errors.Errorf("%s is not a plain value type", t)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
