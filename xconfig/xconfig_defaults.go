package xconfig

import (
	"fmt"
	"reflect"
)

// applyDefaultTags sets every zero-valued field that has a `default` tag,
// descending into nested structs.
func applyDefaultTags(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && !isScalar(field.Type()) {
			if err := applyDefaultTags(field); err != nil {
				return err
			}
			continue
		}

		defaultValue, ok := fieldType.Tag.Lookup("default")
		if !ok || !field.IsZero() {
			continue
		}
		if err := setFromString(field, defaultValue); err != nil {
			return fmt.Errorf("field %s: %w", fieldType.Name, err)
		}
	}
	return nil
}
