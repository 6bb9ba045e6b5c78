package utils

import "reflect"

// ColumnList returns the list of "db" struct tags of T, in declaration order.
// Used by dbmodels to keep SELECT column lists in sync with the row structs.
func ColumnList[T any](prefixes ...string) []string {
	var value T
	ty := reflect.TypeOf(value)

	columns := make([]string, 0, ty.NumField())
	for _, field := range reflect.VisibleFields(ty) {
		tag, ok := field.Tag.Lookup("db")
		if !ok || tag == "-" {
			continue
		}
		name := tag
		for _, prefix := range prefixes {
			name = prefix + "." + name
		}
		columns = append(columns, name)
	}
	return columns
}
