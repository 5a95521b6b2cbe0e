package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// InsertModels builds one multi-row INSERT from a non-empty slice of tagged structs.
func InsertModels(table string, models any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(models)
	if value.Kind() != reflect.Slice {
		return "", nil, fmt.Errorf("models must be slice, got %s", value.Kind())
	}
	if value.Len() == 0 {
		return "", nil, fmt.Errorf("models cannot be empty")
	}

	builder := InsertInto(table).Suffix(suffix)
	var firstCols []string
	for i := 0; i < value.Len(); i++ {
		cols, vals, err := columnsAndValuesFromModel(value.Index(i).Interface())
		if err != nil {
			return "", nil, fmt.Errorf("row %d: %w", i, err)
		}
		if i == 0 {
			firstCols = cols
			builder.Columns(cols...)
		} else if len(cols) != len(firstCols) {
			return "", nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(cols), len(firstCols))
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

// Columns lists the db-tagged columns of model in field order.
func Columns(model any) ([]string, error) {
	cols, _, err := columnsAndValuesFromModel(model)
	return cols, err
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
