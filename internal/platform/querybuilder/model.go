package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// InsertModel builds an INSERT from the `db` tags of a struct row.
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

// UpsertModel inserts the row or, on a conflict over conflictCols, overwrites every other
// column except those named in keep (ids, created_at and the like).
func UpsertModel(table string, model any, conflictCols []string, keep ...string) (string, []any, error) {
	if len(conflictCols) == 0 {
		return "", nil, fmt.Errorf("upsert conflict columns are required")
	}
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, 0, len(cols))
	for _, col := range cols {
		if slices.Contains(conflictCols, col) || slices.Contains(keep, col) {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}

	suffix := "ON CONFLICT (" + strings.Join(conflictCols, ", ") + ") DO NOTHING"
	if len(sets) > 0 {
		suffix = "ON CONFLICT (" + strings.Join(conflictCols, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", ")
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
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
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return cols, vals, nil
}
