package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// TableDDL returns CREATE TABLE statement of occurrence records.
func (r Record) TableDDL(table string) string {
	return generateDDL(r, table)
}

// IndexDDL returns CREATE INDEX statements of occurrence records.
func (r Record) IndexDDL(table string) []string {
	res := make([]string, len(IndexedFields))
	for i, f := range IndexedFields {
		col := f.Column()
		res[i] = fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s);",
			table, col, table, col,
		)
	}
	return res
}
