package gorm

import (
	"reflect"
	"strings"

	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// UpsertClause builds an "on conflict do update" clause over the primary key
// columns of the entity, which may be a struct, a pointer or a slice.
func UpsertClause(entity interface{}) clause.Expression {
	columns := PrimaryKeyColumns(reflect.TypeOf(entity))
	if len(columns) == 0 {
		return clause.OnConflict{DoNothing: true}
	}

	conflict := clause.OnConflict{UpdateAll: true}
	for _, column := range columns {
		conflict.Columns = append(conflict.Columns, clause.Column{Name: column})
	}

	return conflict
}

var namingStrategy schema.NamingStrategy

func PrimaryKeyColumns(entityType reflect.Type) []string {
	for entityType.Kind() == reflect.Slice || entityType.Kind() == reflect.Array || entityType.Kind() == reflect.Ptr {
		entityType = entityType.Elem()
	}

	columns := make([]string, 0)
	for i := 0; i < entityType.NumField(); i++ {
		field := entityType.Field(i)
		tag, ok := field.Tag.Lookup("gorm")
		if !ok {
			continue
		}

		settings := schema.ParseTagSetting(tag, ";")
		if _, ok := settings["EMBEDDED"]; ok {
			columns = append(columns, PrimaryKeyColumns(field.Type)...)
			continue
		}

		if _, ok := settings[strings.ToUpper("primaryKey")]; !ok {
			continue
		}

		column, ok := settings["COLUMN"]
		if !ok {
			column = namingStrategy.ColumnName("", field.Name)
		}

		columns = append(columns, column)
	}

	return columns
}
