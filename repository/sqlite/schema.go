/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"fmt"
	"reflect"
	"strings"

	storeerrors "github.com/suparena/modelrepo/errors"
)

// column describes one non-id table column and the struct field backing it.
type column struct {
	name   string
	index  int
	unique bool
}

// tableSchema is derived once per repository from the model type's fields.
// The id column is always `id INTEGER PRIMARY KEY AUTOINCREMENT`; the model
// must expose a matching int64 ID field.
type tableSchema struct {
	table   string
	idIndex int
	cols    []column
	byName  map[string]column
}

func schemaOf[T any]() (*tableSchema, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, storeerrors.NewInvalidModelError(t.String(), "model type is not a struct")
	}

	s := &tableSchema{
		table:   toSnake(t.Name()),
		idIndex: -1,
		byName:  make(map[string]column),
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts := parseTag(f.Tag.Get("db"))
		if name == "-" {
			continue
		}
		if f.Name == "ID" || name == "id" {
			if k := f.Type.Kind(); k != reflect.Int64 && k != reflect.Int {
				return nil, storeerrors.NewInvalidModelError(t.Name(), "relational ID field must be an integer")
			}
			s.idIndex = i
			continue
		}
		if name == "" {
			name = toSnake(f.Name)
		}
		if _, err := sqlType(f.Type.Kind()); err != nil {
			return nil, storeerrors.NewInvalidModelError(t.Name(), fmt.Sprintf("field %s: %v", f.Name, err))
		}
		col := column{name: name, index: i, unique: opts["unique"]}
		s.cols = append(s.cols, col)
		s.byName[name] = col
	}
	if s.idIndex < 0 {
		return nil, storeerrors.NewInvalidModelError(t.Name(), "model has no ID field")
	}
	return s, nil
}

// ddl renders the idempotent CREATE TABLE statement executed at construction.
func (s *tableSchema) ddl(t reflect.Type) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", s.table)
	b.WriteString("\tid INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, col := range s.cols {
		typ, _ := sqlType(t.Field(col.index).Type.Kind())
		fmt.Fprintf(&b, ",\n\t%s %s", col.name, typ)
		if col.unique {
			b.WriteString(" UNIQUE")
		}
	}
	b.WriteString("\n)")
	return b.String()
}

func sqlType(k reflect.Kind) (string, error) {
	switch k {
	case reflect.String:
		return "TEXT", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Bool:
		return "INTEGER", nil
	case reflect.Float32, reflect.Float64:
		return "REAL", nil
	}
	return "", fmt.Errorf("unsupported column kind %s", k)
}

func parseTag(tag string) (string, map[string]bool) {
	parts := strings.Split(tag, ",")
	opts := make(map[string]bool)
	for _, p := range parts[1:] {
		opts[strings.TrimSpace(p)] = true
	}
	return strings.TrimSpace(parts[0]), opts
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
