/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package repository

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	storeerrors "github.com/suparena/modelrepo/errors"
)

// ModelName returns the unqualified type name of T.
func ModelName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Decode fills the struct pointed to by out from an attribute map. Keys match
// exported field names case-insensitively; keys absent from the map leave the
// corresponding fields untouched, which is what makes partial updates work.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		name := reflect.Indirect(reflect.ValueOf(out)).Type().Name()
		return storeerrors.NewInvalidModelError(name, err.Error())
	}
	return nil
}

// Attribute returns the named attribute of a model instance, matching exported
// field names case-insensitively. The second result is false when the model
// has no such attribute.
func Attribute(model any, name string) (any, bool) {
	v := reflect.Indirect(reflect.ValueOf(model))
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// Matches reports whether a model instance satisfies every equality term of
// the predicate. An attribute missing from the model never matches.
func Matches(model any, query Predicate) bool {
	for name, want := range query {
		got, ok := Attribute(model, name)
		if !ok || !equalValues(got, want) {
			return false
		}
	}
	return true
}

// ModelID reads the model's ID field as a string. The second result is false
// when the model has no ID field or the field holds its zero value.
func ModelID(model any) (string, bool) {
	f, ok := idField(reflect.Indirect(reflect.ValueOf(model)))
	if !ok {
		return "", false
	}
	f = reflect.Indirect(f)
	if !f.IsValid() || f.IsZero() {
		return "", false
	}
	switch f.Kind() {
	case reflect.String:
		return f.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(f.Int(), 10), true
	default:
		return "", false
	}
}

// SetModelID assigns a string identifier to the model's ID field. The model
// must be a pointer to a struct with a settable string (or *string) ID field.
func SetModelID(model any, id string) error {
	name := reflect.Indirect(reflect.ValueOf(model)).Type().Name()
	v := reflect.ValueOf(model)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return storeerrors.NewInvalidModelError(name, "model is not a pointer")
	}
	f, ok := idField(v.Elem())
	if !ok {
		return storeerrors.NewInvalidModelError(name, "model has no ID field")
	}
	switch {
	case f.Kind() == reflect.String && f.CanSet():
		f.SetString(id)
		return nil
	case f.Kind() == reflect.Pointer && f.Type().Elem().Kind() == reflect.String && f.CanSet():
		f.Set(reflect.ValueOf(&id))
		return nil
	}
	return storeerrors.NewInvalidModelError(name, "ID field is not a settable string")
}

func idField(v reflect.Value) (reflect.Value, bool) {
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	f := v.FieldByName("ID")
	if !f.IsValid() {
		f = v.FieldByName("Id")
	}
	return f, f.IsValid()
}

// equalValues compares a stored attribute with a predicate value, dereferencing
// pointers and comparing numeric kinds by value so that int(1) matches int64(1).
func equalValues(a, b any) bool {
	av := reflect.Indirect(reflect.ValueOf(a))
	bv := reflect.Indirect(reflect.ValueOf(b))
	if !av.IsValid() || !bv.IsValid() {
		return av.IsValid() == bv.IsValid()
	}
	if an, aok := numericValue(av); aok {
		bn, bok := numericValue(bv)
		return bok && an == bn
	}
	return reflect.DeepEqual(av.Interface(), bv.Interface())
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
