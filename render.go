package easylog

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/yuin/stagparser"
)

// Placeholder is appended instead of values that have no text form.
const Placeholder = "[NO STRING()]"

// ErrNoStringForm is returned by [Render] for values that have no text form.
var ErrNoStringForm = errors.New("value has no string form")

// Field is a key-value pair of a keyed structure.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered keyed structure.
// It is rendered in the given order.
type Fields []Field

// Arg is a classified log argument.
// Arg is one of [TextArg], [StructuredArg] and [OpaqueArg].
type Arg interface {
	arg()
}

// TextArg is an argument that is already a text.
type TextArg string

func (TextArg) arg() {}

// StructuredArg is a keyed structure.
type StructuredArg struct {
	Fields Fields
}

func (StructuredArg) arg() {}

// OpaqueArg is an argument that can not be converted into a text.
type OpaqueArg struct {
	Type reflect.Type
}

func (OpaqueArg) arg() {}

// Classify classifies the given value.
//
//   - strings, [fmt].Stringer, errors and scalar values are [TextArg] .
//   - [Fields], maps and structs(or pointers to structs) without
//     String or Error methods are [StructuredArg] .
//   - functions, channels and unsafe pointers are [OpaqueArg] .
//
// Map entries are ordered by their keys: numbers numerically, strings
// lexically and false before true. Keys of different kinds are ordered
// by their [reflect.Kind] .
//
// Struct fields can be tagged with `easylog:"omit"` to skip the field
// and `easylog:"mask"` to hide the value.
//
// Panics raised by String or Error methods are returned as errors.
// A nil pointer whose method panics is classified as "<nil>".
func Classify(v any) (a Arg, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
				a, err = TextArg("<nil>"), nil
				return
			}
			a, err = nil, fmt.Errorf("Failed to convert %s into a string: %v", typeName(reflect.TypeOf(v)), r)
		}
	}()

	switch x := v.(type) {
	case nil:
		return TextArg("<nil>"), nil
	case string:
		return TextArg(x), nil
	case Fields:
		return StructuredArg{Fields: x}, nil
	case fmt.Stringer:
		return TextArg(x.String()), nil
	case error:
		return TextArg(x.Error()), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return StructuredArg{Fields: mapFields(rv)}, nil
	case reflect.Struct:
		fields, err := structFields(rv)
		if err != nil {
			return nil, err
		}
		return StructuredArg{Fields: fields}, nil
	case reflect.Ptr:
		if rv.IsNil() {
			return TextArg("<nil>"), nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			fields, err := structFields(rv.Elem())
			if err != nil {
				return nil, err
			}
			return StructuredArg{Fields: fields}, nil
		}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return OpaqueArg{Type: rv.Type()}, nil
	}
	return TextArg(valueString(rv, 1)), nil
}

// Render converts the given value into a text.
// Keyed structures are rendered by [PrettyString] without a name.
// Render returns [Placeholder] and [ErrNoStringForm] if the value has no
// text form.
func Render(v any) (string, error) {
	a, err := Classify(v)
	if err != nil {
		return "", criticalError(err)
	}
	switch x := a.(type) {
	case TextArg:
		return string(x), nil
	case StructuredArg:
		s, err := prettyFields(x.Fields, "")
		if err != nil {
			return "", criticalError(err)
		}
		return s, nil
	case OpaqueArg:
		return Placeholder, fmt.Errorf("%w: %s", ErrNoStringForm, typeName(x.Type))
	}
	panic("unreachable")
}

// PrettyString renders a keyed structure like
//
//	name{
//		key1: value1,
//		key2: value2
//	}
//
// v must be a value that [Classify] classifies as a [StructuredArg] .
// Values inside the structure are not expanded: slices are rendered one
// level deep, other keyed structures by their type names.
func PrettyString(v any, name string) (string, error) {
	a, err := Classify(v)
	if err != nil {
		return "", criticalError(err)
	}
	s, ok := a.(StructuredArg)
	if !ok {
		return "", fmt.Errorf("%s is not a keyed structure", typeName(reflect.TypeOf(v)))
	}
	str, err := prettyFields(s.Fields, name)
	if err != nil {
		return "", criticalError(err)
	}
	return str, nil
}

func prettyFields(fields Fields, name string) (s string, err error) {
	var b strings.Builder
	var current any
	defer func() {
		if r := recover(); r != nil {
			s, err = "", fmt.Errorf("Failed to convert %s into a string: %v", typeName(reflect.TypeOf(current)), r)
		}
	}()
	b.WriteString(name)
	b.WriteString("{\n\t")
	for i, f := range fields {
		if i != 0 {
			b.WriteString(",\n\t")
		}
		current = f.Value
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(inlineString(f.Value))
	}
	b.WriteString("\n}")
	return b.String(), nil
}

func inlineString(v any) string {
	return valueString(reflect.ValueOf(v), 0)
}

// valueString renders a value without following references.
// Slices and arrays are expanded while depth is positive.
func valueString(rv reflect.Value, depth int) string {
	if !rv.IsValid() {
		return "<nil>"
	}
	if rv.CanInterface() {
		switch x := rv.Interface().(type) {
		case string:
			return x
		case fmt.Stringer:
			if isNilPointer(rv) {
				return "<nil>"
			}
			return x.String()
		case error:
			if isNilPointer(rv) {
				return "<nil>"
			}
			return x.Error()
		}
	}
	switch rv.Kind() {
	case reflect.Interface:
		return valueString(rv.Elem(), depth)
	case reflect.Slice, reflect.Array:
		if depth <= 0 {
			return typeName(rv.Type())
		}
		elems := make([]string, rv.Len())
		for i := range elems {
			elems[i] = valueString(rv.Index(i), depth-1)
		}
		return "[" + strings.Join(elems, " ") + "]"
	case reflect.Ptr:
		if rv.IsNil() {
			return "<nil>"
		}
		return typeName(rv.Type())
	case reflect.Map, reflect.Struct, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return typeName(rv.Type())
	}
	if !rv.CanInterface() {
		return typeName(rv.Type())
	}
	return fmt.Sprint(rv.Interface())
}

func isNilPointer(rv reflect.Value) bool {
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func mapFields(rv reflect.Value) Fields {
	type entry struct {
		key   reflect.Value
		field Field
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key: iter.Key(),
			field: Field{
				Key:   inlineString(iter.Key().Interface()),
				Value: iter.Value().Interface(),
			},
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return compareKeys(entries[i].key, entries[j].key, entries[i].field.Key, entries[j].field.Key) < 0
	})
	fields := make(Fields, len(entries))
	for i, e := range entries {
		fields[i] = e.field
	}
	return fields
}

// compareKeys orders map keys. ak and bk are rendered keys.
func compareKeys(a, b reflect.Value, ak, bk string) int {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}
	c := 0
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		c = cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		c = cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		c = cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		c = cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
		case b.Bool():
			c = -1
		default:
			c = 1
		}
	}
	if c != 0 {
		return c
	}
	if c = cmp.Compare(ak, bk); c != 0 {
		return c
	}
	if !a.IsValid() || !b.IsValid() {
		return 0
	}
	return cmp.Compare(typeName(a.Type()), typeName(b.Type()))
}

type fieldTag struct {
	omit bool
	mask bool
}

const maskedValue = "******"

var structTags sync.Map // [reflect.Type, map[string]fieldTag]

func parseStructTags(rv reflect.Value) (map[string]fieldTag, error) {
	if v, ok := structTags.Load(rv.Type()); ok {
		return v.(map[string]fieldTag), nil
	}
	defs, err := stagparser.ParseStruct(rv.Interface(), "easylog")
	if err != nil {
		return nil, fmt.Errorf("Failed to parse easylog tags of %s: %w", typeName(rv.Type()), err)
	}
	tags := map[string]fieldTag{}
	for fieldName, fdefs := range defs {
		var tag fieldTag
		for _, def := range fdefs {
			switch def.Name() {
			case "omit":
				tag.omit = true
			case "mask":
				tag.mask = true
			default:
				return nil, fmt.Errorf("Unknown easylog tag '%s' on %s.%s",
					def.Name(), typeName(rv.Type()), fieldName)
			}
		}
		tags[fieldName] = tag
	}
	structTags.Store(rv.Type(), tags)
	return tags, nil
}

func structFields(rv reflect.Value) (Fields, error) {
	tags, err := parseStructTags(rv)
	if err != nil {
		return nil, err
	}
	typ := rv.Type()
	fields := make(Fields, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := tags[f.Name]
		if tag.omit {
			continue
		}
		var value any = maskedValue
		if !tag.mask {
			value = rv.Field(i).Interface()
		}
		fields = append(fields, Field{Key: toConfigName(f.Name), Value: value})
	}
	return fields, nil
}
