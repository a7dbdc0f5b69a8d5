package shell

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"lumincoin/internal/validation"
)

var (
	ErrNoView       = errors.New("no active view")
	ErrUnknownField = errors.New("unknown field")
	ErrUnknownOp    = errors.New("unknown intent")

	fieldType   = reflect.TypeOf(validation.Field{})
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Entry is one exported value of a controller.
type Entry struct {
	Path  string
	Value string
}

// Entries lists the exported state of a controller in declaration order.
// Promoted fields of exported embedded structs appear without a prefix.
func Entries(view any) []Entry {
	v := reflect.ValueOf(view)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	var out []Entry
	collect(v, "", &out)
	return out
}

func collect(v reflect.Value, prefix string, out *[]Entry) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			collect(fv, prefix, out)
			continue
		}
		path := prefix + sf.Name
		switch {
		case sf.Type == fieldType:
			f := fv.Interface().(validation.Field)
			val := strconv.Quote(f.Value)
			if f.Invalid {
				val += " (invalid)"
			}
			*out = append(*out, Entry{Path: path, Value: val})
		case fv.Kind() == reflect.Struct:
			collect(fv, path+".", out)
		default:
			*out = append(*out, Entry{Path: path, Value: fmt.Sprintf("%v", fv.Interface())})
		}
	}
}

// Set assigns value to the field at path. Path segments are matched
// case-insensitively; form fields receive the value as their input text.
func Set(view any, path, value string) error {
	v := reflect.ValueOf(view)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return ErrNoView
	}
	v = v.Elem()
	for _, seg := range strings.Split(path, ".") {
		if v.Kind() != reflect.Struct {
			return fmt.Errorf("%w: %s", ErrUnknownField, path)
		}
		v = v.FieldByNameFunc(func(name string) bool { return strings.EqualFold(name, seg) })
		if !v.IsValid() {
			return fmt.Errorf("%w: %s", ErrUnknownField, path)
		}
	}
	if !v.CanSet() {
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	if v.Type() == fieldType {
		v = v.FieldByName("Value")
	}
	return assign(v, value)
}

func assign(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("parse bool %q: %w", s, err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("parse int %q: %w", s, err)
		}
		v.SetInt(n)
	default:
		return fmt.Errorf("unsupported field type %s", v.Type())
	}
	return nil
}

// Invoke calls the exported method name on view. A context.Context
// parameter receives ctx; the remaining parameters consume args in order.
func Invoke(ctx context.Context, view any, name string, args []string) error {
	if view == nil {
		return ErrNoView
	}
	v := reflect.ValueOf(view)
	var m reflect.Value
	for i := 0; i < v.NumMethod(); i++ {
		if strings.EqualFold(v.Type().Method(i).Name, name) {
			m = v.Method(i)
			break
		}
	}
	if !m.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownOp, name)
	}

	mt := m.Type()
	in := make([]reflect.Value, 0, mt.NumIn())
	for i := 0; i < mt.NumIn(); i++ {
		pt := mt.In(i)
		if pt == contextType {
			in = append(in, reflect.ValueOf(ctx))
			continue
		}
		if len(args) == 0 {
			return fmt.Errorf("%s: missing argument %d", name, i+1)
		}
		arg := reflect.New(pt).Elem()
		if err := assign(arg, args[0]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		args = args[1:]
		in = append(in, arg)
	}

	out := m.Call(in)
	if n := len(out); n > 0 && mt.Out(n-1) == errorType && !out[n-1].IsNil() {
		return out[n-1].Interface().(error)
	}
	return nil
}
