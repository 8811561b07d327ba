package js

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const indentUnit = "  "

// ErrUnsupportedValue is returned when a Go value has no JavaScript form.
var ErrUnsupportedValue = errors.New("value cannot be expressed in javascript")

type printer struct {
	buf     bytes.Buffer
	imports []Ident
	bound   map[string]string
}

// Expr formats v as a JavaScript expression and returns the identifiers that
// must be bound with require().
func Expr(v any) ([]byte, []Ident, error) {
	p := &printer{bound: map[string]string{}}
	if err := p.value(v, 0); err != nil {
		return nil, nil, err
	}
	return p.buf.Bytes(), p.imports, nil
}

// Module formats v as a CommonJS module exporting v.
func Module(v any) ([]byte, error) {
	expr, imports, err := Expr(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("'use strict';\n\n")
	for _, id := range imports {
		fmt.Fprintf(&buf, "const %s = require(%s);\n", id.Name, quote(id.Module))
	}
	if len(imports) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("module.exports = ")
	buf.Write(expr)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

func (p *printer) bind(id Ident) error {
	if id.Module == "" {
		return nil
	}
	if prev, ok := p.bound[id.Name]; ok {
		if prev != id.Module {
			return fmt.Errorf("identifier %s bound to both %q and %q", id.Name, prev, id.Module)
		}
		return nil
	}
	p.bound[id.Name] = id.Module
	p.imports = append(p.imports, id)
	return nil
}

func (p *printer) value(v any, depth int) error {
	switch v := v.(type) {
	case nil:
		p.buf.WriteString("undefined")
	case Valuer:
		return p.value(v.JSValue(), depth)
	case Ident:
		if err := p.bind(v); err != nil {
			return err
		}
		p.buf.WriteString(v.Name)
	case New:
		if err := p.bind(v.Ctor); err != nil {
			return err
		}
		p.buf.WriteString("new ")
		p.buf.WriteString(v.callee())
		return p.args(v.Args, depth)
	case Call:
		if err := p.bind(v.Fn); err != nil {
			return err
		}
		p.buf.WriteString(v.callee())
		return p.args(v.Args, depth)
	case Regexp:
		p.buf.WriteString(v.String())
	case Null:
		p.buf.WriteString("null")
	case Object:
		return p.object(v, depth)
	case map[string]any:
		return p.object(ObjectFromMap(v), depth)
	case []any:
		return p.array(v, depth)
	case string:
		p.buf.WriteString(quote(v))
	case bool:
		p.buf.WriteString(strconv.FormatBool(v))
	case int:
		p.buf.WriteString(strconv.Itoa(v))
	case int64:
		p.buf.WriteString(strconv.FormatInt(v, 10))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrUnsupportedValue, v)
		}
		p.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	default:
		return p.reflectValue(reflect.ValueOf(v), depth)
	}
	return nil
}

func (p *printer) reflectValue(rv reflect.Value, depth int) error {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return p.value(nil, depth)
		}
		return p.value(rv.Elem().Interface(), depth)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return p.value(nil, depth)
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return p.array(items, depth)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key %s", ErrUnsupportedValue, rv.Type().Key())
		}
		if rv.IsNil() {
			return p.value(nil, depth)
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return p.object(ObjectFromMap(m), depth)
	case reflect.String:
		p.buf.WriteString(quote(rv.String()))
	case reflect.Bool:
		p.buf.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.buf.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		p.buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		return p.value(rv.Float(), depth)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, rv.Type())
	}
	return nil
}

func (p *printer) args(args []any, depth int) error {
	p.buf.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		if err := p.value(a, depth); err != nil {
			return err
		}
	}
	p.buf.WriteByte(')')
	return nil
}

func (p *printer) object(o Object, depth int) error {
	if len(o) == 0 {
		p.buf.WriteString("{}")
		return nil
	}

	p.buf.WriteString("{\n")
	for i, prop := range o {
		p.indent(depth + 1)
		p.buf.WriteString(propertyName(prop.Key))
		p.buf.WriteString(": ")
		if err := p.value(prop.Value, depth+1); err != nil {
			return fmt.Errorf("%s: %w", prop.Key, err)
		}
		if i < len(o)-1 {
			p.buf.WriteByte(',')
		}
		p.buf.WriteByte('\n')
	}
	p.indent(depth)
	p.buf.WriteByte('}')
	return nil
}

func (p *printer) array(items []any, depth int) error {
	if len(items) == 0 {
		p.buf.WriteString("[]")
		return nil
	}

	p.buf.WriteString("[\n")
	for i, item := range items {
		p.indent(depth + 1)
		if err := p.value(item, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
		if i < len(items)-1 {
			p.buf.WriteByte(',')
		}
		p.buf.WriteByte('\n')
	}
	p.indent(depth)
	p.buf.WriteByte(']')
	return nil
}

func (p *printer) indent(depth int) {
	p.buf.WriteString(strings.Repeat(indentUnit, depth))
}

// propertyName leaves identifier-like keys bare and quotes the rest.
func propertyName(key string) string {
	if key == "" {
		return quote(key)
	}
	for i, r := range key {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return quote(key)
		}
	}
	return key
}

// quote produces a single-quoted string literal.
func quote(s string) string {
	raw, _ := json.Marshal(s)
	body := string(raw[1 : len(raw)-1])
	body = strings.ReplaceAll(body, `\"`, `"`)
	body = strings.ReplaceAll(body, `'`, `\'`)
	return "'" + body + "'"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
