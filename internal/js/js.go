package js

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Valuer is implemented by types that describe themselves as a JavaScript value.
type Valuer interface {
	JSValue() any
}

// Ident is a bare identifier. When Module is set, the identifier is bound with
// require(Module) at the top of the emitted module.
type Ident struct {
	Name   string
	Module string
}

// Require binds name to require(module).
func Require(name, module string) Ident {
	return Ident{Name: name, Module: module}
}

func (i Ident) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Name)
}

// New is a constructor call: new Ctor.Member(Args...).
type New struct {
	Ctor   Ident
	Member string
	Args   []any
}

func (n New) callee() string {
	return qualified(n.Ctor, n.Member)
}

// Name returns the qualified constructor name.
func (n New) Name() string {
	return n.callee()
}

func (n New) MarshalJSON() ([]byte, error) {
	return marshalCall("new", n.callee(), n.Args)
}

// Call is a function call: Fn.Member(Args...).
type Call struct {
	Fn     Ident
	Member string
	Args   []any
}

func (c Call) callee() string {
	return qualified(c.Fn, c.Member)
}

func (c Call) MarshalJSON() ([]byte, error) {
	return marshalCall("call", c.callee(), c.Args)
}

func qualified(id Ident, member string) string {
	if member == "" {
		return id.Name
	}
	return id.Name + "." + member
}

func marshalCall(kind, callee string, args []any) ([]byte, error) {
	if args == nil {
		args = []any{}
	}
	return json.Marshal(Object{{Key: kind, Value: callee}, {Key: "args", Value: args}})
}

// Regexp is a regular expression literal.
type Regexp struct {
	Pattern string
	Flags   string
}

// MustRegexp returns a Regexp for pattern, panicking when it does not compile.
func MustRegexp(pattern string) Regexp {
	regexp.MustCompile(pattern)
	return Regexp{Pattern: pattern}
}

var regexpLiteral = regexp.MustCompile(`^/(.+)/([dgimsuy]*)$`)

// ParseRegexp recognises a "/pattern/flags" literal.
func ParseRegexp(s string) (Regexp, bool) {
	m := regexpLiteral.FindStringSubmatch(s)
	if m == nil {
		return Regexp{}, false
	}
	return Regexp{Pattern: m[1], Flags: m[2]}, true
}

// String is the literal source. A slash in the pattern is escaped unless it
// already is.
func (r Regexp) String() string {
	var b strings.Builder
	b.Grow(len(r.Pattern) + len(r.Flags) + 4)
	b.WriteByte('/')
	escaped := false
	for _, c := range r.Pattern {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '/':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte('/')
	b.WriteString(r.Flags)
	return b.String()
}

func (r Regexp) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// Null is the javascript null value. A Go nil prints as undefined.
type Null struct{}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Prop is a single key of an Object.
type Prop struct {
	Key   string
	Value any
}

// Object is an object literal whose keys keep their insertion order.
type Object []Prop

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, p := range o {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value := p.Value
		if v, ok := value.(Valuer); ok {
			value = v.JSValue()
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", p.Key, err)
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ObjectFromMap converts m into an Object with sorted keys. Nested maps are
// converted as well.
func ObjectFromMap(m map[string]any) Object {
	if m == nil {
		return nil
	}
	out := make(Object, 0, len(m))
	for _, k := range sortedKeys(m) {
		v := m[k]
		if nested, ok := v.(map[string]any); ok {
			v = ObjectFromMap(nested)
		}
		out = append(out, Prop{Key: k, Value: v})
	}
	return out
}
