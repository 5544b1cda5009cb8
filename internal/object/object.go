// Package object implements HPL's runtime value model: the tagged union
// of integer, float, string, boolean, null, array, object, and module
// values, plus the class/object/function descriptors the evaluator
// dispatches against.
package object

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hpl-lang/hpl/internal/ast"
)

// Type identifies the runtime tag of a Value.
type Type string

const (
	INTEGER Type = "INTEGER"
	FLOAT   Type = "FLOAT"
	STRING  Type = "STRING"
	BOOLEAN Type = "BOOLEAN"
	NULL    Type = "NULL"
	ARRAY   Type = "ARRAY"
	OBJECT  Type = "OBJECT"
	MODULE  Type = "MODULE"
)

// Value is any HPL runtime value.
type Value interface {
	Type() Type
	Display() string // the uniform value-to-display rule shared by echo and string concatenation
}

type Integer struct{ Value int64 }

func (i *Integer) Type() Type      { return INTEGER }
func (i *Integer) Display() string { return strconv.FormatInt(i.Value, 10) }

type Float struct{ Value float64 }

func (f *Float) Type() Type      { return FLOAT }
func (f *Float) Display() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

type String struct{ Value string }

func (s *String) Type() Type      { return STRING }
func (s *String) Display() string { return s.Value }

type Boolean struct{ Value bool }

func (b *Boolean) Type() Type { return BOOLEAN }
func (b *Boolean) Display() string {
	if b.Value {
		return "true"
	}
	return "false"
}

type Null struct{}

func (n *Null) Type() Type      { return NULL }
func (n *Null) Display() string { return "null" }

// Array is an ordered, mutable sequence of values.
type Array struct {
	Elements []Value
}

func (a *Array) Type() Type { return ARRAY }
func (a *Array) Display() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Display()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Function is a callable descriptor: a parameter-name list plus a body
// block. Functions are not first-class values; they are only reachable
// by name through a Class's method map or a program's top-level function
// table.
type Function struct {
	Name       string
	Parameters []string
	Body       *ast.Block
}

// Class is a class descriptor: an optional parent (wired to its *Class
// once, by program.Build, when the program is built) and its own method map.
// Inheritance is single; ResolveMethod walks the parent chain.
type Class struct {
	Name    string
	Parent  *Class // nil if no parent
	Methods map[string]*Function
}

// ResolveMethod looks up name in c's own method map, then its parent
// chain.
func (c *Class) ResolveMethod(name string) (*Function, *Class, bool) {
	for cls := c; cls != nil; cls = cls.Parent {
		if fn, ok := cls.Methods[name]; ok {
			return fn, cls, true
		}
	}
	return nil, nil, false
}

// IsDescendantOf reports whether other is c itself or one of c's
// ancestors, walking c's parent chain. The natural companion to ResolveMethod for
// code that needs an is-a check without dispatching a method.
func (c *Class) IsDescendantOf(other *Class) bool {
	for cls := c; cls != nil; cls = cls.Parent {
		if cls == other {
			return true
		}
	}
	return false
}

// Object is an instance: a stable identity, a class reference, and a
// duck-typed attribute map created on first assignment.
type Object struct {
	Name       string // the declared object name, for display/debugging
	Class      *Class
	Attributes map[string]Value
}

func NewObject(name string, class *Class) *Object {
	return &Object{Name: name, Class: class, Attributes: make(map[string]Value)}
}

func (o *Object) Type() Type { return OBJECT }
func (o *Object) Display() string {
	return fmt.Sprintf("<object %s:%s>", o.Name, o.Class.Name)
}

// Module is the uniform descriptor the evaluator consults for every M.x
// access, regardless of whether the module originated from the built-in
// stdlib, a host-ecosystem wrap, a script file, or a host-language file.
type Module struct {
	Name        string
	Description string
	Functions   map[string]BuiltinFunction
	Constants   map[string]Value
}

// BuiltinFunction is a native Go implementation of a module function.
// args are already-evaluated HPL values; the returned Value (or error) is
// propagated by the evaluator exactly like a user function's return value.
type BuiltinFunction func(args []Value) (Value, error)

func (m *Module) Type() Type      { return MODULE }
func (m *Module) Display() string { return fmt.Sprintf("<module %s>", m.Name) }

// BoundFunction is the value produced when a module function is accessed
// without a call, e.g. `echo M.f`: a bound reference to the function
// name, not an invocation.
type BoundFunction struct {
	ModuleName string
	Name       string
	Fn         BuiltinFunction
}

func (b *BoundFunction) Type() Type      { return Type("FUNCTION") }
func (b *BoundFunction) Display() string { return fmt.Sprintf("<function %s.%s>", b.ModuleName, b.Name) }

// IsNumeric reports whether v is an Integer or Float.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case *Integer, *Float:
		return true
	default:
		return false
	}
}

// AsFloat64 converts a numeric Value to float64; ok is false for
// non-numeric values.
func AsFloat64(v Value) (float64, bool) {
	switch n := v.(type) {
	case *Integer:
		return float64(n.Value), true
	case *Float:
		return n.Value, true
	default:
		return 0, false
	}
}

// Truthy is used where the language requires an explicit boolean (no
// coercion: a non-boolean operand to `&&`/`||` is a type error): it
// returns the value of a *Boolean with ok true, and ok false for any
// other value. The evaluator uses it for `if`/`while`/`for` conditions
// and the `&&`/`||`/`!` operands.
func Truthy(v Value) (bool, bool) {
	b, ok := v.(*Boolean)
	if !ok {
		return false, false
	}
	return b.Value, true
}

var (
	True  = &Boolean{Value: true}
	False = &Boolean{Value: false}
	Nil   = &Null{}
)

// BoolValue returns the canonical True/False singleton for b.
func BoolValue(b bool) *Boolean {
	if b {
		return True
	}
	return False
}
