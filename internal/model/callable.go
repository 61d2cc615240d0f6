package model

import "girgen/internal/diag"

// Direction is how an argument travels across the call boundary.
type Direction int

const (
	DirectionIn Direction = iota
	DirectionOut
	DirectionInOut
)

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	case DirectionInOut:
		return "inout"
	}
	return "invalid"
}

// Transfer is the ownership-transfer annotation on an argument or return
// value.
type Transfer int

const (
	TransferNothing Transfer = iota
	TransferContainer
	TransferEverything
)

func (t Transfer) String() string {
	switch t {
	case TransferNothing:
		return "none"
	case TransferContainer:
		return "container"
	case TransferEverything:
		return "full"
	}
	return "invalid"
}

// Scope is the lifetime class of a callback argument.
type Scope int

const (
	ScopeInvalid Scope = iota
	ScopeCall
	ScopeAsync
	ScopeNotified
)

// Arg is one argument of a callable. Closure and Destroy are positional
// indices into the sibling argument list, -1 when absent.
type Arg struct {
	Name      string
	Type      Type
	Direction Direction
	MayBeNull bool
	Transfer  Transfer
	Scope     Scope
	Closure   int
	Destroy   int
}

// Callable is the calling contract of a function, method, signal or
// callback. A nil ReturnType means the call returns nothing.
type Callable struct {
	Args            []Arg
	ReturnType      Type
	ReturnTransfer  Transfer
	ReturnMayBeNull bool
	Throws          bool
}

// shiftIndex moves a positional cross-reference by delta, leaving the
// "absent" sentinel alone.
func shiftIndex(i, delta int) int {
	if i < 0 {
		return -1
	}
	return i + delta
}

// shiftType returns t with any embedded length index shifted by delta.
func shiftType(t Type, delta int) Type {
	arr, ok := t.(CArrayType)
	if !ok {
		return t
	}
	arr.Length = shiftIndex(arr.Length, delta)
	return arr
}

// AddImplicitReceiver prepends the receiver argument for a method of
// owner and re-indexes every positional cross-reference: all non-negative
// length, closure and destroy indices grow by one, -1 stays -1. The input
// is not mutated.
func AddImplicitReceiver(owner Name, c Callable) Callable {
	out := c
	out.Args = make([]Arg, 0, len(c.Args)+1)
	out.Args = append(out.Args, Arg{
		Name:      "_obj",
		Type:      RefType{Name: owner},
		Direction: DirectionIn,
		MayBeNull: false,
		Transfer:  TransferNothing,
		Closure:   -1,
		Destroy:   -1,
	})
	for _, a := range c.Args {
		a.Closure = shiftIndex(a.Closure, 1)
		a.Destroy = shiftIndex(a.Destroy, 1)
		a.Type = shiftType(a.Type, 1)
		out.Args = append(out.Args, a)
	}
	if c.ReturnType != nil {
		out.ReturnType = shiftType(c.ReturnType, 1)
	}
	return out
}

// NarrowConstructorReturn rewrites a constructor's declared return type to
// the owner itself when the owner is an instantiable object-like type.
// Schemas routinely declare a generic ancestor there; the constructor
// still produces the concrete type.
func NarrowConstructorReturn(owner Name, c Callable, instantiable bool) Callable {
	if !instantiable {
		return c
	}
	out := c
	out.ReturnType = RefType{Name: owner}
	return out
}

// ValidateIndices checks that every positional cross-reference declared
// by c is either -1 or a valid argument position.
func ValidateIndices(c Callable) error {
	n := len(c.Args)
	check := func(what string, i int) error {
		if i < -1 || i >= n {
			return diag.Malformedf("%s index %d outside argument list of length %d", what, i, n)
		}
		return nil
	}
	for _, a := range c.Args {
		if err := check("closure", a.Closure); err != nil {
			return err
		}
		if err := check("destroy", a.Destroy); err != nil {
			return err
		}
		if arr, ok := a.Type.(CArrayType); ok {
			if err := check("length", arr.Length); err != nil {
				return err
			}
		}
	}
	if arr, ok := c.ReturnType.(CArrayType); ok {
		if err := check("length", arr.Length); err != nil {
			return err
		}
	}
	return nil
}
