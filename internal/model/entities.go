package model

// Entity is the closed variant over every named construct in the API
// model. Consumers dispatch with a type switch; adding a kind means
// updating every matcher.
type Entity interface {
	girEntity()
}

// Constant is a named compile-time value.
type Constant struct {
	Type  Type
	Value string
}

func (*Constant) girEntity() {}

// Function is a namespace-level callable with its native symbol.
type Function struct {
	Symbol     string
	Callable   Callable
	Deprecated bool
}

func (*Function) girEntity() {}

// EnumMember is one declared (name, value) pair of an enumeration.
type EnumMember struct {
	Name  string
	Value int64
}

// Enumeration is a named set of integer members. Storage must be 32 bits
// wide; the parser and the emitter both enforce that.
type Enumeration struct {
	Members       []EnumMember
	ErrorDomain   string
	TypeInit      string
	StorageBytes  int
	StorageSigned bool
}

func (*Enumeration) girEntity() {}

// MemberByValue maps a raw integer back to its declared member. A value
// with no declared member yields a fallback member carrying the raw
// integer, so re-encoding round-trips exactly.
func (e *Enumeration) MemberByValue(v int64) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Value == v {
			return m, true
		}
	}
	return EnumMember{Name: "AnotherValue", Value: v}, false
}

// Flags is an enumeration whose members combine bitwise.
type Flags struct {
	Enumeration
}

func (*Flags) girEntity() {}

// Callback is a named callable type.
type Callback struct {
	Callable Callable
}

func (*Callback) girEntity() {}

// Field is one field of a struct or union. Callback fields hold the
// local name the embedded declaration is lifted under.
type Field struct {
	Name     string
	Type     Type
	Callback *Callback
}

// Struct is a field-bearing or opaque blob, possibly boxed.
type Struct struct {
	Fields   []Field
	Methods  []Method
	IsBoxed  bool
	TypeInit string
}

func (*Struct) girEntity() {}

// Union is a C union, treated like a struct for generation purposes.
type Union struct {
	Fields   []Field
	Methods  []Method
	TypeInit string
}

func (*Union) girEntity() {}

// MethodType distinguishes how a callable attaches to its owner.
type MethodType int

const (
	// Constructor returns a new instance of the owner; no receiver.
	Constructor MethodType = iota
	// MemberFunction is associated with the owner but takes no receiver.
	MemberFunction
	// OrdinaryMethod takes the owner as implicit first argument.
	OrdinaryMethod
)

// Method is one named callable attached to an entity.
type Method struct {
	Name       string
	Symbol     string
	Type       MethodType
	Callable   Callable
	Deprecated bool
}

// Signal is one signal descriptor of an object or interface.
type Signal struct {
	Name     string
	Callable Callable
}

// Object is a reference-counted instance type with single inheritance.
type Object struct {
	Parent     *Name
	Interfaces []Name
	Methods    []Method
	Signals    []Signal
	TypeInit   string
}

func (*Object) girEntity() {}

// Interface is a capability type with prerequisites.
type Interface struct {
	Prerequisites []Name
	Methods       []Method
	Signals       []Signal
	TypeInit      string
}

func (*Interface) girEntity() {}

// Boxed is an opaque value type with its own copy/free semantics. It
// needs registration but no dedicated emission.
type Boxed struct {
	TypeInit string
}

func (*Boxed) girEntity() {}
