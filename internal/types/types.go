// Package types implements the internal type representation the resolver
// yields: an application of an interned TypeId to zero or more type
// arguments, plus the declaration-site type-parameter shape (CtxVar) that
// the type environment builds from source-level generic parameters.
package types

import "fmt"

// TypeId identifies a type constructor: a primitive, a user-declared
// aggregate, or one synthesized for a fixed-arity function type / fixed-size
// array type.
type TypeId int32

// Predefined type ids, always present in the outermost type environment
// scope.
const (
	Invalid TypeId = iota
	ARRAY
	REF
	WREF
	SCRIPT_REF
	I32
	I64
	U32
	U64
	F32
	F64
	Bool
	String
	CName
	Resource
	TweakDbId

	firstUserID // first id available for user-declared aggregates
)

// MAX_FN_ARITY and MAX_STATIC_ARRAY_SIZE bound the synthesized ids below;
// exceeding either is reported as UnsupportedArity / UnsupportedStaticArraySize
// rather than silently wrapping.
const (
	MAX_FN_ARITY          = 16
	MAX_STATIC_ARRAY_SIZE = 1 << 20
)

// fnArityBase and arraySizeBase partition the synthesized-id space so that
// fn_with_arity and array_with_size never collide with each other, and sit
// far above firstUserID, where user-declared aggregate ids begin.
const (
	fnArityBase   = TypeId(1 << 24)
	arraySizeBase = TypeId(1 << 25)
)

// FnWithArity returns the id for an n-parameter function type, or an error
// if n exceeds MAX_FN_ARITY.
func FnWithArity(n int) (TypeId, error) {
	if n < 0 || n > MAX_FN_ARITY {
		return Invalid, fmt.Errorf("function arity %d exceeds MAX_FN_ARITY (%d)", n, MAX_FN_ARITY)
	}
	return fnArityBase + TypeId(n), nil
}

// ArrayWithSize returns the id for a static array of size n, or an error if
// n exceeds MAX_STATIC_ARRAY_SIZE.
func ArrayWithSize(n int) (TypeId, error) {
	if n < 0 || n > MAX_STATIC_ARRAY_SIZE {
		return Invalid, fmt.Errorf("static array size %d exceeds MAX_STATIC_ARRAY_SIZE (%d)", n, MAX_STATIC_ARRAY_SIZE)
	}
	return arraySizeBase + TypeId(n), nil
}

// Type is either the application of a type constructor to zero or more
// arguments, or (when Var is non-nil) a reference to a context variable —
// the resolver returns the variable itself, ignoring any type arguments
// written against it at the use site; a higher layer validates arity.
type Type struct {
	ID   TypeId
	Args []Type
	Var  *CtxVar
}

// App constructs a type application.
func App(id TypeId, args ...Type) Type {
	return Type{ID: id, Args: args}
}

// VarType constructs a type that refers to a context variable.
func VarType(v *CtxVar) Type {
	return Type{Var: v}
}

func (t Type) String() string {
	if t.Var != nil {
		return t.Var.Name
	}
	if len(t.Args) == 0 {
		return fmt.Sprintf("T%d", t.ID)
	}
	return fmt.Sprintf("T%d<%v>", t.ID, t.Args)
}

// Variance is the declaration-site variance annotation on a type parameter,
// mirroring ast.Variance without importing the ast package (types sits
// below ast in the dependency order: ast nodes describe source syntax,
// types describes what that syntax resolves to).
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

// CtxVar is a declaration-site type parameter: a name, its variance, and
// optional lower/upper bounds. Two TypeRef.Var entries referring to the
// "same" variable share a pointer to one CtxVar; equality is identity, not
// structural.
type CtxVar struct {
	Name     string
	Variance Variance
	Lower    *Type
	Upper    *Type
}
