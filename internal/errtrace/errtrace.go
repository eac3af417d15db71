// Package errtrace implements the closed taxonomy of lowering errors: every
// variant carries a span.Span plus the data needed to render it, and exposes
// Span/Code/IsFatal alongside the standard error interface. It is the
// grounding target for the teacher's internal/errors package, generalized
// from a single CompilerError shape to the ~25-kind closed sum the resolver
// and local tracker need.
package errtrace

import (
	"fmt"

	"github.com/cindergame/cinderc/internal/span"
)

// Kind is the closed set of lowering error variants.
type Kind int

const (
	UnresolvedVar Kind = iota
	UnresolvedType
	UnresolvedMember
	UnresolvedFunction
	MultipleMatchingOverloads
	InvalidArgCount
	InsufficientTypeInformation
	InvalidTypeArgCount
	UnsupportedArity
	UnsupportedStaticArraySize
	CyclicType
	LiteralOutOfRange
	WrongStringLiteral
	InvalidNewType
	InstantiatingAbstract
	ClassConstructorHasArguments
	InvalidDynCastType
	UnknownStaticCastType
	NonExistentSuperType
	InvalidPlaceExpr
	InvalidTemporary
	UnexpectedNonConstant
	DeprecatedNameOf
	NonSealedStructConstruction
	MissingBreakInCaseLet
	// TypeMismatch, TypeIncompatible, TypeCannotUnify and TypeNested are the
	// nested TypeError variants carried inside a Type(error, span) wrapper.
	TypeMismatch
	TypeIncompatible
	TypeCannotUnify
	TypeNested
)

var codes = map[Kind]string{
	UnresolvedVar:                "UNRESOLVED_REF",
	UnresolvedType:               "UNRESOLVED_TYPE",
	UnresolvedMember:             "UNRESOLVED_MEMBER",
	UnresolvedFunction:           "UNRESOLVED_FN",
	MultipleMatchingOverloads:    "MULTIPLE_MATCHING_OVERLOADS",
	InvalidArgCount:              "INVALID_ARG_COUNT",
	InsufficientTypeInformation:  "CANNOT_LOOKUP_MEMBER",
	InvalidTypeArgCount:          "INVALID_TYPE_ARG_COUNT",
	UnsupportedArity:             "UNSUPPORTED_ARITY",
	UnsupportedStaticArraySize:   "UNSUPPORTED_ARRAY_SIZE",
	CyclicType:                   "CYCLIC_TYPE",
	LiteralOutOfRange:            "LIT_OUT_OF_RANGE",
	WrongStringLiteral:           "WRONG_STRING_LIT",
	InvalidNewType:               "INVALID_NEW_USE",
	InstantiatingAbstract:        "INVALID_NEW_USE",
	ClassConstructorHasArguments: "INVALID_NEW_USE",
	InvalidDynCastType:           "INVALID_DYN_CAST",
	UnknownStaticCastType:        "INVALID_STATIC_CAST",
	NonExistentSuperType:         "INVALID_BASE",
	InvalidPlaceExpr:             "INVALID_PLACE",
	InvalidTemporary:             "INVALID_TEMP",
	UnexpectedNonConstant:        "INVALID_CONSTANT",
	DeprecatedNameOf:             "DEPRECATED_SYNTAX",
	NonSealedStructConstruction:  "NON_SEALED_CTR",
	MissingBreakInCaseLet:        "MISSING_BREAK",
	TypeMismatch:                 "TYPE_MISMATCH",
	TypeIncompatible:             "TYPE_INCOMPATIBLE",
	TypeCannotUnify:              "TYPE_CANNOT_UNIFY",
	TypeNested:                   "TYPE_NESTED",
}

// rangeHints gives LiteralOutOfRange its display hint naming the valid
// numeric range for a target integer type, matched to the type's name.
var rangeHints = map[string]string{
	"int8":   "provide a value between -128 and 127",
	"uint8":  "provide a value between 0 and 255",
	"int16":  "provide a value between -32768 and 32767",
	"uint16": "provide a value between 0 and 65535",
	"int32":  "provide a value between -2147483648 and 2147483647",
	"uint32": "provide a value between 0 and 4294967295",
}

// Error is one lowering diagnostic. Only the fields relevant to Kind are
// populated by callers; the rest stay at their zero value.
type Error struct {
	Kind Kind
	Sp   span.Span

	Name     string // identifier, member, or type name involved
	TypeName string // target type name, for LiteralOutOfRange / casts
	TypeA    string // for TypeMismatch-family errors
	TypeB    string
	Min, Max int // inclusive arg-count / arity range
	HaveN    int // actual count supplied, for arity mismatches
	Expected string
	Got      string
}

// Span returns the primary source location of the error.
func (e *Error) Span() span.Span { return e.Sp }

// Code returns a short stable machine-readable code.
func (e *Error) Code() string { return codes[e.Kind] }

// IsFatal reports whether this error should abort compilation of the
// containing item. Every kind is fatal except the DeprecatedNameOf warning.
func (e *Error) IsFatal() bool { return e.Kind != DeprecatedNameOf }

// Error implements the standard error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case UnresolvedVar:
		return fmt.Sprintf("cannot find %q in this scope", e.Name)
	case UnresolvedType:
		return fmt.Sprintf("unknown type %q", e.Name)
	case UnresolvedMember:
		return fmt.Sprintf("%q has no member %q", e.TypeName, e.Name)
	case UnresolvedFunction:
		return fmt.Sprintf("no overload of %q is callable with these arguments", e.Name)
	case MultipleMatchingOverloads:
		return fmt.Sprintf("call to %q is ambiguous among multiple overloads", e.Name)
	case InvalidArgCount:
		return fmt.Sprintf("%q expects %s argument(s), got %d", e.Name, rangeString(e.Min, e.Max), e.HaveN)
	case InsufficientTypeInformation:
		return fmt.Sprintf("cannot look up member %q: receiver type is not yet known", e.Name)
	case InvalidTypeArgCount:
		return fmt.Sprintf("%q expects %d type argument(s), got %d", e.Name, e.Min, e.HaveN)
	case UnsupportedArity:
		return fmt.Sprintf("function type with %d parameters exceeds the supported arity", e.HaveN)
	case UnsupportedStaticArraySize:
		return fmt.Sprintf("static array size %d exceeds the supported maximum", e.HaveN)
	case CyclicType:
		return fmt.Sprintf("type parameter %q's bound forms a cycle", e.Name)
	case LiteralOutOfRange:
		hint := rangeHints[e.TypeName]
		if hint == "" {
			return fmt.Sprintf("literal out of range for %s", e.TypeName)
		}
		return fmt.Sprintf("literal out of range for %s; %s", e.TypeName, hint)
	case WrongStringLiteral:
		return fmt.Sprintf("expected a %s-prefixed string literal, e.g. %s\"lorem ipsum\"; got %s", e.Expected, e.Expected, e.Got)
	case InvalidNewType:
		return fmt.Sprintf("%q is not constructible with 'new'", e.Name)
	case InstantiatingAbstract:
		return fmt.Sprintf("cannot instantiate abstract class %q", e.Name)
	case ClassConstructorHasArguments:
		return fmt.Sprintf("%q has no constructor accepting arguments", e.Name)
	case InvalidDynCastType:
		return fmt.Sprintf("%q cannot be the target of a dynamic cast", e.TypeName)
	case UnknownStaticCastType:
		return "target type of static cast could not be determined"
	case NonExistentSuperType:
		return "'super' used outside a class that extends another type"
	case InvalidPlaceExpr:
		return "left-hand side of assignment is not assignable"
	case InvalidTemporary:
		return "an 'out' parameter cannot bind to a temporary value"
	case UnexpectedNonConstant:
		return "a constant expression is required here"
	case DeprecatedNameOf:
		return "NameOf(T) is deprecated syntax"
	case NonSealedStructConstruction:
		return fmt.Sprintf("%q is a partially-defined native struct and cannot be constructed directly", e.Name)
	case MissingBreakInCaseLet:
		return "'case let' block falls through without a 'break'"
	case TypeMismatch:
		return fmt.Sprintf("type mismatch: expected %s, got %s", e.TypeA, e.TypeB)
	case TypeIncompatible:
		return fmt.Sprintf("%s is not compatible with %s", e.TypeA, e.TypeB)
	case TypeCannotUnify:
		return fmt.Sprintf("cannot unify %s with %s", e.TypeA, e.TypeB)
	case TypeNested:
		return fmt.Sprintf("in %s: %s", e.TypeA, e.TypeB)
	default:
		return "lowering error"
	}
}

func rangeString(min, max int) string {
	if min == max {
		return fmt.Sprintf("%d", min)
	}
	return fmt.Sprintf("between %d and %d", min, max)
}
