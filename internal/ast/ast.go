// Package ast defines the Abstract Syntax Tree produced by the parser:
// modules, item declarations, statements, expressions, types and patterns,
// each tagged with the span of source text it was parsed from.
//
// Every node always carries its Span (the "WithSpan" shape from the data
// model); Unwrap produces the "Identity" shape by returning an equal tree
// with every span reset to its zero value, so two trees that differ only in
// position compare equal under reflect.DeepEqual. This is the Go-idiomatic
// reading of the "produce only the spanned form, provide a conversion
// function to strip spans" alternative: rather than maintaining two
// parallel type hierarchies switched by a generic wrapper, one hierarchy
// carries positions that a single pass can blank out.
package ast

import "github.com/cindergame/cinderc/internal/span"

// Node is implemented by every AST type.
type Node interface {
	Span() span.Span
}

// ---- Binary operators -----------------------------------------------------

// BinOp enumerates the 22 binary operator kinds, each with a fixed
// precedence/associativity and a canonical overload-function name.
type BinOp int

const (
	OpAssignAdd BinOp = iota
	OpAssignSub
	OpAssignMul
	OpAssignDiv
	OpAssignOr
	OpAssignAnd
	OpOr
	OpAnd
	OpBitOr
	OpBitXor
	OpBitAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

type opInfo struct {
	prec  int
	right bool
	name  string
}

var binOpTable = map[BinOp]opInfo{
	OpAssignAdd: {0, true, "OperatorAssignAdd"},
	OpAssignSub: {0, true, "OperatorAssignSubtract"},
	OpAssignMul: {0, true, "OperatorAssignMultiply"},
	OpAssignDiv: {0, true, "OperatorAssignDivide"},
	OpAssignOr:  {0, true, "OperatorAssignOr"},
	OpAssignAnd: {0, true, "OperatorAssignAnd"},
	OpOr:        {1, false, "OperatorLogicOr"},
	OpAnd:       {2, false, "OperatorLogicAnd"},
	OpBitOr:     {3, false, "OperatorOr"},
	OpBitXor:    {4, false, "OperatorXor"},
	OpBitAnd:    {5, false, "OperatorAnd"},
	OpEq:        {6, false, "OperatorEqual"},
	OpNe:        {6, false, "OperatorNotEqual"},
	OpLt:        {7, false, "OperatorLess"},
	OpLe:        {7, false, "OperatorLessEqual"},
	OpGt:        {7, false, "OperatorGreater"},
	OpGe:        {7, false, "OperatorGreaterEqual"},
	OpAdd:       {8, false, "OperatorAdd"},
	OpSub:       {8, false, "OperatorSubtract"},
	OpMul:       {9, false, "OperatorMultiply"},
	OpDiv:       {9, false, "OperatorDivide"},
	OpMod:       {9, false, "OperatorModulo"},
}

// Precedence returns the binding strength of op; higher binds tighter.
func (op BinOp) Precedence() int { return binOpTable[op].prec }

// RightAssoc reports whether op folds right-to-left (true only for the
// compound-assignment family).
func (op BinOp) RightAssoc() bool { return binOpTable[op].right }

// Name returns the canonical overload-lookup function name for op, e.g.
// "OperatorAdd".
func (op BinOp) Name() string { return binOpTable[op].name }

var binOpByName = func() map[string]BinOp {
	m := make(map[string]BinOp, len(binOpTable))
	for op, info := range binOpTable {
		m[info.name] = op
	}
	return m
}()

// BinOpFromName resolves a canonical overload-function name back to its
// BinOp, reporting false if name is not one of the 22 known operators.
func BinOpFromName(name string) (BinOp, bool) {
	op, ok := binOpByName[name]
	return op, ok
}

// UnOp enumerates unary operator kinds.
type UnOp int

const (
	UnNeg UnOp = iota
	UnNot
	UnBitNot
)

// ---- Qualifiers / visibility / variance -----------------------------------

// Qualifiers is a bitset of ItemDecl modifiers.
type Qualifiers uint16

const (
	QAbstract Qualifiers = 1 << iota
	QCallback
	QConst
	QExec
	QFinal
	QImportOnly
	QNative
	QPersistent
	QQuest
	QStatic
)

func (q Qualifiers) Has(f Qualifiers) bool { return q&f != 0 }

// Visibility is the optional access modifier on an ItemDecl.
type Visibility int

const (
	VisDefault Visibility = iota
	VisPublic
	VisProtected
	VisPrivate
)

// Variance is the declaration-site variance annotation on a type parameter.
type Variance int

const (
	Invariant Variance = iota
	Covariant     // +T
	Contravariant // -T
)

// SpreadMode describes where an array pattern's `..` spread sits.
type SpreadMode int

const (
	SpreadNone SpreadMode = iota
	SpreadStart
	SpreadEnd
)

// ---- Top-level structure --------------------------------------------------

// spanv is an embeddable span holder; node types compose it instead of
// repeating a Span() method body on every type.
type spanv struct{ s span.Span }

func (s spanv) Span() span.Span { return s.s }

// Module is the root of one parsed file: an optional dotted module path and
// an ordered list of item declarations.
type Module struct {
	spanv
	Path  []string // e.g. ["Foo", "Bar"] for "module Foo.Bar"; nil if absent
	Items []*ItemDecl
}

// NewModule builds a Module node with the given span.
func NewModule(sp span.Span, path []string, items []*ItemDecl) *Module {
	return &Module{spanv{sp}, path, items}
}

// Annotation is a `@name(args)` attribute attached above an ItemDecl.
type Annotation struct {
	spanv
	Name string
	Args []Expr
}

// ItemDecl wraps an Item with its annotations, visibility, qualifiers and
// doc comment lines.
type ItemDecl struct {
	spanv
	Annotations []*Annotation
	Visibility  Visibility
	Qualifiers  Qualifiers
	Doc         []string // doc comment lines, verbatim, in source order
	Item        Item
}

// NewItemDecl builds an ItemDecl with the given span.
func NewItemDecl(sp span.Span, item Item) *ItemDecl {
	return &ItemDecl{spanv: spanv{sp}, Item: item}
}

// Item is implemented by Import, Class, Struct, Function, Let, Enum.
type Item interface {
	Node
	isItem()
}

// ImportMode distinguishes the three import-item shapes.
type ImportMode int

const (
	ImportAll    ImportMode = iota // import Std.*
	ImportSelect                   // import Something.{A, B}
	ImportExact                    // import Something.Name
)

type Import struct {
	spanv
	Path  []string
	Mode  ImportMode
	Names []string // populated for ImportSelect / ImportExact
}

func (*Import) isItem() {}

// AggregateKind distinguishes Class from Struct.
type AggregateKind int

const (
	KindClass AggregateKind = iota
	KindStruct
)

type TypeParam struct {
	spanv
	Name     string
	Variance Variance
	Upper    Type // optional, nil if absent
}

// Aggregate is the shared shape of `class` and `struct` items.
type Aggregate struct {
	spanv
	AggKind    AggregateKind
	Name       string
	TypeParams []*TypeParam
	Extends    Type // optional
	Items      []*ItemDecl
}

func (*Aggregate) isItem() {}

// ParamQualifiers is a bitset on a function parameter.
type ParamQualifiers uint8

const (
	PQOptional ParamQualifiers = 1 << iota
	PQOut
	PQConst
)

type Param struct {
	spanv
	Name  string
	Type  Type // optional, nil if elided
	Quals ParamQualifiers
}

// FunctionBody is either a Block or a single inline expression (`= expr`).
type FunctionBody struct {
	spanv
	Block *Block // set when the body is `{ ... }`
	Expr  Expr   // set when the body is `= expr`
}

type Function struct {
	spanv
	Name       string
	TypeParams []*TypeParam
	Params     []*Param
	ReturnType Type          // optional
	Body       *FunctionBody // nil for a declaration with no body (native/import_only)
}

func (*Function) isItem() {}

type Let struct {
	spanv
	Name    string
	Type    Type
	Default Expr // optional
}

func (*Let) isItem() {}

type EnumVariant struct {
	spanv
	Name         string
	Discriminant *int64 // optional explicit value
}

type Enum struct {
	spanv
	Name     string
	Variants []*EnumVariant
}

func (*Enum) isItem() {}

// ---- Types -----------------------------------------------------------------

// Type is implemented by Named, ArrayType, StaticArrayType, FnType.
type Type interface {
	Node
	isType()
}

type Named struct {
	spanv
	Name string
	Args []Type
}

func (*Named) isType() {}

type ArrayType struct {
	spanv
	Elem Type
}

func (*ArrayType) isType() {}

type StaticArrayType struct {
	spanv
	Elem Type
	Size int
}

func (*StaticArrayType) isType() {}

type FnType struct {
	spanv
	Params []Type
	Return Type
}

func (*FnType) isType() {}

// ---- Patterns ---------------------------------------------------------------

// Pattern is implemented by NamePattern, AsPattern, AggregatePattern,
// NullablePattern, ArrayPattern.
type Pattern interface {
	Node
	isPattern()
}

type NamePattern struct {
	spanv
	Name string
}

func (*NamePattern) isPattern() {}

type AsPattern struct {
	spanv
	Inner Pattern
	Type  Type
}

func (*AsPattern) isPattern() {}

type FieldPattern struct {
	spanv
	Name  string
	Value Pattern
}

type AggregatePattern struct {
	spanv
	Name   string
	Fields []*FieldPattern
}

func (*AggregatePattern) isPattern() {}

type NullablePattern struct {
	spanv
	Inner Pattern
}

func (*NullablePattern) isPattern() {}

type ArrayPattern struct {
	spanv
	Spread   SpreadMode
	Elements []Pattern
}

func (*ArrayPattern) isPattern() {}

// ---- Statements --------------------------------------------------------------

// Block is an ordered sequence of statements; siblings' spans must be
// disjoint and monotonically increasing (invariant 3 in the data model).
type Block struct {
	spanv
	Stmts []Stmt
}

// ErrorStmt marks the error-recovery placeholder produced when a bracketed
// region failed to parse cleanly.
type ErrorStmt struct{ spanv }

func (*ErrorStmt) isStmt() {}

// SingleError returns a Block containing exactly one ErrorStmt spanning sp,
// the placeholder the parser substitutes for an unrecoverable bracketed
// region (§4.1).
func SingleError(sp span.Span) *Block {
	return &Block{spanv: spanv{sp}, Stmts: []Stmt{&ErrorStmt{spanv{sp}}}}
}

// Stmt is implemented by LetStmt, SwitchStmt, IfStmt, WhileStmt, ForInStmt,
// ReturnStmt, BreakStmt, ContinueStmt, ExprStmt, ErrorStmt.
type Stmt interface {
	Node
	isStmt()
}

type LetStmt struct {
	spanv
	Name    string
	Type    Type // optional
	Default Expr // optional
}

func (*LetStmt) isStmt() {}

type SwitchCase struct {
	spanv
	Label  Expr    // nil for the default case
	LetPat Pattern // set for `case let pattern:` arms
	Body   []Stmt
}

type SwitchStmt struct {
	spanv
	Subject Expr
	Cases   []*SwitchCase
}

func (*SwitchStmt) isStmt() {}

type IfStmt struct {
	spanv
	Cond Expr
	Then *Block
	Else *Block // optional; may wrap a single IfStmt for else-if chains
}

func (*IfStmt) isStmt() {}

type WhileStmt struct {
	spanv
	Cond Expr
	Body *Block
}

func (*WhileStmt) isStmt() {}

type ForInStmt struct {
	spanv
	Name string
	Iter Expr
	Body *Block
}

func (*ForInStmt) isStmt() {}

type ReturnStmt struct {
	spanv
	Value Expr // optional
}

func (*ReturnStmt) isStmt() {}

type BreakStmt struct{ spanv }

func (*BreakStmt) isStmt() {}

type ContinueStmt struct{ spanv }

func (*ContinueStmt) isStmt() {}

type ExprStmt struct {
	spanv
	X Expr
}

func (*ExprStmt) isStmt() {}

// ---- Expressions --------------------------------------------------------------

// ConstKind enumerates the typed literal-constant flavours.
type ConstKind int

const (
	ConstI32 ConstKind = iota
	ConstI64
	ConstU32
	ConstU64
	ConstF32
	ConstF64
	ConstBool
	ConstString
	ConstCName
	ConstResource
	ConstTweakDbId
)

// Expr is implemented by every expression node kind in the data model.
type Expr interface {
	Node
	isExpr()
}

type Ident struct {
	spanv
	Name string
}

func (*Ident) isExpr() {}

type Const struct {
	spanv
	Kind ConstKind
	// exactly one of the following is meaningful, selected by Kind
	Int    int64
	Uint   uint64
	Float  float64
	Bool   bool
	String string
}

func (*Const) isExpr() {}

type ArrayLit struct {
	spanv
	Elements []Expr
}

func (*ArrayLit) isExpr() {}

// StrPart is one fragment of an interpolated string expression.
type StrPart struct {
	Str  string // valid when Expr == nil
	Expr Expr   // valid when non-nil
}

type InterpStr struct {
	spanv
	Parts []StrPart
}

func (*InterpStr) isExpr() {}

type Assign struct {
	spanv
	LHS Expr
	RHS Expr
}

func (*Assign) isExpr() {}

type BinExpr struct {
	spanv
	Op  BinOp
	LHS Expr
	RHS Expr
}

func (*BinExpr) isExpr() {}

type UnaryExpr struct {
	spanv
	Op UnOp
	X  Expr
}

func (*UnaryExpr) isExpr() {}

type Call struct {
	spanv
	Callee   Expr
	TypeArgs []Type // optional explicit type arguments
	Args     []Expr
}

func (*Call) isExpr() {}

type Member struct {
	spanv
	X    Expr
	Name string
}

func (*Member) isExpr() {}

type Index struct {
	spanv
	X   Expr
	Idx Expr
}

func (*Index) isExpr() {}

type DynCast struct {
	spanv
	X    Expr
	Type Type
}

func (*DynCast) isExpr() {}

type New struct {
	spanv
	Type Type
	Args []Expr
}

func (*New) isExpr() {}

type Conditional struct {
	spanv
	Cond Expr
	Then Expr
	Else Expr
}

func (*Conditional) isExpr() {}

type Lambda struct {
	spanv
	Params []*Param
	Body   *FunctionBody
}

func (*Lambda) isExpr() {}

type This struct{ spanv }

func (*This) isExpr() {}

type Super struct{ spanv }

func (*Super) isExpr() {}

type Null struct{ spanv }

func (*Null) isExpr() {}

// ErrorExpr marks the error-recovery placeholder used in expression
// position.
type ErrorExpr struct{ spanv }

func (*ErrorExpr) isExpr() {}
