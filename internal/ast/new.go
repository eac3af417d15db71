package ast

import "github.com/cindergame/cinderc/internal/span"

// Constructors for every concrete node type, needed because spanv's field is
// unexported: code outside this package cannot build a node's span via a
// struct literal, only through these functions.

func NewAnnotation(sp span.Span, name string, args []Expr) *Annotation {
	return &Annotation{spanv{sp}, name, args}
}

func NewImport(sp span.Span, path []string, mode ImportMode, names []string) *Import {
	return &Import{spanv{sp}, path, mode, names}
}

func NewTypeParam(sp span.Span, name string, variance Variance, upper Type) *TypeParam {
	return &TypeParam{spanv{sp}, name, variance, upper}
}

func NewAggregate(sp span.Span, kind AggregateKind, name string, tps []*TypeParam, extends Type, items []*ItemDecl) *Aggregate {
	return &Aggregate{spanv{sp}, kind, name, tps, extends, items}
}

func NewParam(sp span.Span, name string, typ Type, quals ParamQualifiers) *Param {
	return &Param{spanv{sp}, name, typ, quals}
}

func NewFunctionBody(sp span.Span, block *Block, expr Expr) *FunctionBody {
	return &FunctionBody{spanv{sp}, block, expr}
}

func NewFunction(sp span.Span, name string, tps []*TypeParam, params []*Param, ret Type, body *FunctionBody) *Function {
	return &Function{spanv{sp}, name, tps, params, ret, body}
}

func NewLet(sp span.Span, name string, typ Type, def Expr) *Let {
	return &Let{spanv{sp}, name, typ, def}
}

func NewEnumVariant(sp span.Span, name string, discriminant *int64) *EnumVariant {
	return &EnumVariant{spanv{sp}, name, discriminant}
}

func NewEnum(sp span.Span, name string, variants []*EnumVariant) *Enum {
	return &Enum{spanv{sp}, name, variants}
}

func NewNamed(sp span.Span, name string, args []Type) *Named {
	return &Named{spanv{sp}, name, args}
}

func NewArrayType(sp span.Span, elem Type) *ArrayType {
	return &ArrayType{spanv{sp}, elem}
}

func NewStaticArrayType(sp span.Span, elem Type, size int) *StaticArrayType {
	return &StaticArrayType{spanv{sp}, elem, size}
}

func NewFnType(sp span.Span, params []Type, ret Type) *FnType {
	return &FnType{spanv{sp}, params, ret}
}

func NewNamePattern(sp span.Span, name string) *NamePattern {
	return &NamePattern{spanv{sp}, name}
}

func NewAsPattern(sp span.Span, inner Pattern, typ Type) *AsPattern {
	return &AsPattern{spanv{sp}, inner, typ}
}

func NewFieldPattern(sp span.Span, name string, value Pattern) *FieldPattern {
	return &FieldPattern{spanv{sp}, name, value}
}

func NewAggregatePattern(sp span.Span, name string, fields []*FieldPattern) *AggregatePattern {
	return &AggregatePattern{spanv{sp}, name, fields}
}

func NewNullablePattern(sp span.Span, inner Pattern) *NullablePattern {
	return &NullablePattern{spanv{sp}, inner}
}

func NewArrayPattern(sp span.Span, spread SpreadMode, elements []Pattern) *ArrayPattern {
	return &ArrayPattern{spanv{sp}, spread, elements}
}

func NewBlock(sp span.Span, stmts []Stmt) *Block {
	return &Block{spanv{sp}, stmts}
}

func NewErrorStmt(sp span.Span) *ErrorStmt {
	return &ErrorStmt{spanv{sp}}
}

func NewLetStmt(sp span.Span, name string, typ Type, def Expr) *LetStmt {
	return &LetStmt{spanv{sp}, name, typ, def}
}

func NewSwitchCase(sp span.Span, label Expr, letPat Pattern, body []Stmt) *SwitchCase {
	return &SwitchCase{spanv{sp}, label, letPat, body}
}

func NewSwitchStmt(sp span.Span, subject Expr, cases []*SwitchCase) *SwitchStmt {
	return &SwitchStmt{spanv{sp}, subject, cases}
}

func NewIfStmt(sp span.Span, cond Expr, then, els *Block) *IfStmt {
	return &IfStmt{spanv{sp}, cond, then, els}
}

func NewWhileStmt(sp span.Span, cond Expr, body *Block) *WhileStmt {
	return &WhileStmt{spanv{sp}, cond, body}
}

func NewForInStmt(sp span.Span, name string, iter Expr, body *Block) *ForInStmt {
	return &ForInStmt{spanv{sp}, name, iter, body}
}

func NewReturnStmt(sp span.Span, value Expr) *ReturnStmt {
	return &ReturnStmt{spanv{sp}, value}
}

func NewBreakStmt(sp span.Span) *BreakStmt { return &BreakStmt{spanv{sp}} }

func NewContinueStmt(sp span.Span) *ContinueStmt { return &ContinueStmt{spanv{sp}} }

func NewExprStmt(sp span.Span, x Expr) *ExprStmt {
	return &ExprStmt{spanv{sp}, x}
}

func NewIdent(sp span.Span, name string) *Ident {
	return &Ident{spanv{sp}, name}
}

func NewConstInt(sp span.Span, kind ConstKind, v int64) *Const {
	return &Const{spanv: spanv{sp}, Kind: kind, Int: v}
}

func NewConstUint(sp span.Span, kind ConstKind, v uint64) *Const {
	return &Const{spanv: spanv{sp}, Kind: kind, Uint: v}
}

func NewConstFloat(sp span.Span, kind ConstKind, v float64) *Const {
	return &Const{spanv: spanv{sp}, Kind: kind, Float: v}
}

func NewConstBool(sp span.Span, v bool) *Const {
	return &Const{spanv: spanv{sp}, Kind: ConstBool, Bool: v}
}

func NewConstString(sp span.Span, kind ConstKind, v string) *Const {
	return &Const{spanv: spanv{sp}, Kind: kind, String: v}
}

func NewArrayLit(sp span.Span, elements []Expr) *ArrayLit {
	return &ArrayLit{spanv{sp}, elements}
}

func NewInterpStr(sp span.Span, parts []StrPart) *InterpStr {
	return &InterpStr{spanv{sp}, parts}
}

func NewAssign(sp span.Span, lhs, rhs Expr) *Assign {
	return &Assign{spanv{sp}, lhs, rhs}
}

func NewBinExpr(sp span.Span, op BinOp, lhs, rhs Expr) *BinExpr {
	return &BinExpr{spanv{sp}, op, lhs, rhs}
}

func NewUnaryExpr(sp span.Span, op UnOp, x Expr) *UnaryExpr {
	return &UnaryExpr{spanv{sp}, op, x}
}

func NewCall(sp span.Span, callee Expr, typeArgs []Type, args []Expr) *Call {
	return &Call{spanv{sp}, callee, typeArgs, args}
}

func NewMember(sp span.Span, x Expr, name string) *Member {
	return &Member{spanv{sp}, x, name}
}

func NewIndex(sp span.Span, x, idx Expr) *Index {
	return &Index{spanv{sp}, x, idx}
}

func NewDynCast(sp span.Span, x Expr, typ Type) *DynCast {
	return &DynCast{spanv{sp}, x, typ}
}

func NewNew(sp span.Span, typ Type, args []Expr) *New {
	return &New{spanv{sp}, typ, args}
}

func NewConditional(sp span.Span, cond, then, els Expr) *Conditional {
	return &Conditional{spanv{sp}, cond, then, els}
}

func NewLambda(sp span.Span, params []*Param, body *FunctionBody) *Lambda {
	return &Lambda{spanv{sp}, params, body}
}

func NewThis(sp span.Span) *This { return &This{spanv{sp}} }

func NewSuper(sp span.Span) *Super { return &Super{spanv{sp}} }

func NewNull(sp span.Span) *Null { return &Null{spanv{sp}} }

func NewErrorExpr(sp span.Span) *ErrorExpr { return &ErrorExpr{spanv{sp}} }

// NewItemDeclFull builds a fully-populated ItemDecl; NewItemDecl (in ast.go)
// covers the common bare case.
func NewItemDeclFull(sp span.Span, anns []*Annotation, vis Visibility, quals Qualifiers, doc []string, item Item) *ItemDecl {
	return &ItemDecl{spanv{sp}, anns, vis, quals, doc, item}
}
