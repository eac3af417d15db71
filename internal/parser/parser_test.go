package parser

import (
	"testing"

	"github.com/cindergame/cinderc/internal/ast"
	"github.com/cindergame/cinderc/internal/lexer"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/token"
)

const testFile = span.FileID(1)

func newTestParser(src string) *Parser {
	toks := lexer.New(testFile, src).Tokenize()
	return New(testFile, toks)
}

func parseOneExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	p := newTestParser(src)
	e := p.parseExpr()
	if len(p.errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.errors)
	}
	return e
}

func TestOperatorPrecedenceChain(t *testing.T) {
	// 1 + 2 * 3 should bind '*' tighter than '+': Add(1, Mul(2, 3))
	e := parseOneExpr(t, "1 + 2 * 3")
	add, ok := e.(*ast.BinExpr)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("top-level = %T, want BinExpr(OpAdd)", e)
	}
	lhs, ok := add.LHS.(*ast.Const)
	if !ok || lhs.Int != 1 {
		t.Fatalf("lhs = %#v, want Const(1)", add.LHS)
	}
	mul, ok := add.RHS.(*ast.BinExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("rhs = %T, want BinExpr(OpMul)", add.RHS)
	}
}

func TestCompoundAssignFoldsRightAssociative(t *testing.T) {
	e := parseOneExpr(t, "a += b += c")
	outer, ok := e.(*ast.BinExpr)
	if !ok || outer.Op != ast.OpAssignAdd {
		t.Fatalf("top-level = %T, want BinExpr(OpAssignAdd)", e)
	}
	if _, ok := outer.LHS.(*ast.Ident); !ok {
		t.Fatalf("lhs = %T, want Ident", outer.LHS)
	}
	inner, ok := outer.RHS.(*ast.BinExpr)
	if !ok || inner.Op != ast.OpAssignAdd {
		t.Fatalf("rhs = %T, want nested BinExpr(OpAssignAdd)", outer.RHS)
	}
}

func TestPlainAssignIsDedicatedNode(t *testing.T) {
	e := parseOneExpr(t, "x = 1")
	assign, ok := e.(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *ast.Assign", e)
	}
	if _, ok := assign.LHS.(*ast.Ident); !ok {
		t.Fatalf("assign.LHS = %T, want Ident", assign.LHS)
	}
}

func TestNestedTernaryAssociatesWithNearestQuestion(t *testing.T) {
	e := parseOneExpr(t, "true ? false ? 1 : 2 : 3")
	outer, ok := e.(*ast.Conditional)
	if !ok {
		t.Fatalf("got %T, want *ast.Conditional", e)
	}
	inner, ok := outer.Then.(*ast.Conditional)
	if !ok {
		t.Fatalf("outer.Then = %T, want nested *ast.Conditional", outer.Then)
	}
	if c, ok := inner.Then.(*ast.Const); !ok || c.Int != 1 {
		t.Fatalf("inner.Then = %#v, want Const(1)", inner.Then)
	}
	if c, ok := inner.Else.(*ast.Const); !ok || c.Int != 2 {
		t.Fatalf("inner.Else = %#v, want Const(2)", inner.Else)
	}
	if c, ok := outer.Else.(*ast.Const); !ok || c.Int != 3 {
		t.Fatalf("outer.Else = %#v, want Const(3)", outer.Else)
	}
}

func TestNumberLiteralSuffixes(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.ConstKind
	}{
		{"42", ast.ConstI32},
		{"42l", ast.ConstI64},
		{"42u", ast.ConstU32},
		{"42ul", ast.ConstU64},
		{"1.5", ast.ConstF32},
		{"1.5d", ast.ConstF64},
	}
	for _, tt := range tests {
		e := parseOneExpr(t, tt.src)
		c, ok := e.(*ast.Const)
		if !ok {
			t.Fatalf("%q: got %T, want *ast.Const", tt.src, e)
		}
		if c.Kind != tt.kind {
			t.Errorf("%q: kind = %v, want %v", tt.src, c.Kind, tt.kind)
		}
	}
}

func TestStringLiteralFlavors(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.ConstKind
	}{
		{`"hello"`, ast.ConstString},
	}
	for _, tt := range tests {
		e := parseOneExpr(t, tt.src)
		c, ok := e.(*ast.Const)
		if !ok || c.Kind != tt.kind {
			t.Fatalf("%q: got %#v, want Const(%v)", tt.src, e, tt.kind)
		}
	}
}

func TestInterpolatedStringReparsesHoles(t *testing.T) {
	e := parseOneExpr(t, `"x = ${a + 1}"`)
	str, ok := e.(*ast.InterpStr)
	if !ok {
		t.Fatalf("got %T, want *ast.InterpStr", e)
	}
	if len(str.Parts) != 2 {
		t.Fatalf("len(Parts) = %d, want 2", len(str.Parts))
	}
	if str.Parts[0].Expr != nil {
		t.Fatalf("Parts[0] should be a literal fragment")
	}
	hole, ok := str.Parts[1].Expr.(*ast.BinExpr)
	if !ok || hole.Op != ast.OpAdd {
		t.Fatalf("Parts[1].Expr = %T, want BinExpr(OpAdd)", str.Parts[1].Expr)
	}
}

func TestMemberAndIndexChain(t *testing.T) {
	e := parseOneExpr(t, "a.b[0].c()")
	call, ok := e.(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", e)
	}
	member, ok := call.Callee.(*ast.Member)
	if !ok || member.Name != "c" {
		t.Fatalf("call.Callee = %#v, want Member(c)", call.Callee)
	}
	idx, ok := member.X.(*ast.Index)
	if !ok {
		t.Fatalf("member.X = %T, want *ast.Index", member.X)
	}
	inner, ok := idx.X.(*ast.Member)
	if !ok || inner.Name != "b" {
		t.Fatalf("idx.X = %#v, want Member(b)", idx.X)
	}
}

func TestCallWithExplicitTypeArgs(t *testing.T) {
	e := parseOneExpr(t, "Make<Int32>(1, 2)")
	call, ok := e.(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", e)
	}
	if len(call.TypeArgs) != 1 {
		t.Fatalf("len(TypeArgs) = %d, want 1", len(call.TypeArgs))
	}
	named, ok := call.TypeArgs[0].(*ast.Named)
	if !ok || named.Name != "Int32" {
		t.Fatalf("TypeArgs[0] = %#v, want Named(Int32)", call.TypeArgs[0])
	}
	if len(call.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(call.Args))
	}
}

func TestLessThanIsNotMistakenForTypeArgs(t *testing.T) {
	e := parseOneExpr(t, "a < b")
	bin, ok := e.(*ast.BinExpr)
	if !ok || bin.Op != ast.OpLt {
		t.Fatalf("got %#v, want BinExpr(OpLt)", e)
	}
}

func TestUnaryOperators(t *testing.T) {
	tests := []struct {
		src string
		op  ast.UnOp
	}{
		{"-x", ast.UnNeg},
		{"!x", ast.UnNot},
		{"~x", ast.UnBitNot},
	}
	for _, tt := range tests {
		e := parseOneExpr(t, tt.src)
		u, ok := e.(*ast.UnaryExpr)
		if !ok || u.Op != tt.op {
			t.Fatalf("%q: got %#v, want UnaryExpr(%v)", tt.src, e, tt.op)
		}
	}
}

func TestLambdaExpression(t *testing.T) {
	e := parseOneExpr(t, "(x, y) => x + y")
	lam, ok := e.(*ast.Lambda)
	if !ok {
		t.Fatalf("got %T, want *ast.Lambda", e)
	}
	if len(lam.Params) != 2 {
		t.Fatalf("len(Params) = %d, want 2", len(lam.Params))
	}
	if lam.Body.Block != nil || lam.Body.Expr == nil {
		t.Fatalf("lambda body should be an inline expression")
	}
}

func TestGroupedExpressionIsNotALambda(t *testing.T) {
	e := parseOneExpr(t, "(1 + 2)")
	bin, ok := e.(*ast.BinExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("got %#v, want BinExpr(OpAdd)", e)
	}
}

func TestArrayLiteralMissingBracketRecovers(t *testing.T) {
	p := newTestParser("[1, 2")
	e := p.parseExpr()
	if _, ok := e.(*ast.ErrorExpr); !ok {
		t.Fatalf("got %T, want *ast.ErrorExpr", e)
	}
	if len(p.errors) == 0 {
		t.Fatalf("expected a recorded diagnostic for the missing ']'")
	}
}

func TestNewExprWithConstructorArgs(t *testing.T) {
	e := parseOneExpr(t, "new Vector3(1, 2, 3)")
	n, ok := e.(*ast.New)
	if !ok {
		t.Fatalf("got %T, want *ast.New", e)
	}
	named, ok := n.Type.(*ast.Named)
	if !ok || named.Name != "Vector3" {
		t.Fatalf("Type = %#v, want Named(Vector3)", n.Type)
	}
	if len(n.Args) != 3 {
		t.Fatalf("len(Args) = %d, want 3", len(n.Args))
	}
}

func TestDynCastExpression(t *testing.T) {
	e := parseOneExpr(t, "obj as Player")
	cast, ok := e.(*ast.DynCast)
	if !ok {
		t.Fatalf("got %T, want *ast.DynCast", e)
	}
	named, ok := cast.Type.(*ast.Named)
	if !ok || named.Name != "Player" {
		t.Fatalf("Type = %#v, want Named(Player)", cast.Type)
	}
}

func parseModule(t *testing.T, src string) (*ast.Module, []ParseError) {
	t.Helper()
	p := newTestParser(src)
	return p.Parse()
}

func TestImportShapes(t *testing.T) {
	mod, errs := parseModule(t, `
		import Std.*
		import Gameplay.{Health, Stamina}
		import Gameplay.Player
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(mod.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(mod.Items))
	}

	all := mod.Items[0].Item.(*ast.Import)
	if all.Mode != ast.ImportAll {
		t.Errorf("import 0 mode = %v, want ImportAll", all.Mode)
	}

	sel := mod.Items[1].Item.(*ast.Import)
	if sel.Mode != ast.ImportSelect || len(sel.Names) != 2 {
		t.Errorf("import 1 = %#v, want ImportSelect with 2 names", sel)
	}

	exact := mod.Items[2].Item.(*ast.Import)
	if exact.Mode != ast.ImportExact || len(exact.Names) != 1 || exact.Names[0] != "Player" {
		t.Errorf("import 2 = %#v, want ImportExact(Player)", exact)
	}
}

func TestFunctionDeclarationWithBlockBody(t *testing.T) {
	mod, errs := parseModule(t, `
		func add(a: Int32, b: Int32) -> Int32 {
			return a + b
		}
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := mod.Items[0].Item.(*ast.Function)
	if fn.Name != "add" {
		t.Fatalf("Name = %q, want add", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("len(Params) = %d, want 2", len(fn.Params))
	}
	if fn.Body == nil || fn.Body.Block == nil {
		t.Fatalf("expected a block body")
	}
	if len(fn.Body.Block.Stmts) != 1 {
		t.Fatalf("len(Stmts) = %d, want 1", len(fn.Body.Block.Stmts))
	}
	ret, ok := fn.Body.Block.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.ReturnStmt", fn.Body.Block.Stmts[0])
	}
	if _, ok := ret.Value.(*ast.BinExpr); !ok {
		t.Fatalf("return value = %T, want *ast.BinExpr", ret.Value)
	}
}

func TestFunctionDeclarationWithInlineBody(t *testing.T) {
	mod, errs := parseModule(t, "func square(x: Int32) -> Int32 = x * x")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := mod.Items[0].Item.(*ast.Function)
	if fn.Body == nil || fn.Body.Expr == nil || fn.Body.Block != nil {
		t.Fatalf("expected an inline expression body, got %#v", fn.Body)
	}
}

func TestClassDeclarationWithQualifiersAndExtends(t *testing.T) {
	mod, errs := parseModule(t, `
		public abstract class Actor extends Entity {
			let health: Int32
			func update(dt: Float) -> Void
		}
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := mod.Items[0]
	if decl.Visibility != ast.VisPublic {
		t.Errorf("Visibility = %v, want VisPublic", decl.Visibility)
	}
	if decl.Qualifiers&ast.QAbstract == 0 {
		t.Errorf("Qualifiers = %v, missing QAbstract", decl.Qualifiers)
	}
	agg, ok := decl.Item.(*ast.Aggregate)
	if !ok {
		t.Fatalf("Item = %T, want *ast.Aggregate", decl.Item)
	}
	if agg.Name != "Actor" {
		t.Errorf("Name = %q, want Actor", agg.Name)
	}
	extends, ok := agg.Extends.(*ast.Named)
	if !ok || extends.Name != "Entity" {
		t.Fatalf("Extends = %#v, want Named(Entity)", agg.Extends)
	}
	if len(agg.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(agg.Items))
	}
}

func TestIfElseIfChainNestsAsBlocks(t *testing.T) {
	mod, errs := parseModule(t, `
		func classify(x: Int32) -> Int32 {
			if x < 0 {
				return -1
			} else if x == 0 {
				return 0
			} else {
				return 1
			}
		}
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := mod.Items[0].Item.(*ast.Function)
	ifStmt := fn.Body.Block.Stmts[0].(*ast.IfStmt)
	if ifStmt.Else == nil || len(ifStmt.Else.Stmts) != 1 {
		t.Fatalf("expected else-if wrapped as a single-statement block")
	}
	elseIf, ok := ifStmt.Else.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("else-if stmt = %T, want *ast.IfStmt", ifStmt.Else.Stmts[0])
	}
	if elseIf.Else == nil {
		t.Fatalf("expected the innermost else block")
	}
}

func TestEnumWithExplicitDiscriminants(t *testing.T) {
	mod, errs := parseModule(t, `
		enum Direction {
			North = 0,
			East = 1,
			South,
			West
		}
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	en := mod.Items[0].Item.(*ast.Enum)
	if len(en.Variants) != 4 {
		t.Fatalf("len(Variants) = %d, want 4", len(en.Variants))
	}
	if en.Variants[0].Discriminant == nil || *en.Variants[0].Discriminant != 0 {
		t.Fatalf("Variants[0].Discriminant = %#v, want 0", en.Variants[0].Discriminant)
	}
	if en.Variants[2].Discriminant != nil {
		t.Fatalf("Variants[2].Discriminant = %#v, want nil", en.Variants[2].Discriminant)
	}
}

func TestSwitchWithLetPattern(t *testing.T) {
	mod, errs := parseModule(t, `
		func describe(x: Int32) -> Int32 {
			switch x {
			case let n:
				return n
			default:
				return 0
			}
		}
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := mod.Items[0].Item.(*ast.Function)
	sw := fn.Body.Block.Stmts[0].(*ast.SwitchStmt)
	if len(sw.Cases) != 2 {
		t.Fatalf("len(Cases) = %d, want 2", len(sw.Cases))
	}
	if sw.Cases[0].LetPat == nil {
		t.Fatalf("expected Cases[0] to carry a let-pattern")
	}
	namePat, ok := sw.Cases[0].LetPat.(*ast.NamePattern)
	if !ok || namePat.Name != "n" {
		t.Fatalf("LetPat = %#v, want NamePattern(n)", sw.Cases[0].LetPat)
	}
	if sw.Cases[1].Label != nil || sw.Cases[1].LetPat != nil {
		t.Fatalf("expected Cases[1] to be the bare default arm")
	}
}

func TestArrayAndFunctionTypeAnnotations(t *testing.T) {
	mod, errs := parseModule(t, `
		let grid: [Int32; 4]
		let handlers: [(Int32) -> Void]
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	grid := mod.Items[0].Item.(*ast.Let)
	sat, ok := grid.Type.(*ast.StaticArrayType)
	if !ok || sat.Size != 4 {
		t.Fatalf("grid.Type = %#v, want StaticArrayType(size=4)", grid.Type)
	}

	handlers := mod.Items[1].Item.(*ast.Let)
	arr, ok := handlers.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("handlers.Type = %#v, want *ast.ArrayType", handlers.Type)
	}
	fn, ok := arr.Elem.(*ast.FnType)
	if !ok || len(fn.Params) != 1 {
		t.Fatalf("arr.Elem = %#v, want FnType with 1 param", arr.Elem)
	}
}

func TestMissingClosingBraceRecoversWithSingleErrorBlock(t *testing.T) {
	p := newTestParser("{ let x = 1")
	blk := p.parseBlock()
	if len(blk.Stmts) != 1 {
		t.Fatalf("len(Stmts) = %d, want 1 (the Error placeholder)", len(blk.Stmts))
	}
	if _, ok := blk.Stmts[0].(*ast.ErrorStmt); !ok {
		t.Fatalf("Stmts[0] = %T, want *ast.ErrorStmt", blk.Stmts[0])
	}
	if len(p.errors) == 0 {
		t.Fatalf("expected a recorded diagnostic for the missing '}'")
	}
}

func TestDanglingDotIsReportedNotFatal(t *testing.T) {
	// A '.' not followed by a field name is consumed by the nearest atom's
	// postfix loop as an incomplete member access, reported but not fatal:
	// parsing of the surrounding function still completes.
	mod, errs := parseModule(t, "func f() -> Void { x. }")
	if len(errs) == 0 {
		t.Fatalf("expected a diagnostic for the incomplete member access")
	}
	found := false
	for _, e := range errs {
		if e.Code == ErrExpectedIdent {
			found = true
		}
	}
	if !found {
		t.Fatalf("errors = %v, want one tagged %s", errs, ErrExpectedIdent)
	}
	fn := mod.Items[0].Item.(*ast.Function)
	if len(fn.Body.Block.Stmts) != 1 {
		t.Fatalf("parsing should still recover the surrounding function, got %d stmts", len(fn.Body.Block.Stmts))
	}
	exprStmt, ok := fn.Body.Block.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.ExprStmt", fn.Body.Block.Stmts[0])
	}
	member, ok := exprStmt.X.(*ast.Member)
	if !ok || member.Name != "" {
		t.Fatalf("X = %#v, want Member with an empty (error-recovered) name", exprStmt.X)
	}
}

func TestUnknownTopLevelTokenIsSkippedWithDiagnostic(t *testing.T) {
	mod, errs := parseModule(t, "$$$ func f() -> Void {}")
	if len(errs) == 0 {
		t.Fatalf("expected a diagnostic for the stray token")
	}
	if len(mod.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1 (the function still parses)", len(mod.Items))
	}
}

var _ = token.EOF // keep the token import honest if cases above change
