package ast

// Unwrap returns a deep copy of n with every span reset to the zero value,
// implementing the "Identity" shape described in the data model: the same
// tree structure as the "WithSpan" shape, with positions stripped. Two
// trees produced from different parses of equivalent source compare equal
// under reflect.DeepEqual after Unwrap even if their absolute byte offsets
// differ (invariant 1, round-trip shape).
func Unwrap(n Node) Node {
	switch v := n.(type) {
	case nil:
		return nil
	case *Module:
		items := make([]*ItemDecl, len(v.Items))
		for i, it := range v.Items {
			items[i] = Unwrap(it).(*ItemDecl)
		}
		return &Module{Path: v.Path, Items: items}
	case *ItemDecl:
		anns := make([]*Annotation, len(v.Annotations))
		for i, a := range v.Annotations {
			anns[i] = Unwrap(a).(*Annotation)
		}
		return &ItemDecl{
			Annotations: anns,
			Visibility:  v.Visibility,
			Qualifiers:  v.Qualifiers,
			Doc:         v.Doc,
			Item:        Unwrap(v.Item).(Item),
		}
	case *Annotation:
		return &Annotation{Name: v.Name, Args: unwrapExprs(v.Args)}
	case *Import:
		return &Import{Path: v.Path, Mode: v.Mode, Names: v.Names}
	case *Aggregate:
		tps := make([]*TypeParam, len(v.TypeParams))
		for i, tp := range v.TypeParams {
			tps[i] = Unwrap(tp).(*TypeParam)
		}
		items := make([]*ItemDecl, len(v.Items))
		for i, it := range v.Items {
			items[i] = Unwrap(it).(*ItemDecl)
		}
		return &Aggregate{AggKind: v.AggKind, Name: v.Name, TypeParams: tps, Extends: unwrapType(v.Extends), Items: items}
	case *TypeParam:
		return &TypeParam{Name: v.Name, Variance: v.Variance, Upper: unwrapType(v.Upper)}
	case *Function:
		return &Function{
			Name:       v.Name,
			TypeParams: unwrapTypeParams(v.TypeParams),
			Params:     unwrapParams(v.Params),
			ReturnType: unwrapType(v.ReturnType),
			Body:       unwrapFuncBody(v.Body),
		}
	case *Let:
		return &Let{Name: v.Name, Type: unwrapType(v.Type), Default: unwrapExpr(v.Default)}
	case *Enum:
		vars := make([]*EnumVariant, len(v.Variants))
		for i, ev := range v.Variants {
			vars[i] = Unwrap(ev).(*EnumVariant)
		}
		return &Enum{Name: v.Name, Variants: vars}
	case *EnumVariant:
		return &EnumVariant{Name: v.Name, Discriminant: v.Discriminant}
	case *Param:
		return &Param{Name: v.Name, Type: unwrapType(v.Type), Quals: v.Quals}
	case *FunctionBody:
		return unwrapFuncBody(v)
	case *Named:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = unwrapType(a)
		}
		return &Named{Name: v.Name, Args: args}
	case *ArrayType:
		return &ArrayType{Elem: unwrapType(v.Elem)}
	case *StaticArrayType:
		return &StaticArrayType{Elem: unwrapType(v.Elem), Size: v.Size}
	case *FnType:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = unwrapType(p)
		}
		return &FnType{Params: params, Return: unwrapType(v.Return)}
	case *Block:
		return unwrapBlock(v)
	case *ErrorStmt:
		return &ErrorStmt{}
	case *LetStmt:
		return &LetStmt{Name: v.Name, Type: unwrapType(v.Type), Default: unwrapExpr(v.Default)}
	case *SwitchStmt:
		cases := make([]*SwitchCase, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = Unwrap(c).(*SwitchCase)
		}
		return &SwitchStmt{Subject: unwrapExpr(v.Subject), Cases: cases}
	case *SwitchCase:
		return &SwitchCase{Label: unwrapExpr(v.Label), LetPat: unwrapPattern(v.LetPat), Body: unwrapStmts(v.Body)}
	case *IfStmt:
		return &IfStmt{Cond: unwrapExpr(v.Cond), Then: unwrapBlock(v.Then), Else: unwrapBlock(v.Else)}
	case *WhileStmt:
		return &WhileStmt{Cond: unwrapExpr(v.Cond), Body: unwrapBlock(v.Body)}
	case *ForInStmt:
		return &ForInStmt{Name: v.Name, Iter: unwrapExpr(v.Iter), Body: unwrapBlock(v.Body)}
	case *ReturnStmt:
		return &ReturnStmt{Value: unwrapExpr(v.Value)}
	case *BreakStmt:
		return &BreakStmt{}
	case *ContinueStmt:
		return &ContinueStmt{}
	case *ExprStmt:
		return &ExprStmt{X: unwrapExpr(v.X)}
	case *Ident:
		return &Ident{Name: v.Name}
	case *Const:
		return &Const{Kind: v.Kind, Int: v.Int, Uint: v.Uint, Float: v.Float, Bool: v.Bool, String: v.String}
	case *ArrayLit:
		return &ArrayLit{Elements: unwrapExprs(v.Elements)}
	case *InterpStr:
		parts := make([]StrPart, len(v.Parts))
		for i, p := range v.Parts {
			if p.Expr != nil {
				parts[i] = StrPart{Expr: unwrapExpr(p.Expr)}
			} else {
				parts[i] = StrPart{Str: p.Str}
			}
		}
		return &InterpStr{Parts: parts}
	case *Assign:
		return &Assign{LHS: unwrapExpr(v.LHS), RHS: unwrapExpr(v.RHS)}
	case *BinExpr:
		return &BinExpr{Op: v.Op, LHS: unwrapExpr(v.LHS), RHS: unwrapExpr(v.RHS)}
	case *UnaryExpr:
		return &UnaryExpr{Op: v.Op, X: unwrapExpr(v.X)}
	case *Call:
		targs := make([]Type, len(v.TypeArgs))
		for i, t := range v.TypeArgs {
			targs[i] = unwrapType(t)
		}
		return &Call{Callee: unwrapExpr(v.Callee), TypeArgs: targs, Args: unwrapExprs(v.Args)}
	case *Member:
		return &Member{X: unwrapExpr(v.X), Name: v.Name}
	case *Index:
		return &Index{X: unwrapExpr(v.X), Idx: unwrapExpr(v.Idx)}
	case *DynCast:
		return &DynCast{X: unwrapExpr(v.X), Type: unwrapType(v.Type)}
	case *New:
		return &New{Type: unwrapType(v.Type), Args: unwrapExprs(v.Args)}
	case *Conditional:
		return &Conditional{Cond: unwrapExpr(v.Cond), Then: unwrapExpr(v.Then), Else: unwrapExpr(v.Else)}
	case *Lambda:
		return &Lambda{Params: unwrapParams(v.Params), Body: unwrapFuncBody(v.Body)}
	case *This:
		return &This{}
	case *Super:
		return &Super{}
	case *Null:
		return &Null{}
	case *ErrorExpr:
		return &ErrorExpr{}
	case *NamePattern:
		return &NamePattern{Name: v.Name}
	case *AsPattern:
		return &AsPattern{Inner: unwrapPattern(v.Inner), Type: unwrapType(v.Type)}
	case *AggregatePattern:
		fields := make([]*FieldPattern, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = Unwrap(f).(*FieldPattern)
		}
		return &AggregatePattern{Name: v.Name, Fields: fields}
	case *FieldPattern:
		return &FieldPattern{Name: v.Name, Value: unwrapPattern(v.Value)}
	case *NullablePattern:
		return &NullablePattern{Inner: unwrapPattern(v.Inner)}
	case *ArrayPattern:
		elems := make([]Pattern, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = unwrapPattern(e)
		}
		return &ArrayPattern{Spread: v.Spread, Elements: elems}
	default:
		panic("ast.Unwrap: unhandled node type")
	}
}

func unwrapExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	return Unwrap(e).(Expr)
}

func unwrapExprs(es []Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = unwrapExpr(e)
	}
	return out
}

func unwrapType(t Type) Type {
	if t == nil {
		return nil
	}
	return Unwrap(t).(Type)
}

func unwrapPattern(p Pattern) Pattern {
	if p == nil {
		return nil
	}
	return Unwrap(p).(Pattern)
}

func unwrapParams(ps []*Param) []*Param {
	out := make([]*Param, len(ps))
	for i, p := range ps {
		out[i] = Unwrap(p).(*Param)
	}
	return out
}

func unwrapTypeParams(tps []*TypeParam) []*TypeParam {
	out := make([]*TypeParam, len(tps))
	for i, tp := range tps {
		out[i] = Unwrap(tp).(*TypeParam)
	}
	return out
}

func unwrapStmts(ss []Stmt) []Stmt {
	if ss == nil {
		return nil
	}
	out := make([]Stmt, len(ss))
	for i, s := range ss {
		out[i] = Unwrap(s).(Stmt)
	}
	return out
}

func unwrapBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	return &Block{Stmts: unwrapStmts(b.Stmts)}
}

func unwrapFuncBody(b *FunctionBody) *FunctionBody {
	if b == nil {
		return nil
	}
	return &FunctionBody{Block: unwrapBlock(b.Block), Expr: unwrapExpr(b.Expr)}
}
