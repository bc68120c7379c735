package exprjson

import "fmt"

// Convert lowers an expression tree into the canonical Value form. Every
// node becomes an Object whose key set is fixed by its "kind" tag, so two
// structurally equal trees always produce byte-identical encodings. Convert
// never fails: a node it does not model degrades to a "kind":"Unknown"
// object carrying the node's opaque text.
//
// Recursion depth follows the input tree. Pathologically deep trees can
// exhaust the goroutine stack.
func Convert(e Expression) Value {
	switch v := e.(type) {
	case Array:
		return NewObject().
			Set("kind", "Array").
			Set("attrs", attrsValue(v.Attrs)).
			Set("elems", exprsValue(v.Elems))
	case Assign:
		return NewObject().
			Set("kind", "Assign").
			Set("attrs", attrsValue(v.Attrs)).
			Set("left", Convert(v.Left)).
			Set("right", Convert(v.Right))
	case Async:
		return NewObject().
			Set("kind", "Async").
			Set("attrs", attrsValue(v.Attrs)).
			Set("capture", v.Capture).
			Set("block", v.Block.String())
	case Await:
		return NewObject().
			Set("kind", "Await").
			Set("attrs", attrsValue(v.Attrs)).
			Set("base", Convert(v.Base))
	case Binary:
		return NewObject().
			Set("kind", "Binary").
			Set("attrs", attrsValue(v.Attrs)).
			Set("left", Convert(v.Left)).
			Set("op", binOpText(v.Op)).
			Set("right", Convert(v.Right))
	case Block:
		return NewObject().
			Set("kind", "Block").
			Set("attrs", attrsValue(v.Attrs)).
			Set("label", labelValue(v.Label)).
			Set("block", v.Body.String())
	case Break:
		return NewObject().
			Set("kind", "Break").
			Set("attrs", attrsValue(v.Attrs)).
			Set("label", labelValue(v.Label)).
			Set("expr", optExpr(v.Expr))
	case Call:
		return NewObject().
			Set("kind", "Call").
			Set("attrs", attrsValue(v.Attrs)).
			Set("func", Convert(v.Func)).
			Set("args", exprsValue(v.Args))
	case Cast:
		return NewObject().
			Set("kind", "Cast").
			Set("attrs", attrsValue(v.Attrs)).
			Set("expr", Convert(v.Expr)).
			Set("ty", v.Ty.String())
	case Closure:
		inputs := []Value{}
		for _, in := range v.Inputs {
			inputs = append(inputs, in.String())
		}
		return NewObject().
			Set("kind", "Closure").
			Set("attrs", attrsValue(v.Attrs)).
			Set("lifetimes", optTokens(v.Lifetimes)).
			Set("constness", v.Constness).
			Set("movability", v.Movability).
			Set("asyncness", v.Asyncness).
			Set("capture", v.Capture).
			Set("inputs", inputs).
			Set("output", v.Output.String()).
			Set("body", Convert(v.Body))
	case Const:
		return NewObject().
			Set("kind", "Const").
			Set("attrs", attrsValue(v.Attrs)).
			Set("block", v.Block.String())
	case Continue:
		return NewObject().
			Set("kind", "Continue").
			Set("attrs", attrsValue(v.Attrs)).
			Set("label", labelValue(v.Label))
	case Field:
		return NewObject().
			Set("kind", "Field").
			Set("attrs", attrsValue(v.Attrs)).
			Set("base", Convert(v.Base)).
			Set("member", memberValue(v.Member))
	case ForLoop:
		return NewObject().
			Set("kind", "ForLoop").
			Set("attrs", attrsValue(v.Attrs)).
			Set("label", labelValue(v.Label)).
			Set("pat", v.Pat.String()).
			Set("expr", Convert(v.Expr)).
			Set("body", v.Body.String())
	case Group:
		return NewObject().
			Set("kind", "Group").
			Set("attrs", attrsValue(v.Attrs)).
			Set("expr", Convert(v.Expr))
	case If:
		return NewObject().
			Set("kind", "If").
			Set("attrs", attrsValue(v.Attrs)).
			Set("cond", Convert(v.Cond)).
			Set("then_branch", v.Then.String()).
			Set("else_branch", optExpr(v.Else))
	case Index:
		return NewObject().
			Set("kind", "Index").
			Set("attrs", attrsValue(v.Attrs)).
			Set("expr", Convert(v.Expr)).
			Set("index", Convert(v.Index))
	case Infer:
		return NewObject().
			Set("kind", "Infer").
			Set("attrs", attrsValue(v.Attrs))
	case Let:
		return NewObject().
			Set("kind", "Let").
			Set("attrs", attrsValue(v.Attrs)).
			Set("pat", v.Pat.String()).
			Set("expr", Convert(v.Expr))
	case Lit:
		return NewObject().
			Set("kind", "Lit").
			Set("attrs", attrsValue(v.Attrs)).
			Set("lit", litValue(v.Value))
	case Loop:
		return NewObject().
			Set("kind", "Loop").
			Set("attrs", attrsValue(v.Attrs)).
			Set("label", labelValue(v.Label)).
			Set("body", v.Body.String())
	case Macro:
		return NewObject().
			Set("kind", "Macro").
			Set("attrs", attrsValue(v.Attrs)).
			Set("mac", v.Mac.String())
	case Match:
		arms := []Value{}
		for _, a := range v.Arms {
			arms = append(arms, armValue(a))
		}
		return NewObject().
			Set("kind", "Match").
			Set("attrs", attrsValue(v.Attrs)).
			Set("expr", Convert(v.Expr)).
			Set("arms", arms)
	case MethodCall:
		return NewObject().
			Set("kind", "MethodCall").
			Set("attrs", attrsValue(v.Attrs)).
			Set("receiver", Convert(v.Receiver)).
			Set("method", v.Method).
			Set("turbofish", optTokens(v.Turbofish)).
			Set("args", exprsValue(v.Args))
	case Paren:
		return NewObject().
			Set("kind", "Paren").
			Set("attrs", attrsValue(v.Attrs)).
			Set("expr", Convert(v.Expr))
	case Path:
		return NewObject().
			Set("kind", "Path").
			Set("attrs", attrsValue(v.Attrs)).
			Set("qself", optTokens(v.Qself)).
			Set("path", v.Segments.String())
	case Range:
		limits := "HalfOpen"
		if v.Closed {
			limits = "Closed"
		}
		return NewObject().
			Set("kind", "Range").
			Set("attrs", attrsValue(v.Attrs)).
			Set("start", optExpr(v.Start)).
			Set("limits", limits).
			Set("end", optExpr(v.End))
	case RawAddr:
		return NewObject().
			Set("kind", "RawAddr").
			Set("attrs", attrsValue(v.Attrs)).
			Set("mutability", v.Mutable).
			Set("expr", Convert(v.Expr))
	case Reference:
		return NewObject().
			Set("kind", "Reference").
			Set("attrs", attrsValue(v.Attrs)).
			Set("mutability", v.Mutable).
			Set("expr", Convert(v.Expr))
	case Repeat:
		return NewObject().
			Set("kind", "Repeat").
			Set("attrs", attrsValue(v.Attrs)).
			Set("expr", Convert(v.Expr)).
			Set("len", Convert(v.Len))
	case Return:
		return NewObject().
			Set("kind", "Return").
			Set("attrs", attrsValue(v.Attrs)).
			Set("expr", optExpr(v.Expr))
	case Struct:
		fields := []Value{}
		for _, f := range v.Fields {
			fields = append(fields, fieldValue(f))
		}
		return NewObject().
			Set("kind", "Struct").
			Set("attrs", attrsValue(v.Attrs)).
			Set("qself", optTokens(v.Qself)).
			Set("path", v.Path.String()).
			Set("fields", fields).
			Set("dot2_token", v.Dot2).
			Set("rest", optExpr(v.Rest))
	case Try:
		return NewObject().
			Set("kind", "Try").
			Set("attrs", attrsValue(v.Attrs)).
			Set("expr", Convert(v.Expr))
	case TryBlock:
		return NewObject().
			Set("kind", "TryBlock").
			Set("attrs", attrsValue(v.Attrs)).
			Set("block", v.Block.String())
	case Tuple:
		return NewObject().
			Set("kind", "Tuple").
			Set("attrs", attrsValue(v.Attrs)).
			Set("elems", exprsValue(v.Elems))
	case Unary:
		return NewObject().
			Set("kind", "Unary").
			Set("attrs", attrsValue(v.Attrs)).
			Set("op", unOpText(v.Op)).
			Set("expr", Convert(v.Expr))
	case Unsafe:
		return NewObject().
			Set("kind", "Unsafe").
			Set("attrs", attrsValue(v.Attrs)).
			Set("block", v.Block.String())
	case Verbatim:
		return NewObject().
			Set("kind", "Verbatim").
			Set("tokens", v.Toks.String())
	case While:
		return NewObject().
			Set("kind", "While").
			Set("attrs", attrsValue(v.Attrs)).
			Set("label", labelValue(v.Label)).
			Set("cond", Convert(v.Cond)).
			Set("body", v.Body.String())
	case Yield:
		return NewObject().
			Set("kind", "Yield").
			Set("attrs", attrsValue(v.Attrs)).
			Set("expr", optExpr(v.Expr))
	}

	return NewObject().
		Set("kind", "Unknown").
		Set("tokens", opaqueText(e))
}

// The closed operator tables. A value outside the table passes through
// verbatim so the output stays total over hand-built trees.
var binOpSymbols = map[BinOp]string{
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpRem:       "%",
	OpAnd:       "&&",
	OpOr:        "||",
	OpBitXor:    "^",
	OpBitAnd:    "&",
	OpBitOr:     "|",
	OpShl:       "<<",
	OpShr:       ">>",
	OpEq:        "==",
	OpLt:        "<",
	OpLe:        "<=",
	OpNe:        "!=",
	OpGe:        ">=",
	OpGt:        ">",
	OpAddAssign: "+=",
	OpSubAssign: "-=",
	OpMulAssign: "*=",
	OpDivAssign: "/=",
	OpRemAssign: "%=",
	OpXorAssign: "^=",
	OpAndAssign: "&=",
	OpOrAssign:  "|=",
	OpShlAssign: "<<=",
	OpShrAssign: ">>=",
}

var unOpSymbols = map[UnOp]string{
	OpDeref: "*",
	OpNot:   "!",
	OpNeg:   "-",
}

func binOpText(op BinOp) string {
	if s, ok := binOpSymbols[op]; ok {
		return s
	}
	return string(op)
}

func unOpText(op UnOp) string {
	if s, ok := unOpSymbols[op]; ok {
		return s
	}
	return string(op)
}

func attrsValue(attrs []Tokens) Value {
	out := []Value{}
	for _, a := range attrs {
		out = append(out, a.String())
	}
	return out
}

func exprsValue(exprs []Expression) Value {
	out := []Value{}
	for _, e := range exprs {
		out = append(out, Convert(e))
	}
	return out
}

func optExpr(e Expression) Value {
	if e == nil {
		return nil
	}
	return Convert(e)
}

func optTokens(t Tokens) Value {
	if t == nil {
		return nil
	}
	return t.String()
}

func labelValue(label string) Value {
	if label == "" {
		return nil
	}
	return label
}

func memberValue(m Member) Value {
	if m.Named {
		return NewObject().
			Set("kind", "Named").
			Set("name", m.Name)
	}
	return NewObject().
		Set("kind", "Unnamed").
		Set("index", m.Index)
}

func armValue(a Arm) Value {
	return NewObject().
		Set("attrs", attrsValue(a.Attrs)).
		Set("pat", a.Pat.String()).
		Set("guard", optExpr(a.Guard)).
		Set("body", Convert(a.Body))
}

func fieldValue(f FieldValue) Value {
	return NewObject().
		Set("attrs", attrsValue(f.Attrs)).
		Set("member", memberValue(f.Member)).
		Set("expr", Convert(f.Expr))
}

func litValue(l LitValue) Value {
	switch v := l.(type) {
	case LitStr:
		return NewObject().
			Set("kind", "Str").
			Set("value", v.Value).
			Set("suffix", v.Suffix)
	case LitByteStr:
		return NewObject().
			Set("kind", "ByteStr").
			Set("value", bytesValue(v.Value)).
			Set("suffix", v.Suffix)
	case LitCStr:
		return NewObject().
			Set("kind", "CStr").
			Set("value", v.Value).
			Set("suffix", v.Suffix)
	case LitByte:
		return NewObject().
			Set("kind", "Byte").
			Set("value", int(v.Value)).
			Set("suffix", v.Suffix)
	case LitChar:
		return NewObject().
			Set("kind", "Char").
			Set("value", string(v.Value)).
			Set("suffix", v.Suffix)
	case LitInt:
		return NewObject().
			Set("kind", "Int").
			Set("value", v.Digits).
			Set("suffix", v.Suffix)
	case LitFloat:
		return NewObject().
			Set("kind", "Float").
			Set("value", v.Digits).
			Set("suffix", v.Suffix)
	case LitBool:
		return NewObject().
			Set("kind", "Bool").
			Set("value", v.Value)
	case LitVerbatim:
		return NewObject().
			Set("kind", "Verbatim").
			Set("tokens", v.Toks.String())
	}
	return NewObject().
		Set("kind", "Unknown").
		Set("tokens", fmt.Sprintf("%v", l))
}

func bytesValue(b []byte) Value {
	out := []Value{}
	for _, x := range b {
		out = append(out, int(x))
	}
	return out
}
