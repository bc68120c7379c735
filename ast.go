package exprjson

// Expression is one node of a parsed expression tree. The variant set
// mirrors the source grammar and is expected to grow; Convert handles
// values outside this file through its fallback arm.
type Expression interface {
	is_Expression()
}

// BinOp is the source token of a binary or compound-assignment operator.
type BinOp string

const (
	OpAdd       BinOp = "+"
	OpSub       BinOp = "-"
	OpMul       BinOp = "*"
	OpDiv       BinOp = "/"
	OpRem       BinOp = "%"
	OpAnd       BinOp = "&&"
	OpOr        BinOp = "||"
	OpBitXor    BinOp = "^"
	OpBitAnd    BinOp = "&"
	OpBitOr     BinOp = "|"
	OpShl       BinOp = "<<"
	OpShr       BinOp = ">>"
	OpEq        BinOp = "=="
	OpLt        BinOp = "<"
	OpLe        BinOp = "<="
	OpNe        BinOp = "!="
	OpGe        BinOp = ">="
	OpGt        BinOp = ">"
	OpAddAssign BinOp = "+="
	OpSubAssign BinOp = "-="
	OpMulAssign BinOp = "*="
	OpDivAssign BinOp = "/="
	OpRemAssign BinOp = "%="
	OpXorAssign BinOp = "^="
	OpAndAssign BinOp = "&="
	OpOrAssign  BinOp = "|="
	OpShlAssign BinOp = "<<="
	OpShrAssign BinOp = ">>="
)

// UnOp is the source token of a unary operator.
type UnOp string

const (
	OpDeref UnOp = "*"
	OpNot   UnOp = "!"
	OpNeg   UnOp = "-"
)

// Member names a struct field or a tuple position.
type Member struct {
	Name  string
	Index int
	Named bool
}

// Arm is one alternative of a Match expression.
type Arm struct {
	Attrs []Tokens
	Pat   Tokens
	Guard Expression
	Body  Expression
}

// FieldValue is one initializer of a Struct expression.
type FieldValue struct {
	Attrs  []Tokens
	Member Member
	Expr   Expression
}

type Array struct {
	Attrs []Tokens
	Elems []Expression
}

func (v Array) is_Expression() {}

type Assign struct {
	Attrs []Tokens
	Left  Expression
	Right Expression
}

func (v Assign) is_Expression() {}

type Async struct {
	Attrs   []Tokens
	Capture bool
	Block   Tokens
}

func (v Async) is_Expression() {}

type Await struct {
	Attrs []Tokens
	Base  Expression
}

func (v Await) is_Expression() {}

type Binary struct {
	Attrs []Tokens
	Left  Expression
	Op    BinOp
	Right Expression
}

func (v Binary) is_Expression() {}

type Block struct {
	Attrs []Tokens
	Label string
	Body  Tokens
}

func (v Block) is_Expression() {}

type Break struct {
	Attrs []Tokens
	Label string
	Expr  Expression
}

func (v Break) is_Expression() {}

type Call struct {
	Attrs []Tokens
	Func  Expression
	Args  []Expression
}

func (v Call) is_Expression() {}

type Cast struct {
	Attrs []Tokens
	Expr  Expression
	Ty    Tokens
}

func (v Cast) is_Expression() {}

type Closure struct {
	Attrs      []Tokens
	Lifetimes  Tokens
	Constness  bool
	Movability bool
	Asyncness  bool
	Capture    bool
	Inputs     []Tokens
	Output     Tokens
	Body       Expression
}

func (v Closure) is_Expression() {}

type Const struct {
	Attrs []Tokens
	Block Tokens
}

func (v Const) is_Expression() {}

type Continue struct {
	Attrs []Tokens
	Label string
}

func (v Continue) is_Expression() {}

type Field struct {
	Attrs  []Tokens
	Base   Expression
	Member Member
}

func (v Field) is_Expression() {}

type ForLoop struct {
	Attrs []Tokens
	Label string
	Pat   Tokens
	Expr  Expression
	Body  Tokens
}

func (v ForLoop) is_Expression() {}

type Group struct {
	Attrs []Tokens
	Expr  Expression
}

func (v Group) is_Expression() {}

type If struct {
	Attrs []Tokens
	Cond  Expression
	Then  Tokens
	Else  Expression
}

func (v If) is_Expression() {}

type Index struct {
	Attrs []Tokens
	Expr  Expression
	Index Expression
}

func (v Index) is_Expression() {}

type Infer struct {
	Attrs []Tokens
}

func (v Infer) is_Expression() {}

type Let struct {
	Attrs []Tokens
	Pat   Tokens
	Expr  Expression
}

func (v Let) is_Expression() {}

type Lit struct {
	Attrs []Tokens
	Value LitValue
}

func (v Lit) is_Expression() {}

type Loop struct {
	Attrs []Tokens
	Label string
	Body  Tokens
}

func (v Loop) is_Expression() {}

type Macro struct {
	Attrs []Tokens
	Mac   Tokens
}

func (v Macro) is_Expression() {}

type Match struct {
	Attrs []Tokens
	Expr  Expression
	Arms  []Arm
}

func (v Match) is_Expression() {}

type MethodCall struct {
	Attrs     []Tokens
	Receiver  Expression
	Method    string
	Turbofish Tokens
	Args      []Expression
}

func (v MethodCall) is_Expression() {}

type Paren struct {
	Attrs []Tokens
	Expr  Expression
}

func (v Paren) is_Expression() {}

type Path struct {
	Attrs    []Tokens
	Qself    Tokens
	Segments Tokens
}

func (v Path) is_Expression() {}

type Range struct {
	Attrs  []Tokens
	Start  Expression
	Closed bool
	End    Expression
}

func (v Range) is_Expression() {}

type RawAddr struct {
	Attrs   []Tokens
	Mutable bool
	Expr    Expression
}

func (v RawAddr) is_Expression() {}

type Reference struct {
	Attrs   []Tokens
	Mutable bool
	Expr    Expression
}

func (v Reference) is_Expression() {}

type Repeat struct {
	Attrs []Tokens
	Expr  Expression
	Len   Expression
}

func (v Repeat) is_Expression() {}

type Return struct {
	Attrs []Tokens
	Expr  Expression
}

func (v Return) is_Expression() {}

type Struct struct {
	Attrs  []Tokens
	Qself  Tokens
	Path   Tokens
	Fields []FieldValue
	Dot2   bool
	Rest   Expression
}

func (v Struct) is_Expression() {}

type Try struct {
	Attrs []Tokens
	Expr  Expression
}

func (v Try) is_Expression() {}

type TryBlock struct {
	Attrs []Tokens
	Block Tokens
}

func (v TryBlock) is_Expression() {}

type Tuple struct {
	Attrs []Tokens
	Elems []Expression
}

func (v Tuple) is_Expression() {}

type Unary struct {
	Attrs []Tokens
	Op    UnOp
	Expr  Expression
}

func (v Unary) is_Expression() {}

type Unsafe struct {
	Attrs []Tokens
	Block Tokens
}

func (v Unsafe) is_Expression() {}

type Verbatim struct {
	Toks Tokens
}

func (v Verbatim) is_Expression() {}

type While struct {
	Attrs []Tokens
	Label string
	Cond  Expression
	Body  Tokens
}

func (v While) is_Expression() {}

type Yield struct {
	Attrs []Tokens
	Expr  Expression
}

func (v Yield) is_Expression() {}

// LitValue is the decoded payload of a Lit expression.
type LitValue interface {
	is_Lit()
}

type LitStr struct {
	Value  string
	Suffix string
}

func (v LitStr) is_Lit() {}

type LitByteStr struct {
	Value  []byte
	Suffix string
}

func (v LitByteStr) is_Lit() {}

type LitCStr struct {
	Value  string
	Suffix string
}

func (v LitCStr) is_Lit() {}

type LitByte struct {
	Value  byte
	Suffix string
}

func (v LitByte) is_Lit() {}

type LitChar struct {
	Value  rune
	Suffix string
}

func (v LitChar) is_Lit() {}

// LitInt keeps the digits exactly as written, radix prefix and
// underscores included. They are never reparsed into a machine number.
type LitInt struct {
	Digits string
	Suffix string
}

func (v LitInt) is_Lit() {}

type LitFloat struct {
	Digits string
	Suffix string
}

func (v LitFloat) is_Lit() {}

type LitBool struct {
	Value bool
}

func (v LitBool) is_Lit() {}

type LitVerbatim struct {
	Toks Tokens
}

func (v LitVerbatim) is_Lit() {}

func withAttrs(e Expression, attrs []Tokens) Expression {
	switch v := e.(type) {
	case Array:
		v.Attrs = attrs
		return v
	case Assign:
		v.Attrs = attrs
		return v
	case Async:
		v.Attrs = attrs
		return v
	case Await:
		v.Attrs = attrs
		return v
	case Binary:
		v.Attrs = attrs
		return v
	case Block:
		v.Attrs = attrs
		return v
	case Break:
		v.Attrs = attrs
		return v
	case Call:
		v.Attrs = attrs
		return v
	case Cast:
		v.Attrs = attrs
		return v
	case Closure:
		v.Attrs = attrs
		return v
	case Const:
		v.Attrs = attrs
		return v
	case Continue:
		v.Attrs = attrs
		return v
	case Field:
		v.Attrs = attrs
		return v
	case ForLoop:
		v.Attrs = attrs
		return v
	case Group:
		v.Attrs = attrs
		return v
	case If:
		v.Attrs = attrs
		return v
	case Index:
		v.Attrs = attrs
		return v
	case Infer:
		v.Attrs = attrs
		return v
	case Let:
		v.Attrs = attrs
		return v
	case Lit:
		v.Attrs = attrs
		return v
	case Loop:
		v.Attrs = attrs
		return v
	case Macro:
		v.Attrs = attrs
		return v
	case Match:
		v.Attrs = attrs
		return v
	case MethodCall:
		v.Attrs = attrs
		return v
	case Paren:
		v.Attrs = attrs
		return v
	case Path:
		v.Attrs = attrs
		return v
	case Range:
		v.Attrs = attrs
		return v
	case RawAddr:
		v.Attrs = attrs
		return v
	case Reference:
		v.Attrs = attrs
		return v
	case Repeat:
		v.Attrs = attrs
		return v
	case Return:
		v.Attrs = attrs
		return v
	case Struct:
		v.Attrs = attrs
		return v
	case Try:
		v.Attrs = attrs
		return v
	case TryBlock:
		v.Attrs = attrs
		return v
	case Tuple:
		v.Attrs = attrs
		return v
	case Unary:
		v.Attrs = attrs
		return v
	case Unsafe:
		v.Attrs = attrs
		return v
	case While:
		v.Attrs = attrs
		return v
	case Yield:
		v.Attrs = attrs
		return v
	}
	return e
}
