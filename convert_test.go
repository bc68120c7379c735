package exprjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convertSrc(t *testing.T, src string) *Object {
	t.Helper()
	return Convert(parseExpr(t, src)).(*Object)
}

func child(t *testing.T, o *Object, key string) *Object {
	t.Helper()
	c, ok := o.Get(key).(*Object)
	require.True(t, ok, "key %q is not an object", key)
	return c
}

func children(t *testing.T, o *Object, key string) []Value {
	t.Helper()
	c, ok := o.Get(key).([]Value)
	require.True(t, ok, "key %q is not an array", key)
	return c
}

func TestConvertLiterals(t *testing.T) {
	for _, tc := range []struct {
		src    string
		kind   string
		value  Value
		suffix string
	}{
		{"42", "Int", "42", ""},
		{"0", "Int", "0", ""},
		{"1_000u32", "Int", "1_000", "u32"},
		{"0xFF", "Int", "0xFF", ""},
		{"0o77", "Int", "0o77", ""},
		{"0b1010_1010", "Int", "0b1010_1010", ""},
		{"9u8", "Int", "9", "u8"},
		{"3.14", "Float", "3.14", ""},
		{"2.5f32", "Float", "2.5", "f32"},
		{"1e10", "Float", "1e10", ""},
		{"2.5e-3", "Float", "2.5e-3", ""},
		{"3f64", "Float", "3", "f64"},
		{`"hello"`, "Str", "hello", ""},
		{`"line\nbreak"`, "Str", "line\nbreak", ""},
		{`r#"raw "inner""#`, "Str", `raw "inner"`, ""},
		{`c"hi"`, "CStr", "hi", ""},
		{"'q'", "Char", "q", ""},
		{`'\t'`, "Char", "\t", ""},
	} {
		o := convertSrc(t, tc.src)
		require.Equal(t, "Lit", o.Get("kind"), tc.src)
		lit := child(t, o, "lit")
		assert.Equal(t, tc.kind, lit.Get("kind"), tc.src)
		assert.Equal(t, tc.value, lit.Get("value"), tc.src)
		assert.Equal(t, tc.suffix, lit.Get("suffix"), tc.src)
	}
}

func TestConvertBoolLiteral(t *testing.T) {
	lit := child(t, convertSrc(t, "true"), "lit")
	assert.Equal(t, "Bool", lit.Get("kind"))
	assert.Equal(t, true, lit.Get("value"))
	assert.False(t, lit.Has("suffix"))

	lit = child(t, convertSrc(t, "false"), "lit")
	assert.Equal(t, false, lit.Get("value"))
}

func TestConvertByteLiterals(t *testing.T) {
	lit := child(t, convertSrc(t, "b'a'"), "lit")
	assert.Equal(t, "Byte", lit.Get("kind"))
	assert.Equal(t, 97, lit.Get("value"))

	lit = child(t, convertSrc(t, `b"ab"`), "lit")
	assert.Equal(t, "ByteStr", lit.Get("kind"))
	assert.Equal(t, []Value{97, 98}, lit.Get("value"))

	lit = child(t, convertSrc(t, `b"\x00\xff"`), "lit")
	assert.Equal(t, []Value{0, 255}, lit.Get("value"))
}

func TestConvertBinaryOperators(t *testing.T) {
	ops := []string{
		"+", "-", "*", "/", "%", "&&", "||", "^", "&", "|",
		"<<", ">>", "==", "<", "<=", "!=", ">=", ">",
		"+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=", "<<=", ">>=",
	}
	for _, op := range ops {
		o := convertSrc(t, "a "+op+" b")
		require.Equal(t, "Binary", o.Get("kind"), op)
		assert.Equal(t, op, o.Get("op"), op)
		assert.Equal(t, "a", child(t, o, "left").Get("path"))
		assert.Equal(t, "b", child(t, o, "right").Get("path"))
	}
}

func TestConvertUnaryOperators(t *testing.T) {
	for _, op := range []string{"-", "!", "*"} {
		o := convertSrc(t, op+"x")
		require.Equal(t, "Unary", o.Get("kind"), op)
		assert.Equal(t, op, o.Get("op"), op)
	}
}

func TestConvertAssign(t *testing.T) {
	o := convertSrc(t, "a = b")
	assert.Equal(t, "Assign", o.Get("kind"))
	assert.Equal(t, "a", child(t, o, "left").Get("path"))
	assert.Equal(t, "b", child(t, o, "right").Get("path"))
}

func TestConvertNestedParens(t *testing.T) {
	o := convertSrc(t, "((((a + b))))")
	for i := 0; i < 4; i++ {
		require.Equal(t, "Paren", o.Get("kind"), "depth %d", i)
		o = child(t, o, "expr")
	}
	assert.Equal(t, "Binary", o.Get("kind"))
}

func TestConvertCast(t *testing.T) {
	o := convertSrc(t, "x as i32")
	assert.Equal(t, "Cast", o.Get("kind"))
	assert.Equal(t, "i32", o.Get("ty"))

	o = convertSrc(t, "v as Vec<u8>")
	assert.Equal(t, "Vec < u8 >", o.Get("ty"))

	o = convertSrc(t, "p as *const u8")
	assert.Equal(t, "* const u8", o.Get("ty"))
}

func TestConvertCallArgumentOrder(t *testing.T) {
	o := convertSrc(t, "f(1, 2, 3)")
	require.Equal(t, "Call", o.Get("kind"))
	assert.Equal(t, "f", child(t, o, "func").Get("path"))
	args := children(t, o, "args")
	require.Len(t, args, 3)
	for i, want := range []string{"1", "2", "3"} {
		lit := child(t, args[i].(*Object), "lit")
		assert.Equal(t, want, lit.Get("value"))
	}
}

func TestConvertMethodCall(t *testing.T) {
	o := convertSrc(t, "x.frob(y)")
	require.Equal(t, "MethodCall", o.Get("kind"))
	assert.Equal(t, "frob", o.Get("method"))
	assert.Nil(t, o.Get("turbofish"))
	assert.Len(t, children(t, o, "args"), 1)

	o = convertSrc(t, "x.parse::<i32>()")
	assert.Equal(t, ":: < i32 >", o.Get("turbofish"))
	assert.Len(t, children(t, o, "args"), 0)
}

func TestConvertFieldAccess(t *testing.T) {
	o := convertSrc(t, "s.name")
	require.Equal(t, "Field", o.Get("kind"))
	m := child(t, o, "member")
	assert.Equal(t, "Named", m.Get("kind"))
	assert.Equal(t, "name", m.Get("name"))

	o = convertSrc(t, "t.0")
	m = child(t, o, "member")
	assert.Equal(t, "Unnamed", m.Get("kind"))
	assert.Equal(t, 0, m.Get("index"))

	// a chained pair of tuple indices arrives as one float token
	o = convertSrc(t, "t.0.1")
	m = child(t, o, "member")
	assert.Equal(t, 1, m.Get("index"))
	inner := child(t, o, "base")
	require.Equal(t, "Field", inner.Get("kind"))
	assert.Equal(t, 0, child(t, inner, "member").Get("index"))
}

func TestConvertAwaitTryIndex(t *testing.T) {
	o := convertSrc(t, "fut.await")
	assert.Equal(t, "Await", o.Get("kind"))

	o = convertSrc(t, "res?")
	assert.Equal(t, "Try", o.Get("kind"))

	o = convertSrc(t, "v[0]")
	assert.Equal(t, "Index", o.Get("kind"))
	assert.Equal(t, "Lit", child(t, o, "index").Get("kind"))

	o = convertSrc(t, "v[1..3]")
	assert.Equal(t, "Range", child(t, o, "index").Get("kind"))
}

func TestConvertPaths(t *testing.T) {
	o := convertSrc(t, "x")
	require.Equal(t, "Path", o.Get("kind"))
	assert.Nil(t, o.Get("qself"))
	assert.Equal(t, "x", o.Get("path"))

	o = convertSrc(t, "std::mem::swap")
	assert.Equal(t, "std :: mem :: swap", o.Get("path"))

	o = convertSrc(t, "::core::ptr::null")
	assert.Equal(t, ":: core :: ptr :: null", o.Get("path"))

	o = convertSrc(t, "Vec::<i32>::new")
	assert.Equal(t, "Vec :: < i32 > :: new", o.Get("path"))

	o = convertSrc(t, "<T as Default>::default")
	assert.Equal(t, "< T as Default >", o.Get("qself"))
	assert.Equal(t, "default", o.Get("path"))
}

func TestConvertStructLiterals(t *testing.T) {
	o := convertSrc(t, "Point { x: 1, y: 2 }")
	require.Equal(t, "Struct", o.Get("kind"))
	assert.Equal(t, "Point", o.Get("path"))
	assert.Equal(t, false, o.Get("dot2_token"))
	assert.Nil(t, o.Get("rest"))
	fields := children(t, o, "fields")
	require.Len(t, fields, 2)
	first := fields[0].(*Object)
	assert.Equal(t, "x", child(t, first, "member").Get("name"))
	assert.Equal(t, "1", child(t, child(t, first, "expr"), "lit").Get("value"))

	o = convertSrc(t, "Point { x, ..rest }")
	fields = children(t, o, "fields")
	require.Len(t, fields, 1)
	shorthand := child(t, fields[0].(*Object), "expr")
	assert.Equal(t, "x", shorthand.Get("path"))
	assert.Equal(t, true, o.Get("dot2_token"))
	assert.Equal(t, "rest", child(t, o, "rest").Get("path"))

	o = convertSrc(t, "Point { ..base }")
	assert.Len(t, children(t, o, "fields"), 0)
	assert.Equal(t, true, o.Get("dot2_token"))
}

func TestConvertIfElse(t *testing.T) {
	o := convertSrc(t, "if x > 0 { x } else { -x }")
	require.Equal(t, "If", o.Get("kind"))
	cond := child(t, o, "cond")
	assert.Equal(t, "Binary", cond.Get("kind"))
	assert.Equal(t, ">", cond.Get("op"))
	assert.Equal(t, "{ x }", o.Get("then_branch"))
	els := child(t, o, "else_branch")
	assert.Equal(t, "Block", els.Get("kind"))
	assert.Equal(t, "{ - x }", els.Get("block"))

	o = convertSrc(t, "if a { 1 } else if b { 2 } else { 3 }")
	els = child(t, o, "else_branch")
	assert.Equal(t, "If", els.Get("kind"))
	assert.Equal(t, "Block", child(t, els, "else_branch").Get("kind"))

	o = convertSrc(t, "if done { 1 }")
	assert.Nil(t, o.Get("else_branch"))
}

func TestConvertMatch(t *testing.T) {
	o := convertSrc(t, "match x { 0 => zero, n if n > 0 => pos, _ => neg }")
	require.Equal(t, "Match", o.Get("kind"))
	arms := children(t, o, "arms")
	require.Len(t, arms, 3)

	first := arms[0].(*Object)
	assert.Equal(t, "0", first.Get("pat"))
	assert.Nil(t, first.Get("guard"))
	assert.Equal(t, "zero", child(t, first, "body").Get("path"))

	second := arms[1].(*Object)
	assert.Equal(t, "n", second.Get("pat"))
	guard := child(t, second, "guard")
	assert.Equal(t, "Binary", guard.Get("kind"))

	third := arms[2].(*Object)
	assert.Equal(t, "_", third.Get("pat"))
}

func TestConvertLoops(t *testing.T) {
	o := convertSrc(t, "loop { tick() }")
	require.Equal(t, "Loop", o.Get("kind"))
	assert.Nil(t, o.Get("label"))
	assert.Equal(t, "{ tick ( ) }", o.Get("body"))

	o = convertSrc(t, "'outer: loop { }")
	assert.Equal(t, "outer", o.Get("label"))

	o = convertSrc(t, "while ready { step() }")
	require.Equal(t, "While", o.Get("kind"))
	assert.Equal(t, "ready", child(t, o, "cond").Get("path"))

	o = convertSrc(t, "for i in 0..10 { go(i) }")
	require.Equal(t, "ForLoop", o.Get("kind"))
	assert.Equal(t, "i", o.Get("pat"))
	assert.Equal(t, "Range", child(t, o, "expr").Get("kind"))
	assert.Equal(t, "{ go ( i ) }", o.Get("body"))
}

func TestConvertJumps(t *testing.T) {
	o := convertSrc(t, "break")
	require.Equal(t, "Break", o.Get("kind"))
	assert.Nil(t, o.Get("label"))
	assert.Nil(t, o.Get("expr"))

	o = convertSrc(t, "break 'outer 42")
	assert.Equal(t, "outer", o.Get("label"))
	assert.Equal(t, "Lit", child(t, o, "expr").Get("kind"))

	o = convertSrc(t, "continue 'outer")
	require.Equal(t, "Continue", o.Get("kind"))
	assert.Equal(t, "outer", o.Get("label"))

	o = convertSrc(t, "return")
	require.Equal(t, "Return", o.Get("kind"))
	assert.Nil(t, o.Get("expr"))

	o = convertSrc(t, "return value")
	assert.Equal(t, "value", child(t, o, "expr").Get("path"))

	o = convertSrc(t, "yield item")
	require.Equal(t, "Yield", o.Get("kind"))
	assert.Equal(t, "item", child(t, o, "expr").Get("path"))
}

func TestConvertRanges(t *testing.T) {
	o := convertSrc(t, "0..10")
	require.Equal(t, "Range", o.Get("kind"))
	assert.Equal(t, "HalfOpen", o.Get("limits"))
	assert.NotNil(t, o.Get("start"))
	assert.NotNil(t, o.Get("end"))

	o = convertSrc(t, "1..=5")
	assert.Equal(t, "Closed", o.Get("limits"))

	o = convertSrc(t, "..")
	assert.Nil(t, o.Get("start"))
	assert.Nil(t, o.Get("end"))
}

func TestConvertClosures(t *testing.T) {
	o := convertSrc(t, "|x| x * 2")
	require.Equal(t, "Closure", o.Get("kind"))
	assert.Equal(t, []Value{"x"}, o.Get("inputs"))
	assert.Equal(t, "", o.Get("output"))
	assert.Equal(t, false, o.Get("capture"))
	assert.Equal(t, "Binary", child(t, o, "body").Get("kind"))

	o = convertSrc(t, "move || drop(handle)")
	assert.Equal(t, true, o.Get("capture"))
	assert.Equal(t, []Value{}, o.Get("inputs"))

	o = convertSrc(t, "|a: u8, b: u8| -> u8 { a + b }")
	assert.Equal(t, []Value{"a : u8", "b : u8"}, o.Get("inputs"))
	assert.Equal(t, "u8", o.Get("output"))
	assert.Equal(t, "Block", child(t, o, "body").Get("kind"))

	o = convertSrc(t, "async move |x| x")
	assert.Equal(t, true, o.Get("asyncness"))
	assert.Equal(t, true, o.Get("capture"))
	assert.Equal(t, false, o.Get("constness"))
	assert.Equal(t, false, o.Get("movability"))
}

func TestConvertBlockForms(t *testing.T) {
	o := convertSrc(t, "{ a; b }")
	require.Equal(t, "Block", o.Get("kind"))
	assert.Nil(t, o.Get("label"))
	assert.Equal(t, "{ a ; b }", o.Get("block"))

	o = convertSrc(t, "'b: { 1 }")
	assert.Equal(t, "b", o.Get("label"))

	o = convertSrc(t, "unsafe { *p }")
	require.Equal(t, "Unsafe", o.Get("kind"))
	assert.Equal(t, "{ * p }", o.Get("block"))

	o = convertSrc(t, "const { N * 2 }")
	require.Equal(t, "Const", o.Get("kind"))

	o = convertSrc(t, "try { run()? }")
	require.Equal(t, "TryBlock", o.Get("kind"))
	assert.Equal(t, "{ run ( ) ? }", o.Get("block"))

	o = convertSrc(t, "async { fetch().await }")
	require.Equal(t, "Async", o.Get("kind"))
	assert.Equal(t, false, o.Get("capture"))

	o = convertSrc(t, "async move { fetch().await }")
	assert.Equal(t, true, o.Get("capture"))
}

func TestConvertLetAndInfer(t *testing.T) {
	o := convertSrc(t, "let Some(x) = opt")
	require.Equal(t, "Let", o.Get("kind"))
	assert.Equal(t, "Some ( x )", o.Get("pat"))
	assert.Equal(t, "opt", child(t, o, "expr").Get("path"))

	o = convertSrc(t, "_")
	assert.Equal(t, "Infer", o.Get("kind"))
}

func TestConvertMacros(t *testing.T) {
	o := convertSrc(t, "vec![1, 2]")
	require.Equal(t, "Macro", o.Get("kind"))
	assert.Equal(t, "vec ! [ 1 , 2 ]", o.Get("mac"))

	o = convertSrc(t, `println!("hi")`)
	assert.Equal(t, `println ! ( "hi" )`, o.Get("mac"))
}

func TestConvertArraysAndRepeat(t *testing.T) {
	o := convertSrc(t, "[1, 2, 3]")
	require.Equal(t, "Array", o.Get("kind"))
	assert.Len(t, children(t, o, "elems"), 3)

	o = convertSrc(t, "[]")
	assert.Equal(t, []Value{}, o.Get("elems"))

	o = convertSrc(t, "[0u8; 64]")
	require.Equal(t, "Repeat", o.Get("kind"))
	assert.Equal(t, "Lit", child(t, o, "expr").Get("kind"))
	assert.Equal(t, "64", child(t, child(t, o, "len"), "lit").Get("value"))
}

func TestConvertReferences(t *testing.T) {
	o := convertSrc(t, "&x")
	require.Equal(t, "Reference", o.Get("kind"))
	assert.Equal(t, false, o.Get("mutability"))

	o = convertSrc(t, "&mut x")
	assert.Equal(t, true, o.Get("mutability"))

	o = convertSrc(t, "&raw const x")
	require.Equal(t, "RawAddr", o.Get("kind"))
	assert.Equal(t, false, o.Get("mutability"))

	o = convertSrc(t, "&raw mut x")
	assert.Equal(t, true, o.Get("mutability"))
}

func TestConvertAttributes(t *testing.T) {
	o := convertSrc(t, "#[allow(unused)] compute()")
	require.Equal(t, "Call", o.Get("kind"))
	assert.Equal(t, []Value{"# [ allow ( unused ) ]"}, o.Get("attrs"))

	o = convertSrc(t, "x")
	assert.Equal(t, []Value{}, o.Get("attrs"))
}

type mysteryExpr struct{}

func (mysteryExpr) is_Expression() {}

type spelledMystery struct{}

func (spelledMystery) is_Expression()       {}
func (spelledMystery) OpaqueTokens() Tokens { return Tokens{"@", "novel"} }

func TestConvertUnknownNode(t *testing.T) {
	o := Convert(mysteryExpr{}).(*Object)
	assert.Equal(t, "Unknown", o.Get("kind"))
	assert.Equal(t, []string{"kind", "tokens"}, o.Keys())

	o = Convert(spelledMystery{}).(*Object)
	assert.Equal(t, "Unknown", o.Get("kind"))
	assert.Equal(t, "@ novel", o.Get("tokens"))
}

func TestConvertGroupAndVerbatim(t *testing.T) {
	o := Convert(Group{Expr: Lit{Value: LitInt{Digits: "1"}}}).(*Object)
	assert.Equal(t, "Group", o.Get("kind"))
	assert.Equal(t, "Lit", child(t, o, "expr").Get("kind"))

	o = Convert(Verbatim{Toks: Tokens{"weird", "tokens"}}).(*Object)
	assert.Equal(t, "Verbatim", o.Get("kind"))
	assert.Equal(t, "weird tokens", o.Get("tokens"))
}

func TestConvertSpacingInsensitive(t *testing.T) {
	a, err := Encode(Convert(parseExpr(t, "if x>0 {x} else {-x}")))
	require.NoError(t, err)
	b, err := Encode(Convert(parseExpr(t, "if x > 0 { x }\nelse { -x }")))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestConvertDeterministic(t *testing.T) {
	src := "items.iter().map(|x| x * 2).collect::<Vec<_>>()"
	a, err := Encode(Convert(parseExpr(t, src)))
	require.NoError(t, err)
	b, err := Encode(Convert(parseExpr(t, src)))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestEncodeExact(t *testing.T) {
	out, err := Encode(Convert(parseExpr(t, "42")))
	require.NoError(t, err)
	assert.Equal(t,
		`{"kind":"Lit","attrs":[],"lit":{"kind":"Int","value":"42","suffix":""}}`,
		string(out))
}

func TestConvertIteratorChain(t *testing.T) {
	o := convertSrc(t, "items.iter().map(|x| x * 2).collect::<Vec<_>>()")
	require.Equal(t, "MethodCall", o.Get("kind"))
	assert.Equal(t, "collect", o.Get("method"))
	assert.Equal(t, ":: < Vec < _ > >", o.Get("turbofish"))

	mapCall := child(t, o, "receiver")
	assert.Equal(t, "map", mapCall.Get("method"))
	closure := children(t, mapCall, "args")[0].(*Object)
	assert.Equal(t, "Closure", closure.Get("kind"))

	iter := child(t, mapCall, "receiver")
	assert.Equal(t, "iter", iter.Get("method"))
	assert.Equal(t, "items", child(t, iter, "receiver").Get("path"))
}

func TestConvertVariantTags(t *testing.T) {
	for src, tag := range map[string]string{
		"[1]":             "Array",
		"a = b":           "Assign",
		"async { }":       "Async",
		"f.await":         "Await",
		"a + b":           "Binary",
		"{ }":             "Block",
		"break":           "Break",
		"f()":             "Call",
		"x as u8":         "Cast",
		"|| 0":            "Closure",
		"const { }":       "Const",
		"continue":        "Continue",
		"s.f":             "Field",
		"for x in y { }":  "ForLoop",
		"if c { }":        "If",
		"v[0]":            "Index",
		"_":               "Infer",
		"let x = 1":       "Let",
		"1":               "Lit",
		"loop { }":        "Loop",
		"m!()":            "Macro",
		"match x { }":     "Match",
		"x.m()":           "MethodCall",
		"(1)":             "Paren",
		"p":               "Path",
		"..":              "Range",
		"&raw const p":    "RawAddr",
		"&p":              "Reference",
		"[0; 1]":          "Repeat",
		"return":          "Return",
		"S { }":           "Struct",
		"r?":              "Try",
		"try { }":         "TryBlock",
		"()":              "Tuple",
		"!b":              "Unary",
		"unsafe { }":      "Unsafe",
		"while c { }":     "While",
		"yield":           "Yield",
	} {
		o := convertSrc(t, src)
		assert.Equal(t, tag, o.Get("kind"), src)
	}
}

func TestConvertArithmeticShape(t *testing.T) {
	o := convertSrc(t, "1 + 2 * 3")
	require.Equal(t, "Binary", o.Get("kind"))
	assert.Equal(t, "+", o.Get("op"))
	assert.Equal(t, "1", child(t, child(t, o, "left"), "lit").Get("value"))
	right := child(t, o, "right")
	assert.Equal(t, "*", right.Get("op"))
	assert.Equal(t, "2", child(t, child(t, right, "left"), "lit").Get("value"))
	assert.Equal(t, "3", child(t, child(t, right, "right"), "lit").Get("value"))
}

func TestConvertMethodCallShape(t *testing.T) {
	o := convertSrc(t, "foo.bar(baz)")
	require.Equal(t, "MethodCall", o.Get("kind"))
	assert.Equal(t, "foo", child(t, o, "receiver").Get("path"))
	assert.Equal(t, "bar", o.Get("method"))
	args := children(t, o, "args")
	require.Len(t, args, 1)
	assert.Equal(t, "baz", args[0].(*Object).Get("path"))
}

func TestConvertKeySetsAreFixed(t *testing.T) {
	assert.Equal(t,
		[]string{"kind", "attrs", "left", "op", "right"},
		convertSrc(t, "a + b").Keys())
	assert.Equal(t,
		[]string{"kind", "attrs", "label", "expr"},
		convertSrc(t, "break").Keys())
	assert.Equal(t,
		[]string{"kind", "attrs", "cond", "then_branch", "else_branch"},
		convertSrc(t, "if c { }").Keys())
	assert.Equal(t,
		[]string{"kind", "attrs", "lifetimes", "constness", "movability",
			"asyncness", "capture", "inputs", "output", "body"},
		convertSrc(t, "|| 0").Keys())
	assert.Equal(t,
		[]string{"kind", "attrs", "qself", "path", "fields", "dot2_token", "rest"},
		convertSrc(t, "S { }").Keys())
}
