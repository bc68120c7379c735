package exprjson

import (
	"strconv"
	"strings"

	"github.com/ztrue/tracerr"
)

// Parser builds a single expression tree from a token stream. The noStruct
// flag is set while parsing loop and match headers, where a brace opens the
// body rather than a struct literal.
type Parser struct {
	l        *Lexer
	noStruct bool
}

func NewParser(l *Lexer) *Parser {
	return &Parser{l: l}
}

func (p *Parser) Parse() (expr Expression, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()
	expr = p.parseExpression(0)
	p.l.LexExpecting(EOF)
	return
}

func ParseString(src string, filename string) (Expression, error) {
	p := NewParser(NewLexer(strings.NewReader(src), filename))
	return p.Parse()
}

var binOps = map[TokenKind]BinOp{
	PLUS:      OpAdd,
	MINUS:     OpSub,
	STAR:      OpMul,
	SLASH:     OpDiv,
	PERCENT:   OpRem,
	AMPAMP:    OpAnd,
	PIPEPIPE:  OpOr,
	CARET:     OpBitXor,
	AMP:       OpBitAnd,
	PIPE:      OpBitOr,
	SHL:       OpShl,
	SHR:       OpShr,
	EQEQ:      OpEq,
	NE:        OpNe,
	LT:        OpLt,
	GT:        OpGt,
	LE:        OpLe,
	GE:        OpGe,
	PLUSEQ:    OpAddAssign,
	MINUSEQ:   OpSubAssign,
	STAREQ:    OpMulAssign,
	SLASHEQ:   OpDivAssign,
	PERCENTEQ: OpRemAssign,
	CARETEQ:   OpXorAssign,
	AMPEQ:     OpAndAssign,
	PIPEEQ:    OpOrAssign,
	SHLEQ:     OpShlAssign,
	SHREQ:     OpShrAssign,
}

func infixPrecedence(k TokenKind) (prec int, rightAssoc bool, ok bool) {
	switch k {
	case EQ, PLUSEQ, MINUSEQ, STAREQ, SLASHEQ, PERCENTEQ, CARETEQ, AMPEQ, PIPEEQ, SHLEQ, SHREQ:
		return 2, true, true
	case DOTDOT, DOTDOTEQ:
		return 3, false, true
	case PIPEPIPE:
		return 4, false, true
	case AMPAMP:
		return 5, false, true
	case EQEQ, NE, LT, GT, LE, GE:
		return 6, false, true
	case PIPE:
		return 7, false, true
	case CARET:
		return 8, false, true
	case AMP:
		return 9, false, true
	case SHL, SHR:
		return 10, false, true
	case PLUS, MINUS:
		return 11, false, true
	case STAR, SLASH, PERCENT:
		return 12, false, true
	case AS:
		return 13, false, true
	}
	return 0, false, false
}

func (p *Parser) parseExpression(minPrec int) Expression {
	left := p.parseUnary()

	for {
		tok, _ := p.l.Peek()
		prec, rightAssoc, ok := infixPrecedence(tok.Kind)
		if !ok || prec < minPrec {
			return left
		}
		p.l.Lex()

		switch tok.Kind {
		case AS:
			left = Cast{Expr: left, Ty: p.captureTypeTokens()}
		case EQ:
			left = Assign{Left: left, Right: p.parseExpression(prec)}
		case DOTDOT, DOTDOTEQ:
			var end Expression
			if p.startsExpression() {
				end = p.parseExpression(prec + 1)
			}
			left = Range{Start: left, Closed: tok.Kind == DOTDOTEQ, End: end}
		default:
			next := prec + 1
			if rightAssoc {
				next = prec
			}
			left = Binary{Left: left, Op: binOps[tok.Kind], Right: p.parseExpression(next)}
		}
	}
}

func (p *Parser) parseUnary() Expression {
	attrs := p.parseAttrs()

	var e Expression
	tok, _ := p.l.Peek()
	switch tok.Kind {
	case MINUS:
		p.l.Lex()
		e = Unary{Op: OpNeg, Expr: p.parseUnary()}
	case BANG:
		p.l.Lex()
		e = Unary{Op: OpNot, Expr: p.parseUnary()}
	case STAR:
		p.l.Lex()
		e = Unary{Op: OpDeref, Expr: p.parseUnary()}
	case AMP:
		p.l.Lex()
		e = p.parseReference()
	case AMPAMP:
		p.l.Lex()
		e = Reference{Expr: p.parseReference()}
	default:
		e = p.parsePostfix(p.parsePrimary())
	}

	if len(attrs) > 0 {
		e = withAttrs(e, attrs)
	}
	return e
}

// parseReference is entered with one '&' already consumed. A bare `raw`
// identifier here is a raw borrow only when const or mut follows; otherwise
// it begins an ordinary path.
func (p *Parser) parseReference() Expression {
	if ok, _, lit := p.l.PeekIsWithRet(IDENT); ok && lit == "raw" {
		p.l.Lex()
		if p.l.PeekIs(CONST) {
			p.l.Lex()
			return RawAddr{Expr: p.parseUnary()}
		}
		if p.l.PeekIs(MUT) {
			p.l.Lex()
			return RawAddr{Mutable: true, Expr: p.parseUnary()}
		}
		base := p.finishPathExpr(nil, p.parsePathTokens("raw"))
		return Reference{Expr: p.parsePostfix(base)}
	}
	if p.l.PeekIs(MUT) {
		p.l.Lex()
		return Reference{Mutable: true, Expr: p.parseUnary()}
	}
	return Reference{Expr: p.parseUnary()}
}

func (p *Parser) parsePostfix(e Expression) Expression {
	for {
		tok, _ := p.l.Peek()
		switch tok.Kind {
		case DOT:
			p.l.Lex()
			e = p.parseDotSuffix(e)
		case QUESTION:
			p.l.Lex()
			e = Try{Expr: e}
		case LPAREN:
			p.l.Lex()
			e = Call{Func: e, Args: p.parseCallArgs()}
		case LBRACK:
			p.l.Lex()
			saved := p.noStruct
			p.noStruct = false
			idx := p.parseExpression(0)
			p.noStruct = saved
			p.l.LexExpecting(RBRACK)
			e = Index{Expr: e, Index: idx}
		default:
			return e
		}
	}
}

func (p *Parser) parseDotSuffix(base Expression) Expression {
	tok, lit := p.l.Lex()
	switch tok.Kind {
	case AWAIT:
		return Await{Base: base}
	case INT:
		return Field{Base: base, Member: Member{Index: memberIndex(lit, tok.Location)}}
	case FLOAT:
		// a pair of tuple indices like `t.0.1` arrives as one float token
		parts := strings.SplitN(lit, ".", 2)
		if len(parts) != 2 {
			panic(ExpectedOneOfKindGotKind{
				Expected: []TokenKind{INT},
				Got:      tok.Kind,
				Location: tok.Location,
			})
		}
		a := memberIndex(parts[0], tok.Location)
		b := memberIndex(parts[1], tok.Location)
		return Field{
			Base:   Field{Base: base, Member: Member{Index: a}},
			Member: Member{Index: b},
		}
	case IDENT:
		var turbofish Tokens
		if p.l.PeekIs(PATHSEP) {
			p.l.Lex()
			turbofish = append(Tokens{"::"}, p.captureAngles()...)
		}
		if len(turbofish) > 0 {
			p.l.LexExpecting(LPAREN)
			return MethodCall{Receiver: base, Method: lit, Turbofish: turbofish, Args: p.parseCallArgs()}
		}
		if p.l.PeekIs(LPAREN) {
			p.l.Lex()
			return MethodCall{Receiver: base, Method: lit, Args: p.parseCallArgs()}
		}
		return Field{Base: base, Member: Member{Name: lit, Named: true}}
	}
	panic(ExpectedOneOfKindGotKind{
		Expected: []TokenKind{IDENT, INT, AWAIT},
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

func memberIndex(digits string, loc Span) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		panic(InvalidMemberIndex{Digits: digits, Location: loc})
	}
	return n
}

// parseCallArgs is entered with the opening paren consumed.
func (p *Parser) parseCallArgs() []Expression {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	args := []Expression{}
	for !p.l.PeekIs(RPAREN) {
		args = append(args, p.parseExpression(0))
		if !p.l.PeekIs(COMMA) {
			break
		}
		p.l.Lex()
	}
	p.l.LexExpecting(RPAREN)
	return args
}

func (p *Parser) parsePrimary() Expression {
	tok, lit := p.l.Peek()
	switch tok.Kind {
	case INT, FLOAT, STRING, BYTESTRING, CSTRING, CHAR, BYTE, TRUE, FALSE:
		p.l.Lex()
		return Lit{Value: litFromToken(tok, lit)}

	case IDENT, PATHSEP:
		return p.finishPathExpr(nil, p.parsePathTokens(""))

	case LT:
		// qualified path, `<T as Trait>::item`
		qself := p.captureAngles()
		p.l.LexExpecting(PATHSEP)
		return p.finishPathExpr(qself, p.parsePathTokens(""))

	case LPAREN:
		return p.parseParen()

	case LBRACK:
		return p.parseBracket()

	case LBRACE:
		return Block{Body: p.captureBlock()}

	case LIFETIME:
		return p.parseLabeled()

	case IF:
		return p.parseIf()

	case MATCH:
		return p.parseMatch()

	case LOOP:
		p.l.Lex()
		return Loop{Body: p.captureBlock()}

	case WHILE:
		return p.parseWhile("")

	case FOR:
		return p.parseFor("")

	case BREAK:
		p.l.Lex()
		var label string
		if ok, _, l := p.l.PeekIsWithRet(LIFETIME); ok {
			p.l.Lex()
			label = strings.TrimPrefix(l, "'")
		}
		var expr Expression
		if p.startsExpression() {
			expr = p.parseExpression(0)
		}
		return Break{Label: label, Expr: expr}

	case CONTINUE:
		p.l.Lex()
		var label string
		if ok, _, l := p.l.PeekIsWithRet(LIFETIME); ok {
			p.l.Lex()
			label = strings.TrimPrefix(l, "'")
		}
		return Continue{Label: label}

	case RETURN:
		p.l.Lex()
		var expr Expression
		if p.startsExpression() {
			expr = p.parseExpression(0)
		}
		return Return{Expr: expr}

	case YIELD:
		p.l.Lex()
		var expr Expression
		if p.startsExpression() {
			expr = p.parseExpression(0)
		}
		return Yield{Expr: expr}

	case MOVE, STATIC, ASYNC, CONST, PIPE, PIPEPIPE:
		return p.parseClosureOrBlock()

	case UNSAFE:
		p.l.Lex()
		return Unsafe{Block: p.captureBlock()}

	case TRY:
		p.l.Lex()
		return TryBlock{Block: p.captureBlock()}

	case LET:
		p.l.Lex()
		pat := p.captureUntil(EQ)
		p.l.LexExpecting(EQ)
		// the scrutinee stops before && so let chains compose
		return Let{Pat: pat, Expr: p.parseExpression(6)}

	case UNDERSCORE:
		p.l.Lex()
		return Infer{}

	case DOTDOT, DOTDOTEQ:
		p.l.Lex()
		var end Expression
		if p.startsExpression() {
			end = p.parseExpression(4)
		}
		return Range{Closed: tok.Kind == DOTDOTEQ, End: end}
	}

	panic(ExpectedExpression{Got: tok.Kind, Location: tok.Location})
}

func (p *Parser) parseParen() Expression {
	p.l.LexExpecting(LPAREN)
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	if p.l.PeekIs(RPAREN) {
		p.l.Lex()
		return Tuple{Elems: []Expression{}}
	}
	first := p.parseExpression(0)
	if !p.l.PeekIs(COMMA) {
		p.l.LexExpecting(RPAREN)
		return Paren{Expr: first}
	}
	elems := []Expression{first}
	for p.l.PeekIs(COMMA) {
		p.l.Lex()
		if p.l.PeekIs(RPAREN) {
			break
		}
		elems = append(elems, p.parseExpression(0))
	}
	p.l.LexExpecting(RPAREN)
	return Tuple{Elems: elems}
}

func (p *Parser) parseBracket() Expression {
	p.l.LexExpecting(LBRACK)
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	if p.l.PeekIs(RBRACK) {
		p.l.Lex()
		return Array{Elems: []Expression{}}
	}
	first := p.parseExpression(0)
	if p.l.PeekIs(SEMICOLON) {
		p.l.Lex()
		n := p.parseExpression(0)
		p.l.LexExpecting(RBRACK)
		return Repeat{Expr: first, Len: n}
	}
	elems := []Expression{first}
	for p.l.PeekIs(COMMA) {
		p.l.Lex()
		if p.l.PeekIs(RBRACK) {
			break
		}
		elems = append(elems, p.parseExpression(0))
	}
	p.l.LexExpecting(RBRACK)
	return Array{Elems: elems}
}

func (p *Parser) parseLabeled() Expression {
	_, label := p.l.LexExpecting(LIFETIME)
	label = strings.TrimPrefix(label, "'")
	p.l.LexExpecting(COLON)

	tok, _ := p.l.Peek()
	switch tok.Kind {
	case LOOP:
		p.l.Lex()
		return Loop{Label: label, Body: p.captureBlock()}
	case WHILE:
		return p.parseWhile(label)
	case FOR:
		return p.parseFor(label)
	case LBRACE:
		return Block{Label: label, Body: p.captureBlock()}
	}
	panic(ExpectedOneOfKindGotKind{
		Expected: []TokenKind{LOOP, WHILE, FOR, LBRACE},
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

func (p *Parser) parseIf() Expression {
	p.l.LexExpecting(IF)
	cond := p.parseCondition()
	then := p.captureBlock()

	var els Expression
	if p.l.PeekIs(ELSE) {
		p.l.Lex()
		if p.l.PeekIs(IF) {
			els = p.parseIf()
		} else {
			els = Block{Body: p.captureBlock()}
		}
	}
	return If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile(label string) Expression {
	p.l.LexExpecting(WHILE)
	cond := p.parseCondition()
	return While{Label: label, Cond: cond, Body: p.captureBlock()}
}

func (p *Parser) parseFor(label string) Expression {
	p.l.LexExpecting(FOR)
	if p.l.PeekIs(LT) {
		// higher-ranked lifetimes in front of a closure
		lifetimes := p.captureAngles()
		c := p.parseClosureOrBlock()
		if cl, ok := c.(Closure); ok {
			cl.Lifetimes = lifetimes
			return cl
		}
		return c
	}
	pat := p.captureUntil(IN)
	p.l.LexExpecting(IN)
	expr := p.parseCondition()
	return ForLoop{Label: label, Pat: pat, Expr: expr, Body: p.captureBlock()}
}

func (p *Parser) parseMatch() Expression {
	p.l.LexExpecting(MATCH)
	scrutinee := p.parseCondition()
	p.l.LexExpecting(LBRACE)

	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	var arms []Arm
	for !p.l.PeekIs(RBRACE) {
		arms = append(arms, p.parseArm())
	}
	p.l.LexExpecting(RBRACE)
	return Match{Expr: scrutinee, Arms: arms}
}

func (p *Parser) parseArm() Arm {
	attrs := p.parseAttrs()
	pat := p.captureUntil(FATARROW, IF)

	var guard Expression
	if p.l.PeekIs(IF) {
		p.l.Lex()
		guard = p.parseExpression(0)
	}
	p.l.LexExpecting(FATARROW)
	body := p.parseExpression(0)
	if p.l.PeekIs(COMMA) {
		p.l.Lex()
	}
	return Arm{Attrs: attrs, Pat: pat, Guard: guard, Body: body}
}

// parseClosureOrBlock sorts out the prefix keywords shared by closures and
// the const and async block forms.
func (p *Parser) parseClosureOrBlock() Expression {
	var constness, movability, asyncness, capture bool
	for {
		tok, _ := p.l.Peek()
		switch tok.Kind {
		case CONST:
			p.l.Lex()
			if !constness && !movability && !asyncness && !capture && p.l.PeekIs(LBRACE) {
				return Const{Block: p.captureBlock()}
			}
			constness = true
			continue
		case STATIC:
			p.l.Lex()
			movability = true
			continue
		case ASYNC:
			p.l.Lex()
			if !constness && !movability && !capture {
				if p.l.PeekIs(LBRACE) {
					return Async{Block: p.captureBlock()}
				}
				if p.l.PeekIs(MOVE) {
					p.l.Lex()
					if p.l.PeekIs(LBRACE) {
						return Async{Capture: true, Block: p.captureBlock()}
					}
					asyncness = true
					capture = true
					continue
				}
			}
			asyncness = true
			continue
		case MOVE:
			p.l.Lex()
			capture = true
			continue
		case PIPE, PIPEPIPE:
			return p.finishClosure(Closure{
				Constness:  constness,
				Movability: movability,
				Asyncness:  asyncness,
				Capture:    capture,
			})
		}
		panic(ExpectedOneOfKindGotKind{
			Expected: []TokenKind{PIPE, PIPEPIPE},
			Got:      tok.Kind,
			Location: tok.Location,
		})
	}
}

func (p *Parser) finishClosure(c Closure) Expression {
	tok, _ := p.l.LexExpecting(PIPE, PIPEPIPE)
	c.Inputs = []Tokens{}
	if tok.Kind == PIPE {
		for !p.l.PeekIs(PIPE) {
			c.Inputs = append(c.Inputs, p.captureUntil(COMMA, PIPE))
			if !p.l.PeekIs(COMMA) {
				break
			}
			p.l.Lex()
		}
		p.l.LexExpecting(PIPE)
	}
	if p.l.PeekIs(ARROW) {
		p.l.Lex()
		c.Output = p.captureTypeTokens()
		c.Body = Block{Body: p.captureBlock()}
		return c
	}
	c.Body = p.parseExpression(0)
	return c
}

// parsePathTokens collects a path expression as raw tokens, including any
// turbofish arguments. A non-empty first segment is one the caller already
// consumed.
func (p *Parser) parsePathTokens(first string) Tokens {
	var toks Tokens
	if first != "" {
		toks = Tokens{first}
	} else if p.l.PeekIs(PATHSEP) {
		p.l.Lex()
		_, name := p.l.LexExpecting(IDENT)
		toks = Tokens{"::", name}
	} else {
		_, name := p.l.LexExpecting(IDENT)
		toks = Tokens{name}
	}

	for p.l.PeekIs(PATHSEP) {
		p.l.Lex()
		if p.l.PeekIs(LT) {
			toks = append(toks, "::")
			toks = append(toks, p.captureAngles()...)
			continue
		}
		_, name := p.l.LexExpecting(IDENT)
		toks = append(toks, "::", name)
	}
	return toks
}

func (p *Parser) finishPathExpr(qself, segments Tokens) Expression {
	tok, _ := p.l.Peek()
	switch tok.Kind {
	case BANG:
		if qself == nil {
			p.l.Lex()
			mac := append(Tokens{}, segments...)
			mac = append(mac, "!")
			mac = append(mac, p.captureDelim(LPAREN, LBRACK, LBRACE)...)
			return Macro{Mac: mac}
		}
	case LBRACE:
		if !p.noStruct {
			return p.parseStructLiteral(qself, segments)
		}
	}
	return Path{Qself: qself, Segments: segments}
}

func (p *Parser) parseStructLiteral(qself, path Tokens) Expression {
	p.l.LexExpecting(LBRACE)
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	s := Struct{Qself: qself, Path: path, Fields: []FieldValue{}}
	seen := map[string]bool{}
	for !p.l.PeekIs(RBRACE) {
		if p.l.PeekIs(DOTDOT) {
			p.l.Lex()
			s.Dot2 = true
			if p.startsExpression() {
				s.Rest = p.parseExpression(0)
			}
			break
		}

		attrs := p.parseAttrs()
		tok, lit := p.l.LexExpecting(IDENT, INT)
		var m Member
		if tok.Kind == INT {
			m = Member{Index: memberIndex(lit, tok.Location)}
		} else {
			if seen[lit] {
				panic(DuplicateField{Name: lit, Location: tok.Location})
			}
			seen[lit] = true
			m = Member{Name: lit, Named: true}
		}

		var expr Expression
		if p.l.PeekIs(COLON) {
			p.l.Lex()
			expr = p.parseExpression(0)
		} else {
			expr = Path{Segments: Tokens{lit}}
		}
		s.Fields = append(s.Fields, FieldValue{Attrs: attrs, Member: m, Expr: expr})

		if !p.l.PeekIs(COMMA) {
			break
		}
		p.l.Lex()
	}
	p.l.LexExpecting(RBRACE)
	return s
}

func (p *Parser) parseCondition() Expression {
	saved := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = saved }()
	return p.parseExpression(0)
}

func (p *Parser) parseAttrs() []Tokens {
	var attrs []Tokens
	for p.l.PeekIs(POUND) {
		p.l.Lex()
		toks := Tokens{"#"}
		toks = append(toks, p.captureDelim(LBRACK)...)
		attrs = append(attrs, toks)
	}
	return attrs
}

// startsExpression reports whether the next token can begin an expression.
// It gates the optional operands of break, return, yield and ranges.
func (p *Parser) startsExpression() bool {
	tok, _ := p.l.Peek()
	switch tok.Kind {
	case IDENT, INT, FLOAT, STRING, BYTESTRING, CSTRING, CHAR, BYTE, TRUE, FALSE,
		LPAREN, LBRACK, PATHSEP, LT, MINUS, BANG, STAR, AMP, AMPAMP,
		IF, MATCH, LOOP, WHILE, FOR, UNSAFE, TRY,
		MOVE, STATIC, ASYNC, CONST, PIPE, PIPEPIPE,
		RETURN, BREAK, CONTINUE, YIELD,
		UNDERSCORE, DOTDOT, DOTDOTEQ, POUND, LIFETIME:
		return true
	case LBRACE:
		return !p.noStruct
	}
	return false
}

// captureUntil collects tokens verbatim until one of the stop kinds appears
// outside any bracket nesting.
func (p *Parser) captureUntil(stops ...TokenKind) Tokens {
	var toks Tokens
	depth := 0
	for {
		tok, lit := p.l.Peek()
		if tok.Kind == EOF {
			panic(ExpectedOneOfKindGotKind{Expected: stops, Got: EOF, Location: tok.Location})
		}
		if depth == 0 {
			for _, s := range stops {
				if tok.Kind == s {
					return toks
				}
			}
		}
		p.l.Lex()
		switch tok.Kind {
		case LPAREN, LBRACK, LBRACE:
			depth++
		case RPAREN, RBRACK, RBRACE:
			depth--
		}
		toks = append(toks, lit)
	}
}

// captureDelim consumes a balanced delimited group, returning its tokens
// with the delimiters included.
func (p *Parser) captureDelim(opens ...TokenKind) Tokens {
	open, lit := p.l.LexExpecting(opens...)
	var closer TokenKind
	switch open.Kind {
	case LPAREN:
		closer = RPAREN
	case LBRACK:
		closer = RBRACK
	case LBRACE:
		closer = RBRACE
	}

	toks := Tokens{lit}
	depth := 1
	for depth > 0 {
		tok, lit := p.l.Lex()
		switch tok.Kind {
		case EOF:
			panic(ExpectedOneOfKindGotKind{Expected: []TokenKind{closer}, Got: EOF, Location: tok.Location})
		case open.Kind:
			depth++
		case closer:
			depth--
		}
		toks = append(toks, lit)
	}
	return toks
}

func (p *Parser) captureBlock() Tokens {
	return p.captureDelim(LBRACE)
}

// captureAngles consumes a balanced angle-bracketed group starting at '<'.
// A '>>' closes two levels at once.
func (p *Parser) captureAngles() Tokens {
	p.l.LexExpecting(LT)
	toks := Tokens{"<"}
	depth := 1
	for depth > 0 {
		tok, lit := p.l.Lex()
		switch tok.Kind {
		case EOF:
			panic(ExpectedOneOfKindGotKind{Expected: []TokenKind{GT}, Got: EOF, Location: tok.Location})
		case LT:
			depth++
		case GT:
			depth--
		case SHR:
			depth -= 2
			toks = append(toks, ">", ">")
			continue
		}
		toks = append(toks, lit)
	}
	return toks
}

// captureTypeTokens consumes the longest run of tokens that can form a type,
// for cast targets and closure return types. Commas and other separators are
// taken only inside brackets or angles, so the surrounding expression
// grammar resumes cleanly.
func (p *Parser) captureTypeTokens() Tokens {
	var toks Tokens
	depth := 0
	angles := 0
	for {
		tok, lit := p.l.Peek()
		allowed := false
		emit := lit

		switch tok.Kind {
		case IDENT, PATHSEP, STAR, AMP, AMPAMP, CONST, MUT, UNDERSCORE,
			LIFETIME, ARROW, QUESTION, BANG, FOR, UNSAFE:
			allowed = true
		case LT:
			angles++
			allowed = true
		case GT:
			if angles > 0 {
				angles--
				allowed = true
			}
		case SHR:
			if angles >= 2 {
				angles -= 2
				allowed = true
				emit = "> >"
			}
		case LPAREN, LBRACK:
			depth++
			allowed = true
		case RPAREN, RBRACK:
			if depth > 0 {
				depth--
				allowed = true
			}
		case COMMA, SEMICOLON, EQ, INT, PLUS, DOTDOTDOT, STRING, TRUE, FALSE:
			allowed = depth > 0 || angles > 0
		}

		if !allowed {
			break
		}
		p.l.Lex()
		if emit == "> >" {
			toks = append(toks, ">", ">")
		} else {
			toks = append(toks, emit)
		}
	}

	if len(toks) == 0 {
		tok, _ := p.l.Peek()
		panic(ExpectedOneOfKindGotKind{Expected: []TokenKind{IDENT}, Got: tok.Kind, Location: tok.Location})
	}
	return toks
}
