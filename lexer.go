package exprjson

import (
	"bufio"
	"io"
	"unicode"
)

type Lexer struct {
	pos          Position
	reader       *bufio.Reader
	peeked       *Token
	peekedString string
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos.Column--
}

func (l *Lexer) kinded(t TokenKind) Token {
	return Token{
		Kind:     t,
		Location: SingleCharSpan(l.pos),
	}
}

func (l *Lexer) read() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false
		}
		panic(err)
	}
	l.pos.Column++
	return r, true
}

func (l *Lexer) peekByteAt(i int) (byte, bool) {
	b, _ := l.reader.Peek(i + 1)
	if len(b) <= i {
		return 0, false
	}
	return b[i], true
}

func (l *Lexer) accept(b byte) bool {
	got, ok := l.peekByteAt(0)
	if !ok || got != b {
		return false
	}
	l.read()
	return true
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func identByte(b byte) bool {
	return b == '_' || b >= 0x80 ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

func identStartByte(b byte) bool {
	return identByte(b) && !digitByte(b)
}

func digitByte(b byte) bool {
	return '0' <= b && b <= '9'
}

func hexByte(b byte) bool {
	return digitByte(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

var keywords = map[string]TokenKind{
	"as":       AS,
	"async":    ASYNC,
	"await":    AWAIT,
	"break":    BREAK,
	"const":    CONST,
	"continue": CONTINUE,
	"else":     ELSE,
	"false":    FALSE,
	"for":      FOR,
	"if":       IF,
	"in":       IN,
	"let":      LET,
	"loop":     LOOP,
	"match":    MATCH,
	"move":     MOVE,
	"mut":      MUT,
	"return":   RETURN,
	"static":   STATIC,
	"true":     TRUE,
	"try":      TRY,
	"_":        UNDERSCORE,
	"unsafe":   UNSAFE,
	"while":    WHILE,
	"yield":    YIELD,
}

func (l *Lexer) Peek() (Token, string) {
	if l.peeked != nil {
		return *l.peeked, l.peekedString
	}

	tok, str := l.Lex()
	l.peeked = &tok
	l.peekedString = str

	return tok, str
}

func (l *Lexer) PeekIs(k ...TokenKind) bool {
	token, _ := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (l *Lexer) PeekIsWithRet(k ...TokenKind) (bool, Token, string) {
	token, lit := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true, token, lit
		}
	}

	return false, Token{}, ""
}

func (l *Lexer) LexExpecting(k ...TokenKind) (Token, string) {
	token, lit := l.Lex()
	for _, kind := range k {
		if token.Kind == kind {
			return token, lit
		}
	}

	panic(ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      token.Kind,
		Location: token.Location,
	})
}

func (l *Lexer) Lex() (Token, string) {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		return *l.peeked, l.peekedString
	}

	for {
		r, ok := l.read()
		if !ok {
			return l.kinded(EOF), ""
		}

		switch r {
		case '\n':
			l.newline()
			continue
		case ' ', '\t', '\r':
			continue
		case '(':
			return l.kinded(LPAREN), "("
		case ')':
			return l.kinded(RPAREN), ")"
		case '[':
			return l.kinded(LBRACK), "["
		case ']':
			return l.kinded(RBRACK), "]"
		case '{':
			return l.kinded(LBRACE), "{"
		case '}':
			return l.kinded(RBRACE), "}"
		case ',':
			return l.kinded(COMMA), ","
		case ';':
			return l.kinded(SEMICOLON), ";"
		case '#':
			return l.kinded(POUND), "#"
		case '?':
			return l.kinded(QUESTION), "?"
		case '@':
			return l.kinded(AT), "@"
		case ':':
			if l.accept(':') {
				return l.kinded(PATHSEP), "::"
			}
			return l.kinded(COLON), ":"
		case '.':
			if l.accept('.') {
				if l.accept('=') {
					return l.kinded(DOTDOTEQ), "..="
				}
				if l.accept('.') {
					return l.kinded(DOTDOTDOT), "..."
				}
				return l.kinded(DOTDOT), ".."
			}
			return l.kinded(DOT), "."
		case '=':
			if l.accept('=') {
				return l.kinded(EQEQ), "=="
			}
			if l.accept('>') {
				return l.kinded(FATARROW), "=>"
			}
			return l.kinded(EQ), "="
		case '!':
			if l.accept('=') {
				return l.kinded(NE), "!="
			}
			return l.kinded(BANG), "!"
		case '+':
			if l.accept('=') {
				return l.kinded(PLUSEQ), "+="
			}
			return l.kinded(PLUS), "+"
		case '-':
			if l.accept('=') {
				return l.kinded(MINUSEQ), "-="
			}
			if l.accept('>') {
				return l.kinded(ARROW), "->"
			}
			return l.kinded(MINUS), "-"
		case '*':
			if l.accept('=') {
				return l.kinded(STAREQ), "*="
			}
			return l.kinded(STAR), "*"
		case '%':
			if l.accept('=') {
				return l.kinded(PERCENTEQ), "%="
			}
			return l.kinded(PERCENT), "%"
		case '^':
			if l.accept('=') {
				return l.kinded(CARETEQ), "^="
			}
			return l.kinded(CARET), "^"
		case '/':
			if l.accept('/') {
				l.skipLineComment()
				continue
			}
			if l.accept('*') {
				l.skipBlockComment()
				continue
			}
			if l.accept('=') {
				return l.kinded(SLASHEQ), "/="
			}
			return l.kinded(SLASH), "/"
		case '&':
			if l.accept('&') {
				return l.kinded(AMPAMP), "&&"
			}
			if l.accept('=') {
				return l.kinded(AMPEQ), "&="
			}
			return l.kinded(AMP), "&"
		case '|':
			if l.accept('|') {
				return l.kinded(PIPEPIPE), "||"
			}
			if l.accept('=') {
				return l.kinded(PIPEEQ), "|="
			}
			return l.kinded(PIPE), "|"
		case '<':
			if l.accept('<') {
				if l.accept('=') {
					return l.kinded(SHLEQ), "<<="
				}
				return l.kinded(SHL), "<<"
			}
			if l.accept('=') {
				return l.kinded(LE), "<="
			}
			return l.kinded(LT), "<"
		case '>':
			if l.accept('>') {
				if l.accept('=') {
					return l.kinded(SHREQ), ">>="
				}
				return l.kinded(SHR), ">>"
			}
			if l.accept('=') {
				return l.kinded(GE), ">="
			}
			return l.kinded(GT), ">"
		case '"':
			return l.lexQuoted(STRING, `"`, '"')
		case '\'':
			return l.lexCharOrLifetime()
		}

		switch {
		case unicode.IsDigit(r):
			return l.lexNumber(r)
		case firstChar(r):
			if r == 'b' || r == 'r' || r == 'c' {
				if tok, lit, ok := l.lexPrefixedLiteral(r); ok {
					return tok, lit
				}
			}
			from, to, lit := l.lexIdent(r)

			if kind, ok := keywords[lit]; ok {
				return Token{kind, Span{from, to}}, lit
			}

			return Token{IDENT, Span{from, to}}, lit
		}

		panic(UnexpectedRune{Rune: r, Location: SingleCharSpan(l.pos)})
	}
}

func (l *Lexer) skipLineComment() {
	for {
		r, ok := l.read()
		if !ok {
			return
		}
		if r == '\n' {
			l.newline()
			return
		}
	}
}

// Block comments nest, as in the source grammar.
func (l *Lexer) skipBlockComment() {
	depth := 1
	for depth > 0 {
		r, ok := l.read()
		if !ok {
			panic(UnterminatedLiteral{Location: SingleCharSpan(l.pos)})
		}
		switch r {
		case '\n':
			l.newline()
		case '*':
			if l.accept('/') {
				depth--
			}
		case '/':
			if l.accept('*') {
				depth++
			}
		}
	}
}

// lexIdent continues an identifier whose first rune the caller consumed.
// Taking the seed rune keeps the hot path off UnreadRune, which the
// literal-prefix lookahead invalidates by peeking ahead.
func (l *Lexer) lexIdent(first rune) (Position, Position, string) {
	lit := string(first)
	from := l.pos
	to := l.pos

	for {
		r, ok := l.read()
		if !ok {
			return from, to, lit
		}

		if !otherChar(r) {
			l.backup()
			return from, to, lit
		}

		lit += string(r)
		to = l.pos
	}
}

// lexQuoted scans a quoted literal whose opening quote (and any literal
// prefix) has already been read. The returned lexeme is the raw source
// text: prefix, both quotes, unprocessed escapes, trailing suffix chars.
func (l *Lexer) lexQuoted(kind TokenKind, prefix string, quote rune) (Token, string) {
	lit := prefix
	for {
		r, ok := l.read()
		if !ok {
			panic(UnterminatedLiteral{Location: SingleCharSpan(l.pos)})
		}
		if r == '\n' {
			l.newline()
		}
		lit += string(r)
		if r == '\\' {
			esc, ok := l.read()
			if !ok {
				panic(UnterminatedLiteral{Location: SingleCharSpan(l.pos)})
			}
			lit += string(esc)
			continue
		}
		if r == quote {
			break
		}
	}
	lit += l.lexSuffix()
	return l.kinded(kind), lit
}

// lexRawQuoted scans r"..." and r#"..."# forms. The prefix letters have
// been read; pounds and the opening quote have not.
func (l *Lexer) lexRawQuoted(kind TokenKind, prefix string) (Token, string) {
	lit := prefix
	pounds := 0
	for l.accept('#') {
		pounds++
		lit += "#"
	}
	r, ok := l.read()
	if !ok || r != '"' {
		panic(UnterminatedLiteral{Location: SingleCharSpan(l.pos)})
	}
	lit += `"`
	for {
		r, ok := l.read()
		if !ok {
			panic(UnterminatedLiteral{Location: SingleCharSpan(l.pos)})
		}
		if r == '\n' {
			l.newline()
		}
		lit += string(r)
		if r != '"' {
			continue
		}
		closed := true
		for i := 0; i < pounds; i++ {
			if b, ok := l.peekByteAt(i); !ok || b != '#' {
				closed = false
				break
			}
		}
		if closed {
			for i := 0; i < pounds; i++ {
				l.read()
				lit += "#"
			}
			break
		}
	}
	lit += l.lexSuffix()
	return l.kinded(kind), lit
}

func (l *Lexer) lexSuffix() string {
	var lit string
	for {
		b, ok := l.peekByteAt(0)
		if !ok || !identByte(b) {
			return lit
		}
		r, _ := l.read()
		lit += string(r)
	}
}

// lexPrefixedLiteral handles the b"..", b'..', br".., c".." and r".."
// forms. The prefix rune has been read; reports false when the rune
// begins a plain identifier instead.
func (l *Lexer) lexPrefixedLiteral(r rune) (Token, string, bool) {
	b0, ok0 := l.peekByteAt(0)
	if !ok0 {
		return Token{}, "", false
	}
	b1, ok1 := l.peekByteAt(1)

	switch r {
	case 'r':
		if b0 == '"' || b0 == '#' {
			tok, lit := l.lexRawQuoted(STRING, "r")
			return tok, lit, true
		}
	case 'b':
		switch {
		case b0 == '"':
			l.read()
			tok, lit := l.lexQuoted(BYTESTRING, `b"`, '"')
			return tok, lit, true
		case b0 == '\'':
			l.read()
			tok, lit := l.lexQuoted(BYTE, "b'", '\'')
			return tok, lit, true
		case b0 == 'r' && ok1 && (b1 == '"' || b1 == '#'):
			l.read()
			tok, lit := l.lexRawQuoted(BYTESTRING, "br")
			return tok, lit, true
		}
	case 'c':
		switch {
		case b0 == '"':
			l.read()
			tok, lit := l.lexQuoted(CSTRING, `c"`, '"')
			return tok, lit, true
		case b0 == 'r' && ok1 && (b1 == '"' || b1 == '#'):
			l.read()
			tok, lit := l.lexRawQuoted(CSTRING, "cr")
			return tok, lit, true
		}
	}
	return Token{}, "", false
}

func (l *Lexer) lexCharOrLifetime() (Token, string) {
	b0, ok0 := l.peekByteAt(0)
	if !ok0 {
		panic(UnterminatedLiteral{Location: SingleCharSpan(l.pos)})
	}
	b1, ok1 := l.peekByteAt(1)

	isChar := b0 == '\\' || b0 >= 0x80 || !identStartByte(b0) || (ok1 && b1 == '\'')
	if isChar {
		return l.lexQuoted(CHAR, "'", '\'')
	}

	lit := "'"
	for {
		b, ok := l.peekByteAt(0)
		if !ok || !identByte(b) {
			break
		}
		r, _ := l.read()
		lit += string(r)
	}
	return l.kinded(LIFETIME), lit
}

func (l *Lexer) lexNumber(first rune) (Token, string) {
	lit := string(first)
	isFloat := false

	if first == '0' {
		if b, ok := l.peekByteAt(0); ok {
			switch b {
			case 'x', 'X', 'o', 'O', 'b', 'B':
				r, _ := l.read()
				lit += string(r)
				for {
					b, ok := l.peekByteAt(0)
					if !ok || !(hexByte(b) || b == '_') {
						break
					}
					r, _ := l.read()
					lit += string(r)
				}
				lit += l.lexSuffix()
				return l.kinded(INT), lit
			}
		}
	}

	consumeDigits := func() {
		for {
			b, ok := l.peekByteAt(0)
			if !ok || !(digitByte(b) || b == '_') {
				return
			}
			r, _ := l.read()
			lit += string(r)
		}
	}
	consumeDigits()

	if b, ok := l.peekByteAt(0); ok && b == '.' {
		b1, ok1 := l.peekByteAt(1)
		switch {
		case ok1 && b1 == '.':
			// start of a range operator, leave it alone
		case ok1 && identStartByte(b1):
			// field or method access on the integer, e.g. 1.max(2)
		default:
			l.read()
			lit += "."
			isFloat = true
			consumeDigits()
		}
	}

	if b, ok := l.peekByteAt(0); ok && (b == 'e' || b == 'E') {
		b1, ok1 := l.peekByteAt(1)
		b2, ok2 := l.peekByteAt(2)
		if ok1 && digitByte(b1) {
			l.read()
			lit += string(b)
			isFloat = true
			consumeDigits()
		} else if ok1 && (b1 == '+' || b1 == '-') && ok2 && digitByte(b2) {
			l.read()
			lit += string(b)
			r, _ := l.read()
			lit += string(r)
			isFloat = true
			consumeDigits()
		}
	}

	lit += l.lexSuffix()

	if isFloat {
		return l.kinded(FLOAT), lit
	}
	return l.kinded(INT), lit
}

type testToken struct {
	t Token
	s string
}

func (l *Lexer) lexToEOF() (ret []testToken) {
	t, s := l.Lex()
	for t.Kind != EOF {
		ret = append(ret, testToken{
			t: t,
			s: s,
		})
		t, s = l.Lex()
	}
	return
}
