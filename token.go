package exprjson

import "fmt"

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	IDENT
	LIFETIME
	INT
	FLOAT
	STRING
	BYTESTRING
	CSTRING
	CHAR
	BYTE

	LPAREN
	RPAREN
	LBRACK
	RBRACK
	LBRACE
	RBRACE
	COMMA
	SEMICOLON
	COLON
	PATHSEP
	DOT
	DOTDOT
	DOTDOTEQ
	DOTDOTDOT
	ARROW
	FATARROW
	POUND
	QUESTION
	AT

	BANG
	EQ
	EQEQ
	NE
	LT
	GT
	LE
	GE
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	CARET
	AMP
	PIPE
	AMPAMP
	PIPEPIPE
	SHL
	SHR
	PLUSEQ
	MINUSEQ
	STAREQ
	SLASHEQ
	PERCENTEQ
	CARETEQ
	AMPEQ
	PIPEEQ
	SHLEQ
	SHREQ

	AS
	ASYNC
	AWAIT
	BREAK
	CONST
	CONTINUE
	ELSE
	FALSE
	FOR
	IF
	IN
	LET
	LOOP
	MATCH
	MOVE
	MUT
	RETURN
	STATIC
	TRUE
	TRY
	UNDERSCORE
	UNSAFE
	WHILE
	YIELD
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:        "EOF",
		ILLEGAL:    "ILLEGAL",
		IDENT:      "IDENT",
		LIFETIME:   "LIFETIME",
		INT:        "INT",
		FLOAT:      "FLOAT",
		STRING:     "STRING",
		BYTESTRING: "BYTESTRING",
		CSTRING:    "CSTRING",
		CHAR:       "CHAR",
		BYTE:       "BYTE",
		LPAREN:     "LPAREN",
		RPAREN:     "RPAREN",
		LBRACK:     "LBRACK",
		RBRACK:     "RBRACK",
		LBRACE:     "LBRACE",
		RBRACE:     "RBRACE",
		COMMA:      "COMMA",
		SEMICOLON:  "SEMICOLON",
		COLON:      "COLON",
		PATHSEP:    "PATHSEP",
		DOT:        "DOT",
		DOTDOT:     "DOTDOT",
		DOTDOTEQ:   "DOTDOTEQ",
		DOTDOTDOT:  "DOTDOTDOT",
		ARROW:      "ARROW",
		FATARROW:   "FATARROW",
		POUND:      "POUND",
		QUESTION:   "QUESTION",
		AT:         "AT",
		BANG:       "BANG",
		EQ:         "EQ",
		EQEQ:       "EQEQ",
		NE:         "NE",
		LT:         "LT",
		GT:         "GT",
		LE:         "LE",
		GE:         "GE",
		PLUS:       "PLUS",
		MINUS:      "MINUS",
		STAR:       "STAR",
		SLASH:      "SLASH",
		PERCENT:    "PERCENT",
		CARET:      "CARET",
		AMP:        "AMP",
		PIPE:       "PIPE",
		AMPAMP:     "AMPAMP",
		PIPEPIPE:   "PIPEPIPE",
		SHL:        "SHL",
		SHR:        "SHR",
		PLUSEQ:     "PLUSEQ",
		MINUSEQ:    "MINUSEQ",
		STAREQ:     "STAREQ",
		SLASHEQ:    "SLASHEQ",
		PERCENTEQ:  "PERCENTEQ",
		CARETEQ:    "CARETEQ",
		AMPEQ:      "AMPEQ",
		PIPEEQ:     "PIPEEQ",
		SHLEQ:      "SHLEQ",
		SHREQ:      "SHREQ",
		AS:         "AS",
		ASYNC:      "ASYNC",
		AWAIT:      "AWAIT",
		BREAK:      "BREAK",
		CONST:      "CONST",
		CONTINUE:   "CONTINUE",
		ELSE:       "ELSE",
		FALSE:      "FALSE",
		FOR:        "FOR",
		IF:         "IF",
		IN:         "IN",
		LET:        "LET",
		LOOP:       "LOOP",
		MATCH:      "MATCH",
		MOVE:       "MOVE",
		MUT:        "MUT",
		RETURN:     "RETURN",
		STATIC:     "STATIC",
		TRUE:       "TRUE",
		TRY:        "TRY",
		UNDERSCORE: "UNDERSCORE",
		UNSAFE:     "UNSAFE",
		WHILE:      "WHILE",
		YIELD:      "YIELD",
	}
	return data[t]
}

type Position struct {
	Line     int
	Column   int
	Filename string
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

type Span struct {
	From Position
	To   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Location Span
}
